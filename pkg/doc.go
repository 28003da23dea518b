// Package pkg provides the core libraries for Bumpline version resolution.
//
// # Overview
//
// Bumpline reads the conventional-commit history of a workspace and computes
// the next semantic version of every package in it. The pkg directory is
// organized into three main areas:
//
//  1. Git plumbing ([gitfmt], [git]) - Typed access to git output
//  2. Resolution ([conventional], [semver], [version]) - Commits to versions
//  3. Workspace ([workspace], [report], [changelog]) - Batch runs and output
//
// # Architecture
//
// The typical data flow through Bumpline:
//
//	Workspace manifests (bumpline.toml, deno.json, package.json)
//	         ↓
//	    [workspace] package (discover members)
//	         ↓
//	    [git] package (read tags and commits via [gitfmt])
//	         ↓
//	    [conventional] package (classify commit messages)
//	         ↓
//	    [version] package (resolve releases and pending updates)
//	         ↓
//	    [report] / [changelog] output (JSON, markdown)
//
// # Quick Start
//
// Resolve every package of a workspace and render the result:
//
//	import (
//	    "context"
//	    "os"
//
//	    "github.com/charmbracelet/log"
//
//	    "github.com/bumpline/bumpline/pkg/changelog"
//	    "github.com/bumpline/bumpline/pkg/git"
//	    "github.com/bumpline/bumpline/pkg/report"
//	    "github.com/bumpline/bumpline/pkg/version"
//	    "github.com/bumpline/bumpline/pkg/workspace"
//	)
//
//	// 1. Discover the workspace members
//	pkgs, _ := workspace.Discover(".")
//
//	// 2. Resolve them against git history
//	resolver := version.New(git.New("."), log.Default())
//	results := workspace.ResolveAll(context.Background(), resolver, pkgs, workspace.DefaultWorkers)
//
//	// 3. Flatten and render
//	rep := report.FromResults(".", results)
//	changelog.Write(os.Stdout, rep)
//
// # Main Packages
//
// ## Git Plumbing
//
// [gitfmt] - Format descriptors for git's --format/--pretty output. A
// [gitfmt.Descriptor] names the fields a command should print and decodes
// the delimiter-framed text git returns into typed records, using the
// 40-hex object hash as a collision-free frame marker.
//
// [git] - Repository accessor running the git binary as a subprocess.
// [git.Client] exposes Log, Head, and Tags with typed options, and
// classifies failures so callers can tell "not a repository" from real
// errors.
//
// ## Resolution
//
// [conventional] - Conventional-commit classifier. [conventional.Classify]
// is total: any git commit maps to a type, scopes, description, breaking
// marker, and footers, with the summary winning over footer duplicates.
//
// [semver] - Semantic Versioning 2.0.0. Parse, compare with prerelease
// precedence, bump, and diff. No version ranges; Bumpline only ever needs
// concrete versions.
//
// [version] - The resolution engine. [version.Resolver] finds the latest
// release tag of a module, collects the qualifying commits since, and
// derives the pending update: patch for fixes, minor for features, major
// for breaking changes past 1.0. A manifest that declares a version ahead
// of the release forces that version instead.
//
// ## Workspace
//
// [workspace] - Manifest loading (bumpline.toml, deno.json, package.json),
// member discovery by glob, and [workspace.ResolveAll], a bounded worker
// pool that resolves packages concurrently while keeping input order.
//
// [report] - Flattened, stable JSON report of a resolution run. Reports
// round-trip through files so a changelog can be rendered later from a
// saved run.
//
// [changelog] - Markdown changelog rendering, grouping each package's
// changes into breaking changes, features, and fixes.
//
// ## Infrastructure
//
// [observability] - Hook interfaces for resolution progress and git
// subprocess timing. No-op by default; consumers register implementations
// at startup (the CLI uses them for its progress spinner and --verbose
// traces).
//
// [buildinfo] - Build-time version information injected via ldflags.
//
// # Common Workflows
//
// Resolve a single package:
//
//	resolver := version.New(git.New("."), log.Default())
//	pkg, err := resolver.Resolve(ctx, version.Package{
//	    Dir:    "packages/parser",
//	    Module: "parser",
//	    Config: version.Config{Name: "@acme/parser", Version: "1.4.0"},
//	})
//
// Classify one commit message:
//
//	c := conventional.Classify(git.Commit{Subject: "feat(api)!: drop v1 routes"})
//	if c.IsBreaking() {
//	    fmt.Println(c.Type, c.Scopes, c.Breaking)
//	}
//
// Save a run and render the changelog later:
//
//	report.ExportJSON(rep, "release.json")
//	rep, _ = report.ImportJSON("release.json")
//	md := changelog.Render(rep)
//
// # Testing
//
// Run tests:
//
//	go test ./pkg/...              # All tests
//	go test ./pkg/version/...      # Specific package
//	go test -run TestResolve ./... # Specific scenarios
//
// [gitfmt]: https://pkg.go.dev/github.com/bumpline/bumpline/pkg/gitfmt
// [git]: https://pkg.go.dev/github.com/bumpline/bumpline/pkg/git
// [conventional]: https://pkg.go.dev/github.com/bumpline/bumpline/pkg/conventional
// [semver]: https://pkg.go.dev/github.com/bumpline/bumpline/pkg/semver
// [version]: https://pkg.go.dev/github.com/bumpline/bumpline/pkg/version
// [workspace]: https://pkg.go.dev/github.com/bumpline/bumpline/pkg/workspace
// [report]: https://pkg.go.dev/github.com/bumpline/bumpline/pkg/report
// [changelog]: https://pkg.go.dev/github.com/bumpline/bumpline/pkg/changelog
// [observability]: https://pkg.go.dev/github.com/bumpline/bumpline/pkg/observability
// [buildinfo]: https://pkg.go.dev/github.com/bumpline/bumpline/pkg/buildinfo
//
// [gitfmt.Descriptor]: https://pkg.go.dev/github.com/bumpline/bumpline/pkg/gitfmt#Descriptor
// [git.Client]: https://pkg.go.dev/github.com/bumpline/bumpline/pkg/git#Client
// [conventional.Classify]: https://pkg.go.dev/github.com/bumpline/bumpline/pkg/conventional#Classify
// [version.Resolver]: https://pkg.go.dev/github.com/bumpline/bumpline/pkg/version#Resolver
// [workspace.ResolveAll]: https://pkg.go.dev/github.com/bumpline/bumpline/pkg/workspace#ResolveAll
package pkg
