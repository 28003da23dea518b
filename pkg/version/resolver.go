package version

import (
	"context"
	"fmt"
	"strings"

	"github.com/charmbracelet/log"

	"github.com/bumpline/bumpline/pkg/conventional"
	"github.com/bumpline/bumpline/pkg/git"
	"github.com/bumpline/bumpline/pkg/semver"
)

// Resolver computes releases and pending updates for packages from their
// git history. It holds no state between calls; a single Resolver may be
// shared by concurrent resolutions.
type Resolver struct {
	History History
	Logger  *log.Logger
}

// New creates a resolver reading from h. A nil logger falls back to the
// default logger.
func New(h History, logger *log.Logger) *Resolver {
	if logger == nil {
		logger = log.Default()
	}
	return &Resolver{History: h, Logger: logger}
}

// Resolve fills in the release, pending update, state, and effective
// version of pkg. The input is taken by value and returned resolved; the
// caller's copy is never mutated.
//
// A package outside a git repository resolves to [StateNoRelease] rather
// than an error. Malformed version strings, declared downgrades, and any
// other git failure are fatal.
func (r *Resolver) Resolve(ctx context.Context, pkg Package) (Package, error) {
	pkg.State = StateNoRelease
	pkg.Release, pkg.Update = nil, nil
	pkg.Version = pkg.Config.Version

	if pkg.Config.Version == "" {
		r.Logger.Debug("package is unversioned", "module", pkg.Module)
		return pkg, nil
	}

	resolved, err := r.resolve(ctx, pkg)
	if err != nil {
		if git.IsNotRepository(err) {
			r.Logger.Debug("not a git repository, no release information", "module", pkg.Module)
			return pkg, nil
		}
		return pkg, err
	}
	return resolved, nil
}

func (r *Resolver) resolve(ctx context.Context, pkg Package) (Package, error) {
	declared, err := semver.Parse(pkg.Config.Version)
	if err != nil {
		return pkg, &Error{
			Module: pkg.Module,
			Msg:    fmt.Sprintf("manifest declares %q: %v", pkg.Config.Version, err),
			Err:    err,
		}
	}

	release, err := r.resolveRelease(ctx, pkg.Module)
	if err != nil {
		return pkg, err
	}
	pkg.State = StateCurrent
	pkg.Release = release
	pkg.Version = release.Version.String()

	changelog, err := r.qualifyingCommits(ctx, pkg, release)
	if err != nil {
		return pkg, err
	}

	switch cmp := semver.Compare(declared, release.Version); {
	case cmp < 0:
		return pkg, &Error{
			Module: pkg.Module,
			Msg: fmt.Sprintf("declared version %s is below released version %s",
				declared, release.Version),
		}
	case cmp > 0:
		pkg.State = StateForced
		pkg.Update = &Update{
			Type:      semver.Diff(release.Version, declared),
			Version:   declared,
			Changelog: changelog,
		}
	default:
		if len(changelog) > 0 {
			pkg.State = StateCalculated
			pkg.Update = calculatedUpdate(release.Version, changelog)
		}
	}

	if pkg.Update != nil {
		pkg.Version = pkg.Update.Version.String()
	}
	r.Logger.Debug("package resolved",
		"module", pkg.Module,
		"state", pkg.State,
		"version", pkg.Version)
	return pkg, nil
}

// resolveRelease finds the latest published version of module. Tags named
// "<module>@<version>" are ranked: a tag pointing at HEAD wins, then the
// highest version not yet merged into HEAD, then the highest version
// overall. Without any matching tag the release is a synthetic 0.0.0.
func (r *Resolver) resolveRelease(ctx context.Context, module string) (*Release, error) {
	pattern := module + "@*"
	tags, err := r.History.Tags(ctx, git.TagOptions{Pattern: pattern})
	if err != nil {
		return nil, err
	}
	if len(tags) == 0 {
		r.Logger.Debug("no release tag found", "module", module)
		return &Release{}, nil
	}

	all := make([]taggedRelease, 0, len(tags))
	for _, t := range tags {
		v, err := semver.Parse(strings.TrimPrefix(t.Name, module+"@"))
		if err != nil {
			return nil, &Error{
				Module: module,
				Msg:    fmt.Sprintf("release tag %q: %v", t.Name, err),
				Err:    err,
			}
		}
		all = append(all, taggedRelease{tag: t, version: v})
	}

	head, err := r.History.Head(ctx)
	if err != nil {
		return nil, err
	}
	var atHead []taggedRelease
	for _, c := range all {
		if c.tag.Commit == head.Hash {
			atHead = append(atHead, c)
		}
	}
	if rel := highestRelease(atHead); rel != nil {
		r.Logger.Debug("release tag points at HEAD", "module", module, "tag", rel.Tag.Name)
		return rel, nil
	}

	unmerged, err := r.History.Tags(ctx, git.TagOptions{Pattern: pattern, NoMerged: "HEAD"})
	if err != nil {
		return nil, err
	}
	names := make(map[string]bool, len(unmerged))
	for _, t := range unmerged {
		names[t.Name] = true
	}
	var ahead []taggedRelease
	for _, c := range all {
		if names[c.tag.Name] {
			ahead = append(ahead, c)
		}
	}
	if rel := highestRelease(ahead); rel != nil {
		r.Logger.Debug("release tag not merged into HEAD", "module", module, "tag", rel.Tag.Name)
		return rel, nil
	}

	return highestRelease(all), nil
}

// qualifyingCommits returns the classified commits that count toward the
// next version of pkg, newest first: everything after the release tag, or
// the package path's full log when the release is synthetic, kept only
// when scoped to the module (or the wildcard scope).
func (r *Resolver) qualifyingCommits(ctx context.Context, pkg Package, release *Release) ([]conventional.Commit, error) {
	opts := git.LogOptions{Paths: []string{pkg.Dir}}
	if release.Tag != nil {
		opts = git.LogOptions{Range: release.Tag.Name + "..HEAD"}
	}
	commits, err := r.History.Log(ctx, opts)
	if err != nil {
		return nil, err
	}

	qualifying := make([]conventional.Commit, 0, len(commits))
	for _, c := range commits {
		cc := conventional.Classify(c)
		if cc.HasScope(pkg.Module) {
			qualifying = append(qualifying, cc)
		}
	}
	r.Logger.Debug("qualifying commits",
		"module", pkg.Module,
		"total", len(commits),
		"qualifying", len(qualifying))
	return qualifying, nil
}

// calculatedUpdate derives the next version from the qualifying commits.
// Breaking changes bump the major component once the module is past 1.0;
// before that they are absorbed as minor bumps. The candidate carries a
// "pre.<count>" prerelease and the newest qualifying commit's short hash
// as build metadata.
func calculatedUpdate(released semver.Version, changelog []conventional.Commit) *Update {
	var breaking, feature bool
	for _, c := range changelog {
		breaking = breaking || c.IsBreaking()
		feature = feature || c.Type == "feat"
	}

	bump := semver.Patch
	switch {
	case breaking && released.Major > 0:
		bump = semver.Major
	case breaking || feature:
		bump = semver.Minor
	}

	next := released.Bump(bump)
	next.Prerelease = fmt.Sprintf("pre.%d", len(changelog))
	next.Build = changelog[0].Short
	return &Update{Type: bump, Version: next, Changelog: changelog}
}

type taggedRelease struct {
	tag     git.Tag
	version semver.Version
}

// highestRelease picks the candidate with the highest version, nil when
// there are none. Ties keep the earlier tag, so ranking stays stable
// across runs.
func highestRelease(candidates []taggedRelease) *Release {
	if len(candidates) == 0 {
		return nil
	}
	best := candidates[0]
	for _, c := range candidates[1:] {
		if semver.Compare(c.version, best.version) > 0 {
			best = c
		}
	}
	return &Release{Version: best.version, Tag: &best.tag}
}
