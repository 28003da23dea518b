package version

import (
	"context"

	"github.com/bumpline/bumpline/pkg/conventional"
	"github.com/bumpline/bumpline/pkg/git"
	"github.com/bumpline/bumpline/pkg/semver"
)

// State labels the outcome of resolving one package. Exactly one state
// holds per package per resolution.
type State string

const (
	// StateNoRelease marks a package with no release information: the
	// manifest declares no version, or the package sits outside a git
	// repository.
	StateNoRelease State = "no-release"

	// StateCurrent marks a released package with no qualifying commits
	// since the release. Nothing to publish.
	StateCurrent State = "current"

	// StateForced marks a package whose manifest declares a version ahead
	// of the released one. The declared version wins verbatim.
	StateForced State = "forced"

	// StateCalculated marks a package whose next version was derived from
	// the qualifying commits since the release.
	StateCalculated State = "calculated"
)

// Config is the version-relevant slice of a package manifest.
type Config struct {
	// Name is the published package name, possibly scoped
	// ("@acme/parser").
	Name string `json:"name"`

	// Version is the declared version string, verbatim from the manifest.
	// Empty means the package is unversioned.
	Version string `json:"version,omitempty"`

	// Workspace lists member glob patterns. Only meaningful on the
	// workspace root manifest.
	Workspace []string `json:"workspace,omitempty"`
}

// Package is one workspace member as it moves through resolution. The
// zero fields below Config are filled in by [Resolver.Resolve].
type Package struct {
	// Dir is the package directory relative to the workspace root, "."
	// for the root itself.
	Dir string `json:"dir"`

	// Module is the short name used in release tags and commit scopes,
	// the last path segment of the package name.
	Module string `json:"module"`

	// Config is the declared manifest data.
	Config Config `json:"config"`

	// Version is the externally visible version after resolution: the
	// update's when one is pending, else the release's, else the raw
	// declared string.
	Version string `json:"version"`

	State   State    `json:"state"`
	Release *Release `json:"release,omitempty"`
	Update  *Update  `json:"update,omitempty"`
}

// Release is the latest published version found for a module.
type Release struct {
	Version semver.Version `json:"version"`

	// Tag is the release tag backing the version. Nil when no tag matched
	// and 0.0.0 was synthesized.
	Tag *git.Tag `json:"tag,omitempty"`
}

// Update is a pending version change for a package.
type Update struct {
	// Type is the bump between the released and the next version. For a
	// forced update that only changes prerelease or build metadata it is
	// [semver.None].
	Type semver.Bump `json:"type"`

	// Version is the next version to publish.
	Version semver.Version `json:"version"`

	// Changelog holds the qualifying commits, newest first. For a forced
	// update the list is informational and does not drive the version.
	Changelog []conventional.Commit `json:"changelog"`
}

// History is the read-only repository view the resolver consumes. It is
// satisfied by [*git.Client].
type History interface {
	Head(ctx context.Context) (git.Commit, error)
	Log(ctx context.Context, opts git.LogOptions) ([]git.Commit, error)
	Tags(ctx context.Context, opts git.TagOptions) ([]git.Tag, error)
}

var _ History = (*git.Client)(nil)
