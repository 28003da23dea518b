package report

import (
	"time"

	"github.com/bumpline/bumpline/pkg/workspace"
)

// Report is the machine-readable outcome of resolving one workspace.
type Report struct {
	// Root is the workspace directory the resolution ran against.
	Root string `json:"root"`
	// GeneratedAt is the UTC time the report was built.
	GeneratedAt time.Time `json:"generated_at"`
	Packages    []Package `json:"packages"`
}

// Package flattens one resolved package. Exactly one of Error or the
// release/update fields describes the outcome.
type Package struct {
	Dir     string `json:"dir"`
	Module  string `json:"module"`
	Name    string `json:"name"`
	Version string `json:"version"`
	State   string `json:"state"`
	// Error carries the resolution failure, empty on success.
	Error   string   `json:"error,omitempty"`
	Release *Release `json:"release,omitempty"`
	Update  *Update  `json:"update,omitempty"`
}

// Release is the released version a package was resolved against.
type Release struct {
	Version string `json:"version"`
	// Tag is the release tag name, empty for a synthetic 0.0.0 release.
	Tag string `json:"tag,omitempty"`
}

// Update is a pending version change.
type Update struct {
	Type    string   `json:"type"`
	Version string   `json:"version"`
	Changes []Change `json:"changes"`
}

// Change is one qualifying commit, newest first within an update.
type Change struct {
	Hash        string   `json:"hash"`
	Short       string   `json:"short"`
	Type        string   `json:"type,omitempty"`
	Scopes      []string `json:"scopes,omitempty"`
	Breaking    bool     `json:"breaking"`
	Description string   `json:"description"`
}

// FromResults flattens a batch of workspace results into a report rooted
// at root. Failed packages keep their directory and module with the error
// message recorded.
func FromResults(root string, results []workspace.Result) Report {
	rep := Report{
		Root:        root,
		GeneratedAt: time.Now().UTC(),
		Packages:    make([]Package, 0, len(results)),
	}
	for _, res := range results {
		rep.Packages = append(rep.Packages, fromResult(res))
	}
	return rep
}

func fromResult(res workspace.Result) Package {
	pkg := res.Package
	out := Package{
		Dir:     pkg.Dir,
		Module:  pkg.Module,
		Name:    pkg.Config.Name,
		Version: pkg.Version,
		State:   string(pkg.State),
	}
	if res.Err != nil {
		out.Error = res.Err.Error()
		return out
	}
	if pkg.Release != nil {
		rel := &Release{Version: pkg.Release.Version.String()}
		if pkg.Release.Tag != nil {
			rel.Tag = pkg.Release.Tag.Name
		}
		out.Release = rel
	}
	if pkg.Update != nil {
		up := &Update{
			Type:    string(pkg.Update.Type),
			Version: pkg.Update.Version.String(),
			Changes: make([]Change, 0, len(pkg.Update.Changelog)),
		}
		for _, c := range pkg.Update.Changelog {
			up.Changes = append(up.Changes, Change{
				Hash:        c.Hash,
				Short:       c.Short,
				Type:        c.Type,
				Scopes:      c.Scopes,
				Breaking:    c.IsBreaking(),
				Description: c.Description,
			})
		}
		out.Update = up
	}
	return out
}
