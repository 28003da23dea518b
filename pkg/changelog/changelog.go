// Package changelog renders resolution reports as a markdown changelog.
package changelog

import (
	"fmt"
	"io"
	"strings"

	"github.com/bumpline/bumpline/pkg/report"
)

// Render returns the markdown changelog for rep: one section per package
// with a pending update, titled "module@version". Packages that are
// current, unversioned, or failed are left out. Within a section the
// changes are grouped into breaking changes, features, fixes, and the
// rest, keeping the report's newest-first order.
func Render(rep report.Report) string {
	var b strings.Builder
	b.WriteString("# Changelog\n")
	for _, pkg := range rep.Packages {
		if pkg.Update == nil {
			continue
		}
		fmt.Fprintf(&b, "\n## %s@%s\n", pkg.Module, pkg.Update.Version)
		for _, g := range groupChanges(pkg.Update.Changes) {
			if len(g.entries) == 0 {
				continue
			}
			fmt.Fprintf(&b, "\n### %s\n\n", g.title)
			for _, e := range g.entries {
				b.WriteString("- " + e + "\n")
			}
		}
	}
	return b.String()
}

// Write renders rep and writes the markdown to w.
func Write(w io.Writer, rep report.Report) error {
	_, err := io.WriteString(w, Render(rep))
	return err
}

type group struct {
	title   string
	entries []string
}

// groupChanges buckets changes by kind. A breaking change lands in the
// breaking bucket only, regardless of its commit type.
func groupChanges(changes []report.Change) []group {
	groups := []group{
		{title: "Breaking Changes"},
		{title: "Features"},
		{title: "Fixes"},
		{title: "Other"},
	}
	for _, c := range changes {
		i := 3
		switch {
		case c.Breaking:
			i = 0
		case c.Type == "feat":
			i = 1
		case c.Type == "fix":
			i = 2
		}
		groups[i].entries = append(groups[i].entries, entry(c))
	}
	return groups
}

// entry formats one change as a list item: the scope-prefixed description
// followed by the short hash.
func entry(c report.Change) string {
	var b strings.Builder
	if len(c.Scopes) > 0 {
		fmt.Fprintf(&b, "**%s:** ", strings.Join(c.Scopes, ", "))
	}
	b.WriteString(c.Description)
	if c.Short != "" {
		fmt.Fprintf(&b, " (%s)", c.Short)
	}
	return b.String()
}
