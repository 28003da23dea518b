package changelog

import (
	"strings"
	"testing"

	"github.com/bumpline/bumpline/pkg/report"
)

func TestRender(t *testing.T) {
	rep := report.Report{
		Root: ".",
		Packages: []report.Package{
			{
				Module:  "parser",
				Version: "2.0.0-pre.4+abc1234",
				State:   "calculated",
				Update: &report.Update{
					Type:    "major",
					Version: "2.0.0-pre.4+abc1234",
					Changes: []report.Change{
						{Short: "abc1234", Type: "feat", Scopes: []string{"parser"}, Breaking: true, Description: "drop legacy mode"},
						{Short: "def5678", Type: "feat", Scopes: []string{"parser", "lexer"}, Description: "add streaming"},
						{Short: "1234567", Type: "fix", Description: "handle empty input"},
						{Short: "89abcde", Type: "chore", Description: "tidy ci"},
					},
				},
			},
			{
				Module:  "web",
				Version: "0.3.0",
				State:   "current",
			},
			{
				Module:  "cli",
				Version: "1.1.0",
				State:   "forced",
				Update:  &report.Update{Type: "minor", Version: "1.1.0", Changes: []report.Change{}},
			},
		},
	}

	want := `# Changelog

## parser@2.0.0-pre.4+abc1234

### Breaking Changes

- **parser:** drop legacy mode (abc1234)

### Features

- **parser, lexer:** add streaming (def5678)

### Fixes

- handle empty input (1234567)

### Other

- tidy ci (89abcde)

## cli@1.1.0
`
	if got := Render(rep); got != want {
		t.Errorf("Render() =\n%s\nwant:\n%s", got, want)
	}
}

func TestRenderNothingToPublish(t *testing.T) {
	rep := report.Report{
		Packages: []report.Package{
			{Module: "web", Version: "0.3.0", State: "current"},
			{Module: "docs", State: "no-release"},
		},
	}
	if got := Render(rep); got != "# Changelog\n" {
		t.Errorf("Render() = %q, want bare title", got)
	}
}

func TestWrite(t *testing.T) {
	rep := report.Report{
		Packages: []report.Package{
			{
				Module: "mod",
				State:  "calculated",
				Update: &report.Update{
					Type:    "patch",
					Version: "1.0.1-pre.1+abcdef0",
					Changes: []report.Change{
						{Short: "abcdef0", Type: "fix", Scopes: []string{"mod"}, Description: "x"},
					},
				},
			},
		},
	}
	var sb strings.Builder
	if err := Write(&sb, rep); err != nil {
		t.Fatalf("Write() error = %v", err)
	}
	if !strings.Contains(sb.String(), "## mod@1.0.1-pre.1+abcdef0") {
		t.Errorf("Write() output missing section header:\n%s", sb.String())
	}
}
