package report

import (
	"bytes"
	"errors"
	"path/filepath"
	"reflect"
	"strings"
	"testing"

	"github.com/bumpline/bumpline/pkg/conventional"
	"github.com/bumpline/bumpline/pkg/git"
	"github.com/bumpline/bumpline/pkg/semver"
	"github.com/bumpline/bumpline/pkg/version"
	"github.com/bumpline/bumpline/pkg/workspace"
)

func sampleResults() []workspace.Result {
	fix := conventional.Classify(git.Commit{
		Hash:    strings.Repeat("9f", 20),
		Short:   "9f86d08",
		Summary: "fix(parser): handle empty input",
	})
	return []workspace.Result{
		{
			Package: version.Package{
				Dir:     "pkgs/parser",
				Module:  "parser",
				Config:  version.Config{Name: "@acme/parser", Version: "1.2.3"},
				Version: "1.2.4-pre.1+9f86d08",
				State:   version.StateCalculated,
				Release: &version.Release{
					Version: semver.MustParse("1.2.3"),
					Tag:     &git.Tag{Name: "parser@1.2.3", Commit: strings.Repeat("ab", 20)},
				},
				Update: &version.Update{
					Type:      semver.Patch,
					Version:   semver.MustParse("1.2.4-pre.1+9f86d08"),
					Changelog: []conventional.Commit{fix},
				},
			},
		},
		{
			Package: version.Package{
				Dir:    "pkgs/web",
				Module: "web",
				Config: version.Config{Name: "web"},
				State:  version.StateNoRelease,
			},
		},
		{
			Package: version.Package{
				Dir:     "pkgs/bad",
				Module:  "bad",
				Config:  version.Config{Name: "bad", Version: "1.0.0"},
				Version: "1.0.0",
				State:   version.StateNoRelease,
			},
			Err: errors.New("git exploded"),
		},
	}
}

func TestFromResults(t *testing.T) {
	rep := FromResults(".", sampleResults())

	if rep.Root != "." {
		t.Errorf("Root = %q, want %q", rep.Root, ".")
	}
	if rep.GeneratedAt.IsZero() {
		t.Error("GeneratedAt is zero")
	}
	if len(rep.Packages) != 3 {
		t.Fatalf("Packages = %d, want 3", len(rep.Packages))
	}

	parser := rep.Packages[0]
	if parser.State != "calculated" || parser.Version != "1.2.4-pre.1+9f86d08" {
		t.Errorf("parser = %+v, want calculated 1.2.4-pre.1+9f86d08", parser)
	}
	if parser.Release == nil || parser.Release.Tag != "parser@1.2.3" {
		t.Errorf("parser.Release = %+v, want tag parser@1.2.3", parser.Release)
	}
	if parser.Update == nil || parser.Update.Type != "patch" || len(parser.Update.Changes) != 1 {
		t.Fatalf("parser.Update = %+v, want one patch change", parser.Update)
	}
	change := parser.Update.Changes[0]
	want := Change{
		Hash:        strings.Repeat("9f", 20),
		Short:       "9f86d08",
		Type:        "fix",
		Scopes:      []string{"parser"},
		Breaking:    false,
		Description: "handle empty input",
	}
	if !reflect.DeepEqual(change, want) {
		t.Errorf("change = %+v, want %+v", change, want)
	}

	web := rep.Packages[1]
	if web.Error != "" || web.Release != nil || web.Update != nil {
		t.Errorf("web = %+v, want bare no-release entry", web)
	}

	bad := rep.Packages[2]
	if bad.Error != "git exploded" || bad.Release != nil || bad.Update != nil {
		t.Errorf("bad = %+v, want the error recorded and nothing else", bad)
	}
}

func TestJSONRoundTrip(t *testing.T) {
	rep := FromResults("workspace", sampleResults())

	var buf bytes.Buffer
	if err := WriteJSON(rep, &buf); err != nil {
		t.Fatalf("WriteJSON() error = %v", err)
	}
	got, err := ReadJSON(&buf)
	if err != nil {
		t.Fatalf("ReadJSON() error = %v", err)
	}

	if got.Root != rep.Root {
		t.Errorf("Root = %q, want %q", got.Root, rep.Root)
	}
	if !got.GeneratedAt.Equal(rep.GeneratedAt) {
		t.Errorf("GeneratedAt = %v, want %v", got.GeneratedAt, rep.GeneratedAt)
	}
	if !reflect.DeepEqual(got.Packages, rep.Packages) {
		t.Errorf("Packages differ after round trip:\n%+v\n%+v", got.Packages, rep.Packages)
	}
}

func TestExportImportJSON(t *testing.T) {
	rep := FromResults("workspace", sampleResults())
	path := filepath.Join(t.TempDir(), "report.json")

	if err := ExportJSON(rep, path); err != nil {
		t.Fatalf("ExportJSON() error = %v", err)
	}
	got, err := ImportJSON(path)
	if err != nil {
		t.Fatalf("ImportJSON() error = %v", err)
	}
	if !reflect.DeepEqual(got.Packages, rep.Packages) {
		t.Errorf("Packages differ after file round trip:\n%+v\n%+v", got.Packages, rep.Packages)
	}
}

func TestReadJSONMalformed(t *testing.T) {
	_, err := ReadJSON(strings.NewReader("{"))
	if err == nil {
		t.Error("ReadJSON() succeeded on truncated input")
	}
}
