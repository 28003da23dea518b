package conventional

import (
	"reflect"
	"testing"

	"github.com/bumpline/bumpline/pkg/git"
)

func TestClassifySummary(t *testing.T) {
	tests := []struct {
		summary  string
		typ      string
		scopes   []string
		desc     string
		breaking bool
	}{
		{"fix(mod): correct handling", "fix", []string{"mod"}, "correct handling", false},
		{"feat(mod)!: new api", "feat", []string{"mod"}, "new api", true},
		{"Feat(Mod, CLI): casefold", "feat", []string{"mod", "cli"}, "casefold", false},
		{"fix(`utils`): keep punctuation", "fix", []string{"`utils`"}, "keep punctuation", false},
		{"refactor!: drop everything", "refactor", []string{}, "drop everything", true},
		{"fix(a,,b , ): drop empty scopes", "fix", []string{"a", "b"}, "drop empty scopes", false},
		{"fix:no space after colon", "fix", []string{}, "no space after colon", false},
		{"plain summary without prefix", "", []string{}, "plain summary without prefix", false},
		{"fix:", "", []string{}, "fix:", false},
		{"fix(): empty scope list", "fix", []string{}, "empty scope list", false},
		{"  padded description  ", "", []string{}, "padded description", false},
		{"", "", []string{}, "", false},
		{"not(conventional at all", "", []string{}, "not(conventional at all", false},
	}

	for _, tt := range tests {
		t.Run(tt.summary, func(t *testing.T) {
			got := Classify(git.Commit{Summary: tt.summary})
			if got.Type != tt.typ {
				t.Errorf("Type = %q, want %q", got.Type, tt.typ)
			}
			if !reflect.DeepEqual(got.Scopes, tt.scopes) {
				t.Errorf("Scopes = %#v, want %#v", got.Scopes, tt.scopes)
			}
			if got.Scopes == nil {
				t.Error("Scopes must never be nil")
			}
			if got.Description != tt.desc {
				t.Errorf("Description = %q, want %q", got.Description, tt.desc)
			}
			if got.IsBreaking() != tt.breaking {
				t.Errorf("IsBreaking = %v, want %v", got.IsBreaking(), tt.breaking)
			}
		})
	}
}

func TestClassifyFooterBlock(t *testing.T) {
	commit := git.Commit{
		Summary: "feat(core): wide change",
		Body:    "Some detail.\n\nBREAKING CHANGE: config format changed\nFixes #123",
	}
	got := Classify(commit)

	want := []Footer{
		{Key: "BREAKING-CHANGE", Value: "config format changed"},
		{Key: "fixes", Value: "123"},
	}
	if !reflect.DeepEqual(got.Footers, want) {
		t.Errorf("Footers = %+v, want %+v", got.Footers, want)
	}
	if got.Breaking != "config format changed" {
		t.Errorf("Breaking = %q, want the footer text", got.Breaking)
	}
}

func TestClassifyFooterMerge(t *testing.T) {
	commit := git.Commit{
		Summary: "fix: merge footers",
		Body:    "Detail.\n\nFixes: #2\nCo-authored-by: Grace",
		Trailers: []git.Trailer{
			{Key: "Reviewed-by", Value: "Ada"},
			{Key: "Fixes", Value: "#1"},
		},
	}
	got := Classify(commit)

	want := []Footer{
		{Key: "Reviewed-by", Value: "Ada"},
		{Key: "Fixes", Value: "#2"},
		{Key: "Co-authored-by", Value: "Grace"},
	}
	if !reflect.DeepEqual(got.Footers, want) {
		t.Errorf("Footers = %+v, want %+v", got.Footers, want)
	}
}

func TestClassifyRejectsNonFooterParagraph(t *testing.T) {
	commit := git.Commit{
		Summary:  "fix: keep trailers only",
		Body:     "Fixes: #9\n\nThis closing paragraph is prose, not footers.",
		Trailers: []git.Trailer{{Key: "Reviewed-by", Value: "Ada"}},
	}
	got := Classify(commit)

	want := []Footer{{Key: "Reviewed-by", Value: "Ada"}}
	if !reflect.DeepEqual(got.Footers, want) {
		t.Errorf("Footers = %+v, want trailers only %+v", got.Footers, want)
	}
}

func TestClassifyBreaking(t *testing.T) {
	tests := []struct {
		name   string
		commit git.Commit
		want   string
	}{
		{
			"bang only",
			git.Commit{Summary: "feat!: new engine"},
			"new engine",
		},
		{
			"footer beats bang",
			git.Commit{Summary: "feat!: new engine", Body: "BREAKING-CHANGE: engine rewritten"},
			"engine rewritten",
		},
		{
			"footer without bang",
			git.Commit{Summary: "feat: quiet change", Body: "BREAKING CHANGE: not so quiet"},
			"not so quiet",
		},
		{
			"empty footer falls back to description",
			git.Commit{Summary: "feat: fallback", Body: "BREAKING-CHANGE: "},
			"fallback",
		},
		{
			"trailer form",
			git.Commit{Summary: "feat: via trailer", Trailers: []git.Trailer{{Key: "BREAKING-CHANGE", Value: "from trailer"}}},
			"from trailer",
		},
		{
			"hash form is not the breaking key",
			git.Commit{Summary: "feat: nope", Body: "BREAKING CHANGE #5"},
			"",
		},
		{
			"not breaking",
			git.Commit{Summary: "fix: routine"},
			"",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Classify(tt.commit)
			if got.Breaking != tt.want {
				t.Errorf("Breaking = %q, want %q", got.Breaking, tt.want)
			}
		})
	}
}

func TestHasScope(t *testing.T) {
	scoped := Classify(git.Commit{Summary: "fix(core): x"})
	if !scoped.HasScope("core") || scoped.HasScope("cli") {
		t.Errorf("HasScope core=%v cli=%v", scoped.HasScope("core"), scoped.HasScope("cli"))
	}

	wildcard := Classify(git.Commit{Summary: "chore(*): bump all"})
	if !wildcard.HasScope("anything") {
		t.Error("wildcard scope should match every module")
	}

	unscoped := Classify(git.Commit{Summary: "fix: no scope"})
	if unscoped.HasScope("core") {
		t.Error("unscoped commit should not match a module")
	}
}

func TestClassifyDeterministic(t *testing.T) {
	commit := git.Commit{
		Summary:  "feat(core,cli)!: everything at once",
		Body:     "Detail.\n\nBREAKING CHANGE: wire format\nRefs #7",
		Trailers: []git.Trailer{{Key: "Reviewed-by", Value: "Ada"}},
	}
	a, b := Classify(commit), Classify(commit)
	if !reflect.DeepEqual(a, b) {
		t.Errorf("classification is not deterministic:\n%+v\n%+v", a, b)
	}
}
