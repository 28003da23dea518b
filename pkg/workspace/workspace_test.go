package workspace

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"reflect"
	"sync"
	"testing"
	"time"

	"github.com/bumpline/bumpline/pkg/git"
	"github.com/bumpline/bumpline/pkg/observability"
	"github.com/bumpline/bumpline/pkg/version"
)

func writeFile(t *testing.T, path, content string) {
	t.Helper()
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatal(err)
	}
}

func TestLoadFormats(t *testing.T) {
	tests := []struct {
		name    string
		file    string
		content string
		want    version.Config
	}{
		{
			name:    "toml manifest",
			file:    "bumpline.toml",
			content: "name = \"@acme/root\"\nversion = \"1.0.0\"\nworkspace = [\"pkgs/*\"]\n",
			want:    version.Config{Name: "@acme/root", Version: "1.0.0", Workspace: []string{"pkgs/*"}},
		},
		{
			name:    "deno manifest",
			file:    "deno.json",
			content: `{"name":"parser","version":"0.1.0","workspace":["libs/*"]}`,
			want:    version.Config{Name: "parser", Version: "0.1.0", Workspace: []string{"libs/*"}},
		},
		{
			name:    "npm manifest",
			file:    "package.json",
			content: `{"name":"@acme/web","version":"2.0.0"}`,
			want:    version.Config{Name: "@acme/web", Version: "2.0.0"},
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			dir := t.TempDir()
			writeFile(t, filepath.Join(dir, tt.file), tt.content)
			got, err := Load(dir)
			if err != nil {
				t.Fatalf("Load() error = %v", err)
			}
			if !reflect.DeepEqual(got.Config, tt.want) {
				t.Errorf("Load() config = %+v, want %+v", got.Config, tt.want)
			}
			if got.Path != filepath.Join(dir, tt.file) {
				t.Errorf("Load() path = %q, want %q", got.Path, filepath.Join(dir, tt.file))
			}
		})
	}
}

func TestLoadProbeOrder(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, filepath.Join(dir, "bumpline.toml"), "name = \"from-toml\"\n")
	writeFile(t, filepath.Join(dir, "package.json"), `{"name":"from-json"}`)
	got, err := Load(dir)
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}
	if got.Config.Name != "from-toml" {
		t.Errorf("Load() picked %q, want bumpline.toml to win the probe", got.Config.Name)
	}
}

func TestLoadMissing(t *testing.T) {
	_, err := Load(t.TempDir())
	if !errors.Is(err, ErrNoManifest) {
		t.Errorf("Load() error = %v, want ErrNoManifest", err)
	}
}

func TestLoadMalformed(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, filepath.Join(dir, "bumpline.toml"), "name = [\n")
	_, err := Load(dir)
	if err == nil || errors.Is(err, ErrNoManifest) {
		t.Errorf("Load() error = %v, want a parse error", err)
	}
}

func TestDiscover(t *testing.T) {
	root := t.TempDir()
	writeFile(t, filepath.Join(root, "bumpline.toml"),
		"name = \"@acme/root\"\nversion = \"1.0.0\"\nworkspace = [\"pkgs/*\"]\n")
	writeFile(t, filepath.Join(root, "pkgs", "parser", "deno.json"),
		`{"name":"@acme/parser","version":"1.2.3"}`)
	writeFile(t, filepath.Join(root, "pkgs", "web", "package.json"),
		`{"name":"web"}`)
	writeFile(t, filepath.Join(root, "pkgs", "notes.txt"), "not a package")
	if err := os.MkdirAll(filepath.Join(root, "pkgs", "empty"), 0o755); err != nil {
		t.Fatal(err)
	}

	got, err := Discover(root)
	if err != nil {
		t.Fatalf("Discover() error = %v", err)
	}

	type entry struct{ dir, module, version string }
	var entries []entry
	for _, p := range got {
		entries = append(entries, entry{p.Dir, p.Module, p.Config.Version})
	}
	want := []entry{
		{".", "root", "1.0.0"},
		{"pkgs/parser", "parser", "1.2.3"},
		{"pkgs/web", "web", ""},
	}
	if !reflect.DeepEqual(entries, want) {
		t.Errorf("Discover() = %+v, want %+v", entries, want)
	}
}

func TestDiscoverUnnamedRoot(t *testing.T) {
	root := t.TempDir()
	writeFile(t, filepath.Join(root, "bumpline.toml"), "workspace = [\"pkgs/*\"]\n")
	writeFile(t, filepath.Join(root, "pkgs", "a", "package.json"), `{"name":"a"}`)

	got, err := Discover(root)
	if err != nil {
		t.Fatalf("Discover() error = %v", err)
	}
	if len(got) != 1 || got[0].Dir != "pkgs/a" {
		t.Errorf("Discover() = %+v, want only the member package", got)
	}
}

func TestDiscoverWithoutManifest(t *testing.T) {
	_, err := Discover(t.TempDir())
	if !errors.Is(err, ErrNoManifest) {
		t.Errorf("Discover() error = %v, want ErrNoManifest", err)
	}
}

type stubHistory struct{ err error }

func (s stubHistory) Head(context.Context) (git.Commit, error) {
	return git.Commit{}, s.err
}

func (s stubHistory) Log(context.Context, git.LogOptions) ([]git.Commit, error) {
	return nil, s.err
}

func (s stubHistory) Tags(context.Context, git.TagOptions) ([]git.Tag, error) {
	return nil, s.err
}

func TestResolveAllIsolatesFailures(t *testing.T) {
	runErr := &git.RunError{Name: "git", Args: []string{"tag"}, ExitCode: 1, Stderr: "boom"}
	r := version.New(stubHistory{err: runErr}, nil)
	pkgs := []version.Package{
		{Module: "a", Config: version.Config{Name: "a"}},
		{Module: "b", Config: version.Config{Name: "b", Version: "1.0.0"}},
		{Module: "c", Config: version.Config{Name: "c"}},
	}

	results := ResolveAll(context.Background(), r, pkgs, 2)
	if len(results) != len(pkgs) {
		t.Fatalf("ResolveAll() returned %d results, want %d", len(results), len(pkgs))
	}
	for i, res := range results {
		if res.Package.Module != pkgs[i].Module {
			t.Errorf("results[%d].Module = %q, want input order preserved", i, res.Package.Module)
		}
	}
	if results[0].Err != nil || results[2].Err != nil {
		t.Errorf("unversioned packages failed: %v, %v", results[0].Err, results[2].Err)
	}
	if !errors.Is(results[1].Err, runErr) {
		t.Errorf("results[1].Err = %v, want the git failure recorded", results[1].Err)
	}
}

func TestResolveAllOrder(t *testing.T) {
	r := version.New(stubHistory{}, nil)
	var pkgs []version.Package
	for i := 0; i < 16; i++ {
		pkgs = append(pkgs, version.Package{
			Module: fmt.Sprintf("mod%02d", i),
			Config: version.Config{Name: fmt.Sprintf("mod%02d", i)},
		})
	}

	for _, workers := range []int{0, 1, 4, 32} {
		results := ResolveAll(context.Background(), r, pkgs, workers)
		for i, res := range results {
			if res.Package.Module != pkgs[i].Module {
				t.Fatalf("workers=%d: results[%d].Module = %q, want %q",
					workers, i, res.Package.Module, pkgs[i].Module)
			}
		}
	}
}

func TestResolveAllEmpty(t *testing.T) {
	results := ResolveAll(context.Background(), version.New(stubHistory{}, nil), nil, 0)
	if len(results) != 0 {
		t.Errorf("ResolveAll() = %v, want no results", results)
	}
}

func TestResolveAllCancelled(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	pkgs := []version.Package{
		{Module: "a", Config: version.Config{Name: "a", Version: "1.0.0"}},
		{Module: "b", Config: version.Config{Name: "b", Version: "1.0.0"}},
	}
	results := ResolveAll(ctx, version.New(stubHistory{}, nil), pkgs, 1)
	for i, res := range results {
		if !errors.Is(res.Err, context.Canceled) {
			t.Errorf("results[%d].Err = %v, want context.Canceled", i, res.Err)
		}
	}
}

type countingHooks struct {
	mu        sync.Mutex
	batches   []int
	started   int
	completed int
	states    map[string]int
	failed    int
}

func (h *countingHooks) OnResolveStart(_ context.Context, packages int) {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.batches = append(h.batches, packages)
}

func (h *countingHooks) OnPackageStart(context.Context, string) {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.started++
}

func (h *countingHooks) OnPackageComplete(_ context.Context, _, state string, _ time.Duration, _ error) {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.completed++
	h.states[state]++
}

func (h *countingHooks) OnResolveComplete(_ context.Context, _, failed int, _ time.Duration) {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.failed = failed
}

func TestResolveAllEmitsHooks(t *testing.T) {
	hooks := &countingHooks{states: map[string]int{}}
	observability.SetResolutionHooks(hooks)
	defer observability.Reset()

	runErr := &git.RunError{Name: "git", Args: []string{"tag"}, ExitCode: 1, Stderr: "boom"}
	pkgs := []version.Package{
		{Module: "a", Config: version.Config{Name: "a"}},
		{Module: "b", Config: version.Config{Name: "b", Version: "1.0.0"}},
	}
	ResolveAll(context.Background(), version.New(stubHistory{err: runErr}, nil), pkgs, 2)

	if len(hooks.batches) != 1 || hooks.batches[0] != len(pkgs) {
		t.Errorf("OnResolveStart batches = %v, want one batch of %d", hooks.batches, len(pkgs))
	}
	if hooks.started != len(pkgs) || hooks.completed != len(pkgs) {
		t.Errorf("started/completed = %d/%d, want %d/%d", hooks.started, hooks.completed, len(pkgs), len(pkgs))
	}
	if hooks.failed != 1 {
		t.Errorf("OnResolveComplete failed = %d, want 1 (git failure on b)", hooks.failed)
	}
	// The unversioned package resolves to no-release; the failed one never
	// left its initial state, so both report it.
	if hooks.states[string(version.StateNoRelease)] != 2 {
		t.Errorf("states = %v, want %s twice", hooks.states, version.StateNoRelease)
	}
}
