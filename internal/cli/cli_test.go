package cli

import (
	"bytes"
	"errors"
	"io"
	"strings"
	"testing"

	"github.com/bumpline/bumpline/pkg/workspace"
)

func newTestCLI() *CLI {
	return New(io.Discard, LogInfo)
}

func TestRootCommandSubcommands(t *testing.T) {
	root := newTestCLI().RootCommand()

	want := []string{"resolve", "changelog", "packages", "completion"}
	for _, name := range want {
		t.Run(name, func(t *testing.T) {
			for _, cmd := range root.Commands() {
				if cmd.Name() == name {
					return
				}
			}
			t.Errorf("root command is missing subcommand %q", name)
		})
	}
}

func TestRootCommandVersion(t *testing.T) {
	root := newTestCLI().RootCommand()

	var out bytes.Buffer
	root.SetOut(&out)
	root.SetErr(&out)
	root.SetArgs([]string{"--version"})

	if err := root.Execute(); err != nil {
		t.Fatalf("--version failed: %v", err)
	}
	if !strings.Contains(out.String(), appName) {
		t.Errorf("version output %q should mention %q", out.String(), appName)
	}
}

func TestRootCommandPersistentFlags(t *testing.T) {
	root := newTestCLI().RootCommand()

	for _, name := range []string{"verbose", "quiet"} {
		if root.PersistentFlags().Lookup(name) == nil {
			t.Errorf("missing persistent flag --%s", name)
		}
	}
}

func TestResolveWithoutManifest(t *testing.T) {
	root := newTestCLI().RootCommand()

	var out bytes.Buffer
	root.SetOut(&out)
	root.SetErr(&out)
	root.SetArgs([]string{"resolve", t.TempDir()})

	err := root.Execute()
	if err == nil {
		t.Fatal("resolving a directory without a manifest should fail")
	}
	if !errors.Is(err, workspace.ErrNoManifest) {
		t.Errorf("error = %v, want workspace.ErrNoManifest", err)
	}
}

func TestPackagesWithoutManifest(t *testing.T) {
	root := newTestCLI().RootCommand()

	var out bytes.Buffer
	root.SetOut(&out)
	root.SetErr(&out)
	root.SetArgs([]string{"packages", t.TempDir()})

	if err := root.Execute(); !errors.Is(err, workspace.ErrNoManifest) {
		t.Errorf("error = %v, want workspace.ErrNoManifest", err)
	}
}

func TestWorkspaceRoot(t *testing.T) {
	tests := []struct {
		name string
		args []string
		want string
	}{
		{name: "no argument", args: nil, want: "."},
		{name: "explicit directory", args: []string{"pkgs/parser"}, want: "pkgs/parser"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := workspaceRoot(tt.args); got != tt.want {
				t.Errorf("workspaceRoot(%v) = %q, want %q", tt.args, got, tt.want)
			}
		})
	}
}
