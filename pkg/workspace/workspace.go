// Package workspace discovers the packages of a repository and resolves
// them as a batch.
//
// A workspace is a directory whose manifest lists member glob patterns.
// Members carry manifests of their own. [Discover] turns the tree into a
// flat package list and [ResolveAll] fans the list out over a bounded
// worker pool, collecting one [Result] per package so a single failure
// never hides the rest.
package workspace

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path"
	"path/filepath"

	"github.com/BurntSushi/toml"

	"github.com/bumpline/bumpline/pkg/version"
)

// ErrNoManifest is returned by [Load] when a directory contains none of
// the supported manifest files.
var ErrNoManifest = errors.New("workspace: no manifest found")

// Manifest is a package manifest together with its on-disk location.
type Manifest struct {
	// Path is the manifest file that was read.
	Path string
	// Config is the declared package data.
	Config version.Config
}

// manifestFiles lists the supported manifest names in probe order. The
// first one present in a directory wins.
var manifestFiles = []struct {
	name   string
	decode func([]byte, *version.Config) error
}{
	{"bumpline.toml", decodeTOML},
	{"deno.json", decodeJSON},
	{"package.json", decodeJSON},
}

func decodeTOML(data []byte, cfg *version.Config) error {
	return toml.Unmarshal(data, cfg)
}

func decodeJSON(data []byte, cfg *version.Config) error {
	return json.Unmarshal(data, cfg)
}

// Load reads the first supported manifest in dir. It probes
// bumpline.toml, deno.json, and package.json in that order and returns
// [ErrNoManifest] when none exists.
func Load(dir string) (Manifest, error) {
	for _, f := range manifestFiles {
		name := filepath.Join(dir, f.name)
		data, err := os.ReadFile(name)
		if errors.Is(err, os.ErrNotExist) {
			continue
		}
		if err != nil {
			return Manifest{}, fmt.Errorf("read manifest: %w", err)
		}
		var cfg version.Config
		if err := f.decode(data, &cfg); err != nil {
			return Manifest{}, fmt.Errorf("parse %s: %w", name, err)
		}
		return Manifest{Path: name, Config: cfg}, nil
	}
	return Manifest{}, fmt.Errorf("%w in %s", ErrNoManifest, dir)
}

// Discover loads the workspace rooted at root and returns its packages:
// the root itself when its manifest declares a name, plus every directory
// matched by the root manifest's workspace globs that carries a manifest.
// Package directories are slash-separated and relative to root, "." for
// the root package.
func Discover(root string) ([]version.Package, error) {
	rootManifest, err := Load(root)
	if err != nil {
		return nil, err
	}

	var pkgs []version.Package
	if rootManifest.Config.Name != "" {
		pkgs = append(pkgs, newPackage(".", rootManifest.Config))
	}

	seen := map[string]bool{".": true}
	for _, pattern := range rootManifest.Config.Workspace {
		matches, err := filepath.Glob(filepath.Join(root, pattern))
		if err != nil {
			return nil, fmt.Errorf("workspace pattern %q: %w", pattern, err)
		}
		for _, match := range matches {
			info, err := os.Stat(match)
			if err != nil || !info.IsDir() {
				continue
			}
			rel, err := filepath.Rel(root, match)
			if err != nil {
				return nil, fmt.Errorf("workspace member %s: %w", match, err)
			}
			rel = filepath.ToSlash(rel)
			if seen[rel] {
				continue
			}
			m, err := Load(match)
			if errors.Is(err, ErrNoManifest) {
				continue
			}
			if err != nil {
				return nil, err
			}
			seen[rel] = true
			pkgs = append(pkgs, newPackage(rel, m.Config))
		}
	}
	return pkgs, nil
}

func newPackage(dir string, cfg version.Config) version.Package {
	return version.Package{
		Dir:    dir,
		Module: moduleName(cfg.Name),
		Config: cfg,
	}
}

// moduleName is the short name a package uses in release tags and commit
// scopes: the last segment of its name, so "@acme/parser" becomes
// "parser".
func moduleName(name string) string {
	if name == "" {
		return ""
	}
	return path.Base(name)
}
