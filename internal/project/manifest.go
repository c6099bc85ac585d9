// Package project decodes the hlslc.toml manifest a directory of shaders
// builds against: which file and entry point to compile, which shader
// stage and model it targets, and where to look for included headers.
package project

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/BurntSushi/toml"
)

const manifestFileName = "hlslc.toml"

// Manifest is the decoded contents of one hlslc.toml.
type Manifest struct {
	Path    string
	Root    string
	Package PackageConfig `toml:"package"`
	Compile CompileConfig `toml:"compile"`
}

// PackageConfig is the `[package]` table.
type PackageConfig struct {
	Name string `toml:"name"`
}

// CompileConfig is the `[compile]` table: which file to compile, which
// function in it is the entry point, and the shader stage/model it
// targets.
type CompileConfig struct {
	File       string   `toml:"file"`
	EntryPoint string   `toml:"entry_point"`
	Stage      string   `toml:"stage"` // "vertex" | "pixel"
	Major      uint32   `toml:"shader_model_major"`
	Minor      uint32   `toml:"shader_model_minor"`
	Include    []string `toml:"include"`
}

// FindManifest walks upward from startDir looking for hlslc.toml, the way
// a project's build root is discovered in a nested directory tree.
func FindManifest(startDir string) (string, bool, error) {
	if startDir == "" {
		startDir = "."
	}
	dir, err := filepath.Abs(startDir)
	if err != nil {
		return "", false, fmt.Errorf("failed to resolve start directory: %w", err)
	}
	for {
		candidate := filepath.Join(dir, manifestFileName)
		if _, err := os.Stat(candidate); err == nil {
			return candidate, true, nil
		} else if !errors.Is(err, os.ErrNotExist) {
			return "", false, fmt.Errorf("failed to stat %q: %w", candidate, err)
		}
		parent := filepath.Dir(dir)
		if parent == dir {
			break
		}
		dir = parent
	}
	return "", false, nil
}

// Load decodes the manifest at path and validates the tables a compile
// invocation actually needs.
func Load(path string) (*Manifest, error) {
	var m Manifest
	meta, err := toml.DecodeFile(path, &m)
	if err != nil {
		return nil, fmt.Errorf("%s: failed to parse TOML: %w", path, err)
	}
	if !meta.IsDefined("package") || strings.TrimSpace(m.Package.Name) == "" {
		return nil, fmt.Errorf("%s: missing [package].name", path)
	}
	if !meta.IsDefined("compile") || strings.TrimSpace(m.Compile.File) == "" {
		return nil, fmt.Errorf("%s: missing [compile].file", path)
	}
	if strings.TrimSpace(m.Compile.EntryPoint) == "" {
		return nil, fmt.Errorf("%s: missing [compile].entry_point", path)
	}
	m.Path = path
	m.Root = filepath.Dir(path)
	return &m, nil
}

// SourcePath resolves the manifest's compile.file against its root.
func (m *Manifest) SourcePath() string {
	return filepath.Join(m.Root, filepath.FromSlash(m.Compile.File))
}

// IncludeDirs resolves compile.include against the manifest's root.
func (m *Manifest) IncludeDirs() []string {
	dirs := make([]string, len(m.Compile.Include))
	for i, d := range m.Compile.Include {
		dirs[i] = filepath.Join(m.Root, filepath.FromSlash(d))
	}
	return dirs
}
