package project

import (
	"os"
	"path/filepath"
	"testing"
)

func writeManifest(t *testing.T, dir, body string) string {
	t.Helper()
	path := filepath.Join(dir, manifestFileName)
	if err := os.WriteFile(path, []byte(body), 0o644); err != nil {
		t.Fatalf("failed to write manifest: %v", err)
	}
	return path
}

func TestLoadValidManifest(t *testing.T) {
	dir := t.TempDir()
	writeManifest(t, dir, `
[package]
name = "demo"

[compile]
file = "shader.hlsl"
entry_point = "main"
stage = "pixel"
shader_model_major = 5
shader_model_minor = 0
include = ["include"]
`)

	m, err := Load(filepath.Join(dir, manifestFileName))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if m.Package.Name != "demo" {
		t.Fatalf("expected package name 'demo', got %q", m.Package.Name)
	}
	if m.Compile.EntryPoint != "main" {
		t.Fatalf("expected entry point 'main', got %q", m.Compile.EntryPoint)
	}
	if got := m.SourcePath(); got != filepath.Join(dir, "shader.hlsl") {
		t.Fatalf("unexpected source path: %s", got)
	}
	if dirs := m.IncludeDirs(); len(dirs) != 1 || dirs[0] != filepath.Join(dir, "include") {
		t.Fatalf("unexpected include dirs: %v", dirs)
	}
}

func TestLoadMissingEntryPointIsAnError(t *testing.T) {
	dir := t.TempDir()
	writeManifest(t, dir, `
[package]
name = "demo"

[compile]
file = "shader.hlsl"
`)
	if _, err := Load(filepath.Join(dir, manifestFileName)); err == nil {
		t.Fatalf("expected an error for a missing entry_point")
	}
}

func TestFindManifestWalksUpward(t *testing.T) {
	root := t.TempDir()
	writeManifest(t, root, "[package]\nname = \"demo\"\n[compile]\nfile = \"a.hlsl\"\nentry_point = \"main\"\n")

	nested := filepath.Join(root, "a", "b", "c")
	if err := os.MkdirAll(nested, 0o755); err != nil {
		t.Fatalf("failed to create nested dir: %v", err)
	}

	found, ok, err := FindManifest(nested)
	if err != nil || !ok {
		t.Fatalf("expected to find the manifest, ok=%v err=%v", ok, err)
	}
	if filepath.Dir(found) != root {
		t.Fatalf("expected manifest root %s, got %s", root, filepath.Dir(found))
	}
}

func TestFindManifestReturnsFalseWhenAbsent(t *testing.T) {
	dir := t.TempDir()
	_, ok, err := FindManifest(dir)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if ok {
		t.Fatalf("expected no manifest to be found")
	}
}

func TestHashSourceIsSensitiveToEveryInput(t *testing.T) {
	base := HashSource("float4 main() { return 0; }", "main", 1, 5, 0)
	if other := HashSource("float4 main() { return 1; }", "main", 1, 5, 0); other == base {
		t.Fatalf("expected different source text to change the digest")
	}
	if other := HashSource("float4 main() { return 0; }", "other", 1, 5, 0); other == base {
		t.Fatalf("expected different entry point to change the digest")
	}
	if other := HashSource("float4 main() { return 0; }", "main", 2, 5, 0); other == base {
		t.Fatalf("expected different shader type to change the digest")
	}
}
