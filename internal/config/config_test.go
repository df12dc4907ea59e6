package config

import (
	"os"
	"path/filepath"
	"testing"
)

func TestFindWalksUpward(t *testing.T) {
	root := t.TempDir()
	if err := os.WriteFile(filepath.Join(root, manifestName), []byte("[build]\njobs = 4\n"), 0o644); err != nil {
		t.Fatalf("WriteFile: %v", err)
	}
	nested := filepath.Join(root, "a", "b", "c")
	if err := os.MkdirAll(nested, 0o755); err != nil {
		t.Fatalf("MkdirAll: %v", err)
	}

	path, ok, err := Find(nested)
	if err != nil {
		t.Fatalf("Find: %v", err)
	}
	if !ok {
		t.Fatal("Find should locate the manifest in an ancestor directory")
	}
	want, err := filepath.Abs(filepath.Join(root, manifestName))
	if err != nil {
		t.Fatalf("Abs: %v", err)
	}
	if path != want {
		t.Fatalf("Find path = %q; want %q", path, want)
	}
}

func TestFindReportsMissing(t *testing.T) {
	dir := t.TempDir()
	_, ok, err := Find(dir)
	if err != nil {
		t.Fatalf("Find: %v", err)
	}
	if ok {
		t.Fatal("Find should report false when no manifest exists in any ancestor")
	}
}

func TestLoadFallsBackToDefault(t *testing.T) {
	dir := t.TempDir()
	cfg, path, err := Load(dir)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if path != "" {
		t.Fatalf("Load path = %q; want empty when falling back to defaults", path)
	}
	if cfg.Build.MaxDiagnostics != Default().Build.MaxDiagnostics {
		t.Fatalf("Load fallback = %+v; want Default()", cfg)
	}
}

func TestLoadDecodesManifest(t *testing.T) {
	dir := t.TempDir()
	manifest := `
[cache]
dir = "/tmp/cache"
disable = true

[build]
jobs = 8
max_diagnostics = 50

[output]
color = "off"
table = true
`
	if err := os.WriteFile(filepath.Join(dir, manifestName), []byte(manifest), 0o644); err != nil {
		t.Fatalf("WriteFile: %v", err)
	}

	cfg, path, err := Load(dir)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if path == "" {
		t.Fatal("Load should report the manifest path it decoded")
	}
	if cfg.Cache.Dir != "/tmp/cache" || !cfg.Cache.Disable {
		t.Fatalf("Cache = %+v; want dir=/tmp/cache disable=true", cfg.Cache)
	}
	if cfg.Build.Jobs != 8 || cfg.Build.MaxDiagnostics != 50 {
		t.Fatalf("Build = %+v; want jobs=8 max_diagnostics=50", cfg.Build)
	}
	if cfg.Output.Color != "off" || !cfg.Output.Table {
		t.Fatalf("Output = %+v; want color=off table=true", cfg.Output)
	}
}

func TestLoadPartialManifestKeepsDefaultsForOmittedFields(t *testing.T) {
	dir := t.TempDir()
	manifest := "[build]\njobs = 2\n"
	if err := os.WriteFile(filepath.Join(dir, manifestName), []byte(manifest), 0o644); err != nil {
		t.Fatalf("WriteFile: %v", err)
	}

	cfg, _, err := Load(dir)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if cfg.Build.Jobs != 2 {
		t.Fatalf("Build.Jobs = %d; want 2", cfg.Build.Jobs)
	}
	if cfg.Build.MaxDiagnostics != Default().Build.MaxDiagnostics {
		t.Fatalf("Build.MaxDiagnostics = %d; want the default (%d) since the manifest omitted it",
			cfg.Build.MaxDiagnostics, Default().Build.MaxDiagnostics)
	}
	if cfg.Output.Color != Default().Output.Color {
		t.Fatalf("Output.Color = %q; want the default %q", cfg.Output.Color, Default().Output.Color)
	}
}

func TestDefaultValues(t *testing.T) {
	cfg := Default()
	if cfg.Output.Color != "auto" {
		t.Fatalf("Default().Output.Color = %q; want %q", cfg.Output.Color, "auto")
	}
	if cfg.Build.MaxDiagnostics != 100 {
		t.Fatalf("Default().Build.MaxDiagnostics = %d; want 100", cfg.Build.MaxDiagnostics)
	}
}
