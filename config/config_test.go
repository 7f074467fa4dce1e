package config

import (
	"os"
	"path/filepath"
	"testing"
)

const sampleConfig = `
[engine]
strict-translation = true
word-bits = 32

[explore]
max-steps = 500
workers = 4

[trace]
enabled = true

[hooks]
disabled = ["java.lang.System"]
`

func writeConfig(t *testing.T, dir string) {
	t.Helper()
	if err := os.WriteFile(filepath.Join(dir, FileName), []byte(sampleConfig), 0o644); err != nil {
		t.Fatal(err)
	}
}

func TestLoad(t *testing.T) {
	dir := t.TempDir()
	writeConfig(t, dir)

	c, err := Load(dir)
	if err != nil {
		t.Fatalf("Load() error: %v", err)
	}
	if !c.Engine.StrictTranslation {
		t.Error("strict-translation not parsed")
	}
	if c.Engine.WordBits != 32 {
		t.Errorf("word-bits = %d, want 32", c.Engine.WordBits)
	}
	if c.Explore.MaxSteps != 500 || c.Explore.Workers != 4 {
		t.Errorf("explore = %+v", c.Explore)
	}
	if !c.Trace.Enabled {
		t.Error("trace.enabled not parsed")
	}
	// Keys absent from the file keep their defaults.
	if c.Trace.Path != Default().Trace.Path {
		t.Errorf("trace.path = %q, want default", c.Trace.Path)
	}
	if len(c.Hooks.Disabled) != 1 || c.Hooks.Disabled[0] != "java.lang.System" {
		t.Errorf("hooks.disabled = %v", c.Hooks.Disabled)
	}
	if c.Dir == "" || !filepath.IsAbs(c.Dir) {
		t.Errorf("Dir = %q, want absolute config directory", c.Dir)
	}
}

func TestLoadMissingFile(t *testing.T) {
	if _, err := Load(t.TempDir()); err == nil {
		t.Fatal("Load() must fail without a config file")
	}
}

func TestFindAndLoadWalksUp(t *testing.T) {
	root := t.TempDir()
	writeConfig(t, root)
	nested := filepath.Join(root, "a", "b")
	if err := os.MkdirAll(nested, 0o755); err != nil {
		t.Fatal(err)
	}

	c, err := FindAndLoad(nested)
	if err != nil {
		t.Fatalf("FindAndLoad() error: %v", err)
	}
	if c.Explore.MaxSteps != 500 {
		t.Error("config found in an ancestor directory not loaded")
	}
}

func TestFindAndLoadDefaults(t *testing.T) {
	c, err := FindAndLoad(t.TempDir())
	if err != nil {
		t.Fatalf("FindAndLoad() error: %v", err)
	}
	def := Default()
	if c.Engine.WordBits != def.Engine.WordBits || c.Explore.MaxSteps != def.Explore.MaxSteps {
		t.Errorf("got %+v, want defaults", c)
	}
}

func TestDefaultWordBits(t *testing.T) {
	dir := t.TempDir()
	if err := os.WriteFile(filepath.Join(dir, FileName), []byte("[engine]\n"), 0o644); err != nil {
		t.Fatal(err)
	}
	c, err := Load(dir)
	if err != nil {
		t.Fatalf("Load() error: %v", err)
	}
	if c.Engine.WordBits != 64 {
		t.Errorf("word-bits = %d, want 64 fallback", c.Engine.WordBits)
	}
}
