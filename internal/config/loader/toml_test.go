package loader

import (
	"errors"
	"io/fs"
	"testing"
)

// MemFS is an in-memory file system for testing.
type MemFS struct {
	files map[string][]byte
}

func NewMemFS() *MemFS {
	return &MemFS{files: make(map[string][]byte)}
}

func (m *MemFS) AddFile(path string, content string) {
	m.files[path] = []byte(content)
}

func (m *MemFS) ReadFile(path string) ([]byte, error) {
	data, ok := m.files[path]
	if !ok {
		return nil, &fs.PathError{Op: "open", Path: path, Err: fs.ErrNotExist}
	}
	return data, nil
}

func (m *MemFS) WriteFile(path string, data []byte, _ fs.FileMode) error {
	m.files[path] = append([]byte(nil), data...)
	return nil
}

func TestTOMLLoader_Load(t *testing.T) {
	memfs := NewMemFS()
	memfs.AddFile("/config.toml", `
[paths]
dataDir = "/usr/share/backchannel"
session = "/home/op/.local/state/backchannel/session.toml"

[logging]
verbose = true
`)

	loader := NewTOMLLoaderWithFS(memfs, "/config.toml")
	config, err := loader.Load()
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}

	paths, ok := config["paths"].(map[string]any)
	if !ok {
		t.Fatal("expected paths to be a map")
	}
	if paths["dataDir"] != "/usr/share/backchannel" {
		t.Errorf("dataDir = %v", paths["dataDir"])
	}

	logging, ok := config["logging"].(map[string]any)
	if !ok {
		t.Fatal("expected logging to be a map")
	}
	if logging["verbose"] != true {
		t.Errorf("verbose = %v, want true", logging["verbose"])
	}
}

func TestTOMLLoader_LoadNonExistent(t *testing.T) {
	loader := NewTOMLLoaderWithFS(NewMemFS(), "/nonexistent.toml")

	config, err := loader.Load()
	if err != nil {
		t.Fatalf("expected no error for non-existent file, got: %v", err)
	}
	if config != nil {
		t.Error("expected nil config for non-existent file")
	}
}

func TestTOMLLoader_LoadInvalid(t *testing.T) {
	memfs := NewMemFS()
	memfs.AddFile("/invalid.toml", `
[paths
dataDir = "x"
`)

	loader := NewTOMLLoaderWithFS(memfs, "/invalid.toml")
	_, err := loader.Load()
	if err == nil {
		t.Fatal("expected parse error")
	}

	var parseErr *ParseError
	if !errors.As(err, &parseErr) {
		t.Fatalf("expected *ParseError, got %T", err)
	}
	if parseErr.Path != "/invalid.toml" {
		t.Errorf("Path = %q, want '/invalid.toml'", parseErr.Path)
	}
	if parseErr.Line == 0 {
		t.Error("expected a line number")
	}
}

func TestDeepMerge(t *testing.T) {
	dst := map[string]any{
		"paths":   map[string]any{"dataDir": "/a", "session": "/s"},
		"logging": map[string]any{"verbose": false},
	}
	src := map[string]any{
		"paths":   map[string]any{"dataDir": "/b"},
		"logging": "flat",
		"extra":   int64(1),
	}

	got := DeepMerge(dst, src)

	paths := got["paths"].(map[string]any)
	if paths["dataDir"] != "/b" || paths["session"] != "/s" {
		t.Errorf("paths = %v", paths)
	}
	if got["logging"] != "flat" {
		t.Errorf("logging = %v, want replaced", got["logging"])
	}
	if got["extra"] != int64(1) {
		t.Errorf("extra = %v", got["extra"])
	}

	if m := DeepMerge(nil, map[string]any{"k": "v"}); m["k"] != "v" {
		t.Errorf("DeepMerge(nil) = %v", m)
	}
}
