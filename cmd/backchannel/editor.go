package main

import (
	"bytes"
	"context"
	"fmt"
	"os"
	"os/exec"
	"path/filepath"
)

// commandEditor opens files with a shell command such as "vi" or
// "code --wait".
type commandEditor struct {
	// Command returns the editor command line. It is called for every
	// edit so that EDITOR changes apply immediately.
	Command func() (string, error)

	// Stdin, Stdout and Stderr are handed to the editor process.
	Stdin  *os.File
	Stdout *os.File
	Stderr *os.File
}

// Edit writes content to a temporary file named file, runs the editor on it
// and reads it back.
func (e commandEditor) Edit(file, content string) (string, bool, error) {
	return e.EditContext(context.Background(), file, content)
}

// EditContext is Edit with a context bounding the editor process.
func (e commandEditor) EditContext(ctx context.Context, file, content string) (string, bool, error) {
	command, err := e.Command()
	if err != nil {
		return "", false, err
	}

	dir, err := os.MkdirTemp("", "backchannel-edit-")
	if err != nil {
		return "", false, err
	}
	defer os.RemoveAll(dir)

	path := filepath.Join(dir, file)
	if err := os.WriteFile(path, []byte(content), 0o600); err != nil {
		return "", false, err
	}

	// The command line is a shell command; the path is passed as $1.
	cmd := exec.CommandContext(ctx, "sh", "-c", command+` "$1"`, "sh", path)
	cmd.Stdin = stdio(e.Stdin, os.Stdin)
	cmd.Stdout = stdio(e.Stdout, os.Stdout)
	cmd.Stderr = stdio(e.Stderr, os.Stderr)
	if err := cmd.Run(); err != nil {
		return "", false, fmt.Errorf("running %q: %w", command, err)
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return "", false, err
	}
	return string(data), !bytes.Equal(data, []byte(content)), nil
}

func stdio(f, def *os.File) *os.File {
	if f != nil {
		return f
	}
	return def
}
