package main

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/dshills/backchannel/internal/config/loader"
)

type cliTestEnv struct {
	baseDir     string
	sessionFile string
	args        []string
}

func setupCLITestEnv(t *testing.T) *cliTestEnv {
	t.Helper()

	base := t.TempDir()
	dataDir := filepath.Join(base, "data")
	if err := os.MkdirAll(dataDir, 0o755); err != nil {
		t.Fatalf("mkdir data: %v", err)
	}
	if err := os.WriteFile(filepath.Join(dataDir, "user_agents.lst"), []byte("test-agent/1.0\n"), 0o644); err != nil {
		t.Fatalf("write user agents: %v", err)
	}

	env := &cliTestEnv{
		baseDir:     base,
		sessionFile: filepath.Join(base, "state", "session.toml"),
	}
	env.args = []string{
		"--config-dir", filepath.Join(base, "config"),
		"--data-dir", dataDir,
		"--session", env.sessionFile,
		"--no-color",
	}
	return env
}

func (e *cliTestEnv) run(t *testing.T, args ...string) (string, error) {
	t.Helper()
	cmd := newRootCommand()
	var out bytes.Buffer
	cmd.SetOut(&out)
	cmd.SetErr(&out)
	cmd.SetArgs(append(append([]string{}, e.args...), args...))
	err := cmd.Execute()
	return out.String(), err
}

func TestSetCommand_PersistsSession(t *testing.T) {
	env := setupCLITestEnv(t)

	if _, err := env.run(t, "set", "HTTP_ACCEPT_LANGUAGE", "en-CA"); err != nil {
		t.Fatalf("set: %v", err)
	}
	if _, err := env.run(t, "set", "REQ_INTERVAL", "+", "20-30"); err != nil {
		t.Fatalf("set +: %v", err)
	}

	saved, err := loader.NewSessionStore(env.sessionFile).Load()
	if err != nil {
		t.Fatalf("loading session: %v", err)
	}
	if saved["HTTP_ACCEPT_LANGUAGE"] != "en-CA" {
		t.Errorf("saved header = %q", saved["HTTP_ACCEPT_LANGUAGE"])
	}
	if saved["REQ_INTERVAL"] != "1-10\n20-30" {
		t.Errorf("saved interval = %q", saved["REQ_INTERVAL"])
	}

	out, err := env.run(t, "headers")
	if err != nil {
		t.Fatalf("headers: %v", err)
	}
	for _, want := range []string{"Accept-Language", "en-CA", "User-Agent", "test-agent/1.0"} {
		if !strings.Contains(out, want) {
			t.Errorf("headers output missing %q:\n%s", want, out)
		}
	}
}

func TestSetCommand_Display(t *testing.T) {
	env := setupCLITestEnv(t)

	out, err := env.run(t, "set", "req_max")
	if err != nil {
		t.Fatalf("set: %v", err)
	}
	if !strings.Contains(out, "REQ_MAX_HEADERS") || strings.Contains(out, "PASSKEY") {
		t.Errorf("unexpected display:\n%s", out)
	}
	if _, err := os.Stat(env.sessionFile); !os.IsNotExist(err) {
		t.Error("display should not write the session")
	}
}

func TestSetCommand_Errors(t *testing.T) {
	env := setupCLITestEnv(t)

	if _, err := env.run(t, "set", "1abc", "x"); err == nil || !strings.Contains(err.Error(), "illegal name") {
		t.Errorf("expected illegal name error, got %v", err)
	}
	if _, err := env.run(t, "set", "REQ_MAX_HEADERS", "-5"); err == nil || !strings.Contains(err.Error(), "invalid value") {
		t.Errorf("expected invalid value error, got %v", err)
	}
}

func TestResetCommand(t *testing.T) {
	env := setupCLITestEnv(t)

	if _, err := env.run(t, "set", "PASSKEY", "other"); err != nil {
		t.Fatalf("set: %v", err)
	}
	if _, err := env.run(t, "reset", "passkey"); err != nil {
		t.Fatalf("reset: %v", err)
	}

	saved, err := loader.NewSessionStore(env.sessionFile).Load()
	if err != nil {
		t.Fatalf("loading session: %v", err)
	}
	if saved["PASSKEY"] != "phpSpl01t" {
		t.Errorf("PASSKEY = %q after reset", saved["PASSKEY"])
	}
}

func TestEnvironmentOverrides(t *testing.T) {
	env := setupCLITestEnv(t)
	t.Setenv("BACKCHANNEL_SET_HTTP_X_TEST", "from-env")

	out, err := env.run(t, "headers")
	if err != nil {
		t.Fatalf("headers: %v", err)
	}
	if !strings.Contains(out, "X-Test") || !strings.Contains(out, "from-env") {
		t.Errorf("override missing:\n%s", out)
	}
}

func TestDocCommand(t *testing.T) {
	env := setupCLITestEnv(t)

	out, err := env.run(t, "doc", "http-user-agent")
	if err != nil {
		t.Fatalf("doc: %v", err)
	}
	if !strings.Contains(out, `"User-Agent"`) || !strings.Contains(out, "RandomLineBuffer") {
		t.Errorf("unexpected doc:\n%s", out)
	}
}

func TestHeadersTable(t *testing.T) {
	out := headersTable(map[string]string{"User-Agent": "ua/1", "Accept": "*/*"})

	accept := strings.Index(out, "Accept")
	agent := strings.Index(out, "User-Agent")
	if accept < 0 || agent < 0 || accept > agent {
		t.Errorf("fields missing or out of order:\n%s", out)
	}
	if !strings.Contains(strings.ToUpper(out), "FIELD") || !strings.Contains(out, "ua/1") {
		t.Errorf("unexpected table:\n%s", out)
	}

	if empty := headersTable(nil); strings.Contains(empty, "ua/1") || !strings.Contains(strings.ToUpper(empty), "FIELD") {
		t.Errorf("empty table should only hold the header:\n%s", empty)
	}
}
