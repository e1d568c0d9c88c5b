package registry

import (
	"errors"
	"strings"
	"testing"

	"github.com/dshills/backchannel/internal/config/buffer"
)

func TestNormalizeName(t *testing.T) {
	tests := []struct {
		in    string
		want  string
		valid bool
	}{
		{"req_interval", "REQ_INTERVAL", true},
		{"http-user-agent", "HTTP_USER_AGENT", true},
		{"PASSKEY", "PASSKEY", true},
		{"1abc", "1ABC", false},
		{"A", "A", false},
		{"a b", "A B", false},
		{"", "", false},
	}

	for _, tt := range tests {
		got := NormalizeName(tt.in)
		if got != tt.want {
			t.Errorf("NormalizeName(%q) = %q, want %q", tt.in, got, tt.want)
		}
		if ValidName(got) != tt.valid {
			t.Errorf("ValidName(%q) = %v, want %v", got, !tt.valid, tt.valid)
		}
	}
}

func TestDeclared_TableIsComplete(t *testing.T) {
	table, err := NewTable(Declared(noEnv))
	if err != nil {
		t.Fatalf("NewTable: %v", err)
	}

	want := []string{
		"TMPPATH", "SAVEPATH", "CACHE_SIZE", "VERBOSITY", "TARGET",
		"BACKDOOR", "PROXY", "PASSKEY", "EDITOR", "BROWSER",
		"REQ_DEFAULT_METHOD", "REQ_HEADER_PAYLOAD", "REQ_INTERVAL",
		"REQ_MAX_HEADERS", "REQ_MAX_HEADER_SIZE", "REQ_MAX_POST_SIZE",
		"REQ_ZLIB_TRY_LIMIT", "REQ_POST_DATA", "PAYLOAD_PREFIX",
	}
	if table.Len() != len(want) {
		t.Fatalf("Len() = %d, want %d", table.Len(), len(want))
	}
	for i, name := range table.Names() {
		if name != want[i] {
			t.Errorf("Names()[%d] = %s, want %s", i, name, want[i])
		}
	}

	for _, name := range []string{"BACKDOOR", "REQ_HEADER_PAYLOAD", "REQ_POST_DATA", "PAYLOAD_PREFIX"} {
		d, _ := table.Lookup(name)
		if d.Kind != buffer.KindLiteral {
			t.Errorf("%s kind = %v, want literal", name, d.Kind)
		}
	}

	for _, d := range Declared(noEnv) {
		if _, err := d.Validator(d.Default()); err != nil {
			t.Errorf("%s: default %q rejected: %v", d.Name, d.Default(), err)
		}
	}
}

func TestDeclared_EnvironmentDefaults(t *testing.T) {
	env := map[string]string{"EDITOR": "nano", "BROWSER": "firefox"}
	table, err := NewTable(Declared(func(k string) string { return env[k] }))
	if err != nil {
		t.Fatalf("NewTable: %v", err)
	}

	for name, want := range map[string]string{"EDITOR": "nano", "BROWSER": "firefox"} {
		d, _ := table.Lookup(name)
		if got := d.Default(); got != want {
			t.Errorf("%s default = %q, want %q", name, got, want)
		}
	}
}

func TestSchemaError(t *testing.T) {
	_, err := NewTable([]Descriptor{{Name: "X1", Kind: buffer.KindLiteral}})

	var se *SchemaError
	if !errors.As(err, &se) {
		t.Fatalf("expected SchemaError, got %v", err)
	}
	if se.Name != "X1" || !strings.Contains(err.Error(), "validator") {
		t.Errorf("unexpected error: %v", err)
	}
	if !errors.Is(err, ErrSchemaLoad) {
		t.Error("SchemaError should match ErrSchemaLoad")
	}
}

func TestRenderDoc(t *testing.T) {
	d := Descriptor{
		Name: "PASSKEY",
		Kind: buffer.KindRandomLine,
		Doc:  "First line.\nSecond line.",
	}

	doc := RenderDoc(d)
	if !strings.HasPrefix(doc, "\nDESCRIPTION:\n    First line.\n    Second line.") {
		t.Errorf("unexpected doc header:\n%s", doc)
	}
	if !strings.Contains(doc, "BUFFER TYPE:\n    RandomLineBuffer") {
		t.Errorf("missing buffer type:\n%s", doc)
	}
}
