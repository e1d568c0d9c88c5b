package main

import (
	"errors"
	"testing"
)

func TestCommandEditor(t *testing.T) {
	ed := commandEditor{
		Command: func() (string, error) { return `printf 'rewritten\n' >`, nil },
	}

	got, changed, err := ed.Edit("NOTE.txt", "original")
	if err != nil {
		t.Fatalf("Edit: %v", err)
	}
	if !changed || got != "rewritten\n" {
		t.Errorf("Edit = %q, %v", got, changed)
	}

	ed.Command = func() (string, error) { return "true", nil }
	got, changed, err = ed.Edit("NOTE.txt", "same")
	if err != nil || changed || got != "same" {
		t.Errorf("no-op edit = %q, %v, %v", got, changed, err)
	}

	ed.Command = func() (string, error) { return "false", nil }
	if _, _, err := ed.Edit("NOTE.txt", "x"); err == nil {
		t.Error("expected failing editor to return an error")
	}

	lookup := errors.New("no EDITOR")
	ed.Command = func() (string, error) { return "", lookup }
	if _, _, err := ed.Edit("NOTE.txt", "x"); !errors.Is(err, lookup) {
		t.Errorf("expected lookup error, got %v", err)
	}
}
