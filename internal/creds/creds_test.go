package creds

import (
	"os"
	"path/filepath"
	"testing"
)

func writeCredsFile(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "creds.json")
	if err := os.WriteFile(path, []byte(content), 0o600); err != nil {
		t.Fatalf("writing credential file: %v", err)
	}
	return path
}

func TestLoadFirstRecord(t *testing.T) {
	path := writeCredsFile(t, `[
		{"user": "admin", "pass": "first"},
		{"user": "admin", "pass": "second"}
	]`)

	c, err := Load(path, "")
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}
	if c == nil {
		t.Fatal("Load() = nil, want the first record")
	}
	if c.User != "admin" || c.Pass != "first" {
		t.Errorf("Load() = %+v, want the first record", c)
	}
}

func TestLoadMatchingSerial(t *testing.T) {
	path := writeCredsFile(t, `[
		{"user": "front", "pass": "a", "serial": ["SN100", "SN101"]},
		{"user": "back", "pass": "b", "serial": ["SN200"]},
		{"user": "fallback", "pass": "c"}
	]`)

	c, err := Load(path, "SN200")
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}
	if c == nil || c.User != "back" {
		t.Fatalf("Load() = %+v, want the SN200 record", c)
	}
}

func TestLoadSkipsNonMatchingSerialRecord(t *testing.T) {
	path := writeCredsFile(t, `[
		{"user": "front", "pass": "a", "serial": ["SN100"]},
		{"user": "fallback", "pass": "c"}
	]`)

	c, err := Load(path, "SN999")
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}
	if c == nil || c.User != "fallback" {
		t.Fatalf("Load() = %+v, want the unrestricted record", c)
	}
}

func TestLoadNoMatch(t *testing.T) {
	path := writeCredsFile(t, `[
		{"user": "front", "pass": "a", "serial": ["SN100"]}
	]`)

	c, err := Load(path, "SN999")
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}
	if c != nil {
		t.Errorf("Load() = %+v, want nil when no record matches", c)
	}
}

func TestLoadEmptyFile(t *testing.T) {
	path := writeCredsFile(t, `[]`)

	c, err := Load(path, "")
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}
	if c != nil {
		t.Errorf("Load() = %+v, want nil for an empty file", c)
	}
}

func TestLoadMissingFile(t *testing.T) {
	if _, err := Load(filepath.Join(t.TempDir(), "nope.json"), ""); err == nil {
		t.Error("missing credential file should be an error")
	}
}

func TestLoadMalformedFile(t *testing.T) {
	path := writeCredsFile(t, `{"not": "an array"}`)

	if _, err := Load(path, ""); err == nil {
		t.Error("malformed credential file should be an error")
	}
}
