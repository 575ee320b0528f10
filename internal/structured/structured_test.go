package structured

import (
	"strings"
	"testing"
)

func TestFieldsYAML(t *testing.T) {
	b := []byte("service:\n  api_key: abc123\n  region: us-east-1\n")
	fields := Fields(b)
	if len(fields) != 2 {
		t.Fatalf("expected 2 fields, got %d", len(fields))
	}
	if fields[0].Key != "service.api_key" || fields[0].Value != "abc123" {
		t.Fatalf("unexpected first field: %+v", fields[0])
	}
	if fields[0].Line != 2 {
		t.Fatalf("expected line 2, got %d", fields[0].Line)
	}
}

func TestFieldsJSON(t *testing.T) {
	b := []byte(`{"auth": {"token": "abcdefghijklmnop1234"}}`)
	fields := Fields(b)
	if len(fields) != 1 || fields[0].Key != "auth.token" {
		t.Fatalf("unexpected fields: %+v", fields)
	}
}

func TestSecretsStructured(t *testing.T) {
	content := `{"config": {"api_key": "Zx9YwV8uT7sR6qP5oN4m", "theme": "dark"}}`
	spans := Secrets(content)
	if len(spans) != 1 {
		t.Fatalf("expected 1 span, got %d", len(spans))
	}
	if spans[0].Value != "Zx9YwV8uT7sR6qP5oN4m" {
		t.Fatalf("got value %q", spans[0].Value)
	}
	if content[spans[0].Start:spans[0].End] != spans[0].Value {
		t.Fatal("span offsets do not point at the value")
	}
}

func TestSecretsFallbackPairScan(t *testing.T) {
	content := "window state follows secret_token = \"Ab12Cd34Ef56Gh78Ij90\" and more prose here"
	spans := Secrets(content)
	if len(spans) != 1 {
		t.Fatalf("expected 1 span, got %d", len(spans))
	}
	if !strings.Contains(spans[0].Note, "secret_token") {
		t.Fatalf("note should carry the key, got %q", spans[0].Note)
	}
}

func TestSecretsIgnoresBenignKeys(t *testing.T) {
	content := `{"settings": {"background": "ffffffffffffffffffff"}}`
	if spans := Secrets(content); len(spans) != 0 {
		t.Fatalf("benign key should not match, got %v", spans)
	}
}
