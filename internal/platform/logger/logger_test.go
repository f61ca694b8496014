package logger

import (
	"strings"
	"testing"
)

func TestSanitizeValueRedactsContactFields(t *testing.T) {
	for _, key := range []string{"contact_no", "neo4j_password", "gemini_api_key"} {
		if got := sanitizeValue(key, "secret-value"); got != "[REDACTED]" {
			t.Fatalf("%s: want=[REDACTED] got=%v", key, got)
		}
	}
}

func TestSanitizeValueHashesEmail(t *testing.T) {
	a := sanitizeValue("email", "a@x.com")
	b := sanitizeValue("email", "a@x.com")
	c := sanitizeValue("email", "b@x.com")

	as, ok := a.(string)
	if !ok || !strings.HasPrefix(as, "hash:") {
		t.Fatalf("expected hashed email, got=%v", a)
	}
	if a != b {
		t.Fatalf("hash not stable: %v vs %v", a, b)
	}
	if a == c {
		t.Fatalf("different emails hashed to the same value: %v", a)
	}
}

func TestSanitizeValueNestedMap(t *testing.T) {
	got := sanitizeValue("params", map[string]interface{}{
		"email":      "a@x.com",
		"first_name": "Jo",
	})
	m, ok := got.(map[string]interface{})
	if !ok {
		t.Fatalf("expected map, got=%T", got)
	}
	if m["first_name"] != "Jo" {
		t.Fatalf("first_name: want=%q got=%v", "Jo", m["first_name"])
	}
	if s, _ := m["email"].(string); !strings.HasPrefix(s, "hash:") {
		t.Fatalf("email: expected hash, got=%v", m["email"])
	}
}

func TestNewNopDiscards(t *testing.T) {
	log := NewNop()
	log.With("component", "test").Info("hello", "email", "a@x.com")
}

func TestHashValueDereferencesStringPointers(t *testing.T) {
	email := "ada@example.com"
	if got, want := hashValue(&email), hashValue(email); got != want {
		t.Fatalf("hashValue(*string): want=%v got=%v", want, got)
	}
	var nilEmail *string
	if got := hashValue(nilEmail); got != "" {
		t.Fatalf("hashValue(nil *string): want empty got=%v", got)
	}
}
