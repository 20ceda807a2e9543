package logger

import (
	"strings"
	"testing"
)

func TestSanitizeKVs_RedactsAndHashes(t *testing.T) {
	out := sanitizeKVs([]interface{}{
		"access_token", "abc",
		"user_id", "0b7e7f4c-1111-2222-3333-444455556666",
		"course_slug", "intro-to-go",
	})
	if len(out) != 6 {
		t.Fatalf("expected 6 entries, got %d", len(out))
	}
	if out[1] != "[REDACTED]" {
		t.Fatalf("expected token redacted, got %v", out[1])
	}
	hashed, ok := out[3].(string)
	if !ok || !strings.HasPrefix(hashed, "hash:") || len(hashed) != len("hash:")+12 {
		t.Fatalf("expected hashed user_id, got %v", out[3])
	}
	if out[5] != "intro-to-go" {
		t.Fatalf("expected plain value untouched, got %v", out[5])
	}
}

func TestSanitizeKVs_OddLengthKeepsTrailingKey(t *testing.T) {
	out := sanitizeKVs([]interface{}{"course_id", "x", "dangling"})
	if len(out) != 3 || out[2] != "dangling" {
		t.Fatalf("unexpected output: %v", out)
	}
}

func TestSanitizeValue_RedactsJWTLookingStrings(t *testing.T) {
	jwtish := "eyJhbGciOiJIUzI1NiJ9.eyJzdWIiOiIxMjM0NTY3ODkwIn0.sig"
	if got := sanitizeValue("detail", jwtish); got != "[REDACTED]" {
		t.Fatalf("expected jwt-like value redacted, got %v", got)
	}
}
