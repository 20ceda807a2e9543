package envutil

import (
	"testing"
	"time"
)

func TestInt(t *testing.T) {
	t.Setenv("CATALOG_TEST_INT", "12")
	if got := Int("CATALOG_TEST_INT", 9, nil); got != 12 {
		t.Fatalf("Int: got %d", got)
	}
	t.Setenv("CATALOG_TEST_INT", "nope")
	if got := Int("CATALOG_TEST_INT", 9, nil); got != 9 {
		t.Fatalf("Int fallback: got %d", got)
	}
	if got := Int("CATALOG_TEST_INT_UNSET", 7, nil); got != 7 {
		t.Fatalf("Int unset: got %d", got)
	}
}

func TestBoolAndSeconds(t *testing.T) {
	t.Setenv("CATALOG_TEST_BOOL", "on")
	if !Bool("CATALOG_TEST_BOOL", false, nil) {
		t.Fatalf("Bool: expected true")
	}
	t.Setenv("CATALOG_TEST_SECS", "30")
	if got := Seconds("CATALOG_TEST_SECS", time.Minute, nil); got != 30*time.Second {
		t.Fatalf("Seconds: got %s", got)
	}
}

func TestList(t *testing.T) {
	t.Setenv("CATALOG_TEST_LIST", " a, ,b ")
	got := List("CATALOG_TEST_LIST", nil, nil)
	if len(got) != 2 || got[0] != "a" || got[1] != "b" {
		t.Fatalf("List: got %v", got)
	}
	t.Setenv("CATALOG_TEST_LIST", " , ")
	if got := List("CATALOG_TEST_LIST", []string{"x"}, nil); len(got) != 1 || got[0] != "x" {
		t.Fatalf("List fallback: got %v", got)
	}
}
