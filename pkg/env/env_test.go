package env

import "testing"

func TestGet(t *testing.T) {
	t.Setenv("SHOPPIX_TEST_VALUE", "set")
	if got := Get("SHOPPIX_TEST_VALUE", "fallback"); got != "set" {
		t.Fatalf("expected env value, got %q", got)
	}

	t.Setenv("SHOPPIX_TEST_EMPTY", "")
	if got := Get("SHOPPIX_TEST_EMPTY", "fallback"); got != "fallback" {
		t.Fatalf("empty variables must fall back, got %q", got)
	}

	if got := Get("SHOPPIX_TEST_UNSET", "fallback"); got != "fallback" {
		t.Fatalf("unset variables must fall back, got %q", got)
	}
}
