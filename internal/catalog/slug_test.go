package catalog

import "testing"

func TestSlugify(t *testing.T) {
	cases := []struct {
		in   string
		want string
	}{
		{"Wireless Headphones", "wireless-headphones"},
		{"  Gaming   Mouse  ", "gaming-mouse"},
		{"Café & Tea Set!", "caf-tea-set"},
		{"--already-slugged--", "already-slugged"},
		{"UPPER", "upper"},
	}
	for _, tc := range cases {
		if got := Slugify(tc.in); got != tc.want {
			t.Errorf("Slugify(%q) = %q, want %q", tc.in, got, tc.want)
		}
	}
}

func TestNextSlugNoCollision(t *testing.T) {
	got, err := NextSlug("gaming-mouse", func(string) (bool, error) { return false, nil })
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got != "gaming-mouse" {
		t.Fatalf("expected base slug, got %q", got)
	}
}

func TestNextSlugAppendsSuffixUntilFree(t *testing.T) {
	taken := map[string]bool{
		"gaming-mouse":   true,
		"gaming-mouse-1": true,
		"gaming-mouse-2": true,
	}
	got, err := NextSlug("gaming-mouse", func(candidate string) (bool, error) {
		return taken[candidate], nil
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got != "gaming-mouse-3" {
		t.Fatalf("expected gaming-mouse-3, got %q", got)
	}
}

func TestNextSlugEmptyBase(t *testing.T) {
	got, err := NextSlug("", func(string) (bool, error) { return false, nil })
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got != "item" {
		t.Fatalf("expected fallback slug, got %q", got)
	}
}
