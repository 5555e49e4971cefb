package crawler

import "testing"

func TestSubsectionCode(t *testing.T) {
	t.Parallel()

	tests := []struct {
		href   string
		want   string
		wantOK bool
	}{
		{"/about/structure/?section=1&subsection=11", "11", true},
		{"/about/structure/?subsection=42&page=2", "42", true},
		{"/about/structure/?subsection=7#persons", "7", true},
		{"/about/structure/?subsection=", "", true},
		{"/about/news/", "", false},
	}

	for _, tt := range tests {
		got, ok := subsectionCode(tt.href, "subsection=")
		if got != tt.want || ok != tt.wantOK {
			t.Errorf("subsectionCode(%q) = %q, %v, want %q, %v", tt.href, got, ok, tt.want, tt.wantOK)
		}
	}
}

func TestResolveURL(t *testing.T) {
	t.Parallel()

	const base = "https://court.test/about/structure/?section=1"

	tests := []struct {
		name string
		ref  string
		want string
	}{
		{"absolute path", "/judges/1/", "https://court.test/judges/1/"},
		{"relative query", "?section=2", "https://court.test/about/structure/?section=2"},
		{"already absolute", "https://cdn.court.test/p.jpg", "https://cdn.court.test/p.jpg"},
		{"surrounding spaces", "  /upload/p.jpg ", "https://court.test/upload/p.jpg"},
		{"empty", "", ""},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			if got := resolveURL(base, tt.ref); got != tt.want {
				t.Errorf("resolveURL(%q) = %q, want %q", tt.ref, got, tt.want)
			}
		})
	}
}

func TestTextCleaner(t *testing.T) {
	t.Parallel()

	tc := newTextCleaner()

	t.Run("line collapses breaks", func(t *testing.T) {
		t.Parallel()
		if got := tc.line("  Судебная\n\tколлегия  "); got != "Судебная коллегия" {
			t.Errorf("line() = %q", got)
		}
	})

	t.Run("line composes", func(t *testing.T) {
		t.Parallel()
		// "й" written as "и" + combining breve.
		if got := tc.line("Андрей"); got != "Андрей" {
			t.Errorf("line() = %q, want NFC form", got)
		}
	})

	t.Run("block keeps lines", func(t *testing.T) {
		t.Parallel()
		got := tc.block("\n  МГУ,   1990\n\n   Аспирантура  \n")
		if got != "МГУ, 1990\nАспирантура" {
			t.Errorf("block() = %q", got)
		}
	})

	t.Run("contains ignores case", func(t *testing.T) {
		t.Parallel()
		if !tc.contains("Высший КВАЛИФИКАЦИОННЫЙ класс", "квалификационный класс") {
			t.Error("contains() = false, want true")
		}
		if tc.contains("Судья", "") {
			t.Error("contains() with empty marker = true, want false")
		}
	})
}
