package layers

import (
	"os"
	"path/filepath"
	"testing"
)

func TestIsAuthoritative(t *testing.T) {
	table := DefaultAuthorityTable()

	tests := []struct {
		host string
		want bool
	}{
		{"github.com", true},
		{"en.wikipedia.org", true},
		{"fakewikipedia.org", false},
		{"cs.stanford.edu", true},
		{"nist.gov", true},
		{"example.com", false},
		{"GitHub.com", true},
	}

	for _, tt := range tests {
		t.Run(tt.host, func(t *testing.T) {
			if got := table.IsAuthoritative(tt.host); got != tt.want {
				t.Fatalf("IsAuthoritative(%q) = %v, want %v", tt.host, got, tt.want)
			}
		})
	}
}

func TestTierFor(t *testing.T) {
	table := DefaultAuthorityTable()

	tests := []struct {
		host string
		want string
	}{
		{"stackoverflow.com", Tier1},
		{"medium.com", Tier2},
		{"someblog.example.com", Tier3},
	}

	for _, tt := range tests {
		t.Run(tt.host, func(t *testing.T) {
			if got := table.TierFor(tt.host); got != tt.want {
				t.Fatalf("TierFor(%q) = %s, want %s", tt.host, got, tt.want)
			}
		})
	}
}

func TestLoadAuthorityTable(t *testing.T) {
	t.Run("empty path returns defaults", func(t *testing.T) {
		table, err := LoadAuthorityTable("")
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if !table.IsAuthoritative("github.com") {
			t.Fatal("defaults not loaded")
		}
	})

	t.Run("override file", func(t *testing.T) {
		path := filepath.Join(t.TempDir(), "authority.yaml")
		content := "authoritative:\n  - internal.corp\ntier1:\n  - internal.corp\ntier2:\n  - blog.corp\n"
		if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
			t.Fatal(err)
		}

		table, err := LoadAuthorityTable(path)
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if !table.IsAuthoritative("wiki.internal.corp") {
			t.Fatal("override host not authoritative")
		}
		if table.IsAuthoritative("github.com") {
			t.Fatal("defaults must not leak into an override table")
		}
		if got := table.TierFor("blog.corp"); got != Tier2 {
			t.Fatalf("expected tier2, got %s", got)
		}
	})

	t.Run("missing file", func(t *testing.T) {
		if _, err := LoadAuthorityTable(filepath.Join(t.TempDir(), "absent.yaml")); err == nil {
			t.Fatal("expected error for missing file")
		}
	})

	t.Run("empty table rejected", func(t *testing.T) {
		path := filepath.Join(t.TempDir(), "authority.yaml")
		if err := os.WriteFile(path, []byte("authoritative: []\n"), 0o644); err != nil {
			t.Fatal(err)
		}
		if _, err := LoadAuthorityTable(path); err == nil {
			t.Fatal("expected error for table with no hosts")
		}
	})
}
