package logos

import (
	"os"
	"path/filepath"
	"testing"
)

func TestFilename(t *testing.T) {
	r := NewResolver("logos")
	cases := []struct {
		company string
		want    string
	}{
		{"Acme", "acme.png"},
		{"Acme, Inc.", "acme_inc.png"},
		{"Big Data Co", "big_data_co.png"},
		{"J.P. Partners", "jp_partners.png"},
	}
	for _, tc := range cases {
		if got := r.Filename(tc.company); got != tc.want {
			t.Fatalf("Filename(%q) = %q, want %q", tc.company, got, tc.want)
		}
	}
}

func TestResolve(t *testing.T) {
	dir := t.TempDir()
	logoPath := filepath.Join(dir, "acme_inc.png")
	if err := os.WriteFile(logoPath, []byte("png"), 0o644); err != nil {
		t.Fatalf("write logo: %v", err)
	}
	r := NewResolver(dir)

	path, found := r.Resolve("Acme, Inc.")
	if !found || path != logoPath {
		t.Fatalf("Resolve = (%q, %v)", path, found)
	}

	if _, found := r.Resolve("Ghost Corp"); found {
		t.Fatalf("missing logo should resolve to not found")
	}
}

func TestResolveDisabled(t *testing.T) {
	r := NewResolver("")
	if _, found := r.Resolve("Acme"); found {
		t.Fatalf("resolver without a directory should never find logos")
	}
	if _, found := (&Resolver{Dir: "somewhere"}).Resolve(""); found {
		t.Fatalf("empty company should resolve to not found")
	}
}
