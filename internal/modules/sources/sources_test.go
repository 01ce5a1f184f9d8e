package sources

import (
	"os"
	"path/filepath"
	"testing"

	"go.uber.org/zap/zaptest"
)

func writeTemp(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "sources.csv")
	if err := os.WriteFile(path, []byte(content), 0644); err != nil {
		t.Fatal(err)
	}
	return path
}

func TestLoad(t *testing.T) {
	logger := zaptest.NewLogger(t)
	path := writeTemp(t, "Urls\npicsum.photos/640/480?random\n\nhttps://example.com/img\n")

	list, err := Load(path, logger)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	want := []string{"http://picsum.photos/640/480?random", "https://example.com/img"}
	if len(list.urls) != len(want) {
		t.Fatalf("loaded %d urls, want %d", len(list.urls), len(want))
	}
	for i, u := range want {
		if list.urls[i] != u {
			t.Errorf("urls[%d] = %q, want %q", i, list.urls[i], u)
		}
	}
}

func TestLoadHeaderOnly(t *testing.T) {
	logger := zaptest.NewLogger(t)
	path := writeTemp(t, "Urls\n")

	if _, err := Load(path, logger); err == nil {
		t.Error("expected error for file with no entries")
	}
}

func TestLoadMissingFile(t *testing.T) {
	logger := zaptest.NewLogger(t)
	if _, err := Load(filepath.Join(t.TempDir(), "absent.csv"), logger); err == nil {
		t.Error("expected error for missing file")
	}
}

func TestPickStaysInSet(t *testing.T) {
	logger := zaptest.NewLogger(t)
	path := writeTemp(t, "Urls\nhttps://a.example\nhttps://b.example\n")

	list, err := Load(path, logger)
	if err != nil {
		t.Fatal(err)
	}

	members := map[string]bool{"https://a.example": true, "https://b.example": true}
	for i := 0; i < 20; i++ {
		if u := list.Pick(); !members[u] {
			t.Fatalf("Pick() = %q, not in loaded set", u)
		}
	}
}

func TestFixed(t *testing.T) {
	p := Fixed("https://example.com/640/480?random")
	for i := 0; i < 3; i++ {
		if got := p.Pick(); got != "https://example.com/640/480?random" {
			t.Errorf("Pick() = %q", got)
		}
	}
}
