package weather

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/vmihailenco/msgpack/v5"
)

func writeTestCSV(t *testing.T, dir string) string {
	t.Helper()
	path := filepath.Join(dir, "weather.csv")
	if err := os.WriteFile(path, []byte(buildYearCSV(standardHeader, defaultRow)), 0644); err != nil {
		t.Fatalf("writing fixture: %v", err)
	}
	return path
}

func TestCacheServesStoredEntry(t *testing.T) {
	tmp := t.TempDir()
	csvPath := writeTestCSV(t, tmp)
	c := NewCache(filepath.Join(tmp, "cache"))

	records, _, err := c.LoadFile(csvPath)
	if err != nil {
		t.Fatalf("first load: %v", err)
	}
	if len(records) != 8760 {
		t.Fatalf("got %d records, want 8760", len(records))
	}

	// Replace the stored entry with a marked copy. If the second load
	// returns the mark, it came from the cache and not a reparse.
	records[0].GHI = 999
	raw, err := msgpack.Marshal(cacheEntry{Records: records})
	if err != nil {
		t.Fatalf("encoding marked entry: %v", err)
	}
	source, err := os.ReadFile(csvPath)
	if err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(c.path(Key(source)), raw, 0644); err != nil {
		t.Fatalf("overwriting cache entry: %v", err)
	}

	cached, _, err := c.LoadFile(csvPath)
	if err != nil {
		t.Fatalf("second load: %v", err)
	}
	if cached[0].GHI != 999 {
		t.Errorf("second load GHI = %v, want the marked cache entry", cached[0].GHI)
	}
}

func TestCacheCorruptEntryReparses(t *testing.T) {
	tmp := t.TempDir()
	csvPath := writeTestCSV(t, tmp)
	c := NewCache(filepath.Join(tmp, "cache"))

	if _, _, err := c.LoadFile(csvPath); err != nil {
		t.Fatalf("first load: %v", err)
	}

	source, err := os.ReadFile(csvPath)
	if err != nil {
		t.Fatal(err)
	}
	entryPath := c.path(Key(source))
	if err := os.WriteFile(entryPath, []byte("not msgpack"), 0644); err != nil {
		t.Fatalf("corrupting cache entry: %v", err)
	}

	records, _, err := c.LoadFile(csvPath)
	if err != nil {
		t.Fatalf("load with corrupt cache: %v", err)
	}
	if len(records) != 8760 || records[0].GHI != 120 {
		t.Errorf("reparse returned wrong data: %d records", len(records))
	}
}

func TestKey(t *testing.T) {
	a := Key([]byte("alpha"))
	if a != Key([]byte("alpha")) {
		t.Error("key is not deterministic")
	}
	if a == Key([]byte("beta")) {
		t.Error("different content should produce different keys")
	}
	if len(a) != 16 {
		t.Errorf("key length = %d, want 16 hex digits", len(a))
	}
}
