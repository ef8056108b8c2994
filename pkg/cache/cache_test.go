package cache

import (
	"context"
	"os"
	"path/filepath"
	"testing"
	"time"
)

func TestNullCache(t *testing.T) {
	ctx := context.Background()
	c := NewNullCache()
	defer c.Close()

	data, hit, err := c.Get(ctx, "key")
	if err != nil {
		t.Fatalf("Get error: %v", err)
	}
	if hit || data != nil {
		t.Error("NullCache.Get should always return a nil miss")
	}

	if err := c.Set(ctx, "key", []byte("value"), time.Hour); err != nil {
		t.Errorf("Set error: %v", err)
	}
	if _, hit, _ = c.Get(ctx, "key"); hit {
		t.Error("NullCache should not store data")
	}
	if err := c.Delete(ctx, "key"); err != nil {
		t.Errorf("Delete error: %v", err)
	}
}

func TestFileCache(t *testing.T) {
	ctx := context.Background()
	c, err := NewFileCache(t.TempDir())
	if err != nil {
		t.Fatalf("NewFileCache error: %v", err)
	}
	defer c.Close()

	if _, hit, err := c.Get(ctx, "missing"); err != nil || hit {
		t.Fatalf("Get(missing) = hit %v, err %v; want miss", hit, err)
	}

	if err := c.Set(ctx, "stats", []byte(`[{"data_year":2012}]`), time.Hour); err != nil {
		t.Fatalf("Set error: %v", err)
	}
	data, hit, err := c.Get(ctx, "stats")
	if err != nil || !hit {
		t.Fatalf("Get(stats) = hit %v, err %v; want hit", hit, err)
	}
	if string(data) != `[{"data_year":2012}]` {
		t.Errorf("Get(stats) = %s", data)
	}

	if err := c.Delete(ctx, "stats"); err != nil {
		t.Fatalf("Delete error: %v", err)
	}
	if _, hit, _ := c.Get(ctx, "stats"); hit {
		t.Error("Get after Delete should miss")
	}
	if err := c.Delete(ctx, "stats"); err != nil {
		t.Errorf("Delete of missing key should not error: %v", err)
	}
}

func TestFileCacheExpired(t *testing.T) {
	ctx := context.Background()
	c, _ := NewFileCache(t.TempDir())
	fc := c.(*FileCache)
	now := time.Date(2024, 3, 7, 12, 0, 0, 0, time.UTC)
	fc.now = func() time.Time { return now }

	if err := c.Set(ctx, "k", []byte("v"), time.Hour); err != nil {
		t.Fatalf("Set error: %v", err)
	}
	if _, hit, _ := c.Get(ctx, "k"); !hit {
		t.Fatal("fresh entry should hit")
	}

	now = now.Add(2 * time.Hour)
	if _, hit, _ := c.Get(ctx, "k"); hit {
		t.Error("expired entry should be a miss")
	}
	if _, err := os.Stat(fc.path("k")); !os.IsNotExist(err) {
		t.Error("expired entry should be removed")
	}
}

func TestCanceledContext(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	fc, _ := NewFileCache(t.TempDir())
	for name, c := range map[string]Cache{"file": fc, "null": NewNullCache()} {
		t.Run(name, func(t *testing.T) {
			if _, hit, err := c.Get(ctx, "k"); hit || err == nil {
				t.Errorf("Get(canceled) = hit %v, err %v; want context error", hit, err)
			}
		})
	}
}

func TestFileCacheCorruptEntry(t *testing.T) {
	ctx := context.Background()
	dir := t.TempDir()
	c, _ := NewFileCache(dir)
	fc := c.(*FileCache)

	path := fc.path("k")
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(path, []byte("{not json"), 0o644); err != nil {
		t.Fatal(err)
	}

	if _, hit, err := c.Get(ctx, "k"); hit || err != nil {
		t.Errorf("corrupt entry = hit %v, err %v; want silent miss", hit, err)
	}
	if _, err := os.Stat(path); !os.IsNotExist(err) {
		t.Error("corrupt entry should be removed")
	}
}

func TestHash(t *testing.T) {
	h1 := Hash([]byte("hello"))
	if h1 != Hash([]byte("hello")) {
		t.Error("Hash should be deterministic")
	}
	if h1 == Hash([]byte("world")) {
		t.Error("Different inputs should produce different hashes")
	}
	if len(h1) != 64 {
		t.Errorf("Hash length should be 64, got %d", len(h1))
	}
}

func TestDefaultKeyer(t *testing.T) {
	k := NewDefaultKeyer()

	k1 := k.StatsKey("AK", StatsKeyOpts{From: 2012, To: 2022})
	k2 := k.StatsKey("AK", StatsKeyOpts{From: 2012, To: 2021})
	k3 := k.StatsKey("CO", StatsKeyOpts{From: 2012, To: 2022})
	if k1 == k2 || k1 == k3 {
		t.Error("Different regions or ranges should produce different keys")
	}
	if k1 != k.StatsKey("AK", StatsKeyOpts{From: 2012, To: 2022}) {
		t.Error("StatsKey should be deterministic")
	}
}

func TestScopedKeyer(t *testing.T) {
	scoped := NewScopedKeyer(NewDefaultKeyer(), "staging:")

	statsKey := scoped.StatsKey("AK", StatsKeyOpts{})
	if len(statsKey) < 9 || statsKey[:8] != "staging:" {
		t.Errorf("ScopedKeyer StatsKey should be prefixed: %s", statsKey)
	}
}

func TestScopedKeyerNilInner(t *testing.T) {
	scoped := NewScopedKeyer(nil, "prefix:")
	want := "prefix:" + NewDefaultKeyer().StatsKey("AK", StatsKeyOpts{From: 2012, To: 2022})
	if key := scoped.StatsKey("AK", StatsKeyOpts{From: 2012, To: 2022}); key != want {
		t.Errorf("StatsKey with nil inner = %s, want %s", key, want)
	}
}
