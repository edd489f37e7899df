package cli

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/matzehuels/bandslicer/pkg/config"
)

func TestCachePath(t *testing.T) {
	isolate(t)
	out, err := runCLI(t, nil, "cache", "path")
	if err != nil {
		t.Fatalf("cache path: %v", err)
	}
	want := filepath.Join(os.Getenv("XDG_CACHE_HOME"), appName)
	if strings.TrimSpace(out) != want {
		t.Errorf("cache path = %q, want %q", strings.TrimSpace(out), want)
	}
}

func TestCachePathFromConfig(t *testing.T) {
	isolate(t)
	dir := t.TempDir()
	cfg := writeFile(t, dir, "config.toml", "[cache]\ndir = \""+filepath.ToSlash(filepath.Join(dir, "cache"))+"\"\n")

	out, err := runCLI(t, nil, "--config", cfg, "cache", "path")
	if err != nil {
		t.Fatalf("cache path: %v", err)
	}
	if got, want := strings.TrimSpace(out), filepath.Join(dir, "cache"); filepath.Clean(got) != filepath.Clean(want) {
		t.Errorf("cache path = %q, want %q", got, want)
	}
}

func TestCacheClear(t *testing.T) {
	isolate(t)
	dir := t.TempDir()
	input := writeFile(t, dir, "box.json", boxJSON)

	if _, err := runCLI(t, nil, "slice", input, "-o", filepath.Join(dir, "out.json")); err != nil {
		t.Fatalf("slice: %v", err)
	}
	cacheRoot := filepath.Join(os.Getenv("XDG_CACHE_HOME"), appName)
	if n := countFiles(t, cacheRoot); n == 0 {
		t.Fatal("slice did not populate the cache")
	}

	if _, err := runCLI(t, nil, "cache", "clear"); err != nil {
		t.Fatalf("cache clear: %v", err)
	}
	if n := countFiles(t, cacheRoot); n != 0 {
		t.Errorf("%d files left after clear", n)
	}
}

func TestCacheClearDisabled(t *testing.T) {
	isolate(t)
	dir := t.TempDir()
	input := writeFile(t, dir, "box.json", boxJSON)

	if _, err := runCLI(t, nil, "slice", input, "-o", filepath.Join(dir, "out.json")); err != nil {
		t.Fatalf("slice: %v", err)
	}
	cacheRoot := filepath.Join(os.Getenv("XDG_CACHE_HOME"), appName)
	before := countFiles(t, cacheRoot)

	if _, err := runCLI(t, nil, "--no-cache", "cache", "clear"); err != nil {
		t.Fatalf("cache clear: %v", err)
	}
	if n := countFiles(t, cacheRoot); n != before {
		t.Errorf("disabled clear left %d files, want %d", n, before)
	}
}

func TestCacheEnabled(t *testing.T) {
	tests := []struct {
		name    string
		noCache bool
		backend string
		want    bool
	}{
		{"file", false, config.BackendFile, true},
		{"redis", false, config.BackendRedis, true},
		{"none backend", false, config.BackendNone, false},
		{"no-cache flag", true, config.BackendFile, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c := &CLI{noCache: tt.noCache}
			cfg := &config.Config{Cache: config.CacheConfig{Backend: tt.backend}}
			if got := c.cacheEnabled(cfg); got != tt.want {
				t.Errorf("cacheEnabled() = %v, want %v", got, tt.want)
			}
		})
	}
}

func countFiles(t *testing.T, dir string) int {
	t.Helper()
	n := 0
	_ = filepath.Walk(dir, func(path string, info os.FileInfo, err error) error {
		if err == nil && !info.IsDir() {
			n++
		}
		return nil
	})
	return n
}
