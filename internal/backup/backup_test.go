package backup

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"
)

func TestRun_SqliteCopiesFile(t *testing.T) {
	dir := t.TempDir()
	src := filepath.Join(dir, "sgpi.db")
	content := []byte("pretend sqlite payload")
	if err := os.WriteFile(src, content, 0600); err != nil {
		t.Fatalf("write source: %v", err)
	}

	prev := nowFunc
	nowFunc = func() time.Time { return time.Date(2025, 3, 14, 15, 9, 26, 0, time.UTC) }
	defer func() { nowFunc = prev }()

	backupDir := filepath.Join(dir, "backups")
	path, err := Run("sqlite", src, backupDir)
	if err != nil {
		t.Fatalf("Run failed: %v", err)
	}
	if filepath.Base(path) != "backup_20250314_150926.db" {
		t.Errorf("unexpected artifact name: %s", path)
	}

	got, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("read artifact: %v", err)
	}
	if string(got) != string(content) {
		t.Errorf("artifact content differs from source")
	}
}

func TestRun_SqliteDSNWithParams(t *testing.T) {
	dir := t.TempDir()
	src := filepath.Join(dir, "sgpi.db")
	if err := os.WriteFile(src, []byte("x"), 0600); err != nil {
		t.Fatalf("write source: %v", err)
	}

	path, err := Run("sqlite", "file:"+src+"?cache=shared", filepath.Join(dir, "b"))
	if err != nil {
		t.Fatalf("Run failed: %v", err)
	}
	if path == "" {
		t.Fatalf("expected artifact path")
	}
}

func TestRun_SqliteMissingFile(t *testing.T) {
	dir := t.TempDir()
	_, err := Run("sqlite", filepath.Join(dir, "absent.db"), filepath.Join(dir, "b"))
	if err == nil {
		t.Fatalf("expected error for missing database file")
	}
	// No stray artifact may remain.
	entries, _ := os.ReadDir(filepath.Join(dir, "b"))
	if len(entries) != 0 {
		t.Errorf("expected no artifacts, found %d", len(entries))
	}
}

func TestRun_SqliteInMemory(t *testing.T) {
	_, err := Run("sqlite", ":memory:", t.TempDir())
	if err == nil {
		t.Fatalf("expected error for in-memory database")
	}
}

func TestRun_UnsupportedType(t *testing.T) {
	_, err := Run("oracle", "dsn", t.TempDir())
	if err == nil || !strings.Contains(err.Error(), "unsupported") {
		t.Fatalf("expected unsupported type error, got %v", err)
	}
}

func TestRun_MissingDumpTool(t *testing.T) {
	// Point PATH at an empty directory so pg_dump cannot be found; the error
	// must carry the cause and no artifact may remain.
	t.Setenv("PATH", t.TempDir())

	dir := t.TempDir()
	_, err := Run("postgres", "postgres://localhost/sgpi", dir)
	if err == nil {
		t.Fatalf("expected error when pg_dump is unavailable")
	}
	entries, _ := os.ReadDir(dir)
	if len(entries) != 0 {
		t.Errorf("expected failed dump artifact to be removed, found %d entries", len(entries))
	}
}

func TestMysqldumpArgs(t *testing.T) {
	args, err := mysqldumpArgs("sgpi:secret@tcp(db.example.com:3307)/sgpi_prod")
	if err != nil {
		t.Fatalf("mysqldumpArgs failed: %v", err)
	}
	joined := strings.Join(args, " ")
	for _, want := range []string{"--host db.example.com", "--port 3307", "--user sgpi", "--password=secret", "sgpi_prod"} {
		if !strings.Contains(joined, want) {
			t.Errorf("args missing %q: %v", want, args)
		}
	}
}

func TestMysqldumpArgs_BadDSN(t *testing.T) {
	if _, err := mysqldumpArgs("::::"); err == nil {
		t.Fatalf("expected error for malformed DSN")
	}
}
