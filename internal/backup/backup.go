// Copyright (c) 2025 ToeiRei
// SGPI - building management system
// This source code is licensed under the MIT license found in the LICENSE file.

// Package backup produces timestamped backup artifacts of the configured
// database. SQLite databases are copied byte-for-byte; networked backends are
// dumped through their standard dump utility.
package backup

import (
	"fmt"
	"io"
	"os"
	"os/exec"
	"path/filepath"
	"strings"
	"time"

	"github.com/go-sql-driver/mysql"
)

// timestampLayout names artifacts as backup_YYYYMMDD_HHMMSS.<ext>.
const timestampLayout = "20060102_150405"

// nowFunc allows tests to pin the artifact timestamp.
var nowFunc = time.Now

// Run produces a backup artifact for the given backend in dir and returns its
// path. The error carries the underlying cause (missing dump utility, SQLite
// file unreadable, dump exit status); a partial artifact is removed before
// returning. Callers decide how much of the cause to surface.
func Run(dbType, dsn, dir string) (string, error) {
	if err := os.MkdirAll(dir, 0755); err != nil {
		return "", fmt.Errorf("failed to create backup directory: %w", err)
	}

	ts := nowFunc().Format(timestampLayout)
	switch dbType {
	case "sqlite":
		return copySqliteFile(dsn, filepath.Join(dir, "backup_"+ts+".db"))
	case "postgres":
		return runDump(filepath.Join(dir, "backup_"+ts+".sql"), "pg_dump", dsn)
	case "mysql":
		args, err := mysqldumpArgs(dsn)
		if err != nil {
			return "", err
		}
		return runDump(filepath.Join(dir, "backup_"+ts+".sql"), "mysqldump", args...)
	default:
		return "", fmt.Errorf("unsupported db type for backup: %s", dbType)
	}
}

// sqliteFilePath strips the optional file: scheme and query parameters from a
// SQLite DSN, leaving the on-disk path.
func sqliteFilePath(dsn string) string {
	path := strings.TrimPrefix(dsn, "file:")
	if i := strings.IndexByte(path, '?'); i >= 0 {
		path = path[:i]
	}
	return path
}

func copySqliteFile(dsn, dst string) (string, error) {
	src := sqliteFilePath(dsn)
	if src == ":memory:" || src == "" {
		return "", fmt.Errorf("sqlite database %q has no backing file to back up", dsn)
	}

	in, err := os.Open(src)
	if err != nil {
		return "", fmt.Errorf("failed to open database file: %w", err)
	}
	defer func() { _ = in.Close() }()

	out, err := os.Create(dst)
	if err != nil {
		return "", fmt.Errorf("failed to create backup file: %w", err)
	}

	if _, err := io.Copy(out, in); err != nil {
		_ = out.Close()
		_ = os.Remove(dst)
		return "", fmt.Errorf("failed to copy database file: %w", err)
	}
	if err := out.Close(); err != nil {
		_ = os.Remove(dst)
		return "", fmt.Errorf("failed to finalize backup file: %w", err)
	}
	return dst, nil
}

// runDump invokes an external dump utility with stdout redirected to dst.
func runDump(dst, tool string, args ...string) (string, error) {
	out, err := os.Create(dst)
	if err != nil {
		return "", fmt.Errorf("failed to create backup file: %w", err)
	}

	cmd := exec.Command(tool, args...)
	cmd.Stdout = out
	var stderr strings.Builder
	cmd.Stderr = &stderr

	if err := cmd.Run(); err != nil {
		_ = out.Close()
		_ = os.Remove(dst)
		if msg := strings.TrimSpace(stderr.String()); msg != "" {
			return "", fmt.Errorf("%s failed: %w: %s", tool, err, msg)
		}
		return "", fmt.Errorf("%s failed: %w", tool, err)
	}
	if err := out.Close(); err != nil {
		_ = os.Remove(dst)
		return "", fmt.Errorf("failed to finalize backup file: %w", err)
	}
	return dst, nil
}

// mysqldumpArgs translates a go-sql-driver DSN into mysqldump arguments.
func mysqldumpArgs(dsn string) ([]string, error) {
	cfg, err := mysql.ParseDSN(dsn)
	if err != nil {
		return nil, fmt.Errorf("failed to parse mysql DSN: %w", err)
	}

	host := cfg.Addr
	port := ""
	if h, p, ok := strings.Cut(cfg.Addr, ":"); ok {
		host, port = h, p
	}

	args := []string{"--host", host}
	if port != "" {
		args = append(args, "--port", port)
	}
	if cfg.User != "" {
		args = append(args, "--user", cfg.User)
	}
	if cfg.Passwd != "" {
		args = append(args, "--password="+cfg.Passwd)
	}
	args = append(args, cfg.DBName)
	return args, nil
}
