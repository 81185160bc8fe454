// Copyright (c) 2025 ToeiRei
// SGPI - building management system
// This source code is licensed under the MIT license found in the LICENSE file.

package db

import (
	"testing"
)

// WithTestStore initializes an in-memory sqlite Store for the duration of the
// provided function and restores the package-level store afterwards.
func WithTestStore(t *testing.T, fn func(s *SqliteStore)) {
	t.Helper()

	prevStore := store

	// Initialize in-memory sqlite DB for this test
	dsn := "file:" + t.Name() + "?mode=memory&cache=shared"
	if err := InitDB("sqlite", dsn); err != nil {
		t.Fatalf("InitDB failed: %v", err)
	}
	s, ok := store.(*SqliteStore)
	if !ok {
		t.Fatalf("store is not *SqliteStore")
	}

	defer func() { store = prevStore }()

	fn(s)
}
