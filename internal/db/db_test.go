package db

import (
	"database/sql"
	"errors"
	"testing"

	"github.com/toeirei/sgpi/internal/model"
	_ "modernc.org/sqlite"
)

func newTestDB(t *testing.T) string {
	t.Helper()
	dsn := "file:test_" + t.Name() + "?mode=memory&cache=shared"
	if err := InitDB("sqlite", dsn); err != nil {
		t.Fatalf("InitDB failed: %v", err)
	}
	return dsn
}

func TestInitDB_Migrations_Applied(t *testing.T) {
	dsn := newTestDB(t)

	sqlDB, err := sql.Open("sqlite", dsn)
	if err != nil {
		t.Fatalf("failed to open sql.DB for inspection: %v", err)
	}
	defer func() { _ = sqlDB.Close() }()

	for _, table := range []string{"rooms", "users", "schema_migrations"} {
		var name string
		err := sqlDB.QueryRow("SELECT name FROM sqlite_master WHERE type='table' AND name = ?", table).Scan(&name)
		if err != nil {
			t.Fatalf("expected table %s to exist after migrations: %v", table, err)
		}
	}
}

func TestInitDB_SeedsDefaultAdmin(t *testing.T) {
	_ = newTestDB(t)

	level, ok, err := CheckLogin("admin", "123")
	if err != nil {
		t.Fatalf("CheckLogin failed: %v", err)
	}
	if !ok {
		t.Fatalf("expected default admin credentials to match")
	}
	if level != model.LevelAdmin {
		t.Errorf("expected level %q, got %q", model.LevelAdmin, level)
	}

	// Wrong password must not match.
	_, ok, err = CheckLogin("admin", "wrong")
	if err != nil {
		t.Fatalf("CheckLogin failed: %v", err)
	}
	if ok {
		t.Errorf("expected wrong password to be rejected")
	}
}

func TestInitDB_SeedIsIdempotent(t *testing.T) {
	dsn := newTestDB(t)

	// A second initialization against the same database must not duplicate
	// the admin row.
	if err := InitDB("sqlite", dsn); err != nil {
		t.Fatalf("second InitDB failed: %v", err)
	}

	users, err := ListUsers()
	if err != nil {
		t.Fatalf("ListUsers failed: %v", err)
	}
	admins := 0
	for _, u := range users {
		if u.Username == "admin" {
			admins++
		}
	}
	if admins != 1 {
		t.Errorf("expected exactly one admin row, got %d", admins)
	}
}

func TestCheckLogin_UnknownCredentials(t *testing.T) {
	_ = newTestDB(t)

	for _, pair := range [][2]string{
		{"nobody", "123"},
		{"admin", ""},
		{"", ""},
		{"ADMIN", "123"}, // case-sensitive
	} {
		_, ok, err := CheckLogin(pair[0], pair[1])
		if err != nil {
			t.Fatalf("CheckLogin(%q, %q) failed: %v", pair[0], pair[1], err)
		}
		if ok {
			t.Errorf("CheckLogin(%q, %q) unexpectedly matched", pair[0], pair[1])
		}
	}
}

func TestAddUser_ThenLogin(t *testing.T) {
	_ = newTestDB(t)

	if err := AddUser("carla", "s3cret", model.LevelOperator); err != nil {
		t.Fatalf("AddUser failed: %v", err)
	}

	level, ok, err := CheckLogin("carla", "s3cret")
	if err != nil {
		t.Fatalf("CheckLogin failed: %v", err)
	}
	if !ok || level != model.LevelOperator {
		t.Errorf("expected operator match, got ok=%v level=%q", ok, level)
	}
}

func TestAddUser_DuplicateUsername(t *testing.T) {
	_ = newTestDB(t)

	if err := AddUser("dup", "a", model.LevelOperator); err != nil {
		t.Fatalf("first AddUser failed: %v", err)
	}
	err := AddUser("dup", "b", model.LevelAdmin)
	if !errors.Is(err, ErrDuplicate) {
		t.Fatalf("expected ErrDuplicate, got %v", err)
	}

	users, err := ListUsers()
	if err != nil {
		t.Fatalf("ListUsers failed: %v", err)
	}
	count := 0
	for _, u := range users {
		if u.Username == "dup" {
			count++
		}
	}
	if count != 1 {
		t.Errorf("expected one 'dup' row after rejected duplicate, got %d", count)
	}
}

func TestDeleteUser(t *testing.T) {
	_ = newTestDB(t)

	if err := AddUser("temp", "x", model.LevelOperator); err != nil {
		t.Fatalf("AddUser failed: %v", err)
	}
	users, err := ListUsers()
	if err != nil {
		t.Fatalf("ListUsers failed: %v", err)
	}
	var id int
	for _, u := range users {
		if u.Username == "temp" {
			id = u.ID
		}
	}
	if id == 0 {
		t.Fatalf("could not find inserted user")
	}

	if err := DeleteUser(id); err != nil {
		t.Fatalf("DeleteUser failed: %v", err)
	}

	_, ok, err := CheckLogin("temp", "x")
	if err != nil {
		t.Fatalf("CheckLogin failed: %v", err)
	}
	if ok {
		t.Errorf("expected deleted user to no longer authenticate")
	}
}

func TestDeleteUser_AbsentID(t *testing.T) {
	_ = newTestDB(t)

	before, err := ListUsers()
	if err != nil {
		t.Fatalf("ListUsers failed: %v", err)
	}

	// Deleting a non-existent id affects zero rows and must not error.
	if err := DeleteUser(99999); err != nil {
		t.Fatalf("DeleteUser of absent id failed: %v", err)
	}

	after, err := ListUsers()
	if err != nil {
		t.Fatalf("ListUsers failed: %v", err)
	}
	if len(after) != len(before) {
		t.Errorf("expected table unchanged, had %d rows, now %d", len(before), len(after))
	}
}

func TestListUsers_OmitsPasswords(t *testing.T) {
	_ = newTestDB(t)

	users, err := ListUsers()
	if err != nil {
		t.Fatalf("ListUsers failed: %v", err)
	}
	if len(users) == 0 {
		t.Fatalf("expected at least the seeded admin row")
	}
	for _, u := range users {
		if u.Password != "" {
			t.Errorf("expected password to be omitted for %q", u.Username)
		}
	}
}

func TestInitDB_UnsupportedType(t *testing.T) {
	if err := InitDB("oracle", "whatever"); err == nil {
		t.Fatalf("expected error for unsupported database type")
	}
}

func TestNewStoreFromDSN_SqliteConcreteStore(t *testing.T) {
	s, err := NewStoreFromDSN("sqlite", "file:test_"+t.Name()+"?mode=memory&cache=shared")
	if err != nil {
		t.Fatalf("NewStoreFromDSN failed: %v", err)
	}
	sq, ok := s.(*SqliteStore)
	if !ok {
		t.Fatalf("expected *SqliteStore, got %T", s)
	}
	if sq.bun == nil {
		t.Fatal("expected the store to carry a bun DB")
	}
	if _, err := sq.CountRooms(); err != nil {
		t.Errorf("CountRooms on constructed store failed: %v", err)
	}
}
