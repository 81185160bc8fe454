// Copyright (c) 2025 ToeiRei
// SGPI - building management system
// This source code is licensed under the MIT license found in the LICENSE file.

// package db provides the data access layer for SGPI.
// This file contains the SQLite implementation of the database store.
package db // import "github.com/toeirei/sgpi/internal/db"

import (
	"github.com/toeirei/sgpi/internal/model"
	"github.com/uptrace/bun"
	_ "modernc.org/sqlite" // Pure Go SQLite driver
)

// SqliteStore is the SQLite implementation of the Store interface.
type SqliteStore struct {
	bun *bun.DB
}

// NewSqliteStore wraps a migrated, SQLite-dialect *bun.DB in a Store.
func NewSqliteStore(bunDB *bun.DB) *SqliteStore {
	return &SqliteStore{bun: bunDB}
}

// CheckLogin verifies a username/password pair.
func (s *SqliteStore) CheckLogin(username, password string) (model.PrivilegeLevel, bool, error) {
	return CheckLoginBun(s.bun, username, password)
}

// InsertRoom appends one room record.
func (s *SqliteStore) InsertRoom(owner, floor, room, company, officeType string) error {
	err := InsertRoomBun(s.bun, owner, floor, room, company, officeType)
	if err == nil {
		dbLogf("db: inserted room %s/%s (%s)", floor, room, company)
	}
	return err
}

// SearchRooms returns all rooms matching term; see SearchRoomsBun.
func (s *SqliteStore) SearchRooms(term string) ([]model.Room, error) {
	return SearchRoomsBun(s.bun, term)
}

// ImportRooms inserts the given rooms in a single transaction.
func (s *SqliteStore) ImportRooms(rooms []model.Room) (int, error) {
	return ImportRoomsBun(s.bun, rooms)
}

// CountRooms returns the total number of room records.
func (s *SqliteStore) CountRooms() (int, error) {
	return CountRoomsBun(s.bun)
}

// ListUsers retrieves id, username and level for every user row.
func (s *SqliteStore) ListUsers() ([]model.User, error) {
	return ListUsersBun(s.bun)
}

// AddUser inserts one user row; duplicate usernames surface as ErrDuplicate.
func (s *SqliteStore) AddUser(username, password string, level model.PrivilegeLevel) error {
	return AddUserBun(s.bun, username, password, level)
}

// DeleteUser deletes the user row with the given id; absent ids are a no-op.
func (s *SqliteStore) DeleteUser(id int) error {
	return DeleteUserBun(s.bun, id)
}
