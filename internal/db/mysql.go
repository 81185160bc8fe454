// Copyright (c) 2025 ToeiRei
// SGPI - building management system
// This source code is licensed under the MIT license found in the LICENSE file.

// package db provides the data access layer for SGPI.
// This file contains the MySQL implementation of the database store.
// Note: This implementation is considered experimental.
package db // import "github.com/toeirei/sgpi/internal/db"

import (
	_ "github.com/go-sql-driver/mysql" // MySQL driver
	"github.com/toeirei/sgpi/internal/model"
	"github.com/uptrace/bun"
)

// MySQLStore is the MySQL implementation of the Store interface.
type MySQLStore struct {
	bun *bun.DB
}

// NewMySQLStore wraps a migrated, MySQL-dialect *bun.DB in a Store.
func NewMySQLStore(bunDB *bun.DB) *MySQLStore {
	return &MySQLStore{bun: bunDB}
}

// CheckLogin verifies a username/password pair.
func (s *MySQLStore) CheckLogin(username, password string) (model.PrivilegeLevel, bool, error) {
	return CheckLoginBun(s.bun, username, password)
}

// InsertRoom appends one room record.
func (s *MySQLStore) InsertRoom(owner, floor, room, company, officeType string) error {
	return InsertRoomBun(s.bun, owner, floor, room, company, officeType)
}

// SearchRooms returns all rooms matching term; see SearchRoomsBun.
func (s *MySQLStore) SearchRooms(term string) ([]model.Room, error) {
	return SearchRoomsBun(s.bun, term)
}

// ImportRooms inserts the given rooms in a single transaction.
func (s *MySQLStore) ImportRooms(rooms []model.Room) (int, error) {
	return ImportRoomsBun(s.bun, rooms)
}

// CountRooms returns the total number of room records.
func (s *MySQLStore) CountRooms() (int, error) {
	return CountRoomsBun(s.bun)
}

// ListUsers retrieves id, username and level for every user row.
func (s *MySQLStore) ListUsers() ([]model.User, error) {
	return ListUsersBun(s.bun)
}

// AddUser inserts one user row; duplicate usernames surface as ErrDuplicate.
func (s *MySQLStore) AddUser(username, password string, level model.PrivilegeLevel) error {
	return AddUserBun(s.bun, username, password, level)
}

// DeleteUser deletes the user row with the given id; absent ids are a no-op.
func (s *MySQLStore) DeleteUser(id int) error {
	return DeleteUserBun(s.bun, id)
}
