// Copyright (c) 2025 ToeiRei
// SGPI - building management system
// This source code is licensed under the MIT license found in the LICENSE file.

package db

import (
	"github.com/toeirei/sgpi/internal/model"
)

// Store defines the interface for all database operations in SGPI.
// This allows for multiple database backends to be implemented.
type Store interface {
	// Authentication
	CheckLogin(username, password string) (model.PrivilegeLevel, bool, error)

	// Room methods
	InsertRoom(owner, floor, room, company, officeType string) error
	SearchRooms(term string) ([]model.Room, error)
	ImportRooms(rooms []model.Room) (int, error)
	CountRooms() (int, error)

	// User methods
	ListUsers() ([]model.User, error)
	AddUser(username, password string, level model.PrivilegeLevel) error
	DeleteUser(id int) error
}
