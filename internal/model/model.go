package model

import "fmt"

// PrivilegeLevel distinguishes the two capability sets a user can hold.
type PrivilegeLevel string

const (
	// LevelAdmin grants full access, including account management.
	LevelAdmin PrivilegeLevel = "admin"
	// LevelOperator grants room management only.
	LevelOperator PrivilegeLevel = "operator"
)

// Valid reports whether the level is one of the known privilege levels.
func (l PrivilegeLevel) Valid() bool {
	return l == LevelAdmin || l == LevelOperator
}

// Room represents one office/unit occupancy entry.
// Rooms are append-only: the current design has no update or delete path.
type Room struct {
	ID         int
	Owner      string
	Floor      string
	Room       string
	Company    string
	OfficeType string
}

// String returns the room@company representation used in logs.
func (r Room) String() string {
	return fmt.Sprintf("%s/%s (%s)", r.Floor, r.Room, r.Company)
}

// User represents an application account. Passwords are stored as entered;
// the Password field is empty on rows read back for listing.
type User struct {
	ID       int
	Username string
	Password string
	Level    PrivilegeLevel
}
