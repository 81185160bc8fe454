package db

import (
	"context"
	"database/sql"
	"fmt"
	"strings"

	"github.com/toeirei/sgpi/internal/model"
	"github.com/uptrace/bun"
)

// RoomModel maps the `rooms` table for Bun queries.
type RoomModel struct {
	bun.BaseModel `bun:"table:rooms"`
	ID            int    `bun:"id,pk,autoincrement"`
	Owner         string `bun:"owner"`
	Floor         string `bun:"floor"`
	Room          string `bun:"room"`
	Company       string `bun:"company"`
	OfficeType    string `bun:"office_type"`
}

// UserModel maps the `users` table for Bun queries.
type UserModel struct {
	bun.BaseModel `bun:"table:users"`
	ID            int    `bun:"id,pk,autoincrement"`
	Username      string `bun:"username"`
	Password      string `bun:"password"`
	Level         string `bun:"level"`
}

func roomModelToModel(r RoomModel) model.Room {
	return model.Room{
		ID:         r.ID,
		Owner:      r.Owner,
		Floor:      r.Floor,
		Room:       r.Room,
		Company:    r.Company,
		OfficeType: r.OfficeType,
	}
}

// CheckLoginBun returns the privilege level for an exact username/password
// match, or ok=false when no row matches. The comparison is case-sensitive
// and operates on the stored plain-text password.
func CheckLoginBun(bdb *bun.DB, username, password string) (model.PrivilegeLevel, bool, error) {
	ctx := context.Background()

	var u UserModel
	err := bdb.NewSelect().Model(&u).
		Column("level").
		Where("username = ?", username).
		Where("password = ?", password).
		Limit(1).
		Scan(ctx)
	if err != nil {
		if err == sql.ErrNoRows {
			return "", false, nil
		}
		return "", false, err
	}
	return model.PrivilegeLevel(u.Level), true, nil
}

// InsertRoomBun appends one room record. No validation is applied; empty and
// duplicate contents are allowed.
func InsertRoomBun(bdb *bun.DB, owner, floor, room, company, officeType string) error {
	ctx := context.Background()

	_, err := bdb.NewInsert().Model(&RoomModel{
		Owner:      owner,
		Floor:      floor,
		Room:       room,
		Company:    company,
		OfficeType: officeType,
	}).Exec(ctx)
	return err
}

// SearchRoomsBun returns all rooms whose company, room or owner contains term
// as a case-insensitive substring. The empty term matches every row. LOWER +
// LIKE is used rather than ILIKE so the query behaves identically on SQLite,
// Postgres and MySQL. Result ordering is backend-default and unspecified.
func SearchRoomsBun(bdb *bun.DB, term string) ([]model.Room, error) {
	ctx := context.Background()

	var rows []RoomModel
	q := bdb.NewSelect().Model(&rows)
	if term != "" {
		pattern := "%" + strings.ToLower(term) + "%"
		q = q.WhereGroup(" AND ", func(q *bun.SelectQuery) *bun.SelectQuery {
			return q.Where("LOWER(company) LIKE ?", pattern).
				WhereOr("LOWER(room) LIKE ?", pattern).
				WhereOr("LOWER(owner) LIKE ?", pattern)
		})
	}
	if err := q.Scan(ctx); err != nil {
		return nil, err
	}

	out := make([]model.Room, 0, len(rows))
	for _, r := range rows {
		out = append(out, roomModelToModel(r))
	}
	return out, nil
}

// ImportRoomsBun inserts the given rooms within a single transaction. Either
// every room is committed or none is; the returned count equals len(rooms) on
// success and is zero on failure.
func ImportRoomsBun(bdb *bun.DB, rooms []model.Room) (int, error) {
	ctx := context.Background()

	tx, err := bdb.BeginTx(ctx, nil)
	if err != nil {
		return 0, err
	}
	defer func() { _ = tx.Rollback() }()

	for i, r := range rooms {
		if _, err := tx.NewInsert().Model(&RoomModel{
			Owner:      r.Owner,
			Floor:      r.Floor,
			Room:       r.Room,
			Company:    r.Company,
			OfficeType: r.OfficeType,
		}).Exec(ctx); err != nil {
			return 0, fmt.Errorf("failed to insert imported row %d: %w", i+1, err)
		}
	}

	if err := tx.Commit(); err != nil {
		return 0, err
	}
	return len(rooms), nil
}

// CountRoomsBun returns the total number of room records.
func CountRoomsBun(bdb *bun.DB) (int, error) {
	ctx := context.Background()
	return bdb.NewSelect().Model((*RoomModel)(nil)).Count(ctx)
}

// ListUsersBun retrieves id, username and level for every user row. The
// password column is deliberately not read back.
func ListUsersBun(bdb *bun.DB) ([]model.User, error) {
	ctx := context.Background()

	var rows []UserModel
	if err := bdb.NewSelect().Model(&rows).
		Column("id", "username", "level").
		Scan(ctx); err != nil {
		return nil, err
	}

	out := make([]model.User, 0, len(rows))
	for _, u := range rows {
		out = append(out, model.User{
			ID:       u.ID,
			Username: u.Username,
			Level:    model.PrivilegeLevel(u.Level),
		})
	}
	return out, nil
}

// AddUserBun inserts one user row. A username collision surfaces as
// ErrDuplicate via MapDBError; other driver errors pass through unchanged.
func AddUserBun(bdb *bun.DB, username, password string, level model.PrivilegeLevel) error {
	ctx := context.Background()

	_, err := bdb.NewInsert().Model(&UserModel{
		Username: username,
		Password: password,
		Level:    string(level),
	}).Exec(ctx)
	return MapDBError(err)
}

// DeleteUserBun deletes the user row with the given primary key. Deleting an
// absent id affects zero rows and is not an error.
func DeleteUserBun(bdb *bun.DB, id int) error {
	ctx := context.Background()

	_, err := bdb.NewDelete().Model((*UserModel)(nil)).
		Where("id = ?", id).
		Exec(ctx)
	return err
}

// seedDefaultAdminBun inserts the default admin account (admin/123/admin)
// when no row with username "admin" exists. Idempotent across startups.
func seedDefaultAdminBun(bdb *bun.DB) error {
	ctx := context.Background()

	exists, err := bdb.NewSelect().Model((*UserModel)(nil)).
		Where("username = ?", "admin").
		Exists(ctx)
	if err != nil {
		return err
	}
	if exists {
		return nil
	}

	_, err = bdb.NewInsert().Model(&UserModel{
		Username: "admin",
		Password: "123",
		Level:    string(model.LevelAdmin),
	}).Exec(ctx)
	// A concurrent startup may have seeded the row between the check and the
	// insert; treat that as success.
	if MapDBError(err) == ErrDuplicate {
		return nil
	}
	return err
}
