package db

import (
	"errors"
	"testing"
)

func TestMapDBError(t *testing.T) {
	cases := []struct {
		name string
		in   error
		want error
	}{
		{"nil", nil, nil},
		{"sqlite unique", errors.New("constraint failed: UNIQUE constraint failed: users.username"), ErrDuplicate},
		{"postgres 23505", errors.New("ERROR: duplicate key value violates unique constraint \"users_username_key\" (SQLSTATE 23505)"), ErrDuplicate},
		{"mysql 1062", errors.New("Error 1062: Duplicate entry 'admin' for key 'username'"), ErrDuplicate},
	}
	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			got := MapDBError(c.in)
			if !errors.Is(got, c.want) && got != c.want {
				t.Errorf("MapDBError(%v) = %v, want %v", c.in, got, c.want)
			}
		})
	}

	// Unrelated errors pass through unchanged.
	sentinel := errors.New("connection refused")
	if got := MapDBError(sentinel); got != sentinel {
		t.Errorf("expected unrelated error to pass through, got %v", got)
	}
}
