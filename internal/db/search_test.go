package db

import (
	"sort"
	"testing"

	"github.com/toeirei/sgpi/internal/model"
)

func seedRooms(t *testing.T) {
	t.Helper()
	for _, r := range []model.Room{
		{Owner: "Alice", Floor: "1", Room: "101", Company: "Acme", OfficeType: "open"},
		{Owner: "Bob", Floor: "2", Room: "202", Company: "Beta", OfficeType: "closed"},
	} {
		if err := InsertRoom(r.Owner, r.Floor, r.Room, r.Company, r.OfficeType); err != nil {
			t.Fatalf("InsertRoom failed: %v", err)
		}
	}
}

func ownersOf(rooms []model.Room) []string {
	out := make([]string, 0, len(rooms))
	for _, r := range rooms {
		out = append(out, r.Owner)
	}
	sort.Strings(out)
	return out
}

func TestSearchRooms_CaseInsensitiveCompanyMatch(t *testing.T) {
	_ = newTestDB(t)
	seedRooms(t)

	rooms, err := SearchRooms("acme")
	if err != nil {
		t.Fatalf("SearchRooms failed: %v", err)
	}
	if len(rooms) != 1 || rooms[0].Owner != "Alice" {
		t.Errorf("expected only the Acme row, got %v", rooms)
	}
}

func TestSearchRooms_RoomSubstringMatch(t *testing.T) {
	_ = newTestDB(t)
	seedRooms(t)

	// "2" matches Bob's room 202 but not Alice's 101.
	rooms, err := SearchRooms("2")
	if err != nil {
		t.Fatalf("SearchRooms failed: %v", err)
	}
	if len(rooms) != 1 || rooms[0].Owner != "Bob" {
		t.Errorf("expected only the Bob row, got %v", rooms)
	}
}

func TestSearchRooms_OwnerMatch(t *testing.T) {
	_ = newTestDB(t)
	seedRooms(t)

	rooms, err := SearchRooms("ALICE")
	if err != nil {
		t.Fatalf("SearchRooms failed: %v", err)
	}
	if len(rooms) != 1 || rooms[0].Company != "Acme" {
		t.Errorf("expected only Alice's row, got %v", rooms)
	}
}

func TestSearchRooms_EmptyTermListsAll(t *testing.T) {
	_ = newTestDB(t)
	seedRooms(t)

	rooms, err := SearchRooms("")
	if err != nil {
		t.Fatalf("SearchRooms failed: %v", err)
	}
	got := ownersOf(rooms)
	want := []string{"Alice", "Bob"}
	if len(got) != len(want) {
		t.Fatalf("expected %v, got %v", want, got)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Errorf("expected %v, got %v", want, got)
			break
		}
	}
}

func TestSearchRooms_NoMatch(t *testing.T) {
	_ = newTestDB(t)
	seedRooms(t)

	rooms, err := SearchRooms("zzz-no-such")
	if err != nil {
		t.Fatalf("SearchRooms failed: %v", err)
	}
	if len(rooms) != 0 {
		t.Errorf("expected no rows, got %v", rooms)
	}
}

func TestSearchRooms_FloorIsNotSearched(t *testing.T) {
	_ = newTestDB(t)

	// A term present only in the floor column must not match: the search
	// covers company, room and owner.
	if err := InsertRoom("Carol", "penthouse", "900", "Gamma", "open"); err != nil {
		t.Fatalf("InsertRoom failed: %v", err)
	}
	rooms, err := SearchRooms("penthouse")
	if err != nil {
		t.Fatalf("SearchRooms failed: %v", err)
	}
	if len(rooms) != 0 {
		t.Errorf("expected floor-only term to match no rows, got %v", rooms)
	}
}

func TestImportRooms_AllOrNothing(t *testing.T) {
	_ = newTestDB(t)

	n, err := ImportRooms([]model.Room{
		{Owner: "Alice", Floor: "1", Room: "101", Company: "Acme", OfficeType: "open"},
		{Owner: "Bob", Floor: "2", Room: "202", Company: "Beta", OfficeType: "closed"},
		{Owner: "Carol", Floor: "3", Room: "303", Company: "Gamma", OfficeType: "open"},
	})
	if err != nil {
		t.Fatalf("ImportRooms failed: %v", err)
	}
	if n != 3 {
		t.Errorf("expected 3 rows imported, got %d", n)
	}

	count, err := CountRooms()
	if err != nil {
		t.Fatalf("CountRooms failed: %v", err)
	}
	if count != 3 {
		t.Errorf("expected 3 rooms in table, got %d", count)
	}
}

func TestImportRooms_EmptySlice(t *testing.T) {
	_ = newTestDB(t)

	n, err := ImportRooms(nil)
	if err != nil {
		t.Fatalf("ImportRooms failed: %v", err)
	}
	if n != 0 {
		t.Errorf("expected 0 rows imported, got %d", n)
	}
}

func TestCountRooms_Empty(t *testing.T) {
	WithTestStore(t, func(s *SqliteStore) {
		count, err := s.CountRooms()
		if err != nil {
			t.Fatalf("CountRooms failed: %v", err)
		}
		if count != 0 {
			t.Errorf("expected empty rooms table, got %d", count)
		}
	})
}
