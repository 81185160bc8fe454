// Copyright (c) 2025 ToeiRei
// SGPI - building management system
// This source code is licensed under the MIT license found in the LICENSE file.

// Package importer reads room records from an Excel spreadsheet and inserts
// them into the store in one atomic batch.
package importer

import (
	"fmt"
	"os"

	"github.com/toeirei/sgpi/internal/db"
	"github.com/toeirei/sgpi/internal/model"
	"github.com/xuri/excelize/v2"
)

// roomColumns is the positional column layout of an import sheet:
// owner, floor, room, company, office type. The first row is a header.
const roomColumns = 5

// ImportRooms reads the spreadsheet at path and inserts every data row into
// the rooms table. A missing file reports zero imported with no error. The
// first sheet is used and its header row skipped. Rows shorter than five
// columns are padded with empty cells (spreadsheet libraries drop trailing
// blanks); rows with extra columns abort the import. All rows are committed
// in a single transaction: on any failure nothing is inserted.
func ImportRooms(store db.Store, path string) (int, error) {
	if _, err := os.Stat(path); err != nil {
		if os.IsNotExist(err) {
			return 0, nil
		}
		return 0, fmt.Errorf("failed to stat spreadsheet: %w", err)
	}

	f, err := excelize.OpenFile(path)
	if err != nil {
		return 0, fmt.Errorf("failed to open spreadsheet: %w", err)
	}
	defer func() { _ = f.Close() }()

	sheet := f.GetSheetName(0)
	if sheet == "" {
		return 0, fmt.Errorf("spreadsheet has no sheets")
	}

	rows, err := f.GetRows(sheet)
	if err != nil {
		return 0, fmt.Errorf("failed to read rows: %w", err)
	}
	if len(rows) < 2 {
		// Header only (or empty): nothing to import.
		return 0, nil
	}

	records := make([]model.Room, 0, len(rows)-1)
	for i, row := range rows[1:] {
		if len(row) > roomColumns {
			return 0, fmt.Errorf("row %d has %d columns, want %d", i+2, len(row), roomColumns)
		}
		for len(row) < roomColumns {
			row = append(row, "")
		}
		records = append(records, model.Room{
			Owner:      row[0],
			Floor:      row[1],
			Room:       row[2],
			Company:    row[3],
			OfficeType: row[4],
		})
	}

	return store.ImportRooms(records)
}
