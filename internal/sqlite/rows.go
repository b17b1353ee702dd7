// Row CRUD and relocation for the SQLite backend.
//
// Row mutations keep the owner table's denormalized rows counter and
// updated_at in the same transaction as the row write, so the counter cannot
// drift from the true child count on a crash or concurrent interleaving.
package sqlite

import (
	"database/sql"
	"encoding/json"
	"fmt"
	"strings"
	"time"

	"github.com/routedeck/routedeck/pkg/types"
)

const rowColumns = "row_id, table_id, code, location, delivery, lat, lng, data"

// AddRow creates a data row under the table, increments the owner's row
// counter, and bumps its updated_at, all in one transaction. Returns
// ErrNotFound if the table does not exist.
func (b *Backend) AddRow(tableID string, row *types.TableRow) (*types.TableRow, error) {
	if tableID == "" {
		return nil, types.ErrInvalidID
	}
	db, err := b.handle()
	if err != nil {
		return nil, err
	}

	blob, err := marshalRowData(row)
	if err != nil {
		return nil, err
	}

	tx, err := db.Begin()
	if err != nil {
		return nil, fmt.Errorf("beginning transaction: %w", err)
	}
	defer tx.Rollback()

	var exists int
	if err := tx.QueryRow("SELECT 1 FROM tables WHERE table_id = ?", tableID).Scan(&exists); err != nil {
		if err == sql.ErrNoRows {
			return nil, types.ErrNotFound
		}
		return nil, fmt.Errorf("checking table existence: %w", err)
	}

	created := &types.TableRow{
		RowID:    generateUUID(),
		TableID:  tableID,
		Code:     row.Code,
		Location: row.Location,
		Delivery: row.Delivery,
		Lat:      row.Lat,
		Lng:      row.Lng,
		Data:     row.Data,
	}

	_, err = tx.Exec(
		"INSERT INTO table_data ("+rowColumns+") VALUES (?, ?, ?, ?, ?, ?, ?, ?)",
		created.RowID, created.TableID, created.Code, created.Location,
		created.Delivery, created.Lat, created.Lng, blob,
	)
	if err != nil {
		return nil, fmt.Errorf("inserting row: %w", err)
	}

	if err := touchTable(tx, tableID, +1); err != nil {
		return nil, err
	}

	if err := tx.Commit(); err != nil {
		return nil, fmt.Errorf("committing row insert: %w", err)
	}
	return created, nil
}

// UpdateRows replaces the structured fields and data blob of every given row
// by id in a single transaction; all succeed or all fail together. Returns
// ErrNotFound if any row id is absent.
func (b *Backend) UpdateRows(rows []*types.TableRow) error {
	db, err := b.handle()
	if err != nil {
		return err
	}

	tx, err := db.Begin()
	if err != nil {
		return fmt.Errorf("beginning transaction: %w", err)
	}
	defer tx.Rollback()

	for _, row := range rows {
		if row.RowID == "" {
			return types.ErrInvalidID
		}
		blob, err := marshalRowData(row)
		if err != nil {
			return err
		}
		res, err := tx.Exec(
			"UPDATE table_data SET code = ?, location = ?, delivery = ?, lat = ?, lng = ?, data = ? WHERE row_id = ?",
			row.Code, row.Location, row.Delivery, row.Lat, row.Lng, blob, row.RowID,
		)
		if err != nil {
			return fmt.Errorf("updating row %s: %w", row.RowID, err)
		}
		affected, err := res.RowsAffected()
		if err != nil {
			return fmt.Errorf("updating row %s: %w", row.RowID, err)
		}
		if affected == 0 {
			return types.ErrNotFound
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("committing row updates: %w", err)
	}
	return nil
}

// DeleteRow removes one data row and decrements the owner's row counter in
// one transaction. Returns ErrNotFound if the row does not exist under the
// table.
func (b *Backend) DeleteRow(tableID, rowID string) error {
	if tableID == "" || rowID == "" {
		return types.ErrInvalidID
	}
	db, err := b.handle()
	if err != nil {
		return err
	}

	tx, err := db.Begin()
	if err != nil {
		return fmt.Errorf("beginning transaction: %w", err)
	}
	defer tx.Rollback()

	res, err := tx.Exec("DELETE FROM table_data WHERE row_id = ? AND table_id = ?", rowID, tableID)
	if err != nil {
		return fmt.Errorf("deleting row %s: %w", rowID, err)
	}
	affected, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("deleting row %s: %w", rowID, err)
	}
	if affected == 0 {
		return types.ErrNotFound
	}

	if err := touchTable(tx, tableID, -1); err != nil {
		return err
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("committing row deletion: %w", err)
	}
	return nil
}

// MoveRows relocates the given rows from the source table to the destination
// table: copies with fresh ids are inserted first, then the originals are
// bulk-deleted, both inside one transaction. Row identity is not preserved
// across the move; the destination gets new ids on purpose.
//
// Fails fast with ErrNoRowsFound, performing no mutation, when none of the
// ids exist under the source table. Returns the number of rows moved.
func (b *Backend) MoveRows(sourceTableID, destinationTableID string, rowIDs []string) (int, error) {
	if sourceTableID == "" || destinationTableID == "" {
		return 0, types.ErrInvalidID
	}
	if len(rowIDs) == 0 {
		return 0, types.ErrNoRowsFound
	}
	db, err := b.handle()
	if err != nil {
		return 0, err
	}

	// Fetch the rows to move. Scoping by source table defends against
	// stale client state and cross-table id confusion.
	placeholders := make([]string, len(rowIDs))
	args := make([]any, 0, len(rowIDs)+1)
	for i, id := range rowIDs {
		placeholders[i] = "?"
		args = append(args, id)
	}
	args = append(args, sourceTableID)

	query := "SELECT " + rowColumns + " FROM table_data WHERE row_id IN (" +
		strings.Join(placeholders, ", ") + ") AND table_id = ?"
	rows, err := db.Query(query, args...)
	if err != nil {
		return 0, fmt.Errorf("querying rows to move: %w", err)
	}

	var toMove []*types.TableRow
	for rows.Next() {
		r, err := hydrateRow(rows)
		if err != nil {
			rows.Close()
			return 0, fmt.Errorf("hydrating row to move: %w", err)
		}
		toMove = append(toMove, r)
	}
	if err := rows.Err(); err != nil {
		rows.Close()
		return 0, fmt.Errorf("iterating rows to move: %w", err)
	}
	rows.Close()

	if len(toMove) == 0 {
		return 0, types.ErrNoRowsFound
	}

	tx, err := db.Begin()
	if err != nil {
		return 0, fmt.Errorf("beginning transaction: %w", err)
	}
	defer tx.Rollback()

	var exists int
	if err := tx.QueryRow("SELECT 1 FROM tables WHERE table_id = ?", destinationTableID).Scan(&exists); err != nil {
		if err == sql.ErrNoRows {
			return 0, types.ErrNotFound
		}
		return 0, fmt.Errorf("checking destination table: %w", err)
	}

	// Phase 1: copy every row to the destination under a fresh id.
	for _, r := range toMove {
		blob, err := marshalRowData(r)
		if err != nil {
			return 0, err
		}
		_, err = tx.Exec(
			"INSERT INTO table_data ("+rowColumns+") VALUES (?, ?, ?, ?, ?, ?, ?, ?)",
			generateUUID(), destinationTableID, r.Code, r.Location, r.Delivery, r.Lat, r.Lng, blob,
		)
		if err != nil {
			return 0, fmt.Errorf("copying row %s: %w", r.RowID, err)
		}
	}

	// Phase 2: bulk-delete the originals by id set.
	delArgs := make([]any, len(toMove))
	delPlaceholders := make([]string, len(toMove))
	for i, r := range toMove {
		delPlaceholders[i] = "?"
		delArgs[i] = r.RowID
	}
	_, err = tx.Exec(
		"DELETE FROM table_data WHERE row_id IN ("+strings.Join(delPlaceholders, ", ")+")",
		delArgs...,
	)
	if err != nil {
		return 0, fmt.Errorf("deleting moved rows: %w", err)
	}

	moved := len(toMove)
	if err := touchTable(tx, sourceTableID, -moved); err != nil {
		return 0, err
	}
	if err := touchTable(tx, destinationTableID, +moved); err != nil {
		return 0, err
	}

	if err := tx.Commit(); err != nil {
		return 0, fmt.Errorf("committing row move: %w", err)
	}
	return moved, nil
}

// touchTable adjusts a table's denormalized row counter by delta and bumps
// its updated_at. Runs inside the caller's transaction.
func touchTable(tx *sql.Tx, tableID string, delta int) error {
	_, err := tx.Exec(
		"UPDATE tables SET rows = rows + ?, updated_at = ? WHERE table_id = ?",
		delta, time.Now().UTC().Format(timeFormat), tableID,
	)
	if err != nil {
		return fmt.Errorf("touching table %s: %w", tableID, err)
	}
	return nil
}

// marshalRowData encodes the row's open data map, falling back to the
// structured fields when the caller supplied no map, so the blob always
// mirrors the row.
func marshalRowData(row *types.TableRow) (string, error) {
	data := row.Data
	if data == nil {
		data = map[string]any{
			"code":     row.Code,
			"location": row.Location,
			"delivery": row.Delivery,
			"lat":      row.Lat,
			"lng":      row.Lng,
		}
	}
	blob, err := json.Marshal(data)
	if err != nil {
		return "", fmt.Errorf("marshaling row data: %w", err)
	}
	return string(blob), nil
}

// hydrateRow converts one SQLite result row into a *types.TableRow.
func hydrateRow(s scanner) (*types.TableRow, error) {
	var r types.TableRow
	var blob string
	if err := s.Scan(&r.RowID, &r.TableID, &r.Code, &r.Location, &r.Delivery, &r.Lat, &r.Lng, &blob); err != nil {
		return nil, err
	}
	if blob != "" {
		if err := json.Unmarshal([]byte(blob), &r.Data); err != nil {
			return nil, fmt.Errorf("parsing data blob for row %s: %w", r.RowID, err)
		}
	}
	return &r, nil
}
