// Table CRUD operations for the SQLite backend.
package sqlite

import (
	"database/sql"
	"fmt"
	"time"

	"github.com/routedeck/routedeck/pkg/types"
)

// timeFormat is RFC3339 with fixed-width nanoseconds so stored UTC
// timestamps sort lexicographically in chronological order.
const timeFormat = "2006-01-02T15:04:05.000000000Z07:00"

const tableColumns = "table_id, name, description, region, status, rows, created_by, created_at, updated_at"

// ListTables returns all tables in the region, most recently updated first.
// Rows on each result is a live COUNT of the table's data rows rather than
// the stored counter, so listings never show counter drift.
func (b *Backend) ListTables(region string) ([]*types.Table, error) {
	db, err := b.handle()
	if err != nil {
		return nil, err
	}

	rows, err := db.Query(`
		SELECT t.table_id, t.name, t.description, t.region, t.status,
		       COUNT(d.row_id), t.created_by, t.created_at, t.updated_at
		FROM tables t
		LEFT JOIN table_data d ON d.table_id = t.table_id
		WHERE t.region = ?
		GROUP BY t.table_id
		ORDER BY t.updated_at DESC`,
		region,
	)
	if err != nil {
		return nil, fmt.Errorf("listing tables for region %s: %w", region, err)
	}
	defer rows.Close()

	var results []*types.Table
	for rows.Next() {
		table, err := hydrateTable(rows)
		if err != nil {
			return nil, fmt.Errorf("hydrating table: %w", err)
		}
		results = append(results, table)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating tables: %w", err)
	}

	// Return empty slice, not nil: an unknown region is not an error.
	if results == nil {
		results = []*types.Table{}
	}
	return results, nil
}

// GetTable returns the table with its data rows embedded in creation order.
// Returns ErrNotFound if the id does not resolve.
func (b *Backend) GetTable(id string) (*types.Table, error) {
	if id == "" {
		return nil, types.ErrInvalidID
	}
	db, err := b.handle()
	if err != nil {
		return nil, err
	}

	row := db.QueryRow("SELECT "+tableColumns+" FROM tables WHERE table_id = ?", id)
	table, err := hydrateTable(row)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, types.ErrNotFound
		}
		return nil, fmt.Errorf("getting table %s: %w", id, err)
	}

	// Row ids are UUID v7, so primary-key order is creation order.
	dataRows, err := db.Query(
		"SELECT "+rowColumns+" FROM table_data WHERE table_id = ? ORDER BY row_id ASC",
		id,
	)
	if err != nil {
		return nil, fmt.Errorf("querying rows for table %s: %w", id, err)
	}
	defer dataRows.Close()

	table.TableData = []*types.TableRow{}
	for dataRows.Next() {
		r, err := hydrateRow(dataRows)
		if err != nil {
			return nil, fmt.Errorf("hydrating row: %w", err)
		}
		table.TableData = append(table.TableData, r)
	}
	if err := dataRows.Err(); err != nil {
		return nil, fmt.Errorf("iterating rows: %w", err)
	}

	return table, nil
}

// CreateTable creates a table with status active and returns the created
// record including generated id and timestamps.
func (b *Backend) CreateTable(params types.TableParams) (*types.Table, error) {
	if err := params.Validate(); err != nil {
		return nil, err
	}
	db, err := b.handle()
	if err != nil {
		return nil, err
	}

	now := time.Now().UTC()
	table := &types.Table{
		TableID:     generateUUID(),
		Name:        params.Name,
		Description: params.Description,
		Region:      params.Region,
		Status:      types.StatusActive,
		CreatedBy:   params.CreatedBy,
		CreatedAt:   now,
		UpdatedAt:   now,
	}

	_, err = db.Exec(
		"INSERT INTO tables ("+tableColumns+") VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)",
		table.TableID, table.Name, table.Description, table.Region, table.Status,
		table.Rows, table.CreatedBy, now.Format(timeFormat), now.Format(timeFormat),
	)
	if err != nil {
		return nil, fmt.Errorf("creating table: %w", err)
	}

	return table, nil
}

// UpdateTable applies a partial update: nil fields keep their stored value,
// updated_at is always bumped. Returns the updated record, or ErrNotFound
// if the id does not resolve.
func (b *Backend) UpdateTable(id string, update types.TableUpdate) (*types.Table, error) {
	if id == "" {
		return nil, types.ErrInvalidID
	}
	if err := update.Validate(); err != nil {
		return nil, err
	}
	db, err := b.handle()
	if err != nil {
		return nil, err
	}

	query := "UPDATE tables SET updated_at = ?"
	args := []any{time.Now().UTC().Format(timeFormat)}
	if update.Name != nil {
		query += ", name = ?"
		args = append(args, *update.Name)
	}
	if update.Description != nil {
		query += ", description = ?"
		args = append(args, *update.Description)
	}
	if update.Status != nil {
		query += ", status = ?"
		args = append(args, *update.Status)
	}
	query += " WHERE table_id = ?"
	args = append(args, id)

	res, err := db.Exec(query, args...)
	if err != nil {
		return nil, fmt.Errorf("updating table %s: %w", id, err)
	}
	affected, err := res.RowsAffected()
	if err != nil {
		return nil, fmt.Errorf("updating table %s: %w", id, err)
	}
	if affected == 0 {
		return nil, types.ErrNotFound
	}

	row := db.QueryRow("SELECT "+tableColumns+" FROM tables WHERE table_id = ?", id)
	table, err := hydrateTable(row)
	if err != nil {
		return nil, fmt.Errorf("reloading table %s: %w", id, err)
	}
	return table, nil
}

// DeleteTable removes the table and all its data rows. Both deletes run in
// one transaction so a failure leaves neither orphaned rows nor a headless
// table.
func (b *Backend) DeleteTable(id string) error {
	if id == "" {
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

	if _, err := tx.Exec("DELETE FROM table_data WHERE table_id = ?", id); err != nil {
		return fmt.Errorf("deleting rows of table %s: %w", id, err)
	}

	res, err := tx.Exec("DELETE FROM tables WHERE table_id = ?", id)
	if err != nil {
		return fmt.Errorf("deleting table %s: %w", id, err)
	}
	affected, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("deleting table %s: %w", id, err)
	}
	if affected == 0 {
		return types.ErrNotFound
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("committing table deletion: %w", err)
	}
	return nil
}

// scanner abstracts *sql.Row and *sql.Rows for the hydrate helpers.
type scanner interface {
	Scan(dest ...any) error
}

// hydrateTable converts one SQLite result row into a *types.Table. The
// listing query substitutes a live COUNT for the rows column; the scan is
// identical either way.
func hydrateTable(s scanner) (*types.Table, error) {
	var t types.Table
	var createdAt, updatedAt string
	err := s.Scan(&t.TableID, &t.Name, &t.Description, &t.Region, &t.Status,
		&t.Rows, &t.CreatedBy, &createdAt, &updatedAt)
	if err != nil {
		return nil, err
	}
	t.CreatedAt, err = time.Parse(timeFormat, createdAt)
	if err != nil {
		return nil, fmt.Errorf("parsing created_at: %w", err)
	}
	t.UpdatedAt, err = time.Parse(timeFormat, updatedAt)
	if err != nil {
		return nil, fmt.Errorf("parsing updated_at: %w", err)
	}
	return &t, nil
}
