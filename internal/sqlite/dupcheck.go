// Duplicate-code detection for the SQLite backend.
package sqlite

import (
	"fmt"

	"github.com/routedeck/routedeck/pkg/types"
)

// CheckDuplicateCode reports whether code exists anywhere in the system.
// Route codes are meant to be globally unique, so the search spans every
// table, joined to the owner for cross-table match details. When
// excludeRowID is non-empty the row being edited is excluded, so saving a
// row back with its own code is never flagged against itself. Matches are
// partitioned into same-table (blocking) and other-table (advisory) against
// currentTableID; the caller decides what each means.
func (b *Backend) CheckDuplicateCode(code, currentTableID, excludeRowID string) (*types.DuplicateReport, error) {
	db, err := b.handle()
	if err != nil {
		return nil, err
	}

	query := `
		SELECT d.table_id, d.location, t.name, t.region
		FROM table_data d
		INNER JOIN tables t ON t.table_id = d.table_id
		WHERE d.code = ?`
	args := []any{code}
	if excludeRowID != "" {
		query += " AND d.row_id != ?"
		args = append(args, excludeRowID)
	}

	rows, err := db.Query(query, args...)
	if err != nil {
		return nil, fmt.Errorf("checking duplicate code %s: %w", code, err)
	}
	defer rows.Close()

	report := &types.DuplicateReport{DuplicateInfo: []types.DuplicateInfo{}}
	for rows.Next() {
		var tableID, location, tableName, region string
		if err := rows.Scan(&tableID, &location, &tableName, &region); err != nil {
			return nil, fmt.Errorf("scanning duplicate match: %w", err)
		}
		report.HasDuplicate = true
		if tableID == currentTableID {
			report.SameTable = true
			continue
		}
		report.OtherTables = true
		report.DuplicateInfo = append(report.DuplicateInfo, types.DuplicateInfo{
			TableID:   tableID,
			TableName: tableName,
			Region:    region,
			Location:  location,
		})
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating duplicate matches: %w", err)
	}

	return report, nil
}
