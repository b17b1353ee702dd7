// Overview aggregation for the SQLite backend.
package sqlite

import (
	"fmt"
	"time"

	"github.com/routedeck/routedeck/pkg/types"
)

// activityFeedSize is how many recently updated tables the overview turns
// into activity entries.
const activityFeedSize = 5

// placeholderActiveUsers stands in for a real user count until accounts
// exist.
const placeholderActiveUsers = 8

// Overview computes the dashboard summary counters and a recent-activity
// feed synthesized from the most recently updated tables. There is no audit
// log; "Updated table" entries derive purely from updated_at ordering.
// Read-only: the report reflects store state at query time.
func (b *Backend) Overview() (*types.OverviewReport, error) {
	db, err := b.handle()
	if err != nil {
		return nil, err
	}

	var totalTables, totalRecords int64
	if err := db.QueryRow("SELECT COUNT(*) FROM tables").Scan(&totalTables); err != nil {
		return nil, fmt.Errorf("counting tables: %w", err)
	}
	if err := db.QueryRow("SELECT COUNT(*) FROM table_data").Scan(&totalRecords); err != nil {
		return nil, fmt.Errorf("counting records: %w", err)
	}

	rows, err := db.Query(
		"SELECT "+tableColumns+" FROM tables ORDER BY updated_at DESC LIMIT ?",
		activityFeedSize,
	)
	if err != nil {
		return nil, fmt.Errorf("querying recent tables: %w", err)
	}
	defer rows.Close()

	now := time.Now().UTC()
	activities := []types.Activity{}
	for rows.Next() {
		table, err := hydrateTable(rows)
		if err != nil {
			return nil, fmt.Errorf("hydrating recent table: %w", err)
		}
		activities = append(activities, types.Activity{
			ID:     table.TableID,
			Action: "Updated table",
			Table:  table.Name,
			User:   table.CreatedBy,
			Status: table.Status,
			Time:   types.RelativeTime(now, table.UpdatedAt),
		})
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating recent tables: %w", err)
	}

	return &types.OverviewReport{
		Stats: types.OverviewStats{
			TotalTables: totalTables,
			// Data rows double as the route count until routes become
			// their own entity.
			TotalRoutes:  totalRecords,
			ActiveUsers:  placeholderActiveUsers,
			TotalRecords: totalRecords,
		},
		RecentActivities: activities,
	}, nil
}
