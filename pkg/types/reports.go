package types

// DuplicateReport classifies where a route code already exists. SameTable is
// the blocking case; OtherTables is advisory only. The caller decides what to
// do with either.
type DuplicateReport struct {
	HasDuplicate  bool            `json:"hasDuplicate"`
	SameTable     bool            `json:"sameTable"`
	OtherTables   bool            `json:"otherTables"`
	DuplicateInfo []DuplicateInfo `json:"duplicateInfo"`
}

// DuplicateInfo describes one cross-table match, joined from the owning table.
type DuplicateInfo struct {
	TableID   string `json:"tableId"`
	TableName string `json:"tableName"`
	Region    string `json:"region"`
	Location  string `json:"location"`
}

// OverviewStats holds the dashboard summary counters. TotalRoutes mirrors
// TotalRecords; ActiveUsers is a placeholder until user accounts exist.
type OverviewStats struct {
	TotalTables  int64 `json:"totalTables"`
	TotalRoutes  int64 `json:"totalRoutes"`
	ActiveUsers  int64 `json:"activeUsers"`
	TotalRecords int64 `json:"totalRecords"`
}

// Activity is one entry of the recent-activity feed, synthesized from the
// most recently updated tables. There is no audit-log entity behind it.
type Activity struct {
	ID     string `json:"id"`
	Action string `json:"action"`
	Table  string `json:"table"`
	User   string `json:"user"`
	Status string `json:"status"`
	Time   string `json:"time"`
}

// OverviewReport is the full overview response.
type OverviewReport struct {
	Stats            OverviewStats `json:"stats"`
	RecentActivities []Activity    `json:"recentActivities"`
}

// MoveResult reports the outcome of a successful row move.
type MoveResult struct {
	Success    bool `json:"success"`
	MovedCount int  `json:"movedCount"`
}
