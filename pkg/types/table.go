package types

import "time"

// Table statuses. A table is active by default; draft and archived tables
// stay listed but the UI renders them differently.
const (
	StatusActive   = "active"
	StatusDraft    = "draft"
	StatusArchived = "archived"
)

// validStatuses is the set of recognized table status values.
var validStatuses = map[string]bool{
	StatusActive:   true,
	StatusDraft:    true,
	StatusArchived: true,
}

// ValidStatus reports whether status is a recognized table status.
func ValidStatus(status string) bool {
	return validStatuses[status]
}

// Table is a named, region-scoped collection of data rows, analogous to a
// spreadsheet tab. Rows holds the denormalized row counter maintained by the
// store; listings report a live count instead so the two can be compared.
type Table struct {
	TableID     string      `json:"id"`
	Name        string      `json:"name"`
	Description string      `json:"description,omitempty"`
	Region      string      `json:"region"`
	Status      string      `json:"status"`
	Rows        int64       `json:"rows"`
	CreatedBy   string      `json:"createdBy"`
	CreatedAt   time.Time   `json:"createdAt"`
	UpdatedAt   time.Time   `json:"updatedAt"`
	TableData   []*TableRow `json:"tableData,omitempty"`
}

// TableParams carries the caller-supplied fields for table creation.
// Name, Region, and CreatedBy are required; Description is optional.
type TableParams struct {
	Name        string `json:"name"`
	Description string `json:"description"`
	Region      string `json:"region"`
	CreatedBy   string `json:"createdBy"`
}

// Validate checks that all required creation fields are present.
func (p TableParams) Validate() error {
	if p.Name == "" {
		return ErrInvalidName
	}
	if p.Region == "" {
		return ErrInvalidRegion
	}
	if p.CreatedBy == "" {
		return ErrInvalidCreator
	}
	return nil
}

// TableUpdate carries a partial table update. Nil fields are left unchanged.
type TableUpdate struct {
	Name        *string `json:"name"`
	Description *string `json:"description"`
	Status      *string `json:"status"`
}

// Validate checks that a supplied status value is recognized.
func (u TableUpdate) Validate() error {
	if u.Name != nil && *u.Name == "" {
		return ErrInvalidName
	}
	if u.Status != nil && !ValidStatus(*u.Status) {
		return ErrInvalidStatus
	}
	return nil
}
