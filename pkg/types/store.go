package types

import "errors"

// Store provides the data operations behind the routedeck HTTP API.
// Implementations are safe for concurrent request-scoped use; the backing
// database supplies whatever transaction atomicity each operation documents.
type Store interface {
	// ListTables returns all tables in the region ordered by most recently
	// updated first. Rows on each result is the live count of data rows,
	// not the stored counter. An unknown region yields an empty list.
	ListTables(region string) ([]*Table, error)

	// GetTable returns the table with its data rows embedded in creation
	// order. Returns ErrNotFound if the id does not resolve.
	GetTable(id string) (*Table, error)

	// CreateTable creates a table with status active and returns the
	// created record including generated id and timestamps.
	CreateTable(params TableParams) (*Table, error)

	// UpdateTable applies a partial update and returns the updated record.
	// Nil fields are left unchanged; updated_at is always bumped.
	UpdateTable(id string, update TableUpdate) (*Table, error)

	// DeleteTable removes the table and all its data rows in one
	// transaction.
	DeleteTable(id string) error

	// AddRow creates a data row under the table and increments the owner's
	// row counter, both in one transaction. Returns ErrNotFound if the
	// table does not exist.
	AddRow(tableID string, row *TableRow) (*TableRow, error)

	// UpdateRows replaces the structured fields and data blob of every
	// given row by id in a single transaction; all succeed or all fail.
	UpdateRows(rows []*TableRow) error

	// DeleteRow removes one data row and decrements the owner's row
	// counter in one transaction.
	DeleteRow(tableID, rowID string) error

	// MoveRows copies the given rows to the destination table under fresh
	// ids and deletes the originals, all in one transaction. Returns the
	// number of rows moved, or ErrNoRowsFound (with no mutation) when none
	// of the ids exist under the source table.
	MoveRows(sourceTableID, destinationTableID string, rowIDs []string) (int, error)

	// CheckDuplicateCode reports whether code exists anywhere in the
	// system, excluding the row identified by excludeRowID when non-empty.
	// Matches are classified against currentTableID.
	CheckDuplicateCode(code, currentTableID, excludeRowID string) (*DuplicateReport, error)

	// Overview computes the dashboard summary counters and the synthetic
	// recent-activity feed.
	Overview() (*OverviewReport, error)
}

// Store lifecycle errors.
var (
	ErrStoreDetached   = errors.New("store is detached")
	ErrAlreadyAttached = errors.New("store is already attached")
)

// Operation errors.
var (
	ErrNotFound       = errors.New("entity not found")
	ErrInvalidID      = errors.New("invalid entity ID")
	ErrInvalidName    = errors.New("name must not be empty")
	ErrInvalidRegion  = errors.New("region must not be empty")
	ErrInvalidCreator = errors.New("createdBy must not be empty")
	ErrInvalidStatus  = errors.New("invalid status value")
	ErrNoRowsFound    = errors.New("no rows found to move")
)

// IsValidation reports whether err is one of the input-validation sentinels,
// as opposed to a not-found or store failure.
func IsValidation(err error) bool {
	return errors.Is(err, ErrInvalidID) ||
		errors.Is(err, ErrInvalidName) ||
		errors.Is(err, ErrInvalidRegion) ||
		errors.Is(err, ErrInvalidCreator) ||
		errors.Is(err, ErrInvalidStatus)
}
