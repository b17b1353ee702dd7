package api

import (
	"strconv"
	"time"

	"github.com/routedeck/routedeck/pkg/types"
)

// fixedColumns is the column count reported on table summaries. The grid
// renders five fixed columns today; this becomes per-table state when column
// customization moves server-side.
const fixedColumns = 5

// errorResponse is the JSON error envelope.
type errorResponse struct {
	Error   string `json:"error"`
	Message string `json:"message,omitempty"`
}

// successResponse acknowledges mutations that return no entity.
type successResponse struct {
	Success bool `json:"success"`
}

// tableSummary is one listing entry: the table plus display fields the
// sidebar needs (live row count, fixed column count, relative age).
type tableSummary struct {
	ID           string    `json:"id"`
	Name         string    `json:"name"`
	Description  string    `json:"description,omitempty"`
	Region       string    `json:"region"`
	Status       string    `json:"status"`
	Rows         int64     `json:"rows"`
	Columns      int       `json:"columns"`
	CreatedBy    string    `json:"createdBy"`
	CreatedAt    time.Time `json:"createdAt"`
	UpdatedAt    time.Time `json:"updatedAt"`
	LastModified string    `json:"lastModified"`
}

func toTableSummary(t *types.Table, now time.Time) tableSummary {
	return tableSummary{
		ID:           t.TableID,
		Name:         t.Name,
		Description:  t.Description,
		Region:       t.Region,
		Status:       t.Status,
		Rows:         t.Rows,
		Columns:      fixedColumns,
		CreatedBy:    t.CreatedBy,
		CreatedAt:    t.CreatedAt,
		UpdatedAt:    t.UpdatedAt,
		LastModified: types.RelativeTime(now, t.UpdatedAt),
	}
}

// tableDetail is the single-table response with embedded rows.
type tableDetail struct {
	ID          string    `json:"id"`
	Name        string    `json:"name"`
	Description string    `json:"description,omitempty"`
	Region      string    `json:"region"`
	Status      string    `json:"status"`
	CreatedBy   string    `json:"createdBy"`
	TableData   []rowView `json:"tableData"`
}

// rowView is one embedded data row.
type rowView struct {
	ID       string `json:"id"`
	Code     string `json:"code"`
	Location string `json:"location"`
	Delivery string `json:"delivery"`
	Lat      string `json:"lat"`
	Lng      string `json:"lng"`
}

func toTableDetail(t *types.Table) tableDetail {
	detail := tableDetail{
		ID:          t.TableID,
		Name:        t.Name,
		Description: t.Description,
		Region:      t.Region,
		Status:      t.Status,
		CreatedBy:   t.CreatedBy,
		TableData:   make([]rowView, 0, len(t.TableData)),
	}
	for _, r := range t.TableData {
		detail.TableData = append(detail.TableData, rowView{
			ID:       r.RowID,
			Code:     r.Code,
			Location: r.Location,
			Delivery: r.Delivery,
			Lat:      r.Lat,
			Lng:      r.Lng,
		})
	}
	return detail
}

// moveRequest is the body of POST /api/tables/{id}/move.
type moveRequest struct {
	DestinationTableID string   `json:"destinationTableId"`
	RowIDs             []string `json:"rowIds"`
}

// rowFromPayload builds a TableRow from a decoded client payload. The full
// map is kept as the row's open data blob; lat/lng accept JSON numbers or
// strings and are stored as strings either way.
func rowFromPayload(payload map[string]any) *types.TableRow {
	return &types.TableRow{
		RowID:    stringField(payload, "id"),
		Code:     stringField(payload, "code"),
		Location: stringField(payload, "location"),
		Delivery: stringField(payload, "delivery"),
		Lat:      coordField(payload, "lat"),
		Lng:      coordField(payload, "lng"),
		Data:     payload,
	}
}

func stringField(m map[string]any, key string) string {
	if v, ok := m[key].(string); ok {
		return v
	}
	return ""
}

func coordField(m map[string]any, key string) string {
	switch v := m[key].(type) {
	case string:
		return v
	case float64:
		return strconv.FormatFloat(v, 'f', -1, 64)
	default:
		return ""
	}
}
