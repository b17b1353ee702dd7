package types

// TableRow is one record within a Table: a delivery/location entry with a
// code, street location, delivery schedule, and coordinates. Lat and Lng are
// stored as strings and not range-validated server-side.
//
// Data mirrors the full client payload as an open map so custom attributes
// survive round trips; the structured fields stay authoritative and both are
// rewritten together on every write.
type TableRow struct {
	RowID    string         `json:"id"`
	TableID  string         `json:"tableId,omitempty"`
	Code     string         `json:"code"`
	Location string         `json:"location"`
	Delivery string         `json:"delivery"`
	Lat      string         `json:"lat"`
	Lng      string         `json:"lng"`
	Data     map[string]any `json:"data,omitempty"`
}
