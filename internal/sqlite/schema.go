package sqlite

// Schema DDL. Timestamps are fixed-width UTC TEXT so lexical order matches
// chronological order; ids are UUID v7 strings so
// primary-key order tracks creation order. The rows column on tables is the
// denormalized row counter the API exposes on single-table responses;
// listings derive a live count instead.
const (
	createTables = `CREATE TABLE IF NOT EXISTS tables (
    table_id TEXT PRIMARY KEY,
    name TEXT NOT NULL,
    description TEXT NOT NULL DEFAULT '',
    region TEXT NOT NULL,
    status TEXT NOT NULL,
    rows INTEGER NOT NULL DEFAULT 0,
    created_by TEXT NOT NULL,
    created_at TEXT NOT NULL,
    updated_at TEXT NOT NULL
);`

	createTableData = `CREATE TABLE IF NOT EXISTS table_data (
    row_id TEXT PRIMARY KEY,
    table_id TEXT NOT NULL,
    code TEXT NOT NULL,
    location TEXT NOT NULL,
    delivery TEXT NOT NULL,
    lat TEXT NOT NULL,
    lng TEXT NOT NULL,
    data TEXT NOT NULL,
    FOREIGN KEY (table_id) REFERENCES tables(table_id)
);`
)

// Index DDL for the common queries: region listing, per-table row scans,
// and the global duplicate-code search.
const (
	idxTablesRegion   = `CREATE INDEX IF NOT EXISTS idx_tables_region ON tables(region);`
	idxTablesUpdated  = `CREATE INDEX IF NOT EXISTS idx_tables_updated ON tables(updated_at);`
	idxTableDataTable = `CREATE INDEX IF NOT EXISTS idx_table_data_table ON table_data(table_id);`
	idxTableDataCode  = `CREATE INDEX IF NOT EXISTS idx_table_data_code ON table_data(code);`
)

// schemaDDL lists all CREATE TABLE statements in dependency order.
var schemaDDL = []string{
	createTables,
	createTableData,
}

// indexDDL lists all CREATE INDEX statements.
var indexDDL = []string{
	idxTablesRegion,
	idxTablesUpdated,
	idxTableDataTable,
	idxTableDataCode,
}
