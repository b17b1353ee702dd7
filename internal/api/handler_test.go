package api

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/routedeck/routedeck/internal/sqlite"
	"github.com/routedeck/routedeck/pkg/types"
)

// setupHandler builds the full handler on a real SQLite backend.
func setupHandler(t *testing.T) (http.Handler, *sqlite.Backend) {
	t.Helper()
	b := sqlite.NewBackend()
	require.NoError(t, b.Attach(types.Config{DataDir: t.TempDir()}))
	t.Cleanup(func() { b.Detach() })

	log := slog.New(slog.NewTextHandler(io.Discard, nil))
	return New(b, types.DefaultRegion, log), b
}

// doJSON performs a request with an optional JSON body and decodes the JSON
// response into out when non-nil.
func doJSON(t *testing.T, h http.Handler, method, path string, body, out any) *httptest.ResponseRecorder {
	t.Helper()
	var buf io.Reader
	if body != nil {
		raw, err := json.Marshal(body)
		require.NoError(t, err)
		buf = bytes.NewReader(raw)
	}
	req := httptest.NewRequest(method, path, buf)
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)
	if out != nil && rec.Code < 300 {
		require.NoError(t, json.Unmarshal(rec.Body.Bytes(), out))
	}
	return rec
}

func createTable(t *testing.T, h http.Handler, name, region string) types.Table {
	t.Helper()
	var table types.Table
	rec := doJSON(t, h, http.MethodPost, "/api/tables", map[string]string{
		"name": name, "region": region, "createdBy": "Test User",
	}, &table)
	require.Equal(t, http.StatusCreated, rec.Code)
	return table
}

func addRow(t *testing.T, h http.Handler, tableID, code string) types.TableRow {
	t.Helper()
	var row types.TableRow
	rec := doJSON(t, h, http.MethodPost, "/api/tables/"+tableID+"/data", map[string]any{
		"code": code, "location": "Jalan Ampang", "delivery": "Daily",
		"lat": 3.158, "lng": 101.712,
	}, &row)
	require.Equal(t, http.StatusCreated, rec.Code)
	return row
}

func TestHealth(t *testing.T) {
	h, _ := setupHandler(t)
	var body map[string]string
	rec := doJSON(t, h, http.MethodGet, "/api/health", nil, &body)
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "ok", body["status"])
}

func TestCORS(t *testing.T) {
	h, _ := setupHandler(t)

	t.Run("preflight returns empty 200", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodOptions, "/api/tables", nil)
		rec := httptest.NewRecorder()
		h.ServeHTTP(rec, req)

		assert.Equal(t, http.StatusOK, rec.Code)
		assert.Empty(t, rec.Body.String())
		assert.Equal(t, "*", rec.Header().Get("Access-Control-Allow-Origin"))
	})

	t.Run("normal responses carry CORS headers", func(t *testing.T) {
		rec := doJSON(t, h, http.MethodGet, "/api/overview", nil, nil)
		assert.Equal(t, "*", rec.Header().Get("Access-Control-Allow-Origin"))
	})
}

func TestTableEndpoints(t *testing.T) {
	h, _ := setupHandler(t)

	t.Run("create returns 201 with generated fields", func(t *testing.T) {
		table := createTable(t, h, "Customer Database", "selangor")
		assert.NotEmpty(t, table.TableID)
		assert.Equal(t, types.StatusActive, table.Status)
	})

	t.Run("create without name is a 400", func(t *testing.T) {
		rec := doJSON(t, h, http.MethodPost, "/api/tables", map[string]string{
			"region": "kl", "createdBy": "X",
		}, nil)
		assert.Equal(t, http.StatusBadRequest, rec.Code)
	})

	t.Run("create with bad JSON is a 400", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodPost, "/api/tables", bytes.NewBufferString("{"))
		rec := httptest.NewRecorder()
		h.ServeHTTP(rec, req)
		assert.Equal(t, http.StatusBadRequest, rec.Code)
	})

	t.Run("list filters by region and computes display fields", func(t *testing.T) {
		table := createTable(t, h, "KL Delivery Routes", "kl")
		addRow(t, h, table.TableID, "1001")

		var listed []tableSummary
		rec := doJSON(t, h, http.MethodGet, "/api/tables?region=kl", nil, &listed)
		require.Equal(t, http.StatusOK, rec.Code)
		require.NotEmpty(t, listed)
		for _, s := range listed {
			assert.Equal(t, "kl", s.Region)
			assert.Equal(t, fixedColumns, s.Columns)
			assert.Equal(t, "Just now", s.LastModified)
		}
	})

	t.Run("list falls back to the default region", func(t *testing.T) {
		createTable(t, h, "Default Region Table", types.DefaultRegion)

		var listed []tableSummary
		rec := doJSON(t, h, http.MethodGet, "/api/tables", nil, &listed)
		require.Equal(t, http.StatusOK, rec.Code)
		for _, s := range listed {
			assert.Equal(t, types.DefaultRegion, s.Region)
		}
	})

	t.Run("get embeds rows", func(t *testing.T) {
		table := createTable(t, h, "Detail", "kl")
		row := addRow(t, h, table.TableID, "2001")

		var detail tableDetail
		rec := doJSON(t, h, http.MethodGet, "/api/tables/"+table.TableID, nil, &detail)
		require.Equal(t, http.StatusOK, rec.Code)
		require.Len(t, detail.TableData, 1)
		assert.Equal(t, row.RowID, detail.TableData[0].ID)
		// A numeric lat in the payload arrives back as a string.
		assert.Equal(t, "3.158", detail.TableData[0].Lat)
	})

	t.Run("get unknown id is a 404", func(t *testing.T) {
		rec := doJSON(t, h, http.MethodGet, "/api/tables/no-such-id", nil, nil)
		assert.Equal(t, http.StatusNotFound, rec.Code)

		var body errorResponse
		require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
		assert.Equal(t, "Table not found", body.Error)
	})

	t.Run("update is partial", func(t *testing.T) {
		table := createTable(t, h, "Before", "kl")

		var updated types.Table
		rec := doJSON(t, h, http.MethodPut, "/api/tables/"+table.TableID,
			map[string]string{"status": "archived"}, &updated)
		require.Equal(t, http.StatusOK, rec.Code)
		assert.Equal(t, "archived", updated.Status)
		assert.Equal(t, "Before", updated.Name)
	})

	t.Run("update with unknown status is a 400", func(t *testing.T) {
		table := createTable(t, h, "BadStatus", "kl")
		rec := doJSON(t, h, http.MethodPut, "/api/tables/"+table.TableID,
			map[string]string{"status": "frozen"}, nil)
		assert.Equal(t, http.StatusBadRequest, rec.Code)
	})

	t.Run("delete cascades and acknowledges", func(t *testing.T) {
		table := createTable(t, h, "Doomed", "kl")
		addRow(t, h, table.TableID, "3001")

		var ack successResponse
		rec := doJSON(t, h, http.MethodDelete, "/api/tables/"+table.TableID, nil, &ack)
		require.Equal(t, http.StatusOK, rec.Code)
		assert.True(t, ack.Success)

		rec = doJSON(t, h, http.MethodGet, "/api/tables/"+table.TableID, nil, nil)
		assert.Equal(t, http.StatusNotFound, rec.Code)
	})
}

func TestRowEndpoints(t *testing.T) {
	h, _ := setupHandler(t)

	t.Run("add row against unknown table is a 404", func(t *testing.T) {
		rec := doJSON(t, h, http.MethodPost, "/api/tables/no-such-id/data",
			map[string]any{"code": "1"}, nil)
		assert.Equal(t, http.StatusNotFound, rec.Code)
	})

	t.Run("add row preserves custom attributes", func(t *testing.T) {
		table := createTable(t, h, "Custom", "kl")

		var row types.TableRow
		rec := doJSON(t, h, http.MethodPost, "/api/tables/"+table.TableID+"/data", map[string]any{
			"code": "4001", "location": "KLCC", "delivery": "Daily",
			"lat": "3.15", "lng": "101.71", "driver": "Azman",
		}, &row)
		require.Equal(t, http.StatusCreated, rec.Code)
		assert.Equal(t, "Azman", row.Data["driver"])
	})

	t.Run("bulk update", func(t *testing.T) {
		table := createTable(t, h, "Bulk", "kl")
		r1 := addRow(t, h, table.TableID, "5001")
		r2 := addRow(t, h, table.TableID, "5002")

		var ack successResponse
		rec := doJSON(t, h, http.MethodPut, "/api/tables/"+table.TableID+"/data", map[string]any{
			"data": []map[string]any{
				{"id": r1.RowID, "code": "5001", "location": "Bangsar", "delivery": "Weekly", "lat": 3.13, "lng": 101.67},
				{"id": r2.RowID, "code": "5002", "location": "Cheras", "delivery": "Daily", "lat": 3.08, "lng": 101.74},
			},
		}, &ack)
		require.Equal(t, http.StatusOK, rec.Code)
		assert.True(t, ack.Success)

		var detail tableDetail
		doJSON(t, h, http.MethodGet, "/api/tables/"+table.TableID, nil, &detail)
		locations := []string{detail.TableData[0].Location, detail.TableData[1].Location}
		assert.ElementsMatch(t, []string{"Bangsar", "Cheras"}, locations)
	})

	t.Run("delete row", func(t *testing.T) {
		table := createTable(t, h, "Shrink", "kl")
		row := addRow(t, h, table.TableID, "6001")

		rec := doJSON(t, h, http.MethodDelete,
			fmt.Sprintf("/api/tables/%s/data/%s", table.TableID, row.RowID), nil, nil)
		assert.Equal(t, http.StatusOK, rec.Code)

		var detail tableDetail
		doJSON(t, h, http.MethodGet, "/api/tables/"+table.TableID, nil, &detail)
		assert.Empty(t, detail.TableData)
	})
}

func TestMoveEndpoint(t *testing.T) {
	h, _ := setupHandler(t)

	src := createTable(t, h, "Source", "kl")
	dest := createTable(t, h, "Destination", "kl")
	r1 := addRow(t, h, src.TableID, "7001")
	r2 := addRow(t, h, src.TableID, "7002")

	t.Run("moves rows and reports the count", func(t *testing.T) {
		var resp types.MoveResult
		rec := doJSON(t, h, http.MethodPost, "/api/tables/"+src.TableID+"/move", moveRequest{
			DestinationTableID: dest.TableID,
			RowIDs:             []string{r1.RowID, r2.RowID},
		}, &resp)
		require.Equal(t, http.StatusOK, rec.Code)
		assert.True(t, resp.Success)
		assert.Equal(t, 2, resp.MovedCount)

		var detail tableDetail
		doJSON(t, h, http.MethodGet, "/api/tables/"+dest.TableID, nil, &detail)
		assert.Len(t, detail.TableData, 2)
	})

	t.Run("stale row ids are a 404 with the move error", func(t *testing.T) {
		rec := doJSON(t, h, http.MethodPost, "/api/tables/"+src.TableID+"/move", moveRequest{
			DestinationTableID: dest.TableID,
			RowIDs:             []string{r1.RowID}, // already moved
		}, nil)
		assert.Equal(t, http.StatusNotFound, rec.Code)

		var body errorResponse
		require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
		assert.Equal(t, "no rows found to move", body.Error)
	})
}

func TestCheckDuplicateEndpoint(t *testing.T) {
	h, _ := setupHandler(t)

	tableA := createTable(t, h, "Table A", "selangor")
	tableB := createTable(t, h, "Table B", "kl")
	rowA := addRow(t, h, tableA.TableID, "1234")

	t.Run("missing code is a 400", func(t *testing.T) {
		rec := doJSON(t, h, http.MethodGet,
			"/api/tables/"+tableA.TableID+"/check-duplicate", nil, nil)
		assert.Equal(t, http.StatusBadRequest, rec.Code)
	})

	t.Run("same table match", func(t *testing.T) {
		var report types.DuplicateReport
		rec := doJSON(t, h, http.MethodGet,
			"/api/tables/"+tableA.TableID+"/check-duplicate?code=1234", nil, &report)
		require.Equal(t, http.StatusOK, rec.Code)
		assert.True(t, report.HasDuplicate)
		assert.True(t, report.SameTable)
		assert.False(t, report.OtherTables)
	})

	t.Run("other table match carries info", func(t *testing.T) {
		var report types.DuplicateReport
		rec := doJSON(t, h, http.MethodGet,
			"/api/tables/"+tableB.TableID+"/check-duplicate?code=1234", nil, &report)
		require.Equal(t, http.StatusOK, rec.Code)
		assert.True(t, report.OtherTables)
		require.Len(t, report.DuplicateInfo, 1)
		assert.Equal(t, tableA.TableID, report.DuplicateInfo[0].TableID)
	})

	t.Run("self-edit exclusion via rowId", func(t *testing.T) {
		var report types.DuplicateReport
		rec := doJSON(t, h, http.MethodGet,
			"/api/tables/"+tableA.TableID+"/check-duplicate?code=1234&rowId="+rowA.RowID, nil, &report)
		require.Equal(t, http.StatusOK, rec.Code)
		assert.False(t, report.HasDuplicate)
	})
}

func TestOverviewEndpoint(t *testing.T) {
	h, _ := setupHandler(t)

	table := createTable(t, h, "Feedworthy", "kl")
	addRow(t, h, table.TableID, "8001")

	var report types.OverviewReport
	rec := doJSON(t, h, http.MethodGet, "/api/overview", nil, &report)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, int64(1), report.Stats.TotalTables)
	assert.Equal(t, int64(1), report.Stats.TotalRecords)
	assert.Equal(t, report.Stats.TotalRecords, report.Stats.TotalRoutes)
	require.NotEmpty(t, report.RecentActivities)
	assert.Equal(t, table.TableID, report.RecentActivities[0].ID)
	assert.Equal(t, "Updated table", report.RecentActivities[0].Action)
}
