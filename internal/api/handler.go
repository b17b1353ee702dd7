// Package api implements the routedeck HTTP/JSON API.
//
// All endpoints live under /api. Errors map to three shapes: 404 for ids
// that do not resolve (and for moves that match no rows), 400 for input
// validation, and a generic 500 for store failures. CORS is fully open; the
// dashboard is served from a different origin in every deployment observed.
package api

import (
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"
	"time"

	"github.com/routedeck/routedeck/pkg/types"
)

// Handler is the HTTP handler for all /api/* endpoints.
type Handler struct {
	store         types.Store
	defaultRegion string
	log           *slog.Logger
	mux           *http.ServeMux
}

// New creates a Handler wired to the given store and registers all routes.
// Listing requests without a region query fall back to defaultRegion.
func New(store types.Store, defaultRegion string, log *slog.Logger) http.Handler {
	if log == nil {
		log = slog.Default()
	}
	h := &Handler{
		store:         store,
		defaultRegion: defaultRegion,
		log:           log,
		mux:           http.NewServeMux(),
	}

	h.mux.HandleFunc("GET /api/health", h.health)
	h.mux.HandleFunc("GET /api/overview", h.overview)
	h.mux.HandleFunc("GET /api/tables", h.listTables)
	h.mux.HandleFunc("POST /api/tables", h.createTable)
	h.mux.HandleFunc("GET /api/tables/{id}", h.getTable)
	h.mux.HandleFunc("PUT /api/tables/{id}", h.updateTable)
	h.mux.HandleFunc("DELETE /api/tables/{id}", h.deleteTable)
	h.mux.HandleFunc("POST /api/tables/{id}/data", h.addRow)
	h.mux.HandleFunc("PUT /api/tables/{id}/data", h.updateRows)
	h.mux.HandleFunc("DELETE /api/tables/{id}/data/{rowId}", h.deleteRow)
	h.mux.HandleFunc("POST /api/tables/{id}/move", h.moveRows)
	h.mux.HandleFunc("GET /api/tables/{id}/check-duplicate", h.checkDuplicate)

	return withCORS(h.requestLog(h.mux))
}

// --- route handlers ---------------------------------------------------------

// health returns GET /api/health, a liveness probe for deploys.
func (h *Handler) health(w http.ResponseWriter, r *http.Request) {
	jsonResp(w, http.StatusOK, map[string]string{"status": "ok"})
}

// overview returns GET /api/overview: dashboard counters and the
// recent-activity feed.
func (h *Handler) overview(w http.ResponseWriter, r *http.Request) {
	report, err := h.store.Overview()
	if err != nil {
		h.storeErr(w, err, "Failed to fetch overview data")
		return
	}
	jsonResp(w, http.StatusOK, report)
}

// listTables returns GET /api/tables?region=R: table summaries for one
// region, most recently updated first.
func (h *Handler) listTables(w http.ResponseWriter, r *http.Request) {
	region := r.URL.Query().Get("region")
	if region == "" {
		region = h.defaultRegion
	}

	tables, err := h.store.ListTables(region)
	if err != nil {
		h.storeErr(w, err, "Failed to fetch tables")
		return
	}

	now := time.Now().UTC()
	out := make([]tableSummary, 0, len(tables))
	for _, t := range tables {
		out = append(out, toTableSummary(t, now))
	}
	jsonResp(w, http.StatusOK, out)
}

// getTable returns GET /api/tables/{id}: one table with embedded rows.
func (h *Handler) getTable(w http.ResponseWriter, r *http.Request) {
	table, err := h.store.GetTable(r.PathValue("id"))
	if err != nil {
		h.storeErr(w, err, "Failed to fetch table")
		return
	}
	jsonResp(w, http.StatusOK, toTableDetail(table))
}

// createTable handles POST /api/tables.
func (h *Handler) createTable(w http.ResponseWriter, r *http.Request) {
	var params types.TableParams
	if err := json.NewDecoder(r.Body).Decode(&params); err != nil {
		jsonErr(w, http.StatusBadRequest, "invalid JSON body")
		return
	}

	table, err := h.store.CreateTable(params)
	if err != nil {
		h.storeErr(w, err, "Failed to create table")
		return
	}
	jsonResp(w, http.StatusCreated, table)
}

// updateTable handles PUT /api/tables/{id} as a partial update.
func (h *Handler) updateTable(w http.ResponseWriter, r *http.Request) {
	var update types.TableUpdate
	if err := json.NewDecoder(r.Body).Decode(&update); err != nil {
		jsonErr(w, http.StatusBadRequest, "invalid JSON body")
		return
	}

	table, err := h.store.UpdateTable(r.PathValue("id"), update)
	if err != nil {
		h.storeErr(w, err, "Failed to update table")
		return
	}
	jsonResp(w, http.StatusOK, table)
}

// deleteTable handles DELETE /api/tables/{id}, a cascading delete.
func (h *Handler) deleteTable(w http.ResponseWriter, r *http.Request) {
	if err := h.store.DeleteTable(r.PathValue("id")); err != nil {
		h.storeErr(w, err, "Failed to delete table")
		return
	}
	jsonResp(w, http.StatusOK, successResponse{Success: true})
}

// addRow handles POST /api/tables/{id}/data. The raw payload is preserved
// as the row's open data blob.
func (h *Handler) addRow(w http.ResponseWriter, r *http.Request) {
	var payload map[string]any
	if err := json.NewDecoder(r.Body).Decode(&payload); err != nil {
		jsonErr(w, http.StatusBadRequest, "invalid JSON body")
		return
	}

	row, err := h.store.AddRow(r.PathValue("id"), rowFromPayload(payload))
	if err != nil {
		h.storeErr(w, err, "Failed to add row")
		return
	}
	jsonResp(w, http.StatusCreated, row)
}

// updateRows handles PUT /api/tables/{id}/data, the bulk row update.
func (h *Handler) updateRows(w http.ResponseWriter, r *http.Request) {
	var body struct {
		Data []map[string]any `json:"data"`
	}
	if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
		jsonErr(w, http.StatusBadRequest, "invalid JSON body")
		return
	}

	rows := make([]*types.TableRow, 0, len(body.Data))
	for _, payload := range body.Data {
		rows = append(rows, rowFromPayload(payload))
	}

	if err := h.store.UpdateRows(rows); err != nil {
		h.storeErr(w, err, "Failed to update rows")
		return
	}
	jsonResp(w, http.StatusOK, successResponse{Success: true})
}

// deleteRow handles DELETE /api/tables/{id}/data/{rowId}.
func (h *Handler) deleteRow(w http.ResponseWriter, r *http.Request) {
	err := h.store.DeleteRow(r.PathValue("id"), r.PathValue("rowId"))
	if err != nil {
		h.storeErr(w, err, "Failed to delete row")
		return
	}
	jsonResp(w, http.StatusOK, successResponse{Success: true})
}

// moveRows handles POST /api/tables/{id}/move, relocating rows to another
// table.
func (h *Handler) moveRows(w http.ResponseWriter, r *http.Request) {
	var req moveRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		jsonErr(w, http.StatusBadRequest, "invalid JSON body")
		return
	}

	moved, err := h.store.MoveRows(r.PathValue("id"), req.DestinationTableID, req.RowIDs)
	if err != nil {
		h.storeErr(w, err, "Failed to move rows")
		return
	}
	jsonResp(w, http.StatusOK, types.MoveResult{Success: true, MovedCount: moved})
}

// checkDuplicate handles GET /api/tables/{id}/check-duplicate?code=&rowId=.
func (h *Handler) checkDuplicate(w http.ResponseWriter, r *http.Request) {
	code := r.URL.Query().Get("code")
	if code == "" {
		jsonErr(w, http.StatusBadRequest, "code query parameter is required")
		return
	}

	report, err := h.store.CheckDuplicateCode(code, r.PathValue("id"), r.URL.Query().Get("rowId"))
	if err != nil {
		h.storeErr(w, err, "Failed to check duplicate code")
		return
	}
	jsonResp(w, http.StatusOK, report)
}

// --- helpers ----------------------------------------------------------------

// storeErr maps a store error onto the wire: not-found and no-rows cases to
// 404, validation sentinels to 400, everything else to a generic 500.
func (h *Handler) storeErr(w http.ResponseWriter, err error, fallback string) {
	switch {
	case errors.Is(err, types.ErrNotFound):
		jsonErr(w, http.StatusNotFound, "Table not found")
	case errors.Is(err, types.ErrNoRowsFound):
		jsonErr(w, http.StatusNotFound, err.Error())
	case types.IsValidation(err):
		jsonErr(w, http.StatusBadRequest, err.Error())
	default:
		h.log.Error("store operation failed", "err", err)
		jsonErr(w, http.StatusInternalServerError, fallback)
	}
}

func jsonResp(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func jsonErr(w http.ResponseWriter, status int, msg string) {
	jsonResp(w, status, errorResponse{Error: msg})
}
