package httpapi

import (
	"database/sql"
	"errors"
	"net/http"
	"strconv"
	"strings"
	"sync/atomic"

	"jobmarket-engine/internal/config"
	"jobmarket-engine/internal/events"
	"jobmarket-engine/internal/store"
)

// DatasetsHandler serves the upload history: list, per-dataset records and
// insights, and deletion.
type DatasetsHandler struct {
	DB     *sql.DB
	Hub    *events.Hub
	CfgVal *atomic.Value // config.Config
}

func (h DatasetsHandler) List(w http.ResponseWriter, r *http.Request) {
	datasets, err := store.ListDatasets(r.Context(), h.DB)
	if err != nil {
		WriteError(w, r, http.StatusInternalServerError, "list_failed", err.Error())
		return
	}
	if datasets == nil {
		datasets = []store.Dataset{}
	}
	writeJSON(w, datasets)
}

// ByPath dispatches /datasets/{id}, /datasets/{id}/jobs and
// /datasets/{id}/insights.
func (h DatasetsHandler) ByPath(w http.ResponseWriter, r *http.Request) {
	rest := strings.TrimPrefix(r.URL.Path, "/datasets/")
	idStr, sub, _ := strings.Cut(rest, "/")

	id, err := strconv.ParseInt(idStr, 10, 64)
	if err != nil || id <= 0 {
		WriteError(w, r, http.StatusBadRequest, "invalid_id", "invalid dataset id")
		return
	}

	switch {
	case sub == "" && r.Method == http.MethodDelete:
		h.delete(w, r, id)
	case sub == "jobs" && r.Method == http.MethodGet:
		h.jobs(w, r, id)
	case sub == "insights" && r.Method == http.MethodGet:
		h.insights(w, r, id)
	default:
		http.Error(w, "method not allowed", http.StatusMethodNotAllowed)
	}
}

func (h DatasetsHandler) jobs(w http.ResponseWriter, r *http.Request, id int64) {
	jobs, err := store.LoadDatasetJobs(r.Context(), h.DB, id)
	if err != nil {
		if errors.Is(err, store.ErrDatasetNotFound) {
			WriteError(w, r, http.StatusNotFound, "not_found", "dataset not found")
			return
		}
		WriteError(w, r, http.StatusInternalServerError, "load_failed", err.Error())
		return
	}
	writeJSON(w, jobs)
}

func (h DatasetsHandler) insights(w http.ResponseWriter, r *http.Request, id int64) {
	jobs, err := store.LoadDatasetJobs(r.Context(), h.DB, id)
	if err != nil {
		if errors.Is(err, store.ErrDatasetNotFound) {
			WriteError(w, r, http.StatusNotFound, "not_found", "dataset not found")
			return
		}
		WriteError(w, r, http.StatusInternalServerError, "load_failed", err.Error())
		return
	}
	cfg := h.CfgVal.Load().(config.Config)
	writeJSON(w, buildInsights(jobs, cfg.Charts.MaxItems))
}

func (h DatasetsHandler) delete(w http.ResponseWriter, r *http.Request, id int64) {
	if err := store.DeleteDataset(r.Context(), h.DB, id); err != nil {
		if errors.Is(err, store.ErrDatasetNotFound) {
			WriteError(w, r, http.StatusNotFound, "not_found", "dataset not found")
			return
		}
		WriteError(w, r, http.StatusInternalServerError, "delete_failed", err.Error())
		return
	}

	reqID := RequestIDFrom(r.Context())
	h.Hub.Publish(events.MakeEvent(reqID, events.TypeDatasetDeleted, map[string]any{"id": id}))
	writeJSON(w, map[string]any{"ok": true, "id": id})
}
