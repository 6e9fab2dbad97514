package httpapi

import (
	"net/http"
	"sync/atomic"

	"jobmarket-engine/internal/config"
	"jobmarket-engine/internal/domain"
	"jobmarket-engine/internal/ingest"
)

// JobsHandler serves the configured bulk dataset: the raw records and the
// aggregated insights view. The dataset file is re-read per request; records
// never outlive one handler call.
type JobsHandler struct {
	CfgVal      *atomic.Value // config.Config
	ReadDataset func(path string) ([]byte, error)
}

func (h JobsHandler) List(w http.ResponseWriter, r *http.Request) {
	cfg := h.CfgVal.Load().(config.Config)
	jobs, err := h.loadDefault(cfg)
	if err != nil {
		WriteError(w, r, http.StatusInternalServerError, "dataset_unavailable", "failed to load job data")
		return
	}
	writeJSON(w, jobs)
}

func (h JobsHandler) Insights(w http.ResponseWriter, r *http.Request) {
	cfg := h.CfgVal.Load().(config.Config)
	jobs, err := h.loadDefault(cfg)
	if err != nil {
		WriteError(w, r, http.StatusInternalServerError, "dataset_unavailable", "failed to load job data")
		return
	}
	writeJSON(w, buildInsights(jobs, cfg.Charts.MaxItems))
}

func (h JobsHandler) loadDefault(cfg config.Config) ([]domain.JobRecord, error) {
	b, err := h.ReadDataset(cfg.Dataset.Path)
	if err != nil {
		return nil, err
	}
	jobs := ingest.ParseCSV(string(b))
	return ingest.AttachCountry(jobs, cfg.Dataset.Country), nil
}
