package httpapi

import (
	"database/sql"
	"errors"
	"io"
	"net/http"
	"sync/atomic"

	"jobmarket-engine/internal/config"
	"jobmarket-engine/internal/domain"
	"jobmarket-engine/internal/events"
	"jobmarket-engine/internal/ingest"
	"jobmarket-engine/internal/store"
)

type UploadHandler struct {
	DB     *sql.DB
	Hub    *events.Hub
	CfgVal *atomic.Value // config.Config
}

type UploadResponse struct {
	Dataset  store.Dataset      `json:"dataset"`
	Jobs     []domain.JobRecord `json:"jobs"`
	Insights InsightsResponse   `json:"insights"`
	FileName string             `json:"fileName"`
	FileType string             `json:"fileType"`
	JobCount int                `json:"jobCount"`
	Country  string             `json:"country"`
}

func (h UploadHandler) Upload(w http.ResponseWriter, r *http.Request) {
	cfg := h.CfgVal.Load().(config.Config)

	// Hard body cap; multipart framing needs a little slack over the file cap.
	r.Body = http.MaxBytesReader(w, r.Body, cfg.Upload.MaxBytes+1<<20)

	if err := r.ParseMultipartForm(cfg.Upload.MaxBytes); err != nil {
		WriteError(w, r, http.StatusBadRequest, "bad_multipart", "could not read multipart form")
		return
	}

	file, hdr, err := r.FormFile("file")
	if err != nil {
		WriteError(w, r, http.StatusBadRequest, "missing_file", "no file provided")
		return
	}
	defer file.Close()

	contentType := hdr.Header.Get("Content-Type")
	if err := ingest.CheckUpload(hdr.Filename, contentType, hdr.Size, cfg.Upload.MaxBytes); err != nil {
		code := "invalid_file"
		if errors.Is(err, ingest.ErrFileTooLarge) {
			code = "file_too_large"
		}
		WriteError(w, r, http.StatusBadRequest, code, err.Error())
		return
	}

	b, err := io.ReadAll(file)
	if err != nil {
		WriteError(w, r, http.StatusBadRequest, "read_failed", "failed to read uploaded file")
		return
	}

	jobs, format := ingest.ParseUpload(hdr.Filename, contentType, string(b))
	if len(jobs) == 0 {
		WriteError(w, r, http.StatusBadRequest, "no_records", ingest.ErrNoRecords.Error())
		return
	}

	country := domain.NormalizeCountry(r.FormValue("country"))
	jobs = ingest.AttachCountry(jobs, country)

	ds, err := store.SaveDataset(r.Context(), h.DB, hdr.Filename, string(format), country, jobs)
	if err != nil {
		WriteError(w, r, http.StatusInternalServerError, "store_failed", err.Error())
		return
	}

	reqID := RequestIDFrom(r.Context())
	h.Hub.Publish(events.MakeEvent(reqID, events.TypeDatasetUploaded, map[string]any{
		"id":        ds.ID,
		"name":      ds.Name,
		"job_count": ds.JobCount,
	}))

	writeJSON(w, UploadResponse{
		Dataset:  ds,
		Jobs:     jobs,
		Insights: buildInsights(jobs, cfg.Charts.MaxItems),
		FileName: hdr.Filename,
		FileType: string(format),
		JobCount: len(jobs),
		Country:  country,
	})
}
