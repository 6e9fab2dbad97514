package httpapi

import (
	"encoding/json"
	"net/http"

	"jobmarket-engine/internal/domain"
	"jobmarket-engine/internal/export"
)

type ExportHandler struct{}

// Export turns a posted record collection back into the 12-column CSV as a
// download. Null numeric fields come out as empty cells so a re-import
// reconstructs the same nulls.
func (h ExportHandler) Export(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Jobs []domain.JobRecord `json:"jobs"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil || req.Jobs == nil {
		WriteError(w, r, http.StatusBadRequest, "invalid_jobs", "invalid job data provided")
		return
	}

	csv := export.CSV(req.Jobs)
	w.Header().Set("Content-Type", "text/csv")
	w.Header().Set("Content-Disposition", `attachment; filename="job_data_export.csv"`)
	_, _ = w.Write([]byte(csv))
}
