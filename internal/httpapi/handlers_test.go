package httpapi

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"net/textproto"
	"os"
	"path/filepath"
	"strings"
	"sync/atomic"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"jobmarket-engine/internal/config"
	"jobmarket-engine/internal/domain"
	"jobmarket-engine/internal/events"
	"jobmarket-engine/internal/store"
)

const datasetCSV = "company,title,location,salary,time_posted,tags,salary_min,salary_max,days_ago,category,category_confidence,matched_keywords\n" +
	"Acme,Python Developer,Remote,$85k,3 days ago,Easy Apply,85000,95000,3,Software Engineer,90,python\n" +
	"Beta,Product Designer,Buenos Aires,,,,,,,Design,80,design\n"

const linkedinTXT = "logo\nBackend Developer\nAcme\nRemote\n$85,000/yr - $95,000/yr\n3 days ago\nEasy Apply\n"

func testConfig() config.Config {
	var cfg config.Config
	cfg.App.Port = 38520
	cfg.Dataset.Path = "dataset.csv"
	cfg.Dataset.Country = "argentina"
	cfg.Upload.MaxBytes = 1 << 20
	cfg.Upload.PerMinute = 0
	cfg.Retention.MaxAgeDays = 90
	cfg.Retention.SweepSeconds = 3600
	cfg.Charts.MaxItems = 8
	return cfg
}

func testDeps(t *testing.T) Deps {
	t.Helper()

	db, err := store.Open(filepath.Join(t.TempDir(), "test.db"))
	require.NoError(t, err)
	t.Cleanup(func() { _ = db.Close() })
	require.NoError(t, store.Migrate(db.Pool))

	cfgVal := &atomic.Value{}
	cfgVal.Store(testConfig())

	return Deps{
		DB:     db.Pool,
		Hub:    events.NewHub(),
		CfgVal: cfgVal,
		ReadDataset: func(path string) ([]byte, error) {
			if path != "dataset.csv" {
				return nil, errors.New("no such file")
			}
			return []byte(datasetCSV), nil
		},
	}
}

func doRequest(mux *http.ServeMux, method, path string, body *bytes.Buffer, contentType string) *httptest.ResponseRecorder {
	if body == nil {
		body = &bytes.Buffer{}
	}
	req := httptest.NewRequest(method, path, body)
	if contentType != "" {
		req.Header.Set("Content-Type", contentType)
	}
	w := httptest.NewRecorder()
	mux.ServeHTTP(w, req)
	return w
}

func decodeJSON(t *testing.T, w *httptest.ResponseRecorder, v any) {
	t.Helper()
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), v))
}

func TestHealth(t *testing.T) {
	mux := NewMux(testDeps(t))
	w := doRequest(mux, http.MethodGet, "/health", nil, "")
	require.Equal(t, http.StatusOK, w.Code)

	var resp map[string]any
	decodeJSON(t, w, &resp)
	assert.Equal(t, true, resp["ok"])
}

func TestJobsList(t *testing.T) {
	mux := NewMux(testDeps(t))
	w := doRequest(mux, http.MethodGet, "/jobs", nil, "")
	require.Equal(t, http.StatusOK, w.Code)

	var jobs []domain.JobRecord
	decodeJSON(t, w, &jobs)
	require.Len(t, jobs, 2)
	assert.Equal(t, "Acme", jobs[0].Company)
	assert.Equal(t, "argentina", jobs[0].Country)
	require.NotNil(t, jobs[0].SalaryMin)
	assert.Equal(t, 85000.0, *jobs[0].SalaryMin)
	assert.Nil(t, jobs[1].SalaryMin)
}

func TestJobsList_DatasetUnavailable(t *testing.T) {
	deps := testDeps(t)
	cfg := testConfig()
	cfg.Dataset.Path = "missing.csv"
	deps.CfgVal.Store(cfg)

	mux := NewMux(deps)
	w := doRequest(mux, http.MethodGet, "/jobs", nil, "")
	require.Equal(t, http.StatusInternalServerError, w.Code)

	var e APIError
	decodeJSON(t, w, &e)
	assert.Equal(t, "dataset_unavailable", e.Error.Code)
}

func TestInsights(t *testing.T) {
	mux := NewMux(testDeps(t))
	w := doRequest(mux, http.MethodGet, "/insights", nil, "")
	require.Equal(t, http.StatusOK, w.Code)

	var resp InsightsResponse
	decodeJSON(t, w, &resp)
	assert.Equal(t, 2, resp.Metrics.TotalJobs)
	assert.Contains(t, resp.CategoryStats, "Software Engineer")
	assert.Contains(t, resp.CategoryStats, "Design")
	assert.Len(t, resp.TopOpportunities, 2)
	assert.Equal(t, []string{"Software Engineer", "Design"}, resp.Charts.Categories.Labels)
	assert.Equal(t, []int{1, 1}, resp.Charts.Categories.Values)
	assert.NotEmpty(t, resp.Charts.Technologies.Labels)
}

func TestMethodNotAllowed(t *testing.T) {
	mux := NewMux(testDeps(t))
	w := doRequest(mux, http.MethodPost, "/jobs", nil, "")
	assert.Equal(t, http.StatusMethodNotAllowed, w.Code)
}

func multipartUpload(t *testing.T, filename, contentType, content, country string) (*bytes.Buffer, string) {
	t.Helper()
	var buf bytes.Buffer
	mw := multipart.NewWriter(&buf)

	h := make(textproto.MIMEHeader)
	h.Set("Content-Disposition", fmt.Sprintf(`form-data; name="file"; filename="%s"`, filename))
	if contentType != "" {
		h.Set("Content-Type", contentType)
	}
	pw, err := mw.CreatePart(h)
	require.NoError(t, err)
	_, err = pw.Write([]byte(content))
	require.NoError(t, err)

	if country != "" {
		require.NoError(t, mw.WriteField("country", country))
	}
	require.NoError(t, mw.Close())
	return &buf, mw.FormDataContentType()
}

func TestUpload_TXT(t *testing.T) {
	deps := testDeps(t)
	mux := NewMux(deps)

	sub := deps.Hub.Subscribe()
	defer deps.Hub.Unsubscribe(sub)

	body, ct := multipartUpload(t, "jobs.txt", "text/plain", linkedinTXT, "spain")
	w := doRequest(mux, http.MethodPost, "/upload", body, ct)
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())

	var resp UploadResponse
	decodeJSON(t, w, &resp)
	assert.Equal(t, "jobs.txt", resp.FileName)
	assert.Equal(t, "txt", resp.FileType)
	assert.Equal(t, 1, resp.JobCount)
	assert.Equal(t, "spain", resp.Country)
	require.Len(t, resp.Jobs, 1)
	assert.Equal(t, "Backend Developer", resp.Jobs[0].Title)
	assert.Equal(t, "spain", resp.Jobs[0].Country)
	assert.NotZero(t, resp.Dataset.ID)
	assert.Equal(t, 1, resp.Insights.Metrics.TotalJobs)

	select {
	case msg := <-sub:
		assert.Contains(t, msg, events.TypeDatasetUploaded)
	default:
		t.Fatal("expected a dataset_uploaded event")
	}
}

func TestUpload_CSV(t *testing.T) {
	mux := NewMux(testDeps(t))
	body, ct := multipartUpload(t, "jobs.csv", "text/csv", datasetCSV, "")
	w := doRequest(mux, http.MethodPost, "/upload", body, ct)
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())

	var resp UploadResponse
	decodeJSON(t, w, &resp)
	assert.Equal(t, "csv", resp.FileType)
	assert.Equal(t, 2, resp.JobCount)
	assert.Equal(t, "argentina", resp.Country)
}

func TestUpload_UnsupportedType(t *testing.T) {
	mux := NewMux(testDeps(t))
	body, ct := multipartUpload(t, "jobs.pdf", "application/pdf", "%PDF-1.4", "")
	w := doRequest(mux, http.MethodPost, "/upload", body, ct)
	require.Equal(t, http.StatusBadRequest, w.Code)

	var e APIError
	decodeJSON(t, w, &e)
	assert.Equal(t, "invalid_file", e.Error.Code)
}

func TestUpload_TooLarge(t *testing.T) {
	deps := testDeps(t)
	cfg := testConfig()
	cfg.Upload.MaxBytes = 16
	deps.CfgVal.Store(cfg)
	mux := NewMux(deps)

	body, ct := multipartUpload(t, "jobs.txt", "text/plain", linkedinTXT, "")
	w := doRequest(mux, http.MethodPost, "/upload", body, ct)
	require.Equal(t, http.StatusBadRequest, w.Code)

	var e APIError
	decodeJSON(t, w, &e)
	assert.Equal(t, "file_too_large", e.Error.Code)
}

func TestUpload_NoRecords(t *testing.T) {
	mux := NewMux(testDeps(t))
	body, ct := multipartUpload(t, "jobs.txt", "text/plain", "Set job alert\n", "")
	w := doRequest(mux, http.MethodPost, "/upload", body, ct)
	require.Equal(t, http.StatusBadRequest, w.Code)

	var e APIError
	decodeJSON(t, w, &e)
	assert.Equal(t, "no_records", e.Error.Code)
}

func TestUpload_MissingFile(t *testing.T) {
	mux := NewMux(testDeps(t))
	var buf bytes.Buffer
	mw := multipart.NewWriter(&buf)
	require.NoError(t, mw.WriteField("country", "spain"))
	require.NoError(t, mw.Close())

	w := doRequest(mux, http.MethodPost, "/upload", &buf, mw.FormDataContentType())
	require.Equal(t, http.StatusBadRequest, w.Code)

	var e APIError
	decodeJSON(t, w, &e)
	assert.Equal(t, "missing_file", e.Error.Code)
}

func TestExport(t *testing.T) {
	mux := NewMux(testDeps(t))

	payload := map[string]any{"jobs": []domain.JobRecord{
		{Company: "Acme", Title: "Engineer", Category: "Software Engineer"},
	}}
	b, err := json.Marshal(payload)
	require.NoError(t, err)

	w := doRequest(mux, http.MethodPost, "/export", bytes.NewBuffer(b), "application/json")
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "text/csv", w.Header().Get("Content-Type"))
	assert.Contains(t, w.Header().Get("Content-Disposition"), "job_data_export.csv")

	lines := strings.Split(w.Body.String(), "\n")
	require.Len(t, lines, 2)
	assert.True(t, strings.HasPrefix(lines[0], "company,title,"))
	assert.True(t, strings.HasPrefix(lines[1], "Acme,Engineer,"))
}

func TestExport_InvalidBody(t *testing.T) {
	mux := NewMux(testDeps(t))

	w := doRequest(mux, http.MethodPost, "/export", bytes.NewBufferString("not json"), "application/json")
	require.Equal(t, http.StatusBadRequest, w.Code)

	w = doRequest(mux, http.MethodPost, "/export", bytes.NewBufferString(`{}`), "application/json")
	require.Equal(t, http.StatusBadRequest, w.Code)

	var e APIError
	decodeJSON(t, w, &e)
	assert.Equal(t, "invalid_jobs", e.Error.Code)
}

func TestDatasets_Lifecycle(t *testing.T) {
	deps := testDeps(t)
	mux := NewMux(deps)

	// Empty history serializes as [], not null.
	w := doRequest(mux, http.MethodGet, "/datasets", nil, "")
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "[]\n", w.Body.String())

	body, ct := multipartUpload(t, "jobs.txt", "text/plain", linkedinTXT, "")
	w = doRequest(mux, http.MethodPost, "/upload", body, ct)
	require.Equal(t, http.StatusOK, w.Code)
	var up UploadResponse
	decodeJSON(t, w, &up)
	id := up.Dataset.ID

	w = doRequest(mux, http.MethodGet, "/datasets", nil, "")
	require.Equal(t, http.StatusOK, w.Code)
	var list []store.Dataset
	decodeJSON(t, w, &list)
	require.Len(t, list, 1)
	assert.Equal(t, id, list[0].ID)

	w = doRequest(mux, http.MethodGet, fmt.Sprintf("/datasets/%d/jobs", id), nil, "")
	require.Equal(t, http.StatusOK, w.Code)
	var jobs []domain.JobRecord
	decodeJSON(t, w, &jobs)
	require.Len(t, jobs, 1)
	assert.Equal(t, "Backend Developer", jobs[0].Title)

	w = doRequest(mux, http.MethodGet, fmt.Sprintf("/datasets/%d/insights", id), nil, "")
	require.Equal(t, http.StatusOK, w.Code)
	var ins InsightsResponse
	decodeJSON(t, w, &ins)
	assert.Equal(t, 1, ins.Metrics.TotalJobs)

	w = doRequest(mux, http.MethodDelete, fmt.Sprintf("/datasets/%d", id), nil, "")
	require.Equal(t, http.StatusOK, w.Code)

	w = doRequest(mux, http.MethodGet, fmt.Sprintf("/datasets/%d/jobs", id), nil, "")
	require.Equal(t, http.StatusNotFound, w.Code)
}

func TestDatasets_InvalidID(t *testing.T) {
	mux := NewMux(testDeps(t))
	w := doRequest(mux, http.MethodGet, "/datasets/abc/jobs", nil, "")
	require.Equal(t, http.StatusBadRequest, w.Code)

	var e APIError
	decodeJSON(t, w, &e)
	assert.Equal(t, "invalid_id", e.Error.Code)
}

func TestDatasets_NotFound(t *testing.T) {
	mux := NewMux(testDeps(t))
	w := doRequest(mux, http.MethodGet, "/datasets/999/jobs", nil, "")
	require.Equal(t, http.StatusNotFound, w.Code)

	w = doRequest(mux, http.MethodDelete, "/datasets/999", nil, "")
	require.Equal(t, http.StatusNotFound, w.Code)
}

func configDeps(t *testing.T) Deps {
	t.Helper()
	deps := testDeps(t)
	deps.UserCfgPath = filepath.Join(t.TempDir(), "config.yml")
	deps.LoadCfg = func() (config.Config, error) {
		cfg, err := config.Load(deps.UserCfgPath)
		if err != nil {
			return config.Config{}, err
		}
		out, _ := config.NormalizeAndValidate(cfg)
		return out, nil
	}
	return deps
}

func TestConfig_Get(t *testing.T) {
	mux := NewMux(configDeps(t))
	w := doRequest(mux, http.MethodGet, "/config", nil, "")
	require.Equal(t, http.StatusOK, w.Code)

	var cfg config.Config
	decodeJSON(t, w, &cfg)
	assert.Equal(t, 38520, cfg.App.Port)
	assert.Equal(t, "argentina", cfg.Dataset.Country)
}

func TestConfig_PutPersistsAndReloads(t *testing.T) {
	deps := configDeps(t)
	mux := NewMux(deps)

	next := testConfig()
	next.App.Port = 40001
	next.Dataset.Country = "spain"
	b, err := json.Marshal(next)
	require.NoError(t, err)

	w := doRequest(mux, http.MethodPut, "/config", bytes.NewBuffer(b), "application/json")
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())

	stored := deps.CfgVal.Load().(config.Config)
	assert.Equal(t, 40001, stored.App.Port)
	assert.Equal(t, "spain", stored.Dataset.Country)

	_, err = os.Stat(deps.UserCfgPath)
	assert.NoError(t, err)
}

func TestConfig_PutRejectsInvalid(t *testing.T) {
	deps := configDeps(t)
	mux := NewMux(deps)

	next := testConfig()
	next.App.Port = -5
	b, err := json.Marshal(next)
	require.NoError(t, err)

	w := doRequest(mux, http.MethodPut, "/config", bytes.NewBuffer(b), "application/json")
	require.Equal(t, http.StatusBadRequest, w.Code)

	var vr config.Validation
	decodeJSON(t, w, &vr)
	assert.NotEmpty(t, vr.Errors)

	// Snapshot untouched.
	assert.Equal(t, 38520, deps.CfgVal.Load().(config.Config).App.Port)
}

func TestConfig_PutRejectsUnknownFields(t *testing.T) {
	mux := NewMux(configDeps(t))
	w := doRequest(mux, http.MethodPut, "/config", bytes.NewBufferString(`{"bogus": 1}`), "application/json")
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestConfig_Path(t *testing.T) {
	deps := configDeps(t)
	mux := NewMux(deps)
	w := doRequest(mux, http.MethodGet, "/config/path", nil, "")
	require.Equal(t, http.StatusOK, w.Code)

	var resp map[string]string
	decodeJSON(t, w, &resp)
	assert.Contains(t, resp["path"], "config.yml")
}
