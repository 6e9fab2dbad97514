package httpapi

import (
	"net/http"
	"os"

	"jobmarket-engine/internal/config"
)

// NewMux wires every handler. Middleware is attached by the caller via Chain
// so tests can hit handlers bare.
func NewMux(d Deps) *http.ServeMux {
	mux := http.NewServeMux()

	readDataset := d.ReadDataset
	if readDataset == nil {
		readDataset = os.ReadFile
	}

	cfg := d.CfgVal.Load().(config.Config)

	mux.HandleFunc("/health", methodMux(map[string]http.HandlerFunc{
		http.MethodGet: HealthHandler{}.Health,
	}))

	// Default dataset
	jh := JobsHandler{CfgVal: d.CfgVal, ReadDataset: readDataset}
	mux.HandleFunc("/jobs", methodMux(map[string]http.HandlerFunc{
		http.MethodGet: jh.List,
	}))
	mux.HandleFunc("/insights", methodMux(map[string]http.HandlerFunc{
		http.MethodGet: jh.Insights,
	}))

	// Uploads
	uh := UploadHandler{DB: d.DB, Hub: d.Hub, CfgVal: d.CfgVal}
	mux.HandleFunc("/upload", methodMux(map[string]http.HandlerFunc{
		http.MethodPost: RateLimited(cfg.Upload.PerMinute, uh.Upload),
	}))

	// Re-export
	xh := ExportHandler{}
	mux.HandleFunc("/export", methodMux(map[string]http.HandlerFunc{
		http.MethodPost: xh.Export,
	}))

	// Upload history
	dh := DatasetsHandler{DB: d.DB, Hub: d.Hub, CfgVal: d.CfgVal}
	mux.HandleFunc("/datasets", methodMux(map[string]http.HandlerFunc{
		http.MethodGet: dh.List,
	}))
	mux.HandleFunc("/datasets/", dh.ByPath)

	// Config
	ch := ConfigHandler{
		CfgVal:      d.CfgVal,
		Hub:         d.Hub,
		UserCfgPath: d.UserCfgPath,
		LoadCfg:     d.LoadCfg,
	}
	mux.HandleFunc("/config", methodMux(map[string]http.HandlerFunc{
		http.MethodGet: ch.Get,
		http.MethodPut: ch.Put,
	}))
	mux.HandleFunc("/config/path", methodMux(map[string]http.HandlerFunc{
		http.MethodGet: ch.Path,
	}))

	// SSE events
	eh := EventsHandler{Hub: d.Hub}
	mux.HandleFunc("/events", methodMux(map[string]http.HandlerFunc{
		http.MethodGet: eh.ServeSSE,
	}))

	return mux
}
