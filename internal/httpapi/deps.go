package httpapi

import (
	"database/sql"
	"sync/atomic"

	"jobmarket-engine/internal/config"
	"jobmarket-engine/internal/events"
)

type Deps struct {
	DB *sql.DB

	Hub *events.Hub

	// Hot-reloadable config snapshot (stores config.Config).
	CfgVal *atomic.Value

	// Config persistence
	UserCfgPath string
	LoadCfg     func() (config.Config, error)

	// Dataset file reader (injected for testability; defaults to os.ReadFile).
	ReadDataset func(path string) ([]byte, error)
}
