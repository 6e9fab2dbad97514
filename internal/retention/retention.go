// Package retention periodically prunes old uploaded datasets.
package retention

import (
	"context"
	"database/sql"
	"log"
	"sync/atomic"
	"time"

	"jobmarket-engine/internal/config"
	"jobmarket-engine/internal/store"
)

// Run sweeps on the configured interval until ctx is done. The first sweep
// runs immediately. Reads the config snapshot each tick so PUT /config
// changes to max_age_days apply without a restart.
func Run(ctx context.Context, db *sql.DB, cfgVal *atomic.Value) {
	cfg := cfgVal.Load().(config.Config)
	if cfg.Retention.MaxAgeDays <= 0 || cfg.Retention.SweepSeconds <= 0 {
		log.Printf("[retention] disabled")
		return
	}

	t := time.NewTicker(time.Duration(cfg.Retention.SweepSeconds) * time.Second)
	defer t.Stop()

	sweep(ctx, db, cfgVal)
	for {
		select {
		case <-ctx.Done():
			return
		case <-t.C:
			sweep(ctx, db, cfgVal)
		}
	}
}

func sweep(ctx context.Context, db *sql.DB, cfgVal *atomic.Value) {
	cfg := cfgVal.Load().(config.Config)

	sctx, cancel := context.WithTimeout(ctx, 30*time.Second)
	defer cancel()

	n, err := store.CleanupOldDatasets(sctx, db, cfg.Retention.MaxAgeDays)
	if err != nil {
		log.Printf("[retention] error: %v", err)
		return
	}
	if n > 0 {
		log.Printf("[retention] deleted %d datasets older than %d days", n, cfg.Retention.MaxAgeDays)
	}
}
