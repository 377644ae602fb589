package store

import (
	"context"

	"moncollect/internal/collect"
)

// SaveOption configures the SubmitFunc returned by Save.
type SaveOption func(*saveConfig)

type saveConfig struct {
	onSaved func(Collector)
}

// OnSaved registers a callback receiving the stored record after a
// successful save.
func OnSaved(fn func(Collector)) SaveOption {
	return func(c *saveConfig) {
		c.onSaved = fn
	}
}

// Save adapts the store to the form's submit pipeline. id 0 creates a new
// collector; any other id updates that collector. A cancelled ctx aborts
// before anything is written.
func (s *Store) Save(id int64, opts ...SaveOption) collect.SubmitFunc {
	cfg := saveConfig{}
	for _, opt := range opts {
		opt(&cfg)
	}
	return func(ctx context.Context, p collect.Payload) error {
		if err := ctx.Err(); err != nil {
			return err
		}
		var (
			saved Collector
			err   error
		)
		if id == 0 {
			saved, err = s.CreateCollector(ctx, p)
		} else {
			if err = s.UpdateCollector(ctx, id, p); err == nil {
				saved, err = s.GetCollector(ctx, id)
			}
		}
		if err != nil {
			return err
		}
		if cfg.onSaved != nil {
			cfg.onSaved(saved)
		}
		return nil
	}
}
