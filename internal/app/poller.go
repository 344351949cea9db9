package app

import (
	"context"
	"errors"
	"time"

	"github.com/five82/shoplens/internal/logging"
	"github.com/five82/shoplens/internal/recommend"
	"github.com/five82/shoplens/internal/resulttree"
	"github.com/five82/shoplens/internal/state"
)

const (
	defaultPollInterval = 30 * time.Second
	maxBackoff          = 30 * time.Second
	refreshTimeout      = 10 * time.Second
)

// forecaster is the slice of recommend.Service the poller needs.
type forecaster interface {
	FetchForecast(ctx context.Context) (*resulttree.Tree, error)
}

// StartPoller launches a background goroutine that refreshes the forecast in
// store. After failures it waits with exponential backoff. It returns
// immediately.
func StartPoller(ctx context.Context, store *state.Store, client forecaster, interval time.Duration) {
	if interval <= 0 {
		interval = defaultPollInterval
	}
	go func() {
		timer := time.NewTimer(0)
		defer timer.Stop()

		for {
			select {
			case <-ctx.Done():
				return
			case <-timer.C:
			}
			refresh(ctx, store, client)
			timer.Reset(calculateBackoff(store.Snapshot().ConsecutiveFailures, interval))
		}
	}()
}

func refresh(ctx context.Context, store *state.Store, client forecaster) {
	reqCtx, cancel := context.WithTimeout(ctx, refreshTimeout)
	defer cancel()

	tree, err := client.FetchForecast(reqCtx)
	if err == nil {
		store.Update(tree, nil)
		return
	}
	if ctx.Err() != nil {
		return
	}

	// The service answers 4xx until a dataset is uploaded; it is still up.
	var apiErr *recommend.APIError
	if errors.As(err, &apiErr) && apiErr.Status < 500 {
		store.Update(nil, nil)
		logging.Debug().Err(err).Msg("forecast not available yet")
		return
	}

	store.Update(nil, err)
	logging.Warn().Err(err).Msg("forecast poll failed")
}

// calculateBackoff doubles the base interval per consecutive failure, capped
// at maxBackoff.
func calculateBackoff(failures int, base time.Duration) time.Duration {
	if failures <= 0 || base >= maxBackoff {
		return base
	}
	backoff := base
	for range failures {
		backoff *= 2
		if backoff >= maxBackoff {
			return maxBackoff
		}
	}
	return backoff
}
