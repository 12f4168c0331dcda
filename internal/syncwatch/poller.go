package syncwatch

import (
	"context"
	"log/slog"
	"time"

	"clio/internal/collection"
	"clio/internal/logging"
	"clio/internal/services"
	"clio/internal/services/kleio"
)

const component = "syncwatch"

// DefaultInterval is the probe spacing.
const DefaultInterval = time.Second

// Client is the slice of the Kleio API the poller needs.
type Client interface {
	SyncStatus(ctx context.Context) (kleio.SyncState, error)
	Collection(ctx context.Context) (collection.Snapshot, error)
}

// Poller repeatedly probes sync status until completion.
type Poller struct {
	client   Client
	interval time.Duration
	logger   *slog.Logger
	progress func(kleio.SyncState)
}

// Option customizes poller construction.
type Option func(*Poller)

// WithInterval overrides the probe interval. Non-positive values keep the
// default.
func WithInterval(interval time.Duration) Option {
	return func(p *Poller) {
		if interval > 0 {
			p.interval = interval
		}
	}
}

// WithLogger attaches a logger for per-probe progress lines.
func WithLogger(logger *slog.Logger) Option {
	return func(p *Poller) {
		if logger != nil {
			p.logger = logger
		}
	}
}

// WithProgress registers a callback invoked after every successful probe,
// including the final one.
func WithProgress(fn func(kleio.SyncState)) Option {
	return func(p *Poller) {
		p.progress = fn
	}
}

// New builds a poller around client.
func New(client Client, opts ...Option) *Poller {
	poller := &Poller{
		client:   client,
		interval: DefaultInterval,
		logger:   logging.NewNop(),
	}
	for _, opt := range opts {
		opt(poller)
	}
	return poller
}

// Run blocks until the server reports the sync complete, then fetches and
// returns the refreshed snapshot. The first failed probe aborts the watch;
// cancelling the context returns its error. Probes run strictly one at a
// time, so a slow server stretches the effective interval instead of
// stacking requests.
func (p *Poller) Run(ctx context.Context) (collection.Snapshot, error) {
	ticker := time.NewTicker(p.interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return collection.Snapshot{}, ctx.Err()
		case <-ticker.C:
		}

		state, err := p.client.SyncStatus(ctx)
		if err != nil {
			return collection.Snapshot{}, services.Wrap(services.ErrTransient, component, "poll", "sync status probe failed", err)
		}
		p.logger.Debug("sync status probe", logging.String("status", state.Status))
		if p.progress != nil {
			p.progress(state)
		}

		if state.Complete() {
			snap, err := p.client.Collection(ctx)
			if err != nil {
				return collection.Snapshot{}, services.Wrap(services.ErrTransient, component, "refresh", "fetch synced collection", err)
			}
			p.logger.Info("sync complete",
				logging.Int("releases", len(snap.Releases)),
				logging.Int("plays", len(snap.PlayHistory)))
			return snap, nil
		}
	}
}
