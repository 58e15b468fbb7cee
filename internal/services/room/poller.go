package room

import (
	"context"
	"errors"
	"log/slog"
	"time"

	"github.com/sidra-games/splendid/internal/model"
	"github.com/sidra-games/splendid/internal/storage"
)

// DefaultPollInterval is the cadence clients reconcile on
const DefaultPollInterval = 2500 * time.Millisecond

// PollerHooks are the callbacks a Poller drives. OnChange receives the
// whole record whenever the revision moved; OnClosed fires once when
// the room disappears from the store.
type PollerHooks struct {
	OnChange func(record *model.RoomRecord)
	OnClosed func()
}

// Poller periodically fetches one room record and invokes hooks on
// revision changes. The next tick is scheduled only after the previous
// fetch settles, so polls never pile up; fetch failures are logged and
// retried on the same cadence.
type Poller struct {
	storage      storage.Storage
	code         model.RoomCode
	interval     time.Duration
	hooks        PollerHooks
	lastRevision int64
	logger       *slog.Logger
}

// NewPoller creates a poller for one room. interval <= 0 uses the
// default cadence.
func NewPoller(store storage.Storage, code model.RoomCode, interval time.Duration, hooks PollerHooks, logger *slog.Logger) *Poller {
	if interval <= 0 {
		interval = DefaultPollInterval
	}
	return &Poller{
		storage:      store,
		code:         code,
		interval:     interval,
		hooks:        hooks,
		lastRevision: -1,
		logger: logger.With(
			slog.String("component", "room-poller"),
			slog.String("room_code", string(code)),
		),
	}
}

// Run polls until the context is cancelled or the room disappears.
// It blocks; run it in its own goroutine.
func (p *Poller) Run(ctx context.Context) {
	timer := time.NewTimer(p.interval)
	defer timer.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-timer.C:
		}

		if closed := p.pollOnce(ctx); closed {
			return
		}

		timer.Reset(p.interval)
	}
}

// PollOnce fetches the record once and fires hooks as appropriate.
// Returns true when the room is gone and polling should stop.
func (p *Poller) PollOnce(ctx context.Context) bool {
	return p.pollOnce(ctx)
}

func (p *Poller) pollOnce(ctx context.Context) bool {
	record, err := p.storage.GetRoom(ctx, p.code)
	if err != nil {
		if errors.Is(err, model.ErrRoomNotFound) {
			p.logger.Info("room closed")
			if p.hooks.OnClosed != nil {
				p.hooks.OnClosed()
			}
			return true
		}
		// transient failure, retried on the next tick
		p.logger.Warn("poll failed", slog.String("error", err.Error()))
		return false
	}

	if record.Revision == p.lastRevision {
		return false
	}
	p.lastRevision = record.Revision
	if p.hooks.OnChange != nil {
		p.hooks.OnChange(record)
	}
	return false
}
