package room

import (
	"context"
	"log/slog"
	"time"

	"github.com/sidra-games/splendid/internal/model"
	"github.com/sidra-games/splendid/internal/services/ai"
	"github.com/sidra-games/splendid/internal/services/engine"
)

const (
	// DefaultThinkDelay is how long an AI seat appears to deliberate
	DefaultThinkDelay = 1500 * time.Millisecond
	// MaxDriverIterations bounds one Step cascade
	MaxDriverIterations = 1000
)

// HostDriver plays out AI turns. Only the hosting client runs one, so
// a room never has two writers racing to move the same AI seat. Each
// move re-fetches the record after the think delay and skips itself
// when the revision moved underneath it, so a stale decision is never
// applied over someone else's action.
type HostDriver struct {
	service    *Service
	ai         *ai.Service
	engine     *engine.Engine
	thinkDelay time.Duration
	logger     *slog.Logger
}

// NewHostDriver creates a driver. thinkDelay < 0 uses the default;
// 0 disables the delay (tests).
func NewHostDriver(service *Service, aiService *ai.Service, eng *engine.Engine, thinkDelay time.Duration, logger *slog.Logger) *HostDriver {
	if thinkDelay < 0 {
		thinkDelay = DefaultThinkDelay
	}
	return &HostDriver{
		service:    service,
		ai:         aiService,
		engine:     eng,
		thinkDelay: thinkDelay,
		logger:     logger.With(slog.String("component", "host-driver")),
	}
}

// Step plays consecutive AI turns until a human seat is up, the game
// ends, or the iteration cap trips. Returns the number of moves applied.
func (d *HostDriver) Step(ctx context.Context, code model.RoomCode) (int, error) {
	applied := 0

	for iter := 0; iter < MaxDriverIterations; iter++ {
		record, err := d.service.GetRoom(ctx, code)
		if err != nil {
			return applied, err
		}
		if record.Status != model.RoomStatusInProgress || record.Game == nil {
			return applied, nil
		}

		state := record.Game
		if state.WinnerID != "" || state.CurrentPlayer().IsHuman {
			return applied, nil
		}

		startRevision := record.Revision
		if err := d.think(ctx); err != nil {
			return applied, err
		}

		// Re-fetch: another writer may have advanced the game while
		// this seat was "thinking".
		record, err = d.service.GetRoom(ctx, code)
		if err != nil {
			return applied, err
		}
		if record.Revision != startRevision {
			d.logger.Debug("skipping stale AI turn",
				slog.String("room_code", string(code)),
				slog.Int64("revision", record.Revision),
			)
			continue
		}
		if record.Status != model.RoomStatusInProgress || record.Game == nil {
			return applied, nil
		}

		state = record.Game
		actor := state.CurrentPlayer()
		if state.WinnerID != "" || actor.IsHuman {
			return applied, nil
		}

		decision := d.ai.ChooseMove(ctx, state, actor)
		next := d.applyDecision(state, actor, decision)

		if _, err := d.service.SaveGameState(ctx, code, next); err != nil {
			return applied, err
		}
		applied++

		d.logger.Info("AI move applied",
			slog.String("room_code", string(code)),
			slog.String("player_id", string(actor.ID)),
			slog.String("strategy", string(actor.StrategyID)),
			slog.String("kind", string(decision.Kind)),
			slog.String("source", decision.Source),
		)
	}

	return applied, nil
}

// applyDecision maps a decision onto an engine call. Decisions the
// engine rejects degrade to a pass, so an AI seat can never wedge the
// game by insisting on an illegal move.
func (d *HostDriver) applyDecision(state *model.GameState, actor *model.Player, decision ai.Decision) *model.GameState {
	var res engine.Result

	switch decision.Kind {
	case ai.DecisionTakeGems:
		if len(decision.Gems) > 0 {
			res = d.engine.TakeGems(state, decision.Gems)
		}
	case ai.DecisionReserve:
		if decision.ReserveFromDeckLevel >= 1 && decision.ReserveFromDeckLevel <= 3 {
			res = d.engine.ReserveCard(state, "", decision.ReserveFromDeckLevel)
		} else if decision.CardID != "" {
			res = d.engine.ReserveCard(state, decision.CardID, 0)
		}
	case ai.DecisionBuy:
		if decision.CardID != "" {
			fromReserve := decision.FromReserve || actor.HasReserved(decision.CardID)
			res = d.engine.BuyCard(state, decision.CardID, fromReserve)
		}
	}

	if res.Accepted {
		return res.State
	}
	if res.Reason != engine.ReasonNone {
		d.logger.Warn("AI decision rejected, passing instead",
			slog.String("player_id", string(actor.ID)),
			slog.String("kind", string(decision.Kind)),
			slog.String("reason", string(res.Reason)),
		)
	}

	pass := d.engine.PassTurn(state, decision.StrategyUsed, decision.Source)
	return pass.State
}

func (d *HostDriver) think(ctx context.Context) error {
	if d.thinkDelay <= 0 {
		return nil
	}
	timer := time.NewTimer(d.thinkDelay)
	defer timer.Stop()
	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-timer.C:
		return nil
	}
}
