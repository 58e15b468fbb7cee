// Package ai chooses moves for AI-controlled seats. Local heuristic
// strategies work purely from the game state; the remote strategies ask
// a text-generation model and fall back to the balanced heuristic on
// any failure, so a caller always gets a usable decision.
package ai

import (
	"context"
	"log/slog"

	"github.com/sidra-games/splendid/internal/dependencies/random"
	"github.com/sidra-games/splendid/internal/model"
)

// DecisionKind is the action category a strategy recommends
type DecisionKind string

const (
	DecisionBuy      DecisionKind = "BUY"
	DecisionReserve  DecisionKind = "RESERVE"
	DecisionTakeGems DecisionKind = "TAKE_GEMS"
	DecisionPass     DecisionKind = "PASS"
)

// Decision is one recommended action for the acting player
type Decision struct {
	Kind                 DecisionKind
	CardID               model.CardID
	FromReserve          bool
	ReserveFromDeckLevel int // 1..3 for a blind deck reserve, 0 otherwise
	Gems                 []model.GemColor
	Reasoning            string
	Source               string // "local" or the remote strategy id
	StrategyUsed         model.StrategyID
}

// RemoteMover produces a decision from a remote text-generation model.
// A nil decision or an error both mean the remote path failed.
type RemoteMover interface {
	RequestMove(ctx context.Context, state *model.GameState, player *model.Player, strategy model.StrategyID) (*Decision, error)
}

// Service dispatches move selection by the player's strategy id
type Service struct {
	remote RemoteMover
	random random.Random
	logger *slog.Logger
}

// NewService creates an ai Service. remote may be nil, in which case
// the remote strategy ids resolve locally via the balanced heuristic.
func NewService(remote RemoteMover, rnd random.Random, logger *slog.Logger) *Service {
	return &Service{
		remote: remote,
		random: rnd,
		logger: logger.With(slog.String("component", "ai-service")),
	}
}

// ChooseMove picks one action for the acting player. It never fails:
// unknown strategy ids and remote failures all resolve to a local
// heuristic decision.
func (s *Service) ChooseMove(ctx context.Context, state *model.GameState, player *model.Player) Decision {
	strategy := player.StrategyID
	if strategy == "" {
		strategy = model.StrategyBalanced
	}

	if model.IsRemoteStrategy(strategy) {
		decision, err := s.requestRemote(ctx, state, player, strategy)
		if decision != nil {
			return *decision
		}
		if err != nil {
			s.logger.Warn("remote strategy failed, falling back to balanced",
				slog.String("strategy", string(strategy)),
				slog.String("player_id", string(player.ID)),
				slog.String("error", err.Error()),
			)
		}
		strategy = model.StrategyBalanced
	}

	return s.pickLocal(state, player, strategy)
}

func (s *Service) requestRemote(ctx context.Context, state *model.GameState, player *model.Player, strategy model.StrategyID) (*Decision, error) {
	if s.remote == nil {
		return nil, nil
	}
	return s.remote.RequestMove(ctx, state, player, strategy)
}

func (s *Service) pickLocal(state *model.GameState, player *model.Player, strategy model.StrategyID) Decision {
	switch strategy {
	case model.StrategyRandom:
		return s.randomAction(state, player)
	case model.StrategyAggressive:
		return s.aggressiveAction(state, player)
	case model.StrategyDefensive:
		return s.defensiveAction(state, player)
	default:
		return s.balancedAction(state, player)
	}
}
