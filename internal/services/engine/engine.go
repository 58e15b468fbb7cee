// Package engine implements the pure action/state-transition rules of
// the game. Every operation takes a state, deep-clones it before any
// mutation and returns a Result; rejected actions leave the input state
// untouched. Nothing here performs I/O.
package engine

import (
	"fmt"

	"github.com/sidra-games/splendid/internal/catalog"
	"github.com/sidra-games/splendid/internal/dependencies/clock"
	"github.com/sidra-games/splendid/internal/dependencies/random"
	"github.com/sidra-games/splendid/internal/model"
)

// Fallback display names for auto-filled AI seats
var aiSeatNames = []string{"Capt. Pixel", "Unit 734", "Star Gazer", "Void Runner"}

// Engine evaluates actions against game states. The clock only feeds
// log-entry timestamps, so a mocked clock makes histories reproducible.
type Engine struct {
	clock clock.Clock
}

// New creates an Engine
func New(clk clock.Clock) *Engine {
	return &Engine{clock: clk}
}

// NewGame deals a fresh game for the given seats. Seats beyond the
// provided configs, and configs without an occupant, become AI players
// on a rotating default strategy. Shuffles come from rnd, so a seeded
// source yields an identical deal every time.
func (e *Engine) NewGame(cat *catalog.Catalog, seats []model.PlayerConfig, targetScore int, rnd random.Random) *model.GameState {
	if targetScore <= 0 {
		targetScore = model.TargetScoreDefault
	}

	deck1 := shuffledCards(cat.Level1, rnd)
	deck2 := shuffledCards(cat.Level2, rnd)
	deck3 := shuffledCards(cat.Level3, rnd)

	market1, deck1 := draw(deck1, model.MarketSlots)
	market2, deck2 := draw(deck2, model.MarketSlots)
	market3, deck3 := draw(deck3, model.MarketSlots)

	nobles := shuffledNobles(cat.Nobles, rnd)
	if len(nobles) > model.NoblesInPlay {
		nobles = nobles[:model.NoblesInPlay]
	}

	players := make([]model.Player, model.SeatCount)
	for i := range players {
		players[i] = model.NewPlayer(seatConfig(seats, i))
	}

	state := &model.GameState{
		Players:            players,
		CurrentPlayerIndex: 0,
		Market:             model.Market{Level1: market1, Level2: market2, Level3: market3},
		Decks:              model.Decks{Level1: deck1, Level2: deck2, Level3: deck3},
		Nobles:             nobles,
		Gems:               model.InitialBank(),
		TargetScore:        targetScore,
		Turn:               1,
		LastAction:         "Mission started",
		History:            []model.ActionLogEntry{},
	}
	return state
}

// seatConfig resolves the config for one seat index, filling gaps with
// an AI opponent on the default rotation
func seatConfig(seats []model.PlayerConfig, idx int) model.PlayerConfig {
	if idx < len(seats) {
		cfg := seats[idx]
		if cfg.ID != "" {
			if cfg.Name == "" {
				cfg.Name = fmt.Sprintf("Explorer %d", idx+1)
			}
			if !cfg.IsHuman && cfg.StrategyID == "" {
				cfg.StrategyID = model.DefaultSeatStrategies[idx%len(model.DefaultSeatStrategies)]
			}
			return cfg
		}
	}

	name := fmt.Sprintf("AI %d", idx+1)
	if idx < len(aiSeatNames) {
		name = aiSeatNames[idx]
	}
	strategy := model.DefaultSeatStrategies[idx%len(model.DefaultSeatStrategies)]
	if idx < len(seats) && seats[idx].StrategyID != "" {
		// empty seat configured with a specific AI strategy
		strategy = seats[idx].StrategyID
	}
	return model.PlayerConfig{
		ID:         model.PlayerID(fmt.Sprintf("ai-%d", idx+1)),
		Name:       name,
		IsHuman:    false,
		StrategyID: strategy,
	}
}

func shuffledCards(cards []model.Card, rnd random.Random) []model.Card {
	out := make([]model.Card, len(cards))
	for i, c := range cards {
		out[i] = c
		out[i].Cost = c.Cost.Clone()
	}
	rnd.Shuffle(len(out), func(i, j int) { out[i], out[j] = out[j], out[i] })
	return out
}

func shuffledNobles(nobles []model.Noble, rnd random.Random) []model.Noble {
	out := make([]model.Noble, len(nobles))
	for i, n := range nobles {
		out[i] = n
		out[i].Requirements = n.Requirements.Clone()
	}
	rnd.Shuffle(len(out), func(i, j int) { out[i], out[j] = out[j], out[i] })
	return out
}

// draw removes up to n cards from the top of the deck
func draw(deck []model.Card, n int) (drawn, rest []model.Card) {
	if n > len(deck) {
		n = len(deck)
	}
	return deck[:n], deck[n:]
}

// GemCount returns the number of tokens a player holds, gold included
func GemCount(p *model.Player) int {
	return p.GemTotal()
}

// CanBuyCard reports whether the player can afford the card: for every
// non-gold color the cost net of bonuses must be payable from the
// player's own tokens, with gold covering the aggregate shortfall.
func CanBuyCard(p *model.Player, card *model.Card) bool {
	goldNeeded := 0
	for _, color := range model.NonGoldGems {
		cost := card.Cost[color]
		if cost == 0 {
			continue
		}
		remaining := cost - p.Bonuses[color]
		if remaining <= 0 {
			continue
		}
		if owned := p.Gems[color]; owned < remaining {
			goldNeeded += remaining - owned
		}
	}
	return p.Gems[model.GemGold] >= goldNeeded
}

// logAction appends an entry for the acting player to the history
func (e *Engine) logAction(state *model.GameState, kind model.LogKind, summary string, payload map[string]any) {
	actor := state.CurrentPlayer()
	state.History = append(state.History, model.ActionLogEntry{
		Turn:       state.Turn,
		PlayerID:   actor.ID,
		PlayerName: actor.Name,
		Kind:       kind,
		Summary:    summary,
		Payload:    payload,
		Timestamp:  e.clock.Now(),
	})
}
