package engine

import (
	"fmt"

	"github.com/sidra-games/splendid/internal/model"
)

// resolveTurn runs after every accepted action: noble award, seat
// advance, and the win check when play wraps back to seat 0.
func (e *Engine) resolveTurn(state *model.GameState) {
	e.awardNoble(state)

	state.CurrentPlayerIndex = (state.CurrentPlayerIndex + 1) % len(state.Players)
	if state.CurrentPlayerIndex == 0 {
		state.Turn++
		e.checkWin(state)
	}
}

// awardNoble grants the acting player the first noble in pool order
// whose full requirement their bonuses cover. At most one noble per
// turn even when several qualify; the first-match tie-break is fixed,
// not randomized.
func (e *Engine) awardNoble(state *model.GameState) {
	player := state.CurrentPlayer()

	for i := range state.Nobles {
		noble := state.Nobles[i]
		qualifies := true
		for _, color := range model.NonGoldGems {
			if player.Bonuses[color] < noble.Requirements[color] {
				qualifies = false
				break
			}
		}
		if !qualifies {
			continue
		}

		player.Nobles = append(player.Nobles, noble)
		player.Points += noble.Points
		state.Nobles = append(state.Nobles[:i], state.Nobles[i+1:]...)

		label := noble.Name
		if label == "" {
			label = string(noble.ID)
		}
		e.logAction(state, model.LogNoble, fmt.Sprintf("%s gained %s", player.Name, label), map[string]any{
			"nobleId": string(noble.ID),
		})
		return
	}
}

// checkWin latches the winner at the end of a full round. Players who
// crossed the target mid-round are only considered here, so the winner
// is decided exactly once per round boundary. Ties break by score
// alone; there is no secondary key.
func (e *Engine) checkWin(state *model.GameState) {
	if state.WinnerID != "" {
		return
	}

	var winner *model.Player
	for i := range state.Players {
		p := &state.Players[i]
		if p.Points < state.TargetScore {
			continue
		}
		if winner == nil || p.Points > winner.Points {
			winner = p
		}
	}
	if winner != nil {
		state.WinnerID = winner.ID
		state.LastAction = fmt.Sprintf("%s wins with %d points", winner.Name, winner.Points)
	}
}
