package engine

import (
	"fmt"
	"strings"

	"github.com/sidra-games/splendid/internal/model"
)

// TakeGems applies a take-gems action for the acting player. Legal
// requests are exactly 3 distinct available colors, exactly 2 of one
// color whose bank pile holds 4 or more, or 1 available color; gold is
// never takable and the player's post-take total may not exceed the cap.
func (e *Engine) TakeGems(state *model.GameState, colors []model.GemColor) Result {
	if state.WinnerID != "" {
		return rejected(state, ReasonGameOver)
	}

	for _, c := range colors {
		if c == model.GemGold {
			return rejected(state, ReasonGoldNotTakable)
		}
	}

	switch len(colors) {
	case 1:
		// single token, pile checked below
	case 2:
		if colors[0] != colors[1] {
			return rejected(state, ReasonBadGemCombo)
		}
		if state.Gems[colors[0]] < 4 {
			return rejected(state, ReasonBadGemCombo)
		}
	case 3:
		if colors[0] == colors[1] || colors[0] == colors[2] || colors[1] == colors[2] {
			return rejected(state, ReasonBadGemCombo)
		}
	default:
		return rejected(state, ReasonBadGemCombo)
	}

	for _, c := range colors {
		if state.Gems[c] <= 0 {
			return rejected(state, ReasonBankShort)
		}
	}

	if state.CurrentPlayer().GemTotal()+len(colors) > model.MaxGems {
		return rejected(state, ReasonGemCapExceeded)
	}

	next := state.Clone()
	player := next.CurrentPlayer()

	gemCounts := map[string]any{}
	names := make([]string, 0, len(colors))
	for _, c := range colors {
		next.Gems[c]--
		player.Gems[c]++
		names = append(names, string(c))
		if n, ok := gemCounts[string(c)].(int); ok {
			gemCounts[string(c)] = n + 1
		} else {
			gemCounts[string(c)] = 1
		}
	}

	player.LastAction = "Took " + strings.Join(names, ", ")
	next.LastAction = fmt.Sprintf("%s took gems", player.Name)
	e.logAction(next, model.LogTakeGems, next.LastAction, map[string]any{
		"gems":      names,
		"gemCounts": gemCounts,
	})
	e.resolveTurn(next)
	return accepted(next)
}

// ReserveCard moves a card into the acting player's reserve, either a
// named face-up market card or a blind draw from a non-empty deck.
// One gold is granted when the bank holds any and the player is under
// the token cap.
func (e *Engine) ReserveCard(state *model.GameState, cardID model.CardID, fromDeckLevel int) Result {
	if state.WinnerID != "" {
		return rejected(state, ReasonGameOver)
	}
	if len(state.CurrentPlayer().ReservedCards) >= model.MaxReserved {
		return rejected(state, ReasonReserveFull)
	}

	blind := fromDeckLevel >= 1 && fromDeckLevel <= 3
	if blind {
		if len(state.Decks.Row(fromDeckLevel)) == 0 {
			return rejected(state, ReasonDeckEmpty)
		}
	} else {
		if card, _ := state.FindMarketCard(cardID); card == nil {
			return rejected(state, ReasonCardUnavailable)
		}
	}

	next := state.Clone()
	player := next.CurrentPlayer()

	var card model.Card
	if blind {
		deck := next.Decks.Row(fromDeckLevel)
		card = deck[0]
		next.Decks.SetRow(fromDeckLevel, deck[1:])
	} else {
		found, level := next.FindMarketCard(cardID)
		card = *found
		removeFromMarket(next, level, cardID)
	}

	player.ReservedCards = append(player.ReservedCards, card)

	if next.Gems[model.GemGold] > 0 && player.GemTotal() < model.MaxGems {
		next.Gems[model.GemGold]--
		player.Gems[model.GemGold]++
	}

	player.LastAction = fmt.Sprintf("Reserved %s", card.ID)
	next.LastAction = fmt.Sprintf("%s reserved a card", player.Name)
	payload := map[string]any{
		"cardId":     string(card.ID),
		"cardLevel":  card.Level,
		"cardPoints": card.Points,
		"cardBonus":  string(card.Bonus),
	}
	if blind {
		payload["fromDeckLevel"] = fromDeckLevel
	}
	e.logAction(next, model.LogReserve, next.LastAction, payload)
	e.resolveTurn(next)
	return accepted(next)
}

// BuyCard purchases a card from the market or the acting player's
// reserve. Payment runs color by color, own tokens first and gold
// covering the remainder, every spent token returning to the bank.
func (e *Engine) BuyCard(state *model.GameState, cardID model.CardID, fromReserve bool) Result {
	if state.WinnerID != "" {
		return rejected(state, ReasonGameOver)
	}

	current := state.CurrentPlayer()
	var card *model.Card
	var level int
	if fromReserve {
		for i := range current.ReservedCards {
			if current.ReservedCards[i].ID == cardID {
				card = &current.ReservedCards[i]
				break
			}
		}
	} else {
		card, level = state.FindMarketCard(cardID)
	}
	if card == nil {
		return rejected(state, ReasonCardUnavailable)
	}
	if !CanBuyCard(current, card) {
		return rejected(state, ReasonCannotAfford)
	}

	next := state.Clone()
	player := next.CurrentPlayer()
	bought := *card
	bought.Cost = card.Cost.Clone()

	for _, color := range model.NonGoldGems {
		cost := bought.Cost[color]
		if cost == 0 {
			continue
		}
		effective := cost - player.Bonuses[color]
		if effective <= 0 {
			continue
		}

		fromOwn := min(player.Gems[color], effective)
		player.Gems[color] -= fromOwn
		next.Gems[color] += fromOwn

		if shortfall := effective - fromOwn; shortfall > 0 {
			player.Gems[model.GemGold] -= shortfall
			next.Gems[model.GemGold] += shortfall
		}
	}

	player.Bonuses[bought.Bonus]++
	player.Points += bought.Points

	if fromReserve {
		kept := player.ReservedCards[:0]
		for _, c := range player.ReservedCards {
			if c.ID != bought.ID {
				kept = append(kept, c)
			}
		}
		player.ReservedCards = kept
	} else {
		removeFromMarket(next, level, bought.ID)
	}

	bonusLabel := titleCase(string(bought.Bonus))
	player.LastAction = fmt.Sprintf("Built %s (%s, %d pts)", bought.ID, bonusLabel, bought.Points)
	next.LastAction = fmt.Sprintf("%s built %s module (%d pts)", player.Name, bonusLabel, bought.Points)
	e.logAction(next, model.LogBuy, next.LastAction, map[string]any{
		"cardId":     string(bought.ID),
		"cardLevel":  bought.Level,
		"cardPoints": bought.Points,
		"cardBonus":  string(bought.Bonus),
		"isReserved": fromReserve,
	})
	e.resolveTurn(next)
	return accepted(next)
}

// PassTurn ends the acting player's turn without an action. Only the
// AI driver passes; a human seat always has some legal take available
// in practice, but the engine does not assume so.
func (e *Engine) PassTurn(state *model.GameState, strategy model.StrategyID, source string) Result {
	if state.WinnerID != "" {
		return rejected(state, ReasonGameOver)
	}

	next := state.Clone()
	player := next.CurrentPlayer()
	player.LastAction = "Passed"
	next.LastAction = fmt.Sprintf("%s passed", player.Name)
	payload := map[string]any{}
	if strategy != "" {
		payload["strategy"] = string(strategy)
	}
	if source != "" {
		payload["source"] = source
	}
	e.logAction(next, model.LogPass, next.LastAction, payload)
	e.resolveTurn(next)
	return accepted(next)
}

// removeFromMarket takes a card out of its market row, replenishing the
// slot from the level's deck or shrinking the row when the deck is out
func removeFromMarket(state *model.GameState, level int, id model.CardID) {
	row := state.Market.Row(level)
	slot := -1
	for i := range row {
		if row[i].ID == id {
			slot = i
			break
		}
	}
	if slot == -1 {
		return
	}

	deck := state.Decks.Row(level)
	if len(deck) > 0 {
		row[slot] = deck[0]
		state.Decks.SetRow(level, deck[1:])
	} else {
		state.Market.SetRow(level, append(row[:slot], row[slot+1:]...))
	}
}

func titleCase(s string) string {
	if s == "" {
		return s
	}
	return strings.ToUpper(s[:1]) + s[1:]
}
