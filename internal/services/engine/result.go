package engine

import "github.com/sidra-games/splendid/internal/model"

// RejectReason explains why an action was not applied
type RejectReason string

const (
	ReasonNone            RejectReason = ""
	ReasonGameOver        RejectReason = "game_over"
	ReasonGoldNotTakable  RejectReason = "gold_not_takable"
	ReasonBadGemCombo     RejectReason = "bad_gem_combination"
	ReasonBankShort       RejectReason = "bank_pile_empty"
	ReasonGemCapExceeded  RejectReason = "gem_cap_exceeded"
	ReasonReserveFull     RejectReason = "reserve_full"
	ReasonDeckEmpty       RejectReason = "deck_empty"
	ReasonCardUnavailable RejectReason = "card_unavailable"
	ReasonCannotAfford    RejectReason = "cannot_afford"
)

// Result is the outcome of one action. A rejected result carries the
// input state untouched, so callers that only want the next state can
// always use State; Accepted distinguishes "nothing happened because
// the action was illegal" from a transition that genuinely applied.
type Result struct {
	State    *model.GameState
	Accepted bool
	Reason   RejectReason
}

func accepted(next *model.GameState) Result {
	return Result{State: next, Accepted: true}
}

func rejected(prev *model.GameState, reason RejectReason) Result {
	return Result{State: prev, Reason: reason}
}
