package model

// Gameplay limits
const (
	MaxGems            = 10 // token cap per player
	MaxReserved        = 3  // reserved-card cap per player
	MarketSlots        = 4  // face-up cards per level
	NoblesInPlay       = 5
	SeatCount          = 4
	TargetScoreDefault = 15
)

// Market holds the face-up purchasable cards, one row per level.
// Rows shrink when a level's deck is exhausted rather than leaving gaps.
type Market struct {
	Level1 []Card `json:"level1"`
	Level2 []Card `json:"level2"`
	Level3 []Card `json:"level3"`
}

// Row returns the market row for a level (1..3), or nil
func (m *Market) Row(level int) []Card {
	switch level {
	case 1:
		return m.Level1
	case 2:
		return m.Level2
	case 3:
		return m.Level3
	}
	return nil
}

// SetRow replaces the market row for a level
func (m *Market) SetRow(level int, row []Card) {
	switch level {
	case 1:
		m.Level1 = row
	case 2:
		m.Level2 = row
	case 3:
		m.Level3 = row
	}
}

// Decks holds the face-down remainder of each level's cards
type Decks struct {
	Level1 []Card `json:"level1"`
	Level2 []Card `json:"level2"`
	Level3 []Card `json:"level3"`
}

// Row returns the deck for a level (1..3), or nil
func (d *Decks) Row(level int) []Card {
	switch level {
	case 1:
		return d.Level1
	case 2:
		return d.Level2
	case 3:
		return d.Level3
	}
	return nil
}

// SetRow replaces the deck for a level
func (d *Decks) SetRow(level int, row []Card) {
	switch level {
	case 1:
		d.Level1 = row
	case 2:
		d.Level2 = row
	case 3:
		d.Level3 = row
	}
}

// GameState is the full authoritative state of one match.
// Engine transitions never mutate a GameState in place; they deep-clone
// first so no caller observes a partially applied transition.
type GameState struct {
	Players            []Player `json:"players"`
	CurrentPlayerIndex int      `json:"currentPlayerIndex"`
	Market             Market   `json:"market"`
	Decks              Decks    `json:"decks"`
	Nobles             []Noble  `json:"nobles"`
	Gems               GemCount `json:"gems"` // communal bank
	WinnerID           PlayerID `json:"winnerId,omitempty"`
	TargetScore        int      `json:"targetScore"`
	Turn               int      `json:"turn"`
	LastAction         string   `json:"lastAction,omitempty"`
	History            []ActionLogEntry `json:"history"`
}

// CurrentPlayer returns the acting player
func (g *GameState) CurrentPlayer() *Player {
	return &g.Players[g.CurrentPlayerIndex]
}

// PlayerByID returns the player with the given id, or nil
func (g *GameState) PlayerByID(id PlayerID) *Player {
	for i := range g.Players {
		if g.Players[i].ID == id {
			return &g.Players[i]
		}
	}
	return nil
}

// FindMarketCard locates a face-up card by id, scanning level 3 first
// the way the AI values cards. Returns the card and its level, or nil.
func (g *GameState) FindMarketCard(id CardID) (*Card, int) {
	for _, level := range []int{3, 2, 1} {
		row := g.Market.Row(level)
		for i := range row {
			if row[i].ID == id {
				return &row[i], level
			}
		}
	}
	return nil, 0
}

// Clone returns an independent deep copy of the state
func (g *GameState) Clone() *GameState {
	out := *g
	out.Players = make([]Player, len(g.Players))
	for i := range g.Players {
		out.Players[i] = g.Players[i].Clone()
	}
	out.Market = Market{
		Level1: cloneCards(g.Market.Level1),
		Level2: cloneCards(g.Market.Level2),
		Level3: cloneCards(g.Market.Level3),
	}
	out.Decks = Decks{
		Level1: cloneCards(g.Decks.Level1),
		Level2: cloneCards(g.Decks.Level2),
		Level3: cloneCards(g.Decks.Level3),
	}
	out.Nobles = make([]Noble, len(g.Nobles))
	for i, n := range g.Nobles {
		out.Nobles[i] = n
		out.Nobles[i].Requirements = n.Requirements.Clone()
	}
	out.Gems = g.Gems.Clone()
	out.History = make([]ActionLogEntry, len(g.History))
	copy(out.History, g.History)
	return &out
}

func cloneCards(cards []Card) []Card {
	out := make([]Card, len(cards))
	for i, c := range cards {
		out[i] = c
		out[i].Cost = c.Cost.Clone()
	}
	return out
}
