package model

// CardID uniquely identifies a development card
type CardID string

// Card is a purchasable development card. Immutable once created;
// exactly one container (deck, market slot or a player's reserve)
// owns it at any time.
type Card struct {
	ID     CardID   `json:"id"`
	Level  int      `json:"level"` // 1..3
	Points int      `json:"points"`
	Bonus  GemColor `json:"bonus"` // the gem this card produces
	Cost   Cost     `json:"cost"`
	Name   string   `json:"name,omitempty"`
}

// TotalCost returns the sum of the card's per-color costs
func (c *Card) TotalCost() int {
	return c.Cost.Total()
}

// NobleID uniquely identifies a noble tile
type NobleID string

// Noble is a bonus-requirement tile claimed automatically when a
// player's bonuses cover its requirements
type Noble struct {
	ID           NobleID `json:"id"`
	Points       int     `json:"points"`
	Requirements Cost    `json:"requirements"`
	Name         string  `json:"name,omitempty"`
}
