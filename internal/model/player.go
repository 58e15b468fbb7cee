package model

// PlayerID uniquely identifies a player across the system
type PlayerID string

// StrategyID names an AI strategy
type StrategyID string

const (
	StrategyAggressive StrategyID = "aggressive"
	StrategyDefensive  StrategyID = "defensive"
	StrategyBalanced   StrategyID = "balanced"
	StrategyRandom     StrategyID = "random"
	// Remote strategies, each backed by a different text-generation model
	StrategyGemini StrategyID = "gemini"
	StrategyGemma  StrategyID = "gemma"
)

// DefaultSeatStrategies is the rotation used to fill unconfigured AI seats
var DefaultSeatStrategies = []StrategyID{
	StrategyAggressive,
	StrategyDefensive,
	StrategyBalanced,
	StrategyRandom,
}

// ValidStrategies returns all recognized strategy ids
func ValidStrategies() []StrategyID {
	return []StrategyID{
		StrategyAggressive,
		StrategyDefensive,
		StrategyBalanced,
		StrategyRandom,
		StrategyGemini,
		StrategyGemma,
	}
}

// ValidStrategy reports whether id names a known strategy
func ValidStrategy(id StrategyID) bool {
	for _, s := range ValidStrategies() {
		if s == id {
			return true
		}
	}
	return false
}

// IsRemoteStrategy reports whether id is backed by a remote model
func IsRemoteStrategy(id StrategyID) bool {
	return id == StrategyGemini || id == StrategyGemma
}

// Player is one seated participant in a game
type Player struct {
	ID         PlayerID   `json:"id"`
	Name       string     `json:"name"`
	IsHuman    bool       `json:"isHuman"`
	StrategyID StrategyID `json:"strategyId,omitempty"` // AI seats only

	Gems          GemCount `json:"gems"`
	Bonuses       GemCount `json:"bonuses"` // permanent discounts from bought cards
	ReservedCards []Card   `json:"reservedCards"`
	Points        int      `json:"points"`
	Nobles        []Noble  `json:"nobles"`
	LastAction    string   `json:"lastAction,omitempty"`
}

// PlayerConfig describes a seat occupant before the game starts
type PlayerConfig struct {
	ID         PlayerID   `json:"id"`
	Name       string     `json:"name"`
	IsHuman    bool       `json:"isHuman"`
	StrategyID StrategyID `json:"strategyId,omitempty"`
}

// NewPlayer creates a player with empty holdings
func NewPlayer(cfg PlayerConfig) Player {
	return Player{
		ID:            cfg.ID,
		Name:          cfg.Name,
		IsHuman:       cfg.IsHuman,
		StrategyID:    cfg.StrategyID,
		Gems:          NewGemCount(),
		Bonuses:       NewGemCount(),
		ReservedCards: []Card{},
		Points:        0,
		Nobles:        []Noble{},
	}
}

// GemTotal returns the number of tokens the player holds, gold included
func (p *Player) GemTotal() int {
	return p.Gems.Total()
}

// HasReserved reports whether the player holds the given card in reserve
func (p *Player) HasReserved(id CardID) bool {
	for _, c := range p.ReservedCards {
		if c.ID == id {
			return true
		}
	}
	return false
}

// Clone returns an independent deep copy
func (p *Player) Clone() Player {
	out := *p
	out.Gems = p.Gems.Clone()
	out.Bonuses = p.Bonuses.Clone()
	out.ReservedCards = make([]Card, len(p.ReservedCards))
	for i, c := range p.ReservedCards {
		out.ReservedCards[i] = c
		out.ReservedCards[i].Cost = c.Cost.Clone()
	}
	out.Nobles = make([]Noble, len(p.Nobles))
	for i, n := range p.Nobles {
		out.Nobles[i] = n
		out.Nobles[i].Requirements = n.Requirements.Clone()
	}
	return out
}
