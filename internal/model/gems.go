package model

// GemColor identifies one of the six gem token colors
type GemColor string

const (
	GemWhite GemColor = "white"
	GemBlue  GemColor = "blue"
	GemGreen GemColor = "green"
	GemRed   GemColor = "red"
	GemBlack GemColor = "black"
	// GemGold is the joker token. It covers any color's shortfall when
	// buying and is never dispensed by the take-gems action.
	GemGold GemColor = "gold"
)

// NonGoldGems lists the five basic colors in their canonical order
var NonGoldGems = []GemColor{GemWhite, GemBlue, GemGreen, GemRed, GemBlack}

// AllGems lists every color including gold
var AllGems = []GemColor{GemWhite, GemBlue, GemGreen, GemRed, GemBlack, GemGold}

// GemCount maps gem colors to non-negative token counts.
// Used for the communal bank, player inventories, card costs and
// noble requirements alike.
type GemCount map[GemColor]int

// NewGemCount returns a GemCount with every color present at zero
func NewGemCount() GemCount {
	gc := make(GemCount, len(AllGems))
	for _, c := range AllGems {
		gc[c] = 0
	}
	return gc
}

// InitialBank returns the starting communal gem bank: 7 of each basic
// color and 5 gold
func InitialBank() GemCount {
	return GemCount{
		GemWhite: 7,
		GemBlue:  7,
		GemGreen: 7,
		GemRed:   7,
		GemBlack: 7,
		GemGold:  5,
	}
}

// Total returns the sum of all token counts
func (g GemCount) Total() int {
	total := 0
	for _, n := range g {
		total += n
	}
	return total
}

// Clone returns an independent copy
func (g GemCount) Clone() GemCount {
	out := make(GemCount, len(g))
	for c, n := range g {
		out[c] = n
	}
	return out
}

// Cost is a GemCount restricted by convention to non-gold colors
type Cost = GemCount

// ValidGemColor reports whether s names a known gem color
func ValidGemColor(s string) bool {
	switch GemColor(s) {
	case GemWhite, GemBlue, GemGreen, GemRed, GemBlack, GemGold:
		return true
	}
	return false
}
