package cli

import (
	"encoding/json"
	"fmt"
	"os"
	"sort"
	"strings"
)

// Output handles formatting output based on the configured format
type Output struct {
	format string
}

// NewOutput creates a new Output formatter
func NewOutput(format string) *Output {
	return &Output{format: format}
}

// Print outputs data in the configured format
func (o *Output) Print(data any) {
	if o.format == "json" {
		o.printJSON(data)
	} else {
		o.printText(data)
	}
}

// PrintMessage outputs a simple message
func (o *Output) PrintMessage(msg string) {
	if o.format == "json" {
		data, _ := json.Marshal(map[string]string{"message": msg})
		fmt.Println(string(data))
	} else {
		fmt.Println(msg)
	}
}

func (o *Output) printJSON(data any) {
	enc := json.NewEncoder(os.Stdout)
	enc.SetIndent("", "  ")
	_ = enc.Encode(data)
}

func (o *Output) printText(data any) {
	switch v := data.(type) {
	case Room:
		o.printRoom(v)
	case JoinResult:
		o.printJoinResult(v)
	case ActionResult:
		o.printRoom(v.Room)
	case AIStepResult:
		fmt.Printf("AI moves applied: %d\n\n", v.MovesApplied)
		o.printRoom(v.Room)
	case HealthResult:
		fmt.Printf("Status: %s\n", v.Status)
	default:
		// Fallback to JSON for unknown types
		o.printJSON(data)
	}
}

// GemCount is a color-to-count map in wire order
type GemCount map[string]int

// Card response type
type Card struct {
	ID     string   `json:"id"`
	Level  int      `json:"level"`
	Points int      `json:"points"`
	Bonus  string   `json:"bonus"`
	Cost   GemCount `json:"cost"`
}

// Occupant response type
type Occupant struct {
	ID      string `json:"id"`
	Name    string `json:"name"`
	IsHuman bool   `json:"isHuman"`
}

// Seat response type
type Seat struct {
	Occupant   *Occupant `json:"occupant"`
	StrategyID string    `json:"strategyId"`
}

// Lobby response type
type Lobby struct {
	Seats           []Seat `json:"seats"`
	HostID          string `json:"hostId"`
	TargetScore     int    `json:"targetScore"`
	DefaultStrategy string `json:"defaultStrategy"`
}

// PlayerState response type
type PlayerState struct {
	ID            string   `json:"id"`
	Name          string   `json:"name"`
	IsHuman       bool     `json:"isHuman"`
	StrategyID    string   `json:"strategyId"`
	Gems          GemCount `json:"gems"`
	Bonuses       GemCount `json:"bonuses"`
	ReservedCards []Card   `json:"reservedCards"`
	Points        int      `json:"points"`
	LastAction    string   `json:"lastAction"`
}

// Market response type
type Market struct {
	Level1 []Card `json:"level1"`
	Level2 []Card `json:"level2"`
	Level3 []Card `json:"level3"`
}

// Game response type
type Game struct {
	Players            []PlayerState `json:"players"`
	CurrentPlayerIndex int           `json:"currentPlayerIndex"`
	Market             Market        `json:"market"`
	Gems               GemCount      `json:"gems"`
	WinnerID           string        `json:"winnerId"`
	TargetScore        int           `json:"targetScore"`
	Turn               int           `json:"turn"`
	LastAction         string        `json:"lastAction"`
}

// Room response type
type Room struct {
	Code     string `json:"code"`
	Status   string `json:"status"`
	HostID   string `json:"hostId"`
	Revision int64  `json:"revision"`
	Lobby    Lobby  `json:"lobby"`
	Game     *Game  `json:"game"`
}

// JoinResult reports where the player was seated
type JoinResult struct {
	Room     Room   `json:"room"`
	Seat     int    `json:"seat"`
	PlayerID string `json:"playerId"`
}

// ActionResult is the outcome of a game action
type ActionResult struct {
	Room     Room `json:"room"`
	Accepted bool `json:"accepted"`
}

// AIStepResult reports AI turns played
type AIStepResult struct {
	Room         Room `json:"room"`
	MovesApplied int  `json:"movesApplied"`
}

// HealthResult response type
type HealthResult struct {
	Status string `json:"status"`
}

func (o *Output) printJoinResult(j JoinResult) {
	fmt.Printf("Seated at %d as %s\n\n", j.Seat, j.PlayerID)
	o.printRoom(j.Room)
}

func (o *Output) printRoom(r Room) {
	fmt.Printf("Room %s  [%s]  rev %d\n", r.Code, r.Status, r.Revision)
	fmt.Printf("Target score: %d\n", r.Lobby.TargetScore)

	fmt.Println("\nSeats:")
	for i, seat := range r.Lobby.Seats {
		marker := " "
		if seat.Occupant != nil && seat.Occupant.ID == r.HostID {
			marker = "*"
		}
		if seat.Occupant != nil {
			fmt.Printf(" %s %d: %s\n", marker, i, seat.Occupant.Name)
		} else {
			fmt.Printf("   %d: AI (%s)\n", i, seat.StrategyID)
		}
	}

	if r.Game != nil {
		o.printGame(r.Game)
	}
}

func (o *Output) printGame(g *Game) {
	fmt.Printf("\nTurn %d", g.Turn)
	if g.WinnerID != "" {
		fmt.Printf("  WINNER: %s", g.WinnerID)
	}
	fmt.Println()
	if g.LastAction != "" {
		fmt.Printf("Last action: %s\n", g.LastAction)
	}
	fmt.Printf("Bank: %s\n", formatGems(g.Gems))

	fmt.Println("\nPlayers:")
	for i, p := range g.Players {
		turnMarker := " "
		if i == g.CurrentPlayerIndex {
			turnMarker = ">"
		}
		fmt.Printf(" %s %s: %d pts  gems %s", turnMarker, p.Name, p.Points, formatGems(p.Gems))
		if len(p.ReservedCards) > 0 {
			fmt.Printf("  reserved %d", len(p.ReservedCards))
		}
		fmt.Println()
	}

	fmt.Println("\nMarket:")
	for level := 3; level >= 1; level-- {
		var row []Card
		switch level {
		case 1:
			row = g.Market.Level1
		case 2:
			row = g.Market.Level2
		case 3:
			row = g.Market.Level3
		}
		cards := make([]string, 0, len(row))
		for _, c := range row {
			cards = append(cards, fmt.Sprintf("%s(%dp %s, %s)", c.ID, c.Points, c.Bonus, formatGems(c.Cost)))
		}
		fmt.Printf("  L%d: %s\n", level, strings.Join(cards, "  "))
	}
}

// formatGems renders a gem map compactly, skipping zero piles
func formatGems(gems GemCount) string {
	colors := make([]string, 0, len(gems))
	for color, n := range gems {
		if n > 0 {
			colors = append(colors, fmt.Sprintf("%s:%d", color, n))
		}
	}
	sort.Strings(colors)
	if len(colors) == 0 {
		return "-"
	}
	return strings.Join(colors, " ")
}
