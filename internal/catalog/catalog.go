// Package catalog loads the card and noble tables the engine deals from.
package catalog

import (
	"fmt"
	"log/slog"
	"os"
	"strconv"
	"strings"

	"github.com/sidra-games/splendid/internal/model"
)

// Catalog holds the full card set split by level, plus the noble pool.
// Load order is stable: card ids are assigned by row index so a fixed
// shuffle seed always produces the same deal.
type Catalog struct {
	Level1 []model.Card
	Level2 []model.Card
	Level3 []model.Card
	Nobles []model.Noble
}

// Deck returns the cards for a level (1..3)
func (c *Catalog) Deck(level int) []model.Card {
	switch level {
	case 1:
		return c.Level1
	case 2:
		return c.Level2
	case 3:
		return c.Level3
	}
	return nil
}

// CardCount returns the total number of cards across all levels
func (c *Catalog) CardCount() int {
	return len(c.Level1) + len(c.Level2) + len(c.Level3)
}

// LoadFile reads a card table from the given path and returns the
// catalog with the built-in noble pool attached
func LoadFile(path string, logger *slog.Logger) (*Catalog, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading card table: %w", err)
	}
	cat, err := Parse(string(data))
	if err != nil {
		return nil, err
	}
	logger.Info("card catalog loaded",
		slog.String("path", path),
		slog.Int("cards", cat.CardCount()),
		slog.Int("nobles", len(cat.Nobles)),
	)
	return cat, nil
}

// Parse builds a catalog from the flat delimited card table. Rows are
// `Color,Points,CostBlack,CostWhite,CostRed,CostBlue,CostGreen,Tier`;
// the header row, blank lines and rows with unknown colors are skipped,
// and the tier is clamped to 1..3. Row order is irrelevant to gameplay
// but determines card ids.
func Parse(raw string) (*Catalog, error) {
	colorByLabel := map[string]model.GemColor{
		"black": model.GemBlack,
		"white": model.GemWhite,
		"red":   model.GemRed,
		"blue":  model.GemBlue,
		"green": model.GemGreen,
	}

	cat := &Catalog{Nobles: Nobles()}

	for idx, line := range strings.Split(raw, "\n") {
		line = strings.TrimSpace(line)
		if line == "" || strings.HasPrefix(strings.ToLower(line), "color") {
			continue
		}

		parts := strings.Split(line, ",")
		if len(parts) < 8 {
			continue
		}
		for i := range parts {
			parts[i] = strings.TrimSpace(parts[i])
		}

		bonus, ok := colorByLabel[strings.ToLower(parts[0])]
		if !ok {
			continue
		}

		level := atoiClamp(parts[7], 1, 3)
		card := model.Card{
			ID:     model.CardID(fmt.Sprintf("card-%d", idx)),
			Level:  level,
			Points: atoi(parts[1]),
			Bonus:  bonus,
			Cost: model.Cost{
				model.GemBlack: atoi(parts[2]),
				model.GemWhite: atoi(parts[3]),
				model.GemRed:   atoi(parts[4]),
				model.GemBlue:  atoi(parts[5]),
				model.GemGreen: atoi(parts[6]),
			},
		}

		switch level {
		case 1:
			cat.Level1 = append(cat.Level1, card)
		case 2:
			cat.Level2 = append(cat.Level2, card)
		case 3:
			cat.Level3 = append(cat.Level3, card)
		}
	}

	if cat.CardCount() == 0 {
		return nil, model.ErrCatalogEmpty
	}
	return cat, nil
}

func atoi(s string) int {
	n, err := strconv.Atoi(s)
	if err != nil {
		return 0
	}
	return n
}

func atoiClamp(s string, lo, hi int) int {
	n := atoi(s)
	if n < lo {
		return lo
	}
	if n > hi {
		return hi
	}
	return n
}
