package catalog

import "github.com/sidra-games/splendid/internal/model"

// Nobles returns the full noble pool. Each game deals a shuffled subset.
func Nobles() []model.Noble {
	req := func(w, b, g, r, k int) model.Cost {
		return model.Cost{
			model.GemWhite: w,
			model.GemBlue:  b,
			model.GemGreen: g,
			model.GemRed:   r,
			model.GemBlack: k,
		}
	}

	return []model.Noble{
		{ID: "n1", Points: 3, Requirements: req(3, 3, 3, 0, 0), Name: "Galactic Council"},
		{ID: "n2", Points: 3, Requirements: req(0, 3, 3, 3, 0), Name: "Star Fleet Admiral"},
		{ID: "n3", Points: 3, Requirements: req(0, 0, 3, 3, 3), Name: "Nebula Merchant"},
		{ID: "n4", Points: 3, Requirements: req(3, 0, 0, 3, 3), Name: "Cyber Lord"},
		{ID: "n5", Points: 3, Requirements: req(3, 3, 0, 0, 3), Name: "Void Walker"},
		{ID: "n6", Points: 3, Requirements: req(4, 4, 0, 0, 0), Name: "Tech Priest"},
		{ID: "n7", Points: 3, Requirements: req(0, 4, 4, 0, 0), Name: "Bio Engineer"},
		{ID: "n8", Points: 3, Requirements: req(0, 0, 4, 4, 0), Name: "Red Dwarf Miner"},
		{ID: "n9", Points: 3, Requirements: req(0, 0, 0, 4, 4), Name: "Black Hole Physicist"},
		{ID: "n10", Points: 3, Requirements: req(4, 0, 0, 0, 4), Name: "Quantum Theorist"},
	}
}
