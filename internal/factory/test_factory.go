package factory

import (
	"time"

	"github.com/sidra-games/splendid/internal/catalog"
	"github.com/sidra-games/splendid/internal/dependencies/mocks"
	"github.com/sidra-games/splendid/internal/storage/memory"
	"github.com/sidra-games/splendid/internal/testutil"
)

// testCardTable is a compact card set with enough rows per tier to
// fill every market slot and leave cards in each deck
const testCardTable = `Color,Points,CostBlack,CostWhite,CostRed,CostBlue,CostGreen,Tier
Black,0,0,1,1,1,0,1
White,0,1,0,1,0,1,1
Red,0,1,1,0,1,0,1
Blue,0,0,1,1,0,1,1
Green,0,1,0,0,1,1,1
Black,1,0,0,4,0,0,1
White,1,0,0,0,4,0,1
Red,1,0,0,0,0,4,1
Black,2,0,5,0,0,0,2
White,2,0,0,5,0,0,2
Red,2,0,0,0,5,0,2
Blue,2,0,0,0,0,5,2
Green,2,5,0,0,0,0,2
Black,3,3,3,3,0,0,2
Black,4,0,7,0,0,0,3
White,4,0,0,7,0,0,3
Red,4,0,0,0,7,0,3
Blue,4,0,0,0,0,7,3
Green,4,7,0,0,0,0,3
Black,5,3,7,0,0,0,3
`

// TestApp extends App with test-specific helpers
type TestApp struct {
	*App

	// Mocks for test control
	MockClock  *mocks.MockClock
	MockRandom *mocks.MockRandom
}

// NewTestApp creates an App configured for testing with mocked
// dependencies, an in-memory store and a compact card catalog
func NewTestApp() *TestApp {
	cat, err := catalog.Parse(testCardTable)
	if err != nil {
		panic(err)
	}

	store := memory.New()
	mockClock := mocks.NewMockClock(time.Date(2024, 1, 1, 12, 0, 0, 0, time.UTC))
	mockRandom := mocks.NewMockRandom()

	app := newWithDependencies(store, cat, nil, mockClock, mockRandom, 0, testutil.NopLogger())

	return &TestApp{
		App:        app,
		MockClock:  mockClock,
		MockRandom: mockRandom,
	}
}
