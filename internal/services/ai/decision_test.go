package ai

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/sidra-games/splendid/internal/dependencies/mocks"
	"github.com/sidra-games/splendid/internal/model"
	"github.com/sidra-games/splendid/internal/testutil"
	"github.com/stretchr/testify/suite"
)

type DecisionSuite struct {
	suite.Suite
	random  *mocks.MockRandom
	service *Service
	ctx     context.Context
}

func TestDecisionSuite(t *testing.T) {
	suite.Run(t, new(DecisionSuite))
}

func (s *DecisionSuite) SetupTest() {
	s.random = mocks.NewMockRandom()
	s.service = NewService(nil, s.random, testutil.NopLogger())
	s.ctx = context.Background()
}

func cost(pairs ...any) model.Cost {
	c := model.NewGemCount()
	for i := 0; i < len(pairs); i += 2 {
		c[pairs[i].(model.GemColor)] = pairs[i+1].(int)
	}
	return c
}

func card(id string, level, points int, bonus model.GemColor, c model.Cost) model.Card {
	return model.Card{ID: model.CardID(id), Level: level, Points: points, Bonus: bonus, Cost: c}
}

// testState builds a two-seat state with a small fixed market. Seat 0
// is the AI under test, seat 1 the opponent.
func testState(strategy model.StrategyID) *model.GameState {
	actor := model.NewPlayer(model.PlayerConfig{ID: "ai-1", Name: "Unit 734", StrategyID: strategy})
	opponent := model.NewPlayer(model.PlayerConfig{ID: "p2", Name: "Rival", IsHuman: true})

	return &model.GameState{
		Players:            []model.Player{actor, opponent},
		CurrentPlayerIndex: 0,
		Market: model.Market{
			Level1: []model.Card{
				card("cheap", 1, 0, model.GemRed, cost(model.GemBlue, 1)),
				card("mid", 1, 1, model.GemGreen, cost(model.GemWhite, 2)),
			},
			Level3: []model.Card{
				card("big", 3, 5, model.GemBlack, cost(model.GemRed, 6)),
			},
		},
		Gems:        model.InitialBank(),
		TargetScore: 15,
		Turn:        1,
	}
}

func (s *DecisionSuite) TestAggressiveBuysHighestValue() {
	state := testState(model.StrategyAggressive)
	actor := &state.Players[0]
	actor.Gems[model.GemBlue] = 1
	actor.Gems[model.GemRed] = 6

	decision := s.service.ChooseMove(s.ctx, state, actor)

	s.Equal(DecisionBuy, decision.Kind)
	// "big" scores 5*3+5-6=14, far above "cheap" at 0*3+3-1=2
	s.Equal(model.CardID("big"), decision.CardID)
	s.Equal(model.StrategyAggressive, decision.StrategyUsed)
	s.Equal("local", decision.Source)
}

func (s *DecisionSuite) TestAggressiveReservesWhenNothingAffordable() {
	state := testState(model.StrategyAggressive)
	actor := &state.Players[0]

	decision := s.service.ChooseMove(s.ctx, state, actor)

	s.Equal(DecisionReserve, decision.Kind)
	s.Equal(model.CardID("big"), decision.CardID)
}

func (s *DecisionSuite) TestAggressiveTakesGemsWhenReserveFull() {
	state := testState(model.StrategyAggressive)
	actor := &state.Players[0]
	actor.ReservedCards = []model.Card{
		card("r1", 3, 4, model.GemRed, cost(model.GemWhite, 7)),
		card("r2", 3, 4, model.GemRed, cost(model.GemWhite, 7)),
		card("r3", 3, 4, model.GemRed, cost(model.GemWhite, 7)),
	}

	decision := s.service.ChooseMove(s.ctx, state, actor)

	s.Equal(DecisionTakeGems, decision.Kind)
	s.Len(decision.Gems, 3)
	// red tops the priority: "big" costs 6 red and the actor has none
	s.Equal(model.GemRed, decision.Gems[0])
}

func (s *DecisionSuite) TestDefensiveBuysFirstAffordable() {
	state := testState(model.StrategyDefensive)
	actor := &state.Players[0]
	actor.Gems[model.GemBlue] = 1

	decision := s.service.ChooseMove(s.ctx, state, actor)

	s.Equal(DecisionBuy, decision.Kind)
	s.Equal(model.CardID("cheap"), decision.CardID)
}

func (s *DecisionSuite) TestDefensiveBlocksThreatenedCard() {
	state := testState(model.StrategyDefensive)
	// opponent is one token short of the 5-point card
	state.Players[1].Gems[model.GemRed] = 5

	decision := s.service.ChooseMove(s.ctx, state, &state.Players[0])

	s.Equal(DecisionReserve, decision.Kind)
	s.Equal(model.CardID("big"), decision.CardID)
}

func (s *DecisionSuite) TestBalancedBranchesOnRoll() {
	state := testState(model.StrategyBalanced)
	actor := &state.Players[0]
	actor.Gems[model.GemBlue] = 1

	// low roll buys
	s.random.QueueFloat64(0.1)
	decision := s.service.ChooseMove(s.ctx, state, actor)
	s.Equal(DecisionBuy, decision.Kind)

	// mid roll reserves
	s.random.Reset()
	s.random.QueueFloat64(0.5)
	decision = s.service.ChooseMove(s.ctx, state, actor)
	s.Equal(DecisionReserve, decision.Kind)

	// high roll takes gems
	s.random.Reset()
	s.random.QueueFloat64(0.9)
	decision = s.service.ChooseMove(s.ctx, state, actor)
	s.Equal(DecisionTakeGems, decision.Kind)
}

func (s *DecisionSuite) TestBalancedFallsThroughToBuy() {
	state := testState(model.StrategyBalanced)
	actor := &state.Players[0]
	actor.Gems[model.GemBlue] = model.MaxGems // at cap, no gem take possible
	state.Gems = model.NewGemCount()          // and the bank is empty anyway

	s.random.QueueFloat64(0.9) // gem branch first, which yields nothing
	decision := s.service.ChooseMove(s.ctx, state, actor)

	s.Equal(DecisionBuy, decision.Kind)
	s.Equal(model.CardID("cheap"), decision.CardID)
}

func (s *DecisionSuite) TestRandomPicksAmongOptions() {
	state := testState(model.StrategyRandom)
	actor := &state.Players[0]
	actor.Gems[model.GemBlue] = 1

	// options: buy "cheap", reserve "big", take gems
	s.random.QueueIntn(1)
	decision := s.service.ChooseMove(s.ctx, state, actor)
	s.Equal(DecisionReserve, decision.Kind)

	s.random.Reset()
	s.random.QueueIntn(2)
	decision = s.service.ChooseMove(s.ctx, state, actor)
	s.Equal(DecisionTakeGems, decision.Kind)
}

func (s *DecisionSuite) TestPassWhenNoMoveExists() {
	state := testState(model.StrategyAggressive)
	state.Market = model.Market{}
	state.Gems = model.NewGemCount()
	actor := &state.Players[0]
	actor.ReservedCards = []model.Card{
		card("r1", 3, 4, model.GemRed, cost(model.GemWhite, 7)),
		card("r2", 3, 4, model.GemRed, cost(model.GemWhite, 7)),
		card("r3", 3, 4, model.GemRed, cost(model.GemWhite, 7)),
	}

	decision := s.service.ChooseMove(s.ctx, state, actor)
	s.Equal(DecisionPass, decision.Kind)
}

func (s *DecisionSuite) TestUnknownStrategyUsesBalanced() {
	state := testState("mystery")
	decision := s.service.ChooseMove(s.ctx, state, &state.Players[0])
	s.Equal(model.StrategyBalanced, decision.StrategyUsed)
}

// chooseGemTake tests

func (s *DecisionSuite) TestChooseGemTakePrefersThreeDistinct() {
	state := testState(model.StrategyBalanced)
	actor := &state.Players[0]

	gems := chooseGemTake(state, actor, model.NonGoldGems)
	s.Equal([]model.GemColor{model.GemWhite, model.GemBlue, model.GemGreen}, gems)
}

func (s *DecisionSuite) TestChooseGemTakeDoubleWhenFewColors() {
	state := testState(model.StrategyBalanced)
	state.Gems = model.NewGemCount()
	state.Gems[model.GemRed] = 5
	actor := &state.Players[0]

	gems := chooseGemTake(state, actor, model.NonGoldGems)
	s.Equal([]model.GemColor{model.GemRed, model.GemRed}, gems)
}

func (s *DecisionSuite) TestChooseGemTakeSingleWhenPilesLow() {
	state := testState(model.StrategyBalanced)
	state.Gems = model.NewGemCount()
	state.Gems[model.GemGreen] = 2
	actor := &state.Players[0]

	gems := chooseGemTake(state, actor, model.NonGoldGems)
	s.Equal([]model.GemColor{model.GemGreen}, gems)
}

func (s *DecisionSuite) TestChooseGemTakeNilAtCap() {
	state := testState(model.StrategyBalanced)
	actor := &state.Players[0]
	actor.Gems[model.GemWhite] = model.MaxGems

	s.Nil(chooseGemTake(state, actor, model.NonGoldGems))
}

// Remote strategy tests

type failingRemote struct{}

func (f *failingRemote) RequestMove(ctx context.Context, state *model.GameState, player *model.Player, strategy model.StrategyID) (*Decision, error) {
	return nil, errors.New("endpoint down")
}

func (s *DecisionSuite) TestRemoteFailureFallsBackToBalanced() {
	remoteService := NewService(&failingRemote{}, mocks.NewMockRandom(), testutil.NopLogger())
	localService := NewService(nil, mocks.NewMockRandom(), testutil.NopLogger())

	remoteState := testState(model.StrategyGemini)
	remoteState.Players[0].Gems[model.GemBlue] = 1
	localState := testState(model.StrategyBalanced)
	localState.Players[0].Gems[model.GemBlue] = 1

	got := remoteService.ChooseMove(s.ctx, remoteState, &remoteState.Players[0])
	want := localService.ChooseMove(s.ctx, localState, &localState.Players[0])

	s.Equal(want.Kind, got.Kind)
	s.Equal(want.CardID, got.CardID)
	s.Equal(want.Gems, got.Gems)
	s.Equal(model.StrategyBalanced, got.StrategyUsed)
}

func (s *DecisionSuite) TestGenerateClientParsesReply() {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		s.Equal(http.MethodPost, r.Method)
		s.Contains(r.URL.Path, "gemini-2.5-flash")
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"candidates":[{"content":{"parts":[{"text":"{\"kind\":\"TAKE_GEMS\",\"gems\":[\"red\",\"blue\",\"green\"]}"}]}}]}`))
	}))
	defer server.Close()

	client := NewGenerateClient(server.URL, "test-key", testutil.NopLogger())
	state := testState(model.StrategyGemini)

	decision, err := client.RequestMove(s.ctx, state, &state.Players[0], model.StrategyGemini)
	s.Require().NoError(err)
	s.Equal(DecisionTakeGems, decision.Kind)
	s.Equal([]model.GemColor{model.GemRed, model.GemBlue, model.GemGreen}, decision.Gems)
	s.Equal(model.StrategyGemini, decision.StrategyUsed)
}

func (s *DecisionSuite) TestGenerateClientErrorsOnBadStatus() {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "quota exceeded", http.StatusTooManyRequests)
	}))
	defer server.Close()

	client := NewGenerateClient(server.URL, "test-key", testutil.NopLogger())
	state := testState(model.StrategyGemma)

	_, err := client.RequestMove(s.ctx, state, &state.Players[0], model.StrategyGemma)
	s.Error(err)
}

func (s *DecisionSuite) TestGenerateClientRequiresKey() {
	client := NewGenerateClient("http://localhost:1", "", testutil.NopLogger())
	state := testState(model.StrategyGemini)

	_, err := client.RequestMove(s.ctx, state, &state.Players[0], model.StrategyGemini)
	s.ErrorIs(err, errNoAPIKey)
}
