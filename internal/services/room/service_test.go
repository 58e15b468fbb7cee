package room

import (
	"context"
	"testing"
	"time"

	"github.com/sidra-games/splendid/internal/catalog"
	"github.com/sidra-games/splendid/internal/dependencies/mocks"
	"github.com/sidra-games/splendid/internal/model"
	"github.com/sidra-games/splendid/internal/services/engine"
	"github.com/sidra-games/splendid/internal/storage/memory"
	"github.com/sidra-games/splendid/internal/testutil"
	"github.com/stretchr/testify/suite"
)

type ServiceSuite struct {
	suite.Suite
	storage *memory.Storage
	clock   *mocks.MockClock
	random  *mocks.MockRandom
	engine  *engine.Engine
	service *Service
	ctx     context.Context
}

func TestServiceSuite(t *testing.T) {
	suite.Run(t, new(ServiceSuite))
}

func (s *ServiceSuite) SetupTest() {
	s.storage = memory.New()
	s.clock = mocks.NewMockClock(time.Date(2024, 6, 1, 9, 0, 0, 0, time.UTC))
	s.random = mocks.NewMockRandom()
	s.engine = engine.New(s.clock)
	s.service = NewService(s.storage, s.engine, testCatalog(), s.clock, s.random, testutil.NopLogger())
	s.ctx = context.Background()
}

func cost(pairs ...any) model.Cost {
	c := model.NewGemCount()
	for i := 0; i < len(pairs); i += 2 {
		c[pairs[i].(model.GemColor)] = pairs[i+1].(int)
	}
	return c
}

func testCatalog() *catalog.Catalog {
	cat := &catalog.Catalog{}
	for i := 0; i < 8; i++ {
		cat.Level1 = append(cat.Level1, model.Card{
			ID: model.CardID("l1-" + string(rune('a'+i))), Level: 1,
			Bonus: model.NonGoldGems[i%5], Cost: cost(model.GemBlue, 1),
		})
	}
	for i := 0; i < 6; i++ {
		cat.Level2 = append(cat.Level2, model.Card{
			ID: model.CardID("l2-" + string(rune('a'+i))), Level: 2, Points: 2,
			Bonus: model.NonGoldGems[i%5], Cost: cost(model.GemWhite, 3),
		})
		cat.Level3 = append(cat.Level3, model.Card{
			ID: model.CardID("l3-" + string(rune('a'+i))), Level: 3, Points: 4,
			Bonus: model.NonGoldGems[i%5], Cost: cost(model.GemBlack, 5),
		})
		cat.Nobles = append(cat.Nobles, model.Noble{
			ID: model.NobleID("nob-" + string(rune('a'+i))), Points: 3,
			Requirements: cost(model.NonGoldGems[i%5], 3),
		})
	}
	return cat
}

func hostConfig() model.PlayerConfig {
	return model.PlayerConfig{ID: "host-1", Name: "Ana", IsHuman: true}
}

func (s *ServiceSuite) createRoom() *model.RoomRecord {
	s.random.QueueString("ABCDE")
	record, err := s.service.CreateRoom(s.ctx, hostConfig(), CreateOptions{})
	s.Require().NoError(err)
	return record
}

// CreateRoom tests

func (s *ServiceSuite) TestCreateRoomSeatsHost() {
	record := s.createRoom()

	s.Equal(model.RoomCode("ABCDE"), record.Code)
	s.Equal(model.RoomStatusLobby, record.Status)
	s.Equal(model.PlayerID("host-1"), record.HostID)
	s.Equal(int64(0), record.Revision)

	stored, err := s.service.GetRoom(s.ctx, "ABCDE")
	s.Require().NoError(err)
	s.Require().NotNil(stored.Lobby.Seats[0].Occupant)
	s.Equal(model.PlayerID("host-1"), stored.Lobby.Seats[0].Occupant.ID)
	for i := 1; i < model.SeatCount; i++ {
		s.Nil(stored.Lobby.Seats[i].Occupant)
		s.Equal(model.StrategyBalanced, stored.Lobby.Seats[i].StrategyID)
	}
}

func (s *ServiceSuite) TestCreateRoomRetriesOnCollision() {
	s.createRoom()

	s.random.QueueString("ABCDE", "FGHJK")
	record, err := s.service.CreateRoom(s.ctx, model.PlayerConfig{ID: "host-2", Name: "Ben"}, CreateOptions{})
	s.Require().NoError(err)
	s.Equal(model.RoomCode("FGHJK"), record.Code)
}

func (s *ServiceSuite) TestCreateRoomGivesUpAfterMaxAttempts() {
	s.createRoom()

	for i := 0; i < MaxCodeAttempts; i++ {
		s.random.QueueString("ABCDE")
	}
	_, err := s.service.CreateRoom(s.ctx, model.PlayerConfig{ID: "host-2"}, CreateOptions{})
	s.ErrorIs(err, model.ErrCodeExhausted)
}

func (s *ServiceSuite) TestCreateRoomAppliesOptions() {
	s.random.QueueString("ABCDE")
	record, err := s.service.CreateRoom(s.ctx, hostConfig(), CreateOptions{
		TargetScore:     21,
		DefaultStrategy: model.StrategyAggressive,
	})
	s.Require().NoError(err)
	s.Equal(21, record.Lobby.TargetScore)
	s.Equal(model.StrategyAggressive, record.Lobby.DefaultStrategy)
	s.Equal(model.StrategyAggressive, record.Lobby.Seats[1].StrategyID)
}

// JoinRoom tests

func (s *ServiceSuite) TestJoinRoomTakesFirstOpenSeat() {
	s.createRoom()

	record, seat, err := s.service.JoinRoom(s.ctx, "ABCDE", model.PlayerConfig{ID: "p2", Name: "Ben", IsHuman: true}, -1)
	s.Require().NoError(err)
	s.Equal(1, seat)
	s.Equal(int64(1), record.Revision)
	s.Equal(model.PlayerID("host-1"), record.HostID)
	s.Require().NotNil(record.Lobby.Seats[1].Occupant)
	s.Equal(model.PlayerID("p2"), record.Lobby.Seats[1].Occupant.ID)
}

func (s *ServiceSuite) TestJoinRoomHonorsPreferredSeat() {
	s.createRoom()

	record, seat, err := s.service.JoinRoom(s.ctx, "ABCDE", model.PlayerConfig{ID: "p2", IsHuman: true}, 3)
	s.Require().NoError(err)
	s.Equal(3, seat)
	s.NotNil(record.Lobby.Seats[3].Occupant)
}

func (s *ServiceSuite) TestJoinRoomMovesExistingOccupant() {
	s.createRoom()
	_, _, err := s.service.JoinRoom(s.ctx, "ABCDE", model.PlayerConfig{ID: "p2", IsHuman: true}, 1)
	s.Require().NoError(err)

	record, seat, err := s.service.JoinRoom(s.ctx, "ABCDE", model.PlayerConfig{ID: "p2", IsHuman: true}, 2)
	s.Require().NoError(err)
	s.Equal(2, seat)
	s.Nil(record.Lobby.Seats[1].Occupant)
	s.NotNil(record.Lobby.Seats[2].Occupant)
}

func (s *ServiceSuite) TestJoinRoomRejectsWhenFull() {
	s.createRoom()
	for i, id := range []model.PlayerID{"p2", "p3", "p4"} {
		_, seat, err := s.service.JoinRoom(s.ctx, "ABCDE", model.PlayerConfig{ID: id, IsHuman: true}, -1)
		s.Require().NoError(err)
		s.Equal(i+1, seat)
	}

	_, _, err := s.service.JoinRoom(s.ctx, "ABCDE", model.PlayerConfig{ID: "p5", IsHuman: true}, -1)
	s.ErrorIs(err, model.ErrRoomFull)
}

func (s *ServiceSuite) TestJoinRoomUnknownCode() {
	_, _, err := s.service.JoinRoom(s.ctx, "XXXXX", model.PlayerConfig{ID: "p2"}, -1)
	s.ErrorIs(err, model.ErrRoomNotFound)
}

// LeaveRoom tests

func (s *ServiceSuite) TestLeaveRoomHandsHostOver() {
	s.createRoom()
	_, _, err := s.service.JoinRoom(s.ctx, "ABCDE", model.PlayerConfig{ID: "p2", IsHuman: true}, -1)
	s.Require().NoError(err)

	record, err := s.service.LeaveRoom(s.ctx, "ABCDE", "host-1")
	s.Require().NoError(err)
	s.Equal(model.PlayerID("p2"), record.HostID)
	s.Nil(record.Lobby.Seats[0].Occupant)
}

func (s *ServiceSuite) TestLeaveRoomDeletesEmptiedRoom() {
	s.createRoom()

	record, err := s.service.LeaveRoom(s.ctx, "ABCDE", "host-1")
	s.Require().NoError(err)
	s.Nil(record)

	_, err = s.service.GetRoom(s.ctx, "ABCDE")
	s.ErrorIs(err, model.ErrRoomNotFound)
}

func (s *ServiceSuite) TestLeaveRoomNotSeated() {
	s.createRoom()
	_, err := s.service.LeaveRoom(s.ctx, "ABCDE", "stranger")
	s.ErrorIs(err, model.ErrNotInRoom)
}

// Seat mutation tests

func (s *ServiceSuite) TestSetSeatStrategyHostOnly() {
	s.createRoom()

	record, err := s.service.SetSeatStrategy(s.ctx, "ABCDE", "host-1", 2, model.StrategyDefensive)
	s.Require().NoError(err)
	s.Equal(model.StrategyDefensive, record.Lobby.Seats[2].StrategyID)

	_, err = s.service.SetSeatStrategy(s.ctx, "ABCDE", "stranger", 2, model.StrategyRandom)
	s.ErrorIs(err, model.ErrNotHost)
}

func (s *ServiceSuite) TestSetSeatStrategyValidation() {
	s.createRoom()

	_, err := s.service.SetSeatStrategy(s.ctx, "ABCDE", "host-1", 9, model.StrategyRandom)
	s.ErrorIs(err, model.ErrInvalidSeat)

	_, err = s.service.SetSeatStrategy(s.ctx, "ABCDE", "host-1", 1, "bogus")
	s.ErrorIs(err, model.ErrUnknownStrategy)
}

func (s *ServiceSuite) TestSetDefaultStrategySkipsOccupiedSeats() {
	s.createRoom()
	_, _, err := s.service.JoinRoom(s.ctx, "ABCDE", model.PlayerConfig{ID: "p2", IsHuman: true}, 1)
	s.Require().NoError(err)

	record, err := s.service.SetDefaultStrategy(s.ctx, "ABCDE", "host-1", model.StrategyRandom)
	s.Require().NoError(err)
	s.Equal(model.StrategyRandom, record.Lobby.DefaultStrategy)
	s.Equal(model.StrategyBalanced, record.Lobby.Seats[1].StrategyID)
	s.Equal(model.StrategyRandom, record.Lobby.Seats[2].StrategyID)
	s.Equal(model.StrategyRandom, record.Lobby.Seats[3].StrategyID)
}

func (s *ServiceSuite) TestKickSeat() {
	s.createRoom()
	_, _, err := s.service.JoinRoom(s.ctx, "ABCDE", model.PlayerConfig{ID: "p2", IsHuman: true}, 1)
	s.Require().NoError(err)

	record, err := s.service.KickSeat(s.ctx, "ABCDE", "host-1", 1)
	s.Require().NoError(err)
	s.Nil(record.Lobby.Seats[1].Occupant)

	// the host cannot kick their own seat
	_, err = s.service.KickSeat(s.ctx, "ABCDE", "host-1", 0)
	s.ErrorIs(err, model.ErrInvalidSeat)
}

// StartGame tests

func (s *ServiceSuite) TestStartGameResolvesAISeats() {
	s.createRoom()
	_, err := s.service.SetSeatStrategy(s.ctx, "ABCDE", "host-1", 1, model.StrategyDefensive)
	s.Require().NoError(err)

	record, err := s.service.StartGame(s.ctx, "ABCDE", "host-1")
	s.Require().NoError(err)

	s.Equal(model.RoomStatusInProgress, record.Status)
	s.Require().NotNil(record.Game)
	s.Len(record.Game.Players, model.SeatCount)
	s.True(record.Game.Players[0].IsHuman)
	s.False(record.Game.Players[1].IsHuman)
	s.Equal(model.StrategyDefensive, record.Game.Players[1].StrategyID)
	s.Equal(model.StrategyBalanced, record.Game.Players[2].StrategyID)
	s.Equal(1, record.Game.Turn)
}

func (s *ServiceSuite) TestStartGameHostOnly() {
	s.createRoom()
	_, err := s.service.StartGame(s.ctx, "ABCDE", "stranger")
	s.ErrorIs(err, model.ErrNotHost)
}

func (s *ServiceSuite) TestStartGameTwiceRejected() {
	s.createRoom()
	_, err := s.service.StartGame(s.ctx, "ABCDE", "host-1")
	s.Require().NoError(err)

	_, err = s.service.StartGame(s.ctx, "ABCDE", "host-1")
	s.ErrorIs(err, model.ErrGameInProgress)
}

// SaveGameState / AbortGame tests

func (s *ServiceSuite) TestSaveGameStateCompletesOnWinner() {
	s.createRoom()
	record, err := s.service.StartGame(s.ctx, "ABCDE", "host-1")
	s.Require().NoError(err)

	next := record.Game.Clone()
	next.WinnerID = next.Players[0].ID

	updated, err := s.service.SaveGameState(s.ctx, "ABCDE", next)
	s.Require().NoError(err)
	s.Equal(model.RoomStatusComplete, updated.Status)
	s.Greater(updated.Revision, record.Revision)
}

func (s *ServiceSuite) TestSaveGameStateRequiresStartedGame() {
	s.createRoom()
	_, err := s.service.SaveGameState(s.ctx, "ABCDE", &model.GameState{})
	s.ErrorIs(err, model.ErrNoGameInProgress)
}

func (s *ServiceSuite) TestAbortGameRevertsToLobby() {
	s.createRoom()
	started, err := s.service.StartGame(s.ctx, "ABCDE", "host-1")
	s.Require().NoError(err)

	record, err := s.service.AbortGame(s.ctx, "ABCDE", "host-1")
	s.Require().NoError(err)
	s.Equal(model.RoomStatusLobby, record.Status)
	s.Nil(record.Game)
	s.Greater(record.Revision, started.Revision)

	// lobby configuration survives the reset
	s.NotNil(record.Lobby.Seats[0].Occupant)
}

func (s *ServiceSuite) TestAbortGameHostOnly() {
	s.createRoom()
	_, err := s.service.StartGame(s.ctx, "ABCDE", "host-1")
	s.Require().NoError(err)

	_, err = s.service.AbortGame(s.ctx, "ABCDE", "p2")
	s.ErrorIs(err, model.ErrNotHost)
}
