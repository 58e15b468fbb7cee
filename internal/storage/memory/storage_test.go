package memory

import (
	"context"
	"testing"

	"github.com/sidra-games/splendid/internal/model"
	"github.com/stretchr/testify/suite"
)

type StorageSuite struct {
	suite.Suite
	storage *Storage
	ctx     context.Context
}

func TestStorageSuite(t *testing.T) {
	suite.Run(t, new(StorageSuite))
}

func (s *StorageSuite) SetupTest() {
	s.storage = New()
	s.ctx = context.Background()
}

func testRoom(code model.RoomCode) *model.RoomRecord {
	return &model.RoomRecord{
		Code:   code,
		Lobby:  model.NewLobbySnapshot(model.StrategyBalanced),
		Status: model.RoomStatusLobby,
		HostID: "host-1",
	}
}

func (s *StorageSuite) TestCreateAndGetRoom() {
	err := s.storage.CreateRoom(s.ctx, testRoom("ABCDE"))
	s.Require().NoError(err)

	room, err := s.storage.GetRoom(s.ctx, "ABCDE")
	s.Require().NoError(err)
	s.Equal(model.RoomCode("ABCDE"), room.Code)
	s.Equal(model.RoomStatusLobby, room.Status)
	s.Equal(int64(0), room.Revision)
}

func (s *StorageSuite) TestCreateRoomRejectsDuplicateCode() {
	s.Require().NoError(s.storage.CreateRoom(s.ctx, testRoom("ABCDE")))
	err := s.storage.CreateRoom(s.ctx, testRoom("ABCDE"))
	s.ErrorIs(err, model.ErrRoomExists)
}

func (s *StorageSuite) TestGetRoomNotFound() {
	_, err := s.storage.GetRoom(s.ctx, "XXXXX")
	s.ErrorIs(err, model.ErrRoomNotFound)
}

func (s *StorageSuite) TestUpdateRoomStampsRevision() {
	room := testRoom("ABCDE")
	s.Require().NoError(s.storage.CreateRoom(s.ctx, room))

	room.Status = model.RoomStatusInProgress
	updated, err := s.storage.UpdateRoom(s.ctx, room)
	s.Require().NoError(err)
	s.Equal(int64(1), updated.Revision)

	updated, err = s.storage.UpdateRoom(s.ctx, room)
	s.Require().NoError(err)
	s.Equal(int64(2), updated.Revision)

	fetched, err := s.storage.GetRoom(s.ctx, "ABCDE")
	s.Require().NoError(err)
	s.Equal(int64(2), fetched.Revision)
	s.Equal(model.RoomStatusInProgress, fetched.Status)
}

func (s *StorageSuite) TestUpdateRoomIgnoresCallerRevision() {
	room := testRoom("ABCDE")
	s.Require().NoError(s.storage.CreateRoom(s.ctx, room))

	// a stale writer cannot move the counter backwards
	room.Revision = 99
	updated, err := s.storage.UpdateRoom(s.ctx, room)
	s.Require().NoError(err)
	s.Equal(int64(1), updated.Revision)
}

func (s *StorageSuite) TestUpdateRoomNotFound() {
	_, err := s.storage.UpdateRoom(s.ctx, testRoom("XXXXX"))
	s.ErrorIs(err, model.ErrRoomNotFound)
}

func (s *StorageSuite) TestDeleteRoom() {
	s.Require().NoError(s.storage.CreateRoom(s.ctx, testRoom("ABCDE")))
	s.Require().NoError(s.storage.DeleteRoom(s.ctx, "ABCDE"))

	_, err := s.storage.GetRoom(s.ctx, "ABCDE")
	s.ErrorIs(err, model.ErrRoomNotFound)

	// idempotent
	s.NoError(s.storage.DeleteRoom(s.ctx, "ABCDE"))
}

func (s *StorageSuite) TestRoomExists() {
	exists, err := s.storage.RoomExists(s.ctx, "ABCDE")
	s.Require().NoError(err)
	s.False(exists)

	s.Require().NoError(s.storage.CreateRoom(s.ctx, testRoom("ABCDE")))
	exists, err = s.storage.RoomExists(s.ctx, "ABCDE")
	s.Require().NoError(err)
	s.True(exists)
}

func (s *StorageSuite) TestStoredRoomIsIsolatedFromCaller() {
	room := testRoom("ABCDE")
	s.Require().NoError(s.storage.CreateRoom(s.ctx, room))

	// mutating the caller's copy after the write must not leak in
	room.Status = model.RoomStatusComplete
	room.Lobby.Seats[0].Occupant = &model.PlayerConfig{ID: "p9"}

	fetched, err := s.storage.GetRoom(s.ctx, "ABCDE")
	s.Require().NoError(err)
	s.Equal(model.RoomStatusLobby, fetched.Status)
	s.Nil(fetched.Lobby.Seats[0].Occupant)
}
