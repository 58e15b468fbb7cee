// Package room implements the room synchronization layer: lobby
// lifecycle, seat management and game-state persistence over a
// revision-stamped store. Every write replaces the whole record;
// pollers detect change purely by the revision moving.
package room

import (
	"context"
	"errors"
	"log/slog"

	"github.com/sidra-games/splendid/internal/catalog"
	"github.com/sidra-games/splendid/internal/dependencies/clock"
	"github.com/sidra-games/splendid/internal/dependencies/random"
	"github.com/sidra-games/splendid/internal/model"
	"github.com/sidra-games/splendid/internal/services/engine"
	"github.com/sidra-games/splendid/internal/storage"
)

const (
	// RoomCodeLength is the length of generated room codes
	RoomCodeLength = 5
	// RoomCodeAlphabet excludes easily-confused glyphs (0/O, 1/I/L)
	RoomCodeAlphabet = "23456789ABCDEFGHJKLMNPQRSTUVWXYZ"
	// MaxCodeAttempts bounds collision retries at creation
	MaxCodeAttempts = 10
)

// CreateOptions tunes a new room
type CreateOptions struct {
	TargetScore     int
	DefaultStrategy model.StrategyID
	// DesiredCode pins the code for the first attempt; collisions
	// fall back to generated codes
	DesiredCode model.RoomCode
}

// Service manages room records
type Service struct {
	storage storage.Storage
	engine  *engine.Engine
	catalog *catalog.Catalog
	clock   clock.Clock
	random  random.Random
	logger  *slog.Logger
}

// NewService creates a room Service
func NewService(
	store storage.Storage,
	eng *engine.Engine,
	cat *catalog.Catalog,
	clk clock.Clock,
	rnd random.Random,
	logger *slog.Logger,
) *Service {
	return &Service{
		storage: store,
		engine:  eng,
		catalog: cat,
		clock:   clk,
		random:  rnd,
		logger:  logger.With(slog.String("component", "room-service")),
	}
}

// CreateRoom creates a room with the host in seat 0, retrying fresh
// codes on collision up to MaxCodeAttempts
func (s *Service) CreateRoom(ctx context.Context, host model.PlayerConfig, opts CreateOptions) (*model.RoomRecord, error) {
	lobby := model.NewLobbySnapshot(opts.DefaultStrategy)
	if opts.TargetScore > 0 {
		lobby.TargetScore = opts.TargetScore
	}
	lobby.Seats[0].Occupant = &host
	lobby.HostID = host.ID

	code := opts.DesiredCode
	if code == "" {
		code = s.generateCode()
	}

	for attempt := 0; attempt < MaxCodeAttempts; attempt++ {
		record := &model.RoomRecord{
			Code:      code,
			Lobby:     lobby,
			Status:    model.RoomStatusLobby,
			HostID:    host.ID,
			UpdatedAt: s.clock.Now(),
		}

		err := s.storage.CreateRoom(ctx, record)
		if err == nil {
			s.logger.Info("room created",
				slog.String("room_code", string(code)),
				slog.String("host_id", string(host.ID)),
			)
			return record, nil
		}
		if !errors.Is(err, model.ErrRoomExists) {
			return nil, err
		}
		code = s.generateCode()
	}

	return nil, model.ErrCodeExhausted
}

func (s *Service) generateCode() model.RoomCode {
	return model.RoomCode(s.random.String(RoomCodeLength, RoomCodeAlphabet))
}

// GetRoom retrieves a room by code
func (s *Service) GetRoom(ctx context.Context, code model.RoomCode) (*model.RoomRecord, error) {
	return s.storage.GetRoom(ctx, code)
}

// JoinRoom seats the occupant in the first open seat, or preferredSeat
// when it is a valid open index. A player already seated is moved, not
// duplicated. The existing host id is preserved; an empty host id is
// claimed by the joiner.
func (s *Service) JoinRoom(ctx context.Context, code model.RoomCode, occupant model.PlayerConfig, preferredSeat int) (*model.RoomRecord, int, error) {
	record, err := s.storage.GetRoom(ctx, code)
	if err != nil {
		return nil, -1, err
	}

	lobby := record.Lobby.Clone()
	if idx := lobby.SeatOf(occupant.ID); idx >= 0 {
		lobby.Seats[idx].Occupant = nil
	}

	seatIndex := preferredSeat
	if seatIndex < 0 || seatIndex >= len(lobby.Seats) || lobby.Seats[seatIndex].Occupant != nil {
		seatIndex = lobby.FirstOpenSeat()
	}
	if seatIndex < 0 {
		return nil, -1, model.ErrRoomFull
	}

	lobby.Seats[seatIndex].Occupant = &occupant
	if lobby.HostID == "" {
		lobby.HostID = occupant.ID
	}

	record.Lobby = lobby
	record.HostID = lobby.HostID
	updated, err := s.persist(ctx, record)
	if err != nil {
		return nil, -1, err
	}
	return updated, seatIndex, nil
}

// LeaveRoom clears the player's seat. Hosting falls to the first
// remaining occupant; an emptied room is deleted outright.
func (s *Service) LeaveRoom(ctx context.Context, code model.RoomCode, playerID model.PlayerID) (*model.RoomRecord, error) {
	record, err := s.storage.GetRoom(ctx, code)
	if err != nil {
		return nil, err
	}

	lobby := record.Lobby.Clone()
	idx := lobby.SeatOf(playerID)
	if idx < 0 {
		return nil, model.ErrNotInRoom
	}
	lobby.Seats[idx].Occupant = nil

	if lobby.HostID == playerID {
		lobby.HostID = ""
		for _, seat := range lobby.Seats {
			if seat.Occupant != nil {
				lobby.HostID = seat.Occupant.ID
				break
			}
		}
	}

	if lobby.OccupantCount() == 0 {
		if err := s.storage.DeleteRoom(ctx, code); err != nil {
			return nil, err
		}
		s.logger.Info("room deleted after last occupant left", slog.String("room_code", string(code)))
		return nil, nil
	}

	record.Lobby = lobby
	record.HostID = lobby.HostID
	return s.persist(ctx, record)
}

// SetSeatStrategy changes one seat's AI strategy. Host only.
func (s *Service) SetSeatStrategy(ctx context.Context, code model.RoomCode, requester model.PlayerID, seatIndex int, strategy model.StrategyID) (*model.RoomRecord, error) {
	if !model.ValidStrategy(strategy) {
		return nil, model.ErrUnknownStrategy
	}

	record, err := s.hostRecord(ctx, code, requester)
	if err != nil {
		return nil, err
	}
	if seatIndex < 0 || seatIndex >= len(record.Lobby.Seats) {
		return nil, model.ErrInvalidSeat
	}

	lobby := record.Lobby.Clone()
	lobby.Seats[seatIndex].StrategyID = strategy
	record.Lobby = lobby
	return s.persist(ctx, record)
}

// SetDefaultStrategy changes the lobby default. Seats without an
// occupant pick up the new strategy; occupied seats keep theirs.
func (s *Service) SetDefaultStrategy(ctx context.Context, code model.RoomCode, requester model.PlayerID, strategy model.StrategyID) (*model.RoomRecord, error) {
	if !model.ValidStrategy(strategy) {
		return nil, model.ErrUnknownStrategy
	}

	record, err := s.hostRecord(ctx, code, requester)
	if err != nil {
		return nil, err
	}

	lobby := record.Lobby.Clone()
	lobby.DefaultStrategy = strategy
	for i := range lobby.Seats {
		if lobby.Seats[i].Occupant == nil {
			lobby.Seats[i].StrategyID = strategy
		}
	}
	record.Lobby = lobby
	return s.persist(ctx, record)
}

// KickSeat removes the occupant of a seat. Host only; the host cannot
// kick their own seat.
func (s *Service) KickSeat(ctx context.Context, code model.RoomCode, requester model.PlayerID, seatIndex int) (*model.RoomRecord, error) {
	record, err := s.hostRecord(ctx, code, requester)
	if err != nil {
		return nil, err
	}
	if seatIndex < 0 || seatIndex >= len(record.Lobby.Seats) {
		return nil, model.ErrInvalidSeat
	}

	lobby := record.Lobby.Clone()
	seat := &lobby.Seats[seatIndex]
	if seat.Occupant != nil && seat.Occupant.ID == requester {
		return nil, model.ErrInvalidSeat
	}
	seat.Occupant = nil
	record.Lobby = lobby
	return s.persist(ctx, record)
}

// StartGame deals an initial state and moves the room to IN_PROGRESS.
// Host only; seats without a human occupant become AI players on the
// seat's configured strategy.
func (s *Service) StartGame(ctx context.Context, code model.RoomCode, requester model.PlayerID) (*model.RoomRecord, error) {
	record, err := s.hostRecord(ctx, code, requester)
	if err != nil {
		return nil, err
	}
	if record.Status == model.RoomStatusInProgress {
		return nil, model.ErrGameInProgress
	}

	seats := make([]model.PlayerConfig, len(record.Lobby.Seats))
	for i, seat := range record.Lobby.Seats {
		if seat.Occupant != nil {
			seats[i] = *seat.Occupant
		} else {
			seats[i] = model.PlayerConfig{StrategyID: seat.StrategyID}
		}
	}

	record.Game = s.engine.NewGame(s.catalog, seats, record.Lobby.TargetScore, s.random)
	record.Status = model.RoomStatusInProgress

	updated, err := s.persist(ctx, record)
	if err != nil {
		return nil, err
	}
	s.logger.Info("game started",
		slog.String("room_code", string(code)),
		slog.Int("target_score", updated.Game.TargetScore),
	)
	return updated, nil
}

// SaveGameState persists a new authoritative game state, flipping the
// room to COMPLETE once a winner is latched
func (s *Service) SaveGameState(ctx context.Context, code model.RoomCode, state *model.GameState) (*model.RoomRecord, error) {
	record, err := s.storage.GetRoom(ctx, code)
	if err != nil {
		return nil, err
	}
	if record.Status == model.RoomStatusLobby {
		return nil, model.ErrNoGameInProgress
	}

	record.Game = state
	if state.WinnerID != "" {
		record.Status = model.RoomStatusComplete
	}
	return s.persist(ctx, record)
}

// AbortGame clears the game and reverts the room to LOBBY. Host only.
func (s *Service) AbortGame(ctx context.Context, code model.RoomCode, requester model.PlayerID) (*model.RoomRecord, error) {
	record, err := s.hostRecord(ctx, code, requester)
	if err != nil {
		return nil, err
	}
	if record.Game == nil && record.Status == model.RoomStatusLobby {
		return nil, model.ErrNoGameInProgress
	}

	record.Game = nil
	record.Status = model.RoomStatusLobby

	updated, err := s.persist(ctx, record)
	if err != nil {
		return nil, err
	}
	s.logger.Info("game aborted", slog.String("room_code", string(code)))
	return updated, nil
}

// hostRecord fetches the room and verifies the requester hosts it
func (s *Service) hostRecord(ctx context.Context, code model.RoomCode, requester model.PlayerID) (*model.RoomRecord, error) {
	record, err := s.storage.GetRoom(ctx, code)
	if err != nil {
		return nil, err
	}
	if record.HostID != requester {
		return nil, model.ErrNotHost
	}
	return record, nil
}

func (s *Service) persist(ctx context.Context, record *model.RoomRecord) (*model.RoomRecord, error) {
	record.UpdatedAt = s.clock.Now()
	return s.storage.UpdateRoom(ctx, record)
}
