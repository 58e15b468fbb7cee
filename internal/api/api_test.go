package api_test

import (
	"bytes"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/sidra-games/splendid/internal/api"
	"github.com/sidra-games/splendid/internal/api/apierr"
	"github.com/sidra-games/splendid/internal/api/response"
	"github.com/sidra-games/splendid/internal/factory"
	"github.com/sidra-games/splendid/internal/testutil"
)

// testServer wires the router against a TestApp
type testServer struct {
	handler http.Handler
	app     *factory.TestApp
}

func newTestServer(t *testing.T) *testServer {
	t.Helper()

	app := factory.NewTestApp()
	router := api.NewRouter(api.RouterConfig{
		Logger:      testutil.NopLogger(),
		RoomService: app.RoomService,
		Engine:      app.Engine,
		HostDriver:  app.HostDriver,
	})

	return &testServer{handler: router, app: app}
}

func (ts *testServer) request(method, path string, body any) *httptest.ResponseRecorder {
	var reqBody *bytes.Buffer
	if body != nil {
		b, _ := json.Marshal(body)
		reqBody = bytes.NewBuffer(b)
	} else {
		reqBody = bytes.NewBuffer(nil)
	}

	req := httptest.NewRequest(method, path, reqBody)
	req.Header.Set("Content-Type", "application/json")

	rr := httptest.NewRecorder()
	ts.handler.ServeHTTP(rr, req)
	return rr
}

// createRoom creates room ABCDE with the given host id and returns the
// join response
func (ts *testServer) createRoom(t *testing.T, hostID string) response.JoinResponse {
	t.Helper()
	ts.app.MockRandom.QueueString("ABCDE")

	rr := ts.request(http.MethodPost, "/api/v1/rooms", map[string]any{
		"player_id": hostID,
		"name":      "Ana",
	})
	require.Equal(t, http.StatusCreated, rr.Code)

	var resp response.JoinResponse
	require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &resp))
	return resp
}

func errorCode(t *testing.T, rr *httptest.ResponseRecorder) string {
	t.Helper()
	var resp apierr.ErrorResponse
	require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &resp))
	return resp.Error.Code
}

func TestHealthCheck(t *testing.T) {
	ts := newTestServer(t)

	rr := ts.request(http.MethodGet, "/api/v1/health", nil)
	assert.Equal(t, http.StatusOK, rr.Code)
	assert.Contains(t, rr.Body.String(), "ok")
}

func TestCreateRoom(t *testing.T) {
	ts := newTestServer(t)
	resp := ts.createRoom(t, "")

	assert.Equal(t, "ABCDE", resp.Room.Code)
	assert.Equal(t, "LOBBY", resp.Room.Status)
	assert.Equal(t, int64(0), resp.Room.Revision)
	assert.Equal(t, 0, resp.Seat)
	// an id was minted for the host
	assert.NotEmpty(t, resp.PlayerID)
	assert.Equal(t, resp.PlayerID, resp.Room.HostID)
}

func TestGetRoomNotFound(t *testing.T) {
	ts := newTestServer(t)

	rr := ts.request(http.MethodGet, "/api/v1/rooms/XXXXX", nil)
	assert.Equal(t, http.StatusNotFound, rr.Code)
	assert.Equal(t, apierr.CodeRoomNotFound, errorCode(t, rr))
}

func TestJoinRoom(t *testing.T) {
	ts := newTestServer(t)
	created := ts.createRoom(t, "host-1")

	rr := ts.request(http.MethodPost, "/api/v1/rooms/ABCDE/join", map[string]any{
		"player_id": "p2",
		"name":      "Ben",
	})
	require.Equal(t, http.StatusOK, rr.Code)

	var resp response.JoinResponse
	require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &resp))

	assert.Equal(t, 1, resp.Seat)
	assert.Equal(t, int64(1), resp.Room.Revision)
	assert.Equal(t, created.Room.HostID, resp.Room.HostID)
	require.NotNil(t, resp.Room.Lobby.Seats[1].Occupant)
	assert.Equal(t, "Ben", resp.Room.Lobby.Seats[1].Occupant.Name)
}

func TestStartGameRequiresHost(t *testing.T) {
	ts := newTestServer(t)
	ts.createRoom(t, "host-1")

	rr := ts.request(http.MethodPost, "/api/v1/rooms/ABCDE/start", map[string]any{
		"player_id": "stranger",
	})
	assert.Equal(t, http.StatusForbidden, rr.Code)
	assert.Equal(t, apierr.CodeNotHost, errorCode(t, rr))
}

func TestSetSeatStrategy(t *testing.T) {
	ts := newTestServer(t)
	ts.createRoom(t, "host-1")

	rr := ts.request(http.MethodPatch, "/api/v1/rooms/ABCDE/seats/2/strategy", map[string]any{
		"player_id": "host-1",
		"strategy":  "aggressive",
	})
	require.Equal(t, http.StatusOK, rr.Code)

	var resp response.Room
	require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &resp))
	assert.Equal(t, "aggressive", string(resp.Lobby.Seats[2].StrategyID))

	rr = ts.request(http.MethodPatch, "/api/v1/rooms/ABCDE/seats/2/strategy", map[string]any{
		"player_id": "host-1",
		"strategy":  "bogus",
	})
	assert.Equal(t, http.StatusBadRequest, rr.Code)
	assert.Equal(t, apierr.CodeUnknownStrategy, errorCode(t, rr))
}

func TestActionFlow(t *testing.T) {
	ts := newTestServer(t)
	ts.createRoom(t, "host-1")

	rr := ts.request(http.MethodPost, "/api/v1/rooms/ABCDE/start", map[string]any{
		"player_id": "host-1",
	})
	require.Equal(t, http.StatusOK, rr.Code)

	// acting out of turn is refused
	rr = ts.request(http.MethodPost, "/api/v1/rooms/ABCDE/actions", map[string]any{
		"player_id": "someone-else",
		"kind":      "pass",
	})
	assert.Equal(t, http.StatusForbidden, rr.Code)
	assert.Equal(t, apierr.CodeNotYourTurn, errorCode(t, rr))

	// an illegal gem take is a 422 with the engine's reason
	rr = ts.request(http.MethodPost, "/api/v1/rooms/ABCDE/actions", map[string]any{
		"player_id": "host-1",
		"kind":      "take_gems",
		"gems":      []string{"gold"},
	})
	assert.Equal(t, http.StatusUnprocessableEntity, rr.Code)
	assert.Equal(t, apierr.CodeIllegalAction, errorCode(t, rr))

	// a legal take applies and advances the turn
	rr = ts.request(http.MethodPost, "/api/v1/rooms/ABCDE/actions", map[string]any{
		"player_id": "host-1",
		"kind":      "take_gems",
		"gems":      []string{"black", "white", "red"},
	})
	require.Equal(t, http.StatusOK, rr.Code)

	var actionResp response.ActionResponse
	require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &actionResp))
	assert.True(t, actionResp.Accepted)
	require.NotNil(t, actionResp.Room.Game)
	assert.Equal(t, 1, actionResp.Room.Game.CurrentPlayerIndex)

	// the AI step plays the remaining seats back around to the host
	rr = ts.request(http.MethodPost, "/api/v1/rooms/ABCDE/ai-step", nil)
	require.Equal(t, http.StatusOK, rr.Code)

	var stepResp response.AIStepResponse
	require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &stepResp))
	assert.Equal(t, 3, stepResp.MovesApplied)
	require.NotNil(t, stepResp.Room.Game)
	assert.Equal(t, 0, stepResp.Room.Game.CurrentPlayerIndex)
	assert.Equal(t, 2, stepResp.Room.Game.Turn)
}

func TestLeaveRoomDeletesWhenEmpty(t *testing.T) {
	ts := newTestServer(t)
	resp := ts.createRoom(t, "host-1")

	rr := ts.request(http.MethodPost, fmt.Sprintf("/api/v1/rooms/%s/leave", resp.Room.Code), map[string]any{
		"player_id": "host-1",
	})
	assert.Equal(t, http.StatusNoContent, rr.Code)

	rr = ts.request(http.MethodGet, "/api/v1/rooms/ABCDE", nil)
	assert.Equal(t, http.StatusNotFound, rr.Code)
}
