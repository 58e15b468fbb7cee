package ai

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"time"

	"github.com/sidra-games/splendid/internal/model"
)

// Backing models per remote strategy id
const (
	modelGemini = "gemini-2.5-flash"
	modelGemma  = "gemma-3-27b-it"

	defaultGenerateBaseURL = "https://generativelanguage.googleapis.com"
	remoteTimeout          = 15 * time.Second
	remoteTemperature      = 0.35
	remoteMaxOutputTokens  = 160
)

var (
	errNoAPIKey        = errors.New("remote strategy: no api key configured")
	errEmptyCandidates = errors.New("remote strategy: response carried no candidates")
	errUnsalvageable   = errors.New("remote strategy: response could not be salvaged into an action")
)

// GenerateClient calls a generateContent-style text-generation API and
// salvages the reply into a Decision. It satisfies RemoteMover.
type GenerateClient struct {
	httpClient *http.Client
	baseURL    string
	apiKey     string
	logger     *slog.Logger
}

var _ RemoteMover = (*GenerateClient)(nil)

// NewGenerateClient creates a client. baseURL may be empty to use the
// public endpoint; an empty apiKey makes every request fail fast so
// callers fall back to the local strategy.
func NewGenerateClient(baseURL, apiKey string, logger *slog.Logger) *GenerateClient {
	if baseURL == "" {
		baseURL = defaultGenerateBaseURL
	}
	return &GenerateClient{
		httpClient: &http.Client{Timeout: remoteTimeout},
		baseURL:    baseURL,
		apiKey:     apiKey,
		logger:     logger.With(slog.String("component", "ai-remote")),
	}
}

type generatePart struct {
	Text string `json:"text"`
}

type generateContent struct {
	Parts []generatePart `json:"parts"`
}

type generateRequest struct {
	Contents         []generateContent `json:"contents"`
	GenerationConfig generationConfig  `json:"generationConfig"`
}

type generationConfig struct {
	Temperature     float64 `json:"temperature"`
	MaxOutputTokens int     `json:"maxOutputTokens"`
}

type generateResponse struct {
	Candidates []struct {
		Content generateContent `json:"content"`
	} `json:"candidates"`
}

// RequestMove asks the strategy's backing model for one move. Any
// transport failure, non-2xx status or unsalvageable reply returns an
// error; the caller falls back to a local strategy.
func (c *GenerateClient) RequestMove(ctx context.Context, state *model.GameState, player *model.Player, strategy model.StrategyID) (*Decision, error) {
	if c.apiKey == "" {
		return nil, errNoAPIKey
	}

	backing := modelGemini
	if strategy == model.StrategyGemma {
		backing = modelGemma
	}

	prompt, err := buildPrompt(state, player, backing)
	if err != nil {
		return nil, fmt.Errorf("building prompt: %w", err)
	}

	body, err := json.Marshal(generateRequest{
		Contents: []generateContent{{Parts: []generatePart{{Text: prompt}}}},
		GenerationConfig: generationConfig{
			Temperature:     remoteTemperature,
			MaxOutputTokens: remoteMaxOutputTokens,
		},
	})
	if err != nil {
		return nil, fmt.Errorf("encoding request: %w", err)
	}

	url := fmt.Sprintf("%s/v1beta/models/%s:generateContent?key=%s", c.baseURL, backing, c.apiKey)
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, url, bytes.NewReader(body))
	if err != nil {
		return nil, fmt.Errorf("building request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("calling %s: %w", backing, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		payload, _ := io.ReadAll(io.LimitReader(resp.Body, 1024))
		return nil, fmt.Errorf("%s returned status %d: %s", backing, resp.StatusCode, string(payload))
	}

	var decoded generateResponse
	if err := json.NewDecoder(resp.Body).Decode(&decoded); err != nil {
		return nil, fmt.Errorf("decoding response: %w", err)
	}
	if len(decoded.Candidates) == 0 || len(decoded.Candidates[0].Content.Parts) == 0 {
		return nil, errEmptyCandidates
	}

	raw := decoded.Candidates[0].Content.Parts[0].Text
	parsed := Salvage(raw)
	if parsed == nil {
		c.logger.Warn("remote reply unsalvageable", slog.String("model", backing), slog.String("raw", raw))
		return nil, errUnsalvageable
	}

	kind, ok := NormalizeKind(parsed.Kind)
	if !ok {
		return nil, fmt.Errorf("remote strategy: unrecognized action kind %q", parsed.Kind)
	}

	decision := &Decision{
		Kind:                 kind,
		CardID:               model.CardID(parsed.CardID),
		FromReserve:          parsed.FromReserve,
		ReserveFromDeckLevel: parsed.ReserveFromDeckLevel,
		Reasoning:            parsed.Reasoning,
		Source:               string(strategy),
		StrategyUsed:         strategy,
	}
	for _, g := range parsed.Gems {
		if model.ValidGemColor(g) {
			decision.Gems = append(decision.Gems, model.GemColor(g))
		}
	}
	return decision, nil
}

// Compact wire forms keep the prompt inside the model's small output
// budget; field names match what the prompt schema describes.

type promptCard struct {
	ID     model.CardID   `json:"id"`
	Level  int            `json:"lvl"`
	Points int            `json:"pts"`
	Bonus  model.GemColor `json:"b"`
	Cost   model.Cost     `json:"c"`
}

type promptNoble struct {
	ID           model.NobleID `json:"id"`
	Points       int           `json:"pts"`
	Requirements model.Cost    `json:"req"`
}

type promptSeat struct {
	ID      model.PlayerID `json:"id"`
	Points  int            `json:"pts"`
	Gems    model.GemCount `json:"g"`
	Bonuses model.GemCount `json:"b"`
}

type promptHistory struct {
	PlayerID model.PlayerID `json:"p"`
	Kind     model.LogKind  `json:"k"`
}

type promptRecent struct {
	PlayerName string        `json:"p"`
	Kind       model.LogKind `json:"k"`
	Summary    string        `json:"s"`
}

type promptState struct {
	Turn   int            `json:"turn"`
	Target int            `json:"target"`
	Actor  model.PlayerID `json:"cp"`
	Stock  model.GemCount `json:"stock"`
	Market struct {
		Level1 []promptCard `json:"l1"`
		Level2 []promptCard `json:"l2"`
		Level3 []promptCard `json:"l3"`
	} `json:"m"`
	Nobles []promptNoble `json:"nobles"`
	Self   struct {
		ID       model.PlayerID `json:"id"`
		Gems     model.GemCount `json:"g"`
		Bonuses  model.GemCount `json:"b"`
		Reserved []promptCard   `json:"r"`
	} `json:"self"`
	Players    []promptSeat    `json:"players"`
	History    []promptHistory `json:"hist"`
	OthersLast []promptRecent  `json:"othersLast2"`
	Model      string          `json:"model"`
}

const promptRules = "Rules: TAKE_GEMS=3 distinct colors OR 2 same (pile>=4), no gold directly, keep total gems<=10. RESERVE from market by cardId or blind deck via reserveFromDeckLevel (1-3), max 3 reserved. BUY only if affordable with bonuses+gems+gold. Always return a legal move."

// buildPrompt renders the single free-text prompt: instructions, the
// reply schema, the rule reminder and the compact JSON state snapshot
func buildPrompt(state *model.GameState, player *model.Player, backing string) (string, error) {
	snapshot := promptState{
		Turn:   state.Turn,
		Target: state.TargetScore,
		Actor:  player.ID,
		Stock:  state.Gems,
		Model:  backing,
	}
	snapshot.Market.Level1 = compactCards(state.Market.Level1)
	snapshot.Market.Level2 = compactCards(state.Market.Level2)
	snapshot.Market.Level3 = compactCards(state.Market.Level3)

	for _, n := range state.Nobles {
		snapshot.Nobles = append(snapshot.Nobles, promptNoble{ID: n.ID, Points: n.Points, Requirements: n.Requirements})
	}

	snapshot.Self.ID = player.ID
	snapshot.Self.Gems = player.Gems
	snapshot.Self.Bonuses = player.Bonuses
	snapshot.Self.Reserved = compactCards(player.ReservedCards)

	for i := range state.Players {
		p := &state.Players[i]
		snapshot.Players = append(snapshot.Players, promptSeat{ID: p.ID, Points: p.Points, Gems: p.Gems, Bonuses: p.Bonuses})
	}

	history := state.History
	if len(history) > 6 {
		history = history[len(history)-6:]
	}
	for _, h := range history {
		snapshot.History = append(snapshot.History, promptHistory{PlayerID: h.PlayerID, Kind: h.Kind})
	}

	var others []promptRecent
	for _, h := range state.History {
		if h.PlayerID == player.ID {
			continue
		}
		others = append(others, promptRecent{PlayerName: h.PlayerName, Kind: h.Kind, Summary: h.Summary})
	}
	if len(others) > 2 {
		others = others[len(others)-2:]
	}
	snapshot.OthersLast = others

	encoded, err := json.Marshal(snapshot)
	if err != nil {
		return "", err
	}

	strategy := player.StrategyID
	if strategy == "" {
		strategy = model.StrategyGemini
	}

	return fmt.Sprintf(
		"You are the AI (%s | model=%s). Output ONLY one minified JSON object on a single line. Do NOT use code fences or markdown. "+
			`Schema {"kind":"BUY|RESERVE|TAKE_GEMS|PASS","cardId":"string?","fromReserve":boolean,"reserveFromDeckLevel":1|2|3|null,"gems":["red"...],"reasoning":"short"}. `+
			"If unsure, choose a legal TAKE_GEMS or PASS. Ensure action obeys rules; adjust gems list to available stock. %s State:%s",
		strategy, backing, promptRules, string(encoded),
	), nil
}

func compactCards(cards []model.Card) []promptCard {
	out := make([]promptCard, 0, len(cards))
	for _, c := range cards {
		out = append(out, promptCard{ID: c.ID, Level: c.Level, Points: c.Points, Bonus: c.Bonus, Cost: c.Cost})
	}
	return out
}
