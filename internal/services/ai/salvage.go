package ai

import (
	"encoding/json"
	"regexp"
	"strings"
)

// ParsedAction is the loosely-typed action recovered from a remote
// model's free-text response. Fields are optional; Kind may still be
// unrecognizable and is normalized by the caller.
type ParsedAction struct {
	Kind                 string
	CardID               string
	FromReserve          bool
	ReserveFromDeckLevel int
	Gems                 []string
	Reasoning            string
}

// salvageStage is one total parser: it never fails, it returns nil
// when it cannot recover an action from the text
type salvageStage struct {
	name  string
	parse func(text string) *ParsedAction
}

// salvageStages run in order against the fence-stripped text; the
// first stage producing any object wins, even when its Kind later
// fails normalization. Ordered from strict JSON down to scraping
// keywords out of truncated garbage.
var salvageStages = []salvageStage{
	{name: "direct", parse: parseStrict},
	{name: "brace_block", parse: parseBraceBlock},
	{name: "loosened", parse: parseLoosenedWhole},
	{name: "field_extraction", parse: extractFields},
	{name: "keyword_scan", parse: scanKeywords},
	{name: "prefix_scan", parse: scanTruncatedPrefix},
}

// Salvage recovers an action from whatever text the remote model
// produced. Returns nil only when every stage comes up empty.
func Salvage(raw string) *ParsedAction {
	text := stripFences(raw)
	for _, stage := range salvageStages {
		if parsed := stage.parse(text); parsed != nil {
			return parsed
		}
	}
	return nil
}

var fencePattern = regexp.MustCompile("(?i)```json|```")

func stripFences(text string) string {
	return strings.TrimSpace(fencePattern.ReplaceAllString(text, ""))
}

func parseStrict(text string) *ParsedAction {
	return tryUnmarshal(text)
}

// parseBraceBlock cuts the substring between the first { and the last
// } and parses it, loosening it on a second attempt
func parseBraceBlock(text string) *ParsedAction {
	first := strings.Index(text, "{")
	last := strings.LastIndex(text, "}")
	if first == -1 || last <= first {
		return nil
	}
	block := text[first : last+1]
	if parsed := tryUnmarshal(block); parsed != nil {
		return parsed
	}
	return tryUnmarshal(loosen(block))
}

func parseLoosenedWhole(text string) *ParsedAction {
	return tryUnmarshal(loosen(text))
}

var bareKeyPattern = regexp.MustCompile(`([,{\s])([A-Za-z0-9_]+)\s*:`)

// loosen rewrites almost-JSON into JSON: bare keys get quoted and
// single quotes become double quotes
func loosen(text string) string {
	t := bareKeyPattern.ReplaceAllString(text, `${1}"${2}":`)
	return strings.ReplaceAll(t, "'", `"`)
}

// tryUnmarshal parses text as a JSON object into a ParsedAction.
// Unmarshalling goes through a map so unexpected value types in
// irrelevant fields never sink the whole parse.
func tryUnmarshal(text string) *ParsedAction {
	var m map[string]any
	if err := json.Unmarshal([]byte(text), &m); err != nil {
		return nil
	}

	parsed := &ParsedAction{}
	if v, ok := m["kind"].(string); ok {
		parsed.Kind = v
	}
	if v, ok := m["cardId"].(string); ok {
		parsed.CardID = v
	}
	if v, ok := m["fromReserve"].(bool); ok {
		parsed.FromReserve = v
	}
	if v, ok := m["reserveFromDeckLevel"].(float64); ok {
		parsed.ReserveFromDeckLevel = int(v)
	}
	if v, ok := m["reasoning"].(string); ok {
		parsed.Reasoning = v
	}
	if v, ok := m["gems"].([]any); ok {
		for _, g := range v {
			if s, ok := g.(string); ok {
				parsed.Gems = append(parsed.Gems, s)
			}
		}
	}
	return parsed
}

var (
	kindFieldPattern   = regexp.MustCompile(`(?i)"kind"\s*:\s*"([A-Za-z_]+)"`)
	cardFieldPattern   = regexp.MustCompile(`(?i)"cardId"\s*:\s*"([^"]+)"`)
	fromReservePattern = regexp.MustCompile(`(?i)"fromReserve"\s*:\s*(true|false)`)
	deckLevelPattern   = regexp.MustCompile(`(?i)"reserveFromDeckLevel"\s*:\s*([123])`)
	gemsFieldPattern   = regexp.MustCompile(`(?i)"gems"\s*:\s*\[([^\]]*)\]`)
)

// extractFields scrapes known fields out of text that never parses as
// JSON at all. A kind field is required; everything else is optional.
func extractFields(text string) *ParsedAction {
	kindMatch := kindFieldPattern.FindStringSubmatch(text)
	if kindMatch == nil {
		return nil
	}

	parsed := &ParsedAction{Kind: kindMatch[1]}
	if m := cardFieldPattern.FindStringSubmatch(text); m != nil {
		parsed.CardID = m[1]
	}
	if m := fromReservePattern.FindStringSubmatch(text); m != nil {
		parsed.FromReserve = strings.EqualFold(m[1], "true")
	}
	if m := deckLevelPattern.FindStringSubmatch(text); m != nil {
		parsed.ReserveFromDeckLevel = int(m[1][0] - '0')
	}
	if m := gemsFieldPattern.FindStringSubmatch(text); m != nil {
		for _, part := range strings.Split(m[1], ",") {
			gem := strings.TrimSpace(strings.ReplaceAll(part, `"`, ""))
			if gem != "" {
				parsed.Gems = append(parsed.Gems, gem)
			}
		}
	}
	return parsed
}

// scanKeywords looks for an action-kind keyword anywhere in the text.
// TAKE wins over RESERVE and BUY so "take gems" prose maps correctly.
func scanKeywords(text string) *ParsedAction {
	upper := strings.ToUpper(text)
	switch {
	case strings.Contains(upper, "TAKE_GEMS"), strings.Contains(upper, "TAKE"):
		return &ParsedAction{Kind: "TAKE_GEMS"}
	case strings.Contains(upper, "RESERVE"):
		return &ParsedAction{Kind: "RESERVE"}
	case strings.Contains(upper, "BUY"):
		return &ParsedAction{Kind: "BUY"}
	case strings.Contains(upper, "PASS"):
		return &ParsedAction{Kind: "PASS"}
	}
	return nil
}

// scanTruncatedPrefix recognizes a response cut off right after the
// kind field opened
func scanTruncatedPrefix(text string) *ParsedAction {
	t := strings.TrimSpace(text)
	switch {
	case strings.HasPrefix(t, `{"kind":"TA`):
		return &ParsedAction{Kind: "TAKE_GEMS"}
	case strings.HasPrefix(t, `{"kind":"RE`):
		return &ParsedAction{Kind: "RESERVE"}
	case strings.HasPrefix(t, `{"kind":"BU`):
		return &ParsedAction{Kind: "BUY"}
	case strings.HasPrefix(t, `{"kind":"PA`):
		return &ParsedAction{Kind: "PASS"}
	}
	return nil
}

// NormalizeKind maps a salvaged kind string onto a DecisionKind,
// reporting false for anything unrecognizable
func NormalizeKind(kind string) (DecisionKind, bool) {
	switch strings.ToUpper(kind) {
	case "BUY":
		return DecisionBuy, true
	case "RESERVE":
		return DecisionReserve, true
	case "TAKE_GEMS":
		return DecisionTakeGems, true
	case "PASS":
		return DecisionPass, true
	}
	return "", false
}
