package strategy

import (
	"context"
	"encoding/json"
	"fmt"
	"math"

	"github.com/anthropics/anthropic-sdk-go"
	"github.com/tidwall/gjson"

	"github.com/yieldscope/portfolio-go-sdk/core"
)

const strategySystemPrompt = `You are a DeFi strategy advisor. Given a user's portfolio, risk tolerance and investment goal, respond with a JSON array of 3 to 5 strategy objects. Each object must have exactly these fields: name (string), platform (string), chain (string), apy (number, percent), riskLevel ("Low"|"Medium"|"High"), description (string), aiConfidence (integer 0-100). You may add optional potentialYield and recommendedAllocation numbers. Reply with the JSON array only.`

// ClaudeGenerator is the provider-backed Generator: it asks a Claude model
// for strategies and extracts the JSON array out of the response text. It is
// a provider swap behind the Generator contract; output shape is identical
// to the rule engine's. Errors wrap ErrUpstreamUnavailable or
// ErrUnparseableResponse so the Recommender's fallback policy applies.
type ClaudeGenerator struct {
	client    *anthropic.Client
	model     string
	maxTokens int64
}

// ClaudeOption configures the generator.
type ClaudeOption func(*ClaudeGenerator)

// WithModel overrides the Claude model name.
func WithModel(model string) ClaudeOption {
	return func(g *ClaudeGenerator) { g.model = model }
}

// WithMaxTokens overrides the response token budget.
func WithMaxTokens(n int64) ClaudeOption {
	return func(g *ClaudeGenerator) { g.maxTokens = n }
}

// NewClaudeGenerator creates a generator over an Anthropic client.
func NewClaudeGenerator(client *anthropic.Client, opts ...ClaudeOption) *ClaudeGenerator {
	g := &ClaudeGenerator{
		client:    client,
		model:     "claude-sonnet-4-20250514",
		maxTokens: 2048,
	}
	for _, opt := range opts {
		opt(g)
	}
	return g
}

// Generate sends one prompt embedding the portfolio JSON and parses the
// strategies out of the model's reply.
func (g *ClaudeGenerator) Generate(ctx context.Context, req core.StrategyRequest) ([]core.GeneratedStrategy, error) {
	prompt, err := buildPrompt(req)
	if err != nil {
		return nil, err
	}

	params := anthropic.MessageNewParams{
		Model:     anthropic.Model(g.model),
		MaxTokens: g.maxTokens,
		Messages: []anthropic.MessageParam{
			anthropic.NewUserMessage(anthropic.NewTextBlock(prompt)),
		},
		System: []anthropic.TextBlockParam{
			{Text: strategySystemPrompt},
		},
	}

	resp, err := g.client.Messages.New(ctx, params)
	if err != nil {
		return nil, fmt.Errorf("%w: claude api: %v", core.ErrUpstreamUnavailable, err)
	}

	var text string
	for _, block := range resp.Content {
		if block.Type == "text" {
			text += block.Text
		}
	}

	return ExtractStrategies(text)
}

func buildPrompt(req core.StrategyRequest) (string, error) {
	portfolioJSON, err := json.Marshal(req.Portfolio)
	if err != nil {
		return "", fmt.Errorf("marshal portfolio: %w", err)
	}
	return fmt.Sprintf(
		"Portfolio: %s\nRisk tolerance: %s\nInvestment goal: %s\n\nGenerate the strategy array.",
		portfolioJSON, req.RiskTolerance, req.InvestmentGoal,
	), nil
}

// ExtractStrategies pulls the first bracketed JSON array out of model text,
// tolerating surrounding prose, and validates each object's shape. A missing
// array, invalid JSON, or an object without the required fields yields
// ErrUnparseableResponse.
func ExtractStrategies(text string) ([]core.GeneratedStrategy, error) {
	raw, ok := firstJSONArray(text)
	if !ok || !gjson.Valid(raw) {
		return nil, fmt.Errorf("%w: no JSON array in response", core.ErrUnparseableResponse)
	}

	parsed := gjson.Parse(raw)
	if !parsed.IsArray() {
		return nil, fmt.Errorf("%w: extracted value is not an array", core.ErrUnparseableResponse)
	}

	elements := parsed.Array()
	if len(elements) == 0 {
		return nil, fmt.Errorf("%w: empty strategy array", core.ErrUnparseableResponse)
	}

	strategies := make([]core.GeneratedStrategy, 0, len(elements))
	for i, e := range elements {
		s, err := strategyFromJSON(e)
		if err != nil {
			return nil, fmt.Errorf("%w: strategy %d: %v", core.ErrUnparseableResponse, i, err)
		}
		strategies = append(strategies, s)
	}
	return strategies, nil
}

func strategyFromJSON(e gjson.Result) (core.GeneratedStrategy, error) {
	var zero core.GeneratedStrategy

	for _, field := range []string{"name", "platform", "chain", "description"} {
		v := e.Get(field)
		if v.Type != gjson.String || v.Str == "" {
			return zero, fmt.Errorf("missing string field %q", field)
		}
	}
	for _, field := range []string{"apy", "aiConfidence"} {
		if e.Get(field).Type != gjson.Number {
			return zero, fmt.Errorf("missing numeric field %q", field)
		}
	}
	level, err := core.ParseRiskLevel(e.Get("riskLevel").Str)
	if err != nil {
		return zero, err
	}

	return core.GeneratedStrategy{
		Name:                  e.Get("name").Str,
		Platform:              e.Get("platform").Str,
		Chain:                 e.Get("chain").Str,
		APY:                   e.Get("apy").Num,
		RiskLevel:             level,
		Description:           e.Get("description").Str,
		AIConfidence:          int(math.Round(e.Get("aiConfidence").Num)),
		PotentialYield:        e.Get("potentialYield").Num,
		RecommendedAllocation: e.Get("recommendedAllocation").Num,
	}, nil
}

// firstJSONArray scans for the first top-level bracketed array, skipping
// brackets inside string literals.
func firstJSONArray(text string) (string, bool) {
	start := -1
	depth := 0
	inString := false
	escaped := false
	for i := 0; i < len(text); i++ {
		c := text[i]
		if inString {
			switch {
			case escaped:
				escaped = false
			case c == '\\':
				escaped = true
			case c == '"':
				inString = false
			}
			continue
		}
		switch c {
		case '"':
			if start >= 0 {
				inString = true
			}
		case '[':
			if start < 0 {
				start = i
			}
			depth++
		case ']':
			if start < 0 {
				continue
			}
			depth--
			if depth == 0 {
				return text[start : i+1], true
			}
		}
	}
	return "", false
}
