// Package strategy produces ranked yield-strategy recommendations from a
// user's holdings, risk tolerance and investment goal. Two interchangeable
// generators exist behind one interface: a deterministic rule engine and a
// Claude-backed provider. The Recommender wraps either with the fallback
// policy, so callers always get between 3 and 5 strategies.
package strategy

import (
	"context"
	"log"

	"github.com/google/uuid"

	"github.com/yieldscope/portfolio-go-sdk/core"
)

// Result-list bounds guaranteed by the Recommender.
const (
	MinStrategies = 3
	MaxStrategies = 5
)

// Generator produces candidate strategies for a request. Implementations:
// RuleGenerator (local, deterministic given its random source) and
// ClaudeGenerator (provider-backed). Selection happens at construction
// time, never by branching at call sites.
type Generator interface {
	Generate(ctx context.Context, req core.StrategyRequest) ([]core.GeneratedStrategy, error)
}

// Recommender applies the fallback policy around a Generator.
type Recommender struct {
	gen Generator
}

// NewRecommender wraps the given generator.
func NewRecommender(gen Generator) *Recommender {
	return &Recommender{gen: gen}
}

// Recommend returns 3 to 5 ranked strategies for any well-formed request.
//
// Any generator error is a total short-circuit: the fixed fallback list is
// returned verbatim, never a partial recovery. A short (but successful)
// generator result is padded from the fallback list up to the minimum, and
// long results are truncated to the maximum.
func (r *Recommender) Recommend(ctx context.Context, req core.StrategyRequest) []core.GeneratedStrategy {
	strategies, err := r.gen.Generate(ctx, req)
	if err != nil {
		log.Printf("[strategy] generator failed, serving fallback list: %v", err)
		return withIDs(FallbackStrategies())
	}
	fallback := FallbackStrategies()
	for i := 0; len(strategies) < MinStrategies; i++ {
		strategies = append(strategies, fallback[i%len(fallback)])
	}
	if len(strategies) > MaxStrategies {
		strategies = strategies[:MaxStrategies]
	}
	return withIDs(strategies)
}

func withIDs(strategies []core.GeneratedStrategy) []core.GeneratedStrategy {
	for i := range strategies {
		if strategies[i].ID == "" {
			strategies[i].ID = uuid.NewString()
		}
	}
	return strategies
}
