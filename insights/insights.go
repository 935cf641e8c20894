// Package insights synthesizes a coarse market overview: sentiment, trend
// lines, top performers and upcoming events. Content is drawn from fixed
// pools through an injectable random source and clock, so output is exactly
// reproducible under a seeded source.
package insights

import (
	"math"
	"math/rand"
	"sort"
	"time"
)

// Sentiment is the overall market mood.
type Sentiment string

const (
	Bullish Sentiment = "bullish"
	Bearish Sentiment = "bearish"
	Neutral Sentiment = "neutral"
)

// Performer is a token with its 24h price change in percent.
type Performer struct {
	Token     string  `json:"token"`
	Change24h float64 `json:"change_24h"`
}

// Event is an upcoming market event with a coarse impact estimate.
type Event struct {
	Event           string `json:"event"`
	Date            string `json:"date"` // ISO date (YYYY-MM-DD)
	PotentialImpact string `json:"potential_impact"`
}

// MarketInsights is the full overview returned by a Generator.
type MarketInsights struct {
	Sentiment      Sentiment   `json:"market_sentiment"`
	Trends         []string    `json:"market_trends"`
	TopPerformers  []Performer `json:"top_performers"`
	DeFiInsights   []string    `json:"defi_insights"`
	UpcomingEvents []Event     `json:"upcoming_events,omitempty"`
	NotableEvents  []string    `json:"notable_events,omitempty"`
}

var trendPools = map[Sentiment][]string{
	Bullish: {
		"Institutional investment flows into crypto are increasing",
		"Layer 2 solutions showing strong adoption and growth",
		"DeFi TVL rising as risk appetite returns to the market",
		"Positive regulatory developments boosting market confidence",
	},
	Bearish: {
		"Market volatility increasing due to macroeconomic concerns",
		"DeFi TVL declining as users seek safer assets",
		"Regulatory uncertainty creating headwinds for growth",
		"Decreased trading volumes across major exchanges",
	},
	Neutral: {
		"Market consolidation phase after recent volatility",
		"Layer 2 solutions continue steady growth despite market conditions",
		"DeFi TVL stabilizing after recent fluctuations",
		"Institutional interest remains strong despite short-term uncertainty",
	},
}

var performerPool = []string{"ETH", "BTC", "ARB", "OP", "LINK", "SOL", "AVAX", "MATIC"}

var defiInsightPool = []string{
	"Lending protocols seeing increased utilization rates",
	"DEX volumes trending upward on L2 networks",
	"Yield farming opportunities emerging on newer L2 chains",
	"Liquid staking derivatives gaining significant market share",
	"RWA protocols showing steady growth in TVL",
	"Options protocols gaining traction with improved user interfaces",
	"Cross-chain bridges experiencing increased activity",
	"Governance token voting participation reaching new highs",
}

// Generator produces market insights from a random source and a clock.
type Generator struct {
	rng *rand.Rand
	now func() time.Time
}

// NewGenerator creates a time-seeded generator on the real clock.
func NewGenerator() *Generator {
	return NewGeneratorWith(rand.New(rand.NewSource(time.Now().UnixNano())), time.Now)
}

// NewGeneratorWith creates a generator over the given source and clock.
func NewGeneratorWith(rng *rand.Rand, now func() time.Time) *Generator {
	return &Generator{rng: rng, now: now}
}

// Market synthesizes one overview snapshot.
func (g *Generator) Market() MarketInsights {
	sentiments := []Sentiment{Bullish, Bearish, Neutral}
	sentiment := sentiments[g.rng.Intn(len(sentiments))]

	trends := g.sample(trendPools[sentiment], 3)

	tokens := g.sample(performerPool, 3)
	performers := make([]Performer, 0, len(tokens))
	for _, token := range tokens {
		var change float64
		switch sentiment {
		case Bullish:
			change = 1 + g.rng.Float64()*8
		case Bearish:
			change = -5 + g.rng.Float64()*7
		default:
			change = -2 + g.rng.Float64()*4
		}
		performers = append(performers, Performer{
			Token:     token,
			Change24h: math.Round(change*10) / 10,
		})
	}
	sort.SliceStable(performers, func(i, j int) bool {
		return performers[i].Change24h > performers[j].Change24h
	})

	today := g.now()
	return MarketInsights{
		Sentiment:     sentiment,
		Trends:        trends,
		TopPerformers: performers,
		DeFiInsights:  g.sample(defiInsightPool, 3),
		UpcomingEvents: []Event{
			{Event: "Major ETH Layer 2 Protocol Upgrade", Date: isoDate(today, 7), PotentialImpact: "medium"},
			{Event: "International DeFi Conference", Date: isoDate(today, 14), PotentialImpact: "low"},
			{Event: "Central Bank Digital Currency Announcement", Date: isoDate(today, 10), PotentialImpact: "high"},
		},
		NotableEvents: []string{
			"L2 ecosystem expanding with several new protocol launches",
			"Major update to lending protocol security framework",
			"Increasing institutional adoption of DeFi yield strategies",
		},
	}
}

// Fallback returns the deterministic neutral snapshot served when no
// generator is available.
func Fallback(now time.Time) MarketInsights {
	return MarketInsights{
		Sentiment: Neutral,
		Trends: []string{
			"Layer 2 solutions showing strong growth",
			"DeFi TVL stabilizing after recent market movements",
			"Institutional interest in crypto continues to grow",
		},
		TopPerformers: []Performer{
			{Token: "ETH", Change24h: 2.5},
			{Token: "ARB", Change24h: 3.8},
			{Token: "OP", Change24h: 1.9},
		},
		DeFiInsights: []string{
			"Lending protocols seeing increased utilization",
			"DEX volumes remain strong despite overall market conditions",
			"New yield optimization strategies emerging on L2 networks",
		},
		UpcomingEvents: []Event{
			{Event: "ETH Protocol Upgrade", Date: isoDate(now, 7), PotentialImpact: "medium"},
			{Event: "Major DeFi Conference", Date: isoDate(now, 14), PotentialImpact: "low"},
		},
	}
}

// sample returns n distinct entries from pool in shuffled order.
func (g *Generator) sample(pool []string, n int) []string {
	idx := g.rng.Perm(len(pool))
	if n > len(pool) {
		n = len(pool)
	}
	out := make([]string, 0, n)
	for _, i := range idx[:n] {
		out = append(out, pool[i])
	}
	return out
}

func isoDate(t time.Time, daysAhead int) string {
	return t.AddDate(0, 0, daysAhead).Format("2006-01-02")
}
