package insights

import (
	"math/rand"
	"reflect"
	"testing"
	"time"
)

var fixedNow = func() time.Time {
	return time.Date(2024, 3, 1, 12, 0, 0, 0, time.UTC)
}

func TestGenerator_Shape(t *testing.T) {
	g := NewGeneratorWith(rand.New(rand.NewSource(1)), fixedNow)
	m := g.Market()

	if m.Sentiment != Bullish && m.Sentiment != Bearish && m.Sentiment != Neutral {
		t.Errorf("sentiment = %q", m.Sentiment)
	}
	if len(m.Trends) != 3 {
		t.Errorf("trends = %d, want 3", len(m.Trends))
	}
	if len(m.TopPerformers) != 3 {
		t.Errorf("performers = %d, want 3", len(m.TopPerformers))
	}
	if len(m.DeFiInsights) != 3 {
		t.Errorf("defi insights = %d, want 3", len(m.DeFiInsights))
	}

	// Trend lines must come from the pool matching the sentiment.
	pool := map[string]bool{}
	for _, s := range trendPools[m.Sentiment] {
		pool[s] = true
	}
	for _, trend := range m.Trends {
		if !pool[trend] {
			t.Errorf("trend %q not in the %s pool", trend, m.Sentiment)
		}
	}
}

func TestGenerator_PerformersDistinctAndSorted(t *testing.T) {
	for seed := int64(0); seed < 20; seed++ {
		g := NewGeneratorWith(rand.New(rand.NewSource(seed)), fixedNow)
		m := g.Market()

		seen := map[string]bool{}
		for _, p := range m.TopPerformers {
			if seen[p.Token] {
				t.Fatalf("seed %d: duplicate performer %s", seed, p.Token)
			}
			seen[p.Token] = true
		}
		for i := 1; i < len(m.TopPerformers); i++ {
			if m.TopPerformers[i-1].Change24h < m.TopPerformers[i].Change24h {
				t.Fatalf("seed %d: performers not sorted: %+v", seed, m.TopPerformers)
			}
		}
	}
}

func TestGenerator_ChangeBoundsBySentiment(t *testing.T) {
	bounds := map[Sentiment][2]float64{
		Bullish: {1, 9},
		Bearish: {-5, 2},
		Neutral: {-2, 2},
	}
	for seed := int64(0); seed < 50; seed++ {
		g := NewGeneratorWith(rand.New(rand.NewSource(seed)), fixedNow)
		m := g.Market()
		b := bounds[m.Sentiment]
		for _, p := range m.TopPerformers {
			if p.Change24h < b[0] || p.Change24h > b[1] {
				t.Errorf("seed %d: %s change %v outside %s bounds %v", seed, p.Token, p.Change24h, m.Sentiment, b)
			}
		}
	}
}

func TestGenerator_EventDatesFromClock(t *testing.T) {
	g := NewGeneratorWith(rand.New(rand.NewSource(4)), fixedNow)
	m := g.Market()
	wantDates := []string{"2024-03-08", "2024-03-15", "2024-03-11"}
	if len(m.UpcomingEvents) != 3 {
		t.Fatalf("events = %d, want 3", len(m.UpcomingEvents))
	}
	for i, e := range m.UpcomingEvents {
		if e.Date != wantDates[i] {
			t.Errorf("event[%d] date = %s, want %s", i, e.Date, wantDates[i])
		}
	}
}

func TestGenerator_SameSeedSameOutput(t *testing.T) {
	a := NewGeneratorWith(rand.New(rand.NewSource(99)), fixedNow).Market()
	b := NewGeneratorWith(rand.New(rand.NewSource(99)), fixedNow).Market()
	if !reflect.DeepEqual(a, b) {
		t.Error("same seed produced different insights")
	}
}

func TestFallback(t *testing.T) {
	m := Fallback(fixedNow())
	if m.Sentiment != Neutral {
		t.Errorf("sentiment = %s, want neutral", m.Sentiment)
	}
	if len(m.Trends) != 3 || len(m.TopPerformers) != 3 || len(m.DeFiInsights) != 3 {
		t.Errorf("fallback shape = %+v", m)
	}
	if m.UpcomingEvents[0].Date != "2024-03-08" {
		t.Errorf("fallback event date = %s", m.UpcomingEvents[0].Date)
	}
}
