package analytics

import (
	"strings"
	"testing"

	"github.com/yieldscope/portfolio-go-sdk/core"
)

var summaryPrices = map[string]float64{
	"ETH": 2000, "WBTC": 35000, "USDC": 1, "ARB": 1.2,
}

func TestSummarizePortfolio_ValuesAndShares(t *testing.T) {
	holdings := []core.HoldingItem{
		{Token: "ETH", Amount: 2, Chain: "Ethereum"},    // 4000
		{Token: "USDC", Amount: 1000, Chain: "Arbitrum"}, // 1000
		{Token: "WBTC", Amount: 0.1, Chain: "Ethereum"}, // 3500
	}
	s := SummarizePortfolio(holdings, summaryPrices)

	if s.TotalValue != 8500 {
		t.Errorf("total value = %v, want 8500", s.TotalValue)
	}
	if len(s.MainAssets) != 3 {
		t.Fatalf("main assets = %d, want 3", len(s.MainAssets))
	}
	if s.MainAssets[0].Token != "ETH" || s.MainAssets[0].Percentage != 47 {
		t.Errorf("top asset = %+v, want ETH at 47%%", s.MainAssets[0])
	}
	if s.MainAssets[1].Token != "WBTC" {
		t.Errorf("second asset = %s, want WBTC", s.MainAssets[1].Token)
	}

	if len(s.ChainDistribution) != 2 {
		t.Fatalf("chains = %+v, want 2 entries", s.ChainDistribution)
	}
	if s.ChainDistribution[0].Chain != "Ethereum" || s.ChainDistribution[0].Percentage != 88 {
		t.Errorf("chain share = %+v, want Ethereum at 88%%", s.ChainDistribution[0])
	}
}

func TestSummarizePortfolio_RiskAssessment(t *testing.T) {
	cases := []struct {
		name     string
		holdings []core.HoldingItem
		contains string
	}{
		{
			"stables and majors only",
			[]core.HoldingItem{{Token: "USDC", Amount: 1}, {Token: "ETH", Amount: 1}},
			"Low risk",
		},
		{
			"stables, majors and altcoins",
			[]core.HoldingItem{{Token: "USDC", Amount: 1}, {Token: "ETH", Amount: 1}, {Token: "ARB", Amount: 1}},
			"Medium risk",
		},
		{
			"majors without stables",
			[]core.HoldingItem{{Token: "ETH", Amount: 1}, {Token: "WBTC", Amount: 1}},
			"Medium-high risk",
		},
		{
			"altcoins without stables",
			[]core.HoldingItem{{Token: "ARB", Amount: 1}},
			"High risk",
		},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			s := SummarizePortfolio(tc.holdings, summaryPrices)
			if !strings.HasPrefix(s.RiskAssessment, tc.contains) {
				t.Errorf("assessment %q does not start with %q", s.RiskAssessment, tc.contains)
			}
		})
	}
}

func TestSummarizePortfolio_ScoreBoundsAndRecommendations(t *testing.T) {
	// A large, multi-chain, multi-class portfolio must still clamp at 95.
	var holdings []core.HoldingItem
	tokens := []string{"ETH", "WBTC", "USDC", "ARB", "OP", "LINK"}
	chainNames := []string{"Ethereum", "Arbitrum", "Optimism", "Linea"}
	for i, tok := range tokens {
		holdings = append(holdings, core.HoldingItem{Token: tok, Amount: 1, Chain: chainNames[i%len(chainNames)]})
	}
	s := SummarizePortfolio(holdings, summaryPrices)
	if s.DiversificationScore < 30 || s.DiversificationScore > 95 {
		t.Errorf("score = %d, want within [30,95]", s.DiversificationScore)
	}
	if s.DiversificationScore != 95 {
		t.Errorf("score = %d, want clamped to 95", s.DiversificationScore)
	}

	// A single-asset, single-chain portfolio triggers the stablecoin and
	// chain-diversification recommendations.
	s = SummarizePortfolio([]core.HoldingItem{{Token: "ETH", Amount: 1, Chain: "Ethereum"}}, summaryPrices)
	if len(s.Recommendations) == 0 {
		t.Fatal("no recommendations for a concentrated portfolio")
	}
	joined := strings.Join(s.Recommendations, "\n")
	if !strings.Contains(joined, "stablecoins") {
		t.Errorf("recommendations missing stablecoin advice: %q", joined)
	}
}

func TestSummarizePortfolio_MissingPricesDefaultToOne(t *testing.T) {
	s := SummarizePortfolio([]core.HoldingItem{{Token: "MYSTERY", Amount: 250, Chain: "Ethereum"}}, nil)
	if s.TotalValue != 250 {
		t.Errorf("total value = %v, want 250 (price defaulted to 1)", s.TotalValue)
	}
}

func TestSummarizePortfolio_Empty(t *testing.T) {
	s := SummarizePortfolio(nil, summaryPrices)
	if s.TotalValue != 0 || len(s.MainAssets) != 0 {
		t.Errorf("empty summary = %+v, want zero values", s)
	}
	if len(s.Recommendations) == 0 {
		t.Error("empty summary should still carry a recommendation")
	}
}
