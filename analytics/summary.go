package analytics

import (
	"fmt"
	"math"
	"sort"
	"strings"

	"github.com/yieldscope/portfolio-go-sdk/core"
)

// AssetShare is one holding's share of the portfolio value.
type AssetShare struct {
	Token      string `json:"token"`
	Percentage int    `json:"percentage"`
}

// ChainShare is one chain's share of the portfolio value.
type ChainShare struct {
	Chain      string `json:"chain"`
	Percentage int    `json:"percentage"`
}

// PortfolioSummary is a coarse health report over a set of holdings.
type PortfolioSummary struct {
	TotalValue           float64      `json:"total_value"`
	MainAssets           []AssetShare `json:"main_assets"`
	ChainDistribution    []ChainShare `json:"chain_distribution"`
	RiskAssessment       string       `json:"risk_assessment"`
	DiversificationScore int          `json:"diversification_score"`
	Recommendations      []string     `json:"recommendations"`
}

var (
	stablecoins = map[string]bool{"USDC": true, "USDT": true, "DAI": true}
	majors      = map[string]bool{"ETH": true, "WETH": true, "BTC": true, "WBTC": true}
)

// SummarizePortfolio builds a summary from holdings and a symbol->USD price
// map, typically the output of oracle.Prices. Holdings priced at 0 or
// missing from the map are valued at 1 USD per unit so a partial price
// lookup still produces a usable report.
func SummarizePortfolio(holdings []core.HoldingItem, prices map[string]float64) PortfolioSummary {
	if len(holdings) == 0 {
		return PortfolioSummary{
			RiskAssessment:  "Empty portfolio.",
			Recommendations: []string{"Add holdings to receive portfolio analysis"},
		}
	}

	type valued struct {
		token string
		chain string
		value float64
	}
	items := make([]valued, 0, len(holdings))
	var totalValue float64
	for _, h := range holdings {
		sym := strings.ToUpper(strings.TrimSpace(h.Token))
		price := prices[sym]
		if price == 0 {
			price = 1
		}
		v := h.Amount * price
		totalValue += v
		items = append(items, valued{token: sym, chain: h.Chain, value: v})
	}

	// Top assets by value.
	byValue := make([]valued, len(items))
	copy(byValue, items)
	sort.SliceStable(byValue, func(i, j int) bool { return byValue[i].value > byValue[j].value })

	mainAssets := make([]AssetShare, 0, 3)
	for i := 0; i < 3 && i < len(byValue); i++ {
		mainAssets = append(mainAssets, AssetShare{
			Token:      byValue[i].token,
			Percentage: roundShare(byValue[i].value, totalValue),
		})
	}

	// Value distribution across chains, in first-seen order.
	chainValue := make(map[string]float64)
	chainOrder := make([]string, 0, len(items))
	for _, it := range items {
		if _, seen := chainValue[it.chain]; !seen {
			chainOrder = append(chainOrder, it.chain)
		}
		chainValue[it.chain] += it.value
	}
	chains := make([]ChainShare, 0, len(chainOrder))
	for _, chain := range chainOrder {
		chains = append(chains, ChainShare{
			Chain:      chain,
			Percentage: roundShare(chainValue[chain], totalValue),
		})
	}

	var hasStables, hasMajors, hasAlts bool
	for _, it := range items {
		switch {
		case stablecoins[it.token]:
			hasStables = true
		case majors[it.token]:
			hasMajors = true
		default:
			hasAlts = true
		}
	}

	var risk string
	switch {
	case hasStables && hasMajors && !hasAlts:
		risk = "Low risk portfolio with good balance between stablecoins and major cryptocurrencies."
	case hasStables && hasMajors && hasAlts:
		risk = "Medium risk portfolio with a mix of stablecoins, major cryptocurrencies, and some altcoins."
	case !hasStables && hasMajors:
		risk = "Medium-high risk portfolio heavily weighted towards major cryptocurrencies with limited stablecoin exposure."
	case hasAlts && !hasStables:
		risk = "High risk portfolio with significant altcoin exposure and limited stablecoin protection."
	default:
		risk = "Balanced portfolio with moderate risk profile."
	}

	score := 50
	score += minInt(len(holdings)*5, 20)
	score += minInt(len(chains)*7, 20)
	if hasStables {
		score += 5
	}
	if hasMajors {
		score += 5
	}
	if hasAlts {
		score += 5
	}
	if score < 30 {
		score = 30
	}
	if score > 95 {
		score = 95
	}

	var recs []string
	if !hasStables {
		recs = append(recs, "Add stablecoins (USDC, DAI) to reduce portfolio volatility")
	}
	if len(chains) < 3 {
		recs = append(recs, "Diversify across more blockchain networks to reduce chain-specific risks")
	}
	if len(mainAssets) > 0 && mainAssets[0].Percentage > 40 {
		recs = append(recs, fmt.Sprintf("Consider reducing %s position (%d%%) to improve diversification",
			mainAssets[0].Token, mainAssets[0].Percentage))
	}
	if score < 60 {
		recs = append(recs, "Increase overall portfolio diversification by adding more uncorrelated assets")
	}
	if len(recs) < 3 {
		recs = append(recs, "Explore DeFi yield opportunities to grow your holdings while maintaining your risk profile")
	}

	return PortfolioSummary{
		TotalValue:           totalValue,
		MainAssets:           mainAssets,
		ChainDistribution:    chains,
		RiskAssessment:       risk,
		DiversificationScore: score,
		Recommendations:      recs,
	}
}

func roundShare(part, total float64) int {
	if total == 0 {
		return 0
	}
	return int(math.Round(part / total * 100))
}

func minInt(a, b int) int {
	if a < b {
		return a
	}
	return b
}
