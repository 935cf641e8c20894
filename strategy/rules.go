package strategy

import (
	"context"
	"math/rand"
	"strings"
	"time"

	"github.com/yieldscope/portfolio-go-sdk/core"
)

// RuleGenerator builds strategies from the holdings themselves: which asset
// classes are present selects the rules, the risk tolerance selects the rule
// set. APY and confidence jitter comes from an injected random source so
// tests can pin exact values.
type RuleGenerator struct {
	rng *rand.Rand
}

// NewRuleGenerator creates a rule generator with a time-seeded random source.
func NewRuleGenerator() *RuleGenerator {
	return NewRuleGeneratorWithRand(rand.New(rand.NewSource(time.Now().UnixNano())))
}

// NewRuleGeneratorWithRand creates a rule generator over the given source.
func NewRuleGeneratorWithRand(rng *rand.Rand) *RuleGenerator {
	return &RuleGenerator{rng: rng}
}

// Generate runs the rule engine. It always returns 3 to 5 strategies and
// never errors: rule misses are made up by goal-keyword fill and then by
// deterministic padding from the fallback list.
func (g *RuleGenerator) Generate(_ context.Context, req core.StrategyRequest) ([]core.GeneratedStrategy, error) {
	var hasStables, hasETH, hasBTC bool
	chainSet := make(map[string]bool)
	var chains []string
	for _, h := range req.Portfolio {
		switch strings.ToUpper(strings.TrimSpace(h.Token)) {
		case "USDC", "USDT", "DAI":
			hasStables = true
		case "ETH", "WETH":
			hasETH = true
		case "BTC", "WBTC":
			hasBTC = true
		}
		if h.Chain != "" && !chainSet[h.Chain] {
			chainSet[h.Chain] = true
			chains = append(chains, h.Chain)
		}
	}
	firstChain := func(fallback string) string {
		if len(chains) > 0 {
			return chains[0]
		}
		return fallback
	}
	preferChain := func(preferred, fallback string) string {
		if chainSet[preferred] {
			return preferred
		}
		return fallback
	}

	var strategies []core.GeneratedStrategy

	switch req.RiskTolerance {
	case core.ToleranceLow:
		if hasStables {
			strategies = append(strategies, core.GeneratedStrategy{
				Name:         "Aave V3 Stablecoin Lending",
				Platform:     "Aave",
				Chain:        firstChain("Ethereum"),
				APY:          4.5 + g.rng.Float64()*1.5,
				RiskLevel:    core.RiskLow,
				Description:  "Lend stablecoins on Aave V3 for consistent yield with minimal risk. Automated compounding maximizes returns.",
				AIConfidence: 91 + g.rng.Intn(4),
			})
		}
		if hasETH {
			strategies = append(strategies, core.GeneratedStrategy{
				Name:         "Lido ETH Staking + Convex",
				Platform:     "Lido + Convex",
				Chain:        "Ethereum",
				APY:          3.8 + g.rng.Float64()*1.2,
				RiskLevel:    core.RiskLow,
				Description:  "Stake ETH with Lido to receive stETH, then provide liquidity in Curve stETH pool and stake in Convex for boosted rewards.",
				AIConfidence: 88 + g.rng.Intn(4),
			})
		}
		strategies = append(strategies, core.GeneratedStrategy{
			Name:         "Curve 3Pool Yield Optimizer",
			Platform:     "Curve Finance",
			Chain:        "Ethereum",
			APY:          4.2 + g.rng.Float64()*2.5,
			RiskLevel:    core.RiskLow,
			Description:  "Provide liquidity to Curve's 3pool (USDC/USDT/DAI) with auto-compounding rewards for stable, low-risk yield.",
			AIConfidence: 90 + g.rng.Intn(5),
		})

	case core.ToleranceMedium:
		if hasETH {
			strategies = append(strategies, core.GeneratedStrategy{
				Name:         "Uniswap V3 ETH/USDC Concentrated LP",
				Platform:     "Uniswap",
				Chain:        preferChain("Optimism", "Ethereum"),
				APY:          8.5 + g.rng.Float64()*4.0,
				RiskLevel:    core.RiskMedium,
				Description:  "Provide concentrated liquidity in ETH/USDC pool on Uniswap V3 with dynamic range adjustment based on volatility patterns.",
				AIConfidence: 84 + g.rng.Intn(6),
			})
		}
		if hasBTC {
			strategies = append(strategies, core.GeneratedStrategy{
				Name:         "Balancer BTC/ETH Weighted Pool",
				Platform:     "Balancer",
				Chain:        preferChain("Arbitrum", "Ethereum"),
				APY:          7.8 + g.rng.Float64()*3.5,
				RiskLevel:    core.RiskMedium,
				Description:  "Provide liquidity to Balancer's weighted BTC/ETH pool with auto-harvesting and compounding of BAL rewards.",
				AIConfidence: 82 + g.rng.Intn(5),
			})
		}
		strategies = append(strategies, core.GeneratedStrategy{
			Name:         "Stargate Cross-Chain Stablecoin Bridge",
			Platform:     "Stargate Finance",
			Chain:        firstChain("Arbitrum"),
			APY:          9.2 + g.rng.Float64()*3.0,
			RiskLevel:    core.RiskMedium,
			Description:  "Provide liquidity to Stargate's cross-chain bridges to earn fees from cross-chain transfers and STG farming rewards.",
			AIConfidence: 80 + g.rng.Intn(7),
		})

	case core.ToleranceHigh:
		strategies = append(strategies, core.GeneratedStrategy{
			Name:         "GMX GLP Leveraged Yield",
			Platform:     "GMX",
			Chain:        "Arbitrum",
			APY:          15.5 + g.rng.Float64()*8.0,
			RiskLevel:    core.RiskHigh,
			Description:  "Provide liquidity to GMX's GLP, with leveraged exposure to trading fees and esGMX rewards, optimized for maximum yield.",
			AIConfidence: 78 + g.rng.Intn(8),
		})
		if hasETH {
			strategies = append(strategies, core.GeneratedStrategy{
				Name:         "Lyra Options Writing Strategy",
				Platform:     "Lyra",
				Chain:        "Optimism",
				APY:          18.2 + g.rng.Float64()*10.0,
				RiskLevel:    core.RiskHigh,
				Description:  "Automated options writing strategy on Lyra, selling covered calls on ETH with dynamic strike selection based on volatility.",
				AIConfidence: 75 + g.rng.Intn(7),
			})
		}
		strategies = append(strategies, core.GeneratedStrategy{
			Name:         "Pendle Yield Trading Strategy",
			Platform:     "Pendle",
			Chain:        preferChain("Arbitrum", "Ethereum"),
			APY:          20.5 + g.rng.Float64()*12.0,
			RiskLevel:    core.RiskHigh,
			Description:  "Trade yield tokens on Pendle, capturing yield curve inefficiencies with algorithmic position management.",
			AIConfidence: 72 + g.rng.Intn(9),
		})
	}

	// Goal-keyword fill when the rules alone came up short.
	if len(strategies) < MinStrategies {
		goal := strings.ToLower(req.InvestmentGoal)
		switch {
		case strings.Contains(goal, "passive") || strings.Contains(goal, "income"):
			level := core.RiskMedium
			if req.RiskTolerance == core.ToleranceLow {
				level = core.RiskLow
			}
			strategies = append(strategies, core.GeneratedStrategy{
				Name:         "Yearn Finance Multi-Strategy Vault",
				Platform:     "Yearn Finance",
				Chain:        "Ethereum",
				APY:          6.5 + g.rng.Float64()*3.0,
				RiskLevel:    level,
				Description:  "Deposit into Yearn's automated yield-optimizing vaults that constantly rebalance between multiple strategies.",
				AIConfidence: 86 + g.rng.Intn(5),
			})
		case strings.Contains(goal, "growth") || strings.Contains(goal, "aggressive"):
			strategies = append(strategies, core.GeneratedStrategy{
				Name:         "Perpetual Protocol Basis Trading",
				Platform:     "Perpetual Protocol",
				Chain:        "Arbitrum",
				APY:          14.0 + g.rng.Float64()*8.0,
				RiskLevel:    core.RiskHigh,
				Description:  "Algorithmic basis trading between spot and perpetual markets, capturing funding rates with controlled risk.",
				AIConfidence: 74 + g.rng.Intn(8),
			})
		}
	}

	// Deterministic padding from the fallback list, then the hard cap.
	fallback := FallbackStrategies()
	for len(strategies) < MinStrategies {
		strategies = append(strategies, fallback[len(strategies)%len(fallback)])
	}
	if len(strategies) > MaxStrategies {
		strategies = strategies[:MaxStrategies]
	}
	return strategies, nil
}

// ScoreConfidence computes a confidence score for a strategy of the given
// risk level: base 85, +7 when the level matches the user's tolerance, plus
// jitter in [-5,+4], clamped to [70,95].
func ScoreConfidence(level core.RiskLevel, tolerance core.RiskTolerance, rng *rand.Rand) int {
	confidence := 85
	if tolerance.Level() == level {
		confidence += 7
	}
	confidence += rng.Intn(10) - 5
	if confidence < 70 {
		confidence = 70
	}
	if confidence > 95 {
		confidence = 95
	}
	return confidence
}
