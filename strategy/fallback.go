package strategy

import "github.com/yieldscope/portfolio-go-sdk/core"

// FallbackStrategies returns the fixed list served whenever generation
// fails, and used to pad short results. The slice is freshly allocated on
// every call so callers may mutate it.
func FallbackStrategies() []core.GeneratedStrategy {
	return []core.GeneratedStrategy{
		{
			Name:         "Curve 3Pool Yield Optimizer",
			Platform:     "Curve Finance",
			Chain:        "Ethereum",
			APY:          6.45,
			RiskLevel:    core.RiskLow,
			Description:  "AI-driven liquidity provision strategy maximizing stable coin yields with minimal volatility.",
			AIConfidence: 92,
		},
		{
			Name:         "Aave V3 USDC Lending",
			Platform:     "Aave",
			Chain:        "Arbitrum",
			APY:          4.87,
			RiskLevel:    core.RiskLow,
			Description:  "Intelligent lending strategy targeting optimal USDC lending rates across multiple markets.",
			AIConfidence: 88,
		},
		{
			Name:         "Uniswap V3 ETH/USDC Dynamic",
			Platform:     "Uniswap",
			Chain:        "Optimism",
			APY:          12.34,
			RiskLevel:    core.RiskMedium,
			Description:  "Advanced AI-powered concentrated liquidity strategy adapting to market volatility.",
			AIConfidence: 85,
		},
		{
			Name:         "GMX Perpetual Hedging",
			Platform:     "GMX",
			Chain:        "Arbitrum",
			APY:          18.65,
			RiskLevel:    core.RiskHigh,
			Description:  "Sophisticated AI-managed perpetual trading strategy with dynamic risk management.",
			AIConfidence: 79,
		},
		{
			Name:         "Velocore BTC/ETH LSD LP",
			Platform:     "Velocore",
			Chain:        "Linea",
			APY:          15.32,
			RiskLevel:    core.RiskMedium,
			Description:  "Optimized LP strategy for liquid staking derivatives with auto-compounding.",
			AIConfidence: 82,
		},
	}
}
