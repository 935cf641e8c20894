package core

// Token is an immutable price snapshot for a single asset.
// Symbol is the uppercase canonical form (ETH, WBTC, USDC, ...).
// Snapshots are re-fetched per calculation and never cached by the
// calculators themselves.
type Token struct {
	Symbol   string  `json:"symbol"`
	PriceUSD float64 `json:"price_usd"`
}

// LiquidityPosition describes a two-token liquidity position at entry time.
// InitialPrice0/InitialPrice1 are the USD prices of Token0/Token1 when the
// liquidity was supplied.
type LiquidityPosition struct {
	Token0          Token   `json:"token0"`
	Token1          Token   `json:"token1"`
	LiquidityAmount float64 `json:"liquidity_amount"`
	InitialPrice0   float64 `json:"initial_price0"`
	InitialPrice1   float64 `json:"initial_price1"`
}

// ImpermanentLossProjection is the derived view of a LiquidityPosition under
// current prices. It has no lifecycle of its own and is recomputed on demand.
type ImpermanentLossProjection struct {
	CurrentValue      float64   `json:"current_value"`
	HoldValue         float64   `json:"hold_value"`
	LossPercent       float64   `json:"impermanent_loss_percentage"`
	Risk              RiskLevel `json:"potential_risk"`
	RecommendedAction string    `json:"recommended_action"`
}

// PortfolioAsset is one holding in a portfolio with its resolved per-unit
// USD price. PriceUSD is always a price, never a percentage share.
type PortfolioAsset struct {
	Token    string  `json:"token"`
	Amount   float64 `json:"amount"`
	PriceUSD float64 `json:"price_usd"`
}

// Value returns the USD value of the holding.
func (a PortfolioAsset) Value() float64 {
	return a.Amount * a.PriceUSD
}

// HoldingItem is a raw user holding before price resolution.
type HoldingItem struct {
	Token  string  `json:"token"`
	Amount float64 `json:"amount"`
	Chain  string  `json:"chain"`
}

// StrategyRequest is the input to strategy recommendation.
type StrategyRequest struct {
	Portfolio      []HoldingItem `json:"portfolio"`
	RiskTolerance  RiskTolerance `json:"risk_tolerance"`
	InvestmentGoal string        `json:"investment_goal"`
}

// GeneratedStrategy is one recommended yield strategy. Result lists are
// ranked: deterministic rule matches come first, goal-based fill next,
// fallback padding last.
type GeneratedStrategy struct {
	ID                    string    `json:"id"`
	Name                  string    `json:"name"`
	Platform              string    `json:"platform"`
	Chain                 string    `json:"chain"`
	APY                   float64   `json:"apy"`
	RiskLevel             RiskLevel `json:"risk_level"`
	Description           string    `json:"description"`
	AIConfidence          int       `json:"ai_confidence"`
	PotentialYield        float64   `json:"potential_yield,omitempty"`
	RecommendedAllocation float64   `json:"recommended_allocation,omitempty"`
}
