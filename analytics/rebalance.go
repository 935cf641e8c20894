package analytics

import (
	"github.com/google/uuid"

	"github.com/yieldscope/portfolio-go-sdk/core"
)

// Direction says which way an adjustment moves a holding.
type Direction string

const (
	Buy  Direction = "buy"
	Sell Direction = "sell"
)

// PlannerParams holds the tunable coefficients and allocation tables used by
// the rebalancing planner. Different parameter sets can exist for different
// fee or tax regimes.
type PlannerParams struct {
	// FeeRate is the flat per-asset transaction fee rate (e.g. 0.001 for 0.1%).
	FeeRate float64 `json:"fee_rate" yaml:"fee_rate"`
	// AssumedGainRate is the fraction of current value assumed to be an
	// unrealized gain when estimating tax exposure.
	AssumedGainRate float64 `json:"assumed_gain_rate" yaml:"assumed_gain_rate"`
	// CapitalGainsTaxRate is the tax rate applied to the assumed gain.
	CapitalGainsTaxRate float64 `json:"capital_gains_tax_rate" yaml:"capital_gains_tax_rate"`
	// Allocations maps a risk tolerance to target percentages per token.
	// Tokens absent from a tier's table are left out of the adjustment list.
	Allocations map[core.RiskTolerance]map[string]float64 `json:"allocations" yaml:"allocations"`
}

// DefaultPlannerParams returns the stock parameter set: 0.1% per-asset fee,
// 10% assumed gain taxed at 15%, and BTC/ETH/USDC targets per tier.
func DefaultPlannerParams() PlannerParams {
	return PlannerParams{
		FeeRate:             0.001,
		AssumedGainRate:     0.10,
		CapitalGainsTaxRate: 0.15,
		Allocations: map[core.RiskTolerance]map[string]float64{
			core.ToleranceLow:    {"BTC": 40, "ETH": 30, "USDC": 30},
			core.ToleranceMedium: {"BTC": 30, "ETH": 40, "USDC": 30},
			core.ToleranceHigh:   {"BTC": 20, "ETH": 50, "USDC": 30},
		},
	}
}

// AllocationTarget is the ideal percentage for one token, in [0,100].
// Percentages across a plan are not required to sum to 100.
type AllocationTarget struct {
	Token           string  `json:"token"`
	IdealAllocation float64 `json:"ideal_allocation"`
}

// Adjustment is one buy or sell needed to move a holding toward its target.
type Adjustment struct {
	Token            string    `json:"token"`
	CurrentAmount    float64   `json:"current_amount"`
	CurrentValue     float64   `json:"current_value"`
	RecommendedValue float64   `json:"recommended_value"`
	AmountToAdjust   float64   `json:"amount_to_adjust"` // USD, always >= 0
	Direction        Direction `json:"direction"`
}

// RebalancePlan is the full output of one planning run. Plans are ephemeral:
// recomputed per request, never persisted by the library.
type RebalancePlan struct {
	ID                    string                `json:"id"`
	CurrentPortfolio      []core.PortfolioAsset `json:"current_portfolio"`
	RecommendedAllocation []AllocationTarget    `json:"recommended_allocation"`
	Adjustments           []Adjustment          `json:"adjustments"`
	TotalValue            float64               `json:"total_value"`
	// RebalancingCost is the portfolio-level estimate:
	// totalValue * feeRate * assetCount. It is deliberately independent of
	// the individual adjustment amounts.
	RebalancingCost float64 `json:"rebalancing_cost"`
	// TradeFeeEstimate is the per-trade alternative:
	// sum(amountToAdjust) * feeRate. Exposed alongside so callers can
	// compare both fee models.
	TradeFeeEstimate         float64 `json:"trade_fee_estimate"`
	PotentialTaxImplications float64 `json:"potential_tax_implications"`
}

// Planner computes rebalancing plans from a parameter set.
type Planner struct {
	params PlannerParams
}

// NewPlanner creates a planner. Zero-value params fall back to the defaults
// field by field, so a caller can override just the allocation tables.
func NewPlanner(params PlannerParams) *Planner {
	defaults := DefaultPlannerParams()
	if params.FeeRate == 0 {
		params.FeeRate = defaults.FeeRate
	}
	if params.AssumedGainRate == 0 {
		params.AssumedGainRate = defaults.AssumedGainRate
	}
	if params.CapitalGainsTaxRate == 0 {
		params.CapitalGainsTaxRate = defaults.CapitalGainsTaxRate
	}
	if params.Allocations == nil {
		params.Allocations = defaults.Allocations
	}
	return &Planner{params: params}
}

// Plan computes the target allocation, the buy/sell adjustments to reach it,
// and the cost and tax estimates for the given portfolio.
//
// Adjustments preserve the input portfolio's order. Assets without an entry
// in the tier's allocation table appear in RecommendedAllocation with an
// ideal of 0 but are excluded from the adjustment list; that is not an
// error. An empty portfolio or a negative amount/price is rejected with a
// ValidationError.
func (p *Planner) Plan(portfolio []core.PortfolioAsset, tolerance core.RiskTolerance) (*RebalancePlan, error) {
	if len(portfolio) == 0 {
		return nil, core.Validationf("portfolio", "must not be empty")
	}
	table, ok := p.params.Allocations[tolerance]
	if !ok {
		return nil, core.Validationf("risk_tolerance", "unknown tier %q", tolerance)
	}
	for _, asset := range portfolio {
		if asset.Amount < 0 {
			return nil, core.Validationf("amount", "%s amount must be non-negative, got %v", asset.Token, asset.Amount)
		}
		if asset.PriceUSD < 0 {
			return nil, core.Validationf("price_usd", "%s price must be non-negative, got %v", asset.Token, asset.PriceUSD)
		}
	}

	var totalValue float64
	for _, asset := range portfolio {
		totalValue += asset.Value()
	}

	targets := make([]AllocationTarget, 0, len(portfolio))
	adjustments := make([]Adjustment, 0, len(portfolio))
	var tradeFees, tax float64

	for _, asset := range portfolio {
		ideal, matched := table[asset.Token]
		targets = append(targets, AllocationTarget{Token: asset.Token, IdealAllocation: ideal})

		currentValue := asset.Value()
		tax += max0(currentValue*p.params.AssumedGainRate) * p.params.CapitalGainsTaxRate

		if !matched {
			continue
		}
		recommendedValue := totalValue * ideal / 100
		delta := recommendedValue - currentValue
		direction := Sell
		if delta > 0 {
			direction = Buy
		}
		amount := delta
		if amount < 0 {
			amount = -amount
		}
		tradeFees += amount * p.params.FeeRate
		adjustments = append(adjustments, Adjustment{
			Token:            asset.Token,
			CurrentAmount:    asset.Amount,
			CurrentValue:     currentValue,
			RecommendedValue: recommendedValue,
			AmountToAdjust:   amount,
			Direction:        direction,
		})
	}

	return &RebalancePlan{
		ID:                       uuid.NewString(),
		CurrentPortfolio:         portfolio,
		RecommendedAllocation:    targets,
		Adjustments:              adjustments,
		TotalValue:               totalValue,
		RebalancingCost:          totalValue * p.params.FeeRate * float64(len(portfolio)),
		TradeFeeEstimate:         tradeFees,
		PotentialTaxImplications: tax,
	}, nil
}

func max0(x float64) float64 {
	if x < 0 {
		return 0
	}
	return x
}
