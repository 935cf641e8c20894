// Package analytics holds the pure portfolio calculators: impermanent-loss
// projection, rebalancing planning and portfolio summarization. Every
// function is deterministic given its inputs and performs no I/O.
package analytics

import (
	"math"

	"github.com/yieldscope/portfolio-go-sdk/core"
)

// Recommended actions attached to an impermanent-loss projection.
const (
	ActionHold     = "Hold current position"
	ActionWithdraw = "Consider withdrawing liquidity"
)

// Risk tier boundaries on |loss%|, closed at both thresholds.
const (
	lossMediumThreshold = 10.0
	lossHighThreshold   = 20.0
)

// ProjectImpermanentLoss computes the standard constant-product AMM loss
// model for a two-token position under the given current prices.
//
// Pool value is sqrt(p0*p1) * liquidity; hold value assumes the liquidity
// was split evenly across both tokens at entry. The loss percentage compares
// current pool value against current hold value, normalized by the initial
// hold value.
//
// A position with zero liquidity (or zero initial hold value) yields an
// all-zero projection at Low risk rather than a divide-by-zero; negative
// prices or amounts are rejected with a ValidationError. Outputs never
// contain NaN or Inf.
func ProjectImpermanentLoss(pos core.LiquidityPosition, currentPrice0, currentPrice1 float64) (core.ImpermanentLossProjection, error) {
	var zero core.ImpermanentLossProjection

	if pos.LiquidityAmount < 0 {
		return zero, core.Validationf("liquidity_amount", "must be non-negative, got %v", pos.LiquidityAmount)
	}
	for _, p := range []struct {
		name  string
		value float64
	}{
		{"initial_price0", pos.InitialPrice0},
		{"initial_price1", pos.InitialPrice1},
		{"current_price0", currentPrice0},
		{"current_price1", currentPrice1},
	} {
		if p.value < 0 || math.IsNaN(p.value) || math.IsInf(p.value, 0) {
			return zero, core.Validationf(p.name, "must be a non-negative price, got %v", p.value)
		}
	}

	currentPoolValue := math.Sqrt(currentPrice0*currentPrice1) * pos.LiquidityAmount
	currentHoldValue := pos.LiquidityAmount/2*currentPrice0 + pos.LiquidityAmount/2*currentPrice1
	initialHoldValue := pos.LiquidityAmount/2*pos.InitialPrice0 + pos.LiquidityAmount/2*pos.InitialPrice1

	if pos.LiquidityAmount == 0 || initialHoldValue == 0 {
		return core.ImpermanentLossProjection{
			Risk:              core.RiskLow,
			RecommendedAction: ActionHold,
		}, nil
	}

	lossPercent := (currentPoolValue - currentHoldValue) / initialHoldValue * 100

	risk := core.RiskLow
	switch {
	case math.Abs(lossPercent) > lossHighThreshold:
		risk = core.RiskHigh
	case math.Abs(lossPercent) > lossMediumThreshold:
		risk = core.RiskMedium
	}

	action := ActionHold
	if risk == core.RiskHigh {
		action = ActionWithdraw
	}

	return core.ImpermanentLossProjection{
		CurrentValue:      currentPoolValue,
		HoldValue:         currentHoldValue,
		LossPercent:       lossPercent,
		Risk:              risk,
		RecommendedAction: action,
	}, nil
}
