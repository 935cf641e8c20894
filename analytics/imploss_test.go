package analytics

import (
	"math"
	"testing"

	"github.com/yieldscope/portfolio-go-sdk/core"
)

func position(liquidity, p0, p1 float64) core.LiquidityPosition {
	return core.LiquidityPosition{
		Token0:          core.Token{Symbol: "ETH"},
		Token1:          core.Token{Symbol: "USDC"},
		LiquidityAmount: liquidity,
		InitialPrice0:   p0,
		InitialPrice1:   p1,
	}
}

func TestProjectImpermanentLoss_NoPriceMovement(t *testing.T) {
	proj, err := ProjectImpermanentLoss(position(10, 2000, 1), 2000, 1)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if proj.LossPercent != 0 {
		t.Errorf("loss = %v, want 0", proj.LossPercent)
	}
	if proj.Risk != core.RiskLow {
		t.Errorf("risk = %s, want Low", proj.Risk)
	}
	if proj.RecommendedAction != ActionHold {
		t.Errorf("action = %q, want %q", proj.RecommendedAction, ActionHold)
	}
}

func TestProjectImpermanentLoss_PoolValueFormula(t *testing.T) {
	cases := []struct {
		liquidity, p0, p1 float64
	}{
		{10, 2200, 1},
		{1, 35000, 2000},
		{0.5, 1.2, 2.5},
		{1000, 80, 15},
	}
	for _, tc := range cases {
		proj, err := ProjectImpermanentLoss(position(tc.liquidity, 100, 100), tc.p0, tc.p1)
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		want := math.Sqrt(tc.p0*tc.p1) * tc.liquidity
		if rel := math.Abs(proj.CurrentValue-want) / want; rel > 1e-9 {
			t.Errorf("pool value for %+v = %v, want %v (rel err %v)", tc, proj.CurrentValue, want, rel)
		}
	}
}

// Risk tiers are closed at 10 and 20 on |loss%|. The fixtures pin the loss
// percentage exactly: liquidity 2 at equal initial prices P gives
// initialHoldValue 2P, and current prices (a,b) with perfect-square product
// make sqrt exact, so loss% = -(sqrt(a)-sqrt(b))^2 * 100 / 2P.
func TestProjectImpermanentLoss_RiskTierBoundaries(t *testing.T) {
	cases := []struct {
		name         string
		initial      float64 // both initial prices
		cur0, cur1   float64
		wantLoss     float64
		wantRisk     core.RiskLevel
		wantWithdraw bool
	}{
		// (sqrt(400)-sqrt(100))^2 = 100; initialHold 1000 => exactly -10%.
		{"boundary 10 is Low", 500, 400, 100, -10, core.RiskLow, false},
		// slightly past 10%.
		{"just over 10 is Medium", 499, 400, 100, -100.0 / 998 * 100, core.RiskMedium, false},
		// initialHold 500 => exactly -20%.
		{"boundary 20 is Medium", 250, 400, 100, -20, core.RiskMedium, false},
		// (sqrt(441)-sqrt(100))^2 = 121; initialHold 500 => -24.2%.
		{"over 20 is High", 250, 441, 100, -24.2, core.RiskHigh, true},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			proj, err := ProjectImpermanentLoss(position(2, tc.initial, tc.initial), tc.cur0, tc.cur1)
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if math.Abs(proj.LossPercent-tc.wantLoss) > 1e-9 {
				t.Errorf("loss = %v, want %v", proj.LossPercent, tc.wantLoss)
			}
			if proj.Risk != tc.wantRisk {
				t.Errorf("risk = %s, want %s", proj.Risk, tc.wantRisk)
			}
			wantAction := ActionHold
			if tc.wantWithdraw {
				wantAction = ActionWithdraw
			}
			if proj.RecommendedAction != wantAction {
				t.Errorf("action = %q, want %q", proj.RecommendedAction, wantAction)
			}
		})
	}
}

// The ETH/USDC scenario: entry at $2000/$1 with 10 units of liquidity, ETH
// moves to $2200. Pool value collapses against holding, deeply negative loss.
func TestProjectImpermanentLoss_ETHUSDCScenario(t *testing.T) {
	proj, err := ProjectImpermanentLoss(position(10, 2000, 1), 2200, 1)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	wantPool := math.Sqrt(2200*1) * 10 // ~469.04
	if math.Abs(proj.CurrentValue-wantPool)/wantPool > 1e-9 {
		t.Errorf("pool value = %v, want %v", proj.CurrentValue, wantPool)
	}
	wantHold := 5*2200.0 + 5*1.0
	if proj.HoldValue != wantHold {
		t.Errorf("hold value = %v, want %v", proj.HoldValue, wantHold)
	}
	// initialHoldValue = 5*2000 + 5*1 = 10005
	wantLoss := (wantPool - wantHold) / 10005 * 100
	if math.Abs(proj.LossPercent-wantLoss) > 1e-9 {
		t.Errorf("loss = %v, want %v", proj.LossPercent, wantLoss)
	}
	if proj.LossPercent > -20 {
		t.Errorf("loss = %v, expected deeply negative", proj.LossPercent)
	}
	if proj.Risk != core.RiskHigh {
		t.Errorf("risk = %s, want High", proj.Risk)
	}
	if proj.RecommendedAction != ActionWithdraw {
		t.Errorf("action = %q, want %q", proj.RecommendedAction, ActionWithdraw)
	}
}

func TestProjectImpermanentLoss_ZeroLiquidity(t *testing.T) {
	for _, liquidity := range []float64{0} {
		proj, err := ProjectImpermanentLoss(position(liquidity, 2000, 1), 2200, 1)
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if proj.CurrentValue != 0 || proj.HoldValue != 0 || proj.LossPercent != 0 {
			t.Errorf("values = %+v, want all zero", proj)
		}
		if proj.Risk != core.RiskLow {
			t.Errorf("risk = %s, want Low", proj.Risk)
		}
	}

	// Zero initial prices make the hold value zero; same policy applies and
	// no NaN or Inf may escape.
	proj, err := ProjectImpermanentLoss(position(10, 0, 0), 2200, 1)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if proj.LossPercent != 0 || proj.Risk != core.RiskLow {
		t.Errorf("zero-hold projection = %+v, want zero loss at Low", proj)
	}
	for _, v := range []float64{proj.CurrentValue, proj.HoldValue, proj.LossPercent} {
		if math.IsNaN(v) || math.IsInf(v, 0) {
			t.Fatalf("non-finite value in projection: %+v", proj)
		}
	}
}

func TestProjectImpermanentLoss_RejectsNegativeInput(t *testing.T) {
	cases := []struct {
		name       string
		pos        core.LiquidityPosition
		cur0, cur1 float64
	}{
		{"negative liquidity", position(-1, 2000, 1), 2000, 1},
		{"negative initial price", position(10, -2000, 1), 2000, 1},
		{"negative current price", position(10, 2000, 1), -2200, 1},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			_, err := ProjectImpermanentLoss(tc.pos, tc.cur0, tc.cur1)
			if err == nil {
				t.Fatal("expected error, got nil")
			}
			if !core.IsValidation(err) {
				t.Errorf("error %v is not a ValidationError", err)
			}
		})
	}
}
