package returns

import (
	"math"
	"testing"
)

func TestSolveIRRFiveYearHorizon(t *testing.T) {
	// 161.05 ~= 100 * 1.1^5, so the rate is 10%.
	cashflows := []float64{-100, 0, 0, 0, 0, 161.05}

	irr := SolveIRR(cashflows)
	if irr == nil {
		t.Fatal("Expected converged IRR, got undefined")
	}
	if math.Abs(*irr-0.10) > 1e-4 {
		t.Errorf("Expected IRR near 0.10, got %f", *irr)
	}

	// The solved rate zeroes the NPV
	if npv := NPV(cashflows, *irr); math.Abs(npv) > 1e-6 {
		t.Errorf("NPV at solved rate should be ~0, got %g", npv)
	}
}

func TestSolveIRRImmediateConvergence(t *testing.T) {
	// NPV(-100, 110) at the 0.10 starting guess is already zero.
	irr := SolveIRR([]float64{-100, 110})
	if irr == nil {
		t.Fatal("Expected converged IRR, got undefined")
	}
	if math.Abs(*irr-0.10) > 1e-6 {
		t.Errorf("Expected IRR 0.10, got %f", *irr)
	}
}

func TestSolveIRRUndefined(t *testing.T) {
	cases := []struct {
		name      string
		cashflows []float64
	}{
		{"all positive", []float64{10, 20, 30}},
		{"all negative", []float64{-10, -20, -30}},
		{"all zero", []float64{0, 0, 0}},
		{"empty", nil},
	}
	for _, c := range cases {
		if irr := SolveIRR(c.cashflows); irr != nil {
			t.Errorf("%s: expected undefined IRR, got %f", c.name, *irr)
		}
	}
}

func TestSolveIRRNegativeRate(t *testing.T) {
	// Losing money: 100 in, 80 back one period later => IRR = -20%.
	irr := SolveIRR([]float64{-100, 80})
	if irr == nil {
		t.Fatal("Expected converged IRR, got undefined")
	}
	if math.Abs(*irr+0.20) > 1e-4 {
		t.Errorf("Expected IRR near -0.20, got %f", *irr)
	}
}

func TestEquityMultiple(t *testing.T) {
	if m := EquityMultiple(100, 130); math.Abs(m-1.30) > 1e-9 {
		t.Errorf("Expected multiple 1.30, got %f", m)
	}

	// Degenerate zero-contribution case must not divide by zero.
	if m := EquityMultiple(0, 50); m != 0 {
		t.Errorf("Expected 0 for zero contributions, got %f", m)
	}
}
