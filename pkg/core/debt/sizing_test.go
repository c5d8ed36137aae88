package debt

import (
	"math"
	"testing"
	"time"

	"project_finance/pkg/core/cashflow"
	"project_finance/pkg/core/timeline"
)

func buildStatement(revenueAnnual float64) *cashflow.Statement {
	tl := timeline.Build(time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC))
	return cashflow.BuildStatement(tl, cashflow.Assumptions{
		CapexTotal:              100_000_000,
		ContractedRevenueAnnual: revenueAnnual,
		OpexAnnual:              3_000_000,
		TaxRate:                 0.25,
		TerminalValue:           10_000_000,
	})
}

func baseTerms() Terms {
	return Terms{TargetDSCR: 1.30, TermYears: 18, AnnualRate: 0.055, MaxGearing: 0.70}
}

func TestSizeGearingBound(t *testing.T) {
	// $15M revenue: monthly OCF = 854,166.67, 54 operating months,
	// avg annual OCF = 46,125,000 / 5 = 9,225,000.
	// Coverage capacity ~= (9.225M/1.3/12) * annuity factor(0.055/12, 216)
	// ~= 591,346 * 136.9 ~= $81M, above the 70% gearing cap of $70M.
	stmt := buildStatement(15_000_000)
	res := Size(stmt, 100_000_000, baseTerms())

	if res.BindingConstraint != ConstraintGearing {
		t.Errorf("Expected gearing to bind, got %s", res.BindingConstraint)
	}
	if math.Abs(res.DebtAmount-70_000_000) > 1e-3 {
		t.Errorf("Debt: expected 70,000,000, got %f", res.DebtAmount)
	}
	if math.Abs(res.EquityAmount-30_000_000) > 1e-3 {
		t.Errorf("Equity: expected 30,000,000, got %f", res.EquityAmount)
	}
	if math.Abs(res.AvgAnnualOperatingCashflow-9_225_000) > 1.0 {
		t.Errorf("Avg annual OCF: expected 9,225,000, got %f", res.AvgAnnualOperatingCashflow)
	}
	if math.Abs(res.GearingRatio-0.70) > 1e-9 {
		t.Errorf("Gearing ratio: expected 0.70, got %f", res.GearingRatio)
	}

	// Gearing-bound debt services comfortably: actual DSCR above target
	if res.ActualDSCR == nil {
		t.Fatal("Expected actual DSCR to be reported")
	}
	if *res.ActualDSCR <= baseTerms().TargetDSCR {
		t.Errorf("Actual DSCR %f should exceed target with gearing bound", *res.ActualDSCR)
	}
}

func TestSizeCoverageBound(t *testing.T) {
	// $8M revenue: monthly EBITDA 416,667 equals depreciation, so EBIT = 0,
	// no tax, OCF = 416,667. Avg annual OCF = 4.5M, coverage capacity
	// ~= $39.5M, well below a 90% gearing cap of $90M.
	stmt := buildStatement(8_000_000)
	terms := baseTerms()
	terms.MaxGearing = 0.90
	res := Size(stmt, 100_000_000, terms)

	if res.BindingConstraint != ConstraintCoverage {
		t.Errorf("Expected coverage to bind, got %s", res.BindingConstraint)
	}
	if res.DebtAmount >= 90_000_000 {
		t.Errorf("Coverage-bound debt %f should be below the gearing cap", res.DebtAmount)
	}
	if res.DebtAmount <= 0 {
		t.Errorf("Expected positive debt, got %f", res.DebtAmount)
	}

	// Service on coverage-bound debt recovers the target exactly: the
	// level payment on the PV of the max affordable service is that service.
	if res.ActualDSCR == nil {
		t.Fatal("Expected actual DSCR to be reported")
	}
	if math.Abs(*res.ActualDSCR-1.30) > 1e-9 {
		t.Errorf("Actual DSCR: expected 1.30, got %.12f", *res.ActualDSCR)
	}
}

func TestSizeSourcesAndUses(t *testing.T) {
	for _, revenue := range []float64{0, 5_000_000, 8_000_000, 15_000_000, 40_000_000} {
		stmt := buildStatement(revenue)
		res := Size(stmt, 100_000_000, baseTerms())
		if math.Abs(res.DebtAmount+res.EquityAmount-100_000_000) > 1e-3 {
			t.Errorf("revenue %f: debt %f + equity %f != capex", revenue, res.DebtAmount, res.EquityAmount)
		}
	}
}

func TestSizeZeroRateDegenerate(t *testing.T) {
	stmt := buildStatement(15_000_000)
	terms := baseTerms()
	terms.AnnualRate = 0
	terms.MaxGearing = 1.0
	res := Size(stmt, 100_000_000, terms)

	// Capacity degenerates to monthly service * months:
	// 9,225,000/1.3/12 * 216 = 591,346.15 * 216 = 127,730,769.23,
	// above the 100% gearing cap, so the cap binds.
	if res.BindingConstraint != ConstraintGearing {
		t.Errorf("Expected gearing to bind, got %s", res.BindingConstraint)
	}
	if math.Abs(res.DebtAmount-100_000_000) > 1e-3 {
		t.Errorf("Debt: expected 100,000,000, got %f", res.DebtAmount)
	}

	// A zero rate carries no amortizing installment.
	if res.AnnualDebtService != 0 {
		t.Errorf("Zero-rate service: expected 0, got %f", res.AnnualDebtService)
	}
	if res.ActualDSCR != nil {
		t.Errorf("Expected no DSCR without debt service, got %f", *res.ActualDSCR)
	}
}

func TestSizeZeroGearing(t *testing.T) {
	stmt := buildStatement(15_000_000)
	terms := baseTerms()
	terms.MaxGearing = 0
	res := Size(stmt, 100_000_000, terms)

	if res.DebtAmount != 0 {
		t.Errorf("Expected zero debt, got %f", res.DebtAmount)
	}
	if res.EquityAmount != 100_000_000 {
		t.Errorf("Expected all-equity funding, got %f", res.EquityAmount)
	}
	if res.AnnualDebtService != 0 {
		t.Errorf("Expected zero debt service, got %f", res.AnnualDebtService)
	}
}
