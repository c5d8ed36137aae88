// Package validate provides reusable model integrity checks.
// These functions can be called from tests, API handlers, or the compute
// pipeline to verify that the financial identities of a run hold.
package validate

import "math"

// =============================================================================
// CAPEX CONSERVATION
// =============================================================================

// CapexCheck verifies that the scheduled capital expenditure adds back up
// to the total capital cost.
type CapexCheck struct {
	CapexTotal     float64
	ScheduledCapex float64
	Difference     float64
	RelDifference  float64 // |difference| / capex total
	IsBalanced     bool
	Tolerance      float64 // relative
}

// CheckCapexConservation validates sum(capex) = capex_total within a
// relative tolerance.
func CheckCapexConservation(capexTotal, scheduledCapex, tolerance float64) *CapexCheck {
	diff := scheduledCapex - capexTotal
	rel := 0.0
	if capexTotal != 0 {
		rel = math.Abs(diff) / math.Abs(capexTotal)
	}

	return &CapexCheck{
		CapexTotal:     capexTotal,
		ScheduledCapex: scheduledCapex,
		Difference:     diff,
		RelDifference:  rel,
		IsBalanced:     rel <= tolerance,
		Tolerance:      tolerance,
	}
}

// =============================================================================
// SOURCES AND USES
// =============================================================================

// SourcesUsesCheck verifies Debt + Equity = Capex.
type SourcesUsesCheck struct {
	DebtAmount    float64
	EquityAmount  float64
	CapexTotal    float64
	ComputedTotal float64 // D + E
	Difference    float64
	IsBalanced    bool
	Tolerance     float64
}

// CheckSourcesAndUses validates that sized debt plus required equity funds
// the capital cost exactly.
func CheckSourcesAndUses(debtAmount, equityAmount, capexTotal, tolerance float64) *SourcesUsesCheck {
	computed := debtAmount + equityAmount
	diff := capexTotal - computed

	return &SourcesUsesCheck{
		DebtAmount:    debtAmount,
		EquityAmount:  equityAmount,
		CapexTotal:    capexTotal,
		ComputedTotal: computed,
		Difference:    diff,
		IsBalanced:    math.Abs(diff) <= tolerance,
		Tolerance:     tolerance,
	}
}

// =============================================================================
// DEBT SCHEDULE ROLL-FORWARD
// =============================================================================

// RollForwardCheck verifies Ending = Beginning + Drawdown - Principal for
// one schedule period, and that the ending balance stays non-negative.
type RollForwardCheck struct {
	Period           int
	BeginningBalance float64
	Drawdown         float64
	PrincipalPayment float64
	EndingBalance    float64
	ComputedEnding   float64
	Difference       float64
	IsBalanced       bool
	Tolerance        float64
}

// CheckRollForward validates the balance identity for a single period.
func CheckRollForward(period int, beginning, drawdown, principal, ending, tolerance float64) *RollForwardCheck {
	computed := beginning + drawdown - principal
	diff := ending - computed

	return &RollForwardCheck{
		Period:           period,
		BeginningBalance: beginning,
		Drawdown:         drawdown,
		PrincipalPayment: principal,
		EndingBalance:    ending,
		ComputedEnding:   computed,
		Difference:       diff,
		IsBalanced:       math.Abs(diff) <= tolerance && ending >= -tolerance,
		Tolerance:        tolerance,
	}
}

// =============================================================================
// COVERAGE
// =============================================================================

// CoverageRatio computes operating cashflow over debt service, the DSCR.
// Returns 0 when there is no debt service to cover.
func CoverageRatio(operatingCashflow, debtService float64) float64 {
	if debtService <= 0 {
		return 0
	}
	return operatingCashflow / debtService
}
