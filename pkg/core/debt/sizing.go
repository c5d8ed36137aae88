// Package debt sizes project debt against a coverage-ratio constraint and
// a gearing cap, allocates construction funding between debt and equity,
// and builds the amortization schedule.
package debt

import (
	"math"

	"project_finance/pkg/core/cashflow"
	"project_finance/pkg/core/timeline"
)

// Terms are the financing inputs. Rates are decimal fractions; the annual
// rate compounds monthly.
type Terms struct {
	TargetDSCR float64
	TermYears  int
	AnnualRate float64
	MaxGearing float64
}

// Constraint names which limit bound the sized debt amount.
type Constraint string

const (
	ConstraintCoverage Constraint = "coverage"
	ConstraintGearing  Constraint = "gearing"
)

// SizingResult is the debt sizing snapshot. It is computed once and held
// immutable; all downstream financing allocations derive from it.
type SizingResult struct {
	DebtAmount                 float64    `json:"debt_amount"`
	EquityAmount               float64    `json:"equity_amount"`
	AnnualDebtService          float64    `json:"annual_debt_service"`
	AvgAnnualOperatingCashflow float64    `json:"avg_annual_operating_cf"`
	ActualDSCR                 *float64   `json:"actual_dscr"`
	GearingRatio               float64    `json:"gearing_ratio"`
	DebtToCapexRatio           float64    `json:"debt_to_capex_ratio"`
	EquityToCapexRatio         float64    `json:"equity_to_capex_ratio"`
	BindingConstraint          Constraint `json:"binding_constraint"`
}

// Size determines the maximum supportable debt from the operating cashflow
// statement and the financing terms.
//
// The DSCR constraint caps annual debt service at the average annual
// operating cashflow over the contracted operating years divided by the
// target ratio. That service annuity converts to a present-value capacity
// via the level-payment formula:
//
//	PV = PMT * ((1+r)^n - 1) / (r * (1+r)^n)
//
// at the monthly rate r over n = term years * 12 payments (r = 0
// degenerates to PV = PMT * n). The result is then capped at
// capex * max gearing; whichever limit yields the smaller amount is
// reported as the binding constraint.
func Size(stmt *cashflow.Statement, capexTotal float64, terms Terms) SizingResult {
	operationsCF := stmt.OperatingCashflowSum(timeline.PhaseOperations)
	avgAnnualCF := operationsCF / timeline.OperationsYears

	maxAnnualService := 0.0
	if terms.TargetDSCR > 0 {
		maxAnnualService = avgAnnualCF / terms.TargetDSCR
	}

	monthlyRate := terms.AnnualRate / 12
	totalPayments := float64(terms.TermYears * 12)

	var capacity float64
	if monthlyRate > 0 {
		compound := math.Pow(1+monthlyRate, totalPayments)
		capacity = (maxAnnualService / 12) * (compound - 1) / (monthlyRate * compound)
	} else {
		capacity = (maxAnnualService / 12) * totalPayments
	}

	gearingCap := capexTotal * terms.MaxGearing
	debtAmount := capacity
	binding := ConstraintCoverage
	if gearingCap < capacity {
		debtAmount = gearingCap
		binding = ConstraintGearing
	}

	// Re-derive the level payment on the actual debt amount. A zero rate
	// carries no amortizing installment, matching the capacity degenerate
	// case above.
	annualService := 0.0
	if debtAmount > 0 && monthlyRate > 0 {
		compound := math.Pow(1+monthlyRate, totalPayments)
		monthlyPayment := debtAmount * monthlyRate * compound / (compound - 1)
		annualService = monthlyPayment * 12
	}

	result := SizingResult{
		DebtAmount:                 debtAmount,
		EquityAmount:               capexTotal - debtAmount,
		AnnualDebtService:          annualService,
		AvgAnnualOperatingCashflow: avgAnnualCF,
		BindingConstraint:          binding,
	}
	if annualService > 0 {
		dscr := avgAnnualCF / annualService
		result.ActualDSCR = &dscr
	}
	if capexTotal > 0 {
		result.GearingRatio = debtAmount / capexTotal
		result.DebtToCapexRatio = debtAmount / capexTotal
		result.EquityToCapexRatio = result.EquityAmount / capexTotal
	}
	return result
}
