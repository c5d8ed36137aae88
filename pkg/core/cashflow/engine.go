// Package cashflow derives the per-period operating cashflow statement
// from the period grid and a set of scalar assumptions.
package cashflow

import "project_finance/pkg/core/timeline"

// BuildStatement computes every operating line item for each period.
// Phase-conditioned formulas:
//   - Construction: capex = total capex / construction months, no revenue.
//   - Operations: revenue = annual contracted / 12, opex = annual / 12.
//   - Depreciation: straight-line over 20 years from operations start,
//     applied to every period at or after that date.
//   - Tax only on positive EBIT (no loss carry-forward).
//   - Operating cashflow = net income + depreciation (non-cash add-back).
//
// The terminal value is credited to the final period of the grid.
// Invariant: the capex column sums to the total capital cost.
func BuildStatement(tl timeline.Timeline, a Assumptions) *Statement {
	rows := make([]Row, len(tl.Periods))

	constructionMonths := tl.Count(timeline.PhaseConstruction)
	monthlyCapex := 0.0
	if constructionMonths > 0 {
		monthlyCapex = a.CapexTotal / float64(constructionMonths)
	}
	monthlyDepreciation := a.CapexTotal / DepreciationYears / 12

	for i, p := range tl.Periods {
		row := Row{Date: p.Date, Index: p.Index, Phase: p.Phase}

		switch p.Phase {
		case timeline.PhaseConstruction:
			row.Capex = monthlyCapex
		case timeline.PhaseOperations:
			row.Revenue = a.ContractedRevenueAnnual / 12
			row.Opex = a.OpexAnnual / 12
		}

		row.EBITDA = row.Revenue - row.Opex

		if !p.Date.Before(tl.OperationsStart) {
			row.Depreciation = monthlyDepreciation
		}

		row.EBIT = row.EBITDA - row.Depreciation
		if row.EBIT > 0 {
			row.Tax = row.EBIT * a.TaxRate
		}
		row.NetIncome = row.EBIT - row.Tax
		row.OperatingCashflow = row.NetIncome + row.Depreciation
		row.FreeCashflow = row.OperatingCashflow - row.Capex

		rows[i] = row
	}

	if len(rows) > 0 {
		rows[len(rows)-1].TerminalValue = a.TerminalValue
	}

	return &Statement{Timeline: tl, Rows: rows}
}
