package returns

import (
	"project_finance/pkg/core/cashflow"
	"project_finance/pkg/core/debt"
)

// EquityAnalysis is the investor-return snapshot. IRR is nil when the
// solver could not produce a meaningful rate.
type EquityAnalysis struct {
	TotalContributions float64   `json:"total_equity_contribution"`
	TotalDistributions float64   `json:"total_equity_distributions"`
	EquityMultiple     float64   `json:"equity_multiple"`
	IRR                *float64  `json:"equity_irr"`
	Cashflows          []float64 `json:"equity_cashflows"`
}

// BuildEquityAnalysis assembles the per-period equity stream
//
//	-equity_contribution + (free_cashflow + terminal_value - debt_service)
//
// then solves for its IRR and computes the equity multiple.
func BuildEquityAnalysis(stmt *cashflow.Statement, fin *debt.Financing) EquityAnalysis {
	cashflows := make([]float64, len(stmt.Rows))
	var contributions, distributions float64

	for i, row := range stmt.Rows {
		p := fin.Periods[i]
		distribution := row.FreeCashflow + row.TerminalValue - p.DebtService
		cashflows[i] = -p.EquityContribution + distribution

		contributions += p.EquityContribution
		distributions += distribution
	}

	return EquityAnalysis{
		TotalContributions: contributions,
		TotalDistributions: distributions,
		EquityMultiple:     EquityMultiple(contributions, distributions),
		IRR:                SolveIRR(cashflows),
		Cashflows:          cashflows,
	}
}

// EquityMultiple is total distributions over total contributions, or 0
// when nothing was contributed (degenerate all-debt-free case; guarded so
// it never divides by zero).
func EquityMultiple(contributions, distributions float64) float64 {
	if contributions <= 0 {
		return 0
	}
	return distributions / contributions
}
