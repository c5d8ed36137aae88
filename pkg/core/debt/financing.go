package debt

import (
	"time"

	"project_finance/pkg/core/cashflow"
	"project_finance/pkg/core/timeline"
)

// FinancingPeriod holds the financing cashflows for one period.
type FinancingPeriod struct {
	Date  time.Time      `json:"date"`
	Index int            `json:"period"`
	Phase timeline.Phase `json:"phase"`

	Drawdown               float64 `json:"debt_drawdown"`
	EquityContribution     float64 `json:"equity_contribution"`
	DebtService            float64 `json:"debt_service"`
	CashflowAfterFinancing float64 `json:"cashflow_after_financing"`
}

// Financing is the financing allocation snapshot, aligned one-to-one with
// the statement rows.
type Financing struct {
	Periods             []FinancingPeriod `json:"periods"`
	MonthlyDebtService  float64           `json:"monthly_debt_service"`
	DebtServiceStartIdx int               `json:"-"` // 0-based, -1 when no service applies
}

// AllocateFinancing splits each construction period's capex between debt
// drawdown and equity contribution in the fixed debt:equity proportion of
// the sizing result, scaled by the period's share of total construction
// spend. Debt service runs from the first operations period for
// min(term months, remaining periods). Per period:
//
//	cashflow_after_financing = free_cashflow + drawdown + equity
//	                           - debt_service + terminal_value
func AllocateFinancing(stmt *cashflow.Statement, sizing SizingResult, terms Terms) *Financing {
	fin := &Financing{
		Periods:             make([]FinancingPeriod, len(stmt.Rows)),
		DebtServiceStartIdx: -1,
	}

	var totalConstructionCapex float64
	for _, r := range stmt.Rows {
		if r.Phase == timeline.PhaseConstruction {
			totalConstructionCapex += r.Capex
		}
	}

	for i, r := range stmt.Rows {
		p := FinancingPeriod{Date: r.Date, Index: r.Index, Phase: r.Phase}
		if r.Phase == timeline.PhaseConstruction && totalConstructionCapex > 0 {
			portion := r.Capex / totalConstructionCapex
			p.Drawdown = sizing.DebtAmount * portion
			p.EquityContribution = sizing.EquityAmount * portion
		}
		fin.Periods[i] = p
	}

	if sizing.DebtAmount > 0 && sizing.AnnualDebtService > 0 {
		fin.MonthlyDebtService = sizing.AnnualDebtService / 12
		firstOps := stmt.Timeline.FirstIndex(timeline.PhaseOperations)
		if firstOps >= 0 {
			serviceMonths := terms.TermYears * 12
			if remaining := len(stmt.Rows) - firstOps; remaining < serviceMonths {
				serviceMonths = remaining
			}
			fin.DebtServiceStartIdx = firstOps
			for i := firstOps; i < firstOps+serviceMonths; i++ {
				fin.Periods[i].DebtService = fin.MonthlyDebtService
			}
		}
	}

	for i, r := range stmt.Rows {
		p := &fin.Periods[i]
		p.CashflowAfterFinancing = r.FreeCashflow + p.Drawdown + p.EquityContribution -
			p.DebtService + r.TerminalValue
	}

	return fin
}

// TotalDrawdowns sums the debt drawdown column.
func (f *Financing) TotalDrawdowns() float64 {
	var total float64
	for _, p := range f.Periods {
		total += p.Drawdown
	}
	return total
}

// TotalEquityContributions sums the equity contribution column.
func (f *Financing) TotalEquityContributions() float64 {
	var total float64
	for _, p := range f.Periods {
		total += p.EquityContribution
	}
	return total
}
