package model

import (
	"time"

	"project_finance/pkg/core/cashflow"
	"project_finance/pkg/core/debt"
	"project_finance/pkg/core/returns"
	"project_finance/pkg/core/timeline"
)

// Parameters are the immutable project inputs, set once per compute call.
// Monetary amounts are floating-point currency; rates are decimal
// fractions (0-1), not percentages.
type Parameters struct {
	ModelStart time.Time `json:"model_start"`

	CapexTotal              float64 `json:"capex_total"`
	ContractedRevenueAnnual float64 `json:"contracted_revenue_annual"`
	// MerchantRevenueAnnual is reserved for merchant-price operating years.
	// The modeled horizon covers only the contracted window, so the value
	// is carried but unused; it is kept for forward compatibility.
	MerchantRevenueAnnual float64 `json:"merchant_revenue_annual"`
	OpexAnnual            float64 `json:"opex_annual"`
	TaxRate               float64 `json:"tax_rate"`

	TargetDSCR    float64 `json:"target_dscr"`
	DebtTermYears int     `json:"debt_term_years"`
	DebtRate      float64 `json:"debt_rate"`
	MaxGearing    float64 `json:"max_gearing"`

	// TerminalValue defaults to 10% of total capex when nil.
	TerminalValue *float64 `json:"terminal_value"`
}

// ResolvedTerminalValue applies the 10%-of-capex default.
func (p Parameters) ResolvedTerminalValue() float64 {
	if p.TerminalValue != nil {
		return *p.TerminalValue
	}
	return p.CapexTotal * 0.10
}

// PeriodRecord is one row of the populated period table returned to
// callers: the operating build joined with the financing allocation.
type PeriodRecord struct {
	Date  time.Time      `json:"date"`
	Index int            `json:"period"`
	Phase timeline.Phase `json:"phase"`

	Revenue           float64 `json:"revenue"`
	Opex              float64 `json:"opex"`
	Capex             float64 `json:"capex"`
	EBITDA            float64 `json:"ebitda"`
	Depreciation      float64 `json:"depreciation"`
	EBIT              float64 `json:"ebit"`
	Tax               float64 `json:"tax"`
	NetIncome         float64 `json:"net_income"`
	OperatingCashflow float64 `json:"operating_cashflow"`
	FreeCashflow      float64 `json:"free_cashflow"`

	DebtDrawdown           float64 `json:"debt_drawdown"`
	EquityContribution     float64 `json:"equity_contribution"`
	DebtService            float64 `json:"debt_service"`
	CashflowAfterFinancing float64 `json:"cashflow_after_financing"`
	TerminalValue          float64 `json:"terminal_value"`
}

// Results bundles the four read-only structures a compute call produces.
type Results struct {
	Timeline timeline.Timeline      `json:"timeline"`
	Periods  []PeriodRecord         `json:"periods"`
	Sizing   debt.SizingResult      `json:"debt_sizing"`
	Schedule []debt.SchedulePeriod  `json:"debt_schedule"`
	Equity   returns.EquityAnalysis `json:"equity_analysis"`
}

func mergePeriods(stmt *cashflow.Statement, fin *debt.Financing) []PeriodRecord {
	records := make([]PeriodRecord, len(stmt.Rows))
	for i, r := range stmt.Rows {
		f := fin.Periods[i]
		records[i] = PeriodRecord{
			Date:  r.Date,
			Index: r.Index,
			Phase: r.Phase,

			Revenue:           r.Revenue,
			Opex:              r.Opex,
			Capex:             r.Capex,
			EBITDA:            r.EBITDA,
			Depreciation:      r.Depreciation,
			EBIT:              r.EBIT,
			Tax:               r.Tax,
			NetIncome:         r.NetIncome,
			OperatingCashflow: r.OperatingCashflow,
			FreeCashflow:      r.FreeCashflow,

			DebtDrawdown:           f.Drawdown,
			EquityContribution:     f.EquityContribution,
			DebtService:            f.DebtService,
			CashflowAfterFinancing: f.CashflowAfterFinancing,
			TerminalValue:          r.TerminalValue,
		}
	}
	return records
}
