package cashflow

import (
	"time"

	"project_finance/pkg/core/timeline"
)

// Straight-line depreciation life for the constructed asset.
const DepreciationYears = 20

// Assumptions are the operating inputs the engine needs. Rates are decimal
// fractions (0-1), monetary amounts are annual unless noted.
type Assumptions struct {
	CapexTotal              float64
	ContractedRevenueAnnual float64
	OpexAnnual              float64
	TaxRate                 float64
	TerminalValue           float64
}

// Row is one period of the operating cashflow build. Fields are populated
// once by BuildStatement and read-only afterwards.
type Row struct {
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
	TerminalValue     float64 `json:"terminal_value"`
}

// Statement is the operating cashflow table for one project, aligned
// one-to-one with the timeline periods.
type Statement struct {
	Timeline timeline.Timeline `json:"timeline"`
	Rows     []Row             `json:"rows"`
}

// TotalCapex sums the capital expenditure column.
func (s *Statement) TotalCapex() float64 {
	var total float64
	for _, r := range s.Rows {
		total += r.Capex
	}
	return total
}

// OperatingCashflowSum sums operating cashflow over periods in the given phase.
func (s *Statement) OperatingCashflowSum(phase timeline.Phase) float64 {
	var total float64
	for _, r := range s.Rows {
		if r.Phase == phase {
			total += r.OperatingCashflow
		}
	}
	return total
}
