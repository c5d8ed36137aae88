package debt

import (
	"time"

	"project_finance/pkg/core/cashflow"
	"project_finance/pkg/core/timeline"
)

// SchedulePeriod is one row of the amortization schedule.
// Invariant: EndingBalance = BeginningBalance + Drawdown - PrincipalPayment,
// and EndingBalance never goes negative.
type SchedulePeriod struct {
	Date  time.Time      `json:"date"`
	Index int            `json:"period"`
	Phase timeline.Phase `json:"phase"`

	BeginningBalance float64 `json:"beginning_balance"`
	Drawdown         float64 `json:"drawdown"`
	InterestPayment  float64 `json:"interest_payment"`
	PrincipalPayment float64 `json:"principal_payment"`
	TotalPayment     float64 `json:"total_payment"`
	EndingBalance    float64 `json:"ending_balance"`
}

// Schedule is the amortization schedule from construction start through the
// end of the modeled grid. It is empty when no debt was sized.
type Schedule struct {
	Periods []SchedulePeriod `json:"periods"`
}

// BuildSchedule walks the grid from the first construction period,
// accumulating drawdowns into the outstanding balance. Once operations
// begin, each period pays a level monthly installment split into interest
// (balance * monthly rate) and principal (installment minus interest,
// floored at zero and capped at the outstanding balance so the final
// period cannot overpay).
func BuildSchedule(stmt *cashflow.Statement, fin *Financing, sizing SizingResult, terms Terms) *Schedule {
	if sizing.DebtAmount <= 0 {
		return &Schedule{}
	}

	firstConstruction := stmt.Timeline.FirstIndex(timeline.PhaseConstruction)
	if firstConstruction < 0 {
		return &Schedule{}
	}

	monthlyRate := terms.AnnualRate / 12
	monthlyPayment := sizing.AnnualDebtService / 12

	schedule := &Schedule{
		Periods: make([]SchedulePeriod, 0, len(stmt.Rows)-firstConstruction),
	}

	outstanding := 0.0
	paying := false
	for i := firstConstruction; i < len(stmt.Rows); i++ {
		row := stmt.Rows[i]
		p := SchedulePeriod{
			Date:             row.Date,
			Index:            row.Index,
			Phase:            row.Phase,
			BeginningBalance: outstanding,
			Drawdown:         fin.Periods[i].Drawdown,
		}
		outstanding += p.Drawdown

		if row.Phase == timeline.PhaseOperations {
			paying = true
		}
		if paying && outstanding > 0 {
			interest := outstanding * monthlyRate
			principal := monthlyPayment - interest
			if principal < 0 {
				principal = 0
			}
			if principal > outstanding {
				principal = outstanding
			}
			p.InterestPayment = interest
			p.PrincipalPayment = principal
			p.TotalPayment = interest + principal
			outstanding -= principal
		}

		p.EndingBalance = outstanding
		schedule.Periods = append(schedule.Periods, p)
	}

	return schedule
}

// FinalBalance returns the ending balance of the last scheduled period,
// or 0 for an empty schedule.
func (s *Schedule) FinalBalance() float64 {
	if len(s.Periods) == 0 {
		return 0
	}
	return s.Periods[len(s.Periods)-1].EndingBalance
}
