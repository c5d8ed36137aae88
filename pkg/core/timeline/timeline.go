// Package timeline builds the monthly period grid for a project and tags
// each period with its lifecycle phase. Phase boundaries are fixed offsets
// from the model start and are invariant after construction.
package timeline

import "time"

// Phase identifies the lifecycle stage a period belongs to.
type Phase string

const (
	PhaseDevelopment  Phase = "Development"
	PhaseConstruction Phase = "Construction"
	PhaseOperations   Phase = "Operations"
)

// Model horizon: 7 years of monthly periods covering 1 year development,
// 1.5 years construction and the first years of operations.
const (
	TotalMonths        = 7 * 12
	DevelopmentMonths  = 12
	ConstructionMonths = 18
	OperationsYears    = 5 // contracted revenue window used for debt sizing
)

// Period is one month on the project grid.
type Period struct {
	Date  time.Time `json:"date"`
	Index int       `json:"period"` // 1-based sequence index
	Phase Phase     `json:"phase"`
}

// Timeline is the ordered period grid plus the derived phase boundaries.
type Timeline struct {
	ModelStart        time.Time `json:"model_start"`
	ConstructionStart time.Time `json:"construction_start"`
	OperationsStart   time.Time `json:"operations_start"`
	OperationsEnd     time.Time `json:"operations_end"`
	Periods           []Period  `json:"periods"`
}

// Build constructs the monthly grid from the model start date.
// Construction begins 12 months in, operations 18 months after that.
// Phases are assigned by pure date-range comparison, so they partition the
// grid with no gaps or overlaps. The operations window nominally runs 5
// years but is clipped by the 84-month frame.
func Build(start time.Time) Timeline {
	constructionStart := start.AddDate(0, DevelopmentMonths, 0)
	operationsStart := constructionStart.AddDate(0, ConstructionMonths, 0)
	operationsEnd := operationsStart.AddDate(OperationsYears, 0, 0)

	tl := Timeline{
		ModelStart:        start,
		ConstructionStart: constructionStart,
		OperationsStart:   operationsStart,
		OperationsEnd:     operationsEnd,
		Periods:           make([]Period, 0, TotalMonths),
	}

	for i := 0; i < TotalMonths; i++ {
		date := start.AddDate(0, i, 0)
		tl.Periods = append(tl.Periods, Period{
			Date:  date,
			Index: i + 1,
			Phase: tl.phaseFor(date),
		})
	}
	return tl
}

func (tl Timeline) phaseFor(date time.Time) Phase {
	if date.Before(tl.ConstructionStart) {
		return PhaseDevelopment
	}
	if date.Before(tl.OperationsStart) {
		return PhaseConstruction
	}
	return PhaseOperations
}

// Count returns the number of periods tagged with the given phase.
func (tl Timeline) Count(phase Phase) int {
	n := 0
	for _, p := range tl.Periods {
		if p.Phase == phase {
			n++
		}
	}
	return n
}

// FirstIndex returns the 0-based offset of the first period tagged with
// the given phase, or -1 if no period carries it.
func (tl Timeline) FirstIndex(phase Phase) int {
	for i, p := range tl.Periods {
		if p.Phase == phase {
			return i
		}
	}
	return -1
}
