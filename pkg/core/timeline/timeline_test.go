package timeline

import (
	"testing"
	"time"
)

func TestBuildGrid(t *testing.T) {
	start := time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC)
	tl := Build(start)

	if len(tl.Periods) != TotalMonths {
		t.Fatalf("Expected %d periods, got %d", TotalMonths, len(tl.Periods))
	}

	// Boundaries: +12 months and +18 further months
	wantConstruction := time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC)
	wantOperations := time.Date(2027, 7, 1, 0, 0, 0, 0, time.UTC)
	if !tl.ConstructionStart.Equal(wantConstruction) {
		t.Errorf("Construction start: expected %v, got %v", wantConstruction, tl.ConstructionStart)
	}
	if !tl.OperationsStart.Equal(wantOperations) {
		t.Errorf("Operations start: expected %v, got %v", wantOperations, tl.OperationsStart)
	}

	// 1-based sequence, monthly steps
	if tl.Periods[0].Index != 1 {
		t.Errorf("First period index: expected 1, got %d", tl.Periods[0].Index)
	}
	for i := 1; i < len(tl.Periods); i++ {
		prev := tl.Periods[i-1]
		cur := tl.Periods[i]
		if cur.Index != prev.Index+1 {
			t.Errorf("Non-sequential index at %d", i)
		}
		if !cur.Date.Equal(prev.Date.AddDate(0, 1, 0)) {
			t.Errorf("Non-monthly step at %d: %v -> %v", i, prev.Date, cur.Date)
		}
	}
}

func TestPhasePartition(t *testing.T) {
	tl := Build(time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC))

	// 12 development + 18 construction, remainder of the 84-month frame is
	// operations (the nominal 5-year window extends past the frame end).
	if n := tl.Count(PhaseDevelopment); n != DevelopmentMonths {
		t.Errorf("Development months: expected %d, got %d", DevelopmentMonths, n)
	}
	if n := tl.Count(PhaseConstruction); n != ConstructionMonths {
		t.Errorf("Construction months: expected %d, got %d", ConstructionMonths, n)
	}
	wantOps := TotalMonths - DevelopmentMonths - ConstructionMonths
	if n := tl.Count(PhaseOperations); n != wantOps {
		t.Errorf("Operations months: expected %d, got %d", wantOps, n)
	}

	// Phases appear in order with no interleaving
	lastPhase := PhaseDevelopment
	rank := map[Phase]int{PhaseDevelopment: 0, PhaseConstruction: 1, PhaseOperations: 2}
	for _, p := range tl.Periods {
		if rank[p.Phase] < rank[lastPhase] {
			t.Fatalf("Phase regression at period %d: %s after %s", p.Index, p.Phase, lastPhase)
		}
		lastPhase = p.Phase
	}
}

func TestFirstIndex(t *testing.T) {
	tl := Build(time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC))

	if idx := tl.FirstIndex(PhaseConstruction); idx != DevelopmentMonths {
		t.Errorf("First construction offset: expected %d, got %d", DevelopmentMonths, idx)
	}
	if idx := tl.FirstIndex(PhaseOperations); idx != DevelopmentMonths+ConstructionMonths {
		t.Errorf("First operations offset: expected %d, got %d", DevelopmentMonths+ConstructionMonths, idx)
	}
	if idx := tl.FirstIndex(Phase("Decommissioning")); idx != -1 {
		t.Errorf("Unknown phase: expected -1, got %d", idx)
	}
}
