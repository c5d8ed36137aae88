package scenario

import (
	"math"
	"os"
	"path/filepath"
	"testing"
	"time"
)

func writeScenario(t *testing.T, name, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatalf("write scenario: %v", err)
	}
	return path
}

func TestLoadHJSONWithComments(t *testing.T) {
	path := writeScenario(t, "case.hjson", `{
  # commissioning pushed to January
  model_start: 2025-01-01
  capex_total: 100000000
  contracted_revenue_annual: 15000000
  opex_annual: 3000000
  tax_rate: 0.25
  target_dscr: 1.30
  debt_term_years: 18
  debt_rate: 0.055
  max_gearing: 0.70
  terminal_value: 10000000
}`)

	p, err := Load(path)
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}

	want := time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC)
	if !p.ModelStart.Equal(want) {
		t.Errorf("ModelStart: expected %v, got %v", want, p.ModelStart)
	}
	if p.CapexTotal != 100_000_000 {
		t.Errorf("CapexTotal: expected 100,000,000, got %f", p.CapexTotal)
	}
	if p.DebtTermYears != 18 {
		t.Errorf("DebtTermYears: expected 18, got %d", p.DebtTermYears)
	}
	if p.TerminalValue == nil || *p.TerminalValue != 10_000_000 {
		t.Errorf("TerminalValue: expected 10,000,000, got %v", p.TerminalValue)
	}
}

func TestLoadYAML(t *testing.T) {
	path := writeScenario(t, "case.yaml", `model_start: "2025-06-01"
capex_total: 50000000
contracted_revenue_annual: 8000000
opex_annual: 2000000
debt_rate: 0.06
`)

	p, err := Load(path)
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}
	if p.CapexTotal != 50_000_000 {
		t.Errorf("CapexTotal: expected 50,000,000, got %f", p.CapexTotal)
	}
	if math.Abs(p.DebtRate-0.06) > 1e-9 {
		t.Errorf("DebtRate: expected 0.06, got %f", p.DebtRate)
	}
	// Omitted fields fall back to base-case defaults
	if p.TargetDSCR != DefaultTargetDSCR {
		t.Errorf("TargetDSCR default: expected %f, got %f", DefaultTargetDSCR, p.TargetDSCR)
	}
	if p.MaxGearing != DefaultMaxGearing {
		t.Errorf("MaxGearing default: expected %f, got %f", DefaultMaxGearing, p.MaxGearing)
	}
}

func TestLoadDefaults(t *testing.T) {
	path := writeScenario(t, "minimal.hjson", `{
  model_start: 2025-01-01
  capex_total: 100000000
  contracted_revenue_annual: 15000000
  opex_annual: 3000000
}`)

	p, err := Load(path)
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}
	if p.TaxRate != DefaultTaxRate {
		t.Errorf("TaxRate default: expected %f, got %f", DefaultTaxRate, p.TaxRate)
	}
	if p.DebtTermYears != DefaultDebtTermYears {
		t.Errorf("DebtTermYears default: expected %d, got %d", DefaultDebtTermYears, p.DebtTermYears)
	}
	if p.DebtRate != DefaultDebtRate {
		t.Errorf("DebtRate default: expected %f, got %f", DefaultDebtRate, p.DebtRate)
	}
	// Terminal value stays unset; the engine resolves the 10%-of-capex default
	if p.TerminalValue != nil {
		t.Errorf("TerminalValue should stay unset, got %f", *p.TerminalValue)
	}
	if rv := p.ResolvedTerminalValue(); rv != 10_000_000 {
		t.Errorf("Resolved terminal value: expected 10,000,000, got %f", rv)
	}
}

func TestLoadRepairsTruncatedJSON(t *testing.T) {
	// Missing closing brace, as a hand-edited file might end up
	path := writeScenario(t, "broken.json", `{"model_start": "2025-01-01", "capex_total": 50000000, "contracted_revenue_annual": 8000000, "opex_annual": 2000000`)

	p, err := Load(path)
	if err != nil {
		t.Fatalf("Load should repair truncated JSON: %v", err)
	}
	if p.CapexTotal != 50_000_000 {
		t.Errorf("CapexTotal: expected 50,000,000, got %f", p.CapexTotal)
	}
}

func TestLoadBadDate(t *testing.T) {
	path := writeScenario(t, "baddate.hjson", `{
  model_start: January 2025
  capex_total: 100000000
}`)

	if _, err := Load(path); err == nil {
		t.Error("Expected error for unparseable model_start")
	}
}

func TestLoadMissingFile(t *testing.T) {
	if _, err := Load(filepath.Join(t.TempDir(), "absent.hjson")); err == nil {
		t.Error("Expected error for missing file")
	}
}
