// Package scenario loads project parameter sets from configuration files.
// HJSON is the primary format so scenario files can carry comments; plain
// JSON (including slightly malformed hand-edited JSON) and YAML also work.
package scenario

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	jsonrepair "github.com/RealAlexandreAI/json-repair"
	hjson "github.com/hjson/hjson-go/v4"
	"gopkg.in/yaml.v2"

	"project_finance/pkg/core/model"
)

const dateLayout = "2006-01-02"

// Params mirrors a scenario file. Optional fields are pointers so that an
// omitted value falls back to the base-case default rather than zero.
type Params struct {
	ModelStart              string   `json:"model_start" yaml:"model_start"`
	CapexTotal              float64  `json:"capex_total" yaml:"capex_total"`
	ContractedRevenueAnnual float64  `json:"contracted_revenue_annual" yaml:"contracted_revenue_annual"`
	MerchantRevenueAnnual   float64  `json:"merchant_revenue_annual" yaml:"merchant_revenue_annual"`
	OpexAnnual              float64  `json:"opex_annual" yaml:"opex_annual"`
	TaxRate                 *float64 `json:"tax_rate" yaml:"tax_rate"`
	TargetDSCR              *float64 `json:"target_dscr" yaml:"target_dscr"`
	DebtTermYears           *int     `json:"debt_term_years" yaml:"debt_term_years"`
	DebtRate                *float64 `json:"debt_rate" yaml:"debt_rate"`
	MaxGearing              *float64 `json:"max_gearing" yaml:"max_gearing"`
	TerminalValue           *float64 `json:"terminal_value" yaml:"terminal_value"`
}

// Base-case defaults, applied when a scenario omits the field.
const (
	DefaultTaxRate       = 0.25
	DefaultTargetDSCR    = 1.30
	DefaultDebtTermYears = 18
	DefaultDebtRate      = 0.055
	DefaultMaxGearing    = 0.70
)

// Parameters resolves the file-level fields into engine parameters,
// applying base-case defaults for anything omitted. The terminal value is
// left unset when omitted; the engine defaults it to 10% of capex.
func (s Params) Parameters() (model.Parameters, error) {
	start, err := time.Parse(dateLayout, s.ModelStart)
	if err != nil {
		return model.Parameters{}, fmt.Errorf("parse model_start %q: %w", s.ModelStart, err)
	}

	p := model.Parameters{
		ModelStart:              start,
		CapexTotal:              s.CapexTotal,
		ContractedRevenueAnnual: s.ContractedRevenueAnnual,
		MerchantRevenueAnnual:   s.MerchantRevenueAnnual,
		OpexAnnual:              s.OpexAnnual,
		TaxRate:                 DefaultTaxRate,
		TargetDSCR:              DefaultTargetDSCR,
		DebtTermYears:           DefaultDebtTermYears,
		DebtRate:                DefaultDebtRate,
		MaxGearing:              DefaultMaxGearing,
		TerminalValue:           s.TerminalValue,
	}
	if s.TaxRate != nil {
		p.TaxRate = *s.TaxRate
	}
	if s.TargetDSCR != nil {
		p.TargetDSCR = *s.TargetDSCR
	}
	if s.DebtTermYears != nil {
		p.DebtTermYears = *s.DebtTermYears
	}
	if s.DebtRate != nil {
		p.DebtRate = *s.DebtRate
	}
	if s.MaxGearing != nil {
		p.MaxGearing = *s.MaxGearing
	}
	return p, nil
}

// Load reads a scenario file and resolves it into engine parameters.
// Format is chosen by extension: .yaml/.yml parse as YAML, everything else
// as HJSON (a superset of JSON). JSON that fails to parse gets one repair
// attempt before giving up, so trailing commas or stray quotes in
// hand-edited files do not block a run.
func Load(path string) (model.Parameters, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return model.Parameters{}, fmt.Errorf("read scenario %s: %w", path, err)
	}

	var s Params
	switch strings.ToLower(filepath.Ext(path)) {
	case ".yaml", ".yml":
		if err := yaml.Unmarshal(data, &s); err != nil {
			return model.Parameters{}, fmt.Errorf("parse scenario %s: %w", path, err)
		}
	default:
		if err := hjson.Unmarshal(data, &s); err != nil {
			repaired, repairErr := jsonrepair.RepairJSON(string(data))
			if repairErr != nil {
				return model.Parameters{}, fmt.Errorf("parse scenario %s: %w", path, err)
			}
			if err := hjson.Unmarshal([]byte(repaired), &s); err != nil {
				return model.Parameters{}, fmt.Errorf("parse scenario %s after repair: %w", path, err)
			}
		}
	}

	return s.Parameters()
}
