// Package model runs the full project-finance pipeline:
// Timeline -> Cashflow -> Debt Sizing -> Financing -> Schedule -> Equity IRR.
// Each stage produces an immutable snapshot consumed read-only by the
// stages after it; the pipeline is deterministic and idempotent.
package model

import (
	"errors"
	"fmt"

	"project_finance/pkg/core/cashflow"
	"project_finance/pkg/core/debt"
	"project_finance/pkg/core/returns"
	"project_finance/pkg/core/timeline"
	"project_finance/pkg/core/validate"
)

// ErrInvalidParameter marks boundary validation failures. The core stages
// themselves do not validate; rejecting out-of-range inputs here keeps
// garbage from propagating through the arithmetic.
var ErrInvalidParameter = errors.New("invalid parameter")

// CheckConfig controls the post-compute integrity checks.
type CheckConfig struct {
	Strict    bool    // fail the run on a broken identity instead of warning
	Tolerance float64 // relative tolerance for the capex conservation check
}

// DefaultCheckConfig warns without failing, with the documented 1e-6
// relative tolerance.
func DefaultCheckConfig() CheckConfig {
	return CheckConfig{Strict: false, Tolerance: 1e-6}
}

// Validate rejects parameter sets the engine cannot produce meaningful
// results for. Errors wrap ErrInvalidParameter.
func Validate(p Parameters) error {
	switch {
	case p.ModelStart.IsZero():
		return fmt.Errorf("%w: model_start is required", ErrInvalidParameter)
	case p.CapexTotal <= 0:
		return fmt.Errorf("%w: capex_total must be positive, got %g", ErrInvalidParameter, p.CapexTotal)
	case p.ContractedRevenueAnnual < 0:
		return fmt.Errorf("%w: contracted_revenue_annual must not be negative, got %g", ErrInvalidParameter, p.ContractedRevenueAnnual)
	case p.MerchantRevenueAnnual < 0:
		return fmt.Errorf("%w: merchant_revenue_annual must not be negative, got %g", ErrInvalidParameter, p.MerchantRevenueAnnual)
	case p.OpexAnnual < 0:
		return fmt.Errorf("%w: opex_annual must not be negative, got %g", ErrInvalidParameter, p.OpexAnnual)
	case p.TaxRate < 0 || p.TaxRate > 1:
		return fmt.Errorf("%w: tax_rate must be a fraction in [0,1], got %g", ErrInvalidParameter, p.TaxRate)
	case p.TargetDSCR < 1:
		return fmt.Errorf("%w: target_dscr must be at least 1, got %g", ErrInvalidParameter, p.TargetDSCR)
	case p.DebtTermYears < 1:
		return fmt.Errorf("%w: debt_term_years must be at least 1, got %d", ErrInvalidParameter, p.DebtTermYears)
	case p.DebtRate < 0:
		return fmt.Errorf("%w: debt_rate must not be negative, got %g", ErrInvalidParameter, p.DebtRate)
	case p.MaxGearing < 0 || p.MaxGearing > 1:
		return fmt.Errorf("%w: max_gearing must be a fraction in [0,1], got %g", ErrInvalidParameter, p.MaxGearing)
	case p.TerminalValue != nil && *p.TerminalValue < 0:
		return fmt.Errorf("%w: terminal_value must not be negative, got %g", ErrInvalidParameter, *p.TerminalValue)
	}
	return nil
}

// Compute runs the pipeline with the default check configuration.
func Compute(p Parameters) (*Results, error) {
	return ComputeChecked(p, DefaultCheckConfig())
}

// ComputeChecked runs the pipeline and then verifies the model identities
// (capex conservation, sources and uses, schedule roll-forward). Broken
// identities log warnings, or fail the run when cfg.Strict is set.
func ComputeChecked(p Parameters, cfg CheckConfig) (*Results, error) {
	if err := Validate(p); err != nil {
		return nil, err
	}

	tl := timeline.Build(p.ModelStart)

	stmt := cashflow.BuildStatement(tl, cashflow.Assumptions{
		CapexTotal:              p.CapexTotal,
		ContractedRevenueAnnual: p.ContractedRevenueAnnual,
		OpexAnnual:              p.OpexAnnual,
		TaxRate:                 p.TaxRate,
		TerminalValue:           p.ResolvedTerminalValue(),
	})

	terms := debt.Terms{
		TargetDSCR: p.TargetDSCR,
		TermYears:  p.DebtTermYears,
		AnnualRate: p.DebtRate,
		MaxGearing: p.MaxGearing,
	}
	sizing := debt.Size(stmt, p.CapexTotal, terms)
	fin := debt.AllocateFinancing(stmt, sizing, terms)
	schedule := debt.BuildSchedule(stmt, fin, sizing, terms)
	equity := returns.BuildEquityAnalysis(stmt, fin)

	results := &Results{
		Timeline: tl,
		Periods:  mergePeriods(stmt, fin),
		Sizing:   sizing,
		Schedule: schedule.Periods,
		Equity:   equity,
	}

	if err := runIntegrityChecks(p, stmt, sizing, schedule, cfg); err != nil {
		return nil, err
	}
	return results, nil
}

// runIntegrityChecks re-verifies the model identities after a run.
func runIntegrityChecks(p Parameters, stmt *cashflow.Statement, sizing debt.SizingResult, schedule *debt.Schedule, cfg CheckConfig) error {
	capex := validate.CheckCapexConservation(p.CapexTotal, stmt.TotalCapex(), cfg.Tolerance)
	if !capex.IsBalanced {
		if err := reportCheck(cfg, "capex conservation", fmt.Sprintf("scheduled %.2f vs total %.2f (diff %.6f)",
			capex.ScheduledCapex, capex.CapexTotal, capex.Difference)); err != nil {
			return err
		}
	}

	// Absolute tolerance scaled to the capital cost for the funding split.
	absTolerance := cfg.Tolerance * p.CapexTotal
	sources := validate.CheckSourcesAndUses(sizing.DebtAmount, sizing.EquityAmount, p.CapexTotal, absTolerance)
	if !sources.IsBalanced {
		if err := reportCheck(cfg, "sources and uses", fmt.Sprintf("debt %.2f + equity %.2f vs capex %.2f",
			sources.DebtAmount, sources.EquityAmount, sources.CapexTotal)); err != nil {
			return err
		}
	}

	for _, sp := range schedule.Periods {
		roll := validate.CheckRollForward(sp.Index, sp.BeginningBalance, sp.Drawdown, sp.PrincipalPayment, sp.EndingBalance, absTolerance)
		if !roll.IsBalanced {
			if err := reportCheck(cfg, "schedule roll-forward", fmt.Sprintf("period %d: ending %.2f vs computed %.2f",
				roll.Period, roll.EndingBalance, roll.ComputedEnding)); err != nil {
				return err
			}
		}
	}

	return nil
}

func reportCheck(cfg CheckConfig, label, detail string) error {
	if cfg.Strict {
		return fmt.Errorf("integrity check failed: %s: %s", label, detail)
	}
	fmt.Printf("[WARNING] %s check: %s\n", label, detail)
	return nil
}
