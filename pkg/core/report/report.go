// Package report formats compute results for console display and renders
// a markdown summary that the API serves as HTML.
package report

import (
	"fmt"
	"sort"
	"strings"

	"project_finance/pkg/core/model"
	"project_finance/pkg/core/timeline"
)

// Text renders the full console report: timeline, parameters, financing
// structure, debt sizing and equity results, plus a cashflow summary by
// phase.
func Text(p model.Parameters, res *model.Results) string {
	var b strings.Builder
	rule := strings.Repeat("=", 60)

	fmt.Fprintf(&b, "%s\nPROJECT CASHFLOW MODEL RESULTS\n%s\n", rule, rule)

	fmt.Fprintf(&b, "\nPROJECT TIMELINE:\n")
	fmt.Fprintf(&b, "Model Start Date: %s\n", res.Timeline.ModelStart.Format("2006-01-02"))
	fmt.Fprintf(&b, "Construction Start: %s\n", res.Timeline.ConstructionStart.Format("2006-01-02"))
	fmt.Fprintf(&b, "Operations Start: %s\n", res.Timeline.OperationsStart.Format("2006-01-02"))

	fmt.Fprintf(&b, "\nPROJECT PARAMETERS:\n")
	fmt.Fprintf(&b, "Total CAPEX: $%s\n", Money(p.CapexTotal))
	fmt.Fprintf(&b, "Contracted Revenue (Annual): $%s\n", Money(p.ContractedRevenueAnnual))
	fmt.Fprintf(&b, "Merchant Revenue (Annual): $%s\n", Money(p.MerchantRevenueAnnual))
	fmt.Fprintf(&b, "Annual OPEX: $%s\n", Money(p.OpexAnnual))
	fmt.Fprintf(&b, "Tax Rate: %.1f%%\n", p.TaxRate*100)
	fmt.Fprintf(&b, "Terminal Value: $%s\n", Money(p.ResolvedTerminalValue()))

	fmt.Fprintf(&b, "\nFINANCING STRUCTURE:\n")
	fmt.Fprintf(&b, "Maximum Gearing: %.1f%%\n", p.MaxGearing*100)
	fmt.Fprintf(&b, "Debt Amount: $%s\n", Money(res.Sizing.DebtAmount))
	fmt.Fprintf(&b, "Equity Amount: $%s\n", Money(res.Sizing.EquityAmount))
	fmt.Fprintf(&b, "Actual Gearing: %.1f%%\n", res.Sizing.GearingRatio*100)
	fmt.Fprintf(&b, "Binding Constraint: %s\n", res.Sizing.BindingConstraint)

	fmt.Fprintf(&b, "\nDEBT SIZING RESULTS:\n")
	fmt.Fprintf(&b, "Target DSCR: %.2fx\n", p.TargetDSCR)
	fmt.Fprintf(&b, "Annual Debt Service: $%s\n", Money(res.Sizing.AnnualDebtService))
	fmt.Fprintf(&b, "Average Annual Operating CF: $%s\n", Money(res.Sizing.AvgAnnualOperatingCashflow))
	if res.Sizing.ActualDSCR != nil {
		fmt.Fprintf(&b, "Actual DSCR: %.2fx\n", *res.Sizing.ActualDSCR)
	}

	fmt.Fprintf(&b, "\nEQUITY IRR ANALYSIS:\n")
	fmt.Fprintf(&b, "Total Equity Contribution: $%s\n", Money(res.Equity.TotalContributions))
	fmt.Fprintf(&b, "Total Equity Distributions: $%s\n", Money(res.Equity.TotalDistributions))
	fmt.Fprintf(&b, "Equity Multiple: %.2fx\n", res.Equity.EquityMultiple)
	fmt.Fprintf(&b, "Equity IRR: %s\n", formatIRR(res.Equity.IRR))

	fmt.Fprintf(&b, "\nCASHFLOW SUMMARY BY PHASE:\n")
	writePhaseSummary(&b, res)

	return b.String()
}

// DebtScheduleText renders the amortization schedule detail.
func DebtScheduleText(p model.Parameters, res *model.Results) string {
	var b strings.Builder
	rule := strings.Repeat("=", 80)
	fmt.Fprintf(&b, "%s\nDEBT SCHEDULE DETAIL (From Construction Start)\n%s\n", rule, rule)

	if res.Sizing.DebtAmount <= 0 {
		fmt.Fprintf(&b, "\nNo debt in this project.\n")
		return b.String()
	}

	fmt.Fprintf(&b, "\nDebt Amount: $%s\n", Money(res.Sizing.DebtAmount))
	fmt.Fprintf(&b, "Interest Rate: %.2f%%\n", p.DebtRate*100)
	fmt.Fprintf(&b, "Term: %d years\n", p.DebtTermYears)
	fmt.Fprintf(&b, "Monthly Payment: $%s\n\n", Money(res.Sizing.AnnualDebtService/12))

	fmt.Fprintf(&b, "%-12s %-13s %14s %12s %12s %12s %12s %14s\n",
		"Date", "Phase", "Begin Bal", "Drawdown", "Interest", "Principal", "Payment", "End Bal")
	for _, sp := range res.Schedule {
		fmt.Fprintf(&b, "%-12s %-13s %14s %12s %12s %12s %12s %14s\n",
			sp.Date.Format("2006-01-02"), sp.Phase,
			Money(sp.BeginningBalance), Money(sp.Drawdown), Money(sp.InterestPayment),
			Money(sp.PrincipalPayment), Money(sp.TotalPayment), Money(sp.EndingBalance))
	}
	return b.String()
}

// EquityText renders the annual equity cashflow summary.
func EquityText(res *model.Results) string {
	var b strings.Builder
	rule := strings.Repeat("=", 80)
	fmt.Fprintf(&b, "%s\nEQUITY IRR ANALYSIS DETAIL\n%s\n", rule, rule)

	fmt.Fprintf(&b, "\nTotal Equity Contribution: $%s\n", Money(res.Equity.TotalContributions))
	fmt.Fprintf(&b, "Total Equity Distributions: $%s\n", Money(res.Equity.TotalDistributions))
	fmt.Fprintf(&b, "Net Equity Return: $%s\n", Money(res.Equity.TotalDistributions-res.Equity.TotalContributions))
	fmt.Fprintf(&b, "Equity Multiple: %.2fx\n", res.Equity.EquityMultiple)
	fmt.Fprintf(&b, "Equity IRR: %s\n", formatIRR(res.Equity.IRR))

	type yearRow struct {
		contribution float64
		distribution float64
	}
	byYear := map[int]*yearRow{}
	var years []int
	for _, rec := range res.Periods {
		y := rec.Date.Year()
		row, ok := byYear[y]
		if !ok {
			row = &yearRow{}
			byYear[y] = row
			years = append(years, y)
		}
		row.contribution += rec.EquityContribution
		row.distribution += rec.FreeCashflow + rec.TerminalValue - rec.DebtService
	}
	sort.Ints(years)

	fmt.Fprintf(&b, "\nANNUAL EQUITY CASHFLOW SUMMARY:\n")
	fmt.Fprintf(&b, "%-6s %16s %16s %16s\n", "Year", "Contribution", "Distribution", "Net")
	for _, y := range years {
		row := byYear[y]
		fmt.Fprintf(&b, "%-6d %16s %16s %16s\n", y,
			Money(row.contribution), Money(row.distribution), Money(row.distribution-row.contribution))
	}
	return b.String()
}

func writePhaseSummary(b *strings.Builder, res *model.Results) {
	phases := []timeline.Phase{timeline.PhaseDevelopment, timeline.PhaseConstruction, timeline.PhaseOperations}
	for _, phase := range phases {
		var revenue, opex, capex, ebitda, ocf, fcf, drawdown, equity, service, cfaf float64
		for _, rec := range res.Periods {
			if rec.Phase != phase {
				continue
			}
			revenue += rec.Revenue
			opex += rec.Opex
			capex += rec.Capex
			ebitda += rec.EBITDA
			ocf += rec.OperatingCashflow
			fcf += rec.FreeCashflow
			drawdown += rec.DebtDrawdown
			equity += rec.EquityContribution
			service += rec.DebtService
			cfaf += rec.CashflowAfterFinancing
		}
		fmt.Fprintf(b, "\n%s:\n", phase)
		fmt.Fprintf(b, "  Revenue: $%s\n", Money(revenue))
		fmt.Fprintf(b, "  Opex: $%s\n", Money(opex))
		fmt.Fprintf(b, "  Capex: $%s\n", Money(capex))
		fmt.Fprintf(b, "  EBITDA: $%s\n", Money(ebitda))
		fmt.Fprintf(b, "  Operating Cashflow: $%s\n", Money(ocf))
		fmt.Fprintf(b, "  Free Cashflow: $%s\n", Money(fcf))
		fmt.Fprintf(b, "  Debt Drawdown: $%s\n", Money(drawdown))
		fmt.Fprintf(b, "  Equity Contribution: $%s\n", Money(equity))
		fmt.Fprintf(b, "  Debt Service: $%s\n", Money(service))
		fmt.Fprintf(b, "  Cashflow After Financing: $%s\n", Money(cfaf))
	}
}

func formatIRR(irr *float64) string {
	if irr == nil {
		return "N/A"
	}
	return fmt.Sprintf("%.2f%%", *irr*100)
}

// Money formats a currency amount with thousands separators and no
// decimals, e.g. 1234567.89 -> "1,234,568".
func Money(v float64) string {
	s := fmt.Sprintf("%.0f", v)
	negative := strings.HasPrefix(s, "-")
	if negative {
		s = s[1:]
	}

	var b strings.Builder
	lead := len(s) % 3
	if lead > 0 {
		b.WriteString(s[:lead])
	}
	for i := lead; i < len(s); i += 3 {
		if b.Len() > 0 {
			b.WriteByte(',')
		}
		b.WriteString(s[i : i+3])
	}

	if negative {
		return "-" + b.String()
	}
	return b.String()
}
