package report

import (
	"bytes"
	"fmt"
	"strings"

	"github.com/yuin/goldmark"
	"github.com/yuin/goldmark/extension"
	"github.com/yuin/goldmark/text"

	"project_finance/pkg/core/model"
)

// Markdown renders a summary of a run as a markdown document with the
// sizing and equity tables.
func Markdown(p model.Parameters, res *model.Results) string {
	var b strings.Builder

	fmt.Fprintf(&b, "# Project Finance Model Summary\n\n")
	fmt.Fprintf(&b, "Model start: %s\n\n", res.Timeline.ModelStart.Format("2006-01-02"))

	fmt.Fprintf(&b, "## Financing Structure\n\n")
	fmt.Fprintf(&b, "| Item | Value |\n|---|---|\n")
	fmt.Fprintf(&b, "| Total CAPEX | $%s |\n", Money(p.CapexTotal))
	fmt.Fprintf(&b, "| Debt Amount | $%s |\n", Money(res.Sizing.DebtAmount))
	fmt.Fprintf(&b, "| Equity Amount | $%s |\n", Money(res.Sizing.EquityAmount))
	fmt.Fprintf(&b, "| Gearing | %.1f%% |\n", res.Sizing.GearingRatio*100)
	fmt.Fprintf(&b, "| Binding Constraint | %s |\n", res.Sizing.BindingConstraint)
	fmt.Fprintf(&b, "| Annual Debt Service | $%s |\n", Money(res.Sizing.AnnualDebtService))
	if res.Sizing.ActualDSCR != nil {
		fmt.Fprintf(&b, "| Actual DSCR | %.2fx |\n", *res.Sizing.ActualDSCR)
	}

	fmt.Fprintf(&b, "\n## Equity Returns\n\n")
	fmt.Fprintf(&b, "| Item | Value |\n|---|---|\n")
	fmt.Fprintf(&b, "| Total Contributions | $%s |\n", Money(res.Equity.TotalContributions))
	fmt.Fprintf(&b, "| Total Distributions | $%s |\n", Money(res.Equity.TotalDistributions))
	fmt.Fprintf(&b, "| Equity Multiple | %.2fx |\n", res.Equity.EquityMultiple)
	fmt.Fprintf(&b, "| Equity IRR | %s |\n", formatIRR(res.Equity.IRR))

	return b.String()
}

// HTML converts the markdown summary to HTML for API consumers.
func HTML(p model.Parameters, res *model.Results) (string, error) {
	md := goldmark.New(goldmark.WithExtensions(extension.Table))
	var buf bytes.Buffer
	if err := md.Convert([]byte(Markdown(p, res)), &buf); err != nil {
		return "", fmt.Errorf("render report: %w", err)
	}
	return buf.String(), nil
}

// ValidMarkdown checks that the generated summary parses as markdown.
// Goldmark is permissive, so this is a basic structural sanity check.
func ValidMarkdown(input string) bool {
	parser := goldmark.DefaultParser()
	reader := text.NewReader([]byte(input))
	return parser.Parse(reader) != nil
}
