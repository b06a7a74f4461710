package output

import (
	"encoding/csv"
	"encoding/json"
	"fmt"
	"io"
	"strings"

	"github.com/dealdesk/autotax/internal/domain"
	"github.com/shopspring/decimal"
)

// ReportGenerator renders calculation results in various formats.
type ReportGenerator struct {
	Out io.Writer
}

// NewReportGenerator creates a report generator writing to out.
func NewReportGenerator(out io.Writer) *ReportGenerator {
	return &ReportGenerator{Out: out}
}

// GenerateReport renders a result in the specified format.
func (rg *ReportGenerator) GenerateReport(result *domain.CalculationResult, format string) error {
	switch format {
	case "console":
		return rg.GenerateConsoleReport(result)
	case "json":
		return rg.GenerateJSONReport(result)
	case "csv":
		return rg.GenerateCSVReport(result)
	default:
		return fmt.Errorf("unsupported format: %s", format)
	}
}

// GenerateConsoleReport renders a human-readable breakdown with the
// calculation trace.
func (rg *ReportGenerator) GenerateConsoleReport(result *domain.CalculationResult) error {
	w := rg.Out
	fmt.Fprintln(w, strings.Repeat("=", 72))
	fmt.Fprintf(w, "VEHICLE TAX CALCULATION - %s (%s %s)\n", result.Jurisdiction, result.Scheme, result.DealType)
	fmt.Fprintln(w, strings.Repeat("=", 72))

	fmt.Fprintln(w, "\nTAXABLE BASE")
	fmt.Fprintf(w, "  Vehicle:  %s\n", FormatCurrency(result.Base.Vehicle))
	fmt.Fprintf(w, "  Fees:     %s\n", FormatCurrency(result.Base.Fees))
	fmt.Fprintf(w, "  Products: %s\n", FormatCurrency(result.Base.Products))
	fmt.Fprintf(w, "  Total:    %s\n", FormatCurrency(result.Base.Total))

	fmt.Fprintln(w, "\nTAX BY COMPONENT")
	for _, c := range result.Components {
		fmt.Fprintf(w, "  %-40s %8s  %s\n", c.Label, domain.Percent(c.Rate), FormatCurrency(c.Amount))
	}
	fmt.Fprintf(w, "  %-40s %8s  %s\n", "Combined", domain.Percent(result.CombinedRate), FormatCurrency(result.TotalTax))
	if !result.MonthlyTax.IsZero() {
		fmt.Fprintf(w, "\nPer-payment tax: %s\n", FormatCurrency(result.MonthlyTax))
	}

	if result.Reciprocity != nil {
		fmt.Fprintln(w, "\nRECIPROCITY")
		fmt.Fprintf(w, "  Origin state: %s\n", result.Reciprocity.OriginState)
		fmt.Fprintf(w, "  Credit:       %s\n", FormatCurrency(result.Reciprocity.Credit))
		fmt.Fprintf(w, "  Proof needed: %t\n", result.Reciprocity.ProofRequired)
	}
	fmt.Fprintf(w, "\nNET TAX DUE: %s\n", FormatCurrency(result.NetTaxDue))
	if result.Approximate {
		fmt.Fprintln(w, "(approximate: flat state rate used in place of locality breakdown)")
	}

	fmt.Fprintln(w, "\nCALCULATION TRACE")
	for i, note := range result.Notes {
		fmt.Fprintf(w, "  %2d. %s\n", i+1, note)
	}
	return nil
}

// GenerateJSONReport renders the result as indented JSON.
func (rg *ReportGenerator) GenerateJSONReport(result *domain.CalculationResult) error {
	enc := json.NewEncoder(rg.Out)
	enc.SetIndent("", "  ")
	return enc.Encode(result)
}

// GenerateCSVReport renders the component breakdown as CSV rows.
func (rg *ReportGenerator) GenerateCSVReport(result *domain.CalculationResult) error {
	w := csv.NewWriter(rg.Out)
	if err := w.Write([]string{"label", "type", "rate", "amount"}); err != nil {
		return err
	}
	for _, c := range result.Components {
		if err := w.Write([]string{c.Label, string(c.Type), c.Rate.String(), c.Amount.StringFixed(2)}); err != nil {
			return err
		}
	}
	if err := w.Write([]string{"TOTAL", "", result.CombinedRate.String(), result.TotalTax.StringFixed(2)}); err != nil {
		return err
	}
	if result.Reciprocity != nil {
		if err := w.Write([]string{"RECIPROCITY CREDIT", result.Reciprocity.OriginState, "", result.Reciprocity.Credit.StringFixed(2)}); err != nil {
			return err
		}
	}
	if err := w.Write([]string{"NET DUE", "", "", result.NetTaxDue.StringFixed(2)}); err != nil {
		return err
	}
	w.Flush()
	return w.Error()
}

// FormatCurrency formats a decimal as a dollar amount with thousands
// separators.
func FormatCurrency(d decimal.Decimal) string {
	s := d.StringFixed(2)
	negative := strings.HasPrefix(s, "-")
	if negative {
		s = s[1:]
	}
	parts := strings.SplitN(s, ".", 2)
	whole := parts[0]
	var b strings.Builder
	for i, r := range whole {
		if i > 0 && (len(whole)-i)%3 == 0 {
			b.WriteByte(',')
		}
		b.WriteRune(r)
	}
	out := "$" + b.String() + "." + parts[1]
	if negative {
		out = "-" + out
	}
	return out
}
