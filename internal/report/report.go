package report

import (
	"fmt"
	"strings"
	"time"

	"github.com/gomarkdown/markdown"
	"github.com/gomarkdown/markdown/html"
	"github.com/gomarkdown/markdown/parser"

	"caseflow/domain/servicecase"
)

// Markdown renders a human-readable decision report for one case.
func Markdown(inputs servicecase.CaseInputs, d servicecase.Decision, generatedAt time.Time) string {
	var b strings.Builder

	fmt.Fprintf(&b, "# Service Case Decision Report\n\n")
	fmt.Fprintf(&b, "**Case ID:** %s  \n", d.CaseID)
	fmt.Fprintf(&b, "**Generated:** %s\n\n", generatedAt.Format(time.RFC3339))

	fmt.Fprintf(&b, "## Device\n\n")
	fmt.Fprintf(&b, "| Field | Value |\n|---|---|\n")
	fmt.Fprintf(&b, "| Type | %s |\n", inputs.DeviceType)
	fmt.Fprintf(&b, "| Brand | %s |\n", inputs.Brand)
	fmt.Fprintf(&b, "| Age | %d years |\n", inputs.Age)
	fmt.Fprintf(&b, "| Reported fault | %s |\n\n", inputs.ErrorDescription)

	fmt.Fprintf(&b, "## Decision\n\n")
	fmt.Fprintf(&b, "**Recommendation:** %s  \n", d.Recommendation)
	fmt.Fprintf(&b, "**Confidence:** %.0f%%\n\n", d.Confidence*100)
	if d.Justification != "" {
		fmt.Fprintf(&b, "%s\n\n", d.Justification)
	}

	if d.RepairOrder != nil {
		writeRepairOrder(&b, d.RepairOrder)
	}
	if len(d.ReplacementOptions) > 0 {
		writeOffers(&b, d.ReplacementOptions)
	}
	writeTrace(&b, d.Trace)

	fmt.Fprintf(&b, "---\n\n*Processed in %d ms.*\n", d.ProcessingTimeMs)
	return b.String()
}

func writeRepairOrder(b *strings.Builder, o *servicecase.RepairOrder) {
	fmt.Fprintf(b, "## Repair Order %s\n\n", o.OrderID)
	fmt.Fprintf(b, "| Item | Value |\n|---|---|\n")
	fmt.Fprintf(b, "| Parts | %.2f CHF |\n", o.Costs.PartsCost)
	fmt.Fprintf(b, "| Labor | %.2f CHF |\n", o.Costs.LaborCost)
	fmt.Fprintf(b, "| Total | %.2f CHF |\n", o.Costs.TotalCost)
	fmt.Fprintf(b, "| Duration | %s |\n", o.Timeline.EstimatedDuration)
	fmt.Fprintf(b, "| Technician | %s |\n", o.Timeline.TechnicianAvailability)
	fmt.Fprintf(b, "| Skill level | %s |\n", o.SkillRequired)
	fmt.Fprintf(b, "| Priority | %s |\n", o.Priority)
	fmt.Fprintf(b, "| Repair warranty | %s (%s) |\n\n", o.Warranty.RepairWarranty, o.Warranty.Coverage)
}

func writeOffers(b *strings.Builder, offers []servicecase.ReplacementOffer) {
	fmt.Fprintf(b, "## Replacement Options\n\n")
	for _, o := range offers {
		fmt.Fprintf(b, "### %d. %s %s\n\n", o.Rank, o.Product.Brand, o.Product.Model)
		fmt.Fprintf(b, "- Price: %.2f CHF (score %.0f, %s confidence)\n", o.Product.Price, o.Score, o.ConfidenceLabel)
		fmt.Fprintf(b, "- Energy rating: %s\n", o.Product.EnergyRating)
		fmt.Fprintf(b, "- Delivery: %s, warranty %d years\n", o.EstimatedDelivery, o.WarrantyYears)
		fmt.Fprintf(b, "- Trade-in value: %.2f CHF\n", o.TradeInValue)
		fmt.Fprintf(b, "- 10-year cost of ownership: %.2f CHF (%.2f CHF/month)\n", o.TCO.TenYearTotal, o.TCO.MonthlyCost)
		if o.FinancingAvailable {
			fmt.Fprintf(b, "- Financing available\n")
		}
		for _, r := range o.Reasons {
			fmt.Fprintf(b, "- %s\n", r)
		}
		fmt.Fprintf(b, "\n")
	}
}

func writeTrace(b *strings.Builder, t servicecase.DecisionTrace) {
	fmt.Fprintf(b, "## Analysis Trace\n\n")
	fmt.Fprintf(b, "- Triage: %s (%s)\n", t.Triage.Route, t.Triage.Reasoning)
	if t.Technical.Probability > 0 {
		fmt.Fprintf(b, "- Technical: %.0f%% success probability, %s complexity, %s risk\n",
			t.Technical.Probability*100, t.Technical.Complexity, t.Technical.Risk)
	}
	if t.Economic.Reasoning != "" {
		fmt.Fprintf(b, "- Economic: score %.0f/100, %s\n", t.Economic.Score, t.Economic.Reasoning)
	}
	if t.Final.OverrideApplied {
		fmt.Fprintf(b, "- Override applied: %s\n", t.Final.OverrideReason)
	}
	if t.Rules != nil {
		fmt.Fprintf(b, "- Business rules: %s (%.0f%% confidence)\n", t.Rules.Recommendation, t.Rules.Confidence*100)
		for _, r := range t.Rules.ReasoningChain {
			fmt.Fprintf(b, "  - %s\n", r)
		}
	}
	if len(t.WorkflowPath) > 0 {
		fmt.Fprintf(b, "- Workflow path: %s\n", strings.Join(t.WorkflowPath, " > "))
	}
	fmt.Fprintf(b, "\n")
}

// HTML converts a markdown report into a standalone HTML fragment.
func HTML(md string) []byte {
	p := parser.NewWithExtensions(parser.CommonExtensions)
	renderer := html.NewRenderer(html.RendererOptions{Flags: html.CommonFlags})
	return markdown.ToHTML([]byte(md), p, renderer)
}
