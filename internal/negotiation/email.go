package negotiation

import (
	"fmt"
	"strconv"
	"strings"
)

// BuildCounterEmail renders a deterministic counter-offer draft the creator
// can review before sending. It is the fallback body when the language-model
// drafter is unavailable and the seed context when it is.
func BuildCounterEmail(brandName string, counterAmount int64, breakdown []LineBreakdown, guardrails Guardrails) string {
	if strings.TrimSpace(brandName) == "" {
		brandName = "there"
	}

	lines := make([]string, 0, len(breakdown))
	for _, item := range breakdown {
		if item.UnitPrice <= 0 {
			lines = append(lines, fmt.Sprintf("• %s - pricing needed", item.Label))
			continue
		}
		countLabel := fmt.Sprintf("%d total", item.Count)
		if item.PackSize > 1 {
			countLabel = fmt.Sprintf("%d × %d-pack (%d total)", item.Units, item.PackSize, item.Count)
		}
		lines = append(lines, fmt.Sprintf("• %s: %s - %s", item.Label, countLabel, FormatMoney(item.Total)))
	}

	body := strings.Join(lines, "\n")
	if len(breakdown) == 0 {
		body = "• Deliverables TBD"
	}

	guardrailNote := "Happy to discuss usage if you need flexibility."
	if guardrails.UsageRightsApproval {
		guardrailNote = "Usage rights still require approval."
	}

	return fmt.Sprintf(`Hi %s,

Thanks for sharing the scope. I can approve this at %s based on:

%s

This keeps us in line with campaign benchmarks and meets the minimum deal size of %s. %s

Let me know if this works or if we should adjust anything.

Best,
The Griphyn Team`, brandName, FormatMoney(counterAmount), body, FormatMoney(guardrails.MinDealAmount), guardrailNote)
}

// FormatMoney renders whole dollars with thousands separators, e.g. $17,300.
func FormatMoney(amount int64) string {
	negative := amount < 0
	if negative {
		amount = -amount
	}

	digits := strconv.FormatInt(amount, 10)
	var b strings.Builder
	for i, r := range digits {
		if i > 0 && (len(digits)-i)%3 == 0 {
			b.WriteByte(',')
		}
		b.WriteRune(r)
	}

	if negative {
		return "-$" + b.String()
	}
	return "$" + b.String()
}
