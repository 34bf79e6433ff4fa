package negotiation

import (
	"fmt"
	"math"

	"github.com/griphyn/agent-backend/pkg/deliverables"
	"github.com/griphyn/agent-backend/pkg/types"
)

const markupRate = 0.15

// Rate is one priced row from a creator's rate card. Price is per packed
// unit in whole dollars.
type Rate struct {
	ID             string
	Label          string
	DeliverableKey string
	Price          int64
}

// Guardrails constrain what the engine will recommend.
type Guardrails struct {
	MinDealAmount         int64
	AutoApprovalThreshold int64
	UsageRightsApproval   bool
	TimelineApproval      bool
	AutoDeclineNonAligned bool
}

// LineBreakdown is the priced result for one deliverable line.
type LineBreakdown struct {
	ID        string `json:"id"`
	Label     string `json:"label"`
	Count     int    `json:"count"`
	UnitPrice int64  `json:"unitPrice"`
	Units     int    `json:"units"`
	PackSize  int    `json:"packSize"`
	Total     int64  `json:"total"`
}

// Summary prices every deliverable line against the rate card.
type Summary struct {
	Breakdown []LineBreakdown `json:"breakdown"`
	Total     int64           `json:"total"`
}

// Recommendation is the engine's counter-offer output.
type Recommendation struct {
	RecommendedCounter int64    `json:"recommendedCounter"`
	PercentageIncrease int      `json:"percentageIncrease"`
	Rationale          []string `json:"rationale"`
}

// FindRate scans the rate card in order for the first entry matching key and
// returns its price, or 0 when nothing matches. Pack size is resolved from
// the static catalog independently of the rate card, so a creator editing
// prices cannot change pack billing.
func FindRate(key string, rateCard []Rate) (unitPrice int64, packSize int) {
	for _, rate := range rateCard {
		if rate.DeliverableKey == key {
			unitPrice = rate.Price
			break
		}
	}
	return unitPrice, deliverables.PackSizeFor(key)
}

// Summarize prices each deliverable line in input order. Lines without a
// matching rate stay in the breakdown with price 0. Partial packs bill as a
// whole pack, so 4 items sold in 3-packs bill as 2 packs.
func Summarize(lines []types.DeliverableLine, rateCard []Rate) Summary {
	breakdown := make([]LineBreakdown, 0, len(lines))
	var total int64

	for i, line := range lines {
		key := deliverables.DeriveKey(line.Type, line.Count)
		unitPrice, packSize := FindRate(key, rateCard)

		units := line.Count
		if packSize > 1 {
			units = int(math.Ceil(float64(line.Count) / float64(packSize)))
		}
		lineTotal := unitPrice * int64(units)

		breakdown = append(breakdown, LineBreakdown{
			ID:        fmt.Sprintf("%s-%d", key, i),
			Label:     line.Type,
			Count:     line.Count,
			UnitPrice: unitPrice,
			Units:     units,
			PackSize:  packSize,
			Total:     lineTotal,
		})
		total += lineTotal
	}

	return Summary{Breakdown: breakdown, Total: total}
}

// Recommend computes a counter-offer from the brand's current offer, the rate
// card total, and the creator's guardrails. The rate card total is
// authoritative when positive, otherwise the brand's offer seeds the
// baseline. The minimum deal amount and the auto-approval threshold both act
// as floors on the result. Pure and deterministic, no error paths: every
// numeric edge case degrades to a defined fallback.
func Recommend(currentOffer int64, guardrails Guardrails, rateCardTotal int64) Recommendation {
	safeAmount := max64(currentOffer, 0)
	rateBaseline := max64(rateCardTotal, 0)

	preferred := safeAmount
	if rateBaseline > 0 {
		preferred = rateBaseline
	}
	baseline := max64(preferred, guardrails.MinDealAmount)

	// 15% markup, rounded to the nearest 100 dollars.
	roundedRaise := int64(math.Round(float64(baseline)*(1+markupRate)/100)) * 100
	if roundedRaise == 0 {
		roundedRaise = baseline
	}
	recommendedCounter := max64(roundedRaise, guardrails.AutoApprovalThreshold)

	comparisonAmount := safeAmount
	if comparisonAmount == 0 {
		comparisonAmount = baseline
	}
	percentageIncrease := 0
	if comparisonAmount > 0 {
		percentageIncrease = int(math.Round(float64(recommendedCounter-comparisonAmount) / float64(comparisonAmount) * 100))
	}

	rationale := []string{}
	if rateBaseline > 0 {
		rationale = append(rationale, fmt.Sprintf("Rate card baseline totals %s for the requested deliverables.", FormatMoney(rateBaseline)))
	}
	if safeAmount > 0 {
		rationale = append(rationale, fmt.Sprintf("Brand's current offer is %s.", FormatMoney(safeAmount)))
	}
	rationale = append(rationale, fmt.Sprintf("Minimum deal amount is %s.", FormatMoney(guardrails.MinDealAmount)))
	rationale = append(rationale, fmt.Sprintf("Countering at %s delivers a %d%% uplift.", FormatMoney(recommendedCounter), percentageIncrease))
	if guardrails.UsageRightsApproval {
		rationale = append(rationale, "Usage rights requests require approval; the agent will guard against unpaid usage.")
	}
	if guardrails.TimelineApproval {
		rationale = append(rationale, "Timeline changes will be escalated before accepting.")
	}

	return Recommendation{
		RecommendedCounter: recommendedCounter,
		PercentageIncrease: percentageIncrease,
		Rationale:          rationale,
	}
}

func max64(a, b int64) int64 {
	if a > b {
		return a
	}
	return b
}
