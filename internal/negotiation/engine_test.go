package negotiation

import (
	"reflect"
	"testing"

	"github.com/griphyn/agent-backend/pkg/types"
)

func sampleRateCard() []Rate {
	return []Rate{
		{ID: "a", Label: "Instagram Reel", DeliverableKey: "instagram-reel", Price: 1000},
		{ID: "b", Label: "Instagram Stories (3-pack)", DeliverableKey: "instagram-stories-3", Price: 900},
		{ID: "c", Label: "TikTok Feed Post", DeliverableKey: "tiktok-feed-post", Price: 1200},
	}
}

func TestFindRate(t *testing.T) {
	price, packSize := FindRate("instagram-reel", sampleRateCard())
	if price != 1000 || packSize != 1 {
		t.Fatalf("expected 1000/1, got %d/%d", price, packSize)
	}

	price, packSize = FindRate("instagram-stories-3", sampleRateCard())
	if price != 900 || packSize != 3 {
		t.Fatalf("expected 900/3, got %d/%d", price, packSize)
	}

	price, packSize = FindRate("youtube-video", sampleRateCard())
	if price != 0 || packSize != 1 {
		t.Fatalf("expected 0/1 for unpriced key, got %d/%d", price, packSize)
	}
}

func TestFindRateFirstMatchWins(t *testing.T) {
	card := []Rate{
		{ID: "a", DeliverableKey: "instagram-reel", Price: 1000},
		{ID: "b", DeliverableKey: "instagram-reel", Price: 2500},
	}
	price, _ := FindRate("instagram-reel", card)
	if price != 1000 {
		t.Fatalf("expected first entry to win, got %d", price)
	}
}

func TestSummarizeReelRoundTrip(t *testing.T) {
	lines := []types.DeliverableLine{{Type: "Instagram Reels", Count: 3, Specs: "x"}}
	summary := Summarize(lines, sampleRateCard())

	if summary.Total != 3000 {
		t.Fatalf("expected total 3000, got %d", summary.Total)
	}
	if len(summary.Breakdown) != 1 {
		t.Fatalf("expected 1 breakdown line, got %d", len(summary.Breakdown))
	}
	got := summary.Breakdown[0]
	want := LineBreakdown{ID: "instagram-reel-0", Label: "Instagram Reels", Count: 3, UnitPrice: 1000, Units: 3, PackSize: 1, Total: 3000}
	if got != want {
		t.Fatalf("breakdown mismatch:\n got %+v\nwant %+v", got, want)
	}
}

func TestSummarizePackRounding(t *testing.T) {
	// Count 6 on the singular story label lands on the 3-pack key and bills
	// as 2 packs. The story tie-break sends indivisible counts to the single
	// key, so the indivisible ceiling is checked through FindRate below.
	lines := []types.DeliverableLine{{Type: "Instagram Story (3-pack)", Count: 6}}
	summary := Summarize(lines, sampleRateCard())
	if summary.Breakdown[0].Units != 2 || summary.Total != 1800 {
		t.Fatalf("expected 2 units / 1800 total, got %d / %d", summary.Breakdown[0].Units, summary.Total)
	}

	price, packSize := FindRate("instagram-stories-3", sampleRateCard())
	units := (4 + packSize - 1) / packSize
	if units != 2 || price*int64(units) != 1800 {
		t.Fatalf("expected ceil(4/3)=2 packs at 1800, got %d packs at %d", units, price*int64(units))
	}
}

func TestSummarizePluralStoryLabelUnpriced(t *testing.T) {
	// A plural-only label misses the story keys and slugifies, so nothing on
	// the card prices it.
	lines := []types.DeliverableLine{{Type: "Instagram Stories (3-pack)", Count: 6}}
	summary := Summarize(lines, sampleRateCard())
	if summary.Breakdown[0].ID != "instagram-stories-3-pack-0" {
		t.Fatalf("unexpected line id %q", summary.Breakdown[0].ID)
	}
	if summary.Breakdown[0].UnitPrice != 0 || summary.Total != 0 {
		t.Fatalf("expected unpriced line, got %+v", summary.Breakdown[0])
	}
}

func TestSummarizeKeepsUnpricedLines(t *testing.T) {
	lines := []types.DeliverableLine{
		{Type: "Instagram Reels", Count: 2},
		{Type: "Twitch Stream", Count: 1},
	}
	summary := Summarize(lines, sampleRateCard())
	if len(summary.Breakdown) != 2 {
		t.Fatalf("expected both lines kept, got %d", len(summary.Breakdown))
	}
	if summary.Breakdown[1].UnitPrice != 0 || summary.Breakdown[1].Total != 0 {
		t.Fatalf("expected unpriced line at 0, got %+v", summary.Breakdown[1])
	}
	if summary.Total != 2000 {
		t.Fatalf("expected total 2000, got %d", summary.Total)
	}
}

func TestSummarizeEmptyInput(t *testing.T) {
	summary := Summarize(nil, sampleRateCard())
	if summary.Total != 0 || len(summary.Breakdown) != 0 {
		t.Fatalf("expected empty summary, got %+v", summary)
	}
}

func TestSummarizeIdempotent(t *testing.T) {
	lines := []types.DeliverableLine{
		{Type: "Instagram Reels", Count: 3},
		{Type: "Instagram Stories (3-pack)", Count: 6},
	}
	first := Summarize(lines, sampleRateCard())
	second := Summarize(lines, sampleRateCard())
	if !reflect.DeepEqual(first, second) {
		t.Fatalf("summaries differ:\n%+v\n%+v", first, second)
	}
}

func TestSummarizeMonotonicInPrice(t *testing.T) {
	lines := []types.DeliverableLine{
		{Type: "Instagram Reels", Count: 3},
		{Type: "TikTok Feed Post", Count: 1},
	}
	base := Summarize(lines, sampleRateCard())

	raised := sampleRateCard()
	raised[0].Price += 500
	bumped := Summarize(lines, raised)
	if bumped.Total < base.Total {
		t.Fatalf("raising a price lowered the total: %d -> %d", base.Total, bumped.Total)
	}
}

func TestRecommendOfferOnly(t *testing.T) {
	guardrails := Guardrails{MinDealAmount: 5000, AutoApprovalThreshold: 10000}
	rec := Recommend(15000, guardrails, 0)

	if rec.RecommendedCounter != 17300 {
		t.Fatalf("expected counter 17300, got %d", rec.RecommendedCounter)
	}
	if rec.PercentageIncrease != 15 {
		t.Fatalf("expected 15%% uplift, got %d", rec.PercentageIncrease)
	}
}

func TestRecommendZeroOffer(t *testing.T) {
	guardrails := Guardrails{MinDealAmount: 5000, AutoApprovalThreshold: 0}
	rec := Recommend(0, guardrails, 0)

	if rec.RecommendedCounter != 5800 {
		t.Fatalf("expected counter 5800, got %d", rec.RecommendedCounter)
	}
	if rec.PercentageIncrease != 16 {
		t.Fatalf("expected 16%% uplift, got %d", rec.PercentageIncrease)
	}
}

func TestRecommendRateCardAuthoritative(t *testing.T) {
	guardrails := Guardrails{MinDealAmount: 1000}
	rec := Recommend(2000, guardrails, 10000)

	// 10000 * 1.15 = 11500, already a multiple of 100.
	if rec.RecommendedCounter != 11500 {
		t.Fatalf("expected counter 11500, got %d", rec.RecommendedCounter)
	}
	// Uplift is against the brand's offer, not the rate baseline.
	if rec.PercentageIncrease != 475 {
		t.Fatalf("expected 475%% uplift, got %d", rec.PercentageIncrease)
	}
}

func TestRecommendFloors(t *testing.T) {
	cases := []struct {
		name       string
		offer      int64
		total      int64
		guardrails Guardrails
	}{
		{"min deal floor", 100, 0, Guardrails{MinDealAmount: 5000}},
		{"auto approval floor", 100, 0, Guardrails{AutoApprovalThreshold: 9000}},
		{"both floors", 0, 0, Guardrails{MinDealAmount: 4000, AutoApprovalThreshold: 9000}},
		{"negative offer clamped", -500, -200, Guardrails{MinDealAmount: 3000}},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			rec := Recommend(tc.offer, tc.guardrails, tc.total)
			if rec.RecommendedCounter < tc.guardrails.MinDealAmount {
				t.Fatalf("counter %d below min deal amount %d", rec.RecommendedCounter, tc.guardrails.MinDealAmount)
			}
			if rec.RecommendedCounter < tc.guardrails.AutoApprovalThreshold {
				t.Fatalf("counter %d below auto-approval threshold %d", rec.RecommendedCounter, tc.guardrails.AutoApprovalThreshold)
			}
		})
	}
}

func TestRecommendAllZero(t *testing.T) {
	rec := Recommend(0, Guardrails{}, 0)
	if rec.RecommendedCounter != 0 {
		t.Fatalf("expected zero counter, got %d", rec.RecommendedCounter)
	}
	if rec.PercentageIncrease != 0 {
		t.Fatalf("expected zero uplift, got %d", rec.PercentageIncrease)
	}
	if len(rec.Rationale) < 2 {
		t.Fatalf("expected baseline rationale entries, got %v", rec.Rationale)
	}
}

func TestRecommendRationaleOrder(t *testing.T) {
	guardrails := Guardrails{MinDealAmount: 5000, UsageRightsApproval: true, TimelineApproval: true}
	rec := Recommend(15000, guardrails, 8000)

	if len(rec.Rationale) != 6 {
		t.Fatalf("expected 6 rationale entries, got %d: %v", len(rec.Rationale), rec.Rationale)
	}
	if rec.Rationale[0] != "Rate card baseline totals $8,000 for the requested deliverables." {
		t.Fatalf("unexpected first rationale: %q", rec.Rationale[0])
	}
	if rec.Rationale[1] != "Brand's current offer is $15,000." {
		t.Fatalf("unexpected second rationale: %q", rec.Rationale[1])
	}
	if rec.Rationale[2] != "Minimum deal amount is $5,000." {
		t.Fatalf("unexpected third rationale: %q", rec.Rationale[2])
	}
}
