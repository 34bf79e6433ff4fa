package negotiation

import (
	"strings"
	"testing"
)

func TestFormatMoney(t *testing.T) {
	cases := []struct {
		amount int64
		want   string
	}{
		{0, "$0"},
		{900, "$900"},
		{5800, "$5,800"},
		{17300, "$17,300"},
		{1234567, "$1,234,567"},
		{-4200, "-$4,200"},
	}
	for _, tc := range cases {
		if got := FormatMoney(tc.amount); got != tc.want {
			t.Errorf("FormatMoney(%d) = %q, want %q", tc.amount, got, tc.want)
		}
	}
}

func TestBuildCounterEmail(t *testing.T) {
	breakdown := []LineBreakdown{
		{Label: "Instagram Reels", Count: 3, UnitPrice: 1000, Units: 3, PackSize: 1, Total: 3000},
		{Label: "Instagram Stories (3-pack)", Count: 6, UnitPrice: 900, Units: 2, PackSize: 3, Total: 1800},
		{Label: "Twitch Stream", Count: 1, UnitPrice: 0, Units: 1, PackSize: 1, Total: 0},
	}
	guardrails := Guardrails{MinDealAmount: 5000, UsageRightsApproval: true}

	email := BuildCounterEmail("Acme Co", 17300, breakdown, guardrails)

	for _, want := range []string{
		"Hi Acme Co,",
		"$17,300",
		"Instagram Reels: 3 total - $3,000",
		"2 × 3-pack (6 total) - $1,800",
		"Twitch Stream - pricing needed",
		"minimum deal size of $5,000",
		"Usage rights still require approval.",
		"The Griphyn Team",
	} {
		if !strings.Contains(email, want) {
			t.Errorf("email missing %q:\n%s", want, email)
		}
	}
}

func TestBuildCounterEmailFallbacks(t *testing.T) {
	email := BuildCounterEmail("", 5800, nil, Guardrails{MinDealAmount: 5000})
	if !strings.Contains(email, "Hi there,") {
		t.Fatalf("expected generic greeting:\n%s", email)
	}
	if !strings.Contains(email, "• Deliverables TBD") {
		t.Fatalf("expected TBD line:\n%s", email)
	}
	if !strings.Contains(email, "Happy to discuss usage if you need flexibility.") {
		t.Fatalf("expected relaxed usage note:\n%s", email)
	}
}
