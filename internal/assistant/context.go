package assistant

import (
	"fmt"
	"strings"
	"time"

	"github.com/griphyn/agent-backend/internal/negotiation"
	"github.com/griphyn/agent-backend/pkg/db/models"
	"github.com/griphyn/agent-backend/pkg/enums"
)

const (
	maxContextDeals  = 6
	maxContextBriefs = 4
)

// buildContext renders the creator's current pipeline as Markdown sections
// the model can quote from. Sections with no rows are omitted entirely.
func buildContext(deals []models.Deal, payouts []models.Payout, invoices []models.Invoice) string {
	var sections []string

	if section := dealSection(deals); section != "" {
		sections = append(sections, section)
	}
	if section := payoutSection(payouts); section != "" {
		sections = append(sections, section)
	}
	if section := invoiceSection(invoices); section != "" {
		sections = append(sections, section)
	}
	if section := briefSection(deals); section != "" {
		sections = append(sections, section)
	}

	if len(sections) == 0 {
		return "No deals, payouts, or invoices on file yet."
	}
	return strings.Join(sections, "\n\n")
}

func dealSection(deals []models.Deal) string {
	if len(deals) == 0 {
		return ""
	}
	if len(deals) > maxContextDeals {
		deals = deals[:maxContextDeals]
	}

	lines := []string{"## Deals"}
	for i := range deals {
		deal := &deals[i]
		parts := []string{
			fmt.Sprintf("Stage: %s", deal.Stage),
			fmt.Sprintf("Value: %s", negotiation.FormatMoney(deal.EstimatedValue.Round(0).IntPart())),
			fmt.Sprintf("Payment: %s", deal.PaymentStatus),
		}
		if deal.GoLiveDate != nil {
			parts = append(parts, fmt.Sprintf("Go-live: %s", deal.GoLiveDate.Format("Jan 2, 2006")))
		}
		lines = append(lines, fmt.Sprintf("- **%s** (%s) • %s", deal.Title, brandName(deal), strings.Join(parts, " • ")))
	}
	return strings.Join(lines, "\n")
}

func payoutSection(payouts []models.Payout) string {
	var lines []string
	for i := range payouts {
		payout := &payouts[i]
		if payout.Status == enums.PayoutStatusReleased {
			continue
		}
		parts := []string{
			fmt.Sprintf("Amount: %s", negotiation.FormatMoney(payout.Amount.Round(0).IntPart())),
			fmt.Sprintf("Status: %s", payout.Status),
		}
		if payout.DueDate != nil {
			parts = append(parts, fmt.Sprintf("Due: %s", payout.DueDate.Format("Jan 2, 2006")))
		}
		if payout.Milestone != nil && *payout.Milestone != "" {
			parts = append(parts, fmt.Sprintf("Milestone: %s", *payout.Milestone))
		}
		lines = append(lines, fmt.Sprintf("- **%s** (%s) • %s", payout.DealTitle, payout.BrandName, strings.Join(parts, " • ")))
	}
	if len(lines) == 0 {
		return ""
	}
	return "## Upcoming Payouts\n" + strings.Join(lines, "\n")
}

func invoiceSection(invoices []models.Invoice) string {
	var lines []string
	for i := range invoices {
		invoice := &invoices[i]
		if invoice.Status == enums.InvoiceStatusPaid {
			continue
		}
		lines = append(lines, fmt.Sprintf("- **%s** (%s) • Amount: %s • Status: %s • Issued: %s",
			invoice.Number,
			invoice.BrandName,
			negotiation.FormatMoney(invoice.Amount.Round(0).IntPart()),
			invoice.Status,
			invoice.IssuedAt.Format("Jan 2, 2006")))
	}
	if len(lines) == 0 {
		return ""
	}
	return "## Invoices Needing Attention\n" + strings.Join(lines, "\n")
}

func briefSection(deals []models.Deal) string {
	var lines []string
	for i := range deals {
		deal := &deals[i]
		if len(deal.CreativeBrief.Deliverables) == 0 {
			continue
		}
		if len(lines) >= maxContextBriefs {
			break
		}

		var items []string
		for _, line := range deal.CreativeBrief.Deliverables {
			entry := fmt.Sprintf("%d× %s", line.Count, line.Type)
			if line.Specs != "" {
				entry += fmt.Sprintf(" (%s)", line.Specs)
			}
			items = append(items, entry)
		}
		row := fmt.Sprintf("- **%s**: %s", deal.Title, strings.Join(items, ", "))
		if deal.CreativeBrief.Timeline != "" {
			row += fmt.Sprintf(" • Timeline: %s", deal.CreativeBrief.Timeline)
		}
		lines = append(lines, row)
	}
	if len(lines) == 0 {
		return ""
	}
	return "## Creative Briefs\n" + strings.Join(lines, "\n")
}

func brandName(deal *models.Deal) string {
	if deal.Brand != nil && deal.Brand.Name != "" {
		return deal.Brand.Name
	}
	return "Unknown brand"
}

// fallbackReply summarizes the pipeline when no language model is configured.
func fallbackReply(deals []models.Deal, payouts []models.Payout, invoices []models.Invoice, now time.Time) string {
	active := 0
	for i := range deals {
		if !deals[i].Stage.IsClosed() {
			active++
		}
	}

	upcoming := 0
	for i := range payouts {
		if payouts[i].Status != enums.PayoutStatusReleased {
			upcoming++
		}
	}

	unpaid := 0
	for i := range invoices {
		if invoices[i].Status != enums.InvoiceStatusPaid {
			unpaid++
		}
	}

	return fmt.Sprintf(
		"The assistant is running without a language model right now. As of %s you have %d active deals, %d upcoming payouts, and %d unpaid invoices. Check the deals and payments pages for details.",
		now.Format("Jan 2, 2006"), active, upcoming, unpaid)
}
