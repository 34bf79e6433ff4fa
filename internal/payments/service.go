package payments

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"

	"github.com/griphyn/agent-backend/pkg/db/models"
	"github.com/griphyn/agent-backend/pkg/enums"
	pkgerrors "github.com/griphyn/agent-backend/pkg/errors"
	"github.com/griphyn/agent-backend/pkg/logger"
)

type paymentsRepository interface {
	ListPayouts(ctx context.Context, creatorID uuid.UUID) ([]models.Payout, error)
	FindPayoutByID(ctx context.Context, id uuid.UUID) (*models.Payout, error)
	UpdatePayout(ctx context.Context, payout *models.Payout) error
	ListInvoices(ctx context.Context, creatorID uuid.UUID) ([]models.Invoice, error)
	FindInvoiceByID(ctx context.Context, id uuid.UUID) (*models.Invoice, error)
	UpdateInvoice(ctx context.Context, invoice *models.Invoice) error
}

// Service exposes payout and invoice tracking.
type Service interface {
	ListPayouts(ctx context.Context, creatorID uuid.UUID) ([]PayoutDTO, error)
	ListInvoices(ctx context.Context, creatorID uuid.UUID) ([]InvoiceDTO, error)
	Overview(ctx context.Context, creatorID uuid.UUID) (*OverviewDTO, error)
	MarkInvoicePaid(ctx context.Context, creatorID, invoiceID uuid.UUID) (*InvoiceDTO, error)
	AdvancePayout(ctx context.Context, creatorID, payoutID uuid.UUID) (*PayoutDTO, error)
}

type service struct {
	repo paymentsRepository
	logg *logger.Logger
	now  func() time.Time
}

// NewService wires the payments service.
func NewService(repo paymentsRepository, logg *logger.Logger) (Service, error) {
	if repo == nil {
		return nil, fmt.Errorf("payments repository required")
	}
	if logg == nil {
		return nil, fmt.Errorf("logger required")
	}
	return &service{repo: repo, logg: logg, now: time.Now}, nil
}

func (s *service) ListPayouts(ctx context.Context, creatorID uuid.UUID) ([]PayoutDTO, error) {
	payouts, err := s.repo.ListPayouts(ctx, creatorID)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "failed to list payouts")
	}
	dtos := make([]PayoutDTO, 0, len(payouts))
	for i := range payouts {
		dtos = append(dtos, *PayoutFromModel(&payouts[i]))
	}
	return dtos, nil
}

func (s *service) ListInvoices(ctx context.Context, creatorID uuid.UUID) ([]InvoiceDTO, error) {
	invoices, err := s.repo.ListInvoices(ctx, creatorID)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "failed to list invoices")
	}
	dtos := make([]InvoiceDTO, 0, len(invoices))
	for i := range invoices {
		dtos = append(dtos, *InvoiceFromModel(&invoices[i]))
	}
	return dtos, nil
}

// Overview sums upcoming payouts, escrowed funds, and unpaid invoices.
func (s *service) Overview(ctx context.Context, creatorID uuid.UUID) (*OverviewDTO, error) {
	payouts, err := s.repo.ListPayouts(ctx, creatorID)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "failed to list payouts")
	}
	invoices, err := s.repo.ListInvoices(ctx, creatorID)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "failed to list invoices")
	}

	upcoming := decimal.Zero
	escrowed := decimal.Zero
	for i := range payouts {
		switch payouts[i].Status {
		case enums.PayoutStatusPending, enums.PayoutStatusEscrowPending:
			upcoming = upcoming.Add(payouts[i].Amount)
		case enums.PayoutStatusHeldInEscrow:
			upcoming = upcoming.Add(payouts[i].Amount)
			escrowed = escrowed.Add(payouts[i].Amount)
		}
	}

	outstanding := decimal.Zero
	for i := range invoices {
		if invoices[i].Status != enums.InvoiceStatusPaid {
			outstanding = outstanding.Add(invoices[i].Amount)
		}
	}

	return &OverviewDTO{
		TotalUpcoming:       upcoming.StringFixed(2),
		TotalHeldInEscrow:   escrowed.StringFixed(2),
		OutstandingInvoices: outstanding.StringFixed(2),
		PayoutCount:         len(payouts),
		InvoiceCount:        len(invoices),
	}, nil
}

// MarkInvoicePaid transitions a pending or overdue invoice to paid.
func (s *service) MarkInvoicePaid(ctx context.Context, creatorID, invoiceID uuid.UUID) (*InvoiceDTO, error) {
	invoice, err := s.findInvoice(ctx, creatorID, invoiceID)
	if err != nil {
		return nil, err
	}
	if invoice.Status == enums.InvoiceStatusPaid {
		return nil, pkgerrors.New(pkgerrors.CodeStateConflict, "invoice is already paid")
	}

	paidAt := s.now().UTC()
	invoice.Status = enums.InvoiceStatusPaid
	invoice.PaidAt = &paidAt
	if err := s.repo.UpdateInvoice(ctx, invoice); err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "failed to update invoice")
	}

	ctx = s.logg.WithFields(ctx, map[string]any{"invoice_id": invoiceID.String(), "number": invoice.Number})
	s.logg.Info(ctx, "invoice marked paid")
	return InvoiceFromModel(invoice), nil
}

// AdvancePayout moves a payout one step along the escrow pipeline:
// pending -> escrow_pending -> held_in_escrow -> released.
func (s *service) AdvancePayout(ctx context.Context, creatorID, payoutID uuid.UUID) (*PayoutDTO, error) {
	payout, err := s.findPayout(ctx, creatorID, payoutID)
	if err != nil {
		return nil, err
	}

	next, ok := nextPayoutStatus(payout.Status)
	if !ok {
		return nil, pkgerrors.New(pkgerrors.CodeStateConflict,
			fmt.Sprintf("payout in status %q cannot advance", payout.Status)).
			WithDetails(map[string]string{"status": payout.Status.String()})
	}

	payout.Status = next
	if err := s.repo.UpdatePayout(ctx, payout); err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "failed to update payout")
	}

	ctx = s.logg.WithFields(ctx, map[string]any{"payout_id": payoutID.String(), "status": next.String()})
	s.logg.Info(ctx, "payout advanced")
	return PayoutFromModel(payout), nil
}

func (s *service) findInvoice(ctx context.Context, creatorID, invoiceID uuid.UUID) (*models.Invoice, error) {
	invoice, err := s.repo.FindInvoiceByID(ctx, invoiceID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, pkgerrors.New(pkgerrors.CodeNotFound, "invoice not found")
		}
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "failed to load invoice")
	}
	if invoice.CreatorID != creatorID {
		return nil, pkgerrors.New(pkgerrors.CodeNotFound, "invoice not found")
	}
	return invoice, nil
}

func (s *service) findPayout(ctx context.Context, creatorID, payoutID uuid.UUID) (*models.Payout, error) {
	payout, err := s.repo.FindPayoutByID(ctx, payoutID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, pkgerrors.New(pkgerrors.CodeNotFound, "payout not found")
		}
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "failed to load payout")
	}
	if payout.CreatorID != creatorID {
		return nil, pkgerrors.New(pkgerrors.CodeNotFound, "payout not found")
	}
	return payout, nil
}

func nextPayoutStatus(current enums.PayoutStatus) (enums.PayoutStatus, bool) {
	switch current {
	case enums.PayoutStatusPending:
		return enums.PayoutStatusEscrowPending, true
	case enums.PayoutStatusEscrowPending:
		return enums.PayoutStatusHeldInEscrow, true
	case enums.PayoutStatusHeldInEscrow:
		return enums.PayoutStatusReleased, true
	default:
		return current, false
	}
}
