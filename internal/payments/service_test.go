package payments

import (
	"context"
	"io"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"

	"github.com/griphyn/agent-backend/pkg/db/models"
	"github.com/griphyn/agent-backend/pkg/enums"
	pkgerrors "github.com/griphyn/agent-backend/pkg/errors"
	"github.com/griphyn/agent-backend/pkg/logger"
)

type stubRepo struct {
	payouts  map[uuid.UUID]*models.Payout
	invoices map[uuid.UUID]*models.Invoice
}

func newStubRepo() *stubRepo {
	return &stubRepo{
		payouts:  map[uuid.UUID]*models.Payout{},
		invoices: map[uuid.UUID]*models.Invoice{},
	}
}

func (s *stubRepo) ListPayouts(_ context.Context, creatorID uuid.UUID) ([]models.Payout, error) {
	var out []models.Payout
	for _, p := range s.payouts {
		if p.CreatorID == creatorID {
			out = append(out, *p)
		}
	}
	return out, nil
}

func (s *stubRepo) FindPayoutByID(_ context.Context, id uuid.UUID) (*models.Payout, error) {
	p, ok := s.payouts[id]
	if !ok {
		return nil, gorm.ErrRecordNotFound
	}
	copied := *p
	return &copied, nil
}

func (s *stubRepo) UpdatePayout(_ context.Context, payout *models.Payout) error {
	copied := *payout
	s.payouts[payout.ID] = &copied
	return nil
}

func (s *stubRepo) ListInvoices(_ context.Context, creatorID uuid.UUID) ([]models.Invoice, error) {
	var out []models.Invoice
	for _, inv := range s.invoices {
		if inv.CreatorID == creatorID {
			out = append(out, *inv)
		}
	}
	return out, nil
}

func (s *stubRepo) FindInvoiceByID(_ context.Context, id uuid.UUID) (*models.Invoice, error) {
	inv, ok := s.invoices[id]
	if !ok {
		return nil, gorm.ErrRecordNotFound
	}
	copied := *inv
	return &copied, nil
}

func (s *stubRepo) UpdateInvoice(_ context.Context, invoice *models.Invoice) error {
	copied := *invoice
	s.invoices[invoice.ID] = &copied
	return nil
}

func testLogger() *logger.Logger {
	return logger.New(logger.Options{ServiceName: "test", Output: io.Discard})
}

func newTestService(t *testing.T, repo *stubRepo) Service {
	t.Helper()
	svc, err := NewService(repo, testLogger())
	if err != nil {
		t.Fatalf("NewService: %v", err)
	}
	return svc
}

func seedPayout(repo *stubRepo, creatorID uuid.UUID, amount int64, status enums.PayoutStatus) uuid.UUID {
	id := uuid.New()
	repo.payouts[id] = &models.Payout{
		ID:        id,
		CreatorID: creatorID,
		DealTitle: "Summer Launch",
		BrandName: "Acme Co",
		Amount:    decimal.NewFromInt(amount),
		Status:    status,
	}
	return id
}

func seedInvoice(repo *stubRepo, creatorID uuid.UUID, amount int64, status enums.InvoiceStatus) uuid.UUID {
	id := uuid.New()
	repo.invoices[id] = &models.Invoice{
		ID:        id,
		CreatorID: creatorID,
		Number:    "INV-" + id.String()[:8],
		DealTitle: "Summer Launch",
		BrandName: "Acme Co",
		Amount:    decimal.NewFromInt(amount),
		Status:    status,
		IssuedAt:  time.Date(2026, 8, 1, 0, 0, 0, 0, time.UTC),
	}
	return id
}

func TestOverviewSumsByStatus(t *testing.T) {
	repo := newStubRepo()
	creatorID := uuid.New()

	seedPayout(repo, creatorID, 5000, enums.PayoutStatusPending)
	seedPayout(repo, creatorID, 2500, enums.PayoutStatusHeldInEscrow)
	seedPayout(repo, creatorID, 9000, enums.PayoutStatusReleased)
	seedPayout(repo, uuid.New(), 4000, enums.PayoutStatusPending)

	seedInvoice(repo, creatorID, 1200, enums.InvoiceStatusPending)
	seedInvoice(repo, creatorID, 800, enums.InvoiceStatusOverdue)
	seedInvoice(repo, creatorID, 3000, enums.InvoiceStatusPaid)

	svc := newTestService(t, repo)
	overview, err := svc.Overview(context.Background(), creatorID)
	if err != nil {
		t.Fatalf("Overview: %v", err)
	}
	if overview.TotalUpcoming != "7500.00" {
		t.Errorf("TotalUpcoming = %s, want 7500.00", overview.TotalUpcoming)
	}
	if overview.TotalHeldInEscrow != "2500.00" {
		t.Errorf("TotalHeldInEscrow = %s, want 2500.00", overview.TotalHeldInEscrow)
	}
	if overview.OutstandingInvoices != "2000.00" {
		t.Errorf("OutstandingInvoices = %s, want 2000.00", overview.OutstandingInvoices)
	}
	if overview.PayoutCount != 3 {
		t.Errorf("PayoutCount = %d, want 3", overview.PayoutCount)
	}
	if overview.InvoiceCount != 3 {
		t.Errorf("InvoiceCount = %d, want 3", overview.InvoiceCount)
	}
}

func TestMarkInvoicePaid(t *testing.T) {
	repo := newStubRepo()
	creatorID := uuid.New()
	invoiceID := seedInvoice(repo, creatorID, 1200, enums.InvoiceStatusOverdue)

	svc := newTestService(t, repo)
	dto, err := svc.MarkInvoicePaid(context.Background(), creatorID, invoiceID)
	if err != nil {
		t.Fatalf("MarkInvoicePaid: %v", err)
	}
	if dto.Status != enums.InvoiceStatusPaid.String() {
		t.Errorf("Status = %s, want paid", dto.Status)
	}
	if dto.PaidAt == nil {
		t.Error("PaidAt not set")
	}
	if repo.invoices[invoiceID].Status != enums.InvoiceStatusPaid {
		t.Error("invoice not persisted as paid")
	}

	_, err = svc.MarkInvoicePaid(context.Background(), creatorID, invoiceID)
	if appErr := pkgerrors.As(err); appErr == nil || appErr.Code() != pkgerrors.CodeStateConflict {
		t.Fatalf("second MarkInvoicePaid err = %v, want state conflict", err)
	}
}

func TestMarkInvoicePaidWrongCreator(t *testing.T) {
	repo := newStubRepo()
	invoiceID := seedInvoice(repo, uuid.New(), 1200, enums.InvoiceStatusPending)

	svc := newTestService(t, repo)
	_, err := svc.MarkInvoicePaid(context.Background(), uuid.New(), invoiceID)
	if appErr := pkgerrors.As(err); appErr == nil || appErr.Code() != pkgerrors.CodeNotFound {
		t.Fatalf("err = %v, want not found", err)
	}
}

func TestAdvancePayoutWalksEscrowPipeline(t *testing.T) {
	repo := newStubRepo()
	creatorID := uuid.New()
	payoutID := seedPayout(repo, creatorID, 5000, enums.PayoutStatusPending)

	svc := newTestService(t, repo)
	ctx := context.Background()

	want := []enums.PayoutStatus{
		enums.PayoutStatusEscrowPending,
		enums.PayoutStatusHeldInEscrow,
		enums.PayoutStatusReleased,
	}
	for _, status := range want {
		dto, err := svc.AdvancePayout(ctx, creatorID, payoutID)
		if err != nil {
			t.Fatalf("AdvancePayout to %s: %v", status, err)
		}
		if dto.Status != status.String() {
			t.Fatalf("Status = %s, want %s", dto.Status, status)
		}
	}

	_, err := svc.AdvancePayout(ctx, creatorID, payoutID)
	if appErr := pkgerrors.As(err); appErr == nil || appErr.Code() != pkgerrors.CodeStateConflict {
		t.Fatalf("advancing released payout err = %v, want state conflict", err)
	}
}

func TestAdvancePayoutNotFound(t *testing.T) {
	repo := newStubRepo()
	svc := newTestService(t, repo)

	_, err := svc.AdvancePayout(context.Background(), uuid.New(), uuid.New())
	if appErr := pkgerrors.As(err); appErr == nil || appErr.Code() != pkgerrors.CodeNotFound {
		t.Fatalf("err = %v, want not found", err)
	}
}

func TestListPayoutsScopedToCreator(t *testing.T) {
	repo := newStubRepo()
	creatorID := uuid.New()
	seedPayout(repo, creatorID, 5000, enums.PayoutStatusPending)
	seedPayout(repo, uuid.New(), 4000, enums.PayoutStatusPending)

	svc := newTestService(t, repo)
	payouts, err := svc.ListPayouts(context.Background(), creatorID)
	if err != nil {
		t.Fatalf("ListPayouts: %v", err)
	}
	if len(payouts) != 1 {
		t.Fatalf("got %d payouts, want 1", len(payouts))
	}
	if payouts[0].Amount != "5000.00" {
		t.Errorf("Amount = %s, want 5000.00", payouts[0].Amount)
	}
}
