package assistant

import (
	"context"
	"fmt"
	"io"
	"strings"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/griphyn/agent-backend/pkg/db/models"
	"github.com/griphyn/agent-backend/pkg/enums"
	pkgerrors "github.com/griphyn/agent-backend/pkg/errors"
	"github.com/griphyn/agent-backend/pkg/logger"
	"github.com/griphyn/agent-backend/pkg/openai"
	"github.com/griphyn/agent-backend/pkg/types"
)

type stubDeals struct {
	deals []models.Deal
}

func (s *stubDeals) ListRecent(_ context.Context, _ uuid.UUID, limit int) ([]models.Deal, error) {
	if len(s.deals) > limit {
		return s.deals[:limit], nil
	}
	return s.deals, nil
}

type stubPayments struct {
	payouts  []models.Payout
	invoices []models.Invoice
}

func (s *stubPayments) ListPayouts(_ context.Context, _ uuid.UUID) ([]models.Payout, error) {
	return s.payouts, nil
}

func (s *stubPayments) ListInvoices(_ context.Context, _ uuid.UUID) ([]models.Invoice, error) {
	return s.invoices, nil
}

type stubCompleter struct {
	reply   string
	err     error
	lastReq openai.ChatRequest
}

func (s *stubCompleter) Complete(_ context.Context, req openai.ChatRequest) (string, error) {
	s.lastReq = req
	if s.err != nil {
		return "", s.err
	}
	return s.reply, nil
}

func testLogger() *logger.Logger {
	return logger.New(logger.Options{ServiceName: "test", Output: io.Discard})
}

func sampleDeal(title, brand string, value int64) models.Deal {
	goLive := time.Date(2026, 9, 15, 0, 0, 0, 0, time.UTC)
	return models.Deal{
		ID:             uuid.New(),
		Title:          title,
		Stage:          enums.DealStageNegotiation,
		PaymentStatus:  enums.PaymentStatusAwaiting,
		EstimatedValue: decimal.NewFromInt(value),
		GoLiveDate:     &goLive,
		Brand:          &models.Brand{Name: brand},
		CreativeBrief: types.CreativeBrief{
			Deliverables: []types.DeliverableLine{
				{Type: "Instagram Reel", Count: 3, Specs: "60s max"},
			},
			Timeline: "2 weeks",
		},
	}
}

func newTestService(t *testing.T, deals *stubDeals, payments *stubPayments, model completer) Service {
	t.Helper()
	svc, err := NewService(deals, payments, model, "gpt-4o-mini", testLogger())
	if err != nil {
		t.Fatalf("NewService: %v", err)
	}
	return svc
}

func TestChatBuildsContextAndHistory(t *testing.T) {
	deals := &stubDeals{deals: []models.Deal{sampleDeal("Summer Launch", "Acme Co", 15000)}}
	due := time.Date(2026, 9, 1, 0, 0, 0, 0, time.UTC)
	payments := &stubPayments{
		payouts: []models.Payout{{
			DealTitle: "Summer Launch",
			BrandName: "Acme Co",
			Amount:    decimal.NewFromInt(7500),
			Status:    enums.PayoutStatusHeldInEscrow,
			DueDate:   &due,
		}},
		invoices: []models.Invoice{{
			Number:    "INV-001",
			BrandName: "Acme Co",
			Amount:    decimal.NewFromInt(1200),
			Status:    enums.InvoiceStatusOverdue,
			IssuedAt:  time.Date(2026, 8, 1, 0, 0, 0, 0, time.UTC),
		}},
	}
	model := &stubCompleter{reply: "You have one active deal."}

	svc := newTestService(t, deals, payments, model)
	reply, err := svc.Chat(context.Background(), uuid.New(), ChatInput{
		Message: "How is my pipeline looking?",
		History: []Turn{
			{Role: openai.RoleUser, Content: "Hi"},
			{Role: openai.RoleAssistant, Content: "Hello!"},
			{Role: "tool", Content: "ignore me"},
		},
	})
	if err != nil {
		t.Fatalf("Chat: %v", err)
	}
	if reply.Reply != "You have one active deal." {
		t.Errorf("Reply = %q", reply.Reply)
	}

	req := model.lastReq
	if req.Model != "gpt-4o-mini" {
		t.Errorf("Model = %q", req.Model)
	}
	if req.Temperature != 0.2 || req.MaxTokens != 400 {
		t.Errorf("Temperature = %v, MaxTokens = %d", req.Temperature, req.MaxTokens)
	}
	// system + two history turns + user message; the tool turn is dropped
	if len(req.Messages) != 4 {
		t.Fatalf("got %d messages, want 4", len(req.Messages))
	}
	if req.Messages[0].Role != openai.RoleSystem {
		t.Errorf("first message role = %q", req.Messages[0].Role)
	}

	system := req.Messages[0].Content
	for _, want := range []string{
		"## Deals",
		"**Summer Launch** (Acme Co)",
		"Value: $15,000",
		"## Upcoming Payouts",
		"Status: held_in_escrow",
		"## Invoices Needing Attention",
		"**INV-001**",
		"## Creative Briefs",
		"3× Instagram Reel (60s max)",
	} {
		if !strings.Contains(system, want) {
			t.Errorf("system prompt missing %q", want)
		}
	}

	last := req.Messages[len(req.Messages)-1]
	if last.Role != openai.RoleUser || last.Content != "How is my pipeline looking?" {
		t.Errorf("last message = %+v", last)
	}
}

func TestChatRequiresMessage(t *testing.T) {
	svc := newTestService(t, &stubDeals{}, &stubPayments{}, &stubCompleter{})
	_, err := svc.Chat(context.Background(), uuid.New(), ChatInput{Message: "   "})
	if appErr := pkgerrors.As(err); appErr == nil || appErr.Code() != pkgerrors.CodeValidation {
		t.Fatalf("err = %v, want validation error", err)
	}
}

func TestChatFallsBackWithoutModel(t *testing.T) {
	deals := &stubDeals{deals: []models.Deal{sampleDeal("Summer Launch", "Acme Co", 15000)}}
	svc := newTestService(t, deals, &stubPayments{}, nil)

	reply, err := svc.Chat(context.Background(), uuid.New(), ChatInput{Message: "status?"})
	if err != nil {
		t.Fatalf("Chat: %v", err)
	}
	if !strings.Contains(reply.Reply, "1 active deals") {
		t.Errorf("fallback reply = %q", reply.Reply)
	}
}

func TestChatFallsBackOnModelError(t *testing.T) {
	model := &stubCompleter{err: fmt.Errorf("upstream down")}
	svc := newTestService(t, &stubDeals{}, &stubPayments{}, model)

	reply, err := svc.Chat(context.Background(), uuid.New(), ChatInput{Message: "status?"})
	if err != nil {
		t.Fatalf("Chat: %v", err)
	}
	if !strings.Contains(reply.Reply, "without a language model") {
		t.Errorf("fallback reply = %q", reply.Reply)
	}
}

func TestBuildContextEmptyPipeline(t *testing.T) {
	got := buildContext(nil, nil, nil)
	if got != "No deals, payouts, or invoices on file yet." {
		t.Errorf("buildContext = %q", got)
	}
}

func TestTrimHistoryCapsTurns(t *testing.T) {
	var history []Turn
	for i := 0; i < 30; i++ {
		history = append(history, Turn{Role: openai.RoleUser, Content: fmt.Sprintf("turn %d", i)})
	}
	trimmed := trimHistory(history)
	if len(trimmed) != maxHistoryTurns {
		t.Fatalf("got %d turns, want %d", len(trimmed), maxHistoryTurns)
	}
	if trimmed[len(trimmed)-1].Content != "turn 29" {
		t.Errorf("last turn = %q", trimmed[len(trimmed)-1].Content)
	}
}
