package assistant

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/griphyn/agent-backend/pkg/db/models"
	pkgerrors "github.com/griphyn/agent-backend/pkg/errors"
	"github.com/griphyn/agent-backend/pkg/logger"
	"github.com/griphyn/agent-backend/pkg/openai"
)

const systemPrompt = `You are the Griphyn AI talent agent assistant. You help content creators manage brand deals, negotiations, payments, and creative deliverables.

Answer using the pipeline context below. Be concise and specific. Format replies in Markdown: short paragraphs, bold for deal and brand names, bullet lists for multiple items. Quote dollar amounts exactly as they appear in the context. If the context does not cover the question, say so rather than guessing.`

const (
	maxMessageLength = 2000
	maxHistoryTurns  = 20
	replyTemperature = 0.2
	replyMaxTokens   = 400
)

type dealProvider interface {
	ListRecent(ctx context.Context, creatorID uuid.UUID, limit int) ([]models.Deal, error)
}

type paymentProvider interface {
	ListPayouts(ctx context.Context, creatorID uuid.UUID) ([]models.Payout, error)
	ListInvoices(ctx context.Context, creatorID uuid.UUID) ([]models.Invoice, error)
}

type completer interface {
	Complete(ctx context.Context, req openai.ChatRequest) (string, error)
}

// Turn is one prior exchange in the conversation.
type Turn struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

// ChatInput carries a user message plus the client-held transcript.
type ChatInput struct {
	Message string
	History []Turn
}

// ChatReply is the assistant's answer.
type ChatReply struct {
	Reply string `json:"reply"`
}

// Service answers creator questions grounded in their deal pipeline.
type Service interface {
	Chat(ctx context.Context, creatorID uuid.UUID, input ChatInput) (*ChatReply, error)
}

type service struct {
	deals    dealProvider
	payments paymentProvider
	model    completer
	modelID  string
	logg     *logger.Logger
	now      func() time.Time
}

// NewService wires the assistant. A nil model puts the assistant in
// deterministic fallback mode.
func NewService(deals dealProvider, payments paymentProvider, model completer, modelID string, logg *logger.Logger) (Service, error) {
	if deals == nil {
		return nil, fmt.Errorf("deal provider required")
	}
	if payments == nil {
		return nil, fmt.Errorf("payment provider required")
	}
	if logg == nil {
		return nil, fmt.Errorf("logger required")
	}
	return &service{
		deals:    deals,
		payments: payments,
		model:    model,
		modelID:  modelID,
		logg:     logg,
		now:      time.Now,
	}, nil
}

func (s *service) Chat(ctx context.Context, creatorID uuid.UUID, input ChatInput) (*ChatReply, error) {
	message := strings.TrimSpace(input.Message)
	if message == "" {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "message is required")
	}
	if len(message) > maxMessageLength {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "message is too long")
	}

	deals, err := s.deals.ListRecent(ctx, creatorID, maxContextDeals)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "failed to load deals")
	}
	payouts, err := s.payments.ListPayouts(ctx, creatorID)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "failed to load payouts")
	}
	invoices, err := s.payments.ListInvoices(ctx, creatorID)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "failed to load invoices")
	}

	if s.model == nil {
		return &ChatReply{Reply: fallbackReply(deals, payouts, invoices, s.now())}, nil
	}

	messages := []openai.Message{{
		Role:    openai.RoleSystem,
		Content: systemPrompt + "\n\n" + buildContext(deals, payouts, invoices),
	}}
	for _, turn := range trimHistory(input.History) {
		messages = append(messages, openai.Message{Role: turn.Role, Content: turn.Content})
	}
	messages = append(messages, openai.Message{Role: openai.RoleUser, Content: message})

	reply, err := s.model.Complete(ctx, openai.ChatRequest{
		Model:       s.modelID,
		Messages:    messages,
		Temperature: replyTemperature,
		MaxTokens:   replyMaxTokens,
	})
	if err != nil {
		s.logg.Warn(s.logg.WithCreatorID(ctx, creatorID.String()), "assistant completion failed, serving fallback")
		return &ChatReply{Reply: fallbackReply(deals, payouts, invoices, s.now())}, nil
	}

	reply = strings.TrimSpace(reply)
	if reply == "" {
		reply = fallbackReply(deals, payouts, invoices, s.now())
	}
	return &ChatReply{Reply: reply}, nil
}

// trimHistory keeps the most recent turns and drops anything that is not a
// plain user or assistant message.
func trimHistory(history []Turn) []Turn {
	var cleaned []Turn
	for _, turn := range history {
		role := strings.TrimSpace(turn.Role)
		content := strings.TrimSpace(turn.Content)
		if content == "" {
			continue
		}
		if role != openai.RoleUser && role != openai.RoleAssistant {
			continue
		}
		cleaned = append(cleaned, Turn{Role: role, Content: content})
	}
	if len(cleaned) > maxHistoryTurns {
		cleaned = cleaned[len(cleaned)-maxHistoryTurns:]
	}
	return cleaned
}
