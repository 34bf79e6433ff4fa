package negotiation

import (
	"context"
	"encoding/json"
	"fmt"
	"math"
	"strings"

	pkgerrors "github.com/griphyn/agent-backend/pkg/errors"
	"github.com/griphyn/agent-backend/pkg/openai"
)

const drafterSystemPrompt = "You are a senior talent agent negotiating brand deals. " +
	"Provide a JSON object with keys: recommendedCounter (number), rationale (array of 3-5 concise strings), " +
	"emailDraft (string with newline \\n formatting). Respect guardrail minimums and stay realistic."

// DraftInput is the structured context handed to the language-model drafter.
type DraftInput struct {
	DealID       string     `json:"dealId"`
	DealTitle    string     `json:"dealTitle"`
	BrandName    string     `json:"brandName"`
	Summary      string     `json:"summary,omitempty"`
	UsageRights  string     `json:"usageRights,omitempty"`
	Stage        string     `json:"stage,omitempty"`
	CurrentOffer int64      `json:"currentOffer"`
	Guardrails   Guardrails `json:"guardrails"`
	Deliverables Summary    `json:"deliverableSummary"`
}

// DraftResult is a drafter's negotiation plan payload, already clamped to the
// guardrail floor.
type DraftResult struct {
	RecommendedCounter int64
	PercentageIncrease int
	Rationale          []string
	EmailDraft         string
}

// Drafter proposes a counter plan from deal context. Implementations may be
// non-deterministic; the caller always keeps the deterministic engine as a
// fallback.
type Drafter interface {
	Draft(ctx context.Context, input DraftInput) (*DraftResult, error)
}

type openAIDrafter struct {
	client *openai.Client
	model  string
}

// NewOpenAIDrafter wraps the chat-completions client as a negotiation
// drafter.
func NewOpenAIDrafter(client *openai.Client, model string) (Drafter, error) {
	if client == nil {
		return nil, fmt.Errorf("openai client required")
	}
	if strings.TrimSpace(model) == "" {
		return nil, fmt.Errorf("model required")
	}
	return &openAIDrafter{client: client, model: model}, nil
}

func (d *openAIDrafter) Draft(ctx context.Context, input DraftInput) (*DraftResult, error) {
	payload, err := json.MarshalIndent(input, "", "  ")
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "encode draft context")
	}

	content, err := d.client.Complete(ctx, openai.ChatRequest{
		Model:       d.model,
		Temperature: 0.2,
		JSONMode:    true,
		Messages: []openai.Message{
			{Role: openai.RoleSystem, Content: drafterSystemPrompt},
			{Role: openai.RoleUser, Content: "Use this structured data to recommend a counter offer, rationale, and response email:\n" + string(payload)},
		},
	})
	if err != nil {
		return nil, err
	}

	var parsed struct {
		RecommendedCounter json.Number `json:"recommendedCounter"`
		Rationale          []string    `json:"rationale"`
		EmailDraft         string      `json:"emailDraft"`
	}
	if err := json.Unmarshal([]byte(stripCodeFence(content)), &parsed); err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "decode draft response")
	}

	// The model's counter is advisory. Clamp it to the guardrail floor, and
	// when it is unusable negotiate up from the offer instead.
	safeCounter := max64(input.CurrentOffer, input.Guardrails.MinDealAmount)
	if counter, err := parsed.RecommendedCounter.Float64(); err == nil && !math.IsNaN(counter) && !math.IsInf(counter, 0) {
		safeCounter = max64(int64(math.Round(counter)), input.Guardrails.MinDealAmount)
	}

	percentageIncrease := 0
	switch {
	case input.CurrentOffer > 0:
		percentageIncrease = int(math.Round(float64(safeCounter-input.CurrentOffer) / float64(input.CurrentOffer) * 100))
	case safeCounter > 0:
		percentageIncrease = 100
	}

	rationale := make([]string, 0, len(parsed.Rationale))
	for _, item := range parsed.Rationale {
		if strings.TrimSpace(item) != "" {
			rationale = append(rationale, item)
		}
	}

	emailDraft := strings.TrimSpace(parsed.EmailDraft)
	if emailDraft == "" {
		emailDraft = BuildCounterEmail(input.BrandName, safeCounter, input.Deliverables.Breakdown, input.Guardrails)
	}

	return &DraftResult{
		RecommendedCounter: safeCounter,
		PercentageIncrease: percentageIncrease,
		Rationale:          rationale,
		EmailDraft:         emailDraft,
	}, nil
}

// stripCodeFence unwraps a ```json fenced block when the model ignores JSON
// mode and fences its output anyway.
func stripCodeFence(value string) string {
	trimmed := strings.TrimSpace(value)
	if !strings.HasPrefix(trimmed, "```") {
		return trimmed
	}
	trimmed = strings.TrimPrefix(trimmed, "```json")
	trimmed = strings.TrimPrefix(trimmed, "```JSON")
	trimmed = strings.TrimPrefix(trimmed, "```")
	if idx := strings.Index(trimmed, "```"); idx >= 0 {
		trimmed = trimmed[:idx]
	}
	return strings.TrimSpace(trimmed)
}
