package calendar

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"

	"github.com/griphyn/agent-backend/pkg/db/models"
	"github.com/griphyn/agent-backend/pkg/enums"
	"github.com/griphyn/agent-backend/pkg/types"
)

type stubDeals struct {
	deals []models.Deal
}

func (s *stubDeals) ListOpen(_ context.Context, _ uuid.UUID) ([]models.Deal, error) {
	return s.deals, nil
}

func briefDeal(title string, goLive *time.Time, lines ...types.DeliverableLine) models.Deal {
	return models.Deal{
		ID:            uuid.New(),
		Title:         title,
		Stage:         enums.DealStageNegotiation,
		GoLiveDate:    goLive,
		Brand:         &models.Brand{Name: "Acme Co"},
		CreativeBrief: types.CreativeBrief{Deliverables: lines},
	}
}

func TestListFlattensBriefLines(t *testing.T) {
	later := time.Date(2026, 10, 1, 0, 0, 0, 0, time.UTC)
	sooner := time.Date(2026, 9, 1, 0, 0, 0, 0, time.UTC)

	stub := &stubDeals{deals: []models.Deal{
		briefDeal("October Push", &later,
			types.DeliverableLine{Type: "Instagram Reel", Count: 3, Specs: "60s max"}),
		briefDeal("September Launch", &sooner,
			types.DeliverableLine{Type: "TikTok Video", Count: 1},
			types.DeliverableLine{Type: "Instagram Story", Count: 0}),
		briefDeal("Undated Deal", nil,
			types.DeliverableLine{Type: "YouTube Integration", Count: 1}),
	}}

	svc, err := NewService(stub)
	if err != nil {
		t.Fatalf("NewService: %v", err)
	}
	entries, err := svc.List(context.Background(), uuid.New())
	if err != nil {
		t.Fatalf("List: %v", err)
	}
	if len(entries) != 4 {
		t.Fatalf("got %d entries, want 4", len(entries))
	}

	if entries[0].DealTitle != "September Launch" {
		t.Errorf("first entry deal = %q, want September Launch", entries[0].DealTitle)
	}
	if entries[len(entries)-1].DealTitle != "Undated Deal" {
		t.Errorf("last entry deal = %q, want Undated Deal", entries[len(entries)-1].DealTitle)
	}
	if entries[len(entries)-1].GoLiveDate != nil {
		t.Error("undated entry should have nil GoLiveDate")
	}

	// zero counts normalize to one unit
	for _, entry := range entries {
		if entry.Deliverable == "Instagram Story" && entry.Count != 1 {
			t.Errorf("Instagram Story count = %d, want 1", entry.Count)
		}
	}

	reel := entries[2]
	if reel.Deliverable != "Instagram Reel" || reel.Count != 3 || reel.Specs != "60s max" {
		t.Errorf("reel entry = %+v", reel)
	}
	if reel.BrandName != "Acme Co" || reel.Stage != "negotiation" {
		t.Errorf("reel entry metadata = %+v", reel)
	}
}

func TestListEmptyPipeline(t *testing.T) {
	svc, err := NewService(&stubDeals{})
	if err != nil {
		t.Fatalf("NewService: %v", err)
	}
	entries, err := svc.List(context.Background(), uuid.New())
	if err != nil {
		t.Fatalf("List: %v", err)
	}
	if len(entries) != 0 {
		t.Fatalf("got %d entries, want 0", len(entries))
	}
}
