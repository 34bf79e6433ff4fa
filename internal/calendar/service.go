package calendar

import (
	"context"
	"fmt"
	"sort"
	"time"

	"github.com/google/uuid"

	"github.com/griphyn/agent-backend/pkg/db/models"
	pkgerrors "github.com/griphyn/agent-backend/pkg/errors"
)

type dealProvider interface {
	ListOpen(ctx context.Context, creatorID uuid.UUID) ([]models.Deal, error)
}

// Entry is one scheduled deliverable on the content calendar. Deals without a
// go-live date still appear so nothing silently drops off the schedule.
type Entry struct {
	DealID      string  `json:"dealId"`
	DealTitle   string  `json:"dealTitle"`
	BrandName   string  `json:"brandName"`
	Deliverable string  `json:"deliverable"`
	Count       int     `json:"count"`
	Specs       string  `json:"specs,omitempty"`
	GoLiveDate  *string `json:"goLiveDate,omitempty"`
	Stage       string  `json:"stage"`
}

// Service produces the read-only content calendar.
type Service interface {
	List(ctx context.Context, creatorID uuid.UUID) ([]Entry, error)
}

type service struct {
	deals dealProvider
}

// NewService wires the calendar service.
func NewService(deals dealProvider) (Service, error) {
	if deals == nil {
		return nil, fmt.Errorf("deal provider required")
	}
	return &service{deals: deals}, nil
}

// List flattens open deals' creative briefs into one entry per deliverable
// line, dated entries first in go-live order.
func (s *service) List(ctx context.Context, creatorID uuid.UUID) ([]Entry, error) {
	deals, err := s.deals.ListOpen(ctx, creatorID)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "failed to load deals")
	}

	entries := make([]Entry, 0)
	for i := range deals {
		deal := &deals[i]
		brand := "Unknown brand"
		if deal.Brand != nil && deal.Brand.Name != "" {
			brand = deal.Brand.Name
		}

		var goLive *string
		if deal.GoLiveDate != nil {
			formatted := deal.GoLiveDate.Format(time.RFC3339)
			goLive = &formatted
		}

		for _, line := range deal.CreativeBrief.Deliverables {
			count := line.Count
			if count < 1 {
				count = 1
			}
			entries = append(entries, Entry{
				DealID:      deal.ID.String(),
				DealTitle:   deal.Title,
				BrandName:   brand,
				Deliverable: line.Type,
				Count:       count,
				Specs:       line.Specs,
				GoLiveDate:  goLive,
				Stage:       deal.Stage.String(),
			})
		}
	}

	sort.SliceStable(entries, func(i, j int) bool {
		a, b := entries[i].GoLiveDate, entries[j].GoLiveDate
		switch {
		case a == nil:
			return false
		case b == nil:
			return true
		default:
			return *a < *b
		}
	})
	return entries, nil
}
