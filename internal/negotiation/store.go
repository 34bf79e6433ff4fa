package negotiation

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/google/uuid"

	pkgerrors "github.com/griphyn/agent-backend/pkg/errors"
	"github.com/griphyn/agent-backend/pkg/redis"
)

// PlanStore persists negotiation plans keyed by deal. A missing plan is not
// an error surface for callers; Get returns (nil, nil) on a miss so the
// service can treat absence as an idle plan.
type PlanStore interface {
	Get(ctx context.Context, dealID uuid.UUID) (*Plan, error)
	Save(ctx context.Context, plan *Plan) error
	Delete(ctx context.Context, dealID uuid.UUID) error
}

type redisPlanStore struct {
	client *redis.Client
	ttl    time.Duration
}

// NewRedisPlanStore builds the Redis-backed plan store. Plans expire after
// ttl so stale negotiations do not accumulate.
func NewRedisPlanStore(client *redis.Client, ttl time.Duration) (PlanStore, error) {
	if client == nil {
		return nil, fmt.Errorf("redis client required")
	}
	return &redisPlanStore{client: client, ttl: ttl}, nil
}

func (s *redisPlanStore) Get(ctx context.Context, dealID uuid.UUID) (*Plan, error) {
	raw, err := s.client.Get(ctx, s.client.NegotiationPlanKey(dealID.String()))
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return nil, nil
		}
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "load negotiation plan")
	}

	var plan Plan
	if err := json.Unmarshal([]byte(raw), &plan); err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "decode negotiation plan")
	}
	return &plan, nil
}

func (s *redisPlanStore) Save(ctx context.Context, plan *Plan) error {
	if plan == nil {
		return pkgerrors.New(pkgerrors.CodeInternal, "plan is nil")
	}
	payload, err := json.Marshal(plan)
	if err != nil {
		return pkgerrors.Wrap(pkgerrors.CodeInternal, err, "encode negotiation plan")
	}
	key := s.client.NegotiationPlanKey(plan.DealID.String())
	if err := s.client.Set(ctx, key, string(payload), s.ttl); err != nil {
		return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "save negotiation plan")
	}
	return nil
}

func (s *redisPlanStore) Delete(ctx context.Context, dealID uuid.UUID) error {
	if err := s.client.Del(ctx, s.client.NegotiationPlanKey(dealID.String())); err != nil {
		return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "delete negotiation plan")
	}
	return nil
}

// MemoryPlanStore is an in-process store used in tests and local setups
// without Redis.
type MemoryPlanStore struct {
	mu    sync.RWMutex
	plans map[uuid.UUID]*Plan
}

// NewMemoryPlanStore builds an empty in-memory plan store.
func NewMemoryPlanStore() *MemoryPlanStore {
	return &MemoryPlanStore{plans: map[uuid.UUID]*Plan{}}
}

func (s *MemoryPlanStore) Get(_ context.Context, dealID uuid.UUID) (*Plan, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	plan, ok := s.plans[dealID]
	if !ok {
		return nil, nil
	}
	cpy := *plan
	cpy.Rationale = append([]string(nil), plan.Rationale...)
	return &cpy, nil
}

func (s *MemoryPlanStore) Save(_ context.Context, plan *Plan) error {
	if plan == nil {
		return pkgerrors.New(pkgerrors.CodeInternal, "plan is nil")
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	cpy := *plan
	cpy.Rationale = append([]string(nil), plan.Rationale...)
	s.plans[plan.DealID] = &cpy
	return nil
}

func (s *MemoryPlanStore) Delete(_ context.Context, dealID uuid.UUID) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.plans, dealID)
	return nil
}
