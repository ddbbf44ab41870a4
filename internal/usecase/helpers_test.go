package usecase

import (
	"context"
	"sync"
	"sync/atomic"
	"time"

	"fieldservice/internal/adapter/persistence/memstore"
	"fieldservice/internal/domain/entities"
)

var fixedNow = time.Date(2026, 3, 10, 14, 30, 0, 0, time.UTC)

func fixedClock() time.Time { return fixedNow }

var (
	ownerActor = entities.Actor{UserID: "owner-1", AccountID: "acc-1", Role: entities.RoleOwner}
	adminActor = entities.Actor{UserID: "admin-1", AccountID: "acc-1", Role: entities.RoleAdmin}
	techU1     = entities.Actor{UserID: "U1", AccountID: "acc-1", Role: entities.RoleTech}
	techU2     = entities.Actor{UserID: "U2", AccountID: "acc-1", Role: entities.RoleTech}
)

func strPtr(s string) *string { return &s }
func int64Ptr(v int64) *int64 { return &v }

// recordingSink keeps every emitted event.
type recordingSink struct {
	mu     sync.Mutex
	events []entities.AutomationEvent
}

func (s *recordingSink) Emit(_ context.Context, ev entities.AutomationEvent) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.events = append(s.events, ev)
}

func (s *recordingSink) types() []entities.AutomationEventType {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]entities.AutomationEventType, 0, len(s.events))
	for _, ev := range s.events {
		out = append(out, ev.Type)
	}
	return out
}

// barrierStore holds the first n LoadScoped callers until all n have loaded,
// so racing requests all read the same record before any of them writes.
// Later loads pass straight through.
type barrierStore struct {
	*memstore.Store
	pending atomic.Int32
	loaded  sync.WaitGroup
}

func newBarrierStore(inner *memstore.Store, n int) *barrierStore {
	b := &barrierStore{Store: inner}
	b.pending.Store(int32(n))
	b.loaded.Add(n)
	return b
}

func (b *barrierStore) LoadScoped(ctx context.Context, entityType entities.EntityType, id, accountID string) (entities.Entity, error) {
	e, err := b.Store.LoadScoped(ctx, entityType, id, accountID)
	if b.pending.Add(-1) >= 0 {
		b.loaded.Done()
		b.loaded.Wait()
	}
	return e, err
}

type panickingSink struct{}

func (panickingSink) Emit(context.Context, entities.AutomationEvent) { panic("sink exploded") }
