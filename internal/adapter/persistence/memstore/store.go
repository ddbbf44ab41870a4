// Package memstore keeps workflow entities in process memory. It backs local
// development (STORE_BACKEND=memory) and the engine's scenario tests.
package memstore

import (
	"context"
	"fmt"
	"sort"
	"sync"
	"time"

	"fieldservice/internal/domain/entities"
	"fieldservice/internal/usecase/interfaces"
)

// Store is a mutex-guarded IWorkflowStore. Every read and conditional write
// runs under the same lock, so WriteScoped is a true compare-and-set.
type Store struct {
	mu             sync.Mutex
	records        map[entities.EntityType]map[string]entities.Entity
	invoiceSources map[string]string
}

var _ interfaces.IWorkflowStore = (*Store)(nil)

func New() *Store {
	s := &Store{
		records:        make(map[entities.EntityType]map[string]entities.Entity, len(entities.EntityTypes)),
		invoiceSources: map[string]string{},
	}
	for _, et := range entities.EntityTypes {
		s.records[et] = map[string]entities.Entity{}
	}
	return s
}

func sourceKey(accountID, estimateID string) string {
	return accountID + "/" + estimateID
}

func (s *Store) LoadScoped(ctx context.Context, entityType entities.EntityType, id, accountID string) (entities.Entity, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	s.mu.Lock()
	defer s.mu.Unlock()

	byID, ok := s.records[entityType]
	if !ok {
		return nil, fmt.Errorf("memstore: unknown entity type %q", entityType)
	}
	e, ok := byID[id]
	if !ok || e.GetAccountID() != accountID {
		return nil, nil
	}
	return clone(e), nil
}

func (s *Store) WriteScoped(ctx context.Context, entityType entities.EntityType, id, accountID string, expected entities.Status, patch entities.Patch) (entities.Entity, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	s.mu.Lock()
	defer s.mu.Unlock()

	byID, ok := s.records[entityType]
	if !ok {
		return nil, fmt.Errorf("memstore: unknown entity type %q", entityType)
	}
	e, ok := byID[id]
	if !ok || e.GetAccountID() != accountID || e.CurrentStatus() != expected || !patch.PaidCentsMatch(e) {
		return nil, interfaces.ErrConflictDetected
	}
	updated := entities.ApplyPatch(e, patch)
	byID[id] = clone(updated)
	return clone(updated), nil
}

func (s *Store) InsertScoped(ctx context.Context, record entities.Entity) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	if record == nil || record.GetID() == "" || record.GetAccountID() == "" {
		return fmt.Errorf("memstore: record needs an id and an account id")
	}
	s.mu.Lock()
	defer s.mu.Unlock()

	byID, ok := s.records[record.EntityType()]
	if !ok {
		return fmt.Errorf("memstore: unknown entity type %q", record.EntityType())
	}
	if _, exists := byID[record.GetID()]; exists {
		return interfaces.ErrUniqueViolation
	}
	if inv, ok := record.(entities.Invoice); ok && inv.SourceEstimateID != nil {
		key := sourceKey(inv.AccountID, *inv.SourceEstimateID)
		if _, taken := s.invoiceSources[key]; taken {
			return interfaces.ErrUniqueViolation
		}
		s.invoiceSources[key] = inv.ID
	}
	byID[record.GetID()] = clone(record)
	return nil
}

func (s *Store) FindInvoiceBySourceEstimate(ctx context.Context, accountID, estimateID string) (entities.Invoice, error) {
	if err := ctx.Err(); err != nil {
		return entities.Invoice{}, err
	}
	s.mu.Lock()
	defer s.mu.Unlock()

	id, ok := s.invoiceSources[sourceKey(accountID, estimateID)]
	if !ok {
		return entities.Invoice{}, nil
	}
	inv, _ := s.records[entities.EntityInvoice][id].(entities.Invoice)
	return clone(inv).(entities.Invoice), nil
}

// List returns the account's records of one type ordered by id.
func (s *Store) List(entityType entities.EntityType, accountID string) []entities.Entity {
	s.mu.Lock()
	defer s.mu.Unlock()

	var out []entities.Entity
	for _, e := range s.records[entityType] {
		if e.GetAccountID() == accountID {
			out = append(out, clone(e))
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].GetID() < out[j].GetID() })
	return out
}

// SeedJob stores j as is. Creation is outside the workflow, so tests and
// local runs use the Seed helpers to put records in place.
func (s *Store) SeedJob(ctx context.Context, j entities.Job) error {
	return s.InsertScoped(ctx, j)
}

func (s *Store) SeedVisit(ctx context.Context, v entities.Visit) error {
	return s.InsertScoped(ctx, v)
}

func (s *Store) SeedEstimate(ctx context.Context, e entities.Estimate) error {
	return s.InsertScoped(ctx, e)
}

func (s *Store) SeedInvoice(ctx context.Context, i entities.Invoice) error {
	return s.InsertScoped(ctx, i)
}

// clone copies the slices and pointers of a record so callers never share
// memory with the stored value.
func clone(e entities.Entity) entities.Entity {
	switch v := e.(type) {
	case entities.Job:
		v.ClientID = cloneString(v.ClientID)
		v.ScheduledStart = cloneTime(v.ScheduledStart)
		return v
	case entities.Visit:
		v.JobID = cloneString(v.JobID)
		v.AssignedUserID = cloneString(v.AssignedUserID)
		v.ArrivedAt = cloneTime(v.ArrivedAt)
		v.CompletedAt = cloneTime(v.CompletedAt)
		return v
	case entities.Estimate:
		v.LineItems = append([]entities.LineItem(nil), v.LineItems...)
		return v
	case entities.Invoice:
		v.SourceEstimateID = cloneString(v.SourceEstimateID)
		v.LineItems = append([]entities.LineItem(nil), v.LineItems...)
		v.DueAt = cloneTime(v.DueAt)
		return v
	}
	return e
}

func cloneString(p *string) *string {
	if p == nil {
		return nil
	}
	v := *p
	return &v
}

func cloneTime(p *time.Time) *time.Time {
	if p == nil {
		return nil
	}
	v := *p
	return &v
}
