package memstore

import (
	"context"
	"sync"
	"testing"
	"time"

	"fieldservice/internal/domain/entities"
	"fieldservice/internal/usecase/interfaces"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func seededStore(t *testing.T) *Store {
	t.Helper()
	s := New()
	ctx := context.Background()
	require.NoError(t, s.SeedJob(ctx, entities.Job{ID: "job-1", AccountID: "acc-1", Title: "Boiler", Status: entities.JobStatusScheduled}))
	require.NoError(t, s.SeedEstimate(ctx, entities.Estimate{
		ID:        "est-1",
		AccountID: "acc-1",
		Status:    entities.EstimateStatusApproved,
		LineItems: []entities.LineItem{{Description: "Valve", Quantity: 1, UnitPriceCents: 500}},
	}))
	return s
}

func TestStore_LoadScoped(t *testing.T) {
	s := seededStore(t)
	ctx := context.Background()

	t.Run("own account", func(t *testing.T) {
		e, err := s.LoadScoped(ctx, entities.EntityJob, "job-1", "acc-1")
		require.NoError(t, err)
		require.NotNil(t, e)
		assert.Equal(t, entities.JobStatusScheduled, e.CurrentStatus())
	})

	t.Run("other account is absent", func(t *testing.T) {
		e, err := s.LoadScoped(ctx, entities.EntityJob, "job-1", "acc-2")
		require.NoError(t, err)
		assert.Nil(t, e)
	})

	t.Run("missing id is absent", func(t *testing.T) {
		e, err := s.LoadScoped(ctx, entities.EntityJob, "nope", "acc-1")
		require.NoError(t, err)
		assert.Nil(t, e)
	})

	t.Run("returned records are copies", func(t *testing.T) {
		e, err := s.LoadScoped(ctx, entities.EntityEstimate, "est-1", "acc-1")
		require.NoError(t, err)
		est := e.(entities.Estimate)
		est.LineItems[0].Description = "changed"

		again, err := s.LoadScoped(ctx, entities.EntityEstimate, "est-1", "acc-1")
		require.NoError(t, err)
		assert.Equal(t, "Valve", again.(entities.Estimate).LineItems[0].Description)
	})
}

func TestStore_WriteScoped(t *testing.T) {
	ctx := context.Background()

	t.Run("applies patch when status matches", func(t *testing.T) {
		s := seededStore(t)
		now := time.Now().UTC()
		updated, err := s.WriteScoped(ctx, entities.EntityJob, "job-1", "acc-1", entities.JobStatusScheduled,
			entities.StatusPatch(entities.JobStatusInProgress, now))
		require.NoError(t, err)
		assert.Equal(t, entities.JobStatusInProgress, updated.CurrentStatus())
		assert.Equal(t, now, updated.(entities.Job).UpdatedAt)
	})

	t.Run("stale expected status conflicts", func(t *testing.T) {
		s := seededStore(t)
		_, err := s.WriteScoped(ctx, entities.EntityJob, "job-1", "acc-1", entities.JobStatusQuoted,
			entities.StatusPatch(entities.JobStatusScheduled, time.Now()))
		assert.ErrorIs(t, err, interfaces.ErrConflictDetected)
	})

	t.Run("other account conflicts", func(t *testing.T) {
		s := seededStore(t)
		_, err := s.WriteScoped(ctx, entities.EntityJob, "job-1", "acc-2", entities.JobStatusScheduled,
			entities.StatusPatch(entities.JobStatusInProgress, time.Now()))
		assert.ErrorIs(t, err, interfaces.ErrConflictDetected)
	})

	t.Run("only one of two racing writes wins", func(t *testing.T) {
		s := seededStore(t)
		targets := []entities.Status{entities.JobStatusInProgress, entities.JobStatusCancelled}
		errs := make([]error, len(targets))

		var wg sync.WaitGroup
		for i, target := range targets {
			wg.Add(1)
			go func(i int, target entities.Status) {
				defer wg.Done()
				_, errs[i] = s.WriteScoped(ctx, entities.EntityJob, "job-1", "acc-1", entities.JobStatusScheduled,
					entities.StatusPatch(target, time.Now()))
			}(i, target)
		}
		wg.Wait()

		failures := 0
		for _, err := range errs {
			if err != nil {
				assert.ErrorIs(t, err, interfaces.ErrConflictDetected)
				failures++
			}
		}
		assert.Equal(t, 1, failures)
	})
}

func TestStore_WriteScoped_ExpectedPaidCents(t *testing.T) {
	ctx := context.Background()
	s := New()
	require.NoError(t, s.SeedInvoice(ctx, entities.Invoice{ID: "inv-1", AccountID: "acc-1", Status: entities.InvoiceStatusPartial, TotalCents: 10000, PaidCents: 1000}))

	stale := int64(0)
	paid := int64(3000)
	_, err := s.WriteScoped(ctx, entities.EntityInvoice, "inv-1", "acc-1", entities.InvoiceStatusPartial,
		entities.Patch{PaidCents: &paid, ExpectedPaidCents: &stale, UpdatedAt: time.Now()})
	assert.ErrorIs(t, err, interfaces.ErrConflictDetected)

	current := int64(1000)
	updated, err := s.WriteScoped(ctx, entities.EntityInvoice, "inv-1", "acc-1", entities.InvoiceStatusPartial,
		entities.Patch{PaidCents: &paid, ExpectedPaidCents: &current, UpdatedAt: time.Now()})
	require.NoError(t, err)
	assert.Equal(t, int64(3000), updated.(entities.Invoice).PaidCents)
}

func TestStore_InsertScoped(t *testing.T) {
	ctx := context.Background()
	source := "est-1"

	t.Run("duplicate id", func(t *testing.T) {
		s := seededStore(t)
		err := s.InsertScoped(ctx, entities.Job{ID: "job-1", AccountID: "acc-1"})
		assert.ErrorIs(t, err, interfaces.ErrUniqueViolation)
	})

	t.Run("one invoice per source estimate", func(t *testing.T) {
		s := seededStore(t)
		require.NoError(t, s.InsertScoped(ctx, entities.Invoice{ID: "inv-1", AccountID: "acc-1", SourceEstimateID: &source}))
		err := s.InsertScoped(ctx, entities.Invoice{ID: "inv-2", AccountID: "acc-1", SourceEstimateID: &source})
		assert.ErrorIs(t, err, interfaces.ErrUniqueViolation)

		found, err := s.FindInvoiceBySourceEstimate(ctx, "acc-1", "est-1")
		require.NoError(t, err)
		assert.Equal(t, "inv-1", found.ID)
	})

	t.Run("source lookup is account scoped", func(t *testing.T) {
		s := seededStore(t)
		require.NoError(t, s.InsertScoped(ctx, entities.Invoice{ID: "inv-1", AccountID: "acc-1", SourceEstimateID: &source}))
		found, err := s.FindInvoiceBySourceEstimate(ctx, "acc-2", "est-1")
		require.NoError(t, err)
		assert.Empty(t, found.ID)
	})

	t.Run("missing account", func(t *testing.T) {
		s := New()
		assert.Error(t, s.InsertScoped(ctx, entities.Job{ID: "job-9"}))
	})
}

func TestStore_List(t *testing.T) {
	s := seededStore(t)
	require.NoError(t, s.SeedJob(context.Background(), entities.Job{ID: "job-0", AccountID: "acc-1"}))
	require.NoError(t, s.SeedJob(context.Background(), entities.Job{ID: "job-x", AccountID: "acc-2"}))

	jobs := s.List(entities.EntityJob, "acc-1")
	require.Len(t, jobs, 2)
	assert.Equal(t, "job-0", jobs[0].GetID())
	assert.Equal(t, "job-1", jobs[1].GetID())
}

func TestPaymentRepository(t *testing.T) {
	ctx := context.Background()
	r := NewPaymentRepository()
	base := time.Date(2026, 1, 2, 3, 4, 5, 0, time.UTC)

	_, err := r.Create(ctx, entities.InvoicePayment{ID: "p-2", AccountID: "acc-1", InvoiceID: "inv-1", Date: base.Add(time.Hour)})
	require.NoError(t, err)
	_, err = r.Create(ctx, entities.InvoicePayment{ID: "p-1", AccountID: "acc-1", InvoiceID: "inv-1", Date: base})
	require.NoError(t, err)
	_, err = r.Create(ctx, entities.InvoicePayment{ID: "p-3", AccountID: "acc-2", InvoiceID: "inv-1", Date: base})
	require.NoError(t, err)

	_, err = r.Create(ctx, entities.InvoicePayment{ID: "p-1"})
	assert.ErrorIs(t, err, interfaces.ErrUniqueViolation)

	list, err := r.ListByInvoiceID(ctx, "acc-1", "inv-1")
	require.NoError(t, err)
	require.Len(t, list, 2)
	assert.Equal(t, "p-1", list[0].ID)
	assert.Equal(t, "p-2", list[1].ID)
}
