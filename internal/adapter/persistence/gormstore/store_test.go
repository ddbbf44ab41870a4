package gormstore

import (
	"context"
	"testing"
	"time"

	"fieldservice/internal/domain/entities"
	"fieldservice/internal/usecase/interfaces"

	"github.com/stretchr/testify/require"
	"github.com/stretchr/testify/suite"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

// StoreTestSuite runs the gorm store against an in-memory sqlite database.
type StoreTestSuite struct {
	suite.Suite
	db       *gorm.DB
	ctx      context.Context
	store    *Store
	payments *PaymentRepository
	now      time.Time
}

func (s *StoreTestSuite) SetupTest() {
	db, err := gorm.Open(sqlite.Open("file::memory:"), &gorm.Config{
		TranslateError: true,
		Logger:         logger.Default.LogMode(logger.Silent),
	})
	require.NoError(s.T(), err, "Failed to create in-memory database")

	sqlDB, err := db.DB()
	require.NoError(s.T(), err)
	// Every connection to :memory: is a separate database.
	sqlDB.SetMaxOpenConns(1)

	require.NoError(s.T(), Migrate(db), "Failed to run database migrations")

	s.db = db
	s.ctx = context.Background()
	s.store = NewStore(db)
	s.payments = NewPaymentRepository(db)
	s.now = time.Date(2026, 5, 1, 9, 0, 0, 0, time.UTC)
}

func (s *StoreTestSuite) TearDownTest() {
	sqlDB, err := s.db.DB()
	if err == nil && sqlDB != nil {
		_ = sqlDB.Close()
	}
}

func (s *StoreTestSuite) createEstimate(status entities.Status) entities.Estimate {
	est := entities.Estimate{
		ID:        "est-1",
		AccountID: "acc-1",
		ClientID:  "client-1",
		Status:    status,
		LineItems: []entities.LineItem{{Description: "Inspection", Quantity: 2, UnitPriceCents: 4500}},
		CreatedAt: s.now,
		UpdatedAt: s.now,
	}
	est.Recalculate()
	s.Require().NoError(s.store.InsertScoped(s.ctx, est))
	return est
}

func (s *StoreTestSuite) TestLoadScoped() {
	s.createEstimate(entities.EstimateStatusDraft)

	e, err := s.store.LoadScoped(s.ctx, entities.EntityEstimate, "est-1", "acc-1")
	s.Require().NoError(err)
	s.Require().NotNil(e)
	est := e.(entities.Estimate)
	s.Equal(int64(9000), est.TotalCents)
	s.Require().Len(est.LineItems, 1)
	s.Equal("Inspection", est.LineItems[0].Description)

	other, err := s.store.LoadScoped(s.ctx, entities.EntityEstimate, "est-1", "acc-2")
	s.Require().NoError(err)
	s.Nil(other)

	missing, err := s.store.LoadScoped(s.ctx, entities.EntityJob, "job-404", "acc-1")
	s.Require().NoError(err)
	s.Nil(missing)

	_, err = s.store.LoadScoped(s.ctx, entities.EntityType("quote"), "q", "acc-1")
	s.Error(err)
}

func (s *StoreTestSuite) TestWriteScoped_Status() {
	s.createEstimate(entities.EstimateStatusDraft)
	later := s.now.Add(time.Hour)

	updated, err := s.store.WriteScoped(s.ctx, entities.EntityEstimate, "est-1", "acc-1", entities.EstimateStatusDraft,
		entities.StatusPatch(entities.EstimateStatusSent, later))
	s.Require().NoError(err)
	s.Equal(entities.EstimateStatusSent, updated.CurrentStatus())
	s.True(updated.(entities.Estimate).UpdatedAt.Equal(later))

	_, err = s.store.WriteScoped(s.ctx, entities.EntityEstimate, "est-1", "acc-1", entities.EstimateStatusDraft,
		entities.StatusPatch(entities.EstimateStatusSent, later))
	s.ErrorIs(err, interfaces.ErrConflictDetected)

	_, err = s.store.WriteScoped(s.ctx, entities.EntityEstimate, "est-1", "acc-2", entities.EstimateStatusSent,
		entities.StatusPatch(entities.EstimateStatusApproved, later))
	s.ErrorIs(err, interfaces.ErrConflictDetected)
}

func (s *StoreTestSuite) TestWriteScoped_SideEffectColumns() {
	u1 := "U1"
	s.Require().NoError(s.store.InsertScoped(s.ctx, entities.Visit{
		ID:             "visit-1",
		AccountID:      "acc-1",
		AssignedUserID: &u1,
		ScheduledStart: s.now,
		ScheduledEnd:   s.now.Add(time.Hour),
		Status:         entities.VisitStatusScheduled,
		CreatedAt:      s.now,
		UpdatedAt:      s.now,
	}))

	arrived := s.now.Add(5 * time.Minute)
	patch := entities.StatusPatch(entities.VisitStatusArrived, arrived)
	patch.ArrivedAt = &arrived

	updated, err := s.store.WriteScoped(s.ctx, entities.EntityVisit, "visit-1", "acc-1", entities.VisitStatusScheduled, patch)
	s.Require().NoError(err)
	visit := updated.(entities.Visit)
	s.Equal(entities.VisitStatusArrived, visit.Status)
	s.Require().NotNil(visit.ArrivedAt)
	s.True(visit.ArrivedAt.Equal(arrived))
	s.Nil(visit.CompletedAt)

	notes := "gate code 1234"
	updated, err = s.store.WriteScoped(s.ctx, entities.EntityVisit, "visit-1", "acc-1", entities.VisitStatusArrived,
		entities.Patch{TechNotes: &notes, UpdatedAt: arrived})
	s.Require().NoError(err)
	s.Equal(notes, updated.(entities.Visit).TechNotes)
	s.Equal(entities.VisitStatusArrived, updated.CurrentStatus())
}

func (s *StoreTestSuite) TestWriteScoped_LineItems() {
	s.createEstimate(entities.EstimateStatusDraft)
	items := []entities.LineItem{
		{Description: "Labor", Quantity: 1, UnitPriceCents: 10000},
		{Description: "Filter", Quantity: 4, UnitPriceCents: 250},
	}
	sub, tax, total := entities.ComputeTotals(items, 1000)

	updated, err := s.store.WriteScoped(s.ctx, entities.EntityEstimate, "est-1", "acc-1", entities.EstimateStatusDraft, entities.Patch{
		LineItems:     items,
		TaxRateBps:    int64Ptr(1000),
		SubtotalCents: &sub,
		TaxCents:      &tax,
		TotalCents:    &total,
		UpdatedAt:     s.now,
	})
	s.Require().NoError(err)
	est := updated.(entities.Estimate)
	s.Len(est.LineItems, 2)
	s.Equal(int64(11000), est.SubtotalCents)
	s.Equal(int64(1100), est.TaxCents)
	s.Equal(int64(12100), est.TotalCents)
}

func (s *StoreTestSuite) TestInvoiceSourceIsUnique() {
	source := "est-1"
	inv := entities.Invoice{
		ID:               "inv-1",
		AccountID:        "acc-1",
		SourceEstimateID: &source,
		Status:           entities.InvoiceStatusDraft,
		TotalCents:       9000,
		CreatedAt:        s.now,
		UpdatedAt:        s.now,
	}
	s.Require().NoError(s.store.InsertScoped(s.ctx, inv))

	dup := inv
	dup.ID = "inv-2"
	s.ErrorIs(s.store.InsertScoped(s.ctx, dup), interfaces.ErrUniqueViolation)

	sameID := inv
	sameID.SourceEstimateID = nil
	s.ErrorIs(s.store.InsertScoped(s.ctx, sameID), interfaces.ErrUniqueViolation)

	// Invoices without a source estimate never collide.
	for _, id := range []string{"inv-3", "inv-4"} {
		s.Require().NoError(s.store.InsertScoped(s.ctx, entities.Invoice{ID: id, AccountID: "acc-1", Status: entities.InvoiceStatusDraft}))
	}

	found, err := s.store.FindInvoiceBySourceEstimate(s.ctx, "acc-1", "est-1")
	s.Require().NoError(err)
	s.Equal("inv-1", found.ID)

	none, err := s.store.FindInvoiceBySourceEstimate(s.ctx, "acc-2", "est-1")
	s.Require().NoError(err)
	s.Empty(none.ID)
}

func (s *StoreTestSuite) TestInvoicePaymentColumns() {
	s.Require().NoError(s.store.InsertScoped(s.ctx, entities.Invoice{ID: "inv-1", AccountID: "acc-1", Status: entities.InvoiceStatusSent, TotalCents: 5000}))

	due := s.now.Add(30 * 24 * time.Hour)
	paid := int64(2000)
	patch := entities.StatusPatch(entities.InvoiceStatusPartial, s.now)
	patch.PaidCents = &paid
	patch.DueAt = &due

	updated, err := s.store.WriteScoped(s.ctx, entities.EntityInvoice, "inv-1", "acc-1", entities.InvoiceStatusSent, patch)
	s.Require().NoError(err)
	inv := updated.(entities.Invoice)
	s.Equal(int64(2000), inv.PaidCents)
	s.Equal(int64(3000), inv.AmountDueCents())
	s.Require().NotNil(inv.DueAt)
	s.True(inv.DueAt.Equal(due))
}

func (s *StoreTestSuite) TestWriteScoped_ExpectedPaidCents() {
	s.Require().NoError(s.store.InsertScoped(s.ctx, entities.Invoice{ID: "inv-1", AccountID: "acc-1", Status: entities.InvoiceStatusPartial, TotalCents: 10000, PaidCents: 1000}))

	stale := int64(0)
	paid := int64(3000)
	_, err := s.store.WriteScoped(s.ctx, entities.EntityInvoice, "inv-1", "acc-1", entities.InvoiceStatusPartial,
		entities.Patch{PaidCents: &paid, ExpectedPaidCents: &stale, UpdatedAt: s.now})
	s.ErrorIs(err, interfaces.ErrConflictDetected)

	current := int64(1000)
	updated, err := s.store.WriteScoped(s.ctx, entities.EntityInvoice, "inv-1", "acc-1", entities.InvoiceStatusPartial,
		entities.Patch{PaidCents: &paid, ExpectedPaidCents: &current, UpdatedAt: s.now})
	s.Require().NoError(err)
	s.Equal(int64(3000), updated.(entities.Invoice).PaidCents)
}

func (s *StoreTestSuite) TestPaymentRepository() {
	for i, id := range []string{"p-1", "p-2"} {
		_, err := s.payments.Create(s.ctx, entities.InvoicePayment{
			ID:                 id,
			AccountID:          "acc-1",
			InvoiceID:          "inv-1",
			AmountCents:        int64(100 * (i + 1)),
			Date:               s.now.Add(time.Duration(i) * time.Minute),
			Status:             entities.PaymentStatusApproved,
			RecordedBy:         "admin-1",
			ProviderPaymentID:  "mp-" + id,
			ProviderPayloadRaw: []byte(`{"status":"approved"}`),
		})
		s.Require().NoError(err)
	}

	_, err := s.payments.Create(s.ctx, entities.InvoicePayment{ID: "p-1", AccountID: "acc-1", InvoiceID: "inv-1", Date: s.now, Status: entities.PaymentStatusApproved})
	s.ErrorIs(err, interfaces.ErrUniqueViolation)

	list, err := s.payments.ListByInvoiceID(s.ctx, "acc-1", "inv-1")
	s.Require().NoError(err)
	s.Require().Len(list, 2)
	s.Equal("p-1", list[0].ID)
	s.JSONEq(`{"status":"approved"}`, string(list[0].ProviderPayloadRaw))

	other, err := s.payments.ListByInvoiceID(s.ctx, "acc-2", "inv-1")
	s.Require().NoError(err)
	s.Empty(other)
}

func int64Ptr(v int64) *int64 { return &v }

// TestStore runs the gorm store test suite
func TestStore(t *testing.T) {
	suite.Run(t, new(StoreTestSuite))
}
