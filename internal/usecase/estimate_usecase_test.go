package usecase

import (
	"context"
	"errors"
	"testing"

	"fieldservice/internal/adapter/persistence/memstore"
	"fieldservice/internal/domain/entities"
	"fieldservice/internal/domain/workflow"
	"fieldservice/internal/usecase/interfaces"
	mock_interfaces "fieldservice/internal/usecase/interfaces/mocks"

	"go.uber.org/mock/gomock"
)

func TestEstimateUseCase_ReplaceLineItems(t *testing.T) {
	ctx := context.Background()
	items := []entities.LineItem{
		{Description: "Labor", Quantity: 3, UnitPriceCents: 8000},
		{Description: "Parts", Quantity: 1, UnitPriceCents: 1999},
	}

	t.Run("recomputes totals on a draft", func(t *testing.T) {
		store := memstore.New()
		_ = store.SeedEstimate(ctx, entities.Estimate{ID: "est-1", AccountID: "acc-1", Status: entities.EstimateStatusDraft})
		uc := NewEstimateUseCase(store)
		uc.now = fixedClock

		est, err := uc.ReplaceLineItems(ctx, adminActor, "est-1", items, 825)
		if err != nil {
			t.Fatalf("expected nil error, got %v", err)
		}
		// 25999 * 8.25% = 2144.9175, rounded half up.
		if est.SubtotalCents != 25999 || est.TaxCents != 2145 || est.TotalCents != 28144 {
			t.Fatalf("unexpected totals %d/%d/%d", est.SubtotalCents, est.TaxCents, est.TotalCents)
		}
		if !est.UpdatedAt.Equal(fixedNow) {
			t.Fatalf("expected updated_at %v, got %v", fixedNow, est.UpdatedAt)
		}

		got, err := uc.GetEstimate(ctx, ownerActor, "est-1")
		if err != nil {
			t.Fatalf("expected nil error, got %v", err)
		}
		if len(got.LineItems) != 2 || got.TotalCents != 28144 {
			t.Fatalf("expected stored line items, got %+v", got)
		}
	})

	t.Run("sent estimate is locked", func(t *testing.T) {
		store := memstore.New()
		_ = store.SeedEstimate(ctx, entities.Estimate{ID: "est-1", AccountID: "acc-1", Status: entities.EstimateStatusSent})
		_, err := NewEstimateUseCase(store).ReplaceLineItems(ctx, adminActor, "est-1", items, 0)
		if !errors.Is(err, workflow.ErrEstimateNotDraft) {
			t.Fatalf("expected ESTIMATE_NOT_DRAFT, got %v", err)
		}
	})

	t.Run("invalid input", func(t *testing.T) {
		uc := NewEstimateUseCase(nil)
		cases := []struct {
			name  string
			id    string
			items []entities.LineItem
			bps   int64
			want  error
		}{
			{name: "empty id", id: " ", items: items, want: ErrInvalidEstimateID},
			{name: "no items", id: "est-1", want: ErrNoLineItems},
			{name: "zero quantity", id: "est-1", items: []entities.LineItem{{Description: "x", Quantity: 0, UnitPriceCents: 1}}, want: entities.ErrLineItemQuantity},
			{name: "negative tax", id: "est-1", items: items, bps: -1, want: entities.ErrTaxRate},
		}
		for _, tc := range cases {
			t.Run(tc.name, func(t *testing.T) {
				_, err := uc.ReplaceLineItems(ctx, adminActor, tc.id, tc.items, tc.bps)
				if !errors.Is(err, tc.want) {
					t.Fatalf("expected %v, got %v", tc.want, err)
				}
				if !errors.Is(err, workflow.ErrInvalidInput) {
					t.Fatalf("expected INVALID_INPUT rejection, got %v", err)
				}
			})
		}
	})

	t.Run("tech may not author estimates", func(t *testing.T) {
		_, err := NewEstimateUseCase(nil).ReplaceLineItems(ctx, techU1, "est-1", items, 0)
		if !errors.Is(err, workflow.ErrForbiddenRole) {
			t.Fatalf("expected FORBIDDEN_ROLE, got %v", err)
		}
	})

	t.Run("concurrent send wins over edit", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()
		store := mock_interfaces.NewMockIWorkflowStore(ctrl)
		draft := entities.Estimate{ID: "est-1", AccountID: "acc-1", Status: entities.EstimateStatusDraft}
		store.EXPECT().LoadScoped(gomock.Any(), entities.EntityEstimate, "est-1", "acc-1").Return(draft, nil)
		store.EXPECT().WriteScoped(gomock.Any(), entities.EntityEstimate, "est-1", "acc-1", entities.EstimateStatusDraft, gomock.Any()).
			Return(nil, interfaces.ErrConflictDetected)

		_, err := NewEstimateUseCase(store).ReplaceLineItems(ctx, adminActor, "est-1", items, 0)
		if !errors.Is(err, workflow.ErrConcurrentModification) {
			t.Fatalf("expected CONCURRENT_MODIFICATION, got %v", err)
		}
	})
}

func TestEstimateUseCase_GetEstimate(t *testing.T) {
	ctx := context.Background()

	t.Run("tech cannot view estimates", func(t *testing.T) {
		_, err := NewEstimateUseCase(memstore.New()).GetEstimate(ctx, techU1, "est-1")
		if !errors.Is(err, workflow.ErrForbiddenRole) {
			t.Fatalf("expected FORBIDDEN_ROLE, got %v", err)
		}
	})

	t.Run("blank id is invalid input", func(t *testing.T) {
		_, err := NewEstimateUseCase(memstore.New()).GetEstimate(ctx, adminActor, "  ")
		if !errors.Is(err, ErrInvalidEstimateID) || !errors.Is(err, workflow.ErrInvalidInput) {
			t.Fatalf("expected INVALID_INPUT wrapping ErrInvalidEstimateID, got %v", err)
		}
	})

	t.Run("not found", func(t *testing.T) {
		_, err := NewEstimateUseCase(memstore.New()).GetEstimate(ctx, adminActor, "est-1")
		if !errors.Is(err, workflow.ErrNotFound) {
			t.Fatalf("expected NOT_FOUND, got %v", err)
		}
	})
}
