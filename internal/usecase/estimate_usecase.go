package usecase

import (
	"context"
	"errors"
	"strings"
	"time"

	"fieldservice/internal/domain/entities"
	"fieldservice/internal/domain/workflow"
	"fieldservice/internal/logger"
	"fieldservice/internal/usecase/interfaces"
)

var (
	ErrInvalidEstimateID = errors.New("invalid estimate id")
	ErrNoLineItems       = errors.New("estimate needs at least one line item")
)

// IEstimateUseCase exposes estimate authoring.
//
// Line items and the tax rate can only change while the estimate is draft;
// totals are recomputed on every change.
type IEstimateUseCase interface {
	ReplaceLineItems(ctx context.Context, actor entities.Actor, estimateID string, items []entities.LineItem, taxRateBps int64) (entities.Estimate, error)
	GetEstimate(ctx context.Context, actor entities.Actor, estimateID string) (entities.Estimate, error)
}

type EstimateUseCase struct {
	store interfaces.IWorkflowStore
	now   func() time.Time
}

var _ IEstimateUseCase = (*EstimateUseCase)(nil)

func NewEstimateUseCase(store interfaces.IWorkflowStore) *EstimateUseCase {
	return &EstimateUseCase{store: store, now: func() time.Time { return time.Now().UTC() }}
}

func (u *EstimateUseCase) ReplaceLineItems(ctx context.Context, actor entities.Actor, estimateID string, items []entities.LineItem, taxRateBps int64) (entities.Estimate, error) {
	estimateID = strings.TrimSpace(estimateID)
	if estimateID == "" {
		return entities.Estimate{}, &workflow.Rejection{Reason: workflow.ReasonInvalidInput, Err: ErrInvalidEstimateID}
	}
	if len(items) == 0 {
		return entities.Estimate{}, &workflow.Rejection{Reason: workflow.ReasonInvalidInput, Err: ErrNoLineItems}
	}
	for _, it := range items {
		if err := it.Validate(); err != nil {
			return entities.Estimate{}, &workflow.Rejection{Reason: workflow.ReasonInvalidInput, Err: err}
		}
	}
	if err := entities.ValidateTaxRate(taxRateBps); err != nil {
		return entities.Estimate{}, &workflow.Rejection{Reason: workflow.ReasonInvalidInput, Err: err}
	}
	if err := validateRequest(actor, entities.EntityEstimate, estimateID); err != nil {
		return entities.Estimate{}, err
	}
	if err := workflow.RequireCapability(actor, workflow.ActionCreate, entities.EntityEstimate); err != nil {
		return entities.Estimate{}, err
	}

	current, err := u.load(ctx, actor, estimateID)
	if err != nil {
		return entities.Estimate{}, err
	}
	if current.Status != entities.EstimateStatusDraft {
		return entities.Estimate{}, workflow.Reject(workflow.ReasonEstimateNotDraft, "estimate %s is %s", estimateID, current.Status)
	}

	next := current
	next.LineItems = append([]entities.LineItem(nil), items...)
	next.TaxRateBps = taxRateBps
	next.Recalculate()

	patch := entities.Patch{
		LineItems:     next.LineItems,
		TaxRateBps:    &next.TaxRateBps,
		SubtotalCents: &next.SubtotalCents,
		TaxCents:      &next.TaxCents,
		TotalCents:    &next.TotalCents,
		UpdatedAt:     u.now(),
	}
	updated, err := writeScoped(ctx, u.store, current, patch)
	if err != nil {
		return entities.Estimate{}, err
	}
	est, ok := updated.(entities.Estimate)
	if !ok {
		return entities.Estimate{}, workflow.StorageFailure(errors.New("store returned a non-estimate record"))
	}
	logger.Infof("[estimate][usecase] line items replaced estimate_id=%s items=%d total_cents=%d", estimateID, len(items), est.TotalCents)
	return est, nil
}

func (u *EstimateUseCase) GetEstimate(ctx context.Context, actor entities.Actor, estimateID string) (entities.Estimate, error) {
	estimateID = strings.TrimSpace(estimateID)
	if estimateID == "" {
		return entities.Estimate{}, &workflow.Rejection{Reason: workflow.ReasonInvalidInput, Err: ErrInvalidEstimateID}
	}
	if err := validateRequest(actor, entities.EntityEstimate, estimateID); err != nil {
		return entities.Estimate{}, err
	}
	if !workflow.CanViewAll(actor.Role, entities.EntityEstimate) {
		return entities.Estimate{}, workflow.Reject(workflow.ReasonForbiddenRole, "role %q may not view estimates", actor.Role)
	}
	return u.load(ctx, actor, estimateID)
}

func (u *EstimateUseCase) load(ctx context.Context, actor entities.Actor, estimateID string) (entities.Estimate, error) {
	e, err := loadScoped(ctx, u.store, actor, entities.EntityEstimate, estimateID)
	if err != nil {
		return entities.Estimate{}, err
	}
	if err := workflow.CheckTenant(actor, e); err != nil {
		return entities.Estimate{}, err
	}
	est, ok := e.(entities.Estimate)
	if !ok {
		return entities.Estimate{}, workflow.StorageFailure(errors.New("store returned a non-estimate record"))
	}
	return est, nil
}
