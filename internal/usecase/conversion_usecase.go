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

	"github.com/google/uuid"
)

// IConversionUseCase derives invoices from approved estimates.
type IConversionUseCase interface {
	ConvertToInvoice(ctx context.Context, actor entities.Actor, estimateID string) (entities.Invoice, error)
}

type ConversionUseCase struct {
	store interfaces.IWorkflowStore
	sink  interfaces.IAutomationSink
	now   func() time.Time
	newID func() string
}

var _ IConversionUseCase = (*ConversionUseCase)(nil)

func NewConversionUseCase(store interfaces.IWorkflowStore, sink interfaces.IAutomationSink) *ConversionUseCase {
	return &ConversionUseCase{
		store: store,
		sink:  sink,
		now:   func() time.Time { return time.Now().UTC() },
		newID: uuid.NewString,
	}
}

// ConvertToInvoice creates the draft invoice for an approved estimate.
//
// The call is idempotent: when an invoice already exists for the estimate it
// is returned unchanged, including when a concurrent call inserted it first.
// The estimate itself is never modified.
func (u *ConversionUseCase) ConvertToInvoice(ctx context.Context, actor entities.Actor, estimateID string) (entities.Invoice, error) {
	estimateID = strings.TrimSpace(estimateID)
	if err := validateRequest(actor, entities.EntityEstimate, estimateID); err != nil {
		return entities.Invoice{}, err
	}
	if err := workflow.RequireCapability(actor, workflow.ActionTransition, entities.EntityInvoice); err != nil {
		return entities.Invoice{}, err
	}
	logger.Debugf("[conversion][usecase] convert start estimate_id=%s actor=%s", estimateID, actor.UserID)

	loaded, err := loadScoped(ctx, u.store, actor, entities.EntityEstimate, estimateID)
	if err != nil {
		return entities.Invoice{}, err
	}
	if err := workflow.CheckTenant(actor, loaded); err != nil {
		return entities.Invoice{}, err
	}
	estimate, ok := loaded.(entities.Estimate)
	if !ok {
		return entities.Invoice{}, workflow.StorageFailure(errors.New("store returned a non-estimate record"))
	}

	if existing, found, err := u.existingInvoice(ctx, actor.AccountID, estimateID); err != nil {
		return entities.Invoice{}, err
	} else if found {
		logger.Infof("[conversion][usecase] invoice already exists estimate_id=%s invoice_id=%s", estimateID, existing.ID)
		return existing, nil
	}

	if estimate.Status != entities.EstimateStatusApproved {
		return entities.Invoice{}, workflow.Reject(workflow.ReasonEstimateNotApproved, "estimate %s is %s", estimateID, estimate.Status)
	}

	invoice := u.invoiceFrom(estimate)
	if err := u.store.InsertScoped(ctx, invoice); err != nil {
		if !errors.Is(err, interfaces.ErrUniqueViolation) {
			logger.Errorf("[conversion][usecase] insert failed estimate_id=%s err=%v", estimateID, err)
			return entities.Invoice{}, workflow.StorageFailure(err)
		}
		// Lost the race to a concurrent conversion; the winner's row is the answer.
		existing, found, ferr := u.existingInvoice(ctx, actor.AccountID, estimateID)
		if ferr != nil {
			return entities.Invoice{}, ferr
		}
		if !found {
			return entities.Invoice{}, workflow.StorageFailure(err)
		}
		logger.Infof("[conversion][usecase] concurrent conversion resolved estimate_id=%s invoice_id=%s", estimateID, existing.ID)
		return existing, nil
	}

	emitAll(ctx, u.sink, []entities.AutomationEvent{{
		Type:       entities.EventInvoiceCreated,
		AccountID:  invoice.AccountID,
		EntityType: entities.EntityInvoice,
		EntityID:   invoice.ID,
		ActorID:    actor.UserID,
		To:         invoice.Status,
		OccurredAt: invoice.CreatedAt,
		Data: map[string]any{
			"source_estimate_id": estimateID,
			"total_cents":        invoice.TotalCents,
		},
	}})

	logger.Infof("[conversion][usecase] invoice created estimate_id=%s invoice_id=%s total_cents=%d", estimateID, invoice.ID, invoice.TotalCents)
	return invoice, nil
}

func (u *ConversionUseCase) existingInvoice(ctx context.Context, accountID, estimateID string) (entities.Invoice, bool, error) {
	inv, err := u.store.FindInvoiceBySourceEstimate(ctx, accountID, estimateID)
	if err != nil {
		logger.Errorf("[conversion][usecase] lookup failed estimate_id=%s err=%v", estimateID, err)
		return entities.Invoice{}, false, workflow.StorageFailure(err)
	}
	return inv, inv.ID != "", nil
}

func (u *ConversionUseCase) invoiceFrom(e entities.Estimate) entities.Invoice {
	now := u.now()
	sourceID := e.ID
	return entities.Invoice{
		ID:               u.newID(),
		AccountID:        e.AccountID,
		ClientID:         e.ClientID,
		SourceEstimateID: &sourceID,
		Status:           entities.InvoiceStatusDraft,
		LineItems:        append([]entities.LineItem(nil), e.LineItems...),
		SubtotalCents:    e.SubtotalCents,
		TaxCents:         e.TaxCents,
		TotalCents:       e.TotalCents,
		PaidCents:        0,
		CreatedAt:        now,
		UpdatedAt:        now,
	}
}
