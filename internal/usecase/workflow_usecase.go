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

// DefaultPaymentTerms is how long a client has to pay a sent invoice.
const DefaultPaymentTerms = 30 * 24 * time.Hour

// TransitionPayload carries optional caller-supplied values for a transition.
type TransitionPayload struct {
	// PaidCents is the invoice's total paid amount after this transition.
	PaidCents *int64 `json:"paid_cents,omitempty"`
	// ExpectedPaidCents pins the paid amount PaidCents was computed from.
	// A different stored amount rejects the call with CONCURRENT_MODIFICATION.
	ExpectedPaidCents *int64 `json:"-"`
}

// TransitionResult is the committed entity plus the automation events it triggered.
type TransitionResult struct {
	Entity entities.Entity
	Events []entities.AutomationEvent
}

// IWorkflowUseCase exposes the status workflow of jobs, visits, estimates and invoices.
type IWorkflowUseCase interface {
	Transition(ctx context.Context, actor entities.Actor, entityType entities.EntityType, entityID string, target entities.Status, payload *TransitionPayload) (TransitionResult, error)
	Get(ctx context.Context, actor entities.Actor, entityType entities.EntityType, entityID string) (entities.Entity, error)
	AllowedTransitions(entityType entities.EntityType, current entities.Status) []entities.Status
}

type WorkflowUseCase struct {
	store        interfaces.IWorkflowStore
	sink         interfaces.IAutomationSink
	now          func() time.Time
	paymentTerms time.Duration
}

var _ IWorkflowUseCase = (*WorkflowUseCase)(nil)

// WorkflowOption customizes a WorkflowUseCase.
type WorkflowOption func(*WorkflowUseCase)

// WithClock overrides the time source used for timestamps.
func WithClock(now func() time.Time) WorkflowOption {
	return func(u *WorkflowUseCase) { u.now = now }
}

// WithPaymentTerms sets the due period stamped on invoices when they are sent.
func WithPaymentTerms(d time.Duration) WorkflowOption {
	return func(u *WorkflowUseCase) {
		if d > 0 {
			u.paymentTerms = d
		}
	}
}

func NewWorkflowUseCase(store interfaces.IWorkflowStore, sink interfaces.IAutomationSink, opts ...WorkflowOption) *WorkflowUseCase {
	u := &WorkflowUseCase{
		store:        store,
		sink:         sink,
		now:          func() time.Time { return time.Now().UTC() },
		paymentTerms: DefaultPaymentTerms,
	}
	for _, opt := range opts {
		opt(u)
	}
	return u
}

func (u *WorkflowUseCase) AllowedTransitions(entityType entities.EntityType, current entities.Status) []entities.Status {
	return workflow.AllowedTargets(entityType, current)
}

// Get loads one entity in the actor's account.
func (u *WorkflowUseCase) Get(ctx context.Context, actor entities.Actor, entityType entities.EntityType, entityID string) (entities.Entity, error) {
	entityID = strings.TrimSpace(entityID)
	if err := validateRequest(actor, entityType, entityID); err != nil {
		return nil, err
	}
	if err := workflow.RequireCapability(actor, workflow.ActionViewAll, entityType); err != nil {
		return nil, err
	}
	e, err := loadScoped(ctx, u.store, actor, entityType, entityID)
	if err != nil {
		return nil, err
	}
	if err := workflow.CheckTenant(actor, e); err != nil {
		return nil, err
	}
	return e, nil
}

// Transition moves an entity to target on behalf of actor.
//
// The status write is conditional on the status that was authorized; if
// another request changed it in between, the call is rejected with
// CONCURRENT_MODIFICATION and nothing is written.
func (u *WorkflowUseCase) Transition(ctx context.Context, actor entities.Actor, entityType entities.EntityType, entityID string, target entities.Status, payload *TransitionPayload) (TransitionResult, error) {
	entityID = strings.TrimSpace(entityID)
	if err := validateRequest(actor, entityType, entityID); err != nil {
		return TransitionResult{}, err
	}
	logger.Debugf("[workflow][usecase] transition start entity=%s id=%s target=%s actor=%s", entityType, entityID, target, actor.UserID)

	current, err := loadScoped(ctx, u.store, actor, entityType, entityID)
	if err != nil {
		return TransitionResult{}, err
	}

	if err := checkExpectedPaid(current, payload); err != nil {
		logRejection(actor, current, target, err)
		return TransitionResult{}, err
	}

	if err := workflow.Authorize(actor, current, target); err != nil {
		logRejection(actor, current, target, err)
		return TransitionResult{}, err
	}

	now := u.now()
	patch, err := u.sideEffects(current, target, payload, now)
	if err != nil {
		logRejection(actor, current, target, err)
		return TransitionResult{}, err
	}

	updated, err := writeScoped(ctx, u.store, current, patch)
	if err != nil {
		logRejection(actor, current, target, err)
		return TransitionResult{}, err
	}

	events := transitionEvents(actor, current, updated, now)
	emitAll(ctx, u.sink, events)

	logger.Infof("[workflow][usecase] transition committed entity=%s id=%s from=%s to=%s actor=%s events=%d",
		entityType, entityID, current.CurrentStatus(), updated.CurrentStatus(), actor.UserID, len(events))
	return TransitionResult{Entity: updated, Events: events}, nil
}

// sideEffects builds the single patch written together with the status.
func (u *WorkflowUseCase) sideEffects(current entities.Entity, target entities.Status, payload *TransitionPayload, now time.Time) (entities.Patch, error) {
	patch := entities.StatusPatch(target, now)

	switch e := current.(type) {
	case entities.Visit:
		switch target {
		case entities.VisitStatusArrived:
			patch.ArrivedAt = &now
		case entities.VisitStatusCompleted:
			patch.CompletedAt = &now
		}

	case entities.Invoice:
		switch target {
		case entities.InvoiceStatusSent:
			if e.DueAt == nil {
				due := now.Add(u.paymentTerms)
				patch.DueAt = &due
			}
		case entities.InvoiceStatusPaid, entities.InvoiceStatusPartial:
			paid := e.PaidCents
			if payload != nil && payload.PaidCents != nil {
				paid = *payload.PaidCents
			}
			if err := checkPayment(e, target, paid); err != nil {
				return entities.Patch{}, err
			}
			patch.PaidCents = &paid
			loaded := e.PaidCents
			patch.ExpectedPaidCents = &loaded
		}
	}

	return patch, nil
}

// checkExpectedPaid rejects a payment-driven transition whose paid amount was
// computed from an invoice that has changed since.
func checkExpectedPaid(current entities.Entity, payload *TransitionPayload) error {
	if payload == nil || payload.ExpectedPaidCents == nil {
		return nil
	}
	inv, ok := current.(entities.Invoice)
	if !ok || inv.PaidCents != *payload.ExpectedPaidCents {
		return workflow.Reject(workflow.ReasonConcurrentModification, "%s %s changed since it was read, reload and retry", current.EntityType(), current.GetID())
	}
	return nil
}

func checkPayment(inv entities.Invoice, target entities.Status, paid int64) error {
	if paid < 0 {
		return workflow.Reject(workflow.ReasonInvalidInput, "paid_cents cannot be negative")
	}
	switch target {
	case entities.InvoiceStatusPaid:
		if paid != inv.TotalCents {
			return workflow.Reject(workflow.ReasonIncompletePayment, "paid %d of %d cents", paid, inv.TotalCents)
		}
	case entities.InvoiceStatusPartial:
		if paid <= 0 || paid >= inv.TotalCents {
			return workflow.Reject(workflow.ReasonIncompletePayment, "partial payment must be between 0 and %d cents, got %d", inv.TotalCents, paid)
		}
	}
	return nil
}

func transitionEvents(actor entities.Actor, before, after entities.Entity, now time.Time) []entities.AutomationEvent {
	var eventType entities.AutomationEventType
	data := map[string]any{}

	switch e := after.(type) {
	case entities.Job:
		switch e.Status {
		case entities.JobStatusScheduled:
			eventType = entities.EventJobScheduled
			if e.ScheduledStart != nil {
				data["scheduled_start"] = e.ScheduledStart.Format(time.RFC3339)
			}
		case entities.JobStatusCompleted:
			eventType = entities.EventJobCompleted
		case entities.JobStatusCancelled:
			eventType = entities.EventJobCancelled
		}
	case entities.Visit:
		switch e.Status {
		case entities.VisitStatusArrived:
			eventType = entities.EventVisitArrived
		case entities.VisitStatusCompleted:
			eventType = entities.EventVisitCompleted
			if e.JobID != nil {
				data["job_id"] = *e.JobID
			}
		}
		if e.AssignedUserID != nil {
			data["assigned_user_id"] = *e.AssignedUserID
		}
	case entities.Estimate:
		switch e.Status {
		case entities.EstimateStatusSent:
			eventType = entities.EventEstimateSent
		case entities.EstimateStatusApproved:
			eventType = entities.EventEstimateApproved
		case entities.EstimateStatusDeclined:
			eventType = entities.EventEstimateDeclined
		}
		data["client_id"] = e.ClientID
		data["total_cents"] = e.TotalCents
	case entities.Invoice:
		switch e.Status {
		case entities.InvoiceStatusSent:
			eventType = entities.EventInvoiceSent
		case entities.InvoiceStatusPartial:
			eventType = entities.EventInvoicePartial
		case entities.InvoiceStatusPaid:
			eventType = entities.EventInvoicePaid
		case entities.InvoiceStatusVoid:
			eventType = entities.EventInvoiceVoided
		}
		data["client_id"] = e.ClientID
		data["amount_due_cents"] = e.AmountDueCents()
	}

	if eventType == "" {
		return nil
	}
	return []entities.AutomationEvent{{
		Type:       eventType,
		AccountID:  after.GetAccountID(),
		EntityType: after.EntityType(),
		EntityID:   after.GetID(),
		ActorID:    actor.UserID,
		From:       before.CurrentStatus(),
		To:         after.CurrentStatus(),
		OccurredAt: now,
		Data:       data,
	}}
}

func validateRequest(actor entities.Actor, entityType entities.EntityType, entityID string) error {
	if strings.TrimSpace(actor.UserID) == "" || strings.TrimSpace(actor.AccountID) == "" {
		return workflow.Reject(workflow.ReasonInvalidInput, "actor user and account are required")
	}
	if _, ok := workflow.InitialStatus(entityType); !ok {
		return workflow.Reject(workflow.ReasonInvalidInput, "unknown entity type %q", entityType)
	}
	if entityID == "" {
		return workflow.Reject(workflow.ReasonInvalidInput, "entity id is required")
	}
	return nil
}

// loadScoped reads an entity in the actor's account. A missing record and a
// record in another account are indistinguishable to the caller.
func loadScoped(ctx context.Context, store interfaces.IWorkflowStore, actor entities.Actor, entityType entities.EntityType, entityID string) (entities.Entity, error) {
	e, err := store.LoadScoped(ctx, entityType, entityID, actor.AccountID)
	if err != nil {
		logger.Errorf("[workflow][usecase] load failed entity=%s id=%s err=%v", entityType, entityID, err)
		return nil, workflow.StorageFailure(err)
	}
	if e == nil {
		return nil, workflow.Reject(workflow.ReasonNotFound, "%s %s not found", entityType, entityID)
	}
	return e, nil
}

// writeScoped applies patch only if the entity still has the status it was loaded with.
func writeScoped(ctx context.Context, store interfaces.IWorkflowStore, current entities.Entity, patch entities.Patch) (entities.Entity, error) {
	updated, err := store.WriteScoped(ctx, current.EntityType(), current.GetID(), current.GetAccountID(), current.CurrentStatus(), patch)
	if errors.Is(err, interfaces.ErrConflictDetected) || (err == nil && updated == nil) {
		return nil, workflow.Reject(workflow.ReasonConcurrentModification, "%s %s changed since it was read, reload and retry", current.EntityType(), current.GetID())
	}
	if err != nil {
		logger.Errorf("[workflow][usecase] write failed entity=%s id=%s err=%v", current.EntityType(), current.GetID(), err)
		return nil, workflow.StorageFailure(err)
	}
	return updated, nil
}

// emitAll hands events to the sink. A misbehaving sink never fails the caller.
func emitAll(ctx context.Context, sink interfaces.IAutomationSink, events []entities.AutomationEvent) {
	if sink == nil {
		return
	}
	for _, ev := range events {
		func() {
			defer func() {
				if r := recover(); r != nil {
					logger.Errorf("[workflow][automation] sink panicked event=%s entity_id=%s recovered=%v", ev.Type, ev.EntityID, r)
				}
			}()
			sink.Emit(ctx, ev)
		}()
	}
}

func logRejection(actor entities.Actor, entity entities.Entity, target entities.Status, err error) {
	reason, _ := workflow.ReasonOf(err)
	fields := map[string]interface{}{
		"entity_type": entity.EntityType(),
		"entity_id":   entity.GetID(),
		"from":        entity.CurrentStatus(),
		"to":          target,
		"actor_id":    actor.UserID,
		"role":        actor.Role,
		"reason":      reason,
	}
	switch reason {
	case workflow.ReasonIllegalTransition:
		logger.WarnWithFields("[workflow][usecase] illegal transition requested", fields)
	case workflow.ReasonStorageError:
		logger.ErrorWithFields("[workflow][usecase] transition failed", fields)
	default:
		logger.InfoWithFields("[workflow][usecase] transition rejected", fields)
	}
}
