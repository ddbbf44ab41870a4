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

var ErrInvalidAssignee = errors.New("invalid assignee user id")

// IVisitUseCase exposes the field operations on visits that are not status changes.
type IVisitUseCase interface {
	AssignVisit(ctx context.Context, actor entities.Actor, visitID, userID string) (entities.Visit, error)
	UpdateNotes(ctx context.Context, actor entities.Actor, visitID, notes string) (entities.Visit, error)
}

type VisitUseCase struct {
	store interfaces.IWorkflowStore
	sink  interfaces.IAutomationSink
	now   func() time.Time
}

var _ IVisitUseCase = (*VisitUseCase)(nil)

func NewVisitUseCase(store interfaces.IWorkflowStore, sink interfaces.IAutomationSink) *VisitUseCase {
	return &VisitUseCase{store: store, sink: sink, now: func() time.Time { return time.Now().UTC() }}
}

// AssignVisit sets the technician of an open visit and schedules their reminder.
func (u *VisitUseCase) AssignVisit(ctx context.Context, actor entities.Actor, visitID, userID string) (entities.Visit, error) {
	visitID = strings.TrimSpace(visitID)
	userID = strings.TrimSpace(userID)
	if err := validateRequest(actor, entities.EntityVisit, visitID); err != nil {
		return entities.Visit{}, err
	}
	if userID == "" {
		return entities.Visit{}, &workflow.Rejection{Reason: workflow.ReasonInvalidInput, Err: ErrInvalidAssignee}
	}
	if err := workflow.RequireCapability(actor, workflow.ActionAssign, entities.EntityVisit); err != nil {
		return entities.Visit{}, err
	}

	current, err := u.load(ctx, actor, visitID)
	if err != nil {
		return entities.Visit{}, err
	}
	if workflow.IsTerminal(entities.EntityVisit, current.Status) {
		return entities.Visit{}, workflow.Reject(workflow.ReasonEntityClosed, "visit %s is %s", visitID, current.Status)
	}

	now := u.now()
	updated, err := u.write(ctx, current, entities.Patch{AssignedUserID: &userID, UpdatedAt: now})
	if err != nil {
		return entities.Visit{}, err
	}

	emitAll(ctx, u.sink, []entities.AutomationEvent{{
		Type:       entities.EventVisitReminderDue,
		AccountID:  updated.AccountID,
		EntityType: entities.EntityVisit,
		EntityID:   updated.ID,
		ActorID:    actor.UserID,
		OccurredAt: now,
		Data: map[string]any{
			"assigned_user_id": userID,
			"scheduled_start":  updated.ScheduledStart.Format(time.RFC3339),
		},
	}})
	logger.Infof("[visit][usecase] assigned visit_id=%s user_id=%s actor=%s", visitID, userID, actor.UserID)
	return updated, nil
}

// UpdateNotes replaces the technician notes. Technicians may only edit their
// own visits; notes stay editable after completion but not after cancellation.
func (u *VisitUseCase) UpdateNotes(ctx context.Context, actor entities.Actor, visitID, notes string) (entities.Visit, error) {
	visitID = strings.TrimSpace(visitID)
	if err := validateRequest(actor, entities.EntityVisit, visitID); err != nil {
		return entities.Visit{}, err
	}
	if err := workflow.RequireCapability(actor, workflow.ActionUpdateNotes, entities.EntityVisit); err != nil {
		return entities.Visit{}, err
	}

	current, err := u.load(ctx, actor, visitID)
	if err != nil {
		return entities.Visit{}, err
	}
	if err := workflow.CheckAssignment(actor, current); err != nil {
		return entities.Visit{}, err
	}
	if current.Status == entities.VisitStatusCancelled {
		return entities.Visit{}, workflow.Reject(workflow.ReasonEntityClosed, "visit %s is cancelled", visitID)
	}

	now := u.now()
	updated, err := u.write(ctx, current, entities.Patch{TechNotes: &notes, UpdatedAt: now})
	if err != nil {
		return entities.Visit{}, err
	}

	emitAll(ctx, u.sink, []entities.AutomationEvent{{
		Type:       entities.EventVisitNotesUpdated,
		AccountID:  updated.AccountID,
		EntityType: entities.EntityVisit,
		EntityID:   updated.ID,
		ActorID:    actor.UserID,
		OccurredAt: now,
	}})
	logger.Infof("[visit][usecase] notes updated visit_id=%s actor=%s len=%d", visitID, actor.UserID, len(notes))
	return updated, nil
}

func (u *VisitUseCase) load(ctx context.Context, actor entities.Actor, visitID string) (entities.Visit, error) {
	e, err := loadScoped(ctx, u.store, actor, entities.EntityVisit, visitID)
	if err != nil {
		return entities.Visit{}, err
	}
	if err := workflow.CheckTenant(actor, e); err != nil {
		return entities.Visit{}, err
	}
	v, ok := e.(entities.Visit)
	if !ok {
		return entities.Visit{}, workflow.StorageFailure(errors.New("store returned a non-visit record"))
	}
	return v, nil
}

func (u *VisitUseCase) write(ctx context.Context, current entities.Visit, patch entities.Patch) (entities.Visit, error) {
	updated, err := writeScoped(ctx, u.store, current, patch)
	if err != nil {
		return entities.Visit{}, err
	}
	v, ok := updated.(entities.Visit)
	if !ok {
		return entities.Visit{}, workflow.StorageFailure(errors.New("store returned a non-visit record"))
	}
	return v, nil
}
