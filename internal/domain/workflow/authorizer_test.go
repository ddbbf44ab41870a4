package workflow

import (
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"fieldservice/internal/domain/entities"
)

func strPtr(s string) *string { return &s }

func TestAuthorize(t *testing.T) {
	admin := entities.Actor{UserID: "u-admin", AccountID: "acc-1", Role: entities.RoleAdmin}
	tech1 := entities.Actor{UserID: "u-1", AccountID: "acc-1", Role: entities.RoleTech}
	tech2 := entities.Actor{UserID: "u-2", AccountID: "acc-1", Role: entities.RoleTech}

	visit := entities.Visit{ID: "v-1", AccountID: "acc-1", AssignedUserID: strPtr("u-1"), Status: entities.VisitStatusScheduled}
	unassigned := entities.Visit{ID: "v-2", AccountID: "acc-1", Status: entities.VisitStatusScheduled}
	job := entities.Job{ID: "j-1", AccountID: "acc-1", Status: entities.JobStatusInvoiced}

	tests := []struct {
		name   string
		actor  entities.Actor
		entity entities.Entity
		target entities.Status
		want   error
	}{
		{name: "admin moves visit", actor: admin, entity: visit, target: entities.VisitStatusArrived},
		{name: "assigned tech moves visit", actor: tech1, entity: visit, target: entities.VisitStatusArrived},
		{name: "other tech is not assigned", actor: tech2, entity: visit, target: entities.VisitStatusArrived, want: ErrNotAssigned},
		{name: "tech on unassigned visit", actor: tech1, entity: unassigned, target: entities.VisitStatusArrived, want: ErrNotAssigned},
		{name: "admin on unassigned visit", actor: admin, entity: unassigned, target: entities.VisitStatusArrived},
		{name: "tech cannot transition jobs", actor: tech1, entity: job, target: entities.JobStatusCancelled, want: ErrForbiddenRole},
		{name: "terminal job", actor: admin, entity: job, target: entities.JobStatusCancelled, want: ErrIllegalTransition},
		{name: "graph invalid even when assigned", actor: tech1, entity: visit, target: entities.VisitStatusCompleted, want: ErrIllegalTransition},
		{name: "unknown role", actor: entities.Actor{UserID: "u", AccountID: "acc-1", Role: "guest"}, entity: visit, target: entities.VisitStatusArrived, want: ErrForbiddenRole},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := Authorize(tt.actor, tt.entity, tt.target)
			if tt.want == nil {
				assert.NoError(t, err)
				return
			}
			assert.ErrorIs(t, err, tt.want)
		})
	}
}

func TestAuthorize_CheckOrder(t *testing.T) {
	// Every check would fail; the tenant check must win.
	stranger := entities.Actor{UserID: "u-9", AccountID: "acc-2", Role: entities.RoleTech}
	job := entities.Job{ID: "j-1", AccountID: "acc-1", Status: entities.JobStatusCancelled}
	assert.ErrorIs(t, Authorize(stranger, job, entities.JobStatusDraft), ErrCrossTenant)

	// Same account: role beats graph.
	tech := entities.Actor{UserID: "u-9", AccountID: "acc-1", Role: entities.RoleTech}
	assert.ErrorIs(t, Authorize(tech, job, entities.JobStatusDraft), ErrForbiddenRole)

	// Assignment beats graph.
	visit := entities.Visit{ID: "v-1", AccountID: "acc-1", Status: entities.VisitStatusCompleted}
	assert.ErrorIs(t, Authorize(tech, visit, entities.VisitStatusArrived), ErrNotAssigned)
}

func TestAuthorize_TerminalJobRejectsEveryTarget(t *testing.T) {
	owner := entities.Actor{UserID: "u-0", AccountID: "acc-1", Role: entities.RoleOwner}
	for _, terminal := range []entities.Status{entities.JobStatusCancelled, entities.JobStatusInvoiced} {
		job := entities.Job{ID: "j-1", AccountID: "acc-1", Status: terminal}
		for _, target := range Statuses(entities.EntityJob) {
			err := Authorize(owner, job, target)
			assert.ErrorIs(t, err, ErrIllegalTransition, "%s -> %s", terminal, target)
		}
	}
}

func TestRejection(t *testing.T) {
	r := Reject(ReasonNotAssigned, "visit %s", "v-1")
	assert.Equal(t, "NOT_ASSIGNED: visit v-1", r.Error())
	assert.True(t, errors.Is(r, ErrNotAssigned))
	assert.False(t, errors.Is(r, ErrForbiddenRole))

	wrapped := fmt.Errorf("handler: %w", r)
	reason, ok := ReasonOf(wrapped)
	require.True(t, ok)
	assert.Equal(t, ReasonNotAssigned, reason)

	cause := errors.New("connection reset")
	storage := StorageFailure(cause)
	assert.ErrorIs(t, storage, ErrStorage)
	assert.ErrorIs(t, storage, cause)

	_, ok = ReasonOf(cause)
	assert.False(t, ok)
}
