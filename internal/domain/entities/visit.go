package entities

import (
	"errors"
	"time"
)

// Visit statuses.
const (
	VisitStatusScheduled  Status = "scheduled"
	VisitStatusArrived    Status = "arrived"
	VisitStatusInProgress Status = "in_progress"
	VisitStatusCompleted  Status = "completed"
	VisitStatusCancelled  Status = "cancelled"
)

var ErrVisitWindow = errors.New("visit scheduled_end must be after scheduled_start")

// Visit is one on-site appointment, optionally tied to a job and a technician.
//
// ArrivedAt is only set by the transition to arrived and CompletedAt only by
// the transition to completed.
type Visit struct {
	ID             string     `json:"id"`
	AccountID      string     `json:"account_id"`
	JobID          *string    `json:"job_id,omitempty"`
	AssignedUserID *string    `json:"assigned_user_id,omitempty"`
	ScheduledStart time.Time  `json:"scheduled_start"`
	ScheduledEnd   time.Time  `json:"scheduled_end"`
	Status         Status     `json:"status"`
	ArrivedAt      *time.Time `json:"arrived_at,omitempty"`
	CompletedAt    *time.Time `json:"completed_at,omitempty"`
	TechNotes      string     `json:"tech_notes"`
	CreatedAt      time.Time  `json:"created_at"`
	UpdatedAt      time.Time  `json:"updated_at"`
}

func (v Visit) EntityType() EntityType { return EntityVisit }
func (v Visit) GetID() string          { return v.ID }
func (v Visit) GetAccountID() string   { return v.AccountID }
func (v Visit) CurrentStatus() Status  { return v.Status }

// IsAssignedTo reports whether userID is the visit's technician.
func (v Visit) IsAssignedTo(userID string) bool {
	return v.AssignedUserID != nil && *v.AssignedUserID == userID
}

func (v Visit) Validate() error {
	if !v.ScheduledEnd.After(v.ScheduledStart) {
		return ErrVisitWindow
	}
	return nil
}

func (v Visit) Apply(p Patch) Visit {
	if p.Status != nil {
		v.Status = *p.Status
	}
	if p.ArrivedAt != nil {
		t := *p.ArrivedAt
		v.ArrivedAt = &t
	}
	if p.CompletedAt != nil {
		t := *p.CompletedAt
		v.CompletedAt = &t
	}
	if p.AssignedUserID != nil {
		u := *p.AssignedUserID
		v.AssignedUserID = &u
	}
	if p.TechNotes != nil {
		v.TechNotes = *p.TechNotes
	}
	if !p.UpdatedAt.IsZero() {
		v.UpdatedAt = p.UpdatedAt
	}
	return v
}
