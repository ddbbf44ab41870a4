package entities

import (
	"fmt"
	"time"
)

// EntityType names one of the workflow-governed record kinds.
type EntityType string

const (
	EntityJob      EntityType = "job"
	EntityVisit    EntityType = "visit"
	EntityEstimate EntityType = "estimate"
	EntityInvoice  EntityType = "invoice"
)

// EntityTypes lists every workflow entity type in display order.
var EntityTypes = []EntityType{EntityJob, EntityVisit, EntityEstimate, EntityInvoice}

func (t EntityType) String() string {
	return string(t)
}

// ParseEntityType accepts both singular and plural forms ("job", "jobs").
func ParseEntityType(s string) (EntityType, error) {
	switch s {
	case "job", "jobs":
		return EntityJob, nil
	case "visit", "visits":
		return EntityVisit, nil
	case "estimate", "estimates":
		return EntityEstimate, nil
	case "invoice", "invoices":
		return EntityInvoice, nil
	default:
		return "", fmt.Errorf("invalid entity type: %s", s)
	}
}

// Status is a lifecycle state value. Its meaning depends on the entity type.
type Status string

func (s Status) String() string {
	return string(s)
}

// Entity is the common view the workflow engine needs of any record.
type Entity interface {
	EntityType() EntityType
	GetID() string
	GetAccountID() string
	CurrentStatus() Status
}

// Patch lists the fields a single scoped write may touch. Nil fields are left unchanged.
type Patch struct {
	Status         *Status
	ArrivedAt      *time.Time
	CompletedAt    *time.Time
	PaidCents      *int64
	DueAt          *time.Time
	AssignedUserID *string
	TechNotes      *string
	LineItems      []LineItem
	TaxRateBps     *int64
	SubtotalCents  *int64
	TaxCents       *int64
	TotalCents     *int64
	UpdatedAt      time.Time

	// ExpectedPaidCents is a write condition, not a field: when set, the
	// write only applies while the stored invoice still has this paid amount.
	ExpectedPaidCents *int64
}

// PaidCentsMatch reports whether e satisfies the patch's paid amount condition.
func (p Patch) PaidCentsMatch(e Entity) bool {
	if p.ExpectedPaidCents == nil {
		return true
	}
	inv, ok := e.(Invoice)
	return ok && inv.PaidCents == *p.ExpectedPaidCents
}

// StatusPatch builds a patch that only moves the status.
func StatusPatch(s Status, now time.Time) Patch {
	return Patch{Status: &s, UpdatedAt: now}
}

// ApplyPatch returns a copy of e with p applied.
func ApplyPatch(e Entity, p Patch) Entity {
	switch v := e.(type) {
	case Job:
		return v.Apply(p)
	case Visit:
		return v.Apply(p)
	case Estimate:
		return v.Apply(p)
	case Invoice:
		return v.Apply(p)
	default:
		return e
	}
}
