package request

import (
	"strings"

	"fieldservice/internal/domain/entities"
)

// TransitionRequest asks for a status change. PaidCents is only read for
// invoice transitions to partial or paid.
type TransitionRequest struct {
	To        string `json:"to" binding:"required"`
	PaidCents *int64 `json:"paid_cents"`
}

func (r TransitionRequest) Target() entities.Status {
	return entities.Status(strings.ToLower(strings.TrimSpace(r.To)))
}

type AssignVisitRequest struct {
	UserID string `json:"user_id" binding:"required"`
}

// VisitNotesRequest replaces the technician notes; an empty string clears them.
type VisitNotesRequest struct {
	Notes *string `json:"notes" binding:"required"`
}
