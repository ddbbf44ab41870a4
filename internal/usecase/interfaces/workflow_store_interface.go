package interfaces

import (
	"context"
	"errors"

	"fieldservice/internal/domain/entities"
)

var (
	// ErrConflictDetected is returned by WriteScoped when the stored status no
	// longer matches the expected status.
	ErrConflictDetected = errors.New("conflict detected: status changed since read")
	// ErrUniqueViolation is returned by InsertScoped when the record collides
	// with an existing id or invoice source estimate.
	ErrUniqueViolation = errors.New("unique constraint violation")
)

// IWorkflowStore is the persistence contract of the workflow engine.
//
// Every call is scoped to an account id. Implementations must:
//   - return a nil entity from LoadScoped when the record is absent in that account
//   - apply WriteScoped atomically, only when the stored status equals expected
//   - enforce one invoice per source estimate in InsertScoped

type IWorkflowStore interface {
	LoadScoped(ctx context.Context, entityType entities.EntityType, id, accountID string) (entities.Entity, error)
	WriteScoped(ctx context.Context, entityType entities.EntityType, id, accountID string, expected entities.Status, patch entities.Patch) (entities.Entity, error)
	InsertScoped(ctx context.Context, record entities.Entity) error
	FindInvoiceBySourceEstimate(ctx context.Context, accountID, estimateID string) (entities.Invoice, error)
}
