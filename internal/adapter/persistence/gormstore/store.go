// Package gormstore persists workflow entities in a relational database
// through gorm. Postgres is the production target; the tests run the same
// code against in-memory sqlite.
package gormstore

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"fieldservice/internal/domain/entities"
	"fieldservice/internal/usecase/interfaces"

	"gorm.io/gorm"
)

// Store implements interfaces.IWorkflowStore on top of gorm.
type Store struct {
	db *gorm.DB
}

var _ interfaces.IWorkflowStore = (*Store)(nil)

// NewStore creates a new workflow store instance
func NewStore(db *gorm.DB) *Store {
	return &Store{db: db}
}

// Migrate creates or updates every table the store uses.
func Migrate(db *gorm.DB) error {
	return db.AutoMigrate(Models()...)
}

func (s *Store) LoadScoped(ctx context.Context, entityType entities.EntityType, id, accountID string) (entities.Entity, error) {
	return load(s.db.WithContext(ctx), entityType, id, accountID)
}

// WriteScoped applies patch with a single conditional UPDATE guarded by
// id, account and the expected status, plus paid_cents when the patch
// expects one. Zero affected rows means another writer got there first.
func (s *Store) WriteScoped(ctx context.Context, entityType entities.EntityType, id, accountID string, expected entities.Status, patch entities.Patch) (entities.Entity, error) {
	model, err := modelFor(entityType)
	if err != nil {
		return nil, err
	}
	cols := patchColumns(entityType, patch)

	var updated entities.Entity
	err = s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if len(cols) == 0 {
			current, err := load(tx, entityType, id, accountID)
			if err != nil {
				return err
			}
			if current == nil || current.CurrentStatus() != expected || !patch.PaidCentsMatch(current) {
				return interfaces.ErrConflictDetected
			}
			updated = current
			return nil
		}

		q := tx.Model(model).Where("id = ? AND account_id = ? AND status = ?", id, accountID, string(expected))
		if patch.ExpectedPaidCents != nil {
			if entityType != entities.EntityInvoice {
				return interfaces.ErrConflictDetected
			}
			q = q.Where("paid_cents = ?", *patch.ExpectedPaidCents)
		}
		res := q.Updates(cols)
		if res.Error != nil {
			return fmt.Errorf("failed to update %s: %w", entityType, res.Error)
		}
		if res.RowsAffected == 0 {
			return interfaces.ErrConflictDetected
		}
		updated, err = load(tx, entityType, id, accountID)
		if err != nil {
			return err
		}
		if updated == nil {
			return interfaces.ErrConflictDetected
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return updated, nil
}

func (s *Store) InsertScoped(ctx context.Context, record entities.Entity) error {
	if record == nil || record.GetID() == "" || record.GetAccountID() == "" {
		return errors.New("record needs an id and an account id")
	}
	var row interface{}
	switch e := record.(type) {
	case entities.Job:
		r := jobRow(e)
		row = &r
	case entities.Visit:
		r := visitRow(e)
		row = &r
	case entities.Estimate:
		r := estimateRow(e)
		row = &r
	case entities.Invoice:
		r := invoiceRow(e)
		row = &r
	default:
		return fmt.Errorf("unsupported entity %T", record)
	}

	err := s.db.WithContext(ctx).Create(row).Error
	if IsUniqueViolation(err) {
		return fmt.Errorf("%w: %s %s", interfaces.ErrUniqueViolation, record.EntityType(), record.GetID())
	}
	if err != nil {
		return fmt.Errorf("failed to insert %s: %w", record.EntityType(), err)
	}
	return nil
}

func (s *Store) FindInvoiceBySourceEstimate(ctx context.Context, accountID, estimateID string) (entities.Invoice, error) {
	var row Invoice
	err := s.db.WithContext(ctx).
		Where("account_id = ? AND source_estimate_id = ?", accountID, estimateID).
		First(&row).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return entities.Invoice{}, nil
	}
	if err != nil {
		return entities.Invoice{}, fmt.Errorf("failed to find invoice by source estimate: %w", err)
	}
	return row.toEntity(), nil
}

// IsUniqueViolation reports whether err is a duplicate key error from
// postgres or sqlite.
func IsUniqueViolation(err error) bool {
	if err == nil {
		return false
	}
	if errors.Is(err, gorm.ErrDuplicatedKey) {
		return true
	}
	msg := strings.ToLower(err.Error())
	return strings.Contains(msg, "unique constraint") || strings.Contains(msg, "duplicate key")
}

func load(db *gorm.DB, entityType entities.EntityType, id, accountID string) (entities.Entity, error) {
	scope := db.Where("id = ? AND account_id = ?", id, accountID)

	var (
		err    error
		entity entities.Entity
	)
	switch entityType {
	case entities.EntityJob:
		var row Job
		if err = scope.First(&row).Error; err == nil {
			entity = row.toEntity()
		}
	case entities.EntityVisit:
		var row Visit
		if err = scope.First(&row).Error; err == nil {
			entity = row.toEntity()
		}
	case entities.EntityEstimate:
		var row Estimate
		if err = scope.First(&row).Error; err == nil {
			entity = row.toEntity()
		}
	case entities.EntityInvoice:
		var row Invoice
		if err = scope.First(&row).Error; err == nil {
			entity = row.toEntity()
		}
	default:
		return nil, fmt.Errorf("unsupported entity type %q", entityType)
	}

	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to load %s: %w", entityType, err)
	}
	return entity, nil
}

func modelFor(entityType entities.EntityType) (interface{}, error) {
	switch entityType {
	case entities.EntityJob:
		return &Job{}, nil
	case entities.EntityVisit:
		return &Visit{}, nil
	case entities.EntityEstimate:
		return &Estimate{}, nil
	case entities.EntityInvoice:
		return &Invoice{}, nil
	}
	return nil, fmt.Errorf("unsupported entity type %q", entityType)
}

// patchColumns maps the patch onto the columns of the entity's table. Fields
// the table does not have are ignored.
func patchColumns(entityType entities.EntityType, p entities.Patch) map[string]interface{} {
	cols := map[string]interface{}{}
	if p.Status != nil {
		cols["status"] = string(*p.Status)
	}
	if !p.UpdatedAt.IsZero() {
		cols["updated_at"] = p.UpdatedAt
	}

	switch entityType {
	case entities.EntityVisit:
		if p.ArrivedAt != nil {
			cols["arrived_at"] = *p.ArrivedAt
		}
		if p.CompletedAt != nil {
			cols["completed_at"] = *p.CompletedAt
		}
		if p.AssignedUserID != nil {
			cols["assigned_user_id"] = *p.AssignedUserID
		}
		if p.TechNotes != nil {
			cols["tech_notes"] = *p.TechNotes
		}
	case entities.EntityEstimate:
		if p.LineItems != nil {
			cols["line_items"] = LineItems(p.LineItems)
		}
		if p.TaxRateBps != nil {
			cols["tax_rate_bps"] = *p.TaxRateBps
		}
		if p.SubtotalCents != nil {
			cols["subtotal_cents"] = *p.SubtotalCents
		}
		if p.TaxCents != nil {
			cols["tax_cents"] = *p.TaxCents
		}
		if p.TotalCents != nil {
			cols["total_cents"] = *p.TotalCents
		}
	case entities.EntityInvoice:
		if p.PaidCents != nil {
			cols["paid_cents"] = *p.PaidCents
		}
		if p.DueAt != nil {
			cols["due_at"] = *p.DueAt
		}
	}
	return cols
}
