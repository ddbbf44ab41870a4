package gormstore

import (
	"context"
	"fmt"

	"fieldservice/internal/domain/entities"
	"fieldservice/internal/usecase/interfaces"

	"gorm.io/gorm"
)

// PaymentRepository provides access to invoice payment rows
type PaymentRepository struct {
	db *gorm.DB
}

var _ interfaces.IInvoicePaymentRepository = (*PaymentRepository)(nil)

// NewPaymentRepository creates a new payment repository instance
func NewPaymentRepository(db *gorm.DB) *PaymentRepository {
	return &PaymentRepository{db: db}
}

func (r *PaymentRepository) Create(ctx context.Context, p entities.InvoicePayment) (entities.InvoicePayment, error) {
	row := paymentRow(p)
	err := r.db.WithContext(ctx).Create(&row).Error
	if IsUniqueViolation(err) {
		return entities.InvoicePayment{}, fmt.Errorf("%w: payment %s", interfaces.ErrUniqueViolation, p.ID)
	}
	if err != nil {
		return entities.InvoicePayment{}, fmt.Errorf("failed to create payment: %w", err)
	}
	return row.toEntity(), nil
}

func (r *PaymentRepository) ListByInvoiceID(ctx context.Context, accountID, invoiceID string) ([]entities.InvoicePayment, error) {
	var rows []InvoicePayment
	err := r.db.WithContext(ctx).
		Where("account_id = ? AND invoice_id = ?", accountID, invoiceID).
		Order("date ASC").
		Find(&rows).Error
	if err != nil {
		return nil, fmt.Errorf("failed to list payments: %w", err)
	}
	out := make([]entities.InvoicePayment, 0, len(rows))
	for _, row := range rows {
		out = append(out, row.toEntity())
	}
	return out, nil
}
