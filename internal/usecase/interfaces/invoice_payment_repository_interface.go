package interfaces

import (
	"context"

	"fieldservice/internal/domain/entities"
)

// IInvoicePaymentRepository persists charges applied to invoices.
type IInvoicePaymentRepository interface {
	Create(ctx context.Context, p entities.InvoicePayment) (entities.InvoicePayment, error)
	ListByInvoiceID(ctx context.Context, accountID, invoiceID string) ([]entities.InvoicePayment, error)
}
