package memstore

import (
	"context"
	"sort"
	"sync"

	"fieldservice/internal/domain/entities"
	"fieldservice/internal/usecase/interfaces"
)

// PaymentRepository keeps invoice payments in memory.
type PaymentRepository struct {
	mu       sync.Mutex
	payments map[string]entities.InvoicePayment
}

var _ interfaces.IInvoicePaymentRepository = (*PaymentRepository)(nil)

func NewPaymentRepository() *PaymentRepository {
	return &PaymentRepository{payments: map[string]entities.InvoicePayment{}}
}

func (r *PaymentRepository) Create(ctx context.Context, p entities.InvoicePayment) (entities.InvoicePayment, error) {
	if err := ctx.Err(); err != nil {
		return entities.InvoicePayment{}, err
	}
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, exists := r.payments[p.ID]; exists {
		return entities.InvoicePayment{}, interfaces.ErrUniqueViolation
	}
	r.payments[p.ID] = p
	return p, nil
}

func (r *PaymentRepository) ListByInvoiceID(ctx context.Context, accountID, invoiceID string) ([]entities.InvoicePayment, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	r.mu.Lock()
	defer r.mu.Unlock()

	out := []entities.InvoicePayment{}
	for _, p := range r.payments {
		if p.AccountID == accountID && p.InvoiceID == invoiceID {
			out = append(out, p)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Date.Before(out[j].Date) })
	return out, nil
}
