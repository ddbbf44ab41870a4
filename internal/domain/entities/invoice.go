package entities

import "time"

// Invoice statuses.
//
// InvoiceStatusOverdue is never stored by the workflow; it is a display label
// derived from DueAt, see DisplayStatus.
const (
	InvoiceStatusDraft   Status = "draft"
	InvoiceStatusSent    Status = "sent"
	InvoiceStatusPartial Status = "partial"
	InvoiceStatusPaid    Status = "paid"
	InvoiceStatusOverdue Status = "overdue"
	InvoiceStatusVoid    Status = "void"
)

// Invoice bills a client. At most one invoice exists per source estimate.
type Invoice struct {
	ID               string     `json:"id"`
	AccountID        string     `json:"account_id"`
	ClientID         string     `json:"client_id"`
	SourceEstimateID *string    `json:"source_estimate_id,omitempty"`
	Status           Status     `json:"status"`
	LineItems        []LineItem `json:"line_items"`
	SubtotalCents    int64      `json:"subtotal_cents"`
	TaxCents         int64      `json:"tax_cents"`
	TotalCents       int64      `json:"total_cents"`
	PaidCents        int64      `json:"paid_cents"`
	DueAt            *time.Time `json:"due_at,omitempty"`
	CreatedAt        time.Time  `json:"created_at"`
	UpdatedAt        time.Time  `json:"updated_at"`
}

func (i Invoice) EntityType() EntityType { return EntityInvoice }
func (i Invoice) GetID() string          { return i.ID }
func (i Invoice) GetAccountID() string   { return i.AccountID }
func (i Invoice) CurrentStatus() Status  { return i.Status }

func (i Invoice) AmountDueCents() int64 {
	return i.TotalCents - i.PaidCents
}

// DisplayStatus labels open invoices past their due date as overdue.
func (i Invoice) DisplayStatus(now time.Time) Status {
	if i.DueAt == nil {
		return i.Status
	}
	if (i.Status == InvoiceStatusSent || i.Status == InvoiceStatusPartial) && now.After(*i.DueAt) {
		return InvoiceStatusOverdue
	}
	return i.Status
}

func (i Invoice) Apply(p Patch) Invoice {
	if p.Status != nil {
		i.Status = *p.Status
	}
	if p.PaidCents != nil {
		i.PaidCents = *p.PaidCents
	}
	if p.DueAt != nil {
		t := *p.DueAt
		i.DueAt = &t
	}
	if !p.UpdatedAt.IsZero() {
		i.UpdatedAt = p.UpdatedAt
	}
	return i
}
