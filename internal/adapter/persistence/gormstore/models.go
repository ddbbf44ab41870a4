package gormstore

import (
	"database/sql/driver"
	"encoding/json"
	"fmt"
	"time"

	"fieldservice/internal/domain/entities"
)

// LineItems stores estimate and invoice rows as a JSON document.
type LineItems []entities.LineItem

// Value implements the driver.Valuer interface
func (l LineItems) Value() (driver.Value, error) {
	if l == nil {
		return "[]", nil
	}
	b, err := json.Marshal(l)
	if err != nil {
		return nil, err
	}
	return string(b), nil
}

// Scan implements the sql.Scanner interface
func (l *LineItems) Scan(value interface{}) error {
	var raw []byte
	switch v := value.(type) {
	case nil:
		*l = nil
		return nil
	case []byte:
		raw = v
	case string:
		raw = []byte(v)
	default:
		return fmt.Errorf("failed to unmarshal line items: unexpected type %T", value)
	}
	var items []entities.LineItem
	if err := json.Unmarshal(raw, &items); err != nil {
		return fmt.Errorf("failed to unmarshal line items: %w", err)
	}
	*l = items
	return nil
}

// Job is the jobs table row.
type Job struct {
	ID             string          `gorm:"primaryKey;size:64"`
	AccountID      string          `gorm:"not null;index;size:64"`
	ClientID       *string         `gorm:"size:64"`
	Title          string          `gorm:"not null"`
	Status         entities.Status `gorm:"not null;index;size:32"`
	ScheduledStart *time.Time
	CreatedAt      time.Time
	UpdatedAt      time.Time
}

func (Job) TableName() string { return "jobs" }

// Visit is the visits table row.
type Visit struct {
	ID             string          `gorm:"primaryKey;size:64"`
	AccountID      string          `gorm:"not null;index;size:64"`
	JobID          *string         `gorm:"index;size:64"`
	AssignedUserID *string         `gorm:"index;size:64"`
	ScheduledStart time.Time       `gorm:"not null"`
	ScheduledEnd   time.Time       `gorm:"not null"`
	Status         entities.Status `gorm:"not null;index;size:32"`
	ArrivedAt      *time.Time
	CompletedAt    *time.Time
	TechNotes      string `gorm:"type:text"`
	CreatedAt      time.Time
	UpdatedAt      time.Time
}

func (Visit) TableName() string { return "visits" }

// Estimate is the estimates table row.
type Estimate struct {
	ID            string          `gorm:"primaryKey;size:64"`
	AccountID     string          `gorm:"not null;index;size:64"`
	ClientID      string          `gorm:"size:64"`
	Status        entities.Status `gorm:"not null;index;size:32"`
	LineItems     LineItems       `gorm:"type:jsonb"`
	TaxRateBps    int64           `gorm:"not null;default:0"`
	SubtotalCents int64           `gorm:"not null;default:0"`
	TaxCents      int64           `gorm:"not null;default:0"`
	TotalCents    int64           `gorm:"not null;default:0"`
	CreatedAt     time.Time
	UpdatedAt     time.Time
}

func (Estimate) TableName() string { return "estimates" }

// Invoice is the invoices table row. The unique index enforces one invoice
// per source estimate within an account; NULL sources never collide.
type Invoice struct {
	ID               string          `gorm:"primaryKey;size:64"`
	AccountID        string          `gorm:"not null;index;uniqueIndex:idx_invoices_source_estimate,priority:1;size:64"`
	ClientID         string          `gorm:"size:64"`
	SourceEstimateID *string         `gorm:"uniqueIndex:idx_invoices_source_estimate,priority:2;size:64"`
	Status           entities.Status `gorm:"not null;index;size:32"`
	LineItems        LineItems       `gorm:"type:jsonb"`
	SubtotalCents    int64           `gorm:"not null;default:0"`
	TaxCents         int64           `gorm:"not null;default:0"`
	TotalCents       int64           `gorm:"not null;default:0"`
	PaidCents        int64           `gorm:"not null;default:0"`
	DueAt            *time.Time
	CreatedAt        time.Time
	UpdatedAt        time.Time
}

func (Invoice) TableName() string { return "invoices" }

// InvoicePayment is the invoice_payments table row.
type InvoicePayment struct {
	ID                string                 `gorm:"primaryKey;size:64"`
	AccountID         string                 `gorm:"not null;index:idx_payments_invoice,priority:1;size:64"`
	InvoiceID         string                 `gorm:"not null;index:idx_payments_invoice,priority:2;size:64"`
	AmountCents       int64                  `gorm:"not null"`
	Date              time.Time              `gorm:"not null"`
	Status            entities.PaymentStatus `gorm:"not null;size:32"`
	RecordedBy        string                 `gorm:"size:64"`
	ProviderPaymentID string                 `gorm:"index;size:128"`
	ProviderPayload   string                 `gorm:"type:text"`
}

func (InvoicePayment) TableName() string { return "invoice_payments" }

// Models lists every table the store needs, in migration order.
func Models() []interface{} {
	return []interface{}{&Job{}, &Visit{}, &Estimate{}, &Invoice{}, &InvoicePayment{}}
}

func (r Job) toEntity() entities.Job {
	return entities.Job{
		ID:             r.ID,
		AccountID:      r.AccountID,
		ClientID:       r.ClientID,
		Title:          r.Title,
		Status:         r.Status,
		ScheduledStart: utcPtr(r.ScheduledStart),
		CreatedAt:      r.CreatedAt.UTC(),
		UpdatedAt:      r.UpdatedAt.UTC(),
	}
}

func jobRow(j entities.Job) Job {
	return Job{
		ID:             j.ID,
		AccountID:      j.AccountID,
		ClientID:       j.ClientID,
		Title:          j.Title,
		Status:         j.Status,
		ScheduledStart: j.ScheduledStart,
		CreatedAt:      j.CreatedAt,
		UpdatedAt:      j.UpdatedAt,
	}
}

func (r Visit) toEntity() entities.Visit {
	return entities.Visit{
		ID:             r.ID,
		AccountID:      r.AccountID,
		JobID:          r.JobID,
		AssignedUserID: r.AssignedUserID,
		ScheduledStart: r.ScheduledStart.UTC(),
		ScheduledEnd:   r.ScheduledEnd.UTC(),
		Status:         r.Status,
		ArrivedAt:      utcPtr(r.ArrivedAt),
		CompletedAt:    utcPtr(r.CompletedAt),
		TechNotes:      r.TechNotes,
		CreatedAt:      r.CreatedAt.UTC(),
		UpdatedAt:      r.UpdatedAt.UTC(),
	}
}

func visitRow(v entities.Visit) Visit {
	return Visit{
		ID:             v.ID,
		AccountID:      v.AccountID,
		JobID:          v.JobID,
		AssignedUserID: v.AssignedUserID,
		ScheduledStart: v.ScheduledStart,
		ScheduledEnd:   v.ScheduledEnd,
		Status:         v.Status,
		ArrivedAt:      v.ArrivedAt,
		CompletedAt:    v.CompletedAt,
		TechNotes:      v.TechNotes,
		CreatedAt:      v.CreatedAt,
		UpdatedAt:      v.UpdatedAt,
	}
}

func (r Estimate) toEntity() entities.Estimate {
	return entities.Estimate{
		ID:            r.ID,
		AccountID:     r.AccountID,
		ClientID:      r.ClientID,
		Status:        r.Status,
		LineItems:     []entities.LineItem(r.LineItems),
		TaxRateBps:    r.TaxRateBps,
		SubtotalCents: r.SubtotalCents,
		TaxCents:      r.TaxCents,
		TotalCents:    r.TotalCents,
		CreatedAt:     r.CreatedAt.UTC(),
		UpdatedAt:     r.UpdatedAt.UTC(),
	}
}

func estimateRow(e entities.Estimate) Estimate {
	return Estimate{
		ID:            e.ID,
		AccountID:     e.AccountID,
		ClientID:      e.ClientID,
		Status:        e.Status,
		LineItems:     LineItems(e.LineItems),
		TaxRateBps:    e.TaxRateBps,
		SubtotalCents: e.SubtotalCents,
		TaxCents:      e.TaxCents,
		TotalCents:    e.TotalCents,
		CreatedAt:     e.CreatedAt,
		UpdatedAt:     e.UpdatedAt,
	}
}

func (r Invoice) toEntity() entities.Invoice {
	return entities.Invoice{
		ID:               r.ID,
		AccountID:        r.AccountID,
		ClientID:         r.ClientID,
		SourceEstimateID: r.SourceEstimateID,
		Status:           r.Status,
		LineItems:        []entities.LineItem(r.LineItems),
		SubtotalCents:    r.SubtotalCents,
		TaxCents:         r.TaxCents,
		TotalCents:       r.TotalCents,
		PaidCents:        r.PaidCents,
		DueAt:            utcPtr(r.DueAt),
		CreatedAt:        r.CreatedAt.UTC(),
		UpdatedAt:        r.UpdatedAt.UTC(),
	}
}

func invoiceRow(i entities.Invoice) Invoice {
	return Invoice{
		ID:               i.ID,
		AccountID:        i.AccountID,
		ClientID:         i.ClientID,
		SourceEstimateID: i.SourceEstimateID,
		Status:           i.Status,
		LineItems:        LineItems(i.LineItems),
		SubtotalCents:    i.SubtotalCents,
		TaxCents:         i.TaxCents,
		TotalCents:       i.TotalCents,
		PaidCents:        i.PaidCents,
		DueAt:            i.DueAt,
		CreatedAt:        i.CreatedAt,
		UpdatedAt:        i.UpdatedAt,
	}
}

func (r InvoicePayment) toEntity() entities.InvoicePayment {
	p := entities.InvoicePayment{
		ID:                r.ID,
		AccountID:         r.AccountID,
		InvoiceID:         r.InvoiceID,
		AmountCents:       r.AmountCents,
		Date:              r.Date.UTC(),
		Status:            r.Status,
		RecordedBy:        r.RecordedBy,
		ProviderPaymentID: r.ProviderPaymentID,
	}
	if r.ProviderPayload != "" {
		p.ProviderPayloadRaw = json.RawMessage(r.ProviderPayload)
	}
	return p
}

func paymentRow(p entities.InvoicePayment) InvoicePayment {
	return InvoicePayment{
		ID:                p.ID,
		AccountID:         p.AccountID,
		InvoiceID:         p.InvoiceID,
		AmountCents:       p.AmountCents,
		Date:              p.Date,
		Status:            p.Status,
		RecordedBy:        p.RecordedBy,
		ProviderPaymentID: p.ProviderPaymentID,
		ProviderPayload:   string(p.ProviderPayloadRaw),
	}
}

func utcPtr(t *time.Time) *time.Time {
	if t == nil {
		return nil
	}
	u := t.UTC()
	return &u
}
