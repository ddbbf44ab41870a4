package response

import (
	"time"

	"fieldservice/internal/domain/entities"
)

type JobResponse struct {
	ID             string     `json:"id"`
	Type           string     `json:"type"`
	AccountID      string     `json:"account_id"`
	ClientID       *string    `json:"client_id,omitempty"`
	Title          string     `json:"title"`
	Status         string     `json:"status"`
	ScheduledStart *time.Time `json:"scheduled_start,omitempty"`
	CreatedAt      time.Time  `json:"created_at"`
	UpdatedAt      time.Time  `json:"updated_at"`
}

type VisitResponse struct {
	ID             string     `json:"id"`
	Type           string     `json:"type"`
	AccountID      string     `json:"account_id"`
	JobID          *string    `json:"job_id,omitempty"`
	AssignedUserID *string    `json:"assigned_user_id,omitempty"`
	ScheduledStart time.Time  `json:"scheduled_start"`
	ScheduledEnd   time.Time  `json:"scheduled_end"`
	Status         string     `json:"status"`
	ArrivedAt      *time.Time `json:"arrived_at,omitempty"`
	CompletedAt    *time.Time `json:"completed_at,omitempty"`
	TechNotes      string     `json:"tech_notes"`
	CreatedAt      time.Time  `json:"created_at"`
	UpdatedAt      time.Time  `json:"updated_at"`
}

type LineItemResponse struct {
	Description    string `json:"description"`
	Quantity       int64  `json:"quantity"`
	UnitPriceCents int64  `json:"unit_price_cents"`
	TotalCents     int64  `json:"total_cents"`
}

type EstimateResponse struct {
	ID            string             `json:"id"`
	Type          string             `json:"type"`
	AccountID     string             `json:"account_id"`
	ClientID      string             `json:"client_id"`
	Status        string             `json:"status"`
	LineItems     []LineItemResponse `json:"line_items"`
	TaxRateBps    int64              `json:"tax_rate_bps"`
	SubtotalCents int64              `json:"subtotal_cents"`
	TaxCents      int64              `json:"tax_cents"`
	TotalCents    int64              `json:"total_cents"`
	CreatedAt     time.Time          `json:"created_at"`
	UpdatedAt     time.Time          `json:"updated_at"`
}

// InvoiceResponse carries both the stored status and the display status,
// which reads "overdue" for unpaid invoices past their due date.
type InvoiceResponse struct {
	ID               string             `json:"id"`
	Type             string             `json:"type"`
	AccountID        string             `json:"account_id"`
	ClientID         string             `json:"client_id"`
	SourceEstimateID *string            `json:"source_estimate_id,omitempty"`
	Status           string             `json:"status"`
	DisplayStatus    string             `json:"display_status"`
	LineItems        []LineItemResponse `json:"line_items"`
	SubtotalCents    int64              `json:"subtotal_cents"`
	TaxCents         int64              `json:"tax_cents"`
	TotalCents       int64              `json:"total_cents"`
	PaidCents        int64              `json:"paid_cents"`
	AmountDueCents   int64              `json:"amount_due_cents"`
	DueAt            *time.Time         `json:"due_at,omitempty"`
	CreatedAt        time.Time          `json:"created_at"`
	UpdatedAt        time.Time          `json:"updated_at"`
}

func FromJob(j entities.Job) JobResponse {
	return JobResponse{
		ID:             j.ID,
		Type:           string(entities.EntityJob),
		AccountID:      j.AccountID,
		ClientID:       j.ClientID,
		Title:          j.Title,
		Status:         string(j.Status),
		ScheduledStart: j.ScheduledStart,
		CreatedAt:      j.CreatedAt,
		UpdatedAt:      j.UpdatedAt,
	}
}

func FromVisit(v entities.Visit) VisitResponse {
	return VisitResponse{
		ID:             v.ID,
		Type:           string(entities.EntityVisit),
		AccountID:      v.AccountID,
		JobID:          v.JobID,
		AssignedUserID: v.AssignedUserID,
		ScheduledStart: v.ScheduledStart,
		ScheduledEnd:   v.ScheduledEnd,
		Status:         string(v.Status),
		ArrivedAt:      v.ArrivedAt,
		CompletedAt:    v.CompletedAt,
		TechNotes:      v.TechNotes,
		CreatedAt:      v.CreatedAt,
		UpdatedAt:      v.UpdatedAt,
	}
}

func FromEstimate(e entities.Estimate) EstimateResponse {
	return EstimateResponse{
		ID:            e.ID,
		Type:          string(entities.EntityEstimate),
		AccountID:     e.AccountID,
		ClientID:      e.ClientID,
		Status:        string(e.Status),
		LineItems:     fromLineItems(e.LineItems),
		TaxRateBps:    e.TaxRateBps,
		SubtotalCents: e.SubtotalCents,
		TaxCents:      e.TaxCents,
		TotalCents:    e.TotalCents,
		CreatedAt:     e.CreatedAt,
		UpdatedAt:     e.UpdatedAt,
	}
}

func FromInvoice(i entities.Invoice, now time.Time) InvoiceResponse {
	return InvoiceResponse{
		ID:               i.ID,
		Type:             string(entities.EntityInvoice),
		AccountID:        i.AccountID,
		ClientID:         i.ClientID,
		SourceEstimateID: i.SourceEstimateID,
		Status:           string(i.Status),
		DisplayStatus:    string(i.DisplayStatus(now)),
		LineItems:        fromLineItems(i.LineItems),
		SubtotalCents:    i.SubtotalCents,
		TaxCents:         i.TaxCents,
		TotalCents:       i.TotalCents,
		PaidCents:        i.PaidCents,
		AmountDueCents:   i.AmountDueCents(),
		DueAt:            i.DueAt,
		CreatedAt:        i.CreatedAt,
		UpdatedAt:        i.UpdatedAt,
	}
}

// FromEntity renders any workflow entity with its type-specific shape.
func FromEntity(e entities.Entity, now time.Time) any {
	switch v := e.(type) {
	case entities.Job:
		return FromJob(v)
	case entities.Visit:
		return FromVisit(v)
	case entities.Estimate:
		return FromEstimate(v)
	case entities.Invoice:
		return FromInvoice(v, now)
	}
	return nil
}

func fromLineItems(items []entities.LineItem) []LineItemResponse {
	out := make([]LineItemResponse, 0, len(items))
	for _, it := range items {
		out = append(out, LineItemResponse{
			Description:    it.Description,
			Quantity:       it.Quantity,
			UnitPriceCents: it.UnitPriceCents,
			TotalCents:     it.TotalCents(),
		})
	}
	return out
}
