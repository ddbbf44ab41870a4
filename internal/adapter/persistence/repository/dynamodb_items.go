package repository

import (
	"fieldservice/internal/domain/entities"
)

// Items mirror the entities with every timestamp stored as an RFC3339 string.
// Optional values are omitted instead of being written as empty strings.

type jobItem struct {
	ID             string `dynamodbav:"id"`
	AccountID      string `dynamodbav:"account_id"`
	ClientID       string `dynamodbav:"client_id,omitempty"`
	Title          string `dynamodbav:"title"`
	Status         string `dynamodbav:"status"`
	ScheduledStart string `dynamodbav:"scheduled_start,omitempty"`
	CreatedAt      string `dynamodbav:"created_at"`
	UpdatedAt      string `dynamodbav:"updated_at"`
}

type visitItem struct {
	ID             string `dynamodbav:"id"`
	AccountID      string `dynamodbav:"account_id"`
	JobID          string `dynamodbav:"job_id,omitempty"`
	AssignedUserID string `dynamodbav:"assigned_user_id,omitempty"`
	ScheduledStart string `dynamodbav:"scheduled_start"`
	ScheduledEnd   string `dynamodbav:"scheduled_end"`
	Status         string `dynamodbav:"status"`
	ArrivedAt      string `dynamodbav:"arrived_at,omitempty"`
	CompletedAt    string `dynamodbav:"completed_at,omitempty"`
	TechNotes      string `dynamodbav:"tech_notes,omitempty"`
	CreatedAt      string `dynamodbav:"created_at"`
	UpdatedAt      string `dynamodbav:"updated_at"`
}

type estimateItem struct {
	ID            string              `dynamodbav:"id"`
	AccountID     string              `dynamodbav:"account_id"`
	ClientID      string              `dynamodbav:"client_id,omitempty"`
	Status        string              `dynamodbav:"status"`
	LineItems     []entities.LineItem `dynamodbav:"line_items"`
	TaxRateBps    int64               `dynamodbav:"tax_rate_bps"`
	SubtotalCents int64               `dynamodbav:"subtotal_cents"`
	TaxCents      int64               `dynamodbav:"tax_cents"`
	TotalCents    int64               `dynamodbav:"total_cents"`
	CreatedAt     string              `dynamodbav:"created_at"`
	UpdatedAt     string              `dynamodbav:"updated_at"`
}

type invoiceItem struct {
	ID               string              `dynamodbav:"id"`
	AccountID        string              `dynamodbav:"account_id"`
	ClientID         string              `dynamodbav:"client_id,omitempty"`
	SourceEstimateID string              `dynamodbav:"source_estimate_id,omitempty"`
	Status           string              `dynamodbav:"status"`
	LineItems        []entities.LineItem `dynamodbav:"line_items"`
	SubtotalCents    int64               `dynamodbav:"subtotal_cents"`
	TaxCents         int64               `dynamodbav:"tax_cents"`
	TotalCents       int64               `dynamodbav:"total_cents"`
	PaidCents        int64               `dynamodbav:"paid_cents"`
	DueAt            string              `dynamodbav:"due_at,omitempty"`
	CreatedAt        string              `dynamodbav:"created_at"`
	UpdatedAt        string              `dynamodbav:"updated_at"`
}

// invoiceSourceItem reserves a source estimate for exactly one invoice.
type invoiceSourceItem struct {
	Key       string `dynamodbav:"source_key"`
	InvoiceID string `dynamodbav:"invoice_id"`
}

type invoicePaymentItem struct {
	ID                 string `dynamodbav:"id"`
	AccountID          string `dynamodbav:"account_id"`
	InvoiceID          string `dynamodbav:"invoice_id"`
	AmountCents        int64  `dynamodbav:"amount_cents"`
	Date               string `dynamodbav:"date"`
	Status             string `dynamodbav:"status"`
	RecordedBy         string `dynamodbav:"recorded_by,omitempty"`
	ProviderPaymentID  string `dynamodbav:"provider_payment_id,omitempty"`
	ProviderPayloadRaw string `dynamodbav:"provider_payload_raw,omitempty"`
}

func sourceKey(accountID, estimateID string) string {
	return accountID + "#" + estimateID
}

func toJobItem(j entities.Job) jobItem {
	return jobItem{
		ID:             j.ID,
		AccountID:      j.AccountID,
		ClientID:       derefString(j.ClientID),
		Title:          j.Title,
		Status:         string(j.Status),
		ScheduledStart: formatTimePtr(j.ScheduledStart),
		CreatedAt:      formatTime(j.CreatedAt),
		UpdatedAt:      formatTime(j.UpdatedAt),
	}
}

func fromJobItem(it jobItem) entities.Job {
	return entities.Job{
		ID:             it.ID,
		AccountID:      it.AccountID,
		ClientID:       stringPtr(it.ClientID),
		Title:          it.Title,
		Status:         entities.Status(it.Status),
		ScheduledStart: parseTimePtr(it.ScheduledStart),
		CreatedAt:      parseTime(it.CreatedAt),
		UpdatedAt:      parseTime(it.UpdatedAt),
	}
}

func toVisitItem(v entities.Visit) visitItem {
	return visitItem{
		ID:             v.ID,
		AccountID:      v.AccountID,
		JobID:          derefString(v.JobID),
		AssignedUserID: derefString(v.AssignedUserID),
		ScheduledStart: formatTime(v.ScheduledStart),
		ScheduledEnd:   formatTime(v.ScheduledEnd),
		Status:         string(v.Status),
		ArrivedAt:      formatTimePtr(v.ArrivedAt),
		CompletedAt:    formatTimePtr(v.CompletedAt),
		TechNotes:      v.TechNotes,
		CreatedAt:      formatTime(v.CreatedAt),
		UpdatedAt:      formatTime(v.UpdatedAt),
	}
}

func fromVisitItem(it visitItem) entities.Visit {
	return entities.Visit{
		ID:             it.ID,
		AccountID:      it.AccountID,
		JobID:          stringPtr(it.JobID),
		AssignedUserID: stringPtr(it.AssignedUserID),
		ScheduledStart: parseTime(it.ScheduledStart),
		ScheduledEnd:   parseTime(it.ScheduledEnd),
		Status:         entities.Status(it.Status),
		ArrivedAt:      parseTimePtr(it.ArrivedAt),
		CompletedAt:    parseTimePtr(it.CompletedAt),
		TechNotes:      it.TechNotes,
		CreatedAt:      parseTime(it.CreatedAt),
		UpdatedAt:      parseTime(it.UpdatedAt),
	}
}

func toEstimateItem(e entities.Estimate) estimateItem {
	return estimateItem{
		ID:            e.ID,
		AccountID:     e.AccountID,
		ClientID:      e.ClientID,
		Status:        string(e.Status),
		LineItems:     nonNilItems(e.LineItems),
		TaxRateBps:    e.TaxRateBps,
		SubtotalCents: e.SubtotalCents,
		TaxCents:      e.TaxCents,
		TotalCents:    e.TotalCents,
		CreatedAt:     formatTime(e.CreatedAt),
		UpdatedAt:     formatTime(e.UpdatedAt),
	}
}

func fromEstimateItem(it estimateItem) entities.Estimate {
	return entities.Estimate{
		ID:            it.ID,
		AccountID:     it.AccountID,
		ClientID:      it.ClientID,
		Status:        entities.Status(it.Status),
		LineItems:     it.LineItems,
		TaxRateBps:    it.TaxRateBps,
		SubtotalCents: it.SubtotalCents,
		TaxCents:      it.TaxCents,
		TotalCents:    it.TotalCents,
		CreatedAt:     parseTime(it.CreatedAt),
		UpdatedAt:     parseTime(it.UpdatedAt),
	}
}

func toInvoiceItem(i entities.Invoice) invoiceItem {
	return invoiceItem{
		ID:               i.ID,
		AccountID:        i.AccountID,
		ClientID:         i.ClientID,
		SourceEstimateID: derefString(i.SourceEstimateID),
		Status:           string(i.Status),
		LineItems:        nonNilItems(i.LineItems),
		SubtotalCents:    i.SubtotalCents,
		TaxCents:         i.TaxCents,
		TotalCents:       i.TotalCents,
		PaidCents:        i.PaidCents,
		DueAt:            formatTimePtr(i.DueAt),
		CreatedAt:        formatTime(i.CreatedAt),
		UpdatedAt:        formatTime(i.UpdatedAt),
	}
}

func fromInvoiceItem(it invoiceItem) entities.Invoice {
	return entities.Invoice{
		ID:               it.ID,
		AccountID:        it.AccountID,
		ClientID:         it.ClientID,
		SourceEstimateID: stringPtr(it.SourceEstimateID),
		Status:           entities.Status(it.Status),
		LineItems:        it.LineItems,
		SubtotalCents:    it.SubtotalCents,
		TaxCents:         it.TaxCents,
		TotalCents:       it.TotalCents,
		PaidCents:        it.PaidCents,
		DueAt:            parseTimePtr(it.DueAt),
		CreatedAt:        parseTime(it.CreatedAt),
		UpdatedAt:        parseTime(it.UpdatedAt),
	}
}

func toInvoicePaymentItem(p entities.InvoicePayment) invoicePaymentItem {
	return invoicePaymentItem{
		ID:                 p.ID,
		AccountID:          p.AccountID,
		InvoiceID:          p.InvoiceID,
		AmountCents:        p.AmountCents,
		Date:               formatTime(p.Date),
		Status:             string(p.Status),
		RecordedBy:         p.RecordedBy,
		ProviderPaymentID:  p.ProviderPaymentID,
		ProviderPayloadRaw: string(p.ProviderPayloadRaw),
	}
}

func fromInvoicePaymentItem(it invoicePaymentItem) entities.InvoicePayment {
	p := entities.InvoicePayment{
		ID:                it.ID,
		AccountID:         it.AccountID,
		InvoiceID:         it.InvoiceID,
		AmountCents:       it.AmountCents,
		Date:              parseTime(it.Date),
		Status:            entities.PaymentStatus(it.Status),
		RecordedBy:        it.RecordedBy,
		ProviderPaymentID: it.ProviderPaymentID,
	}
	if it.ProviderPayloadRaw != "" {
		p.ProviderPayloadRaw = []byte(it.ProviderPayloadRaw)
	}
	return p
}

func nonNilItems(items []entities.LineItem) []entities.LineItem {
	if items == nil {
		return []entities.LineItem{}
	}
	return items
}
