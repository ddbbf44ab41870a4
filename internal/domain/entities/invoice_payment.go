package entities

import (
	"encoding/json"
	"time"
)

// PaymentStatus represents the payment processing outcome.
type PaymentStatus string

const (
	PaymentStatusPending  PaymentStatus = "pending"
	PaymentStatusApproved PaymentStatus = "approved"
	PaymentStatusDenied   PaymentStatus = "denied"
)

// InvoicePayment records one charge applied to an invoice.
//
// ProviderPayloadRaw keeps the payment provider response body for audit.
type InvoicePayment struct {
	ID                 string          `json:"id"`
	AccountID          string          `json:"account_id"`
	InvoiceID          string          `json:"invoice_id"`
	AmountCents        int64           `json:"amount_cents"`
	Date               time.Time       `json:"date"`
	Status             PaymentStatus   `json:"status"`
	RecordedBy         string          `json:"recorded_by"`
	ProviderPaymentID  string          `json:"provider_payment_id"`
	ProviderPayloadRaw json.RawMessage `json:"provider_payload_raw,omitempty"`
}
