package response

import (
	"encoding/json"
	"time"

	"fieldservice/internal/domain/entities"
)

type InvoicePaymentResponse struct {
	PaymentID         string    `json:"payment_id"`
	InvoiceID         string    `json:"invoice_id"`
	AmountCents       int64     `json:"amount_cents"`
	Date              time.Time `json:"date"`
	Status            string    `json:"status"`
	RecordedBy        string    `json:"recorded_by"`
	ProviderPaymentID string    `json:"provider_payment_id,omitempty"`

	MPPayloadRaw string                 `json:"mp_payload_raw,omitempty"`
	MPPayload    map[string]interface{} `json:"mp_payload,omitempty"`
}

// PaymentResultResponse is returned after recording a payment. Invoice is
// omitted when the charge was not approved and the invoice did not change.
type PaymentResultResponse struct {
	Payment InvoicePaymentResponse `json:"payment"`
	Invoice *InvoiceResponse       `json:"invoice,omitempty"`
}

func FromInvoicePayment(p entities.InvoicePayment) InvoicePaymentResponse {
	out := InvoicePaymentResponse{
		PaymentID:         p.ID,
		InvoiceID:         p.InvoiceID,
		AmountCents:       p.AmountCents,
		Date:              p.Date,
		Status:            string(p.Status),
		RecordedBy:        p.RecordedBy,
		ProviderPaymentID: p.ProviderPaymentID,
	}
	if len(p.ProviderPayloadRaw) > 0 {
		out.MPPayloadRaw = string(p.ProviderPayloadRaw)
		var decoded map[string]interface{}
		if err := json.Unmarshal(p.ProviderPayloadRaw, &decoded); err == nil {
			out.MPPayload = decoded
		}
	}
	return out
}

func FromInvoicePayments(ps []entities.InvoicePayment) []InvoicePaymentResponse {
	out := make([]InvoicePaymentResponse, 0, len(ps))
	for _, p := range ps {
		out = append(out, FromInvoicePayment(p))
	}
	return out
}

func FromPaymentResult(payment entities.InvoicePayment, invoice entities.Invoice, now time.Time) PaymentResultResponse {
	out := PaymentResultResponse{Payment: FromInvoicePayment(payment)}
	if invoice.ID != "" {
		inv := FromInvoice(invoice, now)
		out.Invoice = &inv
	}
	return out
}
