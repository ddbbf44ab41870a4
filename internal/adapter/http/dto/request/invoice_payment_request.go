package request

import "encoding/json"

// InvoicePaymentRequest records a charge against an invoice.
//
// `mp_payload` is forwarded as-is (raw JSON) to support varying Mercado Pago schemas.
type InvoicePaymentRequest struct {
	AmountCents int64           `json:"amount_cents" binding:"required"`
	MPPayload   json.RawMessage `json:"mp_payload"`
}
