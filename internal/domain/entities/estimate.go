package entities

import (
	"errors"
	"strings"
	"time"
)

// Estimate statuses. Only draft estimates are editable.
const (
	EstimateStatusDraft    Status = "draft"
	EstimateStatusSent     Status = "sent"
	EstimateStatusApproved Status = "approved"
	EstimateStatusDeclined Status = "declined"
	EstimateStatusExpired  Status = "expired"
)

const basisPoints = 10000

var (
	ErrLineItemDescription = errors.New("line item description is required")
	ErrLineItemQuantity    = errors.New("line item quantity must be positive")
	ErrLineItemUnitPrice   = errors.New("line item unit price cannot be negative")
	ErrTaxRate             = errors.New("tax rate must be between 0 and 10000 basis points")
)

// LineItem is a priced row of an estimate or invoice. Money is in cents.
type LineItem struct {
	Description    string `json:"description" dynamodbav:"description"`
	Quantity       int64  `json:"quantity" dynamodbav:"quantity"`
	UnitPriceCents int64  `json:"unit_price_cents" dynamodbav:"unit_price_cents"`
}

func (l LineItem) TotalCents() int64 {
	return l.Quantity * l.UnitPriceCents
}

func (l LineItem) Validate() error {
	if strings.TrimSpace(l.Description) == "" {
		return ErrLineItemDescription
	}
	if l.Quantity <= 0 {
		return ErrLineItemQuantity
	}
	if l.UnitPriceCents < 0 {
		return ErrLineItemUnitPrice
	}
	return nil
}

// ComputeTotals derives subtotal, tax and total. Tax is rounded half-up.
func ComputeTotals(items []LineItem, taxRateBps int64) (subtotal, tax, total int64) {
	for _, it := range items {
		subtotal += it.TotalCents()
	}
	tax = (subtotal*taxRateBps + basisPoints/2) / basisPoints
	return subtotal, tax, subtotal + tax
}

// Estimate is a priced proposal sent to a client.
//
// Monetary representation:
//   - all amounts are integer cents
//   - TotalCents always equals SubtotalCents + TaxCents
type Estimate struct {
	ID            string     `json:"id"`
	AccountID     string     `json:"account_id"`
	ClientID      string     `json:"client_id"`
	Status        Status     `json:"status"`
	LineItems     []LineItem `json:"line_items"`
	TaxRateBps    int64      `json:"tax_rate_bps"`
	SubtotalCents int64      `json:"subtotal_cents"`
	TaxCents      int64      `json:"tax_cents"`
	TotalCents    int64      `json:"total_cents"`
	CreatedAt     time.Time  `json:"created_at"`
	UpdatedAt     time.Time  `json:"updated_at"`
}

func (e Estimate) EntityType() EntityType { return EntityEstimate }
func (e Estimate) GetID() string          { return e.ID }
func (e Estimate) GetAccountID() string   { return e.AccountID }
func (e Estimate) CurrentStatus() Status  { return e.Status }

// Recalculate refreshes the derived totals from the line items.
func (e *Estimate) Recalculate() {
	e.SubtotalCents, e.TaxCents, e.TotalCents = ComputeTotals(e.LineItems, e.TaxRateBps)
}

func (e Estimate) Apply(p Patch) Estimate {
	if p.Status != nil {
		e.Status = *p.Status
	}
	if p.LineItems != nil {
		e.LineItems = append([]LineItem(nil), p.LineItems...)
	}
	if p.TaxRateBps != nil {
		e.TaxRateBps = *p.TaxRateBps
	}
	if p.SubtotalCents != nil {
		e.SubtotalCents = *p.SubtotalCents
	}
	if p.TaxCents != nil {
		e.TaxCents = *p.TaxCents
	}
	if p.TotalCents != nil {
		e.TotalCents = *p.TotalCents
	}
	if !p.UpdatedAt.IsZero() {
		e.UpdatedAt = p.UpdatedAt
	}
	return e
}

// ValidateTaxRate checks a tax rate expressed in basis points.
func ValidateTaxRate(bps int64) error {
	if bps < 0 || bps > basisPoints {
		return ErrTaxRate
	}
	return nil
}
