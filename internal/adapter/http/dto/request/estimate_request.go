package request

import (
	"strings"

	"fieldservice/internal/domain/entities"
)

type LineItemRequest struct {
	Description    string `json:"description" binding:"required"`
	Quantity       int64  `json:"quantity" binding:"required"`
	UnitPriceCents int64  `json:"unit_price_cents"`
}

// LineItemsRequest replaces every line item of a draft estimate.
// Amounts are integer cents and the tax rate is in basis points (825 = 8.25%).
type LineItemsRequest struct {
	LineItems  []LineItemRequest `json:"line_items" binding:"required"`
	TaxRateBps int64             `json:"tax_rate_bps"`
}

func (r LineItemsRequest) ToLineItems() []entities.LineItem {
	items := make([]entities.LineItem, 0, len(r.LineItems))
	for _, it := range r.LineItems {
		items = append(items, entities.LineItem{
			Description:    strings.TrimSpace(it.Description),
			Quantity:       it.Quantity,
			UnitPriceCents: it.UnitPriceCents,
		})
	}
	return items
}
