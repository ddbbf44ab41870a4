package handlers

import (
	"net/http"
	"time"

	request "fieldservice/internal/adapter/http/dto/request"
	response "fieldservice/internal/adapter/http/dto/response"
	"fieldservice/internal/logger"
	"fieldservice/internal/usecase"
	"fieldservice/pkg"

	"github.com/gin-gonic/gin"
)

var errInvalidPaymentPayload = pkg.NewDomainErrorSimple("INVALID_PAYMENT_INPUT", "Invalid payment payload", http.StatusBadRequest)

// InvoicePaymentHandler handles HTTP requests for invoice payments.
type InvoicePaymentHandler struct {
	usecase usecase.IInvoicePaymentUseCase
	now     func() time.Time
}

func NewInvoicePaymentHandler(uc usecase.IInvoicePaymentUseCase) *InvoicePaymentHandler {
	return &InvoicePaymentHandler{usecase: uc, now: func() time.Time { return time.Now().UTC() }}
}

// RecordPayment godoc
// @Summary      Charge a payment against an invoice
// @Tags         invoices
// @Accept       json
// @Produce      json
// @Param        id    path  string                         true  "Invoice ID"
// @Param        body  body  request.InvoicePaymentRequest  true  "Amount and provider payload"
// @Success      201  {object}  response.PaymentResultResponse
// @Failure      400,401,403,404,409,422,500,503  {object}  pkg.HTTPError
// @Router       /invoices/{id}/payments [post]
func (h *InvoicePaymentHandler) RecordPayment(c *gin.Context) {
	actor, ok := actorFrom(c)
	if !ok {
		return
	}
	invoiceID := c.Param("id")
	var payload request.InvoicePaymentRequest
	if err := c.ShouldBindJSON(&payload); err != nil {
		logger.Infof("[payment][handler] invalid payload invoice_id=%s err=%v", invoiceID, err)
		c.JSON(errInvalidPaymentPayload.HTTPStatus, errInvalidPaymentPayload.ToHTTPError())
		return
	}

	result, err := h.usecase.RecordPayment(c.Request.Context(), actor, invoiceID, payload.AmountCents, payload.MPPayload)
	if err != nil {
		logger.Infof("[payment][handler] record failed invoice_id=%s err=%v", invoiceID, err)
		writeError(c, err)
		return
	}
	logger.Infof("[payment][handler] record success invoice_id=%s payment_id=%s status=%s", invoiceID, result.Payment.ID, result.Payment.Status)

	c.JSON(http.StatusCreated, response.FromPaymentResult(result.Payment, result.Invoice, h.now()))
}

// ListPayments godoc
// @Summary      List the payments of an invoice
// @Tags         invoices
// @Produce      json
// @Param        id  path  string  true  "Invoice ID"
// @Success      200  {array}   response.InvoicePaymentResponse
// @Failure      403,404  {object}  pkg.HTTPError
// @Router       /invoices/{id}/payments [get]
func (h *InvoicePaymentHandler) ListPayments(c *gin.Context) {
	actor, ok := actorFrom(c)
	if !ok {
		return
	}
	payments, err := h.usecase.ListPayments(c.Request.Context(), actor, c.Param("id"))
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, response.FromInvoicePayments(payments))
}
