package handlers

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"testing"
	"time"

	"fieldservice/internal/adapter/http/handlers/mocks"
	"fieldservice/internal/domain/entities"
	"fieldservice/internal/domain/workflow"
	"fieldservice/internal/usecase"

	"go.uber.org/mock/gomock"
)

func newPaymentRouter(h *InvoicePaymentHandler) http.Handler {
	r := newTestRouter()
	r.POST("/v1/invoices/:id/payments", h.RecordPayment)
	r.GET("/v1/invoices/:id/payments", h.ListPayments)
	return r
}

func TestInvoicePaymentHandler_RecordPayment(t *testing.T) {
	t.Run("missing amount", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		h := NewInvoicePaymentHandler(mocks.NewMockIInvoicePaymentUseCase(ctrl))

		w := doRequest(t, newPaymentRouter(h), http.MethodPost, "/v1/invoices/inv-1/payments", `{"mp_payload":{}}`, ownerActor)
		if w.Code != http.StatusBadRequest {
			t.Fatalf("expected 400, got %d", w.Code)
		}
	})

	t.Run("exceeds balance", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		uc := mocks.NewMockIInvoicePaymentUseCase(ctrl)
		h := NewInvoicePaymentHandler(uc)

		uc.EXPECT().RecordPayment(gomock.Any(), ownerActor, "inv-1", int64(20000), gomock.Any()).
			Return(usecase.PaymentResult{}, workflow.Reject(workflow.ReasonPaymentExceedsBalance, "amount 20000 exceeds balance 10000"))

		w := doRequest(t, newPaymentRouter(h), http.MethodPost, "/v1/invoices/inv-1/payments", `{"amount_cents":20000}`, ownerActor)
		if w.Code != http.StatusUnprocessableEntity {
			t.Fatalf("expected 422, got %d", w.Code)
		}
	})

	t.Run("provider rejects credentials", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		uc := mocks.NewMockIInvoicePaymentUseCase(ctrl)
		h := NewInvoicePaymentHandler(uc)

		uc.EXPECT().RecordPayment(gomock.Any(), ownerActor, "inv-1", int64(500), gomock.Any()).
			Return(usecase.PaymentResult{}, fmt.Errorf("%w: %v", usecase.ErrPaymentGatewayUnauthorized, errors.New(`{"status":401}`)))

		w := doRequest(t, newPaymentRouter(h), http.MethodPost, "/v1/invoices/inv-1/payments", `{"amount_cents":500,"mp_payload":{"payment_method_id":"pix"}}`, ownerActor)
		if w.Code != http.StatusUnauthorized {
			t.Fatalf("expected 401, got %d", w.Code)
		}
	})

	t.Run("success forwards provider payload", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		uc := mocks.NewMockIInvoicePaymentUseCase(ctrl)
		h := NewInvoicePaymentHandler(uc)

		now := time.Now().UTC()
		uc.EXPECT().RecordPayment(gomock.Any(), ownerActor, "inv-1", int64(2500), gomock.Any()).
			DoAndReturn(func(_ any, _ entities.Actor, _ string, _ int64, payload json.RawMessage) (usecase.PaymentResult, error) {
				var m map[string]any
				if err := json.Unmarshal(payload, &m); err != nil || m["payment_method_id"] != "pix" {
					t.Fatalf("unexpected payload %s", payload)
				}
				return usecase.PaymentResult{
					Payment: entities.InvoicePayment{ID: "pay-1", InvoiceID: "inv-1", AmountCents: 2500, Status: entities.PaymentStatusApproved, Date: now},
					Invoice: entities.Invoice{ID: "inv-1", Status: entities.InvoiceStatusPartial, TotalCents: 10000, PaidCents: 2500},
				}, nil
			})

		w := doRequest(t, newPaymentRouter(h), http.MethodPost, "/v1/invoices/inv-1/payments", `{"amount_cents":2500,"mp_payload":{"payment_method_id":"pix"}}`, ownerActor)
		if w.Code != http.StatusCreated {
			t.Fatalf("expected 201, got %d body=%s", w.Code, w.Body.String())
		}
		var body struct {
			Payment map[string]any `json:"payment"`
			Invoice map[string]any `json:"invoice"`
		}
		if err := json.Unmarshal(w.Body.Bytes(), &body); err != nil {
			t.Fatalf("unexpected body: %v", err)
		}
		if body.Payment["payment_id"] != "pay-1" || body.Invoice["status"] != "partial" || body.Invoice["amount_due_cents"] != float64(7500) {
			t.Fatalf("unexpected body %+v", body)
		}
	})
}

func TestInvoicePaymentHandler_ListPayments(t *testing.T) {
	ctrl := gomock.NewController(t)
	uc := mocks.NewMockIInvoicePaymentUseCase(ctrl)
	h := NewInvoicePaymentHandler(uc)

	uc.EXPECT().ListPayments(gomock.Any(), ownerActor, "inv-1").Return([]entities.InvoicePayment{
		{ID: "pay-1", InvoiceID: "inv-1", AmountCents: 100},
		{ID: "pay-2", InvoiceID: "inv-1", AmountCents: 200},
	}, nil)

	w := doRequest(t, newPaymentRouter(h), http.MethodGet, "/v1/invoices/inv-1/payments", "", ownerActor)
	if w.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", w.Code)
	}
	var body []map[string]any
	if err := json.Unmarshal(w.Body.Bytes(), &body); err != nil {
		t.Fatalf("unexpected body: %v", err)
	}
	if len(body) != 2 {
		t.Fatalf("expected 2 payments, got %d", len(body))
	}
}
