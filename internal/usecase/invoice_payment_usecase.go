package usecase

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"strings"
	"time"

	"fieldservice/internal/domain/entities"
	"fieldservice/internal/domain/workflow"
	"fieldservice/internal/logger"
	"fieldservice/internal/usecase/interfaces"

	"github.com/google/uuid"
)

var (
	ErrInvalidProviderPayload         = errors.New("invalid payment provider payload")
	ErrPaymentGatewayNotConfigured    = errors.New("payment gateway not configured")
	ErrPaymentGatewayBadRequest       = errors.New("payment gateway bad request")
	ErrPaymentGatewayUnauthorized     = errors.New("payment gateway unauthorized")
	ErrPaymentGatewayInvalidUsers     = errors.New("payment gateway invalid users involved")
	ErrPaymentGatewayCustomerNotFound = errors.New("payment gateway customer not found")
)

// PaymentResult is the recorded payment and the invoice after it was applied.
// Invoice is zero when the provider did not approve the charge.
type PaymentResult struct {
	Payment entities.InvoicePayment
	Invoice entities.Invoice
}

// IInvoicePaymentUseCase charges invoices through the payment gateway.
//
// An approved charge moves the invoice to partial or paid through the
// workflow, so the payment rules of the status graph still apply.
type IInvoicePaymentUseCase interface {
	RecordPayment(ctx context.Context, actor entities.Actor, invoiceID string, amountCents int64, providerPayload json.RawMessage) (PaymentResult, error)
	ListPayments(ctx context.Context, actor entities.Actor, invoiceID string) ([]entities.InvoicePayment, error)
}

type InvoicePaymentUseCase struct {
	store    interfaces.IWorkflowStore
	repo     interfaces.IInvoicePaymentRepository
	gateway  interfaces.IPaymentGateway
	engine   IWorkflowUseCase
	sink     interfaces.IAutomationSink
	mockMode bool
	now      func() time.Time
	newID    func() string
}

var _ IInvoicePaymentUseCase = (*InvoicePaymentUseCase)(nil)

// NewInvoicePaymentUseCase wires the payment flow. With mockMode set the
// gateway is never called and every charge is approved.
func NewInvoicePaymentUseCase(
	store interfaces.IWorkflowStore,
	repo interfaces.IInvoicePaymentRepository,
	gateway interfaces.IPaymentGateway,
	engine IWorkflowUseCase,
	sink interfaces.IAutomationSink,
	mockMode bool,
) *InvoicePaymentUseCase {
	return &InvoicePaymentUseCase{
		store:    store,
		repo:     repo,
		gateway:  gateway,
		engine:   engine,
		sink:     sink,
		mockMode: mockMode,
		now:      func() time.Time { return time.Now().UTC() },
		newID:    uuid.NewString,
	}
}

func (u *InvoicePaymentUseCase) RecordPayment(ctx context.Context, actor entities.Actor, invoiceID string, amountCents int64, providerPayload json.RawMessage) (PaymentResult, error) {
	invoiceID = strings.TrimSpace(invoiceID)
	logger.Infof("[payment][usecase] record start invoice_id=%s amount_cents=%d payload_len=%d", invoiceID, amountCents, len(providerPayload))
	if err := validateRequest(actor, entities.EntityInvoice, invoiceID); err != nil {
		return PaymentResult{}, err
	}
	if amountCents <= 0 {
		return PaymentResult{}, workflow.Reject(workflow.ReasonInvalidInput, "amount_cents must be positive, got %d", amountCents)
	}
	if err := workflow.RequireCapability(actor, workflow.ActionTransition, entities.EntityInvoice); err != nil {
		return PaymentResult{}, err
	}

	inv, err := u.loadInvoice(ctx, actor, invoiceID)
	if err != nil {
		return PaymentResult{}, err
	}
	if inv.Status != entities.InvoiceStatusSent && inv.Status != entities.InvoiceStatusPartial {
		return PaymentResult{}, workflow.Reject(workflow.ReasonIllegalTransition, "invoice %s is %s and does not accept payments", invoiceID, inv.Status)
	}
	if amountCents > inv.AmountDueCents() {
		return PaymentResult{}, workflow.Reject(workflow.ReasonPaymentExceedsBalance, "amount %d exceeds balance %d", amountCents, inv.AmountDueCents())
	}

	payload, err := u.preparePayload(inv, amountCents, providerPayload)
	if err != nil {
		return PaymentResult{}, err
	}

	providerID, providerStatus, providerResp, err := u.charge(ctx, inv, amountCents, payload)
	if err != nil {
		return PaymentResult{}, err
	}
	logger.Infof("[payment][usecase] gateway responded invoice_id=%s provider_payment_id=%s provider_status=%s", invoiceID, providerID, providerStatus)

	payment := entities.InvoicePayment{
		ID:                 u.newID(),
		AccountID:          inv.AccountID,
		InvoiceID:          inv.ID,
		AmountCents:        amountCents,
		Date:               u.now(),
		Status:             paymentStatusFromProvider(providerStatus),
		RecordedBy:         actor.UserID,
		ProviderPaymentID:  providerID,
		ProviderPayloadRaw: providerResp,
	}
	created, err := u.repo.Create(ctx, payment)
	if err != nil {
		logger.Errorf("[payment][usecase] repository create failed invoice_id=%s payment_id=%s err=%v", invoiceID, payment.ID, err)
		return PaymentResult{}, workflow.StorageFailure(err)
	}

	if created.Status != entities.PaymentStatusApproved {
		logger.Warnf("[payment][usecase] payment not approved invoice_id=%s payment_id=%s status=%s", invoiceID, created.ID, created.Status)
		return PaymentResult{Payment: created}, nil
	}

	updated, err := u.applyToInvoice(ctx, actor, inv, amountCents)
	if err != nil {
		logger.Errorf("[payment][usecase] payment recorded but invoice not updated invoice_id=%s payment_id=%s err=%v", invoiceID, created.ID, err)
		return PaymentResult{Payment: created}, err
	}
	logger.Infof("[payment][usecase] record success invoice_id=%s payment_id=%s invoice_status=%s paid_cents=%d", invoiceID, created.ID, updated.Status, updated.PaidCents)
	return PaymentResult{Payment: created, Invoice: updated}, nil
}

func (u *InvoicePaymentUseCase) ListPayments(ctx context.Context, actor entities.Actor, invoiceID string) ([]entities.InvoicePayment, error) {
	invoiceID = strings.TrimSpace(invoiceID)
	if err := validateRequest(actor, entities.EntityInvoice, invoiceID); err != nil {
		return nil, err
	}
	if !workflow.CanViewAll(actor.Role, entities.EntityInvoice) {
		return nil, workflow.Reject(workflow.ReasonForbiddenRole, "role %q may not view invoices", actor.Role)
	}
	if _, err := u.loadInvoice(ctx, actor, invoiceID); err != nil {
		return nil, err
	}
	payments, err := u.repo.ListByInvoiceID(ctx, actor.AccountID, invoiceID)
	if err != nil {
		logger.Errorf("[payment][usecase] list failed invoice_id=%s err=%v", invoiceID, err)
		return nil, workflow.StorageFailure(err)
	}
	return payments, nil
}

// maxApplyAttempts bounds how often an approved amount is re-applied after
// another payment moved the same invoice first.
const maxApplyAttempts = 5

// applyToInvoice adds an approved amount to the invoice. Every write is
// conditional on the paid amount it was computed from; when a concurrent
// payment lands first the invoice is reloaded and the amount applied again.
func (u *InvoicePaymentUseCase) applyToInvoice(ctx context.Context, actor entities.Actor, inv entities.Invoice, amountCents int64) (entities.Invoice, error) {
	for attempt := 1; ; attempt++ {
		updated, err := u.applyOnce(ctx, actor, inv, amountCents)
		if err == nil || !errors.Is(err, workflow.ErrConcurrentModification) || attempt == maxApplyAttempts {
			return updated, err
		}
		logger.Warnf("[payment][usecase] invoice changed while applying payment invoice_id=%s attempt=%d", inv.ID, attempt)

		inv, err = u.loadInvoice(ctx, actor, inv.ID)
		if err != nil {
			return entities.Invoice{}, err
		}
		if inv.Status != entities.InvoiceStatusSent && inv.Status != entities.InvoiceStatusPartial {
			return entities.Invoice{}, workflow.Reject(workflow.ReasonIllegalTransition, "invoice %s is %s and does not accept payments", inv.ID, inv.Status)
		}
		if amountCents > inv.AmountDueCents() {
			return entities.Invoice{}, workflow.Reject(workflow.ReasonPaymentExceedsBalance, "amount %d exceeds balance %d", amountCents, inv.AmountDueCents())
		}
	}
}

// applyOnce settles the balance or takes the first partial payment through
// the workflow; further partial payments only move paid_cents.
func (u *InvoicePaymentUseCase) applyOnce(ctx context.Context, actor entities.Actor, inv entities.Invoice, amountCents int64) (entities.Invoice, error) {
	expected := inv.PaidCents
	paid := expected + amountCents

	var target entities.Status
	switch {
	case paid == inv.TotalCents:
		target = entities.InvoiceStatusPaid
	case inv.Status == entities.InvoiceStatusSent:
		target = entities.InvoiceStatusPartial
	}

	if target != "" {
		res, err := u.engine.Transition(ctx, actor, entities.EntityInvoice, inv.ID, target, &TransitionPayload{PaidCents: &paid, ExpectedPaidCents: &expected})
		if err != nil {
			return entities.Invoice{}, err
		}
		updated, ok := res.Entity.(entities.Invoice)
		if !ok {
			return entities.Invoice{}, workflow.StorageFailure(errors.New("store returned a non-invoice record"))
		}
		return updated, nil
	}

	now := u.now()
	written, err := writeScoped(ctx, u.store, inv, entities.Patch{PaidCents: &paid, ExpectedPaidCents: &expected, UpdatedAt: now})
	if err != nil {
		return entities.Invoice{}, err
	}
	updated, ok := written.(entities.Invoice)
	if !ok {
		return entities.Invoice{}, workflow.StorageFailure(errors.New("store returned a non-invoice record"))
	}
	emitAll(ctx, u.sink, []entities.AutomationEvent{{
		Type:       entities.EventInvoicePartial,
		AccountID:  updated.AccountID,
		EntityType: entities.EntityInvoice,
		EntityID:   updated.ID,
		ActorID:    actor.UserID,
		From:       inv.Status,
		To:         updated.Status,
		OccurredAt: now,
		Data: map[string]any{
			"client_id":        updated.ClientID,
			"amount_due_cents": updated.AmountDueCents(),
		},
	}})
	return updated, nil
}

func (u *InvoicePaymentUseCase) loadInvoice(ctx context.Context, actor entities.Actor, invoiceID string) (entities.Invoice, error) {
	e, err := loadScoped(ctx, u.store, actor, entities.EntityInvoice, invoiceID)
	if err != nil {
		return entities.Invoice{}, err
	}
	if err := workflow.CheckTenant(actor, e); err != nil {
		return entities.Invoice{}, err
	}
	inv, ok := e.(entities.Invoice)
	if !ok {
		return entities.Invoice{}, workflow.StorageFailure(errors.New("store returned a non-invoice record"))
	}
	return inv, nil
}

// preparePayload validates the caller's provider payload and pins the fields
// the provider must not take from the caller: the amount always comes from
// the request validated against the invoice balance.
func (u *InvoicePaymentUseCase) preparePayload(inv entities.Invoice, amountCents int64, raw json.RawMessage) (json.RawMessage, error) {
	if len(raw) == 0 || !json.Valid(raw) {
		if !u.mockMode {
			logger.Warnf("[payment][usecase] invalid payload invoice_id=%s", inv.ID)
			return nil, &workflow.Rejection{Reason: workflow.ReasonInvalidInput, Err: ErrInvalidProviderPayload}
		}
		raw = json.RawMessage("{}")
	}

	var req map[string]any
	if err := json.Unmarshal(raw, &req); err != nil || req == nil {
		return nil, &workflow.Rejection{Reason: workflow.ReasonInvalidInput, Err: ErrInvalidProviderPayload}
	}
	if !u.mockMode {
		if !hasNonEmptyString(req, "payment_method_id") {
			return nil, &workflow.Rejection{Reason: workflow.ReasonInvalidInput, Message: "payment_method_id is required", Err: ErrInvalidProviderPayload}
		}
		ensurePayerDefaults(req)
		if !hasPayer(req) {
			return nil, &workflow.Rejection{Reason: workflow.ReasonInvalidInput, Message: "payer email or id is required", Err: ErrInvalidProviderPayload}
		}
	}

	if _, ok := req["external_reference"]; !ok {
		req["external_reference"] = inv.ID
	}
	if _, ok := req["description"]; !ok {
		req["description"] = fmt.Sprintf("Invoice %s", inv.ID)
	}
	req["transaction_amount"] = centsToAmount(amountCents)

	b, err := json.Marshal(req)
	if err != nil {
		return nil, &workflow.Rejection{Reason: workflow.ReasonInvalidInput, Err: err}
	}
	return b, nil
}

func (u *InvoicePaymentUseCase) charge(ctx context.Context, inv entities.Invoice, amountCents int64, payload json.RawMessage) (string, string, json.RawMessage, error) {
	if u.mockMode {
		logger.Infof("[payment][usecase] mock mode enabled; skipping external gateway invoice_id=%s", inv.ID)
		return mockCharge(inv, amountCents, payload, u.now())
	}
	if u.gateway == nil {
		logger.Errorf("[payment][usecase] gateway not configured invoice_id=%s", inv.ID)
		return "", "", nil, ErrPaymentGatewayNotConfigured
	}

	id, status, resp, err := u.gateway.CreatePayment(ctx, payload)
	if err != nil {
		logger.Errorf("[payment][usecase] gateway failed invoice_id=%s err=%v", inv.ID, err)
		return "", "", nil, classifyGatewayError(err)
	}
	return id, status, resp, nil
}

func mockCharge(inv entities.Invoice, amountCents int64, payload json.RawMessage, now time.Time) (string, string, json.RawMessage, error) {
	id := uuid.NewString()
	resp := map[string]any{}
	_ = json.Unmarshal(payload, &resp)
	ts := now.Format(time.RFC3339Nano)
	resp["id"] = id
	resp["status"] = "approved"
	resp["status_detail"] = "accredited"
	resp["date_created"] = ts
	resp["date_approved"] = ts
	resp["external_reference"] = inv.ID
	resp["transaction_amount"] = centsToAmount(amountCents)
	b, err := json.Marshal(resp)
	if err != nil {
		return "", "", nil, err
	}
	return id, "approved", b, nil
}

func paymentStatusFromProvider(status string) entities.PaymentStatus {
	switch strings.ToLower(strings.TrimSpace(status)) {
	case "approved", "authorized":
		return entities.PaymentStatusApproved
	case "rejected", "cancelled", "refunded", "charged_back":
		return entities.PaymentStatusDenied
	default:
		return entities.PaymentStatusPending
	}
}

func centsToAmount(cents int64) float64 {
	return float64(cents) / 100
}

func classifyGatewayError(err error) error {
	msg := strings.ToLower(err.Error())
	switch {
	case strings.Contains(msg, "customer not found") || strings.Contains(msg, "\"code\":2002"):
		return fmt.Errorf("%w: %v", ErrPaymentGatewayCustomerNotFound, err)
	case strings.Contains(msg, "invalid users involved") || strings.Contains(msg, "\"code\":2034"):
		return fmt.Errorf("%w: %v", ErrPaymentGatewayInvalidUsers, err)
	case strings.Contains(msg, "\"error\":\"unauthorized\"") || strings.Contains(msg, "\"status\":401"):
		return fmt.Errorf("%w: %v", ErrPaymentGatewayUnauthorized, err)
	case strings.Contains(msg, "\"error\":\"bad_request\"") || strings.Contains(msg, "\"status\":400"):
		return fmt.Errorf("%w: %v", ErrPaymentGatewayBadRequest, err)
	}
	return err
}

func hasNonEmptyString(m map[string]any, key string) bool {
	s, ok := m[key].(string)
	return ok && strings.TrimSpace(s) != ""
}

func hasPayer(m map[string]any) bool {
	payer, ok := m["payer"].(map[string]any)
	if !ok {
		return false
	}
	return hasNonEmptyString(payer, "email") || hasPayerID(payer)
}

func hasPayerID(payer map[string]any) bool {
	v, ok := payer["id"]
	if !ok || v == nil {
		return false
	}
	s := strings.TrimSpace(fmt.Sprintf("%v", v))
	return s != "" && s != "<nil>"
}

// ensurePayerDefaults fills a sandbox payer email when the caller sent
// neither a payer id nor an email.
func ensurePayerDefaults(m map[string]any) {
	if m["payer"] == nil {
		m["payer"] = map[string]any{}
	}
	payer, ok := m["payer"].(map[string]any)
	if !ok {
		return
	}
	if _, ok := payer["type"]; !ok {
		payer["type"] = "customer"
	}
	if hasPayerID(payer) || hasNonEmptyString(payer, "email") {
		return
	}
	if email := strings.TrimSpace(os.Getenv("MERCADOPAGO_TEST_PAYER_EMAIL")); email != "" {
		payer["email"] = email
	} else if strings.HasPrefix(strings.TrimSpace(os.Getenv("MERCADOPAGO_ACCESS_TOKEN")), "TEST-") {
		payer["email"] = "test_user_br@testuser.com"
	}
}
