package handlers

import (
	"errors"
	"fmt"
	"net/http"
	"testing"

	"fieldservice/internal/domain/workflow"
	"fieldservice/internal/usecase"
)

func TestMapError(t *testing.T) {
	tests := []struct {
		name   string
		err    error
		status int
		code   string
	}{
		{"not found", workflow.Reject(workflow.ReasonNotFound, "job j1 not found"), http.StatusNotFound, "NOT_FOUND"},
		{"cross tenant hides existence", workflow.Reject(workflow.ReasonCrossTenant, "job j1 belongs to acc-2"), http.StatusNotFound, "NOT_FOUND"},
		{"forbidden role", workflow.Reject(workflow.ReasonForbiddenRole, "x"), http.StatusForbidden, "FORBIDDEN_ROLE"},
		{"not assigned", workflow.Reject(workflow.ReasonNotAssigned, "x"), http.StatusForbidden, "NOT_ASSIGNED"},
		{"illegal transition", workflow.Reject(workflow.ReasonIllegalTransition, "x"), http.StatusConflict, "ILLEGAL_TRANSITION"},
		{"concurrent modification", workflow.Reject(workflow.ReasonConcurrentModification, "x"), http.StatusConflict, "CONCURRENT_MODIFICATION"},
		{"estimate not draft", workflow.Reject(workflow.ReasonEstimateNotDraft, "x"), http.StatusConflict, "ESTIMATE_NOT_DRAFT"},
		{"entity closed", workflow.Reject(workflow.ReasonEntityClosed, "x"), http.StatusConflict, "ENTITY_CLOSED"},
		{"incomplete payment", workflow.Reject(workflow.ReasonIncompletePayment, "x"), http.StatusUnprocessableEntity, "INCOMPLETE_PAYMENT"},
		{"estimate not approved", workflow.Reject(workflow.ReasonEstimateNotApproved, "x"), http.StatusUnprocessableEntity, "ESTIMATE_NOT_APPROVED"},
		{"exceeds balance", workflow.Reject(workflow.ReasonPaymentExceedsBalance, "x"), http.StatusUnprocessableEntity, "PAYMENT_EXCEEDS_BALANCE"},
		{"invalid input", workflow.Reject(workflow.ReasonInvalidInput, "x"), http.StatusBadRequest, "INVALID_INPUT"},
		{"storage", workflow.StorageFailure(errors.New("db down")), http.StatusInternalServerError, "STORAGE_ERROR"},
		{"invalid estimate id", usecase.ErrInvalidEstimateID, http.StatusBadRequest, "INVALID_REQUEST"},
		{"gateway unauthorized", fmt.Errorf("%w: 401", usecase.ErrPaymentGatewayUnauthorized), http.StatusUnauthorized, "PAYMENT_PROVIDER_UNAUTHORIZED"},
		{"gateway missing", usecase.ErrPaymentGatewayNotConfigured, http.StatusServiceUnavailable, "PAYMENT_PROVIDER_UNAVAILABLE"},
		{"unknown", errors.New("boom"), http.StatusInternalServerError, "INTERNAL_ERROR"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			appErr := mapError(tt.err)
			if appErr.HTTPStatus != tt.status {
				t.Fatalf("expected %d, got %d", tt.status, appErr.HTTPStatus)
			}
			if appErr.Code != tt.code {
				t.Fatalf("expected code %s, got %s", tt.code, appErr.Code)
			}
		})
	}
}

func TestMapError_StorageDetailsHidden(t *testing.T) {
	body := mapError(workflow.StorageFailure(errors.New("password=secret"))).ToHTTPError()
	if body.Details != "" {
		t.Fatalf("expected no details on 500, got %q", body.Details)
	}
}
