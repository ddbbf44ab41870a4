package handlers

import (
	"errors"
	"net/http"

	"fieldservice/internal/domain/workflow"
	"fieldservice/internal/usecase"
	"fieldservice/pkg"

	"github.com/gin-gonic/gin"
)

var errInvalidRequest = pkg.NewDomainErrorSimple("INVALID_REQUEST", "Invalid request", http.StatusBadRequest)

var rejectionStatus = map[workflow.Reason]int{
	workflow.ReasonCrossTenant:            http.StatusNotFound,
	workflow.ReasonNotFound:               http.StatusNotFound,
	workflow.ReasonForbiddenRole:          http.StatusForbidden,
	workflow.ReasonNotAssigned:            http.StatusForbidden,
	workflow.ReasonIllegalTransition:      http.StatusConflict,
	workflow.ReasonConcurrentModification: http.StatusConflict,
	workflow.ReasonEstimateNotDraft:       http.StatusConflict,
	workflow.ReasonEntityClosed:           http.StatusConflict,
	workflow.ReasonIncompletePayment:      http.StatusUnprocessableEntity,
	workflow.ReasonEstimateNotApproved:    http.StatusUnprocessableEntity,
	workflow.ReasonPaymentExceedsBalance:  http.StatusUnprocessableEntity,
	workflow.ReasonInvalidInput:           http.StatusBadRequest,
	workflow.ReasonStorageError:           http.StatusInternalServerError,
}

func mapError(err error) *pkg.AppError {
	var rej *workflow.Rejection
	if errors.As(err, &rej) {
		status, ok := rejectionStatus[rej.Reason]
		if !ok {
			status = http.StatusInternalServerError
		}
		switch rej.Reason {
		case workflow.ReasonStorageError:
			return pkg.NewDomainError("STORAGE_ERROR", "An internal error occurred", err, status)
		case workflow.ReasonCrossTenant:
			// Never confirm that a record exists in another account.
			return pkg.NewDomainErrorSimple(string(workflow.ReasonNotFound), "Entity not found", status)
		}
		msg := rej.Message
		if msg == "" {
			msg = string(rej.Reason)
		}
		return pkg.NewDomainError(string(rej.Reason), msg, rej.Err, status)
	}

	switch {
	case errors.Is(err, usecase.ErrInvalidEstimateID), errors.Is(err, usecase.ErrInvalidProviderPayload), errors.Is(err, usecase.ErrPaymentGatewayBadRequest):
		return pkg.NewDomainError("INVALID_REQUEST", "Invalid request", err, http.StatusBadRequest)
	case errors.Is(err, usecase.ErrPaymentGatewayCustomerNotFound):
		return pkg.NewDomainErrorSimple("PAYMENT_PROVIDER_CUSTOMER_NOT_FOUND", "Payer not found for this Mercado Pago test context", http.StatusBadRequest)
	case errors.Is(err, usecase.ErrPaymentGatewayInvalidUsers):
		return pkg.NewDomainErrorSimple("PAYMENT_PROVIDER_INVALID_USERS", "Invalid users involved between seller token and payer test user", http.StatusBadRequest)
	case errors.Is(err, usecase.ErrPaymentGatewayUnauthorized):
		return pkg.NewDomainErrorSimple("PAYMENT_PROVIDER_UNAUTHORIZED", "Payment provider unauthorized", http.StatusUnauthorized)
	case errors.Is(err, usecase.ErrPaymentGatewayNotConfigured):
		return pkg.NewDomainErrorSimple("PAYMENT_PROVIDER_UNAVAILABLE", "Payment provider not configured", http.StatusServiceUnavailable)
	default:
		return pkg.NewDomainError("INTERNAL_ERROR", "An internal error occurred", err, http.StatusInternalServerError)
	}
}

func writeError(c *gin.Context, err error) {
	appErr := mapError(err)
	c.JSON(appErr.HTTPStatus, appErr.ToHTTPError())
}
