package workflow

import (
	"errors"
	"fmt"
)

// Reason is the machine-readable cause of a rejected operation.
type Reason string

const (
	ReasonCrossTenant            Reason = "CROSS_TENANT"
	ReasonNotFound               Reason = "NOT_FOUND"
	ReasonForbiddenRole          Reason = "FORBIDDEN_ROLE"
	ReasonNotAssigned            Reason = "NOT_ASSIGNED"
	ReasonIllegalTransition      Reason = "ILLEGAL_TRANSITION"
	ReasonIncompletePayment      Reason = "INCOMPLETE_PAYMENT"
	ReasonEstimateNotApproved    Reason = "ESTIMATE_NOT_APPROVED"
	ReasonConcurrentModification Reason = "CONCURRENT_MODIFICATION"
	ReasonStorageError           Reason = "STORAGE_ERROR"
	ReasonEstimateNotDraft       Reason = "ESTIMATE_NOT_DRAFT"
	ReasonEntityClosed           Reason = "ENTITY_CLOSED"
	ReasonPaymentExceedsBalance  Reason = "PAYMENT_EXCEEDS_BALANCE"
	ReasonInvalidInput           Reason = "INVALID_INPUT"
)

// Rejection is returned whenever the workflow refuses an operation.
// A rejected operation never leaves a partial write behind.
type Rejection struct {
	Reason  Reason
	Message string
	Err     error
}

// Sentinels for errors.Is. Matching compares reasons only.
var (
	ErrCrossTenant            = &Rejection{Reason: ReasonCrossTenant}
	ErrNotFound               = &Rejection{Reason: ReasonNotFound}
	ErrForbiddenRole          = &Rejection{Reason: ReasonForbiddenRole}
	ErrNotAssigned            = &Rejection{Reason: ReasonNotAssigned}
	ErrIllegalTransition      = &Rejection{Reason: ReasonIllegalTransition}
	ErrIncompletePayment      = &Rejection{Reason: ReasonIncompletePayment}
	ErrEstimateNotApproved    = &Rejection{Reason: ReasonEstimateNotApproved}
	ErrConcurrentModification = &Rejection{Reason: ReasonConcurrentModification}
	ErrStorage                = &Rejection{Reason: ReasonStorageError}
	ErrEstimateNotDraft       = &Rejection{Reason: ReasonEstimateNotDraft}
	ErrEntityClosed           = &Rejection{Reason: ReasonEntityClosed}
	ErrPaymentExceedsBalance  = &Rejection{Reason: ReasonPaymentExceedsBalance}
	ErrInvalidInput           = &Rejection{Reason: ReasonInvalidInput}
)

// Reject builds a rejection with a formatted message.
func Reject(reason Reason, format string, args ...any) *Rejection {
	return &Rejection{Reason: reason, Message: fmt.Sprintf(format, args...)}
}

// StorageFailure wraps a persistence error. The cause stays opaque to callers.
func StorageFailure(err error) *Rejection {
	return &Rejection{Reason: ReasonStorageError, Message: "storage failure", Err: err}
}

func (r *Rejection) Error() string {
	msg := string(r.Reason)
	if r.Message != "" {
		msg += ": " + r.Message
	}
	if r.Err != nil {
		msg += ": " + r.Err.Error()
	}
	return msg
}

func (r *Rejection) Unwrap() error {
	return r.Err
}

func (r *Rejection) Is(target error) bool {
	t, ok := target.(*Rejection)
	if !ok {
		return false
	}
	return t.Reason == r.Reason
}

// ReasonOf extracts the rejection reason from err, if any.
func ReasonOf(err error) (Reason, bool) {
	var r *Rejection
	if errors.As(err, &r) {
		return r.Reason, true
	}
	return "", false
}
