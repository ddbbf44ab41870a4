package entities

import "time"

// AutomationEventType names a downstream automation trigger.
type AutomationEventType string

const (
	EventJobScheduled      AutomationEventType = "job_scheduled"
	EventJobCompleted      AutomationEventType = "job_completed"
	EventJobCancelled      AutomationEventType = "job_cancelled"
	EventVisitArrived      AutomationEventType = "visit_arrived"
	EventVisitCompleted    AutomationEventType = "visit_completed"
	EventVisitReminderDue  AutomationEventType = "visit_reminder_due"
	EventEstimateSent      AutomationEventType = "estimate_sent"
	EventEstimateApproved  AutomationEventType = "estimate_approved"
	EventEstimateDeclined  AutomationEventType = "estimate_declined"
	EventInvoiceCreated    AutomationEventType = "invoice_created"
	EventInvoiceSent       AutomationEventType = "invoice_sent"
	EventInvoicePaid       AutomationEventType = "invoice_paid"
	EventInvoicePartial    AutomationEventType = "invoice_partially_paid"
	EventInvoiceVoided     AutomationEventType = "invoice_voided"
	EventVisitNotesUpdated AutomationEventType = "visit_notes_updated"
)

// AutomationEvent is handed to the automation sink after a committed change.
type AutomationEvent struct {
	Type       AutomationEventType `json:"type"`
	AccountID  string              `json:"account_id"`
	EntityType EntityType          `json:"entity_type"`
	EntityID   string              `json:"entity_id"`
	ActorID    string              `json:"actor_id"`
	From       Status              `json:"from,omitempty"`
	To         Status              `json:"to,omitempty"`
	OccurredAt time.Time           `json:"occurred_at"`
	Data       map[string]any      `json:"data,omitempty"`
}
