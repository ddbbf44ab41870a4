package entities

import "time"

// Job statuses.
const (
	JobStatusDraft      Status = "draft"
	JobStatusQuoted     Status = "quoted"
	JobStatusScheduled  Status = "scheduled"
	JobStatusInProgress Status = "in_progress"
	JobStatusCompleted  Status = "completed"
	JobStatusInvoiced   Status = "invoiced"
	JobStatusCancelled  Status = "cancelled"
)

// Job is a unit of field work for a client.
type Job struct {
	ID             string     `json:"id"`
	AccountID      string     `json:"account_id"`
	ClientID       *string    `json:"client_id,omitempty"`
	Title          string     `json:"title"`
	Status         Status     `json:"status"`
	ScheduledStart *time.Time `json:"scheduled_start,omitempty"`
	CreatedAt      time.Time  `json:"created_at"`
	UpdatedAt      time.Time  `json:"updated_at"`
}

func (j Job) EntityType() EntityType { return EntityJob }
func (j Job) GetID() string          { return j.ID }
func (j Job) GetAccountID() string   { return j.AccountID }
func (j Job) CurrentStatus() Status  { return j.Status }

// Apply returns a copy of the job with the status fields of p applied.
func (j Job) Apply(p Patch) Job {
	if p.Status != nil {
		j.Status = *p.Status
	}
	if !p.UpdatedAt.IsZero() {
		j.UpdatedAt = p.UpdatedAt
	}
	return j
}
