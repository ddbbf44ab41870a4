package automation

import (
	"context"

	"fieldservice/internal/domain/entities"
	"fieldservice/internal/logger"
)

// LogHandler writes every event as a structured log line. It is the default
// subscriber until real integrations (email, SMS) are registered.
func LogHandler(_ context.Context, e entities.AutomationEvent) error {
	fields := map[string]interface{}{
		"type":        string(e.Type),
		"account_id":  e.AccountID,
		"entity_type": string(e.EntityType),
		"entity_id":   e.EntityID,
		"actor_id":    e.ActorID,
		"occurred_at": e.OccurredAt,
	}
	if e.From != "" {
		fields["from"] = string(e.From)
	}
	if e.To != "" {
		fields["to"] = string(e.To)
	}
	for k, v := range e.Data {
		fields["data."+k] = v
	}
	logger.InfoWithFields("automation event", fields)
	return nil
}

// RegisterDefaults subscribes the handlers every deployment runs.
func RegisterDefaults(b *Bus) {
	b.SubscribeAll(LogHandler)
}
