package interfaces

import (
	"context"

	"fieldservice/internal/domain/entities"
)

// IAutomationSink receives automation events after a committed change.
// Emit is fire-and-forget: it must not block and has no error to report.
type IAutomationSink interface {
	Emit(ctx context.Context, event entities.AutomationEvent)
}
