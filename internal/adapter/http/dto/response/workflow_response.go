package response

import (
	"time"

	"fieldservice/internal/domain/entities"
	"fieldservice/internal/domain/workflow"
)

type EventResponse struct {
	Type       string         `json:"type"`
	EntityType string         `json:"entity_type"`
	EntityID   string         `json:"entity_id"`
	From       string         `json:"from,omitempty"`
	To         string         `json:"to,omitempty"`
	OccurredAt time.Time      `json:"occurred_at"`
	Data       map[string]any `json:"data,omitempty"`
}

type TransitionResponse struct {
	Entity any             `json:"entity"`
	Events []EventResponse `json:"events"`
}

type AllowedTransitionsResponse struct {
	Entity  string   `json:"entity"`
	From    string   `json:"from"`
	Targets []string `json:"targets"`
}

type CapabilitiesResponse struct {
	Role         string              `json:"role"`
	Capabilities map[string][]string `json:"capabilities"`
}

func FromEvents(events []entities.AutomationEvent) []EventResponse {
	out := make([]EventResponse, 0, len(events))
	for _, e := range events {
		out = append(out, EventResponse{
			Type:       string(e.Type),
			EntityType: string(e.EntityType),
			EntityID:   e.EntityID,
			From:       string(e.From),
			To:         string(e.To),
			OccurredAt: e.OccurredAt,
			Data:       e.Data,
		})
	}
	return out
}

func FromTransition(entity entities.Entity, events []entities.AutomationEvent, now time.Time) TransitionResponse {
	return TransitionResponse{Entity: FromEntity(entity, now), Events: FromEvents(events)}
}

func FromAllowedTransitions(entityType entities.EntityType, from entities.Status, targets []entities.Status) AllowedTransitionsResponse {
	out := AllowedTransitionsResponse{Entity: string(entityType), From: string(from), Targets: make([]string, 0, len(targets))}
	for _, t := range targets {
		out.Targets = append(out.Targets, string(t))
	}
	return out
}

func FromCapabilities(role entities.Role, caps map[entities.EntityType][]workflow.Action) CapabilitiesResponse {
	out := CapabilitiesResponse{Role: string(role), Capabilities: make(map[string][]string, len(caps))}
	for et, actions := range caps {
		names := make([]string, 0, len(actions))
		for _, a := range actions {
			names = append(names, string(a))
		}
		out.Capabilities[string(et)] = names
	}
	return out
}
