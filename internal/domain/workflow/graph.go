// Package workflow holds the status graphs, the role capability table and
// the transition authorizer. Everything here is pure and table driven.
package workflow

import "fieldservice/internal/domain/entities"

type statusGraph struct {
	initial entities.Status
	// nodes keeps display order; edges values keep target order.
	nodes []entities.Status
	edges map[entities.Status][]entities.Status
}

var graphs = map[entities.EntityType]statusGraph{
	entities.EntityJob: {
		initial: entities.JobStatusDraft,
		nodes: []entities.Status{
			entities.JobStatusDraft,
			entities.JobStatusQuoted,
			entities.JobStatusScheduled,
			entities.JobStatusInProgress,
			entities.JobStatusCompleted,
			entities.JobStatusInvoiced,
			entities.JobStatusCancelled,
		},
		edges: map[entities.Status][]entities.Status{
			entities.JobStatusDraft:      {entities.JobStatusQuoted, entities.JobStatusCancelled},
			entities.JobStatusQuoted:     {entities.JobStatusScheduled, entities.JobStatusCancelled},
			entities.JobStatusScheduled:  {entities.JobStatusInProgress, entities.JobStatusCancelled},
			entities.JobStatusInProgress: {entities.JobStatusCompleted, entities.JobStatusCancelled},
			entities.JobStatusCompleted:  {entities.JobStatusInvoiced},
		},
	},
	entities.EntityVisit: {
		initial: entities.VisitStatusScheduled,
		nodes: []entities.Status{
			entities.VisitStatusScheduled,
			entities.VisitStatusArrived,
			entities.VisitStatusInProgress,
			entities.VisitStatusCompleted,
			entities.VisitStatusCancelled,
		},
		edges: map[entities.Status][]entities.Status{
			entities.VisitStatusScheduled:  {entities.VisitStatusArrived, entities.VisitStatusCancelled},
			entities.VisitStatusArrived:    {entities.VisitStatusInProgress, entities.VisitStatusCancelled},
			entities.VisitStatusInProgress: {entities.VisitStatusCompleted, entities.VisitStatusCancelled},
		},
	},
	entities.EntityEstimate: {
		initial: entities.EstimateStatusDraft,
		nodes: []entities.Status{
			entities.EstimateStatusDraft,
			entities.EstimateStatusSent,
			entities.EstimateStatusApproved,
			entities.EstimateStatusDeclined,
			entities.EstimateStatusExpired,
		},
		edges: map[entities.Status][]entities.Status{
			entities.EstimateStatusDraft: {entities.EstimateStatusSent},
			entities.EstimateStatusSent:  {entities.EstimateStatusApproved, entities.EstimateStatusDeclined, entities.EstimateStatusExpired},
		},
	},
	// overdue is derived from the due date and is not part of the graph.
	entities.EntityInvoice: {
		initial: entities.InvoiceStatusDraft,
		nodes: []entities.Status{
			entities.InvoiceStatusDraft,
			entities.InvoiceStatusSent,
			entities.InvoiceStatusPartial,
			entities.InvoiceStatusPaid,
			entities.InvoiceStatusVoid,
		},
		edges: map[entities.Status][]entities.Status{
			entities.InvoiceStatusDraft:   {entities.InvoiceStatusSent},
			entities.InvoiceStatusSent:    {entities.InvoiceStatusPartial, entities.InvoiceStatusPaid, entities.InvoiceStatusVoid},
			entities.InvoiceStatusPartial: {entities.InvoiceStatusPaid, entities.InvoiceStatusVoid},
		},
	},
}

// AllowedTargets returns the statuses reachable in one step from current.
// An empty result means current is terminal or unknown.
func AllowedTargets(entityType entities.EntityType, current entities.Status) []entities.Status {
	g, ok := graphs[entityType]
	if !ok {
		return nil
	}
	targets := g.edges[current]
	out := make([]entities.Status, len(targets))
	copy(out, targets)
	return out
}

// HasEdge reports whether from -> to is an edge of the entity's graph.
func HasEdge(entityType entities.EntityType, from, to entities.Status) bool {
	for _, s := range graphs[entityType].edges[from] {
		if s == to {
			return true
		}
	}
	return false
}

// IsKnownStatus reports whether s is a node of the entity's graph.
func IsKnownStatus(entityType entities.EntityType, s entities.Status) bool {
	for _, n := range graphs[entityType].nodes {
		if n == s {
			return true
		}
	}
	return false
}

// IsTerminal reports whether s is a known status with no outgoing edges.
func IsTerminal(entityType entities.EntityType, s entities.Status) bool {
	return IsKnownStatus(entityType, s) && len(graphs[entityType].edges[s]) == 0
}

// Statuses lists the graph nodes of an entity type in lifecycle order.
func Statuses(entityType entities.EntityType) []entities.Status {
	nodes := graphs[entityType].nodes
	out := make([]entities.Status, len(nodes))
	copy(out, nodes)
	return out
}

// InitialStatus is the status records are created in.
func InitialStatus(entityType entities.EntityType) (entities.Status, bool) {
	g, ok := graphs[entityType]
	return g.initial, ok
}
