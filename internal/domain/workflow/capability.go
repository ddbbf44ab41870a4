package workflow

import (
	"fmt"

	"fieldservice/internal/domain/entities"
)

// Action is a verb a role may be granted on an entity type.
type Action string

const (
	ActionCreate      Action = "create"
	ActionTransition  Action = "transition"
	ActionAssign      Action = "assign"
	ActionViewAll     Action = "view-all"
	ActionUpdateNotes Action = "update-notes"
	ActionDelete      Action = "delete"
)

// Actions lists every action in display order.
var Actions = []Action{ActionCreate, ActionTransition, ActionAssign, ActionViewAll, ActionUpdateNotes, ActionDelete}

// ParseAction converts a string to an Action.
func ParseAction(s string) (Action, error) {
	for _, a := range Actions {
		if string(a) == s {
			return a, nil
		}
	}
	return "", fmt.Errorf("invalid action: %s", s)
}

type grants map[Action][]entities.EntityType

var (
	allEntities = []entities.EntityType{entities.EntityJob, entities.EntityVisit, entities.EntityEstimate, entities.EntityInvoice}

	techGrants = grants{
		ActionTransition:  {entities.EntityVisit},
		ActionUpdateNotes: {entities.EntityVisit},
		ActionViewAll:     {entities.EntityJob, entities.EntityVisit},
	}

	// admin has full operational control but cannot delete financial records.
	adminGrants = grants{
		ActionCreate:      allEntities,
		ActionTransition:  allEntities,
		ActionAssign:      {entities.EntityJob, entities.EntityVisit},
		ActionViewAll:     allEntities,
		ActionUpdateNotes: {entities.EntityVisit},
		ActionDelete:      {entities.EntityJob, entities.EntityVisit},
	}

	ownerGrants = withGrants(adminGrants, grants{
		ActionDelete: {entities.EntityEstimate, entities.EntityInvoice},
	})
)

func withGrants(base, extra grants) grants {
	out := grants{}
	for a, types := range base {
		out[a] = append(out[a], types...)
	}
	for a, types := range extra {
		out[a] = append(out[a], types...)
	}
	return out
}

func grantsFor(role entities.Role) grants {
	switch role {
	case entities.RoleOwner:
		return ownerGrants
	case entities.RoleAdmin:
		return adminGrants
	case entities.RoleTech:
		return techGrants
	default:
		return nil
	}
}

// Can reports whether role may perform action on entityType.
// Unknown roles, actions and entity types are denied.
func Can(role entities.Role, action Action, entityType entities.EntityType) bool {
	for _, t := range grantsFor(role)[action] {
		if t == entityType {
			return true
		}
	}
	return false
}

func CanCreate(role entities.Role, entityType entities.EntityType) bool {
	return Can(role, ActionCreate, entityType)
}

func CanTransition(role entities.Role, entityType entities.EntityType) bool {
	return Can(role, ActionTransition, entityType)
}

func CanAssign(role entities.Role, entityType entities.EntityType) bool {
	return Can(role, ActionAssign, entityType)
}

func CanViewAll(role entities.Role, entityType entities.EntityType) bool {
	return Can(role, ActionViewAll, entityType)
}

func CanUpdateNotes(role entities.Role, entityType entities.EntityType) bool {
	return Can(role, ActionUpdateNotes, entityType)
}

func CanDelete(role entities.Role, entityType entities.EntityType) bool {
	return Can(role, ActionDelete, entityType)
}

// Capabilities returns the full action matrix for role, keyed by entity type.
func Capabilities(role entities.Role) map[entities.EntityType][]Action {
	out := make(map[entities.EntityType][]Action, len(allEntities))
	for _, et := range allEntities {
		actions := []Action{}
		for _, a := range Actions {
			if Can(role, a, et) {
				actions = append(actions, a)
			}
		}
		out[et] = actions
	}
	return out
}
