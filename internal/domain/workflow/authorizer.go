package workflow

import "fieldservice/internal/domain/entities"

// CheckTenant rejects access to an entity owned by another account.
func CheckTenant(actor entities.Actor, entity entities.Entity) error {
	if entity.GetAccountID() != actor.AccountID {
		return Reject(ReasonCrossTenant, "%s %s is outside the actor's account", entity.EntityType(), entity.GetID())
	}
	return nil
}

// RequireCapability rejects the actor unless its role grants action on entityType.
func RequireCapability(actor entities.Actor, action Action, entityType entities.EntityType) error {
	if !Can(actor.Role, action, entityType) {
		return Reject(ReasonForbiddenRole, "role %q may not %s %s", actor.Role, action, entityType)
	}
	return nil
}

// CheckAssignment restricts technicians to the visits assigned to them.
// Other roles and entity types pass.
func CheckAssignment(actor entities.Actor, entity entities.Entity) error {
	if actor.Role != entities.RoleTech {
		return nil
	}
	visit, ok := entity.(entities.Visit)
	if !ok {
		return nil
	}
	if !visit.IsAssignedTo(actor.UserID) {
		return Reject(ReasonNotAssigned, "visit %s is not assigned to user %s", visit.ID, actor.UserID)
	}
	return nil
}

// Authorize decides whether actor may move entity to target.
//
// Checks run cheapest and most sensitive first: tenant, role, assignment, graph.
func Authorize(actor entities.Actor, entity entities.Entity, target entities.Status) error {
	if err := CheckTenant(actor, entity); err != nil {
		return err
	}
	if err := RequireCapability(actor, ActionTransition, entity.EntityType()); err != nil {
		return err
	}
	if err := CheckAssignment(actor, entity); err != nil {
		return err
	}
	current := entity.CurrentStatus()
	if !HasEdge(entity.EntityType(), current, target) {
		return Reject(ReasonIllegalTransition, "%s %s cannot move from %s to %s", entity.EntityType(), entity.GetID(), current, target)
	}
	return nil
}
