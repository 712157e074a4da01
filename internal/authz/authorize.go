package authz

import "github.com/girmesh03/Task-Manager-V19/internal/domain"

// Authorize decides whether the actor may perform action on a resource kind.
// With no target the check is coarse (list/create endpoints); with a target
// the resolved scope must also grant the action's bucket. Unknown roles deny
// everything.
func Authorize(actor Context, action Action, kind domain.Kind, target *TargetRef) bool {
	kindSet, ok := kindGrants[actor.Role]
	if !ok {
		return false
	}
	allowed, ok := kindSet[kind]
	if !ok || !allowed[action] {
		return false
	}

	if target == nil {
		return true
	}

	scope := ResolveScope(actor, *target)
	if scope == ScopeNone {
		return false
	}

	grants, ok := scopeGrants[actor.Role]
	if !ok {
		return false
	}
	return grants[scope][BucketFor(action)]
}

// AuthorizePlatform guards platform-management operations (tenant CRUD,
// cross-tenant listing). This is a dedicated predicate checked ahead of the
// matrices: the actor must belong to the platform tenant and hold the top
// role.
func AuthorizePlatform(actor Context) bool {
	return actor.IsPlatformAdmin && actor.Role == domain.RoleSuperAdmin
}
