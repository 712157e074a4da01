package authz

import "github.com/girmesh03/Task-Manager-V19/internal/domain"

// Scope is the symbolic distance between an actor and a target resource.
type Scope string

const (
	ScopeOwn       Scope = "own"
	ScopeOwnDept   Scope = "ownDept"
	ScopeCrossDept Scope = "crossDept"
	ScopeCrossOrg  Scope = "crossOrg"
	ScopeNone      Scope = "none"
)

// Context is the normalized actor record produced by the tenant context
// extractor. It is the sole input the resolver and the authorization engine
// require about the actor.
type Context struct {
	ActorID         string
	TenantID        string
	SubtenantID     string
	Role            domain.Role
	IsHOD           bool
	IsPlatformAdmin bool
}

// TargetRef carries the ownership references extracted from a target
// resource. A target that is itself an actor sets ActorID to its own id; a
// target that is a tenant sets TenantID to its own id.
type TargetRef struct {
	ActorID     *string
	TenantID    *string
	SubtenantID *string
}

// Target builds a TargetRef, skipping empty references.
func Target(actorID, tenantID, subtenantID string) TargetRef {
	ref := TargetRef{}
	if actorID != "" {
		ref.ActorID = &actorID
	}
	if tenantID != "" {
		ref.TenantID = &tenantID
	}
	if subtenantID != "" {
		ref.SubtenantID = &subtenantID
	}
	return ref
}

// ResolveScope computes the scope between the acting identity and the target.
// The checks are ordered; the first match wins:
//
//  1. target owned by the actor → own
//  2. different tenant → crossOrg for platform actors, none for everyone else
//  3. different department → crossDept
//  4. same department → ownDept
//  5. tenant-level resource in the actor's tenant → ownDept
//  6. otherwise → none
//
// Pure function; no store or session access.
func ResolveScope(actor Context, target TargetRef) Scope {
	if target.ActorID != nil && *target.ActorID == actor.ActorID {
		return ScopeOwn
	}
	if target.TenantID != nil && *target.TenantID != actor.TenantID {
		if actor.IsPlatformAdmin {
			return ScopeCrossOrg
		}
		return ScopeNone
	}
	if target.SubtenantID != nil {
		if *target.SubtenantID != actor.SubtenantID {
			return ScopeCrossDept
		}
		return ScopeOwnDept
	}
	if target.TenantID != nil && *target.TenantID == actor.TenantID {
		// Tenant-level resources carry no department; treat them at
		// department granularity for permission purposes.
		return ScopeOwnDept
	}
	return ScopeNone
}
