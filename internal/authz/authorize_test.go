package authz

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/girmesh03/Task-Manager-V19/internal/domain"
)

func TestAuthorizeFailClosed(t *testing.T) {
	unknown := Context{ActorID: "a", TenantID: "org-1", SubtenantID: "d-1", Role: domain.Role("INTERN")}
	missing := Context{ActorID: "a", TenantID: "org-1", SubtenantID: "d-1"}

	target := Target("b", "org-1", "d-1")
	for _, actor := range []Context{unknown, missing} {
		for _, action := range []Action{ActionCreate, ActionRead, ActionUpdate, ActionDelete, ActionRestore} {
			for _, kind := range domain.Kinds {
				assert.False(t, Authorize(actor, action, kind, &target))
				assert.False(t, Authorize(actor, action, kind, nil))
			}
		}
	}
}

func TestAuthorizeCrossTenantDenied(t *testing.T) {
	// SuperAdmin of a customer org targeting a resource in another org.
	actor := Context{
		ActorID:     "a-1",
		TenantID:    "org-x",
		SubtenantID: "d-1",
		Role:        domain.RoleSuperAdmin,
		IsHOD:       true,
	}
	target := Target("someone", "org-y", "d-9")

	assert.False(t, Authorize(actor, ActionRead, domain.KindTask, &target))
}

func TestAuthorizeManagerOwnDeptWrite(t *testing.T) {
	manager := Context{
		ActorID:     "mgr-1",
		TenantID:    "org-1",
		SubtenantID: "dept-d",
		Role:        domain.RoleManager,
	}
	// Task created by a different actor in the same department.
	target := Target("other-user", "org-1", "dept-d")

	assert.True(t, Authorize(manager, ActionUpdate, domain.KindTask, &target))
	// ownDept grants read+write for Manager, not delete.
	assert.False(t, Authorize(manager, ActionDelete, domain.KindTask, &target))
}

func TestAuthorizeManagerCarveOuts(t *testing.T) {
	manager := Context{ActorID: "m", TenantID: "org-1", SubtenantID: "d-1", Role: domain.RoleManager}
	own := Target("m", "org-1", "d-1")

	assert.False(t, Authorize(manager, ActionCreate, domain.KindVendor, nil))
	assert.False(t, Authorize(manager, ActionDelete, domain.KindUser, &own))
	assert.True(t, Authorize(manager, ActionCreate, domain.KindTask, nil))
}

func TestAuthorizeUserRole(t *testing.T) {
	user := Context{ActorID: "u-1", TenantID: "org-1", SubtenantID: "d-1", Role: domain.RoleUser}

	own := Target("u-1", "org-1", "d-1")
	sameDept := Target("u-2", "org-1", "d-1")

	assert.True(t, Authorize(user, ActionUpdate, domain.KindTask, &own))
	assert.True(t, Authorize(user, ActionRead, domain.KindTask, &sameDept))
	// ownDept grants read only for the User role.
	assert.False(t, Authorize(user, ActionUpdate, domain.KindTask, &sameDept))
	assert.False(t, Authorize(user, ActionDelete, domain.KindTask, &own))
	assert.True(t, Authorize(user, ActionCreate, domain.KindTask, nil))
	assert.False(t, Authorize(user, ActionCreate, domain.KindVendor, nil))
}

func TestAuthorizeCoarseCheckWithoutTarget(t *testing.T) {
	admin := Context{ActorID: "a", TenantID: "org-1", SubtenantID: "d-1", Role: domain.RoleAdmin, IsHOD: true}

	assert.True(t, Authorize(admin, ActionCreate, domain.KindDepartment, nil))
	assert.False(t, Authorize(admin, ActionCreate, domain.KindOrganization, nil))
}

func TestAuthorizePlatformGuard(t *testing.T) {
	platformSuper := Context{ActorID: "p", TenantID: "org-p", Role: domain.RoleSuperAdmin, IsPlatformAdmin: true}
	customerSuper := Context{ActorID: "c", TenantID: "org-x", Role: domain.RoleSuperAdmin}
	platformAdmin := Context{ActorID: "q", TenantID: "org-p", Role: domain.RoleAdmin, IsPlatformAdmin: true}

	assert.True(t, AuthorizePlatform(platformSuper))
	assert.False(t, AuthorizePlatform(customerSuper))
	assert.False(t, AuthorizePlatform(platformAdmin))
}
