package authz

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/girmesh03/Task-Manager-V19/internal/domain"
)

func actorCtx(role domain.Role, platform bool) Context {
	return Context{
		ActorID:         "actor-1",
		TenantID:        "org-1",
		SubtenantID:     "dept-1",
		Role:            role,
		IsHOD:           role.IsHOD(),
		IsPlatformAdmin: platform,
	}
}

func TestResolveScope(t *testing.T) {
	actor := actorCtx(domain.RoleManager, false)

	tests := []struct {
		name   string
		target TargetRef
		want   Scope
	}{
		{
			name:   "own resource wins over everything",
			target: Target("actor-1", "org-2", "dept-9"),
			want:   ScopeOwn,
		},
		{
			name:   "different tenant for non-platform actor",
			target: Target("actor-2", "org-2", "dept-2"),
			want:   ScopeNone,
		},
		{
			name:   "different department same tenant",
			target: Target("actor-2", "org-1", "dept-2"),
			want:   ScopeCrossDept,
		},
		{
			name:   "same department",
			target: Target("actor-2", "org-1", "dept-1"),
			want:   ScopeOwnDept,
		},
		{
			name:   "tenant-level resource in own tenant",
			target: Target("", "org-1", ""),
			want:   ScopeOwnDept,
		},
		{
			name:   "no references at all",
			target: TargetRef{},
			want:   ScopeNone,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, ResolveScope(actor, tt.target))
		})
	}
}

func TestResolveScopePlatformActor(t *testing.T) {
	platform := Context{
		ActorID:         "padmin",
		TenantID:        "org-platform",
		SubtenantID:     "dept-hq",
		Role:            domain.RoleSuperAdmin,
		IsHOD:           true,
		IsPlatformAdmin: true,
	}

	assert.Equal(t, ScopeCrossOrg, ResolveScope(platform, Target("", "org-7", "dept-7")))
	assert.Equal(t, ScopeCrossOrg, ResolveScope(platform, Target("u-9", "org-7", "")))
	assert.Equal(t, ScopeOwnDept, ResolveScope(platform, Target("", "org-platform", "")))
}

// Non-platform actors never reach a foreign tenant, regardless of role.
func TestResolveScopeCrossTenantAlwaysNone(t *testing.T) {
	for _, role := range []domain.Role{domain.RoleSuperAdmin, domain.RoleAdmin, domain.RoleManager, domain.RoleUser} {
		actor := actorCtx(role, false)
		got := ResolveScope(actor, Target("other", "org-2", "dept-2"))
		assert.Equal(t, ScopeNone, got, "role %s", role)
	}
}

// Every (actor, target) pair yields exactly one of the five labels.
func TestResolveScopeDeterminism(t *testing.T) {
	valid := map[Scope]bool{
		ScopeOwn: true, ScopeOwnDept: true, ScopeCrossDept: true, ScopeCrossOrg: true, ScopeNone: true,
	}

	actors := []Context{
		actorCtx(domain.RoleUser, false),
		actorCtx(domain.RoleSuperAdmin, false),
		{ActorID: "p", TenantID: "org-p", SubtenantID: "d", Role: domain.RoleSuperAdmin, IsPlatformAdmin: true},
	}
	targets := []TargetRef{
		{},
		Target("actor-1", "", ""),
		Target("", "org-1", ""),
		Target("", "org-2", ""),
		Target("", "org-1", "dept-1"),
		Target("", "org-1", "dept-2"),
		Target("x", "org-2", "dept-9"),
	}

	for _, actor := range actors {
		for _, target := range targets {
			first := ResolveScope(actor, target)
			assert.True(t, valid[first], "unexpected scope %q", first)
			assert.Equal(t, first, ResolveScope(actor, target))
		}
	}
}
