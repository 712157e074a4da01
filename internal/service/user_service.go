package service

import (
	"context"
	"errors"
	"strings"

	"github.com/jackc/pgx/v5"
	"go.uber.org/zap"

	"github.com/girmesh03/Task-Manager-V19/internal/auth"
	"github.com/girmesh03/Task-Manager-V19/internal/authz"
	"github.com/girmesh03/Task-Manager-V19/internal/config"
	"github.com/girmesh03/Task-Manager-V19/internal/domain"
	"github.com/girmesh03/Task-Manager-V19/internal/lifecycle"
	"github.com/girmesh03/Task-Manager-V19/internal/repository"
	"github.com/girmesh03/Task-Manager-V19/pkg/util"
)

// CreateUserInput carries fields for provisioning an actor.
type CreateUserInput struct {
	DepartmentID string
	FirstName    string
	LastName     string
	Email        string
	Password     string
	Role         domain.Role
	Position     string
}

// UpdateUserInput carries mutable actor fields. Role and department changes
// run through the same uniqueness probes as creation.
type UpdateUserInput struct {
	DepartmentID string
	FirstName    string
	LastName     string
	Email        string
	Role         domain.Role
	Position     string
}

// UserService manages actors within the actor's tenant.
type UserService struct {
	users      repository.UserRepository
	depts      repository.DepartmentRepository
	lifecycle  *lifecycle.Engine
	authConfig config.AuthConfig
	logger     *zap.Logger
}

// NewUserService wires the service.
func NewUserService(users repository.UserRepository, depts repository.DepartmentRepository, engine *lifecycle.Engine, authConfig config.AuthConfig, logger *zap.Logger) *UserService {
	return &UserService{users: users, depts: depts, lifecycle: engine, authConfig: authConfig, logger: logger}
}

// Create provisions a user in the actor's organization. A caller may never
// grant a role above their own.
func (s *UserService) Create(ctx context.Context, actor authz.Context, input CreateUserInput) (*domain.User, error) {
	target := authz.Target("", actor.TenantID, input.DepartmentID)
	if !authz.Authorize(actor, authz.ActionCreate, domain.KindUser, &target) {
		return nil, util.NewForbidden()
	}
	if err := s.validateUserInput(input.FirstName, input.Email, input.Role, input.Position); err != nil {
		return nil, err
	}
	if len(input.Password) < 8 {
		return nil, util.NewValidationError("password must be at least 8 characters", nil)
	}
	if outranks(input.Role, actor.Role) {
		return nil, util.NewForbidden()
	}

	dept, err := s.depts.GetByID(ctx, input.DepartmentID)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, util.NewNotFound("department", nil)
		}
		return nil, util.MapError(err)
	}
	if dept.OrganizationID != actor.TenantID {
		return nil, util.NewForbidden()
	}

	if err := s.checkUniqueness(ctx, actor.TenantID, input.DepartmentID, input.Email, input.Role, input.Position, ""); err != nil {
		return nil, err
	}

	hash, err := auth.HashPassword(input.Password, s.authConfig.BcryptCost)
	if err != nil {
		return nil, util.NewInternalError(err)
	}

	user := &domain.User{
		OrganizationID: actor.TenantID,
		DepartmentID:   input.DepartmentID,
		FirstName:      strings.TrimSpace(input.FirstName),
		LastName:       strings.TrimSpace(input.LastName),
		Email:          normalizeEmail(input.Email),
		PasswordHash:   hash,
		Role:           input.Role,
		Position:       strings.TrimSpace(input.Position),
	}
	if err := s.users.Create(ctx, user); err != nil {
		return nil, util.MapError(err)
	}
	return user, nil
}

// Get returns one user in the actor's tenant.
func (s *UserService) Get(ctx context.Context, actor authz.Context, id string) (*domain.User, error) {
	user, err := s.users.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, util.NewNotFound("user", nil)
		}
		return nil, util.MapError(err)
	}

	target := authz.Target(user.ID, user.OrganizationID, user.DepartmentID)
	if !authz.Authorize(actor, authz.ActionRead, domain.KindUser, &target) {
		return nil, util.NewForbidden()
	}
	return user, nil
}

// List returns users of the actor's organization.
func (s *UserService) List(ctx context.Context, actor authz.Context, filter repository.UserFilter) ([]domain.User, error) {
	if !authz.Authorize(actor, authz.ActionRead, domain.KindUser, nil) {
		return nil, util.NewForbidden()
	}
	filter.OrganizationID = actor.TenantID
	users, err := s.users.List(ctx, filter)
	if err != nil {
		return nil, util.MapError(err)
	}
	return users, nil
}

// Update modifies a user. Self-service updates cannot change role or
// department.
func (s *UserService) Update(ctx context.Context, actor authz.Context, id string, input UpdateUserInput) (*domain.User, error) {
	user, err := s.users.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, util.NewNotFound("user", nil)
		}
		return nil, util.MapError(err)
	}

	target := authz.Target(user.ID, user.OrganizationID, user.DepartmentID)
	if !authz.Authorize(actor, authz.ActionUpdate, domain.KindUser, &target) {
		return nil, util.NewForbidden()
	}
	if err := s.validateUserInput(input.FirstName, input.Email, input.Role, input.Position); err != nil {
		return nil, err
	}

	roleChanged := input.Role != user.Role
	deptChanged := input.DepartmentID != user.DepartmentID
	if (roleChanged || deptChanged) && !actor.IsHOD {
		return nil, util.NewForbidden()
	}
	if outranks(input.Role, actor.Role) {
		return nil, util.NewForbidden()
	}

	if deptChanged {
		dept, err := s.depts.GetByID(ctx, input.DepartmentID)
		if err != nil {
			if errors.Is(err, pgx.ErrNoRows) {
				return nil, util.NewNotFound("department", nil)
			}
			return nil, util.MapError(err)
		}
		if dept.OrganizationID != actor.TenantID {
			return nil, util.NewForbidden()
		}
	}

	if err := s.checkUniqueness(ctx, user.OrganizationID, input.DepartmentID, input.Email, input.Role, input.Position, user.ID); err != nil {
		return nil, err
	}

	user.DepartmentID = input.DepartmentID
	user.FirstName = strings.TrimSpace(input.FirstName)
	user.LastName = strings.TrimSpace(input.LastName)
	user.Email = normalizeEmail(input.Email)
	user.Role = input.Role
	user.Position = strings.TrimSpace(input.Position)
	if err := s.users.Update(ctx, user); err != nil {
		return nil, util.MapError(err)
	}
	return user, nil
}

// SoftDelete deactivates a user. Self-deletion is rejected so a tenant cannot
// lock itself out of its last administrator by accident.
func (s *UserService) SoftDelete(ctx context.Context, actor authz.Context, id string) error {
	if id == actor.ActorID {
		return util.NewValidationError("cannot delete your own account", nil)
	}

	user, err := s.users.GetByIDAny(ctx, id)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return util.NewNotFound("user", nil)
		}
		return util.MapError(err)
	}

	target := authz.Target(user.ID, user.OrganizationID, user.DepartmentID)
	if !authz.Authorize(actor, authz.ActionDelete, domain.KindUser, &target) {
		return util.NewForbidden()
	}
	return s.lifecycle.SoftDelete(ctx, domain.KindUser, id, &actor.ActorID)
}

// Restore reactivates a user unless an active user claimed the email, or an
// active HOD claimed the position, in the meantime.
func (s *UserService) Restore(ctx context.Context, actor authz.Context, id string) (*domain.User, error) {
	user, err := s.users.GetByIDAny(ctx, id)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, util.NewNotFound("user", nil)
		}
		return nil, util.MapError(err)
	}

	target := authz.Target(user.ID, user.OrganizationID, user.DepartmentID)
	if !authz.Authorize(actor, authz.ActionRestore, domain.KindUser, &target) {
		return nil, util.NewForbidden()
	}
	if err := s.lifecycle.Restore(ctx, domain.KindUser, id); err != nil {
		return nil, err
	}
	user, err = s.users.GetByID(ctx, id)
	if err != nil {
		return nil, util.MapError(err)
	}
	return user, nil
}

func (s *UserService) validateUserInput(firstName, email string, role domain.Role, position string) error {
	details := map[string]any{}
	if strings.TrimSpace(firstName) == "" {
		details["first_name"] = "required"
	}
	if normalizeEmail(email) == "" {
		details["email"] = "required"
	}
	if !role.Valid() {
		details["role"] = "unknown role"
	}
	if role.IsHOD() && strings.TrimSpace(position) == "" {
		details["position"] = "required for head-of-department roles"
	}
	if len(details) > 0 {
		return util.NewValidationError("invalid user payload", details)
	}
	return nil
}

func (s *UserService) checkUniqueness(ctx context.Context, orgID, deptID, email string, role domain.Role, position, excludeID string) error {
	emailTaken, err := s.users.ExistsActiveEmail(ctx, orgID, email, excludeID)
	if err != nil {
		return util.MapError(err)
	}
	if emailTaken {
		return util.NewConflict("email already in use", map[string]any{"email": normalizeEmail(email)})
	}

	if role.IsHOD() {
		positionTaken, err := s.users.ExistsActiveHODPosition(ctx, deptID, position, excludeID)
		if err != nil {
			return util.MapError(err)
		}
		if positionTaken {
			return util.NewConflict("position already held in this department", map[string]any{"position": position})
		}
	}
	return nil
}

// roleRank orders roles for the no-privilege-escalation check.
var roleRank = map[domain.Role]int{
	domain.RoleSuperAdmin: 4,
	domain.RoleAdmin:      3,
	domain.RoleManager:    2,
	domain.RoleUser:       1,
}

func outranks(granted, own domain.Role) bool {
	return roleRank[granted] > roleRank[own]
}
