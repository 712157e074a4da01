package service

import (
	"context"
	"errors"
	"strings"

	"github.com/jackc/pgx/v5"
	"go.uber.org/zap"

	"github.com/girmesh03/Task-Manager-V19/internal/authz"
	"github.com/girmesh03/Task-Manager-V19/internal/domain"
	"github.com/girmesh03/Task-Manager-V19/internal/lifecycle"
	"github.com/girmesh03/Task-Manager-V19/internal/repository"
	"github.com/girmesh03/Task-Manager-V19/pkg/util"
)

// DepartmentInput carries department fields for create and update.
type DepartmentInput struct {
	Name        string
	Description string
}

// DepartmentService manages departments within the actor's tenant.
type DepartmentService struct {
	depts     repository.DepartmentRepository
	lifecycle *lifecycle.Engine
	logger    *zap.Logger
}

// NewDepartmentService wires the service.
func NewDepartmentService(depts repository.DepartmentRepository, engine *lifecycle.Engine, logger *zap.Logger) *DepartmentService {
	return &DepartmentService{depts: depts, lifecycle: engine, logger: logger}
}

// Create adds a department to the actor's organization.
func (s *DepartmentService) Create(ctx context.Context, actor authz.Context, input DepartmentInput) (*domain.Department, error) {
	if !authz.Authorize(actor, authz.ActionCreate, domain.KindDepartment, nil) {
		return nil, util.NewForbidden()
	}
	if strings.TrimSpace(input.Name) == "" {
		return nil, util.NewValidationError("department name required", nil)
	}

	taken, err := s.depts.ExistsActiveName(ctx, actor.TenantID, input.Name, "")
	if err != nil {
		return nil, util.MapError(err)
	}
	if taken {
		return nil, util.NewConflict("department name already in use", map[string]any{"name": input.Name})
	}

	dept := &domain.Department{
		OrganizationID: actor.TenantID,
		Name:           strings.TrimSpace(input.Name),
		Description:    strings.TrimSpace(input.Description),
	}
	if err := s.depts.Create(ctx, dept); err != nil {
		return nil, util.MapError(err)
	}
	return dept, nil
}

// Get returns one department in the actor's tenant.
func (s *DepartmentService) Get(ctx context.Context, actor authz.Context, id string) (*domain.Department, error) {
	dept, err := s.depts.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, util.NewNotFound("department", nil)
		}
		return nil, util.MapError(err)
	}

	target := authz.Target("", dept.OrganizationID, dept.ID)
	if !authz.Authorize(actor, authz.ActionRead, domain.KindDepartment, &target) {
		return nil, util.NewForbidden()
	}
	return dept, nil
}

// List returns departments of the actor's organization.
func (s *DepartmentService) List(ctx context.Context, actor authz.Context, filter repository.DepartmentFilter) ([]domain.Department, error) {
	if !authz.Authorize(actor, authz.ActionRead, domain.KindDepartment, nil) {
		return nil, util.NewForbidden()
	}
	filter.OrganizationID = actor.TenantID
	depts, err := s.depts.List(ctx, filter)
	if err != nil {
		return nil, util.MapError(err)
	}
	return depts, nil
}

// Update renames a department; name stays unique per organization among
// active rows.
func (s *DepartmentService) Update(ctx context.Context, actor authz.Context, id string, input DepartmentInput) (*domain.Department, error) {
	dept, err := s.depts.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, util.NewNotFound("department", nil)
		}
		return nil, util.MapError(err)
	}

	target := authz.Target("", dept.OrganizationID, dept.ID)
	if !authz.Authorize(actor, authz.ActionUpdate, domain.KindDepartment, &target) {
		return nil, util.NewForbidden()
	}
	if strings.TrimSpace(input.Name) == "" {
		return nil, util.NewValidationError("department name required", nil)
	}

	taken, err := s.depts.ExistsActiveName(ctx, dept.OrganizationID, input.Name, id)
	if err != nil {
		return nil, util.MapError(err)
	}
	if taken {
		return nil, util.NewConflict("department name already in use", map[string]any{"name": input.Name})
	}

	dept.Name = strings.TrimSpace(input.Name)
	dept.Description = strings.TrimSpace(input.Description)
	if err := s.depts.Update(ctx, dept); err != nil {
		return nil, util.MapError(err)
	}
	return dept, nil
}

// SoftDelete tombstones a department and cascades to its users, tasks, and
// materials.
func (s *DepartmentService) SoftDelete(ctx context.Context, actor authz.Context, id string) error {
	dept, err := s.depts.GetByIDAny(ctx, id)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return util.NewNotFound("department", nil)
		}
		return util.MapError(err)
	}

	target := authz.Target("", dept.OrganizationID, dept.ID)
	if !authz.Authorize(actor, authz.ActionDelete, domain.KindDepartment, &target) {
		return util.NewForbidden()
	}
	return s.lifecycle.SoftDelete(ctx, domain.KindDepartment, id, &actor.ActorID)
}

// Restore clears a department's tombstone if no active department holds the
// same name.
func (s *DepartmentService) Restore(ctx context.Context, actor authz.Context, id string) (*domain.Department, error) {
	dept, err := s.depts.GetByIDAny(ctx, id)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, util.NewNotFound("department", nil)
		}
		return nil, util.MapError(err)
	}

	target := authz.Target("", dept.OrganizationID, dept.ID)
	if !authz.Authorize(actor, authz.ActionRestore, domain.KindDepartment, &target) {
		return nil, util.NewForbidden()
	}
	if err := s.lifecycle.Restore(ctx, domain.KindDepartment, id); err != nil {
		return nil, err
	}
	dept, err = s.depts.GetByID(ctx, id)
	if err != nil {
		return nil, util.MapError(err)
	}
	return dept, nil
}
