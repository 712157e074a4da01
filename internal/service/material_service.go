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

// MaterialInput carries stock item fields.
type MaterialInput struct {
	DepartmentID string
	Name         string
	Unit         string
	Quantity     float64
}

// MaterialService manages department stock items.
type MaterialService struct {
	materials repository.MaterialRepository
	lifecycle *lifecycle.Engine
	logger    *zap.Logger
}

// NewMaterialService wires the service.
func NewMaterialService(materials repository.MaterialRepository, engine *lifecycle.Engine, logger *zap.Logger) *MaterialService {
	return &MaterialService{materials: materials, lifecycle: engine, logger: logger}
}

// Create adds a stock item. Names are unique per organization among active
// rows.
func (s *MaterialService) Create(ctx context.Context, actor authz.Context, input MaterialInput) (*domain.Material, error) {
	target := authz.Target("", actor.TenantID, input.DepartmentID)
	if !authz.Authorize(actor, authz.ActionCreate, domain.KindMaterial, &target) {
		return nil, util.NewForbidden()
	}
	if err := validateMaterial(input); err != nil {
		return nil, err
	}

	taken, err := s.materials.ExistsActiveName(ctx, actor.TenantID, input.Name, "")
	if err != nil {
		return nil, util.MapError(err)
	}
	if taken {
		return nil, util.NewConflict("material name already in use", map[string]any{"name": input.Name})
	}

	material := &domain.Material{
		OrganizationID: actor.TenantID,
		DepartmentID:   input.DepartmentID,
		CreatedBy:      actor.ActorID,
		Name:           strings.TrimSpace(input.Name),
		Unit:           strings.TrimSpace(input.Unit),
		Quantity:       input.Quantity,
	}
	if err := s.materials.Create(ctx, material); err != nil {
		return nil, util.MapError(err)
	}
	return material, nil
}

// Get returns one stock item.
func (s *MaterialService) Get(ctx context.Context, actor authz.Context, id string) (*domain.Material, error) {
	material, err := s.materials.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, util.NewNotFound("material", nil)
		}
		return nil, util.MapError(err)
	}
	if !authz.Authorize(actor, authz.ActionRead, domain.KindMaterial, materialTarget(material)) {
		return nil, util.NewForbidden()
	}
	return material, nil
}

// List returns stock items of the actor's organization.
func (s *MaterialService) List(ctx context.Context, actor authz.Context, filter repository.MaterialFilter) ([]domain.Material, error) {
	if !authz.Authorize(actor, authz.ActionRead, domain.KindMaterial, nil) {
		return nil, util.NewForbidden()
	}
	filter.OrganizationID = actor.TenantID
	materials, err := s.materials.List(ctx, filter)
	if err != nil {
		return nil, util.MapError(err)
	}
	return materials, nil
}

// Update modifies a stock item.
func (s *MaterialService) Update(ctx context.Context, actor authz.Context, id string, input MaterialInput) (*domain.Material, error) {
	material, err := s.materials.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, util.NewNotFound("material", nil)
		}
		return nil, util.MapError(err)
	}
	if !authz.Authorize(actor, authz.ActionUpdate, domain.KindMaterial, materialTarget(material)) {
		return nil, util.NewForbidden()
	}
	if err := validateMaterial(input); err != nil {
		return nil, err
	}

	taken, err := s.materials.ExistsActiveName(ctx, material.OrganizationID, input.Name, id)
	if err != nil {
		return nil, util.MapError(err)
	}
	if taken {
		return nil, util.NewConflict("material name already in use", map[string]any{"name": input.Name})
	}

	material.Name = strings.TrimSpace(input.Name)
	material.Unit = strings.TrimSpace(input.Unit)
	material.Quantity = input.Quantity
	if err := s.materials.Update(ctx, material); err != nil {
		return nil, util.MapError(err)
	}
	return material, nil
}

// SoftDelete tombstones a stock item.
func (s *MaterialService) SoftDelete(ctx context.Context, actor authz.Context, id string) error {
	material, err := s.materials.GetByIDAny(ctx, id)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return util.NewNotFound("material", nil)
		}
		return util.MapError(err)
	}
	if !authz.Authorize(actor, authz.ActionDelete, domain.KindMaterial, materialTarget(material)) {
		return util.NewForbidden()
	}
	return s.lifecycle.SoftDelete(ctx, domain.KindMaterial, id, &actor.ActorID)
}

// Restore clears a stock item's tombstone unless an active item claimed the
// name.
func (s *MaterialService) Restore(ctx context.Context, actor authz.Context, id string) (*domain.Material, error) {
	material, err := s.materials.GetByIDAny(ctx, id)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, util.NewNotFound("material", nil)
		}
		return nil, util.MapError(err)
	}
	if !authz.Authorize(actor, authz.ActionRestore, domain.KindMaterial, materialTarget(material)) {
		return nil, util.NewForbidden()
	}
	if err := s.lifecycle.Restore(ctx, domain.KindMaterial, id); err != nil {
		return nil, err
	}
	material, err = s.materials.GetByID(ctx, id)
	if err != nil {
		return nil, util.MapError(err)
	}
	return material, nil
}

func materialTarget(material *domain.Material) *authz.TargetRef {
	target := authz.Target(material.CreatedBy, material.OrganizationID, material.DepartmentID)
	return &target
}

func validateMaterial(input MaterialInput) error {
	details := map[string]any{}
	if strings.TrimSpace(input.Name) == "" {
		details["name"] = "required"
	}
	if input.Quantity < 0 {
		details["quantity"] = "must not be negative"
	}
	if len(details) > 0 {
		return util.NewValidationError("invalid material payload", details)
	}
	return nil
}
