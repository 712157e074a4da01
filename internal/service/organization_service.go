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

// UpdateOrganizationInput carries mutable tenant fields.
type UpdateOrganizationInput struct {
	Name     string
	Industry string
}

// OrganizationService manages tenants. Listing and lifecycle operations on
// organizations are platform-only; reading and updating the actor's own
// organization goes through the regular matrices.
type OrganizationService struct {
	orgs      repository.OrganizationRepository
	lifecycle *lifecycle.Engine
	logger    *zap.Logger
}

// NewOrganizationService wires the service.
func NewOrganizationService(orgs repository.OrganizationRepository, engine *lifecycle.Engine, logger *zap.Logger) *OrganizationService {
	return &OrganizationService{orgs: orgs, lifecycle: engine, logger: logger}
}

// List returns customer tenants. Platform-only; the platform sentinel itself
// is excluded.
func (s *OrganizationService) List(ctx context.Context, actor authz.Context, filter repository.OrganizationFilter) ([]domain.Organization, error) {
	if !authz.AuthorizePlatform(actor) {
		return nil, util.NewForbidden()
	}
	filter.IncludePlatform = false
	orgs, err := s.orgs.List(ctx, filter)
	if err != nil {
		return nil, util.MapError(err)
	}
	return orgs, nil
}

// Get returns one organization. Non-platform actors may only read their own.
func (s *OrganizationService) Get(ctx context.Context, actor authz.Context, id string) (*domain.Organization, error) {
	target := authz.Target("", id, "")
	if !authz.Authorize(actor, authz.ActionRead, domain.KindOrganization, &target) {
		return nil, util.NewForbidden()
	}

	org, err := s.orgs.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, util.NewNotFound("organization", nil)
		}
		return nil, util.MapError(err)
	}
	return org, nil
}

// Update renames an organization. Active-name uniqueness is global.
func (s *OrganizationService) Update(ctx context.Context, actor authz.Context, id string, input UpdateOrganizationInput) (*domain.Organization, error) {
	target := authz.Target("", id, "")
	if !authz.Authorize(actor, authz.ActionUpdate, domain.KindOrganization, &target) {
		return nil, util.NewForbidden()
	}
	if strings.TrimSpace(input.Name) == "" {
		return nil, util.NewValidationError("organization name required", nil)
	}

	org, err := s.orgs.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, util.NewNotFound("organization", nil)
		}
		return nil, util.MapError(err)
	}

	taken, err := s.orgs.ExistsActiveName(ctx, input.Name, id)
	if err != nil {
		return nil, util.MapError(err)
	}
	if taken {
		return nil, util.NewConflict("organization name already in use", map[string]any{"name": input.Name})
	}

	org.Name = strings.TrimSpace(input.Name)
	org.Industry = strings.TrimSpace(input.Industry)
	if err := s.orgs.Update(ctx, org); err != nil {
		return nil, util.MapError(err)
	}
	return org, nil
}

// SoftDelete tombstones a tenant and cascades to everything it contains.
// Platform-only; the platform sentinel cannot be deleted.
func (s *OrganizationService) SoftDelete(ctx context.Context, actor authz.Context, id string) error {
	if !authz.AuthorizePlatform(actor) {
		return util.NewForbidden()
	}

	org, err := s.orgs.GetByIDAny(ctx, id)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return util.NewNotFound("organization", nil)
		}
		return util.MapError(err)
	}
	if org.IsPlatform {
		return util.NewForbidden()
	}

	return s.lifecycle.SoftDelete(ctx, domain.KindOrganization, id, &actor.ActorID)
}

// Restore clears a tenant's tombstone. Children stay tombstoned.
func (s *OrganizationService) Restore(ctx context.Context, actor authz.Context, id string) (*domain.Organization, error) {
	if !authz.AuthorizePlatform(actor) {
		return nil, util.NewForbidden()
	}
	if err := s.lifecycle.Restore(ctx, domain.KindOrganization, id); err != nil {
		return nil, err
	}
	org, err := s.orgs.GetByID(ctx, id)
	if err != nil {
		return nil, util.MapError(err)
	}
	return org, nil
}

// HardDelete is rejected unless the platform bypass is set.
func (s *OrganizationService) HardDelete(ctx context.Context, actor authz.Context, id string, bypassGuard bool) error {
	if !authz.AuthorizePlatform(actor) {
		return util.NewForbidden()
	}
	if bypassGuard {
		s.logger.Warn("hard delete bypass used",
			zap.String("organization_id", id),
			zap.String("actor_id", actor.ActorID))
	}
	return s.lifecycle.HardDelete(ctx, domain.KindOrganization, id, bypassGuard)
}
