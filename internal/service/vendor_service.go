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

// VendorInput carries supplier fields.
type VendorInput struct {
	Name         string
	ContactEmail string
	ContactPhone string
	Address      string
}

// VendorService manages organization-level suppliers.
type VendorService struct {
	vendors   repository.VendorRepository
	lifecycle *lifecycle.Engine
	logger    *zap.Logger
}

// NewVendorService wires the service.
func NewVendorService(vendors repository.VendorRepository, engine *lifecycle.Engine, logger *zap.Logger) *VendorService {
	return &VendorService{vendors: vendors, lifecycle: engine, logger: logger}
}

// Create adds a supplier. Names are unique per organization among active rows.
func (s *VendorService) Create(ctx context.Context, actor authz.Context, input VendorInput) (*domain.Vendor, error) {
	if !authz.Authorize(actor, authz.ActionCreate, domain.KindVendor, nil) {
		return nil, util.NewForbidden()
	}
	if strings.TrimSpace(input.Name) == "" {
		return nil, util.NewValidationError("vendor name required", nil)
	}

	taken, err := s.vendors.ExistsActiveName(ctx, actor.TenantID, input.Name, "")
	if err != nil {
		return nil, util.MapError(err)
	}
	if taken {
		return nil, util.NewConflict("vendor name already in use", map[string]any{"name": input.Name})
	}

	vendor := &domain.Vendor{
		OrganizationID: actor.TenantID,
		CreatedBy:      actor.ActorID,
		Name:           strings.TrimSpace(input.Name),
		ContactEmail:   normalizeEmail(input.ContactEmail),
		ContactPhone:   strings.TrimSpace(input.ContactPhone),
		Address:        strings.TrimSpace(input.Address),
	}
	if err := s.vendors.Create(ctx, vendor); err != nil {
		return nil, util.MapError(err)
	}
	return vendor, nil
}

// Get returns one supplier.
func (s *VendorService) Get(ctx context.Context, actor authz.Context, id string) (*domain.Vendor, error) {
	vendor, err := s.vendors.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, util.NewNotFound("vendor", nil)
		}
		return nil, util.MapError(err)
	}
	if !authz.Authorize(actor, authz.ActionRead, domain.KindVendor, vendorTarget(vendor)) {
		return nil, util.NewForbidden()
	}
	return vendor, nil
}

// List returns suppliers of the actor's organization.
func (s *VendorService) List(ctx context.Context, actor authz.Context, filter repository.VendorFilter) ([]domain.Vendor, error) {
	if !authz.Authorize(actor, authz.ActionRead, domain.KindVendor, nil) {
		return nil, util.NewForbidden()
	}
	filter.OrganizationID = actor.TenantID
	vendors, err := s.vendors.List(ctx, filter)
	if err != nil {
		return nil, util.MapError(err)
	}
	return vendors, nil
}

// Update modifies a supplier.
func (s *VendorService) Update(ctx context.Context, actor authz.Context, id string, input VendorInput) (*domain.Vendor, error) {
	vendor, err := s.vendors.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, util.NewNotFound("vendor", nil)
		}
		return nil, util.MapError(err)
	}
	if !authz.Authorize(actor, authz.ActionUpdate, domain.KindVendor, vendorTarget(vendor)) {
		return nil, util.NewForbidden()
	}
	if strings.TrimSpace(input.Name) == "" {
		return nil, util.NewValidationError("vendor name required", nil)
	}

	taken, err := s.vendors.ExistsActiveName(ctx, vendor.OrganizationID, input.Name, id)
	if err != nil {
		return nil, util.MapError(err)
	}
	if taken {
		return nil, util.NewConflict("vendor name already in use", map[string]any{"name": input.Name})
	}

	vendor.Name = strings.TrimSpace(input.Name)
	vendor.ContactEmail = normalizeEmail(input.ContactEmail)
	vendor.ContactPhone = strings.TrimSpace(input.ContactPhone)
	vendor.Address = strings.TrimSpace(input.Address)
	if err := s.vendors.Update(ctx, vendor); err != nil {
		return nil, util.MapError(err)
	}
	return vendor, nil
}

// SoftDelete tombstones a supplier.
func (s *VendorService) SoftDelete(ctx context.Context, actor authz.Context, id string) error {
	vendor, err := s.vendors.GetByIDAny(ctx, id)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return util.NewNotFound("vendor", nil)
		}
		return util.MapError(err)
	}
	if !authz.Authorize(actor, authz.ActionDelete, domain.KindVendor, vendorTarget(vendor)) {
		return util.NewForbidden()
	}
	return s.lifecycle.SoftDelete(ctx, domain.KindVendor, id, &actor.ActorID)
}

// Restore clears a supplier's tombstone unless an active supplier claimed the
// name.
func (s *VendorService) Restore(ctx context.Context, actor authz.Context, id string) (*domain.Vendor, error) {
	vendor, err := s.vendors.GetByIDAny(ctx, id)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, util.NewNotFound("vendor", nil)
		}
		return nil, util.MapError(err)
	}
	if !authz.Authorize(actor, authz.ActionRestore, domain.KindVendor, vendorTarget(vendor)) {
		return nil, util.NewForbidden()
	}
	if err := s.lifecycle.Restore(ctx, domain.KindVendor, id); err != nil {
		return nil, err
	}
	vendor, err = s.vendors.GetByID(ctx, id)
	if err != nil {
		return nil, util.MapError(err)
	}
	return vendor, nil
}

func vendorTarget(vendor *domain.Vendor) *authz.TargetRef {
	target := authz.Target(vendor.CreatedBy, vendor.OrganizationID, "")
	return &target
}
