package handlers

import (
	"net/http"

	"github.com/gofiber/fiber/v2"

	"github.com/girmesh03/Task-Manager-V19/internal/api/dto"
	"github.com/girmesh03/Task-Manager-V19/internal/auth"
	"github.com/girmesh03/Task-Manager-V19/internal/repository"
	"github.com/girmesh03/Task-Manager-V19/internal/service"
	apperrors "github.com/girmesh03/Task-Manager-V19/pkg/util"
)

// VendorsHandler serves supplier endpoints.
type VendorsHandler struct {
	service *service.VendorService
}

// NewVendorsHandler constructs handler.
func NewVendorsHandler(vendorService *service.VendorService) *VendorsHandler {
	return &VendorsHandler{service: vendorService}
}

// Create POST /vendors.
func (h *VendorsHandler) Create(c *fiber.Ctx) error {
	actor, ok := auth.ActorFromContext(c)
	if !ok {
		return apperrors.NewUnauthorized("authentication required")
	}

	var req dto.VendorRequest
	if err := c.BodyParser(&req); err != nil {
		return apperrors.NewValidationError("invalid payload", nil)
	}

	vendor, err := h.service.Create(c.UserContext(), actor, service.VendorInput{
		Name:         req.Name,
		ContactEmail: req.ContactEmail,
		ContactPhone: req.ContactPhone,
		Address:      req.Address,
	})
	if err != nil {
		return err
	}
	return c.Status(http.StatusCreated).JSON(fiber.Map{"data": dto.FromVendor(vendor)})
}

// List GET /vendors.
func (h *VendorsHandler) List(c *fiber.Ctx) error {
	actor, ok := auth.ActorFromContext(c)
	if !ok {
		return apperrors.NewUnauthorized("authentication required")
	}

	limit, offset := page(c)
	vendors, err := h.service.List(c.UserContext(), actor, repository.VendorFilter{
		SearchTerm:     optional(c, "search"),
		IncludeDeleted: includeDeleted(c, actor.IsHOD),
		Limit:          limit,
		Offset:         offset,
	})
	if err != nil {
		return err
	}

	items := make([]dto.VendorResponse, 0, len(vendors))
	for i := range vendors {
		items = append(items, dto.FromVendor(&vendors[i]))
	}
	return c.JSON(fiber.Map{"data": items})
}

// Get GET /vendors/:id.
func (h *VendorsHandler) Get(c *fiber.Ctx) error {
	actor, ok := auth.ActorFromContext(c)
	if !ok {
		return apperrors.NewUnauthorized("authentication required")
	}

	vendor, err := h.service.Get(c.UserContext(), actor, c.Params("id"))
	if err != nil {
		return err
	}
	return c.JSON(fiber.Map{"data": dto.FromVendor(vendor)})
}

// Update PATCH /vendors/:id.
func (h *VendorsHandler) Update(c *fiber.Ctx) error {
	actor, ok := auth.ActorFromContext(c)
	if !ok {
		return apperrors.NewUnauthorized("authentication required")
	}

	var req dto.VendorRequest
	if err := c.BodyParser(&req); err != nil {
		return apperrors.NewValidationError("invalid payload", nil)
	}

	vendor, err := h.service.Update(c.UserContext(), actor, c.Params("id"), service.VendorInput{
		Name:         req.Name,
		ContactEmail: req.ContactEmail,
		ContactPhone: req.ContactPhone,
		Address:      req.Address,
	})
	if err != nil {
		return err
	}
	return c.JSON(fiber.Map{"data": dto.FromVendor(vendor)})
}

// Delete DELETE /vendors/:id.
func (h *VendorsHandler) Delete(c *fiber.Ctx) error {
	actor, ok := auth.ActorFromContext(c)
	if !ok {
		return apperrors.NewUnauthorized("authentication required")
	}

	if err := h.service.SoftDelete(c.UserContext(), actor, c.Params("id")); err != nil {
		return err
	}
	return c.SendStatus(http.StatusNoContent)
}

// Restore POST /vendors/:id/restore.
func (h *VendorsHandler) Restore(c *fiber.Ctx) error {
	actor, ok := auth.ActorFromContext(c)
	if !ok {
		return apperrors.NewUnauthorized("authentication required")
	}

	vendor, err := h.service.Restore(c.UserContext(), actor, c.Params("id"))
	if err != nil {
		return err
	}
	return c.JSON(fiber.Map{"data": dto.FromVendor(vendor)})
}
