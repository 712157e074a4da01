package handlers

import (
	"net/http"
	"strconv"

	"github.com/gofiber/fiber/v2"

	"github.com/girmesh03/Task-Manager-V19/internal/api/dto"
	"github.com/girmesh03/Task-Manager-V19/internal/auth"
	"github.com/girmesh03/Task-Manager-V19/internal/repository"
	"github.com/girmesh03/Task-Manager-V19/internal/service"
	apperrors "github.com/girmesh03/Task-Manager-V19/pkg/util"
)

// OrganizationsHandler serves tenant endpoints.
type OrganizationsHandler struct {
	service *service.OrganizationService
}

// NewOrganizationsHandler constructs handler.
func NewOrganizationsHandler(orgService *service.OrganizationService) *OrganizationsHandler {
	return &OrganizationsHandler{service: orgService}
}

// List GET /organizations. Platform-only.
func (h *OrganizationsHandler) List(c *fiber.Ctx) error {
	actor, ok := auth.ActorFromContext(c)
	if !ok {
		return apperrors.NewUnauthorized("authentication required")
	}

	limit, offset := page(c)
	filter := repository.OrganizationFilter{
		SearchTerm:     optional(c, "search"),
		IncludeDeleted: includeDeleted(c, actor.IsHOD),
		Limit:          limit,
		Offset:         offset,
	}
	orgs, err := h.service.List(c.UserContext(), actor, filter)
	if err != nil {
		return err
	}

	items := make([]dto.OrganizationResponse, 0, len(orgs))
	for i := range orgs {
		items = append(items, dto.FromOrganization(&orgs[i]))
	}
	return c.JSON(fiber.Map{"data": items})
}

// Get GET /organizations/:id.
func (h *OrganizationsHandler) Get(c *fiber.Ctx) error {
	actor, ok := auth.ActorFromContext(c)
	if !ok {
		return apperrors.NewUnauthorized("authentication required")
	}

	org, err := h.service.Get(c.UserContext(), actor, c.Params("id"))
	if err != nil {
		return err
	}
	return c.JSON(fiber.Map{"data": dto.FromOrganization(org)})
}

// Update PATCH /organizations/:id.
func (h *OrganizationsHandler) Update(c *fiber.Ctx) error {
	actor, ok := auth.ActorFromContext(c)
	if !ok {
		return apperrors.NewUnauthorized("authentication required")
	}

	var req dto.UpdateOrganizationRequest
	if err := c.BodyParser(&req); err != nil {
		return apperrors.NewValidationError("invalid payload", nil)
	}

	org, err := h.service.Update(c.UserContext(), actor, c.Params("id"), service.UpdateOrganizationInput{
		Name:     req.Name,
		Industry: req.Industry,
	})
	if err != nil {
		return err
	}
	return c.JSON(fiber.Map{"data": dto.FromOrganization(org)})
}

// Delete DELETE /organizations/:id. Soft delete; cascades tenant-wide.
func (h *OrganizationsHandler) Delete(c *fiber.Ctx) error {
	actor, ok := auth.ActorFromContext(c)
	if !ok {
		return apperrors.NewUnauthorized("authentication required")
	}

	if err := h.service.SoftDelete(c.UserContext(), actor, c.Params("id")); err != nil {
		return err
	}
	return c.SendStatus(http.StatusNoContent)
}

// Restore POST /organizations/:id/restore.
func (h *OrganizationsHandler) Restore(c *fiber.Ctx) error {
	actor, ok := auth.ActorFromContext(c)
	if !ok {
		return apperrors.NewUnauthorized("authentication required")
	}

	org, err := h.service.Restore(c.UserContext(), actor, c.Params("id"))
	if err != nil {
		return err
	}
	return c.JSON(fiber.Map{"data": dto.FromOrganization(org)})
}

// Purge DELETE /organizations/:id/purge. Rejected without the explicit
// bypass flag; the retention sweep is the sanctioned path.
func (h *OrganizationsHandler) Purge(c *fiber.Ctx) error {
	actor, ok := auth.ActorFromContext(c)
	if !ok {
		return apperrors.NewUnauthorized("authentication required")
	}

	bypass, _ := strconv.ParseBool(c.Query("bypass_guard", "false"))
	if err := h.service.HardDelete(c.UserContext(), actor, c.Params("id"), bypass); err != nil {
		return err
	}
	return c.SendStatus(http.StatusNoContent)
}
