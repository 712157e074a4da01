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

// MaterialsHandler serves stock item endpoints.
type MaterialsHandler struct {
	service *service.MaterialService
}

// NewMaterialsHandler constructs handler.
func NewMaterialsHandler(materialService *service.MaterialService) *MaterialsHandler {
	return &MaterialsHandler{service: materialService}
}

// Create POST /materials.
func (h *MaterialsHandler) Create(c *fiber.Ctx) error {
	actor, ok := auth.ActorFromContext(c)
	if !ok {
		return apperrors.NewUnauthorized("authentication required")
	}

	var req dto.MaterialRequest
	if err := c.BodyParser(&req); err != nil {
		return apperrors.NewValidationError("invalid payload", nil)
	}
	if req.DepartmentID == "" {
		req.DepartmentID = actor.SubtenantID
	}

	material, err := h.service.Create(c.UserContext(), actor, service.MaterialInput{
		DepartmentID: req.DepartmentID,
		Name:         req.Name,
		Unit:         req.Unit,
		Quantity:     req.Quantity,
	})
	if err != nil {
		return err
	}
	return c.Status(http.StatusCreated).JSON(fiber.Map{"data": dto.FromMaterial(material)})
}

// List GET /materials.
func (h *MaterialsHandler) List(c *fiber.Ctx) error {
	actor, ok := auth.ActorFromContext(c)
	if !ok {
		return apperrors.NewUnauthorized("authentication required")
	}

	limit, offset := page(c)
	materials, err := h.service.List(c.UserContext(), actor, repository.MaterialFilter{
		DepartmentID:   optional(c, "department_id"),
		SearchTerm:     optional(c, "search"),
		IncludeDeleted: includeDeleted(c, actor.IsHOD),
		Limit:          limit,
		Offset:         offset,
	})
	if err != nil {
		return err
	}

	items := make([]dto.MaterialResponse, 0, len(materials))
	for i := range materials {
		items = append(items, dto.FromMaterial(&materials[i]))
	}
	return c.JSON(fiber.Map{"data": items})
}

// Get GET /materials/:id.
func (h *MaterialsHandler) Get(c *fiber.Ctx) error {
	actor, ok := auth.ActorFromContext(c)
	if !ok {
		return apperrors.NewUnauthorized("authentication required")
	}

	material, err := h.service.Get(c.UserContext(), actor, c.Params("id"))
	if err != nil {
		return err
	}
	return c.JSON(fiber.Map{"data": dto.FromMaterial(material)})
}

// Update PATCH /materials/:id.
func (h *MaterialsHandler) Update(c *fiber.Ctx) error {
	actor, ok := auth.ActorFromContext(c)
	if !ok {
		return apperrors.NewUnauthorized("authentication required")
	}

	var req dto.MaterialRequest
	if err := c.BodyParser(&req); err != nil {
		return apperrors.NewValidationError("invalid payload", nil)
	}

	material, err := h.service.Update(c.UserContext(), actor, c.Params("id"), service.MaterialInput{
		DepartmentID: req.DepartmentID,
		Name:         req.Name,
		Unit:         req.Unit,
		Quantity:     req.Quantity,
	})
	if err != nil {
		return err
	}
	return c.JSON(fiber.Map{"data": dto.FromMaterial(material)})
}

// Delete DELETE /materials/:id.
func (h *MaterialsHandler) Delete(c *fiber.Ctx) error {
	actor, ok := auth.ActorFromContext(c)
	if !ok {
		return apperrors.NewUnauthorized("authentication required")
	}

	if err := h.service.SoftDelete(c.UserContext(), actor, c.Params("id")); err != nil {
		return err
	}
	return c.SendStatus(http.StatusNoContent)
}

// Restore POST /materials/:id/restore.
func (h *MaterialsHandler) Restore(c *fiber.Ctx) error {
	actor, ok := auth.ActorFromContext(c)
	if !ok {
		return apperrors.NewUnauthorized("authentication required")
	}

	material, err := h.service.Restore(c.UserContext(), actor, c.Params("id"))
	if err != nil {
		return err
	}
	return c.JSON(fiber.Map{"data": dto.FromMaterial(material)})
}
