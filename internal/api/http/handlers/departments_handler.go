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

// DepartmentsHandler serves department endpoints.
type DepartmentsHandler struct {
	service *service.DepartmentService
}

// NewDepartmentsHandler constructs handler.
func NewDepartmentsHandler(deptService *service.DepartmentService) *DepartmentsHandler {
	return &DepartmentsHandler{service: deptService}
}

// Create POST /departments.
func (h *DepartmentsHandler) Create(c *fiber.Ctx) error {
	actor, ok := auth.ActorFromContext(c)
	if !ok {
		return apperrors.NewUnauthorized("authentication required")
	}

	var req dto.DepartmentRequest
	if err := c.BodyParser(&req); err != nil {
		return apperrors.NewValidationError("invalid payload", nil)
	}

	dept, err := h.service.Create(c.UserContext(), actor, service.DepartmentInput{
		Name:        req.Name,
		Description: req.Description,
	})
	if err != nil {
		return err
	}
	return c.Status(http.StatusCreated).JSON(fiber.Map{"data": dto.FromDepartment(dept)})
}

// List GET /departments.
func (h *DepartmentsHandler) List(c *fiber.Ctx) error {
	actor, ok := auth.ActorFromContext(c)
	if !ok {
		return apperrors.NewUnauthorized("authentication required")
	}

	limit, offset := page(c)
	depts, err := h.service.List(c.UserContext(), actor, repository.DepartmentFilter{
		SearchTerm:     optional(c, "search"),
		IncludeDeleted: includeDeleted(c, actor.IsHOD),
		Limit:          limit,
		Offset:         offset,
	})
	if err != nil {
		return err
	}

	items := make([]dto.DepartmentResponse, 0, len(depts))
	for i := range depts {
		items = append(items, dto.FromDepartment(&depts[i]))
	}
	return c.JSON(fiber.Map{"data": items})
}

// Get GET /departments/:id.
func (h *DepartmentsHandler) Get(c *fiber.Ctx) error {
	actor, ok := auth.ActorFromContext(c)
	if !ok {
		return apperrors.NewUnauthorized("authentication required")
	}

	dept, err := h.service.Get(c.UserContext(), actor, c.Params("id"))
	if err != nil {
		return err
	}
	return c.JSON(fiber.Map{"data": dto.FromDepartment(dept)})
}

// Update PATCH /departments/:id.
func (h *DepartmentsHandler) Update(c *fiber.Ctx) error {
	actor, ok := auth.ActorFromContext(c)
	if !ok {
		return apperrors.NewUnauthorized("authentication required")
	}

	var req dto.DepartmentRequest
	if err := c.BodyParser(&req); err != nil {
		return apperrors.NewValidationError("invalid payload", nil)
	}

	dept, err := h.service.Update(c.UserContext(), actor, c.Params("id"), service.DepartmentInput{
		Name:        req.Name,
		Description: req.Description,
	})
	if err != nil {
		return err
	}
	return c.JSON(fiber.Map{"data": dto.FromDepartment(dept)})
}

// Delete DELETE /departments/:id. Soft delete; cascades to members, tasks,
// and materials.
func (h *DepartmentsHandler) Delete(c *fiber.Ctx) error {
	actor, ok := auth.ActorFromContext(c)
	if !ok {
		return apperrors.NewUnauthorized("authentication required")
	}

	if err := h.service.SoftDelete(c.UserContext(), actor, c.Params("id")); err != nil {
		return err
	}
	return c.SendStatus(http.StatusNoContent)
}

// Restore POST /departments/:id/restore.
func (h *DepartmentsHandler) Restore(c *fiber.Ctx) error {
	actor, ok := auth.ActorFromContext(c)
	if !ok {
		return apperrors.NewUnauthorized("authentication required")
	}

	dept, err := h.service.Restore(c.UserContext(), actor, c.Params("id"))
	if err != nil {
		return err
	}
	return c.JSON(fiber.Map{"data": dto.FromDepartment(dept)})
}
