package handlers

import (
	"net/http"

	"github.com/gofiber/fiber/v2"

	"github.com/girmesh03/Task-Manager-V19/internal/api/dto"
	"github.com/girmesh03/Task-Manager-V19/internal/auth"
	"github.com/girmesh03/Task-Manager-V19/internal/domain"
	"github.com/girmesh03/Task-Manager-V19/internal/repository"
	"github.com/girmesh03/Task-Manager-V19/internal/service"
	apperrors "github.com/girmesh03/Task-Manager-V19/pkg/util"
)

// TasksHandler serves task endpoints plus the nested activity, comment, and
// attachment collections.
type TasksHandler struct {
	service *service.TaskService
}

// NewTasksHandler constructs handler.
func NewTasksHandler(taskService *service.TaskService) *TasksHandler {
	return &TasksHandler{service: taskService}
}

// Create POST /tasks.
func (h *TasksHandler) Create(c *fiber.Ctx) error {
	actor, ok := auth.ActorFromContext(c)
	if !ok {
		return apperrors.NewUnauthorized("authentication required")
	}

	var req dto.CreateTaskRequest
	if err := c.BodyParser(&req); err != nil {
		return apperrors.NewValidationError("invalid payload", nil)
	}
	if req.DepartmentID == "" {
		req.DepartmentID = actor.SubtenantID
	}

	task, err := h.service.Create(c.UserContext(), actor, service.CreateTaskInput{
		DepartmentID: req.DepartmentID,
		Title:        req.Title,
		Description:  req.Description,
		DueDate:      req.DueDate,
		Variant:      req.Variant,
		Routine:      req.Routine,
		Assigned:     req.Assigned,
		Project:      req.Project,
	})
	if err != nil {
		return err
	}
	return c.Status(http.StatusCreated).JSON(fiber.Map{"data": dto.FromTask(task)})
}

// List GET /tasks.
func (h *TasksHandler) List(c *fiber.Ctx) error {
	actor, ok := auth.ActorFromContext(c)
	if !ok {
		return apperrors.NewUnauthorized("authentication required")
	}

	limit, offset := page(c)
	filter := repository.TaskFilter{
		DepartmentID:   optional(c, "department_id"),
		CreatedBy:      optional(c, "created_by"),
		SearchTerm:     optional(c, "search"),
		IncludeDeleted: includeDeleted(c, actor.IsHOD),
		Limit:          limit,
		Offset:         offset,
	}
	if status := c.Query("status"); status != "" {
		st := domain.TaskStatus(status)
		filter.Status = &st
	}
	if variant := c.Query("variant"); variant != "" {
		v := domain.TaskVariant(variant)
		filter.Variant = &v
	}

	tasks, err := h.service.List(c.UserContext(), actor, filter)
	if err != nil {
		return err
	}

	items := make([]dto.TaskResponse, 0, len(tasks))
	for i := range tasks {
		items = append(items, dto.FromTask(&tasks[i]))
	}
	return c.JSON(fiber.Map{"data": items})
}

// Get GET /tasks/:id.
func (h *TasksHandler) Get(c *fiber.Ctx) error {
	actor, ok := auth.ActorFromContext(c)
	if !ok {
		return apperrors.NewUnauthorized("authentication required")
	}

	task, err := h.service.Get(c.UserContext(), actor, c.Params("id"))
	if err != nil {
		return err
	}
	return c.JSON(fiber.Map{"data": dto.FromTask(task)})
}

// Update PATCH /tasks/:id.
func (h *TasksHandler) Update(c *fiber.Ctx) error {
	actor, ok := auth.ActorFromContext(c)
	if !ok {
		return apperrors.NewUnauthorized("authentication required")
	}

	var req dto.UpdateTaskRequest
	if err := c.BodyParser(&req); err != nil {
		return apperrors.NewValidationError("invalid payload", nil)
	}

	task, err := h.service.Update(c.UserContext(), actor, c.Params("id"), service.UpdateTaskInput{
		Title:       req.Title,
		Description: req.Description,
		DueDate:     req.DueDate,
		Routine:     req.Routine,
		Assigned:    req.Assigned,
		Project:     req.Project,
	})
	if err != nil {
		return err
	}
	return c.JSON(fiber.Map{"data": dto.FromTask(task)})
}

// ChangeStatus PATCH /tasks/:id/status.
func (h *TasksHandler) ChangeStatus(c *fiber.Ctx) error {
	actor, ok := auth.ActorFromContext(c)
	if !ok {
		return apperrors.NewUnauthorized("authentication required")
	}

	var req dto.ChangeTaskStatusRequest
	if err := c.BodyParser(&req); err != nil {
		return apperrors.NewValidationError("invalid payload", nil)
	}

	task, err := h.service.ChangeStatus(c.UserContext(), actor, c.Params("id"), service.ChangeTaskStatusInput{
		Status: req.Status,
		Notes:  req.Notes,
	})
	if err != nil {
		return err
	}
	return c.JSON(fiber.Map{"data": dto.FromTask(task)})
}

// Delete DELETE /tasks/:id. Soft delete; cascades to activities, comments,
// and attachments.
func (h *TasksHandler) Delete(c *fiber.Ctx) error {
	actor, ok := auth.ActorFromContext(c)
	if !ok {
		return apperrors.NewUnauthorized("authentication required")
	}

	if err := h.service.SoftDelete(c.UserContext(), actor, c.Params("id")); err != nil {
		return err
	}
	return c.SendStatus(http.StatusNoContent)
}

// Restore POST /tasks/:id/restore.
func (h *TasksHandler) Restore(c *fiber.Ctx) error {
	actor, ok := auth.ActorFromContext(c)
	if !ok {
		return apperrors.NewUnauthorized("authentication required")
	}

	task, err := h.service.Restore(c.UserContext(), actor, c.Params("id"))
	if err != nil {
		return err
	}
	return c.JSON(fiber.Map{"data": dto.FromTask(task)})
}

// AddActivity POST /tasks/:id/activities.
func (h *TasksHandler) AddActivity(c *fiber.Ctx) error {
	actor, ok := auth.ActorFromContext(c)
	if !ok {
		return apperrors.NewUnauthorized("authentication required")
	}

	var req dto.TaskActivityRequest
	if err := c.BodyParser(&req); err != nil {
		return apperrors.NewValidationError("invalid payload", nil)
	}

	activity, err := h.service.AddActivity(c.UserContext(), actor, c.Params("id"), req.Notes)
	if err != nil {
		return err
	}
	return c.Status(http.StatusCreated).JSON(fiber.Map{"data": dto.FromTaskActivity(activity)})
}

// ListActivities GET /tasks/:id/activities.
func (h *TasksHandler) ListActivities(c *fiber.Ctx) error {
	actor, ok := auth.ActorFromContext(c)
	if !ok {
		return apperrors.NewUnauthorized("authentication required")
	}

	limit, offset := page(c)
	activities, err := h.service.ListActivities(c.UserContext(), actor, c.Params("id"), repository.TaskActivityFilter{
		IncludeDeleted: includeDeleted(c, actor.IsHOD),
		Limit:          limit,
		Offset:         offset,
	})
	if err != nil {
		return err
	}

	items := make([]dto.TaskActivityResponse, 0, len(activities))
	for i := range activities {
		items = append(items, dto.FromTaskActivity(&activities[i]))
	}
	return c.JSON(fiber.Map{"data": items})
}

// UpdateActivity PATCH /tasks/activities/:activityId.
func (h *TasksHandler) UpdateActivity(c *fiber.Ctx) error {
	actor, ok := auth.ActorFromContext(c)
	if !ok {
		return apperrors.NewUnauthorized("authentication required")
	}

	var req dto.TaskActivityRequest
	if err := c.BodyParser(&req); err != nil {
		return apperrors.NewValidationError("invalid payload", nil)
	}

	activity, err := h.service.UpdateActivity(c.UserContext(), actor, c.Params("activityId"), req.Notes)
	if err != nil {
		return err
	}
	return c.JSON(fiber.Map{"data": dto.FromTaskActivity(activity)})
}

// DeleteActivity DELETE /tasks/activities/:activityId.
func (h *TasksHandler) DeleteActivity(c *fiber.Ctx) error {
	actor, ok := auth.ActorFromContext(c)
	if !ok {
		return apperrors.NewUnauthorized("authentication required")
	}

	if err := h.service.DeleteActivity(c.UserContext(), actor, c.Params("activityId")); err != nil {
		return err
	}
	return c.SendStatus(http.StatusNoContent)
}

// AddComment POST /tasks/:id/comments.
func (h *TasksHandler) AddComment(c *fiber.Ctx) error {
	actor, ok := auth.ActorFromContext(c)
	if !ok {
		return apperrors.NewUnauthorized("authentication required")
	}

	var req dto.TaskCommentRequest
	if err := c.BodyParser(&req); err != nil {
		return apperrors.NewValidationError("invalid payload", nil)
	}

	comment, err := h.service.AddComment(c.UserContext(), actor, c.Params("id"), req.Body)
	if err != nil {
		return err
	}
	return c.Status(http.StatusCreated).JSON(fiber.Map{"data": dto.FromTaskComment(comment)})
}

// ListComments GET /tasks/:id/comments.
func (h *TasksHandler) ListComments(c *fiber.Ctx) error {
	actor, ok := auth.ActorFromContext(c)
	if !ok {
		return apperrors.NewUnauthorized("authentication required")
	}

	limit, offset := page(c)
	comments, err := h.service.ListComments(c.UserContext(), actor, c.Params("id"), repository.TaskCommentFilter{
		IncludeDeleted: includeDeleted(c, actor.IsHOD),
		Limit:          limit,
		Offset:         offset,
	})
	if err != nil {
		return err
	}

	items := make([]dto.TaskCommentResponse, 0, len(comments))
	for i := range comments {
		items = append(items, dto.FromTaskComment(&comments[i]))
	}
	return c.JSON(fiber.Map{"data": items})
}

// UpdateComment PATCH /tasks/comments/:commentId.
func (h *TasksHandler) UpdateComment(c *fiber.Ctx) error {
	actor, ok := auth.ActorFromContext(c)
	if !ok {
		return apperrors.NewUnauthorized("authentication required")
	}

	var req dto.TaskCommentRequest
	if err := c.BodyParser(&req); err != nil {
		return apperrors.NewValidationError("invalid payload", nil)
	}

	comment, err := h.service.UpdateComment(c.UserContext(), actor, c.Params("commentId"), req.Body)
	if err != nil {
		return err
	}
	return c.JSON(fiber.Map{"data": dto.FromTaskComment(comment)})
}

// DeleteComment DELETE /tasks/comments/:commentId.
func (h *TasksHandler) DeleteComment(c *fiber.Ctx) error {
	actor, ok := auth.ActorFromContext(c)
	if !ok {
		return apperrors.NewUnauthorized("authentication required")
	}

	if err := h.service.DeleteComment(c.UserContext(), actor, c.Params("commentId")); err != nil {
		return err
	}
	return c.SendStatus(http.StatusNoContent)
}

// AddAttachment POST /tasks/:id/attachments.
func (h *TasksHandler) AddAttachment(c *fiber.Ctx) error {
	actor, ok := auth.ActorFromContext(c)
	if !ok {
		return apperrors.NewUnauthorized("authentication required")
	}

	var req dto.AttachmentRequest
	if err := c.BodyParser(&req); err != nil {
		return apperrors.NewValidationError("invalid payload", nil)
	}

	attachment, err := h.service.AddAttachment(c.UserContext(), actor, c.Params("id"), service.AttachmentInput{
		StorageKey: req.StorageKey,
		FileName:   req.FileName,
		MimeType:   req.MimeType,
		SizeBytes:  req.SizeBytes,
	})
	if err != nil {
		return err
	}
	return c.Status(http.StatusCreated).JSON(fiber.Map{"data": dto.FromAttachment(attachment)})
}

// ListAttachments GET /tasks/:id/attachments.
func (h *TasksHandler) ListAttachments(c *fiber.Ctx) error {
	actor, ok := auth.ActorFromContext(c)
	if !ok {
		return apperrors.NewUnauthorized("authentication required")
	}

	limit, offset := page(c)
	attachments, err := h.service.ListAttachments(c.UserContext(), actor, c.Params("id"), repository.AttachmentFilter{
		IncludeDeleted: includeDeleted(c, actor.IsHOD),
		Limit:          limit,
		Offset:         offset,
	})
	if err != nil {
		return err
	}

	items := make([]dto.AttachmentResponse, 0, len(attachments))
	for i := range attachments {
		items = append(items, dto.FromAttachment(&attachments[i]))
	}
	return c.JSON(fiber.Map{"data": items})
}

// DeleteAttachment DELETE /tasks/attachments/:attachmentId.
func (h *TasksHandler) DeleteAttachment(c *fiber.Ctx) error {
	actor, ok := auth.ActorFromContext(c)
	if !ok {
		return apperrors.NewUnauthorized("authentication required")
	}

	if err := h.service.DeleteAttachment(c.UserContext(), actor, c.Params("attachmentId")); err != nil {
		return err
	}
	return c.SendStatus(http.StatusNoContent)
}
