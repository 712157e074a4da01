package handlers

import (
	"strconv"

	"github.com/gofiber/fiber/v2"
)

// page reads limit/offset query params with sane bounds.
func page(c *fiber.Ctx) (int, int) {
	limit, _ := strconv.Atoi(c.Query("limit", "20"))
	offset, _ := strconv.Atoi(c.Query("offset", "0"))
	return limit, offset
}

// includeDeleted is honored only for head-of-department callers; everyone
// else always gets the default active-only view.
func includeDeleted(c *fiber.Ctx, isHOD bool) bool {
	if !isHOD {
		return false
	}
	v, _ := strconv.ParseBool(c.Query("include_deleted", "false"))
	return v
}

// optional returns a pointer to the query value when present.
func optional(c *fiber.Ctx, key string) *string {
	v := c.Query(key)
	if v == "" {
		return nil
	}
	return &v
}
