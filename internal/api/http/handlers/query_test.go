package handlers

import (
	"net/http/httptest"
	"testing"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// resolveIncludeDeleted routes a request through a real fiber context and
// reports what includeDeleted resolved to.
func resolveIncludeDeleted(t *testing.T, target string, isHOD bool) bool {
	t.Helper()
	app := fiber.New()
	var got bool
	app.Get("/items", func(c *fiber.Ctx) error {
		got = includeDeleted(c, isHOD)
		return c.SendStatus(fiber.StatusOK)
	})

	resp, err := app.Test(httptest.NewRequest("GET", target, nil))
	require.NoError(t, err)
	require.Equal(t, fiber.StatusOK, resp.StatusCode)
	return got
}

func TestIncludeDeletedRequiresHOD(t *testing.T) {
	// A non-HOD caller cannot opt into deleted rows no matter what they send.
	assert.False(t, resolveIncludeDeleted(t, "/items?include_deleted=true", false))
	assert.False(t, resolveIncludeDeleted(t, "/items", false))

	assert.True(t, resolveIncludeDeleted(t, "/items?include_deleted=true", true))
	assert.False(t, resolveIncludeDeleted(t, "/items?include_deleted=false", true))
	assert.False(t, resolveIncludeDeleted(t, "/items", true))
	assert.False(t, resolveIncludeDeleted(t, "/items?include_deleted=banana", true))
}

func TestPageReadsLimitAndOffset(t *testing.T) {
	app := fiber.New()
	var limit, offset int
	app.Get("/items", func(c *fiber.Ctx) error {
		limit, offset = page(c)
		return c.SendStatus(fiber.StatusOK)
	})

	resp, err := app.Test(httptest.NewRequest("GET", "/items?limit=35&offset=70", nil))
	require.NoError(t, err)
	require.Equal(t, fiber.StatusOK, resp.StatusCode)
	assert.Equal(t, 35, limit)
	assert.Equal(t, 70, offset)

	resp, err = app.Test(httptest.NewRequest("GET", "/items", nil))
	require.NoError(t, err)
	require.Equal(t, fiber.StatusOK, resp.StatusCode)
	assert.Equal(t, 20, limit)
	assert.Equal(t, 0, offset)
}

func TestOptionalQueryParam(t *testing.T) {
	app := fiber.New()
	var search *string
	app.Get("/items", func(c *fiber.Ctx) error {
		// copy out: query strings are only valid inside the handler
		search = nil
		if v := optional(c, "search"); v != nil {
			copied := *v
			search = &copied
		}
		return c.SendStatus(fiber.StatusOK)
	})

	resp, err := app.Test(httptest.NewRequest("GET", "/items?search=pump", nil))
	require.NoError(t, err)
	require.Equal(t, fiber.StatusOK, resp.StatusCode)
	require.NotNil(t, search)
	assert.Equal(t, "pump", *search)

	resp, err = app.Test(httptest.NewRequest("GET", "/items", nil))
	require.NoError(t, err)
	require.Equal(t, fiber.StatusOK, resp.StatusCode)
	assert.Nil(t, search)
}
