package auth

import (
	"errors"
	"strings"

	"github.com/gofiber/fiber/v2"
	"github.com/jackc/pgx/v5"

	"github.com/girmesh03/Task-Manager-V19/internal/authz"
	"github.com/girmesh03/Task-Manager-V19/internal/domain"
	"github.com/girmesh03/Task-Manager-V19/internal/repository"
	"github.com/girmesh03/Task-Manager-V19/pkg/util"
)

const actorContextKey = "actorContext"

// Extractor builds the per-request actor context. Every protected route runs
// through it: token → fresh user/org/department lookups → tombstone checks →
// normalized authz.Context in Locals. The token carries only the actor id,
// so a deactivation takes effect on the next request.
type Extractor struct {
	tokens        *TokenManager
	users         repository.UserRepository
	orgs          repository.OrganizationRepository
	depts         repository.DepartmentRepository
	cookieName    string
	platformOrgID string
}

// NewExtractor wires the extractor middleware. platformOrgID optionally pins
// the reserved platform tenant by id in addition to the is_platform flag.
func NewExtractor(tokens *TokenManager, users repository.UserRepository, orgs repository.OrganizationRepository, depts repository.DepartmentRepository, cookieName, platformOrgID string) *Extractor {
	return &Extractor{
		tokens:        tokens,
		users:         users,
		orgs:          orgs,
		depts:         depts,
		cookieName:    cookieName,
		platformOrgID: platformOrgID,
	}
}

// Middleware returns the fiber handler.
func (e *Extractor) Middleware() fiber.Handler {
	return func(c *fiber.Ctx) error {
		token := e.tokenFrom(c)
		if token == "" {
			return util.NewUnauthorized("missing access token")
		}

		claims, err := e.tokens.ParseToken(token)
		if err != nil {
			return util.NewUnauthorized("invalid or expired access token")
		}

		ctx := c.UserContext()

		user, err := e.users.GetByIDAny(ctx, claims.ActorID)
		if err != nil {
			if errors.Is(err, pgx.ErrNoRows) {
				return util.NewUnauthorized("unknown actor")
			}
			return util.NewInternalError(err)
		}
		if user.Deleted() {
			return util.NewAccountDeactivated()
		}

		org, err := e.orgs.GetByIDAny(ctx, user.OrganizationID)
		if err != nil {
			if errors.Is(err, pgx.ErrNoRows) {
				return util.NewAccountDeactivated()
			}
			return util.NewInternalError(err)
		}
		if org.Deleted() {
			return util.NewAccountDeactivated()
		}

		dept, err := e.depts.GetByIDAny(ctx, user.DepartmentID)
		if err != nil {
			if errors.Is(err, pgx.ErrNoRows) {
				return util.NewAccountDeactivated()
			}
			return util.NewInternalError(err)
		}
		if dept.Deleted() {
			return util.NewAccountDeactivated()
		}

		actor := authz.Context{
			ActorID:         user.ID,
			TenantID:        user.OrganizationID,
			SubtenantID:     user.DepartmentID,
			Role:            user.Role,
			IsHOD:           user.Role.IsHOD(),
			IsPlatformAdmin: e.isPlatformOrg(org),
		}
		c.Locals(actorContextKey, actor)
		return c.Next()
	}
}

func (e *Extractor) isPlatformOrg(org *domain.Organization) bool {
	if org.IsPlatform {
		return true
	}
	return e.platformOrgID != "" && org.ID == e.platformOrgID
}

func (e *Extractor) tokenFrom(c *fiber.Ctx) string {
	if cookie := c.Cookies(e.cookieName); cookie != "" {
		return cookie
	}
	// Bearer fallback for non-browser clients.
	header := c.Get(fiber.HeaderAuthorization)
	if strings.HasPrefix(header, "Bearer ") {
		return strings.TrimPrefix(header, "Bearer ")
	}
	return ""
}

// ActorFromContext returns the actor stored by the extractor. The boolean is
// false on unauthenticated routes.
func ActorFromContext(c *fiber.Ctx) (authz.Context, bool) {
	actor, ok := c.Locals(actorContextKey).(authz.Context)
	return actor, ok
}

// RequireHOD gates routes reserved for the head-of-department tier.
func RequireHOD() fiber.Handler {
	return func(c *fiber.Ctx) error {
		actor, ok := ActorFromContext(c)
		if !ok {
			return util.NewUnauthorized("missing access token")
		}
		if !actor.IsHOD {
			return util.NewForbidden()
		}
		return c.Next()
	}
}
