package service

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"go.uber.org/zap"

	"github.com/girmesh03/Task-Manager-V19/internal/auth"
	"github.com/girmesh03/Task-Manager-V19/internal/config"
	"github.com/girmesh03/Task-Manager-V19/internal/domain"
	"github.com/girmesh03/Task-Manager-V19/internal/repository"
	"github.com/girmesh03/Task-Manager-V19/pkg/util"
)

// RegisterInput bootstraps a new tenant: organization, first department, and
// the founding SUPER_ADMIN in one step.
type RegisterInput struct {
	OrganizationName string
	Industry         string
	DepartmentName   string
	FirstName        string
	LastName         string
	Email            string
	Password         string
	Position         string
}

// LoginInput carries credentials.
type LoginInput struct {
	Email    string
	Password string
}

// Session is the issued authentication state.
type Session struct {
	Token     string
	ExpiresAt time.Time
	User      *domain.User
}

// AuthService implements registration, login, and the password reset flow.
type AuthService struct {
	users      repository.UserRepository
	orgs       repository.OrganizationRepository
	depts      repository.DepartmentRepository
	resets     repository.PasswordResetRepository
	tokens     *auth.TokenManager
	authConfig config.AuthConfig
	logger     *zap.Logger
}

// NewAuthService wires the service.
func NewAuthService(
	users repository.UserRepository,
	orgs repository.OrganizationRepository,
	depts repository.DepartmentRepository,
	resets repository.PasswordResetRepository,
	tokens *auth.TokenManager,
	authConfig config.AuthConfig,
	logger *zap.Logger,
) *AuthService {
	return &AuthService{
		users:      users,
		orgs:       orgs,
		depts:      depts,
		resets:     resets,
		tokens:     tokens,
		authConfig: authConfig,
		logger:     logger,
	}
}

// Register creates the organization, its first department, and the founding
// SUPER_ADMIN actor. Open to unauthenticated callers.
func (s *AuthService) Register(ctx context.Context, input RegisterInput) (*Session, error) {
	if err := validateRegister(input); err != nil {
		return nil, err
	}

	taken, err := s.orgs.ExistsActiveName(ctx, input.OrganizationName, "")
	if err != nil {
		return nil, util.MapError(err)
	}
	if taken {
		return nil, util.NewConflict("organization name already in use", map[string]any{"name": input.OrganizationName})
	}

	org := &domain.Organization{
		Name:     strings.TrimSpace(input.OrganizationName),
		Industry: strings.TrimSpace(input.Industry),
	}
	if err := s.orgs.Create(ctx, org); err != nil {
		return nil, util.MapError(err)
	}

	dept := &domain.Department{
		OrganizationID: org.ID,
		Name:           strings.TrimSpace(input.DepartmentName),
	}
	if err := s.depts.Create(ctx, dept); err != nil {
		return nil, util.MapError(err)
	}

	hash, err := auth.HashPassword(input.Password, s.authConfig.BcryptCost)
	if err != nil {
		return nil, util.NewInternalError(err)
	}

	user := &domain.User{
		OrganizationID: org.ID,
		DepartmentID:   dept.ID,
		FirstName:      strings.TrimSpace(input.FirstName),
		LastName:       strings.TrimSpace(input.LastName),
		Email:          normalizeEmail(input.Email),
		PasswordHash:   hash,
		Role:           domain.RoleSuperAdmin,
		Position:       strings.TrimSpace(input.Position),
	}
	if err := s.users.Create(ctx, user); err != nil {
		return nil, util.MapError(err)
	}

	s.logger.Info("tenant registered",
		zap.String("organization_id", org.ID),
		zap.String("user_id", user.ID))

	return s.issueSession(user)
}

// Login verifies credentials against the active users holding the email.
// Email is unique per organization, not globally, so the same address may
// exist in several tenants; the password picks the matching account. A
// tombstoned user, department, or organization cannot log in.
func (s *AuthService) Login(ctx context.Context, input LoginInput) (*Session, error) {
	candidates, err := s.users.ListActiveByEmail(ctx, normalizeEmail(input.Email))
	if err != nil {
		return nil, util.MapError(err)
	}

	var user *domain.User
	for i := range candidates {
		if auth.ComparePassword(candidates[i].PasswordHash, input.Password) == nil {
			user = &candidates[i]
			break
		}
	}
	if user == nil {
		return nil, util.NewUnauthorized("invalid credentials")
	}

	org, err := s.orgs.GetByIDAny(ctx, user.OrganizationID)
	if err != nil {
		return nil, util.MapError(err)
	}
	dept, err := s.depts.GetByIDAny(ctx, user.DepartmentID)
	if err != nil {
		return nil, util.MapError(err)
	}
	if org.Deleted() || dept.Deleted() {
		return nil, util.NewAccountDeactivated()
	}

	return s.issueSession(user)
}

// RequestPasswordReset issues a single-use token for every active account
// holding the email, one per tenant. To avoid account enumeration an unknown
// email is not an error; no token is created.
func (s *AuthService) RequestPasswordReset(ctx context.Context, email string) ([]repository.PasswordResetToken, error) {
	users, err := s.users.ListActiveByEmail(ctx, normalizeEmail(email))
	if err != nil {
		return nil, util.MapError(err)
	}

	expiresAt := time.Now().UTC().Add(time.Duration(s.authConfig.PasswordResetTTLMinutes) * time.Minute)
	var resets []repository.PasswordResetToken
	for i := range users {
		reset := repository.PasswordResetToken{
			UserID:    users[i].ID,
			Token:     uuid.NewString(),
			ExpiresAt: expiresAt,
		}
		if err := s.resets.Create(ctx, &reset); err != nil {
			return nil, util.MapError(err)
		}
		resets = append(resets, reset)
	}
	return resets, nil
}

// ResetPassword consumes a reset token and replaces the user's password.
func (s *AuthService) ResetPassword(ctx context.Context, token, newPassword string) error {
	if len(newPassword) < 8 {
		return util.NewValidationError("password must be at least 8 characters", nil)
	}

	reset, err := s.resets.GetActiveByToken(ctx, token)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return util.NewUnauthorized("invalid or expired reset token")
		}
		return util.MapError(err)
	}

	hash, err := auth.HashPassword(newPassword, s.authConfig.BcryptCost)
	if err != nil {
		return util.NewInternalError(err)
	}
	if err := s.users.UpdatePassword(ctx, reset.UserID, hash); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return util.NewAccountDeactivated()
		}
		return util.MapError(err)
	}
	return s.resets.MarkUsed(ctx, reset.ID)
}

func (s *AuthService) issueSession(user *domain.User) (*Session, error) {
	token, expiresAt, err := s.tokens.GenerateToken(user.ID)
	if err != nil {
		return nil, util.NewInternalError(err)
	}
	return &Session{Token: token, ExpiresAt: expiresAt, User: user}, nil
}

func validateRegister(input RegisterInput) error {
	details := map[string]any{}
	if strings.TrimSpace(input.OrganizationName) == "" {
		details["organization_name"] = "required"
	}
	if strings.TrimSpace(input.DepartmentName) == "" {
		details["department_name"] = "required"
	}
	if strings.TrimSpace(input.FirstName) == "" {
		details["first_name"] = "required"
	}
	if normalizeEmail(input.Email) == "" {
		details["email"] = "required"
	}
	if len(input.Password) < 8 {
		details["password"] = "must be at least 8 characters"
	}
	if strings.TrimSpace(input.Position) == "" {
		details["position"] = "required"
	}
	if len(details) > 0 {
		return util.NewValidationError("invalid registration payload", details)
	}
	return nil
}

func normalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}
