package service

import (
	"context"
	"sort"
	"strings"
	"testing"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/girmesh03/Task-Manager-V19/internal/auth"
	"github.com/girmesh03/Task-Manager-V19/internal/config"
	"github.com/girmesh03/Task-Manager-V19/internal/domain"
	"github.com/girmesh03/Task-Manager-V19/internal/repository"
	"github.com/girmesh03/Task-Manager-V19/pkg/util"
)

// low bcrypt cost keeps the tests fast
const testBcryptCost = 4

type fakeUserRepo struct {
	users []domain.User
}

func (f *fakeUserRepo) Create(_ context.Context, user *domain.User) error {
	user.ID = "u-" + user.Email
	f.users = append(f.users, *user)
	return nil
}

func (f *fakeUserRepo) Update(_ context.Context, _ *domain.User) error { return nil }

func (f *fakeUserRepo) UpdatePassword(_ context.Context, id, hash string) error {
	for i := range f.users {
		if f.users[i].ID == id && !f.users[i].Deleted() {
			f.users[i].PasswordHash = hash
			return nil
		}
	}
	return pgx.ErrNoRows
}

func (f *fakeUserRepo) GetByID(_ context.Context, id string) (*domain.User, error) {
	for i := range f.users {
		if f.users[i].ID == id && !f.users[i].Deleted() {
			return &f.users[i], nil
		}
	}
	return nil, pgx.ErrNoRows
}

func (f *fakeUserRepo) GetByIDAny(_ context.Context, id string) (*domain.User, error) {
	for i := range f.users {
		if f.users[i].ID == id {
			return &f.users[i], nil
		}
	}
	return nil, pgx.ErrNoRows
}

func (f *fakeUserRepo) ListActiveByEmail(_ context.Context, email string) ([]domain.User, error) {
	var out []domain.User
	for _, u := range f.users {
		if strings.EqualFold(u.Email, email) && !u.Deleted() {
			out = append(out, u)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].CreatedAt.Before(out[j].CreatedAt) })
	return out, nil
}

func (f *fakeUserRepo) List(_ context.Context, _ repository.UserFilter) ([]domain.User, error) {
	return nil, nil
}

func (f *fakeUserRepo) ExistsActiveEmail(_ context.Context, _, _, _ string) (bool, error) {
	return false, nil
}

func (f *fakeUserRepo) ExistsActiveHODPosition(_ context.Context, _, _, _ string) (bool, error) {
	return false, nil
}

type fakeOrgRepo struct {
	orgs map[string]*domain.Organization
}

func (f *fakeOrgRepo) Create(_ context.Context, org *domain.Organization) error {
	org.ID = "org-" + org.Name
	f.orgs[org.ID] = org
	return nil
}

func (f *fakeOrgRepo) Update(_ context.Context, _ *domain.Organization) error { return nil }

func (f *fakeOrgRepo) GetByID(_ context.Context, id string) (*domain.Organization, error) {
	org, ok := f.orgs[id]
	if !ok || org.Deleted() {
		return nil, pgx.ErrNoRows
	}
	return org, nil
}

func (f *fakeOrgRepo) GetByIDAny(_ context.Context, id string) (*domain.Organization, error) {
	org, ok := f.orgs[id]
	if !ok {
		return nil, pgx.ErrNoRows
	}
	return org, nil
}

func (f *fakeOrgRepo) List(_ context.Context, _ repository.OrganizationFilter) ([]domain.Organization, error) {
	return nil, nil
}

func (f *fakeOrgRepo) ExistsActiveName(_ context.Context, _, _ string) (bool, error) {
	return false, nil
}

type fakeDeptRepo struct {
	depts map[string]*domain.Department
}

func (f *fakeDeptRepo) Create(_ context.Context, dept *domain.Department) error {
	dept.ID = "dept-" + dept.Name
	f.depts[dept.ID] = dept
	return nil
}

func (f *fakeDeptRepo) Update(_ context.Context, _ *domain.Department) error { return nil }

func (f *fakeDeptRepo) GetByID(_ context.Context, id string) (*domain.Department, error) {
	dept, ok := f.depts[id]
	if !ok || dept.Deleted() {
		return nil, pgx.ErrNoRows
	}
	return dept, nil
}

func (f *fakeDeptRepo) GetByIDAny(_ context.Context, id string) (*domain.Department, error) {
	dept, ok := f.depts[id]
	if !ok {
		return nil, pgx.ErrNoRows
	}
	return dept, nil
}

func (f *fakeDeptRepo) List(_ context.Context, _ repository.DepartmentFilter) ([]domain.Department, error) {
	return nil, nil
}

func (f *fakeDeptRepo) ExistsActiveName(_ context.Context, _, _, _ string) (bool, error) {
	return false, nil
}

type fakeResetRepo struct {
	tokens []repository.PasswordResetToken
}

func (f *fakeResetRepo) Create(_ context.Context, reset *repository.PasswordResetToken) error {
	reset.ID = "reset-" + reset.UserID
	f.tokens = append(f.tokens, *reset)
	return nil
}

func (f *fakeResetRepo) GetActiveByToken(_ context.Context, token string) (*repository.PasswordResetToken, error) {
	for i := range f.tokens {
		if f.tokens[i].Token == token && f.tokens[i].UsedAt == nil {
			return &f.tokens[i], nil
		}
	}
	return nil, pgx.ErrNoRows
}

func (f *fakeResetRepo) MarkUsed(_ context.Context, id string) error {
	now := time.Now()
	for i := range f.tokens {
		if f.tokens[i].ID == id {
			f.tokens[i].UsedAt = &now
		}
	}
	return nil
}

func (f *fakeResetRepo) DeleteExpired(_ context.Context) (int64, error) { return 0, nil }

type authFixture struct {
	users   *fakeUserRepo
	orgs    *fakeOrgRepo
	depts   *fakeDeptRepo
	resets  *fakeResetRepo
	service *AuthService
}

func newAuthFixture(t *testing.T) *authFixture {
	t.Helper()
	f := &authFixture{
		users:  &fakeUserRepo{},
		orgs:   &fakeOrgRepo{orgs: map[string]*domain.Organization{}},
		depts:  &fakeDeptRepo{depts: map[string]*domain.Department{}},
		resets: &fakeResetRepo{},
	}
	f.service = NewAuthService(
		f.users, f.orgs, f.depts, f.resets,
		auth.NewTokenManager("test-secret", 15),
		config.AuthConfig{BcryptCost: testBcryptCost, PasswordResetTTLMinutes: 30},
		zap.NewNop(),
	)
	return f
}

// addTenantUser seeds an org, a dept, and one active user with the given
// email/password into the fixture.
func (f *authFixture) addTenantUser(t *testing.T, orgName, email, password string, createdAt time.Time) *domain.User {
	t.Helper()
	org := &domain.Organization{Name: orgName}
	require.NoError(t, f.orgs.Create(context.Background(), org))
	dept := &domain.Department{OrganizationID: org.ID, Name: orgName + "-ops"}
	require.NoError(t, f.depts.Create(context.Background(), dept))

	hash, err := auth.HashPassword(password, testBcryptCost)
	require.NoError(t, err)
	user := domain.User{
		ID:             "u-" + orgName,
		OrganizationID: org.ID,
		DepartmentID:   dept.ID,
		FirstName:      "Test",
		Email:          email,
		PasswordHash:   hash,
		Role:           domain.RoleSuperAdmin,
		CreatedAt:      createdAt,
	}
	f.users.users = append(f.users.users, user)
	return &f.users.users[len(f.users.users)-1]
}

func TestLoginResolvesSharedEmailByPassword(t *testing.T) {
	f := newAuthFixture(t)
	base := time.Now().Add(-48 * time.Hour)

	// Same email in two tenants; the older account must not shadow the newer.
	older := f.addTenantUser(t, "acme", "lead@example.com", "older-pass-1", base)
	newer := f.addTenantUser(t, "globex", "lead@example.com", "newer-pass-2", base.Add(time.Hour))

	session, err := f.service.Login(context.Background(), LoginInput{
		Email:    "lead@example.com",
		Password: "newer-pass-2",
	})
	require.NoError(t, err)
	assert.Equal(t, newer.ID, session.User.ID)
	assert.NotEmpty(t, session.Token)

	session, err = f.service.Login(context.Background(), LoginInput{
		Email:    "lead@example.com",
		Password: "older-pass-1",
	})
	require.NoError(t, err)
	assert.Equal(t, older.ID, session.User.ID)
}

func TestLoginRejectsWrongPassword(t *testing.T) {
	f := newAuthFixture(t)
	f.addTenantUser(t, "acme", "lead@example.com", "correct-pass", time.Now())

	_, err := f.service.Login(context.Background(), LoginInput{
		Email:    "lead@example.com",
		Password: "wrong-pass",
	})
	require.Error(t, err)
	assert.Equal(t, "UNAUTHORIZED", util.ToDomainError(err).Code)
}

func TestLoginRejectsDeactivatedTenant(t *testing.T) {
	f := newAuthFixture(t)
	user := f.addTenantUser(t, "acme", "lead@example.com", "correct-pass", time.Now())

	actor := "admin"
	require.NoError(t, f.orgs.orgs[user.OrganizationID].Stamp(time.Now(), &actor))

	_, err := f.service.Login(context.Background(), LoginInput{
		Email:    "lead@example.com",
		Password: "correct-pass",
	})
	require.Error(t, err)
	assert.Equal(t, "ACCOUNT_DEACTIVATED", util.ToDomainError(err).Code)
}

func TestPasswordResetCoversEveryTenantAccount(t *testing.T) {
	f := newAuthFixture(t)
	base := time.Now().Add(-48 * time.Hour)
	older := f.addTenantUser(t, "acme", "lead@example.com", "older-pass-1", base)
	newer := f.addTenantUser(t, "globex", "lead@example.com", "newer-pass-2", base.Add(time.Hour))

	resets, err := f.service.RequestPasswordReset(context.Background(), "lead@example.com")
	require.NoError(t, err)
	require.Len(t, resets, 2)

	ids := []string{resets[0].UserID, resets[1].UserID}
	assert.ElementsMatch(t, []string{older.ID, newer.ID}, ids)
	assert.NotEqual(t, resets[0].Token, resets[1].Token)

	// Unknown emails yield no tokens and no error.
	none, err := f.service.RequestPasswordReset(context.Background(), "nobody@example.com")
	require.NoError(t, err)
	assert.Empty(t, none)
}
