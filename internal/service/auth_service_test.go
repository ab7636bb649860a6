package service

import (
	"context"
	"testing"
	"time"

	"github.com/TheCyberMayor/NC4A-NATDB/internal/model"
	"github.com/TheCyberMayor/NC4A-NATDB/internal/repository"
	"github.com/TheCyberMayor/NC4A-NATDB/internal/utils"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeAdminRepo struct {
	admins  map[string]*model.Admin // keyed by username
	touches int
}

func newFakeAdminRepo() *fakeAdminRepo {
	return &fakeAdminRepo{admins: make(map[string]*model.Admin)}
}

func (f *fakeAdminRepo) Bootstrap(_ context.Context, a *model.Admin) (bool, error) {
	if len(f.admins) > 0 {
		return false, nil
	}
	a.ID = uuid.New()
	stored := *a
	f.admins[a.Username] = &stored
	return true, nil
}

func (f *fakeAdminRepo) Create(_ context.Context, a *model.Admin) error {
	if _, ok := f.admins[a.Username]; ok {
		return repository.ErrDuplicate
	}
	a.ID = uuid.New()
	stored := *a
	f.admins[a.Username] = &stored
	return nil
}

func (f *fakeAdminRepo) FindByUsername(_ context.Context, username string) (*model.Admin, error) {
	a, ok := f.admins[username]
	if !ok {
		return nil, repository.ErrNotFound
	}
	copied := *a
	return &copied, nil
}

func (f *fakeAdminRepo) FindByID(_ context.Context, id uuid.UUID) (*model.Admin, error) {
	for _, a := range f.admins {
		if a.ID == id {
			copied := *a
			return &copied, nil
		}
	}
	return nil, repository.ErrNotFound
}

func (f *fakeAdminRepo) FindAll(_ context.Context) ([]model.Admin, error) {
	var out []model.Admin
	for _, a := range f.admins {
		out = append(out, *a)
	}
	return out, nil
}

func (f *fakeAdminRepo) TouchLastLogin(_ context.Context, id uuid.UUID) error {
	for _, a := range f.admins {
		if a.ID == id {
			now := time.Now()
			a.LastLogin = &now
			f.touches++
			return nil
		}
	}
	return repository.ErrNotFound
}

func newAuthFixture(t *testing.T) (*fakeAdminRepo, AuthService, *utils.JWTUtil) {
	t.Helper()
	repo := newFakeAdminRepo()
	jwtUtil := utils.NewJWTUtil("test-secret-key", 1)
	return repo, NewAuthService(repo, jwtUtil, "admin123"), jwtUtil
}

func seedAdmin(t *testing.T, repo *fakeAdminRepo, username, password, role, status string) *model.Admin {
	t.Helper()
	hash, err := utils.HashPassword(password)
	require.NoError(t, err)
	admin := &model.Admin{
		Username:     username,
		FullName:     "Test Admin",
		PasswordHash: hash,
		Role:         role,
		Status:       status,
	}
	require.NoError(t, repo.Create(context.Background(), admin))
	return admin
}

func TestLogin_Success(t *testing.T) {
	repo, svc, jwtUtil := newAuthFixture(t)
	seeded := seedAdmin(t, repo, "ops", "secret123", model.RoleAdmin, model.AccountActive)

	admin, token, err := svc.Login(context.Background(), "  OPS  ", "secret123")

	require.NoError(t, err)
	assert.Equal(t, seeded.ID, admin.ID)
	require.NotEmpty(t, token)

	claims, err := jwtUtil.ValidateToken(token)
	require.NoError(t, err)
	assert.Equal(t, seeded.ID.String(), claims.AdminID)
	assert.Equal(t, model.RoleAdmin, claims.Role)
}

func TestLogin_WrongPassword(t *testing.T) {
	repo, svc, _ := newAuthFixture(t)
	seedAdmin(t, repo, "ops", "secret123", model.RoleAdmin, model.AccountActive)

	_, token, err := svc.Login(context.Background(), "ops", "wrong-password")

	assert.ErrorIs(t, err, ErrInvalidCredentials)
	assert.Empty(t, token)
	assert.Zero(t, repo.touches)
}

func TestLogin_UnknownUsername(t *testing.T) {
	_, svc, _ := newAuthFixture(t)

	_, _, err := svc.Login(context.Background(), "nobody", "secret123")

	assert.ErrorIs(t, err, ErrInvalidCredentials)
}

func TestLogin_InactiveAccount(t *testing.T) {
	repo, svc, _ := newAuthFixture(t)
	seedAdmin(t, repo, "ops", "secret123", model.RoleAdmin, model.AccountInactive)

	_, _, err := svc.Login(context.Background(), "ops", "secret123")

	assert.ErrorIs(t, err, ErrAccountInactive)
	assert.Zero(t, repo.touches)
}

func TestLogin_TouchesLastLoginEachTime(t *testing.T) {
	repo, svc, _ := newAuthFixture(t)
	seedAdmin(t, repo, "ops", "secret123", model.RoleAdmin, model.AccountActive)

	for i := 0; i < 5; i++ {
		_, _, err := svc.Login(context.Background(), "ops", "secret123")
		require.NoError(t, err)
	}

	assert.Equal(t, 5, repo.touches)
	assert.NotNil(t, repo.admins["ops"].LastLogin)
}

func TestBootstrapAdmin_CreatesSuperAdminOnce(t *testing.T) {
	_, svc, _ := newAuthFixture(t)

	admin, password, err := svc.BootstrapAdmin(context.Background())

	require.NoError(t, err)
	assert.Equal(t, "admin", admin.Username)
	assert.Equal(t, model.RoleSuperAdmin, admin.Role)
	assert.Equal(t, "admin123", password)

	_, _, err = svc.BootstrapAdmin(context.Background())
	assert.ErrorIs(t, err, ErrAdminExists)
}

func TestBootstrapAdmin_RefusedWhenAnyAdminExists(t *testing.T) {
	repo, svc, _ := newAuthFixture(t)
	seedAdmin(t, repo, "ops", "secret123", model.RoleAdmin, model.AccountActive)

	_, _, err := svc.BootstrapAdmin(context.Background())

	assert.ErrorIs(t, err, ErrAdminExists)
}

func TestCreateAdmin_DefaultsRoleToAdmin(t *testing.T) {
	_, svc, _ := newAuthFixture(t)

	admin, err := svc.CreateAdmin(context.Background(), "  NewAdmin ", "New Admin", "secret123", "")

	require.NoError(t, err)
	assert.Equal(t, "newadmin", admin.Username)
	assert.Equal(t, model.RoleAdmin, admin.Role)
	assert.Equal(t, model.AccountActive, admin.Status)
}

func TestCreateAdmin_RejectsUnknownRole(t *testing.T) {
	_, svc, _ := newAuthFixture(t)

	_, err := svc.CreateAdmin(context.Background(), "ops", "Ops", "secret123", "root")

	assert.ErrorIs(t, err, ErrInvalidRole)
}

func TestCreateAdmin_DuplicateUsername(t *testing.T) {
	repo, svc, _ := newAuthFixture(t)
	seedAdmin(t, repo, "ops", "secret123", model.RoleAdmin, model.AccountActive)

	_, err := svc.CreateAdmin(context.Background(), "ops", "Other Ops", "secret123", model.RoleAdmin)

	assert.ErrorIs(t, err, ErrDuplicateAdmin)
}

func TestGetProfile(t *testing.T) {
	repo, svc, _ := newAuthFixture(t)
	seeded := seedAdmin(t, repo, "ops", "secret123", model.RoleAdmin, model.AccountActive)

	admin, err := svc.GetProfile(context.Background(), seeded.ID.String())
	require.NoError(t, err)
	assert.Equal(t, "ops", admin.Username)

	_, err = svc.GetProfile(context.Background(), "not-a-uuid")
	assert.ErrorIs(t, err, ErrAdminNotFound)

	_, err = svc.GetProfile(context.Background(), uuid.NewString())
	assert.ErrorIs(t, err, ErrAdminNotFound)
}
