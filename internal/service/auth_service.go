package service

import (
	"context"
	"errors"
	"fmt"
	"log"
	"strings"

	"github.com/TheCyberMayor/NC4A-NATDB/internal/model"
	"github.com/TheCyberMayor/NC4A-NATDB/internal/repository"
	"github.com/TheCyberMayor/NC4A-NATDB/internal/utils"

	"github.com/google/uuid"
)

var (
	ErrInvalidCredentials = errors.New("invalid credentials")
	ErrAccountInactive    = errors.New("account is inactive, contact an administrator")
	ErrAdminExists        = errors.New("admin user already exists")
	ErrAdminNotFound      = errors.New("admin not found")
	ErrDuplicateAdmin     = errors.New("admin with this username already exists")
	ErrInvalidRole        = errors.New("role must be admin or superadmin")
)

const bootstrapUsername = "admin"

// AuthService provides admin authentication and account management
type AuthService interface {
	Login(ctx context.Context, username, password string) (*model.Admin, string, error)
	// BootstrapAdmin creates the first admin account. It fails with
	// ErrAdminExists once any admin is present. The plaintext of the initial
	// password is returned once so it can be shown to the operator.
	BootstrapAdmin(ctx context.Context) (*model.Admin, string, error)
	CreateAdmin(ctx context.Context, username, fullName, password, role string) (*model.Admin, error)
	GetProfile(ctx context.Context, adminID string) (*model.Admin, error)
	ListAdmins(ctx context.Context) ([]model.Admin, error)
}

type authService struct {
	adminRepo         repository.AdminRepository
	jwtUtil           *utils.JWTUtil
	bootstrapPassword string
}

// NewAuthService creates a new AuthService
func NewAuthService(adminRepo repository.AdminRepository, jwtUtil *utils.JWTUtil, bootstrapPassword string) AuthService {
	return &authService{
		adminRepo:         adminRepo,
		jwtUtil:           jwtUtil,
		bootstrapPassword: bootstrapPassword,
	}
}

// Login authenticates an admin and returns a signed token. Unknown
// usernames and wrong passwords are indistinguishable to the caller.
func (s *authService) Login(ctx context.Context, username, password string) (*model.Admin, string, error) {
	admin, err := s.adminRepo.FindByUsername(ctx, strings.ToLower(strings.TrimSpace(username)))
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, "", ErrInvalidCredentials
		}
		return nil, "", fmt.Errorf("error finding admin by username: %w", err)
	}

	if admin.Status != model.AccountActive {
		return nil, "", ErrAccountInactive
	}

	if !utils.CheckPasswordHash(password, admin.PasswordHash) {
		return nil, "", ErrInvalidCredentials
	}

	if err := s.adminRepo.TouchLastLogin(ctx, admin.ID); err != nil {
		// The login itself succeeded; a stale last_login is not worth failing it.
		log.Printf("WARN: failed to update last login for admin %s: %v", admin.Username, err)
	}

	token, err := s.jwtUtil.GenerateToken(admin.ID.String(), admin.Role)
	if err != nil {
		return nil, "", fmt.Errorf("failed to generate token: %w", err)
	}

	return admin, token, nil
}

func (s *authService) BootstrapAdmin(ctx context.Context) (*model.Admin, string, error) {
	password := s.bootstrapPassword
	hash, err := utils.HashPassword(password)
	if err != nil {
		return nil, "", fmt.Errorf("failed to hash bootstrap password: %w", err)
	}

	admin := &model.Admin{
		Username:     bootstrapUsername,
		FullName:     "System Administrator",
		PasswordHash: hash,
		Role:         model.RoleSuperAdmin,
		Status:       model.AccountActive,
	}

	inserted, err := s.adminRepo.Bootstrap(ctx, admin)
	if err != nil {
		return nil, "", fmt.Errorf("failed to bootstrap admin: %w", err)
	}
	if !inserted {
		return nil, "", ErrAdminExists
	}

	log.Printf("INFO: bootstrap admin %q created", admin.Username)
	return admin, password, nil
}

func (s *authService) CreateAdmin(ctx context.Context, username, fullName, password, role string) (*model.Admin, error) {
	if role == "" {
		role = model.RoleAdmin
	}
	if role != model.RoleAdmin && role != model.RoleSuperAdmin {
		return nil, ErrInvalidRole
	}

	hash, err := utils.HashPassword(password)
	if err != nil {
		return nil, fmt.Errorf("failed to hash password: %w", err)
	}

	admin := &model.Admin{
		Username:     strings.ToLower(strings.TrimSpace(username)),
		FullName:     strings.TrimSpace(fullName),
		PasswordHash: hash,
		Role:         role,
		Status:       model.AccountActive,
	}

	if err := s.adminRepo.Create(ctx, admin); err != nil {
		if errors.Is(err, repository.ErrDuplicate) {
			return nil, ErrDuplicateAdmin
		}
		return nil, fmt.Errorf("failed to create admin: %w", err)
	}
	return admin, nil
}

func (s *authService) GetProfile(ctx context.Context, adminID string) (*model.Admin, error) {
	id, err := uuid.Parse(adminID)
	if err != nil {
		return nil, ErrAdminNotFound
	}

	admin, err := s.adminRepo.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, ErrAdminNotFound
		}
		return nil, fmt.Errorf("failed to load admin profile: %w", err)
	}
	return admin, nil
}

func (s *authService) ListAdmins(ctx context.Context) ([]model.Admin, error) {
	admins, err := s.adminRepo.FindAll(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to list admins: %w", err)
	}
	return admins, nil
}
