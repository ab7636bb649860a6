package repository

import (
	"context"
	"errors"
	"fmt"

	"github.com/TheCyberMayor/NC4A-NATDB/internal/model"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
)

// AdminRepository defines operations for admin accounts
type AdminRepository interface {
	// Bootstrap inserts the first admin account. It reports false without
	// inserting when any admin already exists; the guard is evaluated in the
	// same statement as the insert.
	Bootstrap(ctx context.Context, admin *model.Admin) (bool, error)
	Create(ctx context.Context, admin *model.Admin) error
	FindByUsername(ctx context.Context, username string) (*model.Admin, error)
	FindByID(ctx context.Context, id uuid.UUID) (*model.Admin, error)
	FindAll(ctx context.Context) ([]model.Admin, error)
	TouchLastLogin(ctx context.Context, id uuid.UUID) error
}

type adminRepository struct {
	db DB
}

// NewAdminRepository creates a new AdminRepository
func NewAdminRepository(db DB) AdminRepository {
	return &adminRepository{db: db}
}

const adminColumns = `id, username, full_name, password_hash, role, status, last_login, created_at, updated_at`

func scanAdmin(s scanner, a *model.Admin) error {
	return s.Scan(&a.ID, &a.Username, &a.FullName, &a.PasswordHash, &a.Role, &a.Status,
		&a.LastLogin, &a.CreatedAt, &a.UpdatedAt)
}

func (r *adminRepository) Bootstrap(ctx context.Context, a *model.Admin) (bool, error) {
	a.ID = uuid.New()
	sql := `INSERT INTO admins (id, username, full_name, password_hash, role, status, created_at, updated_at)
		SELECT $1, $2, $3, $4, $5, $6, NOW(), NOW()
		WHERE NOT EXISTS (SELECT 1 FROM admins)`
	cmdTag, err := r.db.Exec(ctx, sql, a.ID, a.Username, a.FullName, a.PasswordHash, a.Role, a.Status)
	if err != nil {
		return false, fmt.Errorf("failed to bootstrap admin: %w", err)
	}
	return cmdTag.RowsAffected() == 1, nil
}

func (r *adminRepository) Create(ctx context.Context, a *model.Admin) error {
	a.ID = uuid.New()
	sql := `INSERT INTO admins (id, username, full_name, password_hash, role, status, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, NOW(), NOW())
		RETURNING created_at, updated_at`
	err := r.db.QueryRow(ctx, sql, a.ID, a.Username, a.FullName, a.PasswordHash, a.Role, a.Status).
		Scan(&a.CreatedAt, &a.UpdatedAt)
	if err != nil {
		if isUniqueViolation(err) {
			return ErrDuplicate
		}
		return fmt.Errorf("failed to create admin: %w", err)
	}
	return nil
}

func (r *adminRepository) FindByUsername(ctx context.Context, username string) (*model.Admin, error) {
	a := &model.Admin{}
	sql := `SELECT ` + adminColumns + ` FROM admins WHERE username = $1`
	if err := scanAdmin(r.db.QueryRow(ctx, sql, username), a); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("failed to find admin by username: %w", err)
	}
	return a, nil
}

func (r *adminRepository) FindByID(ctx context.Context, id uuid.UUID) (*model.Admin, error) {
	a := &model.Admin{}
	sql := `SELECT ` + adminColumns + ` FROM admins WHERE id = $1`
	if err := scanAdmin(r.db.QueryRow(ctx, sql, id), a); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("failed to find admin by id: %w", err)
	}
	return a, nil
}

func (r *adminRepository) FindAll(ctx context.Context) ([]model.Admin, error) {
	sql := `SELECT ` + adminColumns + ` FROM admins ORDER BY created_at ASC`
	rows, err := r.db.Query(ctx, sql)
	if err != nil {
		return nil, fmt.Errorf("failed to query admins: %w", err)
	}
	defer rows.Close()

	var admins []model.Admin
	for rows.Next() {
		var a model.Admin
		if err := scanAdmin(rows, &a); err != nil {
			return nil, fmt.Errorf("failed to scan admin row: %w", err)
		}
		admins = append(admins, a)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating admin rows: %w", err)
	}
	return admins, nil
}

func (r *adminRepository) TouchLastLogin(ctx context.Context, id uuid.UUID) error {
	cmdTag, err := r.db.Exec(ctx, `UPDATE admins SET last_login = NOW(), updated_at = NOW() WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("failed to update last login: %w", err)
	}
	if cmdTag.RowsAffected() == 0 {
		return ErrNotFound
	}
	return nil
}
