package postgres

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/SaeedBadree/TBSL-ERP/internal/domain"
	"github.com/SaeedBadree/TBSL-ERP/internal/domain/entity"
	"github.com/SaeedBadree/TBSL-ERP/internal/domain/repository"
)

var (
	_ repository.StaffUserRepository = (*StaffUserRepo)(nil)
	_ repository.APIKeyRepository    = (*APIKeyRepo)(nil)
)

// StaffUserRepo implementación de usuarios internos sobre PostgreSQL.
type StaffUserRepo struct {
	q Querier
}

func NewStaffUserRepository(q Querier) *StaffUserRepo {
	return &StaffUserRepo{q: q}
}

const staffColumns = `id, email, full_name, password_hash, role, is_active, created_at, updated_at`

func (r *StaffUserRepo) GetByEmail(ctx context.Context, email string) (*entity.StaffUser, error) {
	query := `SELECT ` + staffColumns + ` FROM staff_users WHERE email = $1 AND is_active`
	return r.getOne(ctx, query, email)
}

func (r *StaffUserRepo) GetByID(ctx context.Context, id string) (*entity.StaffUser, error) {
	query := `SELECT ` + staffColumns + ` FROM staff_users WHERE id = $1`
	return r.getOne(ctx, query, id)
}

func (r *StaffUserRepo) getOne(ctx context.Context, query string, arg any) (*entity.StaffUser, error) {
	var u entity.StaffUser
	err := r.q.QueryRow(ctx, query, arg).Scan(&u.ID, &u.Email, &u.FullName, &u.PasswordHash,
		&u.Role, &u.IsActive, &u.CreatedAt, &u.UpdatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get staff user: %w", err)
	}
	return &u, nil
}

// ─────────────────────────────────────────────────────────────────────────────

// APIKeyRepo implementación de claves de integración sobre PostgreSQL.
type APIKeyRepo struct {
	q Querier
}

func NewAPIKeyRepository(q Querier) *APIKeyRepo {
	return &APIKeyRepo{q: q}
}

const apiKeyColumns = `id, name, key_hash, scopes, active, created_at, last_used_at`

func (r *APIKeyRepo) Create(ctx context.Context, key *entity.APIKey) error {
	query := `
		INSERT INTO api_keys (` + apiKeyColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7)`
	_, err := r.q.Exec(ctx, query,
		key.ID, key.Name, key.KeyHash, key.Scopes, key.Active, key.CreatedAt, key.LastUsedAt,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return domain.ErrDuplicate
		}
		return fmt.Errorf("insert api key: %w", err)
	}
	return nil
}

func (r *APIKeyRepo) GetActiveByHash(ctx context.Context, keyHash string) (*entity.APIKey, error) {
	query := `SELECT ` + apiKeyColumns + ` FROM api_keys WHERE key_hash = $1 AND active`
	return r.getOne(ctx, query, keyHash)
}

func (r *APIKeyRepo) GetByID(ctx context.Context, id string) (*entity.APIKey, error) {
	query := `SELECT ` + apiKeyColumns + ` FROM api_keys WHERE id = $1`
	return r.getOne(ctx, query, id)
}

func (r *APIKeyRepo) Deactivate(ctx context.Context, id string) error {
	tag, err := r.q.Exec(ctx, `UPDATE api_keys SET active = false WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("deactivate api key: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrNotFound
	}
	return nil
}

func (r *APIKeyRepo) TouchLastUsed(ctx context.Context, id string, at time.Time) error {
	if _, err := r.q.Exec(ctx, `UPDATE api_keys SET last_used_at = $2 WHERE id = $1`, id, at); err != nil {
		return fmt.Errorf("touch api key: %w", err)
	}
	return nil
}

func (r *APIKeyRepo) getOne(ctx context.Context, query string, arg any) (*entity.APIKey, error) {
	var k entity.APIKey
	err := r.q.QueryRow(ctx, query, arg).Scan(&k.ID, &k.Name, &k.KeyHash, &k.Scopes,
		&k.Active, &k.CreatedAt, &k.LastUsedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get api key: %w", err)
	}
	return &k, nil
}
