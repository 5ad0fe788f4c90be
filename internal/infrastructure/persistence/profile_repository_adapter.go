package persistence

import (
	"context"
	"database/sql"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"

	"github.com/ignatzorin/complaints-dashboard/internal/domain/entity"
	"github.com/ignatzorin/complaints-dashboard/internal/domain/valueobject"
	"github.com/ignatzorin/complaints-dashboard/internal/pkg/apperror"
)

const profileColumns = `id, username, full_name, email, role, status, password_hash, created_at, updated_at`

type profileRow struct {
	ID           uuid.UUID      `db:"id"`
	Username     string         `db:"username"`
	FullName     string         `db:"full_name"`
	Email        string         `db:"email"`
	Role         string         `db:"role"`
	Status       string         `db:"status"`
	PasswordHash sql.NullString `db:"password_hash"`
	CreatedAt    time.Time      `db:"created_at"`
	UpdatedAt    time.Time      `db:"updated_at"`
}

func (r profileRow) toEntity() *entity.Profile {
	status, err := valueobject.NewUserStatus(r.Status)
	if err != nil {
		status = valueobject.UserStatusActive
	}
	return &entity.Profile{
		ID:           r.ID,
		Username:     r.Username,
		FullName:     r.FullName,
		Email:        r.Email,
		Role:         valueobject.NewRole(r.Role),
		Status:       status,
		PasswordHash: r.PasswordHash.String,
		CreatedAt:    r.CreatedAt,
		UpdatedAt:    r.UpdatedAt,
	}
}

// ProfileRepositoryAdapter работает с таблицей profiles.
type ProfileRepositoryAdapter struct {
	store
}

func NewProfileRepositoryAdapter(db *sqlx.DB, timeout time.Duration) *ProfileRepositoryAdapter {
	return &ProfileRepositoryAdapter{store: newStore(db, timeout)}
}

func (r *ProfileRepositoryAdapter) Create(ctx context.Context, p *entity.Profile) error {
	ctx, cancel := r.call(ctx)
	defer cancel()

	if p.ID == uuid.Nil {
		p.ID = uuid.New()
	}
	query := `
		INSERT INTO profiles (id, username, full_name, email, role, status, password_hash, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)
	`
	_, err := r.db.ExecContext(ctx, query,
		p.ID,
		p.Username,
		p.FullName,
		strings.ToLower(strings.TrimSpace(p.Email)),
		string(p.Role),
		string(p.Status),
		nullString(p.PasswordHash),
		p.CreatedAt,
		p.UpdatedAt,
	)
	return translate(ctx, err, nil, "не удалось создать профиль")
}

func (r *ProfileRepositoryAdapter) FindByID(ctx context.Context, id uuid.UUID) (*entity.Profile, error) {
	return r.get(ctx, `SELECT `+profileColumns+` FROM profiles WHERE id = $1`, id)
}

func (r *ProfileRepositoryAdapter) FindByEmail(ctx context.Context, email string) (*entity.Profile, error) {
	return r.get(ctx, `SELECT `+profileColumns+` FROM profiles WHERE LOWER(email) = $1`,
		strings.ToLower(strings.TrimSpace(email)))
}

func (r *ProfileRepositoryAdapter) get(ctx context.Context, query string, arg interface{}) (*entity.Profile, error) {
	ctx, cancel := r.call(ctx)
	defer cancel()

	var row profileRow
	if err := r.db.GetContext(ctx, &row, query, arg); err != nil {
		return nil, translate(ctx, err, apperror.ErrProfileNotFound, "не удалось получить профиль")
	}
	return row.toEntity(), nil
}

func (r *ProfileRepositoryAdapter) ListAll(ctx context.Context) ([]*entity.Profile, error) {
	ctx, cancel := r.call(ctx)
	defer cancel()

	var rows []profileRow
	query := `SELECT ` + profileColumns + ` FROM profiles ORDER BY created_at DESC`
	if err := r.db.SelectContext(ctx, &rows, query); err != nil {
		return nil, translate(ctx, err, nil, "не удалось получить список профилей")
	}

	profiles := make([]*entity.Profile, 0, len(rows))
	for _, row := range rows {
		profiles = append(profiles, row.toEntity())
	}
	return profiles, nil
}

func (r *ProfileRepositoryAdapter) Update(ctx context.Context, p *entity.Profile) error {
	ctx, cancel := r.call(ctx)
	defer cancel()

	res, err := r.db.ExecContext(ctx,
		`UPDATE profiles SET username = $2, full_name = $3, updated_at = $4 WHERE id = $1`,
		p.ID, p.Username, p.FullName, p.UpdatedAt)
	if err != nil {
		return translate(ctx, err, nil, "не удалось обновить профиль")
	}
	return translate(ctx, expectAffected(res, apperror.ErrProfileNotFound), nil, "не удалось обновить профиль")
}

func (r *ProfileRepositoryAdapter) UpdateStatus(ctx context.Context, p *entity.Profile) error {
	ctx, cancel := r.call(ctx)
	defer cancel()

	res, err := r.db.ExecContext(ctx,
		`UPDATE profiles SET status = $2, updated_at = $3 WHERE id = $1`,
		p.ID, string(p.Status), p.UpdatedAt)
	if err != nil {
		return translate(ctx, err, nil, "не удалось обновить статус профиля")
	}
	return translate(ctx, expectAffected(res, apperror.ErrProfileNotFound), nil, "не удалось обновить статус профиля")
}
