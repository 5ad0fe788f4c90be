package persistence

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"

	"github.com/ignatzorin/complaints-dashboard/internal/domain/entity"
	"github.com/ignatzorin/complaints-dashboard/internal/pkg/apperror"
)

// SessionRepositoryAdapter хранит refresh-сессии администраторов.
type SessionRepositoryAdapter struct {
	store
}

func NewSessionRepositoryAdapter(db *sqlx.DB, timeout time.Duration) *SessionRepositoryAdapter {
	return &SessionRepositoryAdapter{store: newStore(db, timeout)}
}

func (r *SessionRepositoryAdapter) Create(ctx context.Context, s *entity.Session) error {
	ctx, cancel := r.call(ctx)
	defer cancel()

	query := `
		INSERT INTO admin_sessions (id, profile_id, refresh_token, user_agent, ip_address, expires_at, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
	`
	_, err := r.db.ExecContext(ctx, query,
		s.ID, s.ProfileID, s.RefreshToken, s.UserAgent, s.IPAddress, s.ExpiresAt, s.CreatedAt)
	return translate(ctx, err, nil, "не удалось создать сессию")
}

type sessionRow struct {
	ID           uuid.UUID `db:"id"`
	ProfileID    uuid.UUID `db:"profile_id"`
	RefreshToken string    `db:"refresh_token"`
	UserAgent    *string   `db:"user_agent"`
	IPAddress    *string   `db:"ip_address"`
	ExpiresAt    time.Time `db:"expires_at"`
	CreatedAt    time.Time `db:"created_at"`
}

const sessionColumns = `id, profile_id, refresh_token, user_agent, ip_address, expires_at, created_at`

func (r *SessionRepositoryAdapter) FindByID(ctx context.Context, id uuid.UUID) (*entity.Session, error) {
	return r.get(ctx, `SELECT `+sessionColumns+` FROM admin_sessions WHERE id = $1`, id)
}

func (r *SessionRepositoryAdapter) FindByRefreshToken(ctx context.Context, refreshToken string) (*entity.Session, error) {
	return r.get(ctx, `SELECT `+sessionColumns+` FROM admin_sessions WHERE refresh_token = $1`, refreshToken)
}

func (r *SessionRepositoryAdapter) get(ctx context.Context, query string, arg interface{}) (*entity.Session, error) {
	ctx, cancel := r.call(ctx)
	defer cancel()

	var row sessionRow
	if err := r.db.GetContext(ctx, &row, query, arg); err != nil {
		return nil, translate(ctx, err, apperror.ErrSessionNotFound, "не удалось получить сессию")
	}

	return &entity.Session{
		ID:           row.ID,
		ProfileID:    row.ProfileID,
		RefreshToken: row.RefreshToken,
		UserAgent:    row.UserAgent,
		IPAddress:    row.IPAddress,
		ExpiresAt:    row.ExpiresAt,
		CreatedAt:    row.CreatedAt,
	}, nil
}

func (r *SessionRepositoryAdapter) DeleteByRefreshToken(ctx context.Context, refreshToken string) error {
	ctx, cancel := r.call(ctx)
	defer cancel()

	_, err := r.db.ExecContext(ctx, `DELETE FROM admin_sessions WHERE refresh_token = $1`, refreshToken)
	return translate(ctx, err, nil, "не удалось удалить сессию")
}
