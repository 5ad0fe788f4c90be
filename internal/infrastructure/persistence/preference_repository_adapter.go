package persistence

import (
	"context"
	"database/sql"
	"errors"
	"time"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"

	"github.com/ignatzorin/complaints-dashboard/internal/domain/entity"
)

type PreferenceRepositoryAdapter struct {
	store
}

func NewPreferenceRepositoryAdapter(db *sqlx.DB, timeout time.Duration) *PreferenceRepositoryAdapter {
	return &PreferenceRepositoryAdapter{store: newStore(db, timeout)}
}

// Find возвращает настройки профиля. Отсутствие записи означает светлую тему.
func (r *PreferenceRepositoryAdapter) Find(ctx context.Context, profileID uuid.UUID) (*entity.Preference, error) {
	ctx, cancel := r.call(ctx)
	defer cancel()

	pref := &entity.Preference{ProfileID: profileID}
	err := r.db.QueryRowxContext(ctx,
		`SELECT dark_mode, updated_at FROM admin_preferences WHERE profile_id = $1`, profileID,
	).Scan(&pref.DarkMode, &pref.UpdatedAt)
	if errors.Is(err, sql.ErrNoRows) {
		return pref, nil
	}
	if err != nil {
		return nil, translate(ctx, err, nil, "не удалось получить настройки")
	}
	return pref, nil
}

func (r *PreferenceRepositoryAdapter) Upsert(ctx context.Context, pref *entity.Preference) error {
	ctx, cancel := r.call(ctx)
	defer cancel()

	query := `
		INSERT INTO admin_preferences (profile_id, dark_mode, updated_at)
		VALUES ($1, $2, $3)
		ON CONFLICT (profile_id) DO UPDATE SET dark_mode = EXCLUDED.dark_mode, updated_at = EXCLUDED.updated_at
	`
	_, err := r.db.ExecContext(ctx, query, pref.ProfileID, pref.DarkMode, pref.UpdatedAt)
	return translate(ctx, err, nil, "не удалось сохранить настройки")
}
