package repository

import (
	"context"

	"github.com/google/uuid"

	"github.com/ignatzorin/complaints-dashboard/internal/domain/entity"
)

type ProfileRepository interface {
	Create(ctx context.Context, profile *entity.Profile) error
	FindByID(ctx context.Context, id uuid.UUID) (*entity.Profile, error)
	FindByEmail(ctx context.Context, email string) (*entity.Profile, error)
	ListAll(ctx context.Context) ([]*entity.Profile, error)
	Update(ctx context.Context, profile *entity.Profile) error
	UpdateStatus(ctx context.Context, profile *entity.Profile) error
}

type SessionRepository interface {
	Create(ctx context.Context, session *entity.Session) error
	FindByID(ctx context.Context, id uuid.UUID) (*entity.Session, error)
	FindByRefreshToken(ctx context.Context, refreshToken string) (*entity.Session, error)
	DeleteByRefreshToken(ctx context.Context, refreshToken string) error
}

type PreferenceRepository interface {
	Find(ctx context.Context, profileID uuid.UUID) (*entity.Preference, error)
	Upsert(ctx context.Context, pref *entity.Preference) error
}
