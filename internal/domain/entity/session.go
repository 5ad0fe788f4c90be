package entity

import (
	"time"

	"github.com/google/uuid"
)

type Session struct {
	ID           uuid.UUID
	ProfileID    uuid.UUID
	RefreshToken string
	UserAgent    *string
	IPAddress    *string
	ExpiresAt    time.Time
	CreatedAt    time.Time
}

func (s *Session) Expired(now time.Time) bool {
	return !now.Before(s.ExpiresAt)
}

// Preference настройки отображения администратора.
type Preference struct {
	ProfileID uuid.UUID
	DarkMode  bool
	UpdatedAt time.Time
}
