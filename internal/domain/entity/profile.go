package entity

import (
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/ignatzorin/complaints-dashboard/internal/domain/valueobject"
	"github.com/ignatzorin/complaints-dashboard/internal/pkg/apperror"
)

const (
	UnknownUserName = "Unknown User"
	NoEmail         = "No email"
)

// Profile учётная запись. ID совпадает с subject токена провайдера.
type Profile struct {
	ID           uuid.UUID
	Username     string
	FullName     string
	Email        string
	Role         valueobject.Role
	Status       valueobject.UserStatus
	PasswordHash string
	CreatedAt    time.Time
	UpdatedAt    time.Time
}

// DisplayName: полное имя, затем username, затем часть email до @.
func (p *Profile) DisplayName() string {
	if v := strings.TrimSpace(p.FullName); v != "" {
		return v
	}
	if v := strings.TrimSpace(p.Username); v != "" {
		return v
	}
	if local, _, ok := strings.Cut(strings.TrimSpace(p.Email), "@"); ok && local != "" {
		return local
	}
	return UnknownUserName
}

func (p *Profile) DisplayEmail() string {
	if v := strings.TrimSpace(p.Email); v != "" {
		return v
	}
	return NoEmail
}

func (p *Profile) IsAdmin() bool {
	return p.Role.IsAdmin()
}

func (p *Profile) IsBlocked() bool {
	return p.Status == valueobject.UserStatusBlocked
}

// CanAccessDashboard только активный администратор.
func (p *Profile) CanAccessDashboard() bool {
	return p.IsAdmin() && !p.IsBlocked()
}

func (p *Profile) SetStatus(status valueobject.UserStatus, now time.Time) error {
	if !status.IsValid() {
		return apperror.New(apperror.ErrCodeValidation, "некорректный статус пользователя")
	}
	p.Status = status
	p.UpdatedAt = now
	return nil
}

func (p *Profile) ToggleStatus(now time.Time) {
	p.Status = p.Status.Opposite()
	p.UpdatedAt = now
}

func (p *Profile) UpdateIdentity(username, fullName *string, now time.Time) error {
	if username != nil {
		name := strings.TrimSpace(*username)
		if name == "" {
			return apperror.New(apperror.ErrCodeValidation, "имя пользователя не может быть пустым")
		}
		p.Username = name
	}
	if fullName != nil {
		p.FullName = strings.TrimSpace(*fullName)
	}
	p.UpdatedAt = now
	return nil
}

func (p *Profile) Clone() *Profile {
	cp := *p
	return &cp
}
