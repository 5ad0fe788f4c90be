package valueobject

import (
	"strings"

	"github.com/ignatzorin/complaints-dashboard/internal/pkg/apperror"
)

type ComplaintStatus string

const (
	ComplaintStatusAssessed   ComplaintStatus = "Assessed"
	ComplaintStatusInProgress ComplaintStatus = "In Progress"
	ComplaintStatusResolved   ComplaintStatus = "Resolved"

	// legacyPendingLabel старое название начального статуса.
	legacyPendingLabel = "pending"
)

// ComplaintStatuses возвращает статусы в порядке жизненного цикла.
func ComplaintStatuses() []ComplaintStatus {
	return []ComplaintStatus{ComplaintStatusAssessed, ComplaintStatusInProgress, ComplaintStatusResolved}
}

func (s ComplaintStatus) IsValid() bool {
	switch s {
	case ComplaintStatusAssessed, ComplaintStatusInProgress, ComplaintStatusResolved:
		return true
	}
	return false
}

// CanTransitionTo: селектор статуса свободный, любой валидный статус
// достижим из любого другого.
func (s ComplaintStatus) CanTransitionTo(newStatus ComplaintStatus) bool {
	return s.IsValid() && newStatus.IsValid()
}

func (s ComplaintStatus) IsResolved() bool {
	return s == ComplaintStatusResolved
}

func (s ComplaintStatus) String() string {
	return string(s)
}

// ParseComplaintStatus принимает метку без учёта регистра, "Pending" читается как Assessed.
func ParseComplaintStatus(status string) (ComplaintStatus, error) {
	normalized, ok := normalizeComplaintStatus(status)
	if !ok {
		return "", apperror.New(apperror.ErrCodeValidation, "некорректный статус обращения")
	}
	return normalized, nil
}

// NormalizeComplaintStatus используется при чтении из хранилища: неизвестное
// значение сохраняется как есть, чтобы не терять данные.
func NormalizeComplaintStatus(status string) ComplaintStatus {
	if normalized, ok := normalizeComplaintStatus(status); ok {
		return normalized
	}
	if strings.TrimSpace(status) == "" {
		return ComplaintStatusAssessed
	}
	return ComplaintStatus(status)
}

func normalizeComplaintStatus(status string) (ComplaintStatus, bool) {
	key := strings.ToLower(strings.Join(strings.Fields(status), " "))
	switch key {
	case "assessed", legacyPendingLabel:
		return ComplaintStatusAssessed, true
	case "in progress", "in_progress":
		return ComplaintStatusInProgress, true
	case "resolved":
		return ComplaintStatusResolved, true
	}
	return "", false
}

type Priority string

const (
	PriorityLow    Priority = "Low"
	PriorityMedium Priority = "Medium"
	PriorityHigh   Priority = "High"
)

func (p Priority) IsValid() bool {
	switch p {
	case PriorityLow, PriorityMedium, PriorityHigh:
		return true
	}
	return false
}

func NewPriority(priority string) (Priority, error) {
	if strings.TrimSpace(priority) == "" {
		return PriorityMedium, nil
	}
	for _, p := range []Priority{PriorityLow, PriorityMedium, PriorityHigh} {
		if strings.EqualFold(string(p), strings.TrimSpace(priority)) {
			return p, nil
		}
	}
	return "", apperror.New(apperror.ErrCodeValidation, "некорректный приоритет обращения")
}

type UserStatus string

const (
	UserStatusActive  UserStatus = "Active"
	UserStatusBlocked UserStatus = "Blocked"
)

func (s UserStatus) IsValid() bool {
	switch s {
	case UserStatusActive, UserStatusBlocked:
		return true
	}
	return false
}

// Opposite возвращает статус для переключателя блокировки.
func (s UserStatus) Opposite() UserStatus {
	if s == UserStatusBlocked {
		return UserStatusActive
	}
	return UserStatusBlocked
}

func NewUserStatus(status string) (UserStatus, error) {
	for _, s := range []UserStatus{UserStatusActive, UserStatusBlocked} {
		if strings.EqualFold(string(s), strings.TrimSpace(status)) {
			return s, nil
		}
	}
	return "", apperror.New(apperror.ErrCodeValidation, "некорректный статус пользователя")
}

type Role string

const (
	RoleAdmin Role = "admin"
	RoleUser  Role = "user"
)

func (r Role) IsAdmin() bool {
	return r == RoleAdmin
}

func NewRole(role string) Role {
	if strings.EqualFold(strings.TrimSpace(role), string(RoleAdmin)) {
		return RoleAdmin
	}
	return RoleUser
}
