package dto

import (
	"time"

	"github.com/google/uuid"

	"github.com/ignatzorin/complaints-dashboard/internal/domain/entity"
	"github.com/ignatzorin/complaints-dashboard/internal/domain/filter"
)

type UpdateProfileRequest struct {
	Username *string `json:"username"`
	FullName *string `json:"full_name"`
}

type UserStatusRequest struct {
	Status string `json:"status" binding:"required"`
}

type ProfileResponse struct {
	ID          uuid.UUID `json:"id"`
	Username    string    `json:"username"`
	FullName    string    `json:"full_name"`
	DisplayName string    `json:"display_name"`
	Email       string    `json:"email"`
	Role        string    `json:"role"`
	Status      string    `json:"status"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}

func ToProfileResponse(p *entity.Profile) ProfileResponse {
	return ProfileResponse{
		ID:          p.ID,
		Username:    p.Username,
		FullName:    p.FullName,
		DisplayName: p.DisplayName(),
		Email:       p.DisplayEmail(),
		Role:        string(p.Role),
		Status:      string(p.Status),
		CreatedAt:   p.CreatedAt,
		UpdatedAt:   p.UpdatedAt,
	}
}

func ToProfileResponses(items []*entity.Profile) []ProfileResponse {
	out := make([]ProfileResponse, 0, len(items))
	for _, p := range items {
		out = append(out, ToProfileResponse(p))
	}
	return out
}

type ProfileCriteria struct {
	Search        string `form:"search"`
	Status        string `form:"status"`
	Role          string `form:"role"`
	Page          int    `form:"-"`
	PerPage       int    `form:"-"`
	CriteriaToken string `form:"criteria_token"`
}

func (q ProfileCriteria) Criteria() filter.Criteria {
	return filter.Criteria{Search: q.Search, Status: q.Status, Role: q.Role}
}

type ThemeRequest struct {
	DarkMode *bool `json:"dark_mode" binding:"required"`
}

type ThemeResponse struct {
	DarkMode bool `json:"dark_mode"`
}
