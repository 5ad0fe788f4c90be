package dto

import (
	"time"

	"github.com/ignatzorin/complaints-dashboard/internal/domain/entity"
	"github.com/ignatzorin/complaints-dashboard/internal/domain/filter"
	"github.com/ignatzorin/complaints-dashboard/internal/domain/valueobject"
)

type CreateComplaintRequest struct {
	Title       string                `json:"title" binding:"required"`
	Description string                `json:"description"`
	Category    string                `json:"category"`
	Priority    string                `json:"priority"`
	Reporter    string                `json:"reporter"`
	UserName    string                `json:"user_name"`
	UserEmail   string                `json:"user_email"`
	CreatedBy   string                `json:"created_by"`
	ImageURL    valueobject.ImageRefs `json:"image_url"`
}

func (r CreateComplaintRequest) ToInput() entity.NewComplaintInput {
	return entity.NewComplaintInput{
		Title:       r.Title,
		Description: r.Description,
		Category:    r.Category,
		Priority:    r.Priority,
		Reporter:    r.Reporter,
		UserName:    r.UserName,
		UserEmail:   r.UserEmail,
		CreatedBy:   r.CreatedBy,
		Images:      r.ImageURL,
	}
}

// UpdateComplaintRequest отсутствующее поле не меняется.
type UpdateComplaintRequest struct {
	Title       *string `json:"title"`
	Description *string `json:"description"`
	Category    *string `json:"category"`
	Priority    *string `json:"priority"`
}

func (r UpdateComplaintRequest) ToPatch() entity.ComplaintPatch {
	return entity.ComplaintPatch{
		Title:       r.Title,
		Description: r.Description,
		Category:    r.Category,
		Priority:    r.Priority,
	}
}

type UpdateStatusRequest struct {
	Status string `json:"status" binding:"required"`
}

type BulkStatusRequest struct {
	IDs    []int64 `json:"ids" binding:"required"`
	Status string  `json:"status" binding:"required"`
}

type AssignRequest struct {
	AssignedTo string `json:"assigned_to" binding:"required"`
}

type ComplaintResponse struct {
	ID          int64      `json:"id"`
	Title       string     `json:"title"`
	Description string     `json:"description"`
	Category    string     `json:"category"`
	Status      string     `json:"status"`
	Priority    string     `json:"priority"`
	Reporter    string     `json:"reporter"`
	UserEmail   string     `json:"user_email,omitempty"`
	CreatedBy   string     `json:"created_by,omitempty"`
	ImageURL    string     `json:"image_url,omitempty"`
	Images      []string   `json:"images"`
	AssignedTo  *string    `json:"assigned_to"`
	CreatedAt   time.Time  `json:"created_at"`
	UpdatedAt   time.Time  `json:"updated_at"`
	ResolvedAt  *time.Time `json:"resolved_at"`
}

func ToComplaintResponse(c *entity.Complaint) ComplaintResponse {
	images := []string(c.Images)
	if images == nil {
		images = []string{}
	}
	return ComplaintResponse{
		ID:          c.ID,
		Title:       c.Title,
		Description: c.Description,
		Category:    c.CategoryOrDefault(),
		Status:      string(c.Status),
		Priority:    string(c.Priority),
		Reporter:    c.ReporterName(),
		UserEmail:   c.UserEmail,
		CreatedBy:   c.CreatedBy,
		ImageURL:    c.Images.First(),
		Images:      images,
		AssignedTo:  c.AssignedTo,
		CreatedAt:   c.CreatedAt,
		UpdatedAt:   c.UpdatedAt,
		ResolvedAt:  c.ResolvedAt,
	}
}

func ToComplaintResponses(items []*entity.Complaint) []ComplaintResponse {
	out := make([]ComplaintResponse, 0, len(items))
	for _, c := range items {
		out = append(out, ToComplaintResponse(c))
	}
	return out
}

// ComplaintCriteria параметры строки запроса списка обращений.
// Page и PerPage заполняет handler: нечисловое значение значит "по умолчанию".
type ComplaintCriteria struct {
	Search        string `form:"search"`
	Category      string `form:"category"`
	Status        string `form:"status"`
	Priority      string `form:"priority"`
	StartDate     string `form:"start_date"`
	EndDate       string `form:"end_date"`
	Page          int    `form:"-"`
	PerPage       int    `form:"-"`
	CriteriaToken string `form:"criteria_token"`
}

func (q ComplaintCriteria) Criteria() filter.Criteria {
	return filter.Criteria{
		Search:    q.Search,
		Category:  q.Category,
		Status:    q.Status,
		Priority:  q.Priority,
		StartDate: q.StartDate,
		EndDate:   q.EndDate,
	}
}
