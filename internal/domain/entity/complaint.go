package entity

import (
	"strconv"
	"strings"
	"time"

	"github.com/ignatzorin/complaints-dashboard/internal/domain/valueobject"
	"github.com/ignatzorin/complaints-dashboard/internal/pkg/apperror"
)

const (
	DefaultCategory     = "Uncategorized"
	AnonymousReporter   = "Anonymous"
	maxComplaintTitle   = 200
	maxComplaintDetails = 5000
)

// Complaint обращение жителя. Идентификатор выдаёт хранилище.
type Complaint struct {
	ID          int64
	Title       string
	Description string
	Category    string
	Status      valueobject.ComplaintStatus
	Priority    valueobject.Priority
	Reporter    string
	UserName    string
	UserEmail   string
	CreatedBy   string
	Images      valueobject.ImageRefs
	AssignedTo  *string
	CreatedAt   time.Time
	UpdatedAt   time.Time
	ResolvedAt  *time.Time
}

type NewComplaintInput struct {
	Title       string
	Description string
	Category    string
	Priority    string
	Reporter    string
	UserName    string
	UserEmail   string
	CreatedBy   string
	Images      []string
}

func NewComplaint(in NewComplaintInput, now time.Time) (*Complaint, error) {
	title := strings.TrimSpace(in.Title)
	if title == "" {
		return nil, apperror.New(apperror.ErrCodeValidation, "заголовок обращения обязателен")
	}
	if len([]rune(title)) > maxComplaintTitle {
		return nil, apperror.New(apperror.ErrCodeValidation, "заголовок обращения слишком длинный")
	}
	if len([]rune(in.Description)) > maxComplaintDetails {
		return nil, apperror.New(apperror.ErrCodeValidation, "описание обращения слишком длинное")
	}

	priority, err := valueobject.NewPriority(in.Priority)
	if err != nil {
		return nil, err
	}

	return &Complaint{
		Title:       title,
		Description: strings.TrimSpace(in.Description),
		Category:    strings.TrimSpace(in.Category),
		Status:      valueobject.ComplaintStatusAssessed,
		Priority:    priority,
		Reporter:    strings.TrimSpace(in.Reporter),
		UserName:    strings.TrimSpace(in.UserName),
		UserEmail:   strings.TrimSpace(in.UserEmail),
		CreatedBy:   strings.TrimSpace(in.CreatedBy),
		Images:      valueobject.NewImageRefs(in.Images...),
		CreatedAt:   now,
		UpdatedAt:   now,
	}, nil
}

// IDString идентификатор в десятичной записи, по нему работает поиск.
func (c *Complaint) IDString() string {
	return strconv.FormatInt(c.ID, 10)
}

// CategoryOrDefault пустая категория отображается как Uncategorized.
func (c *Complaint) CategoryOrDefault() string {
	if strings.TrimSpace(c.Category) == "" {
		return DefaultCategory
	}
	return c.Category
}

// ReporterName первое непустое поле автора.
func (c *Complaint) ReporterName() string {
	for _, candidate := range []string{c.Reporter, c.UserName, c.UserEmail, c.CreatedBy} {
		if v := strings.TrimSpace(candidate); v != "" {
			return v
		}
	}
	return AnonymousReporter
}

// ChangeStatus меняет статус. resolved_at выставляется только при первом
// переходе в Resolved и больше не меняется.
func (c *Complaint) ChangeStatus(status valueobject.ComplaintStatus, now time.Time) error {
	if !status.IsValid() {
		return apperror.New(apperror.ErrCodeValidation, "некорректный статус обращения")
	}
	c.Status = status
	c.UpdatedAt = now
	if status.IsResolved() && c.ResolvedAt == nil {
		resolved := now
		if resolved.Before(c.CreatedAt) {
			resolved = c.CreatedAt
		}
		c.ResolvedAt = &resolved
	}
	return nil
}

// Assign назначает исполнителя и переводит обращение в работу.
func (c *Complaint) Assign(assignee string, now time.Time) error {
	assignee = strings.TrimSpace(assignee)
	if assignee == "" {
		return apperror.New(apperror.ErrCodeValidation, "исполнитель обязателен")
	}
	c.AssignedTo = &assignee
	return c.ChangeStatus(valueobject.ComplaintStatusInProgress, now)
}

type ComplaintPatch struct {
	Title       *string
	Description *string
	Category    *string
	Priority    *string
}

func (c *Complaint) Apply(p ComplaintPatch, now time.Time) error {
	if p.Title != nil {
		title := strings.TrimSpace(*p.Title)
		if title == "" {
			return apperror.New(apperror.ErrCodeValidation, "заголовок обращения обязателен")
		}
		if len([]rune(title)) > maxComplaintTitle {
			return apperror.New(apperror.ErrCodeValidation, "заголовок обращения слишком длинный")
		}
		c.Title = title
	}
	if p.Description != nil {
		if len([]rune(*p.Description)) > maxComplaintDetails {
			return apperror.New(apperror.ErrCodeValidation, "описание обращения слишком длинное")
		}
		c.Description = strings.TrimSpace(*p.Description)
	}
	if p.Category != nil {
		c.Category = strings.TrimSpace(*p.Category)
	}
	if p.Priority != nil {
		priority, err := valueobject.NewPriority(*p.Priority)
		if err != nil {
			return err
		}
		c.Priority = priority
	}
	c.UpdatedAt = now
	return nil
}

func (c *Complaint) AttachImage(url string, now time.Time) {
	c.Images = c.Images.Append(url)
	c.UpdatedAt = now
}

// Clone возвращает независимую копию, кэш отдаёт снимки только так.
func (c *Complaint) Clone() *Complaint {
	cp := *c
	cp.Images = append(valueobject.ImageRefs(nil), c.Images...)
	if c.AssignedTo != nil {
		v := *c.AssignedTo
		cp.AssignedTo = &v
	}
	if c.ResolvedAt != nil {
		v := *c.ResolvedAt
		cp.ResolvedAt = &v
	}
	return &cp
}
