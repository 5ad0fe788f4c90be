package entity_test

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ignatzorin/complaints-dashboard/internal/domain/entity"
	"github.com/ignatzorin/complaints-dashboard/internal/domain/valueobject"
	"github.com/ignatzorin/complaints-dashboard/internal/pkg/apperror"
)

func TestNewComplaint_Defaults(t *testing.T) {
	now := time.Date(2025, 6, 1, 10, 0, 0, 0, time.UTC)

	c, err := entity.NewComplaint(entity.NewComplaintInput{
		Title:    "  Яма на дороге ",
		UserName: "ivan",
		Images:   []string{"", "https://cdn/1.jpg"},
	}, now)
	require.NoError(t, err)

	assert.Equal(t, "Яма на дороге", c.Title)
	assert.Equal(t, valueobject.ComplaintStatusAssessed, c.Status)
	assert.Equal(t, valueobject.PriorityMedium, c.Priority)
	assert.Equal(t, entity.DefaultCategory, c.CategoryOrDefault())
	assert.Equal(t, valueobject.ImageRefs{"https://cdn/1.jpg"}, c.Images)
	assert.Nil(t, c.ResolvedAt)
	assert.Equal(t, now, c.CreatedAt)
	assert.Equal(t, now, c.UpdatedAt)
}

func TestNewComplaint_RequiresTitle(t *testing.T) {
	_, err := entity.NewComplaint(entity.NewComplaintInput{Title: "   "}, time.Now())

	assert.True(t, apperror.IsValidation(err))
}

func TestComplaint_ReporterFallback(t *testing.T) {
	tests := []struct {
		name string
		c    entity.Complaint
		want string
	}{
		{"reporter", entity.Complaint{Reporter: "R", UserName: "U"}, "R"},
		{"user_name", entity.Complaint{UserName: "U", UserEmail: "e@x"}, "U"},
		{"user_email", entity.Complaint{UserName: " ", UserEmail: "e@x"}, "e@x"},
		{"created_by", entity.Complaint{CreatedBy: "C"}, "C"},
		{"anonymous", entity.Complaint{}, entity.AnonymousReporter},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, tt.c.ReporterName())
		})
	}
}

func TestComplaint_ResolvedAtSetOnceAndKept(t *testing.T) {
	created := time.Date(2025, 6, 1, 8, 0, 0, 0, time.UTC)
	c := &entity.Complaint{ID: 42, Status: valueobject.ComplaintStatusAssessed, CreatedAt: created, UpdatedAt: created}

	firstResolve := created.Add(2 * time.Hour)
	require.NoError(t, c.ChangeStatus(valueobject.ComplaintStatusResolved, firstResolve))
	require.NotNil(t, c.ResolvedAt)
	assert.Equal(t, firstResolve, *c.ResolvedAt)
	assert.False(t, c.ResolvedAt.Before(c.CreatedAt))

	require.NoError(t, c.ChangeStatus(valueobject.ComplaintStatusInProgress, firstResolve.Add(time.Hour)))
	assert.Equal(t, valueobject.ComplaintStatusInProgress, c.Status)
	assert.Equal(t, firstResolve, *c.ResolvedAt)

	later := firstResolve.Add(5 * time.Hour)
	require.NoError(t, c.ChangeStatus(valueobject.ComplaintStatusResolved, later))
	assert.Equal(t, firstResolve, *c.ResolvedAt)
	assert.Equal(t, later, c.UpdatedAt)
}

func TestComplaint_ResolvedAtNeverBeforeCreatedAt(t *testing.T) {
	created := time.Date(2025, 6, 1, 8, 0, 0, 0, time.UTC)
	c := &entity.Complaint{CreatedAt: created}

	require.NoError(t, c.ChangeStatus(valueobject.ComplaintStatusResolved, created.Add(-time.Minute)))

	assert.Equal(t, created, *c.ResolvedAt)
}

func TestComplaint_ChangeStatusRejectsUnknown(t *testing.T) {
	c := &entity.Complaint{Status: valueobject.ComplaintStatusAssessed}

	err := c.ChangeStatus("Archived", time.Now())

	assert.True(t, apperror.IsValidation(err))
	assert.Equal(t, valueobject.ComplaintStatusAssessed, c.Status)
}

func TestComplaint_AssignMovesToInProgress(t *testing.T) {
	c := &entity.Complaint{Status: valueobject.ComplaintStatusAssessed}

	require.NoError(t, c.Assign(" crew-7 ", time.Now()))

	assert.Equal(t, valueobject.ComplaintStatusInProgress, c.Status)
	require.NotNil(t, c.AssignedTo)
	assert.Equal(t, "crew-7", *c.AssignedTo)
	assert.Error(t, c.Assign("", time.Now()))
}

func TestComplaint_ApplyPatch(t *testing.T) {
	c := &entity.Complaint{Title: "old", Priority: valueobject.PriorityMedium}
	title, category, priority := "new", "Water", "high"

	require.NoError(t, c.Apply(entity.ComplaintPatch{Title: &title, Category: &category, Priority: &priority}, time.Now()))

	assert.Equal(t, "new", c.Title)
	assert.Equal(t, "Water", c.Category)
	assert.Equal(t, valueobject.PriorityHigh, c.Priority)

	empty := ""
	assert.Error(t, c.Apply(entity.ComplaintPatch{Title: &empty}, time.Now()))
}

func TestComplaint_CloneIsIndependent(t *testing.T) {
	resolved := time.Now()
	c := &entity.Complaint{ID: 1, Images: valueobject.ImageRefs{"a"}, ResolvedAt: &resolved}

	cp := c.Clone()
	cp.Images[0] = "b"
	cp.Status = valueobject.ComplaintStatusResolved

	assert.Equal(t, "a", c.Images[0])
	assert.NotSame(t, c.ResolvedAt, cp.ResolvedAt)
	assert.Empty(t, c.Status)
}

func TestProfile_DisplayFallbacks(t *testing.T) {
	assert.Equal(t, "Anna K", (&entity.Profile{FullName: "Anna K", Username: "anna"}).DisplayName())
	assert.Equal(t, "anna", (&entity.Profile{Username: "anna"}).DisplayName())
	assert.Equal(t, "anna.k", (&entity.Profile{Email: "anna.k@city.gov"}).DisplayName())
	assert.Equal(t, entity.UnknownUserName, (&entity.Profile{}).DisplayName())
	assert.Equal(t, entity.NoEmail, (&entity.Profile{}).DisplayEmail())
}

func TestProfile_AccessAndToggle(t *testing.T) {
	p := &entity.Profile{Role: valueobject.RoleAdmin, Status: valueobject.UserStatusActive}
	assert.True(t, p.CanAccessDashboard())

	p.ToggleStatus(time.Now())
	assert.Equal(t, valueobject.UserStatusBlocked, p.Status)
	assert.False(t, p.CanAccessDashboard())

	assert.Error(t, p.SetStatus("Deleted", time.Now()))
	assert.Equal(t, valueobject.UserStatusBlocked, p.Status)

	regular := &entity.Profile{Role: valueobject.RoleUser, Status: valueobject.UserStatusActive}
	assert.False(t, regular.CanAccessDashboard())
}
