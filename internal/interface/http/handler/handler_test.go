package handler

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ignatzorin/complaints-dashboard/internal/domain/entity"
	"github.com/ignatzorin/complaints-dashboard/internal/domain/valueobject"
	"github.com/ignatzorin/complaints-dashboard/internal/pkg/apperror"
	"github.com/ignatzorin/complaints-dashboard/internal/usecase/complaint"
	"github.com/ignatzorin/complaints-dashboard/internal/usecase/preference"
	"github.com/ignatzorin/complaints-dashboard/internal/usecase/profile"
)

var testNow = time.Date(2024, 5, 20, 12, 0, 0, 0, time.UTC)

type memComplaints struct {
	items  map[int64]*entity.Complaint
	nextID int64
}

func (m *memComplaints) Create(ctx context.Context, c *entity.Complaint) error {
	m.nextID++
	c.ID = m.nextID
	m.items[c.ID] = c.Clone()
	return nil
}

func (m *memComplaints) Update(ctx context.Context, c *entity.Complaint) error {
	if _, ok := m.items[c.ID]; !ok {
		return apperror.ErrComplaintNotFound
	}
	m.items[c.ID] = c.Clone()
	return nil
}

func (m *memComplaints) UpdateStatus(ctx context.Context, c *entity.Complaint) error {
	return m.Update(ctx, c)
}

func (m *memComplaints) UpdateMany(ctx context.Context, items []*entity.Complaint) error {
	for _, c := range items {
		if err := m.Update(ctx, c); err != nil {
			return err
		}
	}
	return nil
}

func (m *memComplaints) Delete(ctx context.Context, id int64) error {
	if _, ok := m.items[id]; !ok {
		return apperror.ErrComplaintNotFound
	}
	delete(m.items, id)
	return nil
}

func (m *memComplaints) FindByID(ctx context.Context, id int64) (*entity.Complaint, error) {
	if c, ok := m.items[id]; ok {
		return c.Clone(), nil
	}
	return nil, apperror.ErrComplaintNotFound
}

func (m *memComplaints) FindByIDs(ctx context.Context, ids []int64) ([]*entity.Complaint, error) {
	var out []*entity.Complaint
	for _, id := range ids {
		if c, ok := m.items[id]; ok {
			out = append(out, c.Clone())
		}
	}
	return out, nil
}

func (m *memComplaints) ListAll(ctx context.Context) ([]*entity.Complaint, error) {
	out := make([]*entity.Complaint, 0, len(m.items))
	for id := m.nextID; id > 0; id-- {
		if c, ok := m.items[id]; ok {
			out = append(out, c.Clone())
		}
	}
	return out, nil
}

type memImages struct{}

func (memImages) Save(ctx context.Context, folder, name string, r io.Reader) (string, int64, error) {
	n, err := io.Copy(io.Discard, r)
	return folder + "/" + name, n, err
}

func (memImages) PublicURL(path string) string { return "/uploads/" + path }

func (memImages) Delete(ctx context.Context, path string) error { return nil }

func newComplaintRouter(t *testing.T, n int) *gin.Engine {
	t.Helper()
	gin.SetMode(gin.TestMode)

	repo := &memComplaints{items: make(map[int64]*entity.Complaint)}
	for i := 1; i <= n; i++ {
		created := testNow.Add(-time.Duration(n-i) * time.Hour)
		c, err := entity.NewComplaint(entity.NewComplaintInput{Title: "Complaint", Category: "Road", Reporter: "Resident"}, created)
		require.NoError(t, err)
		require.NoError(t, repo.Create(context.Background(), c))
	}

	deps := complaint.Deps{Repo: repo, Now: func() time.Time { return testNow }}
	h := NewComplaintHandler(ComplaintUseCases{
		List:       complaint.NewListComplaintsUseCase(deps, 10),
		Get:        complaint.NewGetComplaintUseCase(deps),
		Create:     complaint.NewCreateComplaintUseCase(deps),
		Update:     complaint.NewUpdateComplaintUseCase(deps),
		Delete:     complaint.NewDeleteComplaintUseCase(deps),
		Assign:     complaint.NewAssignComplaintUseCase(deps),
		Status:     complaint.NewUpdateComplaintStatusUseCase(deps),
		BulkStatus: complaint.NewBulkUpdateStatusUseCase(deps),
		Recent:     complaint.NewRecentComplaintsUseCase(deps, 0),
		Categories: complaint.NewCategoriesUseCase(deps),
		Stats:      complaint.NewStatsUseCase(deps),
		Attach:     complaint.NewAttachImageUseCase(deps, memImages{}),
	}, 1<<20)

	r := gin.New()
	r.GET("/complaints", h.List)
	r.POST("/complaints", h.Create)
	r.PATCH("/complaints/status", h.BulkUpdateStatus)
	r.GET("/complaints/:id", h.Get)
	r.DELETE("/complaints/:id", h.Delete)
	r.PATCH("/complaints/:id/status", h.UpdateStatus)
	r.POST("/complaints/:id/images", h.AttachImage)
	return r
}

func doJSON(r http.Handler, method, path string, body any) *httptest.ResponseRecorder {
	var buf bytes.Buffer
	if body != nil {
		_ = json.NewEncoder(&buf).Encode(body)
	}
	req := httptest.NewRequest(method, path, &buf)
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

type envelope struct {
	Success    bool            `json:"success"`
	Data       json.RawMessage `json:"data"`
	Pagination struct {
		Page          int    `json:"page"`
		PerPage       int    `json:"per_page"`
		Total         int    `json:"total"`
		TotalPages    int    `json:"total_pages"`
		HasMore       bool   `json:"has_more"`
		CriteriaToken string `json:"criteria_token"`
	} `json:"pagination"`
	Error struct {
		Code string `json:"code"`
	} `json:"error"`
}

func decode(t *testing.T, w *httptest.ResponseRecorder) envelope {
	t.Helper()
	var env envelope
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &env))
	return env
}

func TestComplaintHandler_ListPaginates(t *testing.T) {
	r := newComplaintRouter(t, 25)

	w := doJSON(r, http.MethodGet, "/complaints?page=3", nil)
	require.Equal(t, http.StatusOK, w.Code)
	env := decode(t, w)
	assert.Equal(t, 3, env.Pagination.Page)
	assert.Equal(t, 25, env.Pagination.Total)
	assert.False(t, env.Pagination.HasMore)
	assert.NotEmpty(t, env.Pagination.CriteriaToken)

	var items []map[string]any
	require.NoError(t, json.Unmarshal(env.Data, &items))
	assert.Len(t, items, 5)

	w = doJSON(r, http.MethodGet, "/complaints?status=Resolved", nil)
	env = decode(t, w)
	assert.Equal(t, 0, env.Pagination.Total)
	assert.Equal(t, 1, env.Pagination.TotalPages)
}

func TestComplaintHandler_ListMalformedPagingFallsBack(t *testing.T) {
	r := newComplaintRouter(t, 25)

	for _, query := range []string{"page=abc", "page=99999999999999999999", "page=1&per_page=x"} {
		w := doJSON(r, http.MethodGet, "/complaints?"+query, nil)
		require.Equal(t, http.StatusOK, w.Code, query)
		env := decode(t, w)
		assert.Equal(t, 1, env.Pagination.Page, query)
		assert.Equal(t, 10, env.Pagination.PerPage, query)
	}

	w := doJSON(r, http.MethodGet, "/complaints?per_page=1099511627776", nil)
	require.Equal(t, http.StatusOK, w.Code)
	env := decode(t, w)
	assert.Equal(t, 100, env.Pagination.PerPage)
	var items []map[string]any
	require.NoError(t, json.Unmarshal(env.Data, &items))
	assert.Len(t, items, 25)
}

func TestComplaintHandler_UpdateStatus(t *testing.T) {
	r := newComplaintRouter(t, 3)

	w := doJSON(r, http.MethodPatch, "/complaints/2/status", map[string]string{"status": "Resolved"})
	require.Equal(t, http.StatusOK, w.Code)

	var c map[string]any
	require.NoError(t, json.Unmarshal(decode(t, w).Data, &c))
	assert.Equal(t, "Resolved", c["status"])
	assert.NotNil(t, c["resolved_at"])

	w = doJSON(r, http.MethodPatch, "/complaints/2/status", map[string]string{"status": "Closed"})
	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Equal(t, string(apperror.ErrCodeValidation), decode(t, w).Error.Code)

	w = doJSON(r, http.MethodPatch, "/complaints/99/status", map[string]string{"status": "Resolved"})
	assert.Equal(t, http.StatusNotFound, w.Code)

	w = doJSON(r, http.MethodPatch, "/complaints/2/status", map[string]string{})
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestComplaintHandler_BulkAndDelete(t *testing.T) {
	r := newComplaintRouter(t, 3)

	w := doJSON(r, http.MethodPatch, "/complaints/status", map[string]any{"ids": []int64{1, 3}, "status": "In Progress"})
	require.Equal(t, http.StatusOK, w.Code)

	w = doJSON(r, http.MethodDelete, "/complaints/1", nil)
	require.Equal(t, http.StatusOK, w.Code)

	w = doJSON(r, http.MethodGet, "/complaints/1", nil)
	assert.Equal(t, http.StatusNotFound, w.Code)

	w = doJSON(r, http.MethodGet, "/complaints/abc", nil)
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestComplaintHandler_Create(t *testing.T) {
	r := newComplaintRouter(t, 0)

	w := doJSON(r, http.MethodPost, "/complaints", map[string]any{
		"title":     "Water leak",
		"category":  "Water",
		"image_url": "https://cdn.example.com/a.jpg",
	})
	require.Equal(t, http.StatusCreated, w.Code)

	var c map[string]any
	require.NoError(t, json.Unmarshal(decode(t, w).Data, &c))
	assert.Equal(t, "Assessed", c["status"])
	assert.Equal(t, "Medium", c["priority"])
	assert.Equal(t, "https://cdn.example.com/a.jpg", c["image_url"])
	assert.Equal(t, "Anonymous", c["reporter"])

	w = doJSON(r, http.MethodPost, "/complaints", map[string]any{"category": "Water"})
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func multipartFile(t *testing.T, name string, content []byte) (*bytes.Buffer, string) {
	t.Helper()
	var body bytes.Buffer
	mw := multipart.NewWriter(&body)
	part, err := mw.CreateFormFile("file", name)
	require.NoError(t, err)
	_, err = part.Write(content)
	require.NoError(t, err)
	require.NoError(t, mw.Close())
	return &body, mw.FormDataContentType()
}

func TestComplaintHandler_AttachImage(t *testing.T) {
	r := newComplaintRouter(t, 1)
	png := []byte{0x89, 0x50, 0x4e, 0x47, 0x0d, 0x0a, 0x1a, 0x0a, 0, 0, 0, 0x0d, 0x49, 0x48, 0x44, 0x52}

	body, ct := multipartFile(t, "pothole.png", png)
	req := httptest.NewRequest(http.MethodPost, "/complaints/1/images", body)
	req.Header.Set("Content-Type", ct)
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())
	assert.Contains(t, w.Body.String(), "/uploads/1/pothole.png")

	body, ct = multipartFile(t, "notes.txt", []byte("just some text"))
	req = httptest.NewRequest(http.MethodPost, "/complaints/1/images", body)
	req.Header.Set("Content-Type", ct)
	w = httptest.NewRecorder()
	r.ServeHTTP(w, req)
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

type memProfiles struct {
	byID map[uuid.UUID]*entity.Profile
}

func (m *memProfiles) Create(ctx context.Context, p *entity.Profile) error {
	m.byID[p.ID] = p.Clone()
	return nil
}

func (m *memProfiles) FindByID(ctx context.Context, id uuid.UUID) (*entity.Profile, error) {
	if p, ok := m.byID[id]; ok {
		return p.Clone(), nil
	}
	return nil, apperror.ErrProfileNotFound
}

func (m *memProfiles) FindByEmail(ctx context.Context, email string) (*entity.Profile, error) {
	return nil, apperror.ErrProfileNotFound
}

func (m *memProfiles) ListAll(ctx context.Context) ([]*entity.Profile, error) {
	out := make([]*entity.Profile, 0, len(m.byID))
	for _, p := range m.byID {
		out = append(out, p.Clone())
	}
	return out, nil
}

func (m *memProfiles) Update(ctx context.Context, p *entity.Profile) error {
	m.byID[p.ID] = p.Clone()
	return nil
}

func (m *memProfiles) UpdateStatus(ctx context.Context, p *entity.Profile) error {
	return m.Update(ctx, p)
}

func TestProfileHandler_ToggleAndGet(t *testing.T) {
	gin.SetMode(gin.TestMode)
	resident := &entity.Profile{ID: uuid.New(), Username: "ivan", Email: "ivan@example.com", Role: valueobject.RoleUser, Status: valueobject.UserStatusActive}
	repo := &memProfiles{byID: map[uuid.UUID]*entity.Profile{resident.ID: resident}}
	deps := profile.Deps{Repo: repo}
	h := NewProfileHandler(ProfileUseCases{
		List:   profile.NewListProfilesUseCase(deps, 8),
		Get:    profile.NewGetProfileUseCase(deps),
		Update: profile.NewUpdateProfileUseCase(deps),
		Status: profile.NewSetUserStatusUseCase(deps),
		Toggle: profile.NewToggleUserStatusUseCase(deps),
		Stats:  profile.NewStatsUseCase(deps),
	})

	r := gin.New()
	r.GET("/users", h.List)
	r.GET("/users/stats", h.Stats)
	r.GET("/users/:id", h.Get)
	r.POST("/users/:id/toggle-status", h.ToggleStatus)

	w := doJSON(r, http.MethodPost, "/users/"+resident.ID.String()+"/toggle-status", nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), `"status":"Blocked"`)

	w = doJSON(r, http.MethodGet, "/users?status=blocked", nil)
	assert.Equal(t, 1, decode(t, w).Pagination.Total)

	w = doJSON(r, http.MethodGet, "/users?page=abc&per_page=-", nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, 1, decode(t, w).Pagination.Page)

	w = doJSON(r, http.MethodGet, "/users/stats", nil)
	assert.Contains(t, w.Body.String(), `"blocked":1`)

	w = doJSON(r, http.MethodGet, "/users/"+uuid.NewString(), nil)
	assert.Equal(t, http.StatusNotFound, w.Code)

	w = doJSON(r, http.MethodGet, "/users/not-a-uuid", nil)
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

type memPreferences struct {
	stored map[uuid.UUID]bool
}

func (m *memPreferences) Find(ctx context.Context, id uuid.UUID) (*entity.Preference, error) {
	return &entity.Preference{ProfileID: id, DarkMode: m.stored[id]}, nil
}

func (m *memPreferences) Upsert(ctx context.Context, p *entity.Preference) error {
	m.stored[p.ProfileID] = p.DarkMode
	return nil
}

func TestPreferenceHandler_Theme(t *testing.T) {
	gin.SetMode(gin.TestMode)
	admin := uuid.New()
	h := NewPreferenceHandler(preference.NewThemeStore(&memPreferences{stored: map[uuid.UUID]bool{}}))

	r := gin.New()
	r.Use(func(c *gin.Context) {
		if c.GetHeader("X-Test-Anon") == "" {
			c.Set("userID", admin)
		}
		c.Next()
	})
	r.GET("/theme", h.GetTheme)
	r.PUT("/theme", h.SetTheme)

	w := doJSON(r, http.MethodPut, "/theme", map[string]bool{"dark_mode": true})
	require.Equal(t, http.StatusOK, w.Code)

	w = doJSON(r, http.MethodGet, "/theme", nil)
	assert.JSONEq(t, `{"dark_mode":true}`, string(decode(t, w).Data))

	w = doJSON(r, http.MethodPut, "/theme", map[string]string{})
	assert.Equal(t, http.StatusBadRequest, w.Code)

	req := httptest.NewRequest(http.MethodGet, "/theme", strings.NewReader(""))
	req.Header.Set("X-Test-Anon", "1")
	w = httptest.NewRecorder()
	r.ServeHTTP(w, req)
	assert.Equal(t, http.StatusUnauthorized, w.Code)
}
