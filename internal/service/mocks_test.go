package service

import (
	"context"
	"strings"
	"sync"

	"github.com/google/uuid"

	"github.com/ignatzorin/complaints-dashboard/internal/domain/entity"
	"github.com/ignatzorin/complaints-dashboard/internal/pkg/apperror"
)

// mockProfileRepository реализует repository.ProfileRepository на map.
type mockProfileRepository struct {
	byID map[uuid.UUID]*entity.Profile
}

func newMockProfileRepository(profiles ...*entity.Profile) *mockProfileRepository {
	m := &mockProfileRepository{byID: make(map[uuid.UUID]*entity.Profile)}
	for _, p := range profiles {
		m.byID[p.ID] = p
	}
	return m
}

func (m *mockProfileRepository) Create(ctx context.Context, p *entity.Profile) error {
	if p.ID == uuid.Nil {
		p.ID = uuid.New()
	}
	m.byID[p.ID] = p.Clone()
	return nil
}

func (m *mockProfileRepository) FindByID(ctx context.Context, id uuid.UUID) (*entity.Profile, error) {
	if p, ok := m.byID[id]; ok {
		return p.Clone(), nil
	}
	return nil, apperror.ErrProfileNotFound
}

func (m *mockProfileRepository) FindByEmail(ctx context.Context, email string) (*entity.Profile, error) {
	for _, p := range m.byID {
		if strings.EqualFold(p.Email, strings.TrimSpace(email)) {
			return p.Clone(), nil
		}
	}
	return nil, apperror.ErrProfileNotFound
}

func (m *mockProfileRepository) ListAll(ctx context.Context) ([]*entity.Profile, error) {
	out := make([]*entity.Profile, 0, len(m.byID))
	for _, p := range m.byID {
		out = append(out, p.Clone())
	}
	return out, nil
}

func (m *mockProfileRepository) Update(ctx context.Context, p *entity.Profile) error {
	if _, ok := m.byID[p.ID]; !ok {
		return apperror.ErrProfileNotFound
	}
	m.byID[p.ID] = p.Clone()
	return nil
}

func (m *mockProfileRepository) UpdateStatus(ctx context.Context, p *entity.Profile) error {
	return m.Update(ctx, p)
}

type mockSessionRepository struct {
	byToken map[string]*entity.Session
}

func newMockSessionRepository() *mockSessionRepository {
	return &mockSessionRepository{byToken: make(map[string]*entity.Session)}
}

func (m *mockSessionRepository) Create(ctx context.Context, s *entity.Session) error {
	m.byToken[s.RefreshToken] = s
	return nil
}

func (m *mockSessionRepository) FindByID(ctx context.Context, id uuid.UUID) (*entity.Session, error) {
	for _, s := range m.byToken {
		if s.ID == id {
			return s, nil
		}
	}
	return nil, apperror.ErrSessionNotFound
}

func (m *mockSessionRepository) FindByRefreshToken(ctx context.Context, token string) (*entity.Session, error) {
	if s, ok := m.byToken[token]; ok {
		return s, nil
	}
	return nil, apperror.ErrSessionNotFound
}

func (m *mockSessionRepository) DeleteByRefreshToken(ctx context.Context, token string) error {
	delete(m.byToken, token)
	return nil
}

type mockComplaintRepository struct {
	nextID  int64
	created []*entity.Complaint
}

func (m *mockComplaintRepository) Create(ctx context.Context, c *entity.Complaint) error {
	m.nextID++
	c.ID = m.nextID
	m.created = append(m.created, c.Clone())
	return nil
}

func (m *mockComplaintRepository) Update(ctx context.Context, c *entity.Complaint) error { return nil }
func (m *mockComplaintRepository) UpdateStatus(ctx context.Context, c *entity.Complaint) error {
	return nil
}
func (m *mockComplaintRepository) UpdateMany(ctx context.Context, cs []*entity.Complaint) error {
	return nil
}
func (m *mockComplaintRepository) Delete(ctx context.Context, id int64) error { return nil }
func (m *mockComplaintRepository) FindByID(ctx context.Context, id int64) (*entity.Complaint, error) {
	return nil, apperror.ErrComplaintNotFound
}
func (m *mockComplaintRepository) FindByIDs(ctx context.Context, ids []int64) ([]*entity.Complaint, error) {
	return nil, nil
}
func (m *mockComplaintRepository) ListAll(ctx context.Context) ([]*entity.Complaint, error) {
	return m.created, nil
}

type publishedEvent struct {
	profileID uuid.UUID
	event     string
	data      any
}

// recordingPublisher запоминает события вместо рассылки.
type recordingPublisher struct {
	mu     sync.Mutex
	events []publishedEvent
}

func (p *recordingPublisher) Publish(ctx context.Context, event string, data any) {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.events = append(p.events, publishedEvent{event: event, data: data})
}

func (p *recordingPublisher) PublishTo(ctx context.Context, profileID uuid.UUID, event string, data any) {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.events = append(p.events, publishedEvent{profileID: profileID, event: event, data: data})
}
