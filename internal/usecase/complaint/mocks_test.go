package complaint_test

import (
	"context"
	"sort"
	"sync"
	"testing"
	"time"

	"github.com/google/uuid"

	"github.com/ignatzorin/complaints-dashboard/internal/domain/entity"
	"github.com/ignatzorin/complaints-dashboard/internal/domain/valueobject"
	"github.com/ignatzorin/complaints-dashboard/internal/pkg/apperror"
	"github.com/ignatzorin/complaints-dashboard/internal/service"
	"github.com/ignatzorin/complaints-dashboard/internal/usecase/complaint"
)

var fixedNow = time.Date(2024, 5, 20, 12, 0, 0, 0, time.UTC)

type mockComplaintRepository struct {
	mu        sync.Mutex
	items     map[int64]*entity.Complaint
	nextID    int64
	listCalls int
	failWrite error
}

func newMockComplaintRepository(items ...*entity.Complaint) *mockComplaintRepository {
	m := &mockComplaintRepository{items: make(map[int64]*entity.Complaint), nextID: 1}
	for _, c := range items {
		m.items[c.ID] = c.Clone()
		if c.ID >= m.nextID {
			m.nextID = c.ID + 1
		}
	}
	return m
}

func (m *mockComplaintRepository) Create(ctx context.Context, c *entity.Complaint) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.failWrite != nil {
		return m.failWrite
	}
	c.ID = m.nextID
	m.nextID++
	m.items[c.ID] = c.Clone()
	return nil
}

func (m *mockComplaintRepository) Update(ctx context.Context, c *entity.Complaint) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.failWrite != nil {
		return m.failWrite
	}
	if _, ok := m.items[c.ID]; !ok {
		return apperror.ErrComplaintNotFound
	}
	m.items[c.ID] = c.Clone()
	return nil
}

func (m *mockComplaintRepository) UpdateStatus(ctx context.Context, c *entity.Complaint) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.failWrite != nil {
		return m.failWrite
	}
	stored, ok := m.items[c.ID]
	if !ok {
		return apperror.ErrComplaintNotFound
	}
	stored.Status = c.Status
	stored.UpdatedAt = c.UpdatedAt
	stored.ResolvedAt = c.Clone().ResolvedAt
	return nil
}

func (m *mockComplaintRepository) UpdateMany(ctx context.Context, items []*entity.Complaint) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.failWrite != nil {
		return m.failWrite
	}
	for _, c := range items {
		if _, ok := m.items[c.ID]; !ok {
			return apperror.ErrComplaintNotFound
		}
	}
	for _, c := range items {
		m.items[c.ID] = c.Clone()
	}
	return nil
}

func (m *mockComplaintRepository) Delete(ctx context.Context, id int64) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.failWrite != nil {
		return m.failWrite
	}
	if _, ok := m.items[id]; !ok {
		return apperror.ErrComplaintNotFound
	}
	delete(m.items, id)
	return nil
}

func (m *mockComplaintRepository) FindByID(ctx context.Context, id int64) (*entity.Complaint, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if c, ok := m.items[id]; ok {
		return c.Clone(), nil
	}
	return nil, apperror.ErrComplaintNotFound
}

func (m *mockComplaintRepository) FindByIDs(ctx context.Context, ids []int64) ([]*entity.Complaint, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	out := make([]*entity.Complaint, 0, len(ids))
	for _, id := range ids {
		if c, ok := m.items[id]; ok {
			out = append(out, c.Clone())
		}
	}
	return out, nil
}

func (m *mockComplaintRepository) ListAll(ctx context.Context) ([]*entity.Complaint, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.listCalls++
	out := make([]*entity.Complaint, 0, len(m.items))
	for _, c := range m.items {
		out = append(out, c.Clone())
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].CreatedAt.Equal(out[j].CreatedAt) {
			return out[i].ID > out[j].ID
		}
		return out[i].CreatedAt.After(out[j].CreatedAt)
	})
	return out, nil
}

type publishedEvent struct {
	name string
	data any
}

type recordingPublisher struct {
	mu     sync.Mutex
	events []publishedEvent
}

func (p *recordingPublisher) Publish(ctx context.Context, event string, data any) {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.events = append(p.events, publishedEvent{name: event, data: data})
}

func (p *recordingPublisher) PublishTo(ctx context.Context, profileID uuid.UUID, event string, data any) {
	p.Publish(ctx, event, data)
}

func (p *recordingPublisher) names() []string {
	p.mu.Lock()
	defer p.mu.Unlock()
	out := make([]string, 0, len(p.events))
	for _, e := range p.events {
		out = append(out, e.name)
	}
	return out
}

type fixture struct {
	repo   *mockComplaintRepository
	cache  *service.CacheService
	events *recordingPublisher
	deps   complaint.Deps
}

func newFixture(t *testing.T, items ...*entity.Complaint) *fixture {
	t.Helper()
	f := &fixture{
		repo:   newMockComplaintRepository(items...),
		cache:  service.NewCacheService(time.Hour),
		events: &recordingPublisher{},
	}
	t.Cleanup(f.cache.Close)
	f.deps = complaint.Deps{
		Repo:   f.repo,
		Cache:  f.cache,
		Events: f.events,
		TTL:    time.Minute,
		Now:    func() time.Time { return fixedNow },
	}
	return f
}

func newComplaint(id int64, title, category string, status valueobject.ComplaintStatus, created time.Time) *entity.Complaint {
	return &entity.Complaint{
		ID:        id,
		Title:     title,
		Category:  category,
		Status:    status,
		Priority:  valueobject.PriorityMedium,
		Reporter:  "Resident " + title,
		CreatedAt: created,
		UpdatedAt: created,
	}
}
