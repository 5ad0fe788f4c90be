package profile

import (
	"context"
	"time"

	"github.com/ignatzorin/complaints-dashboard/internal/domain/entity"
	"github.com/ignatzorin/complaints-dashboard/internal/domain/repository"
)

const snapshotKey = repository.ProfilesSnapshotPrefix + "all"

const DefaultSnapshotTTL = 30 * time.Second

// Deps зависимости сценариев работы с пользователями. Cache и Events могут быть nil.
type Deps struct {
	Repo   repository.ProfileRepository
	Cache  repository.SnapshotCache
	Events repository.EventPublisher
	TTL    time.Duration
	Now    func() time.Time
}

func (d Deps) now() time.Time {
	if d.Now != nil {
		return d.Now()
	}
	return time.Now()
}

func (d Deps) loadAll(ctx context.Context) ([]*entity.Profile, error) {
	if d.Cache == nil {
		return d.Repo.ListAll(ctx)
	}

	ttl := d.TTL
	if ttl <= 0 {
		ttl = DefaultSnapshotTTL
	}
	v, err := d.Cache.GetOrSet(ctx, snapshotKey, ttl, func() (interface{}, error) {
		return d.Repo.ListAll(ctx)
	})
	if err != nil {
		return nil, err
	}
	return v.([]*entity.Profile), nil
}

func (d Deps) invalidate() {
	if d.Cache != nil {
		d.Cache.InvalidateByPrefix(repository.ProfilesSnapshotPrefix)
	}
}

func (d Deps) publish(ctx context.Context, event string, data any) {
	if d.Events != nil {
		d.Events.Publish(ctx, event, data)
	}
}
