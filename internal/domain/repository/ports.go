package repository

import (
	"context"
	"time"

	"github.com/google/uuid"
)

// SnapshotCache хранит снимки коллекций между запросами.
type SnapshotCache interface {
	GetOrSet(ctx context.Context, key string, ttl time.Duration, fn func() (interface{}, error)) (interface{}, error)
	InvalidateByPrefix(prefix string)
}

// EventPublisher рассылает события изменений подключённым администраторам.
// Publish адресован всем, PublishTo только соединениям одного профиля.
type EventPublisher interface {
	Publish(ctx context.Context, event string, data any)
	PublishTo(ctx context.Context, profileID uuid.UUID, event string, data any)
}

// Ключи снимков и имена событий.
const (
	ComplaintsSnapshotPrefix = "complaints:"
	ProfilesSnapshotPrefix   = "profiles:"

	EventComplaintCreated       = "complaint.created"
	EventComplaintUpdated       = "complaint.updated"
	EventComplaintDeleted       = "complaint.deleted"
	EventComplaintStatusChanged = "complaint.status_changed"
	EventProfileStatusChanged   = "profile.status_changed"
	EventThemeChanged           = "preference.theme_changed"
	EventSessionRevoked         = "session.revoked"
)
