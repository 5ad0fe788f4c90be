package ws

import (
	"context"

	"github.com/google/uuid"

	"github.com/ignatzorin/complaints-dashboard/internal/logger"
)

// Relay пересылает кадр всем экземплярам сервиса, включая текущий.
type Relay interface {
	Relay(ctx context.Context, env Envelope) error
}

// Shape переводит данные события в форму для клиента.
type Shape func(data any) any

// Publisher реализует repository.EventPublisher поверх хаба.
type Publisher struct {
	hub   *Hub
	relay Relay
	shape Shape
}

// NewPublisher relay может быть nil, тогда события доставляются только
// подключениям этого экземпляра. shape тоже может быть nil.
func NewPublisher(hub *Hub, relay Relay, shape Shape) *Publisher {
	return &Publisher{hub: hub, relay: relay, shape: shape}
}

func (p *Publisher) Publish(ctx context.Context, event string, data any) {
	p.PublishTo(ctx, uuid.Nil, event, data)
}

func (p *Publisher) PublishTo(ctx context.Context, profileID uuid.UUID, event string, data any) {
	if p.shape != nil {
		data = p.shape(data)
	}
	env, err := NewEnvelope(profileID, event, data)
	if err != nil {
		logger.Component("ws").WithError(err).WithField("event", event).Error("ws: событие не отправлено")
		return
	}

	if p.relay != nil {
		err := p.relay.Relay(ctx, env)
		if err == nil {
			return
		}
		logger.Component("ws").WithError(err).WithField("event", event).Warn("ws: relay недоступен, доставляем локально")
	}
	p.hub.Deliver(env)
}
