package service

import (
	"context"

	"cadastre/internal/domain/entity"
)

// EventPublisher announces property changes (registration, approval, moves
// on the map, payments) to the live notification hub.
type EventPublisher interface {
	PublishPropertyEvent(ctx context.Context, event *entity.PropertyEvent) error
	Close() error
}
