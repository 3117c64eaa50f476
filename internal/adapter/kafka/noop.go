package kafka

import (
	"context"

	"github.com/niksmo/storefront/internal/core/domain"
	"github.com/niksmo/storefront/internal/core/port"
)

var _ port.ClientEventProducer = (*NoopProducer)(nil)

// NoopProducer discards events, used when telemetry is disabled.
type NoopProducer struct{}

func (NoopProducer) ProduceEvent(context.Context, domain.ClientEvent) error {
	return nil
}

func (NoopProducer) Close() {}
