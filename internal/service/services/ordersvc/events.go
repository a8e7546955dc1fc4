package ordersvc

import (
	"time"

	"github.com/storefront-labs/oms/internal/service/models/outbox"
)

func outboxMessage(routingKey string, payload []byte, maxRetries int, now time.Time) outbox.Message {
	return outbox.Message{
		QueueName:   eventsQueue,
		RoutingKey:  routingKey,
		Payload:     payload,
		ContentType: "application/json",
		MaxRetries:  maxRetries,
		CreatedAt:   now,
		UpdatedAt:   now,
		NextRetryAt: now,
	}
}
