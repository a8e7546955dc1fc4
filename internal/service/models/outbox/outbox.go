package outbox

import (
	"time"
)

// Message is a pending event waiting to be published to RabbitMQ. A message
// is inserted in the same transaction as the mutation it announces and is
// deleted once the broker accepts it.
type Message struct {
	ID          int64
	QueueName   string
	RoutingKey  string
	Payload     []byte
	ContentType string
	RetryCount  int
	MaxRetries  int
	LastError   string
	CreatedAt   time.Time
	UpdatedAt   time.Time
	NextRetryAt time.Time
}
