package gateway

import (
	"context"

	"github.com/piresc/mycompta/internal/pkg/constants"
	"github.com/piresc/mycompta/internal/pkg/models"
	nr "github.com/piresc/mycompta/internal/pkg/newrelic"
	"github.com/piresc/mycompta/services/transactions"
)

// Publisher sends a JSON-encoded message to a topic
type Publisher interface {
	Publish(topic string, message interface{}) error
}

// Breaker guards calls to a dependency that may be down
type Breaker interface {
	Execute(ctx context.Context, fn func(context.Context) error) error
}

// NSQGateway publishes transaction events to NSQ
type NSQGateway struct {
	producer Publisher
	breaker  Breaker
}

// NewNSQGateway creates a new NSQ gateway. breaker may be nil.
func NewNSQGateway(producer Publisher, breaker Breaker) *NSQGateway {
	return &NSQGateway{producer: producer, breaker: breaker}
}

var _ transactions.TransactionGW = (*NSQGateway)(nil)

// PublishTransactionCreated announces a saved transaction
func (g *NSQGateway) PublishTransactionCreated(ctx context.Context, transaction *models.Transaction) error {
	event := models.NewTransactionCreatedEvent(transaction)
	publish := func(context.Context) error {
		return g.producer.Publish(constants.TopicTransactionCreated, event)
	}
	return nr.WithSegment(ctx, "NSQ.Publish "+constants.TopicTransactionCreated, func() error {
		if g.breaker == nil {
			return publish(ctx)
		}
		return g.breaker.Execute(ctx, publish)
	})
}

// NoopGateway drops every event. Used when no nsqd is configured.
type NoopGateway struct{}

// NewNoopGateway creates a gateway that publishes nothing
func NewNoopGateway() *NoopGateway {
	return &NoopGateway{}
}

var _ transactions.TransactionGW = (*NoopGateway)(nil)

// PublishTransactionCreated does nothing
func (NoopGateway) PublishTransactionCreated(context.Context, *models.Transaction) error {
	return nil
}
