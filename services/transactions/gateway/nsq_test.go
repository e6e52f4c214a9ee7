package gateway

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/piresc/mycompta/internal/pkg/circuitbreaker"
	"github.com/piresc/mycompta/internal/pkg/models"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type recordingPublisher struct {
	topic   string
	message interface{}
	err     error
}

func (r *recordingPublisher) Publish(topic string, message interface{}) error {
	r.topic = topic
	r.message = message
	return r.err
}

func testTransaction(t *testing.T) *models.Transaction {
	tx, err := models.NewTransaction(models.TransactionParams{
		ID:        "tx-1",
		UserID:    "alice",
		Amount:    decimal.RequireFromString("100"),
		TVARate:   decimal.RequireFromString("20"),
		CreatedAt: time.Date(2024, 5, 2, 10, 0, 0, 0, time.UTC),
	})
	require.NoError(t, err)
	return tx
}

func TestNSQGateway_PublishTransactionCreated(t *testing.T) {
	publisher := &recordingPublisher{}
	gw := NewNSQGateway(publisher, nil)

	err := gw.PublishTransactionCreated(context.Background(), testTransaction(t))
	require.NoError(t, err)

	assert.Equal(t, "transaction.created", publisher.topic)
	event, ok := publisher.message.(models.TransactionCreatedEvent)
	require.True(t, ok)
	assert.Equal(t, "tx-1", event.TransactionID)
	assert.Equal(t, "alice", event.UserID)
	assert.Equal(t, 20.0, event.TVA)
	assert.Equal(t, 120.0, event.Total)
	assert.Equal(t, 2024, event.Year)
}

func TestNSQGateway_PublishError(t *testing.T) {
	gw := NewNSQGateway(&recordingPublisher{err: errors.New("nsqd down")}, nil)

	err := gw.PublishTransactionCreated(context.Background(), testTransaction(t))
	assert.EqualError(t, err, "nsqd down")
}

func TestNSQGateway_BreakerStopsPublishing(t *testing.T) {
	publisher := &countingPublisher{err: errors.New("nsqd down")}
	breaker := circuitbreaker.New(circuitbreaker.Config{Name: "nsq", FailureThreshold: 2, Timeout: time.Hour})
	gw := NewNSQGateway(publisher, breaker)
	tx := testTransaction(t)

	for i := 0; i < 2; i++ {
		assert.EqualError(t, gw.PublishTransactionCreated(context.Background(), tx), "nsqd down")
	}
	err := gw.PublishTransactionCreated(context.Background(), tx)

	assert.ErrorIs(t, err, circuitbreaker.ErrOpen)
	assert.Equal(t, 2, publisher.calls)
}

type countingPublisher struct {
	calls int
	err   error
}

func (c *countingPublisher) Publish(string, interface{}) error {
	c.calls++
	return c.err
}

func TestNoopGateway(t *testing.T) {
	assert.NoError(t, NewNoopGateway().PublishTransactionCreated(context.Background(), testTransaction(t)))
}
