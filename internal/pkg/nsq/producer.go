package nsq

import (
	"encoding/json"
	"fmt"

	"github.com/nsqio/go-nsq"
	"github.com/piresc/mycompta/internal/pkg/logger"
)

// Publisher is the subset of *nsq.Producer the service depends on
type Publisher interface {
	Publish(topic string, body []byte) error
	Ping() error
	Stop()
}

// Producer publishes JSON messages to NSQ topics
type Producer struct {
	publisher Publisher
}

// NewProducer connects to the nsqd at address
func NewProducer(address string) (*Producer, error) {
	config := nsq.NewConfig()
	producer, err := nsq.NewProducer(address, config)
	if err != nil {
		return nil, fmt.Errorf("failed to create NSQ producer: %w", err)
	}
	producer.SetLoggerLevel(nsq.LogLevelWarning)

	if err := producer.Ping(); err != nil {
		producer.Stop()
		return nil, fmt.Errorf("failed to ping NSQ daemon: %w", err)
	}

	return &Producer{publisher: producer}, nil
}

// NewProducerWithPublisher wraps an existing publisher
func NewProducerWithPublisher(publisher Publisher) *Producer {
	return &Producer{publisher: publisher}
}

// Publish marshals message to JSON and sends it to topic
func (p *Producer) Publish(topic string, message interface{}) error {
	msgBytes, err := json.Marshal(message)
	if err != nil {
		return fmt.Errorf("failed to marshal message: %w", err)
	}

	if err := p.publisher.Publish(topic, msgBytes); err != nil {
		return fmt.Errorf("failed to publish message: %w", err)
	}

	logger.Debug("Published message", logger.String("topic", topic), logger.Int("bytes", len(msgBytes)))
	return nil
}

// Ping checks the connection to nsqd
func (p *Producer) Ping() error {
	return p.publisher.Ping()
}

// Stop gracefully stops the producer
func (p *Producer) Stop() {
	p.publisher.Stop()
}
