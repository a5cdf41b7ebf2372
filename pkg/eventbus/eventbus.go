// Package eventbus publishes domain events after a transaction commits.
//
// Events are notifications for other services. Delivery is best effort: a failed
// publish is logged by the caller and never undoes the committed change.
package eventbus

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/Black-And-White-Club/alliance-bot/pkg/observability/attr"
	"github.com/ThreeDotsLabs/watermill"
	wmnats "github.com/ThreeDotsLabs/watermill-nats/v2/pkg/nats"
	"github.com/ThreeDotsLabs/watermill/message"
	"github.com/ThreeDotsLabs/watermill/message/router/middleware"
	"github.com/ThreeDotsLabs/watermill/pubsub/gochannel"
	nc "github.com/nats-io/nats.go"
)

// Publisher publishes JSON payloads to a topic.
type Publisher interface {
	Publish(ctx context.Context, topic string, payload any) error
	Close() error
}

// Bus is the watermill backed Publisher.
type Bus struct {
	publisher  message.Publisher
	subscriber message.Subscriber
	logger     *slog.Logger
}

var _ Publisher = (*Bus)(nil)

// New returns a NATS backed bus when natsURL is set and an in-process bus otherwise.
func New(natsURL string, logger *slog.Logger) (*Bus, error) {
	if natsURL == "" {
		return NewInProcess(logger), nil
	}
	return NewNATS(natsURL, logger)
}

// NewInProcess returns a bus over a watermill GoChannel. Messages published
// while nobody subscribes are dropped.
func NewInProcess(logger *slog.Logger) *Bus {
	if logger == nil {
		logger = slog.Default()
	}
	ch := gochannel.NewGoChannel(gochannel.Config{OutputChannelBuffer: 64}, watermill.NewSlogLogger(logger))
	return &Bus{publisher: ch, subscriber: ch, logger: logger}
}

// NewNATS returns a bus publishing to core NATS subjects named after the topic.
func NewNATS(natsURL string, logger *slog.Logger) (*Bus, error) {
	if logger == nil {
		logger = slog.Default()
	}
	marshaler := &wmnats.NATSMarshaler{}
	wmLogger := watermill.NewSlogLogger(logger)
	natsOptions := []nc.Option{
		nc.RetryOnFailedConnect(true),
		nc.Timeout(30 * time.Second),
		nc.ReconnectWait(1 * time.Second),
	}

	publisher, err := wmnats.NewPublisher(
		wmnats.PublisherConfig{
			URL:               natsURL,
			NatsOptions:       natsOptions,
			Marshaler:         marshaler,
			JetStream:         wmnats.JetStreamConfig{Disabled: true},
			SubjectCalculator: wmnats.DefaultSubjectCalculator,
		},
		wmLogger,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to create NATS publisher: %w", err)
	}

	subscriber, err := wmnats.NewSubscriber(
		wmnats.SubscriberConfig{
			URL:               natsURL,
			NatsOptions:       natsOptions,
			Unmarshaler:       marshaler,
			JetStream:         wmnats.JetStreamConfig{Disabled: true},
			SubjectCalculator: wmnats.DefaultSubjectCalculator,
		},
		wmLogger,
	)
	if err != nil {
		publisher.Close()
		return nil, fmt.Errorf("failed to create NATS subscriber: %w", err)
	}

	return &Bus{publisher: publisher, subscriber: subscriber, logger: logger}, nil
}

// Publish marshals payload to JSON and publishes it on topic. The context
// correlation id travels in the message metadata.
func (b *Bus) Publish(ctx context.Context, topic string, payload any) error {
	data, err := json.Marshal(payload)
	if err != nil {
		return fmt.Errorf("failed to marshal %s payload: %w", topic, err)
	}

	msg := message.NewMessage(watermill.NewUUID(), data)
	msg.SetContext(ctx)
	msg.Metadata.Set("content_type", "application/json")
	msg.Metadata.Set("topic", topic)

	correlationID := attr.CorrelationID(ctx)
	if correlationID == "" {
		correlationID = watermill.NewUUID()
	}
	middleware.SetCorrelationID(correlationID, msg)

	if err := b.publisher.Publish(topic, msg); err != nil {
		return fmt.Errorf("failed to publish %s: %w", topic, err)
	}

	b.logger.DebugContext(ctx, "Event published",
		attr.String("topic", topic),
		attr.String("message_id", msg.UUID),
		attr.CorrelationIDFromMsg(msg),
	)
	return nil
}

// Subscribe exposes the underlying subscriber, used by consumers and tests.
func (b *Bus) Subscribe(ctx context.Context, topic string) (<-chan *message.Message, error) {
	if b.subscriber == nil {
		return nil, errors.New("bus has no subscriber")
	}
	return b.subscriber.Subscribe(ctx, topic)
}

// Close closes the publisher and subscriber.
func (b *Bus) Close() error {
	var errs []error
	if b.publisher != nil {
		errs = append(errs, b.publisher.Close())
	}
	if b.subscriber != nil && any(b.subscriber) != any(b.publisher) {
		errs = append(errs, b.subscriber.Close())
	}
	return errors.Join(errs...)
}

// PublishWithAllianceScope publishes on "{baseTopic}.{allianceID}" so consumers can
// subscribe to a single alliance or, with a wildcard, to all of them.
func PublishWithAllianceScope(ctx context.Context, p Publisher, baseTopic, allianceID string, payload any) error {
	if allianceID == "" {
		return errors.New("allianceID cannot be empty for alliance-scoped publish")
	}
	return p.Publish(ctx, FormatAllianceScopedTopic(baseTopic, allianceID), payload)
}

// FormatAllianceScopedTopic formats a topic with the alliance id suffix.
func FormatAllianceScopedTopic(baseTopic, allianceID string) string {
	return fmt.Sprintf("%s.%s", baseTopic, allianceID)
}

// Nop drops every event.
type Nop struct{}

func (Nop) Publish(context.Context, string, any) error { return nil }
func (Nop) Close() error                               { return nil }
