package pubsub

import (
	"context"
	"fmt"
	"log/slog"

	"cadastre/internal/domain/entity"
	"cadastre/internal/domain/service"

	"cloud.google.com/go/pubsub/v2"
	pubsubpb "cloud.google.com/go/pubsub/v2/apiv1/pubsubpb"
	"github.com/pkg/errors"
)

type googlePubSubPublisher struct {
	client    *pubsub.Client
	publisher *pubsub.Publisher
	logger    *slog.Logger
}

// NewGooglePubSubPublisher checks that the topic exists and publishes to it
// with message ordering per property.
func NewGooglePubSubPublisher(ctx context.Context, projectID, topicID string, logger *slog.Logger) (service.EventPublisher, error) {
	client, err := pubsub.NewClient(ctx, projectID)
	if err != nil {
		return nil, errors.Wrap(err, "create pubsub client")
	}

	topic := topicName(projectID, topicID)
	if _, err := client.TopicAdminClient.GetTopic(ctx, &pubsubpb.GetTopicRequest{Topic: topic}); err != nil {
		_ = client.Close()

		return nil, errors.Wrapf(err, "property event topic %s", topic)
	}

	publisher := client.Publisher(topic)
	publisher.EnableMessageOrdering = true

	return &googlePubSubPublisher{client: client, publisher: publisher, logger: logger}, nil
}

func topicName(projectID, topicID string) string {
	return fmt.Sprintf("projects/%s/topics/%s", projectID, topicID)
}

// PublishPropertyEvent blocks until Pub/Sub acknowledges the message.
func (p *googlePubSubPublisher) PublishPropertyEvent(ctx context.Context, event *entity.PropertyEvent) error {
	encoded, err := encodeEvent(event)
	if err != nil {
		return err
	}

	result := p.publisher.Publish(ctx, &pubsub.Message{
		Data:        encoded.data,
		Attributes:  encoded.attributes,
		OrderingKey: encoded.orderingKey,
	})

	serverID, err := result.Get(ctx)
	if err != nil {
		// a failed publish pauses its ordering key until resumed
		p.publisher.ResumePublish(encoded.orderingKey)

		return errors.Wrapf(err, "publish %s for property %s", event.Type, event.PropertyID)
	}

	p.logger.Debug("Property event published",
		slog.String("provider", "google"),
		slog.String("event_type", event.Type),
		slog.String("property_id", event.PropertyID.String()),
		slog.String("server_id", serverID),
	)

	return nil
}

func (p *googlePubSubPublisher) Close() error {
	p.publisher.Stop()

	return errors.WithStack(p.client.Close())
}
