package pubsub

import (
	"context"
	"encoding/base64"
	"encoding/json"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"cadastre/config"
	"cadastre/internal/domain/constants"
	"cadastre/internal/domain/entity"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func testEvent() *entity.PropertyEvent {
	return &entity.PropertyEvent{
		Type:        constants.EventPropertyCoordinatesUpdated,
		PropertyID:  uuid.New(),
		PlateNumber: "KMP-001",
		Latitude:    0.3476,
		Longitude:   32.5825,
		RequestID:   "req-1",
		OccurredAt:  time.Now().UTC(),
	}
}

func TestLocalHTTPPublisher_PostsPushEnvelope(t *testing.T) {
	event := testEvent()
	var received PushMessage
	var requestID string

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		requestID = r.Header.Get("X-Request-Id")
		assert.Equal(t, "application/json", r.Header.Get("Content-Type"))
		assert.NoError(t, json.NewDecoder(r.Body).Decode(&received))
		w.WriteHeader(http.StatusNoContent)
	}))
	defer server.Close()

	publisher := NewLocalHTTPPublisher(server.URL, testLogger())
	require.NoError(t, publisher.PublishPropertyEvent(context.Background(), event))

	assert.Equal(t, "req-1", requestID)
	assert.Equal(t, event.PropertyID.String(), received.Message.Attributes["property_id"])
	assert.Equal(t, constants.EventPropertyCoordinatesUpdated, received.Message.Attributes["event_type"])
	assert.NotEmpty(t, received.Message.MessageID)
	assert.Equal(t, event.PropertyID.String(), received.Message.OrderingKey)

	data, err := base64.StdEncoding.DecodeString(received.Message.Data)
	require.NoError(t, err)
	var decoded entity.PropertyEvent
	require.NoError(t, json.Unmarshal(data, &decoded))
	assert.Equal(t, event.PropertyID, decoded.PropertyID)
	assert.Equal(t, "KMP-001", decoded.PlateNumber)
	assert.InDelta(t, 32.5825, decoded.Longitude, 1e-9)
}

func TestLocalHTTPPublisher_NonSuccessStatus(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusBadGateway)
	}))
	defer server.Close()

	publisher := NewLocalHTTPPublisher(server.URL, testLogger())
	err := publisher.PublishPropertyEvent(context.Background(), testEvent())
	require.Error(t, err)
	assert.Contains(t, err.Error(), "502")
}

func TestNewPublisher_ProviderSelection(t *testing.T) {
	ctx := context.Background()
	logger := testLogger()

	publisher, err := newPublisher(ctx, nil, logger)
	require.NoError(t, err)
	assert.IsType(t, &noopPublisher{}, publisher)
	assert.NoError(t, publisher.PublishPropertyEvent(ctx, testEvent()))
	assert.NoError(t, publisher.Close())

	publisher, err = newPublisher(ctx, &config.PubSubConfig{Provider: constants.PubSubProviderLocal, LocalEndpoint: "http://localhost:8081/push"}, logger)
	require.NoError(t, err)
	assert.IsType(t, &localHTTPPublisher{}, publisher)

	_, err = newPublisher(ctx, &config.PubSubConfig{Provider: constants.PubSubProviderLocal}, logger)
	assert.ErrorContains(t, err, "local endpoint is required")

	_, err = newPublisher(ctx, &config.PubSubConfig{Provider: constants.PubSubProviderGoogle}, logger)
	assert.ErrorContains(t, err, "project ID is required")

	_, err = newPublisher(ctx, &config.PubSubConfig{Provider: constants.PubSubProviderGoogle, ProjectID: "p"}, logger)
	assert.ErrorContains(t, err, "topic ID is required")

	_, err = newPublisher(ctx, &config.PubSubConfig{Provider: "kafka"}, logger)
	assert.ErrorContains(t, err, "unknown pubsub provider")
}

func TestEncodeEvent(t *testing.T) {
	event := testEvent()
	event.RequestID = ""

	encoded, err := encodeEvent(event)
	require.NoError(t, err)
	assert.Equal(t, event.PropertyID.String(), encoded.orderingKey)
	assert.NotContains(t, encoded.attributes, "request_id")

	var decoded entity.PropertyEvent
	require.NoError(t, json.Unmarshal(encoded.data, &decoded))
	assert.Equal(t, event.Type, decoded.Type)

	_, err = encodeEvent(nil)
	assert.Error(t, err)
}

func TestTopicName(t *testing.T) {
	assert.Equal(t, "projects/city-hall/topics/property-events", topicName("city-hall", "property-events"))
}
