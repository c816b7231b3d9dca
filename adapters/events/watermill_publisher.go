package events

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/ThreeDotsLabs/watermill/message"
	"github.com/google/uuid"

	"github.com/cybermonitor-rd/sentinel/core"
	"github.com/cybermonitor-rd/sentinel/ports"
)

// AlertEvent represents a detection alert published to other instances
type AlertEvent struct {
	Subject string               `json:"subject"`
	Result  core.DetectionResult `json:"result"`
}

// WatermillPublisher implements the EventPublisher interface using Watermill
type WatermillPublisher struct {
	publisher message.Publisher
	topic     string
}

// NewWatermillPublisher creates a new Watermill publisher
func NewWatermillPublisher(publisher message.Publisher) ports.EventPublisher {
	return &WatermillPublisher{
		publisher: publisher,
		topic:     "sentinel.alerts",
	}
}

// PublishAlert publishes a detection alert
func (p *WatermillPublisher) PublishAlert(ctx context.Context, subject string, result *core.DetectionResult) error {
	event := AlertEvent{
		Subject: subject,
		Result:  *result,
	}

	payload, err := json.Marshal(event)
	if err != nil {
		return fmt.Errorf("failed to marshal event: %w", err)
	}

	msg := message.NewMessage(uuid.New().String(), payload)

	if err := p.publisher.Publish(p.topic, msg); err != nil {
		return fmt.Errorf("failed to publish event: %w", err)
	}

	return nil
}

// NopPublisher discards alerts. Used for single-node runs without a broker.
type NopPublisher struct{}

// NewNopPublisher creates a publisher that drops every alert
func NewNopPublisher() ports.EventPublisher {
	return NopPublisher{}
}

// PublishAlert implements EventPublisher
func (NopPublisher) PublishAlert(ctx context.Context, subject string, result *core.DetectionResult) error {
	return nil
}
