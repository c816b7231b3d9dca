package ports

import (
	"context"

	"github.com/cybermonitor-rd/sentinel/core"
)

// EventPublisher publishes security events to notify other instances
type EventPublisher interface {
	PublishAlert(ctx context.Context, subject string, result *core.DetectionResult) error
}
