package service

import (
	"context"
	"fmt"
	"time"

	"github.com/rs/zerolog"

	"github.com/cybermonitor-rd/sentinel/core"
	"github.com/cybermonitor-rd/sentinel/ports"
)

// Broadcaster fans an event out to the currently connected realtime
// subscribers.
type Broadcaster interface {
	Broadcast(event core.Event)
}

// MonitorService fronts the external monitoring collaborators: the
// incident store, the threat detector and the metrics aggregator. Threat
// detections are pushed to other instances and to realtime subscribers.
type MonitorService struct {
	incidents   ports.IncidentStore
	detector    ports.Detector
	stats       ports.StatsProvider
	events      ports.EventPublisher
	broadcaster Broadcaster
	logger      zerolog.Logger
}

// NewMonitorService creates a new monitoring service
func NewMonitorService(
	incidents ports.IncidentStore,
	detector ports.Detector,
	stats ports.StatsProvider,
	events ports.EventPublisher,
	broadcaster Broadcaster,
	logger zerolog.Logger,
) *MonitorService {
	return &MonitorService{
		incidents:   incidents,
		detector:    detector,
		stats:       stats,
		events:      events,
		broadcaster: broadcaster,
		logger:      logger,
	}
}

// Incidents lists recorded incidents matching the filter
func (s *MonitorService) Incidents(ctx context.Context, filter core.IncidentFilter) ([]core.Incident, error) {
	incidents, err := s.incidents.List(ctx, filter)
	if err != nil {
		return nil, fmt.Errorf("failed to list incidents: %w", err)
	}

	return incidents, nil
}

// Detect scores a log record. Records crossing the threat threshold are
// published for other instances and broadcast to realtime subscribers;
// neither delivery failure fails the detection itself.
func (s *MonitorService) Detect(ctx context.Context, subject string, logData map[string]any) (*core.DetectionResult, error) {
	result, err := s.detector.Analyze(ctx, logData)
	if err != nil {
		return nil, fmt.Errorf("failed to analyze log record: %w", err)
	}

	if result.IsThreat {
		if err := s.events.PublishAlert(ctx, subject, result); err != nil {
			s.logger.Warn().Err(err).Msg("failed to publish detection alert")
		}

		s.broadcaster.Broadcast(core.Event{
			Type:      "detection_alert",
			Payload:   result,
			Timestamp: time.Now().UTC(),
		})
	}

	return result, nil
}

// Stats returns the current dashboard snapshot
func (s *MonitorService) Stats(ctx context.Context) (*core.DashboardStats, error) {
	stats, err := s.stats.Snapshot(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to collect dashboard stats: %w", err)
	}

	return stats, nil
}
