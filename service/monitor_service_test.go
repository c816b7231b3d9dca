package service

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/rs/zerolog"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/require"

	"github.com/cybermonitor-rd/sentinel/adapters/incidents"
	"github.com/cybermonitor-rd/sentinel/adapters/stats"
	"github.com/cybermonitor-rd/sentinel/core"
)

type stubDetector struct {
	result core.DetectionResult
}

func (d stubDetector) Analyze(ctx context.Context, logData map[string]any) (*core.DetectionResult, error) {
	result := d.result
	return &result, nil
}

type capturePublisher struct {
	alerts []string
	err    error
}

func (p *capturePublisher) PublishAlert(ctx context.Context, subject string, result *core.DetectionResult) error {
	if p.err != nil {
		return p.err
	}
	p.alerts = append(p.alerts, subject)
	return nil
}

type captureBroadcaster struct {
	events []core.Event
}

func (b *captureBroadcaster) Broadcast(event core.Event) {
	b.events = append(b.events, event)
}

func threatResult() core.DetectionResult {
	return core.DetectionResult{
		IsThreat:       true,
		Score:          decimal.NewFromFloat(0.91),
		Classification: "Possible Intrusion",
		Confidence:     decimal.NewFromFloat(91.0),
		Recommendation: "Block IP and review logs",
		Timestamp:      time.Now().UTC(),
	}
}

func newMonitorService(det stubDetector, pub *capturePublisher, b *captureBroadcaster) *MonitorService {
	return NewMonitorService(
		incidents.NewMemoryStore(),
		det,
		stats.NewRandomProvider(),
		pub,
		b,
		zerolog.Nop(),
	)
}

func TestDetectPublishesAndBroadcastsThreats(t *testing.T) {
	pub := &capturePublisher{}
	broadcaster := &captureBroadcaster{}
	svc := newMonitorService(stubDetector{result: threatResult()}, pub, broadcaster)

	result, err := svc.Detect(context.Background(), "alice@example.com", map[string]any{"source_ip": "10.0.0.5"})
	require.NoError(t, err)
	require.True(t, result.IsThreat)

	require.Equal(t, []string{"alice@example.com"}, pub.alerts)
	require.Len(t, broadcaster.events, 1)
	require.Equal(t, "detection_alert", broadcaster.events[0].Type)
}

func TestDetectIgnoresBenignRecords(t *testing.T) {
	pub := &capturePublisher{}
	broadcaster := &captureBroadcaster{}

	benign := threatResult()
	benign.IsThreat = false
	svc := newMonitorService(stubDetector{result: benign}, pub, broadcaster)

	result, err := svc.Detect(context.Background(), "alice@example.com", map[string]any{})
	require.NoError(t, err)
	require.False(t, result.IsThreat)
	require.Empty(t, pub.alerts)
	require.Empty(t, broadcaster.events)
}

func TestDetectSurvivesPublishFailure(t *testing.T) {
	pub := &capturePublisher{err: errors.New("broker down")}
	broadcaster := &captureBroadcaster{}
	svc := newMonitorService(stubDetector{result: threatResult()}, pub, broadcaster)

	result, err := svc.Detect(context.Background(), "alice@example.com", map[string]any{})
	require.NoError(t, err)
	require.True(t, result.IsThreat)

	// Realtime delivery is unaffected by the publish failure
	require.Len(t, broadcaster.events, 1)
}

func TestIncidentsAndStatsPassThrough(t *testing.T) {
	svc := newMonitorService(stubDetector{result: threatResult()}, &capturePublisher{}, &captureBroadcaster{})
	ctx := context.Background()

	listed, err := svc.Incidents(ctx, core.IncidentFilter{Status: "open"})
	require.NoError(t, err)
	require.Len(t, listed, 2)

	snapshot, err := svc.Stats(ctx)
	require.NoError(t, err)
	require.NotEmpty(t, snapshot.TopThreats)
	require.GreaterOrEqual(t, snapshot.KPIs.TotalIncidents, 50)
}
