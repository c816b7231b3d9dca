package ports

import (
	"context"

	"github.com/cybermonitor-rd/sentinel/core"
)

// IncidentStore lists recorded security incidents
type IncidentStore interface {
	List(ctx context.Context, filter core.IncidentFilter) ([]core.Incident, error)
}

// Detector scores a raw log record for threat likelihood
type Detector interface {
	Analyze(ctx context.Context, logData map[string]any) (*core.DetectionResult, error)
}

// StatsProvider supplies aggregated dashboard figures
type StatsProvider interface {
	Snapshot(ctx context.Context) (*core.DashboardStats, error)
}
