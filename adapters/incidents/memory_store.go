package incidents

import (
	"context"
	"time"

	"github.com/shopspring/decimal"

	"github.com/cybermonitor-rd/sentinel/core"
	"github.com/cybermonitor-rd/sentinel/ports"
)

// MemoryStore is an in-memory implementation of the IncidentStore
// interface, seeded with demo fixtures. A production deployment replaces
// this with a database-backed store.
type MemoryStore struct {
	incidents []core.Incident
}

// NewMemoryStore creates an incident store seeded with the demo fixtures
func NewMemoryStore() ports.IncidentStore {
	return &MemoryStore{incidents: demoIncidents()}
}

// NewMemoryStoreWith creates an incident store holding the given incidents
func NewMemoryStoreWith(incidents []core.Incident) ports.IncidentStore {
	return &MemoryStore{incidents: incidents}
}

// List returns incidents matching the filter, newest first as seeded
func (s *MemoryStore) List(ctx context.Context, filter core.IncidentFilter) ([]core.Incident, error) {
	matched := make([]core.Incident, 0, len(s.incidents))
	for _, incident := range s.incidents {
		if filter.Status != "" && incident.Status != filter.Status {
			continue
		}
		if filter.ThreatLevel != "" && incident.ThreatLevel != filter.ThreatLevel {
			continue
		}
		matched = append(matched, incident)
	}

	if filter.Limit > 0 && len(matched) > filter.Limit {
		matched = matched[:filter.Limit]
	}

	return matched, nil
}

func demoIncidents() []core.Incident {
	return []core.Incident{
		{
			ID:             1,
			Title:          "SSH brute force attempt",
			Description:    "25 failed SSH attempts from IP 192.168.1.100",
			ThreatLevel:    "high",
			SourceIP:       "192.168.1.100",
			Protocol:       "SSH",
			Classification: "Brute Force Attack",
			Confidence:     decimal.NewFromFloat(92.5),
			Status:         "open",
			CreatedAt:      time.Date(2025, 1, 15, 10, 30, 0, 0, time.UTC),
			Recommendation: "Block IP immediately",
		},
		{
			ID:             2,
			Title:          "Anomalous HTTP traffic",
			Description:    "High volume of POST requests to endpoint /api/admin",
			ThreatLevel:    "critical",
			SourceIP:       "10.0.0.50",
			Protocol:       "HTTP",
			Classification: "Possible DDoS",
			Confidence:     decimal.NewFromFloat(88.3),
			Status:         "in_progress",
			CreatedAt:      time.Date(2025, 1, 15, 9, 15, 0, 0, time.UTC),
			Recommendation: "Implement rate limiting",
		},
		{
			ID:             3,
			Title:          "Geographically unusual access",
			Description:    "Login from an unexpected region for a local user",
			ThreatLevel:    "medium",
			SourceIP:       "95.213.255.98",
			Protocol:       "HTTPS",
			Classification: "Account Compromise",
			Confidence:     decimal.NewFromFloat(76.7),
			Status:         "open",
			CreatedAt:      time.Date(2025, 1, 15, 8, 45, 0, 0, time.UTC),
			Recommendation: "Force password reset",
		},
	}
}
