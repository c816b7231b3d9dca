package core

import (
	"time"

	"github.com/shopspring/decimal"
)

// Incident represents a recorded security incident
type Incident struct {
	ID             int             `json:"id"`
	Title          string          `json:"title"`
	Description    string          `json:"description"`
	ThreatLevel    string          `json:"threat_level"`
	SourceIP       string          `json:"source_ip"`
	Protocol       string          `json:"protocol"`
	Classification string          `json:"classification"`
	Confidence     decimal.Decimal `json:"confidence_score"`
	Status         string          `json:"status"`
	CreatedAt      time.Time       `json:"created_at"`
	Recommendation string          `json:"recommendation"`
}

// IncidentFilter narrows incident listings
type IncidentFilter struct {
	Status      string
	ThreatLevel string
	Limit       int
}

// DetectionResult is the outcome of analyzing a single log record
type DetectionResult struct {
	IsThreat       bool            `json:"is_threat"`
	Score          decimal.Decimal `json:"threat_score"`
	Classification string          `json:"classification"`
	Confidence     decimal.Decimal `json:"confidence"`
	Recommendation string          `json:"recommendation"`
	Timestamp      time.Time       `json:"timestamp"`
}

// DashboardStats aggregates the figures shown on the dashboard
type DashboardStats struct {
	KPIs               KPISet         `json:"kpis"`
	ThreatDistribution map[string]int `json:"threat_distribution"`
	TopThreats         []ThreatCount  `json:"top_threats"`
}

// KPISet holds the headline dashboard indicators
type KPISet struct {
	TotalIncidents  int             `json:"total_incidents"`
	OpenIncidents   int             `json:"open_incidents"`
	CriticalThreats int             `json:"critical_threats"`
	DetectionRate   decimal.Decimal `json:"detection_rate"`
	AvgResponseTime int             `json:"avg_response_time"`
	FalsePositives  int             `json:"false_positives"`
}

// ThreatCount is an aggregated count for one threat type
type ThreatCount struct {
	Type  string `json:"type"`
	Count int    `json:"count"`
}

// Event is a single realtime message fanned out to connected subscribers
type Event struct {
	Type      string    `json:"type"`
	Payload   any       `json:"payload,omitempty"`
	Timestamp time.Time `json:"timestamp"`
}
