package stats

import (
	"context"
	"math/rand"

	"github.com/shopspring/decimal"

	"github.com/cybermonitor-rd/sentinel/core"
	"github.com/cybermonitor-rd/sentinel/ports"
)

// RandomProvider is a stand-in for the external metrics aggregator,
// returning randomized dashboard figures.
type RandomProvider struct{}

// NewRandomProvider creates a new randomized stats provider
func NewRandomProvider() ports.StatsProvider {
	return &RandomProvider{}
}

// Snapshot returns a randomized dashboard snapshot
func (p *RandomProvider) Snapshot(ctx context.Context) (*core.DashboardStats, error) {
	return &core.DashboardStats{
		KPIs: core.KPISet{
			TotalIncidents:  between(50, 150),
			OpenIncidents:   between(5, 25),
			CriticalThreats: between(1, 10),
			DetectionRate:   decimal.NewFromFloat(85 + rand.Float64()*14).Round(1),
			AvgResponseTime: between(5, 30),
			FalsePositives:  between(1, 15),
		},
		ThreatDistribution: map[string]int{
			"critical": between(1, 10),
			"high":     between(5, 20),
			"medium":   between(10, 30),
			"low":      between(20, 50),
		},
		TopThreats: []core.ThreatCount{
			{Type: "Brute Force", Count: between(10, 30)},
			{Type: "DDoS", Count: between(5, 15)},
			{Type: "Malware", Count: between(3, 10)},
			{Type: "Phishing", Count: between(8, 25)},
		},
	}, nil
}

func between(lo, hi int) int {
	return lo + rand.Intn(hi-lo+1)
}
