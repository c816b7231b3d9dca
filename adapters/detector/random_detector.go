package detector

import (
	"context"
	"math/rand"
	"time"

	"github.com/shopspring/decimal"

	"github.com/cybermonitor-rd/sentinel/core"
	"github.com/cybermonitor-rd/sentinel/ports"
)

// ThreatThreshold is the score above which a log record is classified as a
// threat.
var ThreatThreshold = decimal.NewFromFloat(0.85)

var recommendations = []string{
	"Block IP and review logs",
	"Notify the security team",
	"Increase logging on the endpoint",
	"Review firewall configuration",
}

// RandomDetector is a stand-in for the external scoring engine. It draws a
// pseudo-random threat score per record; a production deployment replaces
// it with a real anomaly detector.
type RandomDetector struct{}

// NewRandomDetector creates a new randomized detector
func NewRandomDetector() ports.Detector {
	return &RandomDetector{}
}

// Analyze scores a log record and derives classification and recommendation
func (d *RandomDetector) Analyze(ctx context.Context, logData map[string]any) (*core.DetectionResult, error) {
	score := decimal.NewFromFloat(0.1 + rand.Float64()*0.85).Round(3)
	isThreat := score.GreaterThan(ThreatThreshold)

	result := &core.DetectionResult{
		IsThreat:       isThreat,
		Score:          score,
		Classification: "Normal Traffic",
		Confidence:     score.Mul(decimal.NewFromInt(100)).Round(1),
		Recommendation: "No action required",
		Timestamp:      time.Now().UTC(),
	}

	if isThreat {
		result.Classification = "Possible Intrusion"
		result.Recommendation = recommendations[rand.Intn(len(recommendations))]
	}

	return result, nil
}
