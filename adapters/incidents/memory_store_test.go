package incidents

import (
	"context"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/cybermonitor-rd/sentinel/core"
)

func TestListAll(t *testing.T) {
	s := NewMemoryStore()

	got, err := s.List(context.Background(), core.IncidentFilter{})
	require.NoError(t, err)
	require.Len(t, got, 3)
}

func TestListFilters(t *testing.T) {
	s := NewMemoryStore()
	ctx := context.Background()

	open, err := s.List(ctx, core.IncidentFilter{Status: "open"})
	require.NoError(t, err)
	require.Len(t, open, 2)
	for _, incident := range open {
		require.Equal(t, "open", incident.Status)
	}

	critical, err := s.List(ctx, core.IncidentFilter{ThreatLevel: "critical"})
	require.NoError(t, err)
	require.Len(t, critical, 1)
	require.Equal(t, "Possible DDoS", critical[0].Classification)

	none, err := s.List(ctx, core.IncidentFilter{Status: "resolved"})
	require.NoError(t, err)
	require.Empty(t, none)
}

func TestListLimit(t *testing.T) {
	s := NewMemoryStore()

	got, err := s.List(context.Background(), core.IncidentFilter{Limit: 2})
	require.NoError(t, err)
	require.Len(t, got, 2)
}
