package realtime

import (
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/require"

	"github.com/cybermonitor-rd/sentinel/core"
)

// fakeTransport records written events and can be flipped into a failing
// state to simulate a dead client.
type fakeTransport struct {
	mu     sync.Mutex
	events []core.Event
	fail   bool
	closed bool
}

func (t *fakeTransport) WriteJSON(v any) error {
	t.mu.Lock()
	defer t.mu.Unlock()

	if t.fail {
		return errors.New("connection reset")
	}

	event, ok := v.(core.Event)
	if !ok {
		return errors.New("unexpected payload type")
	}
	t.events = append(t.events, event)
	return nil
}

func (t *fakeTransport) Close() error {
	t.mu.Lock()
	defer t.mu.Unlock()
	t.closed = true
	return nil
}

func (t *fakeTransport) setFail(fail bool) {
	t.mu.Lock()
	defer t.mu.Unlock()
	t.fail = fail
}

func (t *fakeTransport) received() []core.Event {
	t.mu.Lock()
	defer t.mu.Unlock()
	return append([]core.Event(nil), t.events...)
}

func (t *fakeTransport) wasClosed() bool {
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.closed
}

func newTestRegistry(opts ...Option) *Registry {
	return NewRegistry(zerolog.Nop(), opts...)
}

func TestBroadcastReachesAllConnections(t *testing.T) {
	registry := newTestRegistry(WithHeartbeatInterval(time.Hour))
	defer registry.Close()

	transports := []*fakeTransport{{}, {}, {}}
	for _, tr := range transports {
		registry.Register(tr)
	}
	require.Equal(t, 3, registry.Len())

	registry.Broadcast(core.Event{Type: "detection_alert", Timestamp: time.Now()})

	for _, tr := range transports {
		events := tr.received()
		require.Len(t, events, 1)
		require.Equal(t, "detection_alert", events[0].Type)
	}
}

func TestBroadcastRemovesFailingConnection(t *testing.T) {
	registry := newTestRegistry(WithHeartbeatInterval(time.Hour))
	defer registry.Close()

	healthy1 := &fakeTransport{}
	failing := &fakeTransport{}
	healthy2 := &fakeTransport{}

	registry.Register(healthy1)
	registry.Register(failing)
	registry.Register(healthy2)

	failing.setFail(true)

	registry.Broadcast(core.Event{Type: "stats_update", Timestamp: time.Now()})

	require.Len(t, healthy1.received(), 1)
	require.Len(t, healthy2.received(), 1)
	require.Empty(t, failing.received())
	require.Equal(t, 2, registry.Len())
	require.True(t, failing.wasClosed())

	// The survivors still receive subsequent events
	registry.Broadcast(core.Event{Type: "stats_update", Timestamp: time.Now()})
	require.Len(t, healthy1.received(), 2)
	require.Len(t, healthy2.received(), 2)
}

func TestDeregisterIsIdempotent(t *testing.T) {
	registry := newTestRegistry(WithHeartbeatInterval(time.Hour))
	defer registry.Close()

	kept := &fakeTransport{}
	removed := &fakeTransport{}

	registry.Register(kept)
	conn := registry.Register(removed)

	registry.Deregister(conn)
	registry.Deregister(conn)
	require.Equal(t, 1, registry.Len())

	registry.Broadcast(core.Event{Type: "heartbeat", Timestamp: time.Now()})
	require.Len(t, kept.received(), 1)
	require.Empty(t, removed.received())
}

func TestHeartbeatDelivered(t *testing.T) {
	registry := newTestRegistry(WithHeartbeatInterval(10 * time.Millisecond))
	defer registry.Close()

	tr := &fakeTransport{}
	registry.Register(tr)

	require.Eventually(t, func() bool {
		for _, event := range tr.received() {
			if event.Type == EventTypeHeartbeat {
				return true
			}
		}
		return false
	}, time.Second, 5*time.Millisecond)
}

func TestHeartbeatFailureRemovesConnection(t *testing.T) {
	registry := newTestRegistry(WithHeartbeatInterval(10 * time.Millisecond))
	defer registry.Close()

	tr := &fakeTransport{fail: true}
	registry.Register(tr)

	require.Eventually(t, func() bool {
		return registry.Len() == 0
	}, time.Second, 5*time.Millisecond)
	require.True(t, tr.wasClosed())
}

func TestCloseDrainsRegistry(t *testing.T) {
	registry := newTestRegistry(WithHeartbeatInterval(time.Hour))

	transports := []*fakeTransport{{}, {}}
	for _, tr := range transports {
		registry.Register(tr)
	}

	registry.Close()
	require.Zero(t, registry.Len())
	for _, tr := range transports {
		require.True(t, tr.wasClosed())
	}
}

func TestConcurrentBroadcastAndChurn(t *testing.T) {
	registry := newTestRegistry(WithHeartbeatInterval(time.Hour))
	defer registry.Close()

	var wg sync.WaitGroup
	for i := 0; i < 8; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for j := 0; j < 50; j++ {
				conn := registry.Register(&fakeTransport{})
				registry.Broadcast(core.Event{Type: "stats_update", Timestamp: time.Now()})
				registry.Deregister(conn)
			}
		}()
	}
	wg.Wait()

	require.Zero(t, registry.Len())
}
