// Package realtime tracks live subscriber connections and fans
// server-originated events out to them with best-effort semantics.
package realtime

import (
	"sync"
	"time"

	"github.com/rs/zerolog"

	"github.com/cybermonitor-rd/sentinel/core"
)

// DefaultHeartbeatInterval is how often each connection receives a
// heartbeat event.
const DefaultHeartbeatInterval = 10 * time.Second

// EventTypeHeartbeat tags the periodic liveness event.
const EventTypeHeartbeat = "heartbeat"

// Registry maintains the set of active realtime connections. Structural
// changes to the set are mutually exclusive; broadcasts snapshot the
// membership under the lock and send outside it, so one slow connection
// never stalls delivery to the rest. A failed send removes the connection.
type Registry struct {
	mu    sync.Mutex
	conns map[*Conn]struct{}

	heartbeatInterval time.Duration
	logger            zerolog.Logger
}

// Option customizes a Registry
type Option func(*Registry)

// WithHeartbeatInterval overrides the liveness interval
func WithHeartbeatInterval(interval time.Duration) Option {
	return func(r *Registry) { r.heartbeatInterval = interval }
}

// NewRegistry creates an empty connection registry
func NewRegistry(logger zerolog.Logger, opts ...Option) *Registry {
	r := &Registry{
		conns:             make(map[*Conn]struct{}),
		heartbeatInterval: DefaultHeartbeatInterval,
		logger:            logger,
	}

	for _, opt := range opts {
		opt(r)
	}

	return r
}

// Register adds a connection to the active set and starts its supervised
// heartbeat loop. The loop stops when the connection is deregistered or a
// send fails.
func (r *Registry) Register(transport Transport) *Conn {
	conn := newConn(transport)

	r.mu.Lock()
	r.conns[conn] = struct{}{}
	total := len(r.conns)
	r.mu.Unlock()

	connectionsGauge.Set(float64(total))
	r.logger.Info().Int("total_connections", total).Msg("realtime client connected")

	go r.heartbeatLoop(conn)

	return conn
}

// Deregister removes a connection from the active set and stops its
// heartbeat loop. Deregistering an already-removed connection is a no-op.
func (r *Registry) Deregister(conn *Conn) {
	r.mu.Lock()
	_, exists := r.conns[conn]
	if exists {
		delete(r.conns, conn)
	}
	total := len(r.conns)
	r.mu.Unlock()

	if !exists {
		return
	}

	conn.shutdown()
	connectionsGauge.Set(float64(total))
	r.logger.Info().Int("total_connections", total).Msg("realtime client disconnected")
}

// Broadcast delivers the event to a snapshot of the currently active set.
// Connections registering after the snapshot do not receive this event.
// A per-connection send failure removes that connection and never aborts
// delivery to the others.
func (r *Registry) Broadcast(event core.Event) {
	r.mu.Lock()
	snapshot := make([]*Conn, 0, len(r.conns))
	for conn := range r.conns {
		snapshot = append(snapshot, conn)
	}
	r.mu.Unlock()

	broadcastsTotal.Inc()

	for _, conn := range snapshot {
		if err := conn.send(event); err != nil {
			sendFailuresTotal.Inc()
			r.logger.Warn().Err(err).Str("event_type", event.Type).Msg("realtime send failed, removing connection")
			r.Deregister(conn)
		}
	}
}

// Len returns the number of active connections
func (r *Registry) Len() int {
	r.mu.Lock()
	defer r.mu.Unlock()

	return len(r.conns)
}

// Close deregisters every active connection
func (r *Registry) Close() {
	r.mu.Lock()
	snapshot := make([]*Conn, 0, len(r.conns))
	for conn := range r.conns {
		snapshot = append(snapshot, conn)
	}
	r.mu.Unlock()

	for _, conn := range snapshot {
		r.Deregister(conn)
	}
}

func (r *Registry) heartbeatLoop(conn *Conn) {
	ticker := time.NewTicker(r.heartbeatInterval)
	defer ticker.Stop()

	for {
		select {
		case <-conn.stop:
			return
		case <-ticker.C:
			event := core.Event{
				Type:      EventTypeHeartbeat,
				Timestamp: time.Now().UTC(),
			}
			if err := conn.send(event); err != nil {
				sendFailuresTotal.Inc()
				r.logger.Debug().Err(err).Msg("heartbeat failed, removing connection")
				r.Deregister(conn)
				return
			}
		}
	}
}
