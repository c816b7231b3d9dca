package realtime

import (
	"sync"
	"time"

	"github.com/cybermonitor-rd/sentinel/core"
)

// Transport is the write surface of a realtime connection. A gorilla
// *websocket.Conn satisfies it directly.
type Transport interface {
	WriteJSON(v any) error
	Close() error
}

// Conn is one registered realtime subscriber. The registry is its sole
// writer; the write mutex serializes heartbeats against broadcasts.
type Conn struct {
	transport    Transport
	registeredAt time.Time

	writeMu  sync.Mutex
	stop     chan struct{}
	stopOnce sync.Once
}

func newConn(transport Transport) *Conn {
	return &Conn{
		transport:    transport,
		registeredAt: time.Now(),
		stop:         make(chan struct{}),
	}
}

// RegisteredAt returns when the connection joined the registry
func (c *Conn) RegisteredAt() time.Time {
	return c.registeredAt
}

func (c *Conn) send(event core.Event) error {
	c.writeMu.Lock()
	defer c.writeMu.Unlock()

	return c.transport.WriteJSON(event)
}

func (c *Conn) shutdown() {
	c.stopOnce.Do(func() {
		close(c.stop)
		_ = c.transport.Close()
	})
}
