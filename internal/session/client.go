package session

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/gorilla/websocket"
	"go.uber.org/zap"
)

// EventType identifies a session lifecycle event.
type EventType uint8

const (
	EventConnected EventType = iota
	EventDisconnected
)

func (t EventType) String() string {
	switch t {
	case EventConnected:
		return "connected"
	case EventDisconnected:
		return "disconnected"
	default:
		return "unknown"
	}
}

// Event is delivered on the client's event channel.
type Event struct {
	Type EventType
	At   time.Time
	// Uptime is the connection lifetime, set on EventDisconnected.
	Uptime time.Duration
	// Err is the read error that ended the connection, if any.
	Err error
}

// eventBuffer is large enough that the reader never blocks on the two
// lifecycle events.
const eventBuffer = 4

// Client is a session connection. Events are produced by a background
// reader and consumed with Poll from the frame loop.
type Client struct {
	conn    *websocket.Conn
	log     *zap.Logger
	events  chan Event
	started time.Time

	closeOnce sync.Once
	done      chan struct{}
}

// Dial connects to url. The connection is not retried.
func Dial(ctx context.Context, url string, log *zap.Logger) (*Client, error) {
	if log == nil {
		log = zap.NewNop()
	}
	conn, _, err := websocket.DefaultDialer.DialContext(ctx, url, nil)
	if err != nil {
		return nil, fmt.Errorf("session: dial %s: %w", url, err)
	}
	c := &Client{
		conn:    conn,
		log:     log,
		events:  make(chan Event, eventBuffer),
		started: time.Now(),
		done:    make(chan struct{}),
	}
	c.events <- Event{Type: EventConnected, At: c.started}
	go c.readLoop()
	return c, nil
}

// readLoop drains incoming messages until the connection ends, then emits
// EventDisconnected and closes the event channel.
func (c *Client) readLoop() {
	defer close(c.done)
	var err error
	for {
		if _, _, err = c.conn.ReadMessage(); err != nil {
			break
		}
	}
	if websocket.IsCloseError(err, websocket.CloseNormalClosure) {
		err = nil
	}
	c.events <- Event{
		Type:   EventDisconnected,
		At:     time.Now(),
		Uptime: time.Since(c.started),
		Err:    err,
	}
	close(c.events)
}

// Events returns the event channel. It is closed after EventDisconnected.
func (c *Client) Events() <-chan Event { return c.events }

// Poll returns the next pending event without blocking.
func (c *Client) Poll() (Event, bool) {
	select {
	case ev, ok := <-c.events:
		return ev, ok
	default:
		return Event{}, false
	}
}

// LogEvent writes ev to the client's logger.
func (c *Client) LogEvent(ev Event) {
	switch ev.Type {
	case EventConnected:
		c.log.Info("session connected", zap.String("remote", c.conn.RemoteAddr().String()))
	case EventDisconnected:
		fields := []zap.Field{zap.String("uptime", FormatUptime(ev.Uptime))}
		if ev.Err != nil {
			fields = append(fields, zap.Error(ev.Err))
		}
		c.log.Info("session disconnected", fields...)
	}
}

// Close sends a close frame and waits for the reader to finish.
func (c *Client) Close() error {
	var err error
	c.closeOnce.Do(func() {
		msg := websocket.FormatCloseMessage(websocket.CloseNormalClosure, "")
		_ = c.conn.WriteControl(websocket.CloseMessage, msg, time.Now().Add(time.Second))
		select {
		case <-c.done:
		case <-time.After(time.Second):
		}
		err = c.conn.Close()
		<-c.done
	})
	return err
}
