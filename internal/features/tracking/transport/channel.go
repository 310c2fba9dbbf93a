package transport

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"sync"
	"time"

	"fleet-tracker/internal/core/logger"
	"fleet-tracker/internal/features/tracking/domain"
	"fleet-tracker/internal/features/tracking/ports"

	"github.com/gorilla/websocket"
	"go.uber.org/zap"
)

const (
	// eventLocationUpdate is the outbound driver -> server event name.
	eventLocationUpdate = "location-update"
	// eventDriverLocation is the inbound server -> subscribers event name.
	eventDriverLocation = "chauffeur-location"

	handshakeTimeout     = 10 * time.Second
	reconnectDelay       = time.Second
	reconnectMaxDelay    = 5 * time.Second
	maxReconnectAttempts = 5
)

// envelope is the framed wire message: an event name plus its payload.
type envelope struct {
	Event string                `json:"event"`
	Data  domain.LocationUpdate `json:"data"`
}

// Channel implements ports.LocationChannel over a WebSocket connection.
// It reconnects on its own with capped backoff and fans inbound
// driver-location broadcasts out to all subscribers in the process.
//
// Delivery is at-most-once by design: a location sample is superseded by
// the next one, so sends while disconnected are dropped, never queued.
type Channel struct {
	url    string
	logger *zap.Logger

	mu           sync.Mutex
	conn         *websocket.Conn
	connected    bool
	closing      bool
	reconnecting bool
	token        string
	ctx          context.Context
	onDown       func(error)

	subMu   sync.RWMutex
	subs    map[ports.Subscription]func(domain.LocationUpdate)
	nextSub ports.Subscription
}

// NewChannel creates a Channel targeting the given WebSocket URL.
func NewChannel(url string) *Channel {
	return &Channel{
		url:    url,
		logger: logger.Named("tracking.transport"),
		subs:   make(map[ports.Subscription]func(domain.LocationUpdate)),
	}
}

// SetDownHandler registers a callback fired once the reconnection budget is
// exhausted. The channel stays disconnected until the next Connect.
func (c *Channel) SetDownHandler(fn func(error)) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.onDown = fn
}

// Connect establishes the channel authenticated with the bearer token.
// On dial failure it schedules background reconnection and returns the error.
func (c *Channel) Connect(ctx context.Context, token string) error {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.connected {
		return nil
	}

	c.closing = false
	c.token = token
	c.ctx = ctx

	if err := c.dialLocked(); err != nil {
		if !c.reconnecting {
			c.reconnecting = true
			go c.reconnectLoop()
		}
		return fmt.Errorf("connecting location channel: %w", err)
	}
	return nil
}

// dialLocked dials the server and starts the read pump. Caller holds c.mu.
func (c *Channel) dialLocked() error {
	dialer := websocket.Dialer{HandshakeTimeout: handshakeTimeout}

	header := http.Header{}
	if c.token != "" {
		header.Set("Authorization", "Bearer "+c.token)
	}

	conn, _, err := dialer.DialContext(c.ctx, c.url, header)
	if err != nil {
		return err
	}

	c.conn = conn
	c.connected = true
	c.logger.Info("Location channel connected", zap.String("url", c.url))

	go c.readPump(conn)
	return nil
}

// readPump consumes inbound frames until the connection drops, then hands
// off to the reconnect loop unless the channel is being closed.
func (c *Channel) readPump(conn *websocket.Conn) {
	for {
		_, data, err := conn.ReadMessage()
		if err != nil {
			break
		}

		var env envelope
		if err := json.Unmarshal(data, &env); err != nil {
			c.logger.Warn("Dropping unparseable channel message", zap.Error(err))
			continue
		}

		if env.Event == eventDriverLocation {
			c.dispatch(env.Data)
		}
	}

	c.mu.Lock()
	stale := c.conn != conn
	if !stale {
		c.conn = nil
		c.connected = false
	}
	shouldReconnect := !stale && !c.closing && !c.reconnecting
	if shouldReconnect {
		c.reconnecting = true
	}
	c.mu.Unlock()

	if shouldReconnect {
		c.logger.Warn("Location channel lost, reconnecting")
		go c.reconnectLoop()
	}
}

// reconnectLoop retries the dial with increasing, capped delays. After the
// attempt budget is spent it signals the down handler and gives up.
func (c *Channel) reconnectLoop() {
	delay := reconnectDelay
	var lastErr error

	for attempt := 1; attempt <= maxReconnectAttempts; attempt++ {
		select {
		case <-time.After(delay):
		case <-c.ctx.Done():
			c.mu.Lock()
			c.reconnecting = false
			c.mu.Unlock()
			return
		}

		c.mu.Lock()
		if c.closing {
			c.reconnecting = false
			c.mu.Unlock()
			return
		}

		err := c.dialLocked()
		if err == nil {
			c.reconnecting = false
			c.mu.Unlock()
			return
		}
		lastErr = err
		c.mu.Unlock()

		c.logger.Warn("Reconnect attempt failed",
			zap.Int("attempt", attempt),
			zap.Duration("next_delay", delay),
			zap.Error(err),
		)

		delay *= 2
		if delay > reconnectMaxDelay {
			delay = reconnectMaxDelay
		}
	}

	c.mu.Lock()
	c.reconnecting = false
	down := c.onDown
	c.mu.Unlock()

	c.logger.Error("Location channel down, reconnection budget exhausted", zap.Error(lastErr))
	if down != nil {
		down(lastErr)
	}
}

// SendLocation transmits a location update, fire-and-forget. While the
// channel is disconnected the update is dropped.
func (c *Channel) SendLocation(update domain.LocationUpdate) error {
	c.mu.Lock()
	defer c.mu.Unlock()

	if !c.connected || c.conn == nil {
		c.logger.Debug("Location update dropped, channel disconnected",
			zap.String("driver_id", update.DriverID),
		)
		return nil
	}

	env := envelope{Event: eventLocationUpdate, Data: update}
	if err := c.conn.WriteJSON(env); err != nil {
		return fmt.Errorf("writing location update: %w", err)
	}
	return nil
}

// Subscribe registers a handler for inbound driver-location broadcasts.
func (c *Channel) Subscribe(handler func(domain.LocationUpdate)) ports.Subscription {
	c.subMu.Lock()
	defer c.subMu.Unlock()

	c.nextSub++
	sub := c.nextSub
	c.subs[sub] = handler
	return sub
}

// Unsubscribe removes a handler registered with Subscribe.
func (c *Channel) Unsubscribe(sub ports.Subscription) {
	c.subMu.Lock()
	defer c.subMu.Unlock()
	delete(c.subs, sub)
}

// dispatch fans an inbound update out to every subscriber.
func (c *Channel) dispatch(update domain.LocationUpdate) {
	c.subMu.RLock()
	handlers := make([]func(domain.LocationUpdate), 0, len(c.subs))
	for _, h := range c.subs {
		handlers = append(handlers, h)
	}
	c.subMu.RUnlock()

	for _, h := range handlers {
		h(update)
	}
}

// Connected reports whether the channel is currently established.
func (c *Channel) Connected() bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.connected
}

// Disconnect tears the channel down and disables reconnection.
func (c *Channel) Disconnect() {
	c.mu.Lock()
	c.closing = true
	c.connected = false
	conn := c.conn
	c.conn = nil
	c.mu.Unlock()

	if conn != nil {
		_ = conn.Close()
		c.logger.Info("Location channel disconnected")
	}
}
