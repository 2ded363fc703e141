package ingestion

import (
	"context"
	"fmt"
	"log"
	"time"

	"github.com/gorilla/websocket"

	"dexpath/internal/observability"
)

// WSSourceConfig configures pulse WebSocket source behavior.
type WSSourceConfig struct {
	// ReconnectDelay is the initial delay before a reconnect attempt.
	ReconnectDelay time.Duration
	// MaxReconnectDelay is the maximum delay between reconnect attempts.
	MaxReconnectDelay time.Duration
	// PingInterval is the interval for sending ping frames.
	PingInterval time.Duration
	// ReadTimeout is the timeout for reading messages.
	ReadTimeout time.Duration
	// WriteTimeout is the timeout for writing messages.
	WriteTimeout time.Duration
	// SubscribeMessage, when non-empty, is sent once after every (re)connect.
	SubscribeMessage []byte
}

// DefaultWSSourceConfig returns default WebSocket source configuration.
func DefaultWSSourceConfig() WSSourceConfig {
	return WSSourceConfig{
		ReconnectDelay:    1 * time.Second,
		MaxReconnectDelay: 30 * time.Second,
		PingInterval:      30 * time.Second,
		ReadTimeout:       60 * time.Second,
		WriteTimeout:      10 * time.Second,
	}
}

// WSSource streams pulse payloads from a scanner WebSocket endpoint.
// Connection drops are retried with exponential backoff; each delivered
// message is one raw payload.
type WSSource struct {
	endpoint string
	config   WSSourceConfig
	logger   *log.Logger
}

// NewWSSource creates a pulse WebSocket source for the given endpoint.
func NewWSSource(endpoint string, config *WSSourceConfig, logger *log.Logger) *WSSource {
	cfg := DefaultWSSourceConfig()
	if config != nil {
		cfg = *config
	}
	if logger == nil {
		logger = log.Default()
	}
	return &WSSource{endpoint: endpoint, config: cfg, logger: logger}
}

var _ PayloadSource = (*WSSource)(nil)

// Name identifies the source in logs and metrics.
func (s *WSSource) Name() string { return "pulse_ws" }

// Run connects and delivers payloads until ctx is canceled. Reconnects on
// connection loss; returns only when ctx is done.
func (s *WSSource) Run(ctx context.Context, out chan<- RawPayload) error {
	reconnectDelay := s.config.ReconnectDelay

	for {
		if err := ctx.Err(); err != nil {
			return err
		}

		conn, err := s.connect(ctx)
		if err != nil {
			s.logger.Printf("[pulse_ws] connect failed: %v, retrying in %s", err, reconnectDelay)
			observability.DefaultMetrics.WSReconnects.Inc()

			select {
			case <-ctx.Done():
				return ctx.Err()
			case <-time.After(reconnectDelay):
			}
			reconnectDelay = min(reconnectDelay*2, s.config.MaxReconnectDelay)
			continue
		}

		reconnectDelay = s.config.ReconnectDelay
		err = s.readLoop(ctx, conn, out)
		conn.Close()

		if ctx.Err() != nil {
			return ctx.Err()
		}
		s.logger.Printf("[pulse_ws] connection lost: %v, reconnecting", err)
		observability.DefaultMetrics.WSReconnects.Inc()
	}
}

// connect dials the endpoint and sends the subscribe message if configured.
func (s *WSSource) connect(ctx context.Context) (*websocket.Conn, error) {
	dialer := websocket.Dialer{
		HandshakeTimeout: 10 * time.Second,
	}

	conn, _, err := dialer.DialContext(ctx, s.endpoint, nil)
	if err != nil {
		return nil, fmt.Errorf("websocket dial: %w", err)
	}

	if len(s.config.SubscribeMessage) > 0 {
		conn.SetWriteDeadline(time.Now().Add(s.config.WriteTimeout))
		if err := conn.WriteMessage(websocket.TextMessage, s.config.SubscribeMessage); err != nil {
			conn.Close()
			return nil, fmt.Errorf("write subscribe: %w", err)
		}
	}

	return conn, nil
}

// readLoop reads messages and delivers them until the connection fails.
func (s *WSSource) readLoop(ctx context.Context, conn *websocket.Conn, out chan<- RawPayload) error {
	// Pings keep the scanner connection alive through idle markets.
	pingDone := make(chan struct{})
	defer close(pingDone)
	go s.pingLoop(conn, pingDone)

	conn.SetPongHandler(func(string) error {
		conn.SetReadDeadline(time.Now().Add(s.config.ReadTimeout))
		return nil
	})

	for {
		conn.SetReadDeadline(time.Now().Add(s.config.ReadTimeout))
		msgType, message, err := conn.ReadMessage()
		if err != nil {
			return err
		}
		if msgType != websocket.TextMessage && msgType != websocket.BinaryMessage {
			continue
		}

		payload := RawPayload{
			Source:       s.Name(),
			Data:         message,
			ReceivedAtMs: time.Now().UnixMilli(),
		}

		// Block until delivered - never drop payloads.
		select {
		case out <- payload:
			observability.RecordPayloadReceived(s.Name())
		case <-ctx.Done():
			return ctx.Err()
		}
	}
}

// pingLoop sends periodic ping frames until done is closed.
func (s *WSSource) pingLoop(conn *websocket.Conn, done <-chan struct{}) {
	ticker := time.NewTicker(s.config.PingInterval)
	defer ticker.Stop()

	for {
		select {
		case <-done:
			return
		case <-ticker.C:
			conn.SetWriteDeadline(time.Now().Add(s.config.WriteTimeout))
			if err := conn.WriteMessage(websocket.PingMessage, nil); err != nil {
				// Connection might be dead, the read loop will notice.
				return
			}
		}
	}
}
