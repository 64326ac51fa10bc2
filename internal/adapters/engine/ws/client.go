// Package ws implements the execution-engine port over a WebSocket
// progress stream.
package ws

import (
	"context"
	"errors"
	"fmt"
	"net"
	"sync"
	"time"

	"github.com/gorilla/websocket"

	"github.com/flowcanvas/flowcanvas/internal/app/dto"
	"github.com/flowcanvas/flowcanvas/internal/core/stream"
)

// Client dials the engine's per-flow execution endpoint.
type Client struct {
	baseURL string
	dialer  *websocket.Dialer
}

// NewClient creates an engine client. baseURL uses the ws/wss scheme,
// e.g. "ws://localhost:8002".
func NewClient(baseURL string) *Client {
	return &Client{
		baseURL: baseURL,
		dialer: &websocket.Dialer{
			HandshakeTimeout: 10 * time.Second,
		},
	}
}

// OpenRun dials /ws/flows/{id}/execute, sends the opening frame carrying
// the run's initial inputs and context, and returns the live event stream.
func (c *Client) OpenRun(ctx context.Context, flowID string, req *dto.RunRequest) (stream.Stream, error) {
	url := fmt.Sprintf("%s/ws/flows/%s/execute", c.baseURL, flowID)
	conn, _, err := c.dialer.DialContext(ctx, url, nil)
	if err != nil {
		return nil, fmt.Errorf("dial execution engine: %w", err)
	}

	opening := map[string]interface{}{
		"inputs":  req.Inputs,
		"context": req.Context,
	}
	if err := conn.WriteJSON(opening); err != nil {
		conn.Close()
		return nil, fmt.Errorf("send run inputs: %w", err)
	}

	return &wsStream{conn: conn}, nil
}

// wsStream adapts one WebSocket connection to the stream contract.
type wsStream struct {
	conn   *websocket.Conn
	once   sync.Once
	closed bool
	mu     sync.Mutex
}

func (s *wsStream) Recv(ctx context.Context) (*stream.Event, error) {
	s.mu.Lock()
	if s.closed {
		s.mu.Unlock()
		return nil, stream.ErrStreamClosed
	}
	s.mu.Unlock()

	deadline := time.Time{}
	if d, ok := ctx.Deadline(); ok {
		deadline = d
	}
	if err := s.conn.SetReadDeadline(deadline); err != nil {
		return nil, fmt.Errorf("set read deadline: %w", err)
	}

	_, raw, err := s.conn.ReadMessage()
	if err != nil {
		var netErr net.Error
		switch {
		case errors.As(err, &netErr) && netErr.Timeout():
			return nil, context.DeadlineExceeded
		case websocket.IsCloseError(err, websocket.CloseNormalClosure, websocket.CloseGoingAway):
			return nil, stream.ErrStreamClosed
		default:
			s.mu.Lock()
			closed := s.closed
			s.mu.Unlock()
			if closed {
				return nil, stream.ErrStreamClosed
			}
			return nil, fmt.Errorf("read event: %w", err)
		}
	}
	return stream.Parse(raw)
}

func (s *wsStream) Close() error {
	var err error
	s.once.Do(func() {
		s.mu.Lock()
		s.closed = true
		s.mu.Unlock()
		// Best effort close handshake before tearing the connection down.
		deadline := time.Now().Add(time.Second)
		_ = s.conn.WriteControl(websocket.CloseMessage,
			websocket.FormatCloseMessage(websocket.CloseNormalClosure, ""), deadline)
		err = s.conn.Close()
	})
	return err
}
