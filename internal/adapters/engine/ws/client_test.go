package ws

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gorilla/websocket"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/flowcanvas/flowcanvas/internal/app/dto"
	"github.com/flowcanvas/flowcanvas/internal/core/stream"
)

var upgrader = websocket.Upgrader{}

// fakeEngine runs a scripted engine endpoint: it records the opening frame,
// replays the given raw event records, and holds the connection open until
// linger (if non-nil) is closed before finishing with a close frame.
func fakeEngine(t *testing.T, events []string, opening chan<- map[string]interface{}, linger <-chan struct{}) *httptest.Server {
	t.Helper()
	return httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if !strings.HasPrefix(r.URL.Path, "/ws/flows/") {
			http.NotFound(w, r)
			return
		}
		conn, err := upgrader.Upgrade(w, r, nil)
		require.NoError(t, err)
		defer conn.Close()

		var frame map[string]interface{}
		require.NoError(t, conn.ReadJSON(&frame))
		opening <- frame

		for _, ev := range events {
			require.NoError(t, conn.WriteMessage(websocket.TextMessage, []byte(ev)))
		}
		if linger != nil {
			<-linger
		}
		_ = conn.WriteControl(websocket.CloseMessage,
			websocket.FormatCloseMessage(websocket.CloseNormalClosure, ""), time.Now().Add(time.Second))
	}))
}

func wsURL(srv *httptest.Server) string {
	return "ws" + strings.TrimPrefix(srv.URL, "http")
}

func TestClient_OpenRunAndRecv(t *testing.T) {
	opening := make(chan map[string]interface{}, 1)
	srv := fakeEngine(t, []string{
		`{"event":"token","node_id":"n1","data":"h"}`,
		`{"event":"node_complete","node_id":"n1","data":"h"}`,
		`{"event":"flow_complete","data":{}}`,
	}, opening, nil)
	defer srv.Close()

	client := NewClient(wsURL(srv))
	req := &dto.RunRequest{Inputs: map[string]interface{}{"question": "hi"}}
	require.NoError(t, req.Validate())

	src, err := client.OpenRun(context.Background(), "flow-1", req)
	require.NoError(t, err)
	defer src.Close()

	frame := <-opening
	assert.Equal(t, map[string]interface{}{"question": "hi"}, frame["inputs"])
	assert.Equal(t, map[string]interface{}{}, frame["context"])

	ctx := context.Background()

	ev, err := src.Recv(ctx)
	require.NoError(t, err)
	assert.Equal(t, stream.EventToken, ev.Type)
	assert.Equal(t, "n1", ev.NodeID)

	ev, err = src.Recv(ctx)
	require.NoError(t, err)
	assert.Equal(t, stream.EventNodeComplete, ev.Type)

	ev, err = src.Recv(ctx)
	require.NoError(t, err)
	assert.Equal(t, stream.EventFlowComplete, ev.Type)

	_, err = src.Recv(ctx)
	assert.ErrorIs(t, err, stream.ErrStreamClosed)
}

func TestClient_RecvTimeout(t *testing.T) {
	opening := make(chan map[string]interface{}, 1)
	linger := make(chan struct{})
	srv := fakeEngine(t, nil, opening, linger) // sends nothing, stays open
	defer srv.Close()
	defer close(linger) // unblock the handler before the server shuts down

	client := NewClient(wsURL(srv))
	req := &dto.RunRequest{}
	require.NoError(t, req.Validate())

	src, err := client.OpenRun(context.Background(), "flow-1", req)
	require.NoError(t, err)
	defer src.Close()
	<-opening

	ctx, cancel := context.WithTimeout(context.Background(), 50*time.Millisecond)
	defer cancel()
	_, err = src.Recv(ctx)
	assert.ErrorIs(t, err, context.DeadlineExceeded)
}

func TestClient_RecvAfterClose(t *testing.T) {
	opening := make(chan map[string]interface{}, 1)
	linger := make(chan struct{})
	srv := fakeEngine(t, nil, opening, linger)
	defer srv.Close()
	defer close(linger) // unblock the handler before the server shuts down

	client := NewClient(wsURL(srv))
	req := &dto.RunRequest{}
	require.NoError(t, req.Validate())

	src, err := client.OpenRun(context.Background(), "flow-1", req)
	require.NoError(t, err)
	<-opening

	require.NoError(t, src.Close())
	_, err = src.Recv(context.Background())
	assert.ErrorIs(t, err, stream.ErrStreamClosed)
}

func TestClient_DialFailure(t *testing.T) {
	client := NewClient("ws://127.0.0.1:1") // nothing listens here
	req := &dto.RunRequest{}
	require.NoError(t, req.Validate())

	_, err := client.OpenRun(context.Background(), "flow-1", req)
	assert.Error(t, err)
}
