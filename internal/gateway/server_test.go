package gateway

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/gorilla/websocket"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// --- fakes ---

// fakeSubscriber hands out a scripted message channel and records the
// recipient and consume context so cancellation can be asserted. Access
// is guarded because Consume runs on the connection's goroutine.
type fakeSubscriber struct {
	mu        sync.Mutex
	msgs      chan []byte
	recipient string
	ctx       context.Context
	err       error
}

func (f *fakeSubscriber) Consume(ctx context.Context, recipient string) (<-chan []byte, error) {
	f.mu.Lock()
	f.recipient = recipient
	f.ctx = ctx
	f.mu.Unlock()
	if f.err != nil {
		return nil, f.err
	}
	return f.msgs, nil
}

func (f *fakeSubscriber) consumedRecipient() string {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.recipient
}

func (f *fakeSubscriber) consumeContext() context.Context {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.ctx
}

func newTestGateway(t *testing.T, sub QueueSubscriber) *httptest.Server {
	t.Helper()
	gin.SetMode(gin.TestMode)
	logger := zerolog.Nop()
	srv := httptest.NewServer(newRouter(sub, &logger))
	t.Cleanup(srv.Close)
	return srv
}

func dial(t *testing.T, srv *httptest.Server, path string) *websocket.Conn {
	t.Helper()
	url := "ws" + strings.TrimPrefix(srv.URL, "http") + path
	conn, resp, err := websocket.DefaultDialer.Dial(url, nil)
	require.NoError(t, err)
	if resp != nil {
		resp.Body.Close()
	}
	t.Cleanup(func() { conn.Close() })
	return conn
}

// --- tests ---

func TestGateway_ForwardsMessagesInOrder(t *testing.T) {
	sub := &fakeSubscriber{msgs: make(chan []byte, 2)}
	srv := newTestGateway(t, sub)

	conn := dial(t, srv, "/alice")

	sub.msgs <- []byte("M1")
	sub.msgs <- []byte("M2")

	for _, want := range []string{"M1", "M2"} {
		require.NoError(t, conn.SetReadDeadline(time.Now().Add(2*time.Second)))
		msgType, payload, err := conn.ReadMessage()
		require.NoError(t, err)
		assert.Equal(t, websocket.TextMessage, msgType)
		assert.Equal(t, want, string(payload))
	}

	assert.Equal(t, "alice", sub.consumedRecipient(), "queue identity comes from the path verbatim")
}

func TestGateway_ClientDisconnectReleasesSubscription(t *testing.T) {
	sub := &fakeSubscriber{msgs: make(chan []byte)}
	srv := newTestGateway(t, sub)

	conn := dial(t, srv, "/bob")
	require.Eventually(t, func() bool { return sub.consumeContext() != nil }, 2*time.Second, 10*time.Millisecond)

	require.NoError(t, conn.Close())

	select {
	case <-sub.consumeContext().Done():
	case <-time.After(2 * time.Second):
		t.Fatal("consume context not cancelled after client disconnect")
	}
}

func TestGateway_SubscriptionEndClosesSocket(t *testing.T) {
	sub := &fakeSubscriber{msgs: make(chan []byte)}
	srv := newTestGateway(t, sub)

	conn := dial(t, srv, "/carol")

	// Broker drops the subscription: the client observes a closed socket.
	close(sub.msgs)

	require.NoError(t, conn.SetReadDeadline(time.Now().Add(2*time.Second)))
	_, _, err := conn.ReadMessage()
	assert.Error(t, err)
}

func TestGateway_BrokerAttachFailureClosesConnection(t *testing.T) {
	sub := &fakeSubscriber{err: context.DeadlineExceeded}
	srv := newTestGateway(t, sub)

	conn := dial(t, srv, "/dave")

	require.NoError(t, conn.SetReadDeadline(time.Now().Add(2*time.Second)))
	_, _, err := conn.ReadMessage()
	assert.Error(t, err, "attach failure must surface as a closed socket")
}

func TestGateway_HealthEndpoint(t *testing.T) {
	sub := &fakeSubscriber{msgs: make(chan []byte)}
	srv := newTestGateway(t, sub)

	resp, err := http.Get(srv.URL + "/health")
	require.NoError(t, err)
	defer resp.Body.Close()

	assert.Equal(t, http.StatusOK, resp.StatusCode)
}
