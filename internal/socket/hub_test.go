package socket

import (
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/gorilla/websocket"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// Nhiều handler publish song song phải không được ghi chồng lên cùng một
// kết nối; client phải nhận đủ từng frame nguyên vẹn.
func TestConcurrentPublishesReachClientIntact(t *testing.T) {
	hub := NewHub()
	upgrader := websocket.Upgrader{}
	registered := make(chan struct{})

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		conn, err := upgrader.Upgrade(w, r, nil)
		if err != nil {
			return
		}
		hub.Register("client-1", conn)
		close(registered)
	}))
	defer srv.Close()

	conn, _, err := websocket.DefaultDialer.Dial("ws"+strings.TrimPrefix(srv.URL, "http"), nil)
	require.NoError(t, err)
	defer conn.Close()

	select {
	case <-registered:
	case <-time.After(2 * time.Second):
		t.Fatal("client was never registered")
	}

	const n = 100
	var wg sync.WaitGroup
	for i := 0; i < n; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			hub.Publish(EventCageCreated, map[string]string{"id": fmt.Sprintf("CAGE-%03d", i)})
		}(i)
	}
	wg.Wait()

	require.NoError(t, conn.SetReadDeadline(time.Now().Add(2*time.Second)))
	seen := make(map[string]bool, n)
	for i := 0; i < n; i++ {
		_, raw, err := conn.ReadMessage()
		require.NoError(t, err)

		var env Envelope
		require.NoError(t, json.Unmarshal(raw, &env))
		assert.Equal(t, EventCageCreated, env.Event)

		data, ok := env.Data.(map[string]interface{})
		require.True(t, ok)
		id, _ := data["id"].(string)
		seen[id] = true
	}
	assert.Len(t, seen, n)

	hub.Unregister("client-1")
}

func TestSendToUnknownClientIsNotAnError(t *testing.T) {
	hub := NewHub()
	assert.NoError(t, hub.Send("nobody", []byte("hello")))
}
