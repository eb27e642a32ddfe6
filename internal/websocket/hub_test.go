package websocket

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/deviceshop/deviceshop-backend/internal/app/model"
	"github.com/gorilla/websocket"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func startHub(t *testing.T) *Hub {
	hub := NewHub()
	ctx, cancel := context.WithCancel(context.Background())
	t.Cleanup(cancel)
	go hub.Run(ctx)
	return hub
}

func TestHub_BroadcastOnlyToPostReaders(t *testing.T) {
	hub := startHub(t)

	reader := &Client{Hub: hub, PostID: 1, Send: make(chan []byte, 4)}
	other := &Client{Hub: hub, PostID: 2, Send: make(chan []byte, 4)}
	hub.Register(reader)
	hub.Register(other)
	require.Eventually(t, func() bool { return hub.Readers(1) == 1 && hub.Readers(2) == 1 }, time.Second, 5*time.Millisecond)

	hub.PublishComment(1, &model.Comment{ID: 9, Text: "hi", PostID: 1})

	select {
	case msg := <-reader.Send:
		var event CommentEvent
		require.NoError(t, json.Unmarshal(msg, &event))
		assert.Equal(t, "comment", event.Type)
		assert.Equal(t, uint(9), event.Comment.ID)
	case <-time.After(time.Second):
		t.Fatal("reader did not receive the comment")
	}

	select {
	case <-other.Send:
		t.Fatal("reader of another post received the comment")
	case <-time.After(50 * time.Millisecond):
	}

	hub.Unregister(reader)
	require.Eventually(t, func() bool { return hub.Readers(1) == 0 }, time.Second, 5*time.Millisecond)
	_, open := <-reader.Send
	assert.False(t, open)
}

func TestHub_ServeStreamsComments(t *testing.T) {
	hub := startHub(t)
	upgrader := NewUpgrader(nil)

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_ = hub.Serve(upgrader, w, r, 7, 0)
	}))
	defer server.Close()

	url := "ws" + strings.TrimPrefix(server.URL, "http")
	conn, _, err := websocket.DefaultDialer.Dial(url, nil)
	require.NoError(t, err)
	defer conn.Close()

	require.Eventually(t, func() bool { return hub.Readers(7) == 1 }, time.Second, 5*time.Millisecond)
	hub.PublishComment(7, &model.Comment{ID: 3, Text: "live", PostID: 7})

	require.NoError(t, conn.SetReadDeadline(time.Now().Add(2*time.Second)))
	_, data, err := conn.ReadMessage()
	require.NoError(t, err)

	var event CommentEvent
	require.NoError(t, json.Unmarshal(data, &event))
	assert.Equal(t, "live", event.Comment.Text)
	assert.Equal(t, uint(7), event.PostID)
}
