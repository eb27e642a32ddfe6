package websocket

import (
	"context"
	"encoding/json"
	"sync"

	"github.com/deviceshop/deviceshop-backend/internal/app/model"
	"github.com/deviceshop/deviceshop-backend/pkg/logger"
)

// Client is one reader following the comments of a post.
type Client struct {
	Hub    *Hub
	Conn   *Conn
	PostID uint
	UserID uint // 0 for anonymous readers
	Send   chan []byte
}

// Hub fans new comments out to the readers of each post.
type Hub struct {
	// post id -> connected readers
	rooms map[uint]map[*Client]bool

	register   chan *Client
	unregister chan *Client
	broadcast  chan *BroadcastMessage

	mu sync.RWMutex
}

type BroadcastMessage struct {
	PostID  uint
	Message []byte
}

// CommentEvent is the payload pushed for every new comment.
type CommentEvent struct {
	Type    string         `json:"type"`
	PostID  uint           `json:"post_id"`
	Comment *model.Comment `json:"comment"`
}

func NewHub() *Hub {
	return &Hub{
		rooms:      make(map[uint]map[*Client]bool),
		register:   make(chan *Client, 256),
		unregister: make(chan *Client, 256),
		broadcast:  make(chan *BroadcastMessage, 1024),
	}
}

// Run processes registrations and broadcasts until ctx is done, then
// closes every client.
func (h *Hub) Run(ctx context.Context) {
	for {
		select {
		case <-ctx.Done():
			h.mu.Lock()
			for postID, clients := range h.rooms {
				for client := range clients {
					close(client.Send)
				}
				delete(h.rooms, postID)
			}
			h.mu.Unlock()
			logger.Info("WebSocket hub stopped")
			return

		case client := <-h.register:
			h.mu.Lock()
			if _, ok := h.rooms[client.PostID]; !ok {
				h.rooms[client.PostID] = make(map[*Client]bool)
			}
			h.rooms[client.PostID][client] = true
			readers := len(h.rooms[client.PostID])
			h.mu.Unlock()
			logger.Debug("WebSocket reader registered", map[string]interface{}{
				"post_id": client.PostID,
				"user_id": client.UserID,
				"readers": readers,
			})

		case client := <-h.unregister:
			h.remove(client)

		case message := <-h.broadcast:
			h.mu.RLock()
			var slow []*Client
			for client := range h.rooms[message.PostID] {
				select {
				case client.Send <- message.Message:
				default:
					slow = append(slow, client)
				}
			}
			h.mu.RUnlock()

			for _, client := range slow {
				logger.Warn("Reader send buffer full, disconnecting", map[string]interface{}{
					"post_id": client.PostID,
					"user_id": client.UserID,
				})
				h.remove(client)
			}
		}
	}
}

func (h *Hub) remove(client *Client) {
	h.mu.Lock()
	defer h.mu.Unlock()

	clients, ok := h.rooms[client.PostID]
	if !ok || !clients[client] {
		return
	}
	delete(clients, client)
	if len(clients) == 0 {
		delete(h.rooms, client.PostID)
	}
	close(client.Send)

	logger.Debug("WebSocket reader unregistered", map[string]interface{}{
		"post_id": client.PostID,
		"user_id": client.UserID,
	})
}

func (h *Hub) Register(client *Client) {
	h.register <- client
}

func (h *Hub) Unregister(client *Client) {
	h.unregister <- client
}

// Readers returns how many clients follow the post.
func (h *Hub) Readers(postID uint) int {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return len(h.rooms[postID])
}

// SendToPost queues message for every reader of the post. Messages are
// dropped when the broadcast queue is full.
func (h *Hub) SendToPost(postID uint, message interface{}) error {
	data, err := json.Marshal(message)
	if err != nil {
		logger.Error("Failed to marshal message", err)
		return err
	}

	select {
	case h.broadcast <- &BroadcastMessage{PostID: postID, Message: data}:
	default:
		logger.Warn("Broadcast channel full, message dropped", map[string]interface{}{
			"post_id": postID,
		})
	}
	return nil
}

// PublishComment pushes a new comment to the readers of its post.
func (h *Hub) PublishComment(postID uint, comment *model.Comment) {
	_ = h.SendToPost(postID, CommentEvent{
		Type:    "comment",
		PostID:  postID,
		Comment: comment,
	})
}
