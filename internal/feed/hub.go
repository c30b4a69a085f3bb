// Package feed streams registry events to websocket subscribers.
package feed

import (
	"encoding/json"
	"net/http"
	"sync"
	"time"

	"github.com/gorilla/websocket"
	"go.uber.org/zap"

	"solana-token-api/internal/domain"
	"solana-token-api/internal/observability"
)

// Event types published on the feed.
const (
	EventTokenCreated     = "token_created"
	EventTransferRecorded = "transfer_recorded"
)

const (
	sendBufferSize = 64
	writeWait      = 10 * time.Second
	pongWait       = 60 * time.Second
	pingPeriod     = (pongWait * 9) / 10
)

// Event is the JSON envelope written to subscribers.
type Event struct {
	Type string `json:"type"`
	Data any    `json:"data"`
}

// Publisher receives registry events. The API layer depends on this
// interface so that the feed can be swapped or disabled.
type Publisher interface {
	TokenCreated(t *domain.Token)
	TransferRecorded(t *domain.TokenTransfer)
}

// subscriber is one websocket connection with its outbound queue.
type subscriber struct {
	conn *websocket.Conn
	send chan []byte
	once sync.Once
}

func (s *subscriber) close() {
	s.once.Do(func() {
		close(s.send)
	})
}

// Hub fans out events to all connected subscribers. A subscriber whose
// queue is full is dropped instead of blocking publishers.
type Hub struct {
	mu       sync.Mutex
	subs     map[*subscriber]struct{}
	closed   bool
	upgrader websocket.Upgrader
	logger   *zap.Logger
	metrics  *observability.Metrics
}

// NewHub creates a hub. metrics may be nil.
func NewHub(logger *zap.Logger, metrics *observability.Metrics) *Hub {
	return &Hub{
		subs:     make(map[*subscriber]struct{}),
		upgrader: websocket.Upgrader{CheckOrigin: func(r *http.Request) bool { return true }},
		logger:   logger,
		metrics:  metrics,
	}
}

// TokenCreated publishes a token_created event.
func (h *Hub) TokenCreated(t *domain.Token) {
	h.publish(EventTokenCreated, t)
}

// TransferRecorded publishes a transfer_recorded event.
func (h *Hub) TransferRecorded(t *domain.TokenTransfer) {
	h.publish(EventTransferRecorded, t)
}

func (h *Hub) publish(eventType string, data any) {
	msg, err := json.Marshal(Event{Type: eventType, Data: data})
	if err != nil {
		h.logger.Error("marshal feed event", zap.String("type", eventType), zap.Error(err))
		return
	}

	h.mu.Lock()
	defer h.mu.Unlock()

	for s := range h.subs {
		select {
		case s.send <- msg:
			if h.metrics != nil {
				h.metrics.RecordFeedEvent(eventType)
			}
		default:
			h.logger.Warn("dropping slow feed subscriber", zap.String("remote", s.conn.RemoteAddr().String()))
			h.removeLocked(s)
			if h.metrics != nil {
				h.metrics.RecordFeedDrop()
			}
		}
	}
}

// Subscribers returns the number of connected subscribers.
func (h *Hub) Subscribers() int {
	h.mu.Lock()
	defer h.mu.Unlock()
	return len(h.subs)
}

// ServeHTTP upgrades the request to a websocket and registers the subscriber.
func (h *Hub) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	conn, err := h.upgrader.Upgrade(w, r, nil)
	if err != nil {
		// Upgrade already wrote an HTTP error response.
		h.logger.Debug("websocket upgrade failed", zap.Error(err))
		return
	}

	s := &subscriber{conn: conn, send: make(chan []byte, sendBufferSize)}

	h.mu.Lock()
	if h.closed {
		h.mu.Unlock()
		conn.Close()
		return
	}
	h.subs[s] = struct{}{}
	h.updateGaugeLocked()
	h.mu.Unlock()

	h.logger.Debug("feed subscriber connected", zap.String("remote", conn.RemoteAddr().String()))

	go h.writeLoop(s)
	go h.readLoop(s)
}

// Close disconnects every subscriber and rejects new ones.
func (h *Hub) Close() {
	h.mu.Lock()
	defer h.mu.Unlock()

	h.closed = true
	for s := range h.subs {
		h.removeLocked(s)
	}
}

func (h *Hub) remove(s *subscriber) {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.removeLocked(s)
}

func (h *Hub) removeLocked(s *subscriber) {
	if _, ok := h.subs[s]; !ok {
		return
	}
	delete(h.subs, s)
	s.close()
	h.updateGaugeLocked()
}

func (h *Hub) updateGaugeLocked() {
	if h.metrics != nil {
		h.metrics.SetFeedSubscribers(len(h.subs))
	}
}

// writeLoop drains the subscriber queue and keeps the connection alive with pings.
func (h *Hub) writeLoop(s *subscriber) {
	ticker := time.NewTicker(pingPeriod)
	defer func() {
		ticker.Stop()
		s.conn.Close()
	}()

	for {
		select {
		case msg, ok := <-s.send:
			if err := s.conn.SetWriteDeadline(time.Now().Add(writeWait)); err != nil {
				h.logger.Debug("feed set write deadline failed", zap.Error(err))
			}
			if !ok {
				closeMsg := websocket.FormatCloseMessage(websocket.CloseGoingAway, "")
				if err := s.conn.WriteMessage(websocket.CloseMessage, closeMsg); err != nil {
					h.logger.Debug("feed close frame failed", zap.Error(err))
				}
				return
			}
			if err := s.conn.WriteMessage(websocket.TextMessage, msg); err != nil {
				h.logger.Debug("feed write failed", zap.Error(err))
				h.remove(s)
				return
			}
		case <-ticker.C:
			if err := s.conn.SetWriteDeadline(time.Now().Add(writeWait)); err != nil {
				h.logger.Debug("feed set write deadline failed", zap.Error(err))
			}
			if err := s.conn.WriteMessage(websocket.PingMessage, nil); err != nil {
				h.logger.Debug("feed ping failed", zap.Error(err))
				h.remove(s)
				return
			}
		}
	}
}

// readLoop discards client messages and detects disconnects.
func (h *Hub) readLoop(s *subscriber) {
	defer h.remove(s)

	if err := s.conn.SetReadDeadline(time.Now().Add(pongWait)); err != nil {
		h.logger.Debug("feed set read deadline failed", zap.Error(err))
	}
	s.conn.SetPongHandler(func(string) error {
		return s.conn.SetReadDeadline(time.Now().Add(pongWait))
	})

	for {
		if _, _, err := s.conn.ReadMessage(); err != nil {
			h.logger.Debug("feed subscriber disconnected", zap.Error(err))
			return
		}
	}
}

var _ Publisher = (*Hub)(nil)

// Discard is a Publisher that drops every event.
type Discard struct{}

// TokenCreated implements Publisher.
func (Discard) TokenCreated(*domain.Token) {}

// TransferRecorded implements Publisher.
func (Discard) TransferRecorded(*domain.TokenTransfer) {}
