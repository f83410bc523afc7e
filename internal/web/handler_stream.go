package web

import (
	"encoding/json"
	"fmt"
	"net/http"
	"slices"
	"time"

	"github.com/gorilla/websocket"

	"github.com/vbonduro/homelist/internal/domain"
)

const (
	streamWriteWait  = 10 * time.Second
	streamPongWait   = 60 * time.Second
	streamPingPeriod = (streamPongWait * 9) / 10
	streamQueueSize  = 8
)

type inventoryMessage struct {
	Type       string            `json:"type"`
	Count      int               `json:"count"`
	Properties []domain.Property `json:"properties"`
}

// streamClient is an inventory observer bound to one websocket connection.
// Update never blocks: when the client falls behind, snapshots are dropped
// and the next one brings it up to date.
type streamClient struct {
	send chan []byte
	done chan struct{}
}

func (c *streamClient) Update(properties []domain.Property) error {
	msg, err := json.Marshal(inventoryMessage{Type: "inventory", Count: len(properties), Properties: properties})
	if err != nil {
		return fmt.Errorf("failed to encode inventory message: %w", err)
	}
	select {
	case c.send <- msg:
		return nil
	case <-c.done:
		return nil
	default:
		return fmt.Errorf("stream client queue full, snapshot dropped")
	}
}

func newUpgrader(origins []string) websocket.Upgrader {
	return websocket.Upgrader{
		CheckOrigin: func(r *http.Request) bool {
			origin := r.Header.Get("Origin")
			return origin == "" || slices.Contains(origins, "*") || slices.Contains(origins, origin)
		},
	}
}

// handleInventoryStream pushes the inventory to the client on connect and
// after every change until the client goes away.
func (s *Server) handleInventoryStream(w http.ResponseWriter, r *http.Request) {
	conn, err := s.ws.Upgrade(w, r, nil)
	if err != nil {
		// Upgrade has already replied to the client.
		s.logger.Warn("websocket upgrade failed", "error", err)
		return
	}

	client := &streamClient{send: make(chan []byte, streamQueueSize), done: make(chan struct{})}
	sub, err := s.inventory.AddObserver(client)
	if err != nil {
		s.logger.Warn("initial inventory snapshot not queued", "error", err)
	}
	s.logger.Info("inventory stream opened", "subscription", sub.String(), "remote_addr", r.RemoteAddr)

	go func() {
		defer close(client.done)
		conn.SetReadLimit(512)
		_ = conn.SetReadDeadline(time.Now().Add(streamPongWait))
		conn.SetPongHandler(func(string) error {
			return conn.SetReadDeadline(time.Now().Add(streamPongWait))
		})
		for {
			if _, _, err := conn.ReadMessage(); err != nil {
				return
			}
		}
	}()

	ticker := time.NewTicker(streamPingPeriod)
	defer func() {
		ticker.Stop()
		s.inventory.RemoveObserver(sub)
		closeWithLog(conn, "websocket", s.logger)
		s.logger.Info("inventory stream closed", "subscription", sub.String())
	}()

	for {
		select {
		case msg := <-client.send:
			_ = conn.SetWriteDeadline(time.Now().Add(streamWriteWait))
			if err := conn.WriteMessage(websocket.TextMessage, msg); err != nil {
				return
			}
		case <-ticker.C:
			_ = conn.SetWriteDeadline(time.Now().Add(streamWriteWait))
			if err := conn.WriteMessage(websocket.PingMessage, nil); err != nil {
				return
			}
		case <-client.done:
			return
		}
	}
}
