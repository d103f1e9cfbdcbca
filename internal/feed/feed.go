// Package feed streams race results to websocket observers, such as the
// organiser's payout dashboard.
package feed

import (
	"fmt"
	"io"
	"net/http"
	"sync"
	"time"

	"derby/internal/events"

	"github.com/charmbracelet/log"
	"github.com/gorilla/websocket"
	"google.golang.org/protobuf/proto"
	"google.golang.org/protobuf/types/known/structpb"
)

const writeWait = 2 * time.Second

// Hub keeps the set of connected observers and pushes every game-over to
// them as a binary protobuf frame.
type Hub struct {
	mu       sync.Mutex
	clients  map[*websocket.Conn]struct{}
	upgrader websocket.Upgrader
	log      *log.Logger
	last     []byte
}

// NewHub creates an empty hub.
func NewHub(logger *log.Logger) *Hub {
	if logger == nil {
		logger = log.New(io.Discard)
	}
	return &Hub{
		clients: make(map[*websocket.Conn]struct{}),
		upgrader: websocket.Upgrader{
			ReadBufferSize:  1024,
			WriteBufferSize: 1024,
			CheckOrigin: func(r *http.Request) bool {
				return true
			},
		},
		log: logger,
	}
}

// Attach forwards every game-over published on bus to the observers.
func (h *Hub) Attach(bus *events.Bus) *events.Subscription {
	return events.Subscribe(bus, events.Finished, h.Broadcast)
}

// Broadcast sends ev to every connected observer. Observers that fail to
// accept the frame are dropped.
func (h *Hub) Broadcast(ev events.GameOver) {
	payload, err := Encode(ev)
	if err != nil {
		h.log.Error("failed to encode result", "race", ev.RaceID, "err", err)
		return
	}

	h.mu.Lock()
	defer h.mu.Unlock()
	h.last = payload
	for conn := range h.clients {
		if err := write(conn, payload); err != nil {
			h.log.Warn("dropping observer", "remote", conn.RemoteAddr(), "err", err)
			conn.Close()
			delete(h.clients, conn)
		}
	}
}

// Handler upgrades requests to websocket observers. A new observer receives
// the latest result immediately, if there is one.
func (h *Hub) Handler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		conn, err := h.upgrader.Upgrade(w, r, nil)
		if err != nil {
			h.log.Warn("websocket upgrade failed", "err", err)
			return
		}
		if !h.add(conn) {
			return
		}
		defer h.remove(conn)

		for {
			if _, _, err := conn.ReadMessage(); err != nil {
				h.log.Debug("observer disconnected", "remote", conn.RemoteAddr(), "err", err)
				return
			}
		}
	}
}

func (h *Hub) add(conn *websocket.Conn) bool {
	h.mu.Lock()
	defer h.mu.Unlock()
	if h.last != nil {
		if err := write(conn, h.last); err != nil {
			conn.Close()
			return false
		}
	}
	h.clients[conn] = struct{}{}
	return true
}

func (h *Hub) remove(conn *websocket.Conn) {
	h.mu.Lock()
	defer h.mu.Unlock()
	delete(h.clients, conn)
	conn.Close()
}

// Clients reports the number of connected observers.
func (h *Hub) Clients() int {
	h.mu.Lock()
	defer h.mu.Unlock()
	return len(h.clients)
}

// Close disconnects every observer.
func (h *Hub) Close() {
	h.mu.Lock()
	defer h.mu.Unlock()
	for conn := range h.clients {
		conn.Close()
		delete(h.clients, conn)
	}
}

func write(conn *websocket.Conn, payload []byte) error {
	if err := conn.SetWriteDeadline(time.Now().Add(writeWait)); err != nil {
		return err
	}
	return conn.WriteMessage(websocket.BinaryMessage, payload)
}

// Encode serialises a game-over payload as a protobuf Struct.
func Encode(ev events.GameOver) ([]byte, error) {
	results := make([]any, len(ev.Results))
	for i, r := range ev.Results {
		results[i] = map[string]any{"id": r.ID, "time": r.Time}
	}
	msg, err := structpb.NewStruct(map[string]any{
		"raceId":  ev.RaceID,
		"player":  ev.Player,
		"rank":    ev.Rank,
		"results": results,
	})
	if err != nil {
		return nil, fmt.Errorf("build result struct: %w", err)
	}
	return proto.Marshal(msg)
}

// Decode parses a frame produced by Encode.
func Decode(data []byte) (events.GameOver, error) {
	var msg structpb.Struct
	if err := proto.Unmarshal(data, &msg); err != nil {
		return events.GameOver{}, fmt.Errorf("decode result frame: %w", err)
	}
	fields := msg.GetFields()
	ev := events.GameOver{
		RaceID: fields["raceId"].GetStringValue(),
		Player: int(fields["player"].GetNumberValue()),
		Rank:   int(fields["rank"].GetNumberValue()),
	}
	for _, v := range fields["results"].GetListValue().GetValues() {
		row := v.GetStructValue().GetFields()
		ev.Results = append(ev.Results, events.Result{
			ID:   int(row["id"].GetNumberValue()),
			Time: row["time"].GetNumberValue(),
		})
	}
	return ev, nil
}
