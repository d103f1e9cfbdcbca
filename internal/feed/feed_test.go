package feed

import (
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"derby/internal/events"

	"github.com/gorilla/websocket"
)

func sampleResult() events.GameOver {
	return events.GameOver{
		RaceID: "race-42",
		Player: 2,
		Rank:   1,
		Results: []events.Result{
			{ID: 2, Time: 5392},
			{ID: 0, Time: 11648},
			{ID: 1, Time: 11648},
		},
	}
}

func TestEncodeDecodeRoundTrip(t *testing.T) {
	want := sampleResult()
	data, err := Encode(want)
	if err != nil {
		t.Fatal(err)
	}
	got, err := Decode(data)
	if err != nil {
		t.Fatal(err)
	}
	if got.RaceID != want.RaceID || got.Rank != want.Rank || got.Player != want.Player {
		t.Fatalf("header mismatch: %+v", got)
	}
	if len(got.Results) != len(want.Results) {
		t.Fatalf("expected %d results, got %d", len(want.Results), len(got.Results))
	}
	for i := range want.Results {
		if got.Results[i] != want.Results[i] {
			t.Fatalf("result %d mismatch: %+v vs %+v", i, got.Results[i], want.Results[i])
		}
	}
}

func TestDecodeRejectsGarbage(t *testing.T) {
	if _, err := Decode([]byte{0xff, 0xff, 0xff}); err == nil {
		t.Fatal("expected decode error for garbage input")
	}
}

func dial(t *testing.T, hub *Hub, srv *httptest.Server) *websocket.Conn {
	t.Helper()
	before := hub.Clients()
	url := "ws" + strings.TrimPrefix(srv.URL, "http")
	conn, _, err := websocket.DefaultDialer.Dial(url, nil)
	if err != nil {
		t.Fatalf("dial: %v", err)
	}
	t.Cleanup(func() { conn.Close() })

	deadline := time.Now().Add(2 * time.Second)
	for hub.Clients() <= before {
		if time.Now().After(deadline) {
			t.Fatal("observer never registered")
		}
		time.Sleep(5 * time.Millisecond)
	}
	return conn
}

func readResult(t *testing.T, conn *websocket.Conn) events.GameOver {
	t.Helper()
	conn.SetReadDeadline(time.Now().Add(2 * time.Second))
	kind, data, err := conn.ReadMessage()
	if err != nil {
		t.Fatalf("read: %v", err)
	}
	if kind != websocket.BinaryMessage {
		t.Fatalf("expected binary frame, got %d", kind)
	}
	ev, err := Decode(data)
	if err != nil {
		t.Fatal(err)
	}
	return ev
}

func TestHubBroadcastsGameOver(t *testing.T) {
	hub := NewHub(nil)
	srv := httptest.NewServer(hub.Handler())
	t.Cleanup(srv.Close)
	t.Cleanup(hub.Close)

	bus := events.NewBus()
	sub := hub.Attach(bus)
	t.Cleanup(sub.Unsubscribe)

	conn := dial(t, hub, srv)
	events.Publish(bus, events.Finished, sampleResult())

	got := readResult(t, conn)
	if got.RaceID != "race-42" || got.Rank != 1 || len(got.Results) != 3 {
		t.Fatalf("unexpected broadcast %+v", got)
	}
}

func TestLateObserverGetsLastResult(t *testing.T) {
	hub := NewHub(nil)
	srv := httptest.NewServer(hub.Handler())
	t.Cleanup(srv.Close)
	t.Cleanup(hub.Close)

	hub.Broadcast(sampleResult())
	conn := dial(t, hub, srv)

	got := readResult(t, conn)
	if got.RaceID != "race-42" {
		t.Fatalf("expected replay of last result, got %+v", got)
	}
}
