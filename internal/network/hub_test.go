package network

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gorilla/websocket"

	"github.com/wardenworks/prisonsim/internal/feed"
	"github.com/wardenworks/prisonsim/internal/platform/logger"
)

func dialTestHub(t *testing.T, srv *httptest.Server) *websocket.Conn {
	t.Helper()
	url := "ws" + strings.TrimPrefix(srv.URL, "http")
	conn, _, err := websocket.DefaultDialer.Dial(url, nil)
	if err != nil {
		t.Fatalf("Dial: %v", err)
	}
	t.Cleanup(func() { conn.Close() })
	return conn
}

func TestSpectatorReceivesFeedEntries(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	h := NewHub(logger.NewLogger())
	go h.Run(ctx)

	srv := httptest.NewServer(http.HandlerFunc(h.ServeWS))
	defer srv.Close()
	conn := dialTestHub(t, srv)

	log := feed.NewLog(nil)
	h.StartFeedPoller(ctx, log)
	log.Record(feed.CategoryEvent, "A riot has started in the cafeteria!", 8, 3)

	conn.SetReadDeadline(time.Now().Add(2 * time.Second))
	_, payload, err := conn.ReadMessage()
	if err != nil {
		t.Fatalf("ReadMessage: %v", err)
	}

	var entry feed.Entry
	if err := json.Unmarshal(payload, &entry); err != nil {
		t.Fatalf("Unmarshal: %v", err)
	}
	if entry.Message != "A riot has started in the cafeteria!" {
		t.Errorf("Unexpected message %q", entry.Message)
	}
	if entry.Category != feed.CategoryEvent || entry.Severity != 8 || entry.GameDay != 3 {
		t.Errorf("Entry lost fields in transit: %+v", entry)
	}
}

func TestBroadcastReachesEverySpectator(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	h := NewHub(logger.NewLogger())
	go h.Run(ctx)

	srv := httptest.NewServer(http.HandlerFunc(h.ServeWS))
	defer srv.Close()
	first := dialTestHub(t, srv)
	second := dialTestHub(t, srv)

	// Let both registrations reach the hub loop.
	time.Sleep(50 * time.Millisecond)

	h.BroadcastEntry(feed.Entry{
		ID:       "e-1",
		Time:     time.Now(),
		Category: feed.CategorySystem,
		Message:  "Day 2 begins.",
		GameDay:  2,
	})

	for i, conn := range []*websocket.Conn{first, second} {
		conn.SetReadDeadline(time.Now().Add(2 * time.Second))
		_, payload, err := conn.ReadMessage()
		if err != nil {
			t.Fatalf("Spectator %d ReadMessage: %v", i, err)
		}
		var entry feed.Entry
		if err := json.Unmarshal(payload, &entry); err != nil {
			t.Fatalf("Spectator %d Unmarshal: %v", i, err)
		}
		if entry.Message != "Day 2 begins." {
			t.Errorf("Spectator %d got %q", i, entry.Message)
		}
	}
}

func TestPollerOnlySendsNewEntries(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	h := NewHub(logger.NewLogger())
	go h.Run(ctx)

	srv := httptest.NewServer(http.HandlerFunc(h.ServeWS))
	defer srv.Close()
	conn := dialTestHub(t, srv)

	log := feed.NewLog(nil)
	h.StartFeedPoller(ctx, log)

	log.Record(feed.CategoryActivity, "Mike is reading in the library.", 0, 1)
	log.Record(feed.CategoryActivity, "Carlos is working in the workshop.", 0, 1)

	var messages []string
	for len(messages) < 2 {
		conn.SetReadDeadline(time.Now().Add(2 * time.Second))
		_, payload, err := conn.ReadMessage()
		if err != nil {
			t.Fatalf("ReadMessage: %v", err)
		}
		var entry feed.Entry
		if err := json.Unmarshal(payload, &entry); err != nil {
			t.Fatalf("Unmarshal: %v", err)
		}
		messages = append(messages, entry.Message)
	}
	if messages[0] != "Mike is reading in the library." || messages[1] != "Carlos is working in the workshop." {
		t.Errorf("Entries out of order or duplicated: %v", messages)
	}
}
