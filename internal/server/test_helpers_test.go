package server

import (
	"encoding/json"
	"errors"
	"net"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"word-rush/internal/config"
	"word-rush/internal/words"

	"github.com/gorilla/websocket"
)

func newTestServer(t *testing.T, handler http.Handler) *httptest.Server {
	t.Helper()
	listener, err := net.Listen("tcp4", "127.0.0.1:0")
	if err != nil {
		t.Skipf("skipping test; listen unavailable: %v", err)
	}
	ts := &httptest.Server{
		Listener: listener,
		Config:   &http.Server{Handler: handler},
	}
	ts.Start()
	return ts
}

func testConfig() config.Config {
	cfg := config.Default()
	cfg.RevealPauseMillis = 1
	return cfg
}

func testBank(t *testing.T) *words.Bank {
	t.Helper()
	bank, err := words.New([]words.Pair{
		{Prompt: "chat", Answer: "cat", Difficulty: words.Easy},
		{Prompt: "chien", Answer: "dog", Difficulty: words.Easy},
		{Prompt: "maison", Answer: "house", Difficulty: words.Easy},
		{Prompt: "fenetre", Answer: "window", Difficulty: words.Medium},
		{Prompt: "tournevis", Answer: "screwdriver", Difficulty: words.Hard},
	})
	if err != nil {
		t.Fatalf("build test bank: %v", err)
	}
	return bank
}

func waitFor(t *testing.T, timeout time.Duration, describe string, cond func() bool) {
	t.Helper()
	deadline := time.Now().Add(timeout)
	for time.Now().Before(deadline) {
		if cond() {
			return
		}
		time.Sleep(2 * time.Millisecond)
	}
	t.Fatalf("timed out waiting for %s", describe)
}

type turnInfo struct {
	token      int
	playerID   string
	playerName string
	answer     string
	difficulty words.Difficulty
}

var errNoTurn = errors.New("no live turn")

func liveTurn(s *Server, code string) (turnInfo, error) {
	var info turnInfo
	_, err := s.registry.Update(code, func(room *Room) error {
		if room.turn == nil || room.turn.settled {
			return errNoTurn
		}
		info.token = room.turn.token
		info.playerID = room.turn.playerID
		info.answer = room.turn.pair.Answer
		info.difficulty = room.turn.difficulty
		for _, p := range room.Players {
			if p.ID == room.turn.playerID {
				info.playerName = p.Name
			}
		}
		return nil
	})
	return info, err
}

func waitForTurn(t *testing.T, s *Server, code string, after int) turnInfo {
	t.Helper()
	var info turnInfo
	waitFor(t, 2*time.Second, "next turn", func() bool {
		current, err := liveTurn(s, code)
		if err != nil || current.token <= after {
			return false
		}
		info = current
		return true
	})
	return info
}

func roomState(t *testing.T, s *Server, code string, read func(room *Room)) {
	t.Helper()
	_, err := s.registry.Update(code, func(room *Room) error {
		read(room)
		return nil
	})
	if err != nil {
		t.Fatalf("room %s: %v", code, err)
	}
}

func dialWS(t *testing.T, ts *httptest.Server) *websocket.Conn {
	t.Helper()
	wsURL := "ws" + strings.TrimPrefix(ts.URL, "http") + "/ws"
	conn, _, err := websocket.DefaultDialer.Dial(wsURL, nil)
	if err != nil {
		t.Skipf("skipping test; websocket dial unavailable: %v", err)
	}
	t.Cleanup(func() { _ = conn.Close() })
	return conn
}

func sendAction(t *testing.T, conn *websocket.Conn, payload map[string]any) {
	t.Helper()
	if err := conn.WriteJSON(payload); err != nil {
		t.Fatalf("write ws message: %v", err)
	}
}

// readUntilType consumes messages until one with the wanted type
// arrives, returning its decoded body.
func readUntilType(t *testing.T, conn *websocket.Conn, timeout time.Duration, want string) map[string]any {
	t.Helper()
	deadline := time.Now().Add(timeout)
	for {
		_ = conn.SetReadDeadline(deadline)
		_, raw, err := conn.ReadMessage()
		if err != nil {
			t.Fatalf("waiting for %q: %v", want, err)
		}
		var msg map[string]any
		if err := json.Unmarshal(raw, &msg); err != nil {
			t.Fatalf("decode ws message: %v", err)
		}
		if msg["type"] == want {
			return msg
		}
	}
}

// collectTypes reads every message that arrives within the window and
// returns their type tags in order.
func collectTypes(t *testing.T, conn *websocket.Conn, window time.Duration) []string {
	t.Helper()
	var types []string
	deadline := time.Now().Add(window)
	for {
		_ = conn.SetReadDeadline(deadline)
		_, raw, err := conn.ReadMessage()
		if err != nil {
			return types
		}
		var msg map[string]any
		if err := json.Unmarshal(raw, &msg); err != nil {
			continue
		}
		if tag, ok := msg["type"].(string); ok {
			types = append(types, tag)
		}
	}
}

func countType(types []string, want string) int {
	n := 0
	for _, tag := range types {
		if tag == want {
			n++
		}
	}
	return n
}

func expectNoMessage(t *testing.T, conn *websocket.Conn, window time.Duration) {
	t.Helper()
	_ = conn.SetReadDeadline(time.Now().Add(window))
	if _, raw, err := conn.ReadMessage(); err == nil {
		t.Fatalf("expected no message, got %s", raw)
	}
}
