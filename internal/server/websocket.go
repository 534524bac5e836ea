package server

import (
	"encoding/json"
	"log"
	"net/http"
	"sync"

	"github.com/google/uuid"
	"github.com/gorilla/websocket"
)

// client is one connected socket. The mutex serializes writes, since
// broadcasts and direct sends come from different goroutines.
type client struct {
	id   string
	conn *websocket.Conn
	mu   sync.Mutex
}

func (c *client) send(payload any) error {
	data, err := json.Marshal(payload)
	if err != nil {
		return err
	}
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.conn.WriteMessage(websocket.TextMessage, data)
}

// hub tracks every connection plus per-room membership for fan-out.
type hub struct {
	mu    sync.Mutex
	conns map[*client]struct{}
	rooms map[string]map[*client]struct{}
}

func newHub() *hub {
	return &hub{
		conns: make(map[*client]struct{}),
		rooms: make(map[string]map[*client]struct{}),
	}
}

func (h *hub) Add(c *client) {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.conns[c] = struct{}{}
}

func (h *hub) JoinRoom(code string, c *client) {
	h.mu.Lock()
	defer h.mu.Unlock()
	group := h.rooms[code]
	if group == nil {
		group = make(map[*client]struct{})
		h.rooms[code] = group
	}
	group[c] = struct{}{}
}

func (h *hub) Remove(c *client) {
	h.mu.Lock()
	defer h.mu.Unlock()
	delete(h.conns, c)
	for code, group := range h.rooms {
		delete(group, c)
		if len(group) == 0 {
			delete(h.rooms, code)
		}
	}
	_ = c.conn.Close()
}

func (h *hub) DropRoom(code string) {
	h.mu.Lock()
	defer h.mu.Unlock()
	delete(h.rooms, code)
}

func (h *hub) roomClients(code string) []*client {
	h.mu.Lock()
	defer h.mu.Unlock()
	group := h.rooms[code]
	out := make([]*client, 0, len(group))
	for c := range group {
		out = append(out, c)
	}
	return out
}

func (h *hub) allClients() []*client {
	h.mu.Lock()
	defer h.mu.Unlock()
	out := make([]*client, 0, len(h.conns))
	for c := range h.conns {
		out = append(out, c)
	}
	return out
}

// BroadcastRoom fans an event out to every member of one room,
// eliminated players included. Dead connections are dropped.
func (h *hub) BroadcastRoom(code string, payload any) {
	for _, c := range h.roomClients(code) {
		if err := c.send(payload); err != nil {
			h.Remove(c)
		}
	}
}

// BroadcastAll sends to every connection; used for the public room list.
func (h *hub) BroadcastAll(payload any) {
	for _, c := range h.allClients() {
		if err := c.send(payload); err != nil {
			h.Remove(c)
		}
	}
}

func (s *Server) handleWebsocket(w http.ResponseWriter, r *http.Request) {
	upgrader := websocket.Upgrader{
		CheckOrigin: func(r *http.Request) bool {
			return true
		},
	}
	conn, err := upgrader.Upgrade(w, r, nil)
	if err != nil {
		return
	}
	c := &client{id: uuid.NewString(), conn: conn}
	log.Printf("ws connected conn=%s remote=%s", c.id, r.RemoteAddr)
	s.hub.Add(c)
	_ = c.send(roomsUpdateEvent{Type: evRoomsUpdate, Rooms: s.registry.Summaries()})
	s.readWS(c)
}

// readWS is the single persistent inbound handler for one connection.
// Whether an answer counts is decided from current room state here, not
// by wiring per-turn listeners.
func (s *Server) readWS(c *client) {
	defer s.dropConnection(c)
	for {
		_, raw, err := c.conn.ReadMessage()
		if err != nil {
			log.Printf("ws disconnected conn=%s error=%v", c.id, err)
			return
		}
		s.dispatch(c, raw)
	}
}

func (s *Server) dispatch(c *client, raw []byte) {
	var envelope inboundEnvelope
	if err := json.Unmarshal(raw, &envelope); err != nil {
		_ = c.send(errorEvent{Type: evError, Message: "malformed message"})
		return
	}
	switch envelope.Action {
	case actionCreateRoom:
		s.handleCreateRoom(c, raw)
	case actionGetRooms:
		_ = c.send(roomsUpdateEvent{Type: evRoomsUpdate, Rooms: s.registry.Summaries()})
	case actionJoinRoom:
		s.handleJoinRoom(c, raw)
	case actionStartGame:
		s.handleStartGame(c, raw)
	case actionSubmitAnswer:
		s.handleSubmitAnswer(c, raw)
	default:
		_ = c.send(errorEvent{Type: evError, Message: "unknown action"})
	}
}

func (s *Server) handleCreateRoom(c *client, raw []byte) {
	var payload createRoomPayload
	if err := s.decodePayload(raw, &payload); err != nil {
		_ = c.send(errorEvent{Type: evError, Message: ErrInvalidSettings.Error()})
		return
	}
	settings := RoomSettings{
		Name:          payload.Name,
		MaxPlayers:    payload.MaxPlayers,
		PromptSeconds: payload.PromptTimer,
		Language:      payload.Language,
		Private:       payload.IsPrivate,
		Password:      payload.Password,
	}
	if settings.MaxPlayers == 0 {
		settings.MaxPlayers = s.cfg.DefaultMaxPlayers
	}
	if settings.PromptSeconds == 0 {
		settings.PromptSeconds = s.cfg.DefaultPromptSeconds
	}
	room := s.registry.Create(c.id, payload.HostName, settings)
	s.hub.JoinRoom(room.Code, c)
	log.Printf("room created room=%s host=%s", room.Code, payload.HostName)
	s.persistEvent(room.Code, "room_created", EventPayload{RoomCode: room.Code, PlayerName: payload.HostName})
	_ = c.send(roomCreatedEvent{Type: evRoomCreated, RoomCode: room.Code})
	s.hub.BroadcastAll(roomsUpdateEvent{Type: evRoomsUpdate, Rooms: s.registry.Summaries()})
}

func (s *Server) handleJoinRoom(c *client, raw []byte) {
	var payload joinRoomPayload
	if err := s.decodePayload(raw, &payload); err != nil {
		_ = c.send(joinErrorEvent{Type: evJoinError, Message: "invalid join request"})
		return
	}
	names, err := s.registry.Join(payload.RoomCode, c.id, payload.PlayerName, payload.Password)
	if err != nil {
		// Failures go only to the originating connection.
		_ = c.send(joinErrorEvent{Type: evJoinError, Message: err.Error()})
		return
	}
	s.hub.JoinRoom(payload.RoomCode, c)
	log.Printf("player joined room=%s player=%s", payload.RoomCode, payload.PlayerName)
	s.persistEvent(payload.RoomCode, "player_joined", EventPayload{RoomCode: payload.RoomCode, PlayerName: payload.PlayerName})
	s.hub.BroadcastRoom(payload.RoomCode, roomPlayersEvent{Type: evRoomPlayers, Players: names})
	s.hub.BroadcastAll(roomsUpdateEvent{Type: evRoomsUpdate, Rooms: s.registry.Summaries()})
}

func (s *Server) handleStartGame(c *client, raw []byte) {
	var payload startGamePayload
	if err := s.decodePayload(raw, &payload); err != nil {
		_ = c.send(errorEvent{Type: evError, Message: "invalid start request"})
		return
	}
	s.StartGame(payload.RoomCode, c.id)
}

func (s *Server) handleSubmitAnswer(c *client, raw []byte) {
	var payload submitAnswerPayload
	if err := s.decodePayload(raw, &payload); err != nil {
		return
	}
	s.HandleAnswer(payload.RoomCode, c.id, payload.Answer)
}

// dropConnection tears down everything a closed socket was part of.
func (s *Server) dropConnection(c *client) {
	s.hub.Remove(c)
	removals := s.registry.RemoveConnection(c.id)
	for _, removal := range removals {
		if removal.RoomDeleted {
			log.Printf("room closed room=%s reason=host_disconnected", removal.Code)
			s.cancelRoomTimer(removal.Code)
			s.hub.BroadcastRoom(removal.Code, disconnectNoticeEvent{Type: evDisconnect, PlayerName: removal.PlayerName})
			s.hub.DropRoom(removal.Code)
			s.persistEvent(removal.Code, "room_closed", EventPayload{RoomCode: removal.Code, Reason: "host_disconnected"})
			continue
		}
		s.hub.BroadcastRoom(removal.Code, disconnectNoticeEvent{Type: evDisconnect, PlayerName: removal.PlayerName})
		s.hub.BroadcastRoom(removal.Code, roomPlayersEvent{Type: evRoomPlayers, Players: removal.Names})
		if removal.TurnSettled {
			// The seated player left mid-turn; move the room along.
			s.cancelRoomTimer(removal.Code)
			s.armRevealPause(removal.Code)
		}
	}
	if len(removals) > 0 {
		s.hub.BroadcastAll(roomsUpdateEvent{Type: evRoomsUpdate, Rooms: s.registry.Summaries()})
	}
}
