package server

import (
	"sort"
	"sync"

	"word-rush/internal/words"
)

// Registry owns every Room in the process. All room state is mutated
// under its mutex, which makes turn handling within a room serial: the
// websocket readers and the timers are the only concurrent actors and
// both funnel through Update.
type Registry struct {
	mu            sync.Mutex
	rooms         map[string]*Room
	startingLives int
}

func NewRegistry(startingLives int) *Registry {
	return &Registry{
		rooms:         make(map[string]*Room),
		startingLives: startingLives,
	}
}

// Create inserts a new room with the host seated first. Settings are
// assumed validated; code collisions retry until a free code is found.
func (r *Registry) Create(hostID, hostName string, settings RoomSettings) *Room {
	r.mu.Lock()
	defer r.mu.Unlock()

	code := newRoomCode()
	for {
		if _, taken := r.rooms[code]; !taken {
			break
		}
		code = newRoomCode()
	}
	room := &Room{
		Code:     code,
		HostID:   hostID,
		HostName: hostName,
		Settings: settings,
		Players: []Player{{
			ID:    hostID,
			Name:  hostName,
			Lives: r.startingLives,
		}},
		UsedWords: make(map[words.Difficulty]map[int]struct{}),
	}
	r.rooms[code] = room
	return room
}

// Join appends a new player, or reports why it cannot. The returned
// names are the post-join roster, snapshotted under the lock.
func (r *Registry) Join(code, id, name, password string) ([]string, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	room, ok := r.rooms[code]
	if !ok {
		return nil, ErrRoomNotFound
	}
	if room.Settings.Private && room.Settings.Password != password {
		return nil, ErrUnauthorized
	}
	if len(room.Players) >= room.Settings.MaxPlayers {
		return nil, ErrRoomFull
	}
	room.Players = append(room.Players, Player{
		ID:    id,
		Name:  name,
		Lives: r.startingLives,
	})
	return room.playerNames(), nil
}

func (r *Registry) Get(code string) (*Room, bool) {
	r.mu.Lock()
	defer r.mu.Unlock()
	room, ok := r.rooms[code]
	return room, ok
}

// Update runs fn on the room under the registry lock. This is the only
// mutation path the engine uses.
func (r *Registry) Update(code string, fn func(room *Room) error) (*Room, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	room, ok := r.rooms[code]
	if !ok {
		return nil, ErrRoomNotFound
	}
	if err := fn(room); err != nil {
		return nil, err
	}
	return room, nil
}

func (r *Registry) Delete(code string) {
	r.mu.Lock()
	defer r.mu.Unlock()
	delete(r.rooms, code)
}

// Summaries returns a total snapshot of the public view of every room,
// taken under the lock, sorted by code for stable listings.
func (r *Registry) Summaries() []RoomSummary {
	r.mu.Lock()
	defer r.mu.Unlock()
	list := make([]RoomSummary, 0, len(r.rooms))
	for _, room := range r.rooms {
		list = append(list, RoomSummary{
			Code:        room.Code,
			HostName:    room.HostName,
			PlayerCount: len(room.Players),
			MaxPlayers:  room.Settings.MaxPlayers,
			Private:     room.Settings.Private,
		})
	}
	sort.Slice(list, func(i, j int) bool {
		return list[i].Code < list[j].Code
	})
	return list
}

// Removal describes what dropping a connection did to one room.
type Removal struct {
	Code        string
	PlayerName  string
	RoomDeleted bool   // host left, room removed entirely
	TurnSettled bool   // leaver was the seated turn player
	Names       []string
}

// RemoveConnection drops the identity from every room that holds it.
// A leaving host deletes the room no matter the phase. If the leaver
// was the seated turn player, the live turn is settled so the engine
// can advance without them.
func (r *Registry) RemoveConnection(id string) []Removal {
	r.mu.Lock()
	defer r.mu.Unlock()

	var results []Removal
	for code, room := range r.rooms {
		removed, name := removePlayerLocked(room, id)
		if !removed {
			continue
		}
		result := Removal{Code: code, PlayerName: name}
		if room.turn != nil && !room.turn.settled && room.turn.playerID == id {
			room.turn.settled = true
			result.TurnSettled = true
		}
		if room.HostID == id {
			delete(r.rooms, code)
			result.RoomDeleted = true
		} else {
			result.Names = room.playerNames()
		}
		results = append(results, result)
	}
	return results
}

// RemovePlayer removes one identity from one room, deleting the room if
// the identity is the host.
func (r *Registry) RemovePlayer(code, id string) (Removal, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	room, ok := r.rooms[code]
	if !ok {
		return Removal{}, ErrRoomNotFound
	}
	removed, name := removePlayerLocked(room, id)
	if !removed {
		return Removal{}, ErrRoomNotFound
	}
	result := Removal{Code: code, PlayerName: name}
	if room.turn != nil && !room.turn.settled && room.turn.playerID == id {
		room.turn.settled = true
		result.TurnSettled = true
	}
	if room.HostID == id {
		delete(r.rooms, code)
		result.RoomDeleted = true
	} else {
		result.Names = room.playerNames()
	}
	return result, nil
}

func removePlayerLocked(room *Room, id string) (bool, string) {
	for i, p := range room.Players {
		if p.ID != id {
			continue
		}
		room.Players = append(room.Players[:i], room.Players[i+1:]...)
		if i < room.CurrentTurn {
			room.CurrentTurn--
		}
		if room.CurrentTurn >= len(room.Players) {
			room.CurrentTurn = 0
		}
		return true, p.Name
	}
	for i, p := range room.Eliminated {
		if p.ID != id {
			continue
		}
		room.Eliminated = append(room.Eliminated[:i], room.Eliminated[i+1:]...)
		return true, p.Name
	}
	return false, ""
}
