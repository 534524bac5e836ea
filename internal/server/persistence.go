package server

import (
	"encoding/json"
	"log"

	"word-rush/internal/db"

	"gorm.io/datatypes"
)

// EventPayload is the JSON body stored with each lifecycle event.
type EventPayload struct {
	RoomCode   string `json:"room_code,omitempty"`
	PlayerName string `json:"player,omitempty"`
	Reason     string `json:"reason,omitempty"`
	Players    int    `json:"players,omitempty"`
}

// persistEvent records one room lifecycle event. Persistence is best
// effort: a missing database or a write failure never blocks the game.
func (s *Server) persistEvent(code, eventType string, payload EventPayload) {
	if s.db == nil {
		return
	}
	data, err := json.Marshal(payload)
	if err != nil {
		return
	}
	record := db.Event{
		RoomCode: code,
		Type:     eventType,
		Payload:  datatypes.JSON(data),
	}
	if err := s.db.Create(&record).Error; err != nil {
		log.Printf("persist event failed room=%s type=%s error=%v", code, eventType, err)
	}
}
