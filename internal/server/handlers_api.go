package server

import (
	"math/rand/v2"
	"net/http"
	"strconv"

	"word-rush/internal/words"
)

func (s *Server) handleListRooms(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, s.registry.Summaries())
}

func (s *Server) handleLeaderboard(w http.ResponseWriter, r *http.Request) {
	ranking, err := s.scores.Ranking()
	if err != nil {
		writeError(w, http.StatusInternalServerError, "could not load leaderboard")
		return
	}
	writeJSON(w, http.StatusOK, ranking)
}

// handleWordPairs serves the full corpus for the client's offline mode.
func (s *Server) handleWordPairs(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, s.bank.All())
}

type practiceResponse struct {
	Prompt     string           `json:"prompt"`
	Difficulty words.Difficulty `json:"difficulty"`
	Points     int              `json:"points"`
}

// handlePracticeNext hands a solo player their next word for a given
// running score, using the same difficulty rules as the turn engine.
func (s *Server) handlePracticeNext(w http.ResponseWriter, r *http.Request) {
	score := 0
	if raw := r.URL.Query().Get("score"); raw != "" {
		value, err := strconv.Atoi(raw)
		if err != nil || value < 0 {
			writeError(w, http.StatusBadRequest, "score must be a non-negative integer")
			return
		}
		score = value
	}
	difficulty := words.DifficultyForScore(score)
	pool := s.bank.Pool(difficulty)
	if len(pool) == 0 {
		writeError(w, http.StatusInternalServerError, ErrEmptyWordPool.Error())
		return
	}
	pair := pool[rand.IntN(len(pool))]
	writeJSON(w, http.StatusOK, practiceResponse{
		Prompt:     pair.Prompt,
		Difficulty: difficulty,
		Points:     words.Points(difficulty),
	})
}
