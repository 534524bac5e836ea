package server

import (
	"sync"

	"word-rush/internal/db"

	"gorm.io/gorm"
)

// scoreStore is the durable high-score record store, keyed by display
// name. Merges are read-all, max-merge, write-all inside one critical
// section so two rooms finishing at once cannot lose updates. With no
// database attached it falls back to an in-memory map with the same
// semantics.
type scoreStore struct {
	mu  sync.Mutex
	db  *gorm.DB
	mem map[string]int
}

func newScoreStore(conn *gorm.DB) *scoreStore {
	return &scoreStore{
		db:  conn,
		mem: make(map[string]int),
	}
}

// Merge folds a finished room's local ranking into the store, keeping
// the maximum of the stored and current score per name, and returns the
// resulting global ranking.
func (s *scoreStore) Merge(entries []RankEntry) ([]ScoreEntry, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.db == nil {
		for _, entry := range entries {
			if entry.Score > s.mem[entry.Name] {
				s.mem[entry.Name] = entry.Score
			} else if _, ok := s.mem[entry.Name]; !ok {
				s.mem[entry.Name] = entry.Score
			}
		}
		return s.rankingLocked()
	}

	err := s.db.Transaction(func(tx *gorm.DB) error {
		var users []db.User
		if err := tx.Find(&users).Error; err != nil {
			return err
		}
		known := make(map[string]*db.User, len(users))
		for i := range users {
			known[users[i].Name] = &users[i]
		}
		for _, entry := range entries {
			user, ok := known[entry.Name]
			if !ok {
				record := db.User{Name: entry.Name, HighScore: entry.Score}
				if err := tx.Create(&record).Error; err != nil {
					return err
				}
				continue
			}
			if entry.Score > user.HighScore {
				user.HighScore = entry.Score
				if err := tx.Save(user).Error; err != nil {
					return err
				}
			}
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return s.rankingLocked()
}

// Ranking returns every known identity sorted by best-ever score.
func (s *scoreStore) Ranking() ([]ScoreEntry, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.rankingLocked()
}

func (s *scoreStore) rankingLocked() ([]ScoreEntry, error) {
	if s.db == nil {
		out := make([]ScoreEntry, 0, len(s.mem))
		for name, score := range s.mem {
			out = append(out, ScoreEntry{Name: name, HighScore: score})
		}
		sortScoreEntries(out)
		return out, nil
	}
	var users []db.User
	if err := s.db.Find(&users).Error; err != nil {
		return nil, err
	}
	out := make([]ScoreEntry, 0, len(users))
	for _, user := range users {
		out = append(out, ScoreEntry{Name: user.Name, HighScore: user.HighScore})
	}
	sortScoreEntries(out)
	return out, nil
}
