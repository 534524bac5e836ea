package server

import (
	"crypto/rand"
	"sort"
)

const (
	roomCodeLength   = 5
	roomCodeAlphabet = "ABCDEFGHIJKLMNOPQRSTUVWXYZ0123456789"
)

func newRoomCode() string {
	buf := make([]byte, roomCodeLength)
	if _, err := rand.Read(buf); err != nil {
		return "AAAAA"
	}
	for i := range buf {
		buf[i] = roomCodeAlphabet[int(buf[i])%len(roomCodeAlphabet)]
	}
	return string(buf)
}

func sortRankEntries(entries []RankEntry) {
	sort.SliceStable(entries, func(i, j int) bool {
		return entries[i].Score > entries[j].Score
	})
}

func sortScoreEntries(entries []ScoreEntry) {
	sort.SliceStable(entries, func(i, j int) bool {
		return entries[i].HighScore > entries[j].HighScore
	})
}
