package words

import (
	"encoding/json"
	"fmt"
	"io"
	"os"
	"strings"
)

// Difficulty classifies word pairs and point values.
type Difficulty string

const (
	Easy   Difficulty = "easy"
	Medium Difficulty = "medium"
	Hard   Difficulty = "hard"
)

const (
	mediumThreshold = 5
	hardThreshold   = 10
)

// Difficulties lists all tiers in ascending order.
func Difficulties() []Difficulty {
	return []Difficulty{Easy, Medium, Hard}
}

// DifficultyForScore maps a player's current score to the tier used for
// their next prompt. This is the single source of the threshold rules,
// shared by the turn engine and the practice endpoint.
func DifficultyForScore(score int) Difficulty {
	switch {
	case score >= hardThreshold:
		return Hard
	case score >= mediumThreshold:
		return Medium
	default:
		return Easy
	}
}

// Points returns the score awarded for a correct answer at the given tier.
func Points(d Difficulty) int {
	switch d {
	case Medium:
		return 2
	case Hard:
		return 3
	default:
		return 1
	}
}

// Pair is one prompt/answer entry. Immutable after load.
type Pair struct {
	Prompt     string     `json:"prompt"`
	Answer     string     `json:"answer"`
	Difficulty Difficulty `json:"difficulty"`
}

// Matches reports whether a submitted answer matches the pair's answer
// after trimming and case folding.
func (p Pair) Matches(answer string) bool {
	return strings.EqualFold(strings.TrimSpace(answer), p.Answer)
}

// Bank holds the word pairs partitioned into disjoint pools by difficulty.
// It is read-only after construction and safe to share across rooms.
type Bank struct {
	pools map[Difficulty][]Pair
}

func Load(path string) (*Bank, error) {
	file, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open word file: %w", err)
	}
	defer file.Close()
	return Parse(file)
}

func Parse(r io.Reader) (*Bank, error) {
	var pairs []Pair
	if err := json.NewDecoder(r).Decode(&pairs); err != nil {
		return nil, fmt.Errorf("decode word pairs: %w", err)
	}
	return New(pairs)
}

func New(pairs []Pair) (*Bank, error) {
	bank := &Bank{pools: make(map[Difficulty][]Pair)}
	for i, pair := range pairs {
		pair.Prompt = strings.TrimSpace(pair.Prompt)
		pair.Answer = strings.TrimSpace(pair.Answer)
		if pair.Prompt == "" || pair.Answer == "" {
			return nil, fmt.Errorf("word pair %d: prompt and answer are required", i)
		}
		switch pair.Difficulty {
		case Easy, Medium, Hard:
		default:
			return nil, fmt.Errorf("word pair %d: unknown difficulty %q", i, pair.Difficulty)
		}
		bank.pools[pair.Difficulty] = append(bank.pools[pair.Difficulty], pair)
	}
	return bank, nil
}

// Pool returns the pairs for one difficulty. Callers must not mutate it.
func (b *Bank) Pool(d Difficulty) []Pair {
	return b.pools[d]
}

func (b *Bank) PoolSize(d Difficulty) int {
	return len(b.pools[d])
}

// All returns every pair, grouped easy to hard.
func (b *Bank) All() []Pair {
	out := make([]Pair, 0, len(b.pools[Easy])+len(b.pools[Medium])+len(b.pools[Hard]))
	for _, d := range Difficulties() {
		out = append(out, b.pools[d]...)
	}
	return out
}
