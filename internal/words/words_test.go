package words

import (
	"strings"
	"testing"
)

func TestDifficultyForScore(t *testing.T) {
	cases := []struct {
		score int
		want  Difficulty
	}{
		{0, Easy},
		{1, Easy},
		{4, Easy},
		{5, Medium},
		{9, Medium},
		{10, Hard},
		{37, Hard},
	}
	for _, tc := range cases {
		if got := DifficultyForScore(tc.score); got != tc.want {
			t.Errorf("DifficultyForScore(%d) = %s, want %s", tc.score, got, tc.want)
		}
	}
}

func TestPoints(t *testing.T) {
	if Points(Easy) != 1 || Points(Medium) != 2 || Points(Hard) != 3 {
		t.Fatalf("unexpected point values: %d/%d/%d", Points(Easy), Points(Medium), Points(Hard))
	}
}

func TestParsePartitionsPools(t *testing.T) {
	raw := `[
		{"prompt": "chat", "answer": "cat", "difficulty": "easy"},
		{"prompt": "chien", "answer": "dog", "difficulty": "easy"},
		{"prompt": "fenetre", "answer": "window", "difficulty": "medium"},
		{"prompt": "tournevis", "answer": "screwdriver", "difficulty": "hard"}
	]`
	bank, err := Parse(strings.NewReader(raw))
	if err != nil {
		t.Fatalf("parse: %v", err)
	}
	if bank.PoolSize(Easy) != 2 || bank.PoolSize(Medium) != 1 || bank.PoolSize(Hard) != 1 {
		t.Fatalf("unexpected pool sizes: %d/%d/%d", bank.PoolSize(Easy), bank.PoolSize(Medium), bank.PoolSize(Hard))
	}
	if got := len(bank.All()); got != 4 {
		t.Fatalf("expected 4 pairs total, got %d", got)
	}
}

func TestParseRejectsUnknownDifficulty(t *testing.T) {
	raw := `[{"prompt": "chat", "answer": "cat", "difficulty": "impossible"}]`
	if _, err := Parse(strings.NewReader(raw)); err == nil {
		t.Fatal("expected error for unknown difficulty")
	}
}

func TestParseRejectsEmptyText(t *testing.T) {
	raw := `[{"prompt": "  ", "answer": "cat", "difficulty": "easy"}]`
	if _, err := Parse(strings.NewReader(raw)); err == nil {
		t.Fatal("expected error for blank prompt")
	}
}

func TestPairMatches(t *testing.T) {
	pair := Pair{Prompt: "chat", Answer: "cat", Difficulty: Easy}
	for _, answer := range []string{"cat", "CAT", "  Cat  ", "cAt"} {
		if !pair.Matches(answer) {
			t.Errorf("expected %q to match", answer)
		}
	}
	for _, answer := range []string{"", "dog", "c at"} {
		if pair.Matches(answer) {
			t.Errorf("expected %q not to match", answer)
		}
	}
}
