package server

import "word-rush/internal/words"

// RoomSettings is fixed at room creation.
type RoomSettings struct {
	Name          string
	MaxPlayers    int
	PromptSeconds int
	Language      string
	Private       bool
	Password      string
}

// Player is one seated or eliminated participant. ID is the
// connection-stable identity assigned by the gateway.
type Player struct {
	ID    string
	Name  string
	Lives int
	Score int
}

// turnState is the live turn of a room. Exactly one settlement wins:
// both the timeout and the answer path check settled under the registry
// lock before mutating anything.
type turnState struct {
	token      int
	playerID   string
	pair       words.Pair
	difficulty words.Difficulty
	settled    bool
}

// Room is the aggregate for one game session. All mutation goes through
// Registry.Update; nothing outside the registry lock may touch it.
type Room struct {
	Code        string
	HostID      string
	HostName    string
	Settings    RoomSettings
	Players     []Player // rotation order; index CurrentTurn is seated
	Eliminated  []Player
	CurrentTurn int
	UsedWords   map[words.Difficulty]map[int]struct{}
	InProgress  bool
	Finished    bool

	turn    *turnState
	turnSeq int
}

// RoomSummary is the public listing entry; it never carries the password
// or any turn state.
type RoomSummary struct {
	Code        string `json:"code"`
	HostName    string `json:"hostName"`
	PlayerCount int    `json:"playerCount"`
	MaxPlayers  int    `json:"maxPlayers"`
	Private     bool   `json:"isPrivate"`
}

// PlayerStatus is the broadcast view of one active player.
type PlayerStatus struct {
	Name  string `json:"name"`
	Lives int    `json:"lives"`
	Score int    `json:"score"`
}

// RankEntry is one row of the end-of-room local ranking.
type RankEntry struct {
	Name  string `json:"name"`
	Score int    `json:"score"`
}

// ScoreEntry is one row of the durable global ranking.
type ScoreEntry struct {
	Name      string `json:"name"`
	HighScore int    `json:"highScore"`
}

func (r *Room) statuses() []PlayerStatus {
	out := make([]PlayerStatus, 0, len(r.Players))
	for _, p := range r.Players {
		out = append(out, PlayerStatus{Name: p.Name, Lives: p.Lives, Score: p.Score})
	}
	return out
}

func (r *Room) playerNames() []string {
	out := make([]string, 0, len(r.Players))
	for _, p := range r.Players {
		out = append(out, p.Name)
	}
	return out
}

// localRanking concatenates active and eliminated players sorted by score
// descending, stable by insertion for ties.
func (r *Room) localRanking() []RankEntry {
	all := make([]RankEntry, 0, len(r.Players)+len(r.Eliminated))
	for _, p := range r.Players {
		all = append(all, RankEntry{Name: p.Name, Score: p.Score})
	}
	for _, p := range r.Eliminated {
		all = append(all, RankEntry{Name: p.Name, Score: p.Score})
	}
	sortRankEntries(all)
	return all
}
