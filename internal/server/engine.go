package server

import (
	"errors"
	"log"
	"math/rand/v2"
	"time"

	"word-rush/internal/words"
)

// The turn engine drives each room from game start to the final ranking.
// Every transition mutates room state inside Registry.Update and only
// broadcasts after the closure returns, so within a room turns are
// strictly sequential: a new turn is armed only from the previous
// turn's settlement path.

// StartGame flips the room into its turn loop. Non-host callers and
// rooms already in progress are no-ops, matching the host-only contract.
func (s *Server) StartGame(code, playerID string) {
	var promptSeconds int
	var snapshot []PlayerStatus
	_, err := s.registry.Update(code, func(room *Room) error {
		if room.InProgress {
			return errGameAlreadyStarted
		}
		if room.HostID != playerID {
			return ErrNotHost
		}
		room.InProgress = true
		promptSeconds = room.Settings.PromptSeconds
		snapshot = room.statuses()
		return nil
	})
	if err != nil {
		if !errors.Is(err, ErrRoomNotFound) {
			log.Printf("start ignored room=%s player=%s reason=%v", code, playerID, err)
		}
		return
	}
	s.persistEvent(code, "game_started", EventPayload{RoomCode: code})
	s.hub.BroadcastRoom(code, gameStartEvent{Type: evGameStart, PromptTimer: promptSeconds})
	s.hub.BroadcastRoom(code, playerSnapshotEvent{Type: evPlayerSnapshot, Players: snapshot})
	s.advanceTurn(code)
}

var errGameAlreadyStarted = errors.New("game already started")

type turnPlan struct {
	token      int
	playerID   string
	playerName string
	prompt     string
	seconds    int
}

// advanceTurn runs step 1 of the loop: finish if one player remains,
// otherwise seat the next player, pick a word and arm the timeout.
func (s *Server) advanceTurn(code string) {
	var (
		finished bool
		ranking  []RankEntry
		plan     *turnPlan
		poolErr  error
	)
	_, err := s.registry.Update(code, func(room *Room) error {
		if room.Finished {
			return nil
		}
		room.turn = nil
		if len(room.Players) <= 1 {
			finished = true
			room.Finished = true
			ranking = room.localRanking()
			return nil
		}
		if room.CurrentTurn >= len(room.Players) {
			room.CurrentTurn = 0
		}
		player := &room.Players[room.CurrentTurn]
		difficulty := words.DifficultyForScore(player.Score)
		pool := s.bank.Pool(difficulty)
		if len(pool) == 0 {
			poolErr = ErrEmptyWordPool
			room.Finished = true
			return nil
		}
		idx := pickWordIndex(room, difficulty, len(pool))
		room.turnSeq++
		room.turn = &turnState{
			token:      room.turnSeq,
			playerID:   player.ID,
			pair:       pool[idx],
			difficulty: difficulty,
		}
		plan = &turnPlan{
			token:      room.turnSeq,
			playerID:   player.ID,
			playerName: player.Name,
			prompt:     pool[idx].Prompt,
			seconds:    room.Settings.PromptSeconds,
		}
		return nil
	})
	if err != nil {
		// Room deleted mid-pause; nothing left to drive.
		return
	}
	if poolErr != nil {
		s.abortGame(code, poolErr)
		return
	}
	if finished {
		s.finishGame(code, ranking)
		return
	}
	if plan == nil {
		return
	}
	s.hub.BroadcastRoom(code, turnStartedEvent{Type: evTurnStarted, PlayerID: plan.playerID, PlayerName: plan.playerName})
	s.hub.BroadcastRoom(code, promptIssuedEvent{Type: evPromptIssued, Word: plan.prompt, Timer: plan.seconds})
	s.armTurnTimer(code, plan.token, time.Duration(plan.seconds)*time.Second)
}

// pickWordIndex picks a random unused pool index, recycling the used set
// once the whole pool has been consumed. Caller holds the registry lock.
func pickWordIndex(room *Room, d words.Difficulty, poolSize int) int {
	used := room.UsedWords[d]
	if used == nil {
		used = make(map[int]struct{})
		room.UsedWords[d] = used
	}
	if len(used) >= poolSize {
		clear(used)
	}
	unused := make([]int, 0, poolSize-len(used))
	for i := 0; i < poolSize; i++ {
		if _, ok := used[i]; !ok {
			unused = append(unused, i)
		}
	}
	idx := unused[rand.IntN(len(unused))]
	used[idx] = struct{}{}
	return idx
}

// turnTimedOut is the timeout arm of the race. The token check makes a
// stale fire (answer won, room advanced, or room rebuilt) a no-op.
func (s *Server) turnTimedOut(code string, token int) {
	var (
		snapshot   []PlayerStatus
		eliminated string
		answer     string
		settled    bool
	)
	_, err := s.registry.Update(code, func(room *Room) error {
		turn := room.turn
		if turn == nil || turn.token != token || turn.settled {
			return nil
		}
		turn.settled = true
		settled = true
		answer = turn.pair.Answer

		idx := -1
		for i := range room.Players {
			if room.Players[i].ID == turn.playerID {
				idx = i
				break
			}
		}
		if idx >= 0 {
			room.Players[idx].Lives--
			if room.Players[idx].Lives <= 0 {
				loser := room.Players[idx]
				eliminated = loser.Name
				room.Players = append(room.Players[:idx], room.Players[idx+1:]...)
				room.Eliminated = append(room.Eliminated, loser)
			}
		}
		snapshot = room.statuses()
		if n := len(room.Players); n > 0 {
			room.CurrentTurn = (room.CurrentTurn + 1) % n
		} else {
			room.CurrentTurn = 0
		}
		return nil
	})
	if err != nil || !settled {
		return
	}
	s.hub.BroadcastRoom(code, playerSnapshotEvent{Type: evPlayerSnapshot, Players: snapshot})
	if eliminated != "" {
		s.hub.BroadcastRoom(code, playerEliminatedEvent{Type: evPlayerEliminated, PlayerName: eliminated})
		s.persistEvent(code, "player_eliminated", EventPayload{RoomCode: code, PlayerName: eliminated})
	}
	s.hub.BroadcastRoom(code, answerRevealedEvent{Type: evAnswerRevealed, Answer: answer})
	s.armRevealPause(code)
}

type answerOutcome int

const (
	answerIgnored answerOutcome = iota
	answerWrong
	answerCorrect
)

// HandleAnswer is the answer arm of the race. Answers from anyone but
// the seated turn player, or for a settled turn, are silently ignored.
// A wrong answer from the seated player leaves the timer running.
func (s *Server) HandleAnswer(code, playerID, text string) {
	var (
		outcome    answerOutcome
		playerName string
		snapshot   []PlayerStatus
		answer     string
	)
	_, err := s.registry.Update(code, func(room *Room) error {
		turn := room.turn
		if turn == nil || turn.settled || turn.playerID != playerID {
			return nil
		}
		idx := -1
		for i := range room.Players {
			if room.Players[i].ID == playerID {
				idx = i
				break
			}
		}
		if idx < 0 {
			return nil
		}
		playerName = room.Players[idx].Name
		if !turn.pair.Matches(text) {
			outcome = answerWrong
			return nil
		}
		turn.settled = true
		outcome = answerCorrect
		room.Players[idx].Score += words.Points(turn.difficulty)
		answer = turn.pair.Answer
		snapshot = room.statuses()
		if n := len(room.Players); n > 0 {
			room.CurrentTurn = (room.CurrentTurn + 1) % n
		}
		return nil
	})
	if err != nil {
		return
	}
	switch outcome {
	case answerWrong:
		s.hub.BroadcastRoom(code, playerWrongEvent{Type: evPlayerWrong, PlayerName: playerName})
	case answerCorrect:
		s.cancelRoomTimer(code)
		s.hub.BroadcastRoom(code, playerCorrectEvent{Type: evPlayerCorrect, PlayerName: playerName})
		s.hub.BroadcastRoom(code, playerSnapshotEvent{Type: evPlayerSnapshot, Players: snapshot})
		s.hub.BroadcastRoom(code, answerRevealedEvent{Type: evAnswerRevealed, Answer: answer})
		s.armRevealPause(code)
	}
}

// finishGame emits the terminal events exactly once and merges the
// room's scores into the durable store.
func (s *Server) finishGame(code string, ranking []RankEntry) {
	s.cancelRoomTimer(code)
	s.hub.BroadcastRoom(code, gameEndEvent{Type: evGameEnd})
	s.hub.BroadcastRoom(code, localRankingEvent{Type: evLocalRanking, Ranking: ranking})

	global, err := s.scores.Merge(ranking)
	if err != nil {
		log.Printf("high score merge failed room=%s error=%v", code, err)
	} else {
		s.hub.BroadcastRoom(code, globalRankingEvent{Type: evGlobalRanking, Ranking: global})
	}
	s.persistEvent(code, "game_ended", EventPayload{RoomCode: code, Players: len(ranking)})
	log.Printf("game ended room=%s players=%d", code, len(ranking))
}

// abortGame handles configuration errors like an empty word pool: the
// room is told, logged, and torn down instead of looping forever.
func (s *Server) abortGame(code string, reason error) {
	s.cancelRoomTimer(code)
	s.hub.BroadcastRoom(code, errorEvent{Type: evError, Message: reason.Error()})
	s.hub.BroadcastRoom(code, gameEndEvent{Type: evGameEnd})
	s.persistEvent(code, "game_aborted", EventPayload{RoomCode: code, Reason: reason.Error()})
	log.Printf("game aborted room=%s reason=%v", code, reason)
	s.registry.Delete(code)
	s.hub.BroadcastAll(roomsUpdateEvent{Type: evRoomsUpdate, Rooms: s.registry.Summaries()})
}
