package server

import (
	"errors"
	"fmt"
	"regexp"
	"testing"
)

func testSettings() RoomSettings {
	return RoomSettings{
		Name:          "Test Room",
		MaxPlayers:    4,
		PromptSeconds: 15,
		Language:      "fr",
	}
}

func TestCreateRoomCodes(t *testing.T) {
	reg := NewRegistry(3)
	format := regexp.MustCompile(`^[A-Z0-9]{5}$`)
	seen := make(map[string]bool)
	for i := 0; i < 200; i++ {
		room := reg.Create(fmt.Sprintf("host-%d", i), "Ada", testSettings())
		if !format.MatchString(room.Code) {
			t.Fatalf("room code %q does not match format", room.Code)
		}
		if seen[room.Code] {
			t.Fatalf("duplicate room code %q", room.Code)
		}
		seen[room.Code] = true
	}
}

func TestCreateSeatsHostFirst(t *testing.T) {
	reg := NewRegistry(3)
	room := reg.Create("host-1", "Ada", testSettings())

	if len(room.Players) != 1 {
		t.Fatalf("expected 1 player, got %d", len(room.Players))
	}
	host := room.Players[0]
	if host.ID != "host-1" || host.Name != "Ada" {
		t.Errorf("unexpected host seat: %+v", host)
	}
	if host.Lives != 3 {
		t.Errorf("expected 3 starting lives, got %d", host.Lives)
	}
	if host.Score != 0 {
		t.Errorf("expected score 0, got %d", host.Score)
	}
	if room.InProgress || room.Finished {
		t.Errorf("new room should be idle, got inProgress=%v finished=%v", room.InProgress, room.Finished)
	}
}

func TestJoinAppendsInOrder(t *testing.T) {
	reg := NewRegistry(3)
	room := reg.Create("host-1", "Ada", testSettings())

	names, err := reg.Join(room.Code, "p2", "Grace", "")
	if err != nil {
		t.Fatalf("join: %v", err)
	}
	if len(names) != 2 || names[0] != "Ada" || names[1] != "Grace" {
		t.Errorf("unexpected roster %v", names)
	}
	names, err = reg.Join(room.Code, "p3", "Linus", "")
	if err != nil {
		t.Fatalf("join: %v", err)
	}
	if len(names) != 3 || names[2] != "Linus" {
		t.Errorf("unexpected roster %v", names)
	}
}

func TestJoinErrors(t *testing.T) {
	reg := NewRegistry(3)

	if _, err := reg.Join("ZZZZZ", "p2", "Grace", ""); !errors.Is(err, ErrRoomNotFound) {
		t.Errorf("expected ErrRoomNotFound, got %v", err)
	}

	settings := testSettings()
	settings.Private = true
	settings.Password = "sesame"
	private := reg.Create("host-1", "Ada", settings)
	if _, err := reg.Join(private.Code, "p2", "Grace", "wrong"); !errors.Is(err, ErrUnauthorized) {
		t.Errorf("expected ErrUnauthorized, got %v", err)
	}
	if _, err := reg.Join(private.Code, "p2", "Grace", "sesame"); err != nil {
		t.Errorf("join with correct password: %v", err)
	}

	small := testSettings()
	small.MaxPlayers = 2
	full := reg.Create("host-2", "Ada", small)
	if _, err := reg.Join(full.Code, "p2", "Grace", ""); err != nil {
		t.Fatalf("join: %v", err)
	}
	if _, err := reg.Join(full.Code, "p3", "Linus", ""); !errors.Is(err, ErrRoomFull) {
		t.Errorf("expected ErrRoomFull, got %v", err)
	}
	room, _ := reg.Get(full.Code)
	if len(room.Players) != 2 {
		t.Errorf("rejected join mutated roster: %v", room.playerNames())
	}
}

func TestRemoveConnectionHostDeletesRoom(t *testing.T) {
	reg := NewRegistry(3)
	room := reg.Create("host-1", "Ada", testSettings())
	if _, err := reg.Join(room.Code, "p2", "Grace", ""); err != nil {
		t.Fatalf("join: %v", err)
	}

	results := reg.RemoveConnection("host-1")
	if len(results) != 1 {
		t.Fatalf("expected 1 removal, got %d", len(results))
	}
	if !results[0].RoomDeleted {
		t.Error("host removal should delete the room")
	}
	if _, ok := reg.Get(room.Code); ok {
		t.Error("room still present after host removal")
	}
}

func TestRemoveConnectionPlayerKeepsRoom(t *testing.T) {
	reg := NewRegistry(3)
	room := reg.Create("host-1", "Ada", testSettings())
	if _, err := reg.Join(room.Code, "p2", "Grace", ""); err != nil {
		t.Fatalf("join: %v", err)
	}

	results := reg.RemoveConnection("p2")
	if len(results) != 1 {
		t.Fatalf("expected 1 removal, got %d", len(results))
	}
	if results[0].RoomDeleted {
		t.Error("non-host removal should keep the room")
	}
	if got := results[0].Names; len(got) != 1 || got[0] != "Ada" {
		t.Errorf("unexpected roster %v", got)
	}
	if results[0].PlayerName != "Grace" {
		t.Errorf("unexpected leaver name %q", results[0].PlayerName)
	}
}

func TestRemoveConnectionSettlesSeatedTurn(t *testing.T) {
	reg := NewRegistry(3)
	room := reg.Create("host-1", "Ada", testSettings())
	if _, err := reg.Join(room.Code, "p2", "Grace", ""); err != nil {
		t.Fatalf("join: %v", err)
	}
	if _, err := reg.Update(room.Code, func(r *Room) error {
		r.InProgress = true
		r.turnSeq++
		r.turn = &turnState{token: r.turnSeq, playerID: "p2"}
		r.CurrentTurn = 1
		return nil
	}); err != nil {
		t.Fatalf("update: %v", err)
	}

	results := reg.RemoveConnection("p2")
	if len(results) != 1 || !results[0].TurnSettled {
		t.Fatalf("expected seated leaver to settle turn, got %+v", results)
	}
	roomAfter, _ := reg.Get(room.Code)
	if roomAfter.CurrentTurn != 0 {
		t.Errorf("turn cursor not adjusted, got %d", roomAfter.CurrentTurn)
	}

	// A bystander leaving must not touch the live turn.
	room2 := reg.Create("host-2", "Ada", testSettings())
	if _, err := reg.Join(room2.Code, "p3", "Grace", ""); err != nil {
		t.Fatalf("join: %v", err)
	}
	if _, err := reg.Join(room2.Code, "p4", "Linus", ""); err != nil {
		t.Fatalf("join: %v", err)
	}
	if _, err := reg.Update(room2.Code, func(r *Room) error {
		r.turnSeq++
		r.turn = &turnState{token: r.turnSeq, playerID: "host-2"}
		return nil
	}); err != nil {
		t.Fatalf("update: %v", err)
	}
	results = reg.RemoveConnection("p4")
	if len(results) != 1 || results[0].TurnSettled {
		t.Fatalf("bystander removal settled the turn: %+v", results)
	}
}

func TestRemovePlayer(t *testing.T) {
	reg := NewRegistry(3)
	room := reg.Create("host-1", "Ada", testSettings())
	if _, err := reg.Join(room.Code, "p2", "Grace", ""); err != nil {
		t.Fatalf("join: %v", err)
	}

	if _, err := reg.RemovePlayer("ZZZZZ", "p2"); !errors.Is(err, ErrRoomNotFound) {
		t.Errorf("expected ErrRoomNotFound for unknown room, got %v", err)
	}
	if _, err := reg.RemovePlayer(room.Code, "stranger"); !errors.Is(err, ErrRoomNotFound) {
		t.Errorf("expected ErrRoomNotFound for unknown player, got %v", err)
	}

	result, err := reg.RemovePlayer(room.Code, "p2")
	if err != nil {
		t.Fatalf("remove: %v", err)
	}
	if result.RoomDeleted || result.PlayerName != "Grace" {
		t.Errorf("unexpected removal %+v", result)
	}

	result, err = reg.RemovePlayer(room.Code, "host-1")
	if err != nil {
		t.Fatalf("remove host: %v", err)
	}
	if !result.RoomDeleted {
		t.Error("removing the host should delete the room")
	}
	if _, ok := reg.Get(room.Code); ok {
		t.Error("room still present after host removal")
	}
}

func TestSummaries(t *testing.T) {
	reg := NewRegistry(3)
	settings := testSettings()
	settings.Private = true
	settings.Password = "sesame"
	room := reg.Create("host-1", "Ada", settings)
	if _, err := reg.Join(room.Code, "p2", "Grace", "sesame"); err != nil {
		t.Fatalf("join: %v", err)
	}
	reg.Create("host-2", "Linus", testSettings())

	list := reg.Summaries()
	if len(list) != 2 {
		t.Fatalf("expected 2 summaries, got %d", len(list))
	}
	for _, summary := range list {
		if summary.Code != room.Code {
			continue
		}
		if summary.HostName != "Ada" || summary.PlayerCount != 2 || summary.MaxPlayers != 4 || !summary.Private {
			t.Errorf("unexpected summary %+v", summary)
		}
	}
	if list[0].Code > list[1].Code {
		t.Errorf("summaries not sorted by code: %s, %s", list[0].Code, list[1].Code)
	}
}

func TestLocalRankingIncludesEliminated(t *testing.T) {
	room := &Room{
		Players: []Player{
			{Name: "Ada", Score: 4},
			{Name: "Grace", Score: 9},
		},
		Eliminated: []Player{
			{Name: "Linus", Score: 6},
			{Name: "Edsger", Score: 0},
		},
	}
	ranking := room.localRanking()
	want := []string{"Grace", "Linus", "Ada", "Edsger"}
	if len(ranking) != len(want) {
		t.Fatalf("expected %d entries, got %d", len(want), len(ranking))
	}
	for i, name := range want {
		if ranking[i].Name != name {
			t.Errorf("rank %d: expected %s, got %s", i, name, ranking[i].Name)
		}
	}
}
