package server

// Outbound event type tags. Every server-to-client message carries one.
const (
	evRoomsUpdate      = "rooms-update"
	evRoomCreated      = "room-created"
	evRoomPlayers      = "room-players"
	evJoinError        = "join-error"
	evError            = "error"
	evGameStart        = "game-start"
	evTurnStarted      = "turn-started"
	evPromptIssued     = "prompt-issued"
	evPlayerSnapshot   = "player-snapshot"
	evPlayerCorrect    = "player-correct"
	evPlayerWrong      = "player-wrong"
	evPlayerEliminated = "player-eliminated"
	evAnswerRevealed   = "answer-revealed"
	evGameEnd          = "game-end"
	evLocalRanking     = "local-ranking"
	evGlobalRanking    = "global-ranking"
	evDisconnect       = "disconnect-notice"
)

// Inbound action names.
const (
	actionCreateRoom   = "create-room"
	actionGetRooms     = "get-rooms"
	actionJoinRoom     = "join-room"
	actionStartGame    = "start-game"
	actionSubmitAnswer = "submit-answer"
)

type inboundEnvelope struct {
	Action string `json:"action"`
}

type createRoomPayload struct {
	HostName    string `json:"hostName" validate:"required,max=32"`
	Name        string `json:"name" validate:"omitempty,max=64"`
	MaxPlayers  int    `json:"maxPlayers" validate:"omitempty,min=1,max=16"`
	PromptTimer int    `json:"promptTimer" validate:"omitempty,min=1,max=300"`
	Language    string `json:"language" validate:"omitempty,max=16"`
	IsPrivate   bool   `json:"isPrivate"`
	Password    string `json:"password" validate:"omitempty,max=64"`
}

type joinRoomPayload struct {
	RoomCode   string `json:"roomCode" validate:"required,len=5"`
	PlayerName string `json:"playerName" validate:"required,max=32"`
	Password   string `json:"password" validate:"omitempty,max=64"`
}

type startGamePayload struct {
	RoomCode string `json:"roomCode" validate:"required,len=5"`
}

type submitAnswerPayload struct {
	RoomCode string `json:"roomCode" validate:"required,len=5"`
	Answer   string `json:"answer" validate:"max=128"`
}

type roomsUpdateEvent struct {
	Type  string        `json:"type"`
	Rooms []RoomSummary `json:"rooms"`
}

type roomCreatedEvent struct {
	Type     string `json:"type"`
	RoomCode string `json:"roomCode"`
}

type roomPlayersEvent struct {
	Type    string   `json:"type"`
	Players []string `json:"players"`
}

type joinErrorEvent struct {
	Type    string `json:"type"`
	Message string `json:"message"`
}

type errorEvent struct {
	Type    string `json:"type"`
	Message string `json:"message"`
}

type gameStartEvent struct {
	Type        string `json:"type"`
	PromptTimer int    `json:"promptTimer"`
}

type turnStartedEvent struct {
	Type       string `json:"type"`
	PlayerID   string `json:"playerId"`
	PlayerName string `json:"playerName"`
}

type promptIssuedEvent struct {
	Type  string `json:"type"`
	Word  string `json:"word"`
	Timer int    `json:"timer"`
}

type playerSnapshotEvent struct {
	Type    string         `json:"type"`
	Players []PlayerStatus `json:"players"`
}

type playerCorrectEvent struct {
	Type       string `json:"type"`
	PlayerName string `json:"playerName"`
}

type playerWrongEvent struct {
	Type       string `json:"type"`
	PlayerName string `json:"playerName"`
}

type playerEliminatedEvent struct {
	Type       string `json:"type"`
	PlayerName string `json:"playerName"`
}

type answerRevealedEvent struct {
	Type   string `json:"type"`
	Answer string `json:"answer"`
}

type gameEndEvent struct {
	Type string `json:"type"`
}

type localRankingEvent struct {
	Type    string      `json:"type"`
	Ranking []RankEntry `json:"ranking"`
}

type globalRankingEvent struct {
	Type    string       `json:"type"`
	Ranking []ScoreEntry `json:"ranking"`
}

type disconnectNoticeEvent struct {
	Type       string `json:"type"`
	PlayerName string `json:"playerName"`
}
