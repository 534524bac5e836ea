package server

import (
	"net/http"
	"sync"
	"time"

	"word-rush/internal/config"
	"word-rush/internal/words"

	"github.com/go-playground/validator/v10"
	"gorm.io/gorm"
)

type Server struct {
	registry *Registry
	db       *gorm.DB
	hub      *hub
	scores   *scoreStore
	bank     *words.Bank
	cfg      config.Config
	validate *validator.Validate
	timersMu sync.Mutex
	timers   map[string]*time.Timer
}

func New(conn *gorm.DB, bank *words.Bank, cfg config.Config) *Server {
	return &Server{
		registry: NewRegistry(cfg.StartingLives),
		db:       conn,
		hub:      newHub(),
		scores:   newScoreStore(conn),
		bank:     bank,
		cfg:      cfg,
		validate: validator.New(),
		timers:   make(map[string]*time.Timer),
	}
}

func (s *Server) Handler() http.Handler {
	mux := http.NewServeMux()
	mux.HandleFunc("GET /ws", s.handleWebsocket)
	mux.HandleFunc("GET /api/rooms", s.handleListRooms)
	mux.HandleFunc("GET /api/leaderboard", s.handleLeaderboard)
	mux.HandleFunc("GET /api/wordpairs", s.handleWordPairs)
	mux.HandleFunc("GET /api/practice/next", s.handlePracticeNext)
	mux.HandleFunc("POST /api/register", s.handleRegister)
	mux.HandleFunc("POST /api/login", s.handleLogin)
	mux.Handle("GET /", http.FileServer(http.Dir(s.cfg.StaticDir)))
	return mux
}
