package server

import (
	"errors"
	"log"
	"net/http"

	"word-rush/internal/db"

	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

type credentialsRequest struct {
	Username string `json:"username" validate:"required,max=64"`
	Password string `json:"password" validate:"required,max=128"`
}

type authResponse struct {
	Token    string `json:"token"`
	Username string `json:"username"`
}

func (s *Server) handleRegister(w http.ResponseWriter, r *http.Request) {
	var req credentialsRequest
	if err := readJSON(r.Body, &req); err != nil {
		writeError(w, http.StatusBadRequest, "username & password required")
		return
	}
	if err := s.validate.Struct(&req); err != nil {
		writeError(w, http.StatusBadRequest, "username & password required")
		return
	}
	if s.db == nil {
		writeError(w, http.StatusServiceUnavailable, "accounts unavailable")
		return
	}
	hash, err := bcrypt.GenerateFromPassword([]byte(req.Password), bcrypt.DefaultCost)
	if err != nil {
		writeError(w, http.StatusInternalServerError, "could not create account")
		return
	}
	record := db.User{Name: req.Username, PasswordHash: string(hash)}
	if err := s.db.Create(&record).Error; err != nil {
		writeError(w, http.StatusBadRequest, "username already taken")
		return
	}
	log.Printf("user registered name=%s", req.Username)
	writeJSON(w, http.StatusOK, authResponse{Token: uuid.NewString(), Username: req.Username})
}

func (s *Server) handleLogin(w http.ResponseWriter, r *http.Request) {
	var req credentialsRequest
	if err := readJSON(r.Body, &req); err != nil {
		writeError(w, http.StatusBadRequest, "username & password required")
		return
	}
	if err := s.validate.Struct(&req); err != nil {
		writeError(w, http.StatusBadRequest, "username & password required")
		return
	}
	if s.db == nil {
		writeError(w, http.StatusServiceUnavailable, "accounts unavailable")
		return
	}
	var user db.User
	err := s.db.Where("name = ?", req.Username).First(&user).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		writeError(w, http.StatusUnauthorized, "invalid credentials")
		return
	}
	if err != nil {
		writeError(w, http.StatusInternalServerError, "could not log in")
		return
	}
	if bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(req.Password)) != nil {
		writeError(w, http.StatusUnauthorized, "invalid credentials")
		return
	}
	writeJSON(w, http.StatusOK, authResponse{Token: uuid.NewString(), Username: user.Name})
}
