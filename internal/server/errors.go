package server

import "errors"

var (
	ErrRoomNotFound    = errors.New("room not found")
	ErrUnauthorized    = errors.New("incorrect password")
	ErrRoomFull        = errors.New("room is full")
	ErrInvalidSettings = errors.New("invalid room settings")
	ErrNotHost         = errors.New("only the host can do that")
	ErrEmptyWordPool   = errors.New("no words available for difficulty")
)
