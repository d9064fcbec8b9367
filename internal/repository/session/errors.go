package session

import "errors"

var (
	ErrPlayerNotFound = errors.New("player not found")
	ErrTokenNotFound  = errors.New("token not found")
)
