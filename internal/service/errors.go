package service

import "errors"

var (
	ErrUserNotFound           = errors.New("user not found")
	ErrEmailAlreadyRegistered = errors.New("email already registered")
	ErrInvalidCredentials     = errors.New("invalid email or password")
	ErrInvalidModule          = errors.New("module must be one of: rcp, nose, burn-skins")
	ErrInvalidScore           = errors.New("score must be a number between 0 and 100")
)
