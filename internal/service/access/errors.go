package access

import "errors"

var (
	ErrInvalidToken      = errors.New("invalid token")
	ErrExpToken          = errors.New("expired token")
	ErrTokenGenerateFail = errors.New("failed to generate token")
)
