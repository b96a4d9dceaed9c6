package domain

import "errors"

var (
	ErrEmptyCompletion = errors.New("empty completion")
	ErrRateLimited     = errors.New("generator rate limited")
	ErrGeneratorAPI    = errors.New("generator api error")
	ErrSecretNotFound  = errors.New("secret not found")
	ErrInvalidRoster   = errors.New("invalid roster")
)
