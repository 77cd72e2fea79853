package apperrors

import "errors"

var (
	ErrEventNotFound = errors.New("event not found")
	ErrInvalidInput  = errors.New("invalid input")
	ErrCacheMiss     = errors.New("cache miss")
	ErrQueueFull     = errors.New("queue full")
)
