package message

import "errors"

var (
	// ErrBufferFull is returned when a message cannot be admitted even after
	// evicting every evictable message.
	ErrBufferFull = errors.New("buffer full")

	// ErrExpired is returned when a message is admitted after its TTL.
	ErrExpired = errors.New("message expired")

	// ErrDuplicate is returned when the store already holds the message.
	ErrDuplicate = errors.New("message already stored")
)
