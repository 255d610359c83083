package inorder

import (
	"errors"
	"fmt"
)

const Namespace = "inorder"

var (
	ErrProtocolViolation = errors.New(Namespace + ": producer protocol violated")
	ErrDuplicateIndex    = fmt.Errorf("%w: duplicate index", ErrProtocolViolation)
	ErrIndexOutOfRange   = fmt.Errorf("%w: index out of range", ErrProtocolViolation)
	ErrMissingIndex      = fmt.Errorf("%w: index never submitted", ErrProtocolViolation)
	ErrFinalized         = fmt.Errorf("%w: submit after finalize", ErrProtocolViolation)

	ErrAbandoned     = errors.New(Namespace + ": sequence abandoned by consumer")
	ErrCancelled     = errors.New(Namespace + ": operation cancelled")
	ErrStopped       = errors.New(Namespace + ": operation stopped on error")
	ErrTaskPanicked  = errors.New(Namespace + ": task execution panicked")
	ErrInvalidConfig = errors.New(Namespace + ": invalid configuration")
)
