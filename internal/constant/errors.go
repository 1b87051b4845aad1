package constant

import "errors"

var (
	ErrNoActiveSession = errors.New("no active chat session")
	ErrSessionNotFound = errors.New("chat session not found")
	ErrSessionBusy     = errors.New("chat session is waiting for a response")
)
