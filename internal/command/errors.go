package command

import "errors"

var (
	ErrNilResult     = errors.New("command result is nil")
	ErrNotExecutable = errors.New("intent has no executable action")
	ErrEmptyQuery    = errors.New("search query is empty")
)
