package matching

import "errors"

var (
	ErrUnknownOrder    = errors.New("unknown order id")
	ErrDuplicateOrder  = errors.New("duplicate order id")
	ErrTerminalState   = errors.New("order already filled or canceled")
	ErrInvalidArgument = errors.New("invalid argument")
	ErrActorClosed     = errors.New("book actor closed")
)
