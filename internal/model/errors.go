package model

import "errors"

// Every rejection below leaves the game untouched.
var (
	ErrInvalidSource          = errors.New("no piece at source square")
	ErrWrongTurn              = errors.New("not your turn")
	ErrIllegalDestination     = errors.New("destination is not a legal move")
	ErrInvalidPromotionChoice = errors.New("invalid promotion choice")
	ErrPromotionPending       = errors.New("promotion choice pending")
	ErrNoPromotionPending     = errors.New("no promotion pending")
	ErrOutOfBounds            = errors.New("square out of bounds")
)
