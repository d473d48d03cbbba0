package models

import "errors"

// Error taxonomy for economy operations. Services return these
// verbatim (optionally wrapped with detail via fmt.Errorf + %w);
// handlers map them to HTTP statuses. Every failure is a synchronous
// precondition rejection — the enclosing transaction rolls back, so a
// failed operation has no observable effect.
var (
	ErrNotOwner            = errors.New("caller is not the platform owner")
	ErrNotRegistered       = errors.New("player is not registered")
	ErrPlayerInactive      = errors.New("player account is paused")
	ErrPlatformInactive    = errors.New("platform is paused")
	ErrInvalidInput        = errors.New("invalid input")
	ErrInvalidIdentity     = errors.New("invalid identity")
	ErrAlreadyRegistered   = errors.New("identity already registered")
	ErrAlreadyJoined       = errors.New("player already joined this tournament")
	ErrInsufficientBalance = errors.New("insufficient token balance")
	ErrDailyLimitReached   = errors.New("daily play limit reached")
	ErrTournamentNotFound  = errors.New("tournament not found")
	ErrTournamentNotActive = errors.New("tournament is not active")
	ErrTournamentCompleted = errors.New("tournament already completed")
	ErrRegistrationClosed  = errors.New("tournament registration closed")
	ErrNotAParticipant     = errors.New("winner is not a tournament participant")
)
