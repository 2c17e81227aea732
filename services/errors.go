package services

import "errors"

// Shared sentinel errors, mapped to HTTP statuses in the handlers package.
var (
	ErrNotFound = errors.New("requested resource not found")

	// Validation and business rules
	ErrValidationFailed = errors.New("validation failed")
	ErrPasswordTooShort = errors.New("password is too short")
	// ErrResultNotFinal: a finalization was triggered against a result that
	// is not in a terminal state; nothing is scored.
	ErrResultNotFinal = errors.New("result is not final")
	// ErrPredictionLocked: the referenced result is already final (or the
	// match has kicked off); the prediction can no longer be changed.
	ErrPredictionLocked    = errors.New("prediction is locked: the referenced result is no longer open")
	ErrNotKnockoutMatch    = errors.New("match is not a knockout fixture")
	ErrTeamNotInMatch      = errors.New("predicted team does not play in this match")
	ErrTeamNotInGroup      = errors.New("predicted team does not belong to this group")
	ErrScorelineMismatch   = errors.New("predicted winner does not match the predicted scoreline")
	ErrUploadsDisabled     = errors.New("file uploads are not configured")
	ErrUnsupportedFileType = errors.New("unsupported file content type")

	// Conflicts
	ErrUserEmailConflict    = errors.New("email address is already in use")
	ErrUserNicknameConflict = errors.New("nickname is already in use")
	ErrTeamCodeConflict     = errors.New("team code is already in use")

	// Authentication
	ErrInvalidCredentials = errors.New("invalid email or password")

	// Entity-specific not-found errors
	ErrUserNotFound       = errors.New("user not found")
	ErrTeamNotFound       = errors.New("team not found")
	ErrPlayerNotFound     = errors.New("player not found")
	ErrMatchNotFound      = errors.New("match not found")
	ErrGroupNotFound      = errors.New("group standings not found")
	ErrPredictionNotFound = errors.New("prediction not found")
)
