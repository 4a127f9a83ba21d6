package models

import "errors"

var (
	ErrParserFailure       = errors.New("replay parser failed")
	ErrMissingParticipants = errors.New("no participants found in parser output")
	ErrInvalidRoster       = errors.New("roster is not two equal teams")
	ErrMatchNotFound       = errors.New("match not found")
	ErrUnsupportedFile     = errors.New("only .rofl replays are accepted")
)
