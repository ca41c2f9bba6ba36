package services

import "errors"

var (
	// ErrInvalidInput is returned when a submission is missing required fields.
	ErrInvalidInput = errors.New("invalid input")

	// ErrUpstream is returned when the AI scoring endpoint could not be
	// reached, timed out, or answered with a non-2xx status.
	ErrUpstream = errors.New("scoring service unavailable")

	// ErrStorage wraps persistence failures other than duplicate emails.
	ErrStorage = errors.New("storage failure")
)
