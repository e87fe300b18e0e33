package domain

import "errors"

var (
	// ErrInvalidInput marks a caller mistake (missing video identifier,
	// unknown strategy). Never retried.
	ErrInvalidInput = errors.New("invalid input")
	// ErrNotConfigured indicates the generative backend credential is missing.
	// Permanent until an operator fixes configuration; never retried.
	ErrNotConfigured = errors.New("generative backend is not configured")
	// ErrUpstreamFailure indicates the generative backend call errored or timed out.
	ErrUpstreamFailure = errors.New("generative backend request failed")
	// ErrMalformedOutput indicates the backend returned content that does not
	// parse and validate as a quiz document.
	ErrMalformedOutput = errors.New("generative backend returned a malformed quiz")
	// ErrNoSourceMaterial indicates the chosen strategy found nothing usable
	// for the video; callers may offer a slower alternate strategy.
	ErrNoSourceMaterial = errors.New("no usable source material for video")
)
