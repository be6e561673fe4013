// Package services defines the business logic for fighter search, profile
// analysis, and Q&A. This file centralizes common service-level error values
// so that they can be consistently returned by service methods and checked by
// callers.
//
// These errors are intended for internal use by the service layer; translation
// into user-facing messages or HTTP status codes is performed at the handler
// layer.
package services

import "errors"

var (
	// ErrEmptyQuery is returned when a search request carries no query text.
	ErrEmptyQuery = errors.New("query is empty")

	// ErrEmptyQuestion is returned when a Q&A request carries no question text.
	ErrEmptyQuestion = errors.New("question is empty")

	// ErrMissingFighter is returned when an analysis request identifies no
	// fighter by id or name.
	ErrMissingFighter = errors.New("fighter id or name required")

	// ErrFighterNotFound indicates that no data source could produce the
	// requested fighter.
	ErrFighterNotFound = errors.New("fighter not found")

	// ErrNoAnswer indicates the AI backend returned no usable content.
	ErrNoAnswer = errors.New("no answer from AI backend")
)
