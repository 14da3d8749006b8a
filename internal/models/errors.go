package models

import "errors"

// Error taxonomy surfaced by the store and the service layer. Adapters wrap
// these with fmt.Errorf("...: %w", ...) and callers classify with errors.Is.
var (
	// ErrNotFound means the event id resolves to no known event. Not retried.
	ErrNotFound = errors.New("event not found")

	// ErrDataIntegrity means the event exists but its data cannot support a
	// computation (zero options, or bets referencing unknown options).
	// Computation aborts rather than guessing.
	ErrDataIntegrity = errors.New("event data integrity violation")

	// ErrUpstreamUnavailable means a store read failed transiently. Callers
	// may retry the whole request; the core performs no internal retries.
	ErrUpstreamUnavailable = errors.New("upstream store unavailable")
)
