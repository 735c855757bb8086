package domain

import "errors"

// Sentinel errors for the sync pipeline, matched with errors.Is
var (
	// ErrInvalidIdentifier rejects identifiers that are not exactly
	// "publisher.name"
	ErrInvalidIdentifier = errors.New("invalid extension identifier")

	// ErrMalformedResponse marks a success response from the primary
	// registry whose body could not be decoded
	ErrMalformedResponse = errors.New("malformed registry response")

	// ErrUnexpectedStatus marks a download response with a non-success
	// status code
	ErrUnexpectedStatus = errors.New("unexpected server status")

	// ErrLedgerCorrupt marks an existing ledger file that no longer
	// parses
	ErrLedgerCorrupt = errors.New("ledger file is corrupt")
)
