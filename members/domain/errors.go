package domain

import "fmt"

// AuthError means the remote token exchange failed. It aborts the run.
type AuthError struct {
	Err error
}

func (e *AuthError) Error() string {
	return fmt.Sprintf("remote authentication failed: %v", e.Err)
}

func (e *AuthError) Unwrap() error {
	return e.Err
}

// SchemaResolutionError is logged and the run continues unfiltered or on the stale cache.
type SchemaResolutionError struct {
	Table string
	Err   error
}

func (e *SchemaResolutionError) Error() string {
	return fmt.Sprintf("resolving fields of %s: %v", e.Table, e.Err)
}

func (e *SchemaResolutionError) Unwrap() error {
	return e.Err
}

// RemoteFetchError is an unrecoverable page fetch failure after the degrading retries.
type RemoteFetchError struct {
	Page int
	Err  error
}

func (e *RemoteFetchError) Error() string {
	return fmt.Sprintf("fetching page %d: %v", e.Page, e.Err)
}

func (e *RemoteFetchError) Unwrap() error {
	return e.Err
}

// PersistenceError is a failed atomic batch commit. Earlier commits stay in place;
// Committed counts the documents of the run written before the failure.
type PersistenceError struct {
	Committed int
	Err       error
}

func (e *PersistenceError) Error() string {
	return fmt.Sprintf("committing cache batch after %d documents of the run: %v", e.Committed, e.Err)
}

func (e *PersistenceError) Unwrap() error {
	return e.Err
}

// ActivityEmissionError is best effort only and never fails a run.
type ActivityEmissionError struct {
	Dropped int
	Err     error
}

func (e *ActivityEmissionError) Error() string {
	return fmt.Sprintf("emitting %d activity events: %v", e.Dropped, e.Err)
}

func (e *ActivityEmissionError) Unwrap() error {
	return e.Err
}
