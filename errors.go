// FILE: errors.go
package puzzlekit

import "errors"

// Sentinel errors returned by the kit. Wrapped values carry the underlying
// cause, so both errors.Is against these and inspection of the cause work.
var (
	// ErrInvalidArgument indicates a filter, count, identifier or record
	// failed a shape check before any I/O was attempted.
	ErrInvalidArgument = errors.New("invalid argument")

	// ErrDatabaseNotFound indicates the puzzle database file is absent at
	// the resolved path and auto-download does not apply.
	ErrDatabaseNotFound = errors.New("puzzle database not found")

	// ErrDownloadFailed indicates the one-shot fetch of the default
	// database did not produce a usable file.
	ErrDownloadFailed = errors.New("puzzle database download failed")

	// ErrQuery indicates query execution against the puzzles table failed.
	ErrQuery = errors.New("puzzle query failed")

	// ErrWrite indicates a CSV export could not be written.
	ErrWrite = errors.New("puzzle export failed")
)
