package datatable

import "errors"

var (
	// ErrNilSource is returned by New when no data source is supplied.
	ErrNilSource = errors.New("datatable: nil data source")

	// ErrCancelled is returned by a load that was superseded by a newer one
	// or whose context was cancelled by the caller. It is never passed to the
	// error reporter.
	ErrCancelled = errors.New("datatable: load cancelled")

	// ErrTimeout is reported when a load exceeds the configured request timeout.
	ErrTimeout = errors.New("datatable: load timed out")

	// ErrColumnOutOfRange is returned by SortColumn for an unknown column index.
	ErrColumnOutOfRange = errors.New("datatable: column index out of range")

	// ErrUnexpectedPayload is wrapped in a parse error when a response body
	// holds neither an array nor an object.
	ErrUnexpectedPayload = errors.New("datatable: response is neither an array nor an object")
)
