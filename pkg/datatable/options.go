package datatable

import (
	"log/slog"
	"time"
)

// DefaultRowsPerPage and DefaultSearchDebounce apply when no option overrides them.
const (
	DefaultRowsPerPage    = 5
	DefaultSearchDebounce = 400 * time.Millisecond
)

// Option configures a Controller.
type Option func(*Controller)

// WithMode selects client-side or server-side operation.
func WithMode(m Mode) Option {
	return func(c *Controller) { c.mode = m }
}

// WithServerSide is shorthand for WithMode(ServerSide).
func WithServerSide() Option {
	return WithMode(ServerSide)
}

// WithRowsPerPage sets the page size.
func WithRowsPerPage(n int) Option {
	if n <= 0 {
		panic("WithRowsPerPage: rows per page must be > 0")
	}
	return func(c *Controller) { c.view.RowsPerPage = n }
}

// WithColumns sets the column configuration used for projection and SortColumn.
func WithColumns(cols ...Column) Option {
	return func(c *Controller) { c.columns = append(c.columns[:0], cols...) }
}

// WithRenderer sets the render callback.
func WithRenderer(fn RenderFunc) Option {
	return func(c *Controller) { c.render = fn }
}

// WithLoadingIndicator sets the loading show/hide callback.
func WithLoadingIndicator(fn LoadingFunc) Option {
	return func(c *Controller) { c.loading = fn }
}

// WithErrorReporter sets the callback that displays load failures.
func WithErrorReporter(fn ErrorFunc) Option {
	return func(c *Controller) { c.reportError = fn }
}

// WithLogger sets the logger. Nil is ignored.
func WithLogger(l *slog.Logger) Option {
	return func(c *Controller) {
		if l != nil {
			c.logger = l
		}
	}
}

// WithRequestTimeout cancels a load that runs longer than d and reports
// ErrTimeout. Zero disables the timeout.
func WithRequestTimeout(d time.Duration) Option {
	if d < 0 {
		panic("WithRequestTimeout: duration must be >= 0")
	}
	return func(c *Controller) { c.timeout = d }
}

// WithSearchDebounce sets the quiet window used by SearchDebounced.
func WithSearchDebounce(d time.Duration) Option {
	return func(c *Controller) { c.debounce = NewDebouncer(d) }
}

// WithInitialSort sets the sort applied to the first load.
func WithInitialSort(key string, dir Direction) Option {
	return func(c *Controller) {
		c.view.SortKey = key
		c.view.SortDirection = dir
	}
}
