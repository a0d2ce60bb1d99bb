package datatable

import (
	"context"
	"errors"
	"log/slog"
	"slices"
	"sync"
	"time"

	"github.com/dmitrymomot/applib/pkg/logger"
)

// Controller owns a table's dataset and view state. It loads records from a
// Source, filters, sorts and paginates them (client-side) or delegates that
// to the source (server-side), and calls the render callback after every
// state change. It is safe for concurrent use; at most one load is
// authoritative at a time.
type Controller struct {
	source      Source
	mode        Mode
	columns     []Column
	render      RenderFunc
	loading     LoadingFunc
	reportError ErrorFunc
	logger      *slog.Logger
	timeout     time.Duration
	debounce    *Debouncer

	renderMu sync.Mutex

	mu        sync.Mutex
	view      ViewState
	data      []Record // full dataset (client) or current page (server)
	visible   []Record // filtered and sorted data (client) or current page (server)
	totalRows int
	gen       uint64
	cancel    context.CancelFunc
	pending   *loadRequest // newest load in flight; local changes are folded into it
}

// New creates a Controller reading from source.
func New(source Source, opts ...Option) (*Controller, error) {
	if source == nil {
		return nil, ErrNilSource
	}
	c := &Controller{
		source: source,
		logger: logger.Discard(),
		view: ViewState{
			CurrentPage:   1,
			RowsPerPage:   DefaultRowsPerPage,
			SortDirection: Ascending,
		},
		debounce: NewDebouncer(DefaultSearchDebounce),
	}
	for _, opt := range opts {
		opt(c)
	}
	return c, nil
}

type loadRequest struct {
	page    int
	term    string
	sortKey string
	sortDir Direction
}

// Load fetches records and replaces the dataset. Any load still in flight
// is cancelled and its result discarded. In server-side mode page, term and
// the active sort parametrise the fetch; in client-side mode the whole
// dataset is fetched and term is applied locally.
//
// Failures are passed to the error reporter and leave the previous state
// untouched. A superseded or caller-cancelled load returns ErrCancelled and
// is not reported.
func (c *Controller) Load(ctx context.Context, page int, term string) error {
	c.mu.Lock()
	req := c.intent()
	c.mu.Unlock()
	req.page, req.term = page, term
	return c.load(ctx, req)
}

// Refresh re-fetches the current page with the current search term.
func (c *Controller) Refresh(ctx context.Context) error {
	c.mu.Lock()
	req := c.intent()
	c.mu.Unlock()
	return c.load(ctx, req)
}

// intent returns the most recently requested view: the newest load in
// flight if there is one, the committed view otherwise. Caller holds c.mu.
func (c *Controller) intent() loadRequest {
	if c.pending != nil {
		return *c.pending
	}
	return loadRequest{
		page:    c.view.CurrentPage,
		term:    c.view.SearchTerm,
		sortKey: c.view.SortKey,
		sortDir: c.view.SortDirection,
	}
}

func (c *Controller) load(parent context.Context, req loadRequest) error {
	var (
		ctx    context.Context
		cancel context.CancelFunc
	)
	if c.timeout > 0 {
		ctx, cancel = context.WithTimeout(parent, c.timeout)
	} else {
		ctx, cancel = context.WithCancel(parent)
	}
	defer cancel()

	c.mu.Lock()
	if c.cancel != nil {
		c.cancel()
	}
	c.gen++
	gen := c.gen
	c.cancel = cancel
	pending := req
	c.pending = &pending
	spec := PageSpec{}
	if c.mode == ServerSide {
		spec = PageSpec{
			Page:          max(req.page, 1),
			Limit:         c.view.RowsPerPage,
			Search:        req.term,
			SortKey:       req.sortKey,
			SortDirection: req.sortDir,
		}
	}
	c.mu.Unlock()

	c.setLoading(true)
	defer c.setLoading(false)

	start := time.Now()
	result, err := c.source.Fetch(ctx, spec)

	c.mu.Lock()
	if gen != c.gen {
		c.mu.Unlock()
		c.logger.DebugContext(parent, "discarding superseded load", logger.Page(req.page), logger.SearchTerm(req.term))
		return ErrCancelled
	}
	c.cancel = nil
	req = *c.pending
	c.pending = nil

	if err != nil {
		c.mu.Unlock()
		switch {
		case parent.Err() != nil:
			return errors.Join(ErrCancelled, parent.Err())
		case errors.Is(ctx.Err(), context.DeadlineExceeded):
			err = errors.Join(ErrTimeout, err)
		}
		c.logger.WarnContext(parent, "table load failed", logger.Page(req.page), logger.SearchTerm(req.term), logger.Error(err))
		if c.reportError != nil {
			c.reportError(err)
		}
		return err
	}

	c.commit(req, result)
	rows, page := c.totalRows, c.view.CurrentPage
	c.mu.Unlock()

	c.logger.DebugContext(parent, "table loaded",
		slog.String("mode", c.mode.String()),
		logger.Page(page),
		logger.SearchTerm(req.term),
		slog.Int("rows", rows),
		logger.Duration(time.Since(start)),
	)
	c.notify()
	return nil
}

// commit replaces the dataset with a successful fetch. Caller holds c.mu.
func (c *Controller) commit(req loadRequest, result Page) {
	c.view.SearchTerm = req.term
	c.view.SortKey = req.sortKey
	c.view.SortDirection = req.sortDir

	if c.mode == ServerSide {
		c.data = result.Records
		c.visible = result.Records
		c.totalRows = result.Total
		if c.totalRows <= 0 {
			c.totalRows = len(result.Records)
		}
	} else {
		c.data = result.Records
		c.applyLocal()
	}
	c.view.CurrentPage = clampPage(req.page, TotalPages(c.totalRows, c.view.RowsPerPage))
}

// applyLocal rebuilds the client-side view from the full dataset.
// Caller holds c.mu.
func (c *Controller) applyLocal() {
	c.visible = Filter(c.data, c.view.SearchTerm)
	if c.view.SortKey != "" {
		SortRecords(c.visible, c.view.SortKey, c.view.SortDirection)
	}
	c.totalRows = len(c.visible)
}

// Search filters by term and returns to page 1. Client-side it matches
// term case-insensitively against every leaf value of each record;
// server-side it is Load(ctx, 1, term). A blank term restores the full
// dataset.
func (c *Controller) Search(ctx context.Context, term string) error {
	if c.mode == ServerSide {
		return c.Load(ctx, 1, term)
	}

	c.mu.Lock()
	c.view.SearchTerm = term
	c.applyLocal()
	c.view.CurrentPage = 1
	if c.pending != nil {
		c.pending.term, c.pending.page = term, 1
	}
	c.mu.Unlock()

	c.notify()
	return nil
}

// SearchDebounced calls Search once no further call arrived within the
// configured quiet window. Errors are delivered to the error reporter.
func (c *Controller) SearchDebounced(ctx context.Context, term string) {
	c.debounce.Trigger(func() {
		if err := c.Search(ctx, term); err != nil && !errors.Is(err, ErrCancelled) {
			c.logger.DebugContext(ctx, "debounced search failed", logger.SearchTerm(term), logger.Error(err))
		}
	})
}

// Reload clears the search term and returns to page 1. Client-side the full
// dataset is restored without fetching; server-side the first unfiltered
// page is loaded.
func (c *Controller) Reload(ctx context.Context) error {
	c.debounce.Stop()
	if c.mode == ServerSide {
		return c.Load(ctx, 1, "")
	}

	c.mu.Lock()
	c.view.SearchTerm = ""
	c.applyLocal()
	c.view.CurrentPage = 1
	if c.pending != nil {
		c.pending.term, c.pending.page = "", 1
	}
	c.mu.Unlock()

	c.notify()
	return nil
}

// Sort orders the table by key. Selecting the active key again toggles the
// direction; a new key starts ascending. The current page is kept.
// Server-side the current page is re-fetched with the new order, and the
// order is only committed if that fetch succeeds. While a load is in
// flight the toggle starts from the order that load requested.
func (c *Controller) Sort(ctx context.Context, key string) error {
	if key == "" {
		return nil
	}

	c.mu.Lock()
	req := c.intent()
	dir := Ascending
	if req.sortKey == key {
		dir = req.sortDir.Toggle()
	}

	if c.mode == ServerSide {
		req.sortKey, req.sortDir = key, dir
		c.mu.Unlock()
		return c.load(ctx, req)
	}

	c.view.SortKey = key
	c.view.SortDirection = dir
	SortRecords(c.visible, key, dir)
	if c.pending != nil {
		c.pending.sortKey, c.pending.sortDir = key, dir
	}
	c.mu.Unlock()

	c.notify()
	return nil
}

// SortColumn sorts by the field of the column at index.
func (c *Controller) SortColumn(ctx context.Context, index int) error {
	if index < 0 || index >= len(c.columns) {
		return ErrColumnOutOfRange
	}
	return c.Sort(ctx, c.columns[index].Field)
}

// SetPage moves to page, clamped to [1, TotalPages()]. Server-side this
// loads the page; client-side it only re-slices.
func (c *Controller) SetPage(ctx context.Context, page int) error {
	c.mu.Lock()
	page = clampPage(page, TotalPages(c.totalRows, c.view.RowsPerPage))

	if c.mode == ServerSide {
		req := c.intent()
		req.page = page
		c.mu.Unlock()
		return c.load(ctx, req)
	}

	c.view.CurrentPage = page
	if c.pending != nil {
		c.pending.page = page
	}
	c.mu.Unlock()

	c.notify()
	return nil
}

// VisiblePage returns the records of the current page.
func (c *Controller) VisiblePage() []Record {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.visiblePage()
}

func (c *Controller) visiblePage() []Record {
	if c.mode == ServerSide {
		return slices.Clone(c.visible)
	}
	start := (c.view.CurrentPage - 1) * c.view.RowsPerPage
	if start >= len(c.visible) {
		return []Record{}
	}
	end := min(start+c.view.RowsPerPage, len(c.visible))
	return slices.Clone(c.visible[start:end])
}

// TotalPages returns ceil(totalRows/rowsPerPage), minimum 1.
func (c *Controller) TotalPages() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return TotalPages(c.totalRows, c.view.RowsPerPage)
}

// State returns a snapshot of the controller.
func (c *Controller) State() State {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.snapshot()
}

func (c *Controller) snapshot() State {
	return State{
		ViewState:  c.view,
		Mode:       c.mode,
		TotalRows:  c.totalRows,
		TotalPages: TotalPages(c.totalRows, c.view.RowsPerPage),
		Columns:    slices.Clone(c.columns),
	}
}

// Pagination returns the pagination control for the current state.
func (c *Controller) Pagination() []PageItem {
	s := c.State()
	return Pagination(s.CurrentPage, s.TotalPages)
}

// Columns returns the configured columns.
func (c *Controller) Columns() []Column {
	return slices.Clone(c.columns)
}

// Close drops a pending debounced search and cancels any load in flight.
func (c *Controller) Close() {
	c.debounce.Stop()
	c.mu.Lock()
	if c.cancel != nil {
		c.cancel()
		c.cancel = nil
	}
	c.pending = nil
	c.gen++
	c.mu.Unlock()
}

func (c *Controller) notify() {
	if c.render == nil {
		return
	}
	c.renderMu.Lock()
	defer c.renderMu.Unlock()

	c.mu.Lock()
	records, state := c.visiblePage(), c.snapshot()
	c.mu.Unlock()

	c.render(records, state)
}

func (c *Controller) setLoading(on bool) {
	if c.loading != nil {
		c.loading(on)
	}
}
