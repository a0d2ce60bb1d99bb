package tableview

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"
	"github.com/starfederation/datastar-go/datastar"

	"github.com/dmitrymomot/applib/pkg/datatable"
	"github.com/dmitrymomot/applib/pkg/logger"
)

// Signals are the browser-side values sent with every action.
type Signals struct {
	Search string `json:"search"`
}

// Handler serves an interactive view of a datatable.Controller. Every
// action runs the controller operation and patches the table fragment back
// over SSE. All clients share the controller's view state.
type Handler struct {
	table    *datatable.Controller
	title    string
	basePath string
	logger   *slog.Logger
}

// Option configures a Handler.
type Option func(*Handler)

// WithTitle sets the page title.
func WithTitle(title string) Option {
	return func(h *Handler) { h.title = title }
}

// WithBasePath sets the path the routes are mounted under. Action URLs in
// the rendered markup are built from it.
func WithBasePath(p string) Option {
	return func(h *Handler) { h.basePath = p }
}

// WithLogger sets the handler logger.
func WithLogger(l *slog.Logger) Option {
	return func(h *Handler) {
		if l != nil {
			h.logger = l
		}
	}
}

// NewHandler wraps table. It panics on a nil controller.
func NewHandler(table *datatable.Controller, opts ...Option) *Handler {
	if table == nil {
		panic(ErrNilController)
	}
	h := &Handler{table: table, title: "Records", basePath: "/", logger: logger.Discard()}
	for _, opt := range opts {
		opt(h)
	}
	return h
}

// Routes returns a router with the page and its SSE actions.
func (h *Handler) Routes() chi.Router {
	r := chi.NewRouter()
	h.Mount(r)
	return r
}

// Mount registers the routes on r.
func (h *Handler) Mount(r chi.Router) {
	r.Get("/", h.Page)
	r.Get("/table", h.TableSSE)
	r.Get("/page/{page}", h.SetPageSSE)
	r.Get("/sort/{column}", h.SortSSE)
	r.Get("/search", h.SearchSSE)
	r.Get("/reload", h.ReloadSSE)
}

// Page renders the full document with the current table.
func (h *Handler) Page(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	page := Document(h.title, h.basePath, Table(h.basePath, h.table.VisiblePage(), h.table.State()))
	if err := page.Render(r.Context(), w); err != nil {
		h.logger.ErrorContext(r.Context(), "render page", logger.Error(err))
	}
}

// TableSSE patches the current table without changing state.
func (h *Handler) TableSSE(w http.ResponseWriter, r *http.Request) {
	h.run(w, r, nil)
}

// SetPageSSE moves to the page in the path.
func (h *Handler) SetPageSSE(w http.ResponseWriter, r *http.Request) {
	page, err := strconv.Atoi(chi.URLParam(r, "page"))
	if err != nil {
		h.fail(w, r, errors.Join(ErrInvalidParam, err))
		return
	}
	h.run(w, r, func(ctx context.Context) error { return h.table.SetPage(ctx, page) })
}

// SortSSE sorts by the column at the position in the path. Without
// configured columns the position refers to the generated ones.
func (h *Handler) SortSSE(w http.ResponseWriter, r *http.Request) {
	idx, err := strconv.Atoi(chi.URLParam(r, "column"))
	if err != nil {
		h.fail(w, r, errors.Join(ErrInvalidParam, err))
		return
	}
	h.run(w, r, func(ctx context.Context) error {
		if len(h.table.Columns()) > 0 {
			return h.table.SortColumn(ctx, idx)
		}
		cols := columnsFor(h.table.VisiblePage(), nil)
		if idx < 0 || idx >= len(cols) {
			return datatable.ErrColumnOutOfRange
		}
		return h.table.Sort(ctx, cols[idx].Field)
	})
}

// SearchSSE filters by the search signal.
func (h *Handler) SearchSSE(w http.ResponseWriter, r *http.Request) {
	var signals Signals
	if err := datastar.ReadSignals(r, &signals); err != nil {
		h.fail(w, r, errors.Join(ErrReadSignals, err))
		return
	}
	h.run(w, r, func(ctx context.Context) error { return h.table.Search(ctx, signals.Search) })
}

// ReloadSSE clears the search and returns to the first page.
func (h *Handler) ReloadSSE(w http.ResponseWriter, r *http.Request) {
	h.run(w, r, h.table.Reload)
}

// run executes op with the loading signal raised and patches the result.
// A failed op leaves the table as it was and shows the error.
func (h *Handler) run(w http.ResponseWriter, r *http.Request, op func(context.Context) error) {
	sse := datastar.NewSSE(w, r)
	ctx := r.Context()

	if op != nil {
		_ = sse.PatchSignals([]byte(`{"loading":true}`))
		err := op(ctx)
		_ = sse.PatchSignals([]byte(`{"loading":false}`))
		if errors.Is(err, datatable.ErrCancelled) {
			return
		}
		if err != nil {
			h.logger.WarnContext(ctx, "table action failed", slog.String("path", r.URL.Path), logger.Error(err))
			if perr := sse.PatchElementTempl(ErrorMessage(err)); perr != nil {
				_ = sse.ConsoleError(perr)
			}
			return
		}
	}

	if err := sse.PatchElementTempl(ErrorMessage(nil)); err != nil {
		_ = sse.ConsoleError(err)
		return
	}
	if err := sse.PatchElementTempl(Table(h.basePath, h.table.VisiblePage(), h.table.State())); err != nil {
		_ = sse.ConsoleError(err)
	}
}

func (h *Handler) fail(w http.ResponseWriter, r *http.Request, err error) {
	h.logger.WarnContext(r.Context(), "bad table request", slog.String("path", r.URL.Path), logger.Error(err))
	sse := datastar.NewSSE(w, r)
	_ = sse.PatchElementTempl(ErrorMessage(err))
}
