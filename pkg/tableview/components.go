package tableview

import (
	"context"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/a-h/templ"

	"github.com/dmitrymomot/applib/pkg/datatable"
)

// Element ids patched by the SSE handlers.
const (
	TableID      = "datatable"
	ErrorID      = "datatable-error"
	PaginationID = "datatable-pagination"
)

const datastarScript = "https://cdn.jsdelivr.net/gh/starfederation/datastar@1.0.0-RC.6/bundles/datastar.js"

// Document renders a complete HTML page around body with the search box
// and loading indicator wired to the handler routes under basePath.
func Document(title, basePath string, body templ.Component) templ.Component {
	return templ.ComponentFunc(func(ctx context.Context, w io.Writer) error {
		var b strings.Builder
		b.WriteString("<!DOCTYPE html><html lang=\"en\"><head><meta charset=\"utf-8\">")
		fmt.Fprintf(&b, "<title>%s</title>", templ.EscapeString(title))
		fmt.Fprintf(&b, "<script type=\"module\" src=\"%s\"></script>", datastarScript)
		b.WriteString("</head><body data-signals=\"{search: '', loading: false}\">")
		fmt.Fprintf(&b, "<h1>%s</h1>", templ.EscapeString(title))
		fmt.Fprintf(&b,
			"<input type=\"search\" placeholder=\"Search\" data-bind:search data-on:input__debounce.400ms=\"@get('%s')\">",
			templ.EscapeString(route(basePath, "search")),
		)
		fmt.Fprintf(&b, "<button data-on:click=\"$search = ''; @get('%s')\">Reset</button>", templ.EscapeString(route(basePath, "reload")))
		b.WriteString("<span data-show=\"$loading\">Loading...</span>")
		if _, err := io.WriteString(w, b.String()); err != nil {
			return err
		}
		if err := ErrorMessage(nil).Render(ctx, w); err != nil {
			return err
		}
		if body != nil {
			if err := body.Render(ctx, w); err != nil {
				return err
			}
		}
		_, err := io.WriteString(w, "</body></html>")
		return err
	})
}

// Table renders the visible records, the sortable header row and the
// pagination control. Header clicks sort by column position.
func Table(basePath string, records []datatable.Record, state datatable.State) templ.Component {
	return templ.ComponentFunc(func(ctx context.Context, w io.Writer) error {
		cols := columnsFor(records, state.Columns)

		var b strings.Builder
		fmt.Fprintf(&b, "<div id=\"%s\"><table><thead><tr>", TableID)
		for i, col := range cols {
			fmt.Fprintf(&b, "<th data-on:click=\"@get('%s')\">%s%s</th>",
				templ.EscapeString(route(basePath, "sort", strconv.Itoa(i))),
				templ.EscapeString(col.Title()),
				sortMarker(col, state),
			)
		}
		b.WriteString("</tr></thead><tbody>")
		if len(records) == 0 {
			fmt.Fprintf(&b, "<tr><td colspan=\"%d\">No records found</td></tr>", max(len(cols), 1))
		}
		for _, r := range records {
			b.WriteString("<tr>")
			for _, col := range cols {
				fmt.Fprintf(&b, "<td>%s</td>", templ.EscapeString(col.Cell(r)))
			}
			b.WriteString("</tr>")
		}
		b.WriteString("</tbody></table>")
		fmt.Fprintf(&b, "<p>Page %d of %d (%d rows)</p>", state.CurrentPage, state.TotalPages, state.TotalRows)
		if _, err := io.WriteString(w, b.String()); err != nil {
			return err
		}

		if err := Pager(basePath, datatable.Pagination(state.CurrentPage, state.TotalPages)).Render(ctx, w); err != nil {
			return err
		}
		_, err := io.WriteString(w, "</div>")
		return err
	})
}

// Pager renders the pagination buttons. Ellipses are inert and disabled
// arrows carry the disabled attribute.
func Pager(basePath string, items []datatable.PageItem) templ.Component {
	return templ.ComponentFunc(func(_ context.Context, w io.Writer) error {
		var b strings.Builder
		fmt.Fprintf(&b, "<nav id=\"%s\">", PaginationID)
		for _, it := range items {
			if it.Kind == datatable.PageItemEllipsis {
				fmt.Fprintf(&b, "<span>%s</span>", templ.EscapeString(it.Label))
				continue
			}
			b.WriteString("<button")
			if it.Active {
				b.WriteString(" class=\"active\" aria-current=\"page\"")
			}
			if it.Disabled {
				b.WriteString(" disabled")
			} else {
				fmt.Fprintf(&b, " data-on:click=\"@get('%s')\"", templ.EscapeString(route(basePath, "page", strconv.Itoa(it.Page))))
			}
			fmt.Fprintf(&b, ">%s</button>", templ.EscapeString(it.Label))
		}
		b.WriteString("</nav>")
		_, err := io.WriteString(w, b.String())
		return err
	})
}

// ErrorMessage renders the error slot. A nil error renders it empty.
func ErrorMessage(err error) templ.Component {
	return templ.ComponentFunc(func(_ context.Context, w io.Writer) error {
		if err == nil {
			_, werr := fmt.Fprintf(w, "<div id=\"%s\"></div>", ErrorID)
			return werr
		}
		_, werr := fmt.Fprintf(w, "<div id=\"%s\" role=\"alert\">%s</div>", ErrorID, templ.EscapeString(err.Error()))
		return werr
	})
}

func columnsFor(records []datatable.Record, cols []datatable.Column) []datatable.Column {
	if len(cols) > 0 {
		return cols
	}
	return datatable.InferColumns(records)
}

func sortMarker(col datatable.Column, state datatable.State) string {
	if state.SortKey == "" || col.Field != state.SortKey {
		return ""
	}
	if state.SortDirection == datatable.Descending {
		return " ▼"
	}
	return " ▲"
}

func route(basePath string, parts ...string) string {
	return strings.TrimRight(basePath, "/") + "/" + strings.Join(parts, "/")
}
