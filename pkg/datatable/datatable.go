package datatable

import "slices"

// Record is one row of tabular data. Values are scalars or nested
// maps/slices as produced by encoding/json.
type Record map[string]any

// Direction is a sort direction.
type Direction string

const (
	Ascending  Direction = "asc"
	Descending Direction = "desc"
)

// Toggle returns the opposite direction.
func (d Direction) Toggle() Direction {
	if d == Ascending {
		return Descending
	}
	return Ascending
}

// Mode selects where filtering, sorting and pagination happen.
type Mode int

const (
	// ClientSide fetches the full dataset once and works on it locally.
	ClientSide Mode = iota
	// ServerSide fetches one page per change; the server owns totals.
	ServerSide
)

func (m Mode) String() string {
	if m == ServerSide {
		return "server"
	}
	return "client"
}

// ViewState is the mutable pagination, sort and search configuration.
type ViewState struct {
	CurrentPage   int
	RowsPerPage   int
	SortKey       string
	SortDirection Direction
	SearchTerm    string
}

// Column describes one rendered column. Render, when set, overrides the
// default cell text. Columns are only used for projection and positional
// sorting.
type Column struct {
	Field  string
	Label  string
	Render func(Record) string
}

// Title returns Label, falling back to Field.
func (c Column) Title() string {
	if c.Label != "" {
		return c.Label
	}
	return c.Field
}

// Cell returns the text for r in this column.
func (c Column) Cell(r Record) string {
	if c.Render != nil {
		return c.Render(r)
	}
	return stringify(Lookup(r, c.Field))
}

// InferColumns returns one column per key of the first record, in key
// order. It is used when no columns are configured.
func InferColumns(records []Record) []Column {
	if len(records) == 0 {
		return nil
	}
	keys := make([]string, 0, len(records[0]))
	for k := range records[0] {
		keys = append(keys, k)
	}
	slices.Sort(keys)
	cols := make([]Column, len(keys))
	for i, k := range keys {
		cols[i] = Column{Field: k}
	}
	return cols
}

// State is an immutable snapshot of a controller handed to renderers.
type State struct {
	ViewState
	Mode       Mode
	TotalRows  int
	TotalPages int
	Columns    []Column
}

// RenderFunc projects the visible records. It is called synchronously after
// every state change.
type RenderFunc func(records []Record, state State)

// LoadingFunc shows or hides a loading indicator.
type LoadingFunc func(loading bool)

// ErrorFunc displays a load failure. Cancelled loads are never reported.
type ErrorFunc func(err error)

// TotalPages returns ceil(totalRows/rowsPerPage), never less than 1.
func TotalPages(totalRows, rowsPerPage int) int {
	if rowsPerPage <= 0 || totalRows <= 0 {
		return 1
	}
	return (totalRows + rowsPerPage - 1) / rowsPerPage
}

func clampPage(page, totalPages int) int {
	return max(1, min(page, totalPages))
}
