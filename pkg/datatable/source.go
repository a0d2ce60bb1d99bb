package datatable

import (
	"context"
	"slices"
)

// PageSpec describes what a Source should return. A zero Limit asks for the
// whole dataset, which is how client-side controllers fetch.
type PageSpec struct {
	Page          int
	Limit         int
	Search        string
	SortKey       string
	SortDirection Direction
}

// All reports whether the spec requests the full dataset.
func (s PageSpec) All() bool { return s.Limit <= 0 }

// Page is a fetched slice of records plus the total row count hint.
// Total may be zero when the source does not know it.
type Page struct {
	Records []Record
	Total   int
}

// Source is the data source capability consumed by the controller.
// Implementations must honour ctx cancellation.
type Source interface {
	Fetch(ctx context.Context, spec PageSpec) (Page, error)
}

// SourceFunc adapts a function to Source.
type SourceFunc func(ctx context.Context, spec PageSpec) (Page, error)

func (f SourceFunc) Fetch(ctx context.Context, spec PageSpec) (Page, error) {
	return f(ctx, spec)
}

// StaticSource serves an in-memory dataset. For paged specs it filters,
// sorts and slices like a server would, so it backs both modes.
type StaticSource []Record

func (s StaticSource) Fetch(ctx context.Context, spec PageSpec) (Page, error) {
	if err := ctx.Err(); err != nil {
		return Page{}, err
	}
	if spec.All() {
		return Page{Records: slices.Clone(s), Total: len(s)}, nil
	}

	rows := Filter(s, spec.Search)
	if spec.SortKey != "" {
		SortRecords(rows, spec.SortKey, spec.SortDirection)
	}
	start := (max(spec.Page, 1) - 1) * spec.Limit
	if start >= len(rows) {
		return Page{Records: []Record{}, Total: len(rows)}, nil
	}
	end := min(start+spec.Limit, len(rows))
	return Page{Records: rows[start:end], Total: len(rows)}, nil
}
