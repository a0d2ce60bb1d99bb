package cli

import (
	"errors"
	"fmt"
	"log/slog"
	"strings"

	"github.com/spf13/pflag"

	"github.com/dmitrymomot/applib/pkg/apiclient"
	"github.com/dmitrymomot/applib/pkg/datatable"
)

var errNoURL = errors.New("no API URL: pass --url or set API_BASE_URL")

// sourceFlags are shared by commands that read a remote dataset.
type sourceFlags struct {
	url        string
	endpoint   string
	token      string
	serverSide bool
	rows       int
	columns    []string
}

func (f *sourceFlags) register(fs *pflag.FlagSet) {
	fs.StringVar(&f.url, "url", "", "API base URL (overrides API_BASE_URL)")
	fs.StringVar(&f.endpoint, "endpoint", "", "endpoint path relative to the base URL")
	fs.StringVar(&f.token, "token", "", "bearer token (overrides API_TOKEN)")
	fs.BoolVar(&f.serverSide, "server-side", false, "let the API paginate, filter and sort")
	fs.IntVar(&f.rows, "rows", 0, "rows per page (overrides TABLE_ROWS_PER_PAGE)")
	fs.StringSliceVar(&f.columns, "columns", nil, "columns as field or field=Label; dotted paths reach nested values")
}

// newController wires an HTTP source and a controller from cfg and flags.
func (f *sourceFlags) newController(cfg Config, log *slog.Logger, opts ...datatable.Option) (*datatable.Controller, datatable.Source, error) {
	if f.url != "" {
		cfg.API.BaseURL = f.url
	}
	if f.token != "" {
		cfg.API.Token = f.token
	}
	if cfg.API.BaseURL == "" {
		return nil, nil, errNoURL
	}
	if f.serverSide {
		cfg.Table.ServerSide = true
	}
	if f.rows > 0 {
		cfg.Table.RowsPerPage = f.rows
	} else if f.rows < 0 {
		return nil, nil, fmt.Errorf("--rows must be positive, got %d", f.rows)
	}

	client := apiclient.NewFromConfig(cfg.API, apiclient.WithLogger(log))
	source := datatable.NewHTTPSource(client, f.endpoint)

	base := []datatable.Option{datatable.WithLogger(log)}
	if cols := parseColumns(f.columns); len(cols) > 0 {
		base = append(base, datatable.WithColumns(cols...))
	}
	c, err := datatable.NewFromConfig(source, cfg.Table, append(base, opts...)...)
	if err != nil {
		return nil, nil, err
	}
	return c, source, nil
}

// parseColumns turns "field" or "field=Label" entries into columns.
func parseColumns(specs []string) []datatable.Column {
	cols := make([]datatable.Column, 0, len(specs))
	for _, s := range specs {
		field, label, _ := strings.Cut(strings.TrimSpace(s), "=")
		if field == "" {
			continue
		}
		cols = append(cols, datatable.Column{Field: field, Label: label})
	}
	return cols
}
