package datatable

import (
	"bytes"
	"context"
	"encoding/json"
	"slices"
	"strconv"

	"github.com/dmitrymomot/applib/pkg/apiclient"
)

// URLBuilder builds the request URL for a page spec, replacing the default
// page/limit/search/sort/order query parameters.
type URLBuilder func(spec PageSpec) string

// Formatter extracts records from a decoded response body. It replaces the
// default array detection; totals are still read from a top-level "total".
type Formatter func(body any) ([]Record, error)

// HTTPSource fetches records over HTTP through an apiclient.Client.
//
// Whole-dataset specs request the endpoint as is. Paged specs add
// page, limit and, when set, search, sort and order query parameters.
// The response may be a JSON array of records or an object whose "data"
// field (or first array field) holds them and whose "total" field holds
// the row count.
type HTTPSource struct {
	client   *apiclient.Client
	endpoint string
	buildURL URLBuilder
	format   Formatter
	opts     []apiclient.RequestOption
}

// HTTPSourceOption configures an HTTPSource.
type HTTPSourceOption func(*HTTPSource)

// WithURLBuilder overrides how paged request URLs are built.
func WithURLBuilder(fn URLBuilder) HTTPSourceOption {
	return func(s *HTTPSource) { s.buildURL = fn }
}

// WithFormatter overrides how records are extracted from a response.
func WithFormatter(fn Formatter) HTTPSourceOption {
	return func(s *HTTPSource) { s.format = fn }
}

// WithRequestOptions adds apiclient request options to every fetch.
func WithRequestOptions(opts ...apiclient.RequestOption) HTTPSourceOption {
	return func(s *HTTPSource) { s.opts = append(s.opts, opts...) }
}

// NewHTTPSource returns a Source reading endpoint through client.
func NewHTTPSource(client *apiclient.Client, endpoint string, opts ...HTTPSourceOption) *HTTPSource {
	s := &HTTPSource{client: client, endpoint: endpoint}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Fetch implements Source.
func (s *HTTPSource) Fetch(ctx context.Context, spec PageSpec) (Page, error) {
	endpoint := s.endpoint
	opts := slices.Clone(s.opts)

	if !spec.All() {
		if s.buildURL != nil {
			endpoint = s.buildURL(spec)
		} else {
			opts = append(opts, pageParams(spec)...)
		}
	}

	var raw json.RawMessage
	if err := s.client.Get(ctx, endpoint, &raw, opts...); err != nil {
		return Page{}, err
	}

	target := s.client.URL(endpoint)
	body, err := decodeBody(raw)
	if err != nil {
		return Page{}, &apiclient.ParseError{URL: target, Err: err}
	}

	var records []Record
	if s.format != nil {
		records, err = s.format(body)
	} else {
		records, err = extractRecords(body)
	}
	if err != nil {
		return Page{}, &apiclient.ParseError{URL: target, Err: err}
	}

	total := totalOf(body)
	if spec.All() || total <= 0 {
		total = len(records)
	}
	return Page{Records: records, Total: total}, nil
}

func pageParams(spec PageSpec) []apiclient.RequestOption {
	params := []apiclient.RequestOption{
		apiclient.WithParam("page", strconv.Itoa(max(spec.Page, 1))),
		apiclient.WithParam("limit", strconv.Itoa(spec.Limit)),
	}
	if spec.Search != "" {
		params = append(params, apiclient.WithParam("search", spec.Search))
	}
	if spec.SortKey != "" {
		params = append(params,
			apiclient.WithParam("sort", spec.SortKey),
			apiclient.WithParam("order", string(spec.SortDirection)),
		)
	}
	return params
}

func decodeBody(raw json.RawMessage) (any, error) {
	if len(bytes.TrimSpace(raw)) == 0 {
		return []any{}, nil
	}
	dec := json.NewDecoder(bytes.NewReader(raw))
	dec.UseNumber()
	var body any
	if err := dec.Decode(&body); err != nil {
		return nil, err
	}
	return body, nil
}

// preferredKeys are checked before falling back to the alphabetically
// first array field of an object body.
var preferredKeys = []string{"data", "items", "results", "records", "rows"}

func extractRecords(body any) ([]Record, error) {
	switch b := body.(type) {
	case []any:
		return toRecords(b), nil
	case map[string]any:
		for _, key := range preferredKeys {
			if arr, ok := b[key].([]any); ok {
				return toRecords(arr), nil
			}
		}
		keys := make([]string, 0, len(b))
		for k := range b {
			keys = append(keys, k)
		}
		slices.Sort(keys)
		for _, k := range keys {
			if arr, ok := b[k].([]any); ok {
				return toRecords(arr), nil
			}
		}
		return []Record{}, nil
	default:
		return nil, ErrUnexpectedPayload
	}
}

// toRecords converts array items to records; scalar items are wrapped
// under the "value" key.
func toRecords(items []any) []Record {
	out := make([]Record, 0, len(items))
	for _, item := range items {
		if m, ok := item.(map[string]any); ok {
			out = append(out, Record(m))
			continue
		}
		out = append(out, Record{"value": item})
	}
	return out
}

func totalOf(body any) int {
	m, ok := body.(map[string]any)
	if !ok {
		return 0
	}
	switch t := m["total"].(type) {
	case json.Number:
		if n, err := t.Int64(); err == nil {
			return int(n)
		}
		if f, err := t.Float64(); err == nil {
			return int(f)
		}
		return 0
	case float64:
		return int(t)
	}
	return 0
}
