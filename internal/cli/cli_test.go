package cli

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"sync"
	"sync/atomic"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dmitrymomot/applib/pkg/datatable"
)

var users = []map[string]any{
	{"id": 1, "name": "Eve", "address": map[string]any{"city": "Oslo"}},
	{"id": 2, "name": "Bob", "address": map[string]any{"city": "Paris"}},
	{"id": 3, "name": "Dave", "address": map[string]any{"city": "Lima"}},
	{"id": 4, "name": "Alice", "address": map[string]any{"city": "Hà Nội"}},
	{"id": 5, "name": "Carol", "address": map[string]any{"city": "Rome"}},
}

func execute(t *testing.T, args ...string) (string, error) {
	t.Helper()
	t.Setenv("API_BASE_URL", "")
	t.Setenv("LOG_LEVEL", "error")

	cmd := NewRootCmd()
	var out bytes.Buffer
	cmd.SetOut(&out)
	cmd.SetErr(&out)
	cmd.SetArgs(append(args, "--env-file", t.TempDir()+"/missing.env"))
	err := cmd.ExecuteContext(context.Background())
	return out.String(), err
}

func TestList_ClientSide(t *testing.T) {
	var calls atomic.Int32
	api := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		calls.Add(1)
		assert.Empty(t, r.URL.RawQuery, "client-side fetches the whole dataset")
		_ = json.NewEncoder(w).Encode(map[string]any{"data": users})
	}))
	defer api.Close()

	out, err := execute(t, "list", "--url", api.URL, "--rows", "2", "--page", "2", "--sort", "name", "--columns", "id,name=Name,address.city=City")
	require.NoError(t, err)
	assert.Equal(t, int32(1), calls.Load())
	assert.Contains(t, out, "Carol")
	assert.Contains(t, out, "Dave")
	assert.Contains(t, out, "Lima")
	assert.NotContains(t, out, "Alice")
	assert.Contains(t, out, "page 2/3, 5 rows")
}

func TestList_Search(t *testing.T) {
	api := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_ = json.NewEncoder(w).Encode(users)
	}))
	defer api.Close()

	out, err := execute(t, "list", "--url", api.URL, "--search", "HÀ NỘI")
	require.NoError(t, err)
	assert.Contains(t, out, "Alice")
	assert.NotContains(t, out, "Bob")
	assert.Contains(t, out, `page 1/1, 1 rows, search "HÀ NỘI"`)
}

func TestList_ServerSide(t *testing.T) {
	var (
		mu    sync.Mutex
		query url.Values
	)
	api := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		mu.Lock()
		query = r.URL.Query()
		mu.Unlock()
		assert.Equal(t, "/users", r.URL.Path)
		_ = json.NewEncoder(w).Encode(map[string]any{"items": users[:2], "total": 12})
	}))
	defer api.Close()

	out, err := execute(t, "list", "--url", api.URL, "--endpoint", "users", "--server-side",
		"--rows", "2", "--page", "3", "--search", "a", "--sort", "id", "--desc")
	require.NoError(t, err)

	mu.Lock()
	defer mu.Unlock()
	assert.Equal(t, "3", query.Get("page"))
	assert.Equal(t, "2", query.Get("limit"))
	assert.Equal(t, "a", query.Get("search"))
	assert.Equal(t, "id", query.Get("sort"))
	assert.Equal(t, "desc", query.Get("order"))
	assert.Contains(t, out, "Eve")
	assert.Contains(t, out, "page 3/6, 12 rows")
}

func TestList_Errors(t *testing.T) {
	t.Run("missing url", func(t *testing.T) {
		_, err := execute(t, "list")
		assert.ErrorIs(t, err, errNoURL)
	})

	t.Run("api failure", func(t *testing.T) {
		api := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			http.Error(w, `{"message":"maintenance"}`, http.StatusServiceUnavailable)
		}))
		defer api.Close()

		_, err := execute(t, "list", "--url", api.URL)
		require.Error(t, err)
		assert.Contains(t, err.Error(), "maintenance")
	})

	t.Run("unknown output", func(t *testing.T) {
		api := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			_ = json.NewEncoder(w).Encode(users)
		}))
		defer api.Close()

		_, err := execute(t, "list", "--url", api.URL, "-o", "yaml")
		assert.ErrorContains(t, err, `unknown output format "yaml"`)
	})
}

func TestRenderRecords(t *testing.T) {
	records := []datatable.Record{{"id": 1, "name": "Eve"}}
	state := datatable.State{
		ViewState:  datatable.ViewState{CurrentPage: 1, RowsPerPage: 5, SortKey: "name", SortDirection: datatable.Descending},
		TotalRows:  1,
		TotalPages: 1,
	}

	var buf bytes.Buffer
	require.NoError(t, renderRecords(&buf, records, state, "markdown"))
	assert.Regexp(t, `\|\s*1\s*\|\s*Eve\s*\|`, buf.String())
	assert.Contains(t, buf.String(), "▼")

	buf.Reset()
	require.NoError(t, renderRecords(&buf, records, state, "csv"))
	assert.Contains(t, buf.String(), "1,Eve")
	assert.NotContains(t, buf.String(), "page 1/1")

	buf.Reset()
	require.NoError(t, renderRecords(&buf, nil, datatable.State{ViewState: datatable.ViewState{CurrentPage: 1}, TotalPages: 1}, "table"))
	assert.True(t, strings.HasPrefix(buf.String(), "(0 rows)"))
}

func TestParseColumns(t *testing.T) {
	cols := parseColumns([]string{"id", " name=Full name", "", "=nope"})
	assert.Equal(t, []datatable.Column{{Field: "id"}, {Field: "name", Label: "Full name"}}, cols)
}

func TestNewRouter(t *testing.T) {
	c, err := datatable.New(datatable.StaticSource{{"name": "Eve"}})
	require.NoError(t, err)
	defer c.Close()
	require.NoError(t, c.Load(context.Background(), 1, ""))

	var healthy = true
	ready := func(context.Context) error {
		if healthy {
			return nil
		}
		return errors.New("down")
	}
	h := newRouter(c, ready, "Users", nil)

	probe := func(target string) *httptest.ResponseRecorder {
		rec := httptest.NewRecorder()
		h.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, target, nil))
		return rec
	}

	rec := probe("/")
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), "<title>Users</title>")
	assert.Contains(t, rec.Body.String(), "Eve")

	assert.Equal(t, "READY", probe("/healthz").Body.String())
	healthy = false
	assert.Equal(t, http.StatusServiceUnavailable, probe("/healthz").Code)
}

func TestVersion(t *testing.T) {
	out, err := execute(t, "version")
	require.NoError(t, err)
	assert.Equal(t, "tablectl dev\n", out)
}

func TestNewLogger(t *testing.T) {
	_, err := newLogger(Config{LogLevel: "loud", LogFormat: "text"})
	assert.Error(t, err)
	_, err = newLogger(Config{LogLevel: "debug", LogFormat: "xml"})
	assert.Error(t, err)
	l, err := newLogger(Config{LogLevel: "debug", LogFormat: "JSON"})
	require.NoError(t, err)
	assert.NotNil(t, l)
}

func TestNewRouter_RequestID(t *testing.T) {
	c, err := datatable.New(datatable.StaticSource{})
	require.NoError(t, err)
	defer c.Close()

	rec := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/healthz", nil)
	req.Header.Set("X-Request-ID", "probe-1")
	newRouter(c, nil, "Users", nil).ServeHTTP(rec, req)
	assert.Equal(t, "probe-1", rec.Header().Get("X-Request-ID"))
}
