package datatable_test

import (
	"encoding/json"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"github.com/dmitrymomot/applib/pkg/datatable"
)

func TestCompare(t *testing.T) {
	now := time.Now()
	tests := []struct {
		name string
		a, b any
		want int
	}{
		{"ints", 2, 10, -1},
		{"mixed numeric types", int64(3), 2.5, 1},
		{"json numbers", json.Number("10"), json.Number("9"), 1},
		{"json number and int", json.Number("4"), 4, 0},
		{"strings are lexical", "10", "9", -1},
		{"bools", false, true, -1},
		{"times", now, now.Add(time.Second), -1},
		{"nil first", nil, "a", -1},
		{"numbers before strings", 100, "1", -1},
		{"equal strings", "x", "x", 0},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, datatable.Compare(tt.a, tt.b))
			assert.Equal(t, -tt.want, datatable.Compare(tt.b, tt.a))
		})
	}
}

func TestLookup(t *testing.T) {
	r := datatable.Record{
		"name":      "John",
		"user.name": "flat",
		"address":   map[string]any{"city": "Hanoi", "geo": map[string]any{"lat": 21}},
	}
	assert.Equal(t, "John", datatable.Lookup(r, "name"))
	assert.Equal(t, "flat", datatable.Lookup(r, "user.name"))
	assert.Equal(t, "Hanoi", datatable.Lookup(r, "address.city"))
	assert.Equal(t, 21, datatable.Lookup(r, "address.geo.lat"))
	assert.Nil(t, datatable.Lookup(r, "address.zip"))
	assert.Nil(t, datatable.Lookup(r, "name.first"))
	assert.Nil(t, datatable.Lookup(r, "missing"))
}

func TestSortRecords(t *testing.T) {
	records := []datatable.Record{
		{"name": "b", "city": map[string]any{"name": "Paris"}},
		{"name": "a", "city": map[string]any{"name": "Hanoi"}},
		{"name": "c", "city": map[string]any{"name": "Paris"}},
		{"name": "d"},
	}

	datatable.SortRecords(records, "city.name", datatable.Ascending)
	assert.Equal(t, []string{"d", "a", "b", "c"}, names(records))

	datatable.SortRecords(records, "city.name", datatable.Descending)
	assert.Equal(t, []string{"b", "c", "a", "d"}, names(records))
}

func TestDirectionToggle(t *testing.T) {
	assert.Equal(t, datatable.Descending, datatable.Ascending.Toggle())
	assert.Equal(t, datatable.Ascending, datatable.Descending.Toggle())
}
