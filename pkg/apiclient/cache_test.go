package apiclient

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestResponseCache(t *testing.T) {
	t.Run("evicts least recently used", func(t *testing.T) {
		c := newResponseCache(2, 0)
		c.put("a", []byte("1"))
		c.put("b", []byte("2"))
		_, _ = c.get("a")
		c.put("c", []byte("3"))

		_, ok := c.get("b")
		assert.False(t, ok)
		v, ok := c.get("a")
		assert.True(t, ok)
		assert.Equal(t, []byte("1"), v)
		assert.Equal(t, 2, c.size())
	})

	t.Run("expires entries after ttl", func(t *testing.T) {
		now := time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC)
		c := newResponseCache(4, time.Second)
		c.now = func() time.Time { return now }

		c.put("a", []byte("1"))
		_, ok := c.get("a")
		assert.True(t, ok)

		now = now.Add(2 * time.Second)
		_, ok = c.get("a")
		assert.False(t, ok)
		assert.Equal(t, 0, c.size())
	})

	t.Run("update refreshes value", func(t *testing.T) {
		c := newResponseCache(1, 0)
		c.put("a", []byte("1"))
		c.put("a", []byte("2"))
		v, _ := c.get("a")
		assert.Equal(t, []byte("2"), v)
	})
}
