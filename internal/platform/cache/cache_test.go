package cache

import (
	"context"
	"net/http"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGetMissingKey(t *testing.T) {
	c := New(time.Minute)

	_, _, ok := c.Get("list:journals?limit=10")
	assert.False(t, ok)
}

func TestSetAndGet(t *testing.T) {
	c := New(time.Minute)
	body := []byte(`{"journals":[]}`)

	c.Set("list:journals?limit=10", http.StatusOK, body)

	status, got, ok := c.Get("list:journals?limit=10")
	require.True(t, ok)
	assert.Equal(t, http.StatusOK, status)
	assert.Equal(t, body, got)
}

func TestExpiredEntryIsAMiss(t *testing.T) {
	c := New(-time.Second)

	c.Set("list:journals?limit=10", http.StatusOK, []byte(`{}`))

	_, _, ok := c.Get("list:journals?limit=10")
	assert.False(t, ok)
}

func TestInvalidateDropsByPrefix(t *testing.T) {
	c := New(time.Minute)
	c.Set("list:journals?limit=10", http.StatusOK, []byte(`{}`))
	c.Set("list:journals?limit=10&nextToken=abc", http.StatusOK, []byte(`{}`))
	c.Set("list:orders?limit=10", http.StatusOK, []byte(`{}`))

	c.Invalidate(context.Background(), "list:journals")

	_, _, ok := c.Get("list:journals?limit=10")
	assert.False(t, ok)
	_, _, ok = c.Get("list:journals?limit=10&nextToken=abc")
	assert.False(t, ok)
	_, _, ok = c.Get("list:orders?limit=10")
	assert.True(t, ok, "other route keys survive")
}
