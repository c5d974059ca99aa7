package handler

import (
	"context"
	"net/http"
	"sync"
	"time"
)

// Context defines the contract for request contexts.
// Use NewContext for the default implementation.
type Context interface {
	context.Context
	Request() *http.Request
	Param(key string) string
	SetValue(key, val any)
}

// baseContext delegates context.Context methods to the request's context.
// Values set with SetValue shadow values of the request context.
type baseContext struct {
	r      *http.Request
	mu     sync.RWMutex
	values map[any]any
}

// NewContext returns the default Context for r.
func NewContext(r *http.Request) Context {
	return &baseContext{r: r}
}

func (c *baseContext) Deadline() (time.Time, bool) {
	return c.r.Context().Deadline()
}

func (c *baseContext) Done() <-chan struct{} {
	return c.r.Context().Done()
}

func (c *baseContext) Err() error {
	return c.r.Context().Err()
}

func (c *baseContext) Value(key any) any {
	c.mu.RLock()
	v, ok := c.values[key]
	c.mu.RUnlock()
	if ok {
		return v
	}
	return c.r.Context().Value(key)
}

// Request returns the request being handled.
func (c *baseContext) Request() *http.Request {
	return c.r
}

// Param returns a path wildcard matched by http.ServeMux.
func (c *baseContext) Param(key string) string {
	return c.r.PathValue(key)
}

// SetValue stores a request-scoped value.
func (c *baseContext) SetValue(key, val any) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.values == nil {
		c.values = make(map[any]any)
	}
	c.values[key] = val
}
