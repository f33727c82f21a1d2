package cache

import (
	"context"
	"time"
)

// Null is a no-op cache that never stores anything.
type Null struct{}

// NewNull creates a null cache.
func NewNull() Cache { return Null{} }

// Get always returns a cache miss.
func (Null) Get(context.Context, string) ([]byte, bool, error) { return nil, false, nil }

// Set does nothing.
func (Null) Set(context.Context, string, []byte, time.Duration) error { return nil }

// Delete does nothing.
func (Null) Delete(context.Context, string) error { return nil }

// Close does nothing.
func (Null) Close() error { return nil }

var _ Cache = Null{}
