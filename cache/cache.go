// Package cache stores solved answers so repeated requests for the same grid
// and run-length policy skip the search.
//
// Backends:
//
//   - Null:   never stores anything (caching disabled).
//   - Memory: process-local map with per-entry expiry.
//   - Redis:  shared cache over github.com/redis/go-redis/v9.
//
// Keys are built by Key from a farm fingerprint of the grid text and the
// policy bounds; values are msgpack-encoded Entry records carrying the
// SHA-256 Digest of the grid, which readers check on every hit.
package cache

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"errors"
	"fmt"
	"time"

	farm "github.com/dgryski/go-farm"
	"github.com/shamaton/msgpack/v2"
)

// DefaultPrefix namespaces every key written by this package.
const DefaultPrefix = "crucible:answer"

// ErrCorruptEntry is returned by Decode for bytes that are not an Entry.
var ErrCorruptEntry = errors.New("cache: corrupt entry")

// Cache is the storage contract shared by all backends.
// Get reports a miss as (nil, false, nil).
type Cache interface {
	Get(ctx context.Context, key string) ([]byte, bool, error)
	Set(ctx context.Context, key string, data []byte, ttl time.Duration) error
	Delete(ctx context.Context, key string) error
	Close() error
}

// Entry is the cached outcome of one (grid, policy) search.
// Cost holds the decimal weight and is empty when the target is unreachable.
// Digest holds Digest(input) for the grid the entry was computed from; a
// reader must compare it before trusting the entry, since keys carry only
// a 64-bit fingerprint.
type Entry struct {
	Cost   string `msgpack:"cost"`
	Path   string `msgpack:"path"`
	Steps  int    `msgpack:"steps"`
	Digest string `msgpack:"digest"`
}

// Reachable reports whether the entry records a finite cost.
func (e Entry) Reachable() bool { return e.Cost != "" }

// Key returns prefix:fingerprint for the grid text under the given bounds.
// An empty prefix selects DefaultPrefix.
func Key(prefix, input string, minRun, maxRun int) string {
	if prefix == "" {
		prefix = DefaultPrefix
	}
	fp := farm.Fingerprint64([]byte(input))

	return fmt.Sprintf("%s:%d-%d:%016x", prefix, minRun, maxRun, fp)
}

// Digest returns the full SHA-256 of input as 64 hex characters.
func Digest(input string) string {
	sum := sha256.Sum256([]byte(input))
	return hex.EncodeToString(sum[:])
}

// Matches reports whether e was stored for the grid with the given digest.
func (e Entry) Matches(digest string) bool { return e.Digest == digest }

// Encode serializes e with msgpack.
func Encode(e Entry) ([]byte, error) {
	return msgpack.Marshal(e)
}

// Decode parses bytes produced by Encode.
func Decode(data []byte) (Entry, error) {
	var e Entry
	if err := msgpack.Unmarshal(data, &e); err != nil {
		return Entry{}, fmt.Errorf("%w: %v", ErrCorruptEntry, err)
	}

	return e, nil
}
