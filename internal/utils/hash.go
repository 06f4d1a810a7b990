package utils

import (
	"crypto/hmac"
	"crypto/sha256"
	"encoding/hex"
	"hash"
	"sync"
)

// Hasher provides keyed HMAC-SHA256 hashing backed by a pool of reusable
// hash instances. It is used to derive storage keys from session IDs so
// raw identifiers never reach the session store.
type Hasher struct {
	pool sync.Pool
}

// NewHasher returns a Hasher whose pooled HMAC instances are all keyed with
// hashKey.
//
// Purpose:
//   - Avoid repeated allocations of new hash.Hash instances
//   - Reduce GC pressure on the per-request session lookup path
func NewHasher(hashKey string) *Hasher {
	key := []byte(hashKey)
	return &Hasher{
		pool: sync.Pool{
			New: func() any {
				return hmac.New(sha256.New, key)
			},
		},
	}
}

// Hash computes an HMAC-SHA256 digest over data using a pooled hasher.
//
// Behavior:
//   - Retrieves a hash.Hash instance from the pool
//   - Resets it, writes the data, computes the sum
//   - Resets again and returns it to the pool
func (h *Hasher) Hash(data []byte) []byte {
	hasher := h.pool.Get().(hash.Hash)
	hasher.Reset()

	hasher.Write(data)
	sum := hasher.Sum(nil)

	hasher.Reset()
	h.pool.Put(hasher)

	return sum
}

// HashString returns the hex-encoded digest of s.
func (h *Hasher) HashString(s string) string {
	return hex.EncodeToString(h.Hash([]byte(s)))
}

// DeriveKey derives a sub-key of secret bound to label. Keys derived for
// different labels are unrelated, so material signed under one label never
// verifies under another.
func DeriveKey(secret, label string) []byte {
	return hmacSum([]byte(label), secret)
}

// hmacSum is a one-off HMAC-SHA256 of data under hashKey.
func hmacSum(data []byte, hashKey string) []byte {
	hasher := hmac.New(sha256.New, []byte(hashKey))
	hasher.Write(data)
	return hasher.Sum(nil)
}
