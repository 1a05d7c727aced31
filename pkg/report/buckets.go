package report

import (
	"bytes"
	"encoding/json"
	"sort"
)

// Bucket keys with fixed meaning. Any other key is a tag name whose
// bucket holds the disallowed parents that tag was found under.
const (
	// KeyStrings collects whole fragments that failed validation.
	KeyStrings = "strings"
	// KeyInvalidTags collects tag names not in the grammar at all.
	KeyInvalidTags = "invalidTags"
)

// Buckets maps an error key to a deduplicated set of offending values.
// Values keep first-seen order so output is deterministic. A Buckets
// value is built during one validation pass and never shared between
// passes.
type Buckets struct {
	keys   []string
	values map[string][]string
	seen   map[string]map[string]bool
}

// NewBuckets returns an empty bucket map.
func NewBuckets() *Buckets {
	return &Buckets{
		values: make(map[string][]string),
		seen:   make(map[string]map[string]bool),
	}
}

// Ensure records the key with no values, so it appears in output even
// when nothing lands in it.
func (b *Buckets) Ensure(key string) {
	if _, ok := b.values[key]; !ok {
		b.keys = append(b.keys, key)
		b.values[key] = nil
		b.seen[key] = make(map[string]bool)
	}
}

// Add records value under key, dropping duplicates.
func (b *Buckets) Add(key, value string) {
	b.Ensure(key)
	if b.seen[key][value] {
		return
	}
	b.seen[key][value] = true
	b.values[key] = append(b.values[key], value)
}

// Has reports whether the key exists (even if empty).
func (b *Buckets) Has(key string) bool {
	_, ok := b.values[key]
	return ok
}

// Contains reports whether value was recorded under key.
func (b *Buckets) Contains(key, value string) bool {
	return b.seen[key][value]
}

// Keys returns every key in first-seen order.
func (b *Buckets) Keys() []string {
	out := make([]string, len(b.keys))
	copy(out, b.keys)
	return out
}

// Values returns the recorded values for key in first-seen order.
func (b *Buckets) Values(key string) []string {
	vals := b.values[key]
	out := make([]string, len(vals))
	copy(out, vals)
	return out
}

// Empty reports whether no bucket holds any value.
func (b *Buckets) Empty() bool {
	for _, vals := range b.values {
		if len(vals) > 0 {
			return false
		}
	}
	return true
}

// Map returns a plain map copy, for comparisons in tests and callers
// that want to range freely.
func (b *Buckets) Map() map[string][]string {
	out := make(map[string][]string, len(b.values))
	for key := range b.values {
		out[key] = b.Values(key)
	}
	return out
}

// MarshalJSON renders keys sorted and values in first-seen order.
func (b *Buckets) MarshalJSON() ([]byte, error) {
	keys := b.Keys()
	sort.Strings(keys)

	var buf bytes.Buffer
	buf.WriteByte('{')
	for i, key := range keys {
		if i > 0 {
			buf.WriteByte(',')
		}
		k, err := json.Marshal(key)
		if err != nil {
			return nil, err
		}
		buf.Write(k)
		buf.WriteByte(':')
		vals := b.values[key]
		if vals == nil {
			vals = []string{}
		}
		v, err := json.Marshal(vals)
		if err != nil {
			return nil, err
		}
		buf.Write(v)
	}
	buf.WriteByte('}')
	return buf.Bytes(), nil
}
