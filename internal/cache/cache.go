package cache

import (
	"context"
	"encoding/json"
	"log"
	"time"

	"newswire/internal/story"
)

const (
	DefaultKey = "newswire_stories_cache"
	DefaultTTL = 5 * time.Minute
)

// Store holds a single list of stories together with the time it was written.
type Store interface {
	// Read returns the cached stories if an entry exists, is not older than
	// the TTL and holds at least one story.
	Read(ctx context.Context) ([]story.Story, bool)
	// Write replaces the entry with stories stamped with the current time.
	Write(ctx context.Context, stories []story.Story) error
}

// Entry is the encoded value kept under the cache key. Timestamp is unix milliseconds.
type Entry struct {
	Stories   []story.Story `json:"stories"`
	Timestamp int64         `json:"timestamp"`
}

func NewEntry(stories []story.Story, now time.Time) Entry {
	return Entry{Stories: stories, Timestamp: now.UnixMilli()}
}

// Fresh reports whether the entry can be served at now.
func (e Entry) Fresh(now time.Time, ttl time.Duration) bool {
	if len(e.Stories) == 0 {
		return false
	}
	return now.Sub(time.UnixMilli(e.Timestamp)) <= ttl
}

func encodeEntry(e Entry) ([]byte, error) {
	return json.Marshal(e)
}

func decodeEntry(data []byte) (Entry, error) {
	var e Entry
	err := json.Unmarshal(data, &e)
	return e, err
}

type Option func(*base)

func WithKey(key string) Option {
	return func(b *base) {
		if key != "" {
			b.key = key
		}
	}
}

func WithTTL(ttl time.Duration) Option {
	return func(b *base) {
		if ttl > 0 {
			b.ttl = ttl
		}
	}
}

// WithClock replaces time.Now, mostly for tests.
func WithClock(now func() time.Time) Option {
	return func(b *base) {
		if now != nil {
			b.now = now
		}
	}
}

func WithLogger(logger *log.Logger) Option {
	return func(b *base) {
		b.logger = logger
	}
}

// base carries the settings every backend shares.
type base struct {
	key    string
	ttl    time.Duration
	now    func() time.Time
	logger *log.Logger
}

func newBase(opts []Option) base {
	b := base{
		key: DefaultKey,
		ttl: DefaultTTL,
		now: time.Now,
	}
	for _, opt := range opts {
		opt(&b)
	}
	return b
}

func (b *base) logf(format string, args ...any) {
	if b.logger != nil {
		b.logger.Printf(format, args...)
	}
}

// serve decodes a stored value and applies the freshness rules.
func (b *base) serve(data []byte) ([]story.Story, bool) {
	e, err := decodeEntry(data)
	if err != nil {
		b.logf("cache: discarding undecodable entry %q: %v", b.key, err)
		return nil, false
	}
	if !e.Fresh(b.now(), b.ttl) {
		return nil, false
	}
	return e.Stories, true
}

func (b *base) encode(stories []story.Story) ([]byte, error) {
	return encodeEntry(NewEntry(stories, b.now()))
}
