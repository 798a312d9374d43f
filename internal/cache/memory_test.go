package cache_test

import (
	"context"
	"testing"
	"time"

	"newswire/internal/cache"
	"newswire/internal/story"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// clock is a settable time source shared by the cache tests.
type clock struct {
	t time.Time
}

func (c *clock) now() time.Time          { return c.t }
func (c *clock) advance(d time.Duration) { c.t = c.t.Add(d) }

func newClock() *clock {
	return &clock{t: time.Date(2024, 1, 1, 12, 0, 0, 0, time.UTC)}
}

func sampleStories() []story.Story {
	now := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)
	return []story.Story{
		{ID: 1, Title: "One", Regions: []string{"US"}, PublishedDate: now, LeadItem: story.NewLeadItem(1)},
		{ID: 2, Title: "Two", Regions: []string{}, PublishedDate: now, LeadItem: story.NewLeadItem(2)},
	}
}

func TestMemory_EmptyIsMiss(t *testing.T) {
	c := cache.NewMemory()

	_, ok := c.Read(context.Background())
	assert.False(t, ok)
}

func TestMemory_FreshHit(t *testing.T) {
	clk := newClock()
	c := cache.NewMemory(cache.WithClock(clk.now))
	ctx := context.Background()

	require.NoError(t, c.Write(ctx, sampleStories()))
	clk.advance(4 * time.Minute)

	got, ok := c.Read(ctx)
	require.True(t, ok)
	require.Len(t, got, 2)
	assert.EqualValues(t, 1, got[0].ID)
	assert.Equal(t, []string{"US"}, got[0].Regions)
}

func TestMemory_ExpiredIsMiss(t *testing.T) {
	clk := newClock()
	c := cache.NewMemory(cache.WithClock(clk.now))
	ctx := context.Background()

	require.NoError(t, c.Write(ctx, sampleStories()))
	clk.advance(5*time.Minute + time.Second)

	_, ok := c.Read(ctx)
	assert.False(t, ok, "entries older than five minutes must not be served")
}

func TestMemory_EmptyListIsMiss(t *testing.T) {
	clk := newClock()
	c := cache.NewMemory(cache.WithClock(clk.now))
	ctx := context.Background()

	require.NoError(t, c.Write(ctx, []story.Story{}))

	_, ok := c.Read(ctx)
	assert.False(t, ok, "an empty list is never a hit, even when fresh")
}

func TestMemory_WriteOverwrites(t *testing.T) {
	clk := newClock()
	c := cache.NewMemory(cache.WithClock(clk.now))
	ctx := context.Background()

	require.NoError(t, c.Write(ctx, sampleStories()))
	clk.advance(10 * time.Minute)
	require.NoError(t, c.Write(ctx, sampleStories()[:1]))

	got, ok := c.Read(ctx)
	require.True(t, ok, "a new write restarts the validity window")
	assert.Len(t, got, 1)
}

func TestMemory_CustomTTL(t *testing.T) {
	clk := newClock()
	c := cache.NewMemory(cache.WithClock(clk.now), cache.WithTTL(time.Minute))
	ctx := context.Background()

	require.NoError(t, c.Write(ctx, sampleStories()))
	clk.advance(2 * time.Minute)

	_, ok := c.Read(ctx)
	assert.False(t, ok)
}

func TestEntry_Fresh(t *testing.T) {
	now := time.Now()
	e := cache.NewEntry(sampleStories(), now)

	assert.True(t, e.Fresh(now, cache.DefaultTTL))
	assert.True(t, e.Fresh(now.Add(cache.DefaultTTL), cache.DefaultTTL))
	assert.False(t, e.Fresh(now.Add(cache.DefaultTTL+time.Millisecond), cache.DefaultTTL))
	assert.False(t, cache.NewEntry(nil, now).Fresh(now, cache.DefaultTTL))
}
