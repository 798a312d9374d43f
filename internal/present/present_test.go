package present

import (
	"bytes"
	"testing"
	"time"

	"newswire/internal/story"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFormatDate(t *testing.T) {
	assert.Equal(t, "January 5, 2024", FormatDate(time.Date(2024, 1, 5, 10, 0, 0, 0, time.UTC)))
	assert.Equal(t, "No date available", FormatDate(time.Time{}))
}

func TestFormatTimeAgo(t *testing.T) {
	now := time.Date(2024, 1, 10, 12, 0, 0, 0, time.UTC)

	cases := []struct {
		ago  time.Duration
		want string
	}{
		{30 * time.Second, "30 seconds ago"},
		{time.Minute, "1 minute ago"},
		{5 * time.Minute, "5 minutes ago"},
		{time.Hour, "1 hour ago"},
		{3 * time.Hour, "3 hours ago"},
		{24 * time.Hour, "1 day ago"},
		{72 * time.Hour, "3 days ago"},
	}
	for _, tc := range cases {
		assert.Equal(t, tc.want, FormatTimeAgo(now.Add(-tc.ago), now))
	}

	assert.Equal(t, "Unknown time", FormatTimeAgo(time.Time{}, now))
}

func TestTruncate(t *testing.T) {
	assert.Equal(t, "short", Truncate("short", 10))
	assert.Equal(t, "exact", Truncate("exact", 5))
	assert.Equal(t, "hello...", Truncate("hello world", 5))
	assert.Equal(t, "héllo...", Truncate("héllo wörld", 5))
	assert.Equal(t, "", Truncate("", 3))
}

func TestBadgeLabel(t *testing.T) {
	assert.Equal(t, "LICENSED", BadgeLabel(story.ClearanceLicensed))
	assert.Equal(t, "RESTRICTED", BadgeLabel(story.ClearanceRestricted))
	assert.Equal(t, "CLEARED", BadgeLabel(story.ClearanceCleared))
	assert.Equal(t, "PUBLIC", BadgeLabel("SOMETHING_ELSE"))

	assert.Contains(t, Badge(story.ClearanceRestricted), "RESTRICTED")
}

func TestWriteStoryDetail(t *testing.T) {
	now := time.Now()
	s := story.MockDefault(now)

	var buf bytes.Buffer
	require.NoError(t, WriteStoryDetail(&buf, s, now))

	out := buf.String()
	assert.Contains(t, out, "Example Story - API Unavailable")
	assert.Contains(t, out, "Location: Internet")
	assert.Contains(t, out, "Regions: Global")

	buf.Reset()
	require.NoError(t, WriteStoryLine(&buf, s, now))
	assert.Contains(t, buf.String(), "[12345]")
}
