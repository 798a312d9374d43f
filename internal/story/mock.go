package story

import (
	"fmt"
	"time"
)

const (
	DefaultMockID = 12345

	// SimilarMockOffset and TopMockOffset keep placeholder ids clear of each other.
	SimilarMockOffset = 100000
	TopMockOffset     = 200000

	SimilarMockCount = 5
	TopMockCount     = 10
)

// Mock builds a placeholder story used when live data is unavailable.
// The id is kept as given, including 0.
func Mock(id int64, now time.Time) Story {
	return Story{
		ID:                 id,
		Title:              "Example Story - API Unavailable",
		Slug:               "example-story",
		Summary:            "This is a placeholder story shown when the API is unavailable. Please try again later or check your connection.",
		PublishedDate:      now,
		UpdatedAt:          now,
		EditorialUpdatedAt: now,
		ClearanceMark:      ClearanceLicensed,
		LeadImage: &LeadImage{
			URL:      "https://via.placeholder.com/800x450?text=API+Unavailable",
			Filename: "Placeholder",
		},
		Regions:        []string{"Global"},
		StatedLocation: "Internet",
		LeadItem:       NewLeadItem(id),
	}
}

// MockDefault is the placeholder for requests that carry no story id.
func MockDefault(now time.Time) Story {
	return Mock(DefaultMockID, now)
}

// MockResult returns a main placeholder story and its placeholder similar stories.
func MockResult(id int64, now time.Time) (Story, []Story) {
	similar := make([]Story, 0, SimilarMockCount)
	for i := 0; i < SimilarMockCount; i++ {
		s := Mock(int64(SimilarMockOffset+i), now)
		s.Title = fmt.Sprintf("Similar Story Example %d", i+1)
		similar = append(similar, s)
	}
	return Mock(id, now), similar
}

func MockTopStories(now time.Time) []Story {
	out := make([]Story, 0, TopMockCount)
	for i := 0; i < TopMockCount; i++ {
		out = append(out, Mock(int64(TopMockOffset+i), now))
	}
	return out
}
