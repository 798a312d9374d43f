package catalog

import (
	"encoding/json"
	"fmt"
	"strconv"
	"strings"
	"time"

	"newswire/internal/story"
)

// CategoryMode decides what Normalize does with a categories field that is
// not a valid JSON list of strings.
type CategoryMode int

const (
	// CategoriesLenient degrades malformed categories to an empty region list.
	CategoriesLenient CategoryMode = iota
	// CategoriesStrict rejects the record with a *DecodeError.
	CategoriesStrict
)

func ParseCategoryMode(s string) (CategoryMode, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "", "lenient":
		return CategoriesLenient, nil
	case "strict":
		return CategoriesStrict, nil
	default:
		return CategoriesLenient, fmt.Errorf("unknown category mode %q (valid: lenient, strict)", s)
	}
}

func (m CategoryMode) String() string {
	if m == CategoriesStrict {
		return "strict"
	}
	return "lenient"
}

// Normalize maps an upstream record onto the internal story shape. Missing
// dates are filled with now, so the result always carries all three.
func Normalize(a APIStory, now time.Time, mode CategoryMode) (story.Story, error) {
	id := parseID(string(a.ID))

	regions, err := parseCategories(a.Categories)
	if err != nil {
		if mode == CategoriesStrict {
			return story.Story{}, &DecodeError{What: fmt.Sprintf("categories of story %q", a.ID), Err: err}
		}
		regions = []string{}
	}

	published := parseDate(a.PublishedDate, now)

	s := story.Story{
		ID:                 id,
		Title:              orDefault(a.Title, "Untitled Story"),
		Slug:               orDefault(a.TitleSlug, "untitled"),
		Summary:            a.Summary,
		PublishedDate:      published,
		UpdatedAt:          published,
		EditorialUpdatedAt: published,
		ClearanceMark:      story.Clearance(orDefault(a.StoryMarkClearance, string(story.ClearanceLicensed))),
		Regions:            regions,
		StatedLocation:     a.StatedLocation,
		MediaURL:           a.MediaURL,
		LeadItem:           story.NewLeadItem(id),
	}

	if a.ImageURL != "" {
		s.LeadImage = &story.LeadImage{
			URL:      a.ImageURL,
			Filename: orDefault(a.Title, "image"),
		}
	}

	return s, nil
}

// NormalizeAll maps every record, stopping at the first failure.
func NormalizeAll(in []APIStory, now time.Time, mode CategoryMode) ([]story.Story, error) {
	out := make([]story.Story, 0, len(in))
	for _, a := range in {
		s, err := Normalize(a, now, mode)
		if err != nil {
			return nil, err
		}
		out = append(out, s)
	}
	return out, nil
}

func orDefault(value, fallback string) string {
	if value == "" {
		return fallback
	}
	return value
}

func parseID(value string) int64 {
	id, err := strconv.ParseInt(strings.TrimSpace(value), 10, 64)
	if err != nil {
		return 0
	}
	return id
}

// parseCategories decodes a JSON-encoded list such as `["US","UK"]`.
// An empty field is an empty list, not an error.
func parseCategories(value string) ([]string, error) {
	if strings.TrimSpace(value) == "" {
		return []string{}, nil
	}

	var regions []string
	if err := json.Unmarshal([]byte(value), &regions); err != nil {
		return nil, err
	}
	if regions == nil {
		regions = []string{}
	}
	return regions, nil
}

var dateLayouts = []string{
	time.RFC3339Nano,
	time.RFC3339,
	"2006-01-02T15:04:05",
	"2006-01-02 15:04:05",
	"2006-01-02",
}

// parseDate example "2024-01-01T00:00:00Z"; empty or unparseable values yield fallback.
func parseDate(value string, fallback time.Time) time.Time {
	value = strings.TrimSpace(value)
	if value == "" {
		return fallback
	}
	for _, layout := range dateLayouts {
		if t, err := time.Parse(layout, value); err == nil {
			return t
		}
	}
	return fallback
}
