package catalog

import (
	"bytes"
	"encoding/json"
)

// APIStory is a story record as returned by the upstream stories API.
type APIStory struct {
	ID                 Text   `json:"id"`
	Title              string `json:"title"`
	TitleSlug          string `json:"title_slug"`
	Summary            string `json:"summary"`
	PublishedDate      string `json:"published_date"`
	StoryMarkClearance string `json:"story_mark_clearance"`
	ImageURL           string `json:"image_url"`
	Categories         string `json:"categories"` // JSON-encoded list, e.g. `["US","UK"]`
	StatedLocation     string `json:"stated_location"`
	MediaURL           string `json:"media_url"`
}

// StoryResponse is the body of GET {endpoint}/{id}. The API answers either
// with {story, similar_stories} or with a bare story record; Wrapped tells
// which one was received.
type StoryResponse struct {
	Story          APIStory
	SimilarStories []APIStory
	Wrapped        bool
}

type storyEnvelope struct {
	Story          *APIStory  `json:"story"`
	SimilarStories []APIStory `json:"similar_stories"`
}

func (r *StoryResponse) UnmarshalJSON(data []byte) error {
	if bytes.Equal(bytes.TrimSpace(data), []byte("null")) {
		return errEmptyStory
	}

	var env storyEnvelope
	if err := json.Unmarshal(data, &env); err != nil {
		return err
	}
	if env.Story != nil {
		r.Story = *env.Story
		r.SimilarStories = env.SimilarStories
		r.Wrapped = true
		return nil
	}

	var bare APIStory
	if err := json.Unmarshal(data, &bare); err != nil {
		return err
	}
	r.Story = bare
	r.SimilarStories = nil
	r.Wrapped = false
	return nil
}

// Text holds a field the API sends either as a JSON string or a number.
type Text string

func (t *Text) UnmarshalJSON(data []byte) error {
	data = bytes.TrimSpace(data)
	if bytes.Equal(data, []byte("null")) {
		return nil
	}
	if len(data) > 0 && data[0] == '"' {
		var s string
		if err := json.Unmarshal(data, &s); err != nil {
			return err
		}
		*t = Text(s)
		return nil
	}

	var n json.Number
	if err := json.Unmarshal(data, &n); err != nil {
		return err
	}
	*t = Text(n.String())
	return nil
}
