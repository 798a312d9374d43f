package story

import "time"

type Clearance string

const (
	ClearanceLicensed   Clearance = "LICENSED"
	ClearanceRestricted Clearance = "RESTRICTED"
	ClearanceCleared    Clearance = "CLEARED"
)

const ResourceTypeVideo = "video"

type Story struct {
	ID                    int64      `json:"id" bson:"id"`
	Title                 string     `json:"title" bson:"title"`
	Slug                  string     `json:"slug" bson:"slug"`
	Summary               string     `json:"summary" bson:"summary"`
	PublishedDate         time.Time  `json:"published_date" bson:"publishedDate"`
	UpdatedAt             time.Time  `json:"updated_at" bson:"updatedAt"`
	EditorialUpdatedAt    time.Time  `json:"editorial_updated_at" bson:"editorialUpdatedAt"`
	ClearanceMark         Clearance  `json:"clearance_mark" bson:"clearanceMark"`
	LeadImage             *LeadImage `json:"lead_image,omitempty" bson:"leadImage,omitempty"`
	Regions               []string   `json:"regions" bson:"regions"`
	StatedLocation        string     `json:"stated_location" bson:"statedLocation"`
	MediaURL              string     `json:"media_url" bson:"mediaUrl"`
	InTrendingCollection  bool       `json:"in_trending_collection" bson:"inTrendingCollection"`
	VideoProvidingPartner bool       `json:"video_providing_partner" bson:"videoProvidingPartner"`
	CollectionHeadline    string     `json:"collection_headline" bson:"collectionHeadline"`
	CollectionSummaryHTML string     `json:"collection_summary_html" bson:"collectionSummaryHtml"`
	LeadItem              LeadItem   `json:"lead_item" bson:"leadItem"`
}

type LeadImage struct {
	URL      string `json:"url" bson:"url"`
	Filename string `json:"filename" bson:"filename"`
}

// LeadItem is the primary media asset of a story; its ID mirrors the story ID.
type LeadItem struct {
	ID           int64       `json:"id" bson:"id"`
	ResourceType string      `json:"resource_type" bson:"resourceType"`
	Type         string      `json:"type" bson:"type"`
	MediaButton  MediaButton `json:"media_button" bson:"mediaButton"`
}

type MediaButton struct {
	FirstTime                   bool   `json:"first_time" bson:"firstTime"`
	AlreadyDownloadedByRelative bool   `json:"already_downloaded_by_relative" bson:"alreadyDownloadedByRelative"`
	Action                      string `json:"action" bson:"action"`
}

// NewLeadItem returns the video lead item every story carries.
func NewLeadItem(id int64) LeadItem {
	return LeadItem{
		ID:           id,
		ResourceType: ResourceTypeVideo,
		Type:         ResourceTypeVideo,
		MediaButton: MediaButton{
			FirstTime:                   false,
			AlreadyDownloadedByRelative: false,
			Action:                      "preview",
		},
	}
}
