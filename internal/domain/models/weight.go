package models

import "time"

// Well-known metadata keys read by the analytics services. All other keys are
// carried opaquely for the capture layer.
const (
	MetadataKeyFeedType  = "feed_type"
	MetadataKeyFeedBrand = "feed_brand"
)

// WeightRecord is a single weight measurement for an animal.
type WeightRecord struct {
	ID        string            `bson:"_id" json:"id"`
	TenantID  string            `bson:"tenant_id" json:"tenant_id"`
	AnimalID  string            `bson:"animal_id" json:"animal_id"`
	Timestamp time.Time         `bson:"timestamp" json:"timestamp"`
	WeightKg  float64           `bson:"weight_kg" json:"weight_kg"`
	Metadata  map[string]string `bson:"metadata,omitempty" json:"metadata,omitempty"`
}

// FeedType returns the feed type metadata value, or "" when not captured.
func (r WeightRecord) FeedType() string {
	return r.Metadata[MetadataKeyFeedType]
}

// FeedBrand returns the feed brand metadata value, or "" when not captured.
func (r WeightRecord) FeedBrand() string {
	return r.Metadata[MetadataKeyFeedBrand]
}

// DateRange bounds a transaction query, inclusive on both ends.
type DateRange struct {
	Start time.Time
	End   time.Time
}
