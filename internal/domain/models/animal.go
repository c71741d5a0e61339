package models

// AnimalProfile is the projection of an animal used by the analytics services.
// TargetWeightKg is nil when no sale target has been configured.
type AnimalProfile struct {
	AnimalID       string   `bson:"_id" json:"animal_id"`
	TenantID       string   `bson:"tenant_id" json:"tenant_id"`
	TagNumber      string   `bson:"tag_number,omitempty" json:"tag_number,omitempty"`
	Species        string   `bson:"species,omitempty" json:"species,omitempty"`
	GroupID        string   `bson:"group_id,omitempty" json:"group_id,omitempty"`
	TargetWeightKg *float64 `bson:"target_weight_kg,omitempty" json:"target_weight_kg,omitempty"`
}

// AnimalFilters narrows a ready-to-sell query. Zero values mean "no filter".
type AnimalFilters struct {
	Species            string
	Group              string
	MinProgressPercent float64
}
