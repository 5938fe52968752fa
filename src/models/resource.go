package models

import (
	"encoding/json"

	"cbs/src/types"
)

type Resource struct {
	ID          uint    `gorm:"primarykey" json:"id"`
	Title       string  `gorm:"size:255" json:"title,omitempty"`
	Slug        string  `gorm:"size:255;index" json:"slug,omitempty"`
	Description *string `json:"description,omitempty"`

	CategoryID *uint `gorm:"index" json:"category_id,omitempty"`
	LocationID *uint `gorm:"index" json:"location_id,omitempty"`

	// Legacy free-text fields, still used by the search filter.
	Category string `gorm:"size:100" json:"category,omitempty"`
	Location string `gorm:"size:255" json:"location,omitempty"`

	Capacity         int                  `gorm:"default:0" json:"capacity"`
	Status           types.ResourceStatus `gorm:"default:'draft';index" json:"status,omitempty"`
	RequiresApproval bool                 `gorm:"default:false" json:"requires_approval"`

	AvailabilityRules *string `json:"availability_rules,omitempty"`
	Images            *string `json:"images,omitempty"`

	// Owned exclusively by the review aggregation in common/reviews.go.
	RatingAvg   float64 `gorm:"default:0" json:"rating_avg"`
	RatingCount int     `gorm:"default:0" json:"rating_count"`

	CreatedBy uint `json:"created_by,omitempty"`

	Creator     *User     `gorm:"foreignKey:created_by" json:"-"`
	CategoryRef *Category `gorm:"foreignKey:category_id" json:"category_ref,omitempty"`
	LocationRef *Location `gorm:"foreignKey:location_id" json:"location_ref,omitempty"`
	Bookings    []Booking `gorm:"foreignKey:resource_id" json:"bookings,omitempty"`
	Reviews     []Review  `gorm:"foreignKey:resource_id" json:"reviews,omitempty"`

	types.Timestamps
}

func (r *Resource) GetAvailabilityRules() map[string]any {
	if r.AvailabilityRules == nil {
		return map[string]any{}
	}
	var rules map[string]any
	if err := json.Unmarshal([]byte(*r.AvailabilityRules), &rules); err != nil {
		return map[string]any{}
	}
	return rules
}

func (r *Resource) SetAvailabilityRules(rules map[string]any) {
	if len(rules) == 0 {
		r.AvailabilityRules = nil
		return
	}
	b, err := json.Marshal(rules)
	if err != nil {
		return
	}
	s := string(b)
	r.AvailabilityRules = &s
}

func (r *Resource) GetImages() []string {
	if r.Images == nil {
		return []string{}
	}
	var images []string
	if err := json.Unmarshal([]byte(*r.Images), &images); err != nil {
		return []string{}
	}
	return images
}

func (r *Resource) SetImages(images []string) {
	if len(images) == 0 {
		r.Images = nil
		return
	}
	b, err := json.Marshal(images)
	if err != nil {
		return
	}
	s := string(b)
	r.Images = &s
}
