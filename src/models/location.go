package models

import "cbs/src/types"

type Location struct {
	ID       uint    `gorm:"primarykey" json:"id"`
	Name     string  `gorm:"uniqueIndex;size:255" json:"name,omitempty"`
	Building *string `gorm:"size:255" json:"building,omitempty"`
	Floor    *string `gorm:"size:50" json:"floor,omitempty"`
	IsActive bool    `gorm:"default:true" json:"is_active"`

	Resources []Resource `gorm:"foreignKey:location_id" json:"resources,omitempty"`

	types.Timestamps
}
