package models

import "cbs/src/types"

type Category struct {
	ID          uint    `gorm:"primarykey" json:"id"`
	Name        string  `gorm:"uniqueIndex;size:100" json:"name,omitempty"`
	Description *string `json:"description,omitempty"`
	IsActive    bool    `gorm:"default:true" json:"is_active"`

	Resources []Resource `gorm:"foreignKey:category_id" json:"resources,omitempty"`

	types.Timestamps
}
