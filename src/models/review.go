package models

import "cbs/src/types"

type Review struct {
	ID         uint   `gorm:"primarykey" json:"id"`
	ResourceID uint   `gorm:"uniqueIndex:uq_resource_user_review,priority:1" json:"resource_id,omitempty"`
	UserID     uint   `gorm:"uniqueIndex:uq_resource_user_review,priority:2" json:"user_id,omitempty"`
	Rating     int    `json:"rating,omitempty"`
	Comment    string `json:"comment,omitempty"`
	IsHidden   bool   `gorm:"default:false" json:"is_hidden"`
	IsReported bool   `gorm:"default:false" json:"is_reported"`

	Resource *Resource `gorm:"foreignKey:resource_id" json:"resource,omitempty"`
	User     *User     `gorm:"foreignKey:user_id" json:"user,omitempty"`

	types.Timestamps
}
