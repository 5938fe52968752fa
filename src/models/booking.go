package models

import (
	"time"

	"cbs/src/types"
)

type Booking struct {
	ID         uint                `gorm:"primarykey" json:"id"`
	ResourceID uint                `gorm:"index:idx_resource_time,priority:1" json:"resource_id,omitempty"`
	UserID     uint                `gorm:"index" json:"user_id,omitempty"`
	StartDt    time.Time           `gorm:"index:idx_resource_time,priority:2" json:"start_dt,omitempty"`
	EndDt      time.Time           `gorm:"index:idx_resource_time,priority:3" json:"end_dt,omitempty"`
	Status     types.BookingStatus `gorm:"default:'pending';index" json:"status,omitempty"`

	Resource *Resource `gorm:"foreignKey:resource_id" json:"resource,omitempty"`
	User     *User     `gorm:"foreignKey:user_id" json:"user,omitempty"`
	Messages []Message `gorm:"foreignKey:booking_id" json:"messages,omitempty"`

	types.Timestamps
}
