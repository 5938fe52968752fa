package models

import "cbs/src/types"

type User struct {
	ID           uint           `gorm:"primarykey" json:"id"`
	Email        string         `gorm:"uniqueIndex;size:255" json:"email,omitempty"`
	PasswordHash string         `gorm:"size:255" json:"-"`
	Role         types.UserRole `gorm:"default:'student'" json:"role,omitempty"`

	Resources []Resource `gorm:"foreignKey:created_by" json:"resources,omitempty"`
	Bookings  []Booking  `gorm:"foreignKey:user_id" json:"bookings,omitempty"`
	Reviews   []Review   `gorm:"foreignKey:user_id" json:"reviews,omitempty"`

	types.Timestamps
}
