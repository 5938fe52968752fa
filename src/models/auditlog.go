package models

import (
	"cbs/src/types"

	"github.com/google/uuid"
)

type AuditLog struct {
	ID          uint       `gorm:"primarykey" json:"id"`
	RequestID   *uuid.UUID `gorm:"type:uuid" json:"request_id,omitempty"`
	AdminID     uint       `gorm:"index" json:"admin_id,omitempty"`
	Action      string     `gorm:"size:100" json:"action,omitempty"`
	TargetTable string     `gorm:"size:50" json:"target_table,omitempty"`
	TargetID    uint       `json:"target_id,omitempty"`
	Details     string     `json:"details,omitempty"`
	IPAddr      *string    `gorm:"size:45" json:"ip_addr,omitempty"`

	Admin *User `gorm:"foreignKey:admin_id" json:"-"`

	types.Timestamps
}
