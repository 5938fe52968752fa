package models

import "cbs/src/types"

type Message struct {
	ID          uint   `gorm:"primarykey" json:"id"`
	BookingID   uint   `gorm:"index:idx_booking_created" json:"booking_id,omitempty"`
	SenderID    uint   `gorm:"index" json:"sender_id,omitempty"`
	RecipientID *uint  `gorm:"index" json:"recipient_id,omitempty"`
	Body        string `json:"body,omitempty"`
	IsHidden    bool   `gorm:"default:false" json:"is_hidden"`
	IsReported  bool   `gorm:"default:false" json:"is_reported"`

	Booking   *Booking `gorm:"foreignKey:booking_id" json:"booking,omitempty"`
	Sender    *User    `gorm:"foreignKey:sender_id" json:"sender,omitempty"`
	Recipient *User    `gorm:"foreignKey:recipient_id" json:"recipient,omitempty"`

	types.Timestamps
}
