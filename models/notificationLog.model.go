package models

import (
	"time"

	"gorm.io/datatypes"
)

// NotificationLog records one delivery attempt per channel. The ticket row is the
// source of truth; this table only exists so lost notifications can be audited.
type NotificationLog struct {
	ID        uint           `json:"id" gorm:"primaryKey"`
	EventID   string         `json:"eventId" gorm:"index"`
	Channel   string         `json:"channel"`
	Kind      string         `json:"kind"`
	TicketID  uint           `json:"ticketId" gorm:"index"`
	Success   bool           `json:"success"`
	Error     string         `json:"error"`
	Payload   datatypes.JSON `json:"payload"`
	CreatedAt time.Time      `json:"createdAt"`
}
