package models

import "time"

type SupportMessage struct {
	ID         uint      `json:"id" gorm:"primaryKey"`
	TicketID   uint      `json:"ticketId" gorm:"not null;index"`
	UserID     *uint     `json:"userId"` // nil for guest/anonymous authors
	Body       string    `json:"body" gorm:"type:text;not null"`
	IsAdmin    bool      `json:"isAdmin" gorm:"default:false"`
	AuthorName string    `json:"authorName"` // display name when there is no user reference
	CreatedAt  time.Time `json:"createdAt"`
}
