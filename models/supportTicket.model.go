package models

import "time"

type TicketStatus string

const (
	StatusPending    TicketStatus = "pending"
	StatusInProgress TicketStatus = "in_progress"
	StatusResolved   TicketStatus = "resolved"
	StatusClosed     TicketStatus = "closed"
)

func (s TicketStatus) Valid() bool {
	switch s {
	case StatusPending, StatusInProgress, StatusResolved, StatusClosed:
		return true
	}
	return false
}

type TicketPriority string

const (
	PriorityLow    TicketPriority = "low"
	PriorityNormal TicketPriority = "normal"
	PriorityHigh   TicketPriority = "high"
	PriorityUrgent TicketPriority = "urgent"
)

func (p TicketPriority) Valid() bool {
	switch p {
	case PriorityLow, PriorityNormal, PriorityHigh, PriorityUrgent:
		return true
	}
	return false
}

// DefaultCategory is applied when a ticket is submitted without one.
const DefaultCategory = "general"

type SupportTicket struct {
	ID        uint             `json:"id" gorm:"primaryKey"`
	UserID    *uint            `json:"userId"` // nil for guest tickets
	Email     string           `json:"email" gorm:"not null"`
	Subject   string           `json:"subject" gorm:"not null"`
	Category  string           `json:"category" gorm:"default:'general'"`
	Priority  TicketPriority   `json:"priority" gorm:"type:varchar(16);default:'normal'"`
	Status    TicketStatus     `json:"status" gorm:"type:varchar(16);default:'pending';index"`
	Messages  []SupportMessage `json:"messages,omitempty" gorm:"foreignKey:TicketID;constraint:OnDelete:CASCADE"`
	CreatedAt time.Time        `json:"createdAt"`
	UpdatedAt time.Time        `json:"updatedAt"`
}
