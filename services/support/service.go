package supportService

import (
	"errors"
	"fmt"
	"time"

	"mistogo/models"

	"gorm.io/gorm"
)

var (
	ErrNotFound     = errors.New("ticket not found")
	ErrUnauthorized = errors.New("caller is neither the ticket owner nor an admin")
	ErrValidation   = errors.New("validation failed")
)

// Service is the single source of truth for ticket and message mutation.
// Authorization rule: admins may act on any ticket; a user may only act on
// tickets they own. Guest tickets have no owner, so only admins can touch them.
type Service struct {
	db *gorm.DB
}

func New(db *gorm.DB) *Service {
	return &Service{db: db}
}

func canAccess(t *models.SupportTicket, userID *uint, isAdmin bool) bool {
	if isAdmin {
		return true
	}
	return t.UserID != nil && userID != nil && *t.UserID == *userID
}

// CreateTicket opens a ticket and appends the submitted text as its first
// message in one transaction. Guests (nil userID) get the contact email as
// their display name.
func (s *Service) CreateTicket(email, subject, body, category string, userID *uint) (*models.SupportTicket, error) {
	if category == "" {
		category = models.DefaultCategory
	}

	ticket := &models.SupportTicket{
		UserID:   userID,
		Email:    email,
		Subject:  subject,
		Category: category,
		Priority: models.PriorityNormal,
		Status:   models.StatusPending,
	}

	authorName := ""
	if userID == nil {
		authorName = email
	}

	err := s.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(ticket).Error; err != nil {
			return err
		}
		first := &models.SupportMessage{
			TicketID:   ticket.ID,
			UserID:     userID,
			Body:       body,
			IsAdmin:    false,
			AuthorName: authorName,
		}
		return tx.Create(first).Error
	})
	if err != nil {
		return nil, err
	}
	return ticket, nil
}

// AddMessage appends a message to an existing ticket and bumps its UpdatedAt,
// both inside one transaction. Returns the ticket alongside the message so
// callers can render notifications without a second lookup.
func (s *Service) AddMessage(ticketID uint, body string, userID *uint, isAdmin bool, authorName string) (*models.SupportMessage, *models.SupportTicket, error) {
	var ticket models.SupportTicket
	if err := s.db.First(&ticket, ticketID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil, ErrNotFound
		}
		return nil, nil, err
	}

	if !canAccess(&ticket, userID, isAdmin) {
		return nil, nil, ErrUnauthorized
	}

	msg := &models.SupportMessage{
		TicketID:   ticket.ID,
		UserID:     userID,
		Body:       body,
		IsAdmin:    isAdmin,
		AuthorName: authorName,
	}

	err := s.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(msg).Error; err != nil {
			return err
		}
		return tx.Model(&ticket).Update("updated_at", time.Now()).Error
	})
	if err != nil {
		return nil, nil, err
	}
	return msg, &ticket, nil
}

// GetTicket returns a ticket with its messages in creation order.
func (s *Service) GetTicket(ticketID uint, userID *uint, isAdmin bool) (*models.SupportTicket, error) {
	var ticket models.SupportTicket
	err := s.db.
		Preload("Messages", func(db *gorm.DB) *gorm.DB {
			return db.Order("created_at ASC, id ASC")
		}).
		First(&ticket, ticketID).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}

	if !canAccess(&ticket, userID, isAdmin) {
		return nil, ErrUnauthorized
	}
	return &ticket, nil
}

// UpdateStatus overwrites a ticket's status. It reports false (without error)
// when the ticket does not exist. Non-admin owners may only close.
func (s *Service) UpdateStatus(ticketID uint, status models.TicketStatus, userID *uint, isAdmin bool) (bool, error) {
	if !status.Valid() {
		return false, fmt.Errorf("%w: unknown status %q", ErrValidation, status)
	}

	var ticket models.SupportTicket
	if err := s.db.First(&ticket, ticketID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return false, nil
		}
		return false, err
	}

	if !canAccess(&ticket, userID, isAdmin) {
		return false, ErrUnauthorized
	}
	if !isAdmin && status != models.StatusClosed {
		return false, ErrUnauthorized
	}

	if err := s.db.Model(&ticket).Update("status", status).Error; err != nil {
		return false, err
	}
	return true, nil
}

// UpdatePriority overwrites a ticket's priority. Admin-only, enforced at the
// API layer. Reports false (without error) when the ticket does not exist.
func (s *Service) UpdatePriority(ticketID uint, priority models.TicketPriority) (bool, error) {
	if !priority.Valid() {
		return false, fmt.Errorf("%w: unknown priority %q", ErrValidation, priority)
	}

	var ticket models.SupportTicket
	if err := s.db.First(&ticket, ticketID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return false, nil
		}
		return false, err
	}

	if err := s.db.Model(&ticket).Update("priority", priority).Error; err != nil {
		return false, err
	}
	return true, nil
}

// ListForUser returns a user's tickets, newest first.
func (s *Service) ListForUser(userID uint) ([]models.SupportTicket, error) {
	var tickets []models.SupportTicket
	err := s.db.
		Where("user_id = ?", userID).
		Order("created_at DESC").
		Find(&tickets).Error
	if err != nil {
		return nil, err
	}
	return tickets, nil
}

// ListAll returns tickets across all users with optional status/priority
// filters and pagination, newest first. Also returns the unpaginated total.
func (s *Service) ListAll(status, priority string, page, limit int) ([]models.SupportTicket, int64, error) {
	if page < 1 {
		page = 1
	}
	if limit < 1 {
		limit = 10
	}
	offset := (page - 1) * limit

	db := s.db.Model(&models.SupportTicket{})
	if status != "" {
		db = db.Where("status = ?", status)
	}
	if priority != "" {
		db = db.Where("priority = ?", priority)
	}

	var total int64
	if err := db.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	var tickets []models.SupportTicket
	if err := db.Order("created_at DESC").Offset(offset).Limit(limit).Find(&tickets).Error; err != nil {
		return nil, 0, err
	}
	return tickets, total, nil
}

// Stats returns ticket counts grouped by status for the admin dashboard.
func (s *Service) Stats() (map[string]int64, error) {
	var rows []struct {
		Status string
		Count  int64
	}
	err := s.db.
		Model(&models.SupportTicket{}).
		Select("status, count(*) as count").
		Group("status").
		Scan(&rows).Error
	if err != nil {
		return nil, err
	}

	stats := make(map[string]int64, len(rows))
	for _, r := range rows {
		stats[r.Status] = r.Count
	}
	return stats, nil
}
