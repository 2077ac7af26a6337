package utils

import (
	"log"
	"time"

	"mistogo/config"
	"mistogo/database"
	"mistogo/models"

	"github.com/robfig/cron/v3"
)

// SweepResolvedTickets closes resolved tickets that have seen no activity for
// the retention window. Closing is the terminal state, so this only ever moves
// tickets forward along the lifecycle.
func SweepResolvedTickets(retention time.Duration) {
	cutoff := time.Now().Add(-retention)

	result := database.Database.Db.
		Model(&models.SupportTicket{}).
		Where("status = ? AND updated_at < ?", models.StatusResolved, cutoff).
		Update("status", models.StatusClosed)

	if result.Error != nil {
		log.Printf("[TICKET-SWEEPER] Error closing stale tickets: %v", result.Error)
		return
	}
	if result.RowsAffected > 0 {
		log.Printf("[TICKET-SWEEPER] Closed %d stale resolved tickets", result.RowsAffected)
	}
}

// StartTicketSweeper schedules the hourly retention sweep.
func StartTicketSweeper() *cron.Cron {
	retention := time.Duration(config.AppConfig.TicketRetentionDays) * 24 * time.Hour

	c := cron.New()
	c.AddFunc("@hourly", func() {
		SweepResolvedTickets(retention)
	})
	c.Start()

	log.Printf("[TICKET-SWEEPER] Started (retention %s)", retention)
	return c
}
