package supportService

import (
	"testing"
	"time"

	"mistogo/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

func newTestDB(t *testing.T) *gorm.DB {
	t.Helper()

	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	require.NoError(t, err)

	sqlDB, err := db.DB()
	require.NoError(t, err)
	sqlDB.SetMaxOpenConns(1)

	require.NoError(t, db.AutoMigrate(
		&models.User{},
		&models.SupportTicket{},
		&models.SupportMessage{},
		&models.NotificationLog{},
	))
	return db
}

func uintPtr(v uint) *uint { return &v }

func TestCreateTicketGuestDefaults(t *testing.T) {
	svc := New(newTestDB(t))

	ticket, err := svc.CreateTicket("a@b.com", "Help", "Broken scooter", "", nil)
	require.NoError(t, err)

	assert.Nil(t, ticket.UserID)
	assert.Equal(t, models.StatusPending, ticket.Status)
	assert.Equal(t, models.PriorityNormal, ticket.Priority)
	assert.Equal(t, "general", ticket.Category)

	loaded, err := svc.GetTicket(ticket.ID, nil, true)
	require.NoError(t, err)
	require.Len(t, loaded.Messages, 1)
	assert.Equal(t, "Broken scooter", loaded.Messages[0].Body)
	assert.Equal(t, "a@b.com", loaded.Messages[0].AuthorName)
	assert.False(t, loaded.Messages[0].IsAdmin)
	assert.Nil(t, loaded.Messages[0].UserID)
}

func TestCreateTicketForUser(t *testing.T) {
	svc := New(newTestDB(t))

	ticket, err := svc.CreateTicket("user@mistogo.ua", "Charge issue", "Card charged twice", "billing", uintPtr(42))
	require.NoError(t, err)

	require.NotNil(t, ticket.UserID)
	assert.Equal(t, uint(42), *ticket.UserID)
	assert.Equal(t, "billing", ticket.Category)

	loaded, err := svc.GetTicket(ticket.ID, uintPtr(42), false)
	require.NoError(t, err)
	require.Len(t, loaded.Messages, 1)
	assert.Empty(t, loaded.Messages[0].AuthorName)
	require.NotNil(t, loaded.Messages[0].UserID)
	assert.Equal(t, uint(42), *loaded.Messages[0].UserID)
}

func TestAddMessageAuthorization(t *testing.T) {
	svc := New(newTestDB(t))

	ticket, err := svc.CreateTicket("user@mistogo.ua", "Help", "First", "", uintPtr(42))
	require.NoError(t, err)

	// Non-owner, non-admin is rejected and nothing is persisted.
	_, _, err = svc.AddMessage(ticket.ID, "sneaky", uintPtr(999), false, "")
	assert.ErrorIs(t, err, ErrUnauthorized)

	loaded, err := svc.GetTicket(ticket.ID, uintPtr(42), false)
	require.NoError(t, err)
	assert.Len(t, loaded.Messages, 1)

	// Owner may reply.
	msg, _, err := svc.AddMessage(ticket.ID, "still broken", uintPtr(42), false, "")
	require.NoError(t, err)
	assert.False(t, msg.IsAdmin)

	// Admin may reply on any ticket.
	msg, _, err = svc.AddMessage(ticket.ID, "looking into it", uintPtr(1), true, "Support")
	require.NoError(t, err)
	assert.True(t, msg.IsAdmin)

	loaded, err = svc.GetTicket(ticket.ID, uintPtr(42), false)
	require.NoError(t, err)
	assert.Len(t, loaded.Messages, 3)
}

func TestAddMessageGuestTicketAdminOnly(t *testing.T) {
	svc := New(newTestDB(t))

	ticket, err := svc.CreateTicket("guest@b.com", "Help", "First", "", nil)
	require.NoError(t, err)

	// A guest ticket has no owner, so no regular user can reply to it.
	_, _, err = svc.AddMessage(ticket.ID, "hi", uintPtr(42), false, "")
	assert.ErrorIs(t, err, ErrUnauthorized)

	_, _, err = svc.AddMessage(ticket.ID, "hi", nil, false, "guest@b.com")
	assert.ErrorIs(t, err, ErrUnauthorized)

	_, _, err = svc.AddMessage(ticket.ID, "hello from support", uintPtr(1), true, "")
	assert.NoError(t, err)
}

func TestAddMessageBumpsUpdatedAt(t *testing.T) {
	svc := New(newTestDB(t))

	ticket, err := svc.CreateTicket("user@mistogo.ua", "Help", "First", "", uintPtr(42))
	require.NoError(t, err)
	before := ticket.UpdatedAt

	time.Sleep(10 * time.Millisecond)

	_, updated, err := svc.AddMessage(ticket.ID, "second", uintPtr(42), false, "")
	require.NoError(t, err)

	loaded, err := svc.GetTicket(updated.ID, uintPtr(42), false)
	require.NoError(t, err)
	assert.Len(t, loaded.Messages, 2)
	assert.False(t, loaded.UpdatedAt.Before(before))
	assert.True(t, loaded.UpdatedAt.After(before))
}

func TestAddMessageNotFound(t *testing.T) {
	svc := New(newTestDB(t))

	_, _, err := svc.AddMessage(12345, "hello", uintPtr(1), true, "")
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestGetTicketAccess(t *testing.T) {
	svc := New(newTestDB(t))

	ticket, err := svc.CreateTicket("user@mistogo.ua", "Help", "First", "", uintPtr(42))
	require.NoError(t, err)

	_, err = svc.GetTicket(ticket.ID, uintPtr(999), false)
	assert.ErrorIs(t, err, ErrUnauthorized)

	_, err = svc.GetTicket(ticket.ID, nil, false)
	assert.ErrorIs(t, err, ErrUnauthorized)

	_, err = svc.GetTicket(ticket.ID, uintPtr(42), false)
	assert.NoError(t, err)

	_, err = svc.GetTicket(ticket.ID, nil, true)
	assert.NoError(t, err)

	_, err = svc.GetTicket(404404, uintPtr(42), false)
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestGetTicketMessageOrder(t *testing.T) {
	svc := New(newTestDB(t))

	ticket, err := svc.CreateTicket("user@mistogo.ua", "Help", "first", "", uintPtr(42))
	require.NoError(t, err)

	for _, body := range []string{"second", "third", "fourth"} {
		_, _, err = svc.AddMessage(ticket.ID, body, uintPtr(42), false, "")
		require.NoError(t, err)
	}

	loaded, err := svc.GetTicket(ticket.ID, uintPtr(42), false)
	require.NoError(t, err)
	require.Len(t, loaded.Messages, 4)

	bodies := make([]string, 0, len(loaded.Messages))
	for _, m := range loaded.Messages {
		bodies = append(bodies, m.Body)
	}
	assert.Equal(t, []string{"first", "second", "third", "fourth"}, bodies)
}

func TestUpdateStatus(t *testing.T) {
	svc := New(newTestDB(t))

	ticket, err := svc.CreateTicket("user@mistogo.ua", "Help", "First", "", uintPtr(42))
	require.NoError(t, err)

	// Missing ticket reports false, never an error.
	updated, err := svc.UpdateStatus(12345, models.StatusResolved, uintPtr(1), true)
	assert.NoError(t, err)
	assert.False(t, updated)

	// Unknown value is refused before any lookup.
	_, err = svc.UpdateStatus(ticket.ID, models.TicketStatus("open"), uintPtr(1), true)
	assert.ErrorIs(t, err, ErrValidation)

	// Non-admin owner may only close.
	_, err = svc.UpdateStatus(ticket.ID, models.StatusResolved, uintPtr(42), false)
	assert.ErrorIs(t, err, ErrUnauthorized)

	updated, err = svc.UpdateStatus(ticket.ID, models.StatusClosed, uintPtr(42), false)
	require.NoError(t, err)
	assert.True(t, updated)

	// Admin may set any enumerated status.
	updated, err = svc.UpdateStatus(ticket.ID, models.StatusInProgress, uintPtr(1), true)
	require.NoError(t, err)
	assert.True(t, updated)

	loaded, err := svc.GetTicket(ticket.ID, nil, true)
	require.NoError(t, err)
	assert.Equal(t, models.StatusInProgress, loaded.Status)
}

func TestUpdatePriority(t *testing.T) {
	svc := New(newTestDB(t))

	ticket, err := svc.CreateTicket("user@mistogo.ua", "Help", "First", "", uintPtr(42))
	require.NoError(t, err)

	updated, err := svc.UpdatePriority(12345, models.PriorityUrgent)
	assert.NoError(t, err)
	assert.False(t, updated)

	_, err = svc.UpdatePriority(ticket.ID, models.TicketPriority("critical"))
	assert.ErrorIs(t, err, ErrValidation)

	updated, err = svc.UpdatePriority(ticket.ID, models.PriorityUrgent)
	require.NoError(t, err)
	assert.True(t, updated)

	loaded, err := svc.GetTicket(ticket.ID, nil, true)
	require.NoError(t, err)
	assert.Equal(t, models.PriorityUrgent, loaded.Priority)
}

func TestListForUser(t *testing.T) {
	svc := New(newTestDB(t))

	_, err := svc.CreateTicket("a@b.com", "Mine 1", "x", "", uintPtr(42))
	require.NoError(t, err)
	_, err = svc.CreateTicket("a@b.com", "Not mine", "x", "", uintPtr(7))
	require.NoError(t, err)
	_, err = svc.CreateTicket("a@b.com", "Guest", "x", "", nil)
	require.NoError(t, err)

	time.Sleep(10 * time.Millisecond)
	_, err = svc.CreateTicket("a@b.com", "Mine 2", "x", "", uintPtr(42))
	require.NoError(t, err)

	tickets, err := svc.ListForUser(42)
	require.NoError(t, err)
	require.Len(t, tickets, 2)

	// Newest first.
	assert.Equal(t, "Mine 2", tickets[0].Subject)
	assert.Equal(t, "Mine 1", tickets[1].Subject)
	assert.False(t, tickets[0].CreatedAt.Before(tickets[1].CreatedAt))
}

func TestListAllFilters(t *testing.T) {
	svc := New(newTestDB(t))

	t1, err := svc.CreateTicket("a@b.com", "One", "x", "", uintPtr(1))
	require.NoError(t, err)

	time.Sleep(10 * time.Millisecond)
	_, err = svc.CreateTicket("a@b.com", "Two", "x", "", uintPtr(2))
	require.NoError(t, err)

	_, err = svc.UpdateStatus(t1.ID, models.StatusResolved, nil, true)
	require.NoError(t, err)
	_, err = svc.UpdatePriority(t1.ID, models.PriorityHigh)
	require.NoError(t, err)

	tickets, total, err := svc.ListAll("", "", 1, 10)
	require.NoError(t, err)
	assert.EqualValues(t, 2, total)
	require.Len(t, tickets, 2)

	// Newest first, regardless of later updates to the older ticket.
	assert.Equal(t, "Two", tickets[0].Subject)
	assert.Equal(t, "One", tickets[1].Subject)

	tickets, total, err = svc.ListAll("resolved", "", 1, 10)
	require.NoError(t, err)
	assert.EqualValues(t, 1, total)
	require.Len(t, tickets, 1)
	assert.Equal(t, t1.ID, tickets[0].ID)

	tickets, total, err = svc.ListAll("resolved", "urgent", 1, 10)
	require.NoError(t, err)
	assert.EqualValues(t, 0, total)
	assert.Empty(t, tickets)
}

func TestStats(t *testing.T) {
	svc := New(newTestDB(t))

	t1, err := svc.CreateTicket("a@b.com", "One", "x", "", uintPtr(1))
	require.NoError(t, err)
	_, err = svc.CreateTicket("a@b.com", "Two", "x", "", uintPtr(2))
	require.NoError(t, err)
	_, err = svc.UpdateStatus(t1.ID, models.StatusClosed, nil, true)
	require.NoError(t, err)

	stats, err := svc.Stats()
	require.NoError(t, err)
	assert.EqualValues(t, 1, stats["pending"])
	assert.EqualValues(t, 1, stats["closed"])
}
