package notifications

import (
	"encoding/json"
	"log"
	"sync"

	"mistogo/models"

	"gorm.io/datatypes"
	"gorm.io/gorm"
)

// Event kinds.
const (
	KindTicketCreated = "ticket_created"
	KindMessageAdded  = "message_added"
)

// Event is one ticket change worth telling humans about.
type Event struct {
	ID         string `json:"id"`
	Kind       string `json:"kind"`
	TicketID   uint   `json:"ticketId"`
	Subject    string `json:"subject"`
	Category   string `json:"category"`
	Body       string `json:"body"`
	AuthorName string `json:"authorName"`
	Guest      bool   `json:"guest"`
}

// Sender delivers one event to one channel.
type Sender interface {
	Name() string
	Send(event Event) error
}

// Manager fans events out to every registered sender from a worker pool fed by
// a buffered queue. The ticket record is the durable source of truth; delivery
// is best effort. A failing sender is logged and audited, never retried, and
// never blocks another sender or the HTTP request that enqueued the event.
type Manager struct {
	senders []Sender
	events  chan Event
	db      *gorm.DB // audit log target, may be nil
	wg      sync.WaitGroup
}

// NewManager starts the worker pool.
func NewManager(db *gorm.DB, workers int, senders ...Sender) *Manager {
	if workers < 1 {
		workers = 1
	}

	m := &Manager{
		senders: senders,
		events:  make(chan Event, 256),
		db:      db,
	}

	for i := 0; i < workers; i++ {
		m.wg.Add(1)
		go m.worker()
	}
	return m
}

// Enqueue hands an event to the worker pool without blocking. A full queue
// drops the event; the ticket itself is already persisted.
func (m *Manager) Enqueue(event Event) {
	select {
	case m.events <- event:
	default:
		log.Printf("Notification queue full, dropping event %s (%s)", event.ID, event.Kind)
	}
}

// Shutdown drains the queue and stops the workers.
func (m *Manager) Shutdown() {
	close(m.events)
	m.wg.Wait()
	log.Println("Notification manager shutdown complete")
}

func (m *Manager) worker() {
	defer m.wg.Done()
	for event := range m.events {
		m.dispatch(event)
	}
}

func (m *Manager) dispatch(event Event) {
	for _, sender := range m.senders {
		err := sender.Send(event)
		if err != nil {
			log.Printf("Notification sender %s failed for event %s: %v", sender.Name(), event.ID, err)
		}
		m.audit(sender.Name(), event, err)
	}
}

func (m *Manager) audit(channel string, event Event, sendErr error) {
	if m.db == nil {
		return
	}

	payload, err := json.Marshal(event)
	if err != nil {
		log.Printf("Failed to marshal notification payload for event %s: %v", event.ID, err)
		return
	}

	entry := models.NotificationLog{
		EventID:  event.ID,
		Channel:  channel,
		Kind:     event.Kind,
		TicketID: event.TicketID,
		Success:  sendErr == nil,
		Payload:  datatypes.JSON(payload),
	}
	if sendErr != nil {
		entry.Error = sendErr.Error()
	}

	if err := m.db.Create(&entry).Error; err != nil {
		log.Printf("Failed to record notification log for event %s: %v", event.ID, err)
	}
}

// Default is the process-wide manager, set up in main. Enqueue is nil-safe so
// handlers can fire events unconditionally.
var Default *Manager

func Enqueue(event Event) {
	if Default != nil {
		Default.Enqueue(event)
	}
}
