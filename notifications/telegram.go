package notifications

import (
	"fmt"
	"time"

	"github.com/go-resty/resty/v2"
)

const telegramAPIBase = "https://api.telegram.org"

// TelegramSender posts ticket events to a single preconfigured chat through
// the Bot API's sendMessage call.
type TelegramSender struct {
	client *resty.Client
	token  string
	chatID string
}

func NewTelegramSender(token, chatID string) *TelegramSender {
	return newTelegramSender(telegramAPIBase, token, chatID)
}

func newTelegramSender(baseURL, token, chatID string) *TelegramSender {
	client := resty.New().
		SetBaseURL(baseURL).
		SetTimeout(10 * time.Second)

	return &TelegramSender{client: client, token: token, chatID: chatID}
}

func (s *TelegramSender) Name() string { return "telegram" }

func (s *TelegramSender) Send(event Event) error {
	resp, err := s.client.R().
		SetFormData(map[string]string{
			"chat_id":    s.chatID,
			"text":       renderTelegramText(event),
			"parse_mode": "HTML",
		}).
		Post("/bot" + s.token + "/sendMessage")
	if err != nil {
		return fmt.Errorf("telegram sendMessage: %w", err)
	}
	if resp.StatusCode() != 200 {
		return fmt.Errorf("telegram sendMessage: status %d: %s", resp.StatusCode(), resp.String())
	}
	return nil
}

func renderTelegramText(event Event) string {
	author := event.AuthorName
	if event.Guest {
		author = "Гість"
	}

	header := "🆕 Новий тікет"
	if event.Kind == KindMessageAdded {
		header = "💬 Нове повідомлення"
	}

	return fmt.Sprintf(
		"%s <b>#%d</b>\nВід: %s\nТема: <b>%s</b>\n\n%s",
		header, event.TicketID, author, event.Subject, event.Body,
	)
}
