package notifications

import (
	"crypto/tls"
	"fmt"
	"net/smtp"
)

// EmailSender delivers ticket events to the support inbox over authenticated
// SMTP submission with implicit TLS (port 465 style).
type EmailSender struct {
	Host     string
	Port     string
	From     string
	Password string
	To       string
}

func NewEmailSender(host, port, from, password, to string) *EmailSender {
	return &EmailSender{Host: host, Port: port, From: from, Password: password, To: to}
}

func (s *EmailSender) Name() string { return "email" }

func (s *EmailSender) Send(event Event) error {
	subject := fmt.Sprintf("[MistoGO Support] New ticket #%d: %s", event.TicketID, event.Subject)
	if event.Kind == KindMessageAdded {
		subject = fmt.Sprintf("[MistoGO Support] New message on ticket #%d: %s", event.TicketID, event.Subject)
	}

	msg := "MIME-version: 1.0;\r\nContent-Type: text/html; charset=\"UTF-8\";\r\n"
	msg += fmt.Sprintf("From: MistoGO Support <%s>\r\n", s.From)
	msg += fmt.Sprintf("To: %s\r\n", s.To)
	msg += fmt.Sprintf("Subject: %s\r\n\r\n", subject)
	msg += renderEmailBody(event)

	return s.submit([]byte(msg))
}

// submit speaks SMTP over an implicit-TLS connection. smtp.SendMail only does
// STARTTLS, which the relay does not offer on the submission port.
func (s *EmailSender) submit(msg []byte) error {
	addr := s.Host + ":" + s.Port

	conn, err := tls.Dial("tcp", addr, &tls.Config{ServerName: s.Host})
	if err != nil {
		return fmt.Errorf("smtp dial: %w", err)
	}

	client, err := smtp.NewClient(conn, s.Host)
	if err != nil {
		conn.Close()
		return fmt.Errorf("smtp handshake: %w", err)
	}
	defer client.Close()

	auth := smtp.PlainAuth("", s.From, s.Password, s.Host)
	if err := client.Auth(auth); err != nil {
		return fmt.Errorf("smtp auth: %w", err)
	}
	if err := client.Mail(s.From); err != nil {
		return fmt.Errorf("smtp mail: %w", err)
	}
	if err := client.Rcpt(s.To); err != nil {
		return fmt.Errorf("smtp rcpt: %w", err)
	}

	w, err := client.Data()
	if err != nil {
		return fmt.Errorf("smtp data: %w", err)
	}
	if _, err := w.Write(msg); err != nil {
		w.Close()
		return fmt.Errorf("smtp write: %w", err)
	}
	if err := w.Close(); err != nil {
		return fmt.Errorf("smtp close: %w", err)
	}

	return client.Quit()
}

func renderEmailBody(event Event) string {
	heading := "New support ticket"
	if event.Kind == KindMessageAdded {
		heading = "New message on support ticket"
	}

	author := event.AuthorName
	if event.Guest {
		author = fmt.Sprintf("%s (guest)", event.AuthorName)
	}

	content := fmt.Sprintf(`
		<p><strong>Ticket:</strong> #%d</p>
		<p><strong>Subject:</strong> %s</p>
		<p><strong>Category:</strong> %s</p>
		<p><strong>From:</strong> %s</p>
		<div class="info-box">%s</div>
	`, event.TicketID, event.Subject, event.Category, author, event.Body)

	return fmt.Sprintf(`
	<!DOCTYPE html>
	<html>
	<head>
		<style>
			body { font-family: 'Helvetica Neue', Helvetica, Arial, sans-serif; background-color: #F6F6F6; margin: 0; padding: 0; }
			.container { max-width: 600px; margin: 40px auto; background: #FFFFFF; border-radius: 8px; overflow: hidden; box-shadow: 0 4px 15px rgba(0,0,0,0.05); }
			.header { background-color: #1B5E20; padding: 30px; text-align: center; }
			.header h1 { color: #FFFFFF; margin: 0; font-size: 24px; letter-spacing: 1px; }
			.content { padding: 40px 30px; color: #1B1B1B; line-height: 1.6; }
			.content h2 { color: #1B5E20; margin-top: 0; }
			.footer { background-color: #F6F6F6; padding: 20px; text-align: center; font-size: 12px; color: #666666; border-top: 1px solid #E0E0E0; }
			.info-box { background: #E8F5E9; padding: 15px; border-radius: 4px; border-left: 4px solid #1B5E20; margin: 20px 0; }
		</style>
	</head>
	<body>
		<div class="container">
			<div class="header">
				<h1>MistoGO</h1>
			</div>
			<div class="content">
				<h2>%s</h2>
				%s
			</div>
			<div class="footer">
				&copy; 2026 MistoGO. All rights reserved.
			</div>
		</div>
	</body>
	</html>
	`, heading, content)
}
