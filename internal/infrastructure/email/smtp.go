package email

import (
	"fmt"

	"gopkg.in/gomail.v2"
)

type SMTPConfig struct {
	Host        string
	Port        int
	Username    string
	Password    string
	FromAddress string
	FromName    string
	BaseURL     string // Base URL for email links (e.g., "http://localhost:8081")
}

type SMTPEmailService struct {
	config SMTPConfig
	dialer *gomail.Dialer
}

func NewSMTPEmailService(config SMTPConfig) *SMTPEmailService {
	dialer := gomail.NewDialer(config.Host, config.Port, config.Username, config.Password)

	return &SMTPEmailService{
		config: config,
		dialer: dialer,
	}
}

func (s *SMTPEmailService) SendTicketCreated(to, number, subject string) error {
	ticketURL := fmt.Sprintf("%s/tickets/%s", s.config.BaseURL, number)

	mailSubject := fmt.Sprintf("[%s] We received your request", number)
	htmlBody := fmt.Sprintf(`
		<html>
		<body>
			<h2>Request Received</h2>
			<p>Your request <strong>%s</strong> has been registered as <strong>%s</strong>.</p>
			<p>You can follow its progress here:</p>
			<p><a href="%s">%s</a></p>
		</body>
		</html>
	`, subject, number, ticketURL, ticketURL)

	plainBody := fmt.Sprintf(`
Request Received

Your request %q has been registered as %s.

You can follow its progress at:
%s
	`, subject, number, ticketURL)

	return s.sendEmail(to, mailSubject, htmlBody, plainBody)
}

func (s *SMTPEmailService) SendStatusChanged(to, number, oldStatus, newStatus string) error {
	ticketURL := fmt.Sprintf("%s/tickets/%s", s.config.BaseURL, number)

	mailSubject := fmt.Sprintf("[%s] Status changed to %s", number, newStatus)
	htmlBody := fmt.Sprintf(`
		<html>
		<body>
			<h2>Status Update</h2>
			<p>Ticket <strong>%s</strong> moved from <strong>%s</strong> to <strong>%s</strong>.</p>
			<p><a href="%s">View the ticket</a></p>
		</body>
		</html>
	`, number, oldStatus, newStatus, ticketURL)

	plainBody := fmt.Sprintf(`
Status Update

Ticket %s moved from %s to %s.

View the ticket at:
%s
	`, number, oldStatus, newStatus, ticketURL)

	return s.sendEmail(to, mailSubject, htmlBody, plainBody)
}

func (s *SMTPEmailService) SendTicketAssigned(to, number string) error {
	ticketURL := fmt.Sprintf("%s/tickets/%s", s.config.BaseURL, number)

	mailSubject := fmt.Sprintf("[%s] Ticket assigned to you", number)
	htmlBody := fmt.Sprintf(`
		<html>
		<body>
			<h2>New Assignment</h2>
			<p>Ticket <strong>%s</strong> has been assigned to you.</p>
			<p><a href="%s">View the ticket</a></p>
		</body>
		</html>
	`, number, ticketURL)

	plainBody := fmt.Sprintf(`
New Assignment

Ticket %s has been assigned to you.

View the ticket at:
%s
	`, number, ticketURL)

	return s.sendEmail(to, mailSubject, htmlBody, plainBody)
}

func (s *SMTPEmailService) SendTicketReopened(to, number, reason string) error {
	ticketURL := fmt.Sprintf("%s/tickets/%s", s.config.BaseURL, number)

	mailSubject := fmt.Sprintf("[%s] Ticket reopened", number)
	htmlBody := fmt.Sprintf(`
		<html>
		<body>
			<h2>Ticket Reopened</h2>
			<p>Ticket <strong>%s</strong> has been reopened with the following note:</p>
			<blockquote>%s</blockquote>
			<p><a href="%s">View the ticket</a></p>
		</body>
		</html>
	`, number, reason, ticketURL)

	plainBody := fmt.Sprintf(`
Ticket Reopened

Ticket %s has been reopened with the following note:

%s

View the ticket at:
%s
	`, number, reason, ticketURL)

	return s.sendEmail(to, mailSubject, htmlBody, plainBody)
}

func (s *SMTPEmailService) SendCommentAdded(to, number string) error {
	ticketURL := fmt.Sprintf("%s/tickets/%s", s.config.BaseURL, number)

	mailSubject := fmt.Sprintf("[%s] New reply on your ticket", number)
	htmlBody := fmt.Sprintf(`
		<html>
		<body>
			<h2>New Reply</h2>
			<p>There is a new reply on ticket <strong>%s</strong>.</p>
			<p><a href="%s">View the ticket</a></p>
		</body>
		</html>
	`, number, ticketURL)

	plainBody := fmt.Sprintf(`
New Reply

There is a new reply on ticket %s.

View the ticket at:
%s
	`, number, ticketURL)

	return s.sendEmail(to, mailSubject, htmlBody, plainBody)
}

func (s *SMTPEmailService) sendEmail(to, subject, htmlBody, plainBody string) error {
	m := gomail.NewMessage()
	m.SetHeader("From", s.config.FromAddress)
	m.SetHeader("To", to)
	m.SetHeader("Subject", subject)
	m.SetBody("text/plain", plainBody)
	m.AddAlternative("text/html", htmlBody)

	if err := s.dialer.DialAndSend(m); err != nil {
		return fmt.Errorf("failed to send email: %w", err)
	}

	return nil
}
