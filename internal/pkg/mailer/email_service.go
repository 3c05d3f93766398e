package mailer

import (
	"fmt"

	"gopkg.in/gomail.v2"
)

type IEmailService interface {
	SendResultsSummary(toEmail, firstName string, totalScore, maxScore int, interpretationTitle string) error
}

type emailService struct {
	dialer      *gomail.Dialer
	senderEmail string
	senderName  string
}

func NewEmailService(host string, port int, username, password, senderEmail, senderName string) IEmailService {
	d := gomail.NewDialer(host, port, username, password)

	return &emailService{
		dialer:      d,
		senderEmail: senderEmail,
		senderName:  senderName,
	}
}

// SendResultsSummary emails the participant their diagnostic score.
// Callers fire this in the background and absorb failures; a missed
// follow-up email never blocks the results screen.
func (s *emailService) SendResultsSummary(toEmail, firstName string, totalScore, maxScore int, interpretationTitle string) error {
	m := gomail.NewMessage()
	m.SetHeader("From", m.FormatAddress(s.senderEmail, s.senderName))
	m.SetHeader("To", toEmail)
	m.SetHeader("Subject", "Your Diagnostic Results")

	body := fmt.Sprintf(`
		<div style="font-family: Arial, sans-serif; padding: 20px; color: #333;">
			<h2>Hi %s,</h2>
			<p>Thanks for completing the diagnostic. Here is your result:</p>
			<h1 style="color: #1a2b4a;">%d / %d</h1>
			<h3>%s</h3>
			<p>Your full breakdown and revenue projection are waiting on your results page.</p>
		</div>
	`, firstName, totalScore, maxScore, interpretationTitle)

	m.SetBody("text/html", body)

	if err := s.dialer.DialAndSend(m); err != nil {
		return fmt.Errorf("send results summary to %s: %w", toEmail, err)
	}
	return nil
}
