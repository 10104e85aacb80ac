package email

import (
	"context"
	"fmt"

	"gopkg.in/gomail.v2"

	"liken/internal/application/reminder/usecases"
	sharedconfig "liken/internal/shared/config"
)

type SMTPEmailService struct {
	config sharedconfig.EmailConfig
	dialer *gomail.Dialer
}

func NewSMTPEmailService(config sharedconfig.EmailConfig) *SMTPEmailService {
	dialer := gomail.NewDialer(config.SMTPHost, config.SMTPPort, config.SMTPUser, config.SMTPPassword)

	return &SMTPEmailService{
		config: config,
		dialer: dialer,
	}
}

var _ usecases.ReminderSender = (*SMTPEmailService)(nil)

func (s *SMTPEmailService) SendPaymentReminder(ctx context.Context, invoice usecases.DueInvoice) error {
	amount := fmt.Sprintf("%.2f %s", float64(invoice.AmountCents)/100.0, invoice.Currency)
	dueDate := invoice.DueDate.Format("January 2, 2006")

	subject := fmt.Sprintf("Payment reminder: %s due %s", amount, dueDate)
	htmlBody := fmt.Sprintf(`
		<html>
		<body>
			<h2>Upcoming Payment</h2>
			<p>Hi %s,</p>
			<p>This is a reminder that your payment of <strong>%s</strong> is due on <strong>%s</strong>.</p>
			<p>Please make sure your payment method is up to date to avoid any interruption to your active licenses.</p>
			<p>If you have already paid, you can ignore this email.</p>
		</body>
		</html>
	`, invoice.BrandName, amount, dueDate)

	plainBody := fmt.Sprintf(`
Hi %s,

This is a reminder that your payment of %s is due on %s.

Please make sure your payment method is up to date to avoid any interruption to your active licenses.

If you have already paid, you can ignore this email.
	`, invoice.BrandName, amount, dueDate)

	return s.sendEmail(invoice.BrandEmail, subject, htmlBody, plainBody)
}

func (s *SMTPEmailService) sendEmail(to, subject, htmlBody, plainBody string) error {
	m := gomail.NewMessage()
	m.SetHeader("From", m.FormatAddress(s.config.FromAddress, s.config.FromName))
	m.SetHeader("To", to)
	m.SetHeader("Subject", subject)
	m.SetBody("text/plain", plainBody)
	m.AddAlternative("text/html", htmlBody)

	if err := s.dialer.DialAndSend(m); err != nil {
		return fmt.Errorf("failed to send email: %w", err)
	}

	return nil
}
