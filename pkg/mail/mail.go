package mail

import (
	"fmt"

	"resale/pkg/config"

	"gopkg.in/gomail.v2"
)

type Sender struct {
	dialer *gomail.Dialer
	from   string
}

func NewSender() *Sender {
	appConfig := config.Read()

	return &Sender{
		dialer: gomail.NewDialer(
			appConfig.SMTPHost,
			appConfig.SMTPPort,
			appConfig.SMTPUser,
			appConfig.SMTPPass,
		),
		from: appConfig.SMTPEmail,
	}
}

func (s *Sender) Send(to, subject, htmlBody string) error {
	m := gomail.NewMessage()
	m.SetHeader("From", s.from)
	m.SetHeader("To", to)
	m.SetHeader("Subject", subject)
	m.SetBody("text/html", htmlBody)

	if err := s.dialer.DialAndSend(m); err != nil {
		return fmt.Errorf("send mail to %s: %w", to, err)
	}
	return nil
}

// SendPaymentReceipt mails the seller once their payout has been issued.
func (s *Sender) SendPaymentReceipt(to, payoutID, amount string) error {
	body := fmt.Sprintf(
		"<p>Your item has been paid for.</p><p>Amount: ₹%s<br>Payout reference: %s</p>",
		amount, payoutID,
	)
	return s.Send(to, "Payment received for your listing", body)
}
