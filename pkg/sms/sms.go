package sms

import (
	"fmt"

	"resale/pkg/config"

	"github.com/twilio/twilio-go"
	twilioApi "github.com/twilio/twilio-go/rest/api/v2010"
)

type Sender struct {
	client *twilio.RestClient
	from   string
}

func NewSender() *Sender {
	appConfig := config.Read()

	client := twilio.NewRestClientWithParams(twilio.ClientParams{
		Username: appConfig.TwilioSID,
		Password: appConfig.TwilioToken,
	})

	return &Sender{
		client: client,
		from:   appConfig.TwilioMobile,
	}
}

func (s *Sender) Send(to, body string) error {
	params := &twilioApi.CreateMessageParams{}
	params.SetTo(to)
	params.SetFrom(s.from)
	params.SetBody(body)

	if _, err := s.client.Api.CreateMessage(params); err != nil {
		return fmt.Errorf("send sms to %s: %w", to, err)
	}
	return nil
}

// SendOtp delivers a one-time password. The code is short-lived, so the
// message stays terse.
func (s *Sender) SendOtp(to, otp string) error {
	return s.Send(to, fmt.Sprintf("%s is your verification code.", otp))
}
