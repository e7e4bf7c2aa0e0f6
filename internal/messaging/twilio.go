package messaging

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/twilio/twilio-go"
	twilioApi "github.com/twilio/twilio-go/rest/api/v2010"

	"github.com/kmahrous/salesbot/pkg/logging"
)

// TwilioSender delivers replies over the Twilio WhatsApp API.
type TwilioSender struct {
	client *twilio.RestClient
	from   string
	logger *logging.Logger
}

// NewTwilioSender creates a WhatsApp sender. from must be the approved
// sender number, e.g. "whatsapp:+14155238886".
func NewTwilioSender(accountSID, authToken, from string, logger *logging.Logger) (*TwilioSender, error) {
	if accountSID == "" || authToken == "" || from == "" {
		return nil, errors.New("messaging: missing twilio credentials")
	}
	if logger == nil {
		logger = logging.Default()
	}

	client := twilio.NewRestClientWithParams(twilio.ClientParams{
		Username: accountSID,
		Password: authToken,
	})

	return &TwilioSender{
		client: client,
		from:   whatsappAddress(from),
		logger: logger,
	}, nil
}

// SendReply sends one WhatsApp message to the customer.
func (t *TwilioSender) SendReply(_ context.Context, customerID, text string) error {
	params := &twilioApi.CreateMessageParams{}
	params.SetFrom(t.from)
	params.SetTo(whatsappAddress(customerID))
	params.SetBody(text)

	resp, err := t.client.Api.CreateMessage(params)
	if err != nil {
		return fmt.Errorf("messaging: failed to send whatsapp message: %w", err)
	}
	if resp.Sid != nil {
		t.logger.Info("whatsapp message sent", "customer", customerID, "sid", *resp.Sid)
	}
	return nil
}

func whatsappAddress(number string) string {
	if strings.HasPrefix(number, "whatsapp:") {
		return number
	}
	return "whatsapp:" + number
}
