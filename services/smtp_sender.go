package services

import "limo-backend/utils"

// SMTPSender submits rendered messages through the configured SMTP relay.
// With no SMTP env configured the underlying helper logs instead of sending.
type SMTPSender struct{}

func (SMTPSender) Send(msg Message) error {
	return utils.SendSMTPEmail(msg.Envelope)
}
