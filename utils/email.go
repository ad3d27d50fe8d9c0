package utils

import (
	"fmt"
	"log"
	"net/smtp"
	"os"
	"strings"
)

// EmailEnvelope is a fully-formed message ready for submission.
type EmailEnvelope struct {
	To        string
	Subject   string
	PlainBody string
	HTMLBody  string
}

// SendSMTPEmail submits an envelope through the configured SMTP relay.
// When SMTP env vars are absent the message is logged instead of sent, so
// local development works without a relay.
func SendSMTPEmail(env EmailEnvelope) error {
	smtpHost := os.Getenv("SMTP_HOST")
	smtpPort := os.Getenv("SMTP_PORT")
	smtpUser := os.Getenv("SMTP_USERNAME")
	smtpPass := os.Getenv("SMTP_PASSWORD")
	fromName := os.Getenv("SMTP_FROM_NAME")

	if smtpUser == "" || smtpPass == "" || smtpHost == "" || smtpPort == "" {
		log.Printf("[MOCK EMAIL] to:%s subject:%q", MaskEmail(env.To), env.Subject)
		return nil
	}

	from := fmt.Sprintf("%s <%s>", fromName, smtpUser)
	auth := smtp.PlainAuth("", smtpUser, smtpPass, smtpHost)
	addr := fmt.Sprintf("%s:%s", smtpHost, smtpPort)

	boundary := "----=_LIMO_EMAIL_BOUNDARY"

	var sb strings.Builder
	sb.WriteString(fmt.Sprintf("From: %s\r\n", from))
	sb.WriteString(fmt.Sprintf("To: %s\r\n", env.To))
	sb.WriteString(fmt.Sprintf("Subject: %s\r\n", sanitizeHeader(env.Subject)))
	sb.WriteString("MIME-Version: 1.0\r\n")
	sb.WriteString(fmt.Sprintf("Content-Type: multipart/alternative; boundary=\"%s\"\r\n\r\n", boundary))

	sb.WriteString(fmt.Sprintf("--%s\r\n", boundary))
	sb.WriteString("Content-Type: text/plain; charset=utf-8\r\n\r\n")
	sb.WriteString(env.PlainBody + "\r\n")

	sb.WriteString(fmt.Sprintf("--%s\r\n", boundary))
	sb.WriteString("Content-Type: text/html; charset=utf-8\r\n\r\n")
	sb.WriteString(env.HTMLBody + "\r\n")

	sb.WriteString(fmt.Sprintf("--%s--\r\n", boundary))

	if err := smtp.SendMail(addr, auth, smtpUser, []string{env.To}, []byte(sb.String())); err != nil {
		log.Printf("Failed to send email to %s: %v", MaskEmail(env.To), err)
		return err
	}

	log.Printf("Email sent to %s", MaskEmail(env.To))
	return nil
}

func sanitizeHeader(s string) string {
	s = strings.ReplaceAll(s, "\r", " ")
	s = strings.ReplaceAll(s, "\n", " ")
	return strings.TrimSpace(s)
}
