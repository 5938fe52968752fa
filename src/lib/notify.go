package lib

import (
	"log"
	"os"

	"github.com/google/uuid"
	"github.com/wneessen/go-mail"
)

// Notifier is the outbound notification sink. Send is fire-and-forget: a false
// return is logged by callers at most, never propagated.
type Notifier interface {
	Send(userIDs []uint, subject string, body string) bool
}

type LogNotifier struct{}

func (LogNotifier) Send(userIDs []uint, subject string, body string) bool {
	if len(userIDs) == 0 {
		return false
	}
	nid := uuid.New()
	log.Printf("[notify:%s] %s | recipients=%v | %s\n", nid.String(), subject, userIDs, body)
	return true
}

// MailNotifier delivers over SMTP. Emails resolves user ids to addresses so the
// package stays decoupled from the models layer.
type MailNotifier struct {
	Emails func(userIDs []uint) []string
}

func (m MailNotifier) Send(userIDs []uint, subject string, body string) bool {
	if len(userIDs) == 0 || m.Emails == nil {
		return false
	}
	addrs := m.Emails(userIDs)
	if len(addrs) == 0 {
		return false
	}
	client, err := GetSMTPClient()
	if err != nil {
		return false
	}
	msg := mail.NewMsg()
	if err := msg.From(os.Getenv("SMTP_FROM")); err != nil {
		log.Printf("[notify] Invalid sender address: %s\n", err.Error())
		return false
	}
	if err := msg.To(addrs...); err != nil {
		log.Printf("[notify] Invalid recipient address: %s\n", err.Error())
		return false
	}
	msg.Subject(subject)
	msg.SetBodyString(mail.TypeTextPlain, body)
	if err := client.DialAndSend(msg); err != nil {
		log.Printf("[notify] Error sending mail: %s\n", err.Error())
		return false
	}
	return true
}

var notifier Notifier = LogNotifier{}

// NewNotifier replaces the active sink. Used at boot and by tests.
func NewNotifier(n Notifier) {
	notifier = n
}

func GetNotifier() Notifier {
	return notifier
}
