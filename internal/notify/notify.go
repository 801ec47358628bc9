// Package notify delivers out-of-band notifications for sync failures.
// The admin UI surfaces per-batch counters; genuine fetch failures
// additionally produce an email summarizing which network failed and why.
// There is no automatic retry; the next scheduled run is the retry
// mechanism.
package notify

import (
	"context"
	"fmt"
	"net/smtp"
	"strings"

	"github.com/rs/zerolog/log"
)

// Notifier is implemented by anything that can report a failed sync run.
type Notifier interface {
	// SyncFailure reports that a sync for network encountered the given
	// errors. Implementations must not block the sync path on slow delivery
	// longer than an ordinary SMTP exchange.
	SyncFailure(ctx context.Context, network string, errs []string) error
}

// SMTPNotifier emails sync-failure summaries to the configured admin.
type SMTPNotifier struct {
	Host     string
	Port     int
	Username string
	Password string
	From     string
	To       string

	// sendMail is a test seam; defaults to smtp.SendMail.
	sendMail func(addr string, a smtp.Auth, from string, to []string, msg []byte) error
}

// NewSMTPNotifier constructs a mailer. Host or To being empty yields a
// notifier that logs instead of sending.
func NewSMTPNotifier(host string, port int, username, password, from, to string) Notifier {
	if host == "" || to == "" {
		return NopNotifier{}
	}
	return &SMTPNotifier{
		Host:     host,
		Port:     port,
		Username: username,
		Password: password,
		From:     from,
		To:       to,
		sendMail: smtp.SendMail,
	}
}

// SyncFailure sends a plain-text failure summary.
func (n *SMTPNotifier) SyncFailure(ctx context.Context, network string, errs []string) error {
	subject := fmt.Sprintf("Revenue sync failed: %s (%d errors)", network, len(errs))
	var b strings.Builder
	fmt.Fprintf(&b, "From: %s\r\nTo: %s\r\nSubject: %s\r\n\r\n", n.From, n.To, subject)
	fmt.Fprintf(&b, "The %s sync reported %d error(s):\r\n\r\n", network, len(errs))
	for _, e := range errs {
		fmt.Fprintf(&b, "  - %s\r\n", e)
	}
	b.WriteString("\r\nThe next scheduled run will retry automatically.\r\n")

	var auth smtp.Auth
	if n.Username != "" {
		auth = smtp.PlainAuth("", n.Username, n.Password, n.Host)
	}
	addr := fmt.Sprintf("%s:%d", n.Host, n.Port)

	send := n.sendMail
	if send == nil {
		send = smtp.SendMail
	}
	if err := send(addr, auth, n.From, []string{n.To}, []byte(b.String())); err != nil {
		log.Error().Err(err).Str("network", network).Msg("sync failure email not delivered")
		return err
	}
	return nil
}

// NopNotifier logs failures instead of emailing them. Used in development
// and whenever SMTP is not configured.
type NopNotifier struct{}

// SyncFailure logs the failure summary at warn level.
func (NopNotifier) SyncFailure(ctx context.Context, network string, errs []string) error {
	log.Warn().
		Str("network", network).
		Int("errors", len(errs)).
		Strs("details", errs).
		Msg("sync failed (email notifications not configured)")
	return nil
}
