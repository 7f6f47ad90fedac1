package report

import (
	"fmt"
	"log/slog"
	"net"
	"net/smtp"
	"strings"
	"time"

	"github.com/vibetools/trendscout/app/analysis"
)

// Mailer sends the weekly digest over SMTP.
type Mailer struct {
	host     string
	port     string
	user     string
	password string
	from     string
}

func NewMailer(host, port, user, password, from string) (*Mailer, error) {
	if host == "" || from == "" {
		return nil, fmt.Errorf("SMTP host and sender address must be configured")
	}

	return &Mailer{host: host, port: port, user: user, password: password, from: from}, nil
}

// SendDigest renders the report as HTML and mails it to every recipient.
func (m *Mailer) SendDigest(recipients []string, report *analysis.TrendReport, a *analysis.Analysis, sheetURL string) error {
	if len(recipients) == 0 {
		return fmt.Errorf("no email recipients configured")
	}

	body, err := RenderHTML(report, a, sheetURL)
	if err != nil {
		return err
	}

	subject := fmt.Sprintf("Weekly Trend Report - %s", report.WeekEnd.Format("Jan 2, 2006"))

	var msg strings.Builder
	fmt.Fprintf(&msg, "From: %s\r\n", m.from)
	fmt.Fprintf(&msg, "To: %s\r\n", strings.Join(recipients, ", "))
	fmt.Fprintf(&msg, "Subject: %s\r\n", subject)
	fmt.Fprintf(&msg, "Date: %s\r\n", time.Now().Format(time.RFC1123Z))
	msg.WriteString("MIME-Version: 1.0\r\n")
	msg.WriteString("Content-Type: text/html; charset=\"UTF-8\"\r\n")
	msg.WriteString("\r\n")
	msg.Write(body)

	addr := net.JoinHostPort(m.host, m.port)

	var auth smtp.Auth
	if m.user != "" {
		auth = smtp.PlainAuth("", m.user, m.password, m.host)
	}

	if err := smtp.SendMail(addr, auth, m.from, recipients, []byte(msg.String())); err != nil {
		return fmt.Errorf("failed to send email: %w", err)
	}

	slog.Info("Sent email digest", "recipients", len(recipients), "subject", subject)

	return nil
}
