package crawler

import (
	"fmt"
	"net/smtp"
	"strings"

	"github.com/jordan-wright/email"
)

// SMTPConfig carries the mail account a crawl report is sent from.
// Leaving Server or To empty disables the report.
type SMTPConfig struct {
	Server   string   `json:"server"`
	Port     int      `json:"port"`
	Email    string   `json:"email"`
	Password string   `json:"password"`
	To       []string `json:"to"`
}

// Notify mails the rendered crawl summary to the configured recipients.
func Notify(config SMTPConfig, summary *Summary) error {
	if config.Server == "" || len(config.To) == 0 {
		return nil
	}

	mail := email.NewEmail()
	mail.From = fmt.Sprintf("UFC Scraper <%s>", config.Email)
	mail.To = config.To
	mail.Subject = fmt.Sprintf("Crawl summary: %s", summary.Source)
	mail.Text = []byte(summary.Render())

	addr := fmt.Sprintf("%s:%d", config.Server, config.Port)
	err := mail.Send(addr, smtp.PlainAuth("", config.Email, config.Password, config.Server))
	if err != nil && strings.Contains(err.Error(), "server doesn't support AUTH") {
		err = mail.Send(addr, nil)
	}
	if err != nil {
		return fmt.Errorf("could not send summary mail: %w", err)
	}
	return nil
}
