package services

import (
	"fmt"
	"log/slog"
	"net/smtp"
	"strings"

	"github.com/Rakhulsr/storefront-api/app/configs"
	"github.com/Rakhulsr/storefront-api/app/models"
	"github.com/Rakhulsr/storefront-api/app/utils/format"
)

type Mailer interface {
	Send(to, subject, body string) error
}

type SMTPMailer struct {
	config configs.EmailConfig
}

func NewMailer(cfg configs.EmailConfig) *SMTPMailer {
	return &SMTPMailer{config: cfg}
}

func (m *SMTPMailer) Send(to, subject, body string) error {
	headers := [][2]string{
		{"From", m.config.From},
		{"To", to},
		{"Subject", subject},
		{"MIME-Version", "1.0"},
		{"Content-Type", "text/plain; charset=\"UTF-8\""},
	}

	var msg strings.Builder
	for _, h := range headers {
		fmt.Fprintf(&msg, "%s: %s\r\n", h[0], h[1])
	}
	msg.WriteString("\r\n" + body)

	auth := smtp.PlainAuth("", m.config.Username, m.config.Password, m.config.Host)
	addr := fmt.Sprintf("%s:%s", m.config.Host, m.config.Port)

	if err := smtp.SendMail(addr, auth, m.config.From, []string{to}, []byte(msg.String())); err != nil {
		slog.Error("Send: failed to send email", "to", to, "error", err)
		return fmt.Errorf("send email: %w", err)
	}
	return nil
}

func BuildResetCodeEmail(name, code string, expiryMinutes int) string {
	return fmt.Sprintf(
		"Hi %s,\n\nWe received a request to reset the password on your account.\n\n%s\n\nEnter this code to complete the reset. It expires in %d minutes.\n",
		name, code, expiryMinutes,
	)
}

func BuildOrderConfirmationEmail(name string, order *models.Order) string {
	var b strings.Builder
	fmt.Fprintf(&b, "Hi %s,\n\nThanks for your order %s.\n\n", name, order.ID)
	for _, item := range order.CartItems {
		fmt.Fprintf(&b, "- %s x%d @ %s\n", item.ProductID, item.Quantity, format.Money(item.Price))
	}
	fmt.Fprintf(&b, "\nTotal: %s (%s)\n", format.Money(order.TotalOrderPrice), order.PaymentMethodType)
	return b.String()
}
