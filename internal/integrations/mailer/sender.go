package mailer

import (
	"context"
	"errors"
	"fmt"
	"mime"
	"net"
	"net/smtp"
	"strconv"
	"strings"
)

var (
	// ErrInvalidRecipient возвращается при пустом или некорректном адресе
	ErrInvalidRecipient = errors.New("mailer: invalid recipient")

	// ErrSend возвращается при ошибке SMTP
	ErrSend = errors.New("mailer: failed to send email")
)

// sendFunc сигнатура net/smtp.SendMail, подменяется в тестах
type sendFunc func(addr string, a smtp.Auth, from string, to []string, msg []byte) error

// SMTPSender отправляет письма через SMTP relay
type SMTPSender struct {
	addr string
	host string
	from string
	auth smtp.Auth
	send sendFunc
}

// NewSMTPSender создает отправителя. Если username пуст, авторизация не используется (Mailpit, локальный relay).
func NewSMTPSender(host string, port int, username, password, from string) *SMTPSender {
	host = strings.TrimSpace(host)
	from = strings.TrimSpace(from)
	if from == "" {
		from = "no-reply@salon.local"
	}

	var auth smtp.Auth
	if username != "" {
		auth = smtp.PlainAuth("", username, password, host)
	}

	return &SMTPSender{
		addr: net.JoinHostPort(host, strconv.Itoa(port)),
		host: host,
		from: from,
		auth: auth,
		send: smtp.SendMail,
	}
}

// Send отправляет текстовое письмо.
// net/smtp не принимает контекст, поэтому отмененный контекст проверяется до соединения.
func (s *SMTPSender) Send(ctx context.Context, to, subject, body string) error {
	to = strings.TrimSpace(to)
	if to == "" || !strings.Contains(to, "@") || strings.ContainsAny(to, "\r\n") {
		return fmt.Errorf("%w: %q", ErrInvalidRecipient, to)
	}
	if err := ctx.Err(); err != nil {
		return fmt.Errorf("%w: %v", ErrSend, err)
	}

	msg := buildMessage(s.from, to, subject, body)
	if err := s.send(s.addr, s.auth, s.from, []string{to}, []byte(msg)); err != nil {
		return fmt.Errorf("%w: %v", ErrSend, err)
	}
	return nil
}

func buildMessage(from, to, subject, body string) string {
	return fmt.Sprintf(
		"From: %s\r\nTo: %s\r\nSubject: %s\r\nMIME-Version: 1.0\r\nContent-Type: text/plain; charset=utf-8\r\n\r\n%s\r\n",
		from,
		to,
		mime.QEncoding.Encode("utf-8", subject),
		strings.ReplaceAll(body, "\n", "\r\n"),
	)
}
