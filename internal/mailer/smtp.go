package mailer

import (
	"bytes"
	"errors"
	"fmt"
	"html/template"
	"time"

	"sashambhu/internal/pricing"

	mail "gopkg.in/mail.v2"
)

var ErrSendFailed = errors.New("failed to send email")

// dialer is the part of *mail.Dialer the client uses.
type dialer interface {
	DialAndSend(m ...*mail.Message) error
}

type SMTPMailer struct {
	fromEmail string
	dialer    dialer
	backoff   time.Duration
}

func NewSMTPMailer(host string, port int, username, password, fromEmail string) (*SMTPMailer, error) {
	if host == "" {
		return nil, errors.New("smtp host is required")
	}
	if fromEmail == "" {
		return nil, errors.New("from email is required")
	}

	d := mail.NewDialer(host, port, username, password)
	d.Timeout = 10 * time.Second

	return &SMTPMailer{fromEmail: fromEmail, dialer: d, backoff: time.Second}, nil
}

var funcs = template.FuncMap{
	"rupees": pricing.FormatRupees,
}

func render(templateFile string, data any) (subject, body string, err error) {
	tmpl, err := template.New(templateFile).Funcs(funcs).ParseFS(FS, "templates/"+templateFile)
	if err != nil {
		return "", "", err
	}

	s := new(bytes.Buffer)
	if err := tmpl.ExecuteTemplate(s, "subject", data); err != nil {
		return "", "", err
	}

	b := new(bytes.Buffer)
	if err := tmpl.ExecuteTemplate(b, "body", data); err != nil {
		return "", "", err
	}
	return s.String(), b.String(), nil
}

// Send renders templateFile and delivers it, retrying with exponential
// backoff. It returns 200 once the SMTP server accepts the message.
func (m *SMTPMailer) Send(templateFile, username, email string, data any) (int, error) {
	subject, body, err := render(templateFile, data)
	if err != nil {
		return -1, err
	}

	message := mail.NewMessage()
	message.SetAddressHeader("From", m.fromEmail, FromName)
	message.SetAddressHeader("To", email, username)
	message.SetHeader("Subject", subject)
	message.SetBody("text/html", body)

	var lastErr error
	for i := 0; i < maxRetires; i++ {
		if err := m.dialer.DialAndSend(message); err != nil {
			lastErr = err
			time.Sleep(m.backoff * time.Duration(1<<i))
			continue
		}
		return 200, nil
	}

	return -1, fmt.Errorf("%w after %d attempts: %v", ErrSendFailed, maxRetires, lastErr)
}
