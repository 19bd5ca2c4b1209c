package mailer

import (
	"crypto/tls"
	"errors"
	"fmt"
	"io"

	"gopkg.in/gomail.v2"

	"github.com/samandr77/microservices/reports/internal/entity"
	"github.com/samandr77/microservices/reports/pkg/config"
)

var errNotConfigured = errors.New("mailer is not configured")

type Client struct {
	cfg    config.Mailer
	dialer *gomail.Dialer
}

func New(cfg config.Mailer) *Client {
	dialer := gomail.NewDialer(cfg.Host, cfg.Port, cfg.Login, cfg.Password)

	dialer.TLSConfig = &tls.Config{
		ServerName: cfg.Host,
		MinVersion: tls.VersionTLS12,
	}

	return &Client{
		cfg:    cfg,
		dialer: dialer,
	}
}

func (c *Client) SendWithAttachment(mail entity.Mail) error {
	if c.cfg.Host == "" {
		return errNotConfigured
	}

	err := c.dialer.DialAndSend(c.newMessage(mail))
	if err != nil {
		return fmt.Errorf("failed to send email: %w", err)
	}

	return nil
}

func (c *Client) newMessage(mail entity.Mail) *gomail.Message {
	msg := gomail.NewMessage(
		gomail.SetCharset("UTF-8"),
		gomail.SetEncoding(gomail.Base64),
	)

	msg.SetAddressHeader("From", c.cfg.From, c.cfg.FromName)
	msg.SetHeader("To", mail.Recipients...)
	msg.SetHeader("Subject", mail.Subject)
	msg.SetBody("text/plain", mail.Body)

	data := mail.Data

	msg.Attach(mail.FileName,
		gomail.SetHeader(map[string][]string{"Content-Type": {mail.MimeType}}),
		gomail.SetCopyFunc(func(w io.Writer) error {
			_, err := w.Write(data)
			return err
		}),
	)

	return msg
}
