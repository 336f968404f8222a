package smtp

import (
	"crypto/tls"
	"errors"
	"fmt"
	"io"
	"net"
	netsmtp "net/smtp"
	"strconv"
	"time"

	"github.com/aetherdigital/backend/pkg/email"

	"github.com/go-gomail/gomail"
)

const (
	DefaultTimeout = 10 * time.Second

	implicitTLSPort = 465
)

// SMTPSender delivers messages through an authenticated SMTP relay (STARTTLS on 587,
// implicit TLS on 465). Every session runs on a connection with a deadline of timeout,
// so a relay that stalls after accepting the connection cannot hold a send forever.
type SMTPSender struct {
	from     string
	fromName string
	host     string
	port     int
	auth     netsmtp.Auth
	timeout  time.Duration
}

func NewSMTPSender(from, fromName, username, pass, host string, port int, timeout time.Duration) (*SMTPSender, error) {
	if host == "" {
		return nil, errors.New("empty smtp host")
	}
	if username == "" || pass == "" {
		return nil, errors.New("empty smtp credentials")
	}
	if from == "" {
		from = username
	}
	if !email.IsEmailValid(from) {
		return nil, errors.New("invalid from email")
	}
	if timeout <= 0 {
		timeout = DefaultTimeout
	}

	return &SMTPSender{
		from:     from,
		fromName: fromName,
		host:     host,
		port:     port,
		auth:     netsmtp.PlainAuth("", username, pass, host),
		timeout:  timeout,
	}, nil
}

func (s *SMTPSender) Send(input email.SendEmailInput) error {
	if err := input.Validate(); err != nil {
		return err
	}

	msg := gomail.NewMessage()
	msg.SetHeader("From", msg.FormatAddress(s.from, s.fromName))
	msg.SetHeader("To", input.To)
	msg.SetHeader("Subject", input.Subject)
	msg.SetBody("text/html", input.Body)

	if err := s.deliver(msg); err != nil {
		return fmt.Errorf("smtp send failed: %w", err)
	}

	return nil
}

func (s *SMTPSender) tlsConfig() *tls.Config {
	return &tls.Config{ServerName: s.host, MinVersion: tls.VersionTLS12}
}

func (s *SMTPSender) dial() (net.Conn, error) {
	addr := net.JoinHostPort(s.host, strconv.Itoa(s.port))
	dialer := &net.Dialer{Timeout: s.timeout}

	if s.port == implicitTLSPort {
		return tls.DialWithDialer(dialer, "tcp", addr, s.tlsConfig())
	}

	return dialer.Dial("tcp", addr)
}

func (s *SMTPSender) deliver(msg *gomail.Message) error {
	conn, err := s.dial()
	if err != nil {
		return err
	}
	defer conn.Close()

	if err := conn.SetDeadline(time.Now().Add(s.timeout)); err != nil {
		return err
	}

	c, err := netsmtp.NewClient(conn, s.host)
	if err != nil {
		return err
	}
	defer c.Close()

	if s.port != implicitTLSPort {
		if ok, _ := c.Extension("STARTTLS"); ok {
			if err := c.StartTLS(s.tlsConfig()); err != nil {
				return err
			}
		}
	}

	if ok, _ := c.Extension("AUTH"); ok {
		if err := c.Auth(s.auth); err != nil {
			return err
		}
	}

	send := gomail.SendFunc(func(from string, to []string, m io.WriterTo) error {
		if err := c.Mail(from); err != nil {
			return err
		}
		for _, rcpt := range to {
			if err := c.Rcpt(rcpt); err != nil {
				return err
			}
		}

		w, err := c.Data()
		if err != nil {
			return err
		}
		if _, err := m.WriteTo(w); err != nil {
			_ = w.Close()
			return err
		}
		return w.Close()
	})

	if err := gomail.Send(send, msg); err != nil {
		return err
	}

	return c.Quit()
}
