package email

import (
	"context"
	"crypto/tls"
	"errors"
	"fmt"
	"io"
	"net"
	"net/smtp"
	"strconv"
	"time"

	"gopkg.in/gomail.v2"

	"github.com/keshevplus/leadhub/internal/shared/config"
)

// ErrDisabled is returned by senders built without an SMTP host.
var ErrDisabled = errors.New("email delivery is disabled")

// Message is one outbound email. Text is sent as the primary body and HTML as
// the alternative part.
type Message struct {
	To      string
	ReplyTo string
	Subject string
	HTML    string
	Text    string
}

// SMTPSender builds messages with gomail and delivers them over a connection
// whose deadline follows the caller's context.
type SMTPSender struct {
	config config.EmailConfig
	// sessionTimeout bounds a send whose context carries no deadline.
	sessionTimeout time.Duration
}

func NewSMTPSender(cfg config.EmailConfig) *SMTPSender {
	return &SMTPSender{
		config:         cfg,
		sessionTimeout: 3 * cfg.GetSendTimeout(),
	}
}

// Send dials the SMTP server and delivers msg. The whole session, from dial
// to QUIT, ends at ctx's deadline or after sessionTimeout.
func (s *SMTPSender) Send(ctx context.Context, msg Message) error {
	if !s.config.Enabled() {
		return ErrDisabled
	}
	if msg.To == "" {
		return fmt.Errorf("email has no recipient")
	}
	if err := ctx.Err(); err != nil {
		return err
	}

	m := gomail.NewMessage()
	if s.config.FromName != "" {
		m.SetAddressHeader("From", s.config.FromAddress, s.config.FromName)
	} else {
		m.SetHeader("From", s.config.FromAddress)
	}
	m.SetHeader("To", msg.To)
	if msg.ReplyTo != "" {
		m.SetHeader("Reply-To", msg.ReplyTo)
	}
	m.SetHeader("Subject", msg.Subject)
	m.SetBody("text/plain", msg.Text)
	if msg.HTML != "" {
		m.AddAlternative("text/html", msg.HTML)
	}

	if err := s.deliver(ctx, m); err != nil {
		return fmt.Errorf("failed to send email: %w", err)
	}

	return nil
}

func (s *SMTPSender) deliver(ctx context.Context, m *gomail.Message) error {
	ctx, cancel := s.withSessionDeadline(ctx)
	defer cancel()
	deadline, _ := ctx.Deadline()

	host := s.config.SMTPHost
	addr := net.JoinHostPort(host, strconv.Itoa(s.config.SMTPPort))

	var dialer net.Dialer
	conn, err := dialer.DialContext(ctx, "tcp", addr)
	if err != nil {
		return err
	}
	if err := conn.SetDeadline(deadline); err != nil {
		_ = conn.Close()
		return err
	}
	// unblock reads and writes as soon as ctx is canceled
	stop := context.AfterFunc(ctx, func() { _ = conn.SetDeadline(time.Now()) })
	defer stop()

	tlsConfig := &tls.Config{ServerName: host}
	implicitTLS := s.config.SMTPPort == 465
	if implicitTLS {
		conn = tls.Client(conn, tlsConfig)
	}

	c, err := smtp.NewClient(conn, host)
	if err != nil {
		_ = conn.Close()
		return err
	}
	defer c.Close()

	if !implicitTLS {
		if ok, _ := c.Extension("STARTTLS"); ok {
			if err := c.StartTLS(tlsConfig); err != nil {
				return err
			}
		}
	}
	if s.config.SMTPUser != "" {
		if ok, _ := c.Extension("AUTH"); ok {
			if err := c.Auth(smtp.PlainAuth("", s.config.SMTPUser, s.config.SMTPPassword, host)); err != nil {
				return err
			}
		}
	}

	send := gomail.SendFunc(func(from string, to []string, body io.WriterTo) error {
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
		if _, err := body.WriteTo(w); err != nil {
			_ = w.Close()
			return err
		}
		return w.Close()
	})
	if err := gomail.Send(send, m); err != nil {
		return err
	}

	return c.Quit()
}

func (s *SMTPSender) withSessionDeadline(ctx context.Context) (context.Context, context.CancelFunc) {
	if _, ok := ctx.Deadline(); ok {
		return context.WithCancel(ctx)
	}
	return context.WithTimeout(ctx, s.sessionTimeout)
}
