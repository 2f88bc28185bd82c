package email

import (
	"context"
	"net"
	"strconv"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/keshevplus/leadhub/internal/shared/config"
)

func TestSMTPSender_Disabled(t *testing.T) {
	s := NewSMTPSender(config.EmailConfig{})

	err := s.Send(context.Background(), Message{To: "a@example.com", Subject: "x", Text: "y"})
	assert.ErrorIs(t, err, ErrDisabled)
}

func TestSMTPSender_RequiresRecipient(t *testing.T) {
	s := NewSMTPSender(config.EmailConfig{SMTPHost: "localhost", SMTPPort: 2525})

	err := s.Send(context.Background(), Message{Subject: "x", Text: "y"})
	assert.Error(t, err)
}

func TestSMTPSender_CanceledContext(t *testing.T) {
	s := NewSMTPSender(config.EmailConfig{SMTPHost: "localhost", SMTPPort: 2525})
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	err := s.Send(ctx, Message{To: "a@example.com", Subject: "x", Text: "y"})
	assert.ErrorIs(t, err, context.Canceled)
}

// silentServer accepts connections and never sends the SMTP greeting.
func silentServer(t *testing.T) (string, int) {
	t.Helper()
	ln, err := net.Listen("tcp", "127.0.0.1:0")
	require.NoError(t, err)

	var conns []net.Conn
	done := make(chan struct{})
	go func() {
		defer close(done)
		for {
			c, err := ln.Accept()
			if err != nil {
				return
			}
			conns = append(conns, c)
		}
	}()
	t.Cleanup(func() {
		_ = ln.Close()
		<-done
		for _, c := range conns {
			_ = c.Close()
		}
	})

	host, port, err := net.SplitHostPort(ln.Addr().String())
	require.NoError(t, err)
	p, err := strconv.Atoi(port)
	require.NoError(t, err)
	return host, p
}

func TestSMTPSender_StalledServerHonorsContextDeadline(t *testing.T) {
	host, port := silentServer(t)
	s := NewSMTPSender(config.EmailConfig{SMTPHost: host, SMTPPort: port, FromAddress: "site@example.com", SendTimeout: 60})

	ctx, cancel := context.WithTimeout(context.Background(), 200*time.Millisecond)
	defer cancel()

	started := time.Now()
	err := s.Send(ctx, Message{To: "a@example.com", Subject: "x", Text: "y"})
	require.Error(t, err)
	assert.Less(t, time.Since(started), 5*time.Second)
}

func TestSMTPSender_StalledServerWithoutDeadline(t *testing.T) {
	host, port := silentServer(t)
	s := NewSMTPSender(config.EmailConfig{SMTPHost: host, SMTPPort: port, FromAddress: "site@example.com"})
	s.sessionTimeout = 200 * time.Millisecond

	started := time.Now()
	err := s.Send(context.Background(), Message{To: "a@example.com", Subject: "x", Text: "y"})
	require.Error(t, err)
	assert.Less(t, time.Since(started), 5*time.Second)
}
