// Package notification sends the emails that follow a stored submission.
// Delivery is best effort: nothing here ever fails the request that
// triggered it.
package notification

import (
	"context"
	"fmt"
	"time"

	"golang.org/x/text/language"

	"github.com/keshevplus/leadhub/internal/domain/identity"
	"github.com/keshevplus/leadhub/internal/domain/submission"
	"github.com/keshevplus/leadhub/internal/infrastructure/email"
	"github.com/keshevplus/leadhub/internal/infrastructure/metrics"
	"github.com/keshevplus/leadhub/internal/shared/config"
	"github.com/keshevplus/leadhub/internal/shared/goroutine"
	"github.com/keshevplus/leadhub/internal/shared/logger"
)

// Mailer delivers one rendered email.
type Mailer interface {
	Send(ctx context.Context, msg email.Message) error
}

// Renderer builds the emails the dispatcher sends.
type Renderer interface {
	LeadNotification(s *submission.Submission, contact *identity.Identity, matchType identity.MatchType) (email.Message, error)
	Acknowledgment(s *submission.Submission, locale language.Tag) (email.Message, error)
	PasswordReset(to, resetURL string) (email.Message, error)
}

// Outcome reports which emails were delivered before the wait deadline.
type Outcome struct {
	AdminNotified      bool
	SenderAcknowledged bool
}

type Dispatcher struct {
	mailer       Mailer
	renderer     Renderer
	adminAddress string
	enabled      bool
	timeout      time.Duration
	logger       logger.Interface
}

func NewDispatcher(mailer Mailer, renderer Renderer, cfg config.EmailConfig, logger logger.Interface) *Dispatcher {
	d := &Dispatcher{
		mailer:       mailer,
		renderer:     renderer,
		adminAddress: cfg.AdminAddress,
		enabled:      cfg.Enabled(),
		timeout:      cfg.GetSendTimeout(),
		logger:       logger,
	}

	if !d.enabled {
		logger.Warnw("email delivery disabled, notifications will be skipped")
	} else if d.adminAddress == "" {
		logger.Warnw("email admin address not configured, admin notifications will fail")
	}

	return d
}

// Notify sends the admin notification and, when the submission carries an
// email, the sender acknowledgment. Both sends run concurrently and Notify
// waits for them until the send timeout or ctx expires. A send that outlives
// the wait keeps running and only logs its result.
func (d *Dispatcher) Notify(ctx context.Context, s *submission.Submission, contact *identity.Identity, matchType identity.MatchType) Outcome {
	if !d.enabled {
		metrics.RecordNotification(metrics.NotificationAdmin, metrics.ResultSkipped)
		metrics.RecordNotification(metrics.NotificationAcknowledgment, metrics.ResultSkipped)
		return Outcome{}
	}

	// Request cancellation must not abort delivery already in flight.
	sendCtx := context.WithoutCancel(ctx)

	admin := d.start(sendCtx, metrics.NotificationAdmin, s, func() (email.Message, error) {
		msg, err := d.renderer.LeadNotification(s, contact, matchType)
		msg.To = d.adminAddress
		return msg, err
	})

	var ack *pendingSend
	if s.EmailOrEmpty() != "" {
		ack = d.start(sendCtx, metrics.NotificationAcknowledgment, s, func() (email.Message, error) {
			return d.renderer.Acknowledgment(s, email.ParseLocale(s.Metadata.Locale))
		})
	} else {
		metrics.RecordNotification(metrics.NotificationAcknowledgment, metrics.ResultSkipped)
	}

	waitCtx, cancel := context.WithTimeout(ctx, d.timeout)
	defer cancel()

	return Outcome{
		AdminNotified:      d.wait(waitCtx, admin),
		SenderAcknowledged: ack != nil && d.wait(waitCtx, ack),
	}
}

// SendPasswordReset delivers the admin password-reset link. Unlike Notify it
// returns the delivery error to the caller.
func (d *Dispatcher) SendPasswordReset(ctx context.Context, to, resetURL string) error {
	if !d.enabled {
		metrics.RecordNotification(metrics.NotificationPasswordReset, metrics.ResultSkipped)
		return email.ErrDisabled
	}

	msg, err := d.renderer.PasswordReset(to, resetURL)
	if err != nil {
		metrics.RecordNotification(metrics.NotificationPasswordReset, metrics.ResultFailed)
		return err
	}

	sendCtx, cancel := context.WithTimeout(ctx, d.timeout)
	defer cancel()

	if err := d.mailer.Send(sendCtx, msg); err != nil {
		metrics.RecordNotification(metrics.NotificationPasswordReset, metrics.ResultFailed)
		return err
	}

	metrics.RecordNotification(metrics.NotificationPasswordReset, metrics.ResultSent)
	return nil
}

// pendingSend is one send running in its own goroutine. err is written before
// done is closed.
type pendingSend struct {
	kind         string
	submissionID uint
	done         <-chan struct{}
	err          error
}

func (d *Dispatcher) start(ctx context.Context, kind string, s *submission.Submission, render func() (email.Message, error)) *pendingSend {
	p := &pendingSend{kind: kind, submissionID: s.ID}
	started := time.Now()

	p.done = goroutine.Go(d.logger, "notify-"+kind, func() {
		// A panic leaves err nil, so it is set up front and cleared on success.
		p.err = fmt.Errorf("%s email was not sent", kind)

		msg, err := render()
		if err != nil {
			p.err = fmt.Errorf("failed to render %s email: %w", kind, err)
			d.logger.Warnw("notification render failed", "kind", kind, "submission_id", s.ID, "error", err)
			return
		}

		if err := d.mailer.Send(ctx, msg); err != nil {
			p.err = err
			d.logger.Warnw("notification send failed",
				"kind", kind,
				"submission_id", s.ID,
				"elapsed", time.Since(started),
				"error", err,
			)
			return
		}

		p.err = nil
		d.logger.Infow("notification sent", "kind", kind, "submission_id", s.ID, "elapsed", time.Since(started))
	})

	return p
}

func (d *Dispatcher) wait(ctx context.Context, p *pendingSend) bool {
	// A send that already finished wins over an expired deadline.
	select {
	case <-p.done:
		return d.finished(p)
	default:
	}

	select {
	case <-p.done:
		return d.finished(p)
	case <-ctx.Done():
		metrics.RecordNotification(p.kind, metrics.ResultTimeout)
		d.logger.Warnw("notification still pending after wait deadline",
			"kind", p.kind,
			"submission_id", p.submissionID,
			"timeout", d.timeout,
		)
		return false
	}
}

func (d *Dispatcher) finished(p *pendingSend) bool {
	if p.err != nil {
		metrics.RecordNotification(p.kind, metrics.ResultFailed)
		return false
	}
	metrics.RecordNotification(p.kind, metrics.ResultSent)
	return true
}
