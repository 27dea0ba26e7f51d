// internal/app/poller.go
package app

import (
	"context"
	"fmt"
	"time"

	"homework_status_bot/internal/domain/homework"
	domainTelegram "homework_status_bot/internal/domain/telegram"
	"homework_status_bot/internal/infra/metrics"

	"github.com/sirupsen/logrus"
)

// crashPrefix starts the message the chat receives when an iteration fails.
const crashPrefix = "Bot crashed with error: "

// Outcome classifies a finished poll iteration.
type Outcome int

const (
	OutcomeNoChange Outcome = iota
	OutcomeNotified
	OutcomeFetchFailed
	OutcomeFailed
)

func (o Outcome) String() string {
	switch o {
	case OutcomeNoChange:
		return "no_change"
	case OutcomeNotified:
		return "notified"
	case OutcomeFetchFailed:
		return "fetch_failed"
	case OutcomeFailed:
		return "failed"
	default:
		return fmt.Sprintf("outcome(%d)", int(o))
	}
}

// MessageSender is the notification side of the loop.
type MessageSender interface {
	Notify(ctx context.Context, message string) (*domainTelegram.Receipt, error)
}

// Waiter blocks between iterations.
type Waiter interface {
	WaitNext(ctx context.Context) error
	WaitRetry(ctx context.Context) error
}

// Observer receives loop statistics. *metrics.Recorder implements it.
type Observer interface {
	ObservePoll(result string)
	ObserveNotification(kind string, err error)
	SetCursor(unix int64)
}

type noopObserver struct{}

func (noopObserver) ObservePoll(string) {}
func (noopObserver) ObserveNotification(string, error) {}
func (noopObserver) SetCursor(int64) {}

// StatusPoller owns the polling cursor and runs fetch, translate, notify and
// wait strictly in sequence.
type StatusPoller struct {
	source   homework.Source
	notifier MessageSender
	waiter   Waiter
	observer Observer
	logger   *logrus.Entry
	now      func() time.Time
	cursor   int64
}

// NewStatusPoller creates a poller whose cursor starts at the current time.
// observer may be nil.
func NewStatusPoller(source homework.Source, notifier MessageSender, waiter Waiter, observer Observer, logger *logrus.Entry) *StatusPoller {
	if observer == nil {
		observer = noopObserver{}
	}
	p := &StatusPoller{
		source:   source,
		notifier: notifier,
		waiter:   waiter,
		observer: observer,
		logger:   logger,
		now:      time.Now,
	}
	p.cursor = p.now().Unix()
	return p
}

// Cursor returns the timestamp the next fetch starts from.
func (p *StatusPoller) Cursor() int64 {
	return p.cursor
}

// Run polls until ctx is cancelled. Failures never stop the loop.
func (p *StatusPoller) Run(ctx context.Context) error {
	p.logger.WithField("cursor", p.cursor).Info("Status polling started")
	p.observer.SetCursor(p.cursor)

	for {
		outcome, err := p.Iterate(ctx)
		if ctx.Err() != nil {
			p.logger.Info("Status polling stopped")
			return ctx.Err()
		}

		var waitErr error
		switch {
		case err != nil:
			p.reportFailure(ctx, err)
			waitErr = p.waiter.WaitRetry(ctx)
		case outcome == OutcomeFetchFailed:
			waitErr = p.waiter.WaitRetry(ctx)
		default:
			waitErr = p.waiter.WaitNext(ctx)
		}
		if waitErr != nil {
			p.logger.Info("Status polling stopped")
			return waitErr
		}
	}
}

// Iterate performs a single fetch-translate-notify pass. The cursor advances
// only after a successful fetch that carried current_date and, when there
// was something to report, after the notification went out.
func (p *StatusPoller) Iterate(ctx context.Context) (outcome Outcome, err error) {
	defer func() {
		if r := recover(); r != nil {
			outcome, err = OutcomeFailed, fmt.Errorf("poll iteration panicked: %v", r)
		}
		if err != nil {
			p.observer.ObservePoll(metrics.PollFailed)
		}
	}()

	snap, ok := p.fetch(ctx)
	if !ok {
		p.observer.ObservePoll(metrics.PollFetchError)
		return OutcomeFetchFailed, nil
	}

	outcome = OutcomeNoChange
	if rec, found := snap.Latest(); found {
		if code := rec.StatusCode(); !code.Known() {
			p.logger.WithField("status", string(code)).Warn("Unrecognized homework status, sending the fallback verdict")
		}
		message := homework.Translate(rec)
		_, err := p.notifier.Notify(ctx, message)
		p.observer.ObserveNotification("status", err)
		if err != nil {
			return OutcomeFailed, fmt.Errorf("failed to deliver status update: %w", err)
		}
		outcome = OutcomeNotified
		p.observer.ObservePoll(metrics.PollNewStatus)
	} else {
		p.logger.Debug("No homework updates")
		p.observer.ObservePoll(metrics.PollNoChange)
	}

	p.advance(snap)
	return outcome, nil
}

// fetch swallows request and decode errors: they are logged and reported as
// an empty result.
func (p *StatusPoller) fetch(ctx context.Context) (*homework.Snapshot, bool) {
	snap, err := p.source.Fetch(ctx, p.cursor)
	if err != nil {
		p.logger.WithError(err).WithField("cursor", p.cursor).Error("Failed to fetch homework statuses")
		return &homework.Snapshot{}, false
	}
	return snap, true
}

func (p *StatusPoller) advance(snap *homework.Snapshot) {
	next, ok := snap.NextCursor()
	if !ok {
		p.logger.WithField("cursor", p.cursor).Warn("Response has no current_date, keeping cursor")
		return
	}
	p.logger.WithFields(logrus.Fields{"from": p.cursor, "to": next}).Debug("Cursor advanced")
	p.cursor = next
	p.observer.SetCursor(next)
}

// reportFailure logs err and tries to tell the chat about it. A failed
// delivery here is only logged.
func (p *StatusPoller) reportFailure(ctx context.Context, err error) {
	p.logger.WithError(err).Error("Poll iteration failed")
	_, sendErr := p.notifier.Notify(ctx, crashPrefix+err.Error())
	p.observer.ObserveNotification("crash", sendErr)
	if sendErr != nil {
		p.logger.WithError(sendErr).Error("Failed to report the crash to the chat")
	}
}
