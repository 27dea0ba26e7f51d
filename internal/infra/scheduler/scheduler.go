package scheduler

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/robfig/cron/v3"
	"github.com/sirupsen/logrus"
)

// ParseSchedule accepts a standard five-field cron expression, a descriptor
// such as "@hourly" or "@every 5m", or a bare duration like "300s".
func ParseSchedule(raw string) (cron.Schedule, error) {
	s := strings.TrimSpace(raw)
	if s == "" {
		return nil, fmt.Errorf("poll schedule required")
	}
	if d, err := time.ParseDuration(s); err == nil {
		if d < time.Second {
			return nil, fmt.Errorf("poll interval %s is below one second", d)
		}
		return cron.Every(d), nil
	}
	sched, err := cron.ParseStandard(s)
	if err != nil {
		return nil, fmt.Errorf("invalid poll schedule %q: %w", s, err)
	}
	return sched, nil
}

// PollScheduler decides when the next poll happens and blocks until then.
// Sleeping is the only suspension point of the polling loop.
type PollScheduler struct {
	schedule   cron.Schedule
	errorDelay time.Duration
	logger     *logrus.Entry
	now        func() time.Time
	sleep      func(ctx context.Context, d time.Duration) error
}

func NewPollScheduler(spec string, errorDelay time.Duration, logger *logrus.Entry) (*PollScheduler, error) {
	sched, err := ParseSchedule(spec)
	if err != nil {
		return nil, err
	}
	return &PollScheduler{
		schedule:   sched,
		errorDelay: errorDelay,
		logger:     logger,
		now:        time.Now,
		sleep:      Sleep,
	}, nil
}

// NextPoll returns the wake time of the regular schedule after t.
func (s *PollScheduler) NextPoll(t time.Time) time.Time {
	return s.schedule.Next(t)
}

// WaitNext sleeps until the next regular poll.
func (s *PollScheduler) WaitNext(ctx context.Context) error {
	now := s.now()
	next := s.NextPoll(now)
	s.logger.Debugf("Next poll at %s", next.Format(time.RFC3339))
	return s.sleep(ctx, next.Sub(now))
}

// WaitRetry sleeps the short delay used after a failed iteration.
func (s *PollScheduler) WaitRetry(ctx context.Context) error {
	s.logger.Debugf("Retrying in %s", s.errorDelay)
	return s.sleep(ctx, s.errorDelay)
}

// Sleep blocks for d or until ctx is done, whichever comes first.
func Sleep(ctx context.Context, d time.Duration) error {
	if d <= 0 {
		return ctx.Err()
	}
	t := time.NewTimer(d)
	defer t.Stop()
	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-t.C:
		return nil
	}
}
