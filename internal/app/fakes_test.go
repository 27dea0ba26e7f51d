package app

import (
	"context"
	"time"

	"homework_status_bot/internal/domain/homework"
	domainTelegram "homework_status_bot/internal/domain/telegram"

	"github.com/sirupsen/logrus"
	"github.com/sirupsen/logrus/hooks/test"
	"gopkg.in/telebot.v3"
)

type fetchResult struct {
	snap  *homework.Snapshot
	err   error
	panic string
}

type fakeSource struct {
	results []fetchResult
	cursors []int64
}

func (f *fakeSource) Fetch(_ context.Context, cursor int64) (*homework.Snapshot, error) {
	f.cursors = append(f.cursors, cursor)
	if len(f.results) == 0 {
		return &homework.Snapshot{}, nil
	}
	r := f.results[0]
	f.results = f.results[1:]
	if r.panic != "" {
		panic(r.panic)
	}
	return r.snap, r.err
}

type fakeSender struct {
	messages []string
	errs     []error // consumed per call, nil when exhausted
}

func (f *fakeSender) Notify(_ context.Context, message string) (*domainTelegram.Receipt, error) {
	f.messages = append(f.messages, message)
	var err error
	if len(f.errs) > 0 {
		err, f.errs = f.errs[0], f.errs[1:]
	}
	if err != nil {
		return nil, err
	}
	return &domainTelegram.Receipt{MessageID: len(f.messages)}, nil
}

// fakeWaiter records the waits and cancels the loop after limit of them.
type fakeWaiter struct {
	waits  []string
	limit  int
	cancel context.CancelFunc
}

func (f *fakeWaiter) wait(ctx context.Context, kind string) error {
	f.waits = append(f.waits, kind)
	if len(f.waits) >= f.limit {
		f.cancel()
	}
	return ctx.Err()
}

func (f *fakeWaiter) WaitNext(ctx context.Context) error  { return f.wait(ctx, "next") }
func (f *fakeWaiter) WaitRetry(ctx context.Context) error { return f.wait(ctx, "retry") }

type fakeTelegramClient struct {
	chatID int64
	text   string
	err    error
}

func (f *fakeTelegramClient) SendMessage(chatID int64, text string, _ *telebot.SendOptions) (*domainTelegram.Receipt, error) {
	f.chatID, f.text = chatID, text
	if f.err != nil {
		return nil, f.err
	}
	return &domainTelegram.Receipt{MessageID: 7, ChatID: chatID, SentAt: time.Unix(1000, 0)}, nil
}

func newTestLogger() (*logrus.Entry, *test.Hook) {
	l, hook := test.NewNullLogger()
	l.SetLevel(logrus.DebugLevel)
	return logrus.NewEntry(l), hook
}

func int64Ptr(v int64) *int64 { return &v }

func strPtr(s string) *string { return &s }

func statusPtr(s homework.Status) *homework.Status { return &s }
