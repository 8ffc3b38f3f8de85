package scheduler

import (
	"context"
	"errors"
	"testing"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"

	"github.com/mamadbah2/farmledger/internal/config"
)

type fakeArchiver struct {
	calls int
	err   error
}

func (f *fakeArchiver) Rollover(context.Context) error {
	f.calls++
	return f.err
}

type staticDigest string

func (d staticDigest) BuildDigest() string { return string(d) }

type fakeNotifier struct {
	messages []string
	err      error
}

func (f *fakeNotifier) NotifyManager(_ context.Context, message string) error {
	f.messages = append(f.messages, message)
	return f.err
}

var schedule = config.ScheduleConfig{ArchiveCron: "5 0 * * *", DigestCron: "0 7 * * 1"}

func TestRunArchiveLogsFailure(t *testing.T) {
	core, logs := observer.New(zapcore.InfoLevel)
	archiver := &fakeArchiver{err: errors.New("mongo down")}
	s := NewScheduler(schedule, nil, archiver, staticDigest(""), nil, zap.New(core))

	s.runArchive()

	if archiver.calls != 1 {
		t.Fatalf("expected one rollover, got %d", archiver.calls)
	}
	if logs.FilterMessage("archive rollover failed").Len() != 1 {
		t.Fatalf("expected failure log, got %v", logs.All())
	}
}

func TestSendDigestDeliversToManager(t *testing.T) {
	notifier := &fakeNotifier{}
	s := NewScheduler(schedule, nil, &fakeArchiver{}, staticDigest("Farm digest"), notifier, nil)

	s.sendDigest()

	if len(notifier.messages) != 1 || notifier.messages[0] != "Farm digest" {
		t.Fatalf("unexpected messages %v", notifier.messages)
	}
}

func TestSendDigestLogsFailure(t *testing.T) {
	core, logs := observer.New(zapcore.InfoLevel)
	notifier := &fakeNotifier{err: errors.New("401")}
	s := NewScheduler(schedule, nil, &fakeArchiver{}, staticDigest("x"), notifier, zap.New(core))

	s.sendDigest()

	if logs.FilterMessage("failed to send weekly digest").Len() != 1 {
		t.Fatalf("expected failure log, got %v", logs.All())
	}
}

func TestStartRegistersJobs(t *testing.T) {
	tests := []struct {
		name     string
		notifier ManagerNotifier
		want     int
	}{
		{name: "archive only", want: 1},
		{name: "archive and digest", notifier: &fakeNotifier{}, want: 2},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s := NewScheduler(schedule, nil, &fakeArchiver{}, staticDigest(""), tt.notifier, nil)
			if err := s.Start(); err != nil {
				t.Fatalf("start: %v", err)
			}
			defer s.Stop()
			if got := len(s.cron.Entries()); got != tt.want {
				t.Fatalf("expected %d entries, got %d", tt.want, got)
			}
		})
	}
}

func TestStartRejectsBadCronExpression(t *testing.T) {
	s := NewScheduler(config.ScheduleConfig{ArchiveCron: "nope"}, nil, &fakeArchiver{}, staticDigest(""), nil, nil)
	if err := s.Start(); err == nil {
		t.Fatalf("expected error for invalid cron spec")
	}
}
