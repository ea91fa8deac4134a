package cron

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/cmlabs-hris/attendance-backend-go/internal/domain/leave"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAddJobRejectsInvalidSpec(t *testing.T) {
	s := NewScheduler(time.UTC)

	err := s.AddJob("bad", "every day", func(context.Context) error { return nil })
	assert.Error(t, err)
	assert.Empty(t, s.Jobs())

	require.NoError(t, s.AddJob("good", "5 0 * * *", func(context.Context) error { return nil }))
	require.Len(t, s.Jobs(), 1)
	assert.Equal(t, "good", s.Jobs()[0].Name)
}

func TestRunOnceRunsEveryJob(t *testing.T) {
	s := NewScheduler(nil)
	var ran []string

	require.NoError(t, s.AddJob("first", "@daily", func(context.Context) error {
		ran = append(ran, "first")
		return errors.New("ignored")
	}))
	require.NoError(t, s.AddJob("second", "@hourly", func(context.Context) error {
		ran = append(ran, "second")
		return nil
	}))

	s.RunOnce(context.Background())
	assert.Equal(t, []string{"first", "second"}, ran)
}

func TestStartStop(t *testing.T) {
	s := NewScheduler(time.UTC)
	done := make(chan struct{})

	require.NoError(t, s.AddJob("tick", "@every 1s", func(ctx context.Context) error {
		select {
		case done <- struct{}{}:
		default:
		}
		return nil
	}))

	s.Start()
	select {
	case <-done:
	case <-time.After(5 * time.Second):
		t.Fatal("job did not run")
	}
	s.Stop()
}

type fakeLeaveService struct {
	leave.LeaveService
	calls int
	n     int64
	err   error
}

func (f *fakeLeaveService) SyncLeaveStatuses(context.Context) (int64, error) {
	f.calls++
	return f.n, f.err
}

func TestLeaveJobs(t *testing.T) {
	svc := &fakeLeaveService{n: 2}
	jobs := NewLeaveJobs(svc)
	s := NewScheduler(time.UTC)

	require.NoError(t, jobs.RegisterJobs(s, "5 0 * * *"))
	s.RunOnce(context.Background())
	assert.Equal(t, 1, svc.calls)

	svc.err = errors.New("db down")
	assert.ErrorIs(t, jobs.SyncLeaveStatus(context.Background()), svc.err)

	assert.Error(t, jobs.RegisterJobs(s, "not a spec"))
}
