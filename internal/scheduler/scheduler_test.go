package scheduler

import (
	"context"
	"errors"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/wonny/dayan/pkg/logger"
)

func countingJob(name string, failures int32) (FuncJob, *atomic.Int32) {
	calls := &atomic.Int32{}
	return FuncJob{
		JobName: name,
		Spec:    "0 0 * * * *",
		Fn: func(ctx context.Context) error {
			if calls.Add(1) <= failures {
				return errors.New("boom")
			}
			return nil
		},
	}, calls
}

func newTestScheduler(opts ...Option) *Scheduler {
	return New(logger.Nop(), time.UTC, append([]Option{WithRetry(1, 0)}, opts...)...)
}

func TestAddJob(t *testing.T) {
	s := newTestScheduler()
	job, _ := countingJob("journal", 0)

	require.NoError(t, s.AddJob(job))
	assert.Error(t, s.AddJob(job), "duplicate name")

	bad := FuncJob{JobName: "bad", Spec: "not a cron", Fn: job.Fn}
	assert.Error(t, s.AddJob(bad))
	assert.Equal(t, []string{"journal"}, s.GetAllJobs())
}

func TestRunJobSync_RetriesThenSucceeds(t *testing.T) {
	s := newTestScheduler()
	job, calls := countingJob("flaky", 1)
	require.NoError(t, s.AddJob(job))

	result, err := s.RunJobSync("flaky")
	require.NoError(t, err)
	assert.True(t, result.Success)
	assert.Empty(t, result.Error)
	assert.Equal(t, int32(2), calls.Load())

	history, err := s.GetJobHistory("flaky")
	require.NoError(t, err)
	require.Len(t, history.Results, 1)

	stats := s.GetJobStats()["flaky"]
	assert.Equal(t, 1, stats.TotalRuns)
	assert.Equal(t, 1, stats.SuccessCount)
	assert.Equal(t, "0 0 * * * *", stats.Schedule)
	require.NotNil(t, stats.LastSuccess)
	assert.Nil(t, stats.LastFailure)
}

func TestRunJobSync_FailsAfterRetries(t *testing.T) {
	s := newTestScheduler()
	job, calls := countingJob("broken", 10)
	require.NoError(t, s.AddJob(job))

	result, err := s.RunJobSync("broken")
	require.NoError(t, err)
	assert.False(t, result.Success)
	assert.Equal(t, "boom", result.Error)
	assert.Equal(t, int32(2), calls.Load())

	stats := s.GetJobStats()["broken"]
	assert.Equal(t, 1, stats.FailureCount)
	assert.Equal(t, 0.0, stats.SuccessRate)
	assert.NotNil(t, stats.LastFailure)
}

func TestRunJobSync_Unknown(t *testing.T) {
	s := newTestScheduler()
	_, err := s.RunJobSync("nosuch")
	assert.Error(t, err)
	assert.Error(t, s.RunJob("nosuch"))
}

func TestRunJob_TimeoutReachesJob(t *testing.T) {
	s := newTestScheduler(WithRetry(0, 0), WithTimeout(10*time.Millisecond))
	job := FuncJob{JobName: "slow", Spec: "@hourly", Fn: func(ctx context.Context) error {
		<-ctx.Done()
		return ctx.Err()
	}}
	require.NoError(t, s.AddJob(job))

	result, err := s.RunJobSync("slow")
	require.NoError(t, err)
	assert.False(t, result.Success)
	assert.Contains(t, result.Error, "deadline")
}

func TestRemoveJob(t *testing.T) {
	s := newTestScheduler()
	a, _ := countingJob("b-job", 0)
	b, _ := countingJob("a-job", 0)
	require.NoError(t, s.AddJob(a))
	require.NoError(t, s.AddJob(b))
	assert.Equal(t, []string{"a-job", "b-job"}, s.GetAllJobs())

	require.NoError(t, s.RemoveJob("b-job"))
	assert.Equal(t, []string{"a-job"}, s.GetAllJobs())
	assert.Error(t, s.RemoveJob("b-job"))

	_, err := s.GetJobHistory("b-job")
	assert.Error(t, err)
}

func TestNext(t *testing.T) {
	s := newTestScheduler()
	job, _ := countingJob("hourly", 0)
	require.NoError(t, s.AddJob(job))

	// cron fills Next once started
	s.Start()
	defer s.Stop()

	next, err := s.Next("hourly")
	require.NoError(t, err)
	assert.Equal(t, 0, next.Minute())
	assert.Equal(t, 0, next.Second())
	assert.True(t, next.After(time.Now()))

	_, err = s.Next("nosuch")
	assert.Error(t, err)
}

func TestStop_CancelsRetryWait(t *testing.T) {
	s := New(logger.Nop(), time.UTC, WithRetry(3, time.Hour))
	job, calls := countingJob("waiting", 10)
	require.NoError(t, s.AddJob(job))

	done := make(chan JobResult)
	go func() {
		result, _ := s.RunJobSync("waiting")
		done <- result
	}()

	require.Eventually(t, func() bool { return calls.Load() == 1 }, time.Second, time.Millisecond)
	s.Stop()

	select {
	case result := <-done:
		assert.False(t, result.Success)
	case <-time.After(2 * time.Second):
		t.Fatal("run did not stop")
	}
}
