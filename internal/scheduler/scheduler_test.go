package scheduler

import (
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestScheduler_ScheduleInterval(t *testing.T) {
	s := New()

	var runs atomic.Int32
	_, err := s.ScheduleInterval(time.Second, func() {
		runs.Add(1)
	})
	require.NoError(t, err)

	s.Start()
	defer s.Stop()

	assert.Eventually(t, func() bool {
		return runs.Load() >= 1
	}, 3*time.Second, 100*time.Millisecond, "job should run at least once")
}

func TestScheduler_ScheduleInterval_InvalidInterval(t *testing.T) {
	s := New()

	_, err := s.ScheduleInterval(0, func() {})
	require.Error(t, err)

	_, err = s.ScheduleInterval(-time.Minute, func() {})
	require.Error(t, err)
}

func TestScheduler_SubSecondIntervalRoundsUp(t *testing.T) {
	s := New()

	// интервал меньше секунды округляется до одной секунды
	_, err := s.ScheduleInterval(100*time.Millisecond, func() {})
	require.NoError(t, err)
}

func TestScheduler_StopWaitsForRunningJobs(t *testing.T) {
	s := New()

	done := make(chan struct{})
	started := make(chan struct{})
	_, err := s.ScheduleInterval(time.Second, func() {
		close(started)
		time.Sleep(200 * time.Millisecond)
		close(done)
	})
	require.NoError(t, err)

	s.Start()
	select {
	case <-started:
	case <-time.After(3 * time.Second):
		t.Fatal("job did not start")
	}

	s.Stop()
	select {
	case <-done:
	default:
		t.Fatal("Stop returned before running job finished")
	}
}
