package services

import (
	"context"
	"fmt"
	"testing"
	"time"

	"pg-backend/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestActivityRecentNewestFirst(t *testing.T) {
	env := newTestEnv(t)
	for i := 0; i < 12; i++ {
		env.activity.Log(models.ActivityRoomUpdated, fmt.Sprintf("change %d", i), "101", "", nil)
	}

	recent, err := env.activity.Recent(5)
	require.NoError(t, err)
	require.Len(t, recent, 5)
	assert.Equal(t, "change 11", recent[0].Description)
}

func TestActivityRecentClampsLimit(t *testing.T) {
	env := newTestEnv(t)
	env.activity.Log(models.ActivityRoomCreated, "one", "101", "", nil)
	env.activity.Log(models.ActivityRoomCreated, "two", "102", "", nil)

	recent, err := env.activity.Recent(-3)
	require.NoError(t, err)
	assert.Len(t, recent, 2, "a nonsense limit falls back to the default")

	recent, err = env.activity.Recent(9999)
	require.NoError(t, err)
	assert.Len(t, recent, 2)
}

func TestReminderSchedulerStopsOnCancel(t *testing.T) {
	_, svc, _ := newNotificationEnv(t)
	svc.now = func() time.Time { return time.Date(2025, 8, 20, 10, 0, 0, 0, time.UTC) }

	scheduler := NewReminderScheduler(svc)
	scheduler.interval = 5 * time.Millisecond

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan struct{})
	go func() {
		scheduler.Run(ctx)
		close(done)
	}()

	time.Sleep(25 * time.Millisecond)
	cancel()

	select {
	case <-done:
	case <-time.After(time.Second):
		t.Fatal("scheduler did not stop after cancel")
	}
}
