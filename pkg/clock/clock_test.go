package clock

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var epoch = time.Date(2026, 10, 15, 12, 0, 0, 0, time.UTC)

func TestFake_AdvanceFiresInDeadlineOrder(t *testing.T) {
	c := Fake(epoch)
	var fired []string

	c.AfterFunc(300*time.Millisecond, func() { fired = append(fired, "late") })
	c.AfterFunc(100*time.Millisecond, func() { fired = append(fired, "early") })
	c.AfterFunc(time.Second, func() { fired = append(fired, "never") })
	require.Equal(t, 3, c.PendingCount())

	c.Advance(299 * time.Millisecond)
	assert.Equal(t, []string{"early"}, fired)

	c.Advance(time.Millisecond)
	assert.Equal(t, []string{"early", "late"}, fired)
	assert.Equal(t, 1, c.PendingCount())
	assert.Equal(t, epoch.Add(300*time.Millisecond), c.Now())
}

func TestFake_Stop(t *testing.T) {
	c := Fake(epoch)
	called := false

	timer := c.AfterFunc(time.Second, func() { called = true })
	assert.True(t, timer.Stop())
	assert.False(t, timer.Stop())

	c.Advance(time.Minute)
	assert.False(t, called)
	assert.Zero(t, c.PendingCount())
}

func TestFake_CallbackSchedulesFromAdvancedTime(t *testing.T) {
	c := Fake(epoch)
	count := 0

	c.AfterFunc(100*time.Millisecond, func() {
		count++
		c.AfterFunc(100*time.Millisecond, func() { count++ })
	})

	c.Advance(250 * time.Millisecond)
	assert.Equal(t, 1, count)

	c.Advance(99 * time.Millisecond)
	assert.Equal(t, 1, count)

	c.Advance(time.Millisecond)
	assert.Equal(t, 2, count)
}

func TestFake_ZeroDurationRunsImmediately(t *testing.T) {
	c := Fake(epoch)
	called := false

	timer := c.AfterFunc(0, func() { called = true })
	assert.True(t, called)
	assert.False(t, timer.Stop())
}

func TestFake_Set(t *testing.T) {
	c := Fake(epoch)
	called := false
	c.AfterFunc(time.Second, func() { called = true })

	c.Set(epoch.Add(time.Hour))
	assert.False(t, called)
	assert.Equal(t, epoch.Add(time.Hour), c.Now())
}

func TestTimer_NilStop(t *testing.T) {
	var timer *Timer
	assert.False(t, timer.Stop())
}

func TestReal(t *testing.T) {
	done := make(chan struct{})
	Real().AfterFunc(time.Millisecond, func() { close(done) })

	select {
	case <-done:
	case <-time.After(time.Second):
		t.Fatal("real timer did not fire")
	}
}
