package hold

import (
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestFiresOnceAfterFullHold(t *testing.T) {
	var fires atomic.Int32
	g := New(func() { fires.Add(1) }, WithDuration(300*time.Millisecond))

	g.Start()
	time.Sleep(800 * time.Millisecond)

	assert.Equal(t, int32(1), fires.Load())
	assert.True(t, g.Fired())
	assert.Equal(t, 100.0, g.Progress())
}

func TestReleaseDrainsWithoutFiring(t *testing.T) {
	var fires atomic.Int32
	g := New(func() { fires.Add(1) }, WithDuration(2*time.Second))

	g.Start()
	time.Sleep(350 * time.Millisecond)
	midway := g.Progress()
	assert.Greater(t, midway, 0.0)
	assert.Less(t, midway, 100.0)

	g.End()
	time.Sleep(100 * time.Millisecond)
	assert.Less(t, g.Progress(), midway)

	// Прогресс полностью стекает к нулю.
	time.Sleep(1 * time.Second)
	assert.Equal(t, 0.0, g.Progress())
	assert.Equal(t, int32(0), fires.Load())
	assert.False(t, g.Fired())
}

func TestLockedUntilReset(t *testing.T) {
	var fires atomic.Int32
	g := New(func() { fires.Add(1) }, WithDuration(100*time.Millisecond))

	g.Start()
	time.Sleep(500 * time.Millisecond)
	assert.Equal(t, int32(1), fires.Load())

	// Повторное удержание после срабатывания игнорируется.
	g.Start()
	time.Sleep(500 * time.Millisecond)
	assert.Equal(t, int32(1), fires.Load())
	assert.Equal(t, 100.0, g.Progress())

	g.Reset()
	assert.False(t, g.Fired())
	assert.Equal(t, 0.0, g.Progress())

	g.Start()
	time.Sleep(500 * time.Millisecond)
	assert.Equal(t, int32(2), fires.Load())
}

func TestRepeatedStartDoesNotSpeedUpFill(t *testing.T) {
	g := New(func() {}, WithDuration(2*time.Second))

	g.Start()
	g.Start()
	g.Start()
	time.Sleep(350 * time.Millisecond)

	// За ~350мс при шаге в 100мс прогресс должен быть около 15 процентов,
	// дублирующие вызовы Start не ускоряют заполнение.
	assert.Less(t, g.Progress(), 40.0)
	g.End()
}

func TestEndWithoutStartIsSafe(t *testing.T) {
	g := New(func() {})
	g.End()
	assert.Equal(t, 0.0, g.Progress())
}

func TestResumeAfterPartialDrain(t *testing.T) {
	var fires atomic.Int32
	g := New(func() { fires.Add(1) }, WithDuration(500*time.Millisecond))

	g.Start()
	time.Sleep(250 * time.Millisecond)
	g.End()
	time.Sleep(100 * time.Millisecond)

	// Повторное удержание продолжает с текущего уровня и доводит до конца.
	g.Start()
	time.Sleep(800 * time.Millisecond)
	assert.Equal(t, int32(1), fires.Load())
}
