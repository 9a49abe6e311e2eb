package mainloop

import (
	"context"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"testing"
	"time"
)

func TestLoop_RunsInOrder(t *testing.T) {
	a := assert.New(t)
	sut := New(10)

	var calls []int
	sut.Dispatch(func() { calls = append(calls, 1) })
	sut.Dispatch(func() { calls = append(calls, 2) })
	sut.Dispatch(func() {
		calls = append(calls, 3)
		sut.Stop()
	})

	err := sut.Run(context.Background())

	a.Nil(err)
	a.Equal([]int{1, 2, 3}, calls)
}

func TestLoop_DispatchFromOtherGoroutine(t *testing.T) {
	r := require.New(t)
	sut := New(0)

	result := make(chan string, 1)
	go func() {
		sut.Dispatch(func() {
			result <- "done"
			sut.Stop()
		})
	}()

	r.Nil(sut.Run(context.Background()))
	r.Equal("done", <-result)
}

func TestLoop_ContextCancel(t *testing.T) {
	a := assert.New(t)
	sut := New(1)

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Millisecond)
	defer cancel()

	a.ErrorIs(sut.Run(ctx), context.DeadlineExceeded)
}

func TestLoop_DispatchAfterStopIsDropped(t *testing.T) {
	a := assert.New(t)
	sut := New(0)
	sut.Stop()
	sut.Stop()

	called := false
	sut.Dispatch(func() { called = true })

	a.Nil(sut.Run(context.Background()))
	a.False(called)
}

func TestImmediate(t *testing.T) {
	a := assert.New(t)

	called := false
	Immediate{}.Dispatch(func() { called = true })

	a.True(called)
}

func TestLoop_Call(t *testing.T) {
	t.Run("Waits for the function", func(t *testing.T) {
		a := assert.New(t)
		sut := New(0)
		go func() {
			_ = sut.Run(context.Background())
		}()
		defer sut.Stop()

		value := 0
		err := sut.Call(func() { value = 42 })

		a.Nil(err)
		a.Equal(42, value)
	})
	t.Run("Stopped loop", func(t *testing.T) {
		a := assert.New(t)
		sut := New(1)
		sut.Stop()

		called := false
		err := sut.Call(func() { called = true })

		a.ErrorIs(err, ErrStopped)
		a.False(called)
	})
	t.Run("Run returned on context cancel", func(t *testing.T) {
		a := assert.New(t)
		sut := New(1)
		ctx, cancel := context.WithCancel(context.Background())
		cancel()
		a.ErrorIs(sut.Run(ctx), context.Canceled)

		called := false
		err := sut.Call(func() { called = true })

		a.ErrorIs(err, ErrStopped)
		a.False(called)
	})
}
