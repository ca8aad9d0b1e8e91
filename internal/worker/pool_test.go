package worker

import (
	"context"
	"errors"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestPool_RunsEveryTask(t *testing.T) {
	p := NewPool(3, 0)
	results := p.Run(context.Background())

	var ran atomic.Int32
	boom := errors.New("boom")
	go func() {
		for i := 0; i < 10; i++ {
			i := i
			p.Submit(func(context.Context) error {
				ran.Add(1)
				if i%5 == 0 {
					return boom
				}
				return nil
			})
		}
		p.Close()
	}()

	var total, failed int
	for r := range results {
		total++
		if r.Err != nil {
			failed++
		}
	}
	assert.Equal(t, 10, total)
	assert.Equal(t, 2, failed)
	assert.Equal(t, int32(10), ran.Load())
}

func TestPool_BoundsConcurrency(t *testing.T) {
	p := NewPool(2, 8)
	results := p.Run(context.Background())

	var inside, peak atomic.Int32
	for i := 0; i < 8; i++ {
		p.Submit(func(context.Context) error {
			n := inside.Add(1)
			for {
				old := peak.Load()
				if n <= old || peak.CompareAndSwap(old, n) {
					break
				}
			}
			time.Sleep(5 * time.Millisecond)
			inside.Add(-1)
			return nil
		})
	}
	p.Close()
	for range results {
	}

	assert.LessOrEqual(t, peak.Load(), int32(2))
}

func TestPool_StopsOnCancel(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	p := NewPool(1, 4)
	p.SetRateLimit(1)
	results := p.Run(ctx)

	for i := 0; i < 4; i++ {
		p.Submit(func(context.Context) error { return nil })
	}
	cancel()

	done := make(chan struct{})
	go func() {
		for range results {
		}
		close(done)
	}()
	select {
	case <-done:
	case <-time.After(2 * time.Second):
		t.Fatal("pool did not stop after cancel")
	}
}
