/*
 * MIT License
 *
 * Copyright (c) 2022 Nicolas JUHEL
 *
 * Permission is hereby granted, free of charge, to any person obtaining a copy
 * of this software and associated documentation files (the "Software"), to deal
 * in the Software without restriction, including without limitation the rights
 * to use, copy, modify, merge, publish, distribute, sublicense, and/or sell
 * copies of the Software, and to permit persons to whom the Software is
 * furnished to do so, subject to the following conditions:
 *
 * The above copyright notice and this permission notice shall be included in all
 * copies or substantial portions of the Software.
 *
 * THE SOFTWARE IS PROVIDED "AS IS", WITHOUT WARRANTY OF ANY KIND, EXPRESS OR
 * IMPLIED, INCLUDING BUT NOT LIMITED TO THE WARRANTIES OF MERCHANTABILITY,
 * FITNESS FOR A PARTICULAR PURPOSE AND NONINFRINGEMENT. IN NO EVENT SHALL THE
 * AUTHORS OR COPYRIGHT HOLDERS BE LIABLE FOR ANY CLAIM, DAMAGES OR OTHER
 * LIABILITY, WHETHER IN AN ACTION OF CONTRACT, TORT OR OTHERWISE, ARISING FROM,
 * OUT OF OR IN CONNECTION WITH THE SOFTWARE OR THE USE OR OTHER DEALINGS IN THE
 * SOFTWARE.
 *
 *
 */

// Package ticker wraps a time.Ticker into a restartable lifecycle matching
// startStop's shape, so periodic work (reaping, keep-alives, next-wake
// scheduling) can be started, stopped and restarted uniformly.
package ticker

import (
	"context"
	"errors"
	"sync"
	"sync/atomic"
	"time"
)

// minInterval is substituted whenever the requested interval is not
// strictly positive, since time.NewTicker panics on a non-positive duration.
const minInterval = time.Millisecond

// FuncTick is invoked on every tick. A returned error is recorded but does
// not stop the ticker; only Stop or context cancellation does.
type FuncTick func(ctx context.Context, tck *time.Ticker) error

// Ticker is a restartable periodic task with error history.
type Ticker interface {
	Start(ctx context.Context) error
	Stop(ctx context.Context) error
	Restart(ctx context.Context) error
	IsRunning() bool
	Uptime() time.Duration
	ErrorsLast() error
	ErrorsList() []error
}

type ticker struct {
	interval time.Duration
	fn       FuncTick

	mu   sync.Mutex
	cnl  context.CancelFunc
	done chan struct{}

	running atomic.Bool
	started atomic.Int64

	errMu sync.Mutex
	errs  []error
}

// New builds a Ticker firing fn roughly every d. A non-positive d is
// replaced by a minimal positive interval rather than panicking. fn may be
// nil, in which case each tick is a no-op.
func New(d time.Duration, fn FuncTick) Ticker {
	if d <= 0 {
		d = minInterval
	}

	return &ticker{interval: d, fn: fn}
}

func (t *ticker) addErr(err error) {
	if err == nil {
		return
	}

	t.errMu.Lock()
	t.errs = append(t.errs, err)
	t.errMu.Unlock()
}

func (t *ticker) ErrorsLast() error {
	t.errMu.Lock()
	defer t.errMu.Unlock()

	if len(t.errs) == 0 {
		return nil
	}

	return t.errs[len(t.errs)-1]
}

func (t *ticker) ErrorsList() []error {
	t.errMu.Lock()
	defer t.errMu.Unlock()

	out := make([]error, len(t.errs))
	copy(out, t.errs)

	return out
}

func (t *ticker) Start(ctx context.Context) error {
	t.mu.Lock()
	defer t.mu.Unlock()

	if t.cnl != nil {
		t.cnl()
		<-t.done
	}

	t.errMu.Lock()
	t.errs = nil
	t.errMu.Unlock()

	c, cnl := context.WithCancel(ctx)
	done := make(chan struct{})

	t.cnl = cnl
	t.done = done
	t.running.Store(true)
	t.started.Store(time.Now().UnixNano())

	go func() {
		defer close(done)
		defer t.running.Store(false)
		defer t.started.Store(0)

		tck := time.NewTicker(t.interval)
		defer tck.Stop()

		for {
			select {
			case <-c.Done():
				return
			case <-tck.C:
				if t.fn == nil {
					t.addErr(errors.New("invalid tick function"))
					continue
				}
				t.addErr(t.fn(c, tck))
			}
		}
	}()

	return nil
}

func (t *ticker) Stop(ctx context.Context) error {
	t.mu.Lock()
	cnl := t.cnl
	done := t.done
	t.cnl = nil
	t.done = nil
	t.mu.Unlock()

	if cnl == nil {
		return nil
	}

	cnl()
	<-done

	return nil
}

func (t *ticker) Restart(ctx context.Context) error {
	_ = t.Stop(ctx)
	return t.Start(ctx)
}

func (t *ticker) IsRunning() bool {
	return t.running.Load()
}

func (t *ticker) Uptime() time.Duration {
	s := t.started.Load()
	if s == 0 {
		return 0
	}

	return time.Since(time.Unix(0, s))
}
