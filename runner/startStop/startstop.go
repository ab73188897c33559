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

// Package startStop wraps a pair of start/stop functions into a restartable,
// concurrency-safe lifecycle with uptime and error tracking. A new Start
// call always supersedes whatever instance is currently running.
package startStop

import (
	"context"
	"errors"
	"sync"
	"sync/atomic"
	"time"
)

// FuncStart is run in its own goroutine by Start; it is expected to block
// until ctx is done.
type FuncStart func(ctx context.Context) error

// FuncStop releases whatever FuncStart acquired.
type FuncStop func(ctx context.Context) error

// StartStop is a restartable background task with uptime and error history.
type StartStop interface {
	Start(ctx context.Context) error
	Stop(ctx context.Context) error
	Restart(ctx context.Context) error
	IsRunning() bool
	Uptime() time.Duration
	ErrorsLast() error
	ErrorsList() []error
}

type runner struct {
	fnStart FuncStart
	fnStop  FuncStop

	mu   sync.Mutex
	cnl  context.CancelFunc
	done chan struct{}

	running atomic.Bool
	started atomic.Int64

	errMu sync.Mutex
	errs  []error
}

// New builds a StartStop around the given functions. Either may be nil; the
// lifecycle still functions, recording an "invalid start/stop function"
// error at the point it would have been called.
func New(start FuncStart, stop FuncStop) StartStop {
	return &runner{
		fnStart: start,
		fnStop:  stop,
	}
}

func (r *runner) addErr(err error) {
	if err == nil {
		return
	}

	r.errMu.Lock()
	r.errs = append(r.errs, err)
	r.errMu.Unlock()
}

func (r *runner) ErrorsLast() error {
	r.errMu.Lock()
	defer r.errMu.Unlock()

	if len(r.errs) == 0 {
		return nil
	}

	return r.errs[len(r.errs)-1]
}

func (r *runner) ErrorsList() []error {
	r.errMu.Lock()
	defer r.errMu.Unlock()

	out := make([]error, len(r.errs))
	copy(out, r.errs)

	return out
}

// Start supersedes any instance already running, then launches fnStart in a
// new goroutine against a context derived from ctx. It always returns nil;
// failures inside fnStart surface through ErrorsLast/ErrorsList.
func (r *runner) Start(ctx context.Context) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if r.cnl != nil {
		r.cnl()
		<-r.done
	}

	r.errMu.Lock()
	r.errs = nil
	r.errMu.Unlock()

	c, cnl := context.WithCancel(ctx)
	done := make(chan struct{})

	r.cnl = cnl
	r.done = done
	r.running.Store(true)
	r.started.Store(time.Now().UnixNano())

	go func() {
		defer close(done)
		defer r.running.Store(false)
		defer r.started.Store(0)

		var err error
		if r.fnStart == nil {
			err = errors.New("invalid start function")
		} else {
			err = r.fnStart(c)
		}

		r.addErr(err)
	}()

	return nil
}

// Stop cancels the running instance's context, waits for it to exit, and
// then runs fnStop. It is idempotent: calling Stop with nothing running is a
// no-op.
func (r *runner) Stop(ctx context.Context) error {
	r.mu.Lock()
	cnl := r.cnl
	done := r.done
	r.cnl = nil
	r.done = nil
	r.mu.Unlock()

	if cnl == nil {
		return nil
	}

	cnl()
	<-done

	var err error
	if r.fnStop == nil {
		err = errors.New("invalid stop function")
	} else {
		err = r.fnStop(ctx)
	}

	r.addErr(err)

	return nil
}

// Restart stops whatever is running (a no-op if nothing is) and starts a
// fresh instance.
func (r *runner) Restart(ctx context.Context) error {
	_ = r.Stop(ctx)
	return r.Start(ctx)
}

func (r *runner) IsRunning() bool {
	return r.running.Load()
}

func (r *runner) Uptime() time.Duration {
	s := r.started.Load()
	if s == 0 {
		return 0
	}

	return time.Since(time.Unix(0, s))
}
