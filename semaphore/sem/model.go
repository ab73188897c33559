/*
 * MIT License
 *
 * Copyright (c) 2019 Nicolas JUHEL
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

package sem

import (
	"context"
	"runtime"
	"sync"

	"golang.org/x/sync/semaphore"
)

// MaxSimultaneous returns the default permit count used when New is called
// with nbrSimultaneous == 0: the runtime's GOMAXPROCS.
func MaxSimultaneous() int {
	return runtime.GOMAXPROCS(0)
}

// SetSimultaneous clamps n into [1, MaxSimultaneous()], substituting
// MaxSimultaneous() for any n outside that range.
func SetSimultaneous(n int64) int64 {
	m := int64(MaxSimultaneous())

	if n < 1 || n > m {
		return m
	}

	return n
}

type sem struct {
	context.Context
	cnl context.CancelFunc

	weighted int64
	wgt      *semaphore.Weighted
	grp      *sync.WaitGroup
}

// New returns a Sem derived from ctx. nbrSimultaneous <= -1 selects the
// unbounded WaitGroup form; 0 clamps to MaxSimultaneous(); any positive
// value is used as-is as the permit count.
func New(ctx context.Context, nbrSimultaneous int) Sem {
	if ctx == nil {
		ctx = context.Background()
	}

	c, cnl := context.WithCancel(ctx)

	if nbrSimultaneous < 0 {
		return &sem{
			Context:  c,
			cnl:      cnl,
			weighted: -1,
			grp:      &sync.WaitGroup{},
		}
	}

	n := SetSimultaneous(int64(nbrSimultaneous))

	return &sem{
		Context:  c,
		cnl:      cnl,
		weighted: n,
		wgt:      semaphore.NewWeighted(n),
	}
}

func (s *sem) Weighted() int64 {
	return s.weighted
}

func (s *sem) NewWorker() error {
	if s.wgt == nil {
		s.grp.Add(1)
		return nil
	}

	return s.wgt.Acquire(s.Context, 1)
}

func (s *sem) NewWorkerTry() bool {
	if s.wgt == nil {
		s.grp.Add(1)
		return true
	}

	return s.wgt.TryAcquire(1)
}

func (s *sem) DeferWorker() {
	if s.wgt == nil {
		s.grp.Done()
		return
	}

	s.wgt.Release(1)
}

func (s *sem) WaitAll() error {
	if s.wgt != nil {
		return nil
	}

	done := make(chan struct{})

	go func() {
		s.grp.Wait()
		close(done)
	}()

	select {
	case <-done:
		return nil
	case <-s.Context.Done():
		return s.Context.Err()
	}
}

func (s *sem) DeferMain() {
	s.cnl()
}

func (s *sem) New() Sem {
	return New(s.Context, int(s.weighted))
}
