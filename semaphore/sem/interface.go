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

// Package sem wraps golang.org/x/sync/semaphore (bounded concurrency) and
// sync.WaitGroup (unbounded concurrency) behind a single context.Context-
// shaped interface, so callers that only need "let N things run at once,
// then wait" do not have to choose between the two primitives up front.
//
// A non-positive nbrSimultaneous picks the unbounded WaitGroup form; any
// positive nbrSimultaneous picks the weighted-semaphore form with that
// many permits, and a zero clamps to MaxSimultaneous (GOMAXPROCS).
//
// This package backs dtls's candidate-handshake bound: a relay accepting
// many simultaneous DTLS candidates caps concurrent handshakes to avoid
// spending unbounded CPU on a burst of connection attempts.
package sem

import "context"

// Sem bounds concurrent work and exposes the parent context it was built
// from, so a caller can select on Done() alongside its own channels.
type Sem interface {
	context.Context

	// NewWorker blocks until a permit is available or the context is done.
	NewWorker() error
	// NewWorkerTry acquires a permit without blocking; false means none free.
	NewWorkerTry() bool
	// DeferWorker releases a permit acquired by NewWorker/NewWorkerTry.
	DeferWorker()

	// WaitAll blocks until every acquired permit has been released, or the
	// context is done. Only meaningful for the unbounded (WaitGroup) form;
	// the weighted form returns immediately once all permits are free.
	WaitAll() error

	// Weighted reports the configured limit: -1 for unbounded, otherwise
	// the number of permits.
	Weighted() int64

	// DeferMain cancels the semaphore's own context. Safe to call more
	// than once.
	DeferMain()

	// New creates an independent Sem with the same limit, derived from
	// this one's context.
	New() Sem
}
