/*
 * MIT License
 *
 * Copyright (c) 2024 Nicolas JUHEL
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

package dtls

import (
	"context"
	"net"
	"time"

	"github.com/google/uuid"
	pdtls "github.com/pion/dtls/v2"

	"github.com/nabbar/golib/semaphore/sem"
	"github.com/nabbar/golib/transport/stream"
)

// HandshakeTimeout bounds how long a candidate may take to complete its
// DTLS handshake before the store reaps it.
const HandshakeTimeout = 10 * time.Second

func connectContextMaker(timeout time.Duration) func() (context.Context, func()) {
	return func() (context.Context, func()) {
		return context.WithTimeout(context.Background(), timeout)
	}
}

// Outcome reports a candidate's handshake state.
type Outcome uint8

const (
	InProgress Outcome = iota
	Success
	SetupError
	HandshakeFailure
)

// Candidate is a message stream whose DTLS handshake has been started
// but not yet resolved. Role determines whether it runs dtls.Server or
// dtls.Client over the adapted stream.
type Candidate struct {
	addr    net.Addr
	corrID  string
	created time.Time
	role    Role

	done    chan struct{}
	result  *pdtls.Conn
	err     error
	outcome Outcome

	cancel context.CancelFunc
}

// Role distinguishes which side of the handshake a candidate plays.
type Role uint8

const (
	RoleServer Role = iota
	RoleClient
)

// newCandidate starts the handshake in its own goroutine, bounded by
// sm, and returns immediately; Poll reports its outcome without
// blocking. pion/dtls exposes no step-wise non-blocking handshake
// primitive, so running it to completion in a background goroutine and
// polling a result channel is the only way to fit it into a
// cooperatively-scheduled accept loop.
func newCandidate(s *stream.Stream, role Role, cfg *pdtls.Config, sm sem.Sem) *Candidate {
	ctx, cancel := context.WithTimeout(context.Background(), HandshakeTimeout)

	c := &Candidate{
		addr:    s.Addr(),
		corrID:  uuid.NewString(),
		created: time.Now(),
		role:    role,
		done:    make(chan struct{}),
		cancel:  cancel,
	}

	go c.run(ctx, s, cfg, sm)

	return c
}

func (c *Candidate) run(ctx context.Context, s *stream.Stream, cfg *pdtls.Config, sm sem.Sem) {
	defer close(c.done)

	if err := sm.NewWorker(); err != nil {
		c.err = err
		c.outcome = SetupError
		return
	}
	defer sm.DeferWorker()

	conn := newStreamConn(s)

	var (
		dc  *pdtls.Conn
		err error
	)

	switch c.role {
	case RoleServer:
		dc, err = pdtls.ServerWithContext(ctx, conn, cfg)
	default:
		dc, err = pdtls.ClientWithContext(ctx, conn, cfg)
	}

	if err != nil {
		c.err = err
		c.outcome = HandshakeFailure
		return
	}

	c.result = dc
	c.outcome = Success
}

// Addr returns the peer address this candidate is handshaking with.
func (c *Candidate) Addr() net.Addr {
	return c.addr
}

// CorrID returns the correlation id minted for this candidate, suitable
// for tying its setup/handshake log entries together.
func (c *Candidate) CorrID() string {
	return c.corrID
}

// Age reports how long ago this candidate was created.
func (c *Candidate) Age() time.Duration {
	return time.Since(c.created)
}

// Poll reports this candidate's current outcome without blocking.
func (c *Candidate) Poll() Outcome {
	select {
	case <-c.done:
	default:
		return InProgress
	}

	return c.outcome
}

// Conn returns the handshaked connection once Poll reports Success.
func (c *Candidate) Conn() *pdtls.Conn {
	return c.result
}

// Err returns the failure observed once Poll reports SetupError or
// HandshakeFailure.
func (c *Candidate) Err() error {
	return c.err
}

// Cancel aborts an in-progress handshake, used when the store reaps a
// candidate that exceeded HandshakeTimeout.
func (c *Candidate) Cancel() {
	c.cancel()
}
