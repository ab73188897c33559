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

package runtime

import (
	"context"
	"errors"
	"net"
	"sync"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/nabbar/golib/logger"
	logent "github.com/nabbar/golib/logger/entry"
	loglvl "github.com/nabbar/golib/logger/level"
	"github.com/nabbar/golib/runner/startStop"
)

const eventQueueDepth = 4096

// ErrWrongSocketKind is returned when an operation is attempted against a
// socket handle of the wrong kind (e.g. Send on a bound local socket,
// which has no single peer to address).
var ErrWrongSocketKind = errors.New("runtime: wrong socket kind for this operation")

// Runtime is the protocol layer's sole view of the network: sockets,
// a clock, and a typed event queue.
type Runtime interface {
	Clock() Clock

	Bind(addr string) (Socket, error)
	Connect(local Socket, addr net.Addr) (Socket, error)

	Send(sock Socket, buf []byte) error
	SendTo(sock Socket, buf []byte, addr net.Addr) error
	Recv(sock Socket) ([]byte, error)
	RecvFrom(sock Socket) ([]byte, net.Addr, error)

	// LocalAddr returns the bound address of a local socket.
	LocalAddr(sock Socket) (net.Addr, error)

	Close(sock Socket) error

	PushCtl(cmd any)
	Poll(timeout time.Duration) ([]Event, error)

	// SetLogger wires a log provider into the runtime; every socket bind,
	// close, and dropped event is then reported through it. A nil fct (the
	// default) leaves the runtime silent.
	SetLogger(fct logger.FuncLog)

	Shutdown()
}

type runtime struct {
	clock Clock
	log   logger.FuncLog

	mu      sync.Mutex
	alloc   handleAllocator
	locals  map[Socket]*localSocket
	remotes map[Socket]*remoteSocket

	events chan Event
}

// New builds a Runtime backed by real UDP sockets and the system clock.
func New() Runtime {
	return &runtime{
		clock:   NewSystemClock(),
		locals:  make(map[Socket]*localSocket),
		remotes: make(map[Socket]*remoteSocket),
		events:  make(chan Event, eventQueueDepth),
	}
}

func (r *runtime) Clock() Clock {
	return r.clock
}

func (r *runtime) SetLogger(fct logger.FuncLog) {
	r.log = fct
}

// logEntry mirrors config.model's logEntry: it always returns a usable
// Entry, falling back to a NilLevel (silent) one when no logger has been
// wired in, so call sites never need to nil-check before logging.
func (r *runtime) logEntry(lvl loglvl.Level, pattern string, args ...interface{}) logent.Entry {
	if r.log != nil {
		if l := r.log(); l != nil {
			return l.Entry(lvl, pattern, args...)
		}
	}
	return logent.New(loglvl.NilLevel)
}

func (r *runtime) emit(ev Event) {
	select {
	case r.events <- ev:
	default:
		// Event queue saturated: drop rather than block the reader that
		// produced it. A cooperative single-threaded consumer that falls
		// this far behind has bigger problems than a dropped Ready/Accept.
		r.logEntry(loglvl.WarnLevel, "dropping event: queue saturated").
			FieldAdd("event_kind", ev.Kind).
			FieldAdd("socket", ev.Socket).
			Log()
	}
}

func (r *runtime) Bind(addr string) (Socket, error) {
	conn, err := net.ListenPacket("udp", addr)
	if err != nil {
		r.logEntry(loglvl.ErrorLevel, "binding local socket").
			FieldAdd("addr", addr).
			ErrorAdd(true, err).
			Log()
		return 0, err
	}

	r.mu.Lock()
	handle, ok := r.alloc.nextLocal()
	if !ok {
		r.mu.Unlock()
		_ = conn.Close()
		return 0, ErrorSocketHandleExhausted.Error()
	}

	ls := newLocalSocket(handle, conn)
	r.locals[handle] = ls
	r.mu.Unlock()

	ls.lifecycle = startStop.New(
		func(ctx context.Context) error { return r.readLoop(ctx, ls) },
		func(ctx context.Context) error { return conn.Close() },
	)

	_ = ls.lifecycle.Start(context.Background())

	r.logEntry(loglvl.InfoLevel, "local socket bound").
		FieldAdd("addr", addr).
		FieldAdd("socket_id", ls.corrID).
		Log()

	return handle, nil
}

func (r *runtime) readLoop(ctx context.Context, ls *localSocket) error {
	buf := make([]byte, 65535)

	for {
		if ls.closed.Load() {
			return nil
		}

		n, addr, err := ls.conn.ReadFrom(buf)
		if err != nil {
			select {
			case <-ctx.Done():
				return nil
			default:
			}

			if ls.closed.Load() {
				return nil
			}

			r.emit(Event{Kind: KindError, Socket: ls.handle, Err: err})
			return err
		}

		msg := make([]byte, n)
		copy(msg, buf[:n])
		dg := datagram{data: msg, addr: addr}

		select {
		case ls.raw <- dg:
		default:
		}

		r.routeInbound(ls, dg)
	}
}

func (r *runtime) routeInbound(ls *localSocket, dg datagram) {
	key := dg.addr.String()

	r.mu.Lock()
	remoteHandle, known := ls.remotesByAddr[key]
	var rs *remoteSocket

	if known {
		rs = r.remotes[remoteHandle]
	}

	if !known || rs == nil {
		handle, ok := r.alloc.nextRemote()
		if !ok {
			r.mu.Unlock()
			return
		}

		rs = newRemoteSocket(handle, ls.handle, dg.addr)
		r.remotes[handle] = rs
		ls.remotesByAddr[key] = handle
		r.mu.Unlock()

		select {
		case rs.inbox <- dg:
		default:
		}

		r.logEntry(loglvl.InfoLevel, "accepting new peer").
			FieldAdd("local_socket_id", ls.corrID).
			FieldAdd("peer_socket_id", rs.corrID).
			FieldAdd("addr", dg.addr.String()).
			Log()

		r.emit(Event{Kind: KindAccept, Socket: ls.handle, Remote: handle, Addr: dg.addr})
		return
	}
	r.mu.Unlock()

	select {
	case rs.inbox <- dg:
		r.emit(Event{Kind: KindReady, Socket: rs.handle, Mask: Readable})
	default:
	}
}

func (r *runtime) Connect(local Socket, addr net.Addr) (Socket, error) {
	r.mu.Lock()
	ls, ok := r.locals[local]
	if !ok {
		r.mu.Unlock()
		return 0, ErrorSocketUnknown.Error()
	}

	key := addr.String()
	if existing, ok := ls.remotesByAddr[key]; ok {
		r.mu.Unlock()
		return existing, nil
	}

	handle, ok := r.alloc.nextRemote()
	if !ok {
		r.mu.Unlock()
		return 0, ErrorSocketHandleExhausted.Error()
	}

	rs := newRemoteSocket(handle, local, addr)
	r.remotes[handle] = rs
	ls.remotesByAddr[key] = handle
	r.mu.Unlock()

	return handle, nil
}

func (r *runtime) Send(sock Socket, buf []byte) error {
	if !sock.IsRemote() {
		return ErrWrongSocketKind
	}

	r.mu.Lock()
	rs, ok := r.remotes[sock]
	r.mu.Unlock()

	if !ok || rs.closed.Load() {
		return ErrClosed
	}

	r.mu.Lock()
	ls, ok := r.locals[rs.local]
	r.mu.Unlock()

	if !ok || ls.closed.Load() {
		return ErrClosed
	}

	return r.writeTo(ls, buf, rs.addr)
}

func (r *runtime) SendTo(sock Socket, buf []byte, addr net.Addr) error {
	if sock.IsRemote() {
		return ErrWrongSocketKind
	}

	r.mu.Lock()
	ls, ok := r.locals[sock]
	r.mu.Unlock()

	if !ok || ls.closed.Load() {
		return ErrClosed
	}

	return r.writeTo(ls, buf, addr)
}

func (r *runtime) writeTo(ls *localSocket, buf []byte, addr net.Addr) error {
	_, err := ls.conn.WriteTo(buf, addr)
	if err != nil {
		var ne net.Error
		if errors.As(err, &ne) && ne.Timeout() {
			return ErrNotReady
		}
		return err
	}

	return nil
}

func (r *runtime) Recv(sock Socket) ([]byte, error) {
	if !sock.IsRemote() {
		return nil, ErrWrongSocketKind
	}

	r.mu.Lock()
	rs, ok := r.remotes[sock]
	r.mu.Unlock()

	if !ok {
		return nil, ErrorSocketUnknown.Error()
	}

	select {
	case dg := <-rs.inbox:
		return dg.data, nil
	default:
		if rs.closed.Load() {
			return nil, ErrClosed
		}
		return nil, ErrNotReady
	}
}

func (r *runtime) RecvFrom(sock Socket) ([]byte, net.Addr, error) {
	if sock.IsRemote() {
		return nil, nil, ErrWrongSocketKind
	}

	r.mu.Lock()
	ls, ok := r.locals[sock]
	r.mu.Unlock()

	if !ok {
		return nil, nil, ErrorSocketUnknown.Error()
	}

	select {
	case dg := <-ls.raw:
		return dg.data, dg.addr, nil
	default:
		if ls.closed.Load() {
			return nil, nil, ErrClosed
		}
		return nil, nil, ErrNotReady
	}
}

func (r *runtime) LocalAddr(sock Socket) (net.Addr, error) {
	if sock.IsRemote() {
		return nil, ErrWrongSocketKind
	}

	r.mu.Lock()
	ls, ok := r.locals[sock]
	r.mu.Unlock()

	if !ok {
		return nil, ErrorSocketUnknown.Error()
	}

	return ls.conn.LocalAddr(), nil
}

func (r *runtime) Close(sock Socket) error {
	if sock.IsRemote() {
		r.mu.Lock()
		rs, ok := r.remotes[sock]
		if !ok {
			r.mu.Unlock()
			return nil
		}

		delete(r.remotes, sock)

		if ls, ok := r.locals[rs.local]; ok {
			delete(ls.remotesByAddr, rs.addr.String())
		}
		r.mu.Unlock()

		rs.closed.Store(true)

		r.logEntry(loglvl.InfoLevel, "peer socket closed").
			FieldAdd("peer_socket_id", rs.corrID).
			Log()

		return nil
	}

	r.mu.Lock()
	ls, ok := r.locals[sock]
	if !ok {
		r.mu.Unlock()
		return nil
	}

	delete(r.locals, sock)

	for addr, h := range ls.remotesByAddr {
		if rs, ok := r.remotes[h]; ok {
			rs.closed.Store(true)
			delete(r.remotes, h)
		}
		delete(ls.remotesByAddr, addr)
	}
	r.mu.Unlock()

	ls.closed.Store(true)
	err := ls.lifecycle.Stop(context.Background())

	r.logEntry(loglvl.InfoLevel, "local socket closed").
		FieldAdd("socket_id", ls.corrID).
		ErrorAdd(true, err).
		Log()

	return err
}

func (r *runtime) PushCtl(cmd any) {
	r.emit(Event{Kind: KindCtl, Ctl: cmd})
}

func (r *runtime) Poll(timeout time.Duration) ([]Event, error) {
	var out []Event

	select {
	case ev := <-r.events:
		out = append(out, ev)
	case <-time.After(timeout):
		return out, nil
	}

	for {
		select {
		case ev := <-r.events:
			out = append(out, ev)
		default:
			return out, nil
		}
	}
}

// Shutdown closes every socket the runtime owns. Closing is fanned out
// cooperatively across the local sockets so one slow net.Conn.Close (a
// kernel-level syscall per socket) cannot hold up the others.
func (r *runtime) Shutdown() {
	r.mu.Lock()
	handles := make([]Socket, 0, len(r.locals))
	for h := range r.locals {
		handles = append(handles, h)
	}
	r.mu.Unlock()

	var grp errgroup.Group

	for _, h := range handles {
		h := h
		grp.Go(func() error {
			return r.Close(h)
		})
	}

	_ = grp.Wait()
}
