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

package main

import (
	"context"
	"encoding/binary"
	"time"

	"github.com/nabbar/golib/dtls"
	"github.com/nabbar/golib/logger"
	"github.com/nabbar/golib/protocol"
	"github.com/nabbar/golib/reorder"
	"github.com/nabbar/golib/ristcfg"
	"github.com/nabbar/golib/runtime"
	"github.com/nabbar/golib/semaphore/sem"
	"github.com/nabbar/golib/transport"
	"github.com/nabbar/golib/transport/mux"
)

// packet is the minimal envelope a relay peer exchanges: a 4-byte
// big-endian sequence number followed by payload. It exists only to give
// reorder.Ring something to key on; a production RIST relay would parse
// this out of the wrapped protocol's own RTP/RIST header instead (see
// wire/ for that header parsing).
type packet struct {
	seq     uint32
	payload []byte
}

func (p packet) Sequence() uint32 { return p.seq }

func encodePacket(seq uint32, payload []byte) []byte {
	buf := make([]byte, 4+len(payload))
	binary.BigEndian.PutUint32(buf, seq)
	copy(buf[4:], payload)
	return buf
}

func decodePacket(msg []byte) (packet, bool) {
	if len(msg) < 4 {
		return packet{}, false
	}
	return packet{
		seq:     binary.BigEndian.Uint32(msg),
		payload: msg[4:],
	}, true
}

// peerStream is the overlapping surface transport/stream.Stream and
// dtls.Stream both already expose; RelayProtocol drives either one
// through it without caring whether the handshake underneath was
// plaintext or DTLS.
type peerStream interface {
	TryReceive() ([]byte, error)
	TrySend(msg []byte) error
}

// peerAcceptor is the overlapping surface transport/mux.Acceptor and
// dtls.Acceptor both expose.
type peerAcceptor interface {
	Accept() (peerStream, error)
}

type plainAcceptor struct{ a *mux.Acceptor }

func (p plainAcceptor) Accept() (peerStream, error) {
	s, err := p.a.Accept()
	if err != nil || s == nil {
		return nil, err
	}
	return s, nil
}

type encryptedAcceptor struct{ a *dtls.Acceptor }

func (p encryptedAcceptor) Accept() (peerStream, error) {
	s, err := p.a.Accept()
	if err != nil || s == nil {
		return nil, err
	}
	return s, nil
}

// relayPeer tracks one connected sender: its reorder ring and the
// highest sequence number relayed so far, used to re-stamp delivered
// packets on their way back out.
type relayPeer struct {
	stream peerStream
	ring   *reorder.Ring[uint32, packet]
	dead   bool
	nextTx uint32
}

// RelayProtocol accepts peers on one bound socket, feeds every inbound
// packet through a per-peer reorder.Ring, and echoes back whatever the
// ring releases in order - the same shape as protocol.EchoProtocol, but
// with reordering and (optionally) DTLS authentication in front of it.
type RelayProtocol struct {
	cfg     ristcfg.Config
	dtlsCfg dtls.ContextProvider

	local   runtime.Socket
	haveSoc bool

	accept peerAcceptor
	peers  []*relayPeer

	log logger.FuncLog
}

// NewRelayProtocol builds a RelayProtocol bound and driven per cfg. When
// dtlsCfg is non-nil, every accepted peer must first complete a DTLS
// handshake; otherwise peers exchange plaintext datagrams.
func NewRelayProtocol(cfg ristcfg.Config, dtlsCfg dtls.ContextProvider) *RelayProtocol {
	return &RelayProtocol{cfg: cfg, dtlsCfg: dtlsCfg}
}

// SetLogger wires a log provider into the RelayProtocol; it is forwarded
// to the mux/DTLS acceptor once start() builds it.
func (e *RelayProtocol) SetLogger(fct logger.FuncLog) {
	e.log = fct
}

func (e *RelayProtocol) Run(rt runtime.Runtime, events []runtime.Event) (protocol.NextWake, error) {
	for _, ev := range events {
		if ev.Kind != runtime.KindCtl {
			continue
		}

		ctl, ok := ev.Ctl.(protocol.Ctl)
		if !ok {
			continue
		}

		switch {
		case ctl.IsStart():
			if err := e.start(rt); err != nil {
				return protocol.NextWake{}, err
			}
		case ctl.IsShutdown():
			e.shutdown(rt)
			return protocol.Never(), nil
		}
	}

	if e.haveSoc {
		if err := e.pump(); err != nil {
			return protocol.NextWake{}, err
		}
	}

	return protocol.At(time.Time{}), nil
}

func (e *RelayProtocol) start(rt runtime.Runtime) error {
	sock, err := rt.Bind(e.cfg.Listen)
	if err != nil {
		return err
	}

	e.local = sock
	e.haveSoc = true

	m := mux.NewAcceptor(rt, sock, e.cfg.RingCapacity)
	m.SetLogger(e.log)

	if e.dtlsCfg != nil {
		sm := sem.New(context.Background(), e.cfg.MaxConcurrentHandshakes)
		da := dtls.NewAcceptor(m, e.dtlsCfg, sm)
		da.SetLogger(e.log)
		e.accept = encryptedAcceptor{a: da}
	} else {
		e.accept = plainAcceptor{a: m}
	}

	return nil
}

func (e *RelayProtocol) pump() error {
	for {
		s, err := e.accept.Accept()
		if err != nil {
			return err
		}
		if s == nil {
			break
		}

		ring, err := reorder.New[uint32, packet](e.cfg.RingCapacity)
		if err != nil {
			return err
		}

		e.peers = append(e.peers, &relayPeer{stream: s, ring: ring})
	}

	live := e.peers[:0]

	for _, p := range e.peers {
		if p.dead {
			continue
		}

		e.drainInbound(p)
		e.drainRing(p)

		live = append(live, p)
	}

	e.peers = live

	return nil
}

func (e *RelayProtocol) drainInbound(p *relayPeer) {
	for {
		msg, err := p.stream.TryReceive()
		if err != nil {
			if err == transport.ErrDisconnected {
				p.dead = true
			}
			return
		}

		pkt, ok := decodePacket(msg)
		if !ok {
			continue
		}

		p.ring.Put(pkt)
	}
}

func (e *RelayProtocol) drainRing(p *relayPeer) {
	for {
		ev := p.ring.NextEvent()

		switch ev.Kind {
		case reorder.KindPacket:
			out := encodePacket(p.nextTx, ev.Packet.payload)
			p.nextTx++
			_ = p.stream.TrySend(out)
		case reorder.KindReset:
			p.nextTx = ev.ResetSeq
		default:
			return
		}
	}
}

func (e *RelayProtocol) shutdown(rt runtime.Runtime) {
	if !e.haveSoc {
		return
	}

	e.peers = nil
	_ = rt.Close(e.local)
	e.haveSoc = false
}
