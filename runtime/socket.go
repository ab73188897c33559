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
	"net"
	"sync/atomic"

	"github.com/google/uuid"

	"github.com/nabbar/golib/runner/startStop"
)

const inboxDepth = 64

type datagram struct {
	data []byte
	addr net.Addr
}

// localSocket is a bound endpoint; its reader loop demultiplexes inbound
// datagrams to the remote sockets minted for each peer address it sees.
type localSocket struct {
	handle Socket
	corrID string
	conn   net.PacketConn

	lifecycle startStop.StartStop
	closed    atomic.Bool

	raw chan datagram

	remotesByAddr map[string]Socket
}

func newLocalSocket(handle Socket, conn net.PacketConn) *localSocket {
	return &localSocket{
		handle:        handle,
		corrID:        uuid.NewString(),
		conn:          conn,
		raw:           make(chan datagram, inboxDepth),
		remotesByAddr: make(map[string]Socket),
	}
}

// remoteSocket is a virtual (local, peer-address) pair, minted by Connect
// or implicitly by an inbound datagram from an unknown peer.
type remoteSocket struct {
	handle Socket
	corrID string
	local  Socket
	addr   net.Addr

	closed atomic.Bool
	inbox  chan datagram
}

func newRemoteSocket(handle, local Socket, addr net.Addr) *remoteSocket {
	return &remoteSocket{
		handle: handle,
		corrID: uuid.NewString(),
		local:  local,
		addr:   addr,
		inbox:  make(chan datagram, inboxDepth),
	}
}
