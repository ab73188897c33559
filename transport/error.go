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

// Package transport groups the message-stream substrate: a bounded duplex
// channel pair (duplex), per-peer streams and stream collections (stream),
// the datagram acceptor/connector (mux) and a Prometheus exporter (metrics).
package transport

import "github.com/nabbar/golib/errors"

const (
	ErrorRingCapacityInvalid errors.CodeError = iota + errors.MinPkgTransport
	ErrorRingRejected
	ErrorStreamClosed
	ErrorStreamUnknownPeer
	ErrorMuxSocketClosed
	ErrorMuxNoPeer
)

var isCodeError = false

func IsCodeError() bool {
	return isCodeError
}

func init() {
	isCodeError = errors.ExistInMapMessage(ErrorRingCapacityInvalid)
	errors.RegisterIdFctMessage(ErrorRingCapacityInvalid, getMessage)
}

func getMessage(code errors.CodeError) (message string) {
	switch code {
	case errors.UNK_ERROR:
		return ""
	case ErrorRingCapacityInvalid:
		return "reorder ring capacity must be greater than zero"
	case ErrorRingRejected:
		return "packet rejected: too far behind the delivery pivot"
	case ErrorStreamClosed:
		return "stream is closed"
	case ErrorStreamUnknownPeer:
		return "no stream registered for this peer"
	case ErrorMuxSocketClosed:
		return "acceptor/connector socket is closed"
	case ErrorMuxNoPeer:
		return "connector has no configured remote peer"
	}

	return ""
}
