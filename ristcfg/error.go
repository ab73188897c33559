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

package ristcfg

import "github.com/nabbar/golib/errors"

const (
	ErrorListenEmpty errors.CodeError = iota + errors.MinPkgRistCfg
	ErrorNetworkNotDatagram
	ErrorMTUInvalid
	ErrorRingCapacityInvalid
	ErrorHandshakeTimeoutInvalid
	ErrorReapIntervalInvalid
	ErrorConfigFileMissing
	ErrorConfigFileInvalid
)

var isCodeError = false

func IsCodeError() bool {
	return isCodeError
}

func init() {
	isCodeError = errors.ExistInMapMessage(ErrorListenEmpty)
	errors.RegisterIdFctMessage(ErrorListenEmpty, getMessage)
}

func getMessage(code errors.CodeError) (message string) {
	switch code {
	case errors.UNK_ERROR:
		return ""
	case ErrorListenEmpty:
		return "listen address is empty"
	case ErrorNetworkNotDatagram:
		return "network must be a datagram protocol (udp, udp4, udp6 or unixgram)"
	case ErrorMTUInvalid:
		return "mtu must be strictly positive"
	case ErrorRingCapacityInvalid:
		return "ring capacity must be strictly positive"
	case ErrorHandshakeTimeoutInvalid:
		return "handshake timeout must be strictly positive"
	case ErrorReapIntervalInvalid:
		return "reap interval must be strictly positive"
	case ErrorConfigFileMissing:
		return "no configuration file path given"
	case ErrorConfigFileInvalid:
		return "configuration file could not be loaded"
	}

	return ""
}
