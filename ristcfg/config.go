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

import (
	"time"

	netproto "github.com/nabbar/golib/network/protocol"
)

// Default tunables, chosen to match a conservative single path RIST
// link: a 1400-byte MTU clears common tunnel/VPN overhead under 1500,
// a 512-slot ring covers several hundred milliseconds of reorder at
// typical video bitrates, and one handshake at a time keeps a relay
// under attack from spending unbounded CPU on bogus peers.
const (
	DefaultMTU                     = 1400
	DefaultRingCapacity            = 512
	DefaultMaxConcurrentHandshakes = 4
	DefaultHandshakeTimeout        = 10 * time.Second
	DefaultReapInterval            = 1024
)

// Config is the set of tunables shared by the transport, reorder and
// DTLS layers of one relay.
type Config struct {
	// Network is the socket family/kind a relay binds or dials over.
	Network netproto.NetworkProtocol `mapstructure:"network" yaml:"network"`

	// Listen is the local bind address, e.g. "0.0.0.0:1234".
	Listen string `mapstructure:"listen" yaml:"listen"`

	// MTU bounds the size of a single outbound datagram, including any
	// DTLS record overhead.
	MTU int `mapstructure:"mtu" yaml:"mtu"`

	// RingCapacity is the reorder ring's fixed slot count.
	RingCapacity int `mapstructure:"ring_capacity" yaml:"ring_capacity"`

	// MaxConcurrentHandshakes bounds how many DTLS handshakes may run
	// at once; 0 means use DefaultMaxConcurrentHandshakes, negative
	// means unbounded (see semaphore/sem.New).
	MaxConcurrentHandshakes int `mapstructure:"max_concurrent_handshakes" yaml:"max_concurrent_handshakes"`

	// HandshakeTimeout bounds how long a DTLS candidate may take to
	// complete its handshake before it is reaped.
	HandshakeTimeout time.Duration `mapstructure:"handshake_timeout" yaml:"handshake_timeout"`

	// ReapInterval is how many accept/connect ticks elapse between
	// dead-stream sweeps of a stream.Collection.
	ReapInterval int `mapstructure:"reap_interval" yaml:"reap_interval"`
}

// Default returns a Config populated with this package's defaults.
func Default() Config {
	return Config{
		Network:                 netproto.NetworkUDP,
		MTU:                     DefaultMTU,
		RingCapacity:            DefaultRingCapacity,
		MaxConcurrentHandshakes: DefaultMaxConcurrentHandshakes,
		HandshakeTimeout:        DefaultHandshakeTimeout,
		ReapInterval:            DefaultReapInterval,
	}
}

// applyDefaults fills in any zero-valued field with this package's
// default, without touching fields the caller (or config file) set.
func (c *Config) applyDefaults() {
	if c.Network == netproto.NetworkEmpty {
		c.Network = netproto.NetworkUDP
	}
	if c.MTU == 0 {
		c.MTU = DefaultMTU
	}
	if c.RingCapacity == 0 {
		c.RingCapacity = DefaultRingCapacity
	}
	if c.MaxConcurrentHandshakes == 0 {
		c.MaxConcurrentHandshakes = DefaultMaxConcurrentHandshakes
	}
	if c.HandshakeTimeout == 0 {
		c.HandshakeTimeout = DefaultHandshakeTimeout
	}
	if c.ReapInterval == 0 {
		c.ReapInterval = DefaultReapInterval
	}
}

// Validate reports the first invalid field, if any.
func (c *Config) Validate() error {
	switch {
	case c.Listen == "":
		return ErrorListenEmpty.Error()
	case !c.Network.IsDatagram():
		return ErrorNetworkNotDatagram.Error()
	case c.MTU <= 0:
		return ErrorMTUInvalid.Error()
	case c.RingCapacity <= 0:
		return ErrorRingCapacityInvalid.Error()
	case c.HandshakeTimeout <= 0:
		return ErrorHandshakeTimeoutInvalid.Error()
	case c.ReapInterval <= 0:
		return ErrorReapIntervalInvalid.Error()
	}

	return nil
}
