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

// Package protocol enumerates the wire-level transport protocols a runtime
// socket can bind or connect over (stream and datagram, IP and Unix domain),
// with the marshal/unmarshal glue needed to carry it through JSON, YAML,
// TOML and viper-backed configuration.
package protocol

import "strings"

// NetworkProtocol is the transport/address-family pair passed to net.Dial,
// net.Listen and friends.
type NetworkProtocol uint8

const (
	NetworkEmpty NetworkProtocol = iota
	NetworkTCP
	NetworkTCP4
	NetworkTCP6
	NetworkUDP
	NetworkUDP4
	NetworkUDP6
	NetworkUnix
	NetworkUnixGram
	NetworkIP
	NetworkIP4
	NetworkIP6
)

func (p NetworkProtocol) String() string {
	switch p {
	case NetworkTCP:
		return "tcp"
	case NetworkTCP4:
		return "tcp4"
	case NetworkTCP6:
		return "tcp6"
	case NetworkUDP:
		return "udp"
	case NetworkUDP4:
		return "udp4"
	case NetworkUDP6:
		return "udp6"
	case NetworkUnix:
		return "unix"
	case NetworkUnixGram:
		return "unixgram"
	case NetworkIP:
		return "ip"
	case NetworkIP4:
		return "ip4"
	case NetworkIP6:
		return "ip6"
	default:
		return ""
	}
}

// IsDatagram reports whether this protocol carries discrete datagrams
// (UDP, unixgram) rather than an ordered byte stream.
func (p NetworkProtocol) IsDatagram() bool {
	switch p {
	case NetworkUDP, NetworkUDP4, NetworkUDP6, NetworkUnixGram:
		return true
	default:
		return false
	}
}

// Parse resolves a case-insensitive protocol name to a NetworkProtocol.
// Unknown names resolve to NetworkEmpty.
func Parse(s string) NetworkProtocol {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "tcp":
		return NetworkTCP
	case "tcp4":
		return NetworkTCP4
	case "tcp6":
		return NetworkTCP6
	case "udp":
		return NetworkUDP
	case "udp4":
		return NetworkUDP4
	case "udp6":
		return NetworkUDP6
	case "unix":
		return NetworkUnix
	case "unixgram":
		return NetworkUnixGram
	case "ip":
		return NetworkIP
	case "ip4":
		return NetworkIP4
	case "ip6":
		return NetworkIP6
	default:
		return NetworkEmpty
	}
}
