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
	"time"

	pdtls "github.com/pion/dtls/v2"

	"github.com/nabbar/golib/certificates"
)

// ContextProvider hands out a DTLS configuration for a given peer role.
// A relay typically has one ContextProvider for its acceptor (server
// role, serverName is informational only) and, if it also dials peers,
// one per remote it connects to (client role, serverName used for SNI
// and certificate verification).
type ContextProvider interface {
	DTLSConfig(serverName string) (*pdtls.Config, error)
}

// certProvider adapts a certificates.TLSConfig - the TLS certificate
// bundle used everywhere else in this module - into the Config shape
// pion/dtls expects. DTLS and TLS share the same certificate and trust
// material; only the record layer differs, so the adaptation is a field
// copy, not a protocol translation.
type certProvider struct {
	tc  certificates.TLSConfig
	mtu int
}

// NewContextProvider adapts tc into a ContextProvider whose DTLSConfig
// sets MTU on every config it returns. mtu should match the path MTU
// budget the ring and wire layers were sized against.
func NewContextProvider(tc certificates.TLSConfig, mtu int) ContextProvider {
	return &certProvider{tc: tc, mtu: mtu}
}

func (c *certProvider) DTLSConfig(serverName string) (*pdtls.Config, error) {
	tc := c.tc.TlsConfig(serverName)
	if tc == nil {
		return nil, ErrorContextProviderMissing.Error()
	}

	return &pdtls.Config{
		Certificates:           tc.Certificates,
		RootCAs:                tc.RootCAs,
		ClientCAs:              tc.ClientCAs,
		ClientAuth:             pdtls.ClientAuthType(tc.ClientAuth),
		InsecureSkipVerify:     tc.InsecureSkipVerify,
		ServerName:             serverName,
		MTU:                    c.mtu,
		ConnectContextMaker:    connectContextMaker(HandshakeTimeout),
		ExtendedMasterSecret:   pdtls.RequireExtendedMasterSecret,
		FlightInterval:         200 * time.Millisecond,
	}, nil
}
