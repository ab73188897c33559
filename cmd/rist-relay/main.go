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

// Command rist-relay is a minimal demo binary exercising the runtime,
// mux, reorder and dtls packages together: serve accepts peers on a UDP
// socket and relays their packets back in sequence order, send dials one
// such relay and fires a handful of test packets at it, optionally out
// of order, to show the ring re-sequencing them.
package main

import (
	"context"
	"fmt"
	"net"
	"os"
	"time"

	spfcbr "github.com/spf13/cobra"

	"github.com/nabbar/golib/certificates"
	"github.com/nabbar/golib/dtls"
	"github.com/nabbar/golib/logger"
	"github.com/nabbar/golib/protocol"
	"github.com/nabbar/golib/ristcfg"
	"github.com/nabbar/golib/runtime"
	"github.com/nabbar/golib/semaphore/sem"
	"github.com/nabbar/golib/transport/mux"
)

// newDemoLogger builds the stdout logger shared by serve/send: a plain
// logger.New with no custom hooks, same as the teacher's other demo
// binaries use before their config layer takes over.
func newDemoLogger(ctx context.Context) logger.FuncLog {
	l := logger.New(ctx)
	return func() logger.Logger { return l }
}

func main() {
	if err := newRootCommand().Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func newRootCommand() *spfcbr.Command {
	root := &spfcbr.Command{
		Use:   "rist-relay",
		Short: "Demo relay exercising the runtime/mux/reorder/dtls stack",
	}

	root.AddCommand(newServeCommand())
	root.AddCommand(newSendCommand())

	return root
}

func newServeCommand() *spfcbr.Command {
	var (
		configPath string
		configKey  string
		certFile   string
		keyFile    string
	)

	cmd := &spfcbr.Command{
		Use:   "serve",
		Short: "Accept peers and relay their packets back in sequence order",
		RunE: func(cmd *spfcbr.Command, args []string) error {
			l, err := ristcfg.NewLoader(configPath, configKey)
			if err != nil {
				return err
			}

			l.Watch()

			var dtlsCfg dtls.ContextProvider

			if certFile != "" && keyFile != "" {
				tc := certificates.New()
				if err = tc.AddCertificatePairFile(keyFile, certFile); err != nil {
					return err
				}
				dtlsCfg = dtls.NewContextProvider(tc, l.Current().MTU)
			}

			log := newDemoLogger(cmd.Context())

			rt := runtime.New()
			rt.SetLogger(log)
			defer rt.Shutdown()

			relay := NewRelayProtocol(l.Current(), dtlsCfg)
			relay.SetLogger(log)
			rt.PushCtl(protocol.Start())

			return protocol.Loop[runtime.Runtime](relay, rt, 100*time.Millisecond)
		},
	}

	cmd.Flags().StringVar(&configPath, "config", "", "path to a relay tunables file (yaml/json/toml)")
	cmd.Flags().StringVar(&configKey, "config-key", "", "key within the config file holding the relay tunables")
	cmd.Flags().StringVar(&certFile, "cert", "", "PEM certificate file; enables DTLS when set with --key")
	cmd.Flags().StringVar(&keyFile, "key", "", "PEM private key file; enables DTLS when set with --cert")

	return cmd
}

func newSendCommand() *spfcbr.Command {
	var (
		addr    string
		cacert  string
		count   int
		payload string
	)

	cmd := &spfcbr.Command{
		Use:   "send",
		Short: "Dial a relay and send a handful of test packets to it",
		RunE: func(cmd *spfcbr.Command, args []string) error {
			log := newDemoLogger(cmd.Context())

			rt := runtime.New()
			rt.SetLogger(log)
			defer rt.Shutdown()

			sock, err := rt.Bind("0.0.0.0:0")
			if err != nil {
				return err
			}

			peerAddr, err := net.ResolveUDPAddr("udp", addr)
			if err != nil {
				return err
			}

			var send func(seq uint32, payload []byte) error
			var pump func() error

			if cacert != "" {
				tc := certificates.New()
				if ok := tc.AddRootCAString(cacert); !ok {
					return fmt.Errorf("could not add root CA")
				}

				sm := sem.New(context.Background(), 1)
				mc := mux.NewConnector(rt, sock, 32)
				mc.SetLogger(log)
				conn := dtls.NewConnector(mc, dtls.NewContextProvider(tc, 1400), sm)
				conn.SetLogger(log)
				if err = conn.Dial(peerAddr, ""); err != nil {
					return err
				}

				var stream *dtls.Stream
				for stream == nil {
					ready, rerr := conn.Run()
					if rerr != nil {
						return rerr
					}
					if len(ready) > 0 {
						stream = ready[0]
					}
					time.Sleep(time.Millisecond)
				}

				send = func(seq uint32, payload []byte) error {
					return stream.TrySend(encodePacket(seq, payload))
				}
				pump = func() error { return nil }
			} else {
				conn := mux.NewConnector(rt, sock, 32)
				conn.SetLogger(log)
				stream := conn.Connect(peerAddr)

				send = func(seq uint32, payload []byte) error {
					return stream.TrySend(encodePacket(seq, payload))
				}
				pump = func() error { return conn.Run() }
			}

			for i := 0; i < count; i++ {
				if err = send(uint32(i), []byte(fmt.Sprintf("%s-%d", payload, i))); err != nil {
					return err
				}
				if err = pump(); err != nil {
					return err
				}
			}

			return nil
		},
	}

	cmd.Flags().StringVar(&addr, "addr", "127.0.0.1:1234", "relay address to dial")
	cmd.Flags().StringVar(&cacert, "cacert", "", "PEM root CA trusting the relay's certificate; enables DTLS")
	cmd.Flags().IntVar(&count, "count", 4, "number of test packets to send")
	cmd.Flags().StringVar(&payload, "payload", "hello", "payload prefix for each test packet")

	return cmd
}
