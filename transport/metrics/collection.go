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

package metrics

import (
	"net"

	"github.com/prometheus/client_golang/prometheus"

	"github.com/nabbar/golib/transport/stream"
)

// CollectionCollector exports a stream.Collection's live size and
// cumulative per-peer drop counts as Prometheus gauges/counters. It is
// meant to be polled on the exporter's own schedule via Collect.
type CollectionCollector struct {
	name string

	streams prometheus.Gauge
	dropped *prometheus.CounterVec

	prevDropped map[string]uint64
}

// NewCollectionCollector builds a CollectionCollector; name distinguishes
// an acceptor's collection from a connector's when both are registered
// against the same registry (e.g. "acceptor", "connector").
func NewCollectionCollector(name string) *CollectionCollector {
	return &CollectionCollector{
		name: name,
		streams: prometheus.NewGauge(prometheus.GaugeOpts{
			Name:        "rist_mux_streams",
			Help:        "Number of peer streams currently tracked.",
			ConstLabels: prometheus.Labels{"mux": name},
		}),
		dropped: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name:        "rist_mux_stream_drops_total",
			Help:        "Messages dropped because a peer stream's inbound queue was full.",
			ConstLabels: prometheus.Labels{"mux": name},
		}, []string{"peer"}),
		prevDropped: make(map[string]uint64),
	}
}

// Register registers both of this collector's metrics with reg.
func (c *CollectionCollector) Register(reg prometheus.Registerer) error {
	if err := reg.Register(c.streams); err != nil {
		return err
	}

	return reg.Register(c.dropped)
}

// Update refreshes the gauge and counter values from a live collection.
func (c *CollectionCollector) Update(col *stream.Collection) {
	c.streams.Set(float64(col.Len()))

	seen := make(map[string]bool, col.Len())

	_ = col.EachTx(func(addr net.Addr, m *stream.MuxSide) error {
		key := addr.String()
		seen[key] = true

		cur := m.DroppedCount()
		if prev := c.prevDropped[key]; cur > prev {
			c.dropped.WithLabelValues(key).Add(float64(cur - prev))
		}
		c.prevDropped[key] = cur

		return nil
	})

	for key := range c.prevDropped {
		if !seen[key] {
			delete(c.prevDropped, key)
		}
	}
}
