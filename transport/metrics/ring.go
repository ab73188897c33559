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
	"github.com/prometheus/client_golang/prometheus"

	"github.com/nabbar/golib/reorder"
)

// RingCollector exports a reorder.Counters snapshot as a labelled
// Prometheus counter vector, one label value per outcome
// (delivered/dropped/lost/reordered/rejected).
type RingCollector struct {
	peer  string
	total *prometheus.CounterVec

	prev reorder.Counters
}

// NewRingCollector builds a RingCollector for one peer's ring. peer is
// used as the constant "peer" label value on every exported sample.
func NewRingCollector(peer string) *RingCollector {
	return &RingCollector{
		peer: peer,
		total: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "rist_reorder_packets_total",
			Help: "Reorder ring outcomes by peer and outcome.",
		}, []string{"peer", "outcome"}),
	}
}

// Register registers this collector's metric with reg.
func (c *RingCollector) Register(reg prometheus.Registerer) error {
	return reg.Register(c.total)
}

// Update advances the exported counters by the delta between snap and
// the previously observed snapshot. Counters.Snapshot is cumulative, so
// this must be called with strictly monotonic snapshots (the caller's
// own ring only ever grows its counters).
func (c *RingCollector) Update(snap reorder.Counters) {
	c.add("delivered", snap.Delivered, c.prev.Delivered)
	c.add("dropped", snap.Dropped, c.prev.Dropped)
	c.add("lost", snap.Lost, c.prev.Lost)
	c.add("reordered", snap.Reordered, c.prev.Reordered)
	c.add("rejected", snap.Rejected, c.prev.Rejected)

	c.prev = snap
}

func (c *RingCollector) add(outcome string, cur, prev uint64) {
	if cur <= prev {
		return
	}

	c.total.WithLabelValues(c.peer, outcome).Add(float64(cur - prev))
}
