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

package rtp

import "encoding/binary"

// senderReportBlockLen is the fixed size of both the sender-info block
// and every reception-report block that follows it.
const senderReportBlockLen = 24

// SenderReport is a read-only view over an RTCP Sender Report's
// sender-info block plus zero or more fixed-size reception report
// blocks. The 4-byte RTCP common header preceding the sender-info block
// is not parsed here; data must already start at the sender-info block.
type SenderReport struct {
	data []byte
}

// ParseSenderReport validates data is at least one sender-info block
// long and an exact multiple of the 24-byte block size, then returns a
// SenderReport view over it.
func ParseSenderReport(data []byte) (SenderReport, error) {
	if len(data) < senderReportBlockLen || len(data)%senderReportBlockLen != 0 {
		return SenderReport{}, ErrorSenderReportLength.Error()
	}
	return SenderReport{data: data}, nil
}

// NTPTimestamp returns the 64-bit NTP timestamp as its most and least
// significant 32-bit halves.
func (s SenderReport) NTPTimestamp() (msb uint32, lsb uint32) {
	return binary.BigEndian.Uint32(s.data[0:4]), binary.BigEndian.Uint32(s.data[4:8])
}

// RTPTimestamp is the RTP-clock timestamp corresponding to NTPTimestamp.
func (s SenderReport) RTPTimestamp() uint32 {
	return binary.BigEndian.Uint32(s.data[8:12])
}

// PacketCount is the total number of RTP packets sent so far on this
// source.
func (s SenderReport) PacketCount() uint32 {
	return binary.BigEndian.Uint32(s.data[12:16])
}

// OctetCount is the total number of payload octets sent so far on this
// source.
func (s SenderReport) OctetCount() uint32 {
	return binary.BigEndian.Uint32(s.data[16:20])
}

// ReceptionReport is a read-only view over one 24-byte reception report
// block.
type ReceptionReport struct {
	data []byte
}

// SSRC identifies the source this report describes.
func (r ReceptionReport) SSRC() uint32 {
	return binary.BigEndian.Uint32(r.data[0:4])
}

// ReceptionReports returns every reception report block following the
// sender-info block, in order.
func (s SenderReport) ReceptionReports() []ReceptionReport {
	rest := s.data[senderReportBlockLen:]
	out := make([]ReceptionReport, 0, len(rest)/senderReportBlockLen)

	for offset := 0; offset+senderReportBlockLen <= len(rest); offset += senderReportBlockLen {
		out = append(out, ReceptionReport{data: rest[offset : offset+senderReportBlockLen]})
	}

	return out
}
