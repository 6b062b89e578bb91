/**
 * Copyright 2025-present Coinbase Global, Inc.
 *
 * Licensed under the Apache License, Version 2.0 (the "License");
 * you may not use this file except in compliance with the License.
 * You may obtain a copy of the License at
 *
 *  http://www.apache.org/licenses/LICENSE-2.0
 *
 * Unless required by applicable law or agreed to in writing, software
 * distributed under the License is distributed on an "AS IS" BASIS,
 * WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
 * See the License for the specific language governing permissions and
 * limitations under the License.
 */

// Package wire implements the NNF binary record layouts.
//
// Every record is a fixed-size, little-endian, packed layout (no alignment
// padding beyond the explicit filler bytes noted per record). Fixed-width
// strings are space-padded on encode and have trailing spaces trimmed on
// decode. Packed bitfields are defined by explicit bit tables in flags.go
// rather than by any in-memory struct layout.
//
// Each record documents its byte layout above its Marshal method, in the
// form `Field(width)`. Record sizes are exported as constants so the
// dispatcher can validate MessageLength against the expected body size.
package wire

import (
	"encoding/binary"
	"math"
)

// writer appends fixed-width fields to a pre-sized buffer. The caller
// allocates the exact record size; writes past the end panic, which in
// practice means a Size constant and a Marshal body disagree.
type writer struct {
	buf []byte
	off int
}

func newWriter(size int) *writer {
	return &writer{buf: make([]byte, size)}
}

func (w *writer) putI16(v int16) {
	binary.LittleEndian.PutUint16(w.buf[w.off:], uint16(v))
	w.off += 2
}

func (w *writer) putU16(v uint16) {
	binary.LittleEndian.PutUint16(w.buf[w.off:], v)
	w.off += 2
}

func (w *writer) putI32(v int32) {
	binary.LittleEndian.PutUint32(w.buf[w.off:], uint32(v))
	w.off += 4
}

func (w *writer) putI64(v int64) {
	binary.LittleEndian.PutUint64(w.buf[w.off:], uint64(v))
	w.off += 8
}

func (w *writer) putU64(v uint64) {
	binary.LittleEndian.PutUint64(w.buf[w.off:], v)
	w.off += 8
}

// putF64 writes an IEEE-754 double. Order numbers travel as doubles on the
// wire (legacy NNF artefact); values stay below 2^53 so precision holds.
func (w *writer) putF64(v float64) {
	binary.LittleEndian.PutUint64(w.buf[w.off:], math.Float64bits(v))
	w.off += 8
}

func (w *writer) putByte(v byte) {
	w.buf[w.off] = v
	w.off++
}

// putStr writes s space-padded to width. Longer values are truncated.
func (w *writer) putStr(s string, width int) {
	for i := 0; i < width; i++ {
		if i < len(s) {
			w.buf[w.off+i] = s[i]
		} else {
			w.buf[w.off+i] = ' '
		}
	}
	w.off += width
}

// pad writes n zero filler bytes.
func (w *writer) pad(n int) {
	w.off += n
}

// reader consumes fixed-width fields from a byte slice. The dispatcher
// guarantees at least the record size is available before decoding, so
// reads do not bounds-check individually.
type reader struct {
	buf []byte
	off int
}

func newReader(buf []byte) *reader {
	return &reader{buf: buf}
}

func (r *reader) i16() int16 {
	v := int16(binary.LittleEndian.Uint16(r.buf[r.off:]))
	r.off += 2
	return v
}

func (r *reader) u16() uint16 {
	v := binary.LittleEndian.Uint16(r.buf[r.off:])
	r.off += 2
	return v
}

func (r *reader) i32() int32 {
	v := int32(binary.LittleEndian.Uint32(r.buf[r.off:]))
	r.off += 4
	return v
}

func (r *reader) i64() int64 {
	v := int64(binary.LittleEndian.Uint64(r.buf[r.off:]))
	r.off += 8
	return v
}

func (r *reader) u64() uint64 {
	v := binary.LittleEndian.Uint64(r.buf[r.off:])
	r.off += 8
	return v
}

func (r *reader) f64() float64 {
	v := math.Float64frombits(binary.LittleEndian.Uint64(r.buf[r.off:]))
	r.off += 8
	return v
}

func (r *reader) byte() byte {
	v := r.buf[r.off]
	r.off++
	return v
}

// str reads a fixed-width field and trims trailing spaces and NULs.
func (r *reader) str(width int) string {
	raw := r.buf[r.off : r.off+width]
	r.off += width
	end := width
	for end > 0 && (raw[end-1] == ' ' || raw[end-1] == 0) {
		end--
	}
	return string(raw[:end])
}

func (r *reader) skip(n int) {
	r.off += n
}
