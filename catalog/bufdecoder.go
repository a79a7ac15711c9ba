// Copyright 2014 The catalog-24x7 Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package catalog

import "encoding/binary"

// bufDecoder decodes consecutive big-endian fields from a byte
// buffer. Callers validate bounds before decoding; bufDecoder itself
// assumes the buffer covers every field it is asked for.
type bufDecoder struct {
	buf []byte
}

func (b *bufDecoder) skip(n int) {
	b.buf = b.buf[n:]
}

func (b *bufDecoder) u8() uint8 {
	x := b.buf[0]
	b.buf = b.buf[1:]
	return x
}

func (b *bufDecoder) u16() uint16 {
	x := binary.BigEndian.Uint16(b.buf)
	b.buf = b.buf[2:]
	return x
}

func (b *bufDecoder) u32() uint32 {
	x := binary.BigEndian.Uint32(b.buf)
	b.buf = b.buf[4:]
	return x
}

func (b *bufDecoder) u16s(x []uint16) {
	for i := range x {
		x[i] = binary.BigEndian.Uint16(b.buf[i*2:])
	}
	b.buf = b.buf[len(x)*2:]
}
