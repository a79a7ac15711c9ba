// Copyright 2014 The catalog-24x7 Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package catalog

import "encoding/binary"

// stringField extracts the length-prefixed string field starting at
// off within buf. The 16-bit big-endian length word counts itself, so
// a field of length L carries L-2 payload bytes right after the word.
// It returns the payload and the offset of the first byte past the
// field, which is where the next field of a chain starts.
func stringField(buf []byte, off int) (payload []byte, end int, err error) {
	if off < 0 || off+2 > len(buf) {
		return nil, 0, ErrTruncatedField
	}
	l := int(binary.BigEndian.Uint16(buf[off:]))
	if l < 2 {
		return nil, 0, ErrTruncatedField
	}
	end = off + l
	if end > len(buf) {
		return nil, 0, ErrTruncatedField
	}
	return buf[off+2 : end], end, nil
}

// stringFields extracts n consecutive length-prefixed fields starting
// at off, each field beginning where the previous one ended. The
// returned payloads are views into buf, not copies.
func stringFields(buf []byte, off, n int) (payloads [][]byte, end int, err error) {
	payloads = make([][]byte, n)
	end = off
	for i := 0; i < n; i++ {
		payloads[i], end, err = stringField(buf, end)
		if err != nil {
			return nil, 0, err
		}
	}
	return payloads, end, nil
}
