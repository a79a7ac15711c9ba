// Copyright 2014 The catalog-24x7 Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package catalog

import (
	"encoding/binary"

	"github.com/rs/zerolog"
)

// TableStats summarizes how one table scan ended.
type TableStats struct {
	Table    string
	Declared int // entry count from the header
	Accepted int
	Skipped  int // placeholder events, advanced past but not kept

	// ShortCount is set when the table data ran out before the
	// declared entry count was reached.
	ShortCount bool

	// Err is the diagnostic that stopped the scan early, nil for a
	// clean scan. Records accepted before it remain valid.
	Err error
}

// tableScan walks consecutive variable-length records in one table
// buffer. The same state machine serves all three table kinds; the
// hooks specialize validation and what happens to accepted records.
type tableScan struct {
	table    string
	data     []byte
	declared int
	fixedLen int
	log      zerolog.Logger

	// within validates the record at start against end, reporting
	// boundKind when something runs past end. It is run twice per
	// record: once against the table end and once against the
	// record's own declared end.
	within func(data []byte, start, end int, boundKind FailKind, log zerolog.Logger) (FailKind, bool)

	// skip, if set, reports a record that must be advanced past
	// without validation or acceptance (placeholder events). It is
	// only called once the fixed portion is known to be in range.
	skip func(data []byte, start int) bool

	// accept consumes a fully validated record.
	accept func(start, length, i int)

	// pageWarn enables the soft check that a record stays within
	// the page it starts on.
	pageWarn bool
}

func (s *tableScan) fail(i, off int, kind FailKind) error {
	err := &RecordError{Table: s.table, Index: i, Offset: off, Kind: kind}
	s.log.Warn().Msg(err.Error())
	return err
}

func (s *tableScan) run() TableStats {
	st := TableStats{Table: s.table, Declared: s.declared}
	off := 0
	i := 0
	for {
		if off >= len(s.data) {
			if i < s.declared {
				// The header promised more records than
				// the buffer holds.
				st.ShortCount = true
				s.log.Warn().
					Str("table", s.table).
					Int("got", i).
					Int("wanted", s.declared).
					Msg("table data ended before listed # of entries were parsed")
			}
			break
		}
		if i >= s.declared {
			// Padding follows the last record, this is expected.
			s.log.Debug().
				Str("table", s.table).
				Int("offset", off).
				Int("remaining", len(s.data)-off).
				Msg("entry count ends before buffer end")
			break
		}
		if off+s.fixedLen > len(s.data) {
			st.Err = s.fail(i, off, FixedOutOfRange)
			break
		}

		length := int(binary.BigEndian.Uint16(s.data[off:]))
		if length == 0 {
			// Advancing by zero would rescan the same bytes
			// forever.
			st.Err = s.fail(i, off, ZeroLength)
			break
		}

		if s.skip != nil && s.skip(s.data, off) {
			s.log.Trace().
				Str("table", s.table).
				Int("record", i).
				Msg("invalid record, skipping")
			st.Skipped++
			off += length
			i++
			continue
		}

		s.log.Debug().
			Str("table", s.table).
			Int("record", i).
			Int("of", s.declared).
			Int("len", length).
			Int("offset", off).
			Msg("record")
		if length%recordAlign != 0 {
			s.log.Warn().
				Str("table", s.table).
				Int("record", i).
				Int("len", length).
				Msg("record length is misaligned")
		}

		recEnd := off + length
		if recEnd > len(s.data) {
			st.Err = s.fail(i, off, RecordPastTable)
			break
		}
		if kind, ok := s.within(s.data, off, len(s.data), ExceedsTableBound, s.log); !ok {
			st.Err = s.fail(i, off, kind)
			break
		}
		if kind, ok := s.within(s.data, off, recEnd, ExceedsOwnLength, s.log); !ok {
			st.Err = s.fail(i, off, kind)
			break
		}
		if s.pageWarn {
			if pageEnd := (off/PageSize + 1) * PageSize; recEnd > pageEnd {
				s.log.Warn().
					Str("table", s.table).
					Int("record", i).
					Int("offset", off).
					Msg("record crosses page boundary")
			}
		}

		s.accept(off, length, i)
		st.Accepted++
		off = recEnd
		i++
	}
	return st
}
