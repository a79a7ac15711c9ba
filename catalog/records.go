// Copyright 2014 The catalog-24x7 Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package catalog

import (
	"encoding/binary"

	"github.com/rs/zerolog"
)

// A FieldEntry describes one field of a raw counter record layout.
type FieldEntry struct {
	Enum   uint16
	Offs   uint16
	Length uint16
	Flags  uint16
}

// A SchemaRecord describes the internal field layout of a raw counter
// record, independent of any specific event or group.
type SchemaRecord struct {
	Length          uint16
	Descriptor      uint16
	VersionID       uint16
	FieldEntryCount uint16
	// FieldEntries holds the entries that physically fit in the
	// record; it can be shorter than FieldEntryCount if the record
	// is malformed.
	FieldEntries []FieldEntry

	raw []byte
}

// A GroupRecord is a named collection of events sharing one raw
// counter record layout.
type GroupRecord struct {
	Length               uint16
	Flags                uint32
	Domain               Domain
	EventGroupRecordOffs uint16
	EventGroupRecordLen  uint16
	GroupSchemaIx        uint16
	EventCount           uint16
	// EventIxs are fixed-slot offsets into the group's event group
	// record. Slots past EventCount are zero.
	EventIxs [groupEventIxCount]uint16

	// Name and Desc are views into the table buffer, not copies.
	Name []byte
	Desc []byte

	raw []byte
}

// An EventRecord describes one counter event.
type EventRecord struct {
	Length               uint16
	Domain               Domain
	EventGroupRecordOffs uint16
	EventGroupRecordLen  uint16
	EventCounterOffs     uint16
	Flags                uint32
	PrimaryGroupIx       uint16
	GroupCount           uint16

	// Name, Desc, and LongDesc are views into the table buffer,
	// not copies.
	Name     []byte
	Desc     []byte
	LongDesc []byte

	raw []byte
}

// CounterOffs is the byte offset of the event's counter within the
// raw counter block: the event group record offset plus the counter's
// offset inside that record.
func (ev *EventRecord) CounterOffs() uint32 {
	return uint32(ev.EventGroupRecordOffs) + uint32(ev.EventCounterOffs)
}

// Raw returns the record's bytes within its table buffer.
func (ev *EventRecord) Raw() []byte { return ev.raw }

// tailShortKinds maps a string-chain position to the failure reported
// when that field's length word is below 2.
var tailShortKinds = [...]FailKind{NameTooShort, DescTooShort, LongDescTooShort}

// tailWithin validates n chained length-prefixed fields whose first
// length word sits at lenOff, without reading past end or past data.
// boundKind is the failure reported when a field passes end; it
// distinguishes the table bound from the record's own declared end,
// both of which callers must check independently.
//
// A length word off its natural 2-byte alignment is only warned
// about: such catalogs still decode correctly.
func tailWithin(data []byte, lenOff, end, n int, boundKind FailKind, log zerolog.Logger) (FailKind, bool) {
	if end > len(data) {
		end = len(data)
	}
	off := lenOff
	for i := 0; i < n; i++ {
		if off%2 != 0 {
			log.Warn().Int("offset", off).Msg("string length word not 2-byte aligned")
		}
		if off+2 > end {
			return boundKind, false
		}
		l := int(binary.BigEndian.Uint16(data[off:]))
		if l < 2 {
			return tailShortKinds[i], false
		}
		if off+l > end {
			return boundKind, false
		}
		off += l
	}
	return 0, true
}

// schemaWithin checks that every field entry a schema record declares
// lies before end.
func schemaWithin(data []byte, start, end int, boundKind FailKind, _ zerolog.Logger) (FailKind, bool) {
	count := int(binary.BigEndian.Uint16(data[start+6:]))
	if count == 0 {
		return NoFieldEntries, false
	}
	if end > len(data) {
		end = len(data)
	}
	if start+schemaFixedLen+count*schemaFieldLen > end {
		return boundKind, false
	}
	return 0, true
}

// groupWithin checks a group record's name and description chain.
func groupWithin(data []byte, start, end int, boundKind FailKind, log zerolog.Logger) (FailKind, bool) {
	return tailWithin(data, start+groupFixedLen-2, end, 2, boundKind, log)
}

// eventWithin checks an event record's name, description, and long
// description chain.
func eventWithin(data []byte, start, end int, boundKind FailKind, log zerolog.Logger) (FailKind, bool) {
	return tailWithin(data, start+eventFixedLen-2, end, 3, boundKind, log)
}

// parseSchema decodes the schema record at start. The caller has
// already validated its bounds.
func parseSchema(data []byte, start, length int, log zerolog.Logger) SchemaRecord {
	bd := bufDecoder{data[start : start+length]}
	s := SchemaRecord{raw: data[start : start+length]}
	s.Length = bd.u16()
	s.Descriptor = bd.u16()
	s.VersionID = bd.u16()
	s.FieldEntryCount = bd.u16()

	// The declared entry count must exactly account for the bytes
	// up to the record's own length. Trailing padding is expected;
	// a count that does not fit is reported and clamped.
	avail := (length - schemaFixedLen) / schemaFieldLen
	n := int(s.FieldEntryCount)
	if n > avail {
		log.Warn().
			Int("got", avail).
			Int("wanted", n).
			Int("length", length).
			Msg("schema ended before listed # of fields were parsed")
		n = avail
	} else if pad := length - schemaFixedLen - n*schemaFieldLen; pad > 0 {
		log.Debug().Int("bytes", pad).Msg("schema has padding")
	}

	s.FieldEntries = make([]FieldEntry, n)
	for i := range s.FieldEntries {
		s.FieldEntries[i] = FieldEntry{
			Enum:   bd.u16(),
			Offs:   bd.u16(),
			Length: bd.u16(),
			Flags:  bd.u16(),
		}
	}
	return s
}

// parseGroup decodes the group record at start. The caller has
// already validated its bounds.
func parseGroup(data []byte, start, length int) GroupRecord {
	bd := bufDecoder{data[start : start+length]}
	g := GroupRecord{raw: data[start : start+length]}
	g.Length = bd.u16()
	bd.skip(2)
	g.Flags = bd.u32()
	g.Domain = Domain(bd.u8())
	bd.skip(1)
	g.EventGroupRecordOffs = bd.u16()
	g.EventGroupRecordLen = bd.u16()
	g.GroupSchemaIx = bd.u16()
	g.EventCount = bd.u16()
	bd.u16s(g.EventIxs[:])

	// Validated by groupWithin, so the chain cannot fail here.
	tail, _, _ := stringFields(data[:start+length], start+groupFixedLen-2, 2)
	g.Name, g.Desc = tail[0], tail[1]
	return g
}

// parseEvent decodes the event record at start. The caller has
// already validated its bounds.
func parseEvent(data []byte, start, length int) EventRecord {
	bd := bufDecoder{data[start : start+length]}
	ev := EventRecord{raw: data[start : start+length]}
	ev.Length = bd.u16()
	bd.skip(2)
	ev.Domain = Domain(bd.u8())
	bd.skip(1)
	ev.EventGroupRecordOffs = bd.u16()
	ev.EventGroupRecordLen = bd.u16()
	ev.EventCounterOffs = bd.u16()
	ev.Flags = bd.u32()
	ev.PrimaryGroupIx = bd.u16()
	ev.GroupCount = bd.u16()

	// Validated by eventWithin, so the chain cannot fail here.
	tail, _, _ := stringFields(data[:start+length], start+eventFixedLen-2, 3)
	ev.Name, ev.Desc, ev.LongDesc = tail[0], tail[1], tail[2]
	return ev
}
