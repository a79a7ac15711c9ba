// Copyright 2014 The catalog-24x7 Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package catalog

import (
	"bytes"
	"encoding/binary"
	"testing"
)

// Test-only encoders for catalog structures. The decoder under test
// only ever sees bytes these produce (or corruptions of them).

// lenPrefixed encodes one length-prefixed string field: a 16-bit
// big-endian length word that counts itself, then the payload.
func lenPrefixed(s string) []byte {
	b := make([]byte, 2+len(s))
	binary.BigEndian.PutUint16(b, uint16(len(s)+2))
	copy(b[2:], s)
	return b
}

// padTo zero-pads rec to n bytes and stamps n into the leading record
// length word.
func padTo(rec []byte, n int) []byte {
	out := make([]byte, n)
	copy(out, rec)
	binary.BigEndian.PutUint16(out, uint16(n))
	return out
}

// padRecord pads rec to the record alignment the hypervisor uses.
func padRecord(rec []byte) []byte {
	n := (len(rec) + recordAlign - 1) / recordAlign * recordAlign
	return padTo(rec, n)
}

// pagePad zero-pads b to a whole number of pages. An empty table
// stays empty.
func pagePad(b []byte) []byte {
	if len(b) == 0 {
		return nil
	}
	n := (len(b) + PageSize - 1) / PageSize * PageSize
	out := make([]byte, n)
	copy(out, b)
	return out
}

type eventSpec struct {
	domain         Domain
	egrOffs        uint16
	egrLen         uint16
	counterOffs    uint16
	flags          uint32
	primaryGroupIx uint16
	groupCount     uint16
	name           string
	desc           string
	longDesc       string
}

func buildEvent(t *testing.T, spec eventSpec) []byte {
	t.Helper()
	b := make([]byte, eventFixedLen)
	b[4] = byte(spec.domain)
	binary.BigEndian.PutUint16(b[6:], spec.egrOffs)
	binary.BigEndian.PutUint16(b[8:], spec.egrLen)
	binary.BigEndian.PutUint16(b[10:], spec.counterOffs)
	binary.BigEndian.PutUint32(b[12:], spec.flags)
	binary.BigEndian.PutUint16(b[16:], spec.primaryGroupIx)
	binary.BigEndian.PutUint16(b[18:], spec.groupCount)
	// The name length word is the last fixed field; its payload
	// starts the remainder.
	binary.BigEndian.PutUint16(b[20:], uint16(len(spec.name)+2))
	b = append(b, spec.name...)
	b = append(b, lenPrefixed(spec.desc)...)
	b = append(b, lenPrefixed(spec.longDesc)...)
	return padRecord(b)
}

type groupSpec struct {
	flags    uint32
	domain   Domain
	egrOffs  uint16
	egrLen   uint16
	schemaIx uint16
	eventIxs []uint16
	name     string
	desc     string
}

func buildGroup(t *testing.T, spec groupSpec) []byte {
	t.Helper()
	b := make([]byte, groupFixedLen)
	binary.BigEndian.PutUint32(b[4:], spec.flags)
	b[8] = byte(spec.domain)
	binary.BigEndian.PutUint16(b[10:], spec.egrOffs)
	binary.BigEndian.PutUint16(b[12:], spec.egrLen)
	binary.BigEndian.PutUint16(b[14:], spec.schemaIx)
	binary.BigEndian.PutUint16(b[16:], uint16(len(spec.eventIxs)))
	for i, ix := range spec.eventIxs {
		binary.BigEndian.PutUint16(b[18+2*i:], ix)
	}
	binary.BigEndian.PutUint16(b[50:], uint16(len(spec.name)+2))
	b = append(b, spec.name...)
	b = append(b, lenPrefixed(spec.desc)...)
	return padRecord(b)
}

type schemaSpec struct {
	descriptor uint16
	versionID  uint16
	fields     []FieldEntry
	// count overrides the stamped field entry count when nonzero.
	count uint16
}

func buildSchema(t *testing.T, spec schemaSpec) []byte {
	t.Helper()
	b := make([]byte, schemaFixedLen)
	binary.BigEndian.PutUint16(b[2:], spec.descriptor)
	binary.BigEndian.PutUint16(b[4:], spec.versionID)
	count := spec.count
	if count == 0 {
		count = uint16(len(spec.fields))
	}
	binary.BigEndian.PutUint16(b[6:], count)
	for _, f := range spec.fields {
		e := make([]byte, schemaFieldLen)
		binary.BigEndian.PutUint16(e[0:], f.Enum)
		binary.BigEndian.PutUint16(e[2:], f.Offs)
		binary.BigEndian.PutUint16(e[4:], f.Length)
		binary.BigEndian.PutUint16(e[6:], f.Flags)
		b = append(b, e...)
	}
	return padRecord(b)
}

type imageSpec struct {
	schemas [][]byte
	groups  [][]byte
	events  [][]byte

	// Declared entry counts; -1 means "as many as supplied".
	schemaCount int
	groupCount  int
	eventCount  int
}

// buildImage assembles a full catalog: page 0 header, then the
// schema, event, and group tables in the header's declaration order.
func buildImage(t *testing.T, spec imageSpec) []byte {
	t.Helper()
	schema := pagePad(bytes.Join(spec.schemas, nil))
	event := pagePad(bytes.Join(spec.events, nil))
	group := pagePad(bytes.Join(spec.groups, nil))

	counts := [3]int{spec.schemaCount, spec.groupCount, spec.eventCount}
	defaults := [3]int{len(spec.schemas), len(spec.groups), len(spec.events)}
	for i := range counts {
		if counts[i] == -1 {
			counts[i] = defaults[i]
		}
	}

	schemaPages := len(schema) / PageSize
	eventPages := len(event) / PageSize
	groupPages := len(group) / PageSize
	totalPages := 1 + schemaPages + eventPages + groupPages

	hdr := make([]byte, PageSize)
	copy(hdr, Magic[:])
	binary.BigEndian.PutUint32(hdr[4:], uint32(totalPages))
	binary.BigEndian.PutUint64(hdr[12:], 42)
	copy(hdr[20:], "20240101120000\x00\x00")

	geom := func(off, pageOffs, pageLen, count int) {
		binary.BigEndian.PutUint16(hdr[off:], uint16(pageOffs))
		binary.BigEndian.PutUint16(hdr[off+2:], uint16(pageLen))
		binary.BigEndian.PutUint16(hdr[off+4:], uint16(count))
	}
	geom(68, 1, schemaPages, counts[0])
	geom(76, 1+schemaPages, eventPages, counts[2])
	geom(84, 1+schemaPages+eventPages, groupPages, counts[1])
	// The formula table is left undeclared; it is never scanned.

	img := hdr
	img = append(img, schema...)
	img = append(img, event...)
	img = append(img, group...)
	return img
}

func testEvent(domain Domain) eventSpec {
	return eventSpec{
		domain:      domain,
		egrOffs:     32,
		egrLen:      64,
		counterOffs: 8,
		flags:       0x1,
		groupCount:  1,
		name:        "PM_CYC",
		desc:        "cycles",
		longDesc:    "processor cycles elapsed",
	}
}
