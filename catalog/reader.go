// Copyright 2014 The catalog-24x7 Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package catalog

import (
	"bytes"
	"encoding/binary"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/rs/zerolog"
)

// A Catalog holds the decoded contents of a 24x7 catalog.
//
// Record name and description fields are views into table buffers
// owned by the Catalog, so they stay valid for its lifetime without
// ever being copied.
type Catalog struct {
	Header Header

	Schemas []SchemaRecord
	// Groups doubles as the group index: an event's primary group
	// index addresses this slice by position.
	Groups []GroupRecord
	Events []EventRecord

	// Stats records how each table scan ended, in scan order
	// (schema, group, event). Recoverable per-table failures land
	// here instead of aborting the decode.
	Stats []TableStats
}

// Header is the decoded page-0 catalog header.
type Header struct {
	Magic          [4]byte
	PageCount      uint32 // total catalog length in pages
	Version        uint64
	BuildTimeStamp string

	Schema  TableInfo
	Event   TableInfo
	Group   TableInfo
	Formula TableInfo // declared in the header but never scanned
}

// TableInfo is the page geometry of one record table.
type TableInfo struct {
	PageOffs   int // from the start of the catalog, in pages
	PageLen    int // in pages
	EntryCount int
}

// UnknownGroupName is resolved for primary-group indexes that fall
// outside the decoded group table.
const UnknownGroupName = "UNKNOWN"

// GroupName resolves a group-table index to the group's name. Out of
// range indexes resolve to UnknownGroupName rather than failing: the
// index came from the catalog and may be corrupt.
func (c *Catalog) GroupName(ix int) string {
	if ix < 0 || ix >= len(c.Groups) {
		return UnknownGroupName
	}
	return string(c.Groups[ix].Name)
}

// A Decoder decodes catalogs. Log receives scan diagnostics;
// functions that construct a Decoder internally use zerolog.Nop.
type Decoder struct {
	Log zerolog.Logger
}

// New decodes a catalog from r without diagnostics. All declared
// tables are read eagerly, so r is not needed once New returns.
func New(r io.ReaderAt) (*Catalog, error) {
	d := Decoder{Log: zerolog.Nop()}
	return d.Decode(r)
}

// Open decodes the named catalog file.
func Open(name string) (*Catalog, error) {
	f, err := os.Open(name)
	if err != nil {
		return nil, err
	}
	defer f.Close()
	return New(f)
}

// DecodeBytes decodes a catalog already resident in memory.
func DecodeBytes(data []byte) (*Catalog, error) {
	return New(bytes.NewReader(data))
}

// Decode reads the page-0 header from r, then each record table the
// header declares, and scans the schema, group, and event tables in
// that order (events resolve their primary group by index, so groups
// must already be decoded).
//
// Failing to read the header or the full byte extent of a table is
// fatal. A malformed record only stops the scan of its own table; the
// damage is recorded in Catalog.Stats and the other tables still
// decode.
func (d *Decoder) Decode(r io.ReaderAt) (*Catalog, error) {
	page0 := make([]byte, PageSize)
	if n, err := r.ReadAt(page0, 0); n != len(page0) {
		return nil, fmt.Errorf("%w: page 0: got %d bytes: %v", ErrShortRead, n, err)
	}

	var p0 catalogPage0
	if err := binary.Read(bytes.NewReader(page0), binary.BigEndian, &p0); err != nil {
		return nil, err
	}
	if p0.Magic != Magic {
		d.Log.Warn().
			Str("magic", string(p0.Magic[:])).
			Msg("unexpected catalog magic")
	}

	c := &Catalog{Header: Header{
		Magic:          p0.Magic,
		PageCount:      p0.Length,
		Version:        p0.Version,
		BuildTimeStamp: strings.TrimRight(string(p0.BuildTimeStamp[:]), "\x00"),
		Schema:         tableInfo(p0.Schema),
		Event:          tableInfo(p0.Event),
		Group:          tableInfo(p0.Group),
		Formula:        tableInfo(p0.Formula),
	}}
	d.logHeader(&c.Header)

	schemaData, err := d.readTable(r, c.Header.Schema, "schema")
	if err != nil {
		return nil, err
	}
	groupData, err := d.readTable(r, c.Header.Group, "group")
	if err != nil {
		return nil, err
	}
	eventData, err := d.readTable(r, c.Header.Event, "event")
	if err != nil {
		return nil, err
	}

	scan := tableScan{
		table:    "schema",
		data:     schemaData,
		declared: c.Header.Schema.EntryCount,
		fixedLen: schemaFixedLen,
		log:      d.Log,
		within:   schemaWithin,
		accept: func(start, length, i int) {
			c.Schemas = append(c.Schemas, parseSchema(schemaData, start, length, d.Log))
		},
	}
	c.Stats = append(c.Stats, scan.run())

	scan = tableScan{
		table:    "group",
		data:     groupData,
		declared: c.Header.Group.EntryCount,
		fixedLen: groupFixedLen,
		log:      d.Log,
		within:   groupWithin,
		accept: func(start, length, i int) {
			c.Groups = append(c.Groups, parseGroup(groupData, start, length))
		},
	}
	c.Stats = append(c.Stats, scan.run())

	scan = tableScan{
		table:    "event",
		data:     eventData,
		declared: c.Header.Event.EntryCount,
		fixedLen: eventFixedLen,
		log:      d.Log,
		within:   eventWithin,
		// A zero event group record length marks a deliberate
		// placeholder: structurally advanced past, never kept.
		skip: func(data []byte, start int) bool {
			return binary.BigEndian.Uint16(data[start+8:]) == 0
		},
		accept: func(start, length, i int) {
			c.Events = append(c.Events, parseEvent(eventData, start, length))
		},
		pageWarn: true,
	}
	c.Stats = append(c.Stats, scan.run())

	return c, nil
}

// readTable reads one table's full page extent. A short read here is
// fatal: record scanning must never run against a partial buffer.
func (d *Decoder) readTable(r io.ReaderAt, ti TableInfo, name string) ([]byte, error) {
	if ti.PageLen == 0 {
		return nil, nil
	}
	buf := make([]byte, ti.PageLen*PageSize)
	if n, err := r.ReadAt(buf, int64(ti.PageOffs)*PageSize); n != len(buf) {
		return nil, fmt.Errorf("catalog: reading %s table: got %d of %d bytes: %w",
			name, n, len(buf), err)
	}
	return buf, nil
}

func (d *Decoder) logHeader(h *Header) {
	d.Log.Debug().
		Str("magic", string(h.Magic[:])).
		Uint32("pages", h.PageCount).
		Str("build_time_stamp", h.BuildTimeStamp).
		Uint64("version", h.Version).
		Msg("catalog header")
	for _, t := range []struct {
		name string
		ti   TableInfo
	}{
		{"schema", h.Schema},
		{"event", h.Event},
		{"group", h.Group},
		{"formula", h.Formula},
	} {
		d.Log.Debug().
			Str("table", t.name).
			Int("page_offs", t.ti.PageOffs).
			Int("page_len", t.ti.PageLen).
			Int("entry_count", t.ti.EntryCount).
			Msg("table geometry")
	}
}

func tableInfo(g tableGeom) TableInfo {
	return TableInfo{
		PageOffs:   int(g.DataOffs),
		PageLen:    int(g.DataLen),
		EntryCount: int(g.EntryCount),
	}
}
