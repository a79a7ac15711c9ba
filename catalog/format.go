// Copyright 2014 The catalog-24x7 Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package catalog

// PageSize is the unit of every offset and length field in the
// catalog header. The header itself occupies all of page 0.
const PageSize = 4096

// Magic is the tag at the start of page 0 of a 24x7 catalog.
var Magic = [4]byte{'2', '4', 'X', 'X'}

// catalogPage0 mirrors the on-disk layout of the catalog header.
// All multi-byte fields are big-endian.
type catalogPage0 struct {
	Magic          [4]byte
	Length         uint32 // total catalog length, in PageSize pages
	_              [4]byte
	Version        uint64
	BuildTimeStamp [16]byte // "YYYYMMDDHHMMSS\0\0"
	_              [32]byte

	Schema  tableGeom
	Event   tableGeom
	Group   tableGeom
	Formula tableGeom
}

// tableGeom locates one record table within the catalog.
type tableGeom struct {
	DataOffs   uint16 // in PageSize pages
	DataLen    uint16 // in PageSize pages
	EntryCount uint16
	_          [2]byte
}

// Fixed-portion sizes of the variable-length records. For groups and
// events this includes the name length word, which is the last fixed
// field; the name payload starts right after it.
const (
	schemaFixedLen = 8
	schemaFieldLen = 8
	groupFixedLen  = 52
	eventFixedLen  = 22

	groupEventIxCount = 16

	// Record lengths are required to be a multiple of this.
	// Violations are reported but records still decode.
	recordAlign = 16
)
