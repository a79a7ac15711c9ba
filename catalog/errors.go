// Copyright 2014 The catalog-24x7 Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package catalog

import (
	"errors"
	"fmt"
)

// ErrShortRead reports an input too small to hold the catalog header.
var ErrShortRead = errors.New("catalog: short read")

// ErrTruncatedField reports a length-prefixed string field whose
// length word is below 2 (the word counts its own two bytes) or whose
// declared extent leaves the buffer.
var ErrTruncatedField = errors.New("catalog: truncated string field")

// A FailKind classifies why a record failed validation.
type FailKind int

const (
	// FixedOutOfRange: the record's fixed-size portion does not fit
	// before the table end.
	FixedOutOfRange FailKind = iota
	// ZeroLength: the record's length word is zero, so the scan
	// cannot advance.
	ZeroLength
	// RecordPastTable: the record's declared length runs past the
	// end of the table data.
	RecordPastTable
	// ExceedsTableBound: a trailing string field runs past the end
	// of the table data.
	ExceedsTableBound
	// ExceedsOwnLength: a trailing string field runs past the
	// record's own declared length.
	ExceedsOwnLength
	// NameTooShort, DescTooShort, LongDescTooShort: the given
	// string field's length word is below 2.
	NameTooShort
	DescTooShort
	LongDescTooShort
	// NoFieldEntries: a schema record declares zero field entries.
	NoFieldEntries
)

var failKindStrings = [...]string{
	FixedOutOfRange:   "fixed portion is not within range",
	ZeroLength:        "length field is zero",
	RecordPastTable:   "record ends after table data",
	ExceedsTableBound: "record exceeds table data length",
	ExceedsOwnLength:  "record exceeds its own length",
	NameTooShort:      "name length too short",
	DescTooShort:      "desc length too short",
	LongDescTooShort:  "long desc length too short",
	NoFieldEntries:    "no field entries",
}

func (k FailKind) String() string {
	if int(k) < len(failKindStrings) {
		return failKindStrings[k]
	}
	return fmt.Sprintf("FailKind(%d)", int(k))
}

// A RecordError reports why scanning a table stopped at a particular
// record. Records accepted before the failing one remain valid.
type RecordError struct {
	Table  string // "schema", "group", or "event"
	Index  int    // record position within the table
	Offset int    // byte offset of the record within its table
	Kind   FailKind
}

func (e *RecordError) Error() string {
	return fmt.Sprintf("catalog: %s record %d at offset %#x: %s",
		e.Table, e.Index, e.Offset, e.Kind)
}
