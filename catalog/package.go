// Copyright 2014 The catalog-24x7 Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package catalog is a parser for hv-24x7 performance counter event
// catalogs.
//
// A catalog is a page-aligned binary blob published by the hypervisor
// that describes the 24x7 performance counters available on a system:
// which events exist, which hardware domain (chip, core, virtual
// processor) each one applies to, how events are gathered into
// groups, and how the raw counter records those groups describe are
// laid out (schemas).
//
// Parsing starts with a call to Open, New, or DecodeBytes, each of
// which reads the page-0 header and all declared record tables and
// returns a *Catalog. The catalog's tables are self-describing
// variable-length record sequences with no table of offsets, so every
// record's declared length and trailing string fields are validated
// against the table bounds before anything is read through them.
// Malformed records stop the scan of their own table with a
// diagnostic; records accepted before that point, and the other
// tables, remain usable.
package catalog // import "github.com/jmesmon/catalog-24x7/catalog"
