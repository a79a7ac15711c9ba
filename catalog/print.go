// Copyright 2014 The catalog-24x7 Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package catalog

import (
	"encoding/hex"
	"fmt"
	"io"
	"strings"

	"github.com/rs/zerolog"
)

// Debug tiers at which the printer adds detail.
const (
	// DebugStructs adds schema and group struct dumps.
	DebugStructs = 1
	// DebugEventStructs also dumps every event's decoded fields.
	DebugEventStructs = 5
	// DebugHex also hex dumps each event record's raw bytes.
	DebugHex = 100
)

// A Printer renders decoded catalog records as text.
//
// At Debug 0 only event names and their per-domain addressing lines
// are printed. Higher tiers add the structured record dumps.
type Printer struct {
	W     io.Writer
	Debug int
	Log   zerolog.Logger // diagnostics for unrenderable records
}

// PrintCatalog renders c's records in table scan order: schemas and
// groups when Debug reaches DebugStructs, events always.
func (p *Printer) PrintCatalog(c *Catalog) {
	if p.Debug >= DebugStructs {
		for i := range c.Schemas {
			p.PrintSchema(&c.Schemas[i])
		}
		for i := range c.Groups {
			p.PrintGroup(&c.Groups[i])
		}
	}
	for i := range c.Events {
		p.PrintEvent(c, &c.Events[i])
	}
}

// PrintEvent prints ev's name and one addressing line per domain it
// can be requested in: just its own domain for a physical chip event,
// the full core expansion for a physical core event. Events in any
// other domain get no addressing lines, only a diagnostic.
func (p *Printer) PrintEvent(c *Catalog, ev *EventRecord) {
	fmt.Fprintf(p.W, "%s:\n", ev.Name)
	switch ev.Domain {
	case DomainPhysicalChip:
		p.printEventDomain(ev, ev.Domain)
	case DomainPhysicalCore:
		for _, dom := range coreDomains {
			p.printEventDomain(ev, dom)
		}
	default:
		p.Log.Warn().
			Uint8("domain", uint8(ev.Domain)).
			Str("event", string(ev.Name)).
			Msg("unsupported event domain")
	}

	if p.Debug < DebugEventStructs {
		return
	}
	groupIx := int(ev.PrimaryGroupIx)
	fmt.Fprintf(p.W, "event {\n"+
		"	.length = %d,\n"+
		"	.domain = %s /* %d */,\n"+
		"	.event_group_record_offs = %d,\n"+
		"	.event_group_record_len = %d,\n"+
		"	.event_counter_offs = %d,\n"+
		"	.flags = %x,\n"+
		"	.primary_group_ix = \"%s\" /* %d */,\n"+
		"	.group_count = %d,\n"+
		"	.name = \"%s\", /* %d */\n"+
		"	.desc = \"%s\", /* %d */\n"+
		"	.detailed_desc = \"%s\", /* %d */\n"+
		"}\n",
		ev.Length,
		ev.Domain, uint8(ev.Domain),
		ev.EventGroupRecordOffs,
		ev.EventGroupRecordLen,
		ev.EventCounterOffs,
		ev.Flags,
		cString([]byte(c.GroupName(groupIx))), groupIx,
		ev.GroupCount,
		cString(ev.Name), len(ev.Name),
		cString(ev.Desc), len(ev.Desc),
		cString(ev.LongDesc), len(ev.LongDesc))

	if p.Debug >= DebugHex {
		fmt.Fprint(p.W, hex.Dump(ev.raw))
	}
}

func (p *Printer) printEventDomain(ev *EventRecord, dom Domain) {
	lpar := "sibling_guest_id"
	if dom.IsPhysical() {
		lpar = "0x0"
	}
	fmt.Fprintf(p.W, "domain=0x%x,offset=0x%x,starting_index=%s,lpar=%s\n",
		uint8(dom), ev.CounterOffs(), dom.IndexLabel(), lpar)
}

// PrintGroup dumps every decoded field of a group record.
func (p *Printer) PrintGroup(g *GroupRecord) {
	ixs := make([]string, len(g.EventIxs))
	for i, ix := range g.EventIxs {
		ixs[i] = fmt.Sprintf("%d", ix)
	}
	fmt.Fprintf(p.W, "group {\n"+
		"	.length = %d,\n"+
		"	.flags = %x,\n"+
		"	.domain = %s /* %d */,\n"+
		"	.event_group_record_offs = %d,\n"+
		"	.event_group_record_len = %d,\n"+
		"	.group_schema_index = %d,\n"+
		"	.event_count = %d,\n"+
		"	.event_indexes = {%s},\n"+
		"	.name = \"%s\", /* %d */\n"+
		"	.desc = \"%s\", /* %d */\n"+
		"}\n",
		g.Length,
		g.Flags,
		g.Domain, uint8(g.Domain),
		g.EventGroupRecordOffs,
		g.EventGroupRecordLen,
		g.GroupSchemaIx,
		g.EventCount,
		strings.Join(ixs, ", "),
		cString(g.Name), len(g.Name),
		cString(g.Desc), len(g.Desc))
}

// PrintSchema dumps a schema record with its field entries rendered
// positionally.
func (p *Printer) PrintSchema(s *SchemaRecord) {
	fmt.Fprintf(p.W, "schema {\n"+
		"	.length = %d,\n"+
		"	.descriptor = %d,\n"+
		"	.version_id = %d,\n"+
		"	.field_entry_count = %d,\n"+
		"	.field_entries = {\n",
		s.Length,
		s.Descriptor,
		s.VersionID,
		s.FieldEntryCount)
	for i, f := range s.FieldEntries {
		fmt.Fprintf(p.W, "		[%d] = {\n"+
			"			.enum = %d,\n"+
			"			.offs = %d,\n"+
			"			.length = %d,\n"+
			"			.flags = 0x%X,\n"+
			"		},\n",
			i, f.Enum, f.Offs, f.Length, f.Flags)
	}
	fmt.Fprint(p.W, "	}\n}\n")
}

// cString renders raw catalog bytes the way a C string literal would,
// so control bytes in malformed names stay visible.
func cString(b []byte) string {
	var sb strings.Builder
	for _, c := range b {
		switch {
		case c == '"':
			sb.WriteString(`\"`)
		case c == '\\':
			sb.WriteString(`\\`)
		case c == '\n':
			sb.WriteString(`\n`)
		case c == '\t':
			sb.WriteString(`\t`)
		case c >= 0x20 && c < 0x7f:
			sb.WriteByte(c)
		default:
			fmt.Fprintf(&sb, `\x%02x`, c)
		}
	}
	return sb.String()
}
