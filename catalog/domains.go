// Copyright 2014 The catalog-24x7 Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package catalog

import "fmt"

// A Domain is the hierarchical hardware or virtualization scope a
// counter event applies to. The numeric values are defined by the
// hypervisor interface.
type Domain uint8

const (
	DomainPhysicalChip Domain = 1
	DomainPhysicalCore Domain = 2
	DomainVPHomeCore   Domain = 3
	DomainVPHomeChip   Domain = 4
	DomainVPHomeNode   Domain = 5
	DomainVPRemoteNode Domain = 6
)

var domainNames = map[Domain]string{
	DomainPhysicalChip: "PHYSICAL_CHIP",
	DomainPhysicalCore: "PHYSICAL_CORE",
	DomainVPHomeCore:   "VIRTUAL_PROCESSOR_HOME_CORE",
	DomainVPHomeChip:   "VIRTUAL_PROCESSOR_HOME_CHIP",
	DomainVPHomeNode:   "VIRTUAL_PROCESSOR_HOME_NODE",
	DomainVPRemoteNode: "VIRTUAL_PROCESSOR_REMOTE_NODE",
}

// domainIndexLabels names what the starting-index field of a counter
// request addresses within each domain.
var domainIndexLabels = map[Domain]string{
	DomainPhysicalChip: "chip",
	DomainPhysicalCore: "core",
	DomainVPHomeCore:   "vcpu",
	DomainVPHomeChip:   "vcpu",
	DomainVPHomeNode:   "vcpu",
	DomainVPRemoteNode: "vcpu",
}

// coreDomains are the domains through which an event declared on the
// physical core can be addressed.
var coreDomains = [...]Domain{
	DomainPhysicalCore,
	DomainVPHomeCore,
	DomainVPHomeChip,
	DomainVPHomeNode,
	DomainVPRemoteNode,
}

// String returns the symbolic domain name, or "unknown[n]" for codes
// the enumeration does not cover.
func (d Domain) String() string {
	if s, ok := domainNames[d]; ok {
		return s
	}
	return fmt.Sprintf("unknown[%d]", uint8(d))
}

// IndexLabel returns what the starting-index field addresses for d: a
// chip id, core id, or virtual processor id. Unrecognized domains
// report "unknown".
func (d Domain) IndexLabel() string {
	if s, ok := domainIndexLabels[d]; ok {
		return s
	}
	return "unknown"
}

// Known reports whether d is part of the domain enumeration.
func (d Domain) Known() bool {
	_, ok := domainNames[d]
	return ok
}

// IsPhysical reports whether d is scoped to physical hardware rather
// than to a virtual processor.
func (d Domain) IsPhysical() bool {
	return d == DomainPhysicalChip || d == DomainPhysicalCore
}
