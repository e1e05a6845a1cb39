// Copyright (c) 2014 VMware, Inc. All Rights Reserved.

package cimc

import (
	"strconv"
)

const bootDefDn = rackUnitDn + "/boot-policy"

// BootEntry is one device in the boot order. Device is the managed
// object class ("lsbootVirtualMedia", "lsbootStorage", "lsbootLan", ...).
type BootEntry struct {
	Device string
	Type   string
	Order  int
}

// BootOrder returns the configured boot order, ascending
func (c *Client) BootOrder() ([]BootEntry, error) {
	def, err := c.ResolveDnHierarchy(bootDefDn)
	if err != nil {
		return nil, err
	}
	if def == nil {
		return nil, nil
	}

	entries := make([]BootEntry, 0, len(def.Children))
	for _, mo := range sortedChildren(def) {
		order, _ := strconv.Atoi(mo.Attr("order"))
		entries = append(entries, BootEntry{
			Device: mo.Name,
			Type:   mo.Attr("type"),
			Order:  order,
		})
	}
	return entries, nil
}

// SetBootOrder replaces the boot order with the given entries. The
// codec emits the children ordered the way the firmware's parser
// demands, so callers may pass entries in any order.
func (c *Client) SetBootOrder(entries []BootEntry) error {
	def := NewElement("lsbootDef", map[string]string{
		"dn":             bootDefDn,
		"rebootOnUpdate": "no",
	})
	for _, e := range entries {
		attrs := map[string]string{
			"order": strconv.Itoa(e.Order),
		}
		if e.Type != "" {
			attrs["type"] = e.Type
		}
		def.Append(NewElement(e.Device, attrs))
	}

	_, err := c.ConfMo(bootDefDn, def)
	return err
}
