// Copyright (c) 2014 VMware, Inc. All Rights Reserved.

package cimc

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestBootOrder(t *testing.T) {
	s := runSimulator(t)
	defer s.Stop()

	def := NewElement("lsbootDef", map[string]string{"dn": bootDefDn})
	def.Append(NewElement("lsbootStorage", map[string]string{"order": "2", "type": "storage"}))
	def.Append(NewElement("lsbootVirtualMedia", map[string]string{"order": "1", "type": "virtual-media"}))
	s.SetHandler(OpResolveDn, ResolveDnHandler(bootDefDn, def))

	client := newTestClient(t, s)

	entries, err := client.BootOrder()
	assert.NoError(t, err)
	assert.Equal(t, []BootEntry{
		{Device: "lsbootVirtualMedia", Type: "virtual-media", Order: 1},
		{Device: "lsbootStorage", Type: "storage", Order: 2},
	}, entries)
}

func TestSetBootOrder(t *testing.T) {
	s := runSimulator(t)
	defer s.Stop()

	var wireOrder []string
	s.SetHandler(OpConfMo, func(req *Element) *Element {
		for _, mo := range req.First("inConfig").Children[0].Children {
			wireOrder = append(wireOrder, mo.Name)
		}
		return ConfMoHandler()(req)
	})

	client := newTestClient(t, s)

	err := client.SetBootOrder([]BootEntry{
		{Device: "lsbootStorage", Type: "storage", Order: 3},
		{Device: "lsbootLan", Type: "lan", Order: 1},
		{Device: "lsbootVirtualMedia", Type: "virtual-media", Order: 2},
	})
	assert.NoError(t, err)

	// the device saw the entries in ascending order regardless of how
	// the caller listed them
	assert.Equal(t, []string{"lsbootLan", "lsbootVirtualMedia", "lsbootStorage"}, wireOrder)
}
