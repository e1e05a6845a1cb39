// Copyright (c) 2014 VMware, Inc. All Rights Reserved.

package cimc

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestFirmwareVersions(t *testing.T) {
	s := runSimulator(t)
	defer s.Stop()

	s.SetHandler(OpResolveClass, ResolveClassHandler(
		NewElement("firmwareRunning", map[string]string{
			"dn":      "sys/rack-unit-1/mgmt/fw-system",
			"type":    "system",
			"version": "3.0(4d)",
		}),
		NewElement("firmwareRunning", map[string]string{
			"dn":      "sys/rack-unit-1/bios/fw-boot-loader",
			"type":    "blade-bios",
			"version": "C220M4.3.0.4a",
		})))

	client := newTestClient(t, s)

	versions, err := client.FirmwareVersions()
	assert.NoError(t, err)
	assert.Len(t, versions, 2)
	assert.Equal(t, "3.0(4d)", versions[0].Version)
}

func TestStartFirmwareUpdate(t *testing.T) {
	s := runSimulator(t)
	defer s.Stop()

	var got *Element
	s.SetHandler(OpConfMo, func(req *Element) *Element {
		got = req
		return ConfMoHandler()(req)
	})

	client := newTestClient(t, s)

	err := client.StartFirmwareUpdate(FirmwareUpdate{
		RemoteIP:    "10.0.0.5",
		RemoteShare: "/images",
		RemoteFile:  "ucs-c220m4-huu-3.0.4d.iso",
		Protocol:    "nfs",
	})
	assert.NoError(t, err)

	updater := got.First("inConfig").Children[0]
	assert.Equal(t, "huuFirmwareUpdater", updater.Name)
	assert.Equal(t, "trigger", updater.Attr("adminState"))
	assert.Equal(t, "10.0.0.5", updater.Attr("remoteIp"))
	assert.Equal(t, "ucs-c220m4-huu-3.0.4d.iso", updater.Attr("remoteShareFile"))
}

func TestWaitForFirmwareUpdate(t *testing.T) {
	s := runSimulator(t)
	defer s.Stop()

	polls := 0
	s.SetHandler(OpResolveDn, func(req *Element) *Element {
		polls++
		status := "RUNNING"
		if polls >= 3 {
			status = "COMPLETED"
		}
		return ResolveDnHandler(huuStatusDn,
			NewElement("huuFirmwareUpdateStatus", map[string]string{
				"dn":           huuStatusDn,
				"updateStatus": status,
			}))(req)
	})

	client := newTestClient(t, s)
	client.interval = time.Millisecond

	assert.True(t, client.WaitForFirmwareUpdate(time.Second))
	assert.Equal(t, 3, polls)
}

func TestWaitForFirmwareUpdateTimeout(t *testing.T) {
	s := runSimulator(t)
	defer s.Stop()

	s.SetHandler(OpResolveDn, ResolveDnHandler(huuStatusDn,
		NewElement("huuFirmwareUpdateStatus", map[string]string{
			"dn":           huuStatusDn,
			"updateStatus": "RUNNING",
		})))

	client := newTestClient(t, s)
	client.interval = time.Millisecond

	assert.False(t, client.WaitForFirmwareUpdate(10*time.Millisecond))
}
