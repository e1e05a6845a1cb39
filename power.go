// Copyright (c) 2014 VMware, Inc. All Rights Reserved.

package cimc

import (
	"fmt"
	"time"
)

// PowerControl selects a computeRackUnit adminPower transition
type PowerControl uint8

// Power transitions. This is the richer table including CMOS reset,
// BMC reset, and diagnostic interrupt (NMI); older firmware may only
// honor the first four. TODO: verify bmc-reset-immediate against the
// 3.x firmware release notes, which list it under a different class.
const (
	PowerUp = PowerControl(iota)
	PowerDown
	PowerSoftShutdown
	PowerCycle
	PowerHardReset
	PowerBMCReset
	PowerCMOSReset
	PowerDiagnosticInterrupt
)

const rackUnitDn = "sys/rack-unit-1"

func (p PowerControl) String() string {
	switch p {
	case PowerUp:
		return "up"
	case PowerDown:
		return "down"
	case PowerSoftShutdown:
		return "soft-shut-down"
	case PowerCycle:
		return "cycle-immediate"
	case PowerHardReset:
		return "hard-reset-immediate"
	case PowerBMCReset:
		return "bmc-reset-immediate"
	case PowerCMOSReset:
		return "cmos-reset-immediate"
	case PowerDiagnosticInterrupt:
		return "diagnostic-interrupt"
	}
	panic("unknown control")
}

// PowerState returns the rack unit's operational power state as
// reported by the firmware ("on", "off", ...).
func (c *Client) PowerState() (string, error) {
	unit, err := c.ResolveDn(rackUnitDn)
	if err != nil {
		return "", err
	}
	if unit == nil {
		return "", &ProtocolError{Descr: "no rack unit at " + rackUnitDn}
	}
	return unit.Attr("operPower"), nil
}

// SetPower requests a power transition
func (c *Client) SetPower(ctl PowerControl) error {
	config := NewElement("computeRackUnit", map[string]string{
		"dn":         rackUnitDn,
		"adminPower": ctl.String(),
	})
	_, err := c.ConfMo(rackUnitDn, config)
	return err
}

// PowerOn powers the rack unit up and waits until the firmware reports
// it on. A freshly powered-on unit drops off the network while the BMC
// restarts, which the poller rides out.
func (c *Client) PowerOn(maxWait time.Duration) error {
	state, err := c.PowerState()
	if err != nil {
		return err
	}
	if state == "on" {
		return nil
	}

	if err := c.SetPower(PowerUp); err != nil {
		return err
	}

	on := c.WaitUntil(maxWait, func() bool {
		state, err := c.PowerState()
		return err == nil && state == "on"
	})
	if !on {
		return fmt.Errorf("cimc: power-on not confirmed within %s", maxWait)
	}
	return nil
}
