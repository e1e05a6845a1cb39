// Copyright (c) 2014 VMware, Inc. All Rights Reserved.

package cimc

const locatorLedDn = rackUnitDn + "/locator-led"

// LocatorLED reports whether the chassis locator LED is lit.
// TristateUnknown means the firmware did not report a state.
func (c *Client) LocatorLED() (Tristate, error) {
	led, err := c.ResolveDn(locatorLedDn)
	if err != nil {
		return TristateUnknown, err
	}
	if led == nil {
		return TristateUnknown, nil
	}
	return ParseTristate(led.Attr("operState")), nil
}

// SetLocatorLED turns the chassis locator LED on or off
func (c *Client) SetLocatorLED(on bool) error {
	state := "off"
	if on {
		state = "on"
	}
	config := NewElement("equipmentLocatorLed", map[string]string{
		"dn":         locatorLedDn,
		"adminState": state,
	})
	_, err := c.ConfMo(locatorLedDn, config)
	return err
}
