// Copyright (c) 2014 VMware, Inc. All Rights Reserved.

package cimc

const mgmtIfDn = rackUnitDn + "/mgmt/if-1"

// NetworkAdapter describes one adaptorUnit managed object
type NetworkAdapter struct {
	Dn     string
	Slot   string
	Model  string
	Serial string
}

// ManagementHostname returns the hostname configured on the management
// interface
func (c *Client) ManagementHostname() (string, error) {
	mgmt, err := c.ResolveDn(mgmtIfDn)
	if err != nil {
		return "", err
	}
	if mgmt == nil {
		return "", nil
	}
	return mgmt.Attr("hostname"), nil
}

// SetManagementHostname configures the management interface hostname
func (c *Client) SetManagementHostname(name string) error {
	config := NewElement("mgmtIf", map[string]string{
		"dn":       mgmtIfDn,
		"hostname": name,
	})
	_, err := c.ConfMo(mgmtIfDn, config)
	return err
}

// NetworkAdapters lists the installed adapter cards
func (c *Client) NetworkAdapters() ([]NetworkAdapter, error) {
	mos, err := c.ResolveClass("adaptorUnit")
	if err != nil {
		return nil, err
	}

	adapters := make([]NetworkAdapter, 0, len(mos))
	for _, mo := range mos {
		adapters = append(adapters, NetworkAdapter{
			Dn:     mo.Attr("dn"),
			Slot:   mo.Attr("pciSlot"),
			Model:  mo.Attr("model"),
			Serial: mo.Attr("serial"),
		})
	}
	return adapters, nil
}
