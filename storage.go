// Copyright (c) 2014 VMware, Inc. All Rights Reserved.

package cimc

// StorageController describes one storageController managed object
type StorageController struct {
	Dn     string
	ID     string
	Model  string
	Serial string
	JBOD   Tristate
}

// VirtualDrive describes one storageVirtualDrive managed object
type VirtualDrive struct {
	Dn        string
	Name      string
	RaidLevel string
	Size      string
	State     string
}

// StorageControllers lists the rack unit's storage controllers
func (c *Client) StorageControllers() ([]StorageController, error) {
	mos, err := c.ResolveClass("storageController")
	if err != nil {
		return nil, err
	}

	controllers := make([]StorageController, 0, len(mos))
	for _, mo := range mos {
		controllers = append(controllers, StorageController{
			Dn:     mo.Attr("dn"),
			ID:     mo.Attr("id"),
			Model:  mo.Attr("model"),
			Serial: mo.Attr("serial"),
			JBOD:   ParseTristate(mo.Attr("jbodMode")),
		})
	}
	return controllers, nil
}

// SetJBODMode enables or disables JBOD on the given controller,
// exposing physical disks directly instead of behind virtual drives
func (c *Client) SetJBODMode(controllerDn string, enabled bool) error {
	action := "disable-jbod"
	if enabled {
		action = "enable-jbod"
	}
	config := NewElement("storageController", map[string]string{
		"dn":          controllerDn,
		"adminAction": action,
	})
	_, err := c.ConfMo(controllerDn, config)
	return err
}

// VirtualDrives lists the configured virtual drives
func (c *Client) VirtualDrives() ([]VirtualDrive, error) {
	mos, err := c.ResolveClass("storageVirtualDrive")
	if err != nil {
		return nil, err
	}

	drives := make([]VirtualDrive, 0, len(mos))
	for _, mo := range mos {
		drives = append(drives, VirtualDrive{
			Dn:        mo.Attr("dn"),
			Name:      mo.Attr("name"),
			RaidLevel: mo.Attr("raidLevel"),
			Size:      mo.Attr("size"),
			State:     mo.Attr("vdStatus"),
		})
	}
	return drives, nil
}
