// Copyright (c) 2014 VMware, Inc. All Rights Reserved.

package cimc

import "time"

const (
	huuUpdaterDn = "sys/huu/firmwareUpdater"
	huuStatusDn  = huuUpdaterDn + "/updateStatus"
)

// FirmwareVersion describes one firmwareRunning managed object
type FirmwareVersion struct {
	Dn      string
	Type    string
	Version string
}

// FirmwareUpdate names the remote HUU image for a host update
type FirmwareUpdate struct {
	RemoteIP    string
	RemoteShare string
	RemoteFile  string
	// Protocol is the share protocol: "nfs", "cifs" or "www"
	Protocol string
	Username string
	Password string
}

// FirmwareVersions lists the running firmware components
func (c *Client) FirmwareVersions() ([]FirmwareVersion, error) {
	mos, err := c.ResolveClass("firmwareRunning")
	if err != nil {
		return nil, err
	}

	versions := make([]FirmwareVersion, 0, len(mos))
	for _, mo := range mos {
		versions = append(versions, FirmwareVersion{
			Dn:      mo.Attr("dn"),
			Type:    mo.Attr("type"),
			Version: mo.Attr("version"),
		})
	}
	return versions, nil
}

// StartFirmwareUpdate triggers a host upgrade utility run against the
// given remote image. The flash runs device-side for many minutes; use
// WaitForFirmwareUpdate to follow it.
func (c *Client) StartFirmwareUpdate(u FirmwareUpdate) error {
	config := NewElement("huuFirmwareUpdater", map[string]string{
		"dn":              huuUpdaterDn,
		"adminState":      "trigger",
		"remoteIp":        u.RemoteIP,
		"remoteShare":     u.RemoteShare,
		"mapType":         u.Protocol,
		"username":        u.Username,
		"password":        u.Password,
		"updateComponent": "all",
	})
	if u.RemoteFile != "" {
		config.Attrs["remoteShareFile"] = u.RemoteFile
	}
	_, err := c.ConfMo(huuUpdaterDn, config)
	return err
}

// FirmwareUpdateStatus returns the updater's current status string
// ("RUNNING", "COMPLETED", ...), or "" when no run is recorded
func (c *Client) FirmwareUpdateStatus() (string, error) {
	status, err := c.ResolveDn(huuStatusDn)
	if err != nil {
		return "", err
	}
	if status == nil {
		return "", nil
	}
	return status.Attr("updateStatus"), nil
}

// WaitForFirmwareUpdate polls until the updater reports completion,
// riding out the BMC reboots a flash causes. Reports false on timeout.
func (c *Client) WaitForFirmwareUpdate(maxWait time.Duration) bool {
	return c.WaitUntil(maxWait, func() bool {
		status, err := c.FirmwareUpdateStatus()
		return err == nil && status == "COMPLETED"
	})
}
