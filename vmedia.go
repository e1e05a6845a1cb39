// Copyright (c) 2014 VMware, Inc. All Rights Reserved.

package cimc

import "fmt"

const vmediaSvcDn = "sys/svc-ext/vmedia-svc"

// VMediaMapping describes one commVMediaMap managed object: a remote
// image mapped to the host as virtual media
type VMediaMapping struct {
	Volume      string
	MapType     string // "nfs", "cifs" or "www"
	RemoteShare string
	RemoteFile  string
	Status      string
}

func vmediaMapDn(volume string) string {
	return fmt.Sprintf("%s/vmmap-%s", vmediaSvcDn, volume)
}

// VMediaMappings lists the current virtual media mappings
func (c *Client) VMediaMappings() ([]VMediaMapping, error) {
	mos, err := c.ResolveChildren("commVMediaMap", vmediaSvcDn)
	if err != nil {
		return nil, err
	}

	mappings := make([]VMediaMapping, 0, len(mos))
	for _, mo := range mos {
		mappings = append(mappings, VMediaMapping{
			Volume:      mo.Attr("volumeName"),
			MapType:     mo.Attr("map"),
			RemoteShare: mo.Attr("remoteShare"),
			RemoteFile:  mo.Attr("remoteFile"),
			Status:      mo.Attr("mappingStatus"),
		})
	}
	return mappings, nil
}

// MapVMedia maps a remote image as virtual media. The share is
// referenced by URL; the device mounts it itself.
func (c *Client) MapVMedia(m VMediaMapping, username, password string) error {
	dn := vmediaMapDn(m.Volume)
	config := NewElement("commVMediaMap", map[string]string{
		"dn":          dn,
		"volumeName":  m.Volume,
		"map":         m.MapType,
		"remoteShare": m.RemoteShare,
		"remoteFile":  m.RemoteFile,
		"username":    username,
		"password":    password,
	})
	_, err := c.ConfMo(dn, config)
	return err
}

// UnmapVMedia removes the mapping for the given volume
func (c *Client) UnmapVMedia(volume string) error {
	dn := vmediaMapDn(volume)
	config := NewElement("commVMediaMap", map[string]string{
		"dn":         dn,
		"volumeName": volume,
		"status":     "deleted",
	})
	_, err := c.ConfMo(dn, config)
	return err
}
