// Copyright (c) 2014 VMware, Inc. All Rights Reserved.

package cimc

import (
	"fmt"
	"net"
	"strconv"
	"time"
)

const (
	defaultPort    = 443
	defaultTimeout = 60 * time.Second
)

// Connection properties for a Client
type Connection struct {
	Hostname string
	Port     int
	// Label is an optional display name used in place of Hostname when
	// reporting about the device. It is never used to reach it.
	Label    string
	Username string
	Password string
	// Timeout bounds each HTTP request and doubles as the session
	// refresh window. Defaults to 60s.
	Timeout time.Duration
	// ReadOnly short-circuits configuration sets: configConfMo returns
	// the proposed config unmodified without contacting the device.
	ReadOnly bool
	Debug    bool
}

func (c *Connection) port() int {
	if c.Port == 0 {
		return defaultPort
	}
	return c.Port
}

func (c *Connection) timeout() time.Duration {
	if c.Timeout == 0 {
		return defaultTimeout
	}
	return c.Timeout
}

// Addr returns the host:port the Connection dials
func (c *Connection) Addr() string {
	return net.JoinHostPort(c.Hostname, strconv.Itoa(c.port()))
}

func (c *Connection) endpoint() string {
	return fmt.Sprintf("https://%s/nuova", c.Addr())
}

// DisplayName returns the Label when set, the Hostname otherwise
func (c *Connection) DisplayName() string {
	if c.Label != "" {
		return c.Label
	}
	return c.Hostname
}

// RemoteIP returns the remote (device) IP address of the Connection
func (c *Connection) RemoteIP() string {
	if net.ParseIP(c.Hostname) == nil {
		addrs, err := net.LookupHost(c.Hostname)
		if err == nil && len(addrs) > 0 {
			return addrs[0]
		}
	}
	return c.Hostname
}
