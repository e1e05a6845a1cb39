// Copyright (c) 2014 VMware, Inc. All Rights Reserved.

package cimc

type transport interface {
	post(body []byte) ([]byte, error)
	probe() error
	reset()
}

func newTransport(c *Connection) transport {
	return newNuovaTransport(c)
}
