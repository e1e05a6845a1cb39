// Copyright (c) 2014 VMware, Inc. All Rights Reserved.

package cimc

import (
	"time"

	"go.uber.org/zap"
)

// WaitUntil polls on a fixed interval until check returns true or
// maxWait elapses, and reports which. Each round probes reachability
// and, when the device answers, keeps the session alive before running
// the predicate. No backoff: the predicate's own engine calls already
// carry retry logic, so the loop stays deliberately simple. Used to
// wait out long device-side operations such as a power-on or a
// multi-minute firmware flash.
func (c *Client) WaitUntil(maxWait time.Duration, check func() bool) bool {
	deadline := time.Now().Add(maxWait)

	for time.Now().Before(deadline) {
		if err := c.transport.probe(); err == nil {
			if _, err := c.session.ensureValid(); err != nil {
				c.log.Debug("session not restored while polling", zap.Error(err))
			}
			if check() {
				return true
			}
		} else {
			c.log.Debug("device not reachable while polling",
				zap.String("device", c.conn.DisplayName()))
		}
		time.Sleep(c.interval)
	}
	return false
}
