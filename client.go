// Copyright (c) 2014 VMware, Inc. All Rights Reserved.

// Package cimc is a client for the Cisco Integrated Management
// Controller XML API: single-session authentication over HTTPS with
// convenience accessors for common rack-unit operations.
package cimc

import (
	"errors"
	"fmt"
	"time"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

const (
	retryBackoff = 2 * time.Second
	pollInterval = 5 * time.Second
)

// Client provides high level functionality around the underlying
// envelope transport. A Client owns exactly one device session and is
// not safe for concurrent use; callers needing parallelism use one
// Client per worker.
type Client struct {
	conn      *Connection
	transport transport
	session   *session
	log       *zap.Logger

	backoff  time.Duration
	interval time.Duration
}

// NewClient creates a new Client with the given Connection properties
func NewClient(c *Connection) (*Client, error) {
	if c.Hostname == "" {
		return nil, errors.New("cimc: connection hostname required")
	}

	client := &Client{
		conn:      c,
		transport: newTransport(c),
		log:       newLogger(c.Debug),
		backoff:   retryBackoff,
		interval:  pollInterval,
	}
	client.session = newSession(c, client.Send, client.log)
	return client, nil
}

func newLogger(debug bool) *zap.Logger {
	if !debug {
		return zap.NewNop()
	}
	cfg := zap.NewDevelopmentConfig()
	cfg.Level = zap.NewAtomicLevelAt(zapcore.DebugLevel)
	log, err := cfg.Build()
	if err != nil {
		return zap.NewNop()
	}
	return log
}

// Close terminates the device session. The owning application must call
// it deterministically; session teardown involves network I/O and is
// never left to finalization.
func (c *Client) Close() error {
	c.session.logout()
	c.transport.reset()
	return nil
}

// Send issues one request envelope and returns the response payload.
// Transport failures, unreachability, and cookie rejection each recover
// the same way: reset the session and transport, back off, and retry
// once. Embedded firmware is routinely slow to answer right after a
// reboot or power transition, and one bounded retry rides that out
// without risking a loop.
func (c *Client) Send(req *Envelope) (*Element, error) {
	if req == nil || !req.Op.sendable() {
		name := "<nil>"
		if req != nil {
			name = req.Op.String()
		}
		return nil, &UnsupportedOperationError{Name: name}
	}
	if req.Attrs == nil {
		req.Attrs = map[string]string{}
	}

	if c.conn.ReadOnly && req.Op == OpConfMo {
		c.log.Debug("read-only mode, returning proposed config",
			zap.String("dn", req.Attrs["dn"]))
		return readOnlyResult(req), nil
	}

	var probeRetried, postRetried, authRetried bool
	for {
		if !req.Op.auth() {
			cookie, err := c.session.ensureValid()
			if err != nil {
				return nil, err
			}
			req.Attrs["cookie"] = cookie
		}

		if err := c.transport.probe(); err != nil {
			if probeRetried {
				return nil, &UnreachableError{Addr: c.conn.Addr(), Err: err}
			}
			probeRetried = true
			c.resetAndWait(req, "liveness probe failed")
			continue
		}

		data, err := c.transport.post(encodeEnvelope(req))
		if err != nil {
			if postRetried {
				var terr *TransportError
				if errors.As(err, &terr) {
					return nil, terr
				}
				return nil, &TransportError{Status: err.Error(), Err: err}
			}
			postRetried = true
			c.resetAndWait(req, "post failed")
			continue
		}

		payload, err := decodeEnvelope(data)
		if err != nil {
			return nil, err
		}

		op := operationFromName(payload.Name)
		if op == OpError {
			return nil, &ProtocolError{
				Code:  payload.Attr("errorCode"),
				Descr: payload.Attr("errorDescr"),
			}
		}
		if op != req.Op {
			return nil, &ProtocolError{
				Descr: fmt.Sprintf("unexpected response %q to %q", payload.Name, req.Op),
			}
		}

		code := payload.Attr("errorCode")
		if code == errAuthRequired && !authRetried && !req.Op.auth() {
			authRetried = true
			c.log.Debug("cookie rejected, re-authenticating",
				zap.String("operation", req.Op.String()))
			c.session.logout()
			delete(req.Attrs, "cookie")
			time.Sleep(c.backoff)
			continue
		}

		if code == "" && payload.Attr("response") == "yes" {
			return payload, nil
		}
		return nil, &ProtocolError{Code: code, Descr: payload.Attr("errorDescr")}
	}
}

func (c *Client) resetAndWait(req *Envelope, reason string) {
	c.log.Debug("resetting session and transport",
		zap.String("reason", reason),
		zap.String("device", c.conn.DisplayName()))
	c.session.invalidate()
	delete(req.Attrs, "cookie")
	c.transport.reset()
	time.Sleep(c.backoff)
}

func readOnlyResult(req *Envelope) *Element {
	res := NewElement(req.Op.String(), map[string]string{"response": "yes"})
	if dn := req.Attrs["dn"]; dn != "" {
		res.Attrs["dn"] = dn
	}
	out := NewElement("outConfig", nil)
	if req.Config != nil {
		out.Append(req.Config)
	}
	res.Append(out)
	return res
}

// ResolveDn fetches the managed object at the given distinguished name.
// Returns nil when the device reports no object there.
func (c *Client) ResolveDn(dn string) (*Element, error) {
	return c.resolve(OpResolveDn, map[string]string{"dn": dn}, false)
}

// ResolveDnHierarchy fetches the managed object at dn with its subtree
func (c *Client) ResolveDnHierarchy(dn string) (*Element, error) {
	return c.resolve(OpResolveDn, map[string]string{"dn": dn}, true)
}

// ResolveParent fetches the parent of the managed object at dn
func (c *Client) ResolveParent(dn string) (*Element, error) {
	return c.resolve(OpResolveParent, map[string]string{"dn": dn}, false)
}

func (c *Client) resolve(op Operation, attrs map[string]string, hierarchical bool) (*Element, error) {
	attrs["inHierarchical"] = boolAttr(hierarchical)
	payload, err := c.Send(newEnvelope(op, attrs))
	if err != nil {
		return nil, err
	}
	out := payload.First("outConfig")
	if out == nil || len(out.Children) == 0 {
		return nil, nil
	}
	return out.Children[0], nil
}

// ResolveClass fetches every managed object of the given class
func (c *Client) ResolveClass(classID string) ([]*Element, error) {
	attrs := map[string]string{"classId": classID, "inHierarchical": "false"}
	payload, err := c.Send(newEnvelope(OpResolveClass, attrs))
	if err != nil {
		return nil, err
	}
	return outConfigs(payload), nil
}

// ResolveChildren fetches children of the object at dn, filtered to the
// given class when classID is non-empty
func (c *Client) ResolveChildren(classID, dn string) ([]*Element, error) {
	attrs := map[string]string{"inDn": dn, "inHierarchical": "false"}
	if classID != "" {
		attrs["classId"] = classID
	}
	payload, err := c.Send(newEnvelope(OpResolveChildren, attrs))
	if err != nil {
		return nil, err
	}
	return outConfigs(payload), nil
}

func outConfigs(payload *Element) []*Element {
	out := payload.First("outConfigs")
	if out == nil {
		return nil
	}
	return out.Children
}

// ConfMo applies a configuration to the managed object at dn and
// returns the resulting object as reported by the device. In read-only
// mode the proposed config comes back unmodified.
func (c *Client) ConfMo(dn string, config *Element) (*Element, error) {
	req := newEnvelope(OpConfMo, map[string]string{
		"dn":             dn,
		"inHierarchical": "false",
	})
	req.Config = config

	payload, err := c.Send(req)
	if err != nil {
		return nil, err
	}
	out := payload.First("outConfig")
	if out == nil || len(out.Children) == 0 {
		return nil, nil
	}
	return out.Children[0], nil
}

func boolAttr(b bool) string {
	if b {
		return "true"
	}
	return "false"
}
