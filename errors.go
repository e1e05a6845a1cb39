// Copyright (c) 2014 VMware, Inc. All Rights Reserved.

package cimc

import "fmt"

// errAuthRequired is the device error code signaling that the session
// cookie was rejected and a re-login is required.
const errAuthRequired = "552"

// UnsupportedOperationError is returned when an envelope names an
// operation outside the supported catalog. The request is never sent.
type UnsupportedOperationError struct {
	Name string
}

func (e *UnsupportedOperationError) Error() string {
	return fmt.Sprintf("unsupported operation: %q", e.Name)
}

// UnreachableError is returned when the device fails the liveness probe
// on both the initial attempt and the single retry.
type UnreachableError struct {
	Addr string
	Err  error
}

func (e *UnreachableError) Error() string {
	return fmt.Sprintf("device %s unreachable: %s", e.Addr, e.Err)
}

func (e *UnreachableError) Unwrap() error {
	return e.Err
}

// TransportError is returned when the HTTP layer fails on both the
// initial attempt and the single retry. Status carries the HTTP status
// line when one was received.
type TransportError struct {
	Status string
	Err    error
}

func (e *TransportError) Error() string {
	return fmt.Sprintf("transport failure: %s", e.Status)
}

func (e *TransportError) Unwrap() error {
	return e.Err
}

// MalformedResponseError is returned when the device's response does not
// parse into the expected single-top-level-element document.
type MalformedResponseError struct {
	Reason string
	Err    error
}

func (e *MalformedResponseError) Error() string {
	return fmt.Sprintf("malformed response: %s", e.Reason)
}

func (e *MalformedResponseError) Unwrap() error {
	return e.Err
}

// ProtocolError is a device-reported application error: a bad request,
// authorization failure after the retry was exhausted, or a general
// failure. Code and Descr are supplied by the device.
type ProtocolError struct {
	Code  string
	Descr string
}

func (e *ProtocolError) Error() string {
	if e.Code != "" {
		return fmt.Sprintf("device error %s: %s", e.Code, e.Descr)
	}
	return fmt.Sprintf("device error: %s", e.Descr)
}

// AuthenticationError is returned when a login or refresh completed
// without yielding a usable cookie.
type AuthenticationError struct {
	Reason string
}

func (e *AuthenticationError) Error() string {
	return fmt.Sprintf("authentication failed: %s", e.Reason)
}
