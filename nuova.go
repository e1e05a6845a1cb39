// Copyright (c) 2014 VMware, Inc. All Rights Reserved.

package cimc

import (
	"bytes"
	"crypto/tls"
	"io"
	"net"
	"net/http"
	"time"
)

const probeTimeout = 5 * time.Second

// nuova posts raw XML envelopes to the device's /nuova endpoint.
// Devices ship self-signed certificates, so certificate verification is
// disabled. The underlying connection pool is reused across calls and
// discarded wholesale on reset.
type nuova struct {
	*Connection
	client *http.Client
}

func newNuovaTransport(c *Connection) transport {
	return &nuova{Connection: c}
}

func (t *nuova) httpClient() *http.Client {
	if t.client == nil {
		t.client = &http.Client{
			Timeout: t.timeout(),
			Transport: &http.Transport{
				TLSClientConfig: &tls.Config{
					InsecureSkipVerify: true, // #nosec G402
				},
			},
		}
	}
	return t.client
}

func (t *nuova) post(body []byte) ([]byte, error) {
	// the body is the XML document verbatim, not key/value pairs,
	// despite the content type the firmware expects
	res, err := t.httpClient().Post(t.endpoint(),
		"application/x-www-form-urlencoded", bytes.NewReader(body))
	if err != nil {
		return nil, &TransportError{Status: err.Error(), Err: err}
	}
	defer func() { _ = res.Body.Close() }()

	if res.StatusCode < 200 || res.StatusCode > 299 {
		_, _ = io.Copy(io.Discard, res.Body)
		return nil, &TransportError{Status: res.Status}
	}

	data, err := io.ReadAll(res.Body)
	if err != nil {
		return nil, &TransportError{Status: err.Error(), Err: err}
	}
	return data, nil
}

// probe is a TCP-level liveness check, distinct from the request
// protocol. One check; the engine owns the retry policy.
func (t *nuova) probe() error {
	conn, err := net.DialTimeout("tcp", t.Addr(), probeTimeout)
	if err != nil {
		return err
	}
	return conn.Close()
}

func (t *nuova) reset() {
	if t.client != nil {
		t.client.CloseIdleConnections()
		t.client = nil
	}
}
