// Copyright (c) 2014 VMware, Inc. All Rights Reserved.

package cimc

import (
	"strconv"
	"time"

	"go.uber.org/zap"
)

// session owns the authentication cookie and its expiry. The two are
// always updated together; a cookie is never handed out past its
// expiry. Not safe for concurrent use, like the Client owning it.
type session struct {
	conn *Connection
	// send is the engine's Send. Auth operations pass through it
	// without cookie validation, so login cannot recurse.
	send func(*Envelope) (*Element, error)
	log  *zap.Logger

	cookie  string
	expires time.Time
}

func newSession(conn *Connection, send func(*Envelope) (*Element, error), log *zap.Logger) *session {
	return &session{conn: conn, send: send, log: log}
}

func (s *session) valid() bool {
	return s.cookie != "" && time.Now().Before(s.expires)
}

// expiring reports whether the cookie is inside the refresh window
func (s *session) expiring() bool {
	return time.Now().After(s.expires.Add(-s.conn.timeout()))
}

// ensureValid returns a usable cookie, logging in or refreshing first
// when needed.
func (s *session) ensureValid() (string, error) {
	switch {
	case !s.valid():
		if err := s.authenticate(OpLogin); err != nil {
			return "", err
		}
	case s.expiring():
		if err := s.authenticate(OpRefresh); err != nil {
			// the device may have dropped the session early; force a
			// clean login rather than surfacing a refresh failure
			s.log.Debug("refresh failed, logging in", zap.Error(err))
			s.invalidate()
			if err := s.authenticate(OpLogin); err != nil {
				return "", err
			}
		}
	}

	if s.cookie == "" {
		return "", &AuthenticationError{Reason: "no cookie issued"}
	}
	return s.cookie, nil
}

func (s *session) authenticate(op Operation) error {
	attrs := map[string]string{
		"inName":     s.conn.Username,
		"inPassword": s.conn.Password,
	}
	if op == OpRefresh {
		attrs["inCookie"] = s.cookie
	}

	payload, err := s.send(newEnvelope(op, attrs))
	if err != nil {
		return err
	}

	cookie := payload.Attr("outCookie")
	period := payload.Attr("outRefreshPeriod")
	if cookie == "" || period == "" {
		// anomalous but non-fatal; prior state stands
		s.log.Debug("auth response missing session fields",
			zap.String("operation", op.String()),
			zap.String("device", s.conn.DisplayName()))
		return nil
	}

	seconds, err := strconv.Atoi(period)
	if err != nil {
		s.log.Debug("unparseable refresh period", zap.String("value", period))
		return nil
	}

	s.cookie = cookie
	s.expires = time.Now().Add(time.Duration(seconds) * time.Second)
	s.log.Debug("session established",
		zap.String("operation", op.String()),
		zap.Time("expires", s.expires))
	return nil
}

// invalidate clears the local cookie without talking to the device
func (s *session) invalidate() {
	s.cookie = ""
	s.expires = time.Time{}
}

// logout best-effort terminates the server-side session, then clears
// local state unconditionally. Failures are logged and never propagate.
func (s *session) logout() {
	if s.valid() {
		attrs := map[string]string{
			"cookie":   s.cookie,
			"inCookie": s.cookie,
		}
		if _, err := s.send(newEnvelope(OpLogout, attrs)); err != nil {
			s.log.Debug("logout failed", zap.Error(err))
		}
	}
	s.invalidate()
}
