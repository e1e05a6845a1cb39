// Copyright (c) 2014 VMware, Inc. All Rights Reserved.

package cimc

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestCookieReuse(t *testing.T) {
	s := runSimulator(t)
	defer s.Stop()

	s.SetHandler(OpResolveClass, ResolveClassHandler())

	client := newTestClient(t, s)

	_, err := client.ResolveClass("storageController")
	assert.NoError(t, err)
	cookie := client.session.cookie
	assert.NotEmpty(t, cookie)

	// well within validity: the second call reuses the cookie with no
	// further auth traffic at all
	_, err = client.ResolveClass("storageController")
	assert.NoError(t, err)
	assert.Equal(t, cookie, client.session.cookie)
	assert.Equal(t, 1, s.Count(OpLogin))
	assert.Equal(t, 0, s.Count(OpRefresh))
}

func TestCookieRefresh(t *testing.T) {
	s := runSimulator(t)
	defer s.Stop()

	// a refresh period inside the client's refresh window forces the
	// soft-refresh path instead of a fresh login
	s.RefreshPeriod = 30
	s.SetHandler(OpResolveClass, ResolveClassHandler())

	client := newTestClient(t, s)

	_, err := client.ResolveClass("storageController")
	assert.NoError(t, err)
	first := client.session.cookie

	_, err = client.ResolveClass("storageController")
	assert.NoError(t, err)

	assert.Equal(t, 1, s.Count(OpLogin))
	assert.Equal(t, 1, s.Count(OpRefresh))
	assert.NotEqual(t, first, client.session.cookie)
}

func TestCookieExpiryRelogin(t *testing.T) {
	s := runSimulator(t)
	defer s.Stop()

	s.SetHandler(OpResolveClass, ResolveClassHandler())

	client := newTestClient(t, s)

	_, err := client.ResolveClass("storageController")
	assert.NoError(t, err)

	// cookie past its hard expiry is never used again
	client.session.expires = time.Now().Add(-time.Second)
	_, err = client.ResolveClass("storageController")
	assert.NoError(t, err)
	assert.Equal(t, 2, s.Count(OpLogin))
}

func TestAuthResponseMissingCookie(t *testing.T) {
	s := runSimulator(t)
	defer s.Stop()

	s.SetHandler(OpLogin, func(req *Element) *Element {
		return NewElement("aaaLogin", map[string]string{"response": "yes"})
	})

	client := newTestClient(t, s)

	var aerr *AuthenticationError
	_, err := client.session.ensureValid()
	assert.ErrorAs(t, err, &aerr)
}

func TestInvalidateLocal(t *testing.T) {
	s := runSimulator(t)
	defer s.Stop()

	client := newTestClient(t, s)

	_, err := client.session.ensureValid()
	assert.NoError(t, err)
	assert.True(t, client.session.valid())

	client.session.invalidate()
	assert.False(t, client.session.valid())
	// local clear only, no logout on the wire
	assert.Equal(t, 0, s.Count(OpLogout))
}

func TestLogoutBestEffort(t *testing.T) {
	s := runSimulator(t)
	defer s.Stop()

	client := newTestClient(t, s)

	_, err := client.session.ensureValid()
	assert.NoError(t, err)

	// a failing logout must never propagate; local state clears anyway
	s.SetHandler(OpLogout, func(req *Element) *Element {
		return errorResponse("ERR-internal", "logout failed")
	})
	client.session.logout()
	assert.False(t, client.session.valid())
	assert.Equal(t, 1, s.Count(OpLogout))
}

func TestLogoutWithoutSession(t *testing.T) {
	s := runSimulator(t)
	defer s.Stop()

	client := newTestClient(t, s)
	client.session.logout()
	assert.Equal(t, 0, s.Count(OpLogout))
}
