// Copyright (c) 2014 VMware, Inc. All Rights Reserved.

package cimc

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestParseTristate(t *testing.T) {
	for _, token := range []string{"no", "false", "off", "disabled", "0", "Off", " NO "} {
		assert.Equal(t, TristateFalse, ParseTristate(token), token)
	}

	// anything present outside the false set is true
	for _, token := range []string{"yes", "true", "on", "enabled", "1", "blinking"} {
		assert.Equal(t, TristateTrue, ParseTristate(token), token)
	}

	// absence means unknown, not false
	assert.Equal(t, TristateUnknown, ParseTristate(""))
	assert.Equal(t, TristateUnknown, ParseTristate("  "))
}

func TestTristateBool(t *testing.T) {
	assert.True(t, TristateTrue.Bool())
	assert.False(t, TristateFalse.Bool())
	assert.False(t, TristateUnknown.Bool())
}

func TestTristateString(t *testing.T) {
	assert.Equal(t, "true", TristateTrue.String())
	assert.Equal(t, "false", TristateFalse.String())
	assert.Equal(t, "unknown", TristateUnknown.String())
}
