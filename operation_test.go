// Copyright (c) 2014 VMware, Inc. All Rights Reserved.

package cimc

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestOperationNames(t *testing.T) {
	assert.Equal(t, "aaaLogin", OpLogin.String())
	assert.Equal(t, "aaaRefresh", OpRefresh.String())
	assert.Equal(t, "aaaLogout", OpLogout.String())
	assert.Equal(t, "configResolveDn", OpResolveDn.String())
	assert.Equal(t, "configResolveClass", OpResolveClass.String())
	assert.Equal(t, "configResolveChildren", OpResolveChildren.String())
	assert.Equal(t, "configResolveParent", OpResolveParent.String())
	assert.Equal(t, "configConfMo", OpConfMo.String())
	assert.Equal(t, "error", OpError.String())
	assert.Equal(t, "invalid", Operation(42).String())
}

func TestOperationFromName(t *testing.T) {
	for op, name := range operationNames {
		assert.Equal(t, op, operationFromName(name))
	}
	assert.Equal(t, opInvalid, operationFromName("aaaKeepAlive"))
	assert.Equal(t, opInvalid, operationFromName(""))
}

func TestOperationSendable(t *testing.T) {
	assert.True(t, OpLogin.sendable())
	assert.True(t, OpConfMo.sendable())
	assert.False(t, OpError.sendable())
	assert.False(t, opInvalid.sendable())
	assert.False(t, Operation(42).sendable())
}

func TestOperationAuth(t *testing.T) {
	assert.True(t, OpLogin.auth())
	assert.True(t, OpRefresh.auth())
	assert.True(t, OpLogout.auth())
	assert.False(t, OpResolveDn.auth())
	assert.False(t, OpConfMo.auth())
	assert.False(t, OpError.auth())
}
