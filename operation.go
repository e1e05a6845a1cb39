// Copyright (c) 2014 VMware, Inc. All Rights Reserved.

package cimc

// Operation identifies a top-level IMC XML API method
type Operation int

// Supported operations
const (
	opInvalid Operation = iota
	OpLogin
	OpRefresh
	OpLogout
	OpResolveDn
	OpResolveClass
	OpResolveChildren
	OpResolveParent
	OpConfMo
	// OpError is the pseudo-operation the device answers with on
	// protocol-level failures. It is valid in responses only.
	OpError
)

var operationNames = map[Operation]string{
	OpLogin:           "aaaLogin",
	OpRefresh:         "aaaRefresh",
	OpLogout:          "aaaLogout",
	OpResolveDn:       "configResolveDn",
	OpResolveClass:    "configResolveClass",
	OpResolveChildren: "configResolveChildren",
	OpResolveParent:   "configResolveParent",
	OpConfMo:          "configConfMo",
	OpError:           "error",
}

// String returns the wire name of the Operation
func (o Operation) String() string {
	if name, ok := operationNames[o]; ok {
		return name
	}
	return "invalid"
}

func operationFromName(name string) Operation {
	for op, n := range operationNames {
		if n == name {
			return op
		}
	}
	return opInvalid
}

// sendable reports whether the Operation may appear in an outbound request
func (o Operation) sendable() bool {
	_, ok := operationNames[o]
	return ok && o != OpError
}

// auth reports whether the Operation is part of the session lifecycle
// itself. Auth operations carry credentials in their own attributes and
// must never trigger cookie validation, or login would recurse.
func (o Operation) auth() bool {
	switch o {
	case OpLogin, OpRefresh, OpLogout:
		return true
	}
	return false
}
