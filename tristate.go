// Copyright (c) 2014 VMware, Inc. All Rights Reserved.

package cimc

import "strings"

// Tristate is the three-valued boolean the firmware speaks: attributes
// may be absent, which means unknown rather than false.
type Tristate uint8

const (
	TristateUnknown Tristate = iota
	TristateFalse
	TristateTrue
)

// the fixed set of tokens the firmware uses for "false"; anything else
// present is true
var falseTokens = map[string]bool{
	"no":       true,
	"false":    true,
	"off":      true,
	"disabled": true,
	"0":        true,
}

// ParseTristate interprets a firmware attribute value. An empty value
// (an absent attribute) is TristateUnknown.
func ParseTristate(s string) Tristate {
	s = strings.ToLower(strings.TrimSpace(s))
	if s == "" {
		return TristateUnknown
	}
	if falseTokens[s] {
		return TristateFalse
	}
	return TristateTrue
}

// Bool collapses to a plain bool; only TristateTrue maps to true
func (t Tristate) Bool() bool {
	return t == TristateTrue
}

func (t Tristate) String() string {
	switch t {
	case TristateFalse:
		return "false"
	case TristateTrue:
		return "true"
	}
	return "unknown"
}
