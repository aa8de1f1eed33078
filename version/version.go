// SPDX-License-Identifier: ISC
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

// Package version - the PST format generation enumeration
//
// Two generations exist: V0 embeds a complete unsigned transaction,
// V2 decomposes it into per-input and per-output fields.  The value 1
// was never assigned and is rejected everywhere.
package version

import (
	"fmt"
	"strings"

	"github.com/Subhra264/psbt-poc/fault"
)

// Version - format generation enumeration
type Version uint32

// possible version values
// the wire values 0 and 2 are fixed by the format, 1 is a hole
const (
	V0 Version = 0
	V2 Version = 2
)

// FromUint32 - convert a wire value to a version
func FromUint32(u uint32) (Version, error) {
	v := Version(u)
	if !v.IsValid() {
		return V0, fault.ErrUnsupportedVersion
	}
	return v, nil
}

// internal conversion
func toString(version Version) ([]byte, error) {
	switch version {
	case V0:
		return []byte("v0"), nil
	case V2:
		return []byte("v2"), nil
	default:
		return []byte{}, fault.ErrUnsupportedVersion
	}
}

// convert a string to a version
func fromString(in string) (Version, error) {
	switch strings.ToLower(in) {
	case "0", "v0":
		return V0, nil
	case "2", "v2":
		return V2, nil
	default:
		return V0, fault.ErrUnsupportedVersion
	}
}

// IsValid - true for a member of the known version set
func (version Version) IsValid() bool {
	return V0 == version || V2 == version
}

// convert a version to its string symbol
func (version Version) String() string {
	s, err := toString(version)
	if nil != err {
		fault.Panicf("invalid version enumeration: %d", version)
	}
	return string(s)
}

// convert both enum value and symbol, for debugging
func (version Version) GoString() string {
	return fmt.Sprintf("<Version#%d:%q>", uint32(version), version.String())
}

// convert a version string
func (version *Version) Scan(state fmt.ScanState, verb rune) error {
	token, err := state.Token(true, func(c rune) bool {
		if c >= '0' && c <= '9' {
			return true
		}
		if 'v' == c || 'V' == c {
			return true
		}
		return false
	})
	if nil != err {
		return err
	}
	parsed, err := fromString(string(token))
	if nil != err {
		return err
	}

	*version = parsed
	return nil
}
