// SPDX-License-Identifier: ISC
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package version_test

import (
	"encoding/json"
	"fmt"
	"testing"

	"github.com/Subhra264/psbt-poc/fault"
	"github.com/Subhra264/psbt-poc/version"
)

// test conversion from wire values
func TestFromUint32(t *testing.T) {

	testList := []struct {
		u   uint32
		v   version.Version
		err error
	}{
		{0, version.V0, nil},
		{1, version.V0, fault.ErrUnsupportedVersion},
		{2, version.V2, nil},
		{3, version.V0, fault.ErrUnsupportedVersion},
		{0xffffffff, version.V0, fault.ErrUnsupportedVersion},
	}

	for i, item := range testList {
		v, err := version.FromUint32(item.u)
		if err != item.err {
			t.Errorf("%d: FromUint32(%d) error: %v  expected: %v", i, item.u, err, item.err)
		}
		if v != item.v {
			t.Errorf("%d: FromUint32(%d): %#v  expected: %#v", i, item.u, v, item.v)
		}
	}
}

// test the valid range
func TestIsValid(t *testing.T) {
	if !version.V0.IsValid() {
		t.Errorf("V0 is not valid")
	}
	if !version.V2.IsValid() {
		t.Errorf("V2 is not valid")
	}
	if version.Version(1).IsValid() {
		t.Errorf("1 must not be valid")
	}
	if version.Version(3).IsValid() {
		t.Errorf("3 must not be valid")
	}
}

// test string conversion both ways
func TestText(t *testing.T) {

	testList := []struct {
		v version.Version
		s string
	}{
		{version.V0, "v0"},
		{version.V2, "v2"},
	}

	for i, item := range testList {
		if item.v.String() != item.s {
			t.Errorf("%d: String: %q  expected: %q", i, item.v.String(), item.s)
		}

		buffer, err := json.Marshal(item.v)
		if nil != err {
			t.Fatalf("%d: marshal error: %s", i, err)
		}
		expected := `"` + item.s + `"`
		if string(buffer) != expected {
			t.Errorf("%d: marshal: %s  expected: %s", i, buffer, expected)
		}

		var v version.Version
		err = json.Unmarshal(buffer, &v)
		if nil != err {
			t.Fatalf("%d: unmarshal error: %s", i, err)
		}
		if v != item.v {
			t.Errorf("%d: unmarshal: %#v  expected: %#v", i, v, item.v)
		}
	}

	var bad version.Version
	err := bad.UnmarshalText([]byte("v1"))
	if fault.ErrUnsupportedVersion != err {
		t.Errorf("unmarshal v1 error: %v  expected: %v", err, fault.ErrUnsupportedVersion)
	}
}

// test fmt scanning
func TestScan(t *testing.T) {
	var v version.Version
	n, err := fmt.Sscan("v2", &v)
	if nil != err {
		t.Fatalf("scan error: %s", err)
	}
	if 1 != n {
		t.Fatalf("scanned %d items, expected 1", n)
	}
	if version.V2 != v {
		t.Errorf("scan: %#v  expected: %#v", v, version.V2)
	}

	_, err = fmt.Sscan("v7", &v)
	if fault.ErrUnsupportedVersion != err {
		t.Errorf("scan v7 error: %v  expected: %v", err, fault.ErrUnsupportedVersion)
	}
}
