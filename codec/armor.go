// SPDX-License-Identifier: ISC
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package codec

import (
	"encoding/base64"

	"github.com/Subhra264/psbt-poc/fault"
	"github.com/Subhra264/psbt-poc/pstrecord"
	"github.com/Subhra264/psbt-poc/version"
)

// text-safe wrapper for transport over text channels
//
// a thin lossless layer: the unwrapped bytes are exactly what Unpack
// accepts

// PackText - serialize then base64 wrap
func PackText(ver version.Version, global *pstrecord.Global, inputs []*pstrecord.Input, outputs []*pstrecord.Output) (string, error) {
	b, err := Pack(ver, global, inputs, outputs)
	if nil != err {
		return "", err
	}
	return base64.StdEncoding.EncodeToString(b), nil
}

// UnpackText - base64 unwrap then parse
func UnpackText(s string) (version.Version, *pstrecord.Global, []*pstrecord.Input, []*pstrecord.Output, error) {
	b, err := base64.StdEncoding.DecodeString(s)
	if nil != err {
		return version.V0, nil, nil, nil, fault.ErrMalformedText
	}
	return Unpack(b)
}
