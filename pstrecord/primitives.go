// SPDX-License-Identifier: ISC
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package pstrecord

import (
	"bytes"
	"encoding/hex"
)

// Script - opaque script bytes, never interpreted here
type Script []byte

// MarshalText - convert a script to its hex JSON form
func (script Script) MarshalText() ([]byte, error) {
	size := hex.EncodedLen(len(script))
	b := make([]byte, size)
	hex.Encode(b, script)
	return b, nil
}

// UnmarshalText - convert a script from its hex JSON form
func (script *Script) UnmarshalText(s []byte) error {
	size := hex.DecodedLen(len(s))
	*script = make([]byte, size)
	_, err := hex.Decode(*script, s)
	return err
}

// PartialSig - an opaque public key and its signature
//
// both are already-computed byte sequences, their cryptographic
// meaning belongs to the signing collaborators
type PartialSig struct {
	PubKey    []byte `json:"pubKey"`    // hex via codec
	Signature []byte `json:"signature"` // hex via codec
}

// Copy - deep copy of one partial signature pair
func (sig PartialSig) Copy() PartialSig {
	return PartialSig{
		PubKey:    dupBytes(sig.PubKey),
		Signature: dupBytes(sig.Signature),
	}
}

// KeyValue - one unrecognized or proprietary pair, key type byte and
// key data stored together exactly as they arrived
type KeyValue struct {
	Key   []byte `json:"key"`
	Value []byte `json:"value"`
}

// KeyValues - an ordered list of preserved pairs
//
// order matters: re-emitting pairs in arrival order is what makes the
// canonical encode round-trip byte exact
type KeyValues []KeyValue

// Copy - deep copy of a preserved pair list
func (list KeyValues) Copy() KeyValues {
	if nil == list {
		return nil
	}
	c := make(KeyValues, len(list))
	for i, kv := range list {
		c[i] = KeyValue{
			Key:   dupBytes(kv.Key),
			Value: dupBytes(kv.Value),
		}
	}
	return c
}

// Has - true if a pair with exactly this key is already present
func (list KeyValues) Has(key []byte) bool {
	for _, kv := range list {
		if bytes.Equal(kv.Key, key) {
			return true
		}
	}
	return false
}
