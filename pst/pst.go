// SPDX-License-Identifier: ISC
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

// Package pst - the trusted partially signed transaction container
//
// A Pst owns a validated record set.  Validate is the only gate from
// untrusted records to a live container and every mutator copies and
// re-validates, so any Pst reachable by a caller satisfies the
// version-closure invariant: the populated optional fields are exactly
// those its version permits.  A Pst is never mutated in place and is
// therefore safe to share for concurrent reads.
package pst

import (
	"reflect"

	"github.com/Subhra264/psbt-poc/codec"
	"github.com/Subhra264/psbt-poc/pstrecord"
	"github.com/Subhra264/psbt-poc/version"
)

// Pst - a validated partially signed transaction
//
// all fields unexported: construction goes through FromRecords or
// Unpack, inspection through AsRecords
type Pst struct {
	version version.Version
	global  *pstrecord.Global
	inputs  []*pstrecord.Input
	outputs []*pstrecord.Output
}

// FromRecords - validate a candidate record set and wrap it
//
// the records are deep copied on acceptance so later mutation of the
// arguments cannot corrupt the container
func FromRecords(ver version.Version, global *pstrecord.Global, inputs []*pstrecord.Input, outputs []*pstrecord.Output) (*Pst, error) {
	err := Validate(ver, global, inputs, outputs)
	if nil != err {
		return nil, err
	}
	if nil == global {
		global = &pstrecord.Global{}
	}
	return &Pst{
		version: ver,
		global:  global.Copy(),
		inputs:  pstrecord.CopyInputs(inputs),
		outputs: pstrecord.CopyOutputs(outputs),
	}, nil
}

// Version - the immutable format generation of this container
func (p *Pst) Version() version.Version {
	return p.version
}

// AddInput - append one input record, returning a new container
//
// the whole record set is re-validated, not just the candidate, since
// the locktime-unification rule is cross-input; the receiver is never
// touched
func (p *Pst) AddInput(in *pstrecord.Input) (*Pst, error) {
	inputs := append(pstrecord.CopyInputs(p.inputs), in.Copy())
	err := Validate(p.version, p.global, inputs, p.outputs)
	if nil != err {
		return nil, err
	}
	return &Pst{
		version: p.version,
		global:  p.global.Copy(),
		inputs:  inputs,
		outputs: pstrecord.CopyOutputs(p.outputs),
	}, nil
}

// AddOutput - append one output record, returning a new container
func (p *Pst) AddOutput(out *pstrecord.Output) (*Pst, error) {
	outputs := append(pstrecord.CopyOutputs(p.outputs), out.Copy())
	err := Validate(p.version, p.global, p.inputs, outputs)
	if nil != err {
		return nil, err
	}
	return &Pst{
		version: p.version,
		global:  p.global.Copy(),
		inputs:  pstrecord.CopyInputs(p.inputs),
		outputs: outputs,
	}, nil
}

// AsRecords - read-only projection of the validated record set
//
// returns deep copies: collaborators may mutate what they receive
// without breaking the container's invariant
func (p *Pst) AsRecords() (version.Version, *pstrecord.Global, []*pstrecord.Input, []*pstrecord.Output) {
	return p.version, p.global.Copy(), pstrecord.CopyInputs(p.inputs), pstrecord.CopyOutputs(p.outputs)
}

// Equal - structural equality of two containers
func (p *Pst) Equal(q *Pst) bool {
	if nil == p || nil == q {
		return p == q
	}
	return p.version == q.version &&
		reflect.DeepEqual(p.global, q.global) &&
		reflect.DeepEqual(p.inputs, q.inputs) &&
		reflect.DeepEqual(p.outputs, q.outputs)
}

// Pack - serialize the validated container
func (p *Pst) Pack() ([]byte, error) {
	return codec.Pack(p.version, p.global, p.inputs, p.outputs)
}

// Unpack - deserialize then validate
//
// malformed bytes fail in the codec, a well-formed but
// version-inconsistent record set fails in the validator
func Unpack(b []byte) (*Pst, error) {
	ver, global, inputs, outputs, err := codec.Unpack(b)
	if nil != err {
		return nil, err
	}
	return FromRecords(ver, global, inputs, outputs)
}
