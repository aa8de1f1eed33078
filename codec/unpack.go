// SPDX-License-Identifier: ISC
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

// Package codec - binary encode/decode of the key-typed map format
//
// The wire layout is a 5 byte magic prefix, one global map, one map
// per transaction input and one per transaction output.  A map is a
// sequence of (key, value) pairs, each a compact-size length prefixed
// byte string, terminated by a zero length key.  The input/output map
// counts come from the embedded unsigned transaction for V0 and from
// the explicit count fields for V2.
//
// The codec parses, it never validates: a structurally well-formed
// stream whose fields contradict its version decodes successfully and
// is rejected later by the validator.  Unrecognized keys round-trip
// verbatim.
package codec

import (
	"bytes"
	"encoding/binary"
	"io"

	"github.com/btcsuite/btcd/btcutil"
	"github.com/btcsuite/btcd/chaincfg/chainhash"
	"github.com/btcsuite/btcd/wire"

	"github.com/Subhra264/psbt-poc/fault"
	"github.com/Subhra264/psbt-poc/pstrecord"
	"github.com/Subhra264/psbt-poc/version"
)

// fixed 5 byte prefix of every encoded PST
const magic = "psbt\xff"

// protocol version handed to the wire helpers
const pver = 0

// hard limits enforced before any proportional allocation
// a denial-of-service guard, not a correctness feature
const (
	maxEncodedLength = 8 << 20 // whole encoded form
	maxKeyLength     = 1000
	maxValueLength   = 4 << 20
	maxMapEntries    = 10000 // per map
	maxMapCount      = 10000 // input maps and output maps each
	maxWitnessItems  = 500
)

// Unpack - parse bytes into an untrusted record set
//
// the result has not passed the validator and must go through
// pst.FromRecords before it can be trusted
func Unpack(b []byte) (version.Version, *pstrecord.Global, []*pstrecord.Input, []*pstrecord.Output, error) {

	if len(b) > maxEncodedLength {
		return version.V0, nil, nil, nil, fault.ErrEncodingTooLarge
	}
	if len(b) < len(magic) || magic != string(b[:len(magic)]) {
		return version.V0, nil, nil, nil, fault.ErrInvalidMagic
	}

	r := bytes.NewReader(b[len(magic):])

	global, rawVersion, inCount, outCount, err := readGlobalMap(r)
	if nil != err {
		return version.V0, nil, nil, nil, err
	}

	// the version key is the first field inspected, absence means V0
	ver := version.V0
	if nil != rawVersion {
		ver, err = version.FromUint32(*rawVersion)
		if nil != err {
			return version.V0, nil, nil, nil, err
		}
	}

	var nIn, nOut int
	switch ver {
	case version.V0:
		// frame counts are implicit in the embedded transaction
		if nil == global.UnsignedTx {
			return version.V0, nil, nil, nil, fault.ErrNoUnsignedTx
		}
		nIn = len(global.UnsignedTx.TxIn)
		nOut = len(global.UnsignedTx.TxOut)
	case version.V2:
		if nil == inCount || nil == outCount {
			return version.V0, nil, nil, nil, fault.ErrNoMapCounts
		}
		if *inCount > maxMapCount || *outCount > maxMapCount {
			return version.V0, nil, nil, nil, fault.ErrTooManyMaps
		}
		nIn = int(*inCount)
		nOut = int(*outCount)
	}
	if nIn > maxMapCount || nOut > maxMapCount {
		return version.V0, nil, nil, nil, fault.ErrTooManyMaps
	}

	inputs := make([]*pstrecord.Input, nIn)
	for i := 0; i < nIn; i += 1 {
		inputs[i], err = readInputMap(r)
		if nil != err {
			return version.V0, nil, nil, nil, err
		}
	}

	outputs := make([]*pstrecord.Output, nOut)
	for i := 0; i < nOut; i += 1 {
		outputs[i], err = readOutputMap(r)
		if nil != err {
			return version.V0, nil, nil, nil, err
		}
	}

	if 0 != r.Len() {
		return version.V0, nil, nil, nil, fault.ErrTrailingData
	}

	return ver, global, inputs, outputs, nil
}

// read one compact-size length prefixed byte string
func readChunk(r *bytes.Reader, limit uint64, tooLong error) ([]byte, error) {
	n, err := wire.ReadVarInt(r, pver)
	if nil != err {
		return nil, fault.ErrMalformedMap
	}
	if n > limit {
		return nil, tooLong
	}
	if uint64(r.Len()) < n {
		return nil, fault.ErrMalformedMap
	}
	buf := make([]byte, n)
	_, err = io.ReadFull(r, buf)
	if nil != err {
		return nil, fault.ErrMalformedMap
	}
	return buf, nil
}

// read one (key, value) pair, done is true on the sentinel
func readPair(r *bytes.Reader) (key []byte, value []byte, done bool, err error) {
	key, err = readChunk(r, maxKeyLength, fault.ErrKeyTooLong)
	if nil != err {
		return nil, nil, false, err
	}
	if 0 == len(key) {
		return nil, nil, true, nil
	}
	value, err = readChunk(r, maxValueLength, fault.ErrValueTooLong)
	if nil != err {
		return nil, nil, false, err
	}
	return key, value, false, nil
}

// read pairs until the sentinel, rejecting duplicate keys, handing
// each pair to assign
func readMap(r *bytes.Reader, assign func(key []byte, value []byte) error) error {
	seen := make(map[string]struct{})
	for entries := 0; ; entries += 1 {
		if entries >= maxMapEntries {
			return fault.ErrTooManyMapEntries
		}
		key, value, done, err := readPair(r)
		if nil != err {
			return err
		}
		if done {
			return nil
		}
		if _, ok := seen[string(key)]; ok {
			return fault.ErrDuplicateKey
		}
		seen[string(key)] = struct{}{}
		err = assign(key, value)
		if nil != err {
			return err
		}
	}
}

// fixed width little endian value readers

func readUint32Value(value []byte) (uint32, error) {
	if 4 != len(value) {
		return 0, fault.ErrInvalidValueLength
	}
	return binary.LittleEndian.Uint32(value), nil
}

func readUint64Value(value []byte) (uint64, error) {
	if 8 != len(value) {
		return 0, fault.ErrInvalidValueLength
	}
	return binary.LittleEndian.Uint64(value), nil
}

// a transaction value must be consumed exactly
func readTxValue(value []byte) (*wire.MsgTx, error) {
	tx := &wire.MsgTx{}
	vr := bytes.NewReader(value)
	err := tx.Deserialize(vr)
	if nil != err {
		return nil, fault.ErrInvalidValueLength
	}
	if 0 != vr.Len() {
		return nil, fault.ErrInvalidValueLength
	}
	return tx, nil
}

// a compact size value must be consumed exactly
func readCountValue(value []byte) (uint64, error) {
	vr := bytes.NewReader(value)
	n, err := wire.ReadVarInt(vr, pver)
	if nil != err {
		return 0, fault.ErrInvalidValueLength
	}
	if 0 != vr.Len() {
		return 0, fault.ErrInvalidValueLength
	}
	return n, nil
}

// single byte key types carry no key data
func bareKey(key []byte) error {
	if 1 != len(key) {
		return fault.ErrInvalidKeyLength
	}
	return nil
}

// preserve an unrecognized or proprietary pair verbatim
func preserve(list pstrecord.KeyValues, key []byte, value []byte) pstrecord.KeyValues {
	return append(list, pstrecord.KeyValue{Key: key, Value: value})
}

// parse the global map
func readGlobalMap(r *bytes.Reader) (*pstrecord.Global, *uint32, *uint64, *uint64, error) {

	global := &pstrecord.Global{}
	var rawVersion *uint32
	var inCount, outCount *uint64

	err := readMap(r, func(key []byte, value []byte) error {
		switch GlobalKeyType(key[0]) {

		case GlobalUnsignedTx:
			if err := bareKey(key); nil != err {
				return err
			}
			tx, err := readTxValue(value)
			if nil != err {
				return err
			}
			global.UnsignedTx = tx

		case GlobalTxVersion:
			if err := bareKey(key); nil != err {
				return err
			}
			u, err := readUint32Value(value)
			if nil != err {
				return err
			}
			v := int32(u)
			global.TxVersion = &v

		case GlobalFallbackLocktime:
			if err := bareKey(key); nil != err {
				return err
			}
			u, err := readUint32Value(value)
			if nil != err {
				return err
			}
			global.FallbackLocktime = &u

		case GlobalInputCount:
			if err := bareKey(key); nil != err {
				return err
			}
			n, err := readCountValue(value)
			if nil != err {
				return err
			}
			inCount = &n

		case GlobalOutputCount:
			if err := bareKey(key); nil != err {
				return err
			}
			n, err := readCountValue(value)
			if nil != err {
				return err
			}
			outCount = &n

		case GlobalTxModifiable:
			if err := bareKey(key); nil != err {
				return err
			}
			if 1 != len(value) {
				return fault.ErrInvalidValueLength
			}
			m := pstrecord.Modifiable(value[0])
			global.TxModifiable = &m

		case GlobalVersion:
			if err := bareKey(key); nil != err {
				return err
			}
			u, err := readUint32Value(value)
			if nil != err {
				return err
			}
			rawVersion = &u

		case GlobalProprietary:
			global.Proprietary = preserve(global.Proprietary, key, value)

		default:
			global.Unknown = preserve(global.Unknown, key, value)
		}
		return nil
	})
	if nil != err {
		return nil, nil, nil, nil, err
	}
	return global, rawVersion, inCount, outCount, nil
}

// parse one input map
func readInputMap(r *bytes.Reader) (*pstrecord.Input, error) {

	in := &pstrecord.Input{}

	err := readMap(r, func(key []byte, value []byte) error {
		switch InputKeyType(key[0]) {

		case InputNonWitnessUtxo:
			if err := bareKey(key); nil != err {
				return err
			}
			tx, err := readTxValue(value)
			if nil != err {
				return err
			}
			in.NonWitnessUtxo = tx

		case InputWitnessUtxo:
			if err := bareKey(key); nil != err {
				return err
			}
			txOut, err := readTxOutValue(value)
			if nil != err {
				return err
			}
			in.WitnessUtxo = txOut

		case InputPartialSig:
			// key data is the opaque public key
			if len(key) < 2 {
				return fault.ErrInvalidKeyLength
			}
			pubKey := make([]byte, len(key)-1)
			copy(pubKey, key[1:])
			in.PartialSigs = append(in.PartialSigs, pstrecord.PartialSig{
				PubKey:    pubKey,
				Signature: value,
			})

		case InputSighashType:
			if err := bareKey(key); nil != err {
				return err
			}
			u, err := readUint32Value(value)
			if nil != err {
				return err
			}
			in.SighashType = &u

		case InputRedeemScript:
			if err := bareKey(key); nil != err {
				return err
			}
			in.RedeemScript = pstrecord.Script(value)

		case InputWitnessScript:
			if err := bareKey(key); nil != err {
				return err
			}
			in.WitnessScript = pstrecord.Script(value)

		case InputFinalScriptSig:
			if err := bareKey(key); nil != err {
				return err
			}
			in.FinalScriptSig = pstrecord.Script(value)

		case InputFinalWitness:
			if err := bareKey(key); nil != err {
				return err
			}
			witness, err := readWitnessValue(value)
			if nil != err {
				return err
			}
			in.FinalWitness = witness

		case InputPreviousTxId:
			if err := bareKey(key); nil != err {
				return err
			}
			hash, err := chainhash.NewHash(value)
			if nil != err {
				return fault.ErrInvalidValueLength
			}
			in.PreviousTxId = hash

		case InputOutputIndex:
			if err := bareKey(key); nil != err {
				return err
			}
			u, err := readUint32Value(value)
			if nil != err {
				return err
			}
			in.OutputIndex = &u

		case InputSequence:
			if err := bareKey(key); nil != err {
				return err
			}
			u, err := readUint32Value(value)
			if nil != err {
				return err
			}
			in.Sequence = &u

		case InputRequiredTimeLocktime:
			if err := bareKey(key); nil != err {
				return err
			}
			u, err := readUint32Value(value)
			if nil != err {
				return err
			}
			in.RequiredTimeLocktime = &u

		case InputRequiredHeightLocktime:
			if err := bareKey(key); nil != err {
				return err
			}
			u, err := readUint32Value(value)
			if nil != err {
				return err
			}
			in.RequiredHeightLocktime = &u

		case InputProprietary:
			in.Proprietary = preserve(in.Proprietary, key, value)

		default:
			in.Unknown = preserve(in.Unknown, key, value)
		}
		return nil
	})
	if nil != err {
		return nil, err
	}
	return in, nil
}

// parse one output map
func readOutputMap(r *bytes.Reader) (*pstrecord.Output, error) {

	out := &pstrecord.Output{}

	err := readMap(r, func(key []byte, value []byte) error {
		switch OutputKeyType(key[0]) {

		case OutputRedeemScript:
			if err := bareKey(key); nil != err {
				return err
			}
			out.RedeemScript = pstrecord.Script(value)

		case OutputWitnessScript:
			if err := bareKey(key); nil != err {
				return err
			}
			out.WitnessScript = pstrecord.Script(value)

		case OutputAmount:
			if err := bareKey(key); nil != err {
				return err
			}
			u, err := readUint64Value(value)
			if nil != err {
				return err
			}
			amount := btcutil.Amount(int64(u))
			out.Amount = &amount

		case OutputScript:
			if err := bareKey(key); nil != err {
				return err
			}
			out.Script = pstrecord.Script(value)

		case OutputProprietary:
			out.Proprietary = preserve(out.Proprietary, key, value)

		default:
			out.Unknown = preserve(out.Unknown, key, value)
		}
		return nil
	})
	if nil != err {
		return nil, err
	}
	return out, nil
}

// a witness utxo value: 64-bit little endian amount then the script
func readTxOutValue(value []byte) (*wire.TxOut, error) {
	if len(value) < 8 {
		return nil, fault.ErrInvalidValueLength
	}
	amount := int64(binary.LittleEndian.Uint64(value[:8]))
	vr := bytes.NewReader(value[8:])
	script, err := readChunk(vr, maxValueLength, fault.ErrValueTooLong)
	if nil != err {
		return nil, fault.ErrInvalidValueLength
	}
	if 0 != vr.Len() {
		return nil, fault.ErrInvalidValueLength
	}
	return wire.NewTxOut(amount, script), nil
}

// a final witness value: compact size item count then the items
func readWitnessValue(value []byte) (wire.TxWitness, error) {
	vr := bytes.NewReader(value)
	count, err := wire.ReadVarInt(vr, pver)
	if nil != err {
		return nil, fault.ErrInvalidValueLength
	}
	if count > maxWitnessItems {
		return nil, fault.ErrWitnessItemOverflow
	}
	witness := make(wire.TxWitness, count)
	for i := uint64(0); i < count; i += 1 {
		witness[i], err = readChunk(vr, maxValueLength, fault.ErrValueTooLong)
		if nil != err {
			return nil, fault.ErrInvalidValueLength
		}
	}
	if 0 != vr.Len() {
		return nil, fault.ErrInvalidValueLength
	}
	return witness, nil
}
