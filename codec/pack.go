// SPDX-License-Identifier: ISC
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package codec

import (
	"bytes"
	"encoding/binary"
	"io"

	"github.com/btcsuite/btcd/wire"

	"github.com/Subhra264/psbt-poc/fault"
	"github.com/Subhra264/psbt-poc/pstrecord"
	"github.com/Subhra264/psbt-poc/version"
)

// Pack - serialize a record set to the key-typed map format
//
// the exact inverse of Unpack for anything Unpack produced; within a
// map the typed fields are emitted in ascending key-type order, then
// proprietary pairs, then unknown pairs in their preserved order, so
// the encoding of a decoded stream is canonical
func Pack(ver version.Version, global *pstrecord.Global, inputs []*pstrecord.Input, outputs []*pstrecord.Output) ([]byte, error) {

	if !ver.IsValid() {
		return nil, fault.ErrUnsupportedVersion
	}
	if nil == global {
		global = &pstrecord.Global{}
	}

	// V0 frames the maps by the embedded transaction, so the record
	// counts must already correspond
	if version.V0 == ver {
		if nil == global.UnsignedTx {
			return nil, fault.ErrMissingUnsignedTx
		}
		if len(inputs) != len(global.UnsignedTx.TxIn) {
			return nil, fault.ErrInputRecordCount
		}
		if len(outputs) != len(global.UnsignedTx.TxOut) {
			return nil, fault.ErrOutputRecordCount
		}
	}
	if len(inputs) > maxMapCount || len(outputs) > maxMapCount {
		return nil, fault.ErrTooManyMaps
	}

	buffer := &bytes.Buffer{}
	buffer.WriteString(magic)

	err := writeGlobalMap(buffer, ver, global, len(inputs), len(outputs))
	if nil != err {
		return nil, err
	}
	for _, in := range inputs {
		err = writeInputMap(buffer, in)
		if nil != err {
			return nil, err
		}
	}
	for _, out := range outputs {
		err = writeOutputMap(buffer, out)
		if nil != err {
			return nil, err
		}
	}

	if buffer.Len() > maxEncodedLength {
		return nil, fault.ErrEncodingTooLarge
	}
	return buffer.Bytes(), nil
}

// write one typed (key, value) pair
func writePair(w io.Writer, keyType byte, keyData []byte, value []byte) error {
	key := make([]byte, 1+len(keyData))
	key[0] = keyType
	copy(key[1:], keyData)
	err := wire.WriteVarBytes(w, pver, key)
	if nil != err {
		return err
	}
	return wire.WriteVarBytes(w, pver, value)
}

// write a preserved pair exactly as it arrived
func writeRawPairs(w io.Writer, list pstrecord.KeyValues) error {
	for _, kv := range list {
		err := wire.WriteVarBytes(w, pver, kv.Key)
		if nil != err {
			return err
		}
		err = wire.WriteVarBytes(w, pver, kv.Value)
		if nil != err {
			return err
		}
	}
	return nil
}

// the zero length key sentinel ends a map
func writeSentinel(w io.Writer) error {
	return wire.WriteVarInt(w, pver, 0)
}

// fixed width little endian value writers

func le32(u uint32) []byte {
	b := make([]byte, 4)
	binary.LittleEndian.PutUint32(b, u)
	return b
}

func le64(u uint64) []byte {
	b := make([]byte, 8)
	binary.LittleEndian.PutUint64(b, u)
	return b
}

// a compact size value
func countValue(n uint64) []byte {
	buffer := &bytes.Buffer{}
	_ = wire.WriteVarInt(buffer, pver, n) // buffer writes cannot fail
	return buffer.Bytes()
}

// a network-serialized transaction value
func txValue(tx *wire.MsgTx) ([]byte, error) {
	buffer := bytes.NewBuffer(make([]byte, 0, tx.SerializeSize()))
	err := tx.Serialize(buffer)
	if nil != err {
		return nil, err
	}
	return buffer.Bytes(), nil
}

// write the global map
func writeGlobalMap(w io.Writer, ver version.Version, global *pstrecord.Global, nIn int, nOut int) error {

	if nil != global.UnsignedTx {
		value, err := txValue(global.UnsignedTx)
		if nil != err {
			return err
		}
		err = writePair(w, byte(GlobalUnsignedTx), nil, value)
		if nil != err {
			return err
		}
	}
	if nil != global.TxVersion {
		err := writePair(w, byte(GlobalTxVersion), nil, le32(uint32(*global.TxVersion)))
		if nil != err {
			return err
		}
	}
	if nil != global.FallbackLocktime {
		err := writePair(w, byte(GlobalFallbackLocktime), nil, le32(*global.FallbackLocktime))
		if nil != err {
			return err
		}
	}
	if version.V2 == ver {
		err := writePair(w, byte(GlobalInputCount), nil, countValue(uint64(nIn)))
		if nil != err {
			return err
		}
		err = writePair(w, byte(GlobalOutputCount), nil, countValue(uint64(nOut)))
		if nil != err {
			return err
		}
	}
	if nil != global.TxModifiable {
		err := writePair(w, byte(GlobalTxModifiable), nil, []byte{byte(*global.TxModifiable)})
		if nil != err {
			return err
		}
	}
	// the version key is omitted for V0, absence means V0
	if version.V2 == ver {
		err := writePair(w, byte(GlobalVersion), nil, le32(uint32(ver)))
		if nil != err {
			return err
		}
	}
	err := writeRawPairs(w, global.Proprietary)
	if nil != err {
		return err
	}
	err = writeRawPairs(w, global.Unknown)
	if nil != err {
		return err
	}
	return writeSentinel(w)
}

// write one input map
func writeInputMap(w io.Writer, in *pstrecord.Input) error {

	if nil != in.NonWitnessUtxo {
		value, err := txValue(in.NonWitnessUtxo)
		if nil != err {
			return err
		}
		err = writePair(w, byte(InputNonWitnessUtxo), nil, value)
		if nil != err {
			return err
		}
	}
	if nil != in.WitnessUtxo {
		value := le64(uint64(in.WitnessUtxo.Value))
		buffer := bytes.NewBuffer(value)
		err := wire.WriteVarBytes(buffer, pver, in.WitnessUtxo.PkScript)
		if nil != err {
			return err
		}
		err = writePair(w, byte(InputWitnessUtxo), nil, buffer.Bytes())
		if nil != err {
			return err
		}
	}
	for _, sig := range in.PartialSigs {
		err := writePair(w, byte(InputPartialSig), sig.PubKey, sig.Signature)
		if nil != err {
			return err
		}
	}
	if nil != in.SighashType {
		err := writePair(w, byte(InputSighashType), nil, le32(*in.SighashType))
		if nil != err {
			return err
		}
	}
	if nil != in.RedeemScript {
		err := writePair(w, byte(InputRedeemScript), nil, in.RedeemScript)
		if nil != err {
			return err
		}
	}
	if nil != in.WitnessScript {
		err := writePair(w, byte(InputWitnessScript), nil, in.WitnessScript)
		if nil != err {
			return err
		}
	}
	if nil != in.FinalScriptSig {
		err := writePair(w, byte(InputFinalScriptSig), nil, in.FinalScriptSig)
		if nil != err {
			return err
		}
	}
	if nil != in.FinalWitness {
		buffer := &bytes.Buffer{}
		err := wire.WriteVarInt(buffer, pver, uint64(len(in.FinalWitness)))
		if nil != err {
			return err
		}
		for _, item := range in.FinalWitness {
			err = wire.WriteVarBytes(buffer, pver, item)
			if nil != err {
				return err
			}
		}
		err = writePair(w, byte(InputFinalWitness), nil, buffer.Bytes())
		if nil != err {
			return err
		}
	}
	if nil != in.PreviousTxId {
		err := writePair(w, byte(InputPreviousTxId), nil, in.PreviousTxId[:])
		if nil != err {
			return err
		}
	}
	if nil != in.OutputIndex {
		err := writePair(w, byte(InputOutputIndex), nil, le32(*in.OutputIndex))
		if nil != err {
			return err
		}
	}
	if nil != in.Sequence {
		err := writePair(w, byte(InputSequence), nil, le32(*in.Sequence))
		if nil != err {
			return err
		}
	}
	if nil != in.RequiredTimeLocktime {
		err := writePair(w, byte(InputRequiredTimeLocktime), nil, le32(*in.RequiredTimeLocktime))
		if nil != err {
			return err
		}
	}
	if nil != in.RequiredHeightLocktime {
		err := writePair(w, byte(InputRequiredHeightLocktime), nil, le32(*in.RequiredHeightLocktime))
		if nil != err {
			return err
		}
	}
	err := writeRawPairs(w, in.Proprietary)
	if nil != err {
		return err
	}
	err = writeRawPairs(w, in.Unknown)
	if nil != err {
		return err
	}
	return writeSentinel(w)
}

// write one output map
func writeOutputMap(w io.Writer, out *pstrecord.Output) error {

	if nil != out.RedeemScript {
		err := writePair(w, byte(OutputRedeemScript), nil, out.RedeemScript)
		if nil != err {
			return err
		}
	}
	if nil != out.WitnessScript {
		err := writePair(w, byte(OutputWitnessScript), nil, out.WitnessScript)
		if nil != err {
			return err
		}
	}
	if nil != out.Amount {
		err := writePair(w, byte(OutputAmount), nil, le64(uint64(*out.Amount)))
		if nil != err {
			return err
		}
	}
	if nil != out.Script {
		err := writePair(w, byte(OutputScript), nil, out.Script)
		if nil != err {
			return err
		}
	}
	err := writeRawPairs(w, out.Proprietary)
	if nil != err {
		return err
	}
	err = writeRawPairs(w, out.Unknown)
	if nil != err {
		return err
	}
	return writeSentinel(w)
}
