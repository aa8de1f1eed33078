// SPDX-License-Identifier: ISC
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package pst

import (
	"github.com/Subhra264/psbt-poc/fault"
	"github.com/Subhra264/psbt-poc/pstrecord"
	"github.com/Subhra264/psbt-poc/version"
)

// Validate - decide structural acceptability of a candidate record set
//
// the single gate through which an untrusted record set becomes a
// trusted container: for the declared version every required field
// must be present and every forbidden field absent
//
// pure single pass over inputs then outputs, no I/O, no recovery
func Validate(ver version.Version, global *pstrecord.Global, inputs []*pstrecord.Input, outputs []*pstrecord.Output) error {
	if nil == global {
		global = &pstrecord.Global{}
	}

	switch ver {
	case version.V0:
		return validateV0(global, inputs, outputs)
	case version.V2:
		return validateV2(global, inputs, outputs)
	default:
		return fault.ErrUnsupportedVersion
	}
}

// version 0: everything lives inside the embedded unsigned transaction
func validateV0(global *pstrecord.Global, inputs []*pstrecord.Input, outputs []*pstrecord.Output) error {

	tx := global.UnsignedTx
	if nil == tx {
		return fault.ErrMissingUnsignedTx
	}
	if nil != global.TxVersion {
		return fault.ErrForbiddenTxVersion
	}
	if nil != global.FallbackLocktime {
		return fault.ErrForbiddenFallbackTime
	}
	if nil != global.TxModifiable {
		return fault.ErrForbiddenTxModifiable
	}

	// the per-index correspondence between records and the embedded
	// transaction is what the whole format relies on
	if len(inputs) != len(tx.TxIn) {
		return fault.ErrInputRecordCount
	}
	if len(outputs) != len(tx.TxOut) {
		return fault.ErrOutputRecordCount
	}

	// signing data lives only in the records, never inlined
	for _, txIn := range tx.TxIn {
		if 0 != len(txIn.SignatureScript) {
			return fault.ErrScriptSigNotEmpty
		}
		if 0 != len(txIn.Witness) {
			return fault.ErrWitnessNotEmpty
		}
	}

	for _, in := range inputs {
		if nil == in {
			return fault.ErrMissingInputRecord
		}
		if nil != in.PreviousTxId {
			return fault.ErrForbiddenPreviousTxId
		}
		if nil != in.OutputIndex {
			return fault.ErrForbiddenOutputIndex
		}
		if nil != in.Sequence {
			return fault.ErrForbiddenSequence
		}
		if nil != in.RequiredTimeLocktime {
			return fault.ErrForbiddenTimeLocktime
		}
		if nil != in.RequiredHeightLocktime {
			return fault.ErrForbiddenHeightLocktime
		}
	}

	for _, out := range outputs {
		if nil == out {
			return fault.ErrMissingOutputRecord
		}
		if nil != out.Amount {
			return fault.ErrForbiddenOutputAmount
		}
		if nil != out.Script {
			return fault.ErrForbiddenOutputScript
		}
	}
	return nil
}

// version 2: the transaction is synthesized from per-slot fields
func validateV2(global *pstrecord.Global, inputs []*pstrecord.Input, outputs []*pstrecord.Output) error {

	if nil != global.UnsignedTx {
		return fault.ErrForbiddenUnsignedTx
	}
	if nil == global.TxVersion {
		return fault.ErrMissingTxVersion
	}
	if nil == global.FallbackLocktime {
		return fault.ErrMissingFallbackTime
	}
	// TxModifiable optional: absence means not modifiable

	for _, in := range inputs {
		if nil == in {
			return fault.ErrMissingInputRecord
		}
		if nil == in.PreviousTxId {
			return fault.ErrMissingPreviousTxId
		}
		if nil == in.OutputIndex {
			return fault.ErrMissingOutputIndex
		}
		if nil != in.RequiredTimeLocktime && *in.RequiredTimeLocktime < locktimeThreshold {
			return fault.ErrTimeLocktimeRange
		}
		if nil != in.RequiredHeightLocktime {
			h := *in.RequiredHeightLocktime
			if 0 == h || h >= locktimeThreshold {
				return fault.ErrHeightLocktimeRange
			}
		}
	}

	for _, out := range outputs {
		if nil == out {
			return fault.ErrMissingOutputRecord
		}
		if nil == out.Amount {
			return fault.ErrMissingOutputAmount
		}
		if nil == out.Script {
			return fault.ErrMissingOutputScript
		}
	}

	// all stated locktime requirements must be satisfiable by one
	// transaction-level locktime
	_, err := resolveLocktime(global, inputs)
	return err
}
