// SPDX-License-Identifier: ISC
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package pst

import (
	"github.com/Subhra264/psbt-poc/fault"
	"github.com/Subhra264/psbt-poc/pstrecord"
)

// locktime values below this are block heights, values at or above
// are unix times
const locktimeThreshold = 500000000

// resolveLocktime - pick the one transaction-level locktime that
// satisfies every input's stated requirement
//
// an input stating only a height requirement forces the height type,
// only a time requirement forces the time type, both kinds is
// satisfiable by either, neither places no constraint; the chosen
// value is the maximum requirement of the chosen type
//
// height is preferred when both types remain satisfiable; with no
// requirements at all the fallback locktime applies, zero when absent
func resolveLocktime(global *pstrecord.Global, inputs []*pstrecord.Input) (uint32, error) {

	heightPossible := true
	timePossible := true
	maxHeight := uint32(0)
	maxTime := uint32(0)
	anyRequirement := false

	for _, in := range inputs {
		hasHeight := nil != in.RequiredHeightLocktime
		hasTime := nil != in.RequiredTimeLocktime
		if !hasHeight && !hasTime {
			continue
		}
		anyRequirement = true
		if hasHeight {
			if *in.RequiredHeightLocktime > maxHeight {
				maxHeight = *in.RequiredHeightLocktime
			}
		} else {
			heightPossible = false
		}
		if hasTime {
			if *in.RequiredTimeLocktime > maxTime {
				maxTime = *in.RequiredTimeLocktime
			}
		} else {
			timePossible = false
		}
	}

	if !anyRequirement {
		if nil != global.FallbackLocktime {
			return *global.FallbackLocktime, nil
		}
		return 0, nil
	}

	if heightPossible {
		return maxHeight, nil
	}
	if timePossible {
		return maxTime, nil
	}
	return 0, fault.ErrLocktimeConflict
}
