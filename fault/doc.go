// SPDX-License-Identifier: ISC
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

// Package fault - error instances
//
// Provides a single instance of errors to allow easy comparison
// without having to resort to partial string matches
//
// Each error class corresponds to one failure kind of the partially
// signed transaction core: malformed encoding, unsupported version,
// missing required field, forbidden field present, locktime conflict
// and impossible conversion.
package fault
