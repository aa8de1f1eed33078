// SPDX-License-Identifier: ISC
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package fault

// error base
type GenericError string

// to allow for different classes of errors
// one class per failure kind of the PST core
type MalformedError GenericError
type VersionError GenericError
type MissingError GenericError
type ForbiddenError GenericError
type ConflictError GenericError
type ConversionError GenericError

// common errors - keep in alphabetic order within each class
var (
	// codec: bytes do not parse as the key-typed map structure
	ErrDuplicateKey        = MalformedError("duplicate key in map")
	ErrEncodingTooLarge    = MalformedError("encoded form exceeds maximum size")
	ErrInvalidKeyLength    = MalformedError("invalid key length")
	ErrInvalidMagic        = MalformedError("invalid magic prefix")
	ErrInvalidValueLength  = MalformedError("invalid value length")
	ErrKeyTooLong          = MalformedError("map key exceeds maximum length")
	ErrMalformedMap        = MalformedError("malformed key-value map")
	ErrMalformedText       = MalformedError("text armor is not valid base64")
	ErrNoMapCounts         = MalformedError("global map has no input or output counts")
	ErrNoUnsignedTx        = MalformedError("global map has no unsigned transaction")
	ErrTooManyMapEntries   = MalformedError("too many entries in one map")
	ErrTooManyMaps         = MalformedError("too many input or output maps")
	ErrTrailingData        = MalformedError("unexpected data after final map")
	ErrValueTooLong        = MalformedError("map value exceeds maximum length")
	ErrWitnessItemOverflow = MalformedError("too many witness items")

	// version tag outside the known set
	ErrUnsupportedVersion = VersionError("version is not supported")

	// a field mandatory for the declared version is absent
	ErrInputRecordCount    = MissingError("input record count differs from unsigned transaction")
	ErrMissingFallbackTime = MissingError("fallback locktime is required for version 2")
	ErrMissingInputRecord  = MissingError("input record is nil")
	ErrMissingOutputAmount = MissingError("output amount is required for version 2")
	ErrMissingOutputIndex  = MissingError("output index is required for version 2")
	ErrMissingOutputRecord = MissingError("output record is nil")
	ErrMissingOutputScript = MissingError("output script is required for version 2")
	ErrMissingPreviousTxId = MissingError("previous transaction id is required for version 2")
	ErrMissingTxVersion    = MissingError("transaction version is required for version 2")
	ErrMissingUnsignedTx   = MissingError("unsigned transaction is required for version 0")
	ErrOutputRecordCount   = MissingError("output record count differs from unsigned transaction")

	// a field disallowed for the declared version is populated
	ErrForbiddenFallbackTime   = ForbiddenError("fallback locktime is forbidden for version 0")
	ErrForbiddenHeightLocktime = ForbiddenError("required height locktime is forbidden for version 0")
	ErrForbiddenOutputAmount   = ForbiddenError("output amount is forbidden for version 0")
	ErrForbiddenOutputIndex    = ForbiddenError("output index is forbidden for version 0")
	ErrForbiddenOutputScript   = ForbiddenError("output script is forbidden for version 0")
	ErrForbiddenPreviousTxId   = ForbiddenError("previous transaction id is forbidden for version 0")
	ErrForbiddenSequence       = ForbiddenError("sequence is forbidden for version 0")
	ErrForbiddenTimeLocktime   = ForbiddenError("required time locktime is forbidden for version 0")
	ErrForbiddenTxModifiable   = ForbiddenError("transaction modifiable flags are forbidden for version 0")
	ErrForbiddenTxVersion      = ForbiddenError("transaction version is forbidden for version 0")
	ErrForbiddenUnsignedTx     = ForbiddenError("unsigned transaction is forbidden for version 2")
	ErrScriptSigNotEmpty       = ForbiddenError("unsigned transaction script sig must be empty")
	ErrWitnessNotEmpty         = ForbiddenError("unsigned transaction witness must be empty")

	// inputs require mutually unsatisfiable locktime types/values
	ErrHeightLocktimeRange = ConflictError("required height locktime is outside the height range")
	ErrLocktimeConflict    = ConflictError("input locktime requirements cannot be unified")
	ErrTimeLocktimeRange   = ConflictError("required time locktime is below the time threshold")

	// a version transform cannot produce a valid result
	ErrConversionImpossible = ConversionError("conversion cannot produce a valid result")
)

// the error interface base method
func (e GenericError) Error() string { return string(e) }

// the error interface methods
func (e MalformedError) Error() string  { return string(e) }
func (e VersionError) Error() string    { return string(e) }
func (e MissingError) Error() string    { return string(e) }
func (e ForbiddenError) Error() string  { return string(e) }
func (e ConflictError) Error() string   { return string(e) }
func (e ConversionError) Error() string { return string(e) }

// determine the class of an error
func IsErrMalformed(e error) bool  { _, ok := e.(MalformedError); return ok }
func IsErrVersion(e error) bool    { _, ok := e.(VersionError); return ok }
func IsErrMissing(e error) bool    { _, ok := e.(MissingError); return ok }
func IsErrForbidden(e error) bool  { _, ok := e.(ForbiddenError); return ok }
func IsErrConflict(e error) bool   { _, ok := e.(ConflictError); return ok }
func IsErrConversion(e error) bool { _, ok := e.(ConversionError); return ok }
