// Package ecc provides the redundancy layer appended to a ring-code payload.
// Two schemes share one contract: the legacy weighted-XOR parity format, which
// only detects gross corruption, and a Reed-Solomon code over GF(256), which
// corrects up to half its parity budget in symbol errors.
package ecc

import "errors"

var (
	ErrCorrupted = errors.New("ecc: codeword failed validation")
	ErrEmptyData = errors.New("ecc: empty data section")
)

// Scheme turns a payload into a codeword and back.
type Scheme interface {
	// Append returns the nsym redundancy bytes for the payload.
	Append(payload []byte, nsym int) []byte
	// Validate splits a codeword into data and nsym redundancy bytes,
	// returning the (possibly corrected) data and the number of corrected
	// symbol errors. A nil error means the data section is trustworthy.
	Validate(codeword []byte, nsym int) (data []byte, corrected int, err error)
	// Screen inspects the declared payload after Validate has stripped the
	// zero padding. Schemes with no repair capability use it to reject
	// grossly corrupt captures; correcting schemes return nil.
	Screen(payload []byte) error
	// Name identifies the scheme in logs and tooling.
	Name() string
}

// BytesFor maps an ecc level (0-3) to its redundancy byte budget.
func BytesFor(level int) int {
	return eccBytes[level]
}

// Levels is the number of defined ecc levels.
const Levels = 4

var eccBytes = [Levels]int{8, 16, 32, 64}
