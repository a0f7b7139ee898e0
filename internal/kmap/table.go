package kmap

import (
	"math/bits"

	"github.com/pkg/errors"
)

const (
	// MaxVariables is the largest supported function arity.
	MaxVariables = 6
	// MaxCells is the truth table domain size at MaxVariables.
	MaxCells = 1 << MaxVariables
	// MaxImplicants bounds the number of groups a solution may hold.
	MaxImplicants = 32
	// MaxExpressionLen is the default ceiling for rendered SOP text.
	MaxExpressionLen = 1024
)

var (
	// ErrInvalidInput reports a malformed or out-of-range truth table or input string.
	ErrInvalidInput = errors.New("invalid input")
	// ErrInvariantViolation reports a coverage check failure after grouping.
	// It signals a defect in the engine, not a user error.
	ErrInvariantViolation = errors.New("solution does not cover minterms")
	// ErrCapacityExceeded reports that grouping would exceed MaxImplicants.
	ErrCapacityExceeded = errors.New("implicant capacity exceeded")
	// ErrBufferTooSmall reports that rendered output would exceed the caller's limit.
	ErrBufferTooSmall = errors.New("expression buffer too small")
	// ErrUnsupportedVarCount reports a variable count the renderer cannot name.
	ErrUnsupportedVarCount = errors.New("unsupported variable count")
)

// TruthTable is a bit-vector representation of a partially specified Boolean
// function. Cell i of the domain is bit i of Minterms (output required 1) or
// of DontCares (output unconstrained). Construct it once and treat it as
// immutable; the solver re-validates it defensively.
type TruthTable struct {
	Minterms     uint64
	DontCares    uint64
	NumVars      int
	MintermCount int
}

// NewTruthTable builds a validated table from minterm and don't-care bitsets.
func NewTruthTable(numVars int, minterms, dontCares uint64) (*TruthTable, error) {
	tt := &TruthTable{
		Minterms:     minterms,
		DontCares:    dontCares,
		NumVars:      numVars,
		MintermCount: bits.OnesCount64(minterms),
	}
	if err := tt.Validate(); err != nil {
		return nil, err
	}
	return tt, nil
}

// Validate checks the structural invariants of the table.
func (tt *TruthTable) Validate() error {
	if tt == nil {
		return errors.Wrap(ErrInvalidInput, "nil truth table")
	}
	if tt.NumVars < 2 || tt.NumVars > MaxVariables {
		return errors.Wrapf(ErrInvalidInput, "%d variables, want 2..%d", tt.NumVars, MaxVariables)
	}
	if tt.Minterms&tt.DontCares != 0 {
		return errors.Wrap(ErrInvalidInput, "minterms and don't-cares overlap")
	}
	if (tt.Minterms|tt.DontCares)&^tt.domainMask() != 0 {
		return errors.Wrapf(ErrInvalidInput, "cells outside %d-variable domain", tt.NumVars)
	}
	if tt.MintermCount != bits.OnesCount64(tt.Minterms) {
		return errors.Wrapf(ErrInvalidInput, "declared %d minterms, bitset has %d",
			tt.MintermCount, bits.OnesCount64(tt.Minterms))
	}
	return nil
}

// Cells returns the domain size, 2^NumVars.
func (tt *TruthTable) Cells() int {
	return 1 << tt.NumVars
}

// CellState reports cell as '1', 'X' or '0'.
func (tt *TruthTable) CellState(cell int) byte {
	switch {
	case tt.Minterms&(1<<cell) != 0:
		return '1'
	case tt.DontCares&(1<<cell) != 0:
		return 'X'
	default:
		return '0'
	}
}

func (tt *TruthTable) domainMask() uint64 {
	cells := 1 << tt.NumVars
	if cells == 64 {
		return ^uint64(0)
	}
	return (1 << cells) - 1
}

// AreAdjacent reports whether two cell indices differ in exactly one bit.
// Out-of-range indices are never adjacent.
func AreAdjacent(a, b, numVars int) bool {
	if a < 0 || b < 0 || a >= (1<<numVars) || b >= (1<<numVars) {
		return false
	}
	return bits.OnesCount(uint(a^b)) == 1
}
