package kmap

import (
	"math/bits"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestVerifyEquivalence(t *testing.T) {
	tt, err := NewTruthTable(3, 1<<1|1<<2|1<<5, 1<<0|1<<4|1<<6)
	require.NoError(t, err)
	sol, err := FindPrimeImplicants(tt)
	require.NoError(t, err)

	ok, err := VerifyEquivalence(tt, sol)
	require.NoError(t, err)
	assert.True(t, ok)
}

func TestVerifyEquivalenceCatchesOvercover(t *testing.T) {
	tt, err := NewTruthTable(3, 1<<1|1<<2|1<<5, 1<<0|1<<4|1<<6)
	require.NoError(t, err)
	sol, err := FindPrimeImplicants(tt)
	require.NoError(t, err)
	require.Len(t, sol.Implicants, 2)

	// Flip the second term to A&B: it now fires on required-0 cells 3 and 7.
	sol.Implicants[1].LiteralValues = 0b011
	ok, err := VerifyEquivalence(tt, sol)
	require.NoError(t, err)
	assert.False(t, ok)
}

func TestVerifyEquivalenceCatchesUndercover(t *testing.T) {
	tt, err := NewTruthTable(3, 1<<1|1<<2|1<<5, 0)
	require.NoError(t, err)
	sol, err := FindPrimeImplicants(tt)
	require.NoError(t, err)
	require.NotEmpty(t, sol.Implicants)

	sol.Implicants = sol.Implicants[:len(sol.Implicants)-1]
	ok, err := VerifyEquivalence(tt, sol)
	require.NoError(t, err)
	assert.False(t, ok)
}

func TestVerifyEquivalenceEmpty(t *testing.T) {
	tt, err := NewTruthTable(2, 0, 0b1111)
	require.NoError(t, err)
	ok, err := VerifyEquivalence(tt, &Solution{})
	require.NoError(t, err)
	assert.True(t, ok, "empty cover matches constant 0 regardless of don't-cares")
}

// TestVerifyEquivalenceAgreesWithValidator sweeps all 2-variable tables and
// checks the SAT cross-check accepts every cover the engine produces.
func TestVerifyEquivalenceAgreesWithValidator(t *testing.T) {
	for minterms := uint64(0); minterms <= 0b1111; minterms++ {
		for dontCares := uint64(0); dontCares <= 0b1111; dontCares++ {
			if minterms&dontCares != 0 {
				continue
			}
			tt := &TruthTable{
				NumVars:      2,
				Minterms:     minterms,
				DontCares:    dontCares,
				MintermCount: bits.OnesCount64(minterms),
			}
			sol, err := FindPrimeImplicants(tt)
			require.NoError(t, err)
			require.True(t, ValidateSolution(tt, sol))

			ok, err := VerifyEquivalence(tt, sol)
			require.NoError(t, err)
			assert.True(t, ok, "m=%b d=%b", minterms, dontCares)
		}
	}
}
