package kmap

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseBinaryPattern(t *testing.T) {
	// Leftmost character is the highest cell index.
	tt, err := ParseInput("1X1X")
	require.NoError(t, err)
	assert.Equal(t, 2, tt.NumVars)
	assert.Equal(t, uint64(1<<3|1<<1), tt.Minterms)
	assert.Equal(t, uint64(1<<2|1<<0), tt.DontCares)
	assert.Equal(t, 2, tt.MintermCount)

	tt, err = ParseInput("00000001")
	require.NoError(t, err)
	assert.Equal(t, 3, tt.NumVars)
	assert.Equal(t, uint64(1), tt.Minterms)
}

func TestParseMintermList(t *testing.T) {
	tt, err := ParseInput("0,1,3,5")
	require.NoError(t, err)
	assert.Equal(t, 3, tt.NumVars, "variable count follows the highest minterm")
	assert.Equal(t, uint64(1<<0|1<<1|1<<3|1<<5), tt.Minterms)
	assert.Zero(t, tt.DontCares)

	tt, err = ParseInput(" 2 , 3 ")
	require.NoError(t, err)
	assert.Equal(t, 2, tt.NumVars)
	assert.Equal(t, uint64(1<<2|1<<3), tt.Minterms)
}

func TestParseInputErrors(t *testing.T) {
	cases := []struct {
		name  string
		input string
	}{
		{"empty", "   "},
		{"unknown format", "hello"},
		{"pattern length not a power of two", "101"},
		{"stray letter in pattern", "1s1X"},
		{"pattern too short", "10"},
		{"minterm out of range", "1,64"},
		{"negative minterm", "-1,2"},
		{"duplicate minterm", "3,3"},
		{"junk in list", "1,two"},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			_, err := ParseInput(tc.input)
			assert.ErrorIs(t, err, ErrInvalidInput)
		})
	}
}

func TestDecodeProblem(t *testing.T) {
	// JSON numbers arrive as float64; decoding must still land in int fields.
	tt, err := DecodeProblem(map[string]any{
		"numVars":   float64(3),
		"minterms":  []any{float64(1), float64(2), float64(5)},
		"dontCares": []any{float64(0), float64(4), float64(6)},
	})
	require.NoError(t, err)
	assert.Equal(t, 3, tt.NumVars)
	assert.Equal(t, uint64(1<<1|1<<2|1<<5), tt.Minterms)
	assert.Equal(t, uint64(1<<0|1<<4|1<<6), tt.DontCares)
}

func TestDecodeProblemPattern(t *testing.T) {
	tt, err := DecodeProblem(map[string]any{"pattern": "1X1X"})
	require.NoError(t, err)
	assert.Equal(t, uint64(1<<3|1<<1), tt.Minterms)

	_, err = DecodeProblem(map[string]any{"pattern": "1X1X", "numVars": 2})
	assert.ErrorIs(t, err, ErrInvalidInput)
}

func TestDecodeProblemErrors(t *testing.T) {
	_, err := DecodeProblem(map[string]any{"numVars": 3, "minterms": []any{70}})
	assert.ErrorIs(t, err, ErrInvalidInput)

	_, err = DecodeProblem(map[string]any{"numVars": 3, "dontCares": []any{-2}})
	assert.ErrorIs(t, err, ErrInvalidInput)

	_, err = DecodeProblem(map[string]any{"numVars": 9, "minterms": []any{1}})
	assert.ErrorIs(t, err, ErrInvalidInput)
}
