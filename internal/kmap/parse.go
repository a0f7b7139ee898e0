package kmap

import (
	"strconv"
	"strings"

	"github.com/mitchellh/mapstructure"
	"github.com/pkg/errors"
)

// ParseInput detects the input format and builds a validated truth table.
// A comma anywhere means a minterm list ("0,1,3,5"); a string of 0, 1, X and
// - characters is a binary pattern ("10X1") whose leftmost character is the
// highest-numbered cell.
func ParseInput(input string) (*TruthTable, error) {
	s := strings.TrimSpace(input)
	if s == "" {
		return nil, errors.Wrap(ErrInvalidInput, "empty input")
	}
	if strings.Contains(s, ",") {
		return parseMintermList(s)
	}
	if strings.Trim(s, "01Xx-") == "" {
		return parseBinaryPattern(s)
	}
	return nil, errors.Wrapf(ErrInvalidInput, "unrecognized format %q", s)
}

func parseBinaryPattern(s string) (*TruthTable, error) {
	numVars := 0
	for 1<<numVars < len(s) {
		numVars++
	}
	if 1<<numVars != len(s) || numVars < 2 || numVars > MaxVariables {
		return nil, errors.Wrapf(ErrInvalidInput, "pattern length %d is not a power of two in [4,%d]", len(s), MaxCells)
	}

	tt := &TruthTable{NumVars: numVars}
	for i := 0; i < len(s); i++ {
		bit := uint64(1) << (len(s) - 1 - i)
		switch s[i] {
		case '1':
			tt.Minterms |= bit
			tt.MintermCount++
		case '0':
		case 'X', 'x', '-':
			tt.DontCares |= bit
		}
	}
	if err := tt.Validate(); err != nil {
		return nil, err
	}
	return tt, nil
}

func parseMintermList(s string) (*TruthTable, error) {
	tt := &TruthTable{}
	maxMinterm := 0
	for _, tok := range strings.Split(s, ",") {
		tok = strings.TrimSpace(tok)
		v, err := strconv.Atoi(tok)
		if err != nil || v < 0 || v >= MaxCells {
			return nil, errors.Wrapf(ErrInvalidInput, "bad minterm %q", tok)
		}
		if v > maxMinterm {
			maxMinterm = v
		}
		tt.Minterms |= 1 << v
		tt.MintermCount++
	}

	// Smallest variable count whose domain holds the highest minterm.
	tt.NumVars = 2
	for 1<<tt.NumVars <= maxMinterm {
		tt.NumVars++
	}
	if err := tt.Validate(); err != nil {
		return nil, err
	}
	return tt, nil
}

// Problem is the problem-file document shape: either a pattern string or an
// explicit variable count with minterm and don't-care cell lists.
type Problem struct {
	NumVars   int    `mapstructure:"numVars"`
	Minterms  []int  `mapstructure:"minterms"`
	DontCares []int  `mapstructure:"dontCares"`
	Pattern   string `mapstructure:"pattern"`
}

// DecodeProblem decodes a loosely typed document (for example unmarshalled
// JSON) into a validated truth table.
func DecodeProblem(doc map[string]any) (*TruthTable, error) {
	var p Problem
	if err := mapstructure.Decode(doc, &p); err != nil {
		return nil, errors.Wrapf(ErrInvalidInput, "decode problem: %v", err)
	}
	if p.Pattern != "" {
		if p.NumVars != 0 || len(p.Minterms) != 0 || len(p.DontCares) != 0 {
			return nil, errors.Wrap(ErrInvalidInput, "pattern excludes the other problem fields")
		}
		return ParseInput(p.Pattern)
	}

	var minterms, dontCares uint64
	for _, v := range p.Minterms {
		if v < 0 || v >= MaxCells {
			return nil, errors.Wrapf(ErrInvalidInput, "minterm %d out of range", v)
		}
		minterms |= 1 << v
	}
	for _, v := range p.DontCares {
		if v < 0 || v >= MaxCells {
			return nil, errors.Wrapf(ErrInvalidInput, "don't-care %d out of range", v)
		}
		dontCares |= 1 << v
	}
	return NewTruthTable(p.NumVars, minterms, dontCares)
}
