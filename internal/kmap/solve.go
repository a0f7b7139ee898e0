package kmap

import (
	"io"
	"math/bits"

	"github.com/pkg/errors"
	"github.com/samber/lo"
	"github.com/sirupsen/logrus"
)

// Implicant is one product term: a group of 2^k adjacent cells. Variable v
// appears in the term iff bit v of LiteralMask is set, uncomplemented iff the
// matching bit of LiteralValues is set. CoveredMinterms holds only required
// minterms; don't-cares riding along in the group are not counted. Size is
// the covered minterm count, and zero marks a logically deleted entry.
type Implicant struct {
	CoveredMinterms uint64
	LiteralMask     uint8
	LiteralValues   uint8
	Size            int
}

// Solution is an ordered implicant list with aggregate counters. It owns its
// implicants exclusively; they never outlive it or alias another Solution.
type Solution struct {
	Implicants   []Implicant
	TermCount    int
	LiteralCount int
}

// Covered returns the union of covered minterms over all implicants.
func (s *Solution) Covered() uint64 {
	var covered uint64
	for _, imp := range s.Implicants {
		covered |= imp.CoveredMinterms
	}
	return covered
}

// FindPrimeImplicants runs the grouping engine and redundancy sweep over a
// validated table and returns the resulting cover. The trivial constant cases
// belong to the caller: an empty minterm set yields an empty solution, and a
// full-domain minterm set is not short-circuited here.
func FindPrimeImplicants(tt *TruthTable) (*Solution, error) {
	if err := tt.Validate(); err != nil {
		return nil, err
	}

	sol := &Solution{}
	if tt.MintermCount == 0 {
		return sol, nil
	}

	if tt.MintermCount == 1 {
		// A lone minterm keeps all its literals.
		cell := bits.TrailingZeros64(tt.Minterms)
		sol.Implicants = []Implicant{{
			CoveredMinterms: tt.Minterms,
			LiteralMask:     uint8(1<<tt.NumVars) - 1,
			LiteralValues:   uint8(cell),
			Size:            1,
		}}
		finishSolution(sol)
		return sol, nil
	}

	groups, err := groupWithDontCares(tt.Minterms, tt.DontCares, tt.NumVars)
	if err != nil {
		return nil, err
	}
	sol.Implicants = groups
	removeRedundant(sol)
	finishSolution(sol)
	return sol, nil
}

func finishSolution(sol *Solution) {
	sol.TermCount = len(sol.Implicants)
	sol.LiteralCount = lo.SumBy(sol.Implicants, func(imp Implicant) int {
		return bits.OnesCount8(imp.LiteralMask)
	})
}

// ValidateSolution reports whether the solution covers the table's minterms
// exactly, neither more nor less. A failure is a defect in the engine and is
// never repaired here.
func ValidateSolution(tt *TruthTable, sol *Solution) bool {
	if tt == nil || sol == nil || tt.Validate() != nil {
		return false
	}
	return sol.Covered() == tt.Minterms
}

// Solver ties the whole pipeline together: parse, validate, group, check
// coverage, render.
type Solver struct {
	log   logrus.FieldLogger
	limit int
}

// NewSolver returns a Solver logging through log. A nil log discards output.
func NewSolver(log logrus.FieldLogger) *Solver {
	if log == nil {
		l := logrus.New()
		l.SetOutput(io.Discard)
		log = l
	}
	return &Solver{log: log, limit: MaxExpressionLen}
}

// SetLimit overrides the rendered expression's byte ceiling.
func (s *Solver) SetLimit(n int) {
	if n > 0 {
		s.limit = n
	}
}

// Solve parses input in either supported format and returns the minimized
// SOP expression.
func (s *Solver) Solve(input string) (string, error) {
	tt, err := ParseInput(input)
	if err != nil {
		return "", err
	}
	return s.SolveTable(tt)
}

// SolveTable minimizes a constructed table.
func (s *Solver) SolveTable(tt *TruthTable) (string, error) {
	if err := tt.Validate(); err != nil {
		return "", err
	}

	log := s.log.WithFields(logrus.Fields{
		"vars":     tt.NumVars,
		"minterms": tt.MintermCount,
	})

	// Constant functions never reach the grouping engine.
	if tt.MintermCount == 0 {
		log.Debug("constant 0 function")
		return "0", nil
	}
	if tt.Minterms == tt.domainMask() {
		log.Debug("constant 1 function")
		return "1", nil
	}

	sol, err := FindPrimeImplicants(tt)
	if err != nil {
		return "", err
	}
	if !ValidateSolution(tt, sol) {
		return "", errors.Wrapf(ErrInvariantViolation,
			"covered %064b, want %064b", sol.Covered(), tt.Minterms)
	}
	log.WithFields(logrus.Fields{
		"terms":    sol.TermCount,
		"literals": sol.LiteralCount,
	}).Debug("cover found")

	return GenerateExpressionN(sol, tt.NumVars, s.limit)
}
