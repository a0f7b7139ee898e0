package kmap

import (
	"math/bits"

	"github.com/go-air/gini"
	"github.com/go-air/gini/z"
	"github.com/pkg/errors"
)

// VerifyEquivalence cross-checks a solution's product terms against the table
// with a SAT solver, independently of the bitset coverage validator. The cover
// and the reference onset are encoded as CNF and the solver is asked for a
// mismatching assignment twice: once for the cover firing on a required-0
// cell, once for a required minterm the cover misses. Both queries must be
// unsatisfiable.
func VerifyEquivalence(tt *TruthTable, sol *Solution) (bool, error) {
	if err := tt.Validate(); err != nil {
		return false, err
	}
	if sol == nil {
		return false, errors.Wrap(ErrInvalidInput, "nil solution")
	}

	g := gini.New()
	enc := encoder{g: g, next: tt.NumVars + 1}

	inputs := make([]z.Lit, tt.NumVars)
	for i := range inputs {
		inputs[i] = z.Var(i + 1).Pos()
	}

	cover := enc.orOf(enc.implicantTerms(sol, inputs))
	onset := enc.orOf(enc.cellTerms(tt.Minterms, tt.NumVars, inputs))
	dontCare := enc.orOf(enc.cellTerms(tt.DontCares, tt.NumVars, inputs))

	const satisfiable = 1

	// A cell outside minterms and don't-cares where the cover fires.
	g.Assume(cover, onset.Not(), dontCare.Not())
	if g.Solve() == satisfiable {
		return false, nil
	}

	// A required minterm the cover misses.
	g.Assume(cover.Not(), onset)
	if g.Solve() == satisfiable {
		return false, nil
	}

	return true, nil
}

// encoder hands out fresh solver variables and writes Tseitin clauses.
type encoder struct {
	g    *gini.Gini
	next int
}

func (e *encoder) fresh() z.Lit {
	m := z.Var(e.next).Pos()
	e.next++
	return m
}

func (e *encoder) clause(ms ...z.Lit) {
	for _, m := range ms {
		e.g.Add(m)
	}
	e.g.Add(z.LitNull)
}

// andOf returns a literal equivalent to the conjunction of lits. An empty
// conjunction is true.
func (e *encoder) andOf(lits []z.Lit) z.Lit {
	t := e.fresh()
	if len(lits) == 0 {
		e.clause(t)
		return t
	}
	long := make([]z.Lit, 0, len(lits)+1)
	long = append(long, t)
	for _, m := range lits {
		e.clause(t.Not(), m)
		long = append(long, m.Not())
	}
	e.clause(long...)
	return t
}

// orOf returns a literal equivalent to the disjunction of lits. An empty
// disjunction is false.
func (e *encoder) orOf(lits []z.Lit) z.Lit {
	o := e.fresh()
	if len(lits) == 0 {
		e.clause(o.Not())
		return o
	}
	long := make([]z.Lit, 0, len(lits)+1)
	long = append(long, o.Not())
	for _, m := range lits {
		e.clause(m.Not(), o)
		long = append(long, m)
	}
	e.clause(long...)
	return o
}

func (e *encoder) implicantTerms(sol *Solution, inputs []z.Lit) []z.Lit {
	terms := make([]z.Lit, 0, len(sol.Implicants))
	for _, imp := range sol.Implicants {
		lits := make([]z.Lit, 0, bits.OnesCount8(imp.LiteralMask))
		for v := range inputs {
			bit := uint8(1) << v
			if imp.LiteralMask&bit == 0 {
				continue
			}
			if imp.LiteralValues&bit != 0 {
				lits = append(lits, inputs[v])
			} else {
				lits = append(lits, inputs[v].Not())
			}
		}
		terms = append(terms, e.andOf(lits))
	}
	return terms
}

func (e *encoder) cellTerms(cells uint64, numVars int, inputs []z.Lit) []z.Lit {
	terms := make([]z.Lit, 0, bits.OnesCount64(cells))
	for cell := 0; cell < 1<<numVars; cell++ {
		if cells&(1<<cell) == 0 {
			continue
		}
		lits := make([]z.Lit, numVars)
		for v := range inputs {
			if cell&(1<<v) != 0 {
				lits[v] = inputs[v]
			} else {
				lits[v] = inputs[v].Not()
			}
		}
		terms = append(terms, e.andOf(lits))
	}
	return terms
}
