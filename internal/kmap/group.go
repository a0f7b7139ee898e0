package kmap

import (
	"math/bits"

	"github.com/pkg/errors"
)

// groupWithDontCares is the don't-care aware grouping engine. It emits groups
// that jointly cover every required minterm, in three ordered greedy passes:
// pairs, quads, then lone cells. Don't-cares may enlarge a group but are never
// counted as covered, so the union of CoveredMinterms over the result is
// exactly the required minterm set.
func groupWithDontCares(minterms, dontCares uint64, numVars int) ([]Implicant, error) {
	remaining := minterms
	available := minterms | dontCares
	cells := 1 << numVars
	fullMask := uint8(1<<numVars) - 1

	var groups []Implicant

	// Pair pass: each uncovered required minterm takes the first adjacent
	// usable cell above it. Both cells leave the pool so no group reuses them.
	for cell := 0; cell < cells; cell++ {
		bit := uint64(1) << cell
		if available&bit == 0 || remaining&bit == 0 {
			continue
		}
		for partner := cell + 1; partner < cells; partner++ {
			if available&(1<<partner) == 0 {
				continue
			}
			if !AreAdjacent(cell, partner, numVars) {
				continue
			}
			diff := uint8(cell ^ partner)
			groupMask := bit | 1<<partner
			imp := Implicant{
				CoveredMinterms: groupMask & minterms,
				LiteralMask:     fullMask &^ diff,
			}
			imp.LiteralValues = uint8(cell) & imp.LiteralMask
			imp.Size = bits.OnesCount64(imp.CoveredMinterms)
			if imp.CoveredMinterms == 0 {
				continue
			}
			var err error
			if groups, err = appendGroup(groups, imp); err != nil {
				return nil, err
			}
			remaining &^= imp.CoveredMinterms
			available &^= groupMask
			break
		}
	}

	// Quad pass: for each minterm the pair pass left behind, try every pair of
	// variable bits and take the first full rectangle of usable cells. The four
	// corners differ only in the two chosen bits, so the group is exact.
	for cell := 0; cell < cells && remaining != 0; cell++ {
		if remaining&(1<<cell) == 0 {
			continue
		}
	rectSearch:
		for i := 0; i < numVars-1; i++ {
			for j := i + 1; j < numVars; j++ {
				diff := uint8(1<<i | 1<<j)
				groupMask := uint64(0)
				for _, corner := range [4]int{cell, cell ^ 1<<i, cell ^ 1<<j, cell ^ 1<<i ^ 1<<j} {
					groupMask |= 1 << corner
				}
				if available&groupMask != groupMask {
					continue
				}
				imp := Implicant{
					CoveredMinterms: groupMask & minterms,
					LiteralMask:     fullMask &^ diff,
				}
				imp.LiteralValues = uint8(cell) & imp.LiteralMask
				imp.Size = bits.OnesCount64(imp.CoveredMinterms)
				var err error
				if groups, err = appendGroup(groups, imp); err != nil {
					return nil, err
				}
				remaining &^= imp.CoveredMinterms
				available &^= groupMask
				break rectSearch
			}
		}
	}

	// Singleton pass: whatever is still uncovered keeps all its literals.
	for cell := 0; cell < cells; cell++ {
		if remaining&(1<<cell) == 0 {
			continue
		}
		var err error
		groups, err = appendGroup(groups, Implicant{
			CoveredMinterms: 1 << cell,
			LiteralMask:     fullMask,
			LiteralValues:   uint8(cell),
			Size:            1,
		})
		if err != nil {
			return nil, err
		}
	}

	return groups, nil
}

func appendGroup(groups []Implicant, imp Implicant) ([]Implicant, error) {
	if len(groups) >= MaxImplicants {
		return nil, errors.Wrapf(ErrCapacityExceeded, "more than %d implicants", MaxImplicants)
	}
	return append(groups, imp), nil
}

// removeRedundant drops every implicant whose covered minterms are wholly
// contained in a strictly larger surviving implicant. Sizes are judged as
// found; an implicant removed earlier in the sweep no longer subsumes others.
// The list is compacted in place preserving relative order.
func removeRedundant(sol *Solution) {
	for i := range sol.Implicants {
		if sol.Implicants[i].Size == 0 {
			continue
		}
		for j := range sol.Implicants {
			if i == j || sol.Implicants[j].Size == 0 {
				continue
			}
			covered := sol.Implicants[i].CoveredMinterms
			if covered&sol.Implicants[j].CoveredMinterms == covered &&
				sol.Implicants[j].Size > sol.Implicants[i].Size {
				sol.Implicants[i].Size = 0
				break
			}
		}
	}

	kept := sol.Implicants[:0]
	for _, imp := range sol.Implicants {
		if imp.Size > 0 {
			kept = append(kept, imp)
		}
	}
	sol.Implicants = kept
}
