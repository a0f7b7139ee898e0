package kmap

import (
	"strings"

	"github.com/pkg/errors"
)

// varNames has two symbols of headroom over MaxVariables.
const varNames = "ABCDEFGH"

// GenerateExpression renders the solution as sum-of-products text under the
// default MaxExpressionLen ceiling.
func GenerateExpression(sol *Solution, numVars int) (string, error) {
	return GenerateExpressionN(sol, numVars, MaxExpressionLen)
}

// GenerateExpressionN renders the solution as sum-of-products text of at most
// maxLen bytes: product terms joined by " + ", literals joined by "&", "~"
// marking a complemented variable. A term with every variable eliminated
// renders as "1"; an empty solution renders as "0". If any token would push
// the output past maxLen the result is ErrBufferTooSmall with no partial
// output.
func GenerateExpressionN(sol *Solution, numVars, maxLen int) (string, error) {
	if sol == nil {
		return "", errors.Wrap(ErrInvalidInput, "nil solution")
	}
	if numVars < 1 || numVars > len(varNames) {
		return "", errors.Wrapf(ErrUnsupportedVarCount, "%d variables, can name at most %d", numVars, len(varNames))
	}
	if maxLen < 1 {
		return "", errors.Wrapf(ErrBufferTooSmall, "limit %d", maxLen)
	}

	if len(sol.Implicants) == 0 {
		return "0", nil
	}

	var b strings.Builder
	write := func(tok string) error {
		if b.Len()+len(tok) > maxLen {
			return errors.Wrapf(ErrBufferTooSmall, "limit %d", maxLen)
		}
		b.WriteString(tok)
		return nil
	}

	for i, imp := range sol.Implicants {
		if i > 0 {
			if err := write(" + "); err != nil {
				return "", err
			}
		}
		first := true
		for v := 0; v < numVars; v++ {
			bit := uint8(1) << v
			if imp.LiteralMask&bit == 0 {
				continue
			}
			if !first {
				if err := write("&"); err != nil {
					return "", err
				}
			}
			if imp.LiteralValues&bit == 0 {
				if err := write("~"); err != nil {
					return "", err
				}
			}
			if err := write(varNames[v : v+1]); err != nil {
				return "", err
			}
			first = false
		}
		if first {
			// Every variable eliminated: the term is the identity.
			if err := write("1"); err != nil {
				return "", err
			}
		}
	}

	return b.String(), nil
}

// TermString renders a single implicant the same way GenerateExpressionN
// renders terms. Handy for explain-style output.
func TermString(imp Implicant, numVars int) string {
	var b strings.Builder
	for v := 0; v < numVars && v < len(varNames); v++ {
		bit := uint8(1) << v
		if imp.LiteralMask&bit == 0 {
			continue
		}
		if b.Len() > 0 {
			b.WriteByte('&')
		}
		if imp.LiteralValues&bit == 0 {
			b.WriteByte('~')
		}
		b.WriteByte(varNames[v])
	}
	if b.Len() == 0 {
		return "1"
	}
	return b.String()
}
