package main

import (
	"encoding/json"
	"fmt"
	"math/bits"
	"os"

	"github.com/fatih/color"
	"github.com/samber/lo"
	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	root "github.com/pborges/kmap"
	"github.com/pborges/kmap/internal/kmap"
)

var (
	oneStyle  = color.New(color.FgGreen, color.Bold)
	dcStyle   = color.New(color.FgYellow)
	zeroStyle = color.New(color.Faint)
	termStyle = color.New(color.FgCyan, color.Bold)
)

func main() {
	if err := newRootCmd().Execute(); err != nil {
		fmt.Fprintln(os.Stderr, "error:", err)
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	var verbose bool
	cmd := &cobra.Command{
		Use:           "kmap",
		Short:         "kmap minimizes Boolean functions of 2-6 variables into sum-of-products form",
		Version:       root.Version(),
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRun: func(*cobra.Command, []string) {
			if verbose {
				logrus.SetLevel(logrus.DebugLevel)
			}
		},
	}
	cmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "enable debug logging")
	cmd.AddCommand(newSolveCmd(), newTableCmd(), &cobra.Command{
		Use:   "version",
		Short: "Print the kmap version",
		Run: func(*cobra.Command, []string) {
			fmt.Println(root.Version())
		},
	})
	return cmd
}

func newSolveCmd() *cobra.Command {
	var (
		file    string
		limit   int
		explain bool
	)
	cmd := &cobra.Command{
		Use:   "solve [input]",
		Short: "Minimize a function given as a binary pattern, minterm list, or problem file",
		Long: `Minimize a function and print its sum-of-products expression.

Input is either a binary pattern ("10X1", leftmost character is the highest
cell), a comma-separated minterm list ("0,1,3,5"), or a JSON problem file
given with -f.`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			tt, err := loadTable(file, args)
			if err != nil {
				return err
			}
			solver := kmap.NewSolver(logrus.StandardLogger())
			solver.SetLimit(limit)
			expr, err := solver.SolveTable(tt)
			if err != nil {
				return err
			}
			fmt.Println(expr)
			// Constant functions never reach the grouping engine.
			if explain && tt.MintermCount > 0 && tt.MintermCount < tt.Cells() {
				printImplicants(tt)
			}
			return nil
		},
	}
	cmd.Flags().StringVarP(&file, "file", "f", "", "JSON problem file")
	cmd.Flags().IntVar(&limit, "limit", kmap.MaxExpressionLen, "expression length ceiling in bytes")
	cmd.Flags().BoolVar(&explain, "explain", false, "print the implicants behind each term")
	return cmd
}

func newTableCmd() *cobra.Command {
	var file string
	cmd := &cobra.Command{
		Use:   "table [input]",
		Short: "Print the truth table in Gray-code order",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			tt, err := loadTable(file, args)
			if err != nil {
				return err
			}
			printTable(tt)
			return nil
		},
	}
	cmd.Flags().StringVarP(&file, "file", "f", "", "JSON problem file")
	return cmd
}

func loadTable(file string, args []string) (*kmap.TruthTable, error) {
	if file != "" {
		data, err := os.ReadFile(file)
		if err != nil {
			return nil, err
		}
		var doc map[string]any
		if err := json.Unmarshal(data, &doc); err != nil {
			return nil, err
		}
		return kmap.DecodeProblem(doc)
	}
	if len(args) != 1 {
		return nil, fmt.Errorf("an input argument or -f is required")
	}
	return kmap.ParseInput(args[0])
}

func printTable(tt *kmap.TruthTable) {
	fmt.Printf("truth table, %d variables (%s):\n", tt.NumVars, varNameList(tt.NumVars))
	for pos := 0; pos < tt.Cells(); pos++ {
		// Gray order keeps successive rows adjacent.
		cell := kmap.LinearToGray(pos, tt.NumVars)
		fmt.Printf("  %2d  %0*b  %s\n", cell, tt.NumVars, cell, styledState(tt.CellState(cell)))
	}
}

func printImplicants(tt *kmap.TruthTable) {
	sol, err := kmap.FindPrimeImplicants(tt)
	if err != nil || len(sol.Implicants) == 0 {
		return
	}
	fmt.Printf("%d terms, %d literals:\n", sol.TermCount, sol.LiteralCount)
	for _, imp := range sol.Implicants {
		cells := lo.Filter(lo.Range(tt.Cells()), func(cell, _ int) bool {
			return imp.CoveredMinterms&(1<<cell) != 0
		})
		fmt.Printf("  %s covers %v (%d of %d cells)\n",
			termStyle.Sprint(kmap.TermString(imp, tt.NumVars)),
			cells, imp.Size, 1<<(tt.NumVars-bits.OnesCount8(imp.LiteralMask)))
	}
}

func styledState(state byte) string {
	switch state {
	case '1':
		return oneStyle.Sprint("1")
	case 'X':
		return dcStyle.Sprint("X")
	default:
		return zeroStyle.Sprint("0")
	}
}

func varNameList(numVars int) string {
	const names = "ABCDEFGH"
	out := ""
	for v := numVars - 1; v >= 0; v-- {
		if out != "" {
			out += " "
		}
		out += names[v : v+1]
	}
	return out
}
