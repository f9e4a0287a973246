package main

import (
	"fmt"
	"os"

	"npdecide/adapters/excel"
	"npdecide/app"
	"npdecide/internal"
	"npdecide/internal/solver/continuous"
	"npdecide/internal/solver/matrix"

	"github.com/spf13/cobra"
)

func main() {
	if err := newRootCmd().Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	var output string

	rootCmd := &cobra.Command{
		Use:           "npdecide",
		Short:         "Neyman-Pearson threshold and strategy matrix calculator",
		SilenceUsage:  true,
		SilenceErrors: true,
	}
	rootCmd.PersistentFlags().StringVarP(&output, "output", "o", "text", "Output format: text|json|yaml")

	rootCmd.AddCommand(
		newContinuousCmd(&output),
		newMatrixCmd(&output),
	)
	return rootCmd
}

func newService() *app.DecisionService {
	return app.NewDecisionService(
		continuous.NewSolver(continuous.DefaultConfig()),
		matrix.NewSolver(),
		nil,
		internal.DefaultLogger,
		app.BatchLimits{},
	)
}

func newContinuousCmd(output *string) *cobra.Command {
	var alpha float64
	var h0, h1 string

	cmd := &cobra.Command{
		Use:   "continuous",
		Short: "Compute the most powerful one-sided threshold for two continuous hypotheses",
		Long: `Compute the Neyman-Pearson threshold c* with P(X > c* | H0) = alpha and the
resulting power P(X > c* | H1).

Distributions are given as family:param1:param2 where family is one of
norm (mean, std), uniform (loc, scale) or expon (loc, scale).

Example: npdecide continuous --alpha 0.05 --h0 norm:0:1 --h1 norm:1:1`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			req, err := continuousRequest(alpha, h0, h1)
			if err != nil {
				return err
			}
			calc, err := newService().SolveContinuous(cmd.Context(), req)
			if err != nil {
				return err
			}
			return render(cmd.OutOrStdout(), *output, calc)
		},
	}

	cmd.Flags().Float64Var(&alpha, "alpha", 0.05, "Significance level in (0, 1)")
	cmd.Flags().StringVar(&h0, "h0", "norm:0:1", "Null hypothesis distribution")
	cmd.Flags().StringVar(&h1, "h1", "norm:1:1", "Alternative hypothesis distribution")

	return cmd
}

func newMatrixCmd(output *string) *cobra.Command {
	var file, text, sheet string
	var controlled int
	var lStar float64

	cmd := &cobra.Command{
		Use:   "matrix",
		Short: "Select the optimal pure or mixed strategy of a two-column loss matrix",
		Long: `Select the strategy minimising the uncontrolled loss subject to the
controlled loss staying at or below L*.

The matrix is read from an .xlsx or .csv file (--file) or given inline (--text)
as "L, J" pairs separated by newlines or semicolons.

Example: npdecide matrix --text "0,4;5,1;6,3;3,2" --controlled 0 --l-star 3`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			data, err := loadMatrix(file, sheet, text)
			if err != nil {
				return err
			}
			calc, err := newService().SolveStrategyMatrix(cmd.Context(), app.MatrixRequest{
				Rows:             data.Rows(),
				ControlledColumn: controlled,
				LStar:            lStar,
			})
			if err != nil {
				return err
			}
			return render(cmd.OutOrStdout(), *output, calc)
		},
	}

	cmd.Flags().StringVar(&file, "file", "", "Path to an .xlsx or .csv loss matrix")
	cmd.Flags().StringVar(&sheet, "sheet", "", "Worksheet name (xlsx only, default first sheet)")
	cmd.Flags().StringVar(&text, "text", "", "Inline matrix, e.g. \"0,4;5,1\"")
	cmd.Flags().IntVar(&controlled, "controlled", 0, "Controlled loss column (0 or 1)")
	cmd.Flags().Float64Var(&lStar, "l-star", 0, "Bound on the controlled loss")
	cmd.MarkFlagsMutuallyExclusive("file", "text")
	cmd.MarkFlagsOneRequired("file", "text")
	_ = cmd.MarkFlagRequired("l-star")

	return cmd
}

func loadMatrix(file, sheet, text string) (*excel.MatrixData, error) {
	if file == "" {
		return excel.ParseMatrixText(text)
	}
	reader := excel.NewMatrixReader(file)
	if sheet != "" {
		reader = reader.WithSheet(sheet)
	}
	return reader.ReadMatrix()
}
