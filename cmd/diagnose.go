package cmd

import (
	"errors"
	"os"

	"github.com/mattn/go-isatty"
	"github.com/spf13/cobra"

	"github.com/KaramelBytes/popmap/internal/present"
)

var (
	diagNoColor bool
	diagStrict  bool
)

var diagnoseCmd = &cobra.Command{
	Use:   "diagnose",
	Short: "Report country names the join could not match",
	Long: `Lists geometry names without a population or area row, table rows without a
geometry feature, and duplicate rows. Close table names are suggested for each
unmatched geometry name; the join itself stays exact.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		pl, err := newPipeline()
		if err != nil {
			return err
		}
		_, diag, err := pl.Records(commandContext(cmd))
		if err != nil {
			return err
		}
		out := cmd.OutOrStdout()
		colorize := false
		if f, ok := out.(*os.File); ok && !diagNoColor {
			colorize = isatty.IsTerminal(f.Fd())
		}
		present.WriteDiagnostics(out, diag, colorize)
		if diagStrict && !diag.Clean() {
			return errors.New("unmatched countries found")
		}
		return nil
	},
}

func init() {
	rootCmd.AddCommand(diagnoseCmd)
	diagnoseCmd.Flags().BoolVar(&diagNoColor, "no-color", false, "disable colored output")
	diagnoseCmd.Flags().BoolVar(&diagStrict, "strict", false, "exit non-zero when any name is unmatched")
}
