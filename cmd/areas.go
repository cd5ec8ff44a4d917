package cmd

import (
	"bytes"
	"encoding/csv"
	"fmt"
	"strconv"

	"github.com/spf13/cobra"

	"github.com/KaramelBytes/popmap/internal/geoarea"
	"github.com/KaramelBytes/popmap/internal/utils"
)

var areasOut string

var areasCmd = &cobra.Command{
	Use:   "areas",
	Short: "Derive a country,area table (km²) from the geometry",
	Long: `Computes the geodesic area of every named feature on a spherical Earth and
writes a table usable as the area source.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		if cfgErr != nil {
			return cfgErr
		}
		g, err := loader.Geometry(cfg.GeometryPath)
		if err != nil {
			return err
		}
		entries, err := geoarea.FromFeatures(g.Features)
		if err != nil {
			return err
		}
		var buf bytes.Buffer
		w := csv.NewWriter(&buf)
		_ = w.Write([]string{"country", "area"})
		for _, e := range entries {
			_ = w.Write([]string{e.Country, strconv.FormatFloat(e.Area, 'f', 1, 64)})
		}
		w.Flush()
		if err := w.Error(); err != nil {
			return fmt.Errorf("encode csv: %w", err)
		}
		if err := utils.WriteOutput(cmd.OutOrStdout(), areasOut, buf.Bytes()); err != nil {
			return err
		}
		if areasOut != "" && areasOut != "-" {
			fmt.Fprintf(cmd.OutOrStdout(), "✓ Wrote %d areas to %s\n", len(entries), areasOut)
		}
		return nil
	},
}

func init() {
	rootCmd.AddCommand(areasCmd)
	areasCmd.Flags().StringVarP(&areasOut, "output", "o", "", "write the table to this file instead of stdout")
}
