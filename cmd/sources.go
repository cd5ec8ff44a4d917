package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/KaramelBytes/popmap/internal/choropleth"
	"github.com/KaramelBytes/popmap/internal/present"
)

var (
	sourcesLimit    int
	sourcesMarkdown bool
)

var sourcesCmd = &cobra.Command{
	Use:   "sources",
	Short: "Rank the population table as loaded, before joining",
	RunE: func(cmd *cobra.Command, args []string) error {
		if cfgErr != nil {
			return cfgErr
		}
		t, err := loader.Population(cfg.PopulationPath)
		if err != nil {
			return err
		}
		rows := choropleth.PopulationRanking(t.Entries, sourcesLimit)
		if sourcesMarkdown {
			fmt.Fprint(cmd.OutOrStdout(), present.Markdown(rows, choropleth.MetricPopulation))
			return nil
		}
		present.WriteTable(cmd.OutOrStdout(), rows, choropleth.MetricPopulation)
		return nil
	},
}

func init() {
	rootCmd.AddCommand(sourcesCmd)
	sourcesCmd.Flags().IntVarP(&sourcesLimit, "limit", "n", choropleth.TopN, "number of rows (0 for all)")
	sourcesCmd.Flags().BoolVar(&sourcesMarkdown, "markdown", false, "render as a Markdown table")
}
