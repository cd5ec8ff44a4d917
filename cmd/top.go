package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/KaramelBytes/popmap/internal/choropleth"
	"github.com/KaramelBytes/popmap/internal/present"
)

var (
	topMetric   string
	topMarkdown bool
)

var topCmd = &cobra.Command{
	Use:   "top",
	Short: fmt.Sprintf("Show the top %d countries by a metric", choropleth.TopN),
	RunE: func(cmd *cobra.Command, args []string) error {
		metric, err := resolveMetric(topMetric)
		if err != nil {
			return err
		}
		pl, err := newPipeline()
		if err != nil {
			return err
		}
		res, err := pl.Run(commandContext(cmd), choropleth.Query{Metric: metric})
		if err != nil {
			return err
		}
		if topMarkdown {
			fmt.Fprint(cmd.OutOrStdout(), present.Markdown(res.Top, metric))
			return nil
		}
		present.WriteTable(cmd.OutOrStdout(), res.Top, metric)
		return nil
	},
}

func init() {
	rootCmd.AddCommand(topCmd)
	topCmd.Flags().StringVarP(&topMetric, "metric", "m", "", "metric: population|population_density (default from config)")
	topCmd.Flags().BoolVar(&topMarkdown, "markdown", false, "render as a Markdown table")
}
