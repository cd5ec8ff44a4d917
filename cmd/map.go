package cmd

import (
	"bytes"
	"fmt"
	"math"
	"os"

	"github.com/spf13/cobra"

	"github.com/KaramelBytes/popmap/internal/choropleth"
	"github.com/KaramelBytes/popmap/internal/present"
	"github.com/KaramelBytes/popmap/internal/utils"
)

var (
	mapMetric string
	mapMin    float64
	mapMax    float64
	mapSearch string
	mapOut    string
	mapPretty bool
)

var mapCmd = &cobra.Command{
	Use:   "map",
	Short: "Emit the filtered choropleth layer as GeoJSON",
	Long: `Runs the full pipeline and writes the countries matching the metric range and
search text as a GeoJSON FeatureCollection. Without --min/--max the full data
range of the metric is used.`,
	Example: `  popmap map --metric population_density --min 100 --max 500
  popmap map --search Rep -o out/map.geojson`,
	RunE: func(cmd *cobra.Command, args []string) error {
		metric, err := resolveMetric(mapMetric)
		if err != nil {
			return err
		}
		pl, err := newPipeline()
		if err != nil {
			return err
		}
		q := choropleth.Query{Metric: metric, Search: mapSearch}
		f := cmd.Flags()
		if f.Changed("min") || f.Changed("max") {
			rng := choropleth.Range{Min: math.Inf(-1), Max: math.Inf(1)}
			if f.Changed("min") {
				rng.Min = mapMin
			}
			if f.Changed("max") {
				rng.Max = mapMax
			}
			q.Range = &rng
		}
		res, err := pl.Run(commandContext(cmd), q)
		if err != nil {
			return err
		}

		var data []byte
		if mapPretty {
			fc, err := present.FeatureCollection(res.Filtered)
			if err != nil {
				return err
			}
			if data, err = utils.PrettyJSON(fc); err != nil {
				return err
			}
			data = append(data, '\n')
		} else {
			var buf bytes.Buffer
			if err := present.WriteGeoJSON(&buf, res.Filtered); err != nil {
				return err
			}
			data = buf.Bytes()
		}
		if err := utils.WriteOutput(cmd.OutOrStdout(), mapOut, data); err != nil {
			return err
		}
		if mapOut != "" && mapOut != "-" {
			fmt.Fprintf(cmd.OutOrStdout(), "✓ Wrote %d of %d countries to %s\n", len(res.Filtered), len(res.Records), mapOut)
		} else {
			fmt.Fprintf(os.Stderr, "%d of %d countries (%s in [%g, %g])\n", len(res.Filtered), len(res.Records), metric, res.Range.Min, res.Range.Max)
		}
		return nil
	},
}

func init() {
	rootCmd.AddCommand(mapCmd)
	mapCmd.Flags().StringVarP(&mapMetric, "metric", "m", "", "metric: population|population_density (default from config)")
	mapCmd.Flags().Float64Var(&mapMin, "min", 0, "lower bound of the metric range (inclusive)")
	mapCmd.Flags().Float64Var(&mapMax, "max", 0, "upper bound of the metric range (inclusive)")
	mapCmd.Flags().StringVarP(&mapSearch, "search", "s", "", "case-sensitive substring of the country name")
	mapCmd.Flags().StringVarP(&mapOut, "output", "o", "", "write GeoJSON to this file instead of stdout")
	mapCmd.Flags().BoolVar(&mapPretty, "pretty", false, "indent the GeoJSON output")
}
