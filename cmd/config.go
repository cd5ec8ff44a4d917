package cmd

import (
	"fmt"
	"strconv"

	"github.com/spf13/cobra"

	"github.com/KaramelBytes/popmap/internal/choropleth"
	cfgpkg "github.com/KaramelBytes/popmap/internal/config"
)

var configCmd = &cobra.Command{
	Use:   "config",
	Short: "View or set popmap configuration",
}

var configShowCmd = &cobra.Command{
	Use:   "show",
	Short: "Show effective configuration",
	RunE: func(cmd *cobra.Command, args []string) error {
		out := cmd.OutOrStdout()
		if cfg == nil {
			fmt.Fprintln(out, "No config loaded")
			return nil
		}
		fmt.Fprintf(out, "population_path: %s\n", cfg.PopulationPath)
		if cfg.AreaPath != "" {
			fmt.Fprintf(out, "area_path: %s\n", cfg.AreaPath)
		} else {
			fmt.Fprintln(out, "area_path: (derived from geometry)")
		}
		fmt.Fprintf(out, "geometry_path: %s\n", cfg.GeometryPath)
		fmt.Fprintf(out, "name_property: %s\n", cfg.NameProperty)
		if cfg.Delimiter != "" {
			fmt.Fprintf(out, "delimiter: %s\n", cfg.Delimiter)
		}
		fmt.Fprintf(out, "default_metric: %s\n", cfg.DefaultMetric)
		fmt.Fprintf(out, "suggest_max_distance: %d\n", cfg.SuggestMaxDistance)
		fmt.Fprintf(out, "log_level: %s\n", cfg.LogLevel)
		fmt.Fprintf(out, "log_format: %s\n", cfg.LogFormat)
		if cfgErr != nil {
			fmt.Fprintf(out, "⚠ %v\n", cfgErr)
		}
		return nil
	},
}

var configSetCmd = &cobra.Command{
	Use:   "set <key> <value>",
	Short: "Set a config value and save to disk",
	Args:  cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		key, val := args[0], args[1]
		// Reload so values given as flags are not persisted.
		c, err := cfgpkg.Load(cfgFile)
		if err != nil {
			return err
		}
		switch key {
		case "population_path":
			c.PopulationPath = val
		case "area_path":
			c.AreaPath = val
		case "geometry_path":
			c.GeometryPath = val
		case "name_property":
			c.NameProperty = val
		case "delimiter":
			if _, err := cfgpkg.ParseDelimiter(val); err != nil {
				return err
			}
			c.Delimiter = val
		case "default_metric":
			m, err := choropleth.ParseMetric(val)
			if err != nil {
				return err
			}
			c.DefaultMetric = string(m)
		case "suggest_max_distance":
			i, err := strconv.Atoi(val)
			if err != nil || i < 0 {
				return fmt.Errorf("invalid int for suggest_max_distance: %v", val)
			}
			c.SuggestMaxDistance = i
		case "log_level":
			c.LogLevel = val
		case "log_format":
			c.LogFormat = val
		default:
			return fmt.Errorf("unknown key: %s", key)
		}
		if err := c.Validate(); err != nil {
			return err
		}
		if err := cfgpkg.Save(c, cfgFile); err != nil {
			return err
		}
		cfg = c
		fmt.Fprintln(cmd.OutOrStdout(), "✓ Saved config")
		return nil
	},
}

func init() {
	rootCmd.AddCommand(configCmd)
	configCmd.AddCommand(configShowCmd)
	configCmd.AddCommand(configSetCmd)
}
