package cmd

import (
	"context"
	"fmt"
	"log/slog"
	"os"

	"github.com/spf13/cobra"

	"github.com/KaramelBytes/popmap/internal/choropleth"
	cfgpkg "github.com/KaramelBytes/popmap/internal/config"
	"github.com/KaramelBytes/popmap/internal/dataset"
	"github.com/KaramelBytes/popmap/internal/logging"
)

var (
	// Global flags (override config if set)
	cfgFile          string
	debug            bool
	flagPopulation   string
	flagArea         string
	flagGeometry     string
	flagNameProperty string
	flagLogLevel     string
	flagLogFormat    string

	// Loaded configuration
	cfg    *cfgpkg.Global
	cfgErr error

	logger *slog.Logger
	loader *dataset.Loader
)

var rootCmd = &cobra.Command{
	Use:   "popmap",
	Short: "popmap: prepare country population data for choropleth maps",
	Long: `popmap joins population and area tables onto Natural Earth country outlines,
derives population density and ranks, and emits the filtered map layer (GeoJSON)
and top-30 rank tables for a map front end.`,
}

// Execute is the entry point called by main.main()
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, "✗ Error:", err)
		os.Exit(1)
	}
}

func init() {
	// Initialize configuration before executing commands
	cobra.OnInitialize(loadConfig)

	f := rootCmd.PersistentFlags()
	f.StringVar(&cfgFile, "config", "", "config file (default is ~/.popmap/config.yaml)")
	f.BoolVar(&debug, "debug", false, "enable debug logging")
	f.StringVar(&flagPopulation, "population", "", "population table (country,population)")
	f.StringVar(&flagArea, "area", "", "area table (country,area); empty derives areas from the geometry")
	f.StringVar(&flagGeometry, "geometry", "", "country geometry (GeoJSON FeatureCollection)")
	f.StringVar(&flagNameProperty, "name-property", "", "GeoJSON property holding the country name")
	f.StringVar(&flagLogLevel, "log-level", "", "log level: debug|info|warn|error")
	f.StringVar(&flagLogFormat, "log-format", "", "log format: text|json")
}

func loadConfig() {
	cfg, cfgErr = nil, nil
	c, err := cfgpkg.Load(cfgFile)
	if err != nil {
		// Non-fatal: commands that need config report it themselves
		fmt.Fprintf(os.Stderr, "⚠ Warning: failed to load config: %v\n", err)
		cfgErr = err
		logger = logging.New(logging.Config{})
		return
	}
	cfg = c

	// Apply CLI overrides if provided
	f := rootCmd.PersistentFlags()
	if f.Changed("population") {
		cfg.PopulationPath = flagPopulation
	}
	if f.Changed("area") {
		cfg.AreaPath = flagArea
	}
	if f.Changed("geometry") {
		cfg.GeometryPath = flagGeometry
	}
	if f.Changed("name-property") {
		cfg.NameProperty = flagNameProperty
	}
	if f.Changed("log-level") {
		cfg.LogLevel = flagLogLevel
	}
	if f.Changed("log-format") {
		cfg.LogFormat = flagLogFormat
	}
	if debug {
		cfg.LogLevel = "debug"
	}

	logger = logging.New(logging.Config{Level: cfg.LogLevel, Format: cfg.LogFormat, AddSource: debug})
	if err := cfg.Validate(); err != nil {
		cfgErr = fmt.Errorf("invalid configuration: %w", err)
		return
	}
	delim, _ := cfgpkg.ParseDelimiter(cfg.Delimiter)
	loader = dataset.NewLoader(dataset.Options{Delimiter: delim, NameProperty: cfg.NameProperty}, logger)
}

// newPipeline builds a pipeline over the configured sources.
func newPipeline() (*choropleth.Pipeline, error) {
	if cfgErr != nil {
		return nil, cfgErr
	}
	src := choropleth.Sources{
		Population: cfg.PopulationPath,
		Area:       cfg.AreaPath,
		Geometry:   cfg.GeometryPath,
	}
	return choropleth.New(loader, src,
		choropleth.WithLogger(logger),
		choropleth.WithSuggestDistance(cfg.SuggestMaxDistance),
	), nil
}

// resolveMetric picks the --metric flag value, falling back to default_metric.
func resolveMetric(flag string) (choropleth.Metric, error) {
	if flag == "" && cfg != nil {
		flag = cfg.DefaultMetric
	}
	return choropleth.ParseMetric(flag)
}

func commandContext(cmd *cobra.Command) context.Context {
	if ctx := cmd.Context(); ctx != nil {
		return ctx
	}
	return context.Background()
}
