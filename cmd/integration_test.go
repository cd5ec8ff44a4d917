package cmd

import (
	"bytes"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	geojson "github.com/paulmach/go.geojson"
	"github.com/spf13/cobra"
	"github.com/spf13/pflag"

	"github.com/KaramelBytes/popmap/internal/choropleth"
	"github.com/KaramelBytes/popmap/internal/dataset"
)

const worldGeoJSON = `{"type":"FeatureCollection","features":[
 {"type":"Feature","properties":{"NAME":"A"},"geometry":{"type":"Polygon","coordinates":[[[0,0],[1,0],[1,1],[0,1],[0,0]]]}},
 {"type":"Feature","properties":{"NAME":"B"},"geometry":{"type":"Polygon","coordinates":[[[2,0],[3,0],[3,1],[2,1],[2,0]]]}},
 {"type":"Feature","properties":{"NAME":"C"},"geometry":{"type":"MultiPolygon","coordinates":[[[[4,0],[5,0],[5,1],[4,1],[4,0]]]]}}
]}`

// resetFlags clears values and Changed state that stick between Execute calls.
func resetFlags(c *cobra.Command) {
	reset := func(f *pflag.Flag) {
		_ = f.Value.Set(f.DefValue)
		f.Changed = false
	}
	c.Flags().VisitAll(reset)
	c.PersistentFlags().VisitAll(reset)
	for _, sub := range c.Commands() {
		resetFlags(sub)
	}
}

// execCmd runs the root command with args and returns its stdout.
func execCmd(t *testing.T, args ...string) (string, error) {
	t.Helper()
	resetFlags(rootCmd)
	var out bytes.Buffer
	rootCmd.SetOut(&out)
	rootCmd.SetErr(&out)
	rootCmd.SetArgs(args)
	err := rootCmd.Execute()
	return out.String(), err
}

// runCmd is a helper to execute the root command with args.
func runCmd(t *testing.T, args ...string) string {
	t.Helper()
	out, err := execCmd(t, args...)
	if err != nil {
		t.Fatalf("command %v failed: %v", args, err)
	}
	return out
}

// setupData writes the three-country fixture and returns the source flags.
func setupData(t *testing.T) (string, []string) {
	t.Helper()
	home := t.TempDir()
	t.Setenv("HOME", home)
	files := map[string]string{
		"world.geojson":  worldGeoJSON,
		"population.csv": "country,population\nA,100\nC,50\n",
		"area.csv":       "country,area\nA,10\nB,20\n",
	}
	for name, body := range files {
		if err := os.WriteFile(filepath.Join(home, name), []byte(body), 0o644); err != nil {
			t.Fatalf("write %s: %v", name, err)
		}
	}
	return home, []string{
		"--population", filepath.Join(home, "population.csv"),
		"--area", filepath.Join(home, "area.csv"),
		"--geometry", filepath.Join(home, "world.geojson"),
		"--log-level", "error",
	}
}

func TestCLI_MapFiltersByRange(t *testing.T) {
	_, src := setupData(t)
	out := runCmd(t, append([]string{"map", "--min", "1", "--max", "100"}, src...)...)
	fc, err := geojson.UnmarshalFeatureCollection([]byte(out))
	if err != nil {
		t.Fatalf("decode output: %v\n%s", err, out)
	}
	if len(fc.Features) != 2 {
		t.Fatalf("features = %d, want 2", len(fc.Features))
	}
	if fc.Features[0].Properties["name"] != "A" || fc.Features[1].Properties["name"] != "C" {
		t.Fatalf("unexpected features: %v, %v", fc.Features[0].Properties, fc.Features[1].Properties)
	}
	if fc.Features[1].Properties["population_rank"] != 2.0 {
		t.Fatalf("C rank = %v", fc.Features[1].Properties["population_rank"])
	}
}

func TestCLI_MapSearchAndOutputFile(t *testing.T) {
	home, src := setupData(t)
	dest := filepath.Join(home, "out", "map.geojson")
	out := runCmd(t, append([]string{"map", "--search", "B", "--pretty", "-o", dest}, src...)...)
	if !strings.Contains(out, "✓ Wrote 1 of 3 countries") {
		t.Fatalf("unexpected output: %q", out)
	}
	b, err := os.ReadFile(dest)
	if err != nil {
		t.Fatalf("read output: %v", err)
	}
	fc, err := geojson.UnmarshalFeatureCollection(b)
	if err != nil {
		t.Fatalf("decode: %v", err)
	}
	if len(fc.Features) != 1 || fc.Features[0].Properties["population"] != 0.0 {
		t.Fatalf("features = %+v", fc.Features)
	}
	// Search is case-sensitive.
	out = runCmd(t, append([]string{"map", "--search", "b"}, src...)...)
	fc, err = geojson.UnmarshalFeatureCollection([]byte(out))
	if err != nil || len(fc.Features) != 0 {
		t.Fatalf("expected empty collection, got %v (%v)", out, err)
	}
}

func TestCLI_TopMarkdown(t *testing.T) {
	_, src := setupData(t)
	out := runCmd(t, append([]string{"top", "--markdown"}, src...)...)
	want := "| Rank | Country | Population |\n" +
		"| ---: | --- | ---: |\n" +
		"| 1 | A | 100 |\n" +
		"| 2 | C | 50 |\n" +
		"| 3 | B | 0 |\n"
	if out != want {
		t.Fatalf("markdown:\n%s\nwant:\n%s", out, want)
	}
	out = runCmd(t, append([]string{"top", "-m", "population_density"}, src...)...)
	if !strings.Contains(out, "Population Density") || !strings.Contains(out, "10.00") {
		t.Fatalf("density table:\n%s", out)
	}
}

func TestCLI_Sources(t *testing.T) {
	_, src := setupData(t)
	out := runCmd(t, append([]string{"sources", "-n", "1", "--markdown"}, src...)...)
	if !strings.Contains(out, "| 1 | A | 100 |") || strings.Contains(out, "| C |") {
		t.Fatalf("sources:\n%s", out)
	}
}

func TestCLI_Diagnose(t *testing.T) {
	_, src := setupData(t)
	out := runCmd(t, append([]string{"diagnose", "--no-color"}, src...)...)
	for _, s := range []string{"Features: 3", "[POPULATION]", "- B", "[AREA]", "- C"} {
		if !strings.Contains(out, s) {
			t.Errorf("diagnose output missing %q:\n%s", s, out)
		}
	}
	if _, err := execCmd(t, append([]string{"diagnose", "--no-color", "--strict"}, src...)...); err == nil {
		t.Fatalf("expected --strict to fail on unmatched names")
	}
}

func TestCLI_AreasFeedDensity(t *testing.T) {
	home, src := setupData(t)
	dest := filepath.Join(home, "derived.csv")
	runCmd(t, append([]string{"areas", "-o", dest}, src...)...)
	b, err := os.ReadFile(dest)
	if err != nil {
		t.Fatalf("read areas: %v", err)
	}
	lines := strings.Split(strings.TrimSpace(string(b)), "\n")
	if len(lines) != 4 || lines[0] != "country,area" || !strings.HasPrefix(lines[1], "A,123") {
		t.Fatalf("areas:\n%s", b)
	}
	// Later flags win, so the derived table replaces the fixture.
	args := append([]string{"top", "--markdown", "-m", "population_density"}, src...)
	out := runCmd(t, append(args, "--area", dest)...)
	if !strings.Contains(out, "| 1 | A | 0.01 |") {
		t.Fatalf("density from derived areas:\n%s", out)
	}
}

func TestCLI_Errors(t *testing.T) {
	home, src := setupData(t)
	_, err := execCmd(t, append([]string{"top", "-m", "gdp"}, src...)...)
	if !errors.Is(err, choropleth.ErrUnknownMetric) {
		t.Fatalf("expected ErrUnknownMetric, got %v", err)
	}
	args := append([]string{"map"}, src...)
	_, err = execCmd(t, append(args, "--population", filepath.Join(home, "missing.csv"))...)
	var dle *dataset.DataLoadError
	if !errors.As(err, &dle) {
		t.Fatalf("expected DataLoadError, got %v", err)
	}
	_, err = execCmd(t, append(args, "--log-format", "xml")...)
	if err == nil || !strings.Contains(err.Error(), "log_format") {
		t.Fatalf("expected config validation error, got %v", err)
	}
}

func TestCLI_ConfigSetShow(t *testing.T) {
	home, _ := setupData(t)
	cfgPath := filepath.Join(home, "popmap.yaml")
	runCmd(t, "config", "set", "default_metric", "population_density", "--config", cfgPath)
	runCmd(t, "config", "set", "area_path", "", "--config", cfgPath)
	out := runCmd(t, "config", "show", "--config", cfgPath)
	if !strings.Contains(out, "default_metric: population_density") || !strings.Contains(out, "area_path: (derived from geometry)") {
		t.Fatalf("config show:\n%s", out)
	}
	if _, err := execCmd(t, "config", "set", "default_metric", "gdp", "--config", cfgPath); err == nil {
		t.Fatalf("expected invalid metric to be rejected")
	}
	if _, err := execCmd(t, "config", "set", "nope", "1", "--config", cfgPath); err == nil {
		t.Fatalf("expected unknown key error")
	}
}
