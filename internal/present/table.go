package present

import (
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/olekukonko/tablewriter"

	"github.com/KaramelBytes/popmap/internal/choropleth"
)

// FormatValue renders a metric value: populations as grouped integers,
// densities with two decimals.
func FormatValue(m choropleth.Metric, v float64) string {
	if m == choropleth.MetricPopulation {
		return groupDigits(int64(v))
	}
	return strconv.FormatFloat(v, 'f', 2, 64)
}

func groupDigits(n int64) string {
	s := strconv.FormatInt(n, 10)
	neg := strings.HasPrefix(s, "-")
	if neg {
		s = s[1:]
	}
	var b strings.Builder
	for i, r := range s {
		if i > 0 && (len(s)-i)%3 == 0 {
			b.WriteByte(',')
		}
		b.WriteRune(r)
	}
	if neg {
		return "-" + b.String()
	}
	return b.String()
}

func countryName(s string) string {
	if s == "" {
		return "(unnamed)"
	}
	return s
}

// WriteTable renders rank rows as an aligned terminal table.
func WriteTable(w io.Writer, rows []choropleth.RankRow, m choropleth.Metric) {
	t := tablewriter.NewWriter(w)
	t.SetHeader([]string{"Rank", "Country", m.Label()})
	t.SetAutoFormatHeaders(false)
	t.SetColumnAlignment([]int{tablewriter.ALIGN_RIGHT, tablewriter.ALIGN_LEFT, tablewriter.ALIGN_RIGHT})
	for _, r := range rows {
		t.Append([]string{strconv.Itoa(r.Rank), countryName(r.Country), FormatValue(m, r.Value)})
	}
	t.Render()
}

// Markdown renders rank rows as a GitHub-flavoured Markdown table.
func Markdown(rows []choropleth.RankRow, m choropleth.Metric) string {
	var b strings.Builder
	b.WriteString(fmt.Sprintf("| Rank | Country | %s |\n", m.Label()))
	b.WriteString("| ---: | --- | ---: |\n")
	for _, r := range rows {
		b.WriteString(fmt.Sprintf("| %d | %s | %s |\n", r.Rank, safeVal(countryName(r.Country)), FormatValue(m, r.Value)))
	}
	return b.String()
}

func safeVal(s string) string { return strings.ReplaceAll(strings.ReplaceAll(s, "\n", " "), "|", "/") }
