package present

import (
	"fmt"
	"io"
	"strings"

	"github.com/fatih/color"

	"github.com/KaramelBytes/popmap/internal/choropleth"
)

type palette struct {
	ok, warn, bad, dim *color.Color
}

func newPalette(colorize bool) palette {
	p := palette{
		ok:   color.New(color.FgGreen),
		warn: color.New(color.FgYellow),
		bad:  color.New(color.FgRed),
		dim:  color.New(color.Faint),
	}
	for _, c := range []*color.Color{p.ok, p.warn, p.bad, p.dim} {
		if colorize {
			c.EnableColor()
		} else {
			c.DisableColor()
		}
	}
	return p
}

// WriteDiagnostics prints the join report, one section per attribute field.
func WriteDiagnostics(w io.Writer, d choropleth.Diagnostics, colorize bool) {
	p := newPalette(colorize)
	fmt.Fprintf(w, "Features: %d", d.Features)
	if d.Unnamed > 0 {
		p.warn.Fprintf(w, " (%d without a name)", d.Unnamed)
	}
	fmt.Fprintln(w)
	if d.Clean() {
		p.ok.Fprintln(w, "✓ every named feature matched every table")
		return
	}
	for _, f := range d.Fields {
		fmt.Fprintf(w, "\n[%s]\n", strings.ToUpper(f.Field))
		if len(f.Unmatched) == 0 && len(f.Orphans) == 0 && len(f.Duplicates) == 0 {
			p.ok.Fprintln(w, "✓ all matched")
			continue
		}
		if len(f.Unmatched) > 0 {
			p.bad.Fprintf(w, "✗ %d geometry names without a row:\n", len(f.Unmatched))
			for _, u := range f.Unmatched {
				fmt.Fprintf(w, "  - %s", u.Name)
				if len(u.Suggestions) > 0 {
					names := make([]string, len(u.Suggestions))
					for i, s := range u.Suggestions {
						names[i] = fmt.Sprintf("%q (%d)", s.Name, s.Distance)
					}
					p.dim.Fprintf(w, "  did you mean %s?", strings.Join(names, ", "))
				}
				fmt.Fprintln(w)
			}
		}
		if len(f.Orphans) > 0 {
			p.warn.Fprintf(w, "! %d rows without a geometry feature:\n", len(f.Orphans))
			for _, o := range f.Orphans {
				fmt.Fprintf(w, "  - %q\n", o)
			}
		}
		if len(f.Duplicates) > 0 {
			p.warn.Fprintf(w, "! %d duplicate rows ignored: %s\n", len(f.Duplicates), strings.Join(f.Duplicates, ", "))
		}
	}
}
