// Package render formats simulation output for the terminal: lipgloss
// styles, tabwriter tables and asciigraph charts.
package render

import (
	"fmt"
	"io"
	"math"
	"strings"
	"text/tabwriter"

	"github.com/charmbracelet/lipgloss"
	"github.com/guptarohit/asciigraph"

	"github.com/ouzlim/vjsim/internal/engine"
	"github.com/ouzlim/vjsim/internal/fit"
	"github.com/ouzlim/vjsim/internal/table"
)

var (
	Title = lipgloss.NewStyle().
		Bold(true).
		Foreground(lipgloss.Color("#00ccff"))

	Label = lipgloss.NewStyle().
		Foreground(lipgloss.Color("#888899"))

	Value = lipgloss.NewStyle().
		Bold(true).
		Foreground(lipgloss.Color("#00ff88"))

	Warn = lipgloss.NewStyle().
		Bold(true).
		Foreground(lipgloss.Color("#ffaa00"))
)

// Summary prints one run's scalar aggregates as a labeled two-column block.
func Summary(w io.Writer, s engine.Summary) {
	fmt.Fprintln(w, Title.Render("jump summary"))
	tw := tabwriter.NewWriter(w, 0, 0, 2, ' ', 0)
	values := s.Values()
	for i, col := range engine.SummaryColumns {
		fmt.Fprintf(tw, "%s\t%s\n", Label.Render(col), formatValue(values[i]))
	}
	tw.Flush()
}

// Table prints any result table with its header, labels included.
func Table(w io.Writer, tbl *table.Table) {
	tw := tabwriter.NewWriter(w, 0, 0, 2, ' ', 0)

	header := tbl.Columns()
	if tbl.Labeled() {
		header = append([]string{""}, header...)
	}
	for i, col := range header {
		if i > 0 {
			fmt.Fprint(tw, "\t")
		}
		fmt.Fprint(tw, Label.Render(col))
	}
	fmt.Fprintln(tw)

	for i := 0; i < tbl.Len(); i++ {
		if tbl.Labeled() {
			fmt.Fprintf(tw, "%s\t", tbl.Label(i))
		}
		for j, v := range tbl.Row(i) {
			if j > 0 {
				fmt.Fprint(tw, "\t")
			}
			fmt.Fprint(tw, formatValue(v))
		}
		fmt.Fprintln(tw)
	}
	tw.Flush()
}

// TraceCharts plots velocity and GRF over the push-off phase.
func TraceCharts(w io.Writer, trace []engine.Step) {
	if len(trace) == 0 {
		fmt.Fprintln(w, Warn.Render("no trace to plot"))
		return
	}
	velocity := make([]float64, len(trace))
	grf := make([]float64, len(trace))
	for i, step := range trace {
		velocity[i] = step.Velocity
		grf[i] = step.GroundReaction
	}
	fmt.Fprintln(w, chart(velocity, "velocity (m/s) over push-off"))
	fmt.Fprintln(w)
	fmt.Fprintln(w, chart(grf, "ground reaction force (N) over push-off"))
}

// FVChart plots the fitted force-velocity line over the observed range.
func FVChart(w io.Writer, res fit.FVResult) {
	if res.Poly == nil || math.IsNaN(res.F0) {
		fmt.Fprintln(w, Warn.Render("profile has no force intercept to plot"))
		return
	}
	const points = 60
	data := make([]float64, points)
	for i := 0; i < points; i++ {
		f := res.F0 * float64(i) / float64(points-1)
		data[i] = res.Poly.Eval(f)
	}
	caption := fmt.Sprintf("fitted FV profile: F0=%.0f N, V0=%.2f m/s", res.F0, res.V0)
	fmt.Fprintln(w, chart(data, caption))
}

func chart(data []float64, caption string) string {
	return asciigraph.Plot(data,
		asciigraph.Height(10),
		asciigraph.Width(72),
		asciigraph.Caption(caption),
	)
}

func formatValue(v float64) string {
	if math.IsNaN(v) {
		return Warn.Render("n/a")
	}
	s := fmt.Sprintf("%.4f", v)
	s = strings.TrimRight(strings.TrimRight(s, "0"), ".")
	if s == "" || s == "-" {
		s = "0"
	}
	return Value.Render(s)
}
