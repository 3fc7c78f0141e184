// SPDX-License-Identifier: MIT

// Package report renders estimator reports for people (aligned text tables
// with styled headings) and for machines (YAML).
package report

import (
	"fmt"
	"io"
	"math"
	"strconv"
	"strings"

	"github.com/mattn/go-runewidth"
	"github.com/muesli/termenv"

	"github.com/katalvlaran/ctmcsim/estimator"
	"github.com/katalvlaran/ctmcsim/matrix"
)

// Missing is printed for cells without samples.
const Missing = "-"

// Meta carries run context printed above the tables.
type Meta struct {
	RunID    string
	Labels   []string // optional, one per state
	Replicas int
	StdErr   []float64 // optional replica standard error of the invariant, one per state
	Warnings []error
}

// Writer renders reports to an io.Writer.
type Writer struct {
	out *termenv.Output
}

// NewWriter returns a Writer that styles headings according to the
// terminal capabilities of w. Use NewPlainWriter for files and tests.
func NewWriter(w io.Writer) *Writer {
	return &Writer{out: termenv.NewOutput(w)}
}

// NewPlainWriter returns a Writer that never emits escape sequences.
func NewPlainWriter(w io.Writer) *Writer {
	return &Writer{out: termenv.NewOutput(w, termenv.WithProfile(termenv.Ascii))}
}

// Render writes the summary, the invariant distribution and the three
// pairwise matrices. Unobserved cells are shown as Missing.
func (w *Writer) Render(r *estimator.Report, meta Meta) error {
	labels := stateLabels(r.States, meta.Labels)
	var b strings.Builder

	b.WriteString(w.heading("Summary"))
	if meta.RunID != "" {
		fmt.Fprintf(&b, "run:      %s\n", meta.RunID)
	}
	if meta.Replicas > 1 {
		fmt.Fprintf(&b, "replicas: %d\n", meta.Replicas)
	}
	fmt.Fprintf(&b, "states:   %d\n", r.States)
	fmt.Fprintf(&b, "elapsed:  %s\n", formatValue(r.Elapsed))
	fmt.Fprintf(&b, "jumps:    %d\n", r.Jumps)
	for _, warn := range meta.Warnings {
		fmt.Fprintf(&b, "warning:  %v\n", warn)
	}

	b.WriteString("\n")
	b.WriteString(w.heading("Invariant distribution"))
	width := maxWidth(labels)
	withErr := len(meta.StdErr) == r.States
	for i, p := range r.Invariant {
		fmt.Fprintf(&b, "%s  %s", runewidth.FillRight(labels[i], width), formatValue(p))
		if withErr {
			fmt.Fprintf(&b, "  ± %s", formatValue(meta.StdErr[i]))
		}
		b.WriteString("\n")
	}

	sections := []struct {
		title string
		kind  estimator.Kind
	}{
		{"Direct hitting times", estimator.KindDirect},
		{"Moving hitting times", estimator.KindMoving},
		{"Jump counts", estimator.KindJumps},
	}
	for _, s := range sections {
		b.WriteString("\n")
		b.WriteString(w.heading(s.title))
		if err := writeTable(&b, r.Estimate(s.kind), labels); err != nil {
			return fmt.Errorf("report: %s: %w", s.title, err)
		}
	}

	_, err := io.WriteString(w.out, b.String())
	return err
}

func (w *Writer) heading(title string) string {
	return w.out.String(title).Bold().String() + "\n"
}

// writeTable renders m with row and column headers, right-aligning cells by
// display width so wide labels line up.
func writeTable(b *strings.Builder, m *matrix.Dense, labels []string) error {
	if m == nil {
		return matrix.ErrNilMatrix
	}
	n := m.Rows()
	cells := make([][]string, n)
	colW := make([]int, n)
	for j := 0; j < n; j++ {
		colW[j] = runewidth.StringWidth(labels[j])
	}
	for i := 0; i < n; i++ {
		cells[i] = make([]string, n)
		for j := 0; j < n; j++ {
			v, err := m.At(i, j)
			if err != nil {
				return err
			}
			cells[i][j] = formatValue(v)
			if w := runewidth.StringWidth(cells[i][j]); w > colW[j] {
				colW[j] = w
			}
		}
	}

	rowW := maxWidth(labels)
	b.WriteString(strings.Repeat(" ", rowW))
	for j := 0; j < n; j++ {
		b.WriteString("  ")
		b.WriteString(runewidth.FillLeft(labels[j], colW[j]))
	}
	b.WriteString("\n")
	for i := 0; i < n; i++ {
		b.WriteString(runewidth.FillRight(labels[i], rowW))
		for j := 0; j < n; j++ {
			b.WriteString("  ")
			b.WriteString(runewidth.FillLeft(cells[i][j], colW[j]))
		}
		b.WriteString("\n")
	}

	return nil
}

// formatValue prints finite values with 4 significant digits and anything
// non-finite as Missing.
func formatValue(v float64) string {
	if math.IsNaN(v) || math.IsInf(v, 0) {
		return Missing
	}
	return strconv.FormatFloat(v, 'g', 4, 64)
}

// stateLabels returns labels when it has one entry per state, otherwise the
// state indices.
func stateLabels(n int, labels []string) []string {
	if len(labels) == n {
		return labels
	}
	out := make([]string, n)
	for i := range out {
		out[i] = strconv.Itoa(i)
	}
	return out
}

func maxWidth(ss []string) int {
	w := 0
	for _, s := range ss {
		if sw := runewidth.StringWidth(s); sw > w {
			w = sw
		}
	}
	return w
}
