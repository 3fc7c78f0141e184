// SPDX-License-Identifier: MIT

package report

import (
	"fmt"
	"math"

	"gopkg.in/yaml.v3"

	"github.com/katalvlaran/ctmcsim/estimator"
	"github.com/katalvlaran/ctmcsim/matrix"
)

// Document is the YAML export of a report. Unobserved cells are null.
type Document struct {
	RunID         string       `yaml:"run_id,omitempty"`
	Replicas      int          `yaml:"replicas,omitempty"`
	States        int          `yaml:"states"`
	Labels        []string     `yaml:"labels,omitempty"`
	Elapsed       float64      `yaml:"elapsed"`
	Jumps         int64        `yaml:"jumps"`
	Warnings      []string     `yaml:"warnings,omitempty"`
	Invariant     []*float64   `yaml:"invariant"`
	StdErr        []*float64   `yaml:"invariant_stderr,omitempty"`
	DirectHitting [][]*float64 `yaml:"direct_hitting"`
	MovingHitting [][]*float64 `yaml:"moving_hitting"`
	JumpCounts    [][]*float64 `yaml:"jump_counts"`
}

// NewDocument converts r into its export form.
func NewDocument(r *estimator.Report, meta Meta) (*Document, error) {
	doc := &Document{
		RunID:     meta.RunID,
		Replicas:  meta.Replicas,
		States:    r.States,
		Labels:    meta.Labels,
		Elapsed:   r.Elapsed,
		Jumps:     r.Jumps,
		Invariant: make([]*float64, len(r.Invariant)),
	}
	for _, w := range meta.Warnings {
		doc.Warnings = append(doc.Warnings, w.Error())
	}
	for i, v := range r.Invariant {
		doc.Invariant[i] = finite(v)
	}
	for _, v := range meta.StdErr {
		doc.StdErr = append(doc.StdErr, finite(v))
	}
	var err error
	if doc.DirectHitting, err = rows(r.DirectHitting); err != nil {
		return nil, fmt.Errorf("report: direct: %w", err)
	}
	if doc.MovingHitting, err = rows(r.MovingHitting); err != nil {
		return nil, fmt.Errorf("report: moving: %w", err)
	}
	if doc.JumpCounts, err = rows(r.JumpCounts); err != nil {
		return nil, fmt.Errorf("report: jumps: %w", err)
	}

	return doc, nil
}

// MarshalYAML renders r as a YAML document.
func MarshalYAML(r *estimator.Report, meta Meta) ([]byte, error) {
	doc, err := NewDocument(r, meta)
	if err != nil {
		return nil, err
	}
	return yaml.Marshal(doc)
}

func rows(m *matrix.Dense) ([][]*float64, error) {
	if m == nil {
		return nil, matrix.ErrNilMatrix
	}
	out := make([][]*float64, m.Rows())
	for i := range out {
		row, err := m.Row(i)
		if err != nil {
			return nil, err
		}
		out[i] = make([]*float64, len(row))
		for j, v := range row {
			out[i][j] = finite(v)
		}
	}
	return out, nil
}

func finite(v float64) *float64 {
	if math.IsNaN(v) || math.IsInf(v, 0) {
		return nil
	}
	return &v
}
