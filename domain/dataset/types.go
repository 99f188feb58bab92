package dataset

import (
	"math"
	"strings"

	"homerange/domain/core"
)

// GroupLabel is the categorical column of a home-range table (e.g. sex)
type GroupLabel string

// Labels used by the spider monkey home-range table
const (
	Male   GroupLabel = "M"
	Female GroupLabel = "F"
)

func (g GroupLabel) String() string { return string(g) }

// Record is one row: a group label and a home-range measurement (kernel95)
type Record struct {
	Group GroupLabel `json:"group"`
	Value float64    `json:"value"`
}

// Dataset is an ordered, immutable table of records. Accessors hand out
// copies so callers can never mutate the rows the engine resamples from.
type Dataset struct {
	records []Record
	groups  []GroupLabel
	hash    core.Hash
}

// New validates and copies records into a Dataset. Labels are trimmed;
// empty labels and non-finite values are rejected.
func New(records []Record) (*Dataset, error) {
	rows := make([]Record, len(records))
	labels := make([]string, len(records))
	values := make([]float64, len(records))
	seen := make(map[GroupLabel]bool)
	var groups []GroupLabel

	for i, r := range records {
		label := GroupLabel(strings.TrimSpace(string(r.Group)))
		if label == "" {
			return nil, core.NewInvalidRecordError(i, "empty group label")
		}
		if math.IsNaN(r.Value) || math.IsInf(r.Value, 0) {
			return nil, core.NewInvalidRecordError(i, "value is not a finite number")
		}
		rows[i] = Record{Group: label, Value: r.Value}
		labels[i] = string(label)
		values[i] = r.Value
		if !seen[label] {
			seen[label] = true
			groups = append(groups, label)
		}
	}

	return &Dataset{
		records: rows,
		groups:  groups,
		hash:    core.ComputeTableHash(labels, values),
	}, nil
}

// Len returns the number of records
func (d *Dataset) Len() int {
	return len(d.records)
}

// Records returns a copy of all rows in their original order
func (d *Dataset) Records() []Record {
	out := make([]Record, len(d.records))
	copy(out, d.records)
	return out
}

// Labels returns a copy of the label column in row order
func (d *Dataset) Labels() []GroupLabel {
	out := make([]GroupLabel, len(d.records))
	for i, r := range d.records {
		out[i] = r.Group
	}
	return out
}

// Column returns a copy of the value column in row order
func (d *Dataset) Column() []float64 {
	out := make([]float64, len(d.records))
	for i, r := range d.records {
		out[i] = r.Value
	}
	return out
}

// Groups returns the distinct labels in order of first appearance
func (d *Dataset) Groups() []GroupLabel {
	out := make([]GroupLabel, len(d.groups))
	copy(out, d.groups)
	return out
}

// HasGroup reports whether any record carries label
func (d *Dataset) HasGroup(label GroupLabel) bool {
	for _, g := range d.groups {
		if g == label {
			return true
		}
	}
	return false
}

// Values returns the measurements for one group, in row order
func (d *Dataset) Values(label GroupLabel) []float64 {
	var out []float64
	for _, r := range d.records {
		if r.Group == label {
			out = append(out, r.Value)
		}
	}
	return out
}

// Count returns the number of records carrying label
func (d *Dataset) Count(label GroupLabel) int {
	n := 0
	for _, r := range d.records {
		if r.Group == label {
			n++
		}
	}
	return n
}

// Hash fingerprints the table contents and row order
func (d *Dataset) Hash() core.Hash {
	return d.hash
}
