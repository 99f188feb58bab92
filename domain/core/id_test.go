package core

import (
	"errors"
	"fmt"
	"testing"
)

// TestNewIDUniqueness tests that NewID generates unique identifiers
func TestNewIDUniqueness(t *testing.T) {
	const numIDs = 10000

	ids := make(map[ID]bool, numIDs)
	for i := 0; i < numIDs; i++ {
		id := NewID()
		if id.IsEmpty() {
			t.Errorf("Generated empty ID at iteration %d", i)
		}
		if ids[id] {
			t.Errorf("Generated duplicate ID: %s", id)
		}
		ids[id] = true
	}

	if len(ids) != numIDs {
		t.Errorf("Expected %d unique IDs, got %d", numIDs, len(ids))
	}
}

// TestParseReportID tests report ID parsing
func TestParseReportID(t *testing.T) {
	valid := NewReportID()

	tests := []struct {
		input    string
		expected ReportID
		hasError bool
	}{
		{valid.String(), valid, false},
		{"  " + valid.String() + " ", valid, false},
		{"", "", true},
		{"   ", "", true},
		{"not-a-uuid", "", true},
	}

	for _, test := range tests {
		result, err := ParseReportID(test.input)
		if test.hasError && err == nil {
			t.Errorf("Expected error for input '%s', but got none", test.input)
		}
		if !test.hasError && err != nil {
			t.Errorf("Unexpected error for input '%s': %v", test.input, err)
		}
		if result != test.expected {
			t.Errorf("Expected %s, got %s", test.expected, result)
		}
	}
}

// TestComputeTableHash tests that table fingerprints are order- and value-sensitive
func TestComputeTableHash(t *testing.T) {
	base := ComputeTableHash([]string{"M", "F"}, []float64{10, 5})
	if base.IsEmpty() {
		t.Fatal("Expected non-empty hash")
	}
	if again := ComputeTableHash([]string{"M", "F"}, []float64{10, 5}); again != base {
		t.Errorf("Expected stable hash, got %s and %s", base, again)
	}
	if swapped := ComputeTableHash([]string{"F", "M"}, []float64{5, 10}); swapped == base {
		t.Error("Expected row order to change the hash")
	}
	if changed := ComputeTableHash([]string{"M", "F"}, []float64{10, 5.5}); changed == base {
		t.Error("Expected value change to change the hash")
	}
	if len(base.Short()) != 12 {
		t.Errorf("Expected 12-character short hash, got %q", base.Short())
	}
}

// TestIsPreconditionError tests classification of wrapped engine errors
func TestIsPreconditionError(t *testing.T) {
	tests := []struct {
		err      error
		expected bool
	}{
		{NewEmptyGroupError("F"), true},
		{NewInsufficientGroupsError([]string{"M"}), true},
		{NewInsufficientSampleSizeError("M", 1, 2), true},
		{NewInvalidReplicateCountError(0), true},
		{NewInvalidConfidenceLevelError(1.5), true},
		{NewInvalidRecordError(3, "missing value"), true},
		{ErrReportNotFound, false},
		{errors.New("boom"), false},
	}

	for _, test := range tests {
		if got := IsPreconditionError(test.err); got != test.expected {
			t.Errorf("IsPreconditionError(%v) = %v, want %v", test.err, got, test.expected)
		}
	}

	if !errors.Is(NewEmptyGroupError("F"), ErrEmptyGroup) {
		t.Error("Expected wrapped ErrEmptyGroup")
	}
	if !IsNotFoundError(fmt.Errorf("%w: abc", ErrReportNotFound)) {
		t.Error("Expected not-found classification")
	}
}
