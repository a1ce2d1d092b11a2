// Package shared contains common domain types, errors and value objects
// that are used across all domain packages.
package shared

import "strconv"

// ═══════════════════════════════════════════════════════════════════════════
// Grade Value Object
// ═══════════════════════════════════════════════════════════════════════════

// Grade represents a school grade on the 2-5 scale.
type Grade int

const (
	MinGrade Grade = 2
	MaxGrade Grade = 5
)

// IsValid checks if the grade is within valid range.
func (g Grade) IsValid() bool {
	return g >= MinGrade && g <= MaxGrade
}

// Int returns the underlying int value.
func (g Grade) Int() int {
	return int(g)
}

// String returns the string representation.
func (g Grade) String() string {
	return strconv.Itoa(int(g))
}

// NewGrade creates a new Grade with validation.
func NewGrade(value int) (Grade, error) {
	g := Grade(value)
	if !g.IsValid() {
		return 0, ErrGradeOutOfRange
	}
	return g, nil
}

// AverageGrade calculates the arithmetic mean of grades.
// An empty slice yields 0, which is a sentinel and not a real average.
func AverageGrade(grades []Grade) float64 {
	if len(grades) == 0 {
		return 0
	}
	sum := 0
	for _, g := range grades {
		sum += int(g)
	}
	return float64(sum) / float64(len(grades))
}

// ═══════════════════════════════════════════════════════════════════════════
// TestResult Value Object
// ═══════════════════════════════════════════════════════════════════════════

// TestResult represents a test score in percent points.
type TestResult int

const (
	MinTestResult TestResult = 0
	MaxTestResult TestResult = 100
)

// IsValid checks if the test result is within valid range.
func (t TestResult) IsValid() bool {
	return t >= MinTestResult && t <= MaxTestResult
}

// Int returns the underlying int value.
func (t TestResult) Int() int {
	return int(t)
}

// NewTestResult creates a new TestResult with validation.
func NewTestResult(value int) (TestResult, error) {
	t := TestResult(value)
	if !t.IsValid() {
		return 0, ErrTestResultOutOfRange
	}
	return t, nil
}

// AverageTestResult calculates the arithmetic mean of test results, 0 if empty.
func AverageTestResult(results []TestResult) float64 {
	if len(results) == 0 {
		return 0
	}
	sum := 0
	for _, r := range results {
		sum += int(r)
	}
	return float64(sum) / float64(len(results))
}
