// Package bmi computes the body-mass index from mass and height and classifies
// the rounded value into one of six ordered bands.
package bmi

import (
	"errors"
	"fmt"
	"math"

	"github.com/shopspring/decimal"
)

// ErrInvalidMeasurement is matched by every ValidationError.
var ErrInvalidMeasurement = errors.New("invalid measurement")

// ValidationError reports a mass or height the calculator refuses to use.
type ValidationError struct {
	Field  string
	Value  float64
	Reason string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("%s %v: %s", e.Field, e.Value, e.Reason)
}

// Is lets callers match any ValidationError with errors.Is(err, ErrInvalidMeasurement).
func (e *ValidationError) Is(target error) bool {
	return target == ErrInvalidMeasurement
}

// Result is the outcome of a single assessment.
type Result struct {
	Index    float64  `json:"index"`
	Category Category `json:"category"`
}

// ComputeIndex returns massKg / (heightCm/100)^2 rounded to one decimal place
// with RoundIndex. Both inputs must be positive and finite.
func ComputeIndex(massKg, heightCm float64) (float64, error) {
	if err := checkPositive("mass", massKg); err != nil {
		return 0, err
	}
	if err := checkPositive("height", heightCm); err != nil {
		return 0, err
	}

	heightM := heightCm / 100
	ratio := massKg / (heightM * heightM)
	if math.IsInf(ratio, 0) || math.IsNaN(ratio) {
		return 0, &ValidationError{Field: "height", Value: heightCm, Reason: "too small to compute an index"}
	}
	return RoundIndex(ratio), nil
}

// RoundIndex rounds x to one decimal place, ties away from zero. The value is
// first taken at its shortest decimal representation, so 24.85 becomes 24.9
// and 24.25 becomes 24.3. NaN and infinities are returned unchanged.
func RoundIndex(x float64) float64 {
	if math.IsNaN(x) || math.IsInf(x, 0) {
		return x
	}
	return decimal.NewFromFloat(x).Round(1).InexactFloat64()
}

// Assess computes the index and classifies that same rounded value.
func Assess(massKg, heightCm float64) (Result, error) {
	index, err := ComputeIndex(massKg, heightCm)
	if err != nil {
		return Result{}, err
	}
	return Result{Index: index, Category: Classify(index)}, nil
}

func checkPositive(field string, v float64) error {
	switch {
	case math.IsNaN(v):
		return &ValidationError{Field: field, Value: v, Reason: "not a number"}
	case math.IsInf(v, 0):
		return &ValidationError{Field: field, Value: v, Reason: "must be finite"}
	case v <= 0:
		return &ValidationError{Field: field, Value: v, Reason: "must be positive"}
	}
	return nil
}
