package bmi

import "math"

// Category is one of six ordered BMI bands.
type Category string

const (
	CategoryUnderweight   Category = "Underweight"
	CategoryNormal        Category = "Normal weight"
	CategoryOverweight    Category = "Overweight"
	CategoryObesityClass1 Category = "Obesity class 1"
	CategoryObesityClass2 Category = "Obesity class 2"
	CategoryObesityClass3 Category = "Obesity class 3"
)

// Band pairs a category with its exclusive upper bound.
type Band struct {
	Category   Category `json:"category"`
	UpperBound float64  `json:"upper_bound"`
}

// bands are checked in order; each bound is exclusive, so 24.9 is Overweight.
var bands = []Band{
	{Category: CategoryUnderweight, UpperBound: 18.5},
	{Category: CategoryNormal, UpperBound: 24.9},
	{Category: CategoryOverweight, UpperBound: 29.9},
	{Category: CategoryObesityClass1, UpperBound: 34.9},
	{Category: CategoryObesityClass2, UpperBound: 39.9},
}

// Classify maps an index to its band. The first band whose upper bound is
// strictly greater than index wins; anything left, NaN included, is
// Obesity class 3.
func Classify(index float64) Category {
	for _, b := range bands {
		if index < b.UpperBound {
			return b.Category
		}
	}
	return CategoryObesityClass3
}

// Categories returns the bands in ascending order. The last band has an
// upper bound of +Inf.
func Categories() []Band {
	out := make([]Band, 0, len(bands)+1)
	out = append(out, bands...)
	return append(out, Band{Category: CategoryObesityClass3, UpperBound: math.Inf(1)})
}

// Valid reports whether c is one of the six labels.
func (c Category) Valid() bool {
	switch c {
	case CategoryUnderweight, CategoryNormal, CategoryOverweight,
		CategoryObesityClass1, CategoryObesityClass2, CategoryObesityClass3:
		return true
	}
	return false
}
