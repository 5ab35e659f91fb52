package bmi

// Limits bounds the measurements the lead form accepts.
type Limits struct {
	MinMassKg   float64
	MaxMassKg   float64
	MinHeightCm float64
	MaxHeightCm float64
}

// DefaultLimits mirrors the form ranges: 30-300 kg and 100-250 cm.
func DefaultLimits() Limits {
	return Limits{MinMassKg: 30, MaxMassKg: 300, MinHeightCm: 100, MaxHeightCm: 250}
}

// Check rejects non-positive or non-finite values first, then anything
// outside the inclusive ranges.
func (l Limits) Check(massKg, heightCm float64) error {
	if err := checkPositive("mass", massKg); err != nil {
		return err
	}
	if err := checkPositive("height", heightCm); err != nil {
		return err
	}
	if massKg < l.MinMassKg || massKg > l.MaxMassKg {
		return &ValidationError{Field: "mass", Value: massKg, Reason: "outside accepted range"}
	}
	if heightCm < l.MinHeightCm || heightCm > l.MaxHeightCm {
		return &ValidationError{Field: "height", Value: heightCm, Reason: "outside accepted range"}
	}
	return nil
}
