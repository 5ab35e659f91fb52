package dto

import "time"

// AssessmentRequest is the lead form payload.
type AssessmentRequest struct {
	FullName              string  `json:"full_name"`
	BirthDate             string  `json:"birth_date"`
	Gender                string  `json:"gender"`
	Email                 string  `json:"email"`
	Phone                 string  `json:"phone"`
	Weight                float64 `json:"weight"`
	Height                float64 `json:"height"`
	HealthCondition       string  `json:"health_condition"`
	HasAllergies          bool    `json:"has_allergies"`
	AllergiesDescription  string  `json:"allergies_description"`
	UsesMedication        bool    `json:"uses_medication"`
	MedicationDescription string  `json:"medication_description"`
	Diet                  string  `json:"diet"`
	Exercising            bool    `json:"exercising"`
	Goal                  string  `json:"goal"`
	Expectations          string  `json:"expectations"`
}

// AssessmentResponse is the result screen.
type AssessmentResponse struct {
	ID          string            `json:"id"`
	Index       float64           `json:"index"`
	Category    string            `json:"category"`
	Goal        string            `json:"goal,omitempty"`
	Kit         []KitItemResponse `json:"kit"`
	CompletedAt time.Time         `json:"completed_at"`
}

// BMIResponse is the stateless calculator output.
type BMIResponse struct {
	Index    float64 `json:"index"`
	Category string  `json:"category"`
}

// CategoryBandResponse describes one band as [lower_bound, upper_bound).
// Open ends are null.
type CategoryBandResponse struct {
	Category   string   `json:"category"`
	LowerBound *float64 `json:"lower_bound"`
	UpperBound *float64 `json:"upper_bound"`
}
