package domain

import (
	"time"

	"github.com/spec-kit/kit-service/internal/bmi"
)

// Gender as collected by the lead form.
type Gender string

const (
	GenderMale   Gender = "male"
	GenderFemale Gender = "female"
)

// HealthCondition flags conditions the kit content should account for.
type HealthCondition string

const (
	HealthConditionNone      HealthCondition = "none"
	HealthConditionDiabetes  HealthCondition = "diabetes"
	HealthConditionMenopause HealthCondition = "menopause"
)

// Diet describes the visitor's current eating habits.
type Diet string

const (
	DietRegular       Diet = "regular"
	DietIrregular     Diet = "irregular"
	DietWantToImprove Diet = "wantToImprove"
)

// Goal is the visitor's main objective for the kit.
type Goal string

const (
	GoalWeightLoss  Goal = "weightLoss"
	GoalMuscleMass  Goal = "muscleMass"
	GoalLifeQuality Goal = "lifeQuality"
)

// Valid reports whether the goal is one of the known objectives.
func (g Goal) Valid() bool {
	switch g {
	case GoalWeightLoss, GoalMuscleMass, GoalLifeQuality:
		return true
	}
	return false
}

// Submission is a single lead form submission. It lives only for the
// duration of the request.
type Submission struct {
	FullName              string
	BirthDate             time.Time
	Gender                Gender
	Email                 string
	Phone                 string
	WeightKg              float64
	HeightCm              float64
	HealthCondition       HealthCondition
	HasAllergies          bool
	AllergiesDescription  string
	UsesMedication        bool
	MedicationDescription string
	Diet                  Diet
	Exercising            bool
	Goal                  Goal
	Expectations          string
}

// Assessment is the result screen for one submission.
type Assessment struct {
	ID          string
	Result      bmi.Result
	Goal        Goal
	Kit         []KitItem
	CompletedAt time.Time
}
