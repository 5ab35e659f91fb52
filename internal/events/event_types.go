package events

import (
	"time"

	"github.com/spec-kit/kit-service/internal/bmi"
	"github.com/spec-kit/kit-service/internal/domain"
)

// EventType enumerates supported event identifiers.
type EventType string

const (
	EventAssessmentCompleted EventType = "assessment_completed"
	EventKitItemChanged      EventType = "kit_item_changed"
)

// Valid reports whether t is one of the published event types.
func (t EventType) Valid() bool {
	switch t {
	case EventAssessmentCompleted, EventKitItemChanged:
		return true
	}
	return false
}

// Event represents a domain event emitted by services.
type Event struct {
	ID        string      `json:"id"`
	Type      EventType   `json:"type"`
	SubjectID string      `json:"subject_id"`
	Timestamp time.Time   `json:"timestamp"`
	Payload   interface{} `json:"payload"`
}

// AssessmentCompletedPayload carries no contact data.
type AssessmentCompletedPayload struct {
	Index           float64                `json:"index"`
	Category        bmi.Category           `json:"category"`
	Goal            domain.Goal            `json:"goal,omitempty"`
	Gender          domain.Gender          `json:"gender"`
	HealthCondition domain.HealthCondition `json:"health_condition,omitempty"`
	KitItems        int                    `json:"kit_items"`
}

// KitItemChangedPayload describes a catalog write.
type KitItemChangedPayload struct {
	Action string `json:"action"`
	Title  string `json:"title"`
}
