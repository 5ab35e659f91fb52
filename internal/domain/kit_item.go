package domain

import "time"

// KitKind groups reward kit content.
type KitKind string

const (
	KitKindMenu     KitKind = "menu"
	KitKindSchedule KitKind = "schedule"
	KitKindWorkout  KitKind = "workout"
)

// Valid reports whether the kind is known.
func (k KitKind) Valid() bool {
	switch k {
	case KitKindMenu, KitKindSchedule, KitKindWorkout:
		return true
	}
	return false
}

// KitItem is one piece of the free kit shown after an assessment. A nil Goal
// means the item is part of every kit.
type KitItem struct {
	ID          string
	Kind        KitKind
	Title       string
	Description string
	URL         string
	Goal        *Goal
	Position    int
	Active      bool
	CreatedAt   time.Time
	UpdatedAt   time.Time
}

// AppliesTo reports whether the item belongs in the kit for goal.
func (k KitItem) AppliesTo(goal Goal) bool {
	return k.Goal == nil || goal == "" || *k.Goal == goal
}
