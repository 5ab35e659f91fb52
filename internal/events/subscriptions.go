package events

import (
	"context"
	"fmt"
)

// AssessmentCompletedHandler receives assessment_completed events with their payload decoded.
type AssessmentCompletedHandler func(ctx context.Context, event Event, payload AssessmentCompletedPayload) error

// KitItemChangedHandler receives kit_item_changed events with their payload decoded.
type KitItemChangedHandler func(ctx context.Context, event Event, payload KitItemChangedPayload) error

// OnAssessmentCompleted subscribes fn to assessment_completed events.
// Events carrying any other payload type are reported as errors.
func OnAssessmentCompleted(d Dispatcher, fn AssessmentCompletedHandler) {
	d.Subscribe(EventAssessmentCompleted, func(ctx context.Context, event Event) error {
		payload, ok := event.Payload.(AssessmentCompletedPayload)
		if !ok {
			return fmt.Errorf("%s: unexpected payload %T", event.Type, event.Payload)
		}
		return fn(ctx, event, payload)
	})
}

// OnKitItemChanged subscribes fn to kit_item_changed events.
func OnKitItemChanged(d Dispatcher, fn KitItemChangedHandler) {
	d.Subscribe(EventKitItemChanged, func(ctx context.Context, event Event) error {
		payload, ok := event.Payload.(KitItemChangedPayload)
		if !ok {
			return fmt.Errorf("%s: unexpected payload %T", event.Type, event.Payload)
		}
		return fn(ctx, event, payload)
	})
}
