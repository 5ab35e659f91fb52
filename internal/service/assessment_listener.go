package service

import (
	"context"

	"go.uber.org/zap"

	"github.com/spec-kit/kit-service/internal/events"
)

// AssessmentRecorder counts completed assessments.
type AssessmentRecorder interface {
	RecordAssessment(category, goal string)
}

// AssessmentListener reacts to assessment and catalog events.
type AssessmentListener struct {
	dispatcher events.Dispatcher
	recorder   AssessmentRecorder
	logger     *zap.Logger
}

// NewAssessmentListener creates the listener.
func NewAssessmentListener(dispatcher events.Dispatcher, recorder AssessmentRecorder, logger *zap.Logger) *AssessmentListener {
	return &AssessmentListener{
		dispatcher: dispatcher,
		recorder:   recorder,
		logger:     logger,
	}
}

// RegisterHandlers subscribes to events.
func (l *AssessmentListener) RegisterHandlers() {
	if l.dispatcher == nil {
		return
	}
	events.OnAssessmentCompleted(l.dispatcher, l.handleAssessmentCompleted)
	events.OnKitItemChanged(l.dispatcher, l.handleKitItemChanged)
}

func (l *AssessmentListener) handleAssessmentCompleted(_ context.Context, event events.Event, payload events.AssessmentCompletedPayload) error {
	if l.recorder != nil {
		l.recorder.RecordAssessment(string(payload.Category), string(payload.Goal))
	}
	l.logger.Info("AssessmentCompleted",
		zap.String("assessment_id", event.SubjectID),
		zap.Float64("index", payload.Index),
		zap.String("category", string(payload.Category)),
		zap.String("goal", string(payload.Goal)),
		zap.String("gender", string(payload.Gender)),
		zap.Int("kit_items", payload.KitItems))
	return nil
}

func (l *AssessmentListener) handleKitItemChanged(_ context.Context, event events.Event, payload events.KitItemChangedPayload) error {
	l.logger.Info("KitItemChanged",
		zap.String("kit_item_id", event.SubjectID),
		zap.String("action", payload.Action),
		zap.String("title", payload.Title))
	return nil
}
