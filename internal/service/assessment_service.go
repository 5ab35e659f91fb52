package service

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/spec-kit/kit-service/internal/bmi"
	"github.com/spec-kit/kit-service/internal/domain"
	"github.com/spec-kit/kit-service/internal/events"
	apperrors "github.com/spec-kit/kit-service/pkg/util"
)

// KitProvider selects the reward kit for a goal.
type KitProvider interface {
	KitFor(ctx context.Context, goal domain.Goal) ([]domain.KitItem, error)
}

// AssessmentDependencies encapsulates collaborators of the assessment service.
type AssessmentDependencies struct {
	Limits     bmi.Limits
	Kits       KitProvider
	Dispatcher events.Dispatcher
	Logger     *zap.Logger
	Now        func() time.Time
}

// AssessmentService turns a lead form submission into a BMI result and kit.
type AssessmentService struct {
	limits     bmi.Limits
	kits       KitProvider
	dispatcher events.Dispatcher
	logger     *zap.Logger
	now        func() time.Time
}

// NewAssessmentService builds the service.
func NewAssessmentService(deps AssessmentDependencies) *AssessmentService {
	now := deps.Now
	if now == nil {
		now = time.Now
	}
	logger := deps.Logger
	if logger == nil {
		logger = zap.NewNop()
	}
	return &AssessmentService{
		limits:     deps.Limits,
		kits:       deps.Kits,
		dispatcher: deps.Dispatcher,
		logger:     logger,
		now:        now,
	}
}

// Calculate runs the calculator and classifier on raw measurements without
// the form's range limits.
func (s *AssessmentService) Calculate(massKg, heightCm float64) (bmi.Result, error) {
	res, err := bmi.Assess(massKg, heightCm)
	if err != nil {
		return bmi.Result{}, measurementError(err)
	}
	return res, nil
}

// Submit assesses one submission. The submission is not stored; only an
// anonymous assessment_completed event leaves this call.
func (s *AssessmentService) Submit(ctx context.Context, sub domain.Submission) (*domain.Assessment, error) {
	if err := s.limits.Check(sub.WeightKg, sub.HeightCm); err != nil {
		return nil, measurementError(err)
	}
	now := s.now().UTC()
	if sub.BirthDate.IsZero() || sub.BirthDate.After(now) {
		return nil, apperrors.NewValidationError("invalid birth date", map[string]any{"field": "birth_date", "reason": "must be a past date"})
	}

	result, err := bmi.Assess(sub.WeightKg, sub.HeightCm)
	if err != nil {
		return nil, measurementError(err)
	}

	assessment := &domain.Assessment{
		ID:          uuid.NewString(),
		Result:      result,
		Goal:        sub.Goal,
		CompletedAt: now,
	}

	if s.kits != nil {
		kit, err := s.kits.KitFor(ctx, sub.Goal)
		if err != nil {
			s.logger.Warn("kit catalog unavailable; returning result without kit",
				zap.String("assessment_id", assessment.ID), zap.Error(err))
		} else {
			assessment.Kit = kit
		}
	}

	s.publishCompleted(ctx, sub, assessment)
	return assessment, nil
}

func (s *AssessmentService) publishCompleted(ctx context.Context, sub domain.Submission, a *domain.Assessment) {
	if s.dispatcher == nil {
		return
	}
	err := s.dispatcher.Publish(ctx, events.Event{
		ID:        uuid.NewString(),
		Type:      events.EventAssessmentCompleted,
		SubjectID: a.ID,
		Timestamp: a.CompletedAt,
		Payload: events.AssessmentCompletedPayload{
			Index:           a.Result.Index,
			Category:        a.Result.Category,
			Goal:            sub.Goal,
			Gender:          sub.Gender,
			HealthCondition: sub.HealthCondition,
			KitItems:        len(a.Kit),
		},
	})
	if err != nil {
		s.logger.Warn("assessment listeners failed", zap.String("assessment_id", a.ID), zap.Error(err))
	}
}

func measurementError(err error) error {
	var vErr *bmi.ValidationError
	if errors.As(err, &vErr) {
		return apperrors.WrapValidationError("invalid measurements", map[string]any{
			"field":  vErr.Field,
			"reason": vErr.Reason,
		}, err)
	}
	return apperrors.NewInternalError(err)
}
