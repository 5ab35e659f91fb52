package handlers

import (
	"encoding/json"
	"net/http"
	"time"

	"github.com/gofiber/fiber/v2"

	"github.com/spec-kit/kit-service/internal/api/dto"
	"github.com/spec-kit/kit-service/internal/domain"
	"github.com/spec-kit/kit-service/internal/service"
	"github.com/spec-kit/kit-service/internal/validation"
	apperrors "github.com/spec-kit/kit-service/pkg/util"
)

const birthDateLayout = "2006-01-02"

// AssessmentsHandler accepts lead form submissions.
type AssessmentsHandler struct {
	validator *validation.AssessmentValidator
	service   *service.AssessmentService
}

// NewAssessmentsHandler constructs handler.
func NewAssessmentsHandler(validator *validation.AssessmentValidator, assessments *service.AssessmentService) *AssessmentsHandler {
	return &AssessmentsHandler{validator: validator, service: assessments}
}

// Submit POST /api/v1/assessments.
func (h *AssessmentsHandler) Submit(c *fiber.Ctx) error {
	body := c.Body()
	if err := h.validator.Validate(body); err != nil {
		return err
	}

	var req dto.AssessmentRequest
	if err := json.Unmarshal(body, &req); err != nil {
		return apperrors.NewValidationError("invalid payload", nil)
	}

	birthDate, err := time.Parse(birthDateLayout, req.BirthDate)
	if err != nil {
		return apperrors.NewValidationError("invalid birth date", map[string]any{"field": "birth_date", "reason": "expected YYYY-MM-DD"})
	}

	healthCondition := domain.HealthCondition(req.HealthCondition)
	if healthCondition == "" {
		healthCondition = domain.HealthConditionNone
	}

	assessment, err := h.service.Submit(c.UserContext(), domain.Submission{
		FullName:              req.FullName,
		BirthDate:             birthDate,
		Gender:                domain.Gender(req.Gender),
		Email:                 req.Email,
		Phone:                 req.Phone,
		WeightKg:              req.Weight,
		HeightCm:              req.Height,
		HealthCondition:       healthCondition,
		HasAllergies:          req.HasAllergies,
		AllergiesDescription:  req.AllergiesDescription,
		UsesMedication:        req.UsesMedication,
		MedicationDescription: req.MedicationDescription,
		Diet:                  domain.Diet(req.Diet),
		Exercising:            req.Exercising,
		Goal:                  domain.Goal(req.Goal),
		Expectations:          req.Expectations,
	})
	if err != nil {
		return err
	}

	return c.Status(http.StatusCreated).JSON(fiber.Map{"data": assessmentResponse(assessment)})
}

func assessmentResponse(a *domain.Assessment) dto.AssessmentResponse {
	return dto.AssessmentResponse{
		ID:          a.ID,
		Index:       a.Result.Index,
		Category:    string(a.Result.Category),
		Goal:        string(a.Goal),
		Kit:         kitItemResponses(a.Kit),
		CompletedAt: a.CompletedAt,
	}
}
