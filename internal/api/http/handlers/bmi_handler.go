package handlers

import (
	"math"
	"strconv"

	"github.com/gofiber/fiber/v2"

	"github.com/spec-kit/kit-service/internal/api/dto"
	"github.com/spec-kit/kit-service/internal/bmi"
	"github.com/spec-kit/kit-service/internal/service"
	apperrors "github.com/spec-kit/kit-service/pkg/util"
)

// BMIHandler exposes the stateless calculator.
type BMIHandler struct {
	assessments *service.AssessmentService
}

// NewBMIHandler constructs handler.
func NewBMIHandler(assessments *service.AssessmentService) *BMIHandler {
	return &BMIHandler{assessments: assessments}
}

// Calculate GET /api/v1/bmi?mass=&height=.
func (h *BMIHandler) Calculate(c *fiber.Ctx) error {
	mass, err := parseFloatQuery(c, "mass")
	if err != nil {
		return err
	}
	height, err := parseFloatQuery(c, "height")
	if err != nil {
		return err
	}

	res, err := h.assessments.Calculate(mass, height)
	if err != nil {
		return err
	}
	return c.JSON(fiber.Map{"data": dto.BMIResponse{Index: res.Index, Category: string(res.Category)}})
}

// Categories GET /api/v1/bmi/categories.
func (h *BMIHandler) Categories(c *fiber.Ctx) error {
	bands := bmi.Categories()
	resp := make([]dto.CategoryBandResponse, 0, len(bands))
	var lower *float64
	for _, b := range bands {
		band := dto.CategoryBandResponse{Category: string(b.Category), LowerBound: lower}
		if !math.IsInf(b.UpperBound, 1) {
			upper := b.UpperBound
			band.UpperBound = &upper
		}
		resp = append(resp, band)
		lower = band.UpperBound
	}
	return c.JSON(fiber.Map{"data": resp})
}

func parseFloatQuery(c *fiber.Ctx, name string) (float64, error) {
	raw := c.Query(name)
	if raw == "" {
		return 0, apperrors.NewValidationError(name+" required", map[string]any{"field": name})
	}
	v, err := strconv.ParseFloat(raw, 64)
	if err != nil || math.IsNaN(v) || math.IsInf(v, 0) {
		return 0, apperrors.NewValidationError(name+" must be a finite number", map[string]any{"field": name})
	}
	return v, nil
}
