package handlers

import (
	"net/http"

	"github.com/gofiber/fiber/v2"

	"github.com/spec-kit/kit-service/internal/api/dto"
	"github.com/spec-kit/kit-service/internal/domain"
	"github.com/spec-kit/kit-service/internal/service"
	apperrors "github.com/spec-kit/kit-service/pkg/util"
)

// KitHandler serves the reward kit catalog.
type KitHandler struct {
	kits *service.KitService
}

// NewKitHandler constructs handler.
func NewKitHandler(kits *service.KitService) *KitHandler {
	return &KitHandler{kits: kits}
}

// Preview GET /api/v1/kit?goal=.
func (h *KitHandler) Preview(c *fiber.Ctx) error {
	goal := domain.Goal(c.Query("goal"))
	if goal != "" && !goal.Valid() {
		return apperrors.NewValidationError("unknown goal", map[string]any{"field": "goal"})
	}
	items, err := h.kits.KitFor(c.UserContext(), goal)
	if err != nil {
		return err
	}
	return c.JSON(fiber.Map{"data": kitItemResponses(items)})
}

// List GET /admin/kit-items.
func (h *KitHandler) List(c *fiber.Ctx) error {
	items, err := h.kits.List(c.UserContext(), c.QueryBool("include_inactive", true))
	if err != nil {
		return err
	}
	return c.JSON(fiber.Map{"data": kitItemResponses(items)})
}

// Get GET /admin/kit-items/:id.
func (h *KitHandler) Get(c *fiber.Ctx) error {
	item, err := h.kits.Get(c.UserContext(), c.Params("id"))
	if err != nil {
		return err
	}
	return c.JSON(fiber.Map{"data": kitItemResponse(*item)})
}

// Create POST /admin/kit-items.
func (h *KitHandler) Create(c *fiber.Ctx) error {
	input, err := parseKitItemRequest(c)
	if err != nil {
		return err
	}
	item, err := h.kits.Create(c.UserContext(), input)
	if err != nil {
		return err
	}
	return c.Status(http.StatusCreated).JSON(fiber.Map{"data": kitItemResponse(*item)})
}

// Update PUT /admin/kit-items/:id.
func (h *KitHandler) Update(c *fiber.Ctx) error {
	input, err := parseKitItemRequest(c)
	if err != nil {
		return err
	}
	item, err := h.kits.Update(c.UserContext(), c.Params("id"), input)
	if err != nil {
		return err
	}
	return c.JSON(fiber.Map{"data": kitItemResponse(*item)})
}

// Delete DELETE /admin/kit-items/:id.
func (h *KitHandler) Delete(c *fiber.Ctx) error {
	if err := h.kits.Delete(c.UserContext(), c.Params("id")); err != nil {
		return err
	}
	return c.SendStatus(http.StatusNoContent)
}

func parseKitItemRequest(c *fiber.Ctx) (service.KitItemInput, error) {
	var req dto.KitItemRequest
	if err := c.BodyParser(&req); err != nil {
		return service.KitItemInput{}, apperrors.NewValidationError("invalid payload", nil)
	}
	input := service.KitItemInput{
		Kind:        domain.KitKind(req.Kind),
		Title:       req.Title,
		Description: req.Description,
		URL:         req.URL,
		Position:    req.Position,
		Active:      true,
	}
	if req.Active != nil {
		input.Active = *req.Active
	}
	if req.Goal != nil && *req.Goal != "" {
		goal := domain.Goal(*req.Goal)
		input.Goal = &goal
	}
	return input, nil
}

func kitItemResponses(items []domain.KitItem) []dto.KitItemResponse {
	resp := make([]dto.KitItemResponse, 0, len(items))
	for _, item := range items {
		resp = append(resp, kitItemResponse(item))
	}
	return resp
}

func kitItemResponse(item domain.KitItem) dto.KitItemResponse {
	resp := dto.KitItemResponse{
		ID:          item.ID,
		Kind:        string(item.Kind),
		Title:       item.Title,
		Description: item.Description,
		URL:         item.URL,
		Position:    item.Position,
		Active:      item.Active,
		CreatedAt:   item.CreatedAt,
		UpdatedAt:   item.UpdatedAt,
	}
	if item.Goal != nil {
		goal := string(*item.Goal)
		resp.Goal = &goal
	}
	return resp
}
