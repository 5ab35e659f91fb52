package service

import (
	"context"
	"errors"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/microcosm-cc/bluemonday"
	"go.uber.org/zap"

	"github.com/spec-kit/kit-service/internal/domain"
	"github.com/spec-kit/kit-service/internal/events"
	"github.com/spec-kit/kit-service/internal/repository"
	apperrors "github.com/spec-kit/kit-service/pkg/util"
)

const maxKitTitleLength = 200

// KitItemInput carries catalog edits from the admin API.
type KitItemInput struct {
	Kind        domain.KitKind
	Title       string
	Description string
	URL         string
	Goal        *domain.Goal
	Position    int
	Active      bool
}

// KitService serves and edits the reward kit catalog.
type KitService struct {
	repo       repository.KitItemRepository
	dispatcher events.Dispatcher
	sanitizer  *bluemonday.Policy
	logger     *zap.Logger
}

// NewKitService builds the service.
func NewKitService(repo repository.KitItemRepository, dispatcher events.Dispatcher, logger *zap.Logger) *KitService {
	return &KitService{
		repo:       repo,
		dispatcher: dispatcher,
		sanitizer:  bluemonday.StrictPolicy(),
		logger:     logger,
	}
}

// KitFor returns the active items for goal: goal-specific items plus those
// shared by every kit, in catalog order. An empty goal gets the whole catalog.
func (s *KitService) KitFor(ctx context.Context, goal domain.Goal) ([]domain.KitItem, error) {
	items, err := s.repo.ListActive(ctx)
	if err != nil {
		return nil, err
	}
	kit := make([]domain.KitItem, 0, len(items))
	for _, item := range items {
		if item.AppliesTo(goal) {
			kit = append(kit, item)
		}
	}
	return kit, nil
}

// List returns the catalog, optionally including inactive items.
func (s *KitService) List(ctx context.Context, includeInactive bool) ([]domain.KitItem, error) {
	if includeInactive {
		return s.repo.ListAll(ctx)
	}
	return s.repo.ListActive(ctx)
}

// Get returns one item.
func (s *KitService) Get(ctx context.Context, id string) (*domain.KitItem, error) {
	item, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, s.mapRepoError(err)
	}
	return item, nil
}

// Create validates and stores a new item.
func (s *KitService) Create(ctx context.Context, input KitItemInput) (*domain.KitItem, error) {
	item := &domain.KitItem{}
	if err := s.apply(item, input); err != nil {
		return nil, err
	}
	if err := s.repo.Create(ctx, item); err != nil {
		return nil, s.mapRepoError(err)
	}
	s.publishChange(ctx, item, "created")
	return item, nil
}

// Update replaces an item's editable fields.
func (s *KitService) Update(ctx context.Context, id string, input KitItemInput) (*domain.KitItem, error) {
	item, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, s.mapRepoError(err)
	}
	if err := s.apply(item, input); err != nil {
		return nil, err
	}
	if err := s.repo.Update(ctx, item); err != nil {
		return nil, s.mapRepoError(err)
	}
	s.publishChange(ctx, item, "updated")
	return item, nil
}

// Delete removes an item.
func (s *KitService) Delete(ctx context.Context, id string) error {
	item, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return s.mapRepoError(err)
	}
	if err := s.repo.Delete(ctx, id); err != nil {
		return s.mapRepoError(err)
	}
	s.publishChange(ctx, item, "deleted")
	return nil
}

func (s *KitService) apply(item *domain.KitItem, input KitItemInput) error {
	title := strings.TrimSpace(s.sanitizer.Sanitize(input.Title))
	description := strings.TrimSpace(s.sanitizer.Sanitize(input.Description))
	link := strings.TrimSpace(input.URL)

	issues := map[string]any{}
	if !input.Kind.Valid() {
		issues["kind"] = "must be one of menu, schedule, workout"
	}
	if title == "" {
		issues["title"] = "required"
	} else if len([]rune(title)) > maxKitTitleLength {
		issues["title"] = "too long"
	}
	if link != "" && !validLink(link) {
		issues["url"] = "must be an absolute http(s) URL"
	}
	if input.Goal != nil && !input.Goal.Valid() {
		issues["goal"] = "must be one of weightLoss, muscleMass, lifeQuality"
	}
	if input.Position < 0 {
		issues["position"] = "must not be negative"
	}
	if len(issues) > 0 {
		return apperrors.NewValidationError("invalid kit item", issues)
	}

	item.Kind = input.Kind
	item.Title = title
	item.Description = description
	item.URL = link
	item.Goal = input.Goal
	item.Position = input.Position
	item.Active = input.Active
	return nil
}

func (s *KitService) mapRepoError(err error) error {
	if errors.Is(err, repository.ErrReadOnly) {
		return apperrors.NewDomainError("CATALOG_READ_ONLY", "kit catalog is served from the seed file and cannot be edited", http.StatusConflict, nil)
	}
	de := apperrors.ToDomainError(err)
	if de.Code == "NOT_FOUND" {
		return apperrors.NewNotFound("kit item", nil)
	}
	return de
}

func (s *KitService) publishChange(ctx context.Context, item *domain.KitItem, action string) {
	if s.dispatcher == nil {
		return
	}
	err := s.dispatcher.Publish(ctx, events.Event{
		ID:        uuid.NewString(),
		Type:      events.EventKitItemChanged,
		SubjectID: item.ID,
		Timestamp: time.Now().UTC(),
		Payload:   events.KitItemChangedPayload{Action: action, Title: item.Title},
	})
	if err != nil {
		s.logger.Warn("kit item listeners failed", zap.String("kit_item_id", item.ID), zap.Error(err))
	}
}

func validLink(raw string) bool {
	u, err := url.Parse(raw)
	if err != nil {
		return false
	}
	return (u.Scheme == "http" || u.Scheme == "https") && u.Host != ""
}
