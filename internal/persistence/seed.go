package persistence

import (
	"context"
	"fmt"
	"os"

	"go.uber.org/zap"
	"gopkg.in/yaml.v3"

	"github.com/spec-kit/kit-service/internal/domain"
)

type kitSeedFile struct {
	Items []kitSeedItem `yaml:"items"`
}

type kitSeedItem struct {
	Kind        string `yaml:"kind"`
	Title       string `yaml:"title"`
	Description string `yaml:"description"`
	URL         string `yaml:"url"`
	Goal        string `yaml:"goal"`
	Position    int    `yaml:"position"`
	Inactive    bool   `yaml:"inactive"`
}

// KitItemWriter is the subset of the kit repository the seeder needs.
type KitItemWriter interface {
	Create(ctx context.Context, item *domain.KitItem) error
	Count(ctx context.Context) (int, error)
}

// LoadKitSeed parses the YAML seed file into kit items.
func LoadKitSeed(path string) ([]domain.KitItem, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read kit seed: %w", err)
	}
	return ParseKitSeed(raw)
}

// ParseKitSeed decodes seed YAML, rejecting unknown kinds and goals.
func ParseKitSeed(raw []byte) ([]domain.KitItem, error) {
	var file kitSeedFile
	if err := yaml.Unmarshal(raw, &file); err != nil {
		return nil, fmt.Errorf("decode kit seed: %w", err)
	}

	items := make([]domain.KitItem, 0, len(file.Items))
	for i, s := range file.Items {
		kind := domain.KitKind(s.Kind)
		if !kind.Valid() {
			return nil, fmt.Errorf("kit seed item %d: unknown kind %q", i, s.Kind)
		}
		if s.Title == "" {
			return nil, fmt.Errorf("kit seed item %d: title required", i)
		}
		item := domain.KitItem{
			Kind:        kind,
			Title:       s.Title,
			Description: s.Description,
			URL:         s.URL,
			Position:    s.Position,
			Active:      !s.Inactive,
		}
		if s.Goal != "" {
			goal := domain.Goal(s.Goal)
			if !goal.Valid() {
				return nil, fmt.Errorf("kit seed item %d: unknown goal %q", i, s.Goal)
			}
			item.Goal = &goal
		}
		items = append(items, item)
	}
	return items, nil
}

// SeedKitItems inserts items when the catalog is empty.
func SeedKitItems(ctx context.Context, repo KitItemWriter, items []domain.KitItem, logger *zap.Logger) error {
	count, err := repo.Count(ctx)
	if err != nil {
		return fmt.Errorf("count kit items: %w", err)
	}
	if count > 0 {
		logger.Debug("kit catalog already seeded", zap.Int("count", count))
		return nil
	}

	for i := range items {
		if err := repo.Create(ctx, &items[i]); err != nil {
			return fmt.Errorf("seed kit item %q: %w", items[i].Title, err)
		}
	}
	logger.Info("kit catalog seeded", zap.Int("count", len(items)))
	return nil
}
