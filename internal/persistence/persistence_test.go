package persistence

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/spec-kit/kit-service/internal/domain"
)

func TestParseKitSeed(t *testing.T) {
	raw := []byte(`
items:
  - kind: menu
    title: Cardápio
    position: 1
  - kind: workout
    title: Força
    goal: muscleMass
    inactive: true
`)
	items, err := ParseKitSeed(raw)
	require.NoError(t, err)
	require.Len(t, items, 2)

	assert.Equal(t, domain.KitKindMenu, items[0].Kind)
	assert.Nil(t, items[0].Goal)
	assert.True(t, items[0].Active)

	require.NotNil(t, items[1].Goal)
	assert.Equal(t, domain.GoalMuscleMass, *items[1].Goal)
	assert.False(t, items[1].Active)
}

func TestParseKitSeed_Invalid(t *testing.T) {
	for name, raw := range map[string]string{
		"unknown kind":  "items:\n  - kind: ebook\n    title: X\n",
		"unknown goal":  "items:\n  - kind: menu\n    title: X\n    goal: bulk\n",
		"missing title": "items:\n  - kind: menu\n",
		"bad yaml":      "items: [",
	} {
		t.Run(name, func(t *testing.T) {
			_, err := ParseKitSeed([]byte(raw))
			assert.Error(t, err)
		})
	}
}

func TestLoadKitSeed_ShippedFile(t *testing.T) {
	items, err := LoadKitSeed("../../seeds/kit_items.yaml")
	require.NoError(t, err)
	assert.NotEmpty(t, items)

	kinds := map[domain.KitKind]bool{}
	for _, item := range items {
		kinds[item.Kind] = true
	}
	assert.True(t, kinds[domain.KitKindMenu])
	assert.True(t, kinds[domain.KitKindSchedule])
	assert.True(t, kinds[domain.KitKindWorkout])
}

func TestMigrationFiles(t *testing.T) {
	files, err := MigrationFiles("../../migrations")
	require.NoError(t, err)
	assert.Contains(t, files, "001_kit_items.sql")

	_, err = MigrationFiles("does-not-exist")
	assert.Error(t, err)
}

type fakeWriter struct {
	existing int
	countErr error
	created  []string
}

func (f *fakeWriter) Count(context.Context) (int, error) { return f.existing, f.countErr }

func (f *fakeWriter) Create(_ context.Context, item *domain.KitItem) error {
	f.created = append(f.created, item.Title)
	return nil
}

func TestSeedKitItems(t *testing.T) {
	ctx := context.Background()
	items := []domain.KitItem{{Kind: domain.KitKindMenu, Title: "A"}, {Kind: domain.KitKindMenu, Title: "B"}}

	empty := &fakeWriter{}
	require.NoError(t, SeedKitItems(ctx, empty, items, zap.NewNop()))
	assert.Equal(t, []string{"A", "B"}, empty.created)

	seeded := &fakeWriter{existing: 4}
	require.NoError(t, SeedKitItems(ctx, seeded, items, zap.NewNop()))
	assert.Empty(t, seeded.created)

	broken := &fakeWriter{countErr: errors.New("down")}
	assert.Error(t, SeedKitItems(ctx, broken, items, zap.NewNop()))
}

func TestRunMigrations_NoPool(t *testing.T) {
	assert.NoError(t, RunMigrations(context.Background(), nil, "../../migrations", zap.NewNop()))
}

func TestPostgres_Unconfigured(t *testing.T) {
	var p *Postgres
	assert.False(t, p.Configured())
	assert.Error(t, p.Ping(context.Background()))
	assert.Nil(t, p.PoolHandle())
	p.Close()
}
