package service

import (
	"context"
	"errors"
	"sort"
	"strconv"
	"sync"
	"testing"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"

	"github.com/spec-kit/kit-service/internal/auth"
	"github.com/spec-kit/kit-service/internal/bmi"
	"github.com/spec-kit/kit-service/internal/config"
	"github.com/spec-kit/kit-service/internal/domain"
	"github.com/spec-kit/kit-service/internal/events"
	"github.com/spec-kit/kit-service/internal/repository"
	apperrors "github.com/spec-kit/kit-service/pkg/util"
)

// ==========================
// Test helpers
// ==========================

type memKitRepo struct {
	mu    sync.Mutex
	items map[string]domain.KitItem
	seq   int
}

func newMemKitRepo(items ...domain.KitItem) *memKitRepo {
	r := &memKitRepo{items: map[string]domain.KitItem{}}
	for i := range items {
		_ = r.Create(context.Background(), &items[i])
	}
	return r
}

func (r *memKitRepo) Create(_ context.Context, item *domain.KitItem) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.seq++
	item.ID = "item-" + strconv.Itoa(r.seq)
	item.CreatedAt = time.Now()
	item.UpdatedAt = item.CreatedAt
	r.items[item.ID] = *item
	return nil
}

func (r *memKitRepo) Update(_ context.Context, item *domain.KitItem) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.items[item.ID]; !ok {
		return pgx.ErrNoRows
	}
	item.UpdatedAt = time.Now()
	r.items[item.ID] = *item
	return nil
}

func (r *memKitRepo) Delete(_ context.Context, id string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.items[id]; !ok {
		return pgx.ErrNoRows
	}
	delete(r.items, id)
	return nil
}

func (r *memKitRepo) GetByID(_ context.Context, id string) (*domain.KitItem, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	item, ok := r.items[id]
	if !ok {
		return nil, pgx.ErrNoRows
	}
	return &item, nil
}

func (r *memKitRepo) ListActive(ctx context.Context) ([]domain.KitItem, error) {
	all, _ := r.ListAll(ctx)
	out := all[:0]
	for _, item := range all {
		if item.Active {
			out = append(out, item)
		}
	}
	return out, nil
}

func (r *memKitRepo) ListAll(context.Context) ([]domain.KitItem, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := make([]domain.KitItem, 0, len(r.items))
	for _, item := range r.items {
		out = append(out, item)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Position < out[j].Position })
	return out, nil
}

func (r *memKitRepo) Count(context.Context) (int, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	return len(r.items), nil
}

type failingKits struct{}

func (failingKits) KitFor(context.Context, domain.Goal) ([]domain.KitItem, error) {
	return nil, errors.New("catalog down")
}

type capturingDispatcher struct {
	events []events.Event
}

func (d *capturingDispatcher) Publish(_ context.Context, e events.Event) error {
	d.events = append(d.events, e)
	return nil
}

func (d *capturingDispatcher) Subscribe(events.EventType, events.EventHandler) {}

func goalPtr(g domain.Goal) *domain.Goal { return &g }

func catalog() []domain.KitItem {
	return []domain.KitItem{
		{Kind: domain.KitKindMenu, Title: "Cardápio", Position: 10, Active: true},
		{Kind: domain.KitKindSchedule, Title: "Jejum", Goal: goalPtr(domain.GoalWeightLoss), Position: 20, Active: true},
		{Kind: domain.KitKindWorkout, Title: "Força", Goal: goalPtr(domain.GoalMuscleMass), Position: 30, Active: true},
		{Kind: domain.KitKindWorkout, Title: "Antigo", Position: 40, Active: false},
	}
}

func titles(items []domain.KitItem) []string {
	out := make([]string, 0, len(items))
	for _, i := range items {
		out = append(out, i.Title)
	}
	return out
}

var fixedNow = time.Date(2026, 10, 19, 12, 0, 0, 0, time.UTC)

func submission() domain.Submission {
	return domain.Submission{
		FullName:  "Maria Silva",
		BirthDate: time.Date(1988, 4, 12, 0, 0, 0, 0, time.UTC),
		Gender:    domain.GenderFemale,
		Email:     "maria@example.com",
		Phone:     "+55 11 99999-0000",
		WeightKg:  75.5,
		HeightCm:  175,
		Goal:      domain.GoalWeightLoss,
	}
}

func newAssessmentService(kits KitProvider, d events.Dispatcher) *AssessmentService {
	return NewAssessmentService(AssessmentDependencies{
		Limits:     bmi.DefaultLimits(),
		Kits:       kits,
		Dispatcher: d,
		Logger:     zap.NewNop(),
		Now:        func() time.Time { return fixedNow },
	})
}

// ==========================
// AssessmentService
// ==========================

func TestAssessmentService_Submit(t *testing.T) {
	kits := NewKitService(newMemKitRepo(catalog()...), nil, zap.NewNop())
	dispatcher := &capturingDispatcher{}
	svc := newAssessmentService(kits, dispatcher)

	a, err := svc.Submit(context.Background(), submission())
	require.NoError(t, err)

	assert.NotEmpty(t, a.ID)
	assert.Equal(t, bmi.Result{Index: 24.7, Category: bmi.CategoryNormal}, a.Result)
	assert.Equal(t, fixedNow, a.CompletedAt)
	assert.Equal(t, []string{"Cardápio", "Jejum"}, titles(a.Kit))

	require.Len(t, dispatcher.events, 1)
	ev := dispatcher.events[0]
	assert.Equal(t, events.EventAssessmentCompleted, ev.Type)
	assert.Equal(t, a.ID, ev.SubjectID)
	payload, ok := ev.Payload.(events.AssessmentCompletedPayload)
	require.True(t, ok)
	assert.Equal(t, 24.7, payload.Index)
	assert.Equal(t, bmi.CategoryNormal, payload.Category)
	assert.Equal(t, 2, payload.KitItems)
}

func TestAssessmentService_SubmitObesity(t *testing.T) {
	svc := newAssessmentService(nil, nil)
	sub := submission()
	sub.WeightKg, sub.HeightCm = 90, 160

	a, err := svc.Submit(context.Background(), sub)
	require.NoError(t, err)
	assert.Equal(t, 35.2, a.Result.Index)
	assert.Equal(t, bmi.CategoryObesityClass2, a.Result.Category)
	assert.Empty(t, a.Kit)
}

func TestAssessmentService_SubmitValidation(t *testing.T) {
	svc := newAssessmentService(nil, nil)

	tests := []struct {
		name   string
		mutate func(s *domain.Submission)
		field  string
	}{
		{name: "light", mutate: func(s *domain.Submission) { s.WeightKg = 20 }, field: "mass"},
		{name: "tall", mutate: func(s *domain.Submission) { s.HeightCm = 260 }, field: "height"},
		{name: "zero height", mutate: func(s *domain.Submission) { s.HeightCm = 0 }, field: "height"},
		{name: "future birth date", mutate: func(s *domain.Submission) { s.BirthDate = fixedNow.AddDate(0, 0, 1) }, field: "birth_date"},
		{name: "missing birth date", mutate: func(s *domain.Submission) { s.BirthDate = time.Time{} }, field: "birth_date"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			sub := submission()
			tt.mutate(&sub)

			_, err := svc.Submit(context.Background(), sub)
			de := apperrors.ToDomainError(err)
			require.NotNil(t, de)
			assert.Equal(t, "VALIDATION_FAILED", de.Code)
			assert.Equal(t, tt.field, de.Details["field"])
		})
	}
}

func TestAssessmentService_SubmitWithoutCatalog(t *testing.T) {
	svc := newAssessmentService(failingKits{}, nil)

	a, err := svc.Submit(context.Background(), submission())
	require.NoError(t, err)
	assert.Empty(t, a.Kit)
	assert.Equal(t, bmi.CategoryNormal, a.Result.Category)
}

func TestAssessmentService_Calculate(t *testing.T) {
	svc := newAssessmentService(nil, nil)

	res, err := svc.Calculate(90, 160)
	require.NoError(t, err)
	assert.Equal(t, bmi.Result{Index: 35.2, Category: bmi.CategoryObesityClass2}, res)

	// the calculator does not apply the form's ranges
	res, err = svc.Calculate(20, 90)
	require.NoError(t, err)
	assert.Equal(t, 24.7, res.Index)

	_, err = svc.Calculate(70, 0)
	assert.ErrorIs(t, err, bmi.ErrInvalidMeasurement)
	assert.Equal(t, "VALIDATION_FAILED", apperrors.ToDomainError(err).Code)
}

// ==========================
// KitService
// ==========================

func TestKitService_KitFor(t *testing.T) {
	svc := NewKitService(newMemKitRepo(catalog()...), nil, zap.NewNop())
	ctx := context.Background()

	kit, err := svc.KitFor(ctx, domain.GoalMuscleMass)
	require.NoError(t, err)
	assert.Equal(t, []string{"Cardápio", "Força"}, titles(kit))

	kit, err = svc.KitFor(ctx, domain.GoalLifeQuality)
	require.NoError(t, err)
	assert.Equal(t, []string{"Cardápio"}, titles(kit))

	kit, err = svc.KitFor(ctx, "")
	require.NoError(t, err)
	assert.Equal(t, []string{"Cardápio", "Jejum", "Força"}, titles(kit))
}

func TestKitService_CRUD(t *testing.T) {
	ctx := context.Background()
	dispatcher := &capturingDispatcher{}
	svc := NewKitService(newMemKitRepo(), dispatcher, zap.NewNop())

	created, err := svc.Create(ctx, KitItemInput{
		Kind:        domain.KitKindMenu,
		Title:       "  <b>Receitas</b> rápidas ",
		Description: "<script>alert(1)</script>Vinte receitas",
		URL:         "https://kit.example.com/receitas",
		Goal:        goalPtr(domain.GoalWeightLoss),
		Position:    5,
		Active:      true,
	})
	require.NoError(t, err)
	assert.Equal(t, "Receitas rápidas", created.Title)
	assert.Equal(t, "Vinte receitas", created.Description)

	updated, err := svc.Update(ctx, created.ID, KitItemInput{Kind: domain.KitKindWorkout, Title: "Treinos", Active: false})
	require.NoError(t, err)
	assert.Equal(t, domain.KitKindWorkout, updated.Kind)
	assert.Nil(t, updated.Goal)

	active, err := svc.List(ctx, false)
	require.NoError(t, err)
	assert.Empty(t, active)
	all, err := svc.List(ctx, true)
	require.NoError(t, err)
	assert.Len(t, all, 1)

	require.NoError(t, svc.Delete(ctx, created.ID))
	_, err = svc.Get(ctx, created.ID)
	assert.Equal(t, "NOT_FOUND", apperrors.ToDomainError(err).Code)

	require.Len(t, dispatcher.events, 3)
	for i, action := range []string{"created", "updated", "deleted"} {
		payload := dispatcher.events[i].Payload.(events.KitItemChangedPayload)
		assert.Equal(t, action, payload.Action)
	}
}

func TestKitService_Validation(t *testing.T) {
	svc := NewKitService(newMemKitRepo(), nil, zap.NewNop())
	bad := domain.Goal("bulk")

	_, err := svc.Create(context.Background(), KitItemInput{
		Kind:     "ebook",
		Title:    "<p></p>",
		URL:      "javascript:alert(1)",
		Goal:     &bad,
		Position: -1,
	})
	de := apperrors.ToDomainError(err)
	require.Equal(t, "VALIDATION_FAILED", de.Code)
	for _, field := range []string{"kind", "title", "url", "goal", "position"} {
		assert.Contains(t, de.Details, field)
	}
}

func TestKitService_ReadOnlyCatalog(t *testing.T) {
	svc := NewKitService(repository.NewStaticKitItemRepository(catalog()), nil, zap.NewNop())

	_, err := svc.Create(context.Background(), KitItemInput{Kind: domain.KitKindMenu, Title: "Novo", Active: true})
	de := apperrors.ToDomainError(err)
	assert.Equal(t, "CATALOG_READ_ONLY", de.Code)
	assert.Equal(t, 409, de.HTTPStatus)

	_, err = svc.Update(context.Background(), "missing", KitItemInput{Kind: domain.KitKindMenu, Title: "x"})
	assert.Equal(t, "NOT_FOUND", apperrors.ToDomainError(err).Code)
}

// ==========================
// AdminAuthService
// ==========================

func TestAdminAuthService_Login(t *testing.T) {
	hash, err := auth.HashPassword("s3cret", bcrypt.MinCost)
	require.NoError(t, err)

	svc := NewAdminAuthService(config.AuthConfig{
		JWTSecret:             "secret",
		AccessTokenTTLMinutes: 10,
		AdminEmail:            "Ops@Example.com",
		AdminPasswordHash:     hash,
	})
	require.True(t, svc.Enabled())

	token, exp, err := svc.Login(context.Background(), " ops@example.com ", "s3cret")
	require.NoError(t, err)
	assert.True(t, exp.After(time.Now()))

	claims, err := svc.TokenManager().ParseToken(token)
	require.NoError(t, err)
	assert.Equal(t, auth.SubjectTypeAdmin, claims.Subject)

	_, _, err = svc.Login(context.Background(), "ops@example.com", "wrong")
	assert.Equal(t, "UNAUTHORIZED", apperrors.ToDomainError(err).Code)

	_, _, err = svc.Login(context.Background(), "someone@example.com", "s3cret")
	assert.Equal(t, "UNAUTHORIZED", apperrors.ToDomainError(err).Code)
}

func TestAdminAuthService_Disabled(t *testing.T) {
	svc := NewAdminAuthService(config.AuthConfig{JWTSecret: "secret"})
	assert.False(t, svc.Enabled())

	_, _, err := svc.Login(context.Background(), "ops@example.com", "x")
	assert.Equal(t, "SERVICE_UNAVAILABLE", apperrors.ToDomainError(err).Code)

	plaintext := NewAdminAuthService(config.AuthConfig{JWTSecret: "secret", AdminEmail: "ops@example.com", AdminPasswordHash: "s3cret"})
	assert.False(t, plaintext.Enabled())
}
