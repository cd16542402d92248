package merchant

import (
	"bytes"
	"context"
	"image"
	"image/png"
	"strings"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	domain "github.com/BruksfildServices01/salon-booking/internal/domain/booking"
	"github.com/BruksfildServices01/salon-booking/internal/httperr"
	"github.com/BruksfildServices01/salon-booking/internal/infra/memorytest"
	"github.com/BruksfildServices01/salon-booking/internal/infra/storage"
	"github.com/BruksfildServices01/salon-booking/internal/models"
)

var admin = domain.Session{UserID: 1, Role: domain.RoleAdmin}

func newUser(t *testing.T, store *memorytest.Store, email string) domain.Session {
	t.Helper()
	u := &models.User{Name: "Owner", Email: email}
	require.NoError(t, store.CreateUser(context.Background(), u))
	return domain.Session{UserID: u.ID, Role: domain.RoleCustomer}
}

func TestApplyAndReview(t *testing.T) {
	ctx := context.Background()
	store := memorytest.NewStore()
	apply := NewApply(store, zerolog.Nop())
	review := NewReview(store, nil, zerolog.Nop())

	owner := newUser(t, store, "owner@example.com")

	m, err := apply.Execute(ctx, owner, ApplyInput{Name: "Studio Bela", Slug: " Studio-Bela "})
	require.NoError(t, err)
	assert.Equal(t, "studio-bela", m.Slug)
	assert.Equal(t, string(domain.MerchantPending), m.Status)
	assert.Equal(t, "America/Sao_Paulo", m.Timezone)

	u, _ := store.GetUser(ctx, owner.UserID)
	assert.Equal(t, domain.RoleMerchant, u.Role)
	require.NotNil(t, u.MerchantID)
	assert.Equal(t, m.ID, *u.MerchantID)

	other := newUser(t, store, "other@example.com")
	_, err = apply.Execute(ctx, other, ApplyInput{Name: "Copy", Slug: "studio-bela"})
	assert.True(t, httperr.IsBusiness(err, "slug_already_exists"))
	u, _ = store.GetUser(ctx, other.UserID)
	assert.Equal(t, domain.RoleCustomer, u.Role)

	// an unknown owner leaves no merchant behind
	ghost := domain.Session{UserID: 999, Role: domain.RoleCustomer}
	_, err = apply.Execute(ctx, ghost, ApplyInput{Name: "Ghost", Slug: "ghost"})
	assert.True(t, httperr.IsBusiness(err, "user_not_found"))
	_, err = store.GetMerchantBySlug(ctx, "ghost")
	assert.True(t, httperr.IsBusiness(err, "merchant_not_found"))

	_, err = review.Execute(ctx, owner, m.ID, ReviewInput{Approve: true})
	assert.Equal(t, httperr.KindForbidden, httperr.KindOf(err))

	m, err = review.Execute(ctx, admin, m.ID, ReviewInput{Approve: true, Note: "ok"})
	require.NoError(t, err)
	assert.Equal(t, string(domain.MerchantApproved), m.Status)
	assert.NotNil(t, m.ReviewedAt)

	_, err = review.Execute(ctx, admin, m.ID, ReviewInput{Approve: false})
	assert.True(t, httperr.IsBusiness(err, "application_already_reviewed"))
}

func TestApply_Validation(t *testing.T) {
	ctx := context.Background()
	store := memorytest.NewStore()
	apply := NewApply(store, zerolog.Nop())
	owner := newUser(t, store, "owner@example.com")

	_, err := apply.Execute(ctx, owner, ApplyInput{Name: "Studio", Slug: "bad slug"})
	assert.True(t, httperr.IsBusiness(err, "invalid_slug"))

	_, err = apply.Execute(ctx, owner, ApplyInput{Name: "Studio", Slug: "ok", Timezone: "Mars/Base"})
	assert.True(t, httperr.IsBusiness(err, "invalid_timezone"))

	merchantOwner := domain.Session{UserID: owner.UserID, Role: domain.RoleMerchant, MerchantID: 3}
	_, err = apply.Execute(ctx, merchantOwner, ApplyInput{Name: "Studio", Slug: "ok"})
	assert.True(t, httperr.IsBusiness(err, "already_merchant"))
}

func TestCatalogAndDirectory(t *testing.T) {
	ctx := context.Background()
	store := memorytest.NewStore()
	objects := storage.NewMemoryStore()

	m := &models.Merchant{Name: "Studio", Slug: "studio", Status: string(domain.MerchantApproved), CoverImageKey: "merchants/1/cover.webp"}
	require.NoError(t, store.CreateMerchant(ctx, m))
	owner := domain.Session{UserID: 5, Role: domain.RoleMerchant, MerchantID: m.ID}

	catalog := NewCatalog(store, store)
	dir := NewDirectory(store, store, objects, zerolog.Nop())

	w, err := catalog.AddWorker(ctx, owner, WorkerInput{Name: "Ana"})
	require.NoError(t, err)
	assert.True(t, w.IsActive)
	_, err = catalog.AddWorker(ctx, owner, WorkerInput{Name: "Rui"})
	require.NoError(t, err)

	_, err = catalog.SetWorkerActive(ctx, owner, w.ID, false)
	require.NoError(t, err)

	svc, err := catalog.AddService(ctx, owner, ServiceInput{Name: "Haircut", DurationMin: 30, Price: 4500})
	require.NoError(t, err)
	colour, err := catalog.AddService(ctx, owner, ServiceInput{Name: "Colour", DurationMin: 90, Price: 15000})
	require.NoError(t, err)

	off := false
	updated, err := catalog.UpdateService(ctx, owner, colour.ID, ServiceUpdate{
		ServiceInput: ServiceInput{Name: " Colour ", DurationMin: 120, Price: 18000},
		Active:       &off,
	})
	require.NoError(t, err)
	assert.Equal(t, "Colour", updated.Name)
	assert.False(t, updated.Active)

	_, err = catalog.UpdateService(ctx, owner, svc.ID, ServiceUpdate{ServiceInput: ServiceInput{Name: "Haircut"}})
	require.Error(t, err)
	_, err = catalog.UpdateService(ctx, owner, 999, ServiceUpdate{ServiceInput: ServiceInput{Name: "Haircut", DurationMin: 30}})
	assert.True(t, httperr.IsBusiness(err, "service_not_found"))
	_, err = catalog.AddService(ctx, owner, ServiceInput{Name: "X", DurationMin: 30})
	assert.True(t, httperr.IsBusiness(err, "invalid_name"))

	_, err = catalog.AddWorker(ctx, domain.Session{UserID: 9, Role: domain.RoleCustomer}, WorkerInput{Name: "Zed"})
	assert.Equal(t, httperr.KindForbidden, httperr.KindOf(err))

	p, err := dir.BySlug(ctx, "studio")
	require.NoError(t, err)
	assert.Len(t, p.Services, 1)
	require.Len(t, p.Workers, 1)
	assert.Equal(t, "Rui", p.Workers[0].Name)
	assert.Equal(t, "memory://merchants/1/cover.webp", p.CoverURL)

	require.NoError(t, store.CreateMerchant(ctx, &models.Merchant{Name: "Hidden", Slug: "hidden", Status: string(domain.MerchantPending)}))
	_, err = dir.BySlug(ctx, "hidden")
	assert.True(t, httperr.IsBusiness(err, "merchant_not_found"))

	list, err := dir.List(ctx)
	require.NoError(t, err)
	assert.Len(t, list, 1)

	pending, err := dir.ListByStatus(ctx, admin, "pending")
	require.NoError(t, err)
	assert.Len(t, pending, 1)

	_, err = dir.ListByStatus(ctx, admin, "weird")
	assert.True(t, httperr.IsBusiness(err, "invalid_merchant_status"))
}

func TestUploadCover(t *testing.T) {
	ctx := context.Background()
	store := memorytest.NewStore()
	objects := storage.NewMemoryStore()

	m := &models.Merchant{Name: "Studio", Slug: "studio"}
	require.NoError(t, store.CreateMerchant(ctx, m))
	owner := domain.Session{UserID: 5, Role: domain.RoleMerchant, MerchantID: m.ID}

	var buf bytes.Buffer
	require.NoError(t, png.Encode(&buf, image.NewRGBA(image.Rect(0, 0, 40, 20))))

	uc := NewUploadCover(store, objects)
	got, err := uc.Execute(ctx, owner, m.ID, &buf)
	require.NoError(t, err)
	assert.True(t, strings.HasPrefix(got.CoverImageKey, "merchants/"))
	assert.True(t, strings.HasSuffix(got.CoverImageKey, ".webp"))

	obj, ok := objects.Get(got.CoverImageKey)
	require.True(t, ok)
	assert.Equal(t, "image/webp", obj.ContentType)

	_, err = uc.Execute(ctx, owner, m.ID, strings.NewReader("garbage"))
	assert.True(t, httperr.IsBusiness(err, "invalid_image"))

	_, err = uc.Execute(ctx, domain.Session{UserID: 6, Role: domain.RoleMerchant, MerchantID: 99}, m.ID, &buf)
	assert.Equal(t, httperr.KindForbidden, httperr.KindOf(err))
}
