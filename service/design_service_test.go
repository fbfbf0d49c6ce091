package service

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"ui-design-gallery/models"
)

func TestDesignService_CreateAllocatesUniqueSlug(t *testing.T) {
	repo := newFakeDesignRepo(
		models.Design{ID: 1, Title: "Pricing Page", Slug: "pricing-page", Status: models.DesignStatusPublished},
		models.Design{ID: 2, Title: "Pricing Page", Slug: "pricing-page-2", Status: models.DesignStatusDraft},
	)
	svc := NewDesignService(repo)

	design, err := svc.Create(context.Background(), models.DesignCreateRequest{
		Title:    "  Pricing Page ",
		Category: "Plans",
		Code:     pricingCode,
	})
	require.NoError(t, err)
	assert.Equal(t, "pricing-page-3", design.Slug)
	assert.Equal(t, "Pricing Page", design.Title)
	assert.Equal(t, "pricing", design.Category)
	assert.Equal(t, models.DesignStatusDraft, design.Status)
}

func TestDesignService_CreateValidates(t *testing.T) {
	svc := NewDesignService(newFakeDesignRepo())

	_, err := svc.Create(context.Background(), models.DesignCreateRequest{Title: "  "})
	assert.ErrorIs(t, err, ErrInvalidInput)

	_, err = svc.Create(context.Background(), models.DesignCreateRequest{Title: "Hero", Status: "live"})
	assert.ErrorIs(t, err, ErrInvalidInput)
}

func TestDesignService_GetBySlugFallsBackToTitleAndID(t *testing.T) {
	repo := newFakeDesignRepo(
		models.Design{ID: 12, Title: "Crypto Wallet", Status: models.DesignStatusPublished},
		models.Design{ID: 13, Title: "Hidden", Status: models.DesignStatusDraft},
	)
	svc := NewDesignService(repo)
	ctx := context.Background()

	design, err := svc.GetBySlug(ctx, "crypto-wallet-12")
	require.NoError(t, err)
	assert.Equal(t, int64(12), design.ID)

	_, err = svc.GetBySlug(ctx, "wrong-title-12")
	assert.ErrorIs(t, err, ErrNotFound)

	_, err = svc.GetBySlug(ctx, "hidden-13")
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestDesignService_ListOnlyPublished(t *testing.T) {
	repo := newFakeDesignRepo(
		models.Design{ID: 1, Status: models.DesignStatusPublished},
		models.Design{ID: 2, Status: models.DesignStatusDraft},
	)
	svc := NewDesignService(repo)

	draft := models.DesignStatusDraft
	resp, err := svc.List(context.Background(), models.DesignListParams{Status: &draft, Limit: 1000})
	require.NoError(t, err)
	require.Len(t, resp.Designs, 1)
	assert.Equal(t, int64(1), resp.Designs[0].ID)
	assert.Equal(t, maxPageSize, resp.Limit)

	resp, err = svc.AdminList(context.Background(), models.DesignListParams{Status: &draft})
	require.NoError(t, err)
	require.Len(t, resp.Designs, 1)
	assert.Equal(t, int64(2), resp.Designs[0].ID)
	assert.Equal(t, defaultPageSize, resp.Limit)
}

func TestDesignService_UpdateAndArchive(t *testing.T) {
	repo := newFakeDesignRepo(
		models.Design{ID: 1, Title: "Old", Slug: "old", Status: models.DesignStatusDraft},
	)
	svc := NewDesignService(repo)
	ctx := context.Background()

	title := "New Name"
	status := models.DesignStatusPublished
	design, err := svc.Update(ctx, 1, models.DesignUpdateRequest{Title: &title, Status: &status})
	require.NoError(t, err)
	assert.Equal(t, "new-name", design.Slug)
	assert.Equal(t, models.DesignStatusPublished, design.Status)

	require.NoError(t, svc.Archive(ctx, 1))
	assert.Equal(t, models.DesignStatusArchived, repo.designs[1].Status)

	assert.ErrorIs(t, svc.Archive(ctx, 404), ErrNotFound)
}
