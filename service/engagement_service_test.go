package service

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"ui-design-gallery/models"
)

func newEngagementFixture() (*EngagementService, *fakeDesignRepo) {
	designs := newFakeDesignRepo(
		models.Design{ID: 1, Title: "Live", Status: models.DesignStatusPublished, Views: 4},
		models.Design{ID: 2, Title: "Draft", Status: models.DesignStatusDraft},
	)
	svc := NewEngagementService(NewDesignService(designs), newFakeEngagementRepo(), NewDirectViewRecorder(designs))
	return svc, designs
}

func TestEngagementService_ToggleLike(t *testing.T) {
	svc, _ := newEngagementFixture()
	ctx := context.Background()

	resp, err := svc.ToggleLike(ctx, 1, "visitor")
	require.NoError(t, err)
	assert.True(t, resp.Liked)
	assert.Equal(t, 1, resp.Likes)

	resp, err = svc.ToggleLike(ctx, 1, "visitor")
	require.NoError(t, err)
	assert.False(t, resp.Liked)
	assert.Equal(t, 0, resp.Likes)

	_, err = svc.ToggleLike(ctx, 2, "visitor")
	assert.ErrorIs(t, err, ErrNotFound, "drafts cannot be liked")

	_, err = svc.ToggleLike(ctx, 1, "")
	assert.ErrorIs(t, err, ErrInvalidInput)
}

func TestEngagementService_SaveAndUnsave(t *testing.T) {
	svc, _ := newEngagementFixture()
	ctx := context.Background()

	resp, err := svc.Save(ctx, 1, "visitor")
	require.NoError(t, err)
	assert.True(t, resp.Saved)

	resp, err = svc.Unsave(ctx, 1, "visitor")
	require.NoError(t, err)
	assert.False(t, resp.Saved)

	_, err = svc.Unsave(ctx, 1, "visitor")
	assert.ErrorIs(t, err, ErrNotFound)

	saved, err := svc.ListSaved(ctx, "")
	require.NoError(t, err)
	assert.Empty(t, saved)
}

func TestEngagementService_RecordView(t *testing.T) {
	svc, designs := newEngagementFixture()
	design, _ := designs.GetByID(context.Background(), 1)

	resp, err := svc.RecordView(context.Background(), design)
	require.NoError(t, err)
	assert.Equal(t, 5, resp.Views)
}

func TestEngagementService_RecordViewBuffered(t *testing.T) {
	_, rdb := newTestRedis(t)
	designs := newFakeDesignRepo(models.Design{ID: 1, Status: models.DesignStatusPublished, Views: 4})
	svc := NewEngagementService(NewDesignService(designs), newFakeEngagementRepo(), NewViewBuffer(rdb, designs))

	design, _ := designs.GetByID(context.Background(), 1)
	resp, err := svc.RecordView(context.Background(), design)
	require.NoError(t, err)
	assert.Equal(t, 5, resp.Views)
	assert.Equal(t, 4, designs.designs[1].Views, "buffered view is not yet in the database")
}
