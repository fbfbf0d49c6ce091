package repository

import (
	"context"
	"database/sql"
	"regexp"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"ui-design-gallery/models"
)

var designCols = []string{
	"id", "title", "description", "image_url", "category", "code",
	"likes", "views", "status", "slug", "created_at", "updated_at",
}

func newMockDB(t *testing.T) (*sql.DB, sqlmock.Sqlmock) {
	t.Helper()
	sqlDB, mock, err := sqlmock.New()
	require.NoError(t, err)
	t.Cleanup(func() {
		assert.NoError(t, mock.ExpectationsWereMet())
		sqlDB.Close()
	})
	return sqlDB, mock
}

func newMock(t *testing.T) (sqlmock.Sqlmock, *DesignRepository) {
	sqlDB, mock := newMockDB(t)
	return mock, NewDesignRepository(sqlDB)
}

func TestDesignRepository_ListBuildsFilters(t *testing.T) {
	mock, repo := newMock(t)
	now := time.Now()

	status := "published"
	category := "pricing"
	search := "dark"

	mock.ExpectQuery(regexp.QuoteMeta(`FROM designs WHERE status = $1 AND category = $2 AND (title ILIKE $3 OR description ILIKE $3) ORDER BY (likes * 3 + views) DESC, id ASC LIMIT $4 OFFSET $5`)).
		WithArgs("published", "pricing", "%dark%", 12, 24).
		WillReturnRows(sqlmock.NewRows(append(designCols, "total")).
			AddRow(1, "Dark pricing", "", "", "pricing", "<div></div>", 3, 10, "published", "dark-pricing", now, now, 30))

	designs, total, err := repo.List(context.Background(), models.DesignListParams{
		Status:   &status,
		Category: &category,
		Search:   &search,
		Sort:     "popular",
		Limit:    12,
		Offset:   24,
	})
	require.NoError(t, err)
	assert.Equal(t, 30, total)
	require.Len(t, designs, 1)
	assert.Equal(t, "dark-pricing", designs[0].Slug)
	assert.Equal(t, 3, designs[0].Likes)
}

func TestDesignRepository_ListUnknownSortFallsBackToNewest(t *testing.T) {
	mock, repo := newMock(t)

	mock.ExpectQuery(regexp.QuoteMeta(`FROM designs ORDER BY created_at DESC, id DESC LIMIT $1 OFFSET $2`)).
		WithArgs(20, 0).
		WillReturnRows(sqlmock.NewRows(append(designCols, "total")))

	designs, total, err := repo.List(context.Background(), models.DesignListParams{Sort: "bogus", Limit: 20})
	require.NoError(t, err)
	assert.Empty(t, designs)
	assert.NotNil(t, designs)
	assert.Zero(t, total)
}

func TestDesignRepository_GetBySlugNotFound(t *testing.T) {
	mock, repo := newMock(t)

	mock.ExpectQuery(regexp.QuoteMeta(`WHERE slug = $1 AND status = 'published'`)).
		WithArgs("missing").
		WillReturnRows(sqlmock.NewRows(designCols))

	_, err := repo.GetBySlug(context.Background(), "missing")
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestDesignRepository_ListMatchCandidates(t *testing.T) {
	mock, repo := newMock(t)

	mock.ExpectQuery(regexp.QuoteMeta(`WHERE status = 'published' AND code IS NOT NULL AND code <> ''`)).
		WithArgs(60).
		WillReturnRows(sqlmock.NewRows([]string{"id", "title", "image_url", "category", "slug", "code"}).
			AddRow(4, "Hero", "https://img/4.png", "landing", "", "<section></section>").
			AddRow(2, "Pricing", "", "pricing", "pricing", "<div></div>"))

	candidates, err := repo.ListMatchCandidates(context.Background(), 60)
	require.NoError(t, err)
	require.Len(t, candidates, 2)
	assert.Equal(t, int64(4), candidates[0].ID)
	assert.Equal(t, "<div></div>", candidates[1].Code)
}

func TestDesignRepository_CreateSlugConflict(t *testing.T) {
	mock, repo := newMock(t)

	mock.ExpectQuery(regexp.QuoteMeta(`INSERT INTO designs`)).
		WithArgs("Hero", nil, nil, "landing", "<div/>", "draft", "hero").
		WillReturnError(&pgconn.PgError{Code: "23505"})

	err := repo.Create(context.Background(), &models.Design{
		Title:    "Hero",
		Category: "landing",
		Code:     "<div/>",
		Status:   "draft",
		Slug:     "hero",
	})
	assert.ErrorIs(t, err, ErrDuplicate)
}

func TestDesignRepository_CreateFillsGeneratedFields(t *testing.T) {
	mock, repo := newMock(t)
	now := time.Now()

	mock.ExpectQuery(regexp.QuoteMeta(`INSERT INTO designs`)).
		WillReturnRows(sqlmock.NewRows([]string{"id", "likes", "views", "created_at", "updated_at"}).
			AddRow(9, 0, 0, now, now))

	d := &models.Design{Title: "Hero", Category: "landing", Status: "draft", Slug: "hero"}
	require.NoError(t, repo.Create(context.Background(), d))
	assert.Equal(t, int64(9), d.ID)
	assert.Equal(t, now, d.CreatedAt)
}

func TestDesignRepository_UpdateStatusNotFound(t *testing.T) {
	mock, repo := newMock(t)

	mock.ExpectExec(regexp.QuoteMeta(`UPDATE designs SET status = $1`)).
		WithArgs("archived", 5).
		WillReturnResult(sqlmock.NewResult(0, 0))

	err := repo.UpdateStatus(context.Background(), 5, "archived")
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestDesignRepository_IncrementViews(t *testing.T) {
	mock, repo := newMock(t)

	mock.ExpectQuery(regexp.QuoteMeta(`UPDATE designs SET views = views + $1 WHERE id = $2 RETURNING views`)).
		WithArgs(3, 7).
		WillReturnRows(sqlmock.NewRows([]string{"views"}).AddRow(42))

	views, err := repo.IncrementViews(context.Background(), 7, 3)
	require.NoError(t, err)
	assert.Equal(t, 42, views)
}

func TestDesignRepository_SlugExists(t *testing.T) {
	mock, repo := newMock(t)

	mock.ExpectQuery(regexp.QuoteMeta(`SELECT EXISTS(SELECT 1 FROM designs WHERE slug = $1 AND id <> $2)`)).
		WithArgs("hero", 0).
		WillReturnRows(sqlmock.NewRows([]string{"exists"}).AddRow(true))

	exists, err := repo.SlugExists(context.Background(), "hero", 0)
	require.NoError(t, err)
	assert.True(t, exists)
}
