package service

import (
	"context"
	"fmt"
	"math"
	"testing"

	"github.com/jackc/pgx/v5/pgconn"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"ui-design-gallery/models"
)

func TestWebVitalsService_Record(t *testing.T) {
	repo := &fakeVitalsRepo{}
	svc := NewWebVitalsService(repo)

	require.NoError(t, svc.Record(context.Background(), models.WebVitalEvent{Name: "lcp", Value: 1830.5, Path: "/"}))
	require.Len(t, repo.events, 1)
	assert.Equal(t, "LCP", repo.events[0].Name)
}

func TestWebVitalsService_Validation(t *testing.T) {
	svc := NewWebVitalsService(&fakeVitalsRepo{})

	cases := []models.WebVitalEvent{
		{Name: "FPS", Value: 1},
		{Name: "CLS", Value: -0.1},
		{Name: "CLS", Value: math.NaN()},
	}
	for _, ev := range cases {
		assert.ErrorIs(t, svc.Record(context.Background(), ev), ErrInvalidInput, "event %+v", ev)
	}
}

func TestWebVitalsService_MissingTable(t *testing.T) {
	repo := &fakeVitalsRepo{err: fmt.Errorf("failed to insert web vital: %w", &pgconn.PgError{Code: "42P01"})}
	svc := NewWebVitalsService(repo)

	err := svc.Record(context.Background(), models.WebVitalEvent{Name: "TTFB", Value: 120})
	assert.ErrorIs(t, err, ErrTableMissing)
}
