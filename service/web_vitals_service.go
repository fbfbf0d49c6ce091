package service

import (
	"context"
	"fmt"
	"log"
	"math"
	"strings"

	"ui-design-gallery/db"
	"ui-design-gallery/models"
	"ui-design-gallery/repository"
)

var webVitalNames = map[string]bool{
	"CLS":  true,
	"FCP":  true,
	"FID":  true,
	"INP":  true,
	"LCP":  true,
	"TTFB": true,
}

// WebVitalsServiceInterface defines the contract for web vitals ingestion
type WebVitalsServiceInterface interface {
	Record(ctx context.Context, event models.WebVitalEvent) error
}

// WebVitalsService validates and stores browser performance samples
type WebVitalsService struct {
	vitals repository.WebVitalsRepositoryInterface
}

// NewWebVitalsService creates a new WebVitalsService
func NewWebVitalsService(vitals repository.WebVitalsRepositoryInterface) *WebVitalsService {
	return &WebVitalsService{vitals: vitals}
}

var _ WebVitalsServiceInterface = (*WebVitalsService)(nil)

// Record stores one sample. A missing table returns ErrTableMissing so callers can accept the beacon anyway.
func (s *WebVitalsService) Record(ctx context.Context, event models.WebVitalEvent) error {
	event.Name = strings.ToUpper(strings.TrimSpace(event.Name))
	if !webVitalNames[event.Name] {
		return fmt.Errorf("%w: unknown metric %q", ErrInvalidInput, event.Name)
	}
	if math.IsNaN(event.Value) || math.IsInf(event.Value, 0) || event.Value < 0 {
		return fmt.Errorf("%w: invalid value", ErrInvalidInput)
	}
	if len(event.Path) > 512 {
		event.Path = event.Path[:512]
	}

	if err := s.vitals.Insert(ctx, &event); err != nil {
		if db.IsUndefinedTable(err) {
			log.Printf("⚠️  web_vitals_events table missing, dropping %s sample", event.Name)
			return ErrTableMissing
		}
		return err
	}
	return nil
}
