package service

import (
	"context"
	"errors"
	"fmt"
	"log"
	"sort"
	"strings"
	"time"
	"unicode/utf8"

	"ui-design-gallery/analysis"
	"ui-design-gallery/config"
	"ui-design-gallery/metrics"
	"ui-design-gallery/models"
	"ui-design-gallery/repository"
	"ui-design-gallery/utils"
)

// maxHashAttempts bounds share hash generation when hashes collide
const maxHashAttempts = 5

// MatchService scores pasted markup against published catalog designs
// Implements MatchServiceInterface
type MatchService struct {
	designs repository.DesignRepositoryInterface
	matches repository.CodeMatchRepositoryInterface
	cache   MatchCache
	cfg     config.MatchConfig
	newHash func() (string, error)
}

// NewMatchService creates a new MatchService. cache may be nil.
func NewMatchService(
	designs repository.DesignRepositoryInterface,
	matches repository.CodeMatchRepositoryInterface,
	cache MatchCache,
	cfg config.MatchConfig,
) *MatchService {
	return &MatchService{
		designs: designs,
		matches: matches,
		cache:   cache,
		cfg:     cfg,
		newHash: func() (string, error) { return utils.NewShareHash(utils.ShareHashLength) },
	}
}

// Ensure MatchService implements MatchServiceInterface
var _ MatchServiceInterface = (*MatchService)(nil)

// Recommend analyzes code and returns the closest published designs, best first
func (s *MatchService) Recommend(ctx context.Context, code string) (*models.CodeMatch, error) {
	code = strings.TrimSpace(code)
	if n := utf8.RuneCountInString(code); n < s.cfg.MinCodeLength {
		return nil, fmt.Errorf("%w: got %d characters, need at least %d", ErrCodeTooShort, n, s.cfg.MinCodeLength)
	}

	query := analysis.AnalyzeMarkup(code)
	if query == nil {
		return nil, ErrUnanalyzable
	}

	log.Printf("🔍 Matching code: sections=%d, buttons=%d, layout=%s, colors=%d",
		query.SectionCount, query.ButtonCount, query.LayoutPattern, len(query.Colors))

	candidates, err := s.designs.ListMatchCandidates(ctx, s.cfg.CandidateLimit)
	if err != nil {
		return nil, fmt.Errorf("failed to load match candidates: %w", err)
	}

	results := make([]models.MatchResult, 0, len(candidates))
	for _, c := range candidates {
		m := analysis.AnalyzeMarkup(c.Code)
		if m == nil {
			continue
		}
		breakdown := analysis.Compare(query, m)
		results = append(results, models.MatchResult{
			DesignID:  c.ID,
			Title:     c.Title,
			Slug:      utils.DesignSlug(c.Slug, c.Title, c.ID),
			ImageURL:  c.ImageURL,
			Category:  c.Category,
			Score:     breakdown.Total(),
			Breakdown: breakdown,
		})
	}

	sort.SliceStable(results, func(i, j int) bool {
		if results[i].Score != results[j].Score {
			return results[i].Score > results[j].Score
		}
		return results[i].DesignID < results[j].DesignID
	})

	if len(results) > s.cfg.ResultLimit {
		results = results[:s.cfg.ResultLimit]
	}

	metrics.CodeMatches.WithLabelValues(query.LayoutPattern).Inc()
	log.Printf("✓ Code match scored %d candidates, returning %d", len(candidates), len(results))

	return &models.CodeMatch{
		Code:      code,
		Metrics:   query,
		Results:   results,
		CreatedAt: time.Now(),
	}, nil
}

// Save runs Recommend and stores the result under a fresh share hash
func (s *MatchService) Save(ctx context.Context, code string) (*models.CodeMatch, error) {
	match, err := s.Recommend(ctx, code)
	if err != nil {
		return nil, err
	}

	for attempt := 1; attempt <= maxHashAttempts; attempt++ {
		hash, err := s.newHash()
		if err != nil {
			return nil, err
		}
		match.Hash = hash

		err = s.matches.Insert(ctx, match)
		if err == nil {
			if s.cache != nil {
				s.cache.Set(ctx, match, s.cfg.CacheTTL)
			}
			log.Printf("💾 Code match saved with hash %s", hash)
			return match, nil
		}
		if !errors.Is(err, repository.ErrDuplicate) {
			return nil, fmt.Errorf("failed to save code match: %w", err)
		}
		log.Printf("⚠️  Share hash collision on attempt %d/%d", attempt, maxHashAttempts)
	}

	return nil, fmt.Errorf("failed to allocate a unique share hash after %d attempts", maxHashAttempts)
}

// GetByHash loads a saved match, reading through the cache when one is configured
func (s *MatchService) GetByHash(ctx context.Context, hash string) (*models.CodeMatch, error) {
	if !utils.IsShareHash(hash) {
		return nil, fmt.Errorf("code match %q: %w", hash, ErrNotFound)
	}

	if s.cache != nil {
		if match, ok := s.cache.Get(ctx, hash); ok {
			return match, nil
		}
	}

	match, err := s.matches.GetByHash(ctx, hash)
	if err != nil {
		return nil, err
	}

	if s.cache != nil {
		s.cache.Set(ctx, match, s.cfg.CacheTTL)
	}
	return match, nil
}

// PruneSaved deletes saved matches older than olderThan
func (s *MatchService) PruneSaved(ctx context.Context, olderThan time.Duration) (int64, error) {
	n, err := s.matches.DeleteOlderThan(ctx, time.Now().Add(-olderThan))
	if err != nil {
		return 0, err
	}
	log.Printf("🧹 Pruned %d saved code matches", n)
	return n, nil
}
