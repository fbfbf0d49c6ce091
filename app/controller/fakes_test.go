package controller

import (
	"context"
	"fmt"
	"time"

	"ui-design-gallery/models"
	"ui-design-gallery/service"
)

type fakeDesignService struct {
	designs    map[int64]models.Design
	lastParams models.DesignListParams
}

func newFakeDesignService(designs ...models.Design) *fakeDesignService {
	s := &fakeDesignService{designs: map[int64]models.Design{}}
	for _, d := range designs {
		s.designs[d.ID] = d
	}
	return s
}

func (s *fakeDesignService) List(ctx context.Context, params models.DesignListParams) (*models.DesignListResponse, error) {
	s.lastParams = params
	out := []models.Design{}
	for _, d := range s.designs {
		if d.Status == models.DesignStatusPublished {
			out = append(out, d)
		}
	}
	return &models.DesignListResponse{Designs: out, Total: len(out), Limit: 24}, nil
}

func (s *fakeDesignService) GetBySlug(ctx context.Context, slug string) (*models.Design, error) {
	for _, d := range s.designs {
		if d.Slug == slug && d.Status == models.DesignStatusPublished {
			return &d, nil
		}
	}
	return nil, service.ErrNotFound
}

func (s *fakeDesignService) GetPublished(ctx context.Context, id int64) (*models.Design, error) {
	d, ok := s.designs[id]
	if !ok || d.Status != models.DesignStatusPublished {
		return nil, service.ErrNotFound
	}
	return &d, nil
}

func (s *fakeDesignService) Popular(ctx context.Context, limit int) ([]models.Design, error) {
	return []models.Design{}, nil
}

func (s *fakeDesignService) AdminList(ctx context.Context, params models.DesignListParams) (*models.DesignListResponse, error) {
	s.lastParams = params
	if params.Status != nil && *params.Status == "bogus" {
		return nil, fmt.Errorf("%w: unknown status", service.ErrInvalidInput)
	}
	return &models.DesignListResponse{Designs: []models.Design{}}, nil
}

func (s *fakeDesignService) Create(ctx context.Context, req models.DesignCreateRequest) (*models.Design, error) {
	if req.Title == "" {
		return nil, fmt.Errorf("%w: title is required", service.ErrInvalidInput)
	}
	d := models.Design{ID: int64(len(s.designs) + 1), Title: req.Title, Slug: "new-design", Status: models.DesignStatusDraft}
	s.designs[d.ID] = d
	return &d, nil
}

func (s *fakeDesignService) Update(ctx context.Context, id int64, req models.DesignUpdateRequest) (*models.Design, error) {
	d, ok := s.designs[id]
	if !ok {
		return nil, service.ErrNotFound
	}
	if req.Title != nil {
		d.Title = *req.Title
	}
	s.designs[id] = d
	return &d, nil
}

func (s *fakeDesignService) Archive(ctx context.Context, id int64) error {
	d, ok := s.designs[id]
	if !ok {
		return service.ErrNotFound
	}
	d.Status = models.DesignStatusArchived
	s.designs[id] = d
	return nil
}

type fakeEngagementService struct {
	tokens []string
	liked  map[int64]bool
}

func newFakeEngagementService() *fakeEngagementService {
	return &fakeEngagementService{liked: map[int64]bool{}}
}

func (s *fakeEngagementService) ToggleLike(ctx context.Context, designID int64, token string) (*models.LikeResponse, error) {
	s.tokens = append(s.tokens, token)
	if designID == 404 {
		return nil, service.ErrNotFound
	}
	s.liked[designID] = !s.liked[designID]
	likes := 0
	if s.liked[designID] {
		likes = 1
	}
	return &models.LikeResponse{DesignID: designID, Liked: s.liked[designID], Likes: likes}, nil
}

func (s *fakeEngagementService) Save(ctx context.Context, designID int64, token string) (*models.SaveResponse, error) {
	s.tokens = append(s.tokens, token)
	return &models.SaveResponse{DesignID: designID, Saved: true}, nil
}

func (s *fakeEngagementService) Unsave(ctx context.Context, designID int64, token string) (*models.SaveResponse, error) {
	return nil, service.ErrNotFound
}

func (s *fakeEngagementService) ListSaved(ctx context.Context, token string) ([]models.Design, error) {
	s.tokens = append(s.tokens, token)
	return []models.Design{}, nil
}

func (s *fakeEngagementService) RecordView(ctx context.Context, design *models.Design) (*models.ViewResponse, error) {
	return &models.ViewResponse{DesignID: design.ID, Views: design.Views + 1}, nil
}

type fakePreviewService struct {
	err error
}

func (s *fakePreviewService) GetPreview(ctx context.Context, designID int64, size string) ([]byte, error) {
	if s.err != nil {
		return nil, s.err
	}
	return []byte{0xff, 0xd8, 0xff}, nil
}

type fakeImportService struct {
	folder string
}

func (s *fakeImportService) ImportFromDrive(ctx context.Context, folderID string) (*models.ImportResult, error) {
	s.folder = folderID
	return &models.ImportResult{Inserted: 2, Skipped: 1, Total: 3, Images: []models.DriveImage{}}, nil
}

type fakeMatchService struct {
	saved map[string]*models.CodeMatch
}

func (s *fakeMatchService) Recommend(ctx context.Context, code string) (*models.CodeMatch, error) {
	if len(code) < 50 {
		return nil, service.ErrCodeTooShort
	}
	return &models.CodeMatch{
		Results:   []models.MatchResult{{DesignID: 1, Title: "Pricing", Slug: "pricing", Score: 0.9}},
		CreatedAt: time.Now(),
	}, nil
}

func (s *fakeMatchService) Save(ctx context.Context, code string) (*models.CodeMatch, error) {
	match, err := s.Recommend(ctx, code)
	if err != nil {
		return nil, err
	}
	match.Hash = "Ab3dE5gH9k"
	s.saved[match.Hash] = match
	return match, nil
}

func (s *fakeMatchService) GetByHash(ctx context.Context, hash string) (*models.CodeMatch, error) {
	m, ok := s.saved[hash]
	if !ok {
		return nil, service.ErrNotFound
	}
	return m, nil
}

func (s *fakeMatchService) PruneSaved(ctx context.Context, olderThan time.Duration) (int64, error) {
	return 0, nil
}

type fakeRequestService struct {
	voted map[string]bool
}

func (s *fakeRequestService) Create(ctx context.Context, req models.CreateDesignRequestRequest) (*models.DesignRequest, error) {
	if len(req.Title) < 5 {
		return nil, fmt.Errorf("%w: title must be at least 5 characters", service.ErrInvalidInput)
	}
	return &models.DesignRequest{ID: 1, Title: req.Title, Status: models.RequestStatusOpen}, nil
}

func (s *fakeRequestService) List(ctx context.Context, status string, sort string) ([]models.DesignRequest, error) {
	return []models.DesignRequest{}, nil
}

func (s *fakeRequestService) Vote(ctx context.Context, requestID int64, token string) (*models.VoteResponse, error) {
	key := fmt.Sprintf("%d/%s", requestID, token)
	if s.voted[key] {
		return nil, service.ErrAlreadyExists
	}
	s.voted[key] = true
	return &models.VoteResponse{RequestID: requestID, VoteCount: 1}, nil
}

func (s *fakeRequestService) Update(ctx context.Context, id int64, req models.UpdateDesignRequestRequest) (*models.DesignRequest, error) {
	return &models.DesignRequest{ID: id, Status: *req.Status}, nil
}

type fakeNewsletterService struct {
	subscribed map[string]bool
}

func (s *fakeNewsletterService) Subscribe(ctx context.Context, email string) (*models.NewsletterSubscriber, error) {
	if email == "" {
		return nil, fmt.Errorf("%w: email is required", service.ErrInvalidInput)
	}
	if s.subscribed[email] {
		return nil, service.ErrAlreadyExists
	}
	s.subscribed[email] = true
	return &models.NewsletterSubscriber{ID: 1, Email: email, Status: models.SubscriberStatusSubscribed}, nil
}

func (s *fakeNewsletterService) Unsubscribe(ctx context.Context, email string) error {
	if !s.subscribed[email] {
		return service.ErrNotFound
	}
	return nil
}

type fakeWebVitalsService struct {
	err error
}

func (s *fakeWebVitalsService) Record(ctx context.Context, event models.WebVitalEvent) error {
	return s.err
}
