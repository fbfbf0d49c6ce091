package service

import (
	"context"
	"fmt"
	"sort"
	"sync"
	"time"

	"ui-design-gallery/models"
	"ui-design-gallery/repository"
)

type fakeDesignRepo struct {
	mu      sync.Mutex
	designs map[int64]*models.Design
	nextID  int64
	views   map[int64]int
	// incrementErr, when set, runs before IncrementViews and fails the call with its result
	incrementErr func(id int64) error
}

func newFakeDesignRepo(designs ...models.Design) *fakeDesignRepo {
	r := &fakeDesignRepo{designs: map[int64]*models.Design{}, views: map[int64]int{}}
	for i := range designs {
		d := designs[i]
		r.designs[d.ID] = &d
		if d.ID > r.nextID {
			r.nextID = d.ID
		}
	}
	return r
}

func (r *fakeDesignRepo) List(ctx context.Context, params models.DesignListParams) ([]models.Design, int, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var out []models.Design
	for _, d := range r.designs {
		if params.Status != nil && d.Status != *params.Status {
			continue
		}
		if params.Category != nil && d.Category != *params.Category {
			continue
		}
		out = append(out, *d)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out, len(out), nil
}

func (r *fakeDesignRepo) GetByID(ctx context.Context, id int64) (*models.Design, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	d, ok := r.designs[id]
	if !ok {
		return nil, fmt.Errorf("design %d: %w", id, repository.ErrNotFound)
	}
	cp := *d
	return &cp, nil
}

func (r *fakeDesignRepo) GetBySlug(ctx context.Context, slug string) (*models.Design, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, d := range r.designs {
		if d.Slug == slug && d.Status == models.DesignStatusPublished {
			cp := *d
			return &cp, nil
		}
	}
	return nil, fmt.Errorf("design %q: %w", slug, repository.ErrNotFound)
}

func (r *fakeDesignRepo) ListMatchCandidates(ctx context.Context, limit int) ([]models.DesignCandidate, error) {
	designs, _, _ := r.List(ctx, models.DesignListParams{})
	var out []models.DesignCandidate
	for _, d := range designs {
		if d.Status != models.DesignStatusPublished || d.Code == "" {
			continue
		}
		out = append(out, models.DesignCandidate{
			ID: d.ID, Title: d.Title, ImageURL: d.ImageURL, Category: d.Category, Slug: d.Slug, Code: d.Code,
		})
		if len(out) == limit {
			break
		}
	}
	return out, nil
}

func (r *fakeDesignRepo) Popular(ctx context.Context, limit int) ([]models.Design, error) {
	status := models.DesignStatusPublished
	designs, _, err := r.List(ctx, models.DesignListParams{Status: &status})
	return designs, err
}

func (r *fakeDesignRepo) Create(ctx context.Context, design *models.Design) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.nextID++
	design.ID = r.nextID
	design.CreatedAt = time.Now()
	design.UpdatedAt = design.CreatedAt
	cp := *design
	r.designs[design.ID] = &cp
	return nil
}

func (r *fakeDesignRepo) Update(ctx context.Context, design *models.Design) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.designs[design.ID]; !ok {
		return repository.ErrNotFound
	}
	cp := *design
	r.designs[design.ID] = &cp
	return nil
}

func (r *fakeDesignRepo) UpdateStatus(ctx context.Context, id int64, status string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	d, ok := r.designs[id]
	if !ok {
		return repository.ErrNotFound
	}
	d.Status = status
	return nil
}

func (r *fakeDesignRepo) SlugExists(ctx context.Context, slug string, excludeID int64) (bool, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, d := range r.designs {
		if d.Slug == slug && d.ID != excludeID {
			return true, nil
		}
	}
	return false, nil
}

func (r *fakeDesignRepo) ExistsByImageURL(ctx context.Context, imageURL string) (bool, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, d := range r.designs {
		if d.ImageURL == imageURL {
			return true, nil
		}
	}
	return false, nil
}

func (r *fakeDesignRepo) IncrementViews(ctx context.Context, id int64, delta int) (int, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.incrementErr != nil {
		if err := r.incrementErr(id); err != nil {
			return 0, err
		}
	}
	d, ok := r.designs[id]
	if !ok {
		return 0, repository.ErrNotFound
	}
	d.Views += delta
	r.views[id] += delta
	return d.Views, nil
}

type fakeCodeMatchRepo struct {
	mu       sync.Mutex
	matches  map[string]models.CodeMatch
	inserts  int
	taken    map[string]bool
	gets     int
	pruneCut time.Time
}

func newFakeCodeMatchRepo() *fakeCodeMatchRepo {
	return &fakeCodeMatchRepo{matches: map[string]models.CodeMatch{}, taken: map[string]bool{}}
}

func (r *fakeCodeMatchRepo) Insert(ctx context.Context, match *models.CodeMatch) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.inserts++
	if r.taken[match.Hash] {
		return fmt.Errorf("hash %s: %w", match.Hash, repository.ErrDuplicate)
	}
	r.matches[match.Hash] = *match
	r.taken[match.Hash] = true
	return nil
}

func (r *fakeCodeMatchRepo) GetByHash(ctx context.Context, hash string) (*models.CodeMatch, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.gets++
	m, ok := r.matches[hash]
	if !ok {
		return nil, repository.ErrNotFound
	}
	return &m, nil
}

func (r *fakeCodeMatchRepo) DeleteOlderThan(ctx context.Context, cutoff time.Time) (int64, error) {
	r.pruneCut = cutoff
	return 2, nil
}

type fakeEngagementRepo struct {
	likes map[string]bool
	saves map[string]bool
}

func newFakeEngagementRepo() *fakeEngagementRepo {
	return &fakeEngagementRepo{likes: map[string]bool{}, saves: map[string]bool{}}
}

func key(id int64, token string) string { return fmt.Sprintf("%d/%s", id, token) }

func (r *fakeEngagementRepo) ToggleLike(ctx context.Context, designID int64, token string) (bool, int, error) {
	k := key(designID, token)
	r.likes[k] = !r.likes[k]
	count := 0
	for _, v := range r.likes {
		if v {
			count++
		}
	}
	return r.likes[k], count, nil
}

func (r *fakeEngagementRepo) IsLiked(ctx context.Context, designID int64, token string) (bool, error) {
	return r.likes[key(designID, token)], nil
}

func (r *fakeEngagementRepo) Save(ctx context.Context, designID int64, token string) error {
	r.saves[key(designID, token)] = true
	return nil
}

func (r *fakeEngagementRepo) Unsave(ctx context.Context, designID int64, token string) error {
	k := key(designID, token)
	if !r.saves[k] {
		return repository.ErrNotFound
	}
	delete(r.saves, k)
	return nil
}

func (r *fakeEngagementRepo) ListSaved(ctx context.Context, token string) ([]models.Design, error) {
	return []models.Design{}, nil
}

type fakeRequestRepo struct {
	requests map[int64]*models.DesignRequest
	votes    map[string]bool
	listArgs struct {
		status *string
		sort   string
	}
}

func newFakeRequestRepo() *fakeRequestRepo {
	return &fakeRequestRepo{requests: map[int64]*models.DesignRequest{}, votes: map[string]bool{}}
}

func (r *fakeRequestRepo) Create(ctx context.Context, req *models.DesignRequest) error {
	req.ID = int64(len(r.requests) + 1)
	req.Status = models.RequestStatusOpen
	cp := *req
	r.requests[req.ID] = &cp
	return nil
}

func (r *fakeRequestRepo) List(ctx context.Context, status *string, sort string, limit int) ([]models.DesignRequest, error) {
	r.listArgs.status = status
	r.listArgs.sort = sort
	return []models.DesignRequest{}, nil
}

func (r *fakeRequestRepo) GetByID(ctx context.Context, id int64) (*models.DesignRequest, error) {
	req, ok := r.requests[id]
	if !ok {
		return nil, repository.ErrNotFound
	}
	cp := *req
	return &cp, nil
}

func (r *fakeRequestRepo) Vote(ctx context.Context, requestID int64, token string) (int, error) {
	req, ok := r.requests[requestID]
	if !ok {
		return 0, repository.ErrNotFound
	}
	k := key(requestID, token)
	if r.votes[k] {
		return 0, repository.ErrDuplicate
	}
	r.votes[k] = true
	req.VoteCount++
	return req.VoteCount, nil
}

func (r *fakeRequestRepo) Update(ctx context.Context, id int64, status *string, designID *int64) error {
	req, ok := r.requests[id]
	if !ok {
		return repository.ErrNotFound
	}
	if status != nil {
		req.Status = *status
	}
	if designID != nil {
		req.DesignID = designID
	}
	return nil
}

type fakeNewsletterRepo struct {
	subscribed map[string]bool
}

func (r *fakeNewsletterRepo) Subscribe(ctx context.Context, email string) (*models.NewsletterSubscriber, error) {
	if r.subscribed[email] {
		return nil, repository.ErrDuplicate
	}
	r.subscribed[email] = true
	return &models.NewsletterSubscriber{ID: int64(len(r.subscribed)), Email: email, Status: models.SubscriberStatusSubscribed}, nil
}

func (r *fakeNewsletterRepo) Unsubscribe(ctx context.Context, email string) error {
	if !r.subscribed[email] {
		return repository.ErrNotFound
	}
	r.subscribed[email] = false
	return nil
}

type fakeMailer struct {
	sent []string
	err  error
}

func (m *fakeMailer) SendWelcome(ctx context.Context, email string) (string, error) {
	if m.err != nil {
		return "", m.err
	}
	m.sent = append(m.sent, email)
	return "msg_1", nil
}

type fakeVitalsRepo struct {
	events []models.WebVitalEvent
	err    error
}

func (r *fakeVitalsRepo) Insert(ctx context.Context, event *models.WebVitalEvent) error {
	if r.err != nil {
		return r.err
	}
	r.events = append(r.events, *event)
	return nil
}
