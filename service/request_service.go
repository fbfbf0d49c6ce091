package service

import (
	"context"
	"fmt"
	"log"
	"net/mail"
	"strings"
	"unicode/utf8"

	"ui-design-gallery/models"
	"ui-design-gallery/repository"
	"ui-design-gallery/utils"
)

const (
	minRequestTitleLength = 5
	maxRequestTitleLength = 120
	maxRequestDescLength  = 2000
	requestListLimit      = 100
)

var validRequestStatuses = map[string]bool{
	models.RequestStatusOpen:       true,
	models.RequestStatusInProgress: true,
	models.RequestStatusCompleted:  true,
	models.RequestStatusRejected:   true,
}

// RequestServiceInterface defines the contract for design request operations
type RequestServiceInterface interface {
	Create(ctx context.Context, req models.CreateDesignRequestRequest) (*models.DesignRequest, error)
	List(ctx context.Context, status string, sort string) ([]models.DesignRequest, error)
	Vote(ctx context.Context, requestID int64, token string) (*models.VoteResponse, error)
	Update(ctx context.Context, id int64, req models.UpdateDesignRequestRequest) (*models.DesignRequest, error)
}

// RequestService handles user-submitted design briefs
// Implements RequestServiceInterface
type RequestService struct {
	requests repository.RequestRepositoryInterface
	designs  repository.DesignRepositoryInterface
}

// NewRequestService creates a new RequestService
func NewRequestService(requests repository.RequestRepositoryInterface, designs repository.DesignRepositoryInterface) *RequestService {
	return &RequestService{requests: requests, designs: designs}
}

var _ RequestServiceInterface = (*RequestService)(nil)

// Create validates and stores a new design request
func (s *RequestService) Create(ctx context.Context, req models.CreateDesignRequestRequest) (*models.DesignRequest, error) {
	title := strings.TrimSpace(req.Title)
	titleLen := utf8.RuneCountInString(title)
	if titleLen < minRequestTitleLength {
		return nil, fmt.Errorf("%w: title must be at least %d characters", ErrInvalidInput, minRequestTitleLength)
	}
	if titleLen > maxRequestTitleLength {
		return nil, fmt.Errorf("%w: title must be at most %d characters", ErrInvalidInput, maxRequestTitleLength)
	}

	description := strings.TrimSpace(req.Description)
	if utf8.RuneCountInString(description) > maxRequestDescLength {
		return nil, fmt.Errorf("%w: description must be at most %d characters", ErrInvalidInput, maxRequestDescLength)
	}

	email := strings.TrimSpace(req.Email)
	if email != "" {
		if _, err := mail.ParseAddress(email); err != nil {
			return nil, fmt.Errorf("%w: invalid email", ErrInvalidInput)
		}
	}

	request := &models.DesignRequest{
		Title:       title,
		Description: description,
		Category:    utils.MapCategory(req.Category),
		Email:       strings.ToLower(email),
	}
	if err := s.requests.Create(ctx, request); err != nil {
		return nil, err
	}

	log.Printf("✅ Design request created: id=%d", request.ID)
	return request, nil
}

// List returns requests filtered by status. sort is "votes" or "new".
func (s *RequestService) List(ctx context.Context, status string, sort string) ([]models.DesignRequest, error) {
	var statusFilter *string
	if status != "" {
		if !validRequestStatuses[status] {
			return nil, fmt.Errorf("%w: unknown status %q", ErrInvalidInput, status)
		}
		statusFilter = &status
	}
	if sort != "votes" {
		sort = "new"
	}
	return s.requests.List(ctx, statusFilter, sort, requestListLimit)
}

// Vote adds the visitor's vote. A second vote from the same token returns ErrAlreadyExists.
func (s *RequestService) Vote(ctx context.Context, requestID int64, token string) (*models.VoteResponse, error) {
	if token == "" {
		return nil, fmt.Errorf("%w: missing visitor token", ErrInvalidInput)
	}

	votes, err := s.requests.Vote(ctx, requestID, token)
	if err != nil {
		return nil, err
	}
	return &models.VoteResponse{RequestID: requestID, VoteCount: votes}, nil
}

// Update changes a request's status and/or links the design generated for it
func (s *RequestService) Update(ctx context.Context, id int64, req models.UpdateDesignRequestRequest) (*models.DesignRequest, error) {
	if req.Status == nil && req.DesignID == nil {
		return nil, fmt.Errorf("%w: nothing to update", ErrInvalidInput)
	}
	if req.Status != nil && !validRequestStatuses[*req.Status] {
		return nil, fmt.Errorf("%w: unknown status %q", ErrInvalidInput, *req.Status)
	}
	if req.DesignID != nil {
		if _, err := s.designs.GetByID(ctx, *req.DesignID); err != nil {
			return nil, err
		}
	}

	if err := s.requests.Update(ctx, id, req.Status, req.DesignID); err != nil {
		return nil, err
	}
	return s.requests.GetByID(ctx, id)
}
