package services

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"
	"unicode/utf8"

	"github.com/yukikurage/legal-case-api/internal/models"
	"github.com/yukikurage/legal-case-api/internal/repository"
	"github.com/yukikurage/legal-case-api/internal/utils"
)

const maxCaseTitleLength = 255

var (
	ErrTitleRequired = errors.New("title is required")
	ErrTitleTooLong  = errors.New("title is too long")
	// ErrCaseNotFound covers both a missing case and a case owned by someone else.
	ErrCaseNotFound   = errors.New("case not found")
	ErrCaseIDRequired = errors.New("case_id is required")
)

// CaseService handles case business logic
type CaseService struct {
	caseRepo repository.CaseRepository
	now      func() time.Time
}

// NewCaseService creates a new CaseService
func NewCaseService(caseRepo repository.CaseRepository) *CaseService {
	return &CaseService{caseRepo: caseRepo, now: time.Now}
}

// CreateCase creates an empty case owned by ownerID
func (s *CaseService) CreateCase(ctx context.Context, ownerID, title string) (*models.Case, error) {
	title = strings.TrimSpace(title)
	if title == "" {
		return nil, ErrTitleRequired
	}
	if utf8.RuneCountInString(title) > maxCaseTitleLength {
		return nil, ErrTitleTooLong
	}

	c := &models.Case{
		ID:          utils.NewRecordID(),
		OwnerUserID: ownerID,
		Title:       title,
		CreatedAt:   s.now().UTC(),
		Documents:   []string{},
		ChatIDs:     []string{},
	}
	if err := s.caseRepo.Create(ctx, c); err != nil {
		return nil, fmt.Errorf("failed to create case: %w", err)
	}
	return c, nil
}

// ListCases returns the owner's cases in creation order
func (s *CaseService) ListCases(ctx context.Context, ownerID string) ([]models.Case, error) {
	cases, err := s.caseRepo.ListByOwner(ctx, ownerID)
	if err != nil {
		return nil, fmt.Errorf("failed to list cases: %w", err)
	}
	return cases, nil
}

// GetCase returns the case when ownerID owns it
func (s *CaseService) GetCase(ctx context.Context, ownerID, caseID string) (*models.Case, error) {
	return requireOwnedCase(ctx, s.caseRepo, ownerID, caseID)
}

func requireOwnedCase(ctx context.Context, repo repository.CaseRepository, ownerID, caseID string) (*models.Case, error) {
	if strings.TrimSpace(caseID) == "" {
		return nil, ErrCaseIDRequired
	}
	c, err := repo.FindOwned(ctx, caseID, ownerID)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, ErrCaseNotFound
		}
		return nil, fmt.Errorf("failed to load case: %w", err)
	}
	return c, nil
}
