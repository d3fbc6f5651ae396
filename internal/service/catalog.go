package service

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"

	"github.com/printcraft/printcraft-api/internal/dto"
	"github.com/printcraft/printcraft-api/internal/model"
	"github.com/printcraft/printcraft-api/internal/repository"
)

var (
	ErrDesignNotFound     = errors.New("design not found")
	ErrDesignAccessDenied = errors.New("design access denied")
	ErrSuggestionNotFound = errors.New("suggestion not found")
)

type DesignService struct {
	designRepo repository.DesignRepository
}

func NewDesignService(designRepo repository.DesignRepository) *DesignService {
	return &DesignService{designRepo: designRepo}
}

func (s *DesignService) Create(ctx context.Context, userID uuid.UUID, req dto.CreateDesignRequest) (*model.Design, error) {
	design := &model.Design{
		UserID:    userID,
		Name:      req.Name,
		ImagePath: req.ImagePath,
		ThumbPath: req.ThumbPath,
		Public:    req.Public,
	}
	if err := s.designRepo.Create(ctx, design); err != nil {
		return nil, fmt.Errorf("create design: %w", err)
	}
	return design, nil
}

func (s *DesignService) GetByID(ctx context.Context, userID, designID uuid.UUID) (*model.Design, error) {
	design, err := s.designRepo.GetByID(ctx, designID)
	if err != nil {
		return nil, fmt.Errorf("get design: %w", err)
	}
	if design == nil {
		return nil, ErrDesignNotFound
	}
	if design.UserID != userID && !design.Public {
		return nil, ErrDesignAccessDenied
	}
	return design, nil
}

func (s *DesignService) ListVisible(ctx context.Context, userID uuid.UUID) ([]model.Design, error) {
	return s.designRepo.ListVisible(ctx, userID)
}

func (s *DesignService) Update(ctx context.Context, userID, designID uuid.UUID, req dto.UpdateDesignRequest) (*model.Design, error) {
	design, err := s.designRepo.GetByID(ctx, designID)
	if err != nil {
		return nil, fmt.Errorf("get design: %w", err)
	}
	if design == nil {
		return nil, ErrDesignNotFound
	}
	if design.UserID != userID {
		return nil, ErrDesignAccessDenied
	}

	if req.Name != nil {
		design.Name = *req.Name
	}
	if req.Public != nil {
		design.Public = *req.Public
	}

	if err := s.designRepo.Update(ctx, design); err != nil {
		return nil, fmt.Errorf("update design: %w", err)
	}
	return design, nil
}

func (s *DesignService) Delete(ctx context.Context, userID, designID uuid.UUID) error {
	design, err := s.designRepo.GetByID(ctx, designID)
	if err != nil {
		return fmt.Errorf("get design: %w", err)
	}
	if design == nil {
		return ErrDesignNotFound
	}
	if design.UserID != userID {
		return ErrDesignAccessDenied
	}
	return s.designRepo.Delete(ctx, designID)
}

type FontService struct {
	fontRepo repository.FontRepository
}

func NewFontService(fontRepo repository.FontRepository) *FontService {
	return &FontService{fontRepo: fontRepo}
}

func (s *FontService) Create(ctx context.Context, req dto.CreateFontRequest) (*model.Font, error) {
	font := &model.Font{
		Name:     req.Name,
		Family:   req.Family,
		FilePath: req.FilePath,
		Premium:  req.Premium,
	}
	if err := s.fontRepo.Create(ctx, font); err != nil {
		return nil, fmt.Errorf("create font: %w", err)
	}
	return font, nil
}

// List hides premium fonts from users without the premium-font permission.
func (s *FontService) List(ctx context.Context, user *model.User) ([]model.Font, error) {
	includePremium := user != nil && user.HasPermission("font:premium")
	return s.fontRepo.List(ctx, includePremium)
}

func (s *FontService) Delete(ctx context.Context, id uuid.UUID) error {
	return s.fontRepo.Delete(ctx, id)
}

type SuggestionService struct {
	suggestionRepo repository.SuggestionRepository
}

func NewSuggestionService(suggestionRepo repository.SuggestionRepository) *SuggestionService {
	return &SuggestionService{suggestionRepo: suggestionRepo}
}

func (s *SuggestionService) Create(ctx context.Context, userID uuid.UUID, req dto.CreateSuggestionRequest) (*model.Suggestion, error) {
	suggestion := &model.Suggestion{UserID: userID, Title: req.Title, Body: req.Body}
	if err := s.suggestionRepo.Create(ctx, suggestion); err != nil {
		return nil, fmt.Errorf("create suggestion: %w", err)
	}
	return suggestion, nil
}

func (s *SuggestionService) ListByUser(ctx context.Context, userID uuid.UUID) ([]model.Suggestion, error) {
	return s.suggestionRepo.ListByUser(ctx, userID)
}

func (s *SuggestionService) ListAll(ctx context.Context) ([]model.Suggestion, error) {
	return s.suggestionRepo.ListAll(ctx)
}

func (s *SuggestionService) UpdateStatus(ctx context.Context, id uuid.UUID, status model.SuggestionStatus) error {
	if err := s.suggestionRepo.UpdateStatus(ctx, id, status); err != nil {
		return ErrSuggestionNotFound
	}
	return nil
}
