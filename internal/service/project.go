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
	ErrProjectNotFound     = errors.New("project not found")
	ErrProjectAccessDenied = errors.New("project access denied")
	ErrVersionNotFound     = errors.New("project version not found")
	ErrInvalidStatusChange = errors.New("invalid status transition")
)

type ProjectService struct {
	projectRepo repository.ProjectRepository
	productRepo repository.ProductRepository
}

func NewProjectService(projectRepo repository.ProjectRepository, productRepo repository.ProductRepository) *ProjectService {
	return &ProjectService{projectRepo: projectRepo, productRepo: productRepo}
}

func (s *ProjectService) Create(ctx context.Context, userID uuid.UUID, req dto.CreateProjectRequest) (*model.Project, error) {
	product, err := s.productRepo.GetByID(ctx, req.ProductID)
	if err != nil {
		return nil, fmt.Errorf("get product: %w", err)
	}
	if product == nil {
		return nil, ErrProductNotFound
	}

	project := &model.Project{
		UserID:    userID,
		Name:      req.Name,
		ProductID: req.ProductID,
		Variant:   req.Variant,
		Status:    model.ProjectDraft,
		Canvas:    req.Canvas,
		Tags:      req.Tags,
		Category:  req.Category,
	}
	if err := s.projectRepo.Create(ctx, project); err != nil {
		return nil, fmt.Errorf("create project: %w", err)
	}
	return project, nil
}

// GetByID fetches an owned project and records the open as a side effect.
func (s *ProjectService) GetByID(ctx context.Context, userID, projectID uuid.UUID, isAdmin bool) (*model.Project, error) {
	project, err := s.getOwned(ctx, userID, projectID, isAdmin)
	if err != nil {
		return nil, err
	}
	if err := s.projectRepo.TouchOpened(ctx, projectID); err != nil {
		return nil, err
	}
	project.OpenCount++
	return project, nil
}

func (s *ProjectService) List(ctx context.Context, userID uuid.UUID, page, limit int) (*dto.ProjectListResponse, error) {
	offset := (page - 1) * limit
	projects, total, err := s.projectRepo.ListByUser(ctx, userID, limit, offset)
	if err != nil {
		return nil, fmt.Errorf("list projects: %w", err)
	}

	items := make([]dto.ProjectResponse, 0, len(projects))
	for i := range projects {
		items = append(items, ToProjectResponse(&projects[i]))
	}
	return &dto.ProjectListResponse{Projects: items, Total: total, Page: page, Limit: limit}, nil
}

func (s *ProjectService) Update(ctx context.Context, userID, projectID uuid.UUID, req dto.UpdateProjectRequest) (*model.Project, error) {
	project, err := s.getOwned(ctx, userID, projectID, false)
	if err != nil {
		return nil, err
	}

	if req.Name != nil {
		project.Name = *req.Name
	}
	if req.Variant != nil {
		project.Variant = *req.Variant
	}
	if req.Tags != nil {
		project.Tags = req.Tags
	}
	if req.Category != nil {
		project.Category = *req.Category
	}

	if err := s.projectRepo.Save(ctx, project); err != nil {
		return nil, err
	}
	return project, nil
}

// UpdateElements replaces the live element tree from the design editor.
// Metadata is re-derived on save.
func (s *ProjectService) UpdateElements(ctx context.Context, userID, projectID uuid.UUID, req dto.UpdateElementsRequest) (*model.Project, error) {
	project, err := s.getOwned(ctx, userID, projectID, false)
	if err != nil {
		return nil, err
	}

	project.Elements = req.Elements
	if req.Canvas != nil {
		project.Canvas = *req.Canvas
	}

	if err := s.projectRepo.Save(ctx, project); err != nil {
		return nil, err
	}
	return project, nil
}

// validStatusChanges: draft -> completed -> archived, archived -> draft.
var validStatusChanges = map[model.ProjectStatus]model.ProjectStatus{
	model.ProjectDraft:     model.ProjectCompleted,
	model.ProjectCompleted: model.ProjectArchived,
	model.ProjectArchived:  model.ProjectDraft,
}

func (s *ProjectService) UpdateStatus(ctx context.Context, userID, projectID uuid.UUID, status model.ProjectStatus) (*model.Project, error) {
	project, err := s.getOwned(ctx, userID, projectID, false)
	if err != nil {
		return nil, err
	}

	if validStatusChanges[project.Status] != status {
		return nil, ErrInvalidStatusChange
	}
	project.Status = status

	if err := s.projectRepo.Save(ctx, project); err != nil {
		return nil, err
	}
	return project, nil
}

func (s *ProjectService) Delete(ctx context.Context, userID, projectID uuid.UUID) error {
	if _, err := s.getOwned(ctx, userID, projectID, false); err != nil {
		return err
	}
	return s.projectRepo.Delete(ctx, projectID)
}

// CreateVersion snapshots the live element tree. Version numbers grow
// monotonically with no gaps or reuse; restores never allocate numbers.
func (s *ProjectService) CreateVersion(ctx context.Context, userID, projectID uuid.UUID, note string) (*model.ProjectVersion, error) {
	project, err := s.getOwned(ctx, userID, projectID, false)
	if err != nil {
		return nil, err
	}

	existing, err := s.projectRepo.ListVersions(ctx, projectID)
	if err != nil {
		return nil, fmt.Errorf("list versions: %w", err)
	}

	version := &model.ProjectVersion{
		ProjectID:     projectID,
		VersionNumber: len(existing) + 1,
		Elements:      model.CloneElements(project.Elements),
		Note:          note,
	}
	if err := s.projectRepo.CreateVersion(ctx, version); err != nil {
		return nil, err
	}

	project.CurrentVersion = version.VersionNumber
	if err := s.projectRepo.Save(ctx, project); err != nil {
		return nil, err
	}
	return version, nil
}

// RestoreVersion overwrites the live elements with the snapshot and moves
// the pointer. History is never touched; unsaved live edits are lost.
func (s *ProjectService) RestoreVersion(ctx context.Context, userID, projectID uuid.UUID, number int) (*model.Project, error) {
	project, err := s.getOwned(ctx, userID, projectID, false)
	if err != nil {
		return nil, err
	}

	version, err := s.projectRepo.GetVersion(ctx, projectID, number)
	if err != nil {
		return nil, fmt.Errorf("get version: %w", err)
	}
	if version == nil {
		return nil, ErrVersionNotFound
	}

	project.Elements = model.CloneElements(version.Elements)
	project.CurrentVersion = version.VersionNumber

	if err := s.projectRepo.Save(ctx, project); err != nil {
		return nil, err
	}
	return project, nil
}

func (s *ProjectService) ListVersions(ctx context.Context, userID, projectID uuid.UUID) ([]model.ProjectVersion, error) {
	if _, err := s.getOwned(ctx, userID, projectID, false); err != nil {
		return nil, err
	}
	return s.projectRepo.ListVersions(ctx, projectID)
}

// Duplicate deep-copies the source into a fresh project owned by the
// caller. The copy starts with no version history; the source's
// duplicate_count is bumped by one.
func (s *ProjectService) Duplicate(ctx context.Context, userID, projectID uuid.UUID, name string) (*model.Project, error) {
	source, err := s.getOwned(ctx, userID, projectID, false)
	if err != nil {
		return nil, err
	}

	if name == "" {
		name = source.Name + " (Copy)"
	}
	sourceID := source.ID

	dup := &model.Project{
		UserID:         userID,
		Name:           name,
		ProductID:      source.ProductID,
		Variant:        source.Variant,
		Status:         model.ProjectDraft,
		Elements:       model.CloneElements(source.Elements),
		Canvas:         source.Canvas,
		Tags:           append([]string(nil), source.Tags...),
		Category:       source.Category,
		DuplicatedFrom: &sourceID,
	}
	if err := s.projectRepo.Create(ctx, dup); err != nil {
		return nil, fmt.Errorf("create duplicate: %w", err)
	}

	if err := s.projectRepo.IncrementDuplicateCount(ctx, sourceID); err != nil {
		return nil, err
	}
	return dup, nil
}

func (s *ProjectService) getOwned(ctx context.Context, userID, projectID uuid.UUID, allowAdmin bool) (*model.Project, error) {
	project, err := s.projectRepo.GetByID(ctx, projectID)
	if err != nil {
		return nil, fmt.Errorf("get project: %w", err)
	}
	if project == nil {
		return nil, ErrProjectNotFound
	}
	if project.UserID != userID && !allowAdmin {
		return nil, ErrProjectAccessDenied
	}
	return project, nil
}

func ToProjectResponse(p *model.Project) dto.ProjectResponse {
	return dto.ProjectResponse{
		ID:             p.ID,
		Name:           p.Name,
		ProductID:      p.ProductID,
		Variant:        p.Variant,
		Status:         p.Status,
		Elements:       p.Elements,
		Canvas:         p.Canvas,
		Tags:           p.Tags,
		Category:       p.Category,
		Metadata:       p.Metadata,
		CurrentVersion: p.CurrentVersion,
		DuplicatedFrom: p.DuplicatedFrom,
		DuplicateCount: p.DuplicateCount,
		LastOpened:     p.LastOpened,
		OpenCount:      p.OpenCount,
		CreatedAt:      p.CreatedAt,
		UpdatedAt:      p.UpdatedAt,
	}
}
