package service

import (
	"context"
	"sort"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/printcraft/printcraft-api/internal/dto"
	"github.com/printcraft/printcraft-api/internal/model"
)

type mockProjectRepo struct {
	projects map[uuid.UUID]*model.Project
	versions map[uuid.UUID][]model.ProjectVersion
}

func newMockProjectRepo() *mockProjectRepo {
	return &mockProjectRepo{
		projects: make(map[uuid.UUID]*model.Project),
		versions: make(map[uuid.UUID][]model.ProjectVersion),
	}
}

func (m *mockProjectRepo) Create(_ context.Context, project *model.Project) error {
	project.ID = uuid.New()
	if project.Status == "" {
		project.Status = model.ProjectDraft
	}
	project.DeriveMetadata()
	project.CreatedAt = time.Now()
	project.UpdatedAt = time.Now()
	m.projects[project.ID] = project
	return nil
}

func (m *mockProjectRepo) GetByID(_ context.Context, id uuid.UUID) (*model.Project, error) {
	return m.projects[id], nil
}

func (m *mockProjectRepo) ListByUser(_ context.Context, userID uuid.UUID, limit, offset int) ([]model.Project, int, error) {
	var all []model.Project
	for _, p := range m.projects {
		if p.UserID == userID {
			all = append(all, *p)
		}
	}
	return all, len(all), nil
}

func (m *mockProjectRepo) Save(_ context.Context, project *model.Project) error {
	project.DeriveMetadata()
	project.LockVersion++
	project.UpdatedAt = time.Now()
	m.projects[project.ID] = project
	return nil
}

func (m *mockProjectRepo) Delete(_ context.Context, id uuid.UUID) error {
	delete(m.projects, id)
	delete(m.versions, id)
	return nil
}

func (m *mockProjectRepo) TouchOpened(_ context.Context, id uuid.UUID) error {
	if p, ok := m.projects[id]; ok {
		now := time.Now()
		p.LastOpened = &now
	}
	return nil
}

func (m *mockProjectRepo) IncrementDuplicateCount(_ context.Context, id uuid.UUID) error {
	if p, ok := m.projects[id]; ok {
		p.DuplicateCount++
	}
	return nil
}

func (m *mockProjectRepo) CreateVersion(_ context.Context, version *model.ProjectVersion) error {
	version.ID = uuid.New()
	version.CreatedAt = time.Now()
	m.versions[version.ProjectID] = append(m.versions[version.ProjectID], *version)
	return nil
}

func (m *mockProjectRepo) GetVersion(_ context.Context, projectID uuid.UUID, number int) (*model.ProjectVersion, error) {
	for _, v := range m.versions[projectID] {
		if v.VersionNumber == number {
			return &v, nil
		}
	}
	return nil, nil
}

func (m *mockProjectRepo) ListVersions(_ context.Context, projectID uuid.UUID) ([]model.ProjectVersion, error) {
	out := append([]model.ProjectVersion(nil), m.versions[projectID]...)
	sort.Slice(out, func(i, j int) bool { return out[i].VersionNumber < out[j].VersionNumber })
	return out, nil
}

func (m *mockProjectRepo) ComplexityBreakdown(_ context.Context) (map[model.Complexity]int, error) {
	out := make(map[model.Complexity]int)
	for _, p := range m.projects {
		out[p.Metadata.Complexity]++
	}
	return out, nil
}

func elementsOfKind(kind model.ElementKind, n int) []model.DesignElement {
	out := make([]model.DesignElement, n)
	for i := range out {
		out[i] = model.DesignElement{ID: uuid.New(), Kind: kind}
	}
	return out
}

func newProjectFixture(t *testing.T) (*ProjectService, *mockProjectRepo, uuid.UUID, *model.Project) {
	t.Helper()
	projectRepo := newMockProjectRepo()
	productRepo := newMockProductRepo()
	pid := seedProduct(productRepo, "15.99")
	svc := NewProjectService(projectRepo, productRepo)
	userID := uuid.New()

	project, err := svc.Create(context.Background(), userID, dto.CreateProjectRequest{
		Name: "Summer Tee", ProductID: pid,
	})
	require.NoError(t, err)
	return svc, projectRepo, userID, project
}

func TestProjectService_Create_ProductNotFound(t *testing.T) {
	svc := NewProjectService(newMockProjectRepo(), newMockProductRepo())
	_, err := svc.Create(context.Background(), uuid.New(), dto.CreateProjectRequest{
		Name: "Orphan", ProductID: uuid.New(),
	})
	assert.ErrorIs(t, err, ErrProductNotFound)
}

func TestProjectService_GetByID_RecordsOpen(t *testing.T) {
	svc, repo, userID, project := newProjectFixture(t)

	got, err := svc.GetByID(context.Background(), userID, project.ID, false)
	require.NoError(t, err)
	assert.Equal(t, 1, got.OpenCount)
	assert.NotNil(t, repo.projects[project.ID].LastOpened)
}

func TestProjectService_GetByID_AccessDenied(t *testing.T) {
	svc, _, _, project := newProjectFixture(t)

	_, err := svc.GetByID(context.Background(), uuid.New(), project.ID, false)
	assert.ErrorIs(t, err, ErrProjectAccessDenied)

	// admins may read any project
	_, err = svc.GetByID(context.Background(), uuid.New(), project.ID, true)
	assert.NoError(t, err)
}

func TestProjectService_UpdateStatus(t *testing.T) {
	svc, _, userID, project := newProjectFixture(t)

	got, err := svc.UpdateStatus(context.Background(), userID, project.ID, model.ProjectCompleted)
	require.NoError(t, err)
	assert.Equal(t, model.ProjectCompleted, got.Status)

	got, err = svc.UpdateStatus(context.Background(), userID, project.ID, model.ProjectArchived)
	require.NoError(t, err)
	assert.Equal(t, model.ProjectArchived, got.Status)

	got, err = svc.UpdateStatus(context.Background(), userID, project.ID, model.ProjectDraft)
	require.NoError(t, err)
	assert.Equal(t, model.ProjectDraft, got.Status)
}

func TestProjectService_UpdateStatus_InvalidTransition(t *testing.T) {
	svc, _, userID, project := newProjectFixture(t)

	_, err := svc.UpdateStatus(context.Background(), userID, project.ID, model.ProjectArchived)
	assert.ErrorIs(t, err, ErrInvalidStatusChange)
}

func TestProjectService_UpdateElements_DerivesMetadata(t *testing.T) {
	svc, repo, userID, project := newProjectFixture(t)

	_, err := svc.UpdateElements(context.Background(), userID, project.ID, dto.UpdateElementsRequest{
		Elements: elementsOfKind(model.ElementText, 2),
	})
	require.NoError(t, err)

	stored := repo.projects[project.ID]
	assert.Equal(t, 2, stored.Metadata.TotalElements)
	assert.True(t, stored.Metadata.HasText)
	assert.False(t, stored.Metadata.HasImages)
	assert.Equal(t, model.ComplexitySimple, stored.Metadata.Complexity)

	_, err = svc.UpdateElements(context.Background(), userID, project.ID, dto.UpdateElementsRequest{
		Elements: elementsOfKind(model.ElementImage, 5),
	})
	require.NoError(t, err)
	assert.Equal(t, model.ComplexityMedium, repo.projects[project.ID].Metadata.Complexity)
}

func TestProjectService_CreateVersion_NumbersAreGapless(t *testing.T) {
	svc, _, userID, project := newProjectFixture(t)

	for i := 1; i <= 3; i++ {
		v, err := svc.CreateVersion(context.Background(), userID, project.ID, "")
		require.NoError(t, err)
		assert.Equal(t, i, v.VersionNumber)
	}

	versions, err := svc.ListVersions(context.Background(), userID, project.ID)
	require.NoError(t, err)
	require.Len(t, versions, 3)
	for i, v := range versions {
		assert.Equal(t, i+1, v.VersionNumber)
	}
}

func TestProjectService_RestoreVersion(t *testing.T) {
	svc, _, userID, project := newProjectFixture(t)

	first := elementsOfKind(model.ElementText, 1)
	_, err := svc.UpdateElements(context.Background(), userID, project.ID, dto.UpdateElementsRequest{Elements: first})
	require.NoError(t, err)
	_, err = svc.CreateVersion(context.Background(), userID, project.ID, "first draft")
	require.NoError(t, err)

	_, err = svc.UpdateElements(context.Background(), userID, project.ID, dto.UpdateElementsRequest{
		Elements: elementsOfKind(model.ElementShape, 4),
	})
	require.NoError(t, err)
	_, err = svc.CreateVersion(context.Background(), userID, project.ID, "second draft")
	require.NoError(t, err)

	restored, err := svc.RestoreVersion(context.Background(), userID, project.ID, 1)
	require.NoError(t, err)
	assert.Equal(t, 1, restored.CurrentVersion)
	require.Len(t, restored.Elements, 1)
	assert.Equal(t, first[0].ID, restored.Elements[0].ID)

	// restoring never appends to history
	versions, err := svc.ListVersions(context.Background(), userID, project.ID)
	require.NoError(t, err)
	assert.Len(t, versions, 2)

	// the next snapshot continues the sequence
	v, err := svc.CreateVersion(context.Background(), userID, project.ID, "")
	require.NoError(t, err)
	assert.Equal(t, 3, v.VersionNumber)
}

func TestProjectService_RestoreVersion_NotFound(t *testing.T) {
	svc, repo, userID, project := newProjectFixture(t)
	before := repo.projects[project.ID].LockVersion

	_, err := svc.RestoreVersion(context.Background(), userID, project.ID, 7)
	assert.ErrorIs(t, err, ErrVersionNotFound)
	assert.Equal(t, before, repo.projects[project.ID].LockVersion)
}

func TestProjectService_Duplicate(t *testing.T) {
	svc, repo, userID, project := newProjectFixture(t)

	_, err := svc.UpdateElements(context.Background(), userID, project.ID, dto.UpdateElementsRequest{
		Elements: elementsOfKind(model.ElementImage, 2),
	})
	require.NoError(t, err)
	_, err = svc.CreateVersion(context.Background(), userID, project.ID, "")
	require.NoError(t, err)

	dup, err := svc.Duplicate(context.Background(), userID, project.ID, "")
	require.NoError(t, err)

	assert.Equal(t, "Summer Tee (Copy)", dup.Name)
	assert.Equal(t, model.ProjectDraft, dup.Status)
	require.NotNil(t, dup.DuplicatedFrom)
	assert.Equal(t, project.ID, *dup.DuplicatedFrom)
	assert.Len(t, dup.Elements, 2)
	assert.Equal(t, 1, repo.projects[project.ID].DuplicateCount)

	// the copy starts with an empty history
	versions, err := svc.ListVersions(context.Background(), userID, dup.ID)
	require.NoError(t, err)
	assert.Empty(t, versions)

	// elements are deep copies, not aliases
	dup.Elements[0].Kind = model.ElementShape
	assert.Equal(t, model.ElementImage, repo.projects[project.ID].Elements[0].Kind)
}

func TestProjectService_Delete_OwnerOnly(t *testing.T) {
	svc, repo, userID, project := newProjectFixture(t)

	err := svc.Delete(context.Background(), uuid.New(), project.ID)
	assert.ErrorIs(t, err, ErrProjectAccessDenied)

	err = svc.Delete(context.Background(), userID, project.ID)
	require.NoError(t, err)
	assert.Empty(t, repo.projects)
}
