package repository

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/printcraft/printcraft-api/internal/model"
)

type ProjectRepository interface {
	Create(ctx context.Context, project *model.Project) error
	GetByID(ctx context.Context, id uuid.UUID) (*model.Project, error)
	ListByUser(ctx context.Context, userID uuid.UUID, limit, offset int) ([]model.Project, int, error)
	Save(ctx context.Context, project *model.Project) error
	Delete(ctx context.Context, id uuid.UUID) error
	TouchOpened(ctx context.Context, id uuid.UUID) error
	IncrementDuplicateCount(ctx context.Context, id uuid.UUID) error
	CreateVersion(ctx context.Context, version *model.ProjectVersion) error
	GetVersion(ctx context.Context, projectID uuid.UUID, number int) (*model.ProjectVersion, error)
	ListVersions(ctx context.Context, projectID uuid.UUID) ([]model.ProjectVersion, error)
	ComplexityBreakdown(ctx context.Context) (map[model.Complexity]int, error)
}

type pgProjectRepo struct{ pool *pgxpool.Pool }

func NewProjectRepository(pool *pgxpool.Pool) ProjectRepository {
	return &pgProjectRepo{pool: pool}
}

const projectColumns = `id, user_id, name, product_id, variant, status, elements, canvas, tags, category,
	metadata, current_version, duplicated_from, duplicate_count, last_opened, open_count, lock_version,
	created_at, updated_at`

func (r *pgProjectRepo) Create(ctx context.Context, project *model.Project) error {
	project.ID = uuid.New()
	if project.Status == "" {
		project.Status = model.ProjectDraft
	}
	project.DeriveMetadata()

	elements, canvas, metadata, err := encodeProjectDocs(project)
	if err != nil {
		return err
	}
	query := `INSERT INTO projects (id, user_id, name, product_id, variant, status, elements, canvas, tags, category,
			  metadata, current_version, duplicated_from, duplicate_count, created_at, updated_at)
			  VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, NOW(), NOW())
			  RETURNING created_at, updated_at`
	err = r.pool.QueryRow(ctx, query,
		project.ID, project.UserID, project.Name, project.ProductID, project.Variant, project.Status,
		elements, canvas, project.Tags, project.Category, metadata,
		project.CurrentVersion, project.DuplicatedFrom, project.DuplicateCount,
	).Scan(&project.CreatedAt, &project.UpdatedAt)
	if err != nil {
		return fmt.Errorf("create project: %w", err)
	}
	return nil
}

func (r *pgProjectRepo) GetByID(ctx context.Context, id uuid.UUID) (*model.Project, error) {
	row := r.pool.QueryRow(ctx, `SELECT `+projectColumns+` FROM projects WHERE id = $1`, id)
	project, err := scanProject(row)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get project: %w", err)
	}
	return project, nil
}

func (r *pgProjectRepo) ListByUser(ctx context.Context, userID uuid.UUID, limit, offset int) ([]model.Project, int, error) {
	var total int
	if err := r.pool.QueryRow(ctx, `SELECT COUNT(*) FROM projects WHERE user_id = $1`, userID).Scan(&total); err != nil {
		return nil, 0, fmt.Errorf("count projects: %w", err)
	}

	rows, err := r.pool.Query(ctx,
		`SELECT `+projectColumns+` FROM projects WHERE user_id = $1 ORDER BY updated_at DESC LIMIT $2 OFFSET $3`,
		userID, limit, offset,
	)
	if err != nil {
		return nil, 0, fmt.Errorf("list projects: %w", err)
	}
	defer rows.Close()

	var projects []model.Project
	for rows.Next() {
		project, err := scanProject(rows)
		if err != nil {
			return nil, 0, fmt.Errorf("scan project: %w", err)
		}
		projects = append(projects, *project)
	}
	return projects, total, nil
}

// Save persists the mutable half of a project with a compare-and-swap on
// lock_version; a miss surfaces as ErrVersionConflict.
func (r *pgProjectRepo) Save(ctx context.Context, project *model.Project) error {
	project.DeriveMetadata()

	elements, canvas, metadata, err := encodeProjectDocs(project)
	if err != nil {
		return err
	}
	ct, err := r.pool.Exec(ctx,
		`UPDATE projects SET name=$2, variant=$3, status=$4, elements=$5, canvas=$6, tags=$7, category=$8,
		 metadata=$9, current_version=$10, lock_version=lock_version+1, updated_at=NOW()
		 WHERE id=$1 AND lock_version=$11`,
		project.ID, project.Name, project.Variant, project.Status, elements, canvas,
		project.Tags, project.Category, metadata, project.CurrentVersion, project.LockVersion,
	)
	if err != nil {
		return fmt.Errorf("save project: %w", err)
	}
	if ct.RowsAffected() == 0 {
		return ErrVersionConflict
	}
	project.LockVersion++
	return nil
}

func (r *pgProjectRepo) Delete(ctx context.Context, id uuid.UUID) error {
	ct, err := r.pool.Exec(ctx, `DELETE FROM projects WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("delete project: %w", err)
	}
	if ct.RowsAffected() == 0 {
		return ErrNotFound
	}
	return nil
}

// TouchOpened records a read-as-side-effect: every fetch by id bumps
// open_count and last_opened without touching lock_version.
func (r *pgProjectRepo) TouchOpened(ctx context.Context, id uuid.UUID) error {
	_, err := r.pool.Exec(ctx,
		`UPDATE projects SET last_opened = NOW(), open_count = open_count + 1 WHERE id = $1`, id,
	)
	if err != nil {
		return fmt.Errorf("touch project: %w", err)
	}
	return nil
}

func (r *pgProjectRepo) IncrementDuplicateCount(ctx context.Context, id uuid.UUID) error {
	_, err := r.pool.Exec(ctx,
		`UPDATE projects SET duplicate_count = duplicate_count + 1, updated_at = NOW() WHERE id = $1`, id,
	)
	if err != nil {
		return fmt.Errorf("increment duplicate count: %w", err)
	}
	return nil
}

func (r *pgProjectRepo) CreateVersion(ctx context.Context, version *model.ProjectVersion) error {
	version.ID = uuid.New()
	elements, err := json.Marshal(version.Elements)
	if err != nil {
		return fmt.Errorf("encode version elements: %w", err)
	}
	err = r.pool.QueryRow(ctx,
		`INSERT INTO project_versions (id, project_id, version_number, elements, note, created_at)
		 VALUES ($1, $2, $3, $4, $5, NOW()) RETURNING created_at`,
		version.ID, version.ProjectID, version.VersionNumber, elements, version.Note,
	).Scan(&version.CreatedAt)
	if err != nil {
		return fmt.Errorf("create project version: %w", err)
	}
	return nil
}

func (r *pgProjectRepo) GetVersion(ctx context.Context, projectID uuid.UUID, number int) (*model.ProjectVersion, error) {
	v := &model.ProjectVersion{}
	var elements []byte
	err := r.pool.QueryRow(ctx,
		`SELECT id, project_id, version_number, elements, note, created_at
		 FROM project_versions WHERE project_id = $1 AND version_number = $2`,
		projectID, number,
	).Scan(&v.ID, &v.ProjectID, &v.VersionNumber, &elements, &v.Note, &v.CreatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get project version: %w", err)
	}
	if err := json.Unmarshal(elements, &v.Elements); err != nil {
		return nil, fmt.Errorf("decode version elements: %w", err)
	}
	return v, nil
}

func (r *pgProjectRepo) ListVersions(ctx context.Context, projectID uuid.UUID) ([]model.ProjectVersion, error) {
	rows, err := r.pool.Query(ctx,
		`SELECT id, project_id, version_number, elements, note, created_at
		 FROM project_versions WHERE project_id = $1 ORDER BY version_number`, projectID,
	)
	if err != nil {
		return nil, fmt.Errorf("list project versions: %w", err)
	}
	defer rows.Close()

	var versions []model.ProjectVersion
	for rows.Next() {
		var v model.ProjectVersion
		var elements []byte
		if err := rows.Scan(&v.ID, &v.ProjectID, &v.VersionNumber, &elements, &v.Note, &v.CreatedAt); err != nil {
			return nil, fmt.Errorf("scan project version: %w", err)
		}
		if err := json.Unmarshal(elements, &v.Elements); err != nil {
			return nil, fmt.Errorf("decode version elements: %w", err)
		}
		versions = append(versions, v)
	}
	return versions, nil
}

func (r *pgProjectRepo) ComplexityBreakdown(ctx context.Context) (map[model.Complexity]int, error) {
	rows, err := r.pool.Query(ctx,
		`SELECT metadata->>'complexity', COUNT(*) FROM projects GROUP BY 1`,
	)
	if err != nil {
		return nil, fmt.Errorf("complexity breakdown: %w", err)
	}
	defer rows.Close()

	out := make(map[model.Complexity]int)
	for rows.Next() {
		var c string
		var n int
		if err := rows.Scan(&c, &n); err != nil {
			return nil, fmt.Errorf("scan complexity row: %w", err)
		}
		out[model.Complexity(c)] = n
	}
	return out, nil
}

func encodeProjectDocs(p *model.Project) (elements, canvas, metadata []byte, err error) {
	if elements, err = json.Marshal(p.Elements); err != nil {
		return nil, nil, nil, fmt.Errorf("encode elements: %w", err)
	}
	if canvas, err = json.Marshal(p.Canvas); err != nil {
		return nil, nil, nil, fmt.Errorf("encode canvas: %w", err)
	}
	if metadata, err = json.Marshal(p.Metadata); err != nil {
		return nil, nil, nil, fmt.Errorf("encode metadata: %w", err)
	}
	return elements, canvas, metadata, nil
}

func scanProject(row pgx.Row) (*model.Project, error) {
	p := &model.Project{}
	var elements, canvas, metadata []byte
	err := row.Scan(&p.ID, &p.UserID, &p.Name, &p.ProductID, &p.Variant, &p.Status,
		&elements, &canvas, &p.Tags, &p.Category, &metadata, &p.CurrentVersion,
		&p.DuplicatedFrom, &p.DuplicateCount, &p.LastOpened, &p.OpenCount, &p.LockVersion,
		&p.CreatedAt, &p.UpdatedAt)
	if err != nil {
		return nil, err
	}
	if err := json.Unmarshal(elements, &p.Elements); err != nil {
		return nil, fmt.Errorf("decode elements: %w", err)
	}
	if err := json.Unmarshal(canvas, &p.Canvas); err != nil {
		return nil, fmt.Errorf("decode canvas: %w", err)
	}
	if err := json.Unmarshal(metadata, &p.Metadata); err != nil {
		return nil, fmt.Errorf("decode metadata: %w", err)
	}
	return p, nil
}
