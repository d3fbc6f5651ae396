package repository

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/printcraft/printcraft-api/internal/model"
)

type DesignRepository interface {
	Create(ctx context.Context, design *model.Design) error
	GetByID(ctx context.Context, id uuid.UUID) (*model.Design, error)
	ListVisible(ctx context.Context, userID uuid.UUID) ([]model.Design, error)
	Update(ctx context.Context, design *model.Design) error
	Delete(ctx context.Context, id uuid.UUID) error
}

type pgDesignRepo struct{ pool *pgxpool.Pool }

func NewDesignRepository(pool *pgxpool.Pool) DesignRepository {
	return &pgDesignRepo{pool: pool}
}

func (r *pgDesignRepo) Create(ctx context.Context, design *model.Design) error {
	design.ID = uuid.New()
	err := r.pool.QueryRow(ctx,
		`INSERT INTO designs (id, user_id, name, image_path, thumb_path, public, created_at, updated_at)
		 VALUES ($1, $2, $3, $4, $5, $6, NOW(), NOW()) RETURNING created_at, updated_at`,
		design.ID, design.UserID, design.Name, design.ImagePath, design.ThumbPath, design.Public,
	).Scan(&design.CreatedAt, &design.UpdatedAt)
	if err != nil {
		return fmt.Errorf("create design: %w", err)
	}
	return nil
}

func (r *pgDesignRepo) GetByID(ctx context.Context, id uuid.UUID) (*model.Design, error) {
	d := &model.Design{}
	err := r.pool.QueryRow(ctx,
		`SELECT id, user_id, name, image_path, thumb_path, public, created_at, updated_at
		 FROM designs WHERE id = $1`, id,
	).Scan(&d.ID, &d.UserID, &d.Name, &d.ImagePath, &d.ThumbPath, &d.Public, &d.CreatedAt, &d.UpdatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get design: %w", err)
	}
	return d, nil
}

// ListVisible returns the user's own designs plus everything public.
func (r *pgDesignRepo) ListVisible(ctx context.Context, userID uuid.UUID) ([]model.Design, error) {
	rows, err := r.pool.Query(ctx,
		`SELECT id, user_id, name, image_path, thumb_path, public, created_at, updated_at
		 FROM designs WHERE user_id = $1 OR public ORDER BY created_at DESC`, userID,
	)
	if err != nil {
		return nil, fmt.Errorf("list designs: %w", err)
	}
	defer rows.Close()

	var designs []model.Design
	for rows.Next() {
		var d model.Design
		if err := rows.Scan(&d.ID, &d.UserID, &d.Name, &d.ImagePath, &d.ThumbPath, &d.Public,
			&d.CreatedAt, &d.UpdatedAt); err != nil {
			return nil, fmt.Errorf("scan design: %w", err)
		}
		designs = append(designs, d)
	}
	return designs, nil
}

func (r *pgDesignRepo) Update(ctx context.Context, design *model.Design) error {
	err := r.pool.QueryRow(ctx,
		`UPDATE designs SET name=$2, public=$3, updated_at=NOW() WHERE id=$1 RETURNING updated_at`,
		design.ID, design.Name, design.Public,
	).Scan(&design.UpdatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return ErrNotFound
		}
		return fmt.Errorf("update design: %w", err)
	}
	return nil
}

func (r *pgDesignRepo) Delete(ctx context.Context, id uuid.UUID) error {
	ct, err := r.pool.Exec(ctx, `DELETE FROM designs WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("delete design: %w", err)
	}
	if ct.RowsAffected() == 0 {
		return ErrNotFound
	}
	return nil
}

type FontRepository interface {
	Create(ctx context.Context, font *model.Font) error
	List(ctx context.Context, includePremium bool) ([]model.Font, error)
	Delete(ctx context.Context, id uuid.UUID) error
}

type pgFontRepo struct{ pool *pgxpool.Pool }

func NewFontRepository(pool *pgxpool.Pool) FontRepository {
	return &pgFontRepo{pool: pool}
}

func (r *pgFontRepo) Create(ctx context.Context, font *model.Font) error {
	font.ID = uuid.New()
	err := r.pool.QueryRow(ctx,
		`INSERT INTO fonts (id, name, family, file_path, premium, created_at)
		 VALUES ($1, $2, $3, $4, $5, NOW()) RETURNING created_at`,
		font.ID, font.Name, font.Family, font.FilePath, font.Premium,
	).Scan(&font.CreatedAt)
	if err != nil {
		return fmt.Errorf("create font: %w", err)
	}
	return nil
}

func (r *pgFontRepo) List(ctx context.Context, includePremium bool) ([]model.Font, error) {
	rows, err := r.pool.Query(ctx,
		`SELECT id, name, family, file_path, premium FROM fonts
		 WHERE $1 OR NOT premium ORDER BY name`, includePremium,
	)
	if err != nil {
		return nil, fmt.Errorf("list fonts: %w", err)
	}
	defer rows.Close()

	var fonts []model.Font
	for rows.Next() {
		var f model.Font
		if err := rows.Scan(&f.ID, &f.Name, &f.Family, &f.FilePath, &f.Premium); err != nil {
			return nil, fmt.Errorf("scan font: %w", err)
		}
		fonts = append(fonts, f)
	}
	return fonts, nil
}

func (r *pgFontRepo) Delete(ctx context.Context, id uuid.UUID) error {
	ct, err := r.pool.Exec(ctx, `DELETE FROM fonts WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("delete font: %w", err)
	}
	if ct.RowsAffected() == 0 {
		return ErrNotFound
	}
	return nil
}

type SuggestionRepository interface {
	Create(ctx context.Context, s *model.Suggestion) error
	ListByUser(ctx context.Context, userID uuid.UUID) ([]model.Suggestion, error)
	ListAll(ctx context.Context) ([]model.Suggestion, error)
	UpdateStatus(ctx context.Context, id uuid.UUID, status model.SuggestionStatus) error
}

type pgSuggestionRepo struct{ pool *pgxpool.Pool }

func NewSuggestionRepository(pool *pgxpool.Pool) SuggestionRepository {
	return &pgSuggestionRepo{pool: pool}
}

func (r *pgSuggestionRepo) Create(ctx context.Context, s *model.Suggestion) error {
	s.ID = uuid.New()
	s.Status = model.SuggestionNew
	err := r.pool.QueryRow(ctx,
		`INSERT INTO suggestions (id, user_id, title, body, status, created_at, updated_at)
		 VALUES ($1, $2, $3, $4, $5, NOW(), NOW()) RETURNING created_at, updated_at`,
		s.ID, s.UserID, s.Title, s.Body, s.Status,
	).Scan(&s.CreatedAt, &s.UpdatedAt)
	if err != nil {
		return fmt.Errorf("create suggestion: %w", err)
	}
	return nil
}

func (r *pgSuggestionRepo) ListByUser(ctx context.Context, userID uuid.UUID) ([]model.Suggestion, error) {
	return r.list(ctx, `SELECT id, user_id, title, body, status, created_at, updated_at
		FROM suggestions WHERE user_id = $1 ORDER BY created_at DESC`, userID)
}

func (r *pgSuggestionRepo) ListAll(ctx context.Context) ([]model.Suggestion, error) {
	return r.list(ctx, `SELECT id, user_id, title, body, status, created_at, updated_at
		FROM suggestions ORDER BY created_at DESC`)
}

func (r *pgSuggestionRepo) list(ctx context.Context, query string, args ...any) ([]model.Suggestion, error) {
	rows, err := r.pool.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("list suggestions: %w", err)
	}
	defer rows.Close()

	var suggestions []model.Suggestion
	for rows.Next() {
		var s model.Suggestion
		if err := rows.Scan(&s.ID, &s.UserID, &s.Title, &s.Body, &s.Status, &s.CreatedAt, &s.UpdatedAt); err != nil {
			return nil, fmt.Errorf("scan suggestion: %w", err)
		}
		suggestions = append(suggestions, s)
	}
	return suggestions, nil
}

func (r *pgSuggestionRepo) UpdateStatus(ctx context.Context, id uuid.UUID, status model.SuggestionStatus) error {
	ct, err := r.pool.Exec(ctx,
		`UPDATE suggestions SET status = $2, updated_at = NOW() WHERE id = $1`, id, status,
	)
	if err != nil {
		return fmt.Errorf("update suggestion status: %w", err)
	}
	if ct.RowsAffected() == 0 {
		return ErrNotFound
	}
	return nil
}
