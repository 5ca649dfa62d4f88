package repository

import (
	"context"
	"database/sql"
	"time"

	"github.com/jmoiron/sqlx"
)

type ProjectFile struct {
	ID         string  `db:"id"`
	ProjectID  string  `db:"project_id"`
	FilePath   string  `db:"file_path"`
	FileName   string  `db:"file_name"`
	UploadedBy *string `db:"uploaded_by"`
	CreatedAt  time.Time `db:"created_at"`
}

type ProjectFileRepository interface {
	Create(ctx context.Context, file *ProjectFile) error
	FindByID(ctx context.Context, id string) (*ProjectFile, error)
	FindByProjectID(ctx context.Context, projectID string) ([]*ProjectFile, error)
	Delete(ctx context.Context, id string) error
	DeleteByProjectID(ctx context.Context, projectID string) error
	CountByProjectID(ctx context.Context, projectID string) (int, error)
}

type sqlxProjectFileRepository struct {
	db *sqlx.DB
}

func NewProjectFileRepository(db *sqlx.DB) ProjectFileRepository {
	return &sqlxProjectFileRepository{db: db}
}

func (r *sqlxProjectFileRepository) Create(ctx context.Context, file *ProjectFile) error {
	query := `
		INSERT INTO project_files (project_id, file_path, file_name, uploaded_by)
		VALUES ($1, $2, $3, $4)
		RETURNING id, created_at`

	return r.db.QueryRowxContext(ctx, query,
		file.ProjectID, file.FilePath, file.FileName, file.UploadedBy,
	).Scan(&file.ID, &file.CreatedAt)
}

func (r *sqlxProjectFileRepository) FindByID(ctx context.Context, id string) (*ProjectFile, error) {
	query := `
		SELECT id, project_id, file_path, file_name, uploaded_by, created_at
		FROM project_files
		WHERE id = $1`

	file := &ProjectFile{}
	err := r.db.GetContext(ctx, file, query, id)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return file, nil
}

func (r *sqlxProjectFileRepository) FindByProjectID(ctx context.Context, projectID string) ([]*ProjectFile, error) {
	query := `
		SELECT id, project_id, file_path, file_name, uploaded_by, created_at
		FROM project_files
		WHERE project_id = $1
		ORDER BY created_at`

	var files []*ProjectFile
	if err := r.db.SelectContext(ctx, &files, query, projectID); err != nil {
		return nil, err
	}
	return files, nil
}

func (r *sqlxProjectFileRepository) Delete(ctx context.Context, id string) error {
	_, err := r.db.ExecContext(ctx, `DELETE FROM project_files WHERE id = $1`, id)
	return err
}

func (r *sqlxProjectFileRepository) DeleteByProjectID(ctx context.Context, projectID string) error {
	_, err := r.db.ExecContext(ctx, `DELETE FROM project_files WHERE project_id = $1`, projectID)
	return err
}

func (r *sqlxProjectFileRepository) CountByProjectID(ctx context.Context, projectID string) (int, error) {
	var count int
	err := r.db.GetContext(ctx, &count,
		`SELECT COUNT(*) FROM project_files WHERE project_id = $1`, projectID)
	return count, err
}
