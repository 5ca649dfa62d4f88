package repository

import (
	"context"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

type Project struct {
	ID          string
	Title       string
	Description string
	ClientID    string
	DesignerID  *string
	CreatedAt   time.Time
	UpdatedAt   time.Time

	// DesignerName is resolved from the users table, never persisted.
	DesignerName *string
}

type ProjectRepository interface {
	Create(ctx context.Context, project *Project) error
	FindByID(ctx context.Context, id string) (*Project, error)
	FindAll(ctx context.Context) ([]*Project, error)
	FindByClientID(ctx context.Context, clientID string) ([]*Project, error)
	FindByDesignerID(ctx context.Context, designerID string) ([]*Project, error)
	Update(ctx context.Context, project *Project) error
	UpdateDesigner(ctx context.Context, projectID string, designerID *string) error
	Delete(ctx context.Context, id string) error
}

type pgProjectRepository struct {
	pool *pgxpool.Pool
}

func NewProjectRepository(pool *pgxpool.Pool) ProjectRepository {
	return &pgProjectRepository{pool: pool}
}

func (r *pgProjectRepository) Create(ctx context.Context, project *Project) error {
	query := `
		INSERT INTO projects (title, description, client_id)
		VALUES ($1, $2, $3)
		RETURNING id, created_at, updated_at
	`
	return r.pool.QueryRow(ctx, query,
		project.Title, project.Description, project.ClientID,
	).Scan(&project.ID, &project.CreatedAt, &project.UpdatedAt)
}

func (r *pgProjectRepository) FindByID(ctx context.Context, id string) (*Project, error) {
	query := `
		SELECT id, title, description, client_id, designer_id, created_at, updated_at
		FROM projects WHERE id = $1
	`
	project := &Project{}
	err := r.pool.QueryRow(ctx, query, id).Scan(
		&project.ID, &project.Title, &project.Description, &project.ClientID,
		&project.DesignerID, &project.CreatedAt, &project.UpdatedAt,
	)
	if err == pgx.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return project, nil
}

func (r *pgProjectRepository) FindAll(ctx context.Context) ([]*Project, error) {
	query := `
		SELECT id, title, description, client_id, designer_id, created_at, updated_at
		FROM projects ORDER BY created_at DESC
	`
	rows, err := r.pool.Query(ctx, query)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	return scanProjects(rows)
}

func (r *pgProjectRepository) FindByClientID(ctx context.Context, clientID string) ([]*Project, error) {
	query := `
		SELECT id, title, description, client_id, designer_id, created_at, updated_at
		FROM projects WHERE client_id = $1 ORDER BY created_at DESC
	`
	rows, err := r.pool.Query(ctx, query, clientID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	return scanProjects(rows)
}

func (r *pgProjectRepository) FindByDesignerID(ctx context.Context, designerID string) ([]*Project, error) {
	query := `
		SELECT id, title, description, client_id, designer_id, created_at, updated_at
		FROM projects WHERE designer_id = $1 ORDER BY created_at DESC
	`
	rows, err := r.pool.Query(ctx, query, designerID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	return scanProjects(rows)
}

func (r *pgProjectRepository) Update(ctx context.Context, project *Project) error {
	query := `
		UPDATE projects SET title = $1, description = $2, updated_at = NOW()
		WHERE id = $3
		RETURNING updated_at
	`
	return r.pool.QueryRow(ctx, query,
		project.Title, project.Description, project.ID,
	).Scan(&project.UpdatedAt)
}

// UpdateDesigner sets or clears the assignment field. A nil designerID
// unassigns the project.
func (r *pgProjectRepository) UpdateDesigner(ctx context.Context, projectID string, designerID *string) error {
	query := `UPDATE projects SET designer_id = $1, updated_at = NOW() WHERE id = $2`
	_, err := r.pool.Exec(ctx, query, designerID, projectID)
	return err
}

func (r *pgProjectRepository) Delete(ctx context.Context, id string) error {
	_, err := r.pool.Exec(ctx, `DELETE FROM projects WHERE id = $1`, id)
	return err
}

func scanProjects(rows pgx.Rows) ([]*Project, error) {
	var projects []*Project
	for rows.Next() {
		project := &Project{}
		if err := rows.Scan(
			&project.ID, &project.Title, &project.Description, &project.ClientID,
			&project.DesignerID, &project.CreatedAt, &project.UpdatedAt,
		); err != nil {
			return nil, err
		}
		projects = append(projects, project)
	}
	return projects, rows.Err()
}
