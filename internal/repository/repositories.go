package repository

import (
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/jmoiron/sqlx"
)

type Repositories struct {
	// pgxpool repositories
	UserRepo         UserRepository
	ProjectRepo      ProjectRepository
	NotificationRepo NotificationRepository

	// sqlx repository (project files)
	ProjectFileRepo ProjectFileRepository
}

func NewRepositories(pool *pgxpool.Pool, db *sqlx.DB) *Repositories {
	return &Repositories{
		UserRepo:         NewUserRepository(pool),
		ProjectRepo:      NewProjectRepository(pool),
		NotificationRepo: NewNotificationRepository(pool),
		ProjectFileRepo:  NewProjectFileRepository(db),
	}
}

// NewInMemoryRepositories creates map-backed repositories for tests and for
// running without a database.
func NewInMemoryRepositories() *Repositories {
	return &Repositories{
		UserRepo:         newInMemoryUserRepository(),
		ProjectRepo:      newInMemoryProjectRepository(),
		NotificationRepo: newInMemoryNotificationRepository(),
		ProjectFileRepo:  newInMemoryProjectFileRepository(),
	}
}
