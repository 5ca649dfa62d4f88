package service

import (
	"context"
	"testing"

	"github.com/design-platform/design-platform-backend/internal/config"
	"github.com/design-platform/design-platform-backend/internal/notification"
	"github.com/design-platform/design-platform-backend/internal/repository"
	"github.com/design-platform/design-platform-backend/internal/storage"
	"github.com/design-platform/design-platform-backend/internal/types"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"
)

type testEnv struct {
	repos    *repository.Repositories
	store    *storage.MemoryStore
	services *Services
}

func newTestEnv(t *testing.T) *testEnv {
	t.Helper()

	repos := repository.NewInMemoryRepositories()
	store := storage.NewMemoryStore()

	cfg := &config.Config{
		JWTSecret:     "test-secret",
		JWTExpiry:     1,
		RefreshExpiry: 1,
		FrontendURL:   "http://localhost:3000",
	}

	notifSvc := notification.NewService(repos.NotificationRepo)

	services := NewServices(&ServiceDeps{
		Config:   cfg,
		Repos:    repos,
		Store:    store,
		NotifSvc: notifSvc,
	})

	return &testEnv{repos: repos, store: store, services: services}
}

func createUser(t *testing.T, repos *repository.Repositories, name, role string) *repository.User {
	t.Helper()

	hashed, err := bcrypt.GenerateFromPassword([]byte("password123"), bcrypt.MinCost)
	require.NoError(t, err)

	user := &repository.User{
		Email:    name + "@test.example",
		Password: string(hashed),
		Name:     name,
		Role:     role,
	}
	require.NoError(t, repos.UserRepo.Create(context.Background(), user))
	return user
}

func createProject(t *testing.T, env *testEnv, client *repository.User, title string) *repository.Project {
	t.Helper()

	project, err := env.services.Project.Create(context.Background(), client, title, "a project", nil)
	require.NoError(t, err)
	return project
}

func fixtureUsers(t *testing.T, env *testEnv) (manager, client, designer *repository.User) {
	t.Helper()
	manager = createUser(t, env.repos, "manager", types.RoleProjectManager)
	client = createUser(t, env.repos, "client", types.RoleClient)
	designer = createUser(t, env.repos, "designer", types.RoleDesigner)
	return
}
