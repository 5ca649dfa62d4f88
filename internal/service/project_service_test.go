package service

import (
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/design-platform/design-platform-backend/internal/config"
	"github.com/design-platform/design-platform-backend/internal/repository"
	"github.com/design-platform/design-platform-backend/internal/types"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestProjectCreate(t *testing.T) {
	env := newTestEnv(t)
	manager, client, designer := fixtureUsers(t, env)
	ctx := context.Background()

	t.Run("client can create", func(t *testing.T) {
		project, err := env.services.Project.Create(ctx, client, "Brand Refresh", "new identity", nil)
		require.NoError(t, err)
		assert.Equal(t, client.ID, project.ClientID)
		assert.Nil(t, project.DesignerID)
	})

	t.Run("manager cannot create", func(t *testing.T) {
		_, err := env.services.Project.Create(ctx, manager, "Managed project", "", nil)
		assert.ErrorIs(t, err, ErrForbidden)
	})

	t.Run("designer cannot create", func(t *testing.T) {
		_, err := env.services.Project.Create(ctx, designer, "Designed project", "", nil)
		assert.ErrorIs(t, err, ErrForbidden)
	})

	t.Run("blank title rejected", func(t *testing.T) {
		_, err := env.services.Project.Create(ctx, client, "   ", "", nil)
		assert.ErrorIs(t, err, ErrInvalidInput)
	})

	t.Run("create with files stores blobs and records", func(t *testing.T) {
		uploads := []FileUpload{
			{Name: "brief.pdf", Body: strings.NewReader("the brief")},
			{Name: "logo.png", Body: strings.NewReader("png bytes")},
		}
		project, err := env.services.Project.Create(ctx, client, "With Files", "", uploads)
		require.NoError(t, err)

		files, err := env.services.File.ListFiles(ctx, project.ID)
		require.NoError(t, err)
		require.Len(t, files, 2)
		assert.Equal(t, "brief.pdf", files[0].FileName)
		assert.True(t, strings.HasPrefix(files[0].FilePath, project.ID+"/"))
	})
}

func TestProjectListRoleScoping(t *testing.T) {
	env := newTestEnv(t)
	manager, client, designer := fixtureUsers(t, env)
	otherClient := createUser(t, env.repos, "other-client", types.RoleClient)
	ctx := context.Background()

	mine := createProject(t, env, client, "Mine")
	createProject(t, env, otherClient, "Theirs")
	assigned := createProject(t, env, otherClient, "Assigned Work")

	_, err := env.services.Project.AssignDesigner(ctx, manager, assigned.ID, designer.ID)
	require.NoError(t, err)

	t.Run("manager sees everything newest first", func(t *testing.T) {
		projects, err := env.services.Project.List(ctx, manager)
		require.NoError(t, err)
		require.Len(t, projects, 3)

		titles := []string{projects[0].Title, projects[1].Title, projects[2].Title}
		assert.Equal(t, []string{"Assigned Work", "Theirs", "Mine"}, titles)
		for i := 1; i < len(projects); i++ {
			assert.False(t, projects[i].CreatedAt.After(projects[i-1].CreatedAt))
		}
	})

	t.Run("client sees only own projects", func(t *testing.T) {
		projects, err := env.services.Project.List(ctx, client)
		require.NoError(t, err)
		require.Len(t, projects, 1)
		assert.Equal(t, mine.ID, projects[0].ID)
	})

	t.Run("designer sees only assigned projects", func(t *testing.T) {
		projects, err := env.services.Project.List(ctx, designer)
		require.NoError(t, err)
		require.Len(t, projects, 1)
		assert.Equal(t, assigned.ID, projects[0].ID)
	})

	t.Run("designer names are resolved in listings", func(t *testing.T) {
		projects, err := env.services.Project.List(ctx, manager)
		require.NoError(t, err)

		var found *repository.Project
		for _, p := range projects {
			if p.ID == assigned.ID {
				found = p
			}
		}
		require.NotNil(t, found)
		require.NotNil(t, found.DesignerName)
		assert.Equal(t, designer.Name, *found.DesignerName)
	})
}

// brokenUserLookup behaves like the real user repository except that batch
// lookups fail, as they would when the users table is unreachable.
type brokenUserLookup struct {
	repository.UserRepository
}

func (r *brokenUserLookup) FindByIDs(ctx context.Context, ids []string) ([]*repository.User, error) {
	return nil, errors.New("users table unavailable")
}

func TestProjectListSurvivesNameLookupFailure(t *testing.T) {
	env := newTestEnv(t)
	manager, client, designer := fixtureUsers(t, env)
	ctx := context.Background()

	project := createProject(t, env, client, "Needs Names")
	_, err := env.services.Project.AssignDesigner(ctx, manager, project.ID, designer.ID)
	require.NoError(t, err)

	svc := NewProjectService(
		env.repos.ProjectRepo,
		&brokenUserLookup{UserRepository: env.repos.UserRepo},
		NewFileService(env.repos.ProjectFileRepo, env.store),
		NewPermissionService(),
		nil,
		nil,
		nil,
		&config.Config{FrontendURL: "http://localhost:3000"},
	)

	projects, err := svc.List(ctx, manager)
	require.NoError(t, err)
	require.Len(t, projects, 1)
	assert.Equal(t, project.ID, projects[0].ID)
	assert.Nil(t, projects[0].DesignerName)
}

func TestProjectGetAuthorization(t *testing.T) {
	env := newTestEnv(t)
	manager, client, designer := fixtureUsers(t, env)
	stranger := createUser(t, env.repos, "stranger", types.RoleClient)
	ctx := context.Background()

	project := createProject(t, env, client, "Visible")

	t.Run("owner can view", func(t *testing.T) {
		got, err := env.services.Project.GetByID(ctx, client, project.ID)
		require.NoError(t, err)
		assert.Equal(t, project.ID, got.ID)
	})

	t.Run("manager can view", func(t *testing.T) {
		_, err := env.services.Project.GetByID(ctx, manager, project.ID)
		assert.NoError(t, err)
	})

	t.Run("unrelated client cannot view", func(t *testing.T) {
		_, err := env.services.Project.GetByID(ctx, stranger, project.ID)
		assert.ErrorIs(t, err, ErrForbidden)
	})

	t.Run("unassigned designer cannot view", func(t *testing.T) {
		_, err := env.services.Project.GetByID(ctx, designer, project.ID)
		assert.ErrorIs(t, err, ErrForbidden)
	})

	t.Run("assigned designer can view", func(t *testing.T) {
		_, err := env.services.Project.AssignDesigner(ctx, manager, project.ID, designer.ID)
		require.NoError(t, err)

		_, err = env.services.Project.GetByID(ctx, designer, project.ID)
		assert.NoError(t, err)
	})

	t.Run("unknown project is not found", func(t *testing.T) {
		_, err := env.services.Project.GetByID(ctx, manager, "no-such-id")
		assert.ErrorIs(t, err, ErrNotFound)
	})
}

func TestProjectUpdate(t *testing.T) {
	env := newTestEnv(t)
	manager, client, _ := fixtureUsers(t, env)
	ctx := context.Background()

	project := createProject(t, env, client, "Old Title")

	t.Run("client cannot update", func(t *testing.T) {
		title := "Hijacked"
		_, err := env.services.Project.Update(ctx, client, project.ID, &title, nil)
		assert.ErrorIs(t, err, ErrForbidden)
	})

	t.Run("manager updates title and description", func(t *testing.T) {
		title := "New Title"
		desc := "revised scope"
		updated, err := env.services.Project.Update(ctx, manager, project.ID, &title, &desc)
		require.NoError(t, err)
		assert.Equal(t, "New Title", updated.Title)
		assert.Equal(t, "revised scope", updated.Description)
	})

	t.Run("nil fields leave values alone", func(t *testing.T) {
		updated, err := env.services.Project.Update(ctx, manager, project.ID, nil, nil)
		require.NoError(t, err)
		assert.Equal(t, "New Title", updated.Title)
	})
}

func TestAssignDesigner(t *testing.T) {
	env := newTestEnv(t)
	manager, client, designer := fixtureUsers(t, env)
	ctx := context.Background()

	project := createProject(t, env, client, "Assignable")

	t.Run("client cannot assign", func(t *testing.T) {
		_, err := env.services.Project.AssignDesigner(ctx, client, project.ID, designer.ID)
		assert.ErrorIs(t, err, ErrForbidden)
	})

	t.Run("target must be a designer", func(t *testing.T) {
		_, err := env.services.Project.AssignDesigner(ctx, manager, project.ID, client.ID)
		assert.ErrorIs(t, err, ErrNotDesigner)
	})

	t.Run("unknown target", func(t *testing.T) {
		_, err := env.services.Project.AssignDesigner(ctx, manager, project.ID, "missing-user")
		assert.ErrorIs(t, err, ErrUserNotFound)
	})

	t.Run("assign returns confirmed state", func(t *testing.T) {
		updated, err := env.services.Project.AssignDesigner(ctx, manager, project.ID, designer.ID)
		require.NoError(t, err)
		require.NotNil(t, updated.DesignerID)
		assert.Equal(t, designer.ID, *updated.DesignerID)
		require.NotNil(t, updated.DesignerName)
		assert.Equal(t, designer.Name, *updated.DesignerName)

		// Designer gets a persisted notification
		notifications, err := env.repos.NotificationRepo.FindByUserID(ctx, designer.ID, false)
		require.NoError(t, err)
		require.Len(t, notifications, 1)
	})

	t.Run("re-assigning same designer is a no-op", func(t *testing.T) {
		updated, err := env.services.Project.AssignDesigner(ctx, manager, project.ID, designer.ID)
		require.NoError(t, err)
		require.NotNil(t, updated.DesignerID)
		assert.Equal(t, designer.ID, *updated.DesignerID)

		// No duplicate notification for the no-op
		notifications, err := env.repos.NotificationRepo.FindByUserID(ctx, designer.ID, false)
		require.NoError(t, err)
		assert.Len(t, notifications, 1)
	})

	t.Run("unassign clears designer", func(t *testing.T) {
		updated, err := env.services.Project.UnassignDesigner(ctx, manager, project.ID)
		require.NoError(t, err)
		assert.Nil(t, updated.DesignerID)
	})

	t.Run("unassign with nothing assigned is a no-op", func(t *testing.T) {
		updated, err := env.services.Project.UnassignDesigner(ctx, manager, project.ID)
		require.NoError(t, err)
		assert.Nil(t, updated.DesignerID)
	})
}

func TestProjectDeleteCascade(t *testing.T) {
	env := newTestEnv(t)
	manager, client, _ := fixtureUsers(t, env)
	ctx := context.Background()

	uploads := []FileUpload{
		{Name: "a.png", Body: strings.NewReader("aaa")},
		{Name: "b.png", Body: strings.NewReader("bbb")},
	}
	project, err := env.services.Project.Create(ctx, client, "Doomed", "", uploads)
	require.NoError(t, err)
	require.Equal(t, 2, env.store.Len())

	t.Run("client cannot delete", func(t *testing.T) {
		err := env.services.Project.Delete(ctx, client, project.ID)
		assert.ErrorIs(t, err, ErrForbidden)
	})

	t.Run("manager delete removes everything", func(t *testing.T) {
		require.NoError(t, env.services.Project.Delete(ctx, manager, project.ID))

		got, err := env.repos.ProjectRepo.FindByID(ctx, project.ID)
		require.NoError(t, err)
		assert.Nil(t, got)

		files, err := env.repos.ProjectFileRepo.FindByProjectID(ctx, project.ID)
		require.NoError(t, err)
		assert.Empty(t, files)

		assert.Equal(t, 0, env.store.Len())
	})

	t.Run("deleting again is not found", func(t *testing.T) {
		err := env.services.Project.Delete(ctx, manager, project.ID)
		assert.ErrorIs(t, err, ErrNotFound)
	})
}
