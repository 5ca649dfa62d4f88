package service

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNotificationsOnAssignment(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()
	manager, client, designer := fixtureUsers(t, env)
	project := createProject(t, env, client, "Brand Refresh")

	_, err := env.services.Project.AssignDesigner(ctx, manager, project.ID, designer.ID)
	require.NoError(t, err)

	notifications, err := env.services.Notification.List(ctx, designer.ID, false)
	require.NoError(t, err)
	require.Len(t, notifications, 1)
	assert.False(t, notifications[0].Read)
	assert.Contains(t, notifications[0].Message, "Brand Refresh")

	total, unread, err := env.services.Notification.Count(ctx, designer.ID)
	require.NoError(t, err)
	assert.Equal(t, 1, total)
	assert.Equal(t, 1, unread)
}

func TestNotificationMarkAsRead(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()
	manager, client, designer := fixtureUsers(t, env)
	project := createProject(t, env, client, "Brand Refresh")

	_, err := env.services.Project.AssignDesigner(ctx, manager, project.ID, designer.ID)
	require.NoError(t, err)

	notifications, err := env.services.Notification.List(ctx, designer.ID, true)
	require.NoError(t, err)
	require.Len(t, notifications, 1)
	id := notifications[0].ID

	t.Run("only the owner can mark", func(t *testing.T) {
		err := env.services.Notification.MarkAsRead(ctx, client.ID, id)
		assert.ErrorIs(t, err, ErrForbidden)
	})

	require.NoError(t, env.services.Notification.MarkAsRead(ctx, designer.ID, id))

	unreadOnly, err := env.services.Notification.List(ctx, designer.ID, true)
	require.NoError(t, err)
	assert.Empty(t, unreadOnly)

	_, unread, err := env.services.Notification.Count(ctx, designer.ID)
	require.NoError(t, err)
	assert.Equal(t, 0, unread)

	t.Run("unknown id", func(t *testing.T) {
		err := env.services.Notification.MarkAsRead(ctx, designer.ID, "missing")
		assert.ErrorIs(t, err, ErrNotFound)
	})
}

func TestNotificationMarkAllAndDelete(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()
	manager, client, designer := fixtureUsers(t, env)

	// Assign and unassign produce one notification each for the designer.
	project := createProject(t, env, client, "Brand Refresh")
	_, err := env.services.Project.AssignDesigner(ctx, manager, project.ID, designer.ID)
	require.NoError(t, err)
	_, err = env.services.Project.UnassignDesigner(ctx, manager, project.ID)
	require.NoError(t, err)

	total, unread, err := env.services.Notification.Count(ctx, designer.ID)
	require.NoError(t, err)
	require.Equal(t, 2, total)
	require.Equal(t, 2, unread)

	require.NoError(t, env.services.Notification.MarkAllAsRead(ctx, designer.ID))
	_, unread, err = env.services.Notification.Count(ctx, designer.ID)
	require.NoError(t, err)
	assert.Equal(t, 0, unread)

	notifications, err := env.services.Notification.List(ctx, designer.ID, false)
	require.NoError(t, err)
	require.Len(t, notifications, 2)

	t.Run("only the owner can delete", func(t *testing.T) {
		err := env.services.Notification.Delete(ctx, client.ID, notifications[0].ID)
		assert.ErrorIs(t, err, ErrForbidden)
	})

	require.NoError(t, env.services.Notification.Delete(ctx, designer.ID, notifications[0].ID))
	total, _, err = env.services.Notification.Count(ctx, designer.ID)
	require.NoError(t, err)
	assert.Equal(t, 1, total)
}
