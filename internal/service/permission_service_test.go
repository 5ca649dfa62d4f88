package service

import (
	"testing"

	"github.com/design-platform/design-platform-backend/internal/repository"
	"github.com/design-platform/design-platform-backend/internal/types"
	"github.com/stretchr/testify/assert"
)

func TestPermissions(t *testing.T) {
	perms := NewPermissionService()

	manager := &repository.User{ID: "m1", Role: types.RoleProjectManager}
	owner := &repository.User{ID: "c1", Role: types.RoleClient}
	stranger := &repository.User{ID: "c2", Role: types.RoleClient}
	designer := &repository.User{ID: "d1", Role: types.RoleDesigner}
	otherDesigner := &repository.User{ID: "d2", Role: types.RoleDesigner}

	project := &repository.Project{ID: "p1", ClientID: "c1", DesignerID: &designer.ID}

	t.Run("view", func(t *testing.T) {
		assert.True(t, perms.CanViewProject(manager, project))
		assert.True(t, perms.CanViewProject(owner, project))
		assert.True(t, perms.CanViewProject(designer, project))
		assert.False(t, perms.CanViewProject(stranger, project))
		assert.False(t, perms.CanViewProject(otherDesigner, project))
	})

	t.Run("create", func(t *testing.T) {
		assert.True(t, perms.CanCreateProject(owner))
		assert.False(t, perms.CanCreateProject(manager))
		assert.False(t, perms.CanCreateProject(designer))
	})

	t.Run("manager-only operations", func(t *testing.T) {
		assert.True(t, perms.CanEditProject(manager))
		assert.True(t, perms.CanDeleteProject(manager))
		assert.True(t, perms.CanAssignDesigner(manager))
		assert.True(t, perms.CanListDesigners(manager))

		assert.False(t, perms.CanEditProject(owner))
		assert.False(t, perms.CanDeleteProject(owner))
		assert.False(t, perms.CanAssignDesigner(designer))
		assert.False(t, perms.CanListDesigners(stranger))
	})

	t.Run("appending files is editing", func(t *testing.T) {
		assert.True(t, perms.CanAppendFiles(manager))
		assert.False(t, perms.CanAppendFiles(owner))
		assert.False(t, perms.CanAppendFiles(designer))
	})
}
