package service

import (
	"github.com/design-platform/design-platform-backend/internal/repository"
	"github.com/design-platform/design-platform-backend/internal/types"
)

// ============================================
// Permission Service
// ============================================

// PermissionService centralizes role checks so every entry point enforces the
// same rules. Authorization is decided here, never trusted from the client.
type PermissionService interface {
	CanViewProject(user *repository.User, project *repository.Project) bool
	CanCreateProject(user *repository.User) bool
	CanEditProject(user *repository.User) bool
	CanDeleteProject(user *repository.User) bool
	CanAssignDesigner(user *repository.User) bool
	CanListDesigners(user *repository.User) bool
	CanAppendFiles(user *repository.User) bool
}

type permissionService struct{}

// NewPermissionService creates a new permission service
func NewPermissionService() PermissionService {
	return &permissionService{}
}

// CanViewProject allows project managers, the owning client, and the
// assigned designer
func (s *permissionService) CanViewProject(user *repository.User, project *repository.Project) bool {
	if user == nil || project == nil {
		return false
	}
	if user.Role == types.RoleProjectManager {
		return true
	}
	if user.Role == types.RoleClient && project.ClientID == user.ID {
		return true
	}
	if user.Role == types.RoleDesigner && project.DesignerID != nil && *project.DesignerID == user.ID {
		return true
	}
	return false
}

// CanCreateProject allows clients only
func (s *permissionService) CanCreateProject(user *repository.User) bool {
	return user != nil && user.Role == types.RoleClient
}

// CanEditProject allows project managers only
func (s *permissionService) CanEditProject(user *repository.User) bool {
	return user != nil && user.Role == types.RoleProjectManager
}

// CanDeleteProject allows project managers only
func (s *permissionService) CanDeleteProject(user *repository.User) bool {
	return user != nil && user.Role == types.RoleProjectManager
}

// CanAssignDesigner allows project managers only
func (s *permissionService) CanAssignDesigner(user *repository.User) bool {
	return user != nil && user.Role == types.RoleProjectManager
}

// CanListDesigners allows project managers only
func (s *permissionService) CanListDesigners(user *repository.User) bool {
	return user != nil && user.Role == types.RoleProjectManager
}

// CanAppendFiles allows project managers only. Clients attach their files at
// project creation; anything added later is part of editing the project.
func (s *permissionService) CanAppendFiles(user *repository.User) bool {
	return user != nil && user.Role == types.RoleProjectManager
}
