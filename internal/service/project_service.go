package service

import (
	"context"
	"log"
	"strings"

	"github.com/design-platform/design-platform-backend/internal/config"
	"github.com/design-platform/design-platform-backend/internal/email"
	"github.com/design-platform/design-platform-backend/internal/notification"
	"github.com/design-platform/design-platform-backend/internal/repository"
	"github.com/design-platform/design-platform-backend/internal/socket"
	"github.com/design-platform/design-platform-backend/internal/types"
)

// ============================================
// Project Service
// ============================================

type ProjectService interface {
	List(ctx context.Context, actor *repository.User) ([]*repository.Project, error)
	GetByID(ctx context.Context, actor *repository.User, id string) (*repository.Project, error)
	Create(ctx context.Context, actor *repository.User, title, description string, uploads []FileUpload) (*repository.Project, error)
	Update(ctx context.Context, actor *repository.User, id string, title, description *string) (*repository.Project, error)
	Delete(ctx context.Context, actor *repository.User, id string) error
	AssignDesigner(ctx context.Context, actor *repository.User, projectID, designerID string) (*repository.Project, error)
	UnassignDesigner(ctx context.Context, actor *repository.User, projectID string) (*repository.Project, error)
}

type projectService struct {
	projectRepo repository.ProjectRepository
	userRepo    repository.UserRepository
	fileSvc     FileService
	permissions PermissionService
	notifSvc    *notification.Service
	emailSvc    *email.Service
	broadcaster *socket.Broadcaster
	cfg         *config.Config
}

func NewProjectService(
	projectRepo repository.ProjectRepository,
	userRepo repository.UserRepository,
	fileSvc FileService,
	permissions PermissionService,
	notifSvc *notification.Service,
	emailSvc *email.Service,
	broadcaster *socket.Broadcaster,
	cfg *config.Config,
) ProjectService {
	return &projectService{
		projectRepo: projectRepo,
		userRepo:    userRepo,
		fileSvc:     fileSvc,
		permissions: permissions,
		notifSvc:    notifSvc,
		emailSvc:    emailSvc,
		broadcaster: broadcaster,
		cfg:         cfg,
	}
}

// List returns the projects the actor is allowed to see: managers get every
// project, clients their own, designers the ones they are assigned to.
func (s *projectService) List(ctx context.Context, actor *repository.User) ([]*repository.Project, error) {
	var (
		projects []*repository.Project
		err      error
	)

	switch actor.Role {
	case types.RoleProjectManager:
		projects, err = s.projectRepo.FindAll(ctx)
	case types.RoleClient:
		projects, err = s.projectRepo.FindByClientID(ctx, actor.ID)
	case types.RoleDesigner:
		projects, err = s.projectRepo.FindByDesignerID(ctx, actor.ID)
	default:
		return nil, ErrForbidden
	}
	if err != nil {
		return nil, err
	}

	s.attachDesignerNames(ctx, projects)
	return projects, nil
}

func (s *projectService) GetByID(ctx context.Context, actor *repository.User, id string) (*repository.Project, error) {
	project, err := s.projectRepo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if project == nil {
		return nil, ErrNotFound
	}

	if !s.permissions.CanViewProject(actor, project) {
		return nil, ErrForbidden
	}

	s.attachDesignerNames(ctx, []*repository.Project{project})
	return project, nil
}

func (s *projectService) Create(ctx context.Context, actor *repository.User, title, description string, uploads []FileUpload) (*repository.Project, error) {
	if !s.permissions.CanCreateProject(actor) {
		return nil, ErrForbidden
	}

	title = strings.TrimSpace(title)
	if title == "" {
		return nil, ErrInvalidInput
	}

	project := &repository.Project{
		Title:       title,
		Description: description,
		ClientID:    actor.ID,
	}

	if err := s.projectRepo.Create(ctx, project); err != nil {
		return nil, err
	}

	if len(uploads) > 0 {
		if _, err := s.fileSvc.UploadFiles(ctx, project.ID, actor.ID, uploads); err != nil {
			// The project exists; the client can retry the failed files
			return project, err
		}
	}

	s.notifyProjectCreated(ctx, actor, project)

	return project, nil
}

// notifyProjectCreated tells every manager a new project arrived. Managers
// triage incoming work, so all of them hear about it.
func (s *projectService) notifyProjectCreated(ctx context.Context, actor *repository.User, project *repository.Project) {
	if s.notifSvc == nil && s.broadcaster == nil {
		return
	}

	managers, err := s.userRepo.FindByRole(ctx, types.RoleProjectManager)
	if err != nil {
		log.Printf("[Project] Failed to look up managers for creation notice: %v", err)
		return
	}

	managerIDs := make([]string, 0, len(managers))
	for _, m := range managers {
		managerIDs = append(managerIDs, m.ID)
	}
	if len(managerIDs) == 0 {
		return
	}

	if s.notifSvc != nil {
		if err := s.notifSvc.SendProjectCreated(ctx, managerIDs, actor.Name, project.Title, project.ID); err != nil {
			log.Printf("[Project] Failed to send creation notifications: %v", err)
		}
	}
	if s.broadcaster != nil {
		s.broadcaster.BroadcastProjectCreated(managerIDs, map[string]interface{}{
			"projectId": project.ID,
			"title":     project.Title,
			"clientId":  project.ClientID,
		})
	}
}

func (s *projectService) Update(ctx context.Context, actor *repository.User, id string, title, description *string) (*repository.Project, error) {
	if !s.permissions.CanEditProject(actor) {
		return nil, ErrForbidden
	}

	project, err := s.projectRepo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if project == nil {
		return nil, ErrNotFound
	}

	if title != nil {
		trimmed := strings.TrimSpace(*title)
		if trimmed == "" {
			return nil, ErrInvalidInput
		}
		project.Title = trimmed
	}
	if description != nil {
		project.Description = *description
	}

	if err := s.projectRepo.Update(ctx, project); err != nil {
		return nil, err
	}

	if s.notifSvc != nil {
		if err := s.notifSvc.SendProjectUpdated(ctx, project.ClientID, project.Title, project.ID); err != nil {
			log.Printf("[Project] Failed to notify client about update: %v", err)
		}
	}
	if s.broadcaster != nil {
		s.broadcaster.BroadcastProjectUpdated(project.ID, map[string]interface{}{
			"projectId":   project.ID,
			"title":       project.Title,
			"description": project.Description,
		}, actor.ID)
	}

	s.attachDesignerNames(ctx, []*repository.Project{project})
	return project, nil
}

// Delete removes the project and everything hanging off it: stored blobs
// first (best-effort), then file records, then the project row.
func (s *projectService) Delete(ctx context.Context, actor *repository.User, id string) error {
	if !s.permissions.CanDeleteProject(actor) {
		return ErrForbidden
	}

	project, err := s.projectRepo.FindByID(ctx, id)
	if err != nil {
		return err
	}
	if project == nil {
		return ErrNotFound
	}

	if err := s.fileSvc.DeleteProjectFiles(ctx, id); err != nil {
		return err
	}

	if err := s.projectRepo.Delete(ctx, id); err != nil {
		return err
	}

	if s.notifSvc != nil {
		participants := []string{project.ClientID}
		if project.DesignerID != nil {
			participants = append(participants, *project.DesignerID)
		}
		if err := s.notifSvc.SendProjectDeleted(ctx, participants, actor.ID, project.Title); err != nil {
			log.Printf("[Project] Failed to send delete notifications: %v", err)
		}
	}
	if s.broadcaster != nil {
		s.broadcaster.BroadcastProjectDeleted(id, actor.ID)
	}

	return nil
}

// AssignDesigner puts a designer on a project. Only managers may assign, the
// target must hold the designer role, and re-assigning the same designer is a
// no-op. The returned project is re-read from the store so the caller sees
// the confirmed state, not an optimistic echo.
func (s *projectService) AssignDesigner(ctx context.Context, actor *repository.User, projectID, designerID string) (*repository.Project, error) {
	if !s.permissions.CanAssignDesigner(actor) {
		return nil, ErrForbidden
	}

	project, err := s.projectRepo.FindByID(ctx, projectID)
	if err != nil {
		return nil, err
	}
	if project == nil {
		return nil, ErrNotFound
	}

	designer, err := s.userRepo.FindByID(ctx, designerID)
	if err != nil {
		return nil, err
	}
	if designer == nil {
		return nil, ErrUserNotFound
	}
	if designer.Role != types.RoleDesigner {
		return nil, ErrNotDesigner
	}

	alreadyAssigned := project.DesignerID != nil && *project.DesignerID == designerID

	if !alreadyAssigned {
		if err := s.projectRepo.UpdateDesigner(ctx, projectID, &designerID); err != nil {
			return nil, err
		}
	}

	updated, err := s.projectRepo.FindByID(ctx, projectID)
	if err != nil {
		return nil, err
	}
	if updated == nil {
		return nil, ErrNotFound
	}

	if !alreadyAssigned {
		s.notifyDesignerAssigned(ctx, actor, updated, designer)
	}

	s.attachDesignerNames(ctx, []*repository.Project{updated})
	return updated, nil
}

// UnassignDesigner clears the assignment. Unassigning a project with no
// designer is a no-op, not an error.
func (s *projectService) UnassignDesigner(ctx context.Context, actor *repository.User, projectID string) (*repository.Project, error) {
	if !s.permissions.CanAssignDesigner(actor) {
		return nil, ErrForbidden
	}

	project, err := s.projectRepo.FindByID(ctx, projectID)
	if err != nil {
		return nil, err
	}
	if project == nil {
		return nil, ErrNotFound
	}

	previousDesigner := project.DesignerID

	if previousDesigner != nil {
		if err := s.projectRepo.UpdateDesigner(ctx, projectID, nil); err != nil {
			return nil, err
		}
	}

	updated, err := s.projectRepo.FindByID(ctx, projectID)
	if err != nil {
		return nil, err
	}
	if updated == nil {
		return nil, ErrNotFound
	}

	if previousDesigner != nil {
		if s.notifSvc != nil {
			if err := s.notifSvc.SendDesignerUnassigned(ctx, *previousDesigner, updated.Title, updated.ID); err != nil {
				log.Printf("[Project] Failed to notify designer about unassignment: %v", err)
			}
		}
		if s.broadcaster != nil {
			s.broadcaster.BroadcastDesignerRemoved(projectID, actor.ID)
		}
	}

	return updated, nil
}

func (s *projectService) notifyDesignerAssigned(ctx context.Context, actor *repository.User, project *repository.Project, designer *repository.User) {
	if s.notifSvc != nil {
		if err := s.notifSvc.SendDesignerAssigned(ctx, designer.ID, project.Title, project.ID); err != nil {
			log.Printf("[Project] Failed to notify designer about assignment: %v", err)
		}
	}

	if s.broadcaster != nil {
		s.broadcaster.BroadcastDesignerAssigned(project.ID, designer.ID, designer.Name, actor.ID)
	}

	if s.emailSvc != nil {
		client, err := s.userRepo.FindByID(ctx, project.ClientID)
		clientName := ""
		if err == nil && client != nil {
			clientName = client.Name
		}

		go func() {
			if err := s.emailSvc.SendDesignerAssigned(designer.Email, email.DesignerAssignedData{
				DesignerName: designer.Name,
				AssignerName: actor.Name,
				ProjectTitle: project.Title,
				ClientName:   clientName,
				Description:  project.Description,
				ProjectURL:   s.cfg.FrontendURL + "/projects/" + project.ID,
			}); err != nil {
				log.Printf("[Project] Failed to send assignment email to %s: %v", designer.Email, err)
			}
		}()
	}
}

// attachDesignerNames resolves designer display names for a batch of
// projects with a single lookup. Name resolution is cosmetic; if the lookup
// fails the projects are returned without names rather than failing the call.
func (s *projectService) attachDesignerNames(ctx context.Context, projects []*repository.Project) {
	idSet := make(map[string]bool)
	for _, p := range projects {
		if p.DesignerID != nil {
			idSet[*p.DesignerID] = true
		}
	}
	if len(idSet) == 0 {
		return
	}

	ids := make([]string, 0, len(idSet))
	for id := range idSet {
		ids = append(ids, id)
	}

	designers, err := s.userRepo.FindByIDs(ctx, ids)
	if err != nil {
		log.Printf("[Project] Failed to resolve designer names: %v", err)
		return
	}

	names := make(map[string]string, len(designers))
	for _, d := range designers {
		names[d.ID] = d.Name
	}

	for _, p := range projects {
		if p.DesignerID == nil {
			continue
		}
		if name, ok := names[*p.DesignerID]; ok {
			n := name
			p.DesignerName = &n
		}
	}
}
