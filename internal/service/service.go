package service

import (
	"errors"

	"github.com/design-platform/design-platform-backend/internal/config"
	"github.com/design-platform/design-platform-backend/internal/db"
	"github.com/design-platform/design-platform-backend/internal/email"
	"github.com/design-platform/design-platform-backend/internal/notification"
	"github.com/design-platform/design-platform-backend/internal/repository"
	"github.com/design-platform/design-platform-backend/internal/socket"
	"github.com/design-platform/design-platform-backend/internal/storage"
)

var (
	ErrInvalidCredentials = errors.New("invalid credentials")
	ErrUserExists         = errors.New("user already exists")
	ErrUserNotFound       = errors.New("user not found")
	ErrInvalidToken       = errors.New("invalid token")
	ErrNotFound           = errors.New("resource not found")
	ErrForbidden          = errors.New("forbidden")
	ErrInvalidInput       = errors.New("invalid input")
	ErrInvalidRole        = errors.New("invalid role")
	ErrNotDesigner        = errors.New("user is not a designer")
)

// ============================================
// Services Container
// ============================================

type Services struct {
	Auth         AuthService
	User         UserService
	Project      ProjectService
	File         FileService
	Notification NotificationService
	Permission   PermissionService
	Notifier     *notification.Service
	Broadcaster  *socket.Broadcaster
}

// ServiceDeps contains all dependencies needed to create services
type ServiceDeps struct {
	Config      *config.Config
	Repos       *repository.Repositories
	Store       storage.ObjectStore
	Cache       *db.RedisDB
	NotifSvc    *notification.Service
	EmailSvc    *email.Service
	Broadcaster *socket.Broadcaster
}

func NewServices(deps *ServiceDeps) *Services {
	permissionService := NewPermissionService()

	fileService := NewFileService(
		deps.Repos.ProjectFileRepo,
		deps.Store,
	)

	return &Services{
		Auth: NewAuthService(deps.Config, deps.Repos.UserRepo, deps.EmailSvc, deps.Cache),
		User: NewUserService(deps.Repos.UserRepo, deps.Cache),
		Project: NewProjectService(
			deps.Repos.ProjectRepo,
			deps.Repos.UserRepo,
			fileService,
			permissionService,
			deps.NotifSvc,
			deps.EmailSvc,
			deps.Broadcaster,
			deps.Config,
		),
		File:         fileService,
		Notification: NewNotificationService(deps.Repos.NotificationRepo, deps.Broadcaster),
		Permission:   permissionService,
		Notifier:     deps.NotifSvc,
		Broadcaster:  deps.Broadcaster,
	}
}
