package service

import (
	"context"
	"fmt"
	"log"
	"time"

	"github.com/design-platform/design-platform-backend/internal/db"
	"github.com/design-platform/design-platform-backend/internal/repository"
	"github.com/design-platform/design-platform-backend/internal/types"
	"golang.org/x/crypto/bcrypt"
)

const designerCacheKey = "users:designers"
const designerCacheTTL = 5 * time.Minute

// ============================================
// User Service
// ============================================

type UserService interface {
	GetByID(ctx context.Context, id string) (*repository.User, error)
	Update(ctx context.Context, id string, name, password *string) (*repository.User, error)
	ListDesigners(ctx context.Context) ([]*repository.User, error)
}

type userService struct {
	userRepo repository.UserRepository
	cache    *db.RedisDB
}

func NewUserService(userRepo repository.UserRepository, cache *db.RedisDB) UserService {
	return &userService{userRepo: userRepo, cache: cache}
}

func (s *userService) GetByID(ctx context.Context, id string) (*repository.User, error) {
	user, err := s.userRepo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if user == nil {
		return nil, ErrUserNotFound
	}
	return user, nil
}

func (s *userService) Update(ctx context.Context, id string, name, password *string) (*repository.User, error) {
	user, err := s.userRepo.FindByID(ctx, id)
	if err != nil || user == nil {
		return nil, ErrUserNotFound
	}

	if name != nil {
		user.Name = *name
	}
	if password != nil {
		hashed, err := bcrypt.GenerateFromPassword([]byte(*password), bcrypt.DefaultCost)
		if err != nil {
			return nil, fmt.Errorf("failed to hash password: %w", err)
		}
		user.Password = string(hashed)
	}

	if err := s.userRepo.Update(ctx, user); err != nil {
		return nil, err
	}

	// Changing the password signs the user out everywhere else
	if password != nil {
		if err := s.userRepo.DeleteUserRefreshTokens(ctx, id); err != nil {
			log.Printf("[User] Failed to revoke refresh tokens for %s: %v", id, err)
		}
	}

	return user, nil
}

// ListDesigners returns every registered designer, cached briefly since the
// directory changes only when a new designer signs up.
func (s *userService) ListDesigners(ctx context.Context) ([]*repository.User, error) {
	if s.cache != nil {
		var cached []*repository.User
		if err := s.cache.GetCache(ctx, designerCacheKey, &cached); err == nil {
			return cached, nil
		}
	}

	designers, err := s.userRepo.FindByRole(ctx, types.RoleDesigner)
	if err != nil {
		return nil, err
	}

	// Never let password hashes end up in the cache
	for _, d := range designers {
		d.Password = ""
	}

	if s.cache != nil {
		if err := s.cache.SetCache(ctx, designerCacheKey, designers, designerCacheTTL); err != nil {
			log.Printf("[User] Failed to cache designer list: %v", err)
		}
	}

	return designers, nil
}
