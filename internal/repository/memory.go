package repository

import (
	"context"
	"sort"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"
)

// ============================================
// In-Memory Repository Implementations (Fallback)
// ============================================

// In-memory User Repository
type inMemoryUserRepository struct {
	mu            sync.RWMutex
	users         map[string]*User
	refreshTokens map[string]*RefreshToken
}

func newInMemoryUserRepository() *inMemoryUserRepository {
	return &inMemoryUserRepository{
		users:         make(map[string]*User),
		refreshTokens: make(map[string]*RefreshToken),
	}
}

func (r *inMemoryUserRepository) Create(ctx context.Context, user *User) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	user.ID = uuid.New().String()
	user.CreatedAt = time.Now()
	user.UpdatedAt = time.Now()
	r.users[user.ID] = user
	return nil
}

// Reads return copies so callers can mutate results without touching the store
func (r *inMemoryUserRepository) FindByID(ctx context.Context, id string) (*User, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	if user, ok := r.users[id]; ok {
		copied := *user
		return &copied, nil
	}
	return nil, nil
}

func (r *inMemoryUserRepository) FindByEmail(ctx context.Context, email string) (*User, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	for _, user := range r.users {
		if strings.EqualFold(user.Email, email) {
			copied := *user
			return &copied, nil
		}
	}
	return nil, nil
}

func (r *inMemoryUserRepository) FindByIDs(ctx context.Context, ids []string) ([]*User, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	var users []*User
	for _, id := range ids {
		if user, ok := r.users[id]; ok {
			copied := *user
			users = append(users, &copied)
		}
	}
	return users, nil
}

func (r *inMemoryUserRepository) FindByRole(ctx context.Context, role string) ([]*User, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	var users []*User
	for _, user := range r.users {
		if user.Role == role {
			copied := *user
			users = append(users, &copied)
		}
	}
	sort.Slice(users, func(i, j int) bool { return users[i].Name < users[j].Name })
	return users, nil
}

func (r *inMemoryUserRepository) Update(ctx context.Context, user *User) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	user.UpdatedAt = time.Now()
	r.users[user.ID] = user
	return nil
}

func (r *inMemoryUserRepository) SaveRefreshToken(ctx context.Context, token *RefreshToken) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	token.ID = uuid.New().String()
	token.CreatedAt = time.Now()
	r.refreshTokens[token.Token] = token
	return nil
}

func (r *inMemoryUserRepository) FindRefreshToken(ctx context.Context, token string) (*RefreshToken, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	if rt, ok := r.refreshTokens[token]; ok {
		return rt, nil
	}
	return nil, nil
}

func (r *inMemoryUserRepository) DeleteRefreshToken(ctx context.Context, token string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	delete(r.refreshTokens, token)
	return nil
}

func (r *inMemoryUserRepository) DeleteUserRefreshTokens(ctx context.Context, userID string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	for token, rt := range r.refreshTokens {
		if rt.UserID == userID {
			delete(r.refreshTokens, token)
		}
	}
	return nil
}

func (r *inMemoryUserRepository) DeleteExpiredRefreshTokens(ctx context.Context) (int, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	deleted := 0
	now := time.Now()
	for token, rt := range r.refreshTokens {
		if rt.ExpiresAt.Before(now) {
			delete(r.refreshTokens, token)
			deleted++
		}
	}
	return deleted, nil
}

// In-memory Project Repository
type inMemoryProjectRepository struct {
	mu       sync.RWMutex
	projects map[string]*Project
	order    []string // insertion order, newest appended last
}

func newInMemoryProjectRepository() *inMemoryProjectRepository {
	return &inMemoryProjectRepository{projects: make(map[string]*Project)}
}

func (r *inMemoryProjectRepository) Create(ctx context.Context, project *Project) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	project.ID = uuid.New().String()
	project.CreatedAt = time.Now()
	project.UpdatedAt = project.CreatedAt
	r.projects[project.ID] = project
	r.order = append(r.order, project.ID)
	return nil
}

func (r *inMemoryProjectRepository) FindByID(ctx context.Context, id string) (*Project, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	if project, ok := r.projects[id]; ok {
		copied := *project
		return &copied, nil
	}
	return nil, nil
}

func (r *inMemoryProjectRepository) FindAll(ctx context.Context) ([]*Project, error) {
	return r.filter(func(*Project) bool { return true }), nil
}

func (r *inMemoryProjectRepository) FindByClientID(ctx context.Context, clientID string) ([]*Project, error) {
	return r.filter(func(p *Project) bool { return p.ClientID == clientID }), nil
}

func (r *inMemoryProjectRepository) FindByDesignerID(ctx context.Context, designerID string) ([]*Project, error) {
	return r.filter(func(p *Project) bool {
		return p.DesignerID != nil && *p.DesignerID == designerID
	}), nil
}

// filter walks insertion order backwards so results come back newest first,
// matching the created_at DESC ordering of the SQL implementation.
func (r *inMemoryProjectRepository) filter(keep func(*Project) bool) []*Project {
	r.mu.RLock()
	defer r.mu.RUnlock()
	var result []*Project
	for i := len(r.order) - 1; i >= 0; i-- {
		if project, ok := r.projects[r.order[i]]; ok && keep(project) {
			copied := *project
			result = append(result, &copied)
		}
	}
	return result
}

func (r *inMemoryProjectRepository) Update(ctx context.Context, project *Project) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	existing, ok := r.projects[project.ID]
	if !ok {
		return nil
	}
	existing.Title = project.Title
	existing.Description = project.Description
	existing.UpdatedAt = time.Now()
	project.UpdatedAt = existing.UpdatedAt
	return nil
}

func (r *inMemoryProjectRepository) UpdateDesigner(ctx context.Context, projectID string, designerID *string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if project, ok := r.projects[projectID]; ok {
		project.DesignerID = designerID
		project.UpdatedAt = time.Now()
	}
	return nil
}

func (r *inMemoryProjectRepository) Delete(ctx context.Context, id string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	delete(r.projects, id)
	for i, pid := range r.order {
		if pid == id {
			r.order = append(r.order[:i], r.order[i+1:]...)
			break
		}
	}
	return nil
}

// In-memory Project File Repository
type inMemoryProjectFileRepository struct {
	mu    sync.RWMutex
	files map[string]*ProjectFile
	order []string
}

func newInMemoryProjectFileRepository() *inMemoryProjectFileRepository {
	return &inMemoryProjectFileRepository{files: make(map[string]*ProjectFile)}
}

func (r *inMemoryProjectFileRepository) Create(ctx context.Context, file *ProjectFile) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	file.ID = uuid.New().String()
	file.CreatedAt = time.Now()
	r.files[file.ID] = file
	r.order = append(r.order, file.ID)
	return nil
}

func (r *inMemoryProjectFileRepository) FindByID(ctx context.Context, id string) (*ProjectFile, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	if file, ok := r.files[id]; ok {
		return file, nil
	}
	return nil, nil
}

func (r *inMemoryProjectFileRepository) FindByProjectID(ctx context.Context, projectID string) ([]*ProjectFile, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	var files []*ProjectFile
	for _, id := range r.order {
		if file, ok := r.files[id]; ok && file.ProjectID == projectID {
			files = append(files, file)
		}
	}
	return files, nil
}

func (r *inMemoryProjectFileRepository) Delete(ctx context.Context, id string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	delete(r.files, id)
	return nil
}

func (r *inMemoryProjectFileRepository) DeleteByProjectID(ctx context.Context, projectID string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	for id, file := range r.files {
		if file.ProjectID == projectID {
			delete(r.files, id)
		}
	}
	return nil
}

func (r *inMemoryProjectFileRepository) CountByProjectID(ctx context.Context, projectID string) (int, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	count := 0
	for _, file := range r.files {
		if file.ProjectID == projectID {
			count++
		}
	}
	return count, nil
}

// In-memory Notification Repository
type inMemoryNotificationRepository struct {
	mu            sync.RWMutex
	notifications map[string]*Notification
	order         []string
}

func newInMemoryNotificationRepository() *inMemoryNotificationRepository {
	return &inMemoryNotificationRepository{notifications: make(map[string]*Notification)}
}

func (r *inMemoryNotificationRepository) Create(ctx context.Context, notification *Notification) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	notification.ID = uuid.New().String()
	notification.CreatedAt = time.Now()
	r.notifications[notification.ID] = notification
	r.order = append(r.order, notification.ID)
	return nil
}

func (r *inMemoryNotificationRepository) FindByID(ctx context.Context, id string) (*Notification, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	if n, ok := r.notifications[id]; ok {
		return n, nil
	}
	return nil, nil
}

func (r *inMemoryNotificationRepository) FindByUserID(ctx context.Context, userID string, unreadOnly bool) ([]*Notification, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	var result []*Notification
	for i := len(r.order) - 1; i >= 0; i-- {
		n, ok := r.notifications[r.order[i]]
		if !ok || n.UserID != userID {
			continue
		}
		if unreadOnly && n.Read {
			continue
		}
		result = append(result, n)
	}
	return result, nil
}

func (r *inMemoryNotificationRepository) CountByUserID(ctx context.Context, userID string) (int, int, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	total, unread := 0, 0
	for _, n := range r.notifications {
		if n.UserID == userID {
			total++
			if !n.Read {
				unread++
			}
		}
	}
	return total, unread, nil
}

func (r *inMemoryNotificationRepository) MarkAsRead(ctx context.Context, id string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if n, ok := r.notifications[id]; ok {
		n.Read = true
	}
	return nil
}

func (r *inMemoryNotificationRepository) MarkAllAsRead(ctx context.Context, userID string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, n := range r.notifications {
		if n.UserID == userID {
			n.Read = true
		}
	}
	return nil
}

func (r *inMemoryNotificationRepository) Delete(ctx context.Context, id string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	delete(r.notifications, id)
	return nil
}

func (r *inMemoryNotificationRepository) DeleteOlderThan(ctx context.Context, olderThan time.Time, readOnly bool) (int, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	deleted := 0
	for id, n := range r.notifications {
		if n.CreatedAt.Before(olderThan) && (!readOnly || n.Read) {
			delete(r.notifications, id)
			deleted++
		}
	}
	return deleted, nil
}
