package models

import "time"

// ============================================
// Auth DTOs
// ============================================

type RegisterRequest struct {
	Name     string `json:"name" binding:"required,min=2"`
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required,min=8"`
	Role     string `json:"role" binding:"required,oneof=client project_manager designer"`
}

type LoginRequest struct {
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required"`
}

type RefreshRequest struct {
	RefreshToken string `json:"refreshToken" binding:"required"`
}

type AuthResponse struct {
	User         UserResponse `json:"user"`
	AccessToken  string       `json:"accessToken"`
	RefreshToken string       `json:"refreshToken"`
}

// ============================================
// User DTOs
// ============================================

type UserResponse struct {
	ID        string    `json:"id"`
	Email     string    `json:"email"`
	Name      string    `json:"name"`
	Role      string    `json:"role"`
	CreatedAt time.Time `json:"createdAt"`
}

type UpdateUserRequest struct {
	Name     *string `json:"name,omitempty" binding:"omitempty,min=2"`
	Password *string `json:"password,omitempty" binding:"omitempty,min=8"`
}

// ============================================
// Project DTOs
// ============================================

type CreateProjectRequest struct {
	Title       string `form:"title" binding:"required,min=2"`
	Description string `form:"description"`
}

type UpdateProjectRequest struct {
	Title       *string `json:"title,omitempty" binding:"omitempty,min=2"`
	Description *string `json:"description,omitempty"`
}

type AssignDesignerRequest struct {
	DesignerID string `json:"designerId" binding:"required"`
}

type ProjectResponse struct {
	ID           string    `json:"id"`
	Title        string    `json:"title"`
	Description  string    `json:"description"`
	ClientID     string    `json:"clientId"`
	DesignerID   *string   `json:"designerId,omitempty"`
	DesignerName *string   `json:"designerName,omitempty"`
	CreatedAt    time.Time `json:"createdAt"`
	UpdatedAt    time.Time `json:"updatedAt"`

	// Populated on the detail view only
	Files []ProjectFileResponse `json:"files,omitempty"`
}

// ============================================
// File DTOs
// ============================================

type ProjectFileResponse struct {
	ID         string    `json:"id"`
	ProjectID  string    `json:"projectId"`
	FileName   string    `json:"fileName"`
	UploadedBy *string   `json:"uploadedBy,omitempty"`
	CreatedAt  time.Time `json:"createdAt"`
}

// ============================================
// Notification DTOs
// ============================================

type NotificationResponse struct {
	ID        string                  `json:"id"`
	UserID    string                  `json:"userId"`
	Type      string                  `json:"type"`
	Title     string                  `json:"title"`
	Message   string                  `json:"message"`
	Read      bool                    `json:"read"`
	Data      *map[string]interface{} `json:"data,omitempty"`
	CreatedAt time.Time               `json:"createdAt"`
}

type NotificationCountResponse struct {
	Total  int `json:"total"`
	Unread int `json:"unread"`
}
