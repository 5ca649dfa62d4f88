package socket

import "fmt"

// Broadcaster provides high-level methods for broadcasting events
type Broadcaster struct {
	hub *Hub
}

// NewBroadcaster creates a new Broadcaster
func NewBroadcaster(hub *Hub) *Broadcaster {
	return &Broadcaster{hub: hub}
}

func projectRoom(projectID string) string {
	return fmt.Sprintf("project:%s", projectID)
}

// ============================================
// Notification Broadcasting
// ============================================

// SendNotification sends a notification to a specific user
func (b *Broadcaster) SendNotification(userID string, notification map[string]interface{}) {
	b.hub.SendToUser(userID, MessageNotification, notification)
}

// SendNotificationCount updates notification count for a user
func (b *Broadcaster) SendNotificationCount(userID string, total, unread int) {
	b.hub.SendToUser(userID, MessageNotificationCount, map[string]interface{}{
		"total":  total,
		"unread": unread,
	})
}

// ============================================
// Project Broadcasting
// ============================================

// BroadcastProjectCreated tells each manager about a new project. Managers
// are not in any project room yet, so this goes to their user channels.
func (b *Broadcaster) BroadcastProjectCreated(managerIDs []string, project map[string]interface{}) {
	for _, id := range managerIDs {
		b.hub.SendToUser(id, MessageProjectCreated, project)
	}
}

// BroadcastProjectUpdated broadcasts project changes to everyone viewing it
func (b *Broadcaster) BroadcastProjectUpdated(projectID string, project map[string]interface{}, excludeUserID string) {
	b.hub.SendToRoom(projectRoom(projectID), MessageProjectUpdated, project, excludeUserID)
}

// BroadcastProjectDeleted broadcasts project deletion
func (b *Broadcaster) BroadcastProjectDeleted(projectID string, excludeUserID string) {
	b.hub.SendToRoom(projectRoom(projectID), MessageProjectDeleted, map[string]interface{}{
		"projectId": projectID,
	}, excludeUserID)
}

// BroadcastDesignerAssigned broadcasts a designer assignment to project viewers
func (b *Broadcaster) BroadcastDesignerAssigned(projectID, designerID, designerName, excludeUserID string) {
	b.hub.SendToRoom(projectRoom(projectID), MessageDesignerAssigned, map[string]interface{}{
		"projectId":    projectID,
		"designerId":   designerID,
		"designerName": designerName,
	}, excludeUserID)
}

// BroadcastDesignerRemoved broadcasts a designer unassignment to project viewers
func (b *Broadcaster) BroadcastDesignerRemoved(projectID, excludeUserID string) {
	b.hub.SendToRoom(projectRoom(projectID), MessageDesignerRemoved, map[string]interface{}{
		"projectId": projectID,
	}, excludeUserID)
}

// ============================================
// File Broadcasting
// ============================================

// BroadcastFileUploaded broadcasts a new file to project viewers
func (b *Broadcaster) BroadcastFileUploaded(projectID string, file map[string]interface{}, excludeUserID string) {
	b.hub.SendToRoom(projectRoom(projectID), MessageFileUploaded, file, excludeUserID)
}

// BroadcastFileDeleted broadcasts a file removal to project viewers
func (b *Broadcaster) BroadcastFileDeleted(projectID, fileID, excludeUserID string) {
	b.hub.SendToRoom(projectRoom(projectID), MessageFileDeleted, map[string]interface{}{
		"projectId": projectID,
		"fileId":    fileID,
	}, excludeUserID)
}
