package dto

import (
	"time"

	"docspot/internal/domain/entity"

	"github.com/google/uuid"
)

type UpdateProfileRequest struct {
	Name  string `json:"name" validate:"omitempty,min=2,max=255"`
	Phone string `json:"phone" validate:"omitempty,max=30"`
}

type NotificationResponse struct {
	ID          uuid.UUID   `json:"id"`
	Type        string      `json:"type"`
	Message     string      `json:"message"`
	Data        entity.JSON `json:"data,omitempty"`
	OnClickPath string      `json:"on_click_path,omitempty"`
	Seen        bool        `json:"seen"`
	CreatedAt   time.Time   `json:"created_at"`
}

// NotificationInboxResponse splits the inbox into unread and read entries, oldest first
type NotificationInboxResponse struct {
	Unseen []NotificationResponse `json:"unseen"`
	Seen   []NotificationResponse `json:"seen"`
}

type UserListResponse struct {
	Users []UserResponse `json:"users"`
	Total int            `json:"total"`
}
