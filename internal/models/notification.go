package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/datatypes"
	"gorm.io/gorm"
)

// Notification is a per-user message persisted before being pushed on the
// realtime channel. Metadata carries event-specific payload (patient id,
// action id, ...).
type Notification struct {
	ID        string                `json:"id" gorm:"primaryKey;size:36"`
	UserID    string                `json:"user_id" gorm:"not null;size:36;index"`
	User      *User                 `json:"user,omitempty" gorm:"foreignKey:UserID"`
	EventType NotificationEventType `json:"event_type" gorm:"type:varchar(40);not null"`
	Message   string                `json:"message" gorm:"type:text;not null"`
	Metadata  datatypes.JSON        `json:"metadata,omitempty"`
	IsRead    bool                  `json:"is_read" gorm:"not null;default:false;index"`

	CreatedAt time.Time      `json:"created_at"`
	UpdatedAt time.Time      `json:"updated_at"`
	DeletedAt gorm.DeletedAt `json:"-" gorm:"index"`
}

func (Notification) TableName() string {
	return "notifications"
}

func (n *Notification) BeforeCreate(tx *gorm.DB) error {
	if n.ID == "" {
		n.ID = uuid.NewString()
	}
	return nil
}
