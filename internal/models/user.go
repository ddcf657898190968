package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// User is the local mirror of an identity-provider account. The provider
// remains the source of truth for credentials; the Role column is the
// authoritative fallback when a token carries no role claims.
type User struct {
	ID       string `json:"id" gorm:"primaryKey;size:36"`
	Username string `json:"username" gorm:"uniqueIndex;not null;size:100"`
	Email    string `json:"email" gorm:"uniqueIndex;not null;size:255"`
	Name     string `json:"name" gorm:"not null;size:100"`
	Phone    string `json:"phone" gorm:"size:30"`
	Role     Role   `json:"role" gorm:"type:varchar(20);not null"`

	CreatedAt time.Time      `json:"created_at"`
	UpdatedAt time.Time      `json:"updated_at"`
	DeletedAt gorm.DeletedAt `json:"-" gorm:"index"`
}

func (User) TableName() string {
	return "users"
}

func (u *User) BeforeCreate(tx *gorm.DB) error {
	if u.ID == "" {
		u.ID = uuid.NewString()
	}
	return nil
}

// Medecin is the doctor profile attached 1:1 to a user account.
type Medecin struct {
	ID            string     `json:"id" gorm:"primaryKey;size:36"`
	UserID        string     `json:"user_id" gorm:"uniqueIndex;not null;size:36"`
	User          *User      `json:"user,omitempty" gorm:"foreignKey:UserID;constraint:OnDelete:CASCADE"`
	Profession    Profession `json:"profession" gorm:"type:varchar(20);not null"`
	IsSpecialiste bool       `json:"is_specialiste" gorm:"default:false"`

	CreatedAt time.Time      `json:"created_at"`
	UpdatedAt time.Time      `json:"updated_at"`
	DeletedAt gorm.DeletedAt `json:"-" gorm:"index"`
}

func (Medecin) TableName() string {
	return "medecins"
}

func (m *Medecin) BeforeCreate(tx *gorm.DB) error {
	if m.ID == "" {
		m.ID = uuid.NewString()
	}
	return nil
}

// Etudiant is the student profile attached 1:1 to a user account.
type Etudiant struct {
	ID     string `json:"id" gorm:"primaryKey;size:36"`
	UserID string `json:"user_id" gorm:"uniqueIndex;not null;size:36"`
	User   *User  `json:"user,omitempty" gorm:"foreignKey:UserID;constraint:OnDelete:CASCADE"`
	Niveau int    `json:"niveau" gorm:"default:1"`

	CreatedAt time.Time      `json:"created_at"`
	UpdatedAt time.Time      `json:"updated_at"`
	DeletedAt gorm.DeletedAt `json:"-" gorm:"index"`
}

func (Etudiant) TableName() string {
	return "etudiants"
}

func (e *Etudiant) BeforeCreate(tx *gorm.DB) error {
	if e.ID == "" {
		e.ID = uuid.NewString()
	}
	return nil
}
