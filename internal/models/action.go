package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Action is the audit record of a department transfer. It is created invalid
// at request time and flipped to valid exactly once by the receiving doctor.
type Action struct {
	ID        string     `json:"id" gorm:"primaryKey;size:36"`
	Type      ActionType `json:"type" gorm:"type:varchar(30);not null"`
	Date      time.Time  `json:"date" gorm:"not null"`
	IsValid   bool       `json:"is_valid" gorm:"not null;default:false"`
	MedecinID string     `json:"medecin_id" gorm:"not null;size:36;index"`
	Medecin   *Medecin   `json:"medecin,omitempty" gorm:"foreignKey:MedecinID"`
	PatientID string     `json:"patient_id" gorm:"not null;size:36;index"`
	Patient   *Patient   `json:"patient,omitempty" gorm:"foreignKey:PatientID"`

	CreatedAt time.Time      `json:"created_at"`
	UpdatedAt time.Time      `json:"updated_at"`
	DeletedAt gorm.DeletedAt `json:"-" gorm:"index"`
}

func (Action) TableName() string {
	return "actions"
}

func (a *Action) BeforeCreate(tx *gorm.DB) error {
	if a.ID == "" {
		a.ID = uuid.NewString()
	}
	return nil
}
