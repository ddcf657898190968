package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Consultation is the intake visit that creates the patient record. Each
// patient has exactly one.
type Consultation struct {
	ID             string    `json:"id" gorm:"primaryKey;size:36"`
	IdConsultation string    `json:"id_consultation" gorm:"uniqueIndex;not null;size:36"`
	Date           time.Time `json:"date" gorm:"not null"`
	PatientID      string    `json:"patient_id" gorm:"uniqueIndex;not null;size:36"`
	Patient        *Patient  `json:"patient,omitempty" gorm:"foreignKey:PatientID"`
	MedecinID      string    `json:"medecin_id" gorm:"not null;size:36;index"`
	Medecin        *Medecin  `json:"medecin,omitempty" gorm:"foreignKey:MedecinID"`

	Diagnostics []Diagnostic `json:"diagnostics,omitempty" gorm:"foreignKey:ConsultationID"`

	CreatedAt time.Time      `json:"created_at"`
	UpdatedAt time.Time      `json:"updated_at"`
	DeletedAt gorm.DeletedAt `json:"-" gorm:"index"`
}

func (Consultation) TableName() string {
	return "consultations"
}

func (c *Consultation) BeforeCreate(tx *gorm.DB) error {
	if c.ID == "" {
		c.ID = uuid.NewString()
	}
	if c.IdConsultation == "" {
		c.IdConsultation = uuid.NewString()
	}
	return nil
}

// Diagnostic is a clinical finding on a consultation. At most two per
// consultation, authored by doctors of distinct professions.
type Diagnostic struct {
	ID             string        `json:"id" gorm:"primaryKey;size:36"`
	Type           string        `json:"type" gorm:"not null;size:100"`
	Text           string        `json:"text" gorm:"type:text;not null"`
	ConsultationID string        `json:"consultation_id" gorm:"not null;size:36;index"`
	Consultation   *Consultation `json:"consultation,omitempty" gorm:"foreignKey:ConsultationID"`
	MedecinID      *string       `json:"medecin_id" gorm:"size:36;index"`
	Medecin        *Medecin      `json:"medecin,omitempty" gorm:"foreignKey:MedecinID"`

	CreatedAt time.Time      `json:"created_at"`
	UpdatedAt time.Time      `json:"updated_at"`
	DeletedAt gorm.DeletedAt `json:"-" gorm:"index"`
}

func (Diagnostic) TableName() string {
	return "diagnostics"
}

func (d *Diagnostic) BeforeCreate(tx *gorm.DB) error {
	if d.ID == "" {
		d.ID = uuid.NewString()
	}
	return nil
}
