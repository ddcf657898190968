package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Seance is a treatment session. Department-specific session types must match
// the assigned doctor's profession (enforced in the service layer).
type Seance struct {
	ID        string     `json:"id" gorm:"primaryKey;size:36"`
	Type      SeanceType `json:"type" gorm:"type:varchar(30);not null"`
	Date      time.Time  `json:"date" gorm:"not null"`
	PatientID string     `json:"patient_id" gorm:"not null;size:36;index"`
	Patient   *Patient   `json:"patient,omitempty" gorm:"foreignKey:PatientID"`
	MedecinID string     `json:"medecin_id" gorm:"not null;size:36;index"`
	Medecin   *Medecin   `json:"medecin,omitempty" gorm:"foreignKey:MedecinID"`

	CreatedAt time.Time      `json:"created_at"`
	UpdatedAt time.Time      `json:"updated_at"`
	DeletedAt gorm.DeletedAt `json:"-" gorm:"index"`
}

func (Seance) TableName() string {
	return "seances"
}

func (s *Seance) BeforeCreate(tx *gorm.DB) error {
	if s.ID == "" {
		s.ID = uuid.NewString()
	}
	return nil
}

// Reevaluation holds periodontal re-evaluation indices tied 1:1 to a
// REEVALUATION seance. SondagePhoto is the object-store key of the probing
// chart photo.
type Reevaluation struct {
	ID              string  `json:"id" gorm:"primaryKey;size:36"`
	IndiceDePlaque  float64 `json:"indice_de_plaque" gorm:"not null"`
	IndiceGingivale float64 `json:"indice_gingivale" gorm:"not null"`
	SondagePhoto    *string `json:"sondage_photo" gorm:"size:255"`
	SeanceID        string  `json:"seance_id" gorm:"uniqueIndex;not null;size:36"`
	Seance          *Seance `json:"seance,omitempty" gorm:"foreignKey:SeanceID"`

	CreatedAt time.Time      `json:"created_at"`
	UpdatedAt time.Time      `json:"updated_at"`
	DeletedAt gorm.DeletedAt `json:"-" gorm:"index"`
}

func (Reevaluation) TableName() string {
	return "reevaluations"
}

func (r *Reevaluation) BeforeCreate(tx *gorm.DB) error {
	if r.ID == "" {
		r.ID = uuid.NewString()
	}
	return nil
}
