package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Patient holds the clinical intake record. State names the department that
// currently owns the patient; only the transfer workflow may change it after
// creation.
type Patient struct {
	ID                   string               `json:"id" gorm:"primaryKey;size:36"`
	Nom                  string               `json:"nom" gorm:"not null;size:100"`
	Prenom               string               `json:"prenom" gorm:"not null;size:100"`
	NumeroDeDossier      string               `json:"numero_de_dossier" gorm:"uniqueIndex;not null;size:50"`
	Adresse              string               `json:"adresse" gorm:"size:255"`
	Tel                  string               `json:"tel" gorm:"size:30"`
	MotifConsultation    MotifConsultation    `json:"motif_consultation" gorm:"type:varchar(20);not null"`
	AnameseGenerale      *string              `json:"anamese_generale"`
	AnamneseFamiliale    *string              `json:"anamnese_familiale"`
	AnamneseLocale       *string              `json:"anamnese_locale"`
	HygieneBuccoDentaire HygieneBuccoDentaire `json:"hygiene_bucco_dentaire" gorm:"type:varchar(20);not null"`
	TypeMastication      TypeMastication      `json:"type_mastication" gorm:"type:varchar(20);not null"`
	AntecedentsDentaires *string              `json:"antecedents_dentaires"`
	State                Profession           `json:"state" gorm:"type:varchar(20);not null;default:PARODONTAIRE"`

	Actions []Action `json:"actions,omitempty" gorm:"foreignKey:PatientID"`

	CreatedAt time.Time      `json:"created_at"`
	UpdatedAt time.Time      `json:"updated_at"`
	DeletedAt gorm.DeletedAt `json:"-" gorm:"index"`
}

func (Patient) TableName() string {
	return "patients"
}

func (p *Patient) BeforeCreate(tx *gorm.DB) error {
	if p.ID == "" {
		p.ID = uuid.NewString()
	}
	return nil
}
