package validator

import (
	"time"

	"github.com/codinghaytam/medical-registry-api/internal/models"
)

// ===== AUTH =====

type LoginRequest struct {
	Username string `json:"username" validate:"required"`
	Password string `json:"password" validate:"required"`
}

type RefreshRequest struct {
	RefreshToken string `json:"refresh_token" validate:"required"`
}

type LogoutRequest struct {
	RefreshToken string `json:"refresh_token" validate:"required"`
}

type SignupRequest struct {
	Username string `json:"username" validate:"required,min=3,max=100"`
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required,min=8"`
	Name     string `json:"name" validate:"required,max=100"`
	Niveau   int    `json:"niveau" validate:"omitempty,min=1,max=7"`
}

type PasswordChangeRequest struct {
	Email       string `json:"email" validate:"required,email"`
	NewPassword string `json:"new_password" validate:"required,min=8"`
}

// ===== USERS =====

type UserCreateRequest struct {
	Username string      `json:"username" validate:"required,min=3,max=100"`
	Email    string      `json:"email" validate:"required,email"`
	Name     string      `json:"name" validate:"required,max=100"`
	Phone    string      `json:"phone" validate:"omitempty,max=30"`
	Password string      `json:"password" validate:"required,min=8"`
	Role     models.Role `json:"role" validate:"required,user_role"`
}

type UserUpdateRequest struct {
	Email *string      `json:"email" validate:"omitempty,email"`
	Name  *string      `json:"name" validate:"omitempty,max=100"`
	Phone *string      `json:"phone" validate:"omitempty,max=30"`
	Role  *models.Role `json:"role" validate:"omitempty,user_role"`
}

type MedecinCreateRequest struct {
	Username      string            `json:"username" validate:"required,min=3,max=100"`
	Email         string            `json:"email" validate:"required,email"`
	Name          string            `json:"name" validate:"required,max=100"`
	Phone         string            `json:"phone" validate:"omitempty,max=30"`
	Password      string            `json:"password" validate:"required,min=8"`
	Profession    models.Profession `json:"profession" validate:"required,profession"`
	IsSpecialiste bool              `json:"is_specialiste"`
}

type MedecinUpdateRequest struct {
	Email         *string            `json:"email" validate:"omitempty,email"`
	Name          *string            `json:"name" validate:"omitempty,max=100"`
	Phone         *string            `json:"phone" validate:"omitempty,max=30"`
	Profession    *models.Profession `json:"profession" validate:"omitempty,profession"`
	IsSpecialiste *bool              `json:"is_specialiste"`
}

type EtudiantCreateRequest struct {
	Username string `json:"username" validate:"required,min=3,max=100"`
	Email    string `json:"email" validate:"required,email"`
	Name     string `json:"name" validate:"required,max=100"`
	Phone    string `json:"phone" validate:"omitempty,max=30"`
	Password string `json:"password" validate:"required,min=8"`
	Niveau   int    `json:"niveau" validate:"required,min=1,max=7"`
}

type EtudiantUpdateRequest struct {
	Email  *string `json:"email" validate:"omitempty,email"`
	Name   *string `json:"name" validate:"omitempty,max=100"`
	Phone  *string `json:"phone" validate:"omitempty,max=30"`
	Niveau *int    `json:"niveau" validate:"omitempty,min=1,max=7"`
}

// ===== PATIENTS =====

type PatientCreateRequest struct {
	Nom                  string                      `json:"nom" validate:"required,max=100"`
	Prenom               string                      `json:"prenom" validate:"required,max=100"`
	NumeroDeDossier      string                      `json:"numero_de_dossier" validate:"required,max=50"`
	Adresse              string                      `json:"adresse" validate:"omitempty,max=255"`
	Tel                  string                      `json:"tel" validate:"omitempty,max=30"`
	MotifConsultation    models.MotifConsultation    `json:"motif_consultation" validate:"required,motif_consultation"`
	AnameseGenerale      *string                     `json:"anamese_generale"`
	AnamneseFamiliale    *string                     `json:"anamnese_familiale"`
	AnamneseLocale       *string                     `json:"anamnese_locale"`
	HygieneBuccoDentaire models.HygieneBuccoDentaire `json:"hygiene_bucco_dentaire" validate:"required,hygiene"`
	TypeMastication      models.TypeMastication      `json:"type_mastication" validate:"required,mastication"`
	AntecedentsDentaires *string                     `json:"antecedents_dentaires"`
	State                *models.Profession          `json:"state" validate:"omitempty,profession"`
}

type PatientUpdateRequest struct {
	Nom                  *string                      `json:"nom" validate:"omitempty,max=100"`
	Prenom               *string                      `json:"prenom" validate:"omitempty,max=100"`
	Adresse              *string                      `json:"adresse" validate:"omitempty,max=255"`
	Tel                  *string                      `json:"tel" validate:"omitempty,max=30"`
	MotifConsultation    *models.MotifConsultation    `json:"motif_consultation" validate:"omitempty,motif_consultation"`
	AnameseGenerale      *string                      `json:"anamese_generale"`
	AnamneseFamiliale    *string                      `json:"anamnese_familiale"`
	AnamneseLocale       *string                      `json:"anamnese_locale"`
	HygieneBuccoDentaire *models.HygieneBuccoDentaire `json:"hygiene_bucco_dentaire" validate:"omitempty,hygiene"`
	TypeMastication      *models.TypeMastication      `json:"type_mastication" validate:"omitempty,mastication"`
	AntecedentsDentaires *string                      `json:"antecedents_dentaires"`
}

type TransferRequest struct {
	MedecinID string `json:"medecin_id" validate:"required"`
}

// ===== CONSULTATIONS =====

type ConsultationCreateRequest struct {
	Date      time.Time            `json:"date" validate:"required"`
	MedecinID string               `json:"medecin_id" validate:"required"`
	Patient   PatientCreateRequest `json:"patient" validate:"required"`
}

type ConsultationUpdateRequest struct {
	Date      *time.Time `json:"date"`
	MedecinID *string    `json:"medecin_id"`
}

type DiagnosticCreateRequest struct {
	ConsultationID string  `json:"consultation_id" validate:"required"`
	Type           string  `json:"type" validate:"required,max=100"`
	Text           string  `json:"text" validate:"required"`
	MedecinID      *string `json:"medecin_id"`
}

// DiagnosisRequest is the nested form used on POST /consultation/:id/diagnosis.
type DiagnosisRequest struct {
	Type      string  `json:"type" validate:"required,max=100"`
	Text      string  `json:"text" validate:"required"`
	MedecinID *string `json:"medecin_id"`
}

type DiagnosticUpdateRequest struct {
	Type *string `json:"type" validate:"omitempty,max=100"`
	Text *string `json:"text"`
}

// ===== SEANCES =====

type SeanceCreateRequest struct {
	Type      models.SeanceType `json:"type" validate:"required,seance_type"`
	Date      time.Time         `json:"date" validate:"required"`
	PatientID string            `json:"patient_id" validate:"required"`
	MedecinID string            `json:"medecin_id" validate:"required"`
}

type SeanceUpdateRequest struct {
	Type      *models.SeanceType `json:"type" validate:"omitempty,seance_type"`
	Date      *time.Time         `json:"date"`
	MedecinID *string            `json:"medecin_id"`
}

// ===== ACTIONS =====

type ActionCreateRequest struct {
	Type      models.ActionType `json:"type" validate:"required,action_type"`
	Date      *time.Time        `json:"date"`
	PatientID string            `json:"patient_id" validate:"required"`
	MedecinID string            `json:"medecin_id" validate:"required"`
}

type ActionUpdateRequest struct {
	Date *time.Time `json:"date"`
}

// ===== REEVALUATIONS =====

// Reevaluation requests arrive as multipart forms, the photo alongside the
// indices.
type ReevaluationCreateRequest struct {
	IndiceDePlaque  float64   `form:"indice_de_plaque" validate:"min=0,max=3"`
	IndiceGingivale float64   `form:"indice_gingivale" validate:"min=0,max=3"`
	PatientID       string    `form:"patient_id" validate:"required"`
	MedecinID       string    `form:"medecin_id" validate:"required"`
	Date            time.Time `form:"date"`
}

type ReevaluationUpdateRequest struct {
	IndiceDePlaque  *float64 `form:"indice_de_plaque" validate:"omitempty,min=0,max=3"`
	IndiceGingivale *float64 `form:"indice_gingivale" validate:"omitempty,min=0,max=3"`
}
