package repositories

import (
	"context"
	"time"

	"gorm.io/gorm"

	"github.com/codinghaytam/medical-registry-api/internal/models"
)

// Every method accepts an optional transaction handle; nil falls back to the
// repository's ambient connection.

type UserRepository interface {
	Create(ctx context.Context, tx *gorm.DB, user *models.User) error
	GetByID(ctx context.Context, tx *gorm.DB, id string) (*models.User, error)
	GetByEmail(ctx context.Context, tx *gorm.DB, email string) (*models.User, error)
	GetByUsername(ctx context.Context, tx *gorm.DB, username string) (*models.User, error)
	GetByRole(ctx context.Context, tx *gorm.DB, role models.Role) ([]*models.User, error)
	List(ctx context.Context, tx *gorm.DB, filters UserFilters) ([]*models.User, int64, error)
	Update(ctx context.Context, tx *gorm.DB, user *models.User) error
	Delete(ctx context.Context, tx *gorm.DB, id string) error
}

type MedecinRepository interface {
	Create(ctx context.Context, tx *gorm.DB, medecin *models.Medecin) error
	GetByID(ctx context.Context, tx *gorm.DB, id string) (*models.Medecin, error)
	GetByUserID(ctx context.Context, tx *gorm.DB, userID string) (*models.Medecin, error)
	GetByProfession(ctx context.Context, tx *gorm.DB, profession models.Profession) ([]*models.Medecin, error)
	List(ctx context.Context, tx *gorm.DB, filters MedecinFilters) ([]*models.Medecin, int64, error)
	Update(ctx context.Context, tx *gorm.DB, medecin *models.Medecin) error
	Delete(ctx context.Context, tx *gorm.DB, id string) error
}

type EtudiantRepository interface {
	Create(ctx context.Context, tx *gorm.DB, etudiant *models.Etudiant) error
	GetByID(ctx context.Context, tx *gorm.DB, id string) (*models.Etudiant, error)
	GetByUserID(ctx context.Context, tx *gorm.DB, userID string) (*models.Etudiant, error)
	List(ctx context.Context, tx *gorm.DB, filters ListFilters) ([]*models.Etudiant, int64, error)
	Update(ctx context.Context, tx *gorm.DB, etudiant *models.Etudiant) error
	Delete(ctx context.Context, tx *gorm.DB, id string) error
}

type PatientRepository interface {
	Create(ctx context.Context, tx *gorm.DB, patient *models.Patient) error
	GetByID(ctx context.Context, tx *gorm.DB, id string) (*models.Patient, error)
	GetByNumeroDeDossier(ctx context.Context, tx *gorm.DB, numero string) (*models.Patient, error)
	List(ctx context.Context, tx *gorm.DB, filters PatientFilters) ([]*models.Patient, int64, error)
	Update(ctx context.Context, tx *gorm.DB, patient *models.Patient) error
	UpdateState(ctx context.Context, tx *gorm.DB, id string, state models.Profession) error
	Delete(ctx context.Context, tx *gorm.DB, id string) error
}

type ActionRepository interface {
	Create(ctx context.Context, tx *gorm.DB, action *models.Action) error
	GetByID(ctx context.Context, tx *gorm.DB, id string) (*models.Action, error)
	GetByPatient(ctx context.Context, tx *gorm.DB, patientID string) ([]*models.Action, error)
	List(ctx context.Context, tx *gorm.DB, filters ListFilters) ([]*models.Action, int64, error)
	Update(ctx context.Context, tx *gorm.DB, action *models.Action) error
	SetValidity(ctx context.Context, tx *gorm.DB, id string, isValid bool) error
	Delete(ctx context.Context, tx *gorm.DB, id string) error
}

type ConsultationRepository interface {
	Create(ctx context.Context, tx *gorm.DB, consultation *models.Consultation) error
	GetByID(ctx context.Context, tx *gorm.DB, id string) (*models.Consultation, error)
	GetByPatient(ctx context.Context, tx *gorm.DB, patientID string) (*models.Consultation, error)
	List(ctx context.Context, tx *gorm.DB, filters ListFilters) ([]*models.Consultation, int64, error)
	Update(ctx context.Context, tx *gorm.DB, consultation *models.Consultation) error
	Delete(ctx context.Context, tx *gorm.DB, id string) error
}

type DiagnosticRepository interface {
	Create(ctx context.Context, tx *gorm.DB, diagnostic *models.Diagnostic) error
	GetByID(ctx context.Context, tx *gorm.DB, id string) (*models.Diagnostic, error)
	GetByConsultation(ctx context.Context, tx *gorm.DB, consultationID string) ([]*models.Diagnostic, error)
	List(ctx context.Context, tx *gorm.DB, filters ListFilters) ([]*models.Diagnostic, int64, error)
	Update(ctx context.Context, tx *gorm.DB, diagnostic *models.Diagnostic) error
	Delete(ctx context.Context, tx *gorm.DB, id string) error
	DeleteByConsultation(ctx context.Context, tx *gorm.DB, consultationID string) error
}

type SeanceRepository interface {
	Create(ctx context.Context, tx *gorm.DB, seance *models.Seance) error
	GetByID(ctx context.Context, tx *gorm.DB, id string) (*models.Seance, error)
	GetByPatient(ctx context.Context, tx *gorm.DB, patientID string) ([]*models.Seance, error)
	List(ctx context.Context, tx *gorm.DB, filters SeanceFilters) ([]*models.Seance, int64, error)
	Update(ctx context.Context, tx *gorm.DB, seance *models.Seance) error
	Delete(ctx context.Context, tx *gorm.DB, id string) error
}

type ReevaluationRepository interface {
	Create(ctx context.Context, tx *gorm.DB, reevaluation *models.Reevaluation) error
	GetByID(ctx context.Context, tx *gorm.DB, id string) (*models.Reevaluation, error)
	GetBySeance(ctx context.Context, tx *gorm.DB, seanceID string) (*models.Reevaluation, error)
	List(ctx context.Context, tx *gorm.DB, filters ListFilters) ([]*models.Reevaluation, int64, error)
	Update(ctx context.Context, tx *gorm.DB, reevaluation *models.Reevaluation) error
	Delete(ctx context.Context, tx *gorm.DB, id string) error
}

type NotificationRepository interface {
	Create(ctx context.Context, tx *gorm.DB, notification *models.Notification) error
	GetByID(ctx context.Context, tx *gorm.DB, id string) (*models.Notification, error)
	GetByUser(ctx context.Context, tx *gorm.DB, userID string, filters NotificationFilters) ([]*models.Notification, int64, error)
	CountUnread(ctx context.Context, tx *gorm.DB, userID string) (int64, error)
	MarkRead(ctx context.Context, tx *gorm.DB, id string) error
	MarkAllRead(ctx context.Context, tx *gorm.DB, userID string) error
	Delete(ctx context.Context, tx *gorm.DB, id string) error
}

// ===== SHARED FILTER STRUCTS =====

type ListFilters struct {
	Limit     int    `json:"limit"`
	Offset    int    `json:"offset"`
	SortBy    string `json:"sort_by"`    // "created_at", "updated_at", "date"
	SortOrder string `json:"sort_order"` // "asc", "desc"
}

type UserFilters struct {
	Role      *models.Role `json:"role"`
	Search    *string      `json:"search"`
	Limit     int          `json:"limit"`
	Offset    int          `json:"offset"`
	SortBy    string       `json:"sort_by"`
	SortOrder string       `json:"sort_order"`
}

type MedecinFilters struct {
	Profession    *models.Profession `json:"profession"`
	IsSpecialiste *bool              `json:"is_specialiste"`
	Limit         int                `json:"limit"`
	Offset        int                `json:"offset"`
	SortBy        string             `json:"sort_by"`
	SortOrder     string             `json:"sort_order"`
}

type PatientFilters struct {
	State     *models.Profession `json:"state"`
	Search    *string            `json:"search"`
	DateFrom  *time.Time         `json:"date_from"`
	DateTo    *time.Time         `json:"date_to"`
	Limit     int                `json:"limit"`
	Offset    int                `json:"offset"`
	SortBy    string             `json:"sort_by"`
	SortOrder string             `json:"sort_order"`
}

type SeanceFilters struct {
	Type      *models.SeanceType `json:"type"`
	PatientID *string            `json:"patient_id"`
	MedecinID *string            `json:"medecin_id"`
	DateFrom  *time.Time         `json:"date_from"`
	DateTo    *time.Time         `json:"date_to"`
	Limit     int                `json:"limit"`
	Offset    int                `json:"offset"`
	SortBy    string             `json:"sort_by"`
	SortOrder string             `json:"sort_order"`
}

type NotificationFilters struct {
	UnreadOnly bool `json:"unread_only"`
	Limit      int  `json:"limit"`
	Offset     int  `json:"offset"`
}
