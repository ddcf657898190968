package services

import (
	"context"
	"io"

	"github.com/codinghaytam/medical-registry-api/internal/keycloak"
	"github.com/codinghaytam/medical-registry-api/internal/models"
	"github.com/codinghaytam/medical-registry-api/internal/repositories"
	"github.com/codinghaytam/medical-registry-api/internal/validator"
)

// ===== SHARED DTOs =====

// LoginResult bundles the provider token pair with the resolved local
// identity.
type LoginResult struct {
	AccessToken      string       `json:"access_token"`
	RefreshToken     string       `json:"refresh_token"`
	ExpiresIn        int          `json:"expires_in"`
	RefreshExpiresIn int          `json:"refresh_expires_in"`
	TokenType        string       `json:"token_type"`
	User             *models.User `json:"user,omitempty"`
	Roles            []string     `json:"roles"`
}

// PhotoUpload carries an uploaded probing chart photo into the service layer.
type PhotoUpload struct {
	Reader      io.Reader
	Size        int64
	ContentType string
	Filename    string
}

// ===== SERVICE INTERFACES =====

type AuthService interface {
	Login(ctx context.Context, req *validator.LoginRequest) (*LoginResult, error)
	Refresh(ctx context.Context, refreshToken string) (*keycloak.TokenResponse, error)
	Logout(ctx context.Context, refreshToken string) error
	Signup(ctx context.Context, req *validator.SignupRequest) (*models.Etudiant, error)
	ChangePassword(ctx context.Context, req *validator.PasswordChangeRequest) error
	SendVerifyEmail(ctx context.Context, email string) error
}

type UserService interface {
	Create(ctx context.Context, req *validator.UserCreateRequest) (*models.User, error)
	GetByID(ctx context.Context, id string) (*models.User, error)
	GetByEmail(ctx context.Context, email string) (*models.User, error)
	List(ctx context.Context, filters repositories.UserFilters) ([]*models.User, int64, error)
	Update(ctx context.Context, id string, req *validator.UserUpdateRequest) (*models.User, error)
	Delete(ctx context.Context, id string) error
}

type AdminService interface {
	Create(ctx context.Context, req *validator.UserCreateRequest) (*models.User, error)
	GetByID(ctx context.Context, id string) (*models.User, error)
	List(ctx context.Context, filters repositories.ListFilters) ([]*models.User, int64, error)
	Update(ctx context.Context, id string, req *validator.UserUpdateRequest) (*models.User, error)
	Delete(ctx context.Context, id string) error
}

type MedecinService interface {
	Create(ctx context.Context, req *validator.MedecinCreateRequest) (*models.Medecin, error)
	GetByID(ctx context.Context, id string) (*models.Medecin, error)
	GetByUserID(ctx context.Context, userID string) (*models.Medecin, error)
	List(ctx context.Context, filters repositories.MedecinFilters) ([]*models.Medecin, int64, error)
	Update(ctx context.Context, id string, req *validator.MedecinUpdateRequest) (*models.Medecin, error)
	Delete(ctx context.Context, id string) error
}

type EtudiantService interface {
	Create(ctx context.Context, req *validator.EtudiantCreateRequest) (*models.Etudiant, error)
	GetByID(ctx context.Context, id string) (*models.Etudiant, error)
	GetByUserID(ctx context.Context, userID string) (*models.Etudiant, error)
	List(ctx context.Context, filters repositories.ListFilters) ([]*models.Etudiant, int64, error)
	Update(ctx context.Context, id string, req *validator.EtudiantUpdateRequest) (*models.Etudiant, error)
	Delete(ctx context.Context, id string) error
}

type PatientService interface {
	Create(ctx context.Context, req *validator.PatientCreateRequest) (*models.Patient, error)
	GetByID(ctx context.Context, id string) (*models.Patient, error)
	List(ctx context.Context, filters repositories.PatientFilters) ([]*models.Patient, int64, error)
	Update(ctx context.Context, id string, req *validator.PatientUpdateRequest) (*models.Patient, error)
	Delete(ctx context.Context, id string) error
	GetActions(ctx context.Context, patientID string) ([]*models.Action, error)
}

type ActionService interface {
	Create(ctx context.Context, req *validator.ActionCreateRequest) (*models.Action, error)
	GetByID(ctx context.Context, id string) (*models.Action, error)
	GetByPatient(ctx context.Context, patientID string) ([]*models.Action, error)
	List(ctx context.Context, filters repositories.ListFilters) ([]*models.Action, int64, error)
	Update(ctx context.Context, id string, req *validator.ActionUpdateRequest) (*models.Action, error)
	Delete(ctx context.Context, id string) error

	// RequestTransfer opens a pending transfer and moves the patient to the
	// target department. ValidateTransfer confirms a pending transfer whose
	// type matches the expected direction.
	RequestTransfer(ctx context.Context, patientID, medecinID string, transferType models.ActionType) (*models.Action, error)
	ValidateTransfer(ctx context.Context, actionID string, expectedType models.ActionType) (*models.Action, error)
}

type ConsultationService interface {
	Create(ctx context.Context, req *validator.ConsultationCreateRequest) (*models.Consultation, error)
	GetByID(ctx context.Context, id string) (*models.Consultation, error)
	GetByPatient(ctx context.Context, patientID string) (*models.Consultation, error)
	List(ctx context.Context, filters repositories.ListFilters) ([]*models.Consultation, int64, error)
	Update(ctx context.Context, id string, req *validator.ConsultationUpdateRequest) (*models.Consultation, error)
	Delete(ctx context.Context, id string) error
	AddDiagnosis(ctx context.Context, consultationID string, req *validator.DiagnosisRequest) (*models.Diagnostic, error)
}

type DiagnosticService interface {
	Create(ctx context.Context, req *validator.DiagnosticCreateRequest) (*models.Diagnostic, error)
	GetByID(ctx context.Context, id string) (*models.Diagnostic, error)
	GetByConsultation(ctx context.Context, consultationID string) ([]*models.Diagnostic, error)
	Update(ctx context.Context, id string, req *validator.DiagnosticUpdateRequest) (*models.Diagnostic, error)
	Delete(ctx context.Context, id string) error
}

type SeanceService interface {
	Create(ctx context.Context, req *validator.SeanceCreateRequest) (*models.Seance, error)
	GetByID(ctx context.Context, id string) (*models.Seance, error)
	GetByPatient(ctx context.Context, patientID string) ([]*models.Seance, error)
	List(ctx context.Context, filters repositories.SeanceFilters) ([]*models.Seance, int64, error)
	Update(ctx context.Context, id string, req *validator.SeanceUpdateRequest) (*models.Seance, error)
	Delete(ctx context.Context, id string) error
}

type ReevaluationService interface {
	Create(ctx context.Context, req *validator.ReevaluationCreateRequest, photo *PhotoUpload) (*models.Reevaluation, error)
	GetByID(ctx context.Context, id string) (*models.Reevaluation, error)
	GetBySeance(ctx context.Context, seanceID string) (*models.Reevaluation, error)
	List(ctx context.Context, filters repositories.ListFilters) ([]*models.Reevaluation, int64, error)
	Update(ctx context.Context, id string, req *validator.ReevaluationUpdateRequest, photo *PhotoUpload) (*models.Reevaluation, error)
	Delete(ctx context.Context, id string) error
	PhotoURL(ctx context.Context, id string) (string, error)
}

type NotificationService interface {
	// Dispatch persists the notification, then pushes it on the user's
	// realtime channel. Publish failures are logged, never returned.
	Dispatch(ctx context.Context, userID string, eventType models.NotificationEventType, message string, metadata map[string]interface{}) (*models.Notification, error)
	GetByUser(ctx context.Context, userID string, filters repositories.NotificationFilters) ([]*models.Notification, int64, error)
	CountUnread(ctx context.Context, userID string) (int64, error)
	MarkRead(ctx context.Context, id string) error
	MarkAllRead(ctx context.Context, userID string) error
	Delete(ctx context.Context, id string) error
}

// ===== SERVICE MANAGER =====

type ServiceManager interface {
	Auth() AuthService
	User() UserService
	Admin() AdminService
	Medecin() MedecinService
	Etudiant() EtudiantService
	Patient() PatientService
	Action() ActionService
	Consultation() ConsultationService
	Diagnostic() DiagnosticService
	Seance() SeanceService
	Reevaluation() ReevaluationService
	Notification() NotificationService

	// Health and lifecycle
	Initialize(ctx context.Context) error
	HealthCheck(ctx context.Context) error
	Shutdown(ctx context.Context) error
}
