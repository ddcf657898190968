package services

import (
	"context"
	"fmt"
	"log/slog"
	"sync"

	"gorm.io/gorm"

	"github.com/codinghaytam/medical-registry-api/internal/events"
	"github.com/codinghaytam/medical-registry-api/internal/keycloak"
	"github.com/codinghaytam/medical-registry-api/internal/repositories"
	"github.com/codinghaytam/medical-registry-api/internal/storage"
	"github.com/codinghaytam/medical-registry-api/internal/validator"
)

// ServiceManagerConfig carries everything the service layer depends on.
type ServiceManagerConfig struct {
	DB            *gorm.DB
	Repository    repositories.Repository
	Logger        *slog.Logger
	Validator     *validator.Validator
	Keycloak      *keycloak.Client
	Publisher     events.EventPublisher
	ObjectStore   storage.ObjectStore
	MaxUploadSize int64
}

type serviceManager struct {
	mu          sync.RWMutex
	initialized bool
	config      ServiceManagerConfig

	auth         AuthService
	user         UserService
	admin        AdminService
	medecin      MedecinService
	etudiant     EtudiantService
	patient      PatientService
	action       ActionService
	consultation ConsultationService
	diagnostic   DiagnosticService
	seance       SeanceService
	reevaluation ReevaluationService
	notification NotificationService
}

func NewServiceManager(config ServiceManagerConfig) (ServiceManager, error) {
	if config.DB == nil {
		return nil, fmt.Errorf("database connection is required")
	}
	if config.Repository == nil {
		return nil, fmt.Errorf("repository is required")
	}
	if config.Logger == nil {
		return nil, fmt.Errorf("logger is required")
	}
	if config.Validator == nil {
		return nil, fmt.Errorf("validator is required")
	}
	if config.Keycloak == nil {
		return nil, fmt.Errorf("keycloak client is required")
	}
	if config.Publisher == nil {
		return nil, fmt.Errorf("event publisher is required")
	}
	if config.ObjectStore == nil {
		return nil, fmt.Errorf("object store is required")
	}

	return &serviceManager{config: config}, nil
}

// NewDefaultServiceManager wires and initializes the service layer in one
// call.
func NewDefaultServiceManager(ctx context.Context, config ServiceManagerConfig) (ServiceManager, error) {
	manager, err := NewServiceManager(config)
	if err != nil {
		return nil, err
	}
	if err := manager.Initialize(ctx); err != nil {
		return nil, err
	}
	return manager, nil
}

func (sm *serviceManager) Initialize(ctx context.Context) error {
	sm.mu.Lock()
	defer sm.mu.Unlock()

	if sm.initialized {
		return nil
	}

	cfg := sm.config
	cfg.Logger.Info("Initializing services")

	sm.notification = NewNotificationService(cfg.Repository, cfg.DB, cfg.Logger, cfg.Publisher)
	sm.user = NewUserService(cfg.Repository, cfg.DB, cfg.Logger, cfg.Validator, cfg.Keycloak)
	sm.admin = NewAdminService(cfg.Repository, cfg.DB, cfg.Logger, cfg.Validator, cfg.Keycloak, sm.user)
	sm.medecin = NewMedecinService(cfg.Repository, cfg.DB, cfg.Logger, cfg.Validator, cfg.Keycloak)
	sm.etudiant = NewEtudiantService(cfg.Repository, cfg.DB, cfg.Logger, cfg.Validator, cfg.Keycloak)
	sm.auth = NewAuthService(cfg.Repository, cfg.DB, cfg.Logger, cfg.Validator, cfg.Keycloak, sm.etudiant)
	sm.patient = NewPatientService(cfg.Repository, cfg.DB, cfg.Logger, cfg.Validator)
	sm.action = NewActionService(cfg.Repository, cfg.DB, cfg.Logger, cfg.Validator, sm.notification)
	sm.consultation = NewConsultationService(cfg.Repository, cfg.DB, cfg.Logger, cfg.Validator)
	sm.diagnostic = NewDiagnosticService(cfg.Repository, cfg.DB, cfg.Logger, cfg.Validator)
	sm.seance = NewSeanceService(cfg.Repository, cfg.DB, cfg.Logger, cfg.Validator)
	sm.reevaluation = NewReevaluationService(cfg.Repository, cfg.DB, cfg.Logger, cfg.Validator, cfg.ObjectStore, cfg.MaxUploadSize)

	sm.initialized = true
	cfg.Logger.Info("Services initialized")
	return nil
}

func (sm *serviceManager) HealthCheck(ctx context.Context) error {
	sm.mu.RLock()
	defer sm.mu.RUnlock()

	if !sm.initialized {
		return fmt.Errorf("service manager not initialized")
	}
	return sm.config.Repository.Ping(ctx)
}

func (sm *serviceManager) Shutdown(ctx context.Context) error {
	sm.mu.Lock()
	defer sm.mu.Unlock()

	if !sm.initialized {
		return nil
	}

	sm.config.Logger.Info("Shutting down services")
	if err := sm.config.Publisher.Close(); err != nil {
		sm.config.Logger.Error("Failed to close event publisher", "error", err)
	}

	sm.initialized = false
	return nil
}

func (sm *serviceManager) Auth() AuthService {
	sm.ensureInitialized("auth")
	return sm.auth
}

func (sm *serviceManager) User() UserService {
	sm.ensureInitialized("user")
	return sm.user
}

func (sm *serviceManager) Admin() AdminService {
	sm.ensureInitialized("admin")
	return sm.admin
}

func (sm *serviceManager) Medecin() MedecinService {
	sm.ensureInitialized("medecin")
	return sm.medecin
}

func (sm *serviceManager) Etudiant() EtudiantService {
	sm.ensureInitialized("etudiant")
	return sm.etudiant
}

func (sm *serviceManager) Patient() PatientService {
	sm.ensureInitialized("patient")
	return sm.patient
}

func (sm *serviceManager) Action() ActionService {
	sm.ensureInitialized("action")
	return sm.action
}

func (sm *serviceManager) Consultation() ConsultationService {
	sm.ensureInitialized("consultation")
	return sm.consultation
}

func (sm *serviceManager) Diagnostic() DiagnosticService {
	sm.ensureInitialized("diagnostic")
	return sm.diagnostic
}

func (sm *serviceManager) Seance() SeanceService {
	sm.ensureInitialized("seance")
	return sm.seance
}

func (sm *serviceManager) Reevaluation() ReevaluationService {
	sm.ensureInitialized("reevaluation")
	return sm.reevaluation
}

func (sm *serviceManager) Notification() NotificationService {
	sm.ensureInitialized("notification")
	return sm.notification
}

func (sm *serviceManager) ensureInitialized(name string) {
	sm.mu.RLock()
	defer sm.mu.RUnlock()

	if !sm.initialized {
		panic(fmt.Sprintf("service manager not initialized, cannot get %s service", name))
	}
}
